package stream

import "context"

// FromSlice returns a Readable that yields each element of values in order,
// then signals end-of-stream forever after. Useful for tests and for
// seeding pipeline chains from static data.
func FromSlice[T any](values []T) Readable[T] {
	return &sliceReadable[T]{values: values}
}

type sliceReadable[T any] struct {
	values []T
	pos    int
}

func (s *sliceReadable[T]) Recv(ctx context.Context) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	if s.pos >= len(s.values) {
		return zero, false, nil
	}

	v := s.values[s.pos]
	s.pos++

	return v, true, nil
}

func (s *sliceReadable[T]) RecvBuffered(ctx context.Context, buf []T) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	n := copy(buf, s.values[s.pos:])
	s.pos += n

	return n, nil
}

// ToSlice drains r into a new slice, the collector-style counterpart to
// FromSlice. It is re-exported by package pipeline as the ToSlice collector.
func ToSlice[T any](ctx context.Context, r Readable[T]) ([]T, error) {
	var out []T
	for {
		v, ok, err := r.Recv(ctx)
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v)
	}
}

// SliceSink collects every sent value into an in-memory slice, implementing
// Writable and BufferedWritable. Intended for tests and for Pipe's tee
// destination.
type SliceSink[T any] struct {
	Values []T
	closed bool
}

func (s *SliceSink[T]) Send(ctx context.Context, value T) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if s.closed {
		return false, nil
	}

	s.Values = append(s.Values, value)

	return true, nil
}

func (s *SliceSink[T]) SendBuffered(ctx context.Context, values []T) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s.closed {
		return 0, nil
	}

	s.Values = append(s.Values, values...)

	return len(values), nil
}

func (s *SliceSink[T]) Close(ctx context.Context) error {
	s.closed = true
	return nil
}
