// Package pipeline provides lazy, value-semantic adaptors over
// stream.Readable — Transform, Map, Filter, Limit, Skip, TakeWhile,
// DropWhile, Pipe, ForwardTo — plus terminal collectors in collectors.go.
// Transform is the general 0..many fan-out stage that Map, Filter and Pipe
// are built on (Limit, Skip, TakeWhile and DropWhile are standalone
// readers), mirroring the original runtime's adaptors.hpp composition, with
// the textual package's Processor channel-stage idiom as independent
// confirmation of the same shape generalized here to pull-based streams.
package pipeline

import (
	"context"
	"errors"

	"github.com/webcraft-project/async-core/asyncerrors"
	"github.com/webcraft-project/async-core/stream"
)

// Transform feeds each item from src to fn, which may call yield zero or
// more times to fan it out into the returned stream. fn's yield always
// accepts; fn is responsible for stopping early (simply not calling yield
// again) if it wants to emit less than the full mapping for one input.
// Returning asyncerrors.Stop from fn ends the stream, without an error, once
// the items already yielded have been received.
func Transform[In, Out any](
	src stream.Readable[In],
	fn func(ctx context.Context, in In, yield func(Out) bool) error,
) stream.Readable[Out] {
	return &transformReadable[In, Out]{src: src, fn: fn}
}

type transformReadable[In, Out any] struct {
	src   stream.Readable[In]
	fn    func(ctx context.Context, in In, yield func(Out) bool) error
	queue []Out
	done  bool
	err   error
}

func (t *transformReadable[In, Out]) Recv(ctx context.Context) (Out, bool, error) {
	var zero Out

	for {
		if len(t.queue) > 0 {
			v := t.queue[0]
			t.queue = t.queue[1:]
			return v, true, nil
		}
		if t.done {
			return zero, false, t.err
		}

		in, ok, err := t.src.Recv(ctx)
		if err != nil {
			t.done, t.err = true, err
			return zero, false, err
		}
		if !ok {
			t.done = true
			return zero, false, nil
		}

		if err := t.fn(ctx, in, func(o Out) bool {
			t.queue = append(t.queue, o)
			return true
		}); err != nil {
			t.done = true
			if !errors.Is(err, asyncerrors.Stop) {
				t.err = err
			}
			if len(t.queue) == 0 {
				return zero, false, t.err
			}
		}
	}
}

// Map applies a pure 1-to-1 transformation to each item.
func Map[In, Out any](src stream.Readable[In], fn func(In) Out) stream.Readable[Out] {
	return Transform[In, Out](src, func(_ context.Context, in In, yield func(Out) bool) error {
		yield(fn(in))
		return nil
	})
}

// Filter drops items for which pred returns false.
func Filter[T any](src stream.Readable[T], pred func(T) bool) stream.Readable[T] {
	return Transform[T, T](src, func(_ context.Context, in T, yield func(T) bool) error {
		if pred(in) {
			yield(in)
		}
		return nil
	})
}

// Limit yields at most the first n items, then end-of-stream. Limit(0)
// yields immediate end-of-stream without ever calling src.Recv.
func Limit[T any](src stream.Readable[T], n int) stream.Readable[T] {
	return &limitReadable[T]{src: src, remaining: n}
}

type limitReadable[T any] struct {
	src       stream.Readable[T]
	remaining int
}

func (l *limitReadable[T]) Recv(ctx context.Context) (T, bool, error) {
	var zero T
	if l.remaining <= 0 {
		return zero, false, nil
	}

	v, ok, err := l.src.Recv(ctx)
	if err != nil || !ok {
		l.remaining = 0
		return zero, false, err
	}
	l.remaining--

	return v, true, nil
}

// Skip discards the first n items, then passes the rest through unchanged.
// Skipping beyond the source's length yields end-of-stream.
func Skip[T any](src stream.Readable[T], n int) stream.Readable[T] {
	return &skipReadable[T]{src: src, toSkip: n}
}

type skipReadable[T any] struct {
	src     stream.Readable[T]
	toSkip  int
	skipped bool
}

func (s *skipReadable[T]) Recv(ctx context.Context) (T, bool, error) {
	var zero T
	if !s.skipped {
		s.skipped = true
		for i := 0; i < s.toSkip; i++ {
			_, ok, err := s.src.Recv(ctx)
			if err != nil {
				return zero, false, err
			}
			if !ok {
				return zero, false, nil
			}
		}
	}

	return s.src.Recv(ctx)
}

// TakeWhile yields items until pred first returns false, then end-of-stream.
// An empty source yields end-of-stream.
func TakeWhile[T any](src stream.Readable[T], pred func(T) bool) stream.Readable[T] {
	return &takeWhileReadable[T]{src: src, pred: pred}
}

type takeWhileReadable[T any] struct {
	src  stream.Readable[T]
	pred func(T) bool
	done bool
}

func (t *takeWhileReadable[T]) Recv(ctx context.Context) (T, bool, error) {
	var zero T
	if t.done {
		return zero, false, nil
	}

	v, ok, err := t.src.Recv(ctx)
	if err != nil || !ok {
		t.done = true
		return zero, false, err
	}
	if !t.pred(v) {
		t.done = true
		return zero, false, nil
	}

	return v, true, nil
}

// DropWhile discards items while pred returns true, then passes through
// every item from the first false onward, including that one.
func DropWhile[T any](src stream.Readable[T], pred func(T) bool) stream.Readable[T] {
	return &dropWhileReadable[T]{src: src, pred: pred, dropping: true}
}

type dropWhileReadable[T any] struct {
	src      stream.Readable[T]
	pred     func(T) bool
	dropping bool
}

func (d *dropWhileReadable[T]) Recv(ctx context.Context) (T, bool, error) {
	for d.dropping {
		v, ok, err := d.src.Recv(ctx)
		if err != nil || !ok {
			return v, ok, err
		}
		if d.pred(v) {
			continue
		}
		d.dropping = false
		return v, true, nil
	}

	return d.src.Recv(ctx)
}

// Pipe tees each value sent to sink and re-emits the original unchanged,
// stopping early if sink rejects a value (which is then not re-emitted) or
// errors.
func Pipe[T any](src stream.Readable[T], sink stream.Writable[T]) stream.Readable[T] {
	return Transform[T, T](src, func(ctx context.Context, in T, yield func(T) bool) error {
		accepted, err := sink.Send(ctx, in)
		if err != nil {
			return err
		}
		if !accepted {
			return asyncerrors.Stop
		}

		yield(in)

		return nil
	})
}

// ForwardTo drains src into sink, stopping on the first failed send (error
// or rejection).
func ForwardTo[T any](ctx context.Context, src stream.Readable[T], sink stream.Writable[T]) error {
	for {
		v, ok, err := src.Recv(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		accepted, err := sink.Send(ctx, v)
		if err != nil {
			return err
		}
		if !accepted {
			return nil
		}
	}
}
