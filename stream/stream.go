// Package stream defines the capability interfaces shared by every
// sequential data source and sink in this module — in-memory adaptors
// (package pipeline), the MPSC channel, and the netio backends all
// implement some subset of them. A stream value advertises whichever
// capabilities it has; callers that want the buffered fast path type-assert
// for it and fall back to the single-item loop via RecvN/SendN when it is
// absent, mirroring the original runtime's capability-trait composition.
package stream

import "context"

// Readable yields an ordered sequence of T. Recv returns ok == false to
// signal end-of-stream; once it has done so, every subsequent call must
// return ok == false again.
type Readable[T any] interface {
	Recv(ctx context.Context) (value T, ok bool, err error)
}

// BufferedReadable additionally fills a caller-supplied slice in one call.
// RecvBuffered returns the number of items written into buf; 0 means
// end-of-stream.
type BufferedReadable[T any] interface {
	Readable[T]
	RecvBuffered(ctx context.Context, buf []T) (n int, err error)
}

// Writable accepts items one at a time. Send returns accepted == false when
// the sink has been closed rather than as an error, since rejection on a
// closed sink is an expected, non-exceptional outcome.
type Writable[T any] interface {
	Send(ctx context.Context, value T) (accepted bool, err error)
}

// BufferedWritable additionally accepts a whole slice in one call, returning
// how many of its items were accepted before the sink stopped taking more.
type BufferedWritable[T any] interface {
	Writable[T]
	SendBuffered(ctx context.Context, values []T) (n int, err error)
}

// Closeable exposes an idempotent close. Calling Close more than once must
// not return an error.
type Closeable interface {
	Close(ctx context.Context) error
}

// RecvN fills buf from r, one item at a time if r is not a BufferedReadable,
// stopping at the first short result or end-of-stream. It is the "buffered
// fallback" default for streams that only advertise the single-item form.
func RecvN[T any](ctx context.Context, r Readable[T], buf []T) (int, error) {
	if br, ok := r.(BufferedReadable[T]); ok {
		return br.RecvBuffered(ctx, buf)
	}

	for i := range buf {
		v, ok, err := r.Recv(ctx)
		if err != nil {
			return i, err
		}
		if !ok {
			return i, nil
		}
		buf[i] = v
	}

	return len(buf), nil
}

// SendN sends every item in values to w, one at a time if w is not a
// BufferedWritable, stopping at the first rejection or error.
func SendN[T any](ctx context.Context, w Writable[T], values []T) (int, error) {
	if bw, ok := w.(BufferedWritable[T]); ok {
		return bw.SendBuffered(ctx, values)
	}

	for i, v := range values {
		accepted, err := w.Send(ctx, v)
		if err != nil {
			return i, err
		}
		if !accepted {
			return i, nil
		}
	}

	return len(values), nil
}
