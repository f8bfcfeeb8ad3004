// Package channel implements a multi-producer, single-consumer channel:
// FIFO per producer, with three logical states — live, closed-empty (the
// last producer closed the channel but items remain queued), and
// closed-drained (no more items will ever arrive). It is grounded directly
// in the original runtime's io/core.hpp mpsc_channel_subscription: multiple
// producers serialize at the tail through a mutex-guarded ring buffer
// (internal/ring), and a receiver that finds the queue empty installs a
// single continuation slot that the next producer fulfills directly,
// bypassing the queue entirely.
package channel

import (
	"context"
	"sync"

	"github.com/webcraft-project/async-core/asyncerrors"
	"github.com/webcraft-project/async-core/internal/ring"
)

type state[T any] struct {
	mu       sync.Mutex
	buf      *ring.Buffer[T]
	slot     chan T
	closed   bool
	recvGone bool
}

// Sender is the producer half of a channel. It may be copied and used
// concurrently from multiple goroutines.
type Sender[T any] struct {
	s *state[T]
}

// Receiver is the single-consumer half of a channel.
type Receiver[T any] struct {
	s *state[T]
}

// New creates a channel and returns its receiver and sender halves. buffer
// is not used: the internal queue is unbounded and grows as needed, so Send
// never blocks or fails due to capacity — only a dropped receiver or a
// closed channel causes it to fail.
func New[T any](buffer int) (Receiver[T], Sender[T]) {
	s := &state[T]{buf: ring.New[T](0)}
	_ = buffer // capacity hint only; the channel never applies backpressure

	return Receiver[T]{s: s}, Sender[T]{s: s}
}

// Send delivers v to the receiver, either directly (if the receiver is
// currently waiting) or by enqueueing it. It fails with
// asyncerrors.StateError if the receiver has been dropped or the channel has
// been closed.
func (s Sender[T]) Send(ctx context.Context, v T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	st := s.s
	st.mu.Lock()

	if st.recvGone {
		st.mu.Unlock()
		return &asyncerrors.StateError{Msg: "send on channel with no receiver"}
	}
	if st.closed {
		st.mu.Unlock()
		return &asyncerrors.StateError{Msg: "send on closed channel"}
	}

	if st.slot != nil {
		slot := st.slot
		st.slot = nil
		st.mu.Unlock()
		slot <- v

		return nil
	}

	st.buf.Push(v)
	st.mu.Unlock()

	return nil
}

// Close marks the channel closed: no further sends will succeed. Items
// already queued are still delivered to the receiver before it observes
// end-of-stream. Close is idempotent.
func (s Sender[T]) Close() {
	st := s.s
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.closed {
		return
	}
	st.closed = true

	if st.slot != nil {
		close(st.slot)
		st.slot = nil
	}
}

// Recv returns the next item in FIFO order, blocking until one is sent,
// the channel is closed and drained, or ctx is done. ok is false exactly
// once a closed channel has been fully drained, and remains false on every
// subsequent call.
func (r Receiver[T]) Recv(ctx context.Context) (value T, ok bool, err error) {
	st := r.s

	st.mu.Lock()
	if v, has := st.buf.Pop(); has {
		st.mu.Unlock()
		return v, true, nil
	}
	if st.closed {
		st.mu.Unlock()
		var zero T
		return zero, false, nil
	}

	slot := make(chan T, 1)
	st.slot = slot
	st.mu.Unlock()

	select {
	case v, open := <-slot:
		if !open {
			var zero T
			return zero, false, nil
		}
		return v, true, nil
	case <-ctx.Done():
		st.mu.Lock()
		if st.slot == slot {
			st.slot = nil
		}
		st.mu.Unlock()

		var zero T
		//nolint:wrapcheck
		return zero, false, context.Cause(ctx)
	}
}

// Drop signals that the receiver is gone; any further Send fails with
// asyncerrors.StateError.
func (r Receiver[T]) Drop() {
	st := r.s
	st.mu.Lock()
	defer st.mu.Unlock()
	st.recvGone = true
}
