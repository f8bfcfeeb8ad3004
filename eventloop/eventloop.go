package eventloop

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/webcraft-project/async-core/api/types"
	"github.com/webcraft-project/async-core/asyncerrors"
	"github.com/webcraft-project/async-core/internal/chanlock"
)

// NewBuffered creates (but does not start) a basic implementation of [types.EventLoop].
//
// # Parameters
//
//   - initialSnapshot: A [types.StateSnapshot] that will be used as the initial state of the event loop.
//   - buffer: The size of the event queue. This is the number of events that can be queued before blocking on
//     publication.
//
// # State
//
// The event loop is designed to be used with a shared state, which is passed to each event when it is dispatched.
// At each event execution, the event loop will make a shallow copy of the state and pass it to the event.
// The event can then modify the state or return a new state, and the changes will be persisted to the snapshot after
// the event is finished and will be visible to future events.
//
// Use [github.com/webcraft-project/async-core/eventloop/snapshot.NewValue],
// [github.com/webcraft-project/async-core/eventloop/snapshot.NewMap],
// [github.com/webcraft-project/async-core/eventloop/snapshot.NewSlice],
// or [github.com/webcraft-project/async-core/eventloop/snapshot.NewCopyable] to create the initial state snapshot.
//
// # Generation
//
// Each state snapshot will be assigned a unique monotonically increasing generation ID, starting at 0.
// This generation ID is incremented each time after an event is processed in the event loop, and the new snapshot is
// available.
// When submitting an event, the [types.GenerationID] that will be assigned to the state snapshot after the event is
// processed is returned.
//
// # Snapshot
//
// The [types.EventLoop.Snapshot] method will return a [types.StateSnapshot], allowing access to:
//
//   - A copy of the state at the time of the snapshot.
//   - The generation ID of the snapshot.
//   - A channel that is closed when the state is no longer valid (as soon as the next event is processed).
//
// # Starting and stopping the Event Loop
//
// The [types.EventLoop.Start] method must be called to start the event loop.
// It may be called after the [types.EventLoop.Close] or [types.EventLoop.Send] methods have been called.
// It is recommended to defer the call to [types.EventLoop.Close] immediately after creating the event loop to avoid
// leaking the goroutine used to process events and any references it may prevent from being garbage collected.
func NewBuffered[StateT any](initialSnapshot types.StateSnapshot[StateT], buffer uint) types.EventLoop[StateT] {
	snapshotPtr := &atomic.Pointer[types.StateSnapshot[StateT]]{}
	snapshotPtr.Store(&initialSnapshot)

	return &eventLoop[StateT]{
		done:   make(chan struct{}),
		closed: make(chan struct{}),

		events: make(chan *eventWrapper[StateT], buffer),

		generation:     initialSnapshot.Generation(),
		generationLock: chanlock.NewChannelLock(),

		snapshotPtr: snapshotPtr,
	}
}

// New creates (but does not start) a basic implementation of [types.EventLoop].
// It is equivalent to calling [NewBuffered] with a buffer size of 0.
// If you would like to use a buffer size, use [NewBuffered] instead.
func New[StateT any](initialSnapshot types.StateSnapshot[StateT]) types.EventLoop[StateT] {
	return NewBuffered(initialSnapshot, 0)
}

// eventLoop is an implementation of [types.EventLoop], backed by a single
// dedicated goroutine so that events always run one at a time, in the order
// they were sent.
type eventLoop[StateT any] struct {
	done      chan struct{}
	closeOnce sync.Once
	closed    chan struct{} // closed once the dispatch goroutine has exited

	startOnce sync.Once
	events    chan *eventWrapper[StateT]

	generation     types.GenerationID
	generationLock *chanlock.ChannelLock

	snapshotPtr *atomic.Pointer[types.StateSnapshot[StateT]]
}

// Start implements [types.EventLoop.Start].
func (l *eventLoop[StateT]) Start() {
	l.startOnce.Do(func() {
		go l.dispatch()
	})
}

// dispatch drains l.events until it is closed, running each event to
// completion and publishing the resulting snapshot before the next one is
// dequeued.
func (l *eventLoop[StateT]) dispatch() {
	defer close(l.closed)

	for eventTask := range l.events {
		snapshot := *l.snapshotPtr.Load()
		// Close the previous snapshot's expiration channel once the new one is published.
		state := eventTask.event.Dispatch(snapshot.Generation()+1, snapshot.State())
		nextSnapshot := snapshot.Next(state)
		l.snapshotPtr.Store(&nextSnapshot)
		snapshot.Expire()
	}
}

// Close implements [types.EventLoop.Close].
func (l *eventLoop[StateT]) Close() {
	l.closeOnce.Do(func() {
		close(l.events)
		// Start may never have been called; the dispatch goroutine only
		// exists once it has, in which case l.closed unblocks immediately
		// since l.events is already closed and empty or will be drained.
		l.startOnce.Do(func() { close(l.closed) })
		<-l.closed
		close(l.done)
	})
}

// Done implements [types.EventLoop.Done].
func (l *eventLoop[StateT]) Done() <-chan struct{} {
	return l.done
}

// Send implements [types.EventLoop.Send].
func (l *eventLoop[StateT]) Send(ctx context.Context, event types.Event[StateT]) (types.GenerationID, error) {
	// select is not deterministic, and may still send tasks even if the context has been canceled.
	if err := context.Cause(ctx); err != nil {
		//nolint:wrapcheck
		return 0, err
	}

	eventTask := &eventWrapper[StateT]{
		event: event,
	}

	// Obtain the lock to ensure that the generation ID is incremented once for each event and that the order of events is
	// aligned with the order of generation IDs.
	if err := l.generationLock.LockWithContext(ctx); err != nil {
		//nolint:wrapcheck
		return 0, err
	}
	defer l.generationLock.Unlock()

	select {
	case <-ctx.Done():
		//nolint:wrapcheck
		return 0, context.Cause(ctx)
	case <-l.done:
		return 0, asyncerrors.EventLoopClosed
	case l.events <- eventTask:
		l.generation++ // increment the generation ID only if the event task is successfully submitted.

		return l.generation, nil
	}
}

// Snapshot implements [types.EventLoop.Snapshot].
func (l *eventLoop[StateT]) Snapshot() types.StateSnapshot[StateT] {
	return *l.snapshotPtr.Load()
}

// eventWrapper carries a [types.Event] through the dispatch channel.
type eventWrapper[StateT any] struct {
	event types.Event[StateT]
}
