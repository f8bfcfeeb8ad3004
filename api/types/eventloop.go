package types

import "context"

// GenerationID is a monotonically increasing ID that identifies the state of
// an EventLoop at a given point in time.
type GenerationID uint64

// EventLoop dispatches Event instances one at a time, in order.
//
// Send does not wait for the event to be processed; it returns as soon as the
// event is enqueued, along with the GenerationID the resulting StateSnapshot
// will carry.
type EventLoop[StateT any] interface {
	// Start initializes the event loop and prepares it for event submission.
	Start()

	// Close stops accepting events and waits for all queued events to finish.
	// It is safe to call Close multiple times, or before Start.
	Close()

	// Done returns a channel that is closed once the loop is closed and
	// drained.
	Done() <-chan struct{}

	// Send enqueues ev for processing, returning the GenerationID that will be
	// visible once it has run.
	Send(ctx context.Context, ev Event[StateT]) (GenerationID, error)

	// Snapshot returns the most recently published StateSnapshot.
	Snapshot() StateSnapshot[StateT]
}

// Event is a unit of work dispatched by an EventLoop.
type Event[StateT any] interface {
	// Dispatch is invoked with the GenerationID the resulting state will
	// carry and the current state, and returns the state the resulting
	// snapshot should carry.
	Dispatch(gen GenerationID, state StateT) StateT
}

// EventFunc is a function-shaped [Event], passed to EventFromFunc.
type EventFunc[StateT any] func(gen GenerationID, state StateT) StateT

// StateSnapshot is an immutable view of an EventLoop's state at a given
// generation.
type StateSnapshot[StateT any] interface {
	// State returns the state as of this snapshot.
	State() StateT

	// Generation returns this snapshot's GenerationID.
	Generation() GenerationID

	// Expiration is closed as soon as a newer generation is published.
	Expiration() <-chan struct{}

	// Next derives the following snapshot, carrying a new state value and an
	// incremented generation.
	Next(state StateT) StateSnapshot[StateT]

	// Expire closes the Expiration channel. Idempotent.
	Expire()
}
