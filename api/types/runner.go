package types

import "context"

// Runner is a unit of work that produces a stream of T by pushing into an
// Emitter, rather than by returning a value directly. It is the common shape
// underneath both Generator and Pool tasks.
type Runner[T any] interface {
	// Run executes until ctx is cancelled, the work is exhausted, or the
	// Emitter rejects a value, and returns the terminal error, if any.
	Run(ctx context.Context, emit Emitter[T]) error
}
