package types

import "context"

// Emitter is the sink half of a producer. Generators and runners push
// values into an Emitter rather than returning a channel directly.
type Emitter[T any] interface {
	// Emit delivers value to the consumer, blocking until it is accepted or
	// ctx is done. A non-nil error means the consumer is gone and the
	// producer should stop.
	Emit(ctx context.Context, value T) error

	// Close signals that no further values will be emitted.
	Close()
}
