package types

import "context"

// Pool is a bounded pool of workers sharing a single PoolResourceT, which is
// passed to every task they execute. Submit enqueues work; Start and Close
// control the pool's lifetime.
type Pool[PoolResourceT any] interface {
	// Start launches the pool's workers. It must not be called more than
	// once.
	Start()

	// Close stops accepting new work and waits for in-flight tasks to
	// finish. It is safe to call Close before Start.
	Close()

	// Submit enqueues task for execution, blocking until it is accepted or
	// ctx is done. Once the pool is closing, Submit returns
	// asyncerrors.ShutdownError.
	Submit(ctx context.Context, task ValuelessTask[PoolResourceT]) error
}

// Task produces a single ValueT using the pool's shared resource.
type Task[PoolResourceT any, ValueT any] interface {
	Execute(ctx context.Context, resource PoolResourceT) (ValueT, error)
}

// MultiResultTask produces zero or more ValueT, pushing each into the
// supplied Emitter as it becomes available.
type MultiResultTask[PoolResourceT any, ValueT any] interface {
	Execute(ctx context.Context, resource PoolResourceT, emit Emitter[ValueT]) error
}

// ValuelessTask is executed purely for its side effects. Pool.Submit accepts
// only this shape.
type ValuelessTask[PoolResourceT any] interface {
	Execute(ctx context.Context, resource PoolResourceT)
}

// TaskFunc is a ValuelessTask-shaped plain function, for one-off submissions
// that don't warrant a named type.
type TaskFunc[PoolResourceT any] func(ctx context.Context, resource PoolResourceT)

// TaskResult is the consumer-facing handle returned when a Task or
// MultiResultTask is submitted to a Pool.
type TaskResult[ValueT any] interface {
	// Results returns the channel of produced values.
	Results() <-chan ValueT

	// Wait blocks until the task has finished producing, returning its
	// terminal error, if any.
	Wait() error
}

// TaskCallback is invoked once per value produced by a MultiResultTask
// submitted through a Submit-style helper, in place of reading from a
// channel directly.
type TaskCallback[ValueT any] func(ValueT)
