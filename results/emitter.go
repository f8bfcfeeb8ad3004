// Package results provides an Emitter implementation, plus a Result[T]
// wrapper pairing a value with the error that may have displaced it; the
// generator package publishes its values as Result[T].
package results

import (
	"context"
	"sync"

	"github.com/webcraft-project/async-core/api/types"
)

// NewEmitter creates a new [types.Emitter] and is used to emit results from a
// generator or a MultiResultTask.
func NewEmitter[T any](results chan<- T) types.Emitter[T] {
	return &emitter[T]{results: results, closeOnce: &sync.Once{}}
}

// emitter implements [types.Emitter].
type emitter[T any] struct {
	results   chan<- T
	closeOnce *sync.Once
}

// Emit implements [types.Emitter.Emit].
// It emits a result to the results channel.
// If the [context.Context] is canceled, it returns an error.
func (e *emitter[T]) Emit(ctx context.Context, value T) error {
	// The `select` statement is non-deterministic, and may still emit a result even if the context has been canceled
	// before Emit is called.
	if err := context.Cause(ctx); err != nil {
		//nolint:wrapcheck
		return err
	}

	select {
	case <-ctx.Done():
		//nolint:wrapcheck
		return context.Cause(ctx)
	case e.results <- value:
		return nil
	}
}

// Close implements [types.Emitter.Close].
// It closes the underlying results channel.
func (e *emitter[T]) Close() {
	e.closeOnce.Do(e.closeResults)
}

// closeResults closes the results channel without synchronizing with [emitter.closeOnce].
func (e *emitter[T]) closeResults() {
	close(e.results)
}

// value implements [types.Result] for a successful outcome.
type value[T any] struct {
	v T
}

func (r value[T]) Get() (T, error) { return r.v, nil }

// failure implements [types.Result] for a failed outcome.
type failure[T any] struct {
	err error
}

func (r failure[T]) Get() (T, error) {
	var zero T
	return zero, r.err
}

// Value wraps a successful value as a [types.Result].
func Value[T any](v T) types.Result[T] { return value[T]{v: v} }

// Failure wraps an error as a [types.Result].
func Failure[T any](err error) types.Result[T] { return failure[T]{err: err} }
