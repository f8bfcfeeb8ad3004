package task

import (
	"context"
	"sync/atomic"
)

// WhenAllSlice awaits every task in tasks, in input order, regardless of
// whether earlier ones failed. It returns the results in the same order as
// tasks and the first error encountered by iteration order; later errors are
// swallowed. This collapses a set of independent failures down to one, which
// loses information in exchange for a single simple error return — callers
// that need every failure should Await each task themselves.
func WhenAllSlice[T any](ctx context.Context, tasks []*Task[T]) ([]T, error) {
	values := make([]T, len(tasks))

	var firstErr error
	for i, t := range tasks {
		v, err := t.Await(ctx)
		values[i] = v
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return values, firstErr
}

// WhenAll awaits every void-shaped task in tasks, returning the first error
// encountered by iteration order, or nil if all succeeded.
func WhenAll(ctx context.Context, tasks ...*Task[struct{}]) error {
	_, err := WhenAllSlice(ctx, tasks)
	return err
}

// WhenAny awaits the first task in tasks to complete and returns its result.
// The remaining tasks are not cancelled; they keep running to completion in
// the background, but their results can no longer overwrite the winner once
// one has been chosen.
func WhenAny[T any](ctx context.Context, tasks []*Task[T]) (T, error) {
	type outcome struct {
		value T
		err   error
	}

	winner := make(chan outcome, 1)
	var claimed atomic.Bool

	for _, t := range tasks {
		t := t
		go func() {
			v, err := t.Await(ctx)
			if claimed.CompareAndSwap(false, true) {
				winner <- outcome{value: v, err: err}
			}
		}()
	}

	select {
	case o := <-winner:
		return o.value, o.err
	case <-ctx.Done():
		var zero T
		//nolint:wrapcheck
		return zero, context.Cause(ctx)
	}
}

// Outcome is the settled result of a single task as produced by
// WhenAllSettled: exactly one of Value/Err is meaningful, distinguished by
// Failed.
type Outcome[T any] struct {
	Value  T
	Err    error
	Failed bool
}

// WhenAllSettled awaits every task in tasks and returns the outcome of each,
// in input order, never short-circuiting on failure. It is the
// information-preserving counterpart to WhenAllSlice's first-error-wins
// collapse.
func WhenAllSettled[T any](ctx context.Context, tasks []*Task[T]) []Outcome[T] {
	outcomes := make([]Outcome[T], len(tasks))
	for i, t := range tasks {
		v, err := t.Await(ctx)
		outcomes[i] = Outcome[T]{Value: v, Err: err, Failed: err != nil}
	}

	return outcomes
}
