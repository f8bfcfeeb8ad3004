// Package task provides eagerly-started asynchronous work items (Task[T])
// whose result can be awaited any number of times, a one-shot producer side (CompletionSource[T]), and
// the combinators used to join several tasks (WhenAll, WhenAny). It is the
// Go analogue of the original runtime's `task<T>`/`task_promise<T>`
// coroutine machinery: a goroutine started at construction stands in for the
// suspend-never coroutine frame, and a done channel closed on completion
// stands in for the promise's continuation slot.
package task

import (
	"context"
	"fmt"

	"github.com/webcraft-project/async-core/asyncerrors"
)

// Task represents a unit of asynchronous work that was started the moment it
// was created. Its result is produced exactly once and may be observed any
// number of times through Await.
type Task[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Run launches fn in a new goroutine immediately and returns a handle to its
// eventual result. A panic inside fn is recovered and reported as the task's
// error rather than crashing the process, since unlike the coroutine this
// replaces, a goroutine panic cannot be left for an unwinding caller to
// catch.
func Run[T any](ctx context.Context, fn func(context.Context) (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}

	go func() {
		defer close(t.done)
		defer func() {
			if r := recover(); r != nil {
				t.err = fmt.Errorf("task panic: %v", r)
			}
		}()

		t.value, t.err = fn(ctx)
	}()

	return t
}

// Await blocks until the task has a result or ctx is done, whichever happens
// first. Calling Await again after the task has completed returns the same
// value and error immediately.
func (t *Task[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.value, t.err
	case <-ctx.Done():
		var zero T
		//nolint:wrapcheck
		return zero, context.Cause(ctx)
	}
}

// Done reports whether the task has produced its result.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// SyncWait runs fn to completion and blocks the calling goroutine until it
// finishes, for use from non-async call sites that have no other task to
// suspend into. It is equivalent to Run followed by an unconditional Await.
func SyncWait[T any](fn func(context.Context) (T, error)) (T, error) {
	return Run(context.Background(), fn).Await(context.Background())
}

// FireAndForget detaches fn: it runs to completion in the background and any
// error it returns is absorbed rather than propagated, since there is no
// awaiting caller to receive it. A non-nil onUnhandled is invoked with the
// absorbed error; pass nil to silently discard it.
func FireAndForget(ctx context.Context, fn func(context.Context) error, onUnhandled func(error)) {
	go func() {
		defer func() {
			if r := recover(); r != nil && onUnhandled != nil {
				onUnhandled(fmt.Errorf("fire-and-forget panic: %v", r))
			}
		}()

		if err := fn(ctx); err != nil && onUnhandled != nil {
			onUnhandled(err)
		}
	}()
}

// CompletionSource is the producer side of a Task[T] that is not itself
// backed by a running function: something else (an I/O completion, a
// channel receive) decides when and how the task finishes.
type CompletionSource[T any] struct {
	task *Task[T]
	set  chan struct{}
}

// NewCompletionSource creates a CompletionSource whose Task is already
// running (in the sense of being awaitable) but has not yet produced a
// value.
func NewCompletionSource[T any]() *CompletionSource[T] {
	return &CompletionSource[T]{
		task: &Task[T]{done: make(chan struct{})},
		set:  make(chan struct{}, 1),
	}
}

// Task returns the Task backed by this source. It may be called any number
// of times; each call returns the same instance.
func (cs *CompletionSource[T]) Task() *Task[T] {
	return cs.task
}

// SetValue completes the task successfully. A second call to SetValue or
// SetError returns asyncerrors.StateError without affecting the task's
// already-observed result.
func (cs *CompletionSource[T]) SetValue(value T) error {
	select {
	case cs.set <- struct{}{}:
	default:
		return &asyncerrors.StateError{Msg: "completion source already set"}
	}

	cs.task.value = value
	close(cs.task.done)

	return nil
}

// SetError completes the task with a failure. See SetValue for the
// double-complete contract.
func (cs *CompletionSource[T]) SetError(err error) error {
	select {
	case cs.set <- struct{}{}:
	default:
		return &asyncerrors.StateError{Msg: "completion source already set"}
	}

	cs.task.err = err
	close(cs.task.done)

	return nil
}
