// Package generator provides two restart-free, single-pass producer
// shapes: Sync, an eagerly-driven push generator built on a
// channel-plus-goroutine pattern, and Async, a consumer-paced iterator
// protocol (Begin/Value/Next) matching a suspendable coroutine's resume
// semantics. Conversions bridge an Async generator and a stream.Readable in
// either direction.
package generator

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/webcraft-project/async-core/api/types"
	"github.com/webcraft-project/async-core/results"
)

// Sync eagerly drives produce to completion, publishing each yielded value
// as soon as it is produced and as fast as the consumer can keep up with.
// Cancelling the context passed to Start stops the underlying produce
// callback by making its yield function return false; Wait then returns the
// context's cause.
type Sync[T any] struct {
	produce func(yield func(T) bool)
	res     chan types.Result[T]
	done    chan struct{}
	err     error
	started atomic.Bool
}

// NewSync creates (but does not start) a Sync generator around produce. It
// is not restartable: Start must be called exactly once.
func NewSync[T any](produce func(yield func(T) bool)) *Sync[T] {
	return &Sync[T]{
		produce: produce,
		res:     make(chan types.Result[T]),
		done:    make(chan struct{}),
	}
}

// Start implements [types.Worker.Start].
func (g *Sync[T]) Start(ctx context.Context) {
	if g.started.Swap(true) {
		panic("attempt to start previously started generator.Sync")
	}

	go g.run(ctx)
}

func (g *Sync[T]) run(ctx context.Context) {
	defer close(g.done)
	defer close(g.res)
	defer func() {
		if r := recover(); r != nil {
			g.err = fmt.Errorf("generator panic: %v", r)
		}
	}()

	cancelled := false
	g.produce(func(v T) bool {
		select {
		case g.res <- results.Value(v):
			if ctx.Err() != nil {
				cancelled = true
				return false
			}
			return true
		case <-ctx.Done():
			cancelled = true
			return false
		}
	})
	if cancelled {
		g.err = context.Cause(ctx)
	}
}

// Wait implements [types.Worker.Wait].
func (g *Sync[T]) Wait() error {
	<-g.done
	return g.err
}

// Results implements [types.Generator.Results].
func (g *Sync[T]) Results() <-chan types.Result[T] {
	return g.res
}
