package generator

import "context"

// AsyncFunc produces values by calling yield for each one, in the same
// push shape as Sync's produce callback, except each call to yield suspends
// the producer until the consumer asks for the next value via Async.Next.
// yield returns false once the context given to Begin has been cancelled; a
// consumer that stops calling Next leaves the producer blocked in yield.
type AsyncFunc[T any] func(ctx context.Context, yield func(T) bool) error

// Async is a consumer-paced generator: Begin advances to the first value
// (if any), and Next advances past the current one, mirroring the
// begin()/operator++ iterator protocol of the runtime this module
// generalizes.
type Async[T any] struct {
	produce AsyncFunc[T]
	req     chan struct{}
	item    chan asyncItem[T]
	cur     T
	err     error
	begun   bool
	done    bool
}

type asyncItem[T any] struct {
	v   T
	err error
}

// NewAsync creates (but does not start) an Async generator around produce.
// It is not restartable: Begin must be called exactly once, before any call
// to Next.
func NewAsync[T any](produce AsyncFunc[T]) *Async[T] {
	return &Async[T]{
		produce: produce,
		req:     make(chan struct{}),
		item:    make(chan asyncItem[T]),
	}
}

// Begin starts the generator and advances to its first value. It returns
// true if a value is available (retrievable via Value), or false at
// end-of-sequence or on error.
func (a *Async[T]) Begin(ctx context.Context) (bool, error) {
	if a.begun {
		panic("Begin called more than once on generator.Async")
	}
	a.begun = true

	go a.run(ctx)

	return a.advance(ctx)
}

// Value returns the current value. It is only meaningful after Begin or
// Next has returned true.
func (a *Async[T]) Value() T {
	return a.cur
}

// Next advances to the following value, returning true if one is available.
// Calling Next before Begin, or after either has returned false, is a
// programmer error.
func (a *Async[T]) Next(ctx context.Context) (bool, error) {
	if a.done {
		return false, nil
	}

	select {
	case a.req <- struct{}{}:
	case <-ctx.Done():
		a.done = true
		//nolint:wrapcheck
		return false, context.Cause(ctx)
	}

	return a.advance(ctx)
}

func (a *Async[T]) advance(ctx context.Context) (bool, error) {
	select {
	case it, open := <-a.item:
		if !open {
			a.done = true
			return false, nil
		}
		if it.err != nil {
			a.done = true
			a.err = it.err
			return false, it.err
		}
		a.cur = it.v
		return true, nil
	case <-ctx.Done():
		a.done = true
		//nolint:wrapcheck
		return false, context.Cause(ctx)
	}
}

// run drives produce in the background, handing each yielded value to the
// consumer one at a time and waiting for a request before producing the
// next.
func (a *Async[T]) run(ctx context.Context) {
	defer close(a.item)

	err := a.produce(ctx, func(v T) bool {
		select {
		case a.item <- asyncItem[T]{v: v}:
		case <-ctx.Done():
			return false
		}

		select {
		case <-a.req:
			return true
		case <-ctx.Done():
			return false
		}
	})

	if err != nil {
		select {
		case a.item <- asyncItem[T]{err: err}:
		case <-ctx.Done():
		}
	}
}
