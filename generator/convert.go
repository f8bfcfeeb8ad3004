package generator

import (
	"context"

	"github.com/webcraft-project/async-core/stream"
)

// FromStream adapts a stream.Readable into an Async generator, pulling
// exactly as many items from s as the generator's consumer asks for.
func FromStream[T any](s stream.Readable[T]) *Async[T] {
	return NewAsync[T](func(ctx context.Context, yield func(T) bool) error {
		for {
			v, ok, err := s.Recv(ctx)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			if !yield(v) {
				return nil
			}
		}
	})
}

// ToStream adapts an Async generator into a stream.Readable, driving Begin
// on the first Recv call and Next thereafter.
func ToStream[T any](g *Async[T]) stream.Readable[T] {
	return &asyncStream[T]{g: g}
}

type asyncStream[T any] struct {
	g     *Async[T]
	begun bool
}

func (a *asyncStream[T]) Recv(ctx context.Context) (T, bool, error) {
	var (
		ok  bool
		err error
	)

	if !a.begun {
		a.begun = true
		ok, err = a.g.Begin(ctx)
	} else {
		ok, err = a.g.Next(ctx)
	}

	if err != nil {
		var zero T
		return zero, false, err
	}
	if !ok {
		var zero T
		return zero, false, nil
	}

	return a.g.Value(), true, nil
}
