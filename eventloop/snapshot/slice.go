package snapshot

import "github.com/webcraft-project/async-core/api/types"

// NewSlice returns a new [types.StateSnapshot] backed by a plain Go slice,
// copied shallowly on every State/Next call. Reference-typed elements are
// still shared across snapshots even though the backing array is not.
func NewSlice[T any](initialState []T) types.StateSnapshot[[]T] {
	return &sliceSnapshot[T]{
		abstract: newAbstract(),
		state:    CopySlice[T](initialState),
	}
}

// NewEmptySlice returns a new [types.StateSnapshot] with an empty slice.
// It is equivalent to calling [NewSlice] with an empty slice.
func NewEmptySlice[T any]() types.StateSnapshot[[]T] {
	return NewSlice[T](make([]T, 0))
}

// sliceSnapshot implements [types.StateSnapshot] for a slice.
type sliceSnapshot[T any] struct {
	*abstract
	state []T
}

// State implements [types.StateSnapshot.State].
func (s *sliceSnapshot[T]) State() []T {
	return CopySlice(s.state)
}

// Next implements [types.StateSnapshot.Next].
func (s *sliceSnapshot[T]) Next(state []T) types.StateSnapshot[[]T] {
	cpy := CopyPtr(s)
	cpy.abstract = s.abstract.Next()
	cpy.state = CopySlice(state)

	return cpy
}
