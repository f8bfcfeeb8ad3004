package snapshot

import "github.com/webcraft-project/async-core/api/types"

// NewMap returns a new [types.StateSnapshot] backed by a plain Go map,
// copied shallowly on every State/Next call. Reference-typed values are
// still shared across snapshots even though the map itself is not.
func NewMap[KeyT comparable, ValueT any](initialState map[KeyT]ValueT) types.StateSnapshot[map[KeyT]ValueT] {
	initialState = CopyMap(initialState)

	return &mapSnapshot[KeyT, ValueT]{
		abstract: newAbstract(),
		state:    initialState,
	}
}

// NewEmptyMap returns a new [types.StateSnapshot] with an empty map.
// It is equivalent to calling [NewMap] with an empty map.
func NewEmptyMap[KeyT comparable, ValueT any]() types.StateSnapshot[map[KeyT]ValueT] {
	return NewMap[KeyT, ValueT](make(map[KeyT]ValueT))
}

// mapSnapshot implements [types.StateSnapshot] for a map.
type mapSnapshot[KeyT comparable, ValueT any] struct {
	*abstract
	state map[KeyT]ValueT
}

// State implements [types.StateSnapshot.State].
func (s *mapSnapshot[KeyT, ValueT]) State() map[KeyT]ValueT {
	return CopyMap(s.state)
}

// Next implements [types.StateSnapshot.Next].
func (s *mapSnapshot[KeyT, ValueT]) Next(state map[KeyT]ValueT) types.StateSnapshot[map[KeyT]ValueT] {
	return &mapSnapshot[KeyT, ValueT]{
		abstract: s.abstract.Next(),
		state:    CopyMap(state),
	}
}
