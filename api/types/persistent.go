package types

// Copyable is implemented by state wrapped in a snapshot.NewCopyable
// StateSnapshot. What Copy actually does depends on the wrapped state: a
// copy-on-write wrapper around an immutable.Map can just hand back another
// reference to itself, while a mutable struct needs an actual field-by-field
// copy. A nil receiver's Copy should return nil.
type Copyable[T any] interface {
	Copy() T
}

// Value constrains the primitive, pass-by-value types snapshot.NewValue and
// snapshot.NewZeroValue accept: no pointers, slices, maps, channels,
// functions, or structs, since those can alias state across snapshots.
type Value interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uintptr |
		~float32 | ~float64 |
		~complex64 | ~complex128 |
		~bool | ~string
}
