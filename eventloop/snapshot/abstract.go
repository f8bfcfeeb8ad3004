package snapshot

import (
	"sync"

	"github.com/webcraft-project/async-core/api/types"
)

// abstract carries the bookkeeping every [types.StateSnapshot] needs
// regardless of how its State is represented: a generation counter and an
// expiration channel closed once a newer snapshot replaces it.
type abstract struct {
	gen        types.GenerationID
	expiration chan struct{}
	expireOnce *sync.Once
}

func newAbstract() *abstract {
	return &abstract{
		expiration: make(chan struct{}),
		expireOnce: &sync.Once{},
	}
}

// Next derives the successor snapshot's bookkeeping: the generation
// advances by one and a fresh expiration channel is allocated. The old
// expiration channel is left to the caller to close once the new snapshot
// is actually published.
func (s *abstract) Next() *abstract {
	cpy := CopyPtr(s)
	cpy.expiration = make(chan struct{})
	cpy.expireOnce = &sync.Once{}
	cpy.gen = s.gen + 1

	return cpy
}

// Generation implements [types.StateSnapshot.Generation].
func (s *abstract) Generation() types.GenerationID {
	return s.gen
}

// Expiration implements [types.StateSnapshot.Expiration].
func (s *abstract) Expiration() <-chan struct{} {
	return s.expiration
}

// Expire implements [types.StateSnapshot.Expire].
func (s *abstract) Expire() {
	s.expireOnce.Do(s.expire)
}

// expire closes the expiration channel.
func (s *abstract) expire() {
	close(s.expiration)
}
