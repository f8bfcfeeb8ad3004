package runtime

import (
	"context"
	"sync/atomic"

	"github.com/benbjohnson/immutable"

	"github.com/webcraft-project/async-core/api/types"
	"github.com/webcraft-project/async-core/eventloop"
	"github.com/webcraft-project/async-core/eventloop/snapshot"
)

// event is a single pending submission: its id, its continuation, and
// whether it was cancelled before completion.
type event struct {
	id           uint64
	continuation func()
	cancelled    bool
}

// arenaState wraps the registry's immutable.Map so it satisfies
// types.Copyable: since the map itself is already persistent, "copying" the
// wrapper is just handing back another reference to the same value, the
// same wrap-an-immutable-structure approach snapshot.NewCopyable's doc
// comment describes.
type arenaState struct {
	table *immutable.Map[uint64, *event]
}

// Copy implements types.Copyable.
func (s *arenaState) Copy() *arenaState {
	if s == nil {
		return nil
	}

	return &arenaState{table: s.table}
}

// arena holds every in-flight event behind an eventloop.EventLoop, so a
// registration or release is sequenced by a single dispatch goroutine
// instead of a hand-rolled compare-and-swap retry loop, and is identified
// everywhere by a stable uint64 id rather than a shared pointer into mutable
// state.
type arena struct {
	next atomic.Uint64
	loop types.EventLoop[*arenaState]
}

func newArena() *arena {
	initial := snapshot.NewCopyable(&arenaState{table: immutable.NewMap[uint64, *event](nil)})
	loop := eventloop.New[*arenaState](initial)
	loop.Start()

	return &arena{loop: loop}
}

// register inserts ev under a freshly allocated id, waiting for the
// insertion to be dispatched before returning, and returns the id.
func (a *arena) register(ctx context.Context, ev *event) (uint64, error) {
	id := a.next.Add(1)
	ev.id = id

	_, err := eventloop.SendFuncAndWait(ctx, a.loop, func(_ types.GenerationID, s *arenaState) *arenaState {
		return &arenaState{table: s.table.Set(id, ev)}
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// release removes the event with the given id, if present. It does not wait
// for the removal to be dispatched: nothing downstream depends on its
// effect being visible before release returns, only on it eventually
// happening, so the caller's context is never a reason to abandon it.
func (a *arena) release(id uint64) {
	_, _ = eventloop.SendFunc(context.Background(), a.loop, func(_ types.GenerationID, s *arenaState) *arenaState {
		if _, ok := s.table.Get(id); !ok {
			return s
		}

		return &arenaState{table: s.table.Delete(id)}
	})
}

// lookup returns the event registered under id, if any, as of the most
// recently published snapshot.
func (a *arena) lookup(id uint64) (*event, bool) {
	return a.loop.Snapshot().State().table.Get(id)
}
