package stream

import (
	"context"
	"testing"
)

func TestFromSliceRecvInOrder(t *testing.T) {
	r := FromSlice([]int{1, 2, 3})
	ctx := context.Background()

	for _, want := range []int{1, 2, 3} {
		v, ok, err := r.Recv(ctx)
		if err != nil || !ok || v != want {
			t.Fatalf("expected (%d, true, nil), got (%d, %v, %v)", want, v, ok, err)
		}
	}

	_, ok, err := r.Recv(ctx)
	if ok || err != nil {
		t.Fatalf("expected EOF, got ok=%v err=%v", ok, err)
	}
	// EOF is stable.
	_, ok, err = r.Recv(ctx)
	if ok || err != nil {
		t.Fatalf("expected stable EOF, got ok=%v err=%v", ok, err)
	}
}

func TestRecvNFallbackLoop(t *testing.T) {
	r := &singleItemOnly{values: []int{10, 20}}
	buf := make([]int, 3)

	n, err := RecvN(context.Background(), r, buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 || buf[0] != 10 || buf[1] != 20 {
		t.Fatalf("unexpected result: n=%d buf=%v", n, buf)
	}
}

func TestRecvNUsesBufferedFastPath(t *testing.T) {
	r := FromSlice([]int{1, 2, 3, 4})
	buf := make([]int, 2)

	n, err := RecvN(context.Background(), r, buf)
	if err != nil || n != 2 || buf[0] != 1 || buf[1] != 2 {
		t.Fatalf("unexpected result: n=%d buf=%v err=%v", n, buf, err)
	}
}

func TestToSliceAndSliceSinkRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := FromSlice([]string{"a", "b", "c"})

	sink := &SliceSink[string]{}
	for {
		v, ok, err := r.Recv(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			break
		}
		if accepted, err := sink.Send(ctx, v); err != nil || !accepted {
			t.Fatalf("send rejected: accepted=%v err=%v", accepted, err)
		}
	}

	if len(sink.Values) != 3 || sink.Values[2] != "c" {
		t.Fatalf("unexpected sink contents: %v", sink.Values)
	}
}

func TestSliceSinkRejectsAfterClose(t *testing.T) {
	ctx := context.Background()
	sink := &SliceSink[int]{}
	if err := sink.Close(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Idempotent.
	if err := sink.Close(ctx); err != nil {
		t.Fatalf("second close should be idempotent, got: %v", err)
	}

	accepted, err := sink.Send(ctx, 1)
	if err != nil || accepted {
		t.Fatalf("expected rejection after close, got accepted=%v err=%v", accepted, err)
	}
}

// singleItemOnly advertises only Readable, to exercise RecvN's fallback loop.
type singleItemOnly struct {
	values []int
	pos    int
}

func (s *singleItemOnly) Recv(ctx context.Context) (int, bool, error) {
	if s.pos >= len(s.values) {
		return 0, false, nil
	}
	v := s.values[s.pos]
	s.pos++
	return v, true, nil
}
