package generator

import (
	"context"
	"reflect"
	"testing"

	"github.com/webcraft-project/async-core/stream"
)

func TestFromStreamDrivesUnderlyingReadable(t *testing.T) {
	ctx := context.Background()
	s := stream.FromSlice([]int{1, 2, 3})
	gen := FromStream[int](s)

	var got []int
	ok, err := gen.Begin(ctx)
	for ; ok; ok, err = gen.Next(ctx) {
		got = append(got, gen.Value())
	}
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("unexpected result: %v", got)
	}
}

func TestToStreamRoundTrip(t *testing.T) {
	ctx := context.Background()
	gen := NewAsync(func(ctx context.Context, yield func(int) bool) error {
		for _, v := range []int{10, 20, 30} {
			if !yield(v) {
				return nil
			}
		}
		return nil
	})

	s := ToStream[int](gen)

	got, err := stream.ToSlice(ctx, s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []int{10, 20, 30}) {
		t.Errorf("unexpected result: %v", got)
	}
}
