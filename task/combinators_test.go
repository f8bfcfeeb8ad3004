package task

import (
	"context"
	"errors"
	"testing"
)

func TestWhenAllSliceOrderAndFirstError(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")

	tasks := []*Task[int]{
		Run(context.Background(), func(ctx context.Context) (int, error) { return 1, nil }),
		Run(context.Background(), func(ctx context.Context) (int, error) { return 0, errA }),
		Run(context.Background(), func(ctx context.Context) (int, error) { return 0, errB }),
	}

	values, err := WhenAllSlice(context.Background(), tasks)
	if !errors.Is(err, errA) {
		t.Fatalf("expected first error (errA), got %v", err)
	}
	if values[0] != 1 {
		t.Fatalf("expected successful result preserved, got %d", values[0])
	}
}

func TestWhenAllSucceeds(t *testing.T) {
	tasks := []*Task[struct{}]{
		Run(context.Background(), func(ctx context.Context) (struct{}, error) { return struct{}{}, nil }),
		Run(context.Background(), func(ctx context.Context) (struct{}, error) { return struct{}{}, nil }),
	}

	if err := WhenAll(context.Background(), tasks...); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWhenAnyReturnsFirstWinner(t *testing.T) {
	slow := make(chan struct{})
	defer close(slow)

	tasks := []*Task[int]{
		Run(context.Background(), func(ctx context.Context) (int, error) { return 99, nil }),
		Run(context.Background(), func(ctx context.Context) (int, error) {
			<-slow
			return 1, nil
		}),
	}

	v, err := WhenAny(context.Background(), tasks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 99 {
		t.Fatalf("expected the fast task to win, got %d", v)
	}
}

func TestWhenAllSettledPreservesEveryOutcome(t *testing.T) {
	boom := errors.New("boom")
	tasks := []*Task[int]{
		Run(context.Background(), func(ctx context.Context) (int, error) { return 1, nil }),
		Run(context.Background(), func(ctx context.Context) (int, error) { return 0, boom }),
	}

	outcomes := WhenAllSettled(context.Background(), tasks)
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	if outcomes[0].Failed || outcomes[0].Value != 1 {
		t.Fatalf("unexpected first outcome: %+v", outcomes[0])
	}
	if !outcomes[1].Failed || !errors.Is(outcomes[1].Err, boom) {
		t.Fatalf("unexpected second outcome: %+v", outcomes[1])
	}
}
