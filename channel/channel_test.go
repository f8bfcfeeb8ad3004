package channel

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestSendThenRecvFIFO(t *testing.T) {
	ctx := context.Background()
	rx, tx := New[int](0)

	if err := tx.Send(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tx.Send(ctx, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, ok, err := rx.Recv(ctx)
	if err != nil || !ok || v != 1 {
		t.Fatalf("unexpected first recv: %d, %v, %v", v, ok, err)
	}
	v, ok, err = rx.Recv(ctx)
	if err != nil || !ok || v != 2 {
		t.Fatalf("unexpected second recv: %d, %v, %v", v, ok, err)
	}
}

func TestRecvBlocksUntilSend(t *testing.T) {
	ctx := context.Background()
	rx, tx := New[int](0)

	type result struct {
		v   int
		ok  bool
		err error
	}
	done := make(chan result, 1)

	go func() {
		v, ok, err := rx.Recv(ctx)
		done <- result{v, ok, err}
	}()

	time.Sleep(10 * time.Millisecond)
	if err := tx.Send(ctx, 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case r := <-done:
		if r.err != nil || !r.ok || r.v != 42 {
			t.Fatalf("unexpected result: %+v", r)
		}
	case <-time.After(time.Second):
		t.Fatal("Recv never returned")
	}
}

func TestCloseDrainsThenEOF(t *testing.T) {
	ctx := context.Background()
	rx, tx := New[int](0)

	if err := tx.Send(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tx.Close()

	v, ok, err := rx.Recv(ctx)
	if err != nil || !ok || v != 1 {
		t.Fatalf("expected queued item before EOF, got %d, %v, %v", v, ok, err)
	}

	_, ok, err = rx.Recv(ctx)
	if err != nil || ok {
		t.Fatalf("expected EOF, got ok=%v err=%v", ok, err)
	}
	// EOF is stable.
	_, ok, err = rx.Recv(ctx)
	if err != nil || ok {
		t.Fatalf("expected stable EOF, got ok=%v err=%v", ok, err)
	}
}

func TestCloseWakesWaitingReceiver(t *testing.T) {
	ctx := context.Background()
	rx, tx := New[int](0)

	done := make(chan bool, 1)
	go func() {
		_, ok, _ := rx.Recv(ctx)
		done <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	tx.Close()

	select {
	case ok := <-done:
		if ok {
			t.Fatal("expected EOF after close with no items")
		}
	case <-time.After(time.Second):
		t.Fatal("Recv never woke on close")
	}
}

func TestSendAfterReceiverDropFails(t *testing.T) {
	ctx := context.Background()
	rx, tx := New[int](0)
	rx.Drop()

	if err := tx.Send(ctx, 1); err == nil {
		t.Fatal("expected error after receiver drop")
	}
}

func TestSendAfterCloseFails(t *testing.T) {
	ctx := context.Background()
	_, tx := New[int](0)
	tx.Close()

	if err := tx.Send(ctx, 1); err == nil {
		t.Fatal("expected error after close")
	}
}

func TestMultipleProducersSerialize(t *testing.T) {
	ctx := context.Background()
	rx, tx := New[int](0)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			if err := tx.Send(ctx, v); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()
	tx.Close()

	count := 0
	for {
		_, ok, err := rx.Recv(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			break
		}
		count++
	}

	if count != n {
		t.Fatalf("expected %d items, got %d", n, count)
	}
}

func TestRecvCancelledContext(t *testing.T) {
	rx, _ := New[int](0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok, err := rx.Recv(ctx)
	if ok || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got ok=%v err=%v", ok, err)
	}
}
