package database

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestMemoryTransactor_InLockedTxSerializesSameKey(t *testing.T) {
	t.Parallel()

	tx := NewMemoryTransactor()
	var inFlight, maxInFlight int32

	const workers = 8
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			err := tx.InLockedTx(context.Background(), "ingest:games", func(ctx context.Context, db Handle) error {
				current := atomic.AddInt32(&inFlight, 1)
				for {
					seen := atomic.LoadInt32(&maxInFlight)
					if current <= seen || atomic.CompareAndSwapInt32(&maxInFlight, seen, current) {
						break
					}
				}
				time.Sleep(2 * time.Millisecond)
				atomic.AddInt32(&inFlight, -1)
				return nil
			})
			if err != nil {
				t.Errorf("locked tx: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&maxInFlight); got != 1 {
		t.Fatalf("expected at most one concurrent holder, got %d", got)
	}
}

func TestMemoryTransactor_PropagatesErrorsAndCancellation(t *testing.T) {
	t.Parallel()

	tx := NewMemoryTransactor()
	sentinel := errors.New("boom")

	err := tx.InTx(context.Background(), func(ctx context.Context, db Handle) error {
		if db != nil {
			t.Fatalf("memory transactor must hand out nil handles")
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err = tx.InLockedTx(ctx, "ingest:odds", func(context.Context, Handle) error {
		called = true
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
	if called {
		t.Fatalf("fn must not run after cancellation")
	}
}
