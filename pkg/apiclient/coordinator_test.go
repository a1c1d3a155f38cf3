package apiclient

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func waitersLen(c *Coordinator) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.waiters)
}

func waitForRefreshing(t *testing.T, c *Coordinator) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		c.mu.Lock()
		refreshing := c.refreshing
		c.mu.Unlock()
		if refreshing {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for refresh to start")
		}
		time.Sleep(time.Millisecond)
	}
}

func waitForWaiters(t *testing.T, c *Coordinator, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for waitersLen(c) < want {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d waiters, have %d", want, waitersLen(c))
		}
		time.Sleep(time.Millisecond)
	}
}

func TestAwaitRefreshSingleFlight(t *testing.T) {
	const callers = 5

	var calls int32
	release := make(chan struct{})
	coord := NewCoordinator(func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		<-release
		return nil
	})

	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = coord.AwaitRefresh(context.Background())
		}(i)
	}

	// one caller becomes the refresher, the rest must all be queued
	waitForWaiters(t, coord, callers-1)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected exactly 1 refresh call, got %d", got)
	}
	for i, err := range errs {
		if err != nil {
			t.Fatalf("caller %d: unexpected error: %v", i, err)
		}
	}
}

func TestAwaitRefreshFailureReachesAllWaiters(t *testing.T) {
	const callers = 4
	wantErr := errors.New("refresh rejected")

	release := make(chan struct{})
	coord := NewCoordinator(func(ctx context.Context) error {
		<-release
		return wantErr
	})
	coord.SetAuthenticated(true)

	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = coord.AwaitRefresh(context.Background())
		}(i)
	}

	waitForWaiters(t, coord, callers-1)
	close(release)
	wg.Wait()

	for i, err := range errs {
		if !errors.Is(err, wantErr) {
			t.Fatalf("caller %d: expected refresh error, got %v", i, err)
		}
	}
	if coord.Authenticated() {
		t.Fatal("expected authenticated flag cleared after failed refresh")
	}
}

func TestAwaitRefreshSequentialCallsRefreshAgain(t *testing.T) {
	var calls int32
	coord := NewCoordinator(func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	if err := coord.AwaitRefresh(context.Background()); err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	if err := coord.AwaitRefresh(context.Background()); err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected 2 refresh calls for sequential storms, got %d", got)
	}
}

func TestAwaitRefreshWaiterHonoursContext(t *testing.T) {
	release := make(chan struct{})
	coord := NewCoordinator(func(ctx context.Context) error {
		<-release
		return nil
	})

	go coord.AwaitRefresh(context.Background())
	waitForRefreshing(t, coord)

	// second caller joins as a waiter with an already-cancelled context
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- coord.AwaitRefresh(ctx)
	}()
	waitForWaiters(t, coord, 1)
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	close(release)
}
