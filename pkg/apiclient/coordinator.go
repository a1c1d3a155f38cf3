package apiclient

import (
	"context"
	"sync"
)

// RefreshFunc renews the session credentials. It is injected so the
// coordinator can be exercised without a live server.
type RefreshFunc func(ctx context.Context) error

// Coordinator serializes session refreshes across concurrent callers.
// When many requests hit an expired access token at once, exactly one of
// them performs the refresh; the rest wait for its outcome and share it.
type Coordinator struct {
	mu            sync.Mutex
	refreshing    bool
	waiters       []chan error
	refresh       RefreshFunc
	authenticated bool
}

// NewCoordinator creates a coordinator in the idle, unauthenticated state.
func NewCoordinator(refresh RefreshFunc) *Coordinator {
	return &Coordinator{refresh: refresh}
}

// Authenticated reports whether the client currently holds a session.
func (c *Coordinator) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authenticated
}

// SetAuthenticated records the session state after an explicit
// login or logout.
func (c *Coordinator) SetAuthenticated(v bool) {
	c.mu.Lock()
	c.authenticated = v
	c.mu.Unlock()
}

// AwaitRefresh ensures a single refresh is performed and returns its result.
// If a refresh is already in flight the caller waits for it instead of
// starting another. A failed refresh clears the authenticated flag and is
// reported to every waiter.
func (c *Coordinator) AwaitRefresh(ctx context.Context) error {
	c.mu.Lock()
	if c.refreshing {
		ch := make(chan error, 1)
		c.waiters = append(c.waiters, ch)
		c.mu.Unlock()
		select {
		case err := <-ch:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c.refreshing = true
	c.mu.Unlock()

	err := c.refresh(ctx)

	c.mu.Lock()
	c.refreshing = false
	if err != nil {
		c.authenticated = false
	}
	waiters := c.waiters
	c.waiters = nil
	c.mu.Unlock()

	for _, ch := range waiters {
		ch <- err
	}
	return err
}
