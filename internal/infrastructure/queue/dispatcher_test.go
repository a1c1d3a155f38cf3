package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/casedesk/casedesk-api/internal/core/domain"
)

type recordingAuditRepo struct {
	mu     sync.Mutex
	events []domain.AuditEvent
	block  chan struct{}
}

func (r *recordingAuditRepo) Insert(ctx context.Context, event *domain.AuditEvent) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	r.events = append(r.events, *event)
	r.mu.Unlock()
	return nil
}

func (r *recordingAuditRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func waitForEvents(t *testing.T, repo *recordingAuditRepo, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for repo.count() < want {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d events, have %d", want, repo.count())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestDispatcherPersistsEvents(t *testing.T) {
	repo := &recordingAuditRepo{}
	d := NewAuditDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 10; i++ {
		d.Record(domain.AuditEvent{
			UserID:    "user-1",
			Action:    domain.AuditLogin,
			Timestamp: time.Now().UTC(),
		})
	}

	waitForEvents(t, repo, 10)
}

func TestDispatcherPreservesPerUserOrder(t *testing.T) {
	repo := &recordingAuditRepo{}
	d := NewAuditDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	actions := []domain.AuditAction{domain.AuditRegister, domain.AuditLogin, domain.AuditRefresh, domain.AuditLogout}
	for _, a := range actions {
		d.Record(domain.AuditEvent{UserID: "user-1", Action: a})
	}
	waitForEvents(t, repo, len(actions))

	repo.mu.Lock()
	defer repo.mu.Unlock()
	for i, a := range actions {
		if repo.events[i].Action != a {
			t.Fatalf("event %d out of order: got %q, want %q", i, repo.events[i].Action, a)
		}
	}
}

func TestDispatcherShardIsStable(t *testing.T) {
	d := NewAuditDispatcher(4, &recordingAuditRepo{}, zerolog.Nop())

	first := d.shardIndex("user-42")
	for i := 0; i < 100; i++ {
		if got := d.shardIndex("user-42"); got != first {
			t.Fatalf("shard index not deterministic: %d vs %d", got, first)
		}
	}
}

func TestDispatcherDropsWhenQueueFull(t *testing.T) {
	repo := &recordingAuditRepo{block: make(chan struct{})}
	d := NewAuditDispatcher(1, repo, zerolog.Nop())
	// workers never started: the channel fills and overflow must not block

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+50; i++ {
			d.Record(domain.AuditEvent{UserID: "user-1", Action: domain.AuditLogin})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Record blocked on a full queue")
	}
	if got := len(d.workers[0]); got != channelBuffer {
		t.Fatalf("expected queue capped at %d, got %d", channelBuffer, got)
	}
}
