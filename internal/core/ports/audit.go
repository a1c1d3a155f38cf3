package ports

import (
	"context"

	"github.com/casedesk/casedesk-api/internal/core/domain"
)

// AuditRepository persists session-lifecycle audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}

// AuditRecorder accepts audit events for asynchronous persistence. Record
// never blocks the calling request beyond queue admission.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}
