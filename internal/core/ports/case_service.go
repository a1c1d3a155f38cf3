package ports

import (
	"context"

	"github.com/casedesk/casedesk-api/internal/core/domain"
)

// CaseWithAssignee joins a case with its assigned user, if any.
type CaseWithAssignee struct {
	domain.Case
	AssignedUser *domain.SanitizedUser `json:"assigned_user,omitempty"`
}

// CaseService implements support-case management. Creation, assignment and
// deletion are admin-only; the role gate lives in the request pipeline.
type CaseService interface {
	Create(ctx context.Context, title, description string) (*domain.Case, error)
	Assign(ctx context.Context, caseID, userID string) (*CaseWithAssignee, error)
	List(ctx context.Context) ([]*CaseWithAssignee, error)
	Delete(ctx context.Context, id string) error
}
