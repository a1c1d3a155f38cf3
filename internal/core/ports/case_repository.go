package ports

import (
	"context"

	"github.com/casedesk/casedesk-api/internal/core/domain"
)

// CaseStats aggregates case counts for the admin dashboard.
type CaseStats struct {
	Total      int64 `json:"total"`
	Unassigned int64 `json:"unassigned"`
}

// CaseRepository defines persistence operations for support cases.
type CaseRepository interface {
	Create(ctx context.Context, c *domain.Case) (*domain.Case, error)
	FindByID(ctx context.Context, id string) (*domain.Case, error)
	Assign(ctx context.Context, caseID, userID string) (*domain.Case, error)
	SoftDelete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]*domain.Case, error)
	Stats(ctx context.Context) (CaseStats, error)
}
