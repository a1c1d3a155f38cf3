package ports

import (
	"context"

	"github.com/casedesk/casedesk-api/internal/core/domain"
)

// UserPage is one page of sanitized users plus pagination metadata.
type UserPage struct {
	Data       []domain.SanitizedUser
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService exposes account lookups and the admin-only mutations
// (role change, soft delete).
type UserService interface {
	Me(ctx context.Context, userID string) (*domain.SanitizedUser, error)
	List(ctx context.Context, filter ListUsersFilter) (*UserPage, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.SanitizedUser, error)
}
