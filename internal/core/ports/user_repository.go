package ports

import (
	"context"

	"github.com/casedesk/casedesk-api/internal/core/domain"
)

// ListUsersFilter carries all query parameters for listing users.
type ListUsersFilter struct {
	Search string // optional: partial match on name or email
	Role   string // optional: filter by role
	Page   int    // 1-based
	Limit  int    // max rows per page (capped at 100 by service)
}

// UpdateUserInput holds the admin-mutable fields of a user record.
// Nil pointers leave the corresponding field untouched.
type UpdateUserInput struct {
	Role      *string
	IsDeleted *bool
}

// UserRepository defines persistence operations for the credential store.
// Soft-deleted users are excluded from FindByID and FindByEmail; the unique
// index on email is the real guard against duplicate registration races.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
}
