package ports

import (
	"context"
	"time"

	"github.com/casedesk/casedesk-api/internal/core/domain"
)

// ListAppointmentsFilter carries all query parameters for listing appointments.
// UserID is enforced by the service layer: non-admin callers are always scoped
// to their own rows.
type ListAppointmentsFilter struct {
	UserID string    // empty = no filter (admin); non-empty = scoped to owner
	Status string    // optional: filter by appointment status
	Search string    // optional: partial match on title
	Date   time.Time // optional: appointments on this calendar day
	Page   int       // 1-based
	Limit  int       // max rows per page (capped at 100 by service)
}

// UpdateAppointmentInput holds the mutable fields of an appointment.
// Nil pointers leave the corresponding field untouched.
type UpdateAppointmentInput struct {
	Title       *string
	Description *string
	Date        *time.Time
	Status      *domain.AppointmentStatus
}

// AppointmentStats aggregates appointment counts for the dashboard.
type AppointmentStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Cancelled int64 `json:"cancelled"`
}

// AppointmentRepository defines persistence operations for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	// FindByID retrieves an appointment. When userID is non-empty, the query
	// is additionally filtered by owner (for scoping).
	FindByID(ctx context.Context, id string, userID string) (*domain.Appointment, error)
	Update(ctx context.Context, id string, input UpdateAppointmentInput) (*domain.Appointment, error)
	SoftDelete(ctx context.Context, id string) error
	// List returns a page of appointments matching filter and the total count.
	List(ctx context.Context, filter ListAppointmentsFilter) ([]*domain.Appointment, int64, error)
	// Stats aggregates status counts; empty userID means all users (admin).
	Stats(ctx context.Context, userID string) (AppointmentStats, error)
	// Upcoming returns the next appointments ordered by date ascending.
	Upcoming(ctx context.Context, userID string, limit int) ([]*domain.Appointment, error)
}
