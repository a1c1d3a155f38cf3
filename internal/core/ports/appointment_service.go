package ports

import (
	"context"
	"time"

	"github.com/casedesk/casedesk-api/internal/core/domain"
)

// CreateAppointmentInput carries everything needed to book an appointment.
// UserID is the authenticated caller, never taken from the request body.
type CreateAppointmentInput struct {
	Title       string
	Description string
	Date        time.Time
	UserID      string
}

// UpdateAppointmentRequest scopes an update to the caller's identity.
type UpdateAppointmentRequest struct {
	ID     string
	UserID string // caller id; admins bypass the owner check
	Role   string
	Input  UpdateAppointmentInput
}

// AppointmentPage is one page of appointments plus pagination metadata.
type AppointmentPage struct {
	Data       []*domain.Appointment
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AppointmentService implements appointment CRUD with role-based scoping.
type AppointmentService interface {
	Create(ctx context.Context, input CreateAppointmentInput) (*domain.Appointment, error)
	Update(ctx context.Context, req UpdateAppointmentRequest) (*domain.Appointment, error)
	Delete(ctx context.Context, id, userID, role string) error
	List(ctx context.Context, filter ListAppointmentsFilter, callerID, role string) (*AppointmentPage, error)
}
