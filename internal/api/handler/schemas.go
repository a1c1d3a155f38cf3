package handler

import (
	"time"

	"github.com/casedesk/casedesk-api/internal/core/domain"
)

// messageResponse is the confirmation envelope returned by auth operations.
type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// errorResponse documents the error envelope for swagger; the actual
// rendering happens in the central HTTP error handler.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,min=2"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --- Users ---

type updateUserRequest struct {
	Role      *string `json:"role,omitempty"       validate:"omitempty,oneof=ADMIN USER"`
	IsDeleted *bool   `json:"is_deleted,omitempty"`
}

// --- Appointments ---

type createAppointmentRequest struct {
	Title       string `json:"title"                 validate:"required,min=2"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"                  validate:"required"`
}

type updateAppointmentRequest struct {
	Title       *string `json:"title,omitempty"       validate:"omitempty,min=2"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
	Status      *string `json:"status,omitempty"      validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
}

// --- Cases ---

type createCaseRequest struct {
	Title       string `json:"title"       validate:"required,min=3"`
	Description string `json:"description" validate:"required,min=5"`
}

type assignCaseRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// --- Shared pagination envelope ---

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listAppointmentsResponse struct {
	Data       []*domain.Appointment `json:"data"`
	Pagination paginationResponse    `json:"pagination"`
}

type listUsersResponse struct {
	Data       []domain.SanitizedUser `json:"data"`
	Pagination paginationResponse     `json:"pagination"`
}

// parseDate accepts RFC 3339 timestamps and bare yyyy-mm-dd days.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse("2006-01-02", s)
}
