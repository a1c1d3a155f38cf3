package ports

import (
	"context"

	"github.com/casedesk/casedesk-api/internal/core/domain"
)

// DashboardStats is the analytics payload for the dashboard. Cases is only
// populated for admin callers.
type DashboardStats struct {
	Appointments AppointmentStats      `json:"appointments"`
	Recent       []*domain.Appointment `json:"recent_appointments"`
	Cases        *CaseStats            `json:"cases,omitempty"`
}

// AnalyticsService aggregates read-only dashboard statistics scoped by role.
type AnalyticsService interface {
	Dashboard(ctx context.Context, userID, role string) (*DashboardStats, error)
}
