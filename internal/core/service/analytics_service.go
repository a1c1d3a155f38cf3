package service

import (
	"context"
	"fmt"

	"github.com/casedesk/casedesk-api/internal/core/domain"
	"github.com/casedesk/casedesk-api/internal/core/ports"
)

const recentAppointmentsLimit = 5

// AnalyticsService aggregates read-only dashboard statistics. USER callers
// see their own appointments; admins see everything plus case totals.
type AnalyticsService struct {
	appointments ports.AppointmentRepository
	cases        ports.CaseRepository
}

func NewAnalyticsService(appointments ports.AppointmentRepository, cases ports.CaseRepository) *AnalyticsService {
	return &AnalyticsService{appointments: appointments, cases: cases}
}

func (s *AnalyticsService) Dashboard(ctx context.Context, userID, role string) (*ports.DashboardStats, error) {
	scope := userID
	if role == domain.RoleAdmin {
		scope = ""
	}

	stats, err := s.appointments.Stats(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("dashboard: appointment stats: %w", err)
	}

	recent, err := s.appointments.Upcoming(ctx, scope, recentAppointmentsLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: upcoming appointments: %w", err)
	}

	out := &ports.DashboardStats{
		Appointments: stats,
		Recent:       recent,
	}

	if role == domain.RoleAdmin {
		caseStats, err := s.cases.Stats(ctx)
		if err != nil {
			return nil, fmt.Errorf("dashboard: case stats: %w", err)
		}
		out.Cases = &caseStats
	}

	return out, nil
}
