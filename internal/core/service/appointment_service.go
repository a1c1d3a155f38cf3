package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/casedesk/casedesk-api/internal/core/domain"
	"github.com/casedesk/casedesk-api/internal/core/ports"
)

// AppointmentService implements appointment CRUD. Non-admin callers are
// always scoped to their own rows; the repository enforces the owner filter.
type AppointmentService struct {
	repo   ports.AppointmentRepository
	logger zerolog.Logger
}

func NewAppointmentService(repo ports.AppointmentRepository, logger zerolog.Logger) *AppointmentService {
	return &AppointmentService{repo: repo, logger: logger}
}

func (s *AppointmentService) Create(ctx context.Context, input ports.CreateAppointmentInput) (*domain.Appointment, error) {
	now := time.Now().UTC()
	appointment := &domain.Appointment{
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		Status:      domain.AppointmentPending,
		UserID:      input.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, appointment)
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.logger.Info().Str("appointment_id", created.ID).Str("user_id", input.UserID).Msg("appointment created")
	return created, nil
}

// Update mutates an appointment after an ownership check. A row owned by
// someone else looks identical to a missing one.
func (s *AppointmentService) Update(ctx context.Context, req ports.UpdateAppointmentRequest) (*domain.Appointment, error) {
	ownerFilter := req.UserID
	if req.Role == domain.RoleAdmin {
		ownerFilter = ""
	}
	if _, err := s.repo.FindByID(ctx, req.ID, ownerFilter); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, req.ID, req.Input)
}

func (s *AppointmentService) Delete(ctx context.Context, id, userID, role string) error {
	ownerFilter := userID
	if role == domain.RoleAdmin {
		ownerFilter = ""
	}
	if _, err := s.repo.FindByID(ctx, id, ownerFilter); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

// List returns a page of appointments. USER callers are forced onto their own
// rows regardless of any user_id filter in the request.
func (s *AppointmentService) List(ctx context.Context, filter ports.ListAppointmentsFilter, callerID, role string) (*ports.AppointmentPage, error) {
	if role != domain.RoleAdmin {
		filter.UserID = callerID
	}
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	data, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	return &ports.AppointmentPage{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}
