package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/casedesk/casedesk-api/internal/core/domain"
	"github.com/casedesk/casedesk-api/internal/core/ports"
)

// CaseService manages support cases and their assignment to users.
type CaseService struct {
	repo   ports.CaseRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewCaseService(repo ports.CaseRepository, users ports.UserRepository, logger zerolog.Logger) *CaseService {
	return &CaseService{repo: repo, users: users, logger: logger}
}

func (s *CaseService) Create(ctx context.Context, title, description string) (*domain.Case, error) {
	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Case{
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("create case: %w", err)
	}

	s.logger.Info().Str("case_id", created.ID).Msg("case created")
	return created, nil
}

// Assign links a case to a user and returns the joined result.
func (s *CaseService) Assign(ctx context.Context, caseID, userID string) (*ports.CaseWithAssignee, error) {
	if _, err := s.repo.FindByID(ctx, caseID); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	assigned, err := s.repo.Assign(ctx, caseID, userID)
	if err != nil {
		return nil, fmt.Errorf("assign case: %w", err)
	}

	s.logger.Info().Str("case_id", caseID).Str("user_id", userID).Msg("case assigned")
	return s.withAssignee(ctx, assigned), nil
}

func (s *CaseService) List(ctx context.Context) ([]*ports.CaseWithAssignee, error) {
	cases, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}

	result := make([]*ports.CaseWithAssignee, 0, len(cases))
	for _, c := range cases {
		result = append(result, s.withAssignee(ctx, c))
	}
	return result, nil
}

func (s *CaseService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

// withAssignee joins the assigned user when present. A dangling assignment
// (user since soft-deleted) degrades to an unassigned view rather than an error.
func (s *CaseService) withAssignee(ctx context.Context, c *domain.Case) *ports.CaseWithAssignee {
	out := &ports.CaseWithAssignee{Case: *c}
	if c.AssignedUserID == "" {
		return out
	}

	user, err := s.users.FindByID(ctx, c.AssignedUserID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Warn().Err(err).Str("case_id", c.ID).Msg("failed to resolve assigned user")
		}
		return out
	}

	sanitized := user.Sanitize()
	out.AssignedUser = &sanitized
	return out
}
