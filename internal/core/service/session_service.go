package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/casedesk/casedesk-api/internal/api/metrics"
	"github.com/casedesk/casedesk-api/internal/core/domain"
	"github.com/casedesk/casedesk-api/internal/core/ports"
)

// SessionService orchestrates register/login/refresh/logout. It holds no
// session state: a session is just the token pair on the client, and the
// only server-side record is the logout denylist.
type SessionService struct {
	users      ports.UserRepository
	tokens     ports.TokenService
	denylist   ports.TokenDenylist
	audit      ports.AuditRecorder
	bcryptCost int
	logger     zerolog.Logger
}

func NewSessionService(
	users ports.UserRepository,
	tokens ports.TokenService,
	denylist ports.TokenDenylist,
	audit ports.AuditRecorder,
	bcryptCost int,
	logger zerolog.Logger,
) *SessionService {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &SessionService{
		users:      users,
		tokens:     tokens,
		denylist:   denylist,
		audit:      audit,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates an account and issues a fresh pair. The role is always
// USER; escalation never comes from the request. The email pre-check is a
// fast path only — the store's unique index is the real duplicate guard, so
// a race loser still comes back as ErrUserExists, never a server error.
func (s *SessionService) Register(ctx context.Context, name, email, password string) (*ports.TokenPair, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("register: create user: %w", err)
	}

	metrics.RegistrationsTotal.Inc()
	s.recordAudit(user.ID, domain.AuditRegister, email)
	s.logger.Info().Str("user_id", user.ID).Msg("user registered")

	return s.issuePair(user.ID, user.Role)
}

// Login verifies credentials and issues a fresh pair. An unknown email and a
// wrong password return the same error so the caller cannot tell which half
// of the pair was wrong.
func (s *SessionService) Login(ctx context.Context, email, password string) (*ports.TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: lookup email: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.recordAudit(user.ID, domain.AuditLogin, email)

	return s.issuePair(user.ID, user.Role)
}

// Refresh turns a valid refresh token into a brand-new pair. Rotation here
// means a new pair is handed out; the presented token stays valid until its
// natural expiry unless it was revoked by logout.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		metrics.RefreshesTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidToken
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("denylist check failed, accepting token")
	} else if revoked {
		metrics.RefreshesTotal.WithLabelValues("revoked").Inc()
		return nil, domain.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		metrics.RefreshesTotal.WithLabelValues("failure").Inc()
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("refresh: lookup user: %w", err)
	}

	metrics.RefreshesTotal.WithLabelValues("success").Inc()
	s.recordAudit(user.ID, domain.AuditRefresh, user.Email)

	return s.issuePair(user.ID, user.Role)
}

// Logout revokes the presented refresh token for its remaining lifetime.
// A missing or invalid token is not an error: there is nothing to revoke
// and the handler clears the cookies either way.
func (s *SessionService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.denylist.Revoke(ctx, claims.TokenID, ttl); err != nil {
		s.logger.Warn().Err(err).Str("user_id", claims.UserID).Msg("failed to revoke refresh token")
		return nil
	}

	metrics.RevocationsTotal.Inc()
	s.recordAudit(claims.UserID, domain.AuditLogout, "")
	return nil
}

// issuePair signs both tokens; the operation is all-or-nothing.
func (s *SessionService) issuePair(userID, role string) (*ports.TokenPair, error) {
	access, err := s.tokens.SignAccess(userID, role)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.tokens.SignRefresh(userID)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *SessionService) recordAudit(userID string, action domain.AuditAction, email string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEvent{
		UserID:    userID,
		Action:    action,
		Email:     email,
		Timestamp: time.Now().UTC(),
	})
}
