package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/casedesk/casedesk-api/internal/core/domain"
	"github.com/casedesk/casedesk-api/internal/core/ports"
)

// AdminSeed describes the bootstrap administrator account. Registration only
// ever creates USER accounts and the role-change endpoint is admin-gated, so
// without this seed a fresh deployment has no way to reach the admin surface.
type AdminSeed struct {
	Name       string
	Email      string
	Password   string
	BcryptCost int
}

// EnsureAdmin provisions the administrator account at startup. Idempotent: an
// account already holding the email is left untouched, whatever its role. A
// concurrent replica losing the insert race is treated the same way.
func EnsureAdmin(ctx context.Context, users ports.UserRepository, seed AdminSeed, logger zerolog.Logger) error {
	if seed.Email == "" || seed.Password == "" {
		logger.Warn().Msg("admin seed skipped: ADMIN_EMAIL or ADMIN_PASSWORD not set")
		return nil
	}

	if _, err := users.FindByEmail(ctx, seed.Email); err == nil {
		logger.Info().Str("email", seed.Email).Msg("admin account already exists")
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("ensure admin: lookup email: %w", err)
	}

	cost := seed.BcryptCost
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), cost)
	if err != nil {
		return fmt.Errorf("ensure admin: hash password: %w", err)
	}

	name := seed.Name
	if name == "" {
		name = "Admin"
	}

	now := time.Now().UTC()
	user, err := users.Create(ctx, &domain.User{
		Name:         name,
		Email:        seed.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil
		}
		return fmt.Errorf("ensure admin: create user: %w", err)
	}

	logger.Info().Str("user_id", user.ID).Msg("admin account provisioned")
	return nil
}
