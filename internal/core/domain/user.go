package domain

import (
	"errors"
	"time"
)

// Role values carried in access-token claims and stored on the user record.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("access forbidden")
)

// User models an account in the credential store. PasswordHash never leaves
// the service boundary: client-facing shapes are built from Sanitize.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsDeleted    bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SanitizedUser is the client-facing projection of a User.
type SanitizedUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Sanitize strips credential fields and internal flags.
func (u *User) Sanitize() SanitizedUser {
	return SanitizedUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// ValidRole reports whether r is a recognised role value.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleUser
}
