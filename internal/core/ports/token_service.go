package ports

import "time"

// AccessClaims is the verified payload of an access token.
type AccessClaims struct {
	UserID  string
	Role    string
	TokenID string
}

// RefreshClaims is the verified payload of a refresh token.
type RefreshClaims struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}

// TokenService signs and verifies the two bearer-token kinds. Validity is
// purely cryptographic plus expiry; no state is kept between calls.
type TokenService interface {
	SignAccess(userID, role string) (string, error)
	SignRefresh(userID string) (string, error)
	VerifyAccess(raw string) (*AccessClaims, error)
	VerifyRefresh(raw string) (*RefreshClaims, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}
