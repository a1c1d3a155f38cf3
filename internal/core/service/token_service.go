package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/casedesk/casedesk-api/internal/core/domain"
	"github.com/casedesk/casedesk-api/internal/core/ports"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// accessClaims is the wire shape of an access token: subject, role snapshot
// and a token id. The role snapshot may go stale if the user's role changes
// before expiry; that staleness window is bounded by the short access TTL.
type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// refreshClaims carries only the subject and a token id. The id is what the
// logout denylist keys on.
type refreshClaims struct {
	jwt.RegisteredClaims
}

// TokenService signs and verifies the access/refresh pair with a single
// process-wide HS256 secret injected at construction time.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *TokenService) AccessTTL() time.Duration  { return s.accessTTL }
func (s *TokenService) RefreshTTL() time.Duration { return s.refreshTTL }

// SignAccess issues a short-lived token carrying subject and role.
func (s *TokenService) SignAccess(userID, role string) (string, error) {
	now := time.Now().UTC()
	claims := accessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        newTokenID(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// SignRefresh issues a long-lived token carrying only the subject.
func (s *TokenService) SignRefresh(userID string) (string, error) {
	now := time.Now().UTC()
	claims := refreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        newTokenID(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyAccess checks signature and expiry; any failure surfaces as
// ErrInvalidToken. No audience or issuer checks are performed.
func (s *TokenService) VerifyAccess(raw string) (*ports.AccessClaims, error) {
	var claims accessClaims
	if err := s.parse(raw, &claims); err != nil {
		return nil, err
	}
	return &ports.AccessClaims{
		UserID:  claims.Subject,
		Role:    claims.Role,
		TokenID: claims.ID,
	}, nil
}

// VerifyRefresh checks signature and expiry of a refresh token.
func (s *TokenService) VerifyRefresh(raw string) (*ports.RefreshClaims, error) {
	var claims refreshClaims
	if err := s.parse(raw, &claims); err != nil {
		return nil, err
	}
	return &ports.RefreshClaims{
		UserID:    claims.Subject,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *TokenService) parse(raw string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	return nil
}

// newTokenID returns a random 128-bit hex token id.
func newTokenID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
