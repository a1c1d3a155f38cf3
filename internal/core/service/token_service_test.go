package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/casedesk/casedesk-api/internal/core/domain"
)

func TestSignAndVerifyAccess(t *testing.T) {
	svc := NewTokenService("test-secret", time.Minute, time.Hour)

	raw, err := svc.SignAccess("user-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}

	claims, err := svc.VerifyAccess(raw)
	if err != nil {
		t.Fatalf("VerifyAccess: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("expected subject user-1, got %q", claims.UserID)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("expected role %q, got %q", domain.RoleAdmin, claims.Role)
	}
	if claims.TokenID == "" {
		t.Fatal("expected a non-empty token id")
	}
}

func TestSignAndVerifyRefresh(t *testing.T) {
	svc := NewTokenService("test-secret", time.Minute, time.Hour)

	raw, err := svc.SignRefresh("user-2")
	if err != nil {
		t.Fatalf("SignRefresh: %v", err)
	}

	claims, err := svc.VerifyRefresh(raw)
	if err != nil {
		t.Fatalf("VerifyRefresh: %v", err)
	}
	if claims.UserID != "user-2" {
		t.Fatalf("expected subject user-2, got %q", claims.UserID)
	}
	if !claims.ExpiresAt.After(time.Now()) {
		t.Fatal("expected refresh expiry in the future")
	}
}

func TestVerifyAccessExpired(t *testing.T) {
	svc := NewTokenService("test-secret", time.Nanosecond, time.Hour)

	raw, err := svc.SignAccess("user-1", domain.RoleUser)
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, err := svc.VerifyAccess(raw); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyAccessTampered(t *testing.T) {
	svc := NewTokenService("test-secret", time.Minute, time.Hour)

	raw, err := svc.SignAccess("user-1", domain.RoleUser)
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}

	tampered := raw[:len(raw)-2] + "xx"
	if _, err := svc.VerifyAccess(tampered); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestVerifyAccessWrongSecret(t *testing.T) {
	signer := NewTokenService("secret-a", time.Minute, time.Hour)
	verifier := NewTokenService("secret-b", time.Minute, time.Hour)

	raw, err := signer.SignAccess("user-1", domain.RoleUser)
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}
	if _, err := verifier.VerifyAccess(raw); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken across secrets, got %v", err)
	}
}

func TestVerifyAccessRejectsUnsignedAlg(t *testing.T) {
	svc := NewTokenService("test-secret", time.Minute, time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	if _, err := svc.VerifyAccess(raw); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}

func TestTokenIDsAreUnique(t *testing.T) {
	svc := NewTokenService("test-secret", time.Minute, time.Hour)

	first, err := svc.SignRefresh("user-1")
	if err != nil {
		t.Fatalf("SignRefresh: %v", err)
	}
	second, err := svc.SignRefresh("user-1")
	if err != nil {
		t.Fatalf("SignRefresh: %v", err)
	}

	a, _ := svc.VerifyRefresh(first)
	b, _ := svc.VerifyRefresh(second)
	if a.TokenID == b.TokenID {
		t.Fatalf("expected distinct token ids, both were %q", a.TokenID)
	}
}

func TestDefaultTTLs(t *testing.T) {
	svc := NewTokenService("test-secret", 0, 0)
	if svc.AccessTTL() != defaultAccessTTL {
		t.Fatalf("expected default access TTL %v, got %v", defaultAccessTTL, svc.AccessTTL())
	}
	if svc.RefreshTTL() != defaultRefreshTTL {
		t.Fatalf("expected default refresh TTL %v, got %v", defaultRefreshTTL, svc.RefreshTTL())
	}
}
