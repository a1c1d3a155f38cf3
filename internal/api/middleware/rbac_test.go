package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/casedesk/casedesk-api/internal/core/domain"
)

func runRBAC(t *testing.T, role string, allowed ...string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}

	handler := RBAC(allowed...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return handler(c)
}

func TestRBACAllowsListedRole(t *testing.T) {
	if err := runRBAC(t, domain.RoleAdmin, domain.RoleAdmin); err != nil {
		t.Fatalf("expected admin allowed, got %v", err)
	}
	if err := runRBAC(t, domain.RoleUser, domain.RoleAdmin, domain.RoleUser); err != nil {
		t.Fatalf("expected user allowed when listed, got %v", err)
	}
}

func TestRBACRejectsUnlistedRole(t *testing.T) {
	err := runRBAC(t, domain.RoleUser, domain.RoleAdmin)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError, got %v", err)
	}
}

func TestRBACRejectsMissingRole(t *testing.T) {
	err := runRBAC(t, "", domain.RoleAdmin)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 when the auth middleware did not run, got %v", err)
	}
}
