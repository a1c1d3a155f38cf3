package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/casedesk/casedesk-api/internal/core/domain"
	"github.com/casedesk/casedesk-api/internal/core/ports"
)

func TestMeNeverExposesPasswordHash(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{
		Name:         "Ada",
		Email:        "ada@x.com",
		PasswordHash: "$2a$10$somethingsecret",
		Role:         domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	me, err := svc.Me(ctx, created.ID)
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if me.Email != "ada@x.com" {
		t.Fatalf("unexpected email %q", me.Email)
	}

	raw, err := json.Marshal(me)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "secret") {
		t.Fatalf("password hash leaked into response: %s", raw)
	}
}

func TestMeUnknownUser(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	if _, err := svc.Me(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateUserRejectsUnknownRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{Name: "Ada", Email: "ada@x.com", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	bogus := "SUPERADMIN"
	if _, err := svc.Update(ctx, created.ID, ports.UpdateUserInput{Role: &bogus}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for unknown role, got %v", err)
	}

	admin := domain.RoleAdmin
	updated, err := svc.Update(ctx, created.ID, ports.UpdateUserInput{Role: &admin})
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("expected ADMIN, got %q", updated.Role)
	}
}

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 10},
		{-5, -1, 1, 10},
		{2, 25, 2, 25},
		{1, 500, 1, maxPageSize},
	}
	for _, tc := range cases {
		gotPage, gotLimit := normalizePage(tc.page, tc.limit)
		if gotPage != tc.wantPage || gotLimit != tc.wantLimit {
			t.Fatalf("normalizePage(%d, %d) = (%d, %d), want (%d, %d)",
				tc.page, tc.limit, gotPage, gotLimit, tc.wantPage, tc.wantLimit)
		}
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{10, 10, 1},
		{11, 10, 2},
		{5, 0, 0},
	}
	for _, tc := range cases {
		if got := totalPages(tc.total, tc.limit); got != tc.want {
			t.Fatalf("totalPages(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}
