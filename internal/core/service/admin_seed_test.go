package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/casedesk/casedesk-api/internal/core/domain"
)

func TestEnsureAdminCreatesAccount(t *testing.T) {
	repo := newStubUserRepo()
	ctx := context.Background()

	seed := AdminSeed{Email: "admin@x.com", Password: "bootstrap1", BcryptCost: bcrypt.MinCost}
	if err := EnsureAdmin(ctx, repo, seed, zerolog.Nop()); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}

	admin, err := repo.FindByEmail(ctx, "admin@x.com")
	if err != nil {
		t.Fatalf("seeded admin not found: %v", err)
	}
	if admin.Role != domain.RoleAdmin {
		t.Fatalf("expected role ADMIN, got %q", admin.Role)
	}
	if admin.Name != "Admin" {
		t.Fatalf("expected default name Admin, got %q", admin.Name)
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("bootstrap1")) != nil {
		t.Fatal("stored hash does not match the seed password")
	}
}

func TestEnsureAdminUnblocksRoleManagement(t *testing.T) {
	repo := newStubUserRepo()
	tokens := NewTokenService("test-secret", 0, 0)
	sessions := NewSessionService(repo, tokens, newStubDenylist(), nil, bcrypt.MinCost, zerolog.Nop())
	ctx := context.Background()

	seed := AdminSeed{Email: "admin@x.com", Password: "bootstrap1", BcryptCost: bcrypt.MinCost}
	if err := EnsureAdmin(ctx, repo, seed, zerolog.Nop()); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}

	// the seeded admin can log in and holds an ADMIN access token, so the
	// role-change endpoint is reachable on a fresh deployment
	pair, err := sessions.Login(ctx, "admin@x.com", "bootstrap1")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	claims, err := tokens.VerifyAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("VerifyAccess: %v", err)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("expected ADMIN claims, got %q", claims.Role)
	}
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	repo := newStubUserRepo()
	ctx := context.Background()

	seed := AdminSeed{Email: "admin@x.com", Password: "bootstrap1", BcryptCost: bcrypt.MinCost}
	if err := EnsureAdmin(ctx, repo, seed, zerolog.Nop()); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	first, _ := repo.FindByEmail(ctx, "admin@x.com")

	seed.Password = "changed-later"
	if err := EnsureAdmin(ctx, repo, seed, zerolog.Nop()); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	second, _ := repo.FindByEmail(ctx, "admin@x.com")
	if len(repo.users) != 1 {
		t.Fatalf("expected exactly one account, got %d", len(repo.users))
	}
	if second.PasswordHash != first.PasswordHash {
		t.Fatal("existing admin must not be overwritten")
	}
}

func TestEnsureAdminSkipsExistingNonAdmin(t *testing.T) {
	repo := newStubUserRepo()
	ctx := context.Background()

	if _, err := repo.Create(ctx, &domain.User{Name: "Ada", Email: "admin@x.com", Role: domain.RoleUser}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	seed := AdminSeed{Email: "admin@x.com", Password: "bootstrap1", BcryptCost: bcrypt.MinCost}
	if err := EnsureAdmin(ctx, repo, seed, zerolog.Nop()); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}

	existing, _ := repo.FindByEmail(ctx, "admin@x.com")
	if existing.Role != domain.RoleUser {
		t.Fatalf("existing account must keep its role, got %q", existing.Role)
	}
}

func TestEnsureAdminSkipsWithoutCredentials(t *testing.T) {
	repo := newStubUserRepo()

	if err := EnsureAdmin(context.Background(), repo, AdminSeed{}, zerolog.Nop()); err != nil {
		t.Fatalf("empty seed must be a no-op, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("expected no accounts, got %d", len(repo.users))
	}
}

func TestEnsureAdminSurvivesInsertRace(t *testing.T) {
	repo := newStubUserRepo()
	repo.createErr = domain.ErrUserExists

	seed := AdminSeed{Email: "admin@x.com", Password: "bootstrap1", BcryptCost: bcrypt.MinCost}
	if err := EnsureAdmin(context.Background(), repo, seed, zerolog.Nop()); err != nil {
		t.Fatalf("replica losing the insert race must not fail startup: %v", err)
	}
}

func TestEnsureAdminPropagatesLookupFailure(t *testing.T) {
	repo := &failingLookupRepo{stubUserRepo: newStubUserRepo(), err: errors.New("mongo down")}

	seed := AdminSeed{Email: "admin@x.com", Password: "bootstrap1", BcryptCost: bcrypt.MinCost}
	if err := EnsureAdmin(context.Background(), repo, seed, zerolog.Nop()); err == nil {
		t.Fatal("expected store failure to surface")
	}
}

type failingLookupRepo struct {
	*stubUserRepo
	err error
}

func (r *failingLookupRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, r.err
}
