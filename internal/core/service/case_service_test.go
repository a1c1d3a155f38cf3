package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/casedesk/casedesk-api/internal/core/domain"
	"github.com/casedesk/casedesk-api/internal/core/ports"
)

type stubCaseRepo struct {
	cases  map[string]*domain.Case
	nextID int
}

func newStubCaseRepo() *stubCaseRepo {
	return &stubCaseRepo{cases: map[string]*domain.Case{}}
}

func (r *stubCaseRepo) Create(ctx context.Context, c *domain.Case) (*domain.Case, error) {
	r.nextID++
	created := *c
	created.ID = fmt.Sprintf("case-%d", r.nextID)
	r.cases[created.ID] = &created
	return &created, nil
}

func (r *stubCaseRepo) FindByID(ctx context.Context, id string) (*domain.Case, error) {
	c, ok := r.cases[id]
	if !ok || c.IsDeleted {
		return nil, domain.ErrCaseNotFound
	}
	return c, nil
}

func (r *stubCaseRepo) Assign(ctx context.Context, caseID, userID string) (*domain.Case, error) {
	c, ok := r.cases[caseID]
	if !ok {
		return nil, domain.ErrCaseNotFound
	}
	c.AssignedUserID = userID
	c.UpdatedAt = time.Now().UTC()
	return c, nil
}

func (r *stubCaseRepo) SoftDelete(ctx context.Context, id string) error {
	c, ok := r.cases[id]
	if !ok {
		return domain.ErrCaseNotFound
	}
	c.IsDeleted = true
	return nil
}

func (r *stubCaseRepo) FindAll(ctx context.Context) ([]*domain.Case, error) {
	var out []*domain.Case
	for _, c := range r.cases {
		if !c.IsDeleted {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *stubCaseRepo) Stats(ctx context.Context) (ports.CaseStats, error) {
	var stats ports.CaseStats
	for _, c := range r.cases {
		if c.IsDeleted {
			continue
		}
		stats.Total++
		if c.AssignedUserID == "" {
			stats.Unassigned++
		}
	}
	return stats, nil
}

func newCaseFixture() (*CaseService, *stubCaseRepo, *stubUserRepo) {
	caseRepo := newStubCaseRepo()
	userRepo := newStubUserRepo()
	return NewCaseService(caseRepo, userRepo, zerolog.Nop()), caseRepo, userRepo
}

func seedUser(t *testing.T, repo *stubUserRepo, name, email string) *domain.User {
	t.Helper()
	created, err := repo.Create(context.Background(), &domain.User{
		Name:  name,
		Email: email,
		Role:  domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return created
}

func TestCreateCase(t *testing.T) {
	svc, _, _ := newCaseFixture()

	created, err := svc.Create(context.Background(), "login broken", "cannot sign in since Tuesday")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected an id on the created case")
	}
	if created.AssignedUserID != "" {
		t.Fatalf("new case must start unassigned, got %q", created.AssignedUserID)
	}
}

func TestAssignCaseJoinsUser(t *testing.T) {
	svc, _, users := newCaseFixture()
	ctx := context.Background()

	staff := seedUser(t, users, "Ada", "ada@x.com")
	created, err := svc.Create(ctx, "login broken", "cannot sign in")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	assigned, err := svc.Assign(ctx, created.ID, staff.ID)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if assigned.AssignedUserID != staff.ID {
		t.Fatalf("expected assignment to %q, got %q", staff.ID, assigned.AssignedUserID)
	}
	if assigned.AssignedUser == nil || assigned.AssignedUser.Email != "ada@x.com" {
		t.Fatalf("expected joined assignee, got %+v", assigned.AssignedUser)
	}
}

func TestAssignCaseValidatesBothSides(t *testing.T) {
	svc, _, users := newCaseFixture()
	ctx := context.Background()

	staff := seedUser(t, users, "Ada", "ada@x.com")
	created, err := svc.Create(ctx, "login broken", "cannot sign in")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Assign(ctx, "missing-case", staff.ID); !errors.Is(err, domain.ErrCaseNotFound) {
		t.Fatalf("expected ErrCaseNotFound, got %v", err)
	}
	if _, err := svc.Assign(ctx, created.ID, "missing-user"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestListCasesDegradesDanglingAssignee(t *testing.T) {
	svc, _, users := newCaseFixture()
	ctx := context.Background()

	staff := seedUser(t, users, "Ada", "ada@x.com")
	created, err := svc.Create(ctx, "login broken", "cannot sign in")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Assign(ctx, created.ID, staff.ID); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	// assignee soft-deleted afterwards: the case lists as unassigned
	deleted := true
	if _, err := users.Update(ctx, staff.ID, ports.UpdateUserInput{IsDeleted: &deleted}); err != nil {
		t.Fatalf("soft delete user: %v", err)
	}

	cases, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(cases) != 1 {
		t.Fatalf("expected 1 case, got %d", len(cases))
	}
	if cases[0].AssignedUser != nil {
		t.Fatalf("expected dangling assignee dropped, got %+v", cases[0].AssignedUser)
	}
}

func TestDeleteCase(t *testing.T) {
	svc, repo, _ := newCaseFixture()
	ctx := context.Background()

	created, err := svc.Create(ctx, "login broken", "cannot sign in")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !repo.cases[created.ID].IsDeleted {
		t.Fatal("expected soft-delete flag set")
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, domain.ErrCaseNotFound) {
		t.Fatalf("deleted case should 404, got %v", err)
	}
}
