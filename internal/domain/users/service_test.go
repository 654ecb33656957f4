package users

import (
	"context"
	"errors"
	"testing"

	"kennel-manager/internal/domain/policy"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]User
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]User{}}
}

func (r *testRepo) Create(ctx context.Context, u User) error {
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) Update(ctx context.Context, u User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return ErrNotFound
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *testRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *testRepo) List(ctx context.Context) ([]User, error) {
	out := make([]User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}

type testDeps struct {
	counts map[string]int
}

func (d *testDeps) DogCountByUser(ctx context.Context, userID string) (int, error) {
	return d.counts[userID], nil
}

func newTestService(counts map[string]int) (*Service, *testRepo) {
	repo := newTestRepo()
	if counts == nil {
		counts = map[string]int{}
	}
	return NewService(repo, &testDeps{counts: counts}), repo
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_NormalizesAndHashes(t *testing.T) {
	svc, _ := newTestService(nil)

	u, err := svc.Create(context.Background(), CreateInput{
		FirstName: "  Ana ",
		LastName:  "Silva",
		Email:     " Ana@Example.COM ",
		Password:  "Secret1",
		Role:      policy.RoleStaff,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if u.Email != "ana@example.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}
	if u.FirstName != "Ana" {
		t.Fatalf("expected trimmed first name, got %q", u.FirstName)
	}
	if u.PasswordHash == "" || u.PasswordHash == "Secret1" {
		t.Fatalf("password must be stored hashed")
	}
	if !CheckPassword(u.PasswordHash, "Secret1") {
		t.Fatalf("stored hash does not verify the password")
	}
}

func TestService_Create_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(nil)

	in := CreateInput{
		FirstName: "Ana",
		Email:     "ana@example.com",
		Password:  "Secret1",
		Role:      policy.RoleCustomer,
	}
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestService_Create_WeakPassword(t *testing.T) {
	svc, _ := newTestService(nil)

	for _, pw := range []string{"short", "alllowercase1", "ALLUPPER1", "NoDigits"} {
		_, err := svc.Create(context.Background(), CreateInput{
			FirstName: "Ana",
			Email:     "ana@example.com",
			Password:  pw,
			Role:      policy.RoleCustomer,
		})
		if !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("password %q: expected ErrWeakPassword, got %v", pw, err)
		}
	}
}

func TestService_Create_UnknownRole(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.Create(context.Background(), CreateInput{
		FirstName: "Ana",
		Email:     "ana@example.com",
		Password:  "Secret1",
		Role:      policy.Role("root"),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Update_PreservesPasswordHash(t *testing.T) {
	svc, repo := newTestService(nil)

	u, err := svc.Create(context.Background(), CreateInput{
		FirstName: "Ana",
		Email:     "ana@example.com",
		Password:  "Secret1",
		Role:      policy.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(context.Background(), u.ID, UpdateInput{
		FirstName: "Ana María",
		LastName:  "Silva",
		Email:     "ana@example.com",
		Role:      policy.RoleStaff,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Role != policy.RoleStaff {
		t.Fatalf("expected role staff, got %q", updated.Role)
	}
	stored := repo.byID[u.ID]
	if stored.PasswordHash != u.PasswordHash {
		t.Fatalf("update must not touch the password hash")
	}
}

func TestService_Delete_SelfDeleteBlocked(t *testing.T) {
	svc, _ := newTestService(nil)

	u, err := svc.Create(context.Background(), CreateInput{
		FirstName: "Ana",
		Email:     "ana@example.com",
		Password:  "Secret1",
		Role:      policy.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), u.ID, u.ID); !errors.Is(err, ErrSelfDelete) {
		t.Fatalf("expected ErrSelfDelete, got %v", err)
	}
}

func TestService_Delete_BlockedByLinkedDogs(t *testing.T) {
	svc, repo := newTestService(nil)

	u, err := svc.Create(context.Background(), CreateInput{
		FirstName: "Ana",
		Email:     "ana@example.com",
		Password:  "Secret1",
		Role:      policy.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	svc.deps = &testDeps{counts: map[string]int{u.ID: 2}}

	err = svc.Delete(context.Background(), u.ID, "admin-1")
	var depErr *DependentsError
	if !errors.As(err, &depErr) {
		t.Fatalf("expected DependentsError, got %v", err)
	}
	if depErr.Count != 2 {
		t.Fatalf("expected count 2 in conflict, got %d", depErr.Count)
	}
	if _, ok := repo.byID[u.ID]; !ok {
		t.Fatalf("blocked delete must not remove the user")
	}
}

func TestService_Delete_NotFound(t *testing.T) {
	svc, _ := newTestService(nil)

	if err := svc.Delete(context.Background(), "missing", "admin-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
