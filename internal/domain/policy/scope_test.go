package policy

import (
	"context"
	"errors"
	"testing"
)

// -------------------------
// Fakes de lookup
// -------------------------

type fakeCustomers struct {
	byUser map[string]string
	err    error
}

func (f *fakeCustomers) CustomerIDByUser(ctx context.Context, userID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.byUser[userID], nil
}

type fakeDogs struct {
	byCustomer map[string][]string
}

func (f *fakeDogs) DogIDsByCustomer(ctx context.Context, customerID string) ([]string, error) {
	return f.byCustomer[customerID], nil
}

type fakeBookings struct {
	byDog map[string][]string
}

func (f *fakeBookings) BookingIDsByDogs(ctx context.Context, dogIDs []string) ([]string, error) {
	out := []string{}
	for _, d := range dogIDs {
		out = append(out, f.byDog[d]...)
	}
	return out, nil
}

func newTestResolver() *ScopeResolver {
	return NewScopeResolver(
		&fakeCustomers{byUser: map[string]string{"user-1": "cust-1"}},
		&fakeDogs{byCustomer: map[string][]string{"cust-1": {"dog-1", "dog-2"}}},
		&fakeBookings{byDog: map[string][]string{
			"dog-1": {"bk-1"},
			"dog-2": {"bk-2", "bk-3"},
			"dog-9": {"bk-9"}, // de otro cliente, no debe aparecer
		}},
	)
}

func TestResolve_FullOwnershipChain(t *testing.T) {
	r := newTestResolver()

	s, err := r.Resolve(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.CustomerID != "cust-1" || !s.HasProfile() {
		t.Fatalf("expected cust-1 profile, got %+v", s)
	}
	if !s.OwnsDog("dog-1") || !s.OwnsDog("dog-2") || s.OwnsDog("dog-9") {
		t.Fatalf("unexpected dog scope: %+v", s.DogIDs)
	}
	for _, id := range []string{"bk-1", "bk-2", "bk-3"} {
		if !s.OwnsBooking(id) {
			t.Fatalf("expected booking %s in scope", id)
		}
	}
	if s.OwnsBooking("bk-9") {
		t.Fatalf("bk-9 belongs to another customer")
	}
}

func TestResolve_UserWithoutProfile_EmptyScope(t *testing.T) {
	r := newTestResolver()

	s, err := r.Resolve(context.Background(), "user-without-profile")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.HasProfile() || len(s.DogIDs) != 0 || len(s.BookingIDs) != 0 {
		t.Fatalf("expected empty scope, got %+v", s)
	}
}

func TestResolve_LookupErrorPropagates(t *testing.T) {
	boom := errors.New("db down")
	r := NewScopeResolver(&fakeCustomers{err: boom}, &fakeDogs{}, &fakeBookings{})

	if _, err := r.Resolve(context.Background(), "user-1"); !errors.Is(err, boom) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}

func TestForCreateDog(t *testing.T) {
	withProfile := Scope{CustomerID: "cust-1"}

	// Sin CustomerID explícito => se fuerza al propio.
	got, err := withProfile.ForCreateDog("")
	if err != nil || got != "cust-1" {
		t.Fatalf("expected own customer, got %q err=%v", got, err)
	}

	// CustomerID propio explícito => ok.
	if _, err := withProfile.ForCreateDog("cust-1"); err != nil {
		t.Fatalf("own explicit id should pass: %v", err)
	}

	// CustomerID ajeno => validación, no forbidden.
	if _, err := withProfile.ForCreateDog("cust-2"); !errors.Is(err, ErrWrongOwner) {
		t.Fatalf("expected ErrWrongOwner, got %v", err)
	}

	// Sin perfil => validación.
	if _, err := (Scope{}).ForCreateDog(""); !errors.Is(err, ErrNoProfile) {
		t.Fatalf("expected ErrNoProfile, got %v", err)
	}
}

func TestForCreateBooking(t *testing.T) {
	s := Scope{
		CustomerID: "cust-1",
		DogIDs:     map[string]struct{}{"dog-1": {}},
	}

	if err := s.ForCreateBooking("dog-1"); err != nil {
		t.Fatalf("own dog should pass: %v", err)
	}
	if err := s.ForCreateBooking("dog-9"); !errors.Is(err, ErrWrongOwner) {
		t.Fatalf("expected ErrWrongOwner, got %v", err)
	}
	if err := (Scope{}).ForCreateBooking("dog-1"); !errors.Is(err, ErrNoProfile) {
		t.Fatalf("expected ErrNoProfile, got %v", err)
	}
}
