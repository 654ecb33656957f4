package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"kennel-manager/internal/platform/httpclient"
	"kennel-manager/internal/router"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	c, err := New(baseURL, NewSessionManager(store))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func register(t *testing.T, c *Client, email, role string) {
	t.Helper()

	if err := c.Register(context.Background(), RegisterInput{
		Email:     email,
		Password:  "Secret1",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
	}); err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
}

func TestClient_LoginAttachesToken(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	ctx := context.Background()
	c := newTestClient(t, ts.URL)

	register(t, c, "ana@example.com", "customer")

	// Sin sesión, los endpoints protegidos rebotan con 401
	_, err := c.ListDogs(ctx)
	var apiErr *httpclient.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 401 {
		t.Fatalf("expected 401 before login, got %v", err)
	}

	s, err := c.Login(ctx, "ana@example.com", "Secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if s.Role != "customer" || s.Email != "ana@example.com" || s.UserID == "" {
		t.Fatalf("unexpected session: %+v", s)
	}

	// Con sesión el token viaja solo
	created, err := c.CreateDog(ctx, Dog{Name: "Milo", Breed: "mixed", Age: 3})
	if err != nil {
		t.Fatalf("create dog: %v", err)
	}
	if created.ID == "" || created.CustomerID == "" {
		t.Fatalf("expected server-assigned ids, got %+v", created)
	}

	list, err := c.ListDogs(ctx)
	if err != nil {
		t.Fatalf("list dogs: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("unexpected dog list: %+v", list)
	}

	// Logout corta el acceso
	if err := c.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := c.ListDogs(ctx); !errors.As(err, &apiErr) || apiErr.StatusCode != 401 {
		t.Fatalf("expected 401 after logout, got %v", err)
	}
}

func TestClient_AdminWorkflow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	ctx := context.Background()
	c := newTestClient(t, ts.URL)

	register(t, c, "admin@example.com", "admin")
	if _, err := c.Login(ctx, "admin@example.com", "Secret1"); err != nil {
		t.Fatalf("login: %v", err)
	}

	kennel, err := c.CreateKennel(ctx, Kennel{
		Name:        "Box A",
		Size:        "small",
		Available:   true,
		PricePerDay: 18,
	})
	if err != nil {
		t.Fatalf("create kennel: %v", err)
	}

	cust, err := c.CreateCustomer(ctx, Customer{Name: "Walk-in", Email: "walkin@example.com"})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}

	dog, err := c.CreateDog(ctx, Dog{Name: "Rex", CustomerID: cust.ID})
	if err != nil {
		t.Fatalf("create dog: %v", err)
	}

	booking, err := c.CreateBooking(ctx, BookingInput{
		DogID:    dog.ID,
		KennelID: kennel.ID,
		CheckIn:  "2026-03-01",
		CheckOut: "2026-03-03",
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if booking.TotalCost != 36 {
		t.Fatalf("expected 2 nights x 18 = 36, got %v", booking.TotalCost)
	}

	// Error del server mapeado a APIError con el mensaje del body
	_, err = c.CreateBooking(ctx, BookingInput{
		DogID:    dog.ID,
		KennelID: kennel.ID,
		CheckIn:  "2026-03-03",
		CheckOut: "2026-03-01",
	})
	var apiErr *httpclient.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 400 || apiErr.Message == "" {
		t.Fatalf("expected 400 APIError with message, got %v", err)
	}

	if err := c.DeleteBooking(ctx, booking.ID); err != nil {
		t.Fatalf("delete booking: %v", err)
	}
}
