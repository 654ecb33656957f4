package jwtauth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"kennel-manager/internal/ports/auth"
)

func newTestSigner(t *testing.T) *Signer {
	t.Helper()
	s, err := New(Config{
		Secret:   "test-secret",
		Issuer:   "kennel-manager",
		Audience: "kennel-manager-api",
	})
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	return s
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	s := newTestSigner(t)

	in := auth.Claims{
		UserID: "user-1",
		Email:  "ana@example.com",
		Name:   "Ana Silva",
		Role:   "customer",
	}
	token, err := s.Issue(in, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if len(strings.Split(token, ".")) != 3 {
		t.Fatalf("expected a compact JWT, got %q", token)
	}

	out, err := s.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if out != in {
		t.Fatalf("claims mismatch: got %+v want %+v", out, in)
	}
}

func TestVerify_ExpiredToken(t *testing.T) {
	s := newTestSigner(t)

	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }

	token, err := s.Issue(auth.Claims{UserID: "user-1"}, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	s.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := s.Verify(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerify_WrongIssuerOrAudience(t *testing.T) {
	other, err := New(Config{Secret: "test-secret", Issuer: "someone-else", Audience: "kennel-manager-api"})
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	token, err := other.Issue(auth.Claims{UserID: "user-1"}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	s := newTestSigner(t)
	if _, err := s.Verify(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign issuer, got %v", err)
	}
}

func TestVerify_TamperedToken(t *testing.T) {
	s := newTestSigner(t)

	token, err := s.Issue(auth.Claims{UserID: "user-1", Role: "customer"}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Romper la firma.
	tampered := token[:len(token)-2] + "xx"
	if _, err := s.Verify(context.Background(), tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}

	// Secret distinto.
	otherSecret, err := New(Config{Secret: "other", Issuer: "kennel-manager", Audience: "kennel-manager-api"})
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	if _, err := otherSecret.Verify(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken across secrets, got %v", err)
	}
}

func TestVerify_EmptyToken(t *testing.T) {
	s := newTestSigner(t)

	if _, err := s.Verify(context.Background(), "  "); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestNew_RequiresSecret(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
