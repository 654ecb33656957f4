package jwtauth

import (
	"context"
	"errors"
	"strings"
	"time"

	"kennel-manager/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotConfigured = errors.New("jwt signer not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

// Config del firmador. Secret es obligatorio; issuer/audience se validan
// en ambos sentidos (emisión y verificación).
type Config struct {
	Secret   string
	Issuer   string
	Audience string
}

// Signer implementa auth.TokenIssuer y auth.TokenVerifier con HMAC-SHA256.
type Signer struct {
	secret   []byte
	issuer   string
	audience string
	now      func() time.Time
}

func New(cfg Config) (*Signer, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, ErrNotConfigured
	}
	return &Signer{
		secret:   []byte(cfg.Secret),
		issuer:   strings.TrimSpace(cfg.Issuer),
		audience: strings.TrimSpace(cfg.Audience),
		now:      time.Now,
	}, nil
}

type sessionClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func (s *Signer) Issue(claims auth.Claims, ttl time.Duration) (string, error) {
	if s == nil {
		return "", ErrNotConfigured
	}
	now := s.now()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return t.SignedString(s.secret)
}

// Verify valida firma, issuer, audience y expiración. Cualquier fallo
// deja al caller como no-autenticado (el middleware no distingue causas).
func (s *Signer) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if s == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return auth.Claims{}, ErrInvalidToken
	}

	userID := strings.TrimSpace(claims.Subject)
	if userID == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{
		UserID: userID,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   claims.Role,
	}, nil
}
