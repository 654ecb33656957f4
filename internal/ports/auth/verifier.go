package auth

import (
	"context"
	"time"
)

// TokenVerifier verifica un token y devuelve claims o error.
// Tokens expirados o malformados => error (el caller queda no-autenticado).
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer firma un token de sesión con las claims dadas.
type TokenIssuer interface {
	Issue(claims Claims, ttl time.Duration) (string, error)
}
