package auth

// Claims representa la información extraída del token de sesión.
type Claims struct {
	UserID string
	Email  string
	Name   string // display name (first + last)
	Role   string // admin | staff | customer (ver domain/policy)
}
