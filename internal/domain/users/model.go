package users

import (
	"strings"
	"time"

	"kennel-manager/internal/domain/policy"
)

// User representa una cuenta del sistema. El rol es exactamente uno de
// admin/staff/customer (ver domain/policy).
type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string

	// PasswordHash es el hash bcrypt; nunca se expone en responses.
	PasswordHash string

	Role policy.Role

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName arma el nombre visible para las claims del token.
func (u User) DisplayName() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}
