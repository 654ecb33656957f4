package customers

import "time"

// Customer representa el perfil de cliente. UserID liga el perfil a una
// cuenta (como máximo un Customer por UserID); vacío => perfil sin cuenta,
// creado manualmente por admin/staff.
type Customer struct {
	ID     string
	Name   string
	Email  string
	Phone  string
	UserID string

	CreatedAt time.Time
	UpdatedAt time.Time
}
