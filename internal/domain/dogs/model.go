package dogs

import "time"

// Dog es un perro registrado. CustomerID vacío => sin dueño asignado
// (solo admin/staff pueden dejarlo así).
type Dog struct {
	ID         string
	Name       string
	Breed      string
	Age        int
	CustomerID string

	CreatedAt time.Time
	UpdatedAt time.Time
}
