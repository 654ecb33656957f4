package kennels

import (
	"strings"
	"time"
)

// Size define las categorías de tamaño soportadas.
// @Enum small, medium, large
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// ParseSize normaliza una categoría textual. Desconocida => ok=false.
func ParseSize(s string) (Size, bool) {
	switch Size(strings.ToLower(strings.TrimSpace(s))) {
	case SizeSmall:
		return SizeSmall, true
	case SizeMedium:
		return SizeMedium, true
	case SizeLarge:
		return SizeLarge, true
	default:
		return "", false
	}
}

// Kennel es una jaula/box reservable. No tiene dueño: solo admin/staff
// la administran.
type Kennel struct {
	ID          string
	Name        string
	Size        Size
	Available   bool
	PricePerDay float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
