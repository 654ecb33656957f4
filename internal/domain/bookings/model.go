package bookings

import "time"

// Estados usuales; Status es una etiqueta libre, no un tipo cerrado
// (compatibilidad con datos existentes).
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCancelled = "Cancelled"
)

// Booking es una reserva de kennel para un perro. El ownership es
// transitivo: Booking -> Dog -> Customer -> User.
type Booking struct {
	ID       string
	DogID    string
	KennelID string

	CheckIn  time.Time
	CheckOut time.Time

	TotalCost float64
	Status    string

	CreatedAt time.Time
	UpdatedAt time.Time
}
