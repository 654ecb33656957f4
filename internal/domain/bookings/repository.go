package bookings

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("booking not found")

type Repository interface {
	Create(ctx context.Context, b Booking) error
	Update(ctx context.Context, b Booking) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Booking, error)
	List(ctx context.Context) ([]Booking, error)
	ListByDogIDs(ctx context.Context, dogIDs []string) ([]Booking, error)
}
