package customers

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("customer not found")
	ErrEmailTaken = errors.New("customer email already in use")

	// ErrUserLinked: ya existe un Customer para ese UserID.
	ErrUserLinked = errors.New("user already has a customer profile")
)

type Repository interface {
	Create(ctx context.Context, c Customer) error
	Update(ctx context.Context, c Customer) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Customer, error)
	// GetByUserID devuelve ErrNotFound si el user no tiene perfil.
	GetByUserID(ctx context.Context, userID string) (Customer, error)
	List(ctx context.Context) ([]Customer, error)
}
