package dogs

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("dog not found")

type Repository interface {
	Create(ctx context.Context, d Dog) error
	Update(ctx context.Context, d Dog) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Dog, error)
	List(ctx context.Context) ([]Dog, error)
	ListByCustomer(ctx context.Context, customerID string) ([]Dog, error)
	CountByCustomer(ctx context.Context, customerID string) (int, error)
}
