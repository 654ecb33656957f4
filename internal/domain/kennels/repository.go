package kennels

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("kennel not found")

type Repository interface {
	Create(ctx context.Context, k Kennel) error
	Update(ctx context.Context, k Kennel) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Kennel, error)
	List(ctx context.Context) ([]Kennel, error)
}
