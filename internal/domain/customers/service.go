package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

// DependentsError bloquea el borrado nombrando la cantidad de perros ligados.
type DependentsError struct {
	Count int
}

func (e *DependentsError) Error() string {
	return fmt.Sprintf("customer has %d linked dogs", e.Count)
}

// DogCounter evita importar el paquete dogs (rompe ciclos).
type DogCounter interface {
	CountByCustomer(ctx context.Context, customerID string) (int, error)
}

type Service struct {
	repo Repository
	dogs DogCounter
	now  func() time.Time
}

func NewService(repo Repository, dogs DogCounter) *Service {
	return &Service{
		repo: repo,
		dogs: dogs,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name   string
	Email  string
	Phone  string
	UserID string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Customer, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" {
		return Customer{}, ErrInvalidInput
	}

	userID := strings.TrimSpace(in.UserID)
	if userID != "" {
		if _, err := s.repo.GetByUserID(ctx, userID); err == nil {
			return Customer{}, ErrUserLinked
		}
	}

	now := s.now()
	c := Customer{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(in.Phone),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Customer{}, err
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Customer, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) List(ctx context.Context) ([]Customer, error) {
	return s.repo.List(ctx)
}

type UpdateInput struct {
	Name  string
	Email string
	Phone string
}

// Update no toca UserID: el vínculo cuenta-perfil no se reasigna por API.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Customer, error) {
	current, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Customer{}, err
	}

	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" {
		return Customer{}, ErrInvalidInput
	}

	current.Name = name
	current.Email = email
	current.Phone = strings.TrimSpace(in.Phone)
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Customer{}, err
	}
	return current, nil
}

// Delete bloquea con conflicto mientras el customer tenga perros ligados.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	n, err := s.dogs.CountByCustomer(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &DependentsError{Count: n}
	}

	return s.repo.Delete(ctx, id)
}
