package dogs

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownCustomer: el CustomerID no referencia una fila existente.
	ErrUnknownCustomer = errors.New("customer does not exist")
)

// CustomerLookup evita importar el paquete customers (rompe ciclos).
type CustomerLookup interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo      Repository
	customers CustomerLookup
	now       func() time.Time
}

func NewService(repo Repository, customers CustomerLookup) *Service {
	return &Service{
		repo:      repo,
		customers: customers,
		now:       time.Now,
	}
}

type CreateInput struct {
	Name       string
	Breed      string
	Age        int
	CustomerID string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Dog, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Age < 0 {
		return Dog{}, ErrInvalidInput
	}

	customerID := strings.TrimSpace(in.CustomerID)
	if customerID != "" {
		ok, err := s.customers.Exists(ctx, customerID)
		if err != nil {
			return Dog{}, err
		}
		if !ok {
			return Dog{}, ErrUnknownCustomer
		}
	}

	now := s.now()
	d := Dog{
		ID:         uuid.NewString(),
		Name:       name,
		Breed:      strings.TrimSpace(in.Breed),
		Age:        in.Age,
		CustomerID: customerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return Dog{}, err
	}
	return d, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Dog, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) List(ctx context.Context) ([]Dog, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByCustomer(ctx context.Context, customerID string) ([]Dog, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		// Caller sin perfil: listado scoped vacío, no error.
		return []Dog{}, nil
	}
	return s.repo.ListByCustomer(ctx, customerID)
}

type UpdateInput struct {
	Name       string
	Breed      string
	Age        int
	CustomerID string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Dog, error) {
	current, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Dog{}, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" || in.Age < 0 {
		return Dog{}, ErrInvalidInput
	}

	customerID := strings.TrimSpace(in.CustomerID)
	if customerID != "" && customerID != current.CustomerID {
		ok, err := s.customers.Exists(ctx, customerID)
		if err != nil {
			return Dog{}, err
		}
		if !ok {
			return Dog{}, ErrUnknownCustomer
		}
	}

	current.Name = name
	current.Breed = strings.TrimSpace(in.Breed)
	current.Age = in.Age
	current.CustomerID = customerID
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Dog{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
