package kennels

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name        string
	Size        string
	Available   bool
	PricePerDay float64
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Kennel, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.PricePerDay < 0 {
		return Kennel{}, ErrInvalidInput
	}
	size, ok := ParseSize(in.Size)
	if !ok {
		return Kennel{}, ErrInvalidInput
	}

	now := s.now()
	k := Kennel{
		ID:          uuid.NewString(),
		Name:        name,
		Size:        size,
		Available:   in.Available,
		PricePerDay: in.PricePerDay,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, k); err != nil {
		return Kennel{}, err
	}
	return k, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Kennel, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) List(ctx context.Context) ([]Kennel, error) {
	return s.repo.List(ctx)
}

type UpdateInput struct {
	Name        string
	Size        string
	Available   bool
	PricePerDay float64
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Kennel, error) {
	current, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Kennel{}, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" || in.PricePerDay < 0 {
		return Kennel{}, ErrInvalidInput
	}
	size, ok := ParseSize(in.Size)
	if !ok {
		return Kennel{}, ErrInvalidInput
	}

	current.Name = name
	current.Size = size
	current.Available = in.Available
	current.PricePerDay = in.PricePerDay
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Kennel{}, err
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
