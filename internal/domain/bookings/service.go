package bookings

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// Referencias rotas: la reserva exige filas existentes.
	ErrUnknownDog    = errors.New("dog does not exist")
	ErrUnknownKennel = errors.New("kennel does not exist")

	ErrBadDates = errors.New("check-out must be after check-in")
)

// Lookups locales para no importar dogs/kennels (rompe ciclos).
type DogLookup interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type KennelLookup interface {
	PricePerDay(ctx context.Context, id string) (float64, bool, error)
}

type Service struct {
	repo    Repository
	dogs    DogLookup
	kennels KennelLookup
	now     func() time.Time
}

func NewService(repo Repository, dogs DogLookup, kennels KennelLookup) *Service {
	return &Service{
		repo:    repo,
		dogs:    dogs,
		kennels: kennels,
		now:     time.Now,
	}
}

type CreateInput struct {
	DogID    string
	KennelID string
	CheckIn  time.Time
	CheckOut time.Time
	// TotalCost 0 => se calcula: noches x precio por día del kennel.
	TotalCost float64
	Status    string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Booking, error) {
	dogID := strings.TrimSpace(in.DogID)
	kennelID := strings.TrimSpace(in.KennelID)
	if dogID == "" || kennelID == "" || in.CheckIn.IsZero() || in.CheckOut.IsZero() {
		return Booking{}, ErrInvalidInput
	}
	if !in.CheckOut.After(in.CheckIn) {
		return Booking{}, ErrBadDates
	}

	ok, err := s.dogs.Exists(ctx, dogID)
	if err != nil {
		return Booking{}, err
	}
	if !ok {
		return Booking{}, ErrUnknownDog
	}

	price, ok, err := s.kennels.PricePerDay(ctx, kennelID)
	if err != nil {
		return Booking{}, err
	}
	if !ok {
		return Booking{}, ErrUnknownKennel
	}

	cost := in.TotalCost
	if cost == 0 {
		cost = price * nights(in.CheckIn, in.CheckOut)
	}
	if cost < 0 {
		return Booking{}, ErrInvalidInput
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = StatusPending
	}

	now := s.now()
	b := Booking{
		ID:        uuid.NewString(),
		DogID:     dogID,
		KennelID:  kennelID,
		CheckIn:   in.CheckIn,
		CheckOut:  in.CheckOut,
		TotalCost: cost,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return Booking{}, err
	}
	return b, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Booking, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) List(ctx context.Context) ([]Booking, error) {
	return s.repo.List(ctx)
}

// ListByDogIDs devuelve las reservas del scope (lista vacía si no hay perros).
func (s *Service) ListByDogIDs(ctx context.Context, dogIDs []string) ([]Booking, error) {
	if len(dogIDs) == 0 {
		return []Booking{}, nil
	}
	return s.repo.ListByDogIDs(ctx, dogIDs)
}

type UpdateInput struct {
	DogID     string
	KennelID  string
	CheckIn   time.Time
	CheckOut  time.Time
	TotalCost float64
	Status    string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Booking, error) {
	current, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Booking{}, err
	}

	dogID := strings.TrimSpace(in.DogID)
	kennelID := strings.TrimSpace(in.KennelID)
	if dogID == "" || kennelID == "" || in.CheckIn.IsZero() || in.CheckOut.IsZero() {
		return Booking{}, ErrInvalidInput
	}
	if !in.CheckOut.After(in.CheckIn) {
		return Booking{}, ErrBadDates
	}

	if dogID != current.DogID {
		ok, err := s.dogs.Exists(ctx, dogID)
		if err != nil {
			return Booking{}, err
		}
		if !ok {
			return Booking{}, ErrUnknownDog
		}
	}

	price, ok, err := s.kennels.PricePerDay(ctx, kennelID)
	if err != nil {
		return Booking{}, err
	}
	if !ok {
		return Booking{}, ErrUnknownKennel
	}

	cost := in.TotalCost
	if cost == 0 {
		cost = price * nights(in.CheckIn, in.CheckOut)
	}
	if cost < 0 {
		return Booking{}, ErrInvalidInput
	}

	current.DogID = dogID
	current.KennelID = kennelID
	current.CheckIn = in.CheckIn
	current.CheckOut = in.CheckOut
	current.TotalCost = cost
	if st := strings.TrimSpace(in.Status); st != "" {
		current.Status = st
	}
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Booking{}, err
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

// nights cuenta días completos entre check-in y check-out (mínimo 1).
func nights(in, out time.Time) float64 {
	n := out.Sub(in).Hours() / 24
	if n < 1 {
		return 1
	}
	// Redondeo hacia arriba: una fracción de día se cobra completa.
	whole := float64(int(n))
	if n > whole {
		whole++
	}
	return whole
}
