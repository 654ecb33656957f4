package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"kennel-manager/internal/domain/bookings"
)

type bookingsRepo struct {
	mu   sync.RWMutex
	byID map[string]bookings.Booking
}

func NewBookingsRepo() bookings.Repository {
	return &bookingsRepo{
		byID: make(map[string]bookings.Booking),
	}
}

func (r *bookingsRepo) Create(ctx context.Context, b bookings.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(b.ID) == "" {
		return errors.New("booking id required")
	}
	if _, exists := r.byID[b.ID]; exists {
		return errors.New("booking already exists")
	}
	r.byID[b.ID] = b
	return nil
}

func (r *bookingsRepo) Update(ctx context.Context, b bookings.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[b.ID]; !exists {
		return bookings.ErrNotFound
	}
	r.byID[b.ID] = b
	return nil
}

func (r *bookingsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return bookings.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *bookingsRepo) GetByID(ctx context.Context, id string) (bookings.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok {
		return bookings.Booking{}, bookings.ErrNotFound
	}
	return b, nil
}

func (r *bookingsRepo) List(ctx context.Context) ([]bookings.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]bookings.Booking, 0, len(r.byID))
	for _, b := range r.byID {
		out = append(out, b)
	}
	sortBookings(out)
	return out, nil
}

func (r *bookingsRepo) ListByDogIDs(ctx context.Context, dogIDs []string) ([]bookings.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	want := make(map[string]struct{}, len(dogIDs))
	for _, id := range dogIDs {
		want[id] = struct{}{}
	}

	out := make([]bookings.Booking, 0)
	for _, b := range r.byID {
		if _, ok := want[b.DogID]; ok {
			out = append(out, b)
		}
	}
	sortBookings(out)
	return out, nil
}

func sortBookings(out []bookings.Booking) {
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
}
