package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"kennel-manager/internal/domain/dogs"
)

type dogsRepo struct {
	mu   sync.RWMutex
	byID map[string]dogs.Dog
}

func NewDogsRepo() dogs.Repository {
	return &dogsRepo{
		byID: make(map[string]dogs.Dog),
	}
}

func (r *dogsRepo) Create(ctx context.Context, d dogs.Dog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(d.ID) == "" {
		return errors.New("dog id required")
	}
	if _, exists := r.byID[d.ID]; exists {
		return errors.New("dog already exists")
	}
	r.byID[d.ID] = d
	return nil
}

func (r *dogsRepo) Update(ctx context.Context, d dogs.Dog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[d.ID]; !exists {
		return dogs.ErrNotFound
	}
	r.byID[d.ID] = d
	return nil
}

func (r *dogsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return dogs.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *dogsRepo) GetByID(ctx context.Context, id string) (dogs.Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	return d, nil
}

func (r *dogsRepo) List(ctx context.Context) ([]dogs.Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dogs.Dog, 0, len(r.byID))
	for _, d := range r.byID {
		out = append(out, d)
	}
	sortDogs(out)
	return out, nil
}

func (r *dogsRepo) ListByCustomer(ctx context.Context, customerID string) ([]dogs.Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dogs.Dog, 0)
	for _, d := range r.byID {
		if d.CustomerID == customerID {
			out = append(out, d)
		}
	}
	sortDogs(out)
	return out, nil
}

func (r *dogsRepo) CountByCustomer(ctx context.Context, customerID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, d := range r.byID {
		if d.CustomerID == customerID {
			n++
		}
	}
	return n, nil
}

func sortDogs(out []dogs.Dog) {
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
}
