package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"kennel-manager/internal/domain/customers"
)

type customersRepo struct {
	mu   sync.RWMutex
	byID map[string]customers.Customer
}

func NewCustomersRepo() customers.Repository {
	return &customersRepo{
		byID: make(map[string]customers.Customer),
	}
}

func (r *customersRepo) Create(ctx context.Context, c customers.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("customer id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("customer already exists")
	}
	for _, other := range r.byID {
		if other.Email == c.Email {
			return customers.ErrEmailTaken
		}
		// Como máximo un Customer por UserID.
		if c.UserID != "" && other.UserID == c.UserID {
			return customers.ErrUserLinked
		}
	}
	r.byID[c.ID] = c
	return nil
}

func (r *customersRepo) Update(ctx context.Context, c customers.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; !exists {
		return customers.ErrNotFound
	}
	for id, other := range r.byID {
		if id != c.ID && other.Email == c.Email {
			return customers.ErrEmailTaken
		}
	}
	r.byID[c.ID] = c
	return nil
}

func (r *customersRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return customers.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *customersRepo) GetByID(ctx context.Context, id string) (customers.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return customers.Customer{}, customers.ErrNotFound
	}
	return c, nil
}

func (r *customersRepo) GetByUserID(ctx context.Context, userID string) (customers.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if strings.TrimSpace(userID) == "" {
		return customers.Customer{}, customers.ErrNotFound
	}
	for _, c := range r.byID {
		if c.UserID == userID {
			return c, nil
		}
	}
	return customers.Customer{}, customers.ErrNotFound
}

func (r *customersRepo) List(ctx context.Context) ([]customers.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]customers.Customer, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}
