package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"kennel-manager/internal/domain/kennels"
)

type kennelsRepo struct {
	mu   sync.RWMutex
	byID map[string]kennels.Kennel
}

func NewKennelsRepo() kennels.Repository {
	return &kennelsRepo{
		byID: make(map[string]kennels.Kennel),
	}
}

func (r *kennelsRepo) Create(ctx context.Context, k kennels.Kennel) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(k.ID) == "" {
		return errors.New("kennel id required")
	}
	if _, exists := r.byID[k.ID]; exists {
		return errors.New("kennel already exists")
	}
	r.byID[k.ID] = k
	return nil
}

func (r *kennelsRepo) Update(ctx context.Context, k kennels.Kennel) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[k.ID]; !exists {
		return kennels.ErrNotFound
	}
	r.byID[k.ID] = k
	return nil
}

func (r *kennelsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return kennels.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *kennelsRepo) GetByID(ctx context.Context, id string) (kennels.Kennel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	k, ok := r.byID[id]
	if !ok {
		return kennels.Kennel{}, kennels.ErrNotFound
	}
	return k, nil
}

func (r *kennelsRepo) List(ctx context.Context) ([]kennels.Kennel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]kennels.Kennel, 0, len(r.byID))
	for _, k := range r.byID {
		out = append(out, k)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}
