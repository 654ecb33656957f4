package dogs

import (
	"context"
	"strings"
)

// DogIDsByCustomer implementa policy.DogResolver.
func (s *Service) DogIDsByCustomer(ctx context.Context, customerID string) ([]string, error) {
	items, err := s.repo.ListByCustomer(ctx, strings.TrimSpace(customerID))
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(items))
	for _, d := range items {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

// Exists se usa desde bookings para validar la referencia DogID.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if err == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
