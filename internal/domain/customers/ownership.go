package customers

import (
	"context"
	"errors"
	"strings"
)

// CustomerIDByUser implementa policy.CustomerResolver.
// User sin perfil => "" sin error (el scope queda vacío, no es fallo).
func (s *Service) CustomerIDByUser(ctx context.Context, userID string) (string, error) {
	c, err := s.repo.GetByUserID(ctx, strings.TrimSpace(userID))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return c.ID, nil
}

// Exists se usa desde dogs para validar referencias a Customer.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DogCountByUser implementa users.DependentCounter: perros alcanzables
// vía el perfil Customer del usuario (0 si no hay perfil).
func (s *Service) DogCountByUser(ctx context.Context, userID string) (int, error) {
	c, err := s.repo.GetByUserID(ctx, strings.TrimSpace(userID))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return s.dogs.CountByCustomer(ctx, c.ID)
}
