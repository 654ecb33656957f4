package kennels

import (
	"context"
	"errors"
	"strings"
)

// PricePerDay se usa desde bookings para validar la referencia KennelID
// y calcular el costo total. ok=false si el kennel no existe.
func (s *Service) PricePerDay(ctx context.Context, id string) (float64, bool, error) {
	k, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return k.PricePerDay, true, nil
}
