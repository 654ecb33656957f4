package bookings

import "context"

// BookingIDsByDogs implementa policy.BookingResolver.
func (s *Service) BookingIDsByDogs(ctx context.Context, dogIDs []string) ([]string, error) {
	items, err := s.ListByDogIDs(ctx, dogIDs)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(items))
	for _, b := range items {
		ids = append(ids, b.ID)
	}
	return ids, nil
}
