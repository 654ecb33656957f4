package policy

import (
	"context"
	"strings"
)

// Scope es el conjunto de ids que un caller con rol customer puede tocar.
// Se resuelve una sola vez por request.
type Scope struct {
	// CustomerID es la fila Customer ligada al user del caller.
	// Vacío => el caller no tiene perfil (los listados scoped quedan vacíos).
	CustomerID string

	DogIDs     map[string]struct{}
	BookingIDs map[string]struct{}
}

func (s Scope) HasProfile() bool { return s.CustomerID != "" }

func (s Scope) OwnsDog(id string) bool {
	_, ok := s.DogIDs[id]
	return ok
}

func (s Scope) OwnsBooking(id string) bool {
	_, ok := s.BookingIDs[id]
	return ok
}

// ForCreateDog decide el CustomerID efectivo para un create de rol customer.
// El server siempre fuerza el dueño al propio Customer; un CustomerID
// explícito de otro cliente es error de validación (no Forbidden).
func (s Scope) ForCreateDog(requested string) (string, error) {
	if !s.HasProfile() {
		return "", ErrNoProfile
	}
	requested = strings.TrimSpace(requested)
	if requested != "" && requested != s.CustomerID {
		return "", ErrWrongOwner
	}
	return s.CustomerID, nil
}

// ForCreateBooking valida que el DogID del booking sea un perro propio.
// Mismo contrato de errores que ForCreateDog.
func (s Scope) ForCreateBooking(dogID string) error {
	if !s.HasProfile() {
		return ErrNoProfile
	}
	if !s.OwnsDog(strings.TrimSpace(dogID)) {
		return ErrWrongOwner
	}
	return nil
}

// Lookups mínimos para resolver la cadena de ownership sin importar los
// paquetes de dominio (evita ciclos).
type CustomerResolver interface {
	// CustomerIDByUser devuelve "" (sin error) si el user no tiene Customer.
	CustomerIDByUser(ctx context.Context, userID string) (string, error)
}

type DogResolver interface {
	DogIDsByCustomer(ctx context.Context, customerID string) ([]string, error)
}

type BookingResolver interface {
	BookingIDsByDogs(ctx context.Context, dogIDs []string) ([]string, error)
}

type ScopeResolver struct {
	customers CustomerResolver
	dogs      DogResolver
	bookings  BookingResolver
}

func NewScopeResolver(customers CustomerResolver, dogs DogResolver, bookings BookingResolver) *ScopeResolver {
	return &ScopeResolver{
		customers: customers,
		dogs:      dogs,
		bookings:  bookings,
	}
}

// Resolve materializa el scope del caller: User -> Customer -> Dogs -> Bookings.
// Un user sin Customer devuelve un scope vacío, no error.
func (r *ScopeResolver) Resolve(ctx context.Context, userID string) (Scope, error) {
	s := Scope{
		DogIDs:     map[string]struct{}{},
		BookingIDs: map[string]struct{}{},
	}

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return s, nil
	}

	custID, err := r.customers.CustomerIDByUser(ctx, userID)
	if err != nil {
		return Scope{}, err
	}
	if custID == "" {
		return s, nil
	}
	s.CustomerID = custID

	dogIDs, err := r.dogs.DogIDsByCustomer(ctx, custID)
	if err != nil {
		return Scope{}, err
	}
	for _, id := range dogIDs {
		s.DogIDs[id] = struct{}{}
	}

	if len(dogIDs) == 0 {
		return s, nil
	}

	bookingIDs, err := r.bookings.BookingIDsByDogs(ctx, dogIDs)
	if err != nil {
		return Scope{}, err
	}
	for _, id := range bookingIDs {
		s.BookingIDs[id] = struct{}{}
	}

	return s, nil
}
