package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kennel-manager/internal/domain/policy"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrSelfDelete: un admin no puede borrar su propia cuenta (conflicto).
	ErrSelfDelete = errors.New("cannot delete your own user account")
)

// DependentsError bloquea el borrado nombrando la cantidad de perros
// ligados al perfil Customer del usuario.
type DependentsError struct {
	Count int
}

func (e *DependentsError) Error() string {
	return fmt.Sprintf("user has a customer profile with %d linked dogs", e.Count)
}

// DependentCounter cuenta los perros alcanzables vía el Customer del user.
// Interface local para no importar customers/dogs (evita ciclos).
type DependentCounter interface {
	DogCountByUser(ctx context.Context, userID string) (int, error)
}

type Service struct {
	repo Repository
	deps DependentCounter
	now  func() time.Time
}

func NewService(repo Repository, deps DependentCounter) *Service {
	return &Service{
		repo: repo,
		deps: deps,
		now:  time.Now,
	}
}

type CreateInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      policy.Role
}

func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || strings.TrimSpace(in.FirstName) == "" {
		return User{}, ErrInvalidInput
	}
	if _, ok := policy.ParseRole(string(in.Role)); !ok {
		return User{}, ErrInvalidInput
	}
	if err := ValidatePassword(in.Password); err != nil {
		return User{}, err
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return User{}, err
	}

	now := s.now()
	u := User{
		ID:           uuid.NewString(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

type UpdateInput struct {
	FirstName string
	LastName  string
	Email     string
	Role      policy.Role
}

// Update modifica perfil y rol. El password se cambia por otra vía,
// acá se preserva el hash vigente.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (User, error) {
	current, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return User{}, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || strings.TrimSpace(in.FirstName) == "" {
		return User{}, ErrInvalidInput
	}
	if _, ok := policy.ParseRole(string(in.Role)); !ok {
		return User{}, ErrInvalidInput
	}
	if email != current.Email {
		if _, err := s.repo.GetByEmail(ctx, email); err == nil {
			return User{}, ErrEmailTaken
		}
	}

	current.FirstName = strings.TrimSpace(in.FirstName)
	current.LastName = strings.TrimSpace(in.LastName)
	current.Email = email
	current.Role = in.Role
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return User{}, err
	}
	return current, nil
}

// Delete borra un usuario. Bloquea con conflicto el auto-borrado y los
// usuarios cuyo Customer todavía tiene perros ligados.
func (s *Service) Delete(ctx context.Context, id, callerUserID string) error {
	id = strings.TrimSpace(id)

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if id == strings.TrimSpace(callerUserID) {
		return ErrSelfDelete
	}

	n, err := s.deps.DogCountByUser(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &DependentsError{Count: n}
	}

	return s.repo.Delete(ctx, id)
}
