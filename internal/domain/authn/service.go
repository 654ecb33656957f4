package authn

import (
	"context"
	"errors"
	"time"

	"kennel-manager/internal/domain/customers"
	"kennel-manager/internal/domain/policy"
	"kennel-manager/internal/domain/users"
	"kennel-manager/internal/ports/auth"
)

var (
	ErrBadCredentials = errors.New("invalid email or password")
	ErrUnknownRole    = errors.New("unknown role")
)

const DefaultTokenTTL = 60 * time.Minute

type Service struct {
	users     *users.Service
	customers *customers.Service
	issuer    auth.TokenIssuer
	tokenTTL  time.Duration
}

func NewService(usersSvc *users.Service, customersSvc *customers.Service, issuer auth.TokenIssuer, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &Service{
		users:     usersSvc,
		customers: customersSvc,
		issuer:    issuer,
		tokenTTL:  tokenTTL,
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

// Register crea la cuenta y, solo para rol customer, el perfil Customer
// ligado (teléfono vacío). No emite token: el login es un paso aparte.
func (s *Service) Register(ctx context.Context, in RegisterInput) (users.User, error) {
	role, ok := policy.ParseRole(in.Role)
	if !ok {
		return users.User{}, ErrUnknownRole
	}

	u, err := s.users.Create(ctx, users.CreateInput{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  in.Password,
		Role:      role,
	})
	if err != nil {
		return users.User{}, err
	}

	if role == policy.RoleCustomer {
		if _, err := s.customers.Create(ctx, customers.CreateInput{
			Name:   u.DisplayName(),
			Email:  u.Email,
			Phone:  "",
			UserID: u.ID,
		}); err != nil {
			return users.User{}, err
		}
	}

	return u, nil
}

type LoginResult struct {
	Token string
	Email string
	Role  policy.Role
}

// Login valida credenciales y emite el token de sesión con claims
// {user id, email, display name, rol}.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Email desconocido y password malo responden igual.
		return LoginResult{}, ErrBadCredentials
	}
	if !users.CheckPassword(u.PasswordHash, password) {
		return LoginResult{}, ErrBadCredentials
	}

	token, err := s.issuer.Issue(auth.Claims{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.DisplayName(),
		Role:   string(u.Role),
	}, s.tokenTTL)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		Token: token,
		Email: u.Email,
		Role:  u.Role,
	}, nil
}
