package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"kennel-manager/internal/platform/httpclient"
)

// Client es el SDK hacia la API: maneja login/register y las
// operaciones por entidad, adjuntando el bearer token de la sesión
// vigente a cada request.
type Client struct {
	api      *httpclient.Client
	sessions *SessionManager
}

func New(baseURL string, sessions *SessionManager) (*Client, error) {
	if sessions == nil {
		return nil, errors.New("client: nil session manager")
	}
	api, err := httpclient.NewWithBaseURL(baseURL, httpclient.DefaultTimeout)
	if err != nil {
		return nil, err
	}
	return &Client{api: api, sessions: sessions}, nil
}

// Sessions expone el manager para que la UI se suscriba a cambios.
func (c *Client) Sessions() *SessionManager {
	return c.sessions
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var headers map[string]string
	if token := c.sessions.Token(); token != "" {
		headers = map[string]string{"Authorization": "Bearer " + token}
	}
	return c.api.DoJSON(ctx, method, path, headers, in, out)
}

// --- auth ---

type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReply struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (c *Client) Register(ctx context.Context, in RegisterInput) error {
	return c.do(ctx, http.MethodPost, "/auth/register", in, nil)
}

// Login autentica y deja la sesión activa (persistida + notificada).
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var reply loginReply
	err := c.do(ctx, http.MethodPost, "/auth/login", loginPayload{Email: email, Password: password}, &reply)
	if err != nil {
		return Session{}, err
	}

	s := Session{
		Token: reply.Token,
		Email: reply.Email,
		Role:  reply.Role,
	}
	if claims, cerr := decodeTokenClaims(reply.Token); cerr == nil {
		s.UserID = claims.Subject
	}

	if err := c.sessions.Set(s); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}
	return s, nil
}

func (c *Client) Logout() error {
	return c.sessions.Clear()
}

// --- customers ---

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	UserID    string    `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) ListCustomers(ctx context.Context) ([]Customer, error) {
	var out []Customer
	err := c.do(ctx, http.MethodGet, "/customers", nil, &out)
	return out, err
}

func (c *Client) GetCustomer(ctx context.Context, id string) (Customer, error) {
	var out Customer
	err := c.do(ctx, http.MethodGet, "/customers/"+id, nil, &out)
	return out, err
}

func (c *Client) CreateCustomer(ctx context.Context, in Customer) (Customer, error) {
	var out Customer
	err := c.do(ctx, http.MethodPost, "/customers", in, &out)
	return out, err
}

func (c *Client) UpdateCustomer(ctx context.Context, id string, in Customer) (Customer, error) {
	var out Customer
	err := c.do(ctx, http.MethodPut, "/customers/"+id, in, &out)
	return out, err
}

func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/customers/"+id, nil, nil)
}

// --- dogs ---

type Dog struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Breed      string    `json:"breed"`
	Age        int       `json:"age"`
	CustomerID string    `json:"customer_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (c *Client) ListDogs(ctx context.Context) ([]Dog, error) {
	var out []Dog
	err := c.do(ctx, http.MethodGet, "/dogs", nil, &out)
	return out, err
}

func (c *Client) GetDog(ctx context.Context, id string) (Dog, error) {
	var out Dog
	err := c.do(ctx, http.MethodGet, "/dogs/"+id, nil, &out)
	return out, err
}

func (c *Client) CreateDog(ctx context.Context, in Dog) (Dog, error) {
	var out Dog
	err := c.do(ctx, http.MethodPost, "/dogs", in, &out)
	return out, err
}

func (c *Client) UpdateDog(ctx context.Context, id string, in Dog) (Dog, error) {
	var out Dog
	err := c.do(ctx, http.MethodPut, "/dogs/"+id, in, &out)
	return out, err
}

func (c *Client) DeleteDog(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/dogs/"+id, nil, nil)
}

// --- kennels ---

type Kennel struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Size        string    `json:"size"`
	Available   bool      `json:"available"`
	PricePerDay float64   `json:"price_per_day"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Client) ListKennels(ctx context.Context) ([]Kennel, error) {
	var out []Kennel
	err := c.do(ctx, http.MethodGet, "/kennels", nil, &out)
	return out, err
}

func (c *Client) GetKennel(ctx context.Context, id string) (Kennel, error) {
	var out Kennel
	err := c.do(ctx, http.MethodGet, "/kennels/"+id, nil, &out)
	return out, err
}

func (c *Client) CreateKennel(ctx context.Context, in Kennel) (Kennel, error) {
	var out Kennel
	err := c.do(ctx, http.MethodPost, "/kennels", in, &out)
	return out, err
}

func (c *Client) UpdateKennel(ctx context.Context, id string, in Kennel) (Kennel, error) {
	var out Kennel
	err := c.do(ctx, http.MethodPut, "/kennels/"+id, in, &out)
	return out, err
}

func (c *Client) DeleteKennel(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/kennels/"+id, nil, nil)
}

// --- bookings ---

// BookingInput usa fechas YYYY-MM-DD como el endpoint.
type BookingInput struct {
	ID        string  `json:"id"`
	DogID     string  `json:"dog_id"`
	KennelID  string  `json:"kennel_id"`
	CheckIn   string  `json:"check_in"`
	CheckOut  string  `json:"check_out"`
	TotalCost float64 `json:"total_cost"`
	Status    string  `json:"status"`
}

type Booking struct {
	ID        string    `json:"id"`
	DogID     string    `json:"dog_id"`
	KennelID  string    `json:"kennel_id"`
	CheckIn   time.Time `json:"check_in"`
	CheckOut  time.Time `json:"check_out"`
	TotalCost float64   `json:"total_cost"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) ListBookings(ctx context.Context) ([]Booking, error) {
	var out []Booking
	err := c.do(ctx, http.MethodGet, "/bookings", nil, &out)
	return out, err
}

func (c *Client) GetBooking(ctx context.Context, id string) (Booking, error) {
	var out Booking
	err := c.do(ctx, http.MethodGet, "/bookings/"+id, nil, &out)
	return out, err
}

func (c *Client) CreateBooking(ctx context.Context, in BookingInput) (Booking, error) {
	var out Booking
	err := c.do(ctx, http.MethodPost, "/bookings", in, &out)
	return out, err
}

func (c *Client) UpdateBooking(ctx context.Context, id string, in BookingInput) (Booking, error) {
	var out Booking
	err := c.do(ctx, http.MethodPut, "/bookings/"+id, in, &out)
	return out, err
}

func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/bookings/"+id, nil, nil)
}

// --- users ---

type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Password  string    `json:"password,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	err := c.do(ctx, http.MethodGet, "/users", nil, &out)
	return out, err
}

func (c *Client) GetUser(ctx context.Context, id string) (User, error) {
	var out User
	err := c.do(ctx, http.MethodGet, "/users/"+id, nil, &out)
	return out, err
}

func (c *Client) CreateUser(ctx context.Context, in User) (User, error) {
	var out User
	err := c.do(ctx, http.MethodPost, "/users", in, &out)
	return out, err
}

func (c *Client) UpdateUser(ctx context.Context, id string, in User) (User, error) {
	var out User
	err := c.do(ctx, http.MethodPut, "/users/"+id, in, &out)
	return out, err
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+id, nil, nil)
}
