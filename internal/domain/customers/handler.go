package customers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"kennel-manager/internal/domain/policy"
	"kennel-manager/internal/middleware"
	"kennel-manager/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/customers", func(cr chi.Router) {
		cr.Get("/", listCustomersHandler(svc))
		cr.Post("/", createCustomerHandler(svc))
		cr.Get("/{customerID}", getCustomerHandler(svc))
		cr.Put("/{customerID}", updateCustomerHandler(svc))
		cr.Delete("/{customerID}", deleteCustomerHandler(svc))
	})
}

type customerRequest struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	UserID string `json:"user_id"`
}

type customerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	UserID    string    `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func listCustomersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, role, ok := caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if policy.Decide(role, policy.EntityCustomer, policy.OpList) != policy.Allow {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]customerResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCustomerResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getCustomerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, role, ok := caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		effect := policy.Decide(role, policy.EntityCustomer, policy.OpRead)
		if effect == policy.Deny {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "customerID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "customer not found")
			return
		}

		// AllowOwn: solo el perfil ligado a la propia cuenta.
		if effect == policy.AllowOwn && c.UserID != claims.UserID {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		writeJSON(w, http.StatusOK, toCustomerResponse(c))
	}
}

func createCustomerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, role, ok := caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if policy.Decide(role, policy.EntityCustomer, policy.OpCreate) != policy.Allow {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		var req customerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		c, err := svc.Create(r.Context(), CreateInput{
			Name:   req.Name,
			Email:  req.Email,
			Phone:  req.Phone,
			UserID: req.UserID,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toCustomerResponse(c))
	}
}

func updateCustomerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, role, ok := caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if policy.Decide(role, policy.EntityCustomer, policy.OpUpdate) != policy.Allow {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		customerID := chi.URLParam(r, "customerID")

		var req customerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if strings.TrimSpace(req.ID) != customerID {
			writeError(w, http.StatusBadRequest, "id mismatch")
			return
		}

		c, err := svc.Update(r.Context(), customerID, UpdateInput{
			Name:  req.Name,
			Email: req.Email,
			Phone: req.Phone,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCustomerResponse(c))
	}
}

func deleteCustomerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, role, ok := caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if policy.Decide(role, policy.EntityCustomer, policy.OpDelete) != policy.Allow {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "customerID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toCustomerResponse(c Customer) customerResponse {
	return customerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	var deps *DependentsError
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "customer not found")
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrUserLinked), errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &deps):
		// Conflicto por dependientes; el contrato histórico lo reporta como 400.
		writeError(w, http.StatusBadRequest, deps.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func caller(r *http.Request) (auth.Claims, policy.Role, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		return auth.Claims{}, "", false
	}
	role, ok := policy.ParseRole(claims.Role)
	if !ok {
		return auth.Claims{}, "", false
	}
	return claims, role, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
