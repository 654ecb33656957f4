package dogs

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

func RegisterRoutes(r chi.Router, svc *Service, scopes *policy.ScopeResolver) {
	r.Route("/dogs", func(dr chi.Router) {
		dr.Get("/", listDogsHandler(svc, scopes))
		dr.Post("/", createDogHandler(svc, scopes))
		dr.Get("/{dogID}", getDogHandler(svc, scopes))
		dr.Put("/{dogID}", updateDogHandler(svc, scopes))
		dr.Delete("/{dogID}", deleteDogHandler(svc))
	})
}

type dogRequest struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Breed      string `json:"breed"`
	Age        int    `json:"age"`
	CustomerID string `json:"customer_id"`
}

type dogResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Breed      string    `json:"breed"`
	Age        int       `json:"age"`
	CustomerID string    `json:"customer_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func listDogsHandler(svc *Service, scopes *policy.ScopeResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, role, ok := caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var (
			items []Dog
			err   error
		)
		switch policy.Decide(role, policy.EntityDog, policy.OpList) {
		case policy.Allow:
			items, err = svc.List(r.Context())
		case policy.AllowOwn:
			scope, serr := scopes.Resolve(r.Context(), claims.UserID)
			if serr != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			items, err = svc.ListByCustomer(r.Context(), scope.CustomerID)
		default:
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]dogResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDogResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getDogHandler(svc *Service, scopes *policy.ScopeResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, role, ok := caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		effect := policy.Decide(role, policy.EntityDog, policy.OpRead)
		if effect == policy.Deny {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		d, err := svc.GetByID(r.Context(), chi.URLParam(r, "dogID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "dog not found")
			return
		}

		if effect == policy.AllowOwn {
			scope, serr := scopes.Resolve(r.Context(), claims.UserID)
			if serr != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			// Lectura scoped: una fila fuera del scope no es visible.
			if d.CustomerID == "" || d.CustomerID != scope.CustomerID {
				writeError(w, http.StatusNotFound, "dog not found")
				return
			}
		}

		writeJSON(w, http.StatusOK, toDogResponse(d))
	}
}

func createDogHandler(svc *Service, scopes *policy.ScopeResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, role, ok := caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		effect := policy.Decide(role, policy.EntityDog, policy.OpCreate)
		if effect == policy.Deny {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		var req dogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		customerID := req.CustomerID
		if effect == policy.AllowOwn {
			scope, serr := scopes.Resolve(r.Context(), claims.UserID)
			if serr != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			// El server fuerza el dueño al propio Customer. Cross-customer
			// y sin-perfil son errores de validación (400), no Forbidden.
			cid, perr := scope.ForCreateDog(req.CustomerID)
			if perr != nil {
				writeError(w, http.StatusBadRequest, perr.Error())
				return
			}
			customerID = cid
		}

		d, err := svc.Create(r.Context(), CreateInput{
			Name:       req.Name,
			Breed:      req.Breed,
			Age:        req.Age,
			CustomerID: customerID,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toDogResponse(d))
	}
}

func updateDogHandler(svc *Service, scopes *policy.ScopeResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, role, ok := caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		effect := policy.Decide(role, policy.EntityDog, policy.OpUpdate)
		if effect == policy.Deny {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		dogID := chi.URLParam(r, "dogID")

		var req dogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if strings.TrimSpace(req.ID) != dogID {
			writeError(w, http.StatusBadRequest, "id mismatch")
			return
		}

		if effect == policy.AllowOwn {
			current, err := svc.GetByID(r.Context(), dogID)
			if err != nil {
				writeError(w, http.StatusNotFound, "dog not found")
				return
			}

			scope, serr := scopes.Resolve(r.Context(), claims.UserID)
			if serr != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			// En update la misma condición de ownership es Forbidden
			// (asimetría deliberada con create).
			if current.CustomerID == "" || current.CustomerID != scope.CustomerID {
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}
			// Un customer no puede reasignar el dueño.
			req.CustomerID = scope.CustomerID
		}

		d, err := svc.Update(r.Context(), dogID, UpdateInput{
			Name:       req.Name,
			Breed:      req.Breed,
			Age:        req.Age,
			CustomerID: req.CustomerID,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDogResponse(d))
	}
}

func deleteDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, role, ok := caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if policy.Decide(role, policy.EntityDog, policy.OpDelete) != policy.Allow {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "dogID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toDogResponse(d Dog) dogResponse {
	return dogResponse{
		ID:         d.ID,
		Name:       d.Name,
		Breed:      d.Breed,
		Age:        d.Age,
		CustomerID: d.CustomerID,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "dog not found")
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrUnknownCustomer):
		writeError(w, http.StatusBadRequest, err.Error())
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
