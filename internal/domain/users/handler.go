package users

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
	r.Route("/users", func(ur chi.Router) {
		ur.Get("/", listUsersHandler(svc))
		ur.Post("/", createUserHandler(svc))
		ur.Get("/{userID}", getUserHandler(svc))
		ur.Put("/{userID}", updateUserHandler(svc))
		ur.Delete("/{userID}", deleteUserHandler(svc))
	})
}

type userRequest struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	Role      string `json:"role"`
}

type userResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func listUsersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, role, ok := caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		if policy.Decide(role, policy.EntityUser, policy.OpList) != policy.Allow {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toUserResponse(u))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, role, ok := caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		userID := chi.URLParam(r, "userID")

		switch policy.Decide(role, policy.EntityUser, policy.OpRead) {
		case policy.Allow:
		case policy.AllowOwn:
			// Solo su propio registro.
			if userID != claims.UserID {
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}
		default:
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		u, err := svc.GetByID(r.Context(), userID)
		if err != nil {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func createUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, role, ok := caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if policy.Decide(role, policy.EntityUser, policy.OpCreate) != policy.Allow {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		var req userRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		reqRole, okRole := policy.ParseRole(req.Role)
		if !okRole {
			writeError(w, http.StatusBadRequest, "unknown role")
			return
		}

		u, err := svc.Create(r.Context(), CreateInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Password:  req.Password,
			Role:      reqRole,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toUserResponse(u))
	}
}

func updateUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, role, ok := caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if policy.Decide(role, policy.EntityUser, policy.OpUpdate) != policy.Allow {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		userID := chi.URLParam(r, "userID")

		var req userRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if strings.TrimSpace(req.ID) != userID {
			writeError(w, http.StatusBadRequest, "id mismatch")
			return
		}

		reqRole, okRole := policy.ParseRole(req.Role)
		if !okRole {
			writeError(w, http.StatusBadRequest, "unknown role")
			return
		}

		u, err := svc.Update(r.Context(), userID, UpdateInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Role:      reqRole,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func deleteUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, role, ok := caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if policy.Decide(role, policy.EntityUser, policy.OpDelete) != policy.Allow {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "userID"), claims.UserID); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	var deps *DependentsError
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, ErrEmailTaken):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrWeakPassword), errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrSelfDelete):
		// Conflicto; el contrato histórico lo reporta como 400.
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &deps):
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

// writeJSON/writeError duplicados a propósito en cada módulo de handlers
// (mismo criterio que el resto del repo: sin helpers compartidos prematuros).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
