package kennels

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
	r.Route("/kennels", func(kr chi.Router) {
		kr.Get("/", listKennelsHandler(svc))
		kr.Post("/", createKennelHandler(svc))
		kr.Get("/{kennelID}", getKennelHandler(svc))
		kr.Put("/{kennelID}", updateKennelHandler(svc))
		kr.Delete("/{kennelID}", deleteKennelHandler(svc))
	})
}

type kennelRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Size        string  `json:"size"`
	Available   bool    `json:"available"`
	PricePerDay float64 `json:"price_per_day"`
}

type kennelResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Size        string    `json:"size"`
	Available   bool      `json:"available"`
	PricePerDay float64   `json:"price_per_day"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func listKennelsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, role, ok := caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if policy.Decide(role, policy.EntityKennel, policy.OpList) != policy.Allow {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]kennelResponse, 0, len(items))
		for _, k := range items {
			out = append(out, toKennelResponse(k))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getKennelHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, role, ok := caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if policy.Decide(role, policy.EntityKennel, policy.OpRead) != policy.Allow {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		k, err := svc.GetByID(r.Context(), chi.URLParam(r, "kennelID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "kennel not found")
			return
		}
		writeJSON(w, http.StatusOK, toKennelResponse(k))
	}
}

func createKennelHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, role, ok := caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if policy.Decide(role, policy.EntityKennel, policy.OpCreate) != policy.Allow {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		var req kennelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		k, err := svc.Create(r.Context(), CreateInput{
			Name:        req.Name,
			Size:        req.Size,
			Available:   req.Available,
			PricePerDay: req.PricePerDay,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toKennelResponse(k))
	}
}

func updateKennelHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, role, ok := caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if policy.Decide(role, policy.EntityKennel, policy.OpUpdate) != policy.Allow {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		kennelID := chi.URLParam(r, "kennelID")

		var req kennelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if strings.TrimSpace(req.ID) != kennelID {
			writeError(w, http.StatusBadRequest, "id mismatch")
			return
		}

		k, err := svc.Update(r.Context(), kennelID, UpdateInput{
			Name:        req.Name,
			Size:        req.Size,
			Available:   req.Available,
			PricePerDay: req.PricePerDay,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toKennelResponse(k))
	}
}

func deleteKennelHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, role, ok := caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if policy.Decide(role, policy.EntityKennel, policy.OpDelete) != policy.Allow {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "kennelID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toKennelResponse(k Kennel) kennelResponse {
	return kennelResponse{
		ID:          k.ID,
		Name:        k.Name,
		Size:        string(k.Size),
		Available:   k.Available,
		PricePerDay: k.PricePerDay,
		CreatedAt:   k.CreatedAt,
		UpdatedAt:   k.UpdatedAt,
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "kennel not found")
	case errors.Is(err, ErrInvalidInput):
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
