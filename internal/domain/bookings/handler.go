package bookings

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
	r.Route("/bookings", func(br chi.Router) {
		br.Get("/", listBookingsHandler(svc, scopes))
		br.Post("/", createBookingHandler(svc, scopes))
		br.Get("/{bookingID}", getBookingHandler(svc, scopes))
		br.Put("/{bookingID}", updateBookingHandler(svc, scopes))
		br.Delete("/{bookingID}", deleteBookingHandler(svc))
	})
}

type bookingRequest struct {
	ID        string  `json:"id"`
	DogID     string  `json:"dog_id"`
	KennelID  string  `json:"kennel_id"`
	CheckIn   string  `json:"check_in"`  // YYYY-MM-DD
	CheckOut  string  `json:"check_out"` // YYYY-MM-DD
	TotalCost float64 `json:"total_cost"`
	Status    string  `json:"status"`
}

type bookingResponse struct {
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

func listBookingsHandler(svc *Service, scopes *policy.ScopeResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, role, ok := caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var (
			items []Booking
			err   error
		)
		switch policy.Decide(role, policy.EntityBooking, policy.OpList) {
		case policy.Allow:
			items, err = svc.List(r.Context())
		case policy.AllowOwn:
			scope, serr := scopes.Resolve(r.Context(), claims.UserID)
			if serr != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			items, err = svc.ListByDogIDs(r.Context(), dogIDSlice(scope))
		default:
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]bookingResponse, 0, len(items))
		for _, b := range items {
			out = append(out, toBookingResponse(b))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getBookingHandler(svc *Service, scopes *policy.ScopeResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, role, ok := caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		effect := policy.Decide(role, policy.EntityBooking, policy.OpRead)
		if effect == policy.Deny {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		b, err := svc.GetByID(r.Context(), chi.URLParam(r, "bookingID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "booking not found")
			return
		}

		if effect == policy.AllowOwn {
			scope, serr := scopes.Resolve(r.Context(), claims.UserID)
			if serr != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			// Lectura scoped: reservas de perros ajenos no son visibles.
			if !scope.OwnsDog(b.DogID) {
				writeError(w, http.StatusNotFound, "booking not found")
				return
			}
		}

		writeJSON(w, http.StatusOK, toBookingResponse(b))
	}
}

func createBookingHandler(svc *Service, scopes *policy.ScopeResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, role, ok := caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		effect := policy.Decide(role, policy.EntityBooking, policy.OpCreate)
		if effect == policy.Deny {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		var req bookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		checkIn, checkOut, perr := parseDates(req.CheckIn, req.CheckOut)
		if perr != nil {
			writeError(w, http.StatusBadRequest, perr.Error())
			return
		}

		if effect == policy.AllowOwn {
			scope, serr := scopes.Resolve(r.Context(), claims.UserID)
			if serr != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			// Perro ajeno o sin perfil: validación (400), no Forbidden.
			if err := scope.ForCreateBooking(req.DogID); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}

		b, err := svc.Create(r.Context(), CreateInput{
			DogID:     req.DogID,
			KennelID:  req.KennelID,
			CheckIn:   checkIn,
			CheckOut:  checkOut,
			TotalCost: req.TotalCost,
			Status:    req.Status,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toBookingResponse(b))
	}
}

func updateBookingHandler(svc *Service, scopes *policy.ScopeResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, role, ok := caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		effect := policy.Decide(role, policy.EntityBooking, policy.OpUpdate)
		if effect == policy.Deny {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		bookingID := chi.URLParam(r, "bookingID")

		var req bookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if strings.TrimSpace(req.ID) != bookingID {
			writeError(w, http.StatusBadRequest, "id mismatch")
			return
		}

		checkIn, checkOut, perr := parseDates(req.CheckIn, req.CheckOut)
		if perr != nil {
			writeError(w, http.StatusBadRequest, perr.Error())
			return
		}

		if effect == policy.AllowOwn {
			current, err := svc.GetByID(r.Context(), bookingID)
			if err != nil {
				writeError(w, http.StatusNotFound, "booking not found")
				return
			}

			scope, serr := scopes.Resolve(r.Context(), claims.UserID)
			if serr != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			// En update la falta de ownership es Forbidden (asimetría
			// deliberada con create).
			if !scope.OwnsDog(current.DogID) {
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}
			// Un customer no puede mover la reserva a otro perro.
			req.DogID = current.DogID
		}

		b, err := svc.Update(r.Context(), bookingID, UpdateInput{
			DogID:     req.DogID,
			KennelID:  req.KennelID,
			CheckIn:   checkIn,
			CheckOut:  checkOut,
			TotalCost: req.TotalCost,
			Status:    req.Status,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toBookingResponse(b))
	}
}

func deleteBookingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, role, ok := caller(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if policy.Decide(role, policy.EntityBooking, policy.OpDelete) != policy.Allow {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "bookingID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func parseDates(in, out string) (time.Time, time.Time, error) {
	checkIn, err := time.Parse("2006-01-02", strings.TrimSpace(in))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("check_in must be YYYY-MM-DD")
	}
	checkOut, err := time.Parse("2006-01-02", strings.TrimSpace(out))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("check_out must be YYYY-MM-DD")
	}
	return checkIn, checkOut, nil
}

func dogIDSlice(scope policy.Scope) []string {
	ids := make([]string, 0, len(scope.DogIDs))
	for id := range scope.DogIDs {
		ids = append(ids, id)
	}
	return ids
}

func toBookingResponse(b Booking) bookingResponse {
	return bookingResponse{
		ID:        b.ID,
		DogID:     b.DogID,
		KennelID:  b.KennelID,
		CheckIn:   b.CheckIn,
		CheckOut:  b.CheckOut,
		TotalCost: b.TotalCost,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "booking not found")
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrBadDates),
		errors.Is(err, ErrUnknownDog), errors.Is(err, ErrUnknownKennel):
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
