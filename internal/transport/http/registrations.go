package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/domain"
)

// RegistrationAdmin is the minimal interface for the admin registration
// endpoints.
type RegistrationAdmin interface {
	ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error)
	Delete(ctx context.Context, id string) error
}

type registrationResponse struct {
	ID           string    `json:"id"`
	EventID      string    `json:"event_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Course       string    `json:"course"`
	Year         string    `json:"year"`
	RegisteredAt time.Time `json:"registered_at"`
}

// HandleListRegistrations lists an event's registrations for the dashboard.
func HandleListRegistrations(svc RegistrationAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		regs, err := svc.ListByEvent(r.Context(), r.PathValue("id"))
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidID):
				writeError(w, http.StatusNotFound, codeEventNotFound, "event not found")
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		resp := make([]registrationResponse, 0, len(regs))
		for _, reg := range regs {
			resp = append(resp, registrationResponse{
				ID:           reg.ID,
				EventID:      reg.EventID,
				Name:         reg.Name,
				Email:        reg.Email,
				Course:       reg.Course,
				Year:         reg.Year,
				RegisteredAt: reg.RegisteredAt,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleDeleteRegistration removes one registration and its attendance.
func HandleDeleteRegistration(svc RegistrationAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), r.PathValue("id")); err != nil {
			switch {
			case errors.Is(err, domain.ErrRegistrationNotFound), errors.Is(err, domain.ErrInvalidID):
				writeError(w, http.StatusNotFound, codeRegistrationNotFound, "registration not found")
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
