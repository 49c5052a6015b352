package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/app"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/domain"
)

// EventReader is the minimal interface for the public event endpoints.
type EventReader interface {
	List(ctx context.Context, eventType domain.EventType) ([]domain.Event, error)
	GetByID(ctx context.Context, id string) (domain.Event, error)
}

// Registrar is the minimal interface for the public registration endpoint.
type Registrar interface {
	Register(ctx context.Context, in app.RegisterInput) (app.RegisterResult, error)
}

type eventResponse struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	EventType          string     `json:"event_type"`
	EventDate          time.Time  `json:"event_date"`
	EndDate            *time.Time `json:"end_date,omitempty"`
	RegistrationStatus string     `json:"registration_status"`
	Link               string     `json:"link,omitempty"`
	ImageURL           string     `json:"image_url,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

func toEventResponse(event domain.Event) eventResponse {
	return eventResponse{
		ID:                 event.ID,
		Title:              event.Title,
		Description:        event.Description,
		EventType:          string(event.Type),
		EventDate:          event.EventDate,
		EndDate:            event.EndDate,
		RegistrationStatus: string(event.RegistrationStatus),
		Link:               event.Link,
		ImageURL:           event.ImageURL,
		CreatedAt:          event.CreatedAt,
	}
}

// HandleListEvents serves the public event listing, optionally filtered
// by ?type=unstop|igniters.
func HandleListEvents(svc EventReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventType := domain.EventType(r.URL.Query().Get("type"))
		events, err := svc.List(r.Context(), eventType)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidEventType) {
				writeError(w, http.StatusBadRequest, codeInvalidEventType, "unknown event type")
				return
			}
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		resp := make([]eventResponse, 0, len(events))
		for _, event := range events {
			resp = append(resp, toEventResponse(event))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleGetEvent serves one event by id.
func HandleGetEvent(svc EventReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, err := svc.GetByID(r.Context(), r.PathValue("id"))
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrEventNotFound), errors.Is(err, domain.ErrInvalidID):
				writeError(w, http.StatusNotFound, codeEventNotFound, "event not found")
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}
		writeJSON(w, http.StatusOK, toEventResponse(event))
	}
}

type registerRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Course string `json:"course"`
	Year   string `json:"year"`
}

type registerResponse struct {
	ID           string    `json:"id"`
	EventID      string    `json:"event_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
	PassEmailed  bool      `json:"pass_emailed"`
}

// HandleRegister accepts a public registration for the event in the path.
// A failed pass email still returns 201; pass_emailed tells the caller.
func HandleRegister(svc Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		result, err := svc.Register(r.Context(), app.RegisterInput{
			EventID: r.PathValue("id"),
			Name:    req.Name,
			Email:   req.Email,
			Course:  req.Course,
			Year:    req.Year,
		})
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrMissingField):
				writeError(w, http.StatusBadRequest, codeMissingRequiredField, "name, email, course and year are required")
			case errors.Is(err, domain.ErrInvalidEmail):
				writeError(w, http.StatusBadRequest, codeInvalidEmail, "invalid email address")
			case errors.Is(err, domain.ErrInvalidID):
				writeError(w, http.StatusBadRequest, codeInvalidID, "invalid event id")
			case errors.Is(err, domain.ErrEventNotFound):
				writeError(w, http.StatusNotFound, codeEventNotFound, "event not found")
			case errors.Is(err, domain.ErrRegistrationClosed):
				writeError(w, http.StatusConflict, codeRegistrationClosed, "registration is closed for this event")
			case errors.Is(err, domain.ErrAlreadyRegistered):
				writeError(w, http.StatusConflict, codeAlreadyRegistered, "this email is already registered for this event")
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		reg := result.Registration
		writeJSON(w, http.StatusCreated, registerResponse{
			ID:           reg.ID,
			EventID:      reg.EventID,
			Name:         reg.Name,
			Email:        reg.Email,
			RegisteredAt: reg.RegisteredAt,
			PassEmailed:  result.DeliveryErr == nil,
		})
	}
}
