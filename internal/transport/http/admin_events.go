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

// EventEditor is the minimal interface for the admin event endpoints.
type EventEditor interface {
	Create(ctx context.Context, in app.EventInput) (domain.Event, error)
	Update(ctx context.Context, id string, in app.EventInput) (domain.Event, error)
	Delete(ctx context.Context, id string) error
}

type eventRequest struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	EventType          string `json:"event_type"`
	EventDate          string `json:"event_date"`
	EndDate            string `json:"end_date"`
	RegistrationStatus string `json:"registration_status"`
	Link               string `json:"link"`
	ImageURL           string `json:"image_url"`
}

func (req eventRequest) toInput(createdBy string) (app.EventInput, error) {
	in := app.EventInput{
		Title:              req.Title,
		Description:        req.Description,
		Type:               domain.EventType(req.EventType),
		RegistrationStatus: domain.RegistrationStatus(req.RegistrationStatus),
		Link:               req.Link,
		ImageURL:           req.ImageURL,
		CreatedBy:          createdBy,
	}
	if req.EventDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.EventDate)
		if err != nil {
			return app.EventInput{}, err
		}
		in.EventDate = parsed
	}
	if req.EndDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.EndDate)
		if err != nil {
			return app.EventInput{}, err
		}
		in.EndDate = &parsed
	}
	return in, nil
}

func writeEventInputError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingField):
		writeError(w, http.StatusBadRequest, codeMissingRequiredField, "title is required")
	case errors.Is(err, domain.ErrInvalidEventType):
		writeError(w, http.StatusBadRequest, codeInvalidEventType, "event_type must be unstop or igniters")
	case errors.Is(err, domain.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, codeInvalidStatus, "registration_status must be active, upcoming or closed")
	case errors.Is(err, domain.ErrEventNotFound), errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusNotFound, codeEventNotFound, "event not found")
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

// HandleCreateEvent creates an event on behalf of the authenticated admin.
func HandleCreateEvent(svc EventEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req eventRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		identity, _ := identityFrom(r.Context())
		in, err := req.toInput(identity.ID)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidEventDate, "dates must be RFC 3339")
			return
		}

		event, err := svc.Create(r.Context(), in)
		if err != nil {
			writeEventInputError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toEventResponse(event))
	}
}

// HandleUpdateEvent replaces the event in the path.
func HandleUpdateEvent(svc EventEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req eventRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		identity, _ := identityFrom(r.Context())
		in, err := req.toInput(identity.ID)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidEventDate, "dates must be RFC 3339")
			return
		}

		event, err := svc.Update(r.Context(), r.PathValue("id"), in)
		if err != nil {
			writeEventInputError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponse(event))
	}
}

// HandleDeleteEvent removes the event in the path.
func HandleDeleteEvent(svc EventEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), r.PathValue("id")); err != nil {
			switch {
			case errors.Is(err, domain.ErrEventNotFound), errors.Is(err, domain.ErrInvalidID):
				writeError(w, http.StatusNotFound, codeEventNotFound, "event not found")
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
