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

// AttendanceMarker is the minimal interface for the attendance endpoints.
type AttendanceMarker interface {
	Grid(ctx context.Context, eventID string) (domain.AttendanceGrid, error)
	Toggle(ctx context.Context, regID, eventID string, day int) (domain.AttendanceRecord, error)
	Scan(ctx context.Context, payload []byte, selectedEventID string, day int) (app.ScanOutcome, error)
}

type attendanceRecordResponse struct {
	RegistrationID string    `json:"registration_id"`
	EventID        string    `json:"event_id"`
	Day            int       `json:"day"`
	Present        bool      `json:"present"`
	MarkedAt       time.Time `json:"marked_at"`
}

func toAttendanceResponse(rec domain.AttendanceRecord) attendanceRecordResponse {
	return attendanceRecordResponse{
		RegistrationID: rec.RegistrationID,
		EventID:        rec.EventID,
		Day:            rec.Day,
		Present:        rec.Present,
		MarkedAt:       rec.MarkedAt,
	}
}

// HandleAttendanceGrid returns present/absent per registration per day.
func HandleAttendanceGrid(svc AttendanceMarker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		grid, err := svc.Grid(r.Context(), r.PathValue("id"))
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidID):
				writeError(w, http.StatusNotFound, codeEventNotFound, "event not found")
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}
		writeJSON(w, http.StatusOK, grid)
	}
}

type toggleRequest struct {
	RegistrationID string `json:"registration_id"`
	EventID        string `json:"event_id"`
	Day            int    `json:"day"`
}

// HandleToggleAttendance flips one attendance cell from the dashboard.
func HandleToggleAttendance(svc AttendanceMarker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req toggleRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		rec, err := svc.Toggle(r.Context(), req.RegistrationID, req.EventID, req.Day)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidDay):
				writeError(w, http.StatusBadRequest, codeInvalidDay, "day must be between 1 and 3")
			case errors.Is(err, domain.ErrInvalidID):
				writeError(w, http.StatusBadRequest, codeInvalidID, "registration_id and event_id are required")
			case errors.Is(err, domain.ErrRegistrationNotFound):
				writeError(w, http.StatusNotFound, codeRegistrationNotFound, "registration not found")
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}
		writeJSON(w, http.StatusOK, toAttendanceResponse(rec))
	}
}

type scanRequest struct {
	Payload string `json:"payload"`
	EventID string `json:"event_id"`
	Day     int    `json:"day"`
}

type scanResponse struct {
	Record       attendanceRecordResponse `json:"record"`
	Registration registrationResponse     `json:"registration"`
}

// HandleScanAttendance marks attendance from a decoded QR payload. The
// scan is rejected, not re-marked, when a record already exists.
func HandleScanAttendance(svc AttendanceMarker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scanRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		outcome, err := svc.Scan(r.Context(), []byte(req.Payload), req.EventID, req.Day)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidCredential):
				writeError(w, http.StatusBadRequest, codeInvalidCredential, "unreadable or malformed pass")
			case errors.Is(err, domain.ErrInvalidDay):
				writeError(w, http.StatusBadRequest, codeInvalidDay, "day must be between 1 and 3")
			case errors.Is(err, domain.ErrInvalidID):
				writeError(w, http.StatusBadRequest, codeInvalidID, "event_id is required")
			case errors.Is(err, domain.ErrWrongEvent):
				writeError(w, http.StatusConflict, codeWrongEvent, "pass belongs to a different event")
			case errors.Is(err, domain.ErrAlreadyMarked):
				writeError(w, http.StatusConflict, codeAlreadyMarked, "attendance already marked for this day")
			case errors.Is(err, domain.ErrRegistrationNotFound):
				writeError(w, http.StatusNotFound, codeRegistrationNotFound, "registration not found")
			case errors.Is(err, domain.ErrEventNotFound):
				writeError(w, http.StatusNotFound, codeEventNotFound, "event not found")
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		reg := outcome.Registration
		writeJSON(w, http.StatusOK, scanResponse{
			Record: toAttendanceResponse(outcome.Record),
			Registration: registrationResponse{
				ID:           reg.ID,
				EventID:      reg.EventID,
				Name:         reg.Name,
				Email:        reg.Email,
				Course:       reg.Course,
				Year:         reg.Year,
				RegisteredAt: reg.RegisteredAt,
			},
		})
	}
}
