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

// TeamEditor is the minimal interface for the team endpoints.
type TeamEditor interface {
	List(ctx context.Context) ([]domain.TeamMember, error)
	Create(ctx context.Context, in app.TeamMemberInput) (domain.TeamMember, error)
	Update(ctx context.Context, id string, in app.TeamMemberInput) (domain.TeamMember, error)
	Delete(ctx context.Context, id string) error
}

type teamMemberRequest struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	ImageURL string `json:"image_url"`
	LinkedIn string `json:"linkedin"`
	Position int    `json:"position"`
}

func (req teamMemberRequest) toInput() app.TeamMemberInput {
	return app.TeamMemberInput{
		Name:     req.Name,
		Role:     req.Role,
		ImageURL: req.ImageURL,
		LinkedIn: req.LinkedIn,
		Position: req.Position,
	}
}

type teamMemberResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	ImageURL  string    `json:"image_url,omitempty"`
	LinkedIn  string    `json:"linkedin,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

func toTeamMemberResponse(m domain.TeamMember) teamMemberResponse {
	return teamMemberResponse{
		ID:        m.ID,
		Name:      m.Name,
		Role:      m.Role,
		ImageURL:  m.ImageURL,
		LinkedIn:  m.LinkedIn,
		Position:  m.Position,
		CreatedAt: m.CreatedAt,
	}
}

// HandleListTeam serves the public team page listing.
func HandleListTeam(svc TeamEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := svc.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}
		resp := make([]teamMemberResponse, 0, len(members))
		for _, m := range members {
			resp = append(resp, toTeamMemberResponse(m))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleCreateTeamMember adds a member to the team page.
func HandleCreateTeamMember(svc TeamEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req teamMemberRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		member, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrMissingField):
				writeError(w, http.StatusBadRequest, codeMissingRequiredField, "name and role are required")
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}
		writeJSON(w, http.StatusCreated, toTeamMemberResponse(member))
	}
}

// HandleUpdateTeamMember replaces the member in the path.
func HandleUpdateTeamMember(svc TeamEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req teamMemberRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		member, err := svc.Update(r.Context(), r.PathValue("id"), req.toInput())
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrMissingField):
				writeError(w, http.StatusBadRequest, codeMissingRequiredField, "name and role are required")
			case errors.Is(err, domain.ErrTeamMemberNotFound), errors.Is(err, domain.ErrInvalidID):
				writeError(w, http.StatusNotFound, codeTeamMemberNotFound, "team member not found")
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}
		writeJSON(w, http.StatusOK, toTeamMemberResponse(member))
	}
}

// HandleDeleteTeamMember removes the member in the path.
func HandleDeleteTeamMember(svc TeamEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), r.PathValue("id")); err != nil {
			switch {
			case errors.Is(err, domain.ErrTeamMemberNotFound), errors.Is(err, domain.ErrInvalidID):
				writeError(w, http.StatusNotFound, codeTeamMemberNotFound, "team member not found")
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
