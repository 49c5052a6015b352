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

// Authenticator is the minimal interface for login and admin management.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, domain.AdminIdentity, error)
	ListAdmins(ctx context.Context) ([]domain.AdminRole, error)
	AddAdmin(ctx context.Context, caller domain.AdminIdentity, in app.AddAdminInput) (domain.AdminRole, error)
	RemoveAdmin(ctx context.Context, caller domain.AdminIdentity, id string) error
	ListProfiles(ctx context.Context) ([]domain.UserProfile, error)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// HandleLogin exchanges admin credentials for a bearer token.
func HandleLogin(svc Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		token, identity, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidCredentials):
				writeError(w, http.StatusUnauthorized, codeInvalidCredentials, "invalid email or password")
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, loginResponse{
			Token: token,
			Email: identity.Email,
			Role:  string(identity.Level),
		})
	}
}

type adminResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// HandleListAdmins lists dashboard accounts. Superadmin only.
func HandleListAdmins(svc Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admins, err := svc.ListAdmins(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		resp := make([]adminResponse, 0, len(admins))
		for _, admin := range admins {
			resp = append(resp, adminResponse{
				ID:        admin.ID,
				Email:     admin.Email,
				Role:      string(admin.Level),
				CreatedAt: admin.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type addAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// HandleAddAdmin creates a dashboard account. Superadmin only.
func HandleAddAdmin(svc Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addAdminRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		identity, _ := identityFrom(r.Context())
		admin, err := svc.AddAdmin(r.Context(), identity, app.AddAdminInput{
			Email:    req.Email,
			Password: req.Password,
			Level:    domain.AdminLevel(req.Role),
		})
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrForbidden):
				writeError(w, http.StatusForbidden, codeForbidden, "superadmin required")
			case errors.Is(err, domain.ErrMissingField), errors.Is(err, domain.ErrInvalidEmail):
				writeError(w, http.StatusBadRequest, codeMissingRequiredField, "a valid email and a password of at least 8 characters are required")
			case errors.Is(err, domain.ErrAdminExists):
				writeError(w, http.StatusConflict, codeAdminExists, "an admin with this email already exists")
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, adminResponse{
			ID:        admin.ID,
			Email:     admin.Email,
			Role:      string(admin.Level),
			CreatedAt: admin.CreatedAt,
		})
	}
}

// HandleRemoveAdmin deletes a dashboard account. Superadmin only.
func HandleRemoveAdmin(svc Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := identityFrom(r.Context())
		if err := svc.RemoveAdmin(r.Context(), identity, r.PathValue("id")); err != nil {
			switch {
			case errors.Is(err, domain.ErrForbidden):
				writeError(w, http.StatusForbidden, codeForbidden, "superadmin required")
			case errors.Is(err, domain.ErrAdminNotFound), errors.Is(err, domain.ErrInvalidID):
				writeError(w, http.StatusNotFound, codeAdminNotFound, "admin not found")
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type profileResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// HandleListProfiles lists stored user profiles for the dashboard.
func HandleListProfiles(svc Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profiles, err := svc.ListProfiles(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		resp := make([]profileResponse, 0, len(profiles))
		for _, p := range profiles {
			resp = append(resp, profileResponse{
				ID:        p.ID,
				UserID:    p.UserID,
				Name:      p.Name,
				Email:     p.Email,
				CreatedAt: p.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
