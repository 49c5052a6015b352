package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/app"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/domain"
)

type stubAuth struct {
	token    string
	identity domain.AdminIdentity
	admins   []domain.AdminRole
	admin    domain.AdminRole
	profiles []domain.UserProfile
	err      error

	addCaller    domain.AdminIdentity
	removeCaller domain.AdminIdentity
}

func (s *stubAuth) Login(context.Context, string, string) (string, domain.AdminIdentity, error) {
	return s.token, s.identity, s.err
}

func (s *stubAuth) ListAdmins(context.Context) ([]domain.AdminRole, error) {
	return s.admins, s.err
}

func (s *stubAuth) AddAdmin(_ context.Context, caller domain.AdminIdentity, _ app.AddAdminInput) (domain.AdminRole, error) {
	s.addCaller = caller
	return s.admin, s.err
}

func (s *stubAuth) RemoveAdmin(_ context.Context, caller domain.AdminIdentity, _ string) error {
	s.removeCaller = caller
	return s.err
}

func (s *stubAuth) ListProfiles(context.Context) ([]domain.UserProfile, error) {
	return s.profiles, s.err
}

func TestHandleLogin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			body:           `{"email":"core@igniters.club","password":"hunter22"}`,
			expectedStatus: http.StatusOK,
			expectedSubstr: `"token":"token-1"`,
		},
		{
			name:           "invalid json",
			body:           `{"email":`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: codeInvalidRequestBody,
		},
		{
			name:           "bad credentials",
			body:           `{"email":"core@igniters.club","password":"wrong"}`,
			serviceErr:     domain.ErrInvalidCredentials,
			expectedStatus: http.StatusUnauthorized,
			expectedSubstr: codeInvalidCredentials,
		},
		{
			name:           "internal error",
			body:           `{"email":"core@igniters.club","password":"hunter22"}`,
			serviceErr:     errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedSubstr: codeInternalError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &stubAuth{
				token:    "token-1",
				identity: domain.AdminIdentity{ID: "admin-1", Email: "core@igniters.club", Level: domain.AdminLevelAdmin},
				err:      tt.serviceErr,
			}
			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			HandleLogin(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected %q in body, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestHandleAddAdmin(t *testing.T) {
	t.Parallel()

	t.Run("passes the caller identity through", func(t *testing.T) {
		t.Parallel()

		identity := domain.AdminIdentity{ID: "admin-1", Level: domain.AdminLevelSuperadmin}
		svc := &stubAuth{admin: domain.AdminRole{ID: "admin-2", Email: "new@igniters.club", Level: domain.AdminLevelAdmin}}

		body := `{"email":"new@igniters.club","password":"longenough","role":"admin"}`
		req := httptest.NewRequest(http.MethodPost, "/admin/admins", bytes.NewBufferString(body))
		req.Header.Set("Authorization", "Bearer token-1")
		rec := httptest.NewRecorder()

		RequireAdmin(stubVerifier{identity: identity}, HandleAddAdmin(svc)).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
		}
		if svc.addCaller != identity {
			t.Fatalf("expected caller %+v, got %+v", identity, svc.addCaller)
		}
	})

	t.Run("duplicate email is 409", func(t *testing.T) {
		t.Parallel()

		svc := &stubAuth{err: domain.ErrAdminExists}
		body := `{"email":"new@igniters.club","password":"longenough"}`
		req := httptest.NewRequest(http.MethodPost, "/admin/admins", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		HandleAddAdmin(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("non-superadmin caller is 403", func(t *testing.T) {
		t.Parallel()

		svc := &stubAuth{err: domain.ErrForbidden}
		body := `{"email":"new@igniters.club","password":"longenough"}`
		req := httptest.NewRequest(http.MethodPost, "/admin/admins", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		HandleAddAdmin(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})
}

func TestHandleRemoveAdmin(t *testing.T) {
	t.Parallel()

	t.Run("unknown admin is 404", func(t *testing.T) {
		t.Parallel()

		svc := &stubAuth{err: domain.ErrAdminNotFound}
		req := httptest.NewRequest(http.MethodDelete, "/admin/admins/missing", nil)
		req.SetPathValue("id", "missing")
		rec := httptest.NewRecorder()

		HandleRemoveAdmin(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("success is 204", func(t *testing.T) {
		t.Parallel()

		svc := &stubAuth{}
		req := httptest.NewRequest(http.MethodDelete, "/admin/admins/admin-2", nil)
		req.SetPathValue("id", "admin-2")
		rec := httptest.NewRecorder()

		HandleRemoveAdmin(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})
}
