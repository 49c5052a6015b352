package app

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/clock"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/domain"
)

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	admin := domain.AdminRole{
		ID:           "A1",
		Email:        "lead@igniters.club",
		PasswordHash: string(hash),
		Level:        domain.AdminLevelSuperadmin,
	}

	svc := NewAuthService(newFakeAdminRepo([]domain.AdminRole{admin}), &fakeProfileRepo{}, &fakeTokenIssuer{}, clock.NewFixed(now))

	t.Run("valid credentials", func(t *testing.T) {
		token, identity, err := svc.Login(context.Background(), "Lead@Igniters.club", "correct horse")
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if token == "" {
			t.Fatalf("expected token")
		}
		if identity.ID != "A1" || identity.Level != domain.AdminLevelSuperadmin {
			t.Fatalf("unexpected identity: %+v", identity)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, _, err := svc.Login(context.Background(), "lead@igniters.club", "nope"); err != domain.ErrInvalidCredentials {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		if _, _, err := svc.Login(context.Background(), "ghost@igniters.club", "correct horse"); err != domain.ErrInvalidCredentials {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestAuthService_AdminManagement(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	superadmin := domain.AdminIdentity{ID: "A1", Email: "lead@igniters.club", Level: domain.AdminLevelSuperadmin}
	plainAdmin := domain.AdminIdentity{ID: "A2", Email: "helper@igniters.club", Level: domain.AdminLevelAdmin}

	makeSvc := func() (*AuthService, *fakeAdminRepo) {
		repo := newFakeAdminRepo(nil)
		return NewAuthService(repo, &fakeProfileRepo{}, &fakeTokenIssuer{}, clock.NewFixed(now)), repo
	}

	t.Run("superadmin adds admin", func(t *testing.T) {
		svc, repo := makeSvc()

		created, err := svc.AddAdmin(context.Background(), superadmin, AddAdminInput{
			Email:    "New@Igniters.club",
			Password: "longenough",
			Level:    domain.AdminLevelAdmin,
		})
		if err != nil {
			t.Fatalf("add admin: %v", err)
		}
		if created.Email != "new@igniters.club" {
			t.Fatalf("expected normalized email, got %q", created.Email)
		}
		if created.PasswordHash == "longenough" || created.PasswordHash == "" {
			t.Fatalf("password must be stored hashed")
		}
		if len(repo.admins) != 1 {
			t.Fatalf("expected 1 admin stored, got %d", len(repo.admins))
		}
	})

	t.Run("plain admin cannot mutate", func(t *testing.T) {
		svc, _ := makeSvc()

		if _, err := svc.AddAdmin(context.Background(), plainAdmin, AddAdminInput{Email: "x@y.com", Password: "longenough"}); err != domain.ErrForbidden {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
		if err := svc.RemoveAdmin(context.Background(), plainAdmin, "A1"); err != domain.ErrForbidden {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("short password rejected", func(t *testing.T) {
		svc, _ := makeSvc()

		if _, err := svc.AddAdmin(context.Background(), superadmin, AddAdminInput{Email: "x@y.com", Password: "short"}); err != domain.ErrMissingField {
			t.Fatalf("expected ErrMissingField, got %v", err)
		}
	})
}

type fakeAdminRepo struct {
	admins []domain.AdminRole
}

func newFakeAdminRepo(admins []domain.AdminRole) *fakeAdminRepo {
	return &fakeAdminRepo{admins: append([]domain.AdminRole{}, admins...)}
}

func (f *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*domain.AdminRole, error) {
	for i := range f.admins {
		if f.admins[i].Email == email {
			a := f.admins[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeAdminRepo) List(context.Context) ([]domain.AdminRole, error) {
	return append([]domain.AdminRole{}, f.admins...), nil
}

func (f *fakeAdminRepo) Create(_ context.Context, admin domain.AdminRole) error {
	for _, a := range f.admins {
		if a.Email == admin.Email {
			return domain.ErrAdminExists
		}
	}
	f.admins = append(f.admins, admin)
	return nil
}

func (f *fakeAdminRepo) Delete(_ context.Context, id string) error {
	for i, a := range f.admins {
		if a.ID == id {
			f.admins = append(f.admins[:i], f.admins[i+1:]...)
			return nil
		}
	}
	return domain.ErrAdminNotFound
}

type fakeProfileRepo struct{}

func (fakeProfileRepo) List(context.Context) ([]domain.UserProfile, error) {
	return nil, nil
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) Issue(identity domain.AdminIdentity) (string, error) {
	return "token-for-" + identity.ID, nil
}
