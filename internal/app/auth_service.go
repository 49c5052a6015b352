package app

import (
	"context"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/clock"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/domain"
)

type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.AdminRole, error)
	List(ctx context.Context) ([]domain.AdminRole, error)
	Create(ctx context.Context, admin domain.AdminRole) error
	Delete(ctx context.Context, id string) error
}

type ProfileRepository interface {
	List(ctx context.Context) ([]domain.UserProfile, error)
}

// TokenIssuer signs dashboard session tokens.
type TokenIssuer interface {
	Issue(identity domain.AdminIdentity) (string, error)
}

type AuthService struct {
	admins   AdminRepository
	profiles ProfileRepository
	tokens   TokenIssuer
	clock    clock.Clock
}

func NewAuthService(admins AdminRepository, profiles ProfileRepository, tokens TokenIssuer, clk clock.Clock) *AuthService {
	return &AuthService{
		admins:   admins,
		profiles: profiles,
		tokens:   tokens,
		clock:    clk,
	}
}

// Login verifies dashboard credentials against admin_roles and returns a
// signed session token. Unknown emails and bad passwords are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, domain.AdminIdentity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", domain.AdminIdentity{}, domain.ErrInvalidCredentials
	}

	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		return "", domain.AdminIdentity{}, err
	}
	if admin == nil {
		return "", domain.AdminIdentity{}, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", domain.AdminIdentity{}, domain.ErrInvalidCredentials
	}

	identity := domain.AdminIdentity{ID: admin.ID, Email: admin.Email, Level: admin.Level}
	token, err := s.tokens.Issue(identity)
	if err != nil {
		return "", domain.AdminIdentity{}, err
	}
	return token, identity, nil
}

func (s *AuthService) ListAdmins(ctx context.Context) ([]domain.AdminRole, error) {
	return s.admins.List(ctx)
}

type AddAdminInput struct {
	Email    string
	Password string
	Level    domain.AdminLevel
}

const minPasswordLen = 8

// AddAdmin creates a dashboard account. Only superadmins may manage admins;
// the caller's identity is passed explicitly rather than read from ambient
// state.
func (s *AuthService) AddAdmin(ctx context.Context, caller domain.AdminIdentity, in AddAdminInput) (domain.AdminRole, error) {
	if !caller.CanManageAdmins() {
		return domain.AdminRole{}, domain.ErrForbidden
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < minPasswordLen {
		return domain.AdminRole{}, domain.ErrMissingField
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.AdminRole{}, domain.ErrInvalidEmail
	}
	level := in.Level
	if level == "" {
		level = domain.AdminLevelAdmin
	}
	if level != domain.AdminLevelAdmin && level != domain.AdminLevelSuperadmin {
		return domain.AdminRole{}, domain.ErrMissingField
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.AdminRole{}, err
	}

	admin := domain.AdminRole{
		ID:           newID(),
		Email:        email,
		PasswordHash: string(hash),
		Level:        level,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return domain.AdminRole{}, err
	}
	return admin, nil
}

func (s *AuthService) RemoveAdmin(ctx context.Context, caller domain.AdminIdentity, id string) error {
	if !caller.CanManageAdmins() {
		return domain.ErrForbidden
	}
	if id == "" {
		return domain.ErrInvalidID
	}
	return s.admins.Delete(ctx, id)
}

func (s *AuthService) ListProfiles(ctx context.Context) ([]domain.UserProfile, error) {
	return s.profiles.List(ctx)
}
