package domain

import "time"

type AdminLevel string

const (
	AdminLevelAdmin      AdminLevel = "admin"
	AdminLevelSuperadmin AdminLevel = "superadmin"
)

// AdminRole is a stored dashboard account.
type AdminRole struct {
	ID           string
	Email        string
	PasswordHash string
	Level        AdminLevel
	CreatedAt    time.Time
}

// AdminIdentity is the authenticated caller attached to request context by
// the auth middleware. It is passed explicitly; there is no ambient session.
type AdminIdentity struct {
	ID    string
	Email string
	Level AdminLevel
}

// CanManageAdmins reports whether the identity may mutate admin accounts.
func (a AdminIdentity) CanManageAdmins() bool {
	return a.Level == AdminLevelSuperadmin
}
