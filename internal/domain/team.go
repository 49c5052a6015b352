package domain

import "time"

// TeamMember is a person shown on the public team page.
type TeamMember struct {
	ID        string
	Name      string
	Role      string
	ImageURL  string
	LinkedIn  string
	Position  int
	CreatedAt time.Time
}

// UserProfile is a minimal per-user record kept alongside the auth provider.
type UserProfile struct {
	ID        string
	UserID    string
	Name      string
	Email     string
	CreatedAt time.Time
}
