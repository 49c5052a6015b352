package domain

import "time"

// Registration records one attendee for one event. The ID doubles as the
// public-facing registration code embedded in emailed QR passes.
type Registration struct {
	ID           string
	EventID      string
	Name         string
	Email        string
	Course       string
	Year         string
	RegisteredAt time.Time
}
