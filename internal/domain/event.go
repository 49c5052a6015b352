package domain

import "time"

type EventType string

const (
	EventTypeUnstop   EventType = "unstop"
	EventTypeIgniters EventType = "igniters"
)

type RegistrationStatus string

const (
	RegistrationActive   RegistrationStatus = "active"
	RegistrationUpcoming RegistrationStatus = "upcoming"
	RegistrationClosed   RegistrationStatus = "closed"
)

// Event is a club event listed on the public site. Registrations are only
// accepted while RegistrationStatus is active.
type Event struct {
	ID                 string
	Title              string
	Description        string
	Type               EventType
	EventDate          time.Time
	EndDate            *time.Time
	RegistrationStatus RegistrationStatus
	Link               string
	ImageURL           string
	CreatedBy          string
	CreatedAt          time.Time
}

// RegistrationOpen reports whether the event currently accepts registrations.
func (e Event) RegistrationOpen() bool {
	return e.RegistrationStatus == RegistrationActive
}
