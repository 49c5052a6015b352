package domain

import "errors"

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrRegistrationClosed   = errors.New("registration is not open for this event")
	ErrAlreadyRegistered    = errors.New("already registered for this event")
	ErrAlreadyMarked        = errors.New("attendance already marked")
	ErrWrongEvent           = errors.New("credential belongs to a different event")
	ErrInvalidCredential    = errors.New("invalid credential payload")
	ErrInvalidDay           = errors.New("day must be between 1 and 3")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrMissingField         = errors.New("missing required field")
	ErrInvalidID            = errors.New("invalid id")
	ErrCameraUnavailable    = errors.New("no camera device available")
	ErrInvalidEventType     = errors.New("invalid event type")
	ErrInvalidStatus        = errors.New("invalid registration status")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrForbidden            = errors.New("operation not allowed for this role")
	ErrAdminExists          = errors.New("admin with this email already exists")
	ErrAdminNotFound        = errors.New("admin not found")
	ErrTeamMemberNotFound   = errors.New("team member not found")
)
