package domain

import "time"

// Attendance days are a fixed enumeration chosen by the operator, not derived
// from event dates.
const (
	MinDay = 1
	MaxDay = 3
)

// ValidDay reports whether day is within the supported session range.
func ValidDay(day int) bool {
	return day >= MinDay && day <= MaxDay
}

// AttendanceRecord is one presence mark keyed by (registration, event, day).
// Re-marking the same key overwrites rather than appending.
type AttendanceRecord struct {
	RegistrationID string
	EventID        string
	Day            int
	Present        bool
	MarkedAt       time.Time
}

// AttendanceGrid maps registration ID to a per-day presence map. A missing
// day entry means no record exists yet, which is distinct from a recorded
// absence.
type AttendanceGrid map[string]map[int]bool
