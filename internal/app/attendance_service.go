package app

import (
	"context"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/clock"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/domain"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/metric"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/qr"
)

type AttendanceRepository interface {
	Get(ctx context.Context, regID, eventID string, day int) (*domain.AttendanceRecord, error)
	Upsert(ctx context.Context, rec domain.AttendanceRecord) error
	ListByEvent(ctx context.Context, eventID string) ([]domain.AttendanceRecord, error)
}

// RegistrationGetter resolves scanned registration codes.
type RegistrationGetter interface {
	GetByID(ctx context.Context, id string) (domain.Registration, error)
}

type AttendanceService struct {
	repo  AttendanceRepository
	regs  RegistrationGetter
	feed  ChangePublisher
	clock clock.Clock
}

func NewAttendanceService(repo AttendanceRepository, regs RegistrationGetter, feed ChangePublisher, clk clock.Clock) *AttendanceService {
	return &AttendanceService{
		repo:  repo,
		regs:  regs,
		feed:  feed,
		clock: clk,
	}
}

// Mark upserts the record for (registration, event, day). The composite key
// means a second call overwrites status and timestamp; last write wins.
func (s *AttendanceService) Mark(ctx context.Context, regID, eventID string, day int, present bool) (domain.AttendanceRecord, error) {
	if regID == "" || eventID == "" {
		return domain.AttendanceRecord{}, domain.ErrInvalidID
	}
	if !domain.ValidDay(day) {
		return domain.AttendanceRecord{}, domain.ErrInvalidDay
	}

	rec := domain.AttendanceRecord{
		RegistrationID: regID,
		EventID:        eventID,
		Day:            day,
		Present:        present,
		MarkedAt:       s.clock.Now(),
	}
	if err := s.repo.Upsert(ctx, rec); err != nil {
		return domain.AttendanceRecord{}, err
	}
	s.feed.Publish("event_attendance", "UPSERT", regID)
	return rec, nil
}

// IsMarked returns the stored status for the key, or nil when no record
// exists yet (distinct from a recorded absence).
func (s *AttendanceService) IsMarked(ctx context.Context, regID, eventID string, day int) (*bool, error) {
	rec, err := s.repo.Get(ctx, regID, eventID, day)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	present := rec.Present
	return &present, nil
}

// Toggle is the manual admin path: it flips the current status, treating a
// missing record as absent.
func (s *AttendanceService) Toggle(ctx context.Context, regID, eventID string, day int) (domain.AttendanceRecord, error) {
	current, err := s.IsMarked(ctx, regID, eventID, day)
	if err != nil {
		return domain.AttendanceRecord{}, err
	}
	next := current == nil || !*current

	rec, err := s.Mark(ctx, regID, eventID, day, next)
	if err != nil {
		return domain.AttendanceRecord{}, err
	}
	metric.AttendanceMarksTotal.WithLabelValues(metric.SourceManual).Inc()
	return rec, nil
}

// ScanOutcome is a successful scan: the record written and the attendee it
// belongs to, for operator feedback.
type ScanOutcome struct {
	Record       domain.AttendanceRecord
	Registration domain.Registration
}

// Scan is the walk-through path: decode the credential, reconcile it against
// the operator-selected event and day, and mark present. An existing record
// for the key rejects the scan with domain.ErrAlreadyMarked without writing.
func (s *AttendanceService) Scan(ctx context.Context, payload []byte, selectedEventID string, day int) (ScanOutcome, error) {
	if selectedEventID == "" {
		return ScanOutcome{}, domain.ErrInvalidID
	}
	if !domain.ValidDay(day) {
		return ScanOutcome{}, domain.ErrInvalidDay
	}

	cred, err := qr.Decode(payload)
	if err != nil {
		metric.ScansTotal.WithLabelValues(metric.ResultInvalid).Inc()
		return ScanOutcome{}, err
	}
	if cred.EventID != "" && cred.EventID != selectedEventID {
		metric.ScansTotal.WithLabelValues(metric.ResultWrongEvent).Inc()
		return ScanOutcome{}, domain.ErrWrongEvent
	}

	reg, err := s.regs.GetByID(ctx, cred.RegistrationID)
	if err != nil {
		if err == domain.ErrRegistrationNotFound {
			metric.ScansTotal.WithLabelValues(metric.ResultNotFound).Inc()
		} else {
			metric.ScansTotal.WithLabelValues(metric.ResultError).Inc()
		}
		return ScanOutcome{}, err
	}
	// Legacy payloads carry no event; the registration's owning event still
	// has to match the operator's selection.
	if reg.EventID != selectedEventID {
		metric.ScansTotal.WithLabelValues(metric.ResultWrongEvent).Inc()
		return ScanOutcome{}, domain.ErrWrongEvent
	}

	existing, err := s.repo.Get(ctx, reg.ID, selectedEventID, day)
	if err != nil {
		metric.ScansTotal.WithLabelValues(metric.ResultError).Inc()
		return ScanOutcome{}, err
	}
	if existing != nil {
		metric.ScansTotal.WithLabelValues(metric.ResultDuplicate).Inc()
		return ScanOutcome{}, domain.ErrAlreadyMarked
	}

	rec, err := s.Mark(ctx, reg.ID, selectedEventID, day, true)
	if err != nil {
		metric.ScansTotal.WithLabelValues(metric.ResultError).Inc()
		return ScanOutcome{}, err
	}
	metric.ScansTotal.WithLabelValues(metric.ResultOK).Inc()
	metric.AttendanceMarksTotal.WithLabelValues(metric.SourceScan).Inc()
	return ScanOutcome{Record: rec, Registration: reg}, nil
}

// Grid returns per-registration day/status maps for an event, for the admin
// attendance table and export.
func (s *AttendanceService) Grid(ctx context.Context, eventID string) (domain.AttendanceGrid, error) {
	if eventID == "" {
		return nil, domain.ErrInvalidID
	}
	records, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	grid := make(domain.AttendanceGrid)
	for _, rec := range records {
		days, ok := grid[rec.RegistrationID]
		if !ok {
			days = make(map[int]bool)
			grid[rec.RegistrationID] = days
		}
		days[rec.Day] = rec.Present
	}
	return grid, nil
}
