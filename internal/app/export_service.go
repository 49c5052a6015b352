package app

import (
	"context"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/domain"
)

type ExportRepository interface {
	ListRegistrationsByEvent(ctx context.Context, eventID string) ([]domain.Registration, error)
	ListAttendanceByEvent(ctx context.Context, eventID string) ([]domain.AttendanceRecord, error)
}

type ExportService struct {
	repo ExportRepository
}

func NewExportService(repo ExportRepository) *ExportService {
	return &ExportService{repo: repo}
}

// ExportRow is one attendee line in the spreadsheet, with fixed day columns.
type ExportRow struct {
	Name   string
	Email  string
	Course string
	Year   string
	Day1   string
	Day2   string
	Day3   string
}

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

// Rows joins registrations with attendance for the event. Days with no
// record default to Absent. Pure read-side projection.
func (s *ExportService) Rows(ctx context.Context, eventID string) ([]ExportRow, error) {
	if eventID == "" {
		return nil, domain.ErrInvalidID
	}

	regs, err := s.repo.ListRegistrationsByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.ListAttendanceByEvent(ctx, eventID)
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

	rows := make([]ExportRow, 0, len(regs))
	for _, reg := range regs {
		rows = append(rows, ExportRow{
			Name:   reg.Name,
			Email:  reg.Email,
			Course: reg.Course,
			Year:   reg.Year,
			Day1:   statusLabel(grid[reg.ID][1]),
			Day2:   statusLabel(grid[reg.ID][2]),
			Day3:   statusLabel(grid[reg.ID][3]),
		})
	}
	return rows, nil
}

func statusLabel(present bool) string {
	if present {
		return StatusPresent
	}
	return StatusAbsent
}
