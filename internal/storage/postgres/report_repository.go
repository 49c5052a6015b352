package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/domain"
)

// ReportRepository bundles the read-side queries the export projection needs.
type ReportRepository struct {
	regs *RegistrationRepository
	att  *AttendanceRepository
}

func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{
		regs: NewRegistrationRepository(pool),
		att:  NewAttendanceRepository(pool),
	}
}

func (r *ReportRepository) ListRegistrationsByEvent(ctx context.Context, eventID string) ([]domain.Registration, error) {
	return r.regs.ListByEvent(ctx, eventID)
}

func (r *ReportRepository) ListAttendanceByEvent(ctx context.Context, eventID string) ([]domain.AttendanceRecord, error) {
	return r.att.ListByEvent(ctx, eventID)
}
