package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/domain"
)

type AttendanceRepository struct {
	pool *pgxpool.Pool
}

func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

func (r *AttendanceRepository) Get(ctx context.Context, regID, eventID string, day int) (*domain.AttendanceRecord, error) {
	const query = `
SELECT registration_id, event_id, day, status, marked_at
FROM event_attendance
WHERE registration_id = $1 AND event_id = $2 AND day = $3`

	var rec domain.AttendanceRecord
	err := r.pool.QueryRow(ctx, query, regID, eventID, day).
		Scan(&rec.RegistrationID, &rec.EventID, &rec.Day, &rec.Present, &rec.MarkedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get attendance: %w", err)
	}
	return &rec, nil
}

// Upsert writes the record for its composite key, overwriting status and
// timestamp when the key already exists. The conflict target is the table's
// primary key, so concurrent writers converge on last-write-wins.
func (r *AttendanceRepository) Upsert(ctx context.Context, rec domain.AttendanceRecord) error {
	const stmt = `
INSERT INTO event_attendance (registration_id, event_id, day, status, marked_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (registration_id, event_id, day)
DO UPDATE SET status = EXCLUDED.status, marked_at = EXCLUDED.marked_at`

	_, err := r.pool.Exec(ctx, stmt,
		rec.RegistrationID,
		rec.EventID,
		rec.Day,
		rec.Present,
		rec.MarkedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrRegistrationNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("upsert attendance: %w", err)
	}
	return nil
}

func (r *AttendanceRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.AttendanceRecord, error) {
	const query = `
SELECT registration_id, event_id, day, status, marked_at
FROM event_attendance
WHERE event_id = $1`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	var records []domain.AttendanceRecord
	for rows.Next() {
		var rec domain.AttendanceRecord
		if err := rows.Scan(&rec.RegistrationID, &rec.EventID, &rec.Day, &rec.Present, &rec.MarkedAt); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate attendance: %w", rows.Err())
	}
	return records, nil
}
