package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/domain"
)

type RegistrationRepository struct {
	pool *pgxpool.Pool
}

func NewRegistrationRepository(pool *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{pool: pool}
}

func (r *RegistrationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

const registrationColumns = `id, event_id, name, email, course, year, registered_at`

func (r *RegistrationRepository) FindByEventAndEmail(ctx context.Context, eventID, email string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + `
FROM igniters_registrations
WHERE event_id = $1 AND lower(email) = lower($2)`

	var reg domain.Registration
	err := r.queryRow(ctx, query, eventID, email).
		Scan(&reg.ID, &reg.EventID, &reg.Name, &reg.Email, &reg.Course, &reg.Year, &reg.RegisteredAt)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find registration: %w", err)
	}
	return &reg, nil
}

func (r *RegistrationRepository) Create(ctx context.Context, reg domain.Registration) error {
	const stmt = `
INSERT INTO igniters_registrations (id, event_id, name, email, course, year, registered_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.exec(ctx, stmt,
		reg.ID,
		reg.EventID,
		reg.Name,
		reg.Email,
		reg.Course,
		reg.Year,
		reg.RegisteredAt,
	)
	if err != nil {
		// Unique (event_id, lower(email)): a concurrent submission won the
		// race between the pre-check and this insert.
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		if isForeignKeyViolation(err) {
			return domain.ErrEventNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create registration: %w", err)
	}
	return nil
}

func (r *RegistrationRepository) GetByID(ctx context.Context, id string) (domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM igniters_registrations WHERE id = $1`

	var reg domain.Registration
	err := r.queryRow(ctx, query, id).
		Scan(&reg.ID, &reg.EventID, &reg.Name, &reg.Email, &reg.Course, &reg.Year, &reg.RegisteredAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Registration{}, domain.ErrRegistrationNotFound
		}
		if err == pgx.ErrNoRows {
			return domain.Registration{}, domain.ErrRegistrationNotFound
		}
		return domain.Registration{}, fmt.Errorf("get registration: %w", err)
	}
	return reg, nil
}

func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error) {
	query := `SELECT ` + registrationColumns + `
FROM igniters_registrations
WHERE event_id = $1
ORDER BY registered_at ASC`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var regs []domain.Registration
	for rows.Next() {
		var reg domain.Registration
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.Name, &reg.Email, &reg.Course, &reg.Year, &reg.RegisteredAt); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate registrations: %w", rows.Err())
	}
	return regs, nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM igniters_registrations WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrRegistrationNotFound
		}
		return fmt.Errorf("delete registration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRegistrationNotFound
	}
	return nil
}

func (r *RegistrationRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *RegistrationRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
