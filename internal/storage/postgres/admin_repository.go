package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/domain"
)

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*domain.AdminRole, error) {
	const query = `
SELECT id, email, password_hash, role, created_at
FROM admin_roles
WHERE lower(email) = lower($1)`

	var admin domain.AdminRole
	var level string
	err := r.pool.QueryRow(ctx, query, email).
		Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &level, &admin.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	admin.Level = domain.AdminLevel(level)
	return &admin, nil
}

func (r *AdminRepository) List(ctx context.Context) ([]domain.AdminRole, error) {
	const query = `
SELECT id, email, password_hash, role, created_at
FROM admin_roles
ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer rows.Close()

	var admins []domain.AdminRole
	for rows.Next() {
		var admin domain.AdminRole
		var level string
		if err := rows.Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &level, &admin.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan admin: %w", err)
		}
		admin.Level = domain.AdminLevel(level)
		admins = append(admins, admin)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate admins: %w", rows.Err())
	}
	return admins, nil
}

func (r *AdminRepository) Create(ctx context.Context, admin domain.AdminRole) error {
	const stmt = `
INSERT INTO admin_roles (id, email, password_hash, role, created_at)
VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, stmt, admin.ID, admin.Email, admin.PasswordHash, admin.Level, admin.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAdminExists
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}

func (r *AdminRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM admin_roles WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrAdminNotFound
		}
		return fmt.Errorf("delete admin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}
