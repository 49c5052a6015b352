package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/domain"
)

type TeamRepository struct {
	pool *pgxpool.Pool
}

func NewTeamRepository(pool *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{pool: pool}
}

const teamColumns = `id, name, role, image_url, linkedin, position, created_at`

func (r *TeamRepository) List(ctx context.Context) ([]domain.TeamMember, error) {
	query := `SELECT ` + teamColumns + ` FROM team_members ORDER BY position ASC, created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()

	var members []domain.TeamMember
	for rows.Next() {
		member, err := scanTeamMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		members = append(members, member)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate team members: %w", rows.Err())
	}
	return members, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (domain.TeamMember, error) {
	query := `SELECT ` + teamColumns + ` FROM team_members WHERE id = $1`

	member, err := scanTeamMember(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isInvalidUUID(err) || err == pgx.ErrNoRows {
			return domain.TeamMember{}, domain.ErrTeamMemberNotFound
		}
		return domain.TeamMember{}, fmt.Errorf("get team member: %w", err)
	}
	return member, nil
}

func (r *TeamRepository) Create(ctx context.Context, member domain.TeamMember) error {
	const stmt = `
INSERT INTO team_members (id, name, role, image_url, linkedin, position, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, stmt,
		member.ID, member.Name, member.Role, member.ImageURL, member.LinkedIn, member.Position, member.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create team member: %w", err)
	}
	return nil
}

func (r *TeamRepository) Update(ctx context.Context, member domain.TeamMember) error {
	const stmt = `
UPDATE team_members
SET name = $2, role = $3, image_url = $4, linkedin = $5, position = $6
WHERE id = $1`

	tag, err := r.pool.Exec(ctx, stmt,
		member.ID, member.Name, member.Role, member.ImageURL, member.LinkedIn, member.Position)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrTeamMemberNotFound
		}
		return fmt.Errorf("update team member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTeamMemberNotFound
	}
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrTeamMemberNotFound
		}
		return fmt.Errorf("delete team member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTeamMemberNotFound
	}
	return nil
}

func scanTeamMember(row pgx.Row) (domain.TeamMember, error) {
	var member domain.TeamMember
	var imageURL, linkedIn *string
	err := row.Scan(&member.ID, &member.Name, &member.Role, &imageURL, &linkedIn, &member.Position, &member.CreatedAt)
	if err != nil {
		return domain.TeamMember{}, err
	}
	if imageURL != nil {
		member.ImageURL = *imageURL
	}
	if linkedIn != nil {
		member.LinkedIn = *linkedIn
	}
	return member, nil
}
