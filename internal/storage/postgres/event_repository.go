package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/domain"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumns = `id, title, description, event_type, event_date, end_date, registration_status, link, image_url, created_by, created_at`

func (r *EventRepository) Create(ctx context.Context, event domain.Event) error {
	const stmt = `
INSERT INTO events (id, title, description, event_type, event_date, end_date, registration_status, link, image_url, created_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11)`

	_, err := r.pool.Exec(ctx, stmt,
		event.ID,
		event.Title,
		event.Description,
		event.Type,
		event.EventDate,
		event.EndDate,
		event.RegistrationStatus,
		event.Link,
		event.ImageURL,
		event.CreatedBy,
		event.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) error {
	const stmt = `
UPDATE events
SET title = $2, description = $3, event_type = $4, event_date = $5, end_date = $6,
    registration_status = $7, link = $8, image_url = $9
WHERE id = $1`

	tag, err := r.pool.Exec(ctx, stmt,
		event.ID,
		event.Title,
		event.Description,
		event.Type,
		event.EventDate,
		event.EndDate,
		event.RegistrationStatus,
		event.Link,
		event.ImageURL,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Event{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) List(ctx context.Context, eventType domain.EventType) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events`
	args := []any{}
	if eventType != "" {
		query += ` WHERE event_type = $1`
		args = append(args, eventType)
	}
	query += ` ORDER BY event_date ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate events: %w", rows.Err())
	}
	return events, nil
}

func scanEvent(row pgx.Row) (domain.Event, error) {
	var event domain.Event
	var eventType, status string
	var link, imageURL, createdBy *string
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&eventType,
		&event.EventDate,
		&event.EndDate,
		&status,
		&link,
		&imageURL,
		&createdBy,
		&event.CreatedAt,
	)
	if err != nil {
		return domain.Event{}, err
	}
	event.Type = domain.EventType(eventType)
	event.RegistrationStatus = domain.RegistrationStatus(status)
	if link != nil {
		event.Link = *link
	}
	if imageURL != nil {
		event.ImageURL = *imageURL
	}
	if createdBy != nil {
		event.CreatedBy = *createdBy
	}
	return event, nil
}
