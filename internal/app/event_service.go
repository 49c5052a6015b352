package app

import (
	"context"
	"strings"
	"time"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/clock"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/domain"
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) error
	Update(ctx context.Context, event domain.Event) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (domain.Event, error)
	List(ctx context.Context, eventType domain.EventType) ([]domain.Event, error)
}

type EventService struct {
	repo  EventRepository
	feed  ChangePublisher
	clock clock.Clock
}

func NewEventService(repo EventRepository, feed ChangePublisher, clk clock.Clock) *EventService {
	return &EventService{
		repo:  repo,
		feed:  feed,
		clock: clk,
	}
}

type EventInput struct {
	Title              string
	Description        string
	Type               domain.EventType
	EventDate          time.Time
	EndDate            *time.Time
	RegistrationStatus domain.RegistrationStatus
	Link               string
	ImageURL           string
	CreatedBy          string
}

func (in EventInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return domain.ErrMissingField
	}
	switch in.Type {
	case domain.EventTypeUnstop, domain.EventTypeIgniters:
	default:
		return domain.ErrInvalidEventType
	}
	switch in.RegistrationStatus {
	case domain.RegistrationActive, domain.RegistrationUpcoming, domain.RegistrationClosed:
	default:
		return domain.ErrInvalidStatus
	}
	return nil
}

func (s *EventService) Create(ctx context.Context, in EventInput) (domain.Event, error) {
	if err := in.validate(); err != nil {
		return domain.Event{}, err
	}

	eventDate := in.EventDate
	if eventDate.IsZero() {
		eventDate = s.clock.Now()
	}
	event := domain.Event{
		ID:                 newID(),
		Title:              strings.TrimSpace(in.Title),
		Description:        in.Description,
		Type:               in.Type,
		EventDate:          eventDate,
		EndDate:            in.EndDate,
		RegistrationStatus: in.RegistrationStatus,
		Link:               in.Link,
		ImageURL:           in.ImageURL,
		CreatedBy:          in.CreatedBy,
		CreatedAt:          s.clock.Now(),
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return domain.Event{}, err
	}
	s.feed.Publish("events", "INSERT", event.ID)
	return event, nil
}

func (s *EventService) Update(ctx context.Context, id string, in EventInput) (domain.Event, error) {
	if id == "" {
		return domain.Event{}, domain.ErrInvalidID
	}
	if err := in.validate(); err != nil {
		return domain.Event{}, err
	}

	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}
	event.Title = strings.TrimSpace(in.Title)
	event.Description = in.Description
	event.Type = in.Type
	if !in.EventDate.IsZero() {
		event.EventDate = in.EventDate
	}
	event.EndDate = in.EndDate
	event.RegistrationStatus = in.RegistrationStatus
	event.Link = in.Link
	event.ImageURL = in.ImageURL

	if err := s.repo.Update(ctx, event); err != nil {
		return domain.Event{}, err
	}
	s.feed.Publish("events", "UPDATE", event.ID)
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.feed.Publish("events", "DELETE", id)
	return nil
}

func (s *EventService) GetByID(ctx context.Context, id string) (domain.Event, error) {
	if id == "" {
		return domain.Event{}, domain.ErrInvalidID
	}
	return s.repo.GetByID(ctx, id)
}

// List returns events ordered by date, optionally filtered by type. An empty
// type returns everything.
func (s *EventService) List(ctx context.Context, eventType domain.EventType) ([]domain.Event, error) {
	switch eventType {
	case "", domain.EventTypeUnstop, domain.EventTypeIgniters:
	default:
		return nil, domain.ErrInvalidEventType
	}
	return s.repo.List(ctx, eventType)
}
