package app

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/clock"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/domain"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/metric"
)

type RegistrationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	FindByEventAndEmail(ctx context.Context, eventID, email string) (*domain.Registration, error)
	Create(ctx context.Context, reg domain.Registration) error
	GetByID(ctx context.Context, id string) (domain.Registration, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error)
	Delete(ctx context.Context, id string) error
}

// EventGetter is the slice of the event store the registration flow needs.
type EventGetter interface {
	GetByID(ctx context.Context, id string) (domain.Event, error)
}

// PassSender delivers the QR pass for a fresh registration.
type PassSender interface {
	SendPass(ctx context.Context, reg domain.Registration, event domain.Event) error
}

type RegistrationService struct {
	repo   RegistrationRepository
	events EventGetter
	sender PassSender
	feed   ChangePublisher
	clock  clock.Clock
}

func NewRegistrationService(repo RegistrationRepository, events EventGetter, sender PassSender, feed ChangePublisher, clk clock.Clock) *RegistrationService {
	return &RegistrationService{
		repo:   repo,
		events: events,
		sender: sender,
		feed:   feed,
		clock:  clk,
	}
}

type RegisterInput struct {
	EventID string
	Name    string
	Email   string
	Course  string
	Year    string
}

func (in RegisterInput) validate() error {
	if in.EventID == "" {
		return domain.ErrInvalidID
	}
	if strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.Email) == "" ||
		strings.TrimSpace(in.Course) == "" ||
		strings.TrimSpace(in.Year) == "" {
		return domain.ErrMissingField
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(in.Email)); err != nil {
		return domain.ErrInvalidEmail
	}
	return nil
}

// RegisterResult carries the durable registration plus the outcome of pass
// delivery. A non-nil DeliveryErr means the record exists but the email did
// not go out; callers surface it as a soft failure, never a rollback.
type RegisterResult struct {
	Registration domain.Registration
	DeliveryErr  error
}

// Register records a unique (event, email) registration and dispatches the
// QR pass. Duplicate submissions fail with domain.ErrAlreadyRegistered
// whether they lose to the pre-check or to the store's unique key.
func (s *RegistrationService) Register(ctx context.Context, in RegisterInput) (RegisterResult, error) {
	if err := in.validate(); err != nil {
		metric.RegistrationsTotal.WithLabelValues(metric.ResultInvalid).Inc()
		return RegisterResult{}, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	event, err := s.events.GetByID(ctx, in.EventID)
	if err != nil {
		metric.RegistrationsTotal.WithLabelValues(metric.ResultError).Inc()
		return RegisterResult{}, err
	}
	if !event.RegistrationOpen() {
		metric.RegistrationsTotal.WithLabelValues(metric.ResultInvalid).Inc()
		return RegisterResult{}, domain.ErrRegistrationClosed
	}

	reg := domain.Registration{
		ID:           newID(),
		EventID:      event.ID,
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		Course:       strings.TrimSpace(in.Course),
		Year:         strings.TrimSpace(in.Year),
		RegisteredAt: s.clock.Now(),
	}

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByEventAndEmail(txCtx, event.ID, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrAlreadyRegistered
		}
		// The unique index still backstops concurrent submissions that both
		// pass the check; the repository maps that conflict to the same error.
		return s.repo.Create(txCtx, reg)
	})
	if err != nil {
		if err == domain.ErrAlreadyRegistered {
			metric.RegistrationsTotal.WithLabelValues(metric.ResultDuplicate).Inc()
		} else {
			metric.RegistrationsTotal.WithLabelValues(metric.ResultError).Inc()
		}
		return RegisterResult{}, err
	}

	metric.RegistrationsTotal.WithLabelValues(metric.ResultOK).Inc()
	s.feed.Publish("igniters_registrations", "INSERT", reg.ID)

	result := RegisterResult{Registration: reg}
	if err := s.sender.SendPass(ctx, reg, event); err != nil {
		// The row is the durable artifact; a failed email is reported, not
		// reverted.
		slog.Warn("pass delivery failed",
			"registration_id", reg.ID, "event_id", event.ID, "error", err)
		metric.PassEmailsTotal.WithLabelValues(metric.ResultError).Inc()
		result.DeliveryErr = err
	} else {
		metric.PassEmailsTotal.WithLabelValues(metric.ResultOK).Inc()
	}
	return result, nil
}

// ListByEvent returns an event's registrations ordered by registration time.
func (s *RegistrationService) ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error) {
	if eventID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListByEvent(ctx, eventID)
}

// Delete removes a registration record.
func (s *RegistrationService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.feed.Publish("igniters_registrations", "DELETE", id)
	return nil
}
