package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/clock"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/domain"
)

func TestRegistrationService_Register(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	activeEvent := domain.Event{
		ID:                 "event-1",
		Title:              "Ignition 2025",
		Type:               domain.EventTypeIgniters,
		EventDate:          now.Add(48 * time.Hour),
		RegistrationStatus: domain.RegistrationActive,
	}
	closedEvent := domain.Event{
		ID:                 "event-2",
		Title:              "Old Meetup",
		Type:               domain.EventTypeIgniters,
		RegistrationStatus: domain.RegistrationClosed,
	}

	input := RegisterInput{
		EventID: "event-1",
		Name:    "Asha Rao",
		Email:   "asha@example.com",
		Course:  "Computer Engineering",
		Year:    "3",
	}

	makeSvc := func(events []domain.Event, regs []domain.Registration, sender PassSender) (*RegistrationService, *fakeRegistrationRepo) {
		repo := newFakeRegistrationRepo(regs)
		if sender == nil {
			sender = &fakeSender{}
		}
		svc := NewRegistrationService(repo, newFakeEventRepo(events), sender, NopPublisher(), clock.NewFixed(now))
		return svc, repo
	}

	t.Run("creates registration and sends pass", func(t *testing.T) {
		sender := &fakeSender{}
		svc, repo := makeSvc([]domain.Event{activeEvent}, nil, sender)

		result, err := svc.Register(context.Background(), input)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Registration.ID == "" {
			t.Fatalf("expected registration ID to be set")
		}
		if result.Registration.RegisteredAt != now {
			t.Fatalf("expected registered_at %v, got %v", now, result.Registration.RegisteredAt)
		}
		if result.DeliveryErr != nil {
			t.Fatalf("expected no delivery error, got %v", result.DeliveryErr)
		}
		if len(repo.regs) != 1 {
			t.Fatalf("expected 1 registration stored, got %d", len(repo.regs))
		}
		if sender.sent != 1 {
			t.Fatalf("expected 1 pass sent, got %d", sender.sent)
		}
	})

	t.Run("normalizes email casing", func(t *testing.T) {
		svc, repo := makeSvc([]domain.Event{activeEvent}, nil, nil)

		in := input
		in.Email = "  Asha@Example.COM "
		result, err := svc.Register(context.Background(), in)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Registration.Email != "asha@example.com" {
			t.Fatalf("expected normalized email, got %q", result.Registration.Email)
		}
		if len(repo.regs) != 1 {
			t.Fatalf("expected 1 registration stored, got %d", len(repo.regs))
		}
	})

	t.Run("second submission for same event and email is a duplicate", func(t *testing.T) {
		svc, repo := makeSvc([]domain.Event{activeEvent}, nil, nil)

		if _, err := svc.Register(context.Background(), input); err != nil {
			t.Fatalf("first registration: %v", err)
		}
		_, err := svc.Register(context.Background(), input)
		if err != domain.ErrAlreadyRegistered {
			t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
		}
		if len(repo.regs) != 1 {
			t.Fatalf("expected exactly 1 registration row, got %d", len(repo.regs))
		}
	})

	t.Run("store conflict on insert maps to duplicate", func(t *testing.T) {
		// Simulates two concurrent submissions both passing the pre-check:
		// the insert itself hits the unique key.
		svc, repo := makeSvc([]domain.Event{activeEvent}, nil, nil)
		repo.conflictOnCreate = true

		_, err := svc.Register(context.Background(), input)
		if err != domain.ErrAlreadyRegistered {
			t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
		}
	})

	t.Run("closed event rejects registration", func(t *testing.T) {
		svc, repo := makeSvc([]domain.Event{closedEvent}, nil, nil)

		in := input
		in.EventID = "event-2"
		_, err := svc.Register(context.Background(), in)
		if err != domain.ErrRegistrationClosed {
			t.Fatalf("expected ErrRegistrationClosed, got %v", err)
		}
		if len(repo.regs) != 0 {
			t.Fatalf("expected no registration stored, got %d", len(repo.regs))
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		svc, _ := makeSvc(nil, nil, nil)

		_, err := svc.Register(context.Background(), input)
		if err != domain.ErrEventNotFound {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		svc, _ := makeSvc([]domain.Event{activeEvent}, nil, nil)

		in := input
		in.Course = "  "
		if _, err := svc.Register(context.Background(), in); err != domain.ErrMissingField {
			t.Fatalf("expected ErrMissingField, got %v", err)
		}
	})

	t.Run("malformed email rejected", func(t *testing.T) {
		svc, _ := makeSvc([]domain.Event{activeEvent}, nil, nil)

		in := input
		in.Email = "not-an-email"
		if _, err := svc.Register(context.Background(), in); err != domain.ErrInvalidEmail {
			t.Fatalf("expected ErrInvalidEmail, got %v", err)
		}
	})

	t.Run("email failure is a soft failure", func(t *testing.T) {
		sendErr := errors.New("smtp refused")
		svc, repo := makeSvc([]domain.Event{activeEvent}, nil, &fakeSender{err: sendErr})

		result, err := svc.Register(context.Background(), input)
		if err != nil {
			t.Fatalf("expected registration to succeed, got %v", err)
		}
		if result.DeliveryErr == nil {
			t.Fatalf("expected delivery error to be reported")
		}
		if len(repo.regs) != 1 {
			t.Fatalf("registration must not be rolled back on email failure")
		}
	})
}

type fakeRegistrationRepo struct {
	regs             []domain.Registration
	conflictOnCreate bool
}

func newFakeRegistrationRepo(regs []domain.Registration) *fakeRegistrationRepo {
	return &fakeRegistrationRepo{regs: append([]domain.Registration{}, regs...)}
}

func (f *fakeRegistrationRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeRegistrationRepo) FindByEventAndEmail(_ context.Context, eventID, email string) (*domain.Registration, error) {
	for i := range f.regs {
		r := f.regs[i]
		if r.EventID == eventID && r.Email == email {
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeRegistrationRepo) Create(_ context.Context, reg domain.Registration) error {
	if f.conflictOnCreate {
		return domain.ErrAlreadyRegistered
	}
	f.regs = append(f.regs, reg)
	return nil
}

func (f *fakeRegistrationRepo) GetByID(_ context.Context, id string) (domain.Registration, error) {
	for _, r := range f.regs {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Registration{}, domain.ErrRegistrationNotFound
}

func (f *fakeRegistrationRepo) ListByEvent(_ context.Context, eventID string) ([]domain.Registration, error) {
	var out []domain.Registration
	for _, r := range f.regs {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRegistrationRepo) Delete(_ context.Context, id string) error {
	for i, r := range f.regs {
		if r.ID == id {
			f.regs = append(f.regs[:i], f.regs[i+1:]...)
			return nil
		}
	}
	return domain.ErrRegistrationNotFound
}

type fakeEventRepo struct {
	events map[string]domain.Event
}

func newFakeEventRepo(events []domain.Event) *fakeEventRepo {
	m := make(map[string]domain.Event)
	for _, e := range events {
		m[e.ID] = e
	}
	return &fakeEventRepo{events: m}
}

func (f *fakeEventRepo) GetByID(_ context.Context, id string) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, domain.ErrEventNotFound
	}
	return event, nil
}

type fakeSender struct {
	sent int
	err  error
}

func (f *fakeSender) SendPass(context.Context, domain.Registration, domain.Event) error {
	if f.err != nil {
		return f.err
	}
	f.sent++
	return nil
}
