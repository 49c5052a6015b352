package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/domain"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/testutil"
)

func TestRegistrationRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewRegistrationRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("Create and GetByID round-trip", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		eventID := testutil.InsertEvent(t, ctx, pool, "Ideathon", domain.RegistrationActive)

		reg := domain.Registration{
			ID:           uuid.NewString(),
			EventID:      eventID,
			Name:         "Aditi Rao",
			Email:        "aditi@example.com",
			Course:       "ECE",
			Year:         "2",
			RegisteredAt: time.Now().UTC().Truncate(time.Microsecond),
		}
		if err := repo.Create(ctx, reg); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		got, err := repo.GetByID(ctx, reg.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.EventID != eventID || got.Email != "aditi@example.com" || got.Course != "ECE" {
			t.Fatalf("unexpected registration: %+v", got)
		}
	})

	t.Run("Create maps the unique email index to ErrAlreadyRegistered", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		eventID := testutil.InsertEvent(t, ctx, pool, "Ideathon", domain.RegistrationActive)
		testutil.InsertRegistration(t, ctx, pool, eventID, "Aditi Rao", "aditi@example.com")

		dup := domain.Registration{
			ID:           uuid.NewString(),
			EventID:      eventID,
			Name:         "Aditi Rao",
			Email:        "ADITI@example.com", // index is on lower(email)
			Course:       "ECE",
			Year:         "2",
			RegisteredAt: time.Now().UTC(),
		}
		if err := repo.Create(ctx, dup); err != domain.ErrAlreadyRegistered {
			t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
		}
	})

	t.Run("Create rejects unknown event", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		reg := domain.Registration{
			ID:           uuid.NewString(),
			EventID:      uuid.NewString(),
			Name:         "Nobody",
			Email:        "nobody@example.com",
			Course:       "CSE",
			Year:         "1",
			RegisteredAt: time.Now().UTC(),
		}
		if err := repo.Create(ctx, reg); err != domain.ErrEventNotFound {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}
	})

	t.Run("FindByEventAndEmail is case-insensitive and nil when absent", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		eventID := testutil.InsertEvent(t, ctx, pool, "Ideathon", domain.RegistrationActive)
		regID := testutil.InsertRegistration(t, ctx, pool, eventID, "Aditi Rao", "aditi@example.com")

		found, err := repo.FindByEventAndEmail(ctx, eventID, "Aditi@Example.COM")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if found == nil || found.ID != regID {
			t.Fatalf("unexpected registration: %+v", found)
		}

		found, err = repo.FindByEventAndEmail(ctx, eventID, "other@example.com")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if found != nil {
			t.Fatalf("expected nil, got %+v", found)
		}
	})

	t.Run("ListByEvent orders by registration time", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		eventID := testutil.InsertEvent(t, ctx, pool, "Ideathon", domain.RegistrationActive)

		first := testutil.InsertRegistration(t, ctx, pool, eventID, "First", "first@example.com")
		second := testutil.InsertRegistration(t, ctx, pool, eventID, "Second", "second@example.com")

		regs, err := repo.ListByEvent(ctx, eventID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(regs) != 2 || regs[0].ID != first || regs[1].ID != second {
			t.Fatalf("unexpected listing: %+v", regs)
		}
	})

	t.Run("Delete removes the row and reports missing rows", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		eventID := testutil.InsertEvent(t, ctx, pool, "Ideathon", domain.RegistrationActive)
		regID := testutil.InsertRegistration(t, ctx, pool, eventID, "Aditi Rao", "aditi@example.com")

		if err := repo.Delete(ctx, regID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := repo.Delete(ctx, regID); err != domain.ErrRegistrationNotFound {
			t.Fatalf("expected ErrRegistrationNotFound, got %v", err)
		}
	})

	t.Run("GetByID maps bad ids to ErrRegistrationNotFound", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		if _, err := repo.GetByID(ctx, "not-a-uuid"); err != domain.ErrRegistrationNotFound {
			t.Fatalf("expected ErrRegistrationNotFound, got %v", err)
		}
	})
}
