package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Thisun-17/event-ticketing-system/internal/domain"
	"github.com/Thisun-17/event-ticketing-system/internal/testutil"
	"github.com/google/uuid"
)

func TestConfigRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewConfigRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("Current returns ErrConfigNotFound when empty", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		_, err := repo.Current(ctx)
		if !errors.Is(err, domain.ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("latest saved configuration wins", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		base := time.Now().UTC().Truncate(time.Microsecond)

		older := domain.Configuration{
			ID:                    uuid.NewString(),
			TotalTickets:          50,
			TicketReleaseRate:     5,
			CustomerRetrievalRate: 2,
			MaxTicketCapacity:     100,
			CreatedAt:             base.Add(-time.Hour),
			UpdatedAt:             base.Add(-time.Hour),
		}
		newer := domain.Configuration{
			ID:                    uuid.NewString(),
			TotalTickets:          80,
			TicketReleaseRate:     8,
			CustomerRetrievalRate: 4,
			MaxTicketCapacity:     160,
			CreatedAt:             base,
			UpdatedAt:             base,
		}

		if err := repo.Save(ctx, older); err != nil {
			t.Fatalf("save older: %v", err)
		}
		if err := repo.Save(ctx, newer); err != nil {
			t.Fatalf("save newer: %v", err)
		}

		current, err := repo.Current(ctx)
		if err != nil {
			t.Fatalf("current: %v", err)
		}
		if current.ID != newer.ID {
			t.Fatalf("expected %s, got %s", newer.ID, current.ID)
		}
		if current.TotalTickets != 80 || current.MaxTicketCapacity != 160 {
			t.Fatalf("unexpected configuration: %+v", current)
		}
	})
}
