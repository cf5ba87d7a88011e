package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Thisun-17/event-ticketing-system/internal/clock"
	"github.com/Thisun-17/event-ticketing-system/internal/domain"
	"github.com/stretchr/testify/require"
)

type fakeInserter struct {
	committed []domain.TicketDraft
	vendorID  string
	insertErr error
	failAtRow int // 1-based; 0 disables
	txCount   int
}

func (f *fakeInserter) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.txCount++
	staged := f.committed
	if err := fn(ctx); err != nil {
		f.committed = staged // rollback
		return err
	}
	return nil
}

func (f *fakeInserter) InsertBatch(_ context.Context, vendorID string, drafts []domain.TicketDraft) (int, error) {
	f.vendorID = vendorID
	for i, draft := range drafts {
		if f.failAtRow > 0 && i+1 == f.failAtRow {
			return 0, errors.New("insert failed")
		}
		if f.insertErr != nil {
			return 0, f.insertErr
		}
		f.committed = append(f.committed, draft)
	}
	return len(drafts), nil
}

func TestIngestionService_AddTickets(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	drafts := func(n int) []domain.TicketDraft {
		out := make([]domain.TicketDraft, n)
		for i := range out {
			out[i] = domain.TicketDraft{TicketNumber: string(rune('A' + i)), Price: 10}
		}
		return out
	}

	t.Run("commits full batch", func(t *testing.T) {
		store := &fakeInserter{}
		recorder := &memRecorder{}
		svc := NewIngestionService(store, clock.NewFixed(now), recorder, nil)

		count, err := svc.AddTickets(context.Background(), "vendor-1", drafts(10))
		require.NoError(t, err)
		require.Equal(t, 10, count)
		require.Len(t, store.committed, 10)
		require.Equal(t, "vendor-1", store.vendorID)

		entries := recorder.all()
		require.Len(t, entries, 1)
		require.Equal(t, "TICKETS_RELEASED", entries[0].Action)
	})

	t.Run("applies default price to unpriced drafts", func(t *testing.T) {
		store := &fakeInserter{}
		svc := NewIngestionService(store, clock.NewFixed(now), nil, nil)

		_, err := svc.AddTickets(context.Background(), "vendor-1", []domain.TicketDraft{
			{TicketNumber: "T-001"},
			{TicketNumber: "T-002", Price: 75},
		})
		require.NoError(t, err)
		require.Equal(t, domain.DefaultTicketPrice, store.committed[0].Price)
		require.Equal(t, 75.0, store.committed[1].Price)
	})

	t.Run("validation happens before any transaction", func(t *testing.T) {
		cases := map[string]struct {
			vendorID string
			drafts   []domain.TicketDraft
		}{
			"empty vendor id": {"", drafts(1)},
			"empty batch":     {"vendor-1", nil},
			"missing ticket number": {"vendor-1", []domain.TicketDraft{
				{TicketNumber: "T-001", Price: 10},
				{TicketNumber: "", Price: 10},
			}},
			"negative price": {"vendor-1", []domain.TicketDraft{
				{TicketNumber: "T-001", Price: -1},
			}},
		}

		for name, tc := range cases {
			t.Run(name, func(t *testing.T) {
				store := &fakeInserter{}
				svc := NewIngestionService(store, clock.NewFixed(now), nil, nil)

				count, err := svc.AddTickets(context.Background(), tc.vendorID, tc.drafts)
				require.ErrorIs(t, err, domain.ErrValidation)
				require.Zero(t, count)
				require.Zero(t, store.txCount, "no transaction should open on validation failure")
			})
		}
	})

	t.Run("failing row rolls back the whole batch", func(t *testing.T) {
		store := &fakeInserter{failAtRow: 10}
		recorder := &memRecorder{}
		svc := NewIngestionService(store, clock.NewFixed(now), recorder, nil)

		count, err := svc.AddTickets(context.Background(), "vendor-1", drafts(10))
		require.ErrorIs(t, err, domain.ErrIngestionFailed)
		require.Zero(t, count)
		require.Empty(t, store.committed, "partial batch must not be visible")
		require.Empty(t, recorder.all())
	})

	t.Run("unknown vendor surfaces as such", func(t *testing.T) {
		store := &fakeInserter{insertErr: domain.ErrVendorNotFound}
		svc := NewIngestionService(store, clock.NewFixed(now), nil, nil)

		_, err := svc.AddTickets(context.Background(), "vendor-9", drafts(2))
		require.ErrorIs(t, err, domain.ErrVendorNotFound)
	})
}
