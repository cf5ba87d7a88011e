package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/Thisun-17/event-ticketing-system/internal/syslog"
	"github.com/Thisun-17/event-ticketing-system/internal/testutil"
	"go.uber.org/zap/zaptest"
)

func TestSyslogRecorder(t *testing.T) {
	pool := testutil.NewTestPool(t)
	testutil.ApplyMigrations(t, context.Background(), pool)
	recorder := NewSyslogRecorder(pool, zaptest.NewLogger(t))

	t.Run("records entry", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		customerID := testutil.InsertCustomer(t, ctx, pool, "alice")

		recorder.Record(ctx, syslog.Entry{
			Action:      "TICKET_PURCHASED",
			Description: "Ticket T-001 sold to customer alice",
			ActorType:   syslog.ActorCustomer,
			ActorID:     &customerID,
			Timestamp:   time.Now().UTC(),
		})

		var count int
		if err := pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM system_logs WHERE action = 'TICKET_PURCHASED' AND actor_id = $1`,
			customerID,
		).Scan(&count); err != nil {
			t.Fatalf("count logs: %v", err)
		}
		if count != 1 {
			t.Fatalf("expected 1 log row, got %d", count)
		}
	})

	t.Run("swallows write failure", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		// Unknown actor type violates the check constraint; Record must not
		// surface it to the caller.
		recorder.Record(ctx, syslog.Entry{
			Action:      "TICKET_PURCHASED",
			Description: "bad actor type",
			ActorType:   syslog.ActorType("intruder"),
			Timestamp:   time.Now().UTC(),
		})

		var count int
		if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM system_logs`).Scan(&count); err != nil {
			t.Fatalf("count logs: %v", err)
		}
		if count != 0 {
			t.Fatalf("expected no rows, got %d", count)
		}
	})

	t.Run("lists entries newest first with pagination", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		base := time.Now().UTC().Truncate(time.Microsecond)
		for i := 0; i < 3; i++ {
			recorder.Record(ctx, syslog.Entry{
				Action:      "TICKETS_RELEASED",
				Description: "Vendor acme released a batch",
				ActorType:   syslog.ActorVendor,
				Timestamp:   base.Add(time.Duration(i) * time.Minute),
			})
		}
		recorder.Record(ctx, syslog.Entry{
			Action:      "TICKET_PURCHASED",
			Description: "Ticket sold",
			ActorType:   syslog.ActorCustomer,
			Timestamp:   base.Add(time.Hour),
		})

		page, err := recorder.List(ctx, 1, 2, "")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if page.Total != 4 || page.TotalPages != 2 {
			t.Fatalf("expected total 4 over 2 pages, got %d over %d", page.Total, page.TotalPages)
		}
		if len(page.Entries) != 2 {
			t.Fatalf("expected 2 entries on first page, got %d", len(page.Entries))
		}
		if page.Entries[0].Action != "TICKET_PURCHASED" {
			t.Fatalf("expected newest entry first, got %s", page.Entries[0].Action)
		}

		vendorOnly, err := recorder.List(ctx, 1, 50, syslog.ActorVendor)
		if err != nil {
			t.Fatalf("list filtered: %v", err)
		}
		if vendorOnly.Total != 3 {
			t.Fatalf("expected 3 vendor entries, got %d", vendorOnly.Total)
		}
		for _, e := range vendorOnly.Entries {
			if e.ActorType != syslog.ActorVendor {
				t.Fatalf("expected vendor entries only, got %s", e.ActorType)
			}
		}
	})

	t.Run("survives caller cancellation", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		recorder.Record(cancelled, syslog.Entry{
			Action:      "TICKETS_RELEASED",
			Description: "Vendor acme released 10 tickets",
			ActorType:   syslog.ActorVendor,
			Timestamp:   time.Now().UTC(),
		})

		var count int
		if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM system_logs`).Scan(&count); err != nil {
			t.Fatalf("count logs: %v", err)
		}
		if count != 1 {
			t.Fatalf("expected log row despite cancelled caller, got %d", count)
		}
	})
}
