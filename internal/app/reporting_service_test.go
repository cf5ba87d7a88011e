package app

import (
	"context"
	"testing"
	"time"

	"github.com/Thisun-17/event-ticketing-system/internal/domain"
)

type fakeReader struct {
	available int
	sold      int
	listings  []domain.TicketListing
	history   map[string][]domain.TicketListing
	reads     int
}

func (f *fakeReader) CountByStatus(_ context.Context, status domain.TicketStatus) (int, error) {
	f.reads++
	if status == domain.TicketStatusSold {
		return f.sold, nil
	}
	return f.available, nil
}

func (f *fakeReader) ListTickets(context.Context) ([]domain.TicketListing, error) {
	return f.listings, nil
}

func (f *fakeReader) PurchaseHistory(_ context.Context, customerID string) ([]domain.TicketListing, error) {
	return f.history[customerID], nil
}

func TestReportingService_Counts(t *testing.T) {
	t.Parallel()

	reader := &fakeReader{available: 7, sold: 3}
	svc := NewReportingService(reader)

	counts, err := svc.Counts(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if counts.Available != 7 || counts.Sold != 3 || counts.Total != 10 {
		t.Fatalf("unexpected counts: %+v", counts)
	}

	// Idempotent read: no intervening writes, same answer.
	again, err := svc.Counts(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if again != counts {
		t.Fatalf("expected identical counts, got %+v vs %+v", again, counts)
	}
}

func TestReportingService_AvailableCount(t *testing.T) {
	t.Parallel()

	reader := &fakeReader{available: 4}
	svc := NewReportingService(reader)

	count, err := svc.AvailableCount(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if count != 4 {
		t.Fatalf("expected 4, got %d", count)
	}
}

func TestReportingService_PurchaseHistory(t *testing.T) {
	t.Parallel()

	soldAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	reader := &fakeReader{
		history: map[string][]domain.TicketListing{
			"customer-1": {
				{ID: "ticket-2", Status: domain.TicketStatusSold, SoldAt: &soldAt},
			},
		},
	}
	svc := NewReportingService(reader)

	listings, err := svc.PurchaseHistory(context.Background(), "customer-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(listings) != 1 || listings[0].ID != "ticket-2" {
		t.Fatalf("unexpected history: %+v", listings)
	}

	if _, err := svc.PurchaseHistory(context.Background(), ""); err != domain.ErrCustomerNotFound {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}
