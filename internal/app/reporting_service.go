package app

import (
	"context"

	"github.com/Thisun-17/event-ticketing-system/internal/domain"
)

type TicketReader interface {
	CountByStatus(ctx context.Context, status domain.TicketStatus) (int, error)
	ListTickets(ctx context.Context) ([]domain.TicketListing, error)
	PurchaseHistory(ctx context.Context, customerID string) ([]domain.TicketListing, error)
}

// ReportingService exposes read-only aggregate views of the pool. All
// counts are live queries against the store, so two reads with no
// intervening writes always agree.
type ReportingService struct {
	store TicketReader
}

func NewReportingService(store TicketReader) *ReportingService {
	return &ReportingService{store: store}
}

func (s *ReportingService) AvailableCount(ctx context.Context) (int, error) {
	return s.store.CountByStatus(ctx, domain.TicketStatusAvailable)
}

func (s *ReportingService) Counts(ctx context.Context) (domain.StatusCounts, error) {
	available, err := s.store.CountByStatus(ctx, domain.TicketStatusAvailable)
	if err != nil {
		return domain.StatusCounts{}, err
	}
	sold, err := s.store.CountByStatus(ctx, domain.TicketStatusSold)
	if err != nil {
		return domain.StatusCounts{}, err
	}
	return domain.StatusCounts{
		Available: available,
		Sold:      sold,
		Total:     available + sold,
	}, nil
}

func (s *ReportingService) ListTickets(ctx context.Context) ([]domain.TicketListing, error) {
	return s.store.ListTickets(ctx)
}

func (s *ReportingService) PurchaseHistory(ctx context.Context, customerID string) ([]domain.TicketListing, error) {
	if customerID == "" {
		return nil, domain.ErrCustomerNotFound
	}
	return s.store.PurchaseHistory(ctx, customerID)
}
