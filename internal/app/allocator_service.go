package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Thisun-17/event-ticketing-system/internal/clock"
	"github.com/Thisun-17/event-ticketing-system/internal/domain"
	"github.com/Thisun-17/event-ticketing-system/internal/syslog"
	"go.uber.org/zap"
)

type TicketStore interface {
	WithPurchaseTx(ctx context.Context, fn func(ctx context.Context) error) error
	SelectAvailableForUpdate(ctx context.Context) (domain.Ticket, error)
	MarkSold(ctx context.Context, ticketID, customerID string, soldAt time.Time) error
}

// AllocatorService performs atomic ticket-to-customer assignment under
// contention. It holds no shared mutable state of its own; every purchase
// runs in its own store transaction and all coordination is delegated to
// the store's row locks.
type AllocatorService struct {
	store    TicketStore
	clock    clock.Clock
	recorder syslog.Recorder
	logger   *zap.Logger
}

func NewAllocatorService(store TicketStore, clk clock.Clock, recorder syslog.Recorder, logger *zap.Logger) *AllocatorService {
	if recorder == nil {
		recorder = syslog.Nop()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AllocatorService{
		store:    store,
		clock:    clk,
		recorder: recorder,
		logger:   logger,
	}
}

// Purchase allocates one available ticket to the customer. Given N
// concurrent purchases against M available tickets, exactly min(N, M)
// succeed with distinct tickets and the rest get ErrSoldOut.
//
// ErrSoldOut is a normal terminal outcome, not a fault. Transient store
// failures surface as ErrAllocationFailed after rollback; since nothing is
// committed in that case, the caller may retry. There is no client-supplied
// idempotency key, so at-most-one allocation across a client's own retries
// is not guaranteed.
func (s *AllocatorService) Purchase(ctx context.Context, customerID string) (domain.Ticket, error) {
	if customerID == "" {
		return domain.Ticket{}, domain.ErrCustomerNotFound
	}

	var ticket domain.Ticket

	err := s.store.WithPurchaseTx(ctx, func(txCtx context.Context) error {
		selected, err := s.store.SelectAvailableForUpdate(txCtx)
		if err != nil {
			return err
		}

		soldAt := s.clock.Now()
		if err := s.store.MarkSold(txCtx, selected.ID, customerID, soldAt); err != nil {
			return err
		}

		selected.Status = domain.TicketStatusSold
		selected.CustomerID = &customerID
		selected.SoldAt = &soldAt
		ticket = selected
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSoldOut),
			errors.Is(err, domain.ErrCustomerNotFound):
			return domain.Ticket{}, err
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			// Caller gave up before commit; the rollback released the lock
			// and the ticket stays available.
			return domain.Ticket{}, err
		case errors.Is(err, domain.ErrAllocationFailed):
			// Transient store failure classified by the repository.
			s.logger.Warn("purchase transaction failed",
				zap.String("customer_id", customerID),
				zap.Error(err),
			)
			return domain.Ticket{}, err
		default:
			s.logger.Error("purchase failed",
				zap.String("customer_id", customerID),
				zap.Error(err),
			)
			return domain.Ticket{}, fmt.Errorf("purchase ticket: %w", err)
		}
	}

	s.logger.Info("ticket sold",
		zap.String("ticket_id", ticket.ID),
		zap.String("ticket_number", ticket.TicketNumber),
		zap.String("customer_id", customerID),
	)
	s.recorder.Record(ctx, syslog.Entry{
		Action:      "TICKET_PURCHASED",
		Description: fmt.Sprintf("Ticket %s sold to customer %s", ticket.TicketNumber, customerID),
		ActorType:   syslog.ActorCustomer,
		ActorID:     &customerID,
		Timestamp:   s.clock.Now(),
	})

	return ticket, nil
}
