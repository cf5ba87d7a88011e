package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Thisun-17/event-ticketing-system/internal/clock"
	"github.com/Thisun-17/event-ticketing-system/internal/domain"
	"github.com/Thisun-17/event-ticketing-system/internal/syslog"
	"go.uber.org/zap"
)

type TicketInserter interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	InsertBatch(ctx context.Context, vendorID string, drafts []domain.TicketDraft) (int, error)
}

// IngestionService bulk-inserts a vendor's release as one atomic unit.
// Partial batches are never visible: if any row fails, zero rows commit.
type IngestionService struct {
	store    TicketInserter
	clock    clock.Clock
	recorder syslog.Recorder
	logger   *zap.Logger
}

func NewIngestionService(store TicketInserter, clk clock.Clock, recorder syslog.Recorder, logger *zap.Logger) *IngestionService {
	if recorder == nil {
		recorder = syslog.Nop()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IngestionService{
		store:    store,
		clock:    clk,
		recorder: recorder,
		logger:   logger,
	}
}

// AddTickets validates the whole batch before any transaction opens, then
// commits every draft or none. Returns the committed count, equal to the
// batch size on success. A draft with price zero gets the default price.
func (s *IngestionService) AddTickets(ctx context.Context, vendorID string, drafts []domain.TicketDraft) (int, error) {
	if vendorID == "" {
		return 0, fmt.Errorf("%w: vendor id is required", domain.ErrValidation)
	}
	if len(drafts) == 0 {
		return 0, fmt.Errorf("%w: batch is empty", domain.ErrValidation)
	}

	batch := make([]domain.TicketDraft, len(drafts))
	for i, draft := range drafts {
		if draft.TicketNumber == "" {
			return 0, fmt.Errorf("%w: draft %d: ticket number is required", domain.ErrValidation, i)
		}
		if draft.Price < 0 {
			return 0, fmt.Errorf("%w: draft %d: price must not be negative", domain.ErrValidation, i)
		}
		if draft.Price == 0 {
			draft.Price = domain.DefaultTicketPrice
		}
		batch[i] = draft
	}

	var committed int
	err := s.store.WithTx(ctx, func(txCtx context.Context) error {
		n, err := s.store.InsertBatch(txCtx, vendorID, batch)
		if err != nil {
			return err
		}
		committed = n
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrVendorNotFound) {
			return 0, err
		}
		s.logger.Warn("ticket batch rolled back",
			zap.String("vendor_id", vendorID),
			zap.Int("batch_size", len(batch)),
			zap.Error(err),
		)
		return 0, fmt.Errorf("%w: %v", domain.ErrIngestionFailed, err)
	}

	s.logger.Info("ticket batch ingested",
		zap.String("vendor_id", vendorID),
		zap.Int("count", committed),
	)
	s.recorder.Record(ctx, syslog.Entry{
		Action:      "TICKETS_RELEASED",
		Description: fmt.Sprintf("Vendor %s released %d tickets", vendorID, committed),
		ActorType:   syslog.ActorVendor,
		ActorID:     &vendorID,
		Timestamp:   s.clock.Now(),
	})

	return committed, nil
}
