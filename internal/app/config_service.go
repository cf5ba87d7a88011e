package app

import (
	"context"

	"github.com/Thisun-17/event-ticketing-system/internal/clock"
	"github.com/Thisun-17/event-ticketing-system/internal/domain"
	"github.com/google/uuid"
)

type ConfigStore interface {
	Save(ctx context.Context, cfg domain.Configuration) error
	Current(ctx context.Context) (domain.Configuration, error)
}

// ConfigService stores release/retrieval parameters for ingestion and
// purchase callers. The core never interprets them; cadence is the
// caller's responsibility.
type ConfigService struct {
	store ConfigStore
	clock clock.Clock
}

func NewConfigService(store ConfigStore, clk clock.Clock) *ConfigService {
	return &ConfigService{store: store, clock: clk}
}

type SaveConfigInput struct {
	TotalTickets          int
	TicketReleaseRate     int
	CustomerRetrievalRate int
	MaxTicketCapacity     int
}

// SaveConfig appends a new configuration row; Current returns the latest.
func (s *ConfigService) SaveConfig(ctx context.Context, in SaveConfigInput) (domain.Configuration, error) {
	now := s.clock.Now()
	cfg := domain.Configuration{
		ID:                    uuid.NewString(),
		TotalTickets:          in.TotalTickets,
		TicketReleaseRate:     in.TicketReleaseRate,
		CustomerRetrievalRate: in.CustomerRetrievalRate,
		MaxTicketCapacity:     in.MaxTicketCapacity,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := cfg.Validate(); err != nil {
		return domain.Configuration{}, err
	}
	if err := s.store.Save(ctx, cfg); err != nil {
		return domain.Configuration{}, err
	}
	return cfg, nil
}

func (s *ConfigService) Current(ctx context.Context) (domain.Configuration, error) {
	return s.store.Current(ctx)
}
