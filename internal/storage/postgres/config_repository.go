package postgres

import (
	"context"
	"fmt"

	"github.com/Thisun-17/event-ticketing-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConfigRepository stores release/retrieval rate parameters. The latest
// saved row is the current configuration.
type ConfigRepository struct {
	pool *pgxpool.Pool
}

func NewConfigRepository(pool *pgxpool.Pool) *ConfigRepository {
	return &ConfigRepository{pool: pool}
}

func (r *ConfigRepository) Save(ctx context.Context, cfg domain.Configuration) error {
	const stmt = `
INSERT INTO configurations (id, total_tickets, ticket_release_rate, customer_retrieval_rate, max_ticket_capacity, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, stmt,
		cfg.ID,
		cfg.TotalTickets,
		cfg.TicketReleaseRate,
		cfg.CustomerRetrievalRate,
		cfg.MaxTicketCapacity,
		cfg.CreatedAt,
		cfg.UpdatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("save configuration: %w", err)
	}
	return nil
}

func (r *ConfigRepository) Current(ctx context.Context) (domain.Configuration, error) {
	const query = `
SELECT id, total_tickets, ticket_release_rate, customer_retrieval_rate, max_ticket_capacity, created_at, updated_at
FROM configurations
ORDER BY created_at DESC
LIMIT 1`

	var cfg domain.Configuration
	err := r.pool.QueryRow(ctx, query).Scan(
		&cfg.ID,
		&cfg.TotalTickets,
		&cfg.TicketReleaseRate,
		&cfg.CustomerRetrievalRate,
		&cfg.MaxTicketCapacity,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Configuration{}, domain.ErrConfigNotFound
		}
		return domain.Configuration{}, fmt.Errorf("current configuration: %w", err)
	}
	return cfg, nil
}
