package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Thisun-17/event-ticketing-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultLockTimeout = 5 * time.Second

// TicketRepository owns the tickets table. It is the only writer of ticket
// rows; the allocator and ingestion act through it inside transactions, and
// no ticket state is ever cached in memory across requests.
type TicketRepository struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

func NewTicketRepository(pool *pgxpool.Pool, opts ...TicketRepositoryOption) *TicketRepository {
	r := &TicketRepository{
		pool:        pool,
		lockTimeout: defaultLockTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type TicketRepositoryOption func(*TicketRepository)

// WithLockTimeout bounds how long a purchase transaction may wait on a row
// lock held by another transaction.
func WithLockTimeout(d time.Duration) TicketRepositoryOption {
	return func(r *TicketRepository) {
		if d > 0 {
			r.lockTimeout = d
		}
	}
}

func (r *TicketRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// WithPurchaseTx runs fn in a transaction with the configured lock timeout
// applied, so a purchase blocked on another allocator's row lock fails with
// a lock-timeout error instead of waiting unbounded. Transient store
// failures (lock timeout, deadlock, serialization failure, broken
// connection) come back as ErrAllocationFailed after the rollback; nothing
// is committed in that case, so the caller may retry.
func (r *TicketRepository) WithPurchaseTx(ctx context.Context, fn func(ctx context.Context) error) error {
	err := withTx(ctx, r.pool, func(txCtx context.Context) error {
		timeoutMS := r.lockTimeout.Milliseconds()
		if _, err := r.exec(txCtx, fmt.Sprintf(`SET LOCAL lock_timeout = %d`, timeoutMS)); err != nil {
			return fmt.Errorf("set lock timeout: %w", err)
		}
		return fn(txCtx)
	})
	if err != nil && isTransient(err) {
		return fmt.Errorf("%w: %v", domain.ErrAllocationFailed, err)
	}
	return err
}

// InsertBatch inserts all drafts for one vendor release. It must run inside
// a transaction so the batch commits as a unit or not at all.
func (r *TicketRepository) InsertBatch(ctx context.Context, vendorID string, drafts []domain.TicketDraft) (int, error) {
	const stmt = `
INSERT INTO tickets (ticket_number, vendor_id, price)
VALUES ($1, $2, $3)`

	for _, draft := range drafts {
		if _, err := r.exec(ctx, stmt, draft.TicketNumber, vendorID, draft.Price); err != nil {
			if isForeignKeyViolation(err) || isInvalidUUID(err) {
				return 0, domain.ErrVendorNotFound
			}
			return 0, fmt.Errorf("insert ticket %s: %w", draft.TicketNumber, err)
		}
	}
	return len(drafts), nil
}

// SelectAvailableForUpdate picks one available row and takes an exclusive
// lock on it for the duration of the calling transaction. SKIP LOCKED makes
// concurrent callers move on to the next row instead of queueing behind a
// lock, so no two transactions ever observe the same row as selectable.
func (r *TicketRepository) SelectAvailableForUpdate(ctx context.Context) (domain.Ticket, error) {
	const query = `
SELECT id, ticket_number, vendor_id, price, status, created_at
FROM tickets
WHERE status = 'available'
ORDER BY created_at, id
LIMIT 1
FOR UPDATE SKIP LOCKED`

	var t domain.Ticket
	err := r.queryRow(ctx, query).
		Scan(&t.ID, &t.TicketNumber, &t.VendorID, &t.Price, &t.Status, &t.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Ticket{}, domain.ErrSoldOut
		}
		return domain.Ticket{}, fmt.Errorf("select available ticket: %w", err)
	}
	return t, nil
}

// MarkSold flips the locked row to sold. It must run in the same
// transaction as the preceding SelectAvailableForUpdate.
func (r *TicketRepository) MarkSold(ctx context.Context, ticketID, customerID string, soldAt time.Time) error {
	const stmt = `
UPDATE tickets
SET status = 'sold', customer_id = $2, sold_at = $3
WHERE id = $1 AND status = 'available'`

	tag, err := r.exec(ctx, stmt, ticketID, customerID, soldAt)
	if err != nil {
		if isForeignKeyViolation(err) || isInvalidUUID(err) {
			return domain.ErrCustomerNotFound
		}
		return fmt.Errorf("mark sold: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mark sold: ticket %s no longer available", ticketID)
	}
	return nil
}

func (r *TicketRepository) CountByStatus(ctx context.Context, status domain.TicketStatus) (int, error) {
	const query = `SELECT COUNT(*) FROM tickets WHERE status = $1`

	var count int
	if err := r.queryRow(ctx, query, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("count by status: %w", err)
	}
	return count, nil
}

// ListTickets returns the full enriched listing, newest first. Read-only:
// it takes no row locks and never blocks the allocator.
func (r *TicketRepository) ListTickets(ctx context.Context) ([]domain.TicketListing, error) {
	const query = `
SELECT t.id, t.ticket_number, t.status, t.price, t.created_at, t.sold_at,
       v.name AS vendor_name, c.name AS customer_name
FROM tickets t
LEFT JOIN vendors v ON t.vendor_id = v.id
LEFT JOIN customers c ON t.customer_id = c.id
ORDER BY t.created_at DESC, t.id DESC`

	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

// PurchaseHistory lists one customer's sold tickets, most recent sale first.
func (r *TicketRepository) PurchaseHistory(ctx context.Context, customerID string) ([]domain.TicketListing, error) {
	const query = `
SELECT t.id, t.ticket_number, t.status, t.price, t.created_at, t.sold_at,
       v.name AS vendor_name, c.name AS customer_name
FROM tickets t
LEFT JOIN vendors v ON t.vendor_id = v.id
LEFT JOIN customers c ON t.customer_id = c.id
WHERE t.status = 'sold' AND t.customer_id = $1
ORDER BY t.sold_at DESC`

	rows, err := r.query(ctx, query, customerID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("purchase history: %w", err)
	}
	defer rows.Close()

	listings, err := scanListings(rows)
	if err != nil && isInvalidUUID(err) {
		return nil, domain.ErrInvalidID
	}
	return listings, err
}

func scanListings(rows pgx.Rows) ([]domain.TicketListing, error) {
	var listings []domain.TicketListing
	for rows.Next() {
		var l domain.TicketListing
		if err := rows.Scan(
			&l.ID, &l.TicketNumber, &l.Status, &l.Price, &l.CreatedAt, &l.SoldAt,
			&l.VendorName, &l.CustomerName,
		); err != nil {
			return nil, fmt.Errorf("scan ticket listing: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ticket listings: %w", err)
	}
	return listings, nil
}

func (r *TicketRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *TicketRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *TicketRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
