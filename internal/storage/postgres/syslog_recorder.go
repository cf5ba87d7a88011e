package postgres

import (
	"context"
	"fmt"

	"github.com/Thisun-17/event-ticketing-system/internal/syslog"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// SyslogRecorder writes audit entries to the system_logs table. Failures
// are logged and swallowed so recording never escalates to the caller.
type SyslogRecorder struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewSyslogRecorder(pool *pgxpool.Pool, logger *zap.Logger) *SyslogRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyslogRecorder{pool: pool, logger: logger}
}

func (r *SyslogRecorder) Record(ctx context.Context, entry syslog.Entry) {
	const stmt = `
INSERT INTO system_logs (action, description, actor_type, actor_id, logged_at)
VALUES ($1, $2, $3, $4, $5)`

	// Detached from the caller's cancellation so a request that finishes
	// right after commit still gets its audit row.
	ctx = context.WithoutCancel(ctx)

	_, err := r.pool.Exec(ctx, stmt,
		entry.Action,
		entry.Description,
		entry.ActorType,
		entry.ActorID,
		entry.Timestamp,
	)
	if err != nil {
		r.logger.Warn("system log write failed",
			zap.String("action", entry.Action),
			zap.Error(err),
		)
	}
}

const defaultLogPageSize = 50

// List reads back persisted entries, newest first, optionally filtered by
// actor type. Pages are 1-based; limit falls back to the default page size.
func (r *SyslogRecorder) List(ctx context.Context, page, limit int, actorType syslog.ActorType) (syslog.Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLogPageSize
	}
	offset := (page - 1) * limit

	query := `
SELECT id, action, description, actor_type, actor_id, logged_at
FROM system_logs`
	countQuery := `SELECT COUNT(*) FROM system_logs`
	var args []any
	if actorType != "" {
		query += ` WHERE actor_type = $1`
		countQuery += ` WHERE actor_type = $1`
		args = append(args, actorType)
	}
	query += fmt.Sprintf(` ORDER BY logged_at DESC, id DESC LIMIT %d OFFSET %d`, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return syslog.Page{}, fmt.Errorf("list system logs: %w", err)
	}
	defer rows.Close()

	var entries []syslog.LoggedEntry
	for rows.Next() {
		var e syslog.LoggedEntry
		if err := rows.Scan(&e.ID, &e.Action, &e.Description, &e.ActorType, &e.ActorID, &e.LoggedAt); err != nil {
			return syslog.Page{}, fmt.Errorf("scan system log: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return syslog.Page{}, fmt.Errorf("iterate system logs: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return syslog.Page{}, fmt.Errorf("count system logs: %w", err)
	}

	return syslog.Page{
		Entries:    entries,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}
