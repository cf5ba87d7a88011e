package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/Thisun-17/event-ticketing-system/internal/syslog"
)

// AuditLogReader pages through persisted audit entries.
type AuditLogReader interface {
	List(ctx context.Context, page, limit int, actorType syslog.ActorType) (syslog.Page, error)
}

// HandleSystemLogs returns paginated audit entries, newest first. Query
// params: page, limit, actor_type (vendor, customer or system).
func HandleSystemLogs(svc AuditLogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		if _, ok := requirePrincipal(w, r, ""); !ok {
			return
		}

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		actorType := syslog.ActorType(r.URL.Query().Get("actor_type"))
		switch actorType {
		case "", syslog.ActorVendor, syslog.ActorCustomer, syslog.ActorSystem:
		default:
			writeError(w, http.StatusBadRequest, codeValidationFailed, "unknown actor_type")
			return
		}

		result, err := svc.List(r.Context(), page, limit, actorType)
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		entries := make([]logEntryPayload, 0, len(result.Entries))
		for _, e := range result.Entries {
			entries = append(entries, logEntryPayload{
				ID:          e.ID,
				Action:      e.Action,
				Description: e.Description,
				ActorType:   string(e.ActorType),
				ActorID:     e.ActorID,
				LoggedAt:    e.LoggedAt,
			})
		}
		writeJSON(w, http.StatusOK, systemLogsResponse{
			Logs: entries,
			Pagination: paginationPayload{
				Page:       result.Page,
				Limit:      result.Limit,
				Total:      result.Total,
				TotalPages: result.TotalPages,
			},
		})
	}
}

type logEntryPayload struct {
	ID          int64     `json:"id"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	ActorType   string    `json:"actor_type"`
	ActorID     *string   `json:"actor_id"`
	LoggedAt    time.Time `json:"logged_at"`
}

type paginationPayload struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type systemLogsResponse struct {
	Logs       []logEntryPayload `json:"logs"`
	Pagination paginationPayload `json:"pagination"`
}
