package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Thisun-17/event-ticketing-system/internal/app"
	"github.com/Thisun-17/event-ticketing-system/internal/domain"
)

// ConfigManager is the minimal interface for the config store surface.
type ConfigManager interface {
	Current(ctx context.Context) (domain.Configuration, error)
	SaveConfig(ctx context.Context, in app.SaveConfigInput) (domain.Configuration, error)
}

// HandleConfig serves the release/retrieval parameters: GET returns the
// current configuration, POST saves a new one.
func HandleConfig(svc ConfigManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			cfg, err := svc.Current(r.Context())
			if err != nil {
				if errors.Is(err, domain.ErrConfigNotFound) {
					writeError(w, http.StatusNotFound, codeConfigNotFound, err.Error())
					return
				}
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			writeJSON(w, http.StatusOK, toConfigPayload(cfg))

		case http.MethodPost:
			if _, ok := requirePrincipal(w, r, ""); !ok {
				return
			}

			var req configPayload
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			cfg, err := svc.SaveConfig(r.Context(), app.SaveConfigInput{
				TotalTickets:          req.TotalTickets,
				TicketReleaseRate:     req.TicketReleaseRate,
				CustomerRetrievalRate: req.CustomerRetrievalRate,
				MaxTicketCapacity:     req.MaxTicketCapacity,
			})
			if err != nil {
				if errors.Is(err, domain.ErrInvalidConfig) {
					writeError(w, http.StatusBadRequest, codeInvalidConfig, err.Error())
					return
				}
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
				return
			}
			writeJSON(w, http.StatusCreated, toConfigPayload(cfg))

		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

type configPayload struct {
	ID                    string `json:"id,omitempty"`
	TotalTickets          int    `json:"total_tickets"`
	TicketReleaseRate     int    `json:"ticket_release_rate"`
	CustomerRetrievalRate int    `json:"customer_retrieval_rate"`
	MaxTicketCapacity     int    `json:"max_ticket_capacity"`
}

func toConfigPayload(cfg domain.Configuration) configPayload {
	return configPayload{
		ID:                    cfg.ID,
		TotalTickets:          cfg.TotalTickets,
		TicketReleaseRate:     cfg.TicketReleaseRate,
		CustomerRetrievalRate: cfg.CustomerRetrievalRate,
		MaxTicketCapacity:     cfg.MaxTicketCapacity,
	}
}
