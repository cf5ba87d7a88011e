package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Thisun-17/event-ticketing-system/internal/domain"
)

// BatchIngester is the minimal interface needed to release a ticket batch.
type BatchIngester interface {
	AddTickets(ctx context.Context, vendorID string, drafts []domain.TicketDraft) (int, error)
}

// HandleAddTickets returns an HTTP handler for a vendor's bulk release.
// The batch commits as a unit; a validation failure rejects it before any
// transaction opens.
func HandleAddTickets(svc BatchIngester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		principal, ok := requirePrincipal(w, r, RoleVendor)
		if !ok {
			return
		}

		var req addTicketsRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		drafts := make([]domain.TicketDraft, len(req.Tickets))
		for i, t := range req.Tickets {
			drafts[i] = domain.TicketDraft{
				TicketNumber: t.TicketNumber,
				Price:        t.Price,
			}
		}

		count, err := svc.AddTickets(r.Context(), principal.ID, drafts)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrValidation):
				writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
			case errors.Is(err, domain.ErrVendorNotFound):
				writeError(w, http.StatusNotFound, codeVendorNotFound, err.Error())
			case errors.Is(err, domain.ErrIngestionFailed):
				writeError(w, http.StatusInternalServerError, codeIngestionFailed, "batch rolled back, resubmit")
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, addTicketsResponse{Count: count})
	}
}

type addTicketsRequest struct {
	Tickets []ticketDraftPayload `json:"tickets"`
}

type ticketDraftPayload struct {
	TicketNumber string  `json:"ticket_number"`
	Price        float64 `json:"price"`
}

type addTicketsResponse struct {
	Count int `json:"count"`
}
