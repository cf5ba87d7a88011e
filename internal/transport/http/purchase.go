package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Thisun-17/event-ticketing-system/internal/domain"
)

// TicketPurchaser is the minimal interface needed to allocate a ticket.
type TicketPurchaser interface {
	Purchase(ctx context.Context, customerID string) (domain.Ticket, error)
}

// HandlePurchase returns an HTTP handler for buying one ticket from the
// pool. Sold-out is reported as 409, not an error; transient allocation
// failures as 503 so clients know a retry is safe.
func HandlePurchase(svc TicketPurchaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		principal, ok := requirePrincipal(w, r, RoleCustomer)
		if !ok {
			return
		}

		ticket, err := svc.Purchase(r.Context(), principal.ID)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrSoldOut):
				writeError(w, http.StatusConflict, codeSoldOut, "no tickets available")
			case errors.Is(err, domain.ErrCustomerNotFound):
				writeError(w, http.StatusNotFound, codeCustomerNotFound, err.Error())
			case errors.Is(err, domain.ErrAllocationFailed):
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusServiceUnavailable, codeAllocationFailed, "allocation failed, retry")
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		var soldAt time.Time
		if ticket.SoldAt != nil {
			soldAt = *ticket.SoldAt
		}
		writeJSON(w, http.StatusOK, purchaseResponse{
			TicketID:     ticket.ID,
			TicketNumber: ticket.TicketNumber,
			Price:        ticket.Price,
			SoldAt:       soldAt,
		})
	}
}

type purchaseResponse struct {
	TicketID     string    `json:"ticket_id"`
	TicketNumber string    `json:"ticket_number"`
	Price        float64   `json:"price"`
	SoldAt       time.Time `json:"sold_at"`
}
