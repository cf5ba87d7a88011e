package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Thisun-17/event-ticketing-system/internal/domain"
)

// TicketReporter is the minimal interface for the read-only views.
type TicketReporter interface {
	Counts(ctx context.Context) (domain.StatusCounts, error)
	ListTickets(ctx context.Context) ([]domain.TicketListing, error)
	PurchaseHistory(ctx context.Context, customerID string) ([]domain.TicketListing, error)
}

// HandleListTickets returns the full enriched ticket listing.
func HandleListTickets(svc TicketReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		listings, err := svc.ListTickets(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, listingResponse{Tickets: toListingPayloads(listings)})
	}
}

// HandleTicketCounts reports live availability counts.
func HandleTicketCounts(svc TicketReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		counts, err := svc.Counts(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, countsResponse{
			Available: counts.Available,
			Sold:      counts.Sold,
			Total:     counts.Total,
		})
	}
}

// HandlePurchaseHistory lists the authenticated customer's own purchases,
// most recent first.
func HandlePurchaseHistory(svc TicketReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		principal, ok := requirePrincipal(w, r, RoleCustomer)
		if !ok {
			return
		}

		listings, err := svc.PurchaseHistory(r.Context(), principal.ID)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrCustomerNotFound):
				writeError(w, http.StatusNotFound, codeCustomerNotFound, err.Error())
			case errors.Is(err, domain.ErrInvalidID):
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}
		writeJSON(w, http.StatusOK, listingResponse{Tickets: toListingPayloads(listings)})
	}
}

type listingResponse struct {
	Tickets []listingPayload `json:"tickets"`
}

type listingPayload struct {
	ID           string     `json:"id"`
	TicketNumber string     `json:"ticket_number"`
	Status       string     `json:"status"`
	Price        float64    `json:"price"`
	VendorName   string     `json:"vendor_name"`
	CustomerName *string    `json:"customer_name,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	SoldAt       *time.Time `json:"sold_at,omitempty"`
}

type countsResponse struct {
	Available int `json:"available"`
	Sold      int `json:"sold"`
	Total     int `json:"total"`
}

func toListingPayloads(listings []domain.TicketListing) []listingPayload {
	out := make([]listingPayload, len(listings))
	for i, l := range listings {
		out[i] = listingPayload{
			ID:           l.ID,
			TicketNumber: l.TicketNumber,
			Status:       string(l.Status),
			Price:        l.Price,
			VendorName:   l.VendorName,
			CustomerName: l.CustomerName,
			CreatedAt:    l.CreatedAt,
			SoldAt:       l.SoldAt,
		}
	}
	return out
}
