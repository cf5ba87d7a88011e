package domain

import "time"

type TicketStatus string

const (
	TicketStatusAvailable TicketStatus = "available"
	TicketStatusSold      TicketStatus = "sold"
)

// DefaultTicketPrice applies to drafts submitted without a price.
const DefaultTicketPrice = 50.00

// Ticket is a sellable unit tied to one vendor. It is created by ingestion
// as available and mutated exactly once, by the allocator, to sold.
// Invariant: Status == sold iff CustomerID and SoldAt are both set.
type Ticket struct {
	ID           string
	TicketNumber string
	VendorID     string
	CustomerID   *string
	Price        float64
	Status       TicketStatus
	CreatedAt    time.Time
	SoldAt       *time.Time
}

// TicketDraft is one row of an ingestion batch. A batch has no identity of
// its own; it exists only as the unit of the ingestion transaction.
type TicketDraft struct {
	TicketNumber string
	Price        float64
}

// TicketListing is a read-only enriched view joining vendor and customer
// display names onto a ticket row.
type TicketListing struct {
	ID           string
	TicketNumber string
	Status       TicketStatus
	Price        float64
	VendorName   string
	CustomerName *string
	CreatedAt    time.Time
	SoldAt       *time.Time
}

// StatusCounts is a live snapshot of the pool, never cached.
type StatusCounts struct {
	Available int
	Sold      int
	Total     int
}
