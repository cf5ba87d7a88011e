package domain

import "time"

// Configuration carries the release/retrieval rate parameters consumed by
// ingestion and purchase callers. The core stores and returns them without
// interpreting them; cadence is the caller's responsibility.
type Configuration struct {
	ID                    string
	TotalTickets          int
	TicketReleaseRate     int
	CustomerRetrievalRate int
	MaxTicketCapacity     int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Validate rejects non-positive parameters and a capacity below the total.
func (c Configuration) Validate() error {
	if c.TotalTickets <= 0 {
		return ErrInvalidConfig
	}
	if c.TicketReleaseRate <= 0 {
		return ErrInvalidConfig
	}
	if c.CustomerRetrievalRate <= 0 {
		return ErrInvalidConfig
	}
	if c.MaxTicketCapacity <= 0 {
		return ErrInvalidConfig
	}
	if c.MaxTicketCapacity < c.TotalTickets {
		return ErrInvalidConfig
	}
	return nil
}
