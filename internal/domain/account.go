package domain

import "time"

// Vendor holds the display and release-cadence fields the core joins
// against. Credentials live with the identity service, not here.
type Vendor struct {
	ID                string
	Name              string
	Email             string
	TicketsPerRelease int
	ReleaseInterval   time.Duration
	IsActive          bool
	CreatedAt         time.Time
}

type PriorityLevel string

const (
	PriorityStandard PriorityLevel = "standard"
	PriorityPremium  PriorityLevel = "premium"
)

type Customer struct {
	ID                string
	Name              string
	Email             string
	RetrievalInterval time.Duration
	PriorityLevel     PriorityLevel
	IsActive          bool
	CreatedAt         time.Time
}
