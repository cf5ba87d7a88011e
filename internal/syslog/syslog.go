// Package syslog records audit events for successful purchases and
// ingestion batches. Recording is fire-and-forget: a sink failure must
// never roll back or block the transaction that produced the event.
package syslog

import (
	"context"
	"time"
)

type ActorType string

const (
	ActorVendor   ActorType = "vendor"
	ActorCustomer ActorType = "customer"
	ActorSystem   ActorType = "system"
)

type Entry struct {
	Action      string
	Description string
	ActorType   ActorType
	ActorID     *string
	Timestamp   time.Time
}

// Recorder is injected into the services that emit audit events; there is
// no package-level singleton.
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

// LoggedEntry is a persisted audit entry as read back from the sink.
type LoggedEntry struct {
	ID          int64
	Action      string
	Description string
	ActorType   ActorType
	ActorID     *string
	LoggedAt    time.Time
}

// Page is one page of persisted entries, newest first, with totals for
// pagination.
type Page struct {
	Entries    []LoggedEntry
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, Entry) {}

// Nop returns a recorder that discards every entry.
func Nop() Recorder {
	return nopRecorder{}
}
