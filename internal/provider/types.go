// Package provider adapts an externally-owned calendar service to the
// sync engine. The external side is authoritative for events it
// created; the adapter only reads snapshots and creates new events.
package provider

import (
	"context"
	"time"

	"github.com/fridgeboard/calendar-server/internal/store"
)

// Window bounds a snapshot listing in absolute time.
type Window struct {
	From time.Time
	To   time.Time
}

// ExternalEvent is one entry from the provider's listing for a
// calendar and window. CalendarName is already mapped back to the
// local enumeration.
type ExternalEvent struct {
	ExternalID   string
	Title        string
	Description  string
	Location     string
	Start        time.Time
	End          time.Time
	AllDay       bool
	CalendarName store.CalendarName
}

// EventFields carries the content of a locally-created event to the
// provider.
type EventFields struct {
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	AllDay      bool
}

// Client is the external calendar adapter.
//
//go:generate mockgen -destination=mocks/mock_client.go -package=mocks -source=types.go Client
type Client interface {
	// ListEvents fetches a best-effort snapshot of the given calendars
	// within the window. A failure on one calendar never fails the call:
	// that calendar contributes nothing and a warning string is returned
	// alongside whatever was fetched.
	ListEvents(ctx context.Context, calendars []store.CalendarName, window Window) ([]ExternalEvent, []string)

	// CreateEvent creates a new event on the provider calendar mapped
	// from the given local calendar name and returns the provider-assigned
	// external id.
	CreateEvent(ctx context.Context, fields EventFields, calendar store.CalendarName) (string, error)
}
