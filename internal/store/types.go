// Package store contains the canonical event store and its Postgres implementation.
package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SyncStatus describes whether a local event is known to exist on the
// external provider.
type SyncStatus string

const (
	// SyncStatusSynced means the event has been confirmed on the external provider.
	SyncStatusSynced SyncStatus = "synced"

	// SyncStatusPendingPush means the event was created locally and has not
	// yet been pushed to the external provider. Local edits take precedence
	// over external content while an event is in this state.
	SyncStatusPendingPush SyncStatus = "pending_push"
)

// CalendarName identifies one of the fixed set of local calendars.
type CalendarName string

const (
	// CalendarFamily is the shared household calendar.
	CalendarFamily CalendarName = "Family"

	// CalendarWork holds work events.
	CalendarWork CalendarName = "Work"

	// CalendarPersonal is the default calendar for new events.
	CalendarPersonal CalendarName = "Personal"

	// CalendarSchool holds school events. On the provider side it shares a
	// calendar with Family.
	CalendarSchool CalendarName = "School"
)

// AllCalendars returns the full set of configured local calendars.
func AllCalendars() []CalendarName {
	return []CalendarName{CalendarFamily, CalendarWork, CalendarPersonal, CalendarSchool}
}

// ParseCalendarName validates a calendar name string.
func ParseCalendarName(s string) (CalendarName, error) {
	switch CalendarName(s) {
	case CalendarFamily, CalendarWork, CalendarPersonal, CalendarSchool:
		return CalendarName(s), nil
	default:
		return "", fmt.Errorf("unrecognized calendar name: %q", s)
	}
}

// Event is the canonical calendar record owned by the local store.
type Event struct {
	ID           uuid.UUID    `json:"id"`
	ExternalID   *string      `json:"external_id,omitempty"`
	Title        string       `json:"title"`
	Description  *string      `json:"description,omitempty"`
	StartTime    time.Time    `json:"start_time"`
	EndTime      time.Time    `json:"end_time"`
	AllDay       bool         `json:"all_day"`
	Location     *string      `json:"location,omitempty"`
	CalendarName CalendarName `json:"calendar_name"`
	BusinessID   *uuid.UUID   `json:"business_id,omitempty"`
	SyncStatus   SyncStatus   `json:"sync_status"`
	LastSyncedAt *time.Time   `json:"last_synced_at,omitempty"`
	CreatedBy    string       `json:"created_by"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewEvent holds the fields for inserting an event row.
type NewEvent struct {
	ExternalID   *string
	Title        string
	Description  *string
	StartTime    time.Time
	EndTime      time.Time
	AllDay       bool
	Location     *string
	CalendarName CalendarName
	BusinessID   *uuid.UUID
	SyncStatus   SyncStatus
	LastSyncedAt *time.Time
	CreatedBy    string
}

// ContentUpdate holds the content fields overwritten when external data
// wins a reconciliation. The row's sync status is set to synced as part
// of the update.
type ContentUpdate struct {
	Title       string
	Description *string
	StartTime   time.Time
	EndTime     time.Time
	Location    *string
}

// ListFilter narrows an event listing.
type ListFilter struct {
	Calendar *CalendarName
	From     time.Time
	To       time.Time
}

// SyncRunStatus describes the state of a reconciliation run record.
type SyncRunStatus string

const (
	// SyncRunRunning means the run is in progress.
	SyncRunRunning SyncRunStatus = "running"

	// SyncRunCompleted means the run finished, possibly with per-item errors.
	SyncRunCompleted SyncRunStatus = "completed"

	// SyncRunFailed means the run aborted before producing results.
	SyncRunFailed SyncRunStatus = "failed"
)

// SyncRun is one recorded reconciliation run.
type SyncRun struct {
	ID         uuid.UUID     `json:"id"`
	Status     SyncRunStatus `json:"status"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt *time.Time    `json:"finished_at,omitempty"`
	Pulled     int           `json:"pulled"`
	Updated    int           `json:"updated"`
	Pushed     int           `json:"pushed"`
	Deleted    int           `json:"deleted"`
	Conflicts  int           `json:"conflicts"`
	Errors     []string      `json:"errors"`
}

// RunCounts aggregates the per-phase counters recorded for a finished run.
type RunCounts struct {
	Pulled    int
	Updated   int
	Pushed    int
	Deleted   int
	Conflicts int
	Errors    []string
}
