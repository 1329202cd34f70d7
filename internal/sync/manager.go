// Package sync reconciles the canonical event store against the
// external calendar provider.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fridgeboard/calendar-server/internal/provider"
	"github.com/fridgeboard/calendar-server/internal/store"
)

const (
	// DefaultDaysBack is how far into the past a run's snapshot window
	// reaches when the trigger does not say otherwise.
	DefaultDaysBack = 30

	// DefaultDaysForward is the forward reach of the default window.
	DefaultDaysForward = 90
)

// ErrSyncInProgress is returned when a run is triggered while another
// run holds the single-writer guard.
var ErrSyncInProgress = errors.New("a sync run is already in progress")

// ErrSnapshotFailed wraps a failure to read the full local event
// snapshot. It is the only condition that aborts a run outright: with
// no local index, no correct diff can be computed.
var ErrSnapshotFailed = errors.New("failed to read local event snapshot")

// Options parameterize one reconciliation run. Zero values mean the
// defaults: all configured calendars, DefaultDaysBack, DefaultDaysForward.
type Options struct {
	Calendars   []store.CalendarName
	DaysBack    int
	DaysForward int
}

// Result aggregates the counters of one completed run. Conflicts is
// always zero: the pending_push precedence rule resolves every
// divergence without recording a conflict.
type Result struct {
	Pulled    int       `json:"pulled"`
	Updated   int       `json:"updated"`
	Pushed    int       `json:"pushed"`
	Deleted   int       `json:"deleted"`
	Conflicts int       `json:"conflicts"`
	Errors    []string  `json:"errors"`
	SyncedAt  time.Time `json:"synced_at"`
}

// Manager runs reconciliation between the store and the provider.
//
//go:generate mockgen -destination=mocks/mock_manager.go -package=mocks -source=manager.go Manager
type Manager interface {
	// Reconcile executes one full run. It returns ErrSyncInProgress when
	// another run holds the guard, ErrSnapshotFailed when the local
	// snapshot cannot be read, and otherwise a Result whose Errors slice
	// carries every degraded per-item failure.
	Reconcile(ctx context.Context, opts Options) (*Result, error)
}

type defaultManager struct {
	store  store.Store
	client provider.Client
}

// NewManager creates the default reconciliation manager.
func NewManager(st store.Store, client provider.Client) Manager {
	return &defaultManager{
		store:  st,
		client: client,
	}
}

// Reconcile runs the phases strictly in sequence: external snapshot,
// local snapshot, pull, push, delete. Later phases diff against the
// snapshots taken up front, so ordering is load-bearing.
func (m *defaultManager) Reconcile(ctx context.Context, opts Options) (*Result, error) {
	release, err := m.store.AcquireSyncLock(ctx)
	if err != nil {
		if errors.Is(err, store.ErrSyncLockHeld) {
			return nil, ErrSyncInProgress
		}
		return nil, fmt.Errorf("failed to acquire sync lock: %w", err)
	}
	defer release()

	calendars := opts.Calendars
	if len(calendars) == 0 {
		calendars = store.AllCalendars()
	}
	daysBack := opts.DaysBack
	if daysBack <= 0 {
		daysBack = DefaultDaysBack
	}
	daysForward := opts.DaysForward
	if daysForward <= 0 {
		daysForward = DefaultDaysForward
	}

	now := time.Now().UTC()
	window := provider.Window{
		From: now.AddDate(0, 0, -daysBack),
		To:   now.AddDate(0, 0, daysForward),
	}

	slog.Info("Starting reconciliation run",
		"calendars", len(calendars),
		"window_from", window.From,
		"window_to", window.To)

	result := &Result{
		Errors:   []string{},
		SyncedAt: now,
	}

	// Phase 1: external snapshot. Per-calendar failures degrade to run
	// errors; whatever was fetched still reconciles.
	external, warnings := m.client.ListEvents(ctx, calendars, window)
	result.Errors = append(result.Errors, warnings...)

	// Phase 2: full local snapshot, unwindowed. The only fatal read.
	locals, err := m.store.ListAllEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshotFailed, err)
	}

	externalByID := make(map[string]provider.ExternalEvent, len(external))
	for _, e := range external {
		externalByID[e.ExternalID] = e
	}
	localByExternalID := make(map[string]*store.Event, len(locals))
	for i := range locals {
		if locals[i].ExternalID != nil {
			localByExternalID[*locals[i].ExternalID] = &locals[i]
		}
	}

	m.pull(ctx, external, localByExternalID, now, result)
	m.push(ctx, now, result)
	m.deleteUnobserved(ctx, locals, externalByID, result)

	slog.Info("Reconciliation run finished",
		"pulled", result.Pulled,
		"updated", result.Updated,
		"pushed", result.Pushed,
		"deleted", result.Deleted,
		"errors", len(result.Errors))

	return result, nil
}

// pull inserts external events with no local counterpart and overwrites
// local content where the external side changed. Rows sitting at
// pending_push are never overwritten: the local edit wins until it has
// been pushed.
func (m *defaultManager) pull(
	ctx context.Context,
	external []provider.ExternalEvent,
	localByExternalID map[string]*store.Event,
	now time.Time,
	result *Result,
) {
	for _, e := range external {
		local, ok := localByExternalID[e.ExternalID]
		if !ok {
			externalID := e.ExternalID
			_, err := m.store.InsertEvent(ctx, store.NewEvent{
				ExternalID:   &externalID,
				Title:        e.Title,
				Description:  optionalString(e.Description),
				StartTime:    e.Start,
				EndTime:      e.End,
				AllDay:       e.AllDay,
				Location:     optionalString(e.Location),
				CalendarName: e.CalendarName,
				SyncStatus:   store.SyncStatusSynced,
				LastSyncedAt: &now,
				CreatedBy:    "sync",
			})
			if err != nil {
				slog.Warn("Failed to insert pulled event", "title", e.Title, "error", err)
				result.Errors = append(result.Errors, fmt.Sprintf("failed to pull %q: %v", e.Title, err))
				continue
			}
			result.Pulled++
			continue
		}

		if local.SyncStatus == store.SyncStatusPendingPush {
			continue
		}
		if !HasChanged(local, e) {
			continue
		}

		err := m.store.UpdateEventContent(ctx, local.ID, store.ContentUpdate{
			Title:       e.Title,
			Description: optionalString(e.Description),
			StartTime:   e.Start,
			EndTime:     e.End,
			Location:    optionalString(e.Location),
		}, now)
		if err != nil {
			slog.Warn("Failed to update event from external data", "title", e.Title, "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("failed to update %q: %v", e.Title, err))
			continue
		}
		result.Updated++
	}
}

// push creates every pending_push row on the provider. A failed create
// leaves the row pending; the next run simply tries again.
func (m *defaultManager) push(ctx context.Context, now time.Time, result *Result) {
	pending, err := m.store.ListPendingPushEvents(ctx)
	if err != nil {
		slog.Warn("Failed to list pending events, skipping push phase", "error", err)
		result.Errors = append(result.Errors, fmt.Sprintf("failed to list pending events: %v", err))
		return
	}

	for _, ev := range pending {
		externalID, err := m.client.CreateEvent(ctx, provider.EventFields{
			Title:       ev.Title,
			Description: derefOrEmpty(ev.Description),
			Location:    derefOrEmpty(ev.Location),
			Start:       ev.StartTime,
			End:         ev.EndTime,
			AllDay:      ev.AllDay,
		}, ev.CalendarName)
		if err != nil {
			slog.Warn("Failed to push event to provider", "title", ev.Title, "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("failed to push %q: %v", ev.Title, err))
			continue
		}

		if err := m.store.MarkEventSynced(ctx, ev.ID, externalID, now); err != nil {
			slog.Warn("Failed to record pushed event", "title", ev.Title, "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("failed to record push of %q: %v", ev.Title, err))
			continue
		}
		result.Pushed++
	}
}

// deleteUnobserved hard-deletes every snapshot row whose external id
// was not observed in the phase-1 listing. Rows pushed during this very
// run are safe: they had no external id when the local snapshot was
// taken, so they are not in the loop.
func (m *defaultManager) deleteUnobserved(
	ctx context.Context,
	locals []store.Event,
	externalByID map[string]provider.ExternalEvent,
	result *Result,
) {
	for i := range locals {
		local := &locals[i]
		if local.ExternalID == nil {
			continue
		}
		if _, ok := externalByID[*local.ExternalID]; ok {
			continue
		}

		if err := m.store.DeleteEvent(ctx, local.ID); err != nil {
			slog.Warn("Failed to delete vanished event", "title", local.Title, "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("failed to delete %q: %v", local.Title, err))
			continue
		}
		result.Deleted++
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
