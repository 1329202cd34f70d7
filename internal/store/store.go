package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrEventNotFound is returned when an event can't be found.
var ErrEventNotFound = errors.New("event not found")

// ErrSyncLockHeld is returned when another reconciliation run holds the
// sync advisory lock.
var ErrSyncLockHeld = errors.New("sync lock held by another run")

// Store is the port over canonical Event rows and sync run records.
//
//go:generate mockgen -destination=mocks/mock_store.go -package=mocks -source=store.go Store
type Store interface {
	// GetEvent returns a single event by id, or ErrEventNotFound.
	GetEvent(ctx context.Context, id uuid.UUID) (*Event, error)

	// ListAllEvents returns every event row, unwindowed. Reconciliation
	// runs build their local snapshot from this listing.
	ListAllEvents(ctx context.Context) ([]Event, error)

	// ListEvents returns events matching the filter.
	ListEvents(ctx context.Context, filter ListFilter) ([]Event, error)

	// ListPendingPushEvents returns events awaiting a push to the provider.
	ListPendingPushEvents(ctx context.Context) ([]Event, error)

	// InsertEvent inserts a new event row and returns it with store-assigned fields.
	InsertEvent(ctx context.Context, ev NewEvent) (*Event, error)

	// UpdateEventContent overwrites an event's content fields from external
	// data and marks it synced as of syncedAt.
	UpdateEventContent(ctx context.Context, id uuid.UUID, upd ContentUpdate, syncedAt time.Time) error

	// MarkEventSynced records a successful push: sets the external id and
	// flips the row to synced as of syncedAt.
	MarkEventSynced(ctx context.Context, id uuid.UUID, externalID string, syncedAt time.Time) error

	// DeleteEvent hard-deletes an event row.
	DeleteEvent(ctx context.Context, id uuid.UUID) error

	// BeginSyncRun records the start of a reconciliation run.
	BeginSyncRun(ctx context.Context) (*SyncRun, error)

	// FinishSyncRun records the outcome of a reconciliation run.
	FinishSyncRun(ctx context.Context, id uuid.UUID, status SyncRunStatus, counts RunCounts) error

	// ListSyncRuns returns the most recent runs, newest first.
	ListSyncRuns(ctx context.Context, limit int) ([]SyncRun, error)

	// AcquireSyncLock takes the single-writer guard for a reconciliation
	// run. It returns ErrSyncLockHeld when another run holds the lock,
	// otherwise a release function the caller must invoke when the run ends.
	AcquireSyncLock(ctx context.Context) (func(), error)

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}
