package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fridgeboard/calendar-server/internal/db/sqlc"
)

// syncLockID keys the Postgres advisory lock serializing reconciliation
// runs across all server instances sharing the database.
const syncLockID int64 = 824011

// postgresStore is the Postgres-backed Store implementation.
type postgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Store backed by the given connection pool.
// The caller is responsible for closing the pool when done.
func NewPostgresStore(pool *pgxpool.Pool) (Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgx pool is required")
	}
	return &postgresStore{pool: pool}, nil
}

func (s *postgresStore) GetEvent(ctx context.Context, id uuid.UUID) (*Event, error) {
	row, err := sqlc.New(s.pool).GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return eventFromDB(row)
}

func (s *postgresStore) ListAllEvents(ctx context.Context) ([]Event, error) {
	rows, err := sqlc.New(s.pool).ListAllEvents(ctx)
	if err != nil {
		return nil, err
	}
	return eventsFromDB(rows)
}

func (s *postgresStore) ListEvents(ctx context.Context, filter ListFilter) ([]Event, error) {
	params := sqlc.ListEventsInWindowParams{
		FromTime: filter.From,
		ToTime:   filter.To,
	}
	if filter.Calendar != nil {
		dbName, err := calendarToDB(*filter.Calendar)
		if err != nil {
			return nil, err
		}
		params.Calendar = sqlc.NullCalendarName{CalendarName: dbName, Valid: true}
	}

	rows, err := sqlc.New(s.pool).ListEventsInWindow(ctx, params)
	if err != nil {
		return nil, err
	}
	return eventsFromDB(rows)
}

func (s *postgresStore) ListPendingPushEvents(ctx context.Context) ([]Event, error) {
	rows, err := sqlc.New(s.pool).ListPendingPushEvents(ctx)
	if err != nil {
		return nil, err
	}
	return eventsFromDB(rows)
}

func (s *postgresStore) InsertEvent(ctx context.Context, ev NewEvent) (*Event, error) {
	dbCalendar, err := calendarToDB(ev.CalendarName)
	if err != nil {
		return nil, err
	}
	dbStatus, err := syncStatusToDB(ev.SyncStatus)
	if err != nil {
		return nil, err
	}

	row, err := sqlc.New(s.pool).InsertEvent(ctx, sqlc.InsertEventParams{
		ExternalID:   ev.ExternalID,
		Title:        ev.Title,
		Description:  ev.Description,
		StartTime:    ev.StartTime,
		EndTime:      ev.EndTime,
		AllDay:       ev.AllDay,
		Location:     ev.Location,
		CalendarName: dbCalendar,
		BusinessID:   ev.BusinessID,
		SyncStatus:   dbStatus,
		LastSyncedAt: ev.LastSyncedAt,
		CreatedBy:    ev.CreatedBy,
	})
	if err != nil {
		return nil, err
	}
	return eventFromDB(row)
}

func (s *postgresStore) UpdateEventContent(ctx context.Context, id uuid.UUID, upd ContentUpdate, syncedAt time.Time) error {
	return sqlc.New(s.pool).UpdateEventContent(ctx, sqlc.UpdateEventContentParams{
		ID:           id,
		Title:        upd.Title,
		Description:  upd.Description,
		StartTime:    upd.StartTime,
		EndTime:      upd.EndTime,
		Location:     upd.Location,
		LastSyncedAt: &syncedAt,
	})
}

func (s *postgresStore) MarkEventSynced(ctx context.Context, id uuid.UUID, externalID string, syncedAt time.Time) error {
	return sqlc.New(s.pool).MarkEventSynced(ctx, sqlc.MarkEventSyncedParams{
		ID:           id,
		ExternalID:   &externalID,
		LastSyncedAt: &syncedAt,
	})
}

func (s *postgresStore) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return sqlc.New(s.pool).DeleteEvent(ctx, id)
}

func (s *postgresStore) BeginSyncRun(ctx context.Context) (*SyncRun, error) {
	row, err := sqlc.New(s.pool).InsertSyncRun(ctx)
	if err != nil {
		return nil, err
	}
	return syncRunFromDB(row), nil
}

func (s *postgresStore) FinishSyncRun(ctx context.Context, id uuid.UUID, status SyncRunStatus, counts RunCounts) error {
	dbStatus, err := syncRunStatusToDB(status)
	if err != nil {
		return err
	}

	now := time.Now()
	errs := counts.Errors
	if errs == nil {
		errs = []string{}
	}

	return sqlc.New(s.pool).FinishSyncRun(ctx, sqlc.FinishSyncRunParams{
		ID:         id,
		Status:     dbStatus,
		FinishedAt: &now,
		Pulled:     int64(counts.Pulled),
		Updated:    int64(counts.Updated),
		Pushed:     int64(counts.Pushed),
		Deleted:    int64(counts.Deleted),
		Conflicts:  int64(counts.Conflicts),
		Errors:     errs,
	})
}

func (s *postgresStore) ListSyncRuns(ctx context.Context, limit int) ([]SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := sqlc.New(s.pool).ListSyncRuns(ctx, int32(limit))
	if err != nil {
		return nil, err
	}

	runs := make([]SyncRun, 0, len(rows))
	for _, row := range rows {
		runs = append(runs, *syncRunFromDB(row))
	}
	return runs, nil
}

// AcquireSyncLock takes the advisory lock on a dedicated pooled connection.
// The lock is session-scoped, so the connection is pinned until release.
func (s *postgresStore) AcquireSyncLock(ctx context.Context) (func(), error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection for sync lock: %w", err)
	}

	var locked bool
	if err := conn.QueryRow(ctx, "SELECT pg_try_advisory_lock($1)", syncLockID).Scan(&locked); err != nil {
		conn.Release()
		return nil, fmt.Errorf("failed to take sync lock: %w", err)
	}
	if !locked {
		conn.Release()
		return nil, ErrSyncLockHeld
	}

	release := func() {
		// Unlock on the same session the lock was taken on, even if the
		// run's context has already been cancelled.
		if _, err := conn.Exec(context.Background(), "SELECT pg_advisory_unlock($1)", syncLockID); err != nil {
			slog.Error("Failed to release sync advisory lock", "error", err)
		}
		conn.Release()
	}
	return release, nil
}

func (s *postgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func eventFromDB(row sqlc.Event) (*Event, error) {
	calendar, err := calendarFromDB(row.CalendarName)
	if err != nil {
		return nil, err
	}
	status, err := syncStatusFromDB(row.SyncStatus)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:           row.ID,
		ExternalID:   row.ExternalID,
		Title:        row.Title,
		Description:  row.Description,
		StartTime:    row.StartTime,
		EndTime:      row.EndTime,
		AllDay:       row.AllDay,
		Location:     row.Location,
		CalendarName: calendar,
		BusinessID:   row.BusinessID,
		SyncStatus:   status,
		LastSyncedAt: row.LastSyncedAt,
		CreatedBy:    row.CreatedBy,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

func eventsFromDB(rows []sqlc.Event) ([]Event, error) {
	events := make([]Event, 0, len(rows))
	for _, row := range rows {
		ev, err := eventFromDB(row)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	return events, nil
}

func syncRunFromDB(row sqlc.SyncRun) *SyncRun {
	run := &SyncRun{
		ID:         row.ID,
		StartedAt:  row.StartedAt,
		FinishedAt: row.FinishedAt,
		Pulled:     int(row.Pulled),
		Updated:    int(row.Updated),
		Pushed:     int(row.Pushed),
		Deleted:    int(row.Deleted),
		Conflicts:  int(row.Conflicts),
		Errors:     row.Errors,
	}

	switch row.Status {
	case sqlc.SyncRunStatusRUNNING:
		run.Status = SyncRunRunning
	case sqlc.SyncRunStatusCOMPLETED:
		run.Status = SyncRunCompleted
	case sqlc.SyncRunStatusFAILED:
		run.Status = SyncRunFailed
	default:
		run.Status = SyncRunFailed
	}
	return run
}

func syncRunStatusToDB(status SyncRunStatus) (sqlc.SyncRunStatus, error) {
	switch status {
	case SyncRunRunning:
		return sqlc.SyncRunStatusRUNNING, nil
	case SyncRunCompleted:
		return sqlc.SyncRunStatusCOMPLETED, nil
	case SyncRunFailed:
		return sqlc.SyncRunStatusFAILED, nil
	default:
		return "", fmt.Errorf("unrecognized sync run status: %s", status)
	}
}

func calendarToDB(name CalendarName) (sqlc.CalendarName, error) {
	switch name {
	case CalendarFamily:
		return sqlc.CalendarNameFAMILY, nil
	case CalendarWork:
		return sqlc.CalendarNameWORK, nil
	case CalendarPersonal:
		return sqlc.CalendarNamePERSONAL, nil
	case CalendarSchool:
		return sqlc.CalendarNameSCHOOL, nil
	default:
		return "", fmt.Errorf("unrecognized calendar name: %s", name)
	}
}

func calendarFromDB(name sqlc.CalendarName) (CalendarName, error) {
	switch name {
	case sqlc.CalendarNameFAMILY:
		return CalendarFamily, nil
	case sqlc.CalendarNameWORK:
		return CalendarWork, nil
	case sqlc.CalendarNamePERSONAL:
		return CalendarPersonal, nil
	case sqlc.CalendarNameSCHOOL:
		return CalendarSchool, nil
	default:
		return "", fmt.Errorf("unrecognized calendar name in database: %s", name)
	}
}

func syncStatusToDB(status SyncStatus) (sqlc.SyncStatus, error) {
	switch status {
	case SyncStatusSynced:
		return sqlc.SyncStatusSYNCED, nil
	case SyncStatusPendingPush:
		return sqlc.SyncStatusPENDINGPUSH, nil
	default:
		return "", fmt.Errorf("unrecognized sync status: %s", status)
	}
}

func syncStatusFromDB(status sqlc.SyncStatus) (SyncStatus, error) {
	switch status {
	case sqlc.SyncStatusSYNCED:
		return SyncStatusSynced, nil
	case sqlc.SyncStatusPENDINGPUSH:
		return SyncStatusPendingPush, nil
	default:
		return "", fmt.Errorf("unrecognized sync status in database: %s", status)
	}
}
