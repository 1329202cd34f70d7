// Package service implements the application operations behind the API:
// event CRUD with the direct-create push, sync triggering, and run
// history.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fridgeboard/calendar-server/internal/provider"
	"github.com/fridgeboard/calendar-server/internal/store"
	"github.com/fridgeboard/calendar-server/internal/sync"
)

// defaultCreatedBy marks rows created through the API.
const defaultCreatedBy = "api"

// ValidationError rejects a request before any store or provider call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// CreateEventRequest carries a direct event creation.
type CreateEventRequest struct {
	Title        string
	Description  *string
	StartTime    time.Time
	EndTime      time.Time
	AllDay       bool
	Location     *string
	CalendarName string
	BusinessID   *uuid.UUID
}

// EventService exposes the operations the API serves.
//
//go:generate mockgen -destination=mocks/mock_service.go -package=mocks -source=service.go EventService
type EventService interface {
	// CreateEvent validates and inserts a new event, then attempts one
	// synchronous push to the provider. A push failure leaves the event
	// pending_push; the create itself still succeeds.
	CreateEvent(ctx context.Context, req CreateEventRequest) (*store.Event, error)

	// GetEvent returns one event by id.
	GetEvent(ctx context.Context, id uuid.UUID) (*store.Event, error)

	// ListEvents returns events matching the filter.
	ListEvents(ctx context.Context, filter store.ListFilter) ([]store.Event, error)

	// DeleteEvent removes one event by id.
	DeleteEvent(ctx context.Context, id uuid.UUID) error

	// TriggerSync runs one reconciliation and records it in the run
	// history.
	TriggerSync(ctx context.Context, opts sync.Options) (*sync.Result, error)

	// ListSyncRuns returns recent reconciliation runs, newest first.
	ListSyncRuns(ctx context.Context, limit int) ([]store.SyncRun, error)

	// CheckReadiness reports whether the service can reach its store.
	CheckReadiness(ctx context.Context) error
}

type defaultEventService struct {
	store   store.Store
	client  provider.Client
	manager sync.Manager
}

// New creates the default event service.
func New(st store.Store, client provider.Client, manager sync.Manager) EventService {
	return &defaultEventService{
		store:   st,
		client:  client,
		manager: manager,
	}
}

func (s *defaultEventService) CreateEvent(ctx context.Context, req CreateEventRequest) (*store.Event, error) {
	calendar, err := validateCreateRequest(req)
	if err != nil {
		return nil, err
	}

	created, err := s.store.InsertEvent(ctx, store.NewEvent{
		Title:        req.Title,
		Description:  req.Description,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		AllDay:       req.AllDay,
		Location:     req.Location,
		CalendarName: calendar,
		BusinessID:   req.BusinessID,
		SyncStatus:   store.SyncStatusPendingPush,
		CreatedBy:    defaultCreatedBy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert event: %w", err)
	}

	// One synchronous push attempt. Failure degrades to pending_push and
	// the next reconciliation run retries; it never fails the create.
	externalID, err := s.client.CreateEvent(ctx, provider.EventFields{
		Title:       created.Title,
		Description: derefOrEmpty(created.Description),
		Location:    derefOrEmpty(created.Location),
		Start:       created.StartTime,
		End:         created.EndTime,
		AllDay:      created.AllDay,
	}, created.CalendarName)
	if err != nil {
		slog.Warn("Failed to push created event, leaving it pending",
			"event_id", created.ID,
			"error", err)
		return created, nil
	}

	now := time.Now().UTC()
	if err := s.store.MarkEventSynced(ctx, created.ID, externalID, now); err != nil {
		slog.Warn("Failed to record push of created event",
			"event_id", created.ID,
			"error", err)
		return created, nil
	}

	created.ExternalID = &externalID
	created.SyncStatus = store.SyncStatusSynced
	created.LastSyncedAt = &now
	return created, nil
}

func validateCreateRequest(req CreateEventRequest) (store.CalendarName, error) {
	if req.Title == "" {
		return "", newValidationError("title is required")
	}
	if req.StartTime.IsZero() {
		return "", newValidationError("start_time is required")
	}
	if req.EndTime.IsZero() {
		return "", newValidationError("end_time is required")
	}
	if req.CalendarName == "" {
		return store.CalendarPersonal, nil
	}
	calendar, err := store.ParseCalendarName(req.CalendarName)
	if err != nil {
		return "", newValidationError("invalid calendar_name %q", req.CalendarName)
	}
	return calendar, nil
}

func (s *defaultEventService) GetEvent(ctx context.Context, id uuid.UUID) (*store.Event, error) {
	return s.store.GetEvent(ctx, id)
}

func (s *defaultEventService) ListEvents(ctx context.Context, filter store.ListFilter) ([]store.Event, error) {
	return s.store.ListEvents(ctx, filter)
}

func (s *defaultEventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteEvent(ctx, id)
}

// TriggerSync records the run in history around the reconciliation
// itself. History is best-effort: a failure to write a run row never
// blocks the run.
func (s *defaultEventService) TriggerSync(ctx context.Context, opts sync.Options) (*sync.Result, error) {
	run, err := s.store.BeginSyncRun(ctx)
	if err != nil {
		slog.Warn("Failed to record sync run start", "error", err)
		run = nil
	}

	result, err := s.manager.Reconcile(ctx, opts)
	if err != nil {
		s.finishRun(ctx, run, store.SyncRunFailed, store.RunCounts{
			Errors: []string{err.Error()},
		})
		return nil, err
	}

	s.finishRun(ctx, run, store.SyncRunCompleted, store.RunCounts{
		Pulled:    result.Pulled,
		Updated:   result.Updated,
		Pushed:    result.Pushed,
		Deleted:   result.Deleted,
		Conflicts: result.Conflicts,
		Errors:    result.Errors,
	})
	return result, nil
}

func (s *defaultEventService) finishRun(ctx context.Context, run *store.SyncRun, status store.SyncRunStatus, counts store.RunCounts) {
	if run == nil {
		return
	}
	if err := s.store.FinishSyncRun(ctx, run.ID, status, counts); err != nil {
		slog.Warn("Failed to record sync run outcome", "run_id", run.ID, "error", err)
	}
}

func (s *defaultEventService) ListSyncRuns(ctx context.Context, limit int) ([]store.SyncRun, error) {
	return s.store.ListSyncRuns(ctx, limit)
}

func (s *defaultEventService) CheckReadiness(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("store is not reachable: %w", err)
	}
	return nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
