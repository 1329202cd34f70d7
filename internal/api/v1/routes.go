// Package v1 provides the REST API handlers for calendar events and
// sync runs.
package v1

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fridgeboard/calendar-server/internal/service"
	"github.com/fridgeboard/calendar-server/internal/store"
	"github.com/fridgeboard/calendar-server/internal/sync"
	"github.com/fridgeboard/calendar-server/internal/versions"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 100
)

// SyncRequest parameterizes a manually triggered reconciliation run.
// All fields are optional; zero values mean the configured defaults.
type SyncRequest struct {
	Calendars   []string `json:"calendars,omitempty"`
	DaysBack    int      `json:"days_back,omitempty"`
	DaysForward int      `json:"days_forward,omitempty"`
}

// SyncResults carries the per-phase counters of a finished run.
type SyncResults struct {
	Pulled    int      `json:"pulled"`
	Pushed    int      `json:"pushed"`
	Updated   int      `json:"updated"`
	Deleted   int      `json:"deleted"`
	Conflicts int      `json:"conflicts"`
	Errors    []string `json:"errors"`
}

// SyncResponse is the response for a triggered run.
type SyncResponse struct {
	Success  bool        `json:"success"`
	Results  SyncResults `json:"results"`
	SyncedAt time.Time   `json:"synced_at"`
}

// CreateEventRequest is the direct event creation payload.
type CreateEventRequest struct {
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      time.Time  `json:"end_time"`
	AllDay       bool       `json:"all_day,omitempty"`
	Location     *string    `json:"location,omitempty"`
	CalendarName string     `json:"calendar_name,omitempty"`
	BusinessID   *uuid.UUID `json:"business_id,omitempty"`
}

// ListEventsResponse wraps an event listing.
type ListEventsResponse struct {
	Events []store.Event `json:"events"`
	Count  int           `json:"count"`
}

// ListRunsResponse wraps a sync run listing.
type ListRunsResponse struct {
	Runs  []store.SyncRun `json:"runs"`
	Count int             `json:"count"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Routes defines the routes for the calendar API with dependency injection
type Routes struct {
	service service.EventService
}

// NewRoutes creates a new Routes instance with the provided service
func NewRoutes(svc service.EventService) *Routes {
	return &Routes{
		service: svc,
	}
}

// Router creates a new router for the calendar API
func Router(svc service.EventService) http.Handler {
	routes := NewRoutes(svc)

	r := chi.NewRouter()

	r.Post("/sync", routes.triggerSync)
	r.Get("/sync/runs", routes.listSyncRuns)

	r.Post("/events", routes.createEvent)
	r.Get("/events", routes.listEvents)
	r.Get("/events/{id}", routes.getEvent)
	r.Delete("/events/{id}", routes.deleteEvent)

	return r
}

// triggerSync handles POST /api/v1/sync. The body is optional.
func (rr *Routes) triggerSync(w http.ResponseWriter, r *http.Request) {
	var req SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		rr.writeErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	calendars := make([]store.CalendarName, 0, len(req.Calendars))
	for _, name := range req.Calendars {
		calendar, err := store.ParseCalendarName(name)
		if err != nil {
			rr.writeErrorResponse(w, "Unknown calendar: "+name, http.StatusBadRequest)
			return
		}
		calendars = append(calendars, calendar)
	}

	result, err := rr.service.TriggerSync(r.Context(), sync.Options{
		Calendars:   calendars,
		DaysBack:    req.DaysBack,
		DaysForward: req.DaysForward,
	})
	if err != nil {
		if errors.Is(err, sync.ErrSyncInProgress) {
			rr.writeErrorResponse(w, "A sync run is already in progress", http.StatusConflict)
			return
		}
		slog.Error("Sync run failed", "error", err)
		rr.writeErrorResponse(w, "Sync failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	rr.writeJSONResponse(w, http.StatusOK, SyncResponse{
		Success: true,
		Results: SyncResults{
			Pulled:    result.Pulled,
			Pushed:    result.Pushed,
			Updated:   result.Updated,
			Deleted:   result.Deleted,
			Conflicts: result.Conflicts,
			Errors:    result.Errors,
		},
		SyncedAt: result.SyncedAt,
	})
}

// listSyncRuns handles GET /api/v1/sync/runs
func (rr *Routes) listSyncRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultRunsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			rr.writeErrorResponse(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(parsed, maxRunsLimit)
	}

	runs, err := rr.service.ListSyncRuns(r.Context(), limit)
	if err != nil {
		slog.Error("Failed to list sync runs", "error", err)
		rr.writeErrorResponse(w, "Failed to list sync runs", http.StatusInternalServerError)
		return
	}

	rr.writeJSONResponse(w, http.StatusOK, ListRunsResponse{
		Runs:  runs,
		Count: len(runs),
	})
}

// createEvent handles POST /api/v1/events
func (rr *Routes) createEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rr.writeErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	event, err := rr.service.CreateEvent(r.Context(), service.CreateEventRequest{
		Title:        req.Title,
		Description:  req.Description,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		AllDay:       req.AllDay,
		Location:     req.Location,
		CalendarName: req.CalendarName,
		BusinessID:   req.BusinessID,
	})
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			rr.writeErrorResponse(w, vErr.Message, http.StatusBadRequest)
			return
		}
		slog.Error("Failed to create event", "error", err)
		rr.writeErrorResponse(w, "Failed to create event", http.StatusInternalServerError)
		return
	}

	rr.writeJSONResponse(w, http.StatusCreated, event)
}

// listEvents handles GET /api/v1/events
func (rr *Routes) listEvents(w http.ResponseWriter, r *http.Request) {
	var filter store.ListFilter

	if raw := r.URL.Query().Get("calendar"); raw != "" {
		calendar, err := store.ParseCalendarName(raw)
		if err != nil {
			rr.writeErrorResponse(w, "Unknown calendar: "+raw, http.StatusBadRequest)
			return
		}
		filter.Calendar = &calendar
	}
	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			rr.writeErrorResponse(w, "Invalid from timestamp", http.StatusBadRequest)
			return
		}
		filter.From = from
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			rr.writeErrorResponse(w, "Invalid to timestamp", http.StatusBadRequest)
			return
		}
		filter.To = to
	}

	events, err := rr.service.ListEvents(r.Context(), filter)
	if err != nil {
		slog.Error("Failed to list events", "error", err)
		rr.writeErrorResponse(w, "Failed to list events", http.StatusInternalServerError)
		return
	}

	rr.writeJSONResponse(w, http.StatusOK, ListEventsResponse{
		Events: events,
		Count:  len(events),
	})
}

// getEvent handles GET /api/v1/events/{id}
func (rr *Routes) getEvent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		rr.writeErrorResponse(w, "Invalid event id", http.StatusBadRequest)
		return
	}

	event, err := rr.service.GetEvent(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			rr.writeErrorResponse(w, "Event not found", http.StatusNotFound)
			return
		}
		slog.Error("Failed to get event", "event_id", id, "error", err)
		rr.writeErrorResponse(w, "Failed to get event", http.StatusInternalServerError)
		return
	}

	rr.writeJSONResponse(w, http.StatusOK, event)
}

// deleteEvent handles DELETE /api/v1/events/{id}
func (rr *Routes) deleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		rr.writeErrorResponse(w, "Invalid event id", http.StatusBadRequest)
		return
	}

	if err := rr.service.DeleteEvent(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			rr.writeErrorResponse(w, "Event not found", http.StatusNotFound)
			return
		}
		slog.Error("Failed to delete event", "event_id", id, "error", err)
		rr.writeErrorResponse(w, "Failed to delete event", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthRouter creates a router for health check endpoints
func HealthRouter(svc service.EventService) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", healthHandler)
	r.Get("/readiness", readinessHandler(svc))
	r.Get("/version", versionHandler)

	return r
}

// healthHandler handles health check requests
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

// readinessHandler handles readiness check requests
func readinessHandler(svc service.EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.CheckReadiness(r.Context()); err != nil {
			errorResp := ErrorResponse{
				Error: "Service not ready: " + err.Error(),
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			if encodeErr := json.NewEncoder(w).Encode(errorResp); encodeErr != nil {
				slog.Error("Failed to encode readiness error response", "error", encodeErr)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	}
}

// versionHandler handles version information requests
func versionHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(versions.GetVersionInfo()); err != nil {
		slog.Error("Failed to encode version info", "error", err)
	}
}

// writeJSONResponse writes a JSON response with the given status and data
func (*Routes) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

// writeErrorResponse writes a standardized error response
func (*Routes) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	errorResp := ErrorResponse{
		Error: message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(errorResp); err != nil {
		slog.Error("Failed to encode error response", "error", err)
	}
}
