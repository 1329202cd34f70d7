package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav"
	"github.com/emersion/go-webdav/caldav"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/fridgeboard/calendar-server/internal/config"
	"github.com/fridgeboard/calendar-server/internal/store"
)

const (
	// listTimeout bounds a single per-calendar snapshot query. Hitting it
	// degrades that calendar to a warning, it never fails the run.
	listTimeout = 30 * time.Second

	// createTimeout bounds one event create, retries included.
	createTimeout = 15 * time.Second

	// createAttempts is the in-adapter retry budget for a create. Beyond
	// this the event stays pending_push and the next run retries it.
	createAttempts = 3
)

// CalDAVClient implements Client against a CalDAV server.
type CalDAVClient struct {
	client   *caldav.Client
	homePath string
}

// NewCalDAVClient builds a CalDAV adapter from provider config. It does
// no network I/O; an unreachable server surfaces as per-calendar
// warnings on the first listing instead.
func NewCalDAVClient(cfg *config.ProviderConfig) (*CalDAVClient, error) {
	baseURL, err := url.Parse(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid CalDAV server URL: %w", err)
	}

	password, err := cfg.GetPassword()
	if err != nil {
		return nil, fmt.Errorf("failed to read provider password: %w", err)
	}

	var httpClient webdav.HTTPClient = http.DefaultClient
	if cfg.Username != "" && password != "" {
		httpClient = webdav.HTTPClientWithBasicAuth(httpClient, cfg.Username, password)
	}

	c, err := caldav.NewClient(httpClient, baseURL.String())
	if err != nil {
		return nil, fmt.Errorf("failed to create CalDAV client: %w", err)
	}

	return &CalDAVClient{
		client:   c,
		homePath: strings.TrimRight(cfg.CalendarHome, "/"),
	}, nil
}

// ListEvents fetches the distinct provider calendars backing the given
// local calendars, in parallel. Each calendar gets its own timeout and
// a failure only contributes a warning.
func (c *CalDAVClient) ListEvents(ctx context.Context, calendars []store.CalendarName, window Window) ([]ExternalEvent, []string) {
	var (
		mu       sync.Mutex
		events   []ExternalEvent
		warnings []string
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, providerName := range providerCalendars(calendars) {
		g.Go(func() error {
			fetched, err := c.fetchCalendar(ctx, providerName, window)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				slog.Warn("Failed to fetch provider calendar",
					"calendar", providerName,
					"error", err)
				warnings = append(warnings, fmt.Sprintf("calendar %s: %v", providerName, err))
				return nil
			}
			events = append(events, fetched...)
			return nil
		})
	}
	// Goroutines report through warnings, never through an error.
	_ = g.Wait()

	return events, warnings
}

func (c *CalDAVClient) fetchCalendar(ctx context.Context, providerName string, window Window) ([]ExternalEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	query := &caldav.CalendarQuery{
		CompFilter: caldav.CompFilter{
			Name: "VCALENDAR",
			Comps: []caldav.CompFilter{{
				Name:  "VEVENT",
				Start: window.From,
				End:   window.To,
			}},
		},
	}

	objects, err := c.client.QueryCalendar(ctx, c.calendarPath(providerName), query)
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar: %w", err)
	}

	local := LocalCalendarFor(providerName)
	var events []ExternalEvent
	for _, obj := range objects {
		events = append(events, eventsFromObject(obj.Data, local)...)
	}
	return events, nil
}

// CreateEvent writes a new VEVENT onto the provider calendar mapped
// from the local calendar name. Transient failures are retried with
// exponential backoff inside the createTimeout budget.
func (c *CalDAVClient) CreateEvent(ctx context.Context, fields EventFields, calendar store.CalendarName) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, createTimeout)
	defer cancel()

	uid := "fridgeboard-" + uuid.NewString()
	cal := calendarObjectFor(uid, fields)
	path := c.calendarPath(ProviderCalendarFor(calendar)) + "/" + uid + ".ics"

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		_, putErr := c.client.PutCalendarObject(ctx, path, cal)
		return struct{}{}, putErr
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(createAttempts))
	if err != nil {
		return "", fmt.Errorf("failed to create event: %w", err)
	}

	return uid, nil
}

func (c *CalDAVClient) calendarPath(providerName string) string {
	return c.homePath + "/" + providerName
}

// calendarObjectFor wraps the event fields into a VCALENDAR ready for a
// CalDAV PUT.
func calendarObjectFor(uid string, fields EventFields) *ical.Calendar {
	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, uid)
	event.Props.SetText(ical.PropSummary, fields.Title)
	event.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, fields.Start.UTC())
	event.Props.SetDateTime(ical.PropDateTimeEnd, fields.End.UTC())
	event.Props.SetText(ical.PropStatus, "CONFIRMED")
	if fields.Description != "" {
		event.Props.SetText(ical.PropDescription, fields.Description)
	}
	if fields.Location != "" {
		event.Props.SetText(ical.PropLocation, fields.Location)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//fridgeboard//calendar-server//EN")
	cal.Children = append(cal.Children, event.Component)
	return cal
}

// eventsFromObject extracts the VEVENT components of one calendar
// object. Events without a UID are skipped; the engine keys everything
// on the provider-assigned id.
func eventsFromObject(cal *ical.Calendar, local store.CalendarName) []ExternalEvent {
	var events []ExternalEvent
	for _, comp := range cal.Children {
		if comp.Name != ical.CompEvent {
			continue
		}

		uid := textProp(comp.Props, ical.PropUID)
		if uid == "" {
			continue
		}

		start, _ := comp.Props.DateTime(ical.PropDateTimeStart, time.UTC)
		end, _ := comp.Props.DateTime(ical.PropDateTimeEnd, time.UTC)

		events = append(events, ExternalEvent{
			ExternalID:   uid,
			Title:        textProp(comp.Props, ical.PropSummary),
			Description:  textProp(comp.Props, ical.PropDescription),
			Location:     textProp(comp.Props, ical.PropLocation),
			Start:        start,
			End:          end,
			AllDay:       isAllDay(comp.Props),
			CalendarName: local,
		})
	}
	return events
}

func textProp(props ical.Props, name string) string {
	prop := props.Get(name)
	if prop == nil {
		return ""
	}
	return prop.Value
}

// isAllDay reports whether DTSTART carries a DATE value instead of a
// DATE-TIME.
func isAllDay(props ical.Props) bool {
	prop := props.Get(ical.PropDateTimeStart)
	if prop == nil {
		return false
	}
	return prop.ValueType() == ical.ValueDate
}
