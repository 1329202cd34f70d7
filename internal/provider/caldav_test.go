package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fridgeboard/calendar-server/internal/config"
	"github.com/fridgeboard/calendar-server/internal/store"
)

func TestNewCalDAVClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     *config.ProviderConfig
		wantErr bool
	}{
		{
			name: "valid config",
			cfg: &config.ProviderConfig{
				ServerURL:    "https://dav.example.com",
				Username:     "fridge",
				CalendarHome: "/calendars/fridge/",
			},
		},
		{
			name: "invalid server URL",
			cfg: &config.ProviderConfig{
				ServerURL: "://not-a-url",
			},
			wantErr: true,
		},
		{
			name: "missing password file",
			cfg: &config.ProviderConfig{
				ServerURL:    "https://dav.example.com",
				PasswordFile: "/nonexistent/password",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, err := NewCalDAVClient(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "/calendars/fridge/family", client.calendarPath("family"))
		})
	}
}

func TestEventsFromObject(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, "ext-123")
	event.Props.SetText(ical.PropSummary, "Dentist")
	event.Props.SetText(ical.PropDescription, "Checkup")
	event.Props.SetText(ical.PropLocation, "Main St")
	event.Props.SetDateTime(ical.PropDateTimeStart, start)
	event.Props.SetDateTime(ical.PropDateTimeEnd, end)

	cal := ical.NewCalendar()
	cal.Children = append(cal.Children, event.Component)

	events := eventsFromObject(cal, store.CalendarFamily)
	require.Len(t, events, 1)

	got := events[0]
	assert.Equal(t, "ext-123", got.ExternalID)
	assert.Equal(t, "Dentist", got.Title)
	assert.Equal(t, "Checkup", got.Description)
	assert.Equal(t, "Main St", got.Location)
	assert.True(t, got.Start.Equal(start))
	assert.True(t, got.End.Equal(end))
	assert.False(t, got.AllDay)
	assert.Equal(t, store.CalendarFamily, got.CalendarName)
}

func TestEventsFromObjectSkipsMissingUID(t *testing.T) {
	t.Parallel()

	event := ical.NewEvent()
	event.Props.SetText(ical.PropSummary, "No UID")
	event.Props.SetDateTime(ical.PropDateTimeStart, time.Now())

	cal := ical.NewCalendar()
	cal.Children = append(cal.Children, event.Component)

	assert.Empty(t, eventsFromObject(cal, store.CalendarPersonal))
}

func TestEventsFromObjectSkipsNonEvents(t *testing.T) {
	t.Parallel()

	tz := ical.NewComponent(ical.CompTimezone)
	cal := ical.NewCalendar()
	cal.Children = append(cal.Children, tz)

	assert.Empty(t, eventsFromObject(cal, store.CalendarPersonal))
}

func TestIsAllDay(t *testing.T) {
	t.Parallel()

	dayProp := ical.NewProp(ical.PropDateTimeStart)
	dayProp.SetValueType(ical.ValueDate)
	dayProp.Value = "20260314"
	allDay := ical.Props{}
	allDay.Set(dayProp)

	timed := ical.Props{}
	timed.SetDateTime(ical.PropDateTimeStart, time.Now())

	assert.True(t, isAllDay(allDay))
	assert.False(t, isAllDay(timed))
	assert.False(t, isAllDay(ical.Props{}))
}

func TestCalendarObjectFor(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	fields := EventFields{
		Title:       "Dentist",
		Description: "Checkup",
		Location:    "Main St",
		Start:       start,
		End:         start.Add(time.Hour),
	}

	cal := calendarObjectFor("fridgeboard-abc", fields)

	var event *ical.Component
	for _, comp := range cal.Children {
		if comp.Name == ical.CompEvent {
			event = comp
		}
	}
	require.NotNil(t, event)

	assert.Equal(t, "fridgeboard-abc", textProp(event.Props, ical.PropUID))
	assert.Equal(t, "Dentist", textProp(event.Props, ical.PropSummary))
	assert.Equal(t, "Checkup", textProp(event.Props, ical.PropDescription))
	assert.Equal(t, "Main St", textProp(event.Props, ical.PropLocation))
	assert.Equal(t, "CONFIRMED", textProp(event.Props, ical.PropStatus))

	gotStart, err := event.Props.DateTime(ical.PropDateTimeStart, time.UTC)
	require.NoError(t, err)
	assert.True(t, gotStart.Equal(start))
}

func TestListEventsDegradesFailedCalendar(t *testing.T) {
	t.Parallel()

	// iCalendar lines need CRLF endings, but XML parsing folds a literal
	// CRLF to LF. The CR goes in as a character reference so it survives.
	ics := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//server//EN",
		"BEGIN:VEVENT",
		"UID:ext-789",
		"SUMMARY:Soccer practice",
		"DTSTART:20260314T090000Z",
		"DTEND:20260314T100000Z",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "&#13;\n")

	multistatus := `<?xml version="1.0" encoding="UTF-8"?>
<d:multistatus xmlns:d="DAV:" xmlns:c="urn:ietf:params:xml:ns:caldav">
 <d:response>
  <d:href>/calendars/fridgeboard/family/ext-789.ics</d:href>
  <d:propstat>
   <d:prop>
    <d:getetag>"v1"</d:getetag>
    <c:calendar-data>` + ics + `</c:calendar-data>
   </d:prop>
   <d:status>HTTP/1.1 200 OK</d:status>
  </d:propstat>
 </d:response>
</d:multistatus>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/calendars/fridgeboard/work"):
			http.Error(w, "boom", http.StatusInternalServerError)
		case strings.HasPrefix(r.URL.Path, "/calendars/fridgeboard/family"):
			w.Header().Set("Content-Type", "text/xml; charset=utf-8")
			w.WriteHeader(http.StatusMultiStatus)
			fmt.Fprint(w, multistatus)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client, err := NewCalDAVClient(&config.ProviderConfig{
		ServerURL:    srv.URL,
		CalendarHome: "/calendars/fridgeboard",
	})
	require.NoError(t, err)

	window := Window{
		From: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	events, warnings := client.ListEvents(context.Background(),
		[]store.CalendarName{store.CalendarFamily, store.CalendarWork}, window)

	// The broken work calendar degrades to a warning; the family
	// calendar's events still come back.
	require.Len(t, events, 1)
	assert.Equal(t, "ext-789", events[0].ExternalID)
	assert.Equal(t, "Soccer practice", events[0].Title)
	assert.Equal(t, store.CalendarFamily, events[0].CalendarName)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "work")
}

func TestCalendarObjectForOmitsEmptyOptionalProps(t *testing.T) {
	t.Parallel()

	cal := calendarObjectFor("uid-1", EventFields{
		Title: "Bare",
		Start: time.Now(),
		End:   time.Now().Add(time.Hour),
	})

	event := cal.Children[0]
	assert.Nil(t, event.Props.Get(ical.PropDescription))
	assert.Nil(t, event.Props.Get(ical.PropLocation))
}
