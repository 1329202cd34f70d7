package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fridgeboard/calendar-server/internal/provider"
	"github.com/fridgeboard/calendar-server/internal/store"
)

func TestNormalizeTime(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("CET", 3600)

	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "strips sub-second precision",
			input:    time.Date(2026, 3, 1, 14, 0, 0, 999_999_999, time.UTC),
			expected: time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC),
		},
		{
			name:     "converts to UTC",
			input:    time.Date(2026, 3, 1, 15, 0, 0, 0, loc),
			expected: time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC),
		},
		{
			name:     "already normalized",
			input:    time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC),
			expected: time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, NormalizeTime(tt.input))
		})
	}
}

func TestHasChanged(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	desc := "Checkup"
	loc := "Main St"

	base := func() *store.Event {
		return &store.Event{
			Title:       "Dentist",
			Description: &desc,
			StartTime:   start,
			EndTime:     end,
			Location:    &loc,
		}
	}
	external := func() provider.ExternalEvent {
		return provider.ExternalEvent{
			Title:       "Dentist",
			Description: "Checkup",
			Start:       start,
			End:         end,
			Location:    "Main St",
		}
	}

	tests := []struct {
		name     string
		local    func() *store.Event
		external func() provider.ExternalEvent
		expected bool
	}{
		{
			name:     "identical",
			local:    base,
			external: external,
			expected: false,
		},
		{
			name:  "title differs",
			local: base,
			external: func() provider.ExternalEvent {
				e := external()
				e.Title = "Dentist (moved)"
				return e
			},
			expected: true,
		},
		{
			name:  "start differs",
			local: base,
			external: func() provider.ExternalEvent {
				e := external()
				e.Start = e.Start.Add(30 * time.Minute)
				return e
			},
			expected: true,
		},
		{
			name:  "end differs",
			local: base,
			external: func() provider.ExternalEvent {
				e := external()
				e.End = e.End.Add(30 * time.Minute)
				return e
			},
			expected: true,
		},
		{
			name:  "sub-second drift is not a change",
			local: base,
			external: func() provider.ExternalEvent {
				e := external()
				e.Start = e.Start.Add(500 * time.Millisecond)
				return e
			},
			expected: false,
		},
		{
			name:  "same instant different zone is not a change",
			local: base,
			external: func() provider.ExternalEvent {
				e := external()
				e.Start = e.Start.In(time.FixedZone("CET", 3600))
				return e
			},
			expected: false,
		},
		{
			name:  "description differs",
			local: base,
			external: func() provider.ExternalEvent {
				e := external()
				e.Description = "Cleaning"
				return e
			},
			expected: true,
		},
		{
			name: "nil description equals empty",
			local: func() *store.Event {
				l := base()
				l.Description = nil
				return l
			},
			external: func() provider.ExternalEvent {
				e := external()
				e.Description = ""
				return e
			},
			expected: false,
		},
		{
			name:  "location differs",
			local: base,
			external: func() provider.ExternalEvent {
				e := external()
				e.Location = "Elm St"
				return e
			},
			expected: true,
		},
		{
			name: "nil location equals empty",
			local: func() *store.Event {
				l := base()
				l.Location = nil
				return l
			},
			external: func() provider.ExternalEvent {
				e := external()
				e.Location = ""
				return e
			},
			expected: false,
		},
		{
			name: "all_day difference is ignored",
			local: func() *store.Event {
				l := base()
				l.AllDay = true
				return l
			},
			external: external,
			expected: false,
		},
		{
			name: "calendar difference is ignored",
			local: func() *store.Event {
				l := base()
				l.CalendarName = store.CalendarWork
				return l
			},
			external: func() provider.ExternalEvent {
				e := external()
				e.CalendarName = store.CalendarFamily
				return e
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, HasChanged(tt.local(), tt.external()))
		})
	}
}
