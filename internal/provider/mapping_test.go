package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fridgeboard/calendar-server/internal/store"
)

func TestProviderCalendarFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		local    store.CalendarName
		expected string
	}{
		{name: "family", local: store.CalendarFamily, expected: "family"},
		{name: "work", local: store.CalendarWork, expected: "work"},
		{name: "personal", local: store.CalendarPersonal, expected: "personal"},
		{name: "school collapses onto family", local: store.CalendarSchool, expected: "family"},
		{name: "unknown falls back to personal", local: store.CalendarName("Gym"), expected: "personal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ProviderCalendarFor(tt.local))
		})
	}
}

func TestLocalCalendarFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		provider string
		expected store.CalendarName
	}{
		{name: "family", provider: "family", expected: store.CalendarFamily},
		{name: "work", provider: "work", expected: store.CalendarWork},
		{name: "personal", provider: "personal", expected: store.CalendarPersonal},
		{name: "unknown lands on personal", provider: "holidays", expected: store.CalendarPersonal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, LocalCalendarFor(tt.provider))
		})
	}
}

// School events come back as Family after a round trip through the
// provider. The mapping is deliberately lossy.
func TestSchoolDoesNotRoundTrip(t *testing.T) {
	t.Parallel()

	assert.Equal(t, store.CalendarFamily, LocalCalendarFor(ProviderCalendarFor(store.CalendarSchool)))
}

func TestProviderCalendarsDeduplicates(t *testing.T) {
	t.Parallel()

	got := providerCalendars([]store.CalendarName{
		store.CalendarFamily,
		store.CalendarWork,
		store.CalendarSchool,
		store.CalendarPersonal,
	})
	assert.Equal(t, []string{"family", "work", "personal"}, got)
}

func TestProviderCalendarsEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, providerCalendars(nil))
}
