package provider

import "github.com/fridgeboard/calendar-server/internal/store"

// defaultProviderCalendar receives events whose local calendar name is
// not in the mapping table.
const defaultProviderCalendar = "personal"

// localToProvider maps local calendar names onto provider calendars.
// The mapping is not injective: School events live on the family
// provider calendar, so a School event read back comes home as Family.
var localToProvider = map[store.CalendarName]string{
	store.CalendarFamily:   "family",
	store.CalendarWork:     "work",
	store.CalendarPersonal: "personal",
	store.CalendarSchool:   "family",
}

var providerToLocal = map[string]store.CalendarName{
	"family":   store.CalendarFamily,
	"work":     store.CalendarWork,
	"personal": store.CalendarPersonal,
}

// ProviderCalendarFor returns the provider calendar holding events of
// the given local calendar.
func ProviderCalendarFor(name store.CalendarName) string {
	if p, ok := localToProvider[name]; ok {
		return p
	}
	return defaultProviderCalendar
}

// LocalCalendarFor maps a provider calendar back to a local calendar
// name. Unknown provider calendars land on Personal.
func LocalCalendarFor(providerName string) store.CalendarName {
	if l, ok := providerToLocal[providerName]; ok {
		return l
	}
	return store.CalendarPersonal
}

// providerCalendars maps a set of local calendars to the distinct
// provider calendars backing them, preserving first-seen order.
func providerCalendars(names []store.CalendarName) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		p := ProviderCalendarFor(name)
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
