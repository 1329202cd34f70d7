package sync

import (
	"time"

	"github.com/fridgeboard/calendar-server/internal/provider"
	"github.com/fridgeboard/calendar-server/internal/store"
)

// NormalizeTime truncates a timestamp to whole seconds in UTC. The two
// systems' clocks are not guaranteed to agree below one second, so
// sub-second drift must never look like a content change.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// HasChanged reports whether a local event and its external counterpart
// diverge enough to warrant overwriting the local content. Compared:
// title, normalized start/end, description and location with nil
// coalesced to empty. all_day and calendar_name are not compared.
func HasChanged(local *store.Event, external provider.ExternalEvent) bool {
	if local.Title != external.Title {
		return true
	}
	if !NormalizeTime(local.StartTime).Equal(NormalizeTime(external.Start)) {
		return true
	}
	if !NormalizeTime(local.EndTime).Equal(NormalizeTime(external.End)) {
		return true
	}
	if derefOrEmpty(local.Description) != external.Description {
		return true
	}
	if derefOrEmpty(local.Location) != external.Location {
		return true
	}
	return false
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
