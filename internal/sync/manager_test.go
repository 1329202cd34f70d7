package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fridgeboard/calendar-server/internal/provider"
	providermocks "github.com/fridgeboard/calendar-server/internal/provider/mocks"
	"github.com/fridgeboard/calendar-server/internal/store"
	storemocks "github.com/fridgeboard/calendar-server/internal/store/mocks"
)

func strPtr(s string) *string {
	return &s
}

func noopRelease() {}

func TestReconcile_PullsNewExternalEvent(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	st := storemocks.NewMockStore(ctrl)
	client := providermocks.NewMockClient(ctrl)

	external := provider.ExternalEvent{
		ExternalID:   "X1",
		Title:        "Dentist",
		Start:        time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC),
		End:          time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC),
		CalendarName: store.CalendarFamily,
	}

	st.EXPECT().AcquireSyncLock(gomock.Any()).Return(noopRelease, nil)
	client.EXPECT().ListEvents(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]provider.ExternalEvent{external}, nil)
	st.EXPECT().ListAllEvents(gomock.Any()).Return(nil, nil)
	st.EXPECT().InsertEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ev store.NewEvent) (*store.Event, error) {
			require.NotNil(t, ev.ExternalID)
			assert.Equal(t, "X1", *ev.ExternalID)
			assert.Equal(t, "Dentist", ev.Title)
			assert.Equal(t, store.SyncStatusSynced, ev.SyncStatus)
			assert.Equal(t, store.CalendarFamily, ev.CalendarName)
			require.NotNil(t, ev.LastSyncedAt)
			return &store.Event{ID: uuid.New()}, nil
		})
	st.EXPECT().ListPendingPushEvents(gomock.Any()).Return(nil, nil)

	result, err := NewManager(st, client).Reconcile(context.Background(), Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Pulled)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 0, result.Pushed)
	assert.Equal(t, 0, result.Deleted)
	assert.Equal(t, 0, result.Conflicts)
	assert.Empty(t, result.Errors)
	assert.False(t, result.SyncedAt.IsZero())
}

// Re-running against unchanged external data must not duplicate or
// rewrite anything.
func TestReconcile_IdempotentPull(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	st := storemocks.NewMockStore(ctrl)
	client := providermocks.NewMockClient(ctrl)

	start := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	external := provider.ExternalEvent{
		ExternalID: "X1",
		Title:      "Dentist",
		Start:      start,
		End:        start.Add(time.Hour),
	}
	local := store.Event{
		ID:         uuid.New(),
		ExternalID: strPtr("X1"),
		Title:      "Dentist",
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		SyncStatus: store.SyncStatusSynced,
	}

	st.EXPECT().AcquireSyncLock(gomock.Any()).Return(noopRelease, nil)
	client.EXPECT().ListEvents(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]provider.ExternalEvent{external}, nil)
	st.EXPECT().ListAllEvents(gomock.Any()).Return([]store.Event{local}, nil)
	st.EXPECT().ListPendingPushEvents(gomock.Any()).Return(nil, nil)

	result, err := NewManager(st, client).Reconcile(context.Background(), Options{})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Pulled)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 0, result.Deleted)
	assert.Empty(t, result.Errors)
}

func TestReconcile_PushesPendingEvent(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	st := storemocks.NewMockStore(ctrl)
	client := providermocks.NewMockClient(ctrl)

	pending := store.Event{
		ID:           uuid.New(),
		Title:        "Board Meeting",
		StartTime:    time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
		EndTime:      time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
		CalendarName: store.CalendarWork,
		SyncStatus:   store.SyncStatusPendingPush,
	}

	st.EXPECT().AcquireSyncLock(gomock.Any()).Return(noopRelease, nil)
	client.EXPECT().ListEvents(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	st.EXPECT().ListAllEvents(gomock.Any()).Return([]store.Event{pending}, nil)
	st.EXPECT().ListPendingPushEvents(gomock.Any()).Return([]store.Event{pending}, nil)
	client.EXPECT().CreateEvent(gomock.Any(), gomock.Any(), store.CalendarWork).
		DoAndReturn(func(_ context.Context, fields provider.EventFields, _ store.CalendarName) (string, error) {
			assert.Equal(t, "Board Meeting", fields.Title)
			return "EXT-99", nil
		})
	st.EXPECT().MarkEventSynced(gomock.Any(), pending.ID, "EXT-99", gomock.Any()).Return(nil)

	result, err := NewManager(st, client).Reconcile(context.Background(), Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Pushed)
	assert.Empty(t, result.Errors)
}

// A failed push leaves the row pending and the run carries on. The next
// run retries it.
func TestReconcile_PushFailureIsDegraded(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	st := storemocks.NewMockStore(ctrl)
	client := providermocks.NewMockClient(ctrl)

	pending := store.Event{
		ID:         uuid.New(),
		Title:      "Board Meeting",
		SyncStatus: store.SyncStatusPendingPush,
	}

	st.EXPECT().AcquireSyncLock(gomock.Any()).Return(noopRelease, nil)
	client.EXPECT().ListEvents(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	st.EXPECT().ListAllEvents(gomock.Any()).Return([]store.Event{pending}, nil)
	st.EXPECT().ListPendingPushEvents(gomock.Any()).Return([]store.Event{pending}, nil)
	client.EXPECT().CreateEvent(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", errors.New("provider unreachable"))

	result, err := NewManager(st, client).Reconcile(context.Background(), Options{})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Pushed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Board Meeting")
}

func TestReconcile_DeletesVanishedEvent(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	st := storemocks.NewMockStore(ctrl)
	client := providermocks.NewMockClient(ctrl)

	local := store.Event{
		ID:         uuid.New(),
		ExternalID: strPtr("OLD1"),
		Title:      "Cancelled Standup",
		SyncStatus: store.SyncStatusSynced,
	}

	st.EXPECT().AcquireSyncLock(gomock.Any()).Return(noopRelease, nil)
	client.EXPECT().ListEvents(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	st.EXPECT().ListAllEvents(gomock.Any()).Return([]store.Event{local}, nil)
	st.EXPECT().ListPendingPushEvents(gomock.Any()).Return(nil, nil)
	st.EXPECT().DeleteEvent(gomock.Any(), local.ID).Return(nil)

	result, err := NewManager(st, client).Reconcile(context.Background(), Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Deleted)
	assert.Empty(t, result.Errors)
}

func TestReconcile_UpdatesChangedEvent(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	st := storemocks.NewMockStore(ctrl)
	client := providermocks.NewMockClient(ctrl)

	start := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	local := store.Event{
		ID:         uuid.New(),
		ExternalID: strPtr("X1"),
		Title:      "Dentist",
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		SyncStatus: store.SyncStatusSynced,
	}
	external := provider.ExternalEvent{
		ExternalID: "X1",
		Title:      "Dentist (rescheduled)",
		Start:      start,
		End:        start.Add(time.Hour),
	}

	st.EXPECT().AcquireSyncLock(gomock.Any()).Return(noopRelease, nil)
	client.EXPECT().ListEvents(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]provider.ExternalEvent{external}, nil)
	st.EXPECT().ListAllEvents(gomock.Any()).Return([]store.Event{local}, nil)
	st.EXPECT().UpdateEventContent(gomock.Any(), local.ID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, upd store.ContentUpdate, _ time.Time) error {
			assert.Equal(t, "Dentist (rescheduled)", upd.Title)
			return nil
		})
	st.EXPECT().ListPendingPushEvents(gomock.Any()).Return(nil, nil)

	result, err := NewManager(st, client).Reconcile(context.Background(), Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Updated)
	assert.Empty(t, result.Errors)
}

// A pending_push row is never overwritten by the pull phase even when
// the external content differs. It goes through the push phase instead.
func TestReconcile_LocalPrecedenceForPendingPush(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	st := storemocks.NewMockStore(ctrl)
	client := providermocks.NewMockClient(ctrl)

	start := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	local := store.Event{
		ID:         uuid.New(),
		ExternalID: strPtr("X1"),
		Title:      "Dentist (edited locally)",
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		SyncStatus: store.SyncStatusPendingPush,
	}
	external := provider.ExternalEvent{
		ExternalID: "X1",
		Title:      "Dentist",
		Start:      start,
		End:        start.Add(time.Hour),
	}

	st.EXPECT().AcquireSyncLock(gomock.Any()).Return(noopRelease, nil)
	client.EXPECT().ListEvents(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]provider.ExternalEvent{external}, nil)
	st.EXPECT().ListAllEvents(gomock.Any()).Return([]store.Event{local}, nil)
	st.EXPECT().ListPendingPushEvents(gomock.Any()).Return([]store.Event{local}, nil)
	client.EXPECT().CreateEvent(gomock.Any(), gomock.Any(), gomock.Any()).Return("EXT-NEW", nil)
	st.EXPECT().MarkEventSynced(gomock.Any(), local.ID, "EXT-NEW", gomock.Any()).Return(nil)

	result, err := NewManager(st, client).Reconcile(context.Background(), Options{})
	require.NoError(t, err)

	// No UpdateEventContent call was expected: local content survives.
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 1, result.Pushed)
}

func TestReconcile_LocalSnapshotFailureIsFatal(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	st := storemocks.NewMockStore(ctrl)
	client := providermocks.NewMockClient(ctrl)

	st.EXPECT().AcquireSyncLock(gomock.Any()).Return(noopRelease, nil)
	client.EXPECT().ListEvents(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	st.EXPECT().ListAllEvents(gomock.Any()).Return(nil, errors.New("connection refused"))

	result, err := NewManager(st, client).Reconcile(context.Background(), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSnapshotFailed)
	assert.Nil(t, result)
}

func TestReconcile_LockHeld(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	st := storemocks.NewMockStore(ctrl)
	client := providermocks.NewMockClient(ctrl)

	st.EXPECT().AcquireSyncLock(gomock.Any()).Return(nil, store.ErrSyncLockHeld)

	result, err := NewManager(st, client).Reconcile(context.Background(), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSyncInProgress)
	assert.Nil(t, result)
}

func TestReconcile_ReleasesLock(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	st := storemocks.NewMockStore(ctrl)
	client := providermocks.NewMockClient(ctrl)

	released := false
	st.EXPECT().AcquireSyncLock(gomock.Any()).Return(func() { released = true }, nil)
	client.EXPECT().ListEvents(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	st.EXPECT().ListAllEvents(gomock.Any()).Return(nil, errors.New("connection refused"))

	_, err := NewManager(st, client).Reconcile(context.Background(), Options{})
	require.Error(t, err)
	assert.True(t, released, "lock must be released even on a fatal run")
}

// One bad item must not abort the rest of its phase.
func TestReconcile_PerItemFailureIsolation(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	st := storemocks.NewMockStore(ctrl)
	client := providermocks.NewMockClient(ctrl)

	first := provider.ExternalEvent{ExternalID: "X1", Title: "First"}
	second := provider.ExternalEvent{ExternalID: "X2", Title: "Second"}

	st.EXPECT().AcquireSyncLock(gomock.Any()).Return(noopRelease, nil)
	client.EXPECT().ListEvents(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]provider.ExternalEvent{first, second}, nil)
	st.EXPECT().ListAllEvents(gomock.Any()).Return(nil, nil)
	st.EXPECT().InsertEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ev store.NewEvent) (*store.Event, error) {
			if ev.Title == "First" {
				return nil, errors.New("constraint violation")
			}
			return &store.Event{ID: uuid.New()}, nil
		}).Times(2)
	st.EXPECT().ListPendingPushEvents(gomock.Any()).Return(nil, nil)

	result, err := NewManager(st, client).Reconcile(context.Background(), Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Pulled)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "First")
}

func TestReconcile_RecordsAdapterWarnings(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	st := storemocks.NewMockStore(ctrl)
	client := providermocks.NewMockClient(ctrl)

	st.EXPECT().AcquireSyncLock(gomock.Any()).Return(noopRelease, nil)
	client.EXPECT().ListEvents(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, []string{"calendar work: timeout"})
	st.EXPECT().ListAllEvents(gomock.Any()).Return(nil, nil)
	st.EXPECT().ListPendingPushEvents(gomock.Any()).Return(nil, nil)

	result, err := NewManager(st, client).Reconcile(context.Background(), Options{})
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "calendar work")
}

func TestReconcile_DefaultWindowAndCalendars(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	st := storemocks.NewMockStore(ctrl)
	client := providermocks.NewMockClient(ctrl)

	st.EXPECT().AcquireSyncLock(gomock.Any()).Return(noopRelease, nil)
	client.EXPECT().ListEvents(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, calendars []store.CalendarName, window provider.Window) ([]provider.ExternalEvent, []string) {
			assert.ElementsMatch(t, store.AllCalendars(), calendars)
			span := window.To.Sub(window.From)
			assert.InDelta(t, float64((DefaultDaysBack+DefaultDaysForward)*24), span.Hours(), 25)
			return nil, nil
		})
	st.EXPECT().ListAllEvents(gomock.Any()).Return(nil, nil)
	st.EXPECT().ListPendingPushEvents(gomock.Any()).Return(nil, nil)

	_, err := NewManager(st, client).Reconcile(context.Background(), Options{})
	require.NoError(t, err)
}
