package app

import (
	"context"
	"testing"
	"time"

	"github.com/lomoval/famboard/internal/model"
	"github.com/lomoval/famboard/internal/snapshot"
	"github.com/lomoval/famboard/internal/view"
	"github.com/stretchr/testify/require"
)

type fakeHub struct {
	slots   []model.AvailabilitySlot
	deleted []string
}

func (f *fakeHub) Availability(_ context.Context, _ string, _, _ time.Time, _ int) ([]model.AvailabilitySlot, error) {
	return f.slots, nil
}

func (f *fakeHub) FamilyMembers(_ context.Context, _ string) ([]model.FamilyMember, error) {
	return nil, nil
}

func (f *fakeHub) CreateEvent(_ context.Context, e model.CalendarEvent) (model.CalendarEvent, error) {
	e.ID = "created"
	return e, nil
}

func (f *fakeHub) UpdateEvent(_ context.Context, _ string, _ model.CalendarEvent) error {
	return nil
}

func (f *fakeHub) DeleteEvent(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeInvalidator struct {
	count int
}

func (f *fakeInvalidator) Invalidate() { f.count++ }

func newTestApp(snap snapshot.Snapshot) (*App, *fakeHub, *fakeInvalidator) {
	store := snapshot.NewStore()
	store.Replace(snap)
	hub := &fakeHub{}
	inv := &fakeInvalidator{}
	return New(hub, store, inv), hub, inv
}

func testSnapshot() snapshot.Snapshot {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	return snapshot.Snapshot{
		Events: []model.CalendarEvent{
			{ID: "1", FamilyID: "fam-a", Title: "Team Sync", Type: model.EventTypeMeeting,
				StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour)},
			{ID: "2", FamilyID: "fam-b", Title: "Dentist", Type: model.EventTypeAppointment,
				StartTime: now.Add(24 * time.Hour), EndTime: now.Add(25 * time.Hour)},
		},
		Families: []model.FamilySummary{
			{ID: "fam-a", ViewerRole: model.RoleAdmin},
			{ID: "fam-b", ViewerRole: model.RoleMember},
		},
		FetchedAt: now,
	}
}

func TestEvents(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("not ready before first snapshot", func(t *testing.T) {
		a := New(&fakeHub{}, snapshot.NewStore(), &fakeInvalidator{})
		_, _, err := a.Events(view.Filter{}, view.Global(), now)
		require.ErrorIs(t, err, ErrNotReady)
	})

	t.Run("filters snapshot and computes stats", func(t *testing.T) {
		a, _, _ := newTestApp(testSnapshot())
		events, stats, err := a.Events(view.Filter{ShowPastEvents: true, ShowPrivateEvents: true},
			view.Family("fam-a"), now)
		require.NoError(t, err)
		require.Len(t, events, 1)
		require.Equal(t, "1", events[0].ID)
		require.Equal(t, view.Stats{Total: 1, Today: 1, Upcoming: 1}, stats)
	})
}

func TestAvailability(t *testing.T) {
	a, hub, _ := newTestApp(testSnapshot())
	start := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	hub.slots = []model.AvailabilitySlot{
		{StartTime: start, EndTime: start.Add(30 * time.Minute),
			Members: []model.MemberAvailability{{MemberID: "m1", Status: model.MemberBusy}}},
		{StartTime: start.AddDate(0, 0, 1), EndTime: start.AddDate(0, 0, 1).Add(30 * time.Minute),
			Status: model.SlotAvailable},
	}

	groups, err := a.Availability(context.Background(), "fam-a", start, start.AddDate(0, 0, 2), 30)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	require.Equal(t, "2024-06-15", groups[0].Date)
	// Missing aggregate status is derived from member statuses.
	require.Equal(t, model.SlotBusy, groups[0].Slots[0].Status)
	require.Equal(t, model.SlotAvailable, groups[1].Slots[0].Status)
}

func TestEventWrites(t *testing.T) {
	t.Run("admin can create and snapshot is invalidated", func(t *testing.T) {
		a, _, inv := newTestApp(testSnapshot())
		created, err := a.CreateEvent(context.Background(), model.CalendarEvent{FamilyID: "fam-a", Title: "Picnic"})
		require.NoError(t, err)
		require.Equal(t, "created", created.ID)
		require.Equal(t, 1, inv.count)
	})

	t.Run("member cannot create", func(t *testing.T) {
		a, _, inv := newTestApp(testSnapshot())
		_, err := a.CreateEvent(context.Background(), model.CalendarEvent{FamilyID: "fam-b"})
		require.ErrorIs(t, err, ErrPermissionDenied)
		require.Zero(t, inv.count)
	})

	t.Run("remove resolves family through the event", func(t *testing.T) {
		a, hub, inv := newTestApp(testSnapshot())
		require.NoError(t, a.RemoveEvent(context.Background(), "1"))
		require.Equal(t, []string{"1"}, hub.deleted)
		require.Equal(t, 1, inv.count)
	})

	t.Run("remove in member family is denied", func(t *testing.T) {
		a, hub, _ := newTestApp(testSnapshot())
		err := a.RemoveEvent(context.Background(), "2")
		require.ErrorIs(t, err, ErrPermissionDenied)
		require.Empty(t, hub.deleted)
	})

	t.Run("remove of unknown event", func(t *testing.T) {
		a, _, _ := newTestApp(testSnapshot())
		err := a.RemoveEvent(context.Background(), "missing")
		require.ErrorIs(t, err, ErrNotFoundEvent)
	})
}
