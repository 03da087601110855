package internalhttp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lomoval/famboard/internal/app"
	"github.com/lomoval/famboard/internal/model"
	"github.com/lomoval/famboard/internal/snapshot"
	"github.com/lomoval/famboard/internal/ws"
	"github.com/stretchr/testify/require"
)

type fakeHub struct {
	slots []model.AvailabilitySlot
}

func (f *fakeHub) Availability(_ context.Context, _ string, _, _ time.Time, _ int) ([]model.AvailabilitySlot, error) {
	return f.slots, nil
}

func (f *fakeHub) FamilyMembers(_ context.Context, _ string) ([]model.FamilyMember, error) {
	return []model.FamilyMember{{ID: "m1", Name: "Sam", Role: model.RoleMember}}, nil
}

func (f *fakeHub) CreateEvent(_ context.Context, e model.CalendarEvent) (model.CalendarEvent, error) {
	e.ID = "created"
	return e, nil
}

func (f *fakeHub) UpdateEvent(_ context.Context, _ string, _ model.CalendarEvent) error { return nil }
func (f *fakeHub) DeleteEvent(_ context.Context, _ string) error                        { return nil }

type noopInvalidator struct{}

func (noopInvalidator) Invalidate() {}

var routerNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func setupRouter(t *testing.T, snap snapshot.Snapshot, loaded bool) http.Handler {
	t.Helper()
	store := snapshot.NewStore()
	if loaded {
		store.Replace(snap)
	}
	dashboard := app.New(&fakeHub{}, store, noopInvalidator{})
	return NewRouter(dashboard, ws.NewHub())
}

func routerSnapshot() snapshot.Snapshot {
	return snapshot.Snapshot{
		Events: []model.CalendarEvent{
			{ID: "1", FamilyID: "fam-a", Title: "Team Sync", Type: model.EventTypeMeeting,
				StartTime: routerNow.Add(time.Hour), EndTime: routerNow.Add(2 * time.Hour)},
			{ID: "2", FamilyID: "fam-a", Title: "Birthday Party", Type: model.EventTypeBirthday,
				StartTime: routerNow.Add(24 * time.Hour), EndTime: routerNow.Add(26 * time.Hour)},
			{ID: "3", FamilyID: "fam-b", Title: "Secret", Type: model.EventTypeOther, IsPrivate: true,
				StartTime: routerNow.Add(3 * time.Hour), EndTime: routerNow.Add(4 * time.Hour)},
		},
		Families: []model.FamilySummary{
			{ID: "fam-a", Name: "Alpha", ViewerRole: model.RoleAdmin},
			{ID: "fam-b", Name: "Beta", ViewerRole: model.RoleMember},
		},
		FetchedAt: routerNow,
	}
}

func doRequest(t *testing.T, r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouter(t *testing.T) {
	now := routerNow.Format(time.RFC3339)

	t.Run("healthz", func(t *testing.T) {
		r := setupRouter(t, snapshot.Snapshot{}, false)
		rec := doRequest(t, r, http.MethodGet, "/healthz", "")
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("events before first snapshot is 503", func(t *testing.T) {
		r := setupRouter(t, snapshot.Snapshot{}, false)
		rec := doRequest(t, r, http.MethodGet, "/api/events", "")
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("events applies filters from query params", func(t *testing.T) {
		r := setupRouter(t, routerSnapshot(), true)
		rec := doRequest(t, r, http.MethodGet,
			"/api/events?eventTypes=Meeting,Birthday&showPastEvents=true&showPrivateEvents=true&now="+now, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Events []model.CalendarEvent `json:"events"`
			Stats  struct {
				Total    int `json:"total"`
				Today    int `json:"today"`
				Upcoming int `json:"upcoming"`
			} `json:"stats"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Events, 2)
		require.Equal(t, "1", body.Events[0].ID)
		require.Equal(t, "2", body.Events[1].ID)
		require.Equal(t, 2, body.Stats.Total)
		require.Equal(t, 1, body.Stats.Today)
		require.Equal(t, 2, body.Stats.Upcoming)
	})

	t.Run("events respects family mode", func(t *testing.T) {
		r := setupRouter(t, routerSnapshot(), true)
		rec := doRequest(t, r, http.MethodGet,
			"/api/events?mode=family:fam-b&showPrivateEvents=true&now="+now, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Events []model.CalendarEvent `json:"events"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Events, 1)
		require.Equal(t, "3", body.Events[0].ID)
	})

	t.Run("bad mode is 400", func(t *testing.T) {
		r := setupRouter(t, routerSnapshot(), true)
		rec := doRequest(t, r, http.MethodGet, "/api/events?mode=bogus", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("families", func(t *testing.T) {
		r := setupRouter(t, routerSnapshot(), true)
		rec := doRequest(t, r, http.MethodGet, "/api/families", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Alpha")
		require.Contains(t, rec.Body.String(), "Beta")
	})

	t.Run("availability requires familyId", func(t *testing.T) {
		r := setupRouter(t, routerSnapshot(), true)
		rec := doRequest(t, r, http.MethodGet, "/api/availability?startDate="+now+"&endDate="+now, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("create event as admin", func(t *testing.T) {
		r := setupRouter(t, routerSnapshot(), true)
		rec := doRequest(t, r, http.MethodPost, "/api/events",
			`{"familyId":"fam-a","title":"Picnic","type":"Other","priority":"Normal"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Contains(t, rec.Body.String(), `"created"`)
	})

	t.Run("create event as plain member is forbidden", func(t *testing.T) {
		r := setupRouter(t, routerSnapshot(), true)
		rec := doRequest(t, r, http.MethodPost, "/api/events", `{"familyId":"fam-b","title":"Nope"}`)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("delete unknown event is 404", func(t *testing.T) {
		r := setupRouter(t, routerSnapshot(), true)
		rec := doRequest(t, r, http.MethodDelete, "/api/events/missing", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}
