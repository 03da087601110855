package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lomoval/famboard/internal/auth"
	"github.com/lomoval/famboard/internal/model"
	"github.com/lomoval/famboard/internal/snapshot"
	"github.com/lomoval/famboard/internal/view"
)

var (
	ErrNotReady         = errors.New("no snapshot loaded yet")
	ErrPermissionDenied = errors.New("viewer may not manage events in this family")
	ErrNotFoundEvent    = errors.New("event not found")
)

// HubClient is the slice of the hub API the app needs for availability
// lookups and event writes. Reads of events and families go through the
// snapshot instead.
type HubClient interface {
	Availability(ctx context.Context, familyID string, start, end time.Time, granularityMinutes int) ([]model.AvailabilitySlot, error)
	FamilyMembers(ctx context.Context, familyID string) ([]model.FamilyMember, error)
	CreateEvent(ctx context.Context, e model.CalendarEvent) (model.CalendarEvent, error)
	UpdateEvent(ctx context.Context, id string, e model.CalendarEvent) error
	DeleteEvent(ctx context.Context, id string) error
}

// Invalidator requests a snapshot refresh after a successful write.
type Invalidator interface {
	Invalidate()
}

type App struct {
	hub         HubClient
	store       *snapshot.Store
	invalidator Invalidator
}

func New(hub HubClient, store *snapshot.Store, invalidator Invalidator) *App {
	return &App{hub: hub, store: store, invalidator: invalidator}
}

// Events runs the aggregator over the current snapshot and returns the
// filtered list plus its summary stats.
func (a *App) Events(f view.Filter, m view.Mode, now time.Time) ([]model.CalendarEvent, view.Stats, error) {
	snap, loaded := a.store.Current()
	if !loaded {
		return nil, view.Stats{}, ErrNotReady
	}
	filtered := view.FilterEvents(snap.Events, f, m, now)
	return filtered, view.ComputeStats(filtered, now), nil
}

func (a *App) Families() ([]model.FamilySummary, error) {
	snap, loaded := a.store.Current()
	if !loaded {
		return nil, ErrNotReady
	}
	return snap.Families, nil
}

// FamilyRole returns the viewer's role in a family from the snapshot.
func (a *App) FamilyRole(familyID string) (model.Role, bool) {
	snap, loaded := a.store.Current()
	if !loaded {
		return "", false
	}
	for _, f := range snap.Families {
		if f.ID == familyID {
			return f.ViewerRole, true
		}
	}
	return "", false
}

// Availability fetches the hub's availability matrix live and groups it
// into day sections for the availability view. Slots the hub serves
// without an aggregate status get one derived from their member statuses.
func (a *App) Availability(ctx context.Context, familyID string, start, end time.Time, granularityMinutes int) ([]view.DayGroup, error) {
	slots, err := a.hub.Availability(ctx, familyID, start, end, granularityMinutes)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	for i := range slots {
		if slots[i].Status == "" {
			slots[i].Status = view.SlotStatus(slots[i].Members)
		}
	}
	return view.GroupSlotsByDay(slots), nil
}

func (a *App) FamilyMembers(ctx context.Context, familyID string) ([]model.FamilyMember, error) {
	return a.hub.FamilyMembers(ctx, familyID)
}

func (a *App) CreateEvent(ctx context.Context, e model.CalendarEvent) (model.CalendarEvent, error) {
	if err := a.checkManage(e.FamilyID); err != nil {
		return model.CalendarEvent{}, err
	}
	created, err := a.hub.CreateEvent(ctx, e)
	if err != nil {
		return model.CalendarEvent{}, err
	}
	a.invalidator.Invalidate()
	return created, nil
}

func (a *App) UpdateEvent(ctx context.Context, id string, e model.CalendarEvent) error {
	familyID, ok := a.eventFamily(id)
	if !ok {
		return fmt.Errorf("failed to update event %q: %w", id, ErrNotFoundEvent)
	}
	if err := a.checkManage(familyID); err != nil {
		return err
	}
	if err := a.hub.UpdateEvent(ctx, id, e); err != nil {
		return err
	}
	a.invalidator.Invalidate()
	return nil
}

func (a *App) RemoveEvent(ctx context.Context, id string) error {
	familyID, ok := a.eventFamily(id)
	if !ok {
		return fmt.Errorf("failed to remove event %q: %w", id, ErrNotFoundEvent)
	}
	if err := a.checkManage(familyID); err != nil {
		return err
	}
	if err := a.hub.DeleteEvent(ctx, id); err != nil {
		return err
	}
	a.invalidator.Invalidate()
	return nil
}

func (a *App) checkManage(familyID string) error {
	role, ok := a.FamilyRole(familyID)
	if !ok || !auth.CanManageEvents(role) {
		return ErrPermissionDenied
	}
	return nil
}

func (a *App) eventFamily(id string) (string, bool) {
	snap, loaded := a.store.Current()
	if !loaded {
		return "", false
	}
	for _, e := range snap.Events {
		if e.ID == id {
			return e.FamilyID, true
		}
	}
	return "", false
}
