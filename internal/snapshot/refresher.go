package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/lomoval/famboard/internal/model"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	PollIntervalSeconds int
}

// Fetcher supplies full snapshots from the hub.
type Fetcher interface {
	Events(ctx context.Context) ([]model.CalendarEvent, error)
	Families(ctx context.Context) ([]model.FamilySummary, error)
}

// Refresher keeps the store current: it refetches on a poll ticker and on
// demand when a change notification arrives. A failed refresh keeps the
// previous snapshot in place.
type Refresher struct {
	fetcher   Fetcher
	store     *Store
	interval  time.Duration
	kick      chan struct{}
	onReplace func(Snapshot)
}

func NewRefresher(config Config, fetcher Fetcher, store *Store, onReplace func(Snapshot)) *Refresher {
	interval := time.Duration(config.PollIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Refresher{
		fetcher:   fetcher,
		store:     store,
		interval:  interval,
		kick:      make(chan struct{}, 1),
		onReplace: onReplace,
	}
}

// Invalidate requests a refresh. A burst of notifications coalesces into a
// single refetch.
func (r *Refresher) Invalidate() {
	select {
	case r.kick <- struct{}{}:
	default:
	}
}

// Run refreshes once immediately, then loops until ctx is done.
func (r *Refresher) Run(ctx context.Context) error {
	if err := r.Refresh(ctx); err != nil {
		log.Errorf("initial snapshot refresh failed: %v", err)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-r.kick:
		case <-ticker.C:
		}
		if err := r.Refresh(ctx); err != nil {
			log.Errorf("snapshot refresh failed: %v", err)
		}
	}
}

// Refresh fetches a fresh snapshot and replaces the stored one. Reads of
// the previous snapshot are never blocked by a refresh in flight.
func (r *Refresher) Refresh(ctx context.Context) error {
	events, err := r.fetcher.Events(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch events: %w", err)
	}
	families, err := r.fetcher.Families(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch families: %w", err)
	}

	snap := Snapshot{Events: events, Families: families, FetchedAt: time.Now()}
	r.store.Replace(snap)
	log.WithField("events", len(events)).WithField("families", len(families)).
		Debug("snapshot replaced")

	if r.onReplace != nil {
		r.onReplace(snap)
	}
	return nil
}
