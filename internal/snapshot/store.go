// Package snapshot holds the dashboard's local copy of hub data. A snapshot
// is immutable once stored; a refresh replaces it wholesale. There is no
// merging of old and new data and no partial reconciliation.
package snapshot

import (
	"sync"
	"time"

	"github.com/lomoval/famboard/internal/model"
)

type Snapshot struct {
	Events    []model.CalendarEvent
	Families  []model.FamilySummary
	FetchedAt time.Time
}

type Store struct {
	mu      sync.RWMutex
	current Snapshot
	loaded  bool
}

func NewStore() *Store {
	return &Store{}
}

// Replace swaps in a full snapshot. Readers holding the previous snapshot
// keep a consistent view; slices are never mutated after Replace.
func (s *Store) Replace(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = snap
	s.loaded = true
}

// Current returns the last full snapshot and whether one has been loaded
// yet. Before the first successful refresh the zero snapshot is returned
// with loaded == false.
func (s *Store) Current() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.loaded
}
