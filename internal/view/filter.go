package view

import (
	"errors"
	"strings"
	"time"

	"github.com/lomoval/famboard/internal/model"
)

var ErrUnknownMode = errors.New("unknown view mode")

// Filter is the user-controlled filter state. An empty set for a dimension
// means no restriction on that dimension; all active predicates are combined
// with AND.
type Filter struct {
	FamilyIDs         []string
	EventTypes        []model.EventType
	Priorities        []model.Priority
	ShowPastEvents    bool
	ShowPrivateEvents bool
	SearchQuery       string
}

// Mode selects between the global view (events across all families) and a
// single-family view.
type Mode struct {
	familyID string
}

func Global() Mode {
	return Mode{}
}

func Family(id string) Mode {
	return Mode{familyID: id}
}

func (m Mode) IsGlobal() bool {
	return m.familyID == ""
}

func (m Mode) FamilyID() string {
	return m.familyID
}

// ParseMode parses the wire form: "global" or "family:<id>".
func ParseMode(s string) (Mode, error) {
	if s == "" || s == "global" {
		return Global(), nil
	}
	if id, ok := strings.CutPrefix(s, "family:"); ok && id != "" {
		return Family(id), nil
	}
	return Mode{}, ErrUnknownMode
}

// FilterEvents returns the ordered subset of events passing all active
// predicates. The filter is stable: output preserves input order and no
// events are fabricated. Pure, no reads of the system clock; now is passed
// in by the caller.
func FilterEvents(events []model.CalendarEvent, f Filter, m Mode, now time.Time) []model.CalendarEvent {
	result := make([]model.CalendarEvent, 0, len(events))
	query := strings.ToLower(f.SearchQuery)
	for _, e := range events {
		if !m.IsGlobal() && e.FamilyID != m.FamilyID() {
			continue
		}
		if len(f.FamilyIDs) > 0 && !contains(f.FamilyIDs, e.FamilyID) {
			continue
		}
		if len(f.EventTypes) > 0 && !contains(f.EventTypes, e.Type) {
			continue
		}
		if len(f.Priorities) > 0 && !contains(f.Priorities, e.Priority) {
			continue
		}
		if !f.ShowPastEvents && e.EndTime.Before(now) {
			continue
		}
		if !f.ShowPrivateEvents && e.IsPrivate {
			continue
		}
		if query != "" && !matchesQuery(e, query) {
			continue
		}
		result = append(result, e)
	}
	return result
}

// matchesQuery reports whether the lower-cased query is a substring of the
// event title or description.
func matchesQuery(e model.CalendarEvent, query string) bool {
	return strings.Contains(strings.ToLower(e.Title), query) ||
		strings.Contains(strings.ToLower(e.Description), query)
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
