package view

import (
	"time"

	"github.com/lomoval/famboard/internal/model"
)

type Stats struct {
	Total    int `json:"total"`
	Today    int `json:"today"`
	Upcoming int `json:"upcoming"`
}

// ComputeStats summarizes an already-filtered event list. Today counts
// events whose start falls on now's calendar day; Upcoming counts events
// starting strictly after now. An event can be neither (started earlier
// today is counted by Today only, past events by neither).
func ComputeStats(events []model.CalendarEvent, now time.Time) Stats {
	stats := Stats{Total: len(events)}
	for _, e := range events {
		if sameDay(e.StartTime, now) {
			stats.Today++
		}
		if e.StartTime.After(now) {
			stats.Upcoming++
		}
	}
	return stats
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
