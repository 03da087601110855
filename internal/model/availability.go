package model

import (
	"time"
)

type MemberStatus string

const (
	MemberAvailable   MemberStatus = "Available"
	MemberBusy        MemberStatus = "Busy"
	MemberTentative   MemberStatus = "Tentative"
	MemberOutOfOffice MemberStatus = "OutOfOffice"
)

type SlotStatus string

const (
	SlotAvailable SlotStatus = "Available"
	SlotPartial   SlotStatus = "Partial"
	SlotBusy      SlotStatus = "Busy"
)

type MemberAvailability struct {
	MemberID string       `json:"memberId"`
	Status   MemberStatus `json:"status"`
}

// AvailabilitySlot is one time bucket of the hub's availability matrix.
// Conflict detection happens server-side; the dashboard only buckets and
// displays the slots.
type AvailabilitySlot struct {
	StartTime     time.Time            `json:"startTime"`
	EndTime       time.Time            `json:"endTime"`
	Members       []MemberAvailability `json:"members"`
	HasConflict   bool                 `json:"hasConflict"`
	ConflictCount int                  `json:"conflictCount"`
	Status        SlotStatus           `json:"status"`
}
