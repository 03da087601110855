package model

import (
	"time"
)

type NotificationKind string

const (
	EventCreated     NotificationKind = "EventCreated"
	EventUpdated     NotificationKind = "EventUpdated"
	EventDeleted     NotificationKind = "EventDeleted"
	ConflictDetected NotificationKind = "ConflictDetected"
	ConflictResolved NotificationKind = "ConflictResolved"
)

// Notification is a discrete change notice pushed by the hub. It carries
// identifiers only; the dashboard reacts by refetching the full snapshot
// rather than patching incrementally.
type Notification struct {
	ID       string           `json:"id"`
	Kind     NotificationKind `json:"kind"`
	EventID  string           `json:"eventId,omitempty"`
	FamilyID string           `json:"familyId,omitempty"`
	Time     time.Time        `json:"time"`
}

func (k NotificationKind) Valid() bool {
	switch k {
	case EventCreated, EventUpdated, EventDeleted, ConflictDetected, ConflictResolved:
		return true
	}
	return false
}
