package model

import (
	"time"
)

type EventType string

const (
	EventTypeMeeting     EventType = "Meeting"
	EventTypeBirthday    EventType = "Birthday"
	EventTypeAppointment EventType = "Appointment"
	EventTypeReminder    EventType = "Reminder"
	EventTypeChore       EventType = "Chore"
	EventTypeOther       EventType = "Other"
)

type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityNormal   Priority = "Normal"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// Reminder is an offset before the event start at which the hub notifies
// attendees. Delivery is the hub's job, the dashboard only displays it.
type Reminder struct {
	MinutesBefore int32  `json:"minutesBefore"`
	Method        string `json:"method"`
}

// CalendarEvent is a read-only snapshot of an event as served by the family
// hub. The dashboard never mutates these locally; edits go through the hub
// API and come back with the next snapshot.
type CalendarEvent struct {
	ID          string     `json:"id"`
	FamilyID    string     `json:"familyId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     time.Time  `json:"endTime"`
	IsAllDay    bool       `json:"isAllDay"`
	Type        EventType  `json:"type"`
	Priority    Priority   `json:"priority"`
	IsPrivate   bool       `json:"isPrivate"`
	Location    string     `json:"location,omitempty"`
	AttendeeIDs []string   `json:"attendeeIds"`
	Reminders   []Reminder `json:"reminders,omitempty"`
}
