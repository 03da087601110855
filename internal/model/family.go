package model

type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

type EventCounts struct {
	Total    int `json:"total"`
	Upcoming int `json:"upcoming"`
	Today    int `json:"today"`
}

// FamilySummary is derived entirely from hub responses and refreshed
// wholesale with the rest of the snapshot.
type FamilySummary struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Color       string      `json:"color"`
	EventCounts EventCounts `json:"eventCounts"`
	ViewerRole  Role        `json:"viewerRole"`
}

type FamilyMember struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
	Color string `json:"color,omitempty"`
}
