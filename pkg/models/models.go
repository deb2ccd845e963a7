package models

import "fmt"

// SessionStatus is the lifecycle state of a mentorship session
type SessionStatus string

const (
	StatusUpcoming  SessionStatus = "upcoming"
	StatusPending   SessionStatus = "pending"
	StatusCompleted SessionStatus = "completed"
)

// Statuses lists every valid status in display order
var Statuses = []SessionStatus{StatusUpcoming, StatusPending, StatusCompleted}

// ParseStatus converts a raw status string into a SessionStatus
func ParseStatus(s string) (SessionStatus, error) {
	for _, status := range Statuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown session status %q", s)
}

// Session represents a scheduled mentorship session
type Session struct {
	ID     string
	Title  string
	Mentor string        // Counterparty display name
	Date   string        // Display date, e.g. "Oct 18, 2024"
	Time   string        // Free-text time label, never parsed
	Status SessionStatus
}

// Action is the call to action offered for the session
func (s Session) Action() string {
	if s.Status == StatusUpcoming {
		return "Join Call"
	}
	return "Details"
}

// Role is the account role of a user
type Role string

const (
	RoleMentor Role = "mentor"
	RoleMentee Role = "mentee"
	RoleAdmin  Role = "admin"
)

// User represents a signed-in account
type User struct {
	ID     string
	Name   string
	Email  string
	Role   Role
	Avatar string
	Skills []string
	Bio    string
}

// Mentor represents a mentor listed in the directory
type Mentor struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Email          string   `yaml:"email"`
	Specialization string   `yaml:"specialization"`
	Avatar         string   `yaml:"avatar"`
	Skills         []string `yaml:"skills"`
	Rating         float64  `yaml:"rating"`
	TotalSessions  int      `yaml:"totalSessions"`
	Availability   []string `yaml:"availability"`
}

// GrowthPath is a three-month mentorship plan suggested by the advisor
type GrowthPath struct {
	Month1     string   `json:"month1"`
	Month2     string   `json:"month2"`
	Month3     string   `json:"month3"`
	FocusAreas []string `json:"focusAreas"`
}
