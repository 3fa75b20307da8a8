package entities

import "time"

// Registration links a user to a hackathon and carries the submitted form
// fields. Status is one of the domain registration statuses.
type Registration struct {
	ID           string
	UserID       string
	HackathonID  string
	FullName     string
	Mobile       string
	College      string
	Education    string
	Field        string
	TeamName     string
	TeamSize     int
	Status       string
	RegisteredAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
