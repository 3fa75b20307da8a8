package entities

import "time"

// User is an account in the platform. Email is unique within the store;
// PasswordHash is a bcrypt hash and never leaves the backend.
type User struct {
	ID                     string
	Name                   string
	Email                  string
	PasswordHash           string
	IsAdmin                bool
	RegisteredHackathonIDs []string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// IsRegisteredFor reports whether the user's registered list contains the
// given hackathon id.
func (u *User) IsRegisteredFor(hackathonID string) bool {
	for _, id := range u.RegisteredHackathonIDs {
		if id == hackathonID {
			return true
		}
	}
	return false
}
