package entities

import "time"

type Hackathon struct {
	ID                   string
	Title                string
	Description          string
	StartsAt             time.Time
	EndsAt               time.Time
	Location             string
	MaxParticipants      int // validated > 0 on admin mutations; 0 in stored data means no recorded limit
	ParticipantCount     int
	PrizePool            string
	RegistrationDeadline time.Time // zero = open until start
	Organizer            string
	RegisteredUserIDs    []string
	Status               string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsFull reports whether the confirmed participant count has reached the
// capacity. An unlimited hackathon is never full.
func (h *Hackathon) IsFull() bool {
	return h.MaxParticipants > 0 && h.ParticipantCount >= h.MaxParticipants
}

// RegistrationOpenAt reports whether registration is still open at the given
// instant: before the deadline when one is set, otherwise before the start.
func (h *Hackathon) RegistrationOpenAt(now time.Time) bool {
	deadline := h.RegistrationDeadline
	if deadline.IsZero() {
		deadline = h.StartsAt
	}
	return now.Before(deadline)
}

// HasRegisteredUser reports whether the hackathon's registered list contains
// the given user id.
func (h *Hackathon) HasRegisteredUser(userID string) bool {
	for _, id := range h.RegisteredUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
