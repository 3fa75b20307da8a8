package domain

// Hackathon lifecycle statuses.
const (
	HackathonUpcoming  = "upcoming"
	HackathonOngoing   = "ongoing"
	HackathonCompleted = "completed"
	HackathonCancelled = "cancelled"
)

// Registration statuses.
const (
	StatusPending    = "pending"
	StatusApproved   = "approved"
	StatusRejected   = "rejected"
	StatusWaitlisted = "waitlisted"
)

// CountsTowardCapacity reports whether a registration with the given status
// occupies a participant slot. Waitlisted and rejected registrations do not.
func CountsTowardCapacity(status string) bool {
	return status == StatusPending || status == StatusApproved
}
