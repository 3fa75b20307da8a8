package output

import (
	"context"

	"hackx/internal/domain/entities"
)

type RegistrationRepository interface {
	// Register records the registration and applies the compound membership
	// update: the hackathon's participant count (when the status counts
	// toward capacity), the hackathon's registered-user list and the user's
	// registered-hackathon list. Implementations apply all writes atomically
	// (single transaction or store lock). Returns domain.ErrAlreadyRegistered
	// when a registration for the same (user, hackathon) pair exists.
	Register(ctx context.Context, registration *entities.Registration) error
	// Unregister removes the registration and reverses the membership update.
	Unregister(ctx context.Context, registration *entities.Registration) error
	FindByID(ctx context.Context, id string) (*entities.Registration, error)
	FindByUserID(ctx context.Context, userID string) ([]entities.Registration, error)
	FindByHackathonID(ctx context.Context, hackathonID string) ([]entities.Registration, error)
	FindByUserAndHackathon(ctx context.Context, userID, hackathonID string) (*entities.Registration, error)
	FindByHackathonAndStatus(ctx context.Context, hackathonID, status string) ([]entities.Registration, error)
	CountByHackathonAndStatus(ctx context.Context, hackathonID, status string) (int64, error)
	// UpdateStatus transitions a registration to the given status and adjusts
	// the hackathon's participant count when the transition changes whether
	// the registration counts toward capacity.
	UpdateStatus(ctx context.Context, id, status string) error
}
