package input

import (
	"context"

	"hackx/internal/domain/entities"
)

// RegistrationForm carries the fields a user submits when registering.
type RegistrationForm struct {
	FullName  string
	Mobile    string
	College   string
	Education string
	Field     string
	TeamName  string
	TeamSize  int
}

type RegistrationUseCase interface {
	Register(ctx context.Context, userID, hackathonID string, form RegistrationForm) (*entities.Registration, error)
	Withdraw(ctx context.Context, userID, hackathonID string) error
	ApproveRegistration(ctx context.Context, registrationID string) error
	RejectRegistration(ctx context.Context, registrationID string) error
	// PromoteNextWaitlisted confirms the oldest waitlisted registration for
	// the hackathon, if any.
	PromoteNextWaitlisted(ctx context.Context, hackathonID string) (*entities.Registration, error)
	GetUserRegistrations(ctx context.Context, userID string) ([]entities.Registration, error)
	IsUserRegistered(ctx context.Context, userID, hackathonID string) (bool, error)
}
