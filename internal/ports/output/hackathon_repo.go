package output

import (
	"context"

	"hackx/internal/domain/entities"
)

type HackathonRepository interface {
	// Create inserts a new hackathon. The caller assigns the id.
	Create(ctx context.Context, hackathon *entities.Hackathon) error
	FindByID(ctx context.Context, id string) (*entities.Hackathon, error)
	All(ctx context.Context) ([]entities.Hackathon, error)
	FindByStatus(ctx context.Context, status string) ([]entities.Hackathon, error)
	// Update replaces the stored hackathon with the same id. Returns
	// domain.ErrHackathonNotFound when the id is absent.
	Update(ctx context.Context, hackathon *entities.Hackathon) error
	// Delete removes the hackathon and cascades deletion of every
	// registration referencing it. Returns domain.ErrHackathonNotFound when
	// the id is absent.
	Delete(ctx context.Context, id string) error
}
