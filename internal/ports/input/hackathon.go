package input

import (
	"context"

	"hackx/internal/domain/entities"
)

type HackathonUseCase interface {
	CreateHackathon(ctx context.Context, hackathon *entities.Hackathon) error
	GetHackathon(ctx context.Context, id string) (*entities.Hackathon, error)
	ListHackathons(ctx context.Context) ([]entities.Hackathon, error)
	ListHackathonsByStatus(ctx context.Context, status string) ([]entities.Hackathon, error)
	UpdateHackathon(ctx context.Context, hackathon *entities.Hackathon) error
	CancelHackathon(ctx context.Context, id string) error
	DeleteHackathon(ctx context.Context, id string) error
	GetParticipants(ctx context.Context, hackathonID string) ([]entities.Registration, error)
}
