package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"hackx/internal/domain"
	"hackx/internal/domain/entities"
	"hackx/internal/ports/input"
	"hackx/internal/ports/output"
)

var _ input.HackathonUseCase = (*HackathonService)(nil)

// HackathonService is the validated mutation layer over the hackathon
// collection: business-rule checks run before every write, and violations
// come back as ValidationError values rather than panics.
type HackathonService struct {
	hackathonRepo    output.HackathonRepository
	registrationRepo output.RegistrationRepository
	translator       output.T
	announcer        output.Announcer // optional
	notifier         *Notifier        // optional
}

func NewHackathonService(
	hackathonRepo output.HackathonRepository,
	registrationRepo output.RegistrationRepository,
	translator output.T,
	announcer output.Announcer,
	notifier *Notifier,
) *HackathonService {
	return &HackathonService{
		hackathonRepo:    hackathonRepo,
		registrationRepo: registrationRepo,
		translator:       translator,
		announcer:        announcer,
		notifier:         notifier,
	}
}

func (s *HackathonService) validate(hackathon *entities.Hackathon) error {
	if strings.TrimSpace(hackathon.Title) == "" {
		return domain.NewValidationError("title", "validation.title_required",
			s.translator.T("", "validation.title_required", nil))
	}
	if hackathon.MaxParticipants <= 0 {
		return domain.NewValidationError("maxParticipants", "validation.capacity_positive",
			s.translator.T("", "validation.capacity_positive", nil))
	}
	if !hackathon.EndsAt.IsZero() && hackathon.EndsAt.Before(hackathon.StartsAt) {
		return domain.NewValidationError("endsAt", "validation.end_before_start",
			s.translator.T("", "validation.end_before_start", nil))
	}
	if !hackathon.RegistrationDeadline.IsZero() && hackathon.RegistrationDeadline.After(hackathon.StartsAt) {
		return domain.NewValidationError("registrationDeadline", "validation.deadline_after_start",
			s.translator.T("", "validation.deadline_after_start", nil))
	}
	return nil
}

func (s *HackathonService) CreateHackathon(ctx context.Context, hackathon *entities.Hackathon) error {
	if err := s.validate(hackathon); err != nil {
		return err
	}
	if hackathon.ID == "" {
		hackathon.ID = uuid.NewString()
	}
	if hackathon.Status == "" {
		hackathon.Status = domain.HackathonUpcoming
	}
	if err := s.hackathonRepo.Create(ctx, hackathon); err != nil {
		return fmt.Errorf("create hackathon: %w", err)
	}
	if s.announcer != nil {
		if err := s.announcer.AnnounceHackathon(ctx, hackathon); err != nil {
			slog.Warn("hackathon announcement failed", "hackathon", hackathon.ID, "error", err)
		}
	}
	return nil
}

func (s *HackathonService) GetHackathon(ctx context.Context, id string) (*entities.Hackathon, error) {
	return s.hackathonRepo.FindByID(ctx, id)
}

func (s *HackathonService) ListHackathons(ctx context.Context) ([]entities.Hackathon, error) {
	return s.hackathonRepo.All(ctx)
}

func (s *HackathonService) ListHackathonsByStatus(ctx context.Context, status string) ([]entities.Hackathon, error) {
	return s.hackathonRepo.FindByStatus(ctx, status)
}

func (s *HackathonService) UpdateHackathon(ctx context.Context, hackathon *entities.Hackathon) error {
	if err := s.validate(hackathon); err != nil {
		return err
	}
	return s.hackathonRepo.Update(ctx, hackathon)
}

// CancelHackathon flips the status to cancelled and mails every registered
// user. Mail failures are logged and never fail the cancellation.
func (s *HackathonService) CancelHackathon(ctx context.Context, id string) error {
	hackathon, err := s.hackathonRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if hackathon.Status == domain.HackathonCancelled {
		return nil
	}
	hackathon.Status = domain.HackathonCancelled
	if err := s.hackathonRepo.Update(ctx, hackathon); err != nil {
		return fmt.Errorf("cancel hackathon: %w", err)
	}
	if s.notifier != nil {
		s.notifier.HackathonCancelled(ctx, hackathon)
	}
	return nil
}

func (s *HackathonService) DeleteHackathon(ctx context.Context, id string) error {
	return s.hackathonRepo.Delete(ctx, id)
}

func (s *HackathonService) GetParticipants(ctx context.Context, hackathonID string) ([]entities.Registration, error) {
	if _, err := s.hackathonRepo.FindByID(ctx, hackathonID); err != nil {
		return nil, err
	}
	return s.registrationRepo.FindByHackathonID(ctx, hackathonID)
}
