package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hackx/internal/domain"
	"hackx/internal/domain/entities"
	"hackx/internal/ports/input"
	"hackx/internal/ports/output"
)

// CapacityMode controls what happens when a registration arrives for a full
// hackathon. Strict waitlists the registration; Lenient lets the participant
// count exceed the capacity, matching the historical behavior of the local
// store.
type CapacityMode int

const (
	CapacityStrict CapacityMode = iota
	CapacityLenient
)

var _ input.RegistrationUseCase = (*RegistrationService)(nil)

type RegistrationService struct {
	registrationRepo output.RegistrationRepository
	hackathonRepo    output.HackathonRepository
	userRepo         output.UserRepository
	notifier         *Notifier // optional
	capacityMode     CapacityMode
}

func NewRegistrationService(
	registrationRepo output.RegistrationRepository,
	hackathonRepo output.HackathonRepository,
	userRepo output.UserRepository,
	notifier *Notifier,
	capacityMode CapacityMode,
) *RegistrationService {
	return &RegistrationService{
		registrationRepo: registrationRepo,
		hackathonRepo:    hackathonRepo,
		userRepo:         userRepo,
		notifier:         notifier,
		capacityMode:     capacityMode,
	}
}

// Register submits a registration form for a hackathon. The second call for
// the same (user, hackathon) pair fails with ErrAlreadyRegistered and leaves
// the store unchanged.
func (s *RegistrationService) Register(ctx context.Context, userID, hackathonID string, form input.RegistrationForm) (*entities.Registration, error) {
	hackathon, err := s.hackathonRepo.FindByID(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing, err := s.registrationRepo.FindByUserAndHackathon(ctx, userID, hackathonID); err == nil && existing != nil {
		return nil, domain.ErrAlreadyRegistered
	} else if err != nil && !errors.Is(err, domain.ErrRegistrationNotFound) {
		return nil, fmt.Errorf("check existing registration: %w", err)
	}
	now := time.Now()
	if !hackathon.RegistrationOpenAt(now) {
		return nil, domain.ErrRegistrationClosed
	}

	status := domain.StatusPending
	if s.capacityMode == CapacityStrict && hackathon.IsFull() {
		status = domain.StatusWaitlisted
	}

	registration := &entities.Registration{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		HackathonID:  hackathon.ID,
		FullName:     form.FullName,
		Mobile:       form.Mobile,
		College:      form.College,
		Education:    form.Education,
		Field:        form.Field,
		TeamName:     form.TeamName,
		TeamSize:     form.TeamSize,
		Status:       status,
		RegisteredAt: now,
	}
	if err := s.registrationRepo.Register(ctx, registration); err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.RegistrationReceived(ctx, user, hackathon, registration)
	}
	return registration, nil
}

// Withdraw removes the user's registration and reverses the membership
// update.
func (s *RegistrationService) Withdraw(ctx context.Context, userID, hackathonID string) error {
	registration, err := s.registrationRepo.FindByUserAndHackathon(ctx, userID, hackathonID)
	if err != nil {
		if errors.Is(err, domain.ErrRegistrationNotFound) {
			return domain.ErrNotRegistered
		}
		return err
	}
	return s.registrationRepo.Unregister(ctx, registration)
}

func (s *RegistrationService) ApproveRegistration(ctx context.Context, registrationID string) error {
	registration, err := s.registrationRepo.FindByID(ctx, registrationID)
	if err != nil {
		return err
	}
	if registration.Status == domain.StatusApproved {
		return nil
	}
	if registration.Status == domain.StatusWaitlisted && s.capacityMode == CapacityStrict {
		hackathon, err := s.hackathonRepo.FindByID(ctx, registration.HackathonID)
		if err != nil {
			return err
		}
		if hackathon.IsFull() {
			return domain.ErrHackathonFull
		}
	}
	return s.registrationRepo.UpdateStatus(ctx, registrationID, domain.StatusApproved)
}

func (s *RegistrationService) RejectRegistration(ctx context.Context, registrationID string) error {
	if _, err := s.registrationRepo.FindByID(ctx, registrationID); err != nil {
		return err
	}
	return s.registrationRepo.UpdateStatus(ctx, registrationID, domain.StatusRejected)
}

// PromoteNextWaitlisted confirms the oldest waitlisted registration. When the
// hackathon is still full, the capacity is raised by one so the promoted
// participant fits.
func (s *RegistrationService) PromoteNextWaitlisted(ctx context.Context, hackathonID string) (*entities.Registration, error) {
	waitlisted, err := s.registrationRepo.FindByHackathonAndStatus(ctx, hackathonID, domain.StatusWaitlisted)
	if err != nil {
		return nil, fmt.Errorf("find waitlisted: %w", err)
	}
	if len(waitlisted) == 0 {
		return nil, domain.ErrNoWaitlisted
	}
	oldest := waitlisted[0]
	for _, reg := range waitlisted[1:] {
		if reg.RegisteredAt.Before(oldest.RegisteredAt) {
			oldest = reg
		}
	}
	hackathon, err := s.hackathonRepo.FindByID(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	if hackathon.IsFull() {
		hackathon.MaxParticipants = hackathon.ParticipantCount + 1
		if err := s.hackathonRepo.Update(ctx, hackathon); err != nil {
			return nil, fmt.Errorf("raise capacity: %w", err)
		}
	}
	if err := s.registrationRepo.UpdateStatus(ctx, oldest.ID, domain.StatusApproved); err != nil {
		return nil, err
	}
	oldest.Status = domain.StatusApproved
	return &oldest, nil
}

func (s *RegistrationService) GetUserRegistrations(ctx context.Context, userID string) ([]entities.Registration, error) {
	return s.registrationRepo.FindByUserID(ctx, userID)
}

func (s *RegistrationService) IsUserRegistered(ctx context.Context, userID, hackathonID string) (bool, error) {
	_, err := s.registrationRepo.FindByUserAndHackathon(ctx, userID, hackathonID)
	if err != nil {
		if errors.Is(err, domain.ErrRegistrationNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
