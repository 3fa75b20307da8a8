package localstore

import (
	"context"
	"time"

	"hackx/internal/domain"
	"hackx/internal/domain/entities"
	"hackx/internal/ports/output"
	"hackx/internal/pubsub"
)

var _ output.RegistrationRepository = (*RegistrationStore)(nil)

// RegistrationStore is the RegistrationRepository view over the shared store.
// Compound mutations run under the store lock, so the registration row, the
// hackathon counters and the user registered-list always move together.
type RegistrationStore struct {
	s *Store
}

func (r *RegistrationStore) Register(ctx context.Context, registration *entities.Registration) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.registrations {
		if s.registrations[i].UserID == registration.UserID &&
			s.registrations[i].HackathonID == registration.HackathonID {
			return domain.ErrAlreadyRegistered
		}
	}
	hackathon, err := s.findHackathonLocked(registration.HackathonID)
	if err != nil {
		return err
	}
	var user *entities.User
	for i := range s.users {
		if s.users[i].ID == registration.UserID {
			u := cloneUser(s.users[i])
			user = &u
			break
		}
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	now := time.Now()
	registration.CreatedAt = now
	registration.UpdatedAt = now
	if registration.RegisteredAt.IsZero() {
		registration.RegisteredAt = now
	}
	nextRegs := append(append([]entities.Registration(nil), s.registrations...), *registration)
	if err := s.persist(keyRegistrations, nextRegs); err != nil {
		return err
	}
	s.registrations = nextRegs
	s.publish(pubsub.TopicRegistrationsChanged, append([]entities.Registration(nil), s.registrations...))

	if domain.CountsTowardCapacity(registration.Status) {
		hackathon.ParticipantCount++
	}
	if !hackathon.HasRegisteredUser(user.ID) {
		hackathon.RegisteredUserIDs = append(hackathon.RegisteredUserIDs, user.ID)
	}
	if err := s.updateHackathonLocked(hackathon); err != nil {
		return err
	}
	if !user.IsRegisteredFor(hackathon.ID) {
		user.RegisteredHackathonIDs = append(user.RegisteredHackathonIDs, hackathon.ID)
		if err := s.updateUserLocked(user); err != nil {
			return err
		}
	}
	return nil
}

func (r *RegistrationStore) Unregister(ctx context.Context, registration *entities.Registration) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.registrations {
		if s.registrations[i].ID == registration.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrRegistrationNotFound
	}
	removed := s.registrations[idx]
	nextRegs := make([]entities.Registration, 0, len(s.registrations)-1)
	for i := range s.registrations {
		if i != idx {
			nextRegs = append(nextRegs, s.registrations[i])
		}
	}
	if err := s.persist(keyRegistrations, nextRegs); err != nil {
		return err
	}
	s.registrations = nextRegs
	s.publish(pubsub.TopicRegistrationsChanged, append([]entities.Registration(nil), s.registrations...))

	if hackathon, err := s.findHackathonLocked(removed.HackathonID); err == nil {
		if domain.CountsTowardCapacity(removed.Status) && hackathon.ParticipantCount > 0 {
			hackathon.ParticipantCount--
		}
		hackathon.RegisteredUserIDs = removeString(hackathon.RegisteredUserIDs, removed.UserID)
		if err := s.updateHackathonLocked(hackathon); err != nil {
			return err
		}
	}
	for i := range s.users {
		if s.users[i].ID == removed.UserID {
			user := cloneUser(s.users[i])
			user.RegisteredHackathonIDs = removeString(user.RegisteredHackathonIDs, removed.HackathonID)
			if err := s.updateUserLocked(&user); err != nil {
				return err
			}
			break
		}
	}
	return nil
}

func (r *RegistrationStore) FindByID(ctx context.Context, id string) (*entities.Registration, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.registrations {
		if s.registrations[i].ID == id {
			reg := s.registrations[i]
			return &reg, nil
		}
	}
	return nil, domain.ErrRegistrationNotFound
}

func (r *RegistrationStore) FindByUserID(ctx context.Context, userID string) ([]entities.Registration, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Registration, 0)
	for i := range s.registrations {
		if s.registrations[i].UserID == userID {
			out = append(out, s.registrations[i])
		}
	}
	return out, nil
}

func (r *RegistrationStore) FindByHackathonID(ctx context.Context, hackathonID string) ([]entities.Registration, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Registration, 0)
	for i := range s.registrations {
		if s.registrations[i].HackathonID == hackathonID {
			out = append(out, s.registrations[i])
		}
	}
	return out, nil
}

func (r *RegistrationStore) FindByUserAndHackathon(ctx context.Context, userID, hackathonID string) (*entities.Registration, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.registrations {
		if s.registrations[i].UserID == userID && s.registrations[i].HackathonID == hackathonID {
			reg := s.registrations[i]
			return &reg, nil
		}
	}
	return nil, domain.ErrRegistrationNotFound
}

func (r *RegistrationStore) FindByHackathonAndStatus(ctx context.Context, hackathonID, status string) ([]entities.Registration, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Registration, 0)
	for i := range s.registrations {
		if s.registrations[i].HackathonID == hackathonID && s.registrations[i].Status == status {
			out = append(out, s.registrations[i])
		}
	}
	return out, nil
}

func (r *RegistrationStore) CountByHackathonAndStatus(ctx context.Context, hackathonID, status string) (int64, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for i := range s.registrations {
		if s.registrations[i].HackathonID == hackathonID && s.registrations[i].Status == status {
			count++
		}
	}
	return count, nil
}

func (r *RegistrationStore) UpdateStatus(ctx context.Context, id, status string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.registrations {
		if s.registrations[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrRegistrationNotFound
	}
	prev := s.registrations[idx]
	if prev.Status == status {
		return nil
	}
	next := append([]entities.Registration(nil), s.registrations...)
	next[idx].Status = status
	next[idx].UpdatedAt = time.Now()
	if err := s.persist(keyRegistrations, next); err != nil {
		return err
	}
	s.registrations = next
	s.publish(pubsub.TopicRegistrationsChanged, append([]entities.Registration(nil), s.registrations...))

	delta := 0
	if domain.CountsTowardCapacity(status) && !domain.CountsTowardCapacity(prev.Status) {
		delta = 1
	} else if !domain.CountsTowardCapacity(status) && domain.CountsTowardCapacity(prev.Status) {
		delta = -1
	}
	if delta != 0 {
		if hackathon, err := s.findHackathonLocked(prev.HackathonID); err == nil {
			hackathon.ParticipantCount += delta
			if hackathon.ParticipantCount < 0 {
				hackathon.ParticipantCount = 0
			}
			if err := s.updateHackathonLocked(hackathon); err != nil {
				return err
			}
		}
	}
	return nil
}
