package localstore

import (
	"context"
	"time"

	"hackx/internal/domain"
	"hackx/internal/domain/entities"
	"hackx/internal/ports/output"
	"hackx/internal/pubsub"
)

var _ output.HackathonRepository = (*HackathonStore)(nil)

// HackathonStore is the HackathonRepository view over the shared store.
type HackathonStore struct {
	s *Store
}

func (r *HackathonStore) Create(ctx context.Context, hackathon *entities.Hackathon) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	hackathon.CreatedAt = now
	hackathon.UpdatedAt = now
	next := append(cloneHackathons(s.hackathons), cloneHackathon(*hackathon))
	if err := s.persist(keyHackathons, next); err != nil {
		return err
	}
	s.hackathons = next
	s.publish(pubsub.TopicHackathonsChanged, cloneHackathons(s.hackathons))
	return nil
}

func (r *HackathonStore) FindByID(ctx context.Context, id string) (*entities.Hackathon, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findHackathonLocked(id)
}

// findHackathonLocked returns a copy of the hackathon. Caller holds s.mu.
func (s *Store) findHackathonLocked(id string) (*entities.Hackathon, error) {
	for i := range s.hackathons {
		if s.hackathons[i].ID == id {
			h := cloneHackathon(s.hackathons[i])
			return &h, nil
		}
	}
	return nil, domain.ErrHackathonNotFound
}

func (r *HackathonStore) All(ctx context.Context) ([]entities.Hackathon, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneHackathons(s.hackathons), nil
}

func (r *HackathonStore) FindByStatus(ctx context.Context, status string) ([]entities.Hackathon, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Hackathon, 0)
	for i := range s.hackathons {
		if s.hackathons[i].Status == status {
			out = append(out, cloneHackathon(s.hackathons[i]))
		}
	}
	return out, nil
}

func (r *HackathonStore) Update(ctx context.Context, hackathon *entities.Hackathon) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateHackathonLocked(hackathon)
}

// updateHackathonLocked replaces the stored hackathon in place. Caller holds s.mu.
func (s *Store) updateHackathonLocked(hackathon *entities.Hackathon) error {
	idx := -1
	for i := range s.hackathons {
		if s.hackathons[i].ID == hackathon.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrHackathonNotFound
	}
	hackathon.UpdatedAt = time.Now()
	next := cloneHackathons(s.hackathons)
	next[idx] = cloneHackathon(*hackathon)
	if err := s.persist(keyHackathons, next); err != nil {
		return err
	}
	s.hackathons = next
	s.publish(pubsub.TopicHackathonsChanged, cloneHackathons(s.hackathons))
	return nil
}

// Delete removes the hackathon and cascades deletion of its registrations.
// The user registered-lists referencing the hackathon are pruned as part of
// the same locked mutation, so no orphan reference survives.
func (r *HackathonStore) Delete(ctx context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.hackathons {
		if s.hackathons[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrHackathonNotFound
	}
	nextHackathons := make([]entities.Hackathon, 0, len(s.hackathons)-1)
	for i := range s.hackathons {
		if i != idx {
			nextHackathons = append(nextHackathons, cloneHackathon(s.hackathons[i]))
		}
	}
	nextRegistrations := make([]entities.Registration, 0, len(s.registrations))
	for i := range s.registrations {
		if s.registrations[i].HackathonID != id {
			nextRegistrations = append(nextRegistrations, s.registrations[i])
		}
	}
	nextUsers := cloneUsers(s.users)
	for i := range nextUsers {
		nextUsers[i].RegisteredHackathonIDs = removeString(nextUsers[i].RegisteredHackathonIDs, id)
	}
	if err := s.persist(keyHackathons, nextHackathons); err != nil {
		return err
	}
	if err := s.persist(keyRegistrations, nextRegistrations); err != nil {
		return err
	}
	if err := s.persist(keyUsers, nextUsers); err != nil {
		return err
	}
	s.hackathons = nextHackathons
	s.registrations = nextRegistrations
	s.users = nextUsers
	s.publish(pubsub.TopicHackathonsChanged, cloneHackathons(s.hackathons))
	s.publish(pubsub.TopicRegistrationsChanged, append([]entities.Registration(nil), s.registrations...))
	s.publish(pubsub.TopicUsersChanged, cloneUsers(s.users))
	return nil
}

func cloneHackathon(h entities.Hackathon) entities.Hackathon {
	h.RegisteredUserIDs = append([]string(nil), h.RegisteredUserIDs...)
	return h
}

func cloneHackathons(hackathons []entities.Hackathon) []entities.Hackathon {
	out := make([]entities.Hackathon, len(hackathons))
	for i := range hackathons {
		out[i] = cloneHackathon(hackathons[i])
	}
	return out
}

func removeString(list []string, value string) []string {
	out := list[:0]
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}
