package localstore

import (
	"context"
	"strings"
	"time"

	"hackx/internal/domain"
	"hackx/internal/domain/entities"
	"hackx/internal/ports/output"
	"hackx/internal/pubsub"
)

var _ output.UserRepository = (*UserStore)(nil)

// UserStore is the UserRepository view over the shared store.
type UserStore struct {
	s *Store
}

func (r *UserStore) Create(ctx context.Context, user *entities.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if strings.EqualFold(s.users[i].Email, user.Email) {
			return domain.ErrDuplicateEmail
		}
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	next := append(cloneUsers(s.users), cloneUser(*user))
	if err := s.persist(keyUsers, next); err != nil {
		return err
	}
	s.users = next
	s.publish(pubsub.TopicUsersChanged, cloneUsers(s.users))
	return nil
}

func (r *UserStore) FindByID(ctx context.Context, id string) (*entities.User, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].ID == id {
			u := cloneUser(s.users[i])
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserStore) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if strings.EqualFold(s.users[i].Email, email) {
			u := cloneUser(s.users[i])
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserStore) All(ctx context.Context) ([]entities.User, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUsers(s.users), nil
}

func (r *UserStore) Update(ctx context.Context, user *entities.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateUserLocked(user)
}

// updateUserLocked replaces the stored user in place. Caller holds s.mu.
func (s *Store) updateUserLocked(user *entities.User) error {
	idx := -1
	for i := range s.users {
		if s.users[i].ID == user.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrUserNotFound
	}
	user.UpdatedAt = time.Now()
	next := cloneUsers(s.users)
	next[idx] = cloneUser(*user)
	if err := s.persist(keyUsers, next); err != nil {
		return err
	}
	s.users = next
	s.publish(pubsub.TopicUsersChanged, cloneUsers(s.users))
	return nil
}

func (r *UserStore) Delete(ctx context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]entities.User, 0, len(s.users))
	found := false
	for i := range s.users {
		if s.users[i].ID == id {
			found = true
			continue
		}
		next = append(next, cloneUser(s.users[i]))
	}
	if !found {
		return domain.ErrUserNotFound
	}
	if err := s.persist(keyUsers, next); err != nil {
		return err
	}
	s.users = next
	s.publish(pubsub.TopicUsersChanged, cloneUsers(s.users))
	return nil
}

func cloneUser(u entities.User) entities.User {
	u.RegisteredHackathonIDs = append([]string(nil), u.RegisteredHackathonIDs...)
	return u
}

func cloneUsers(users []entities.User) []entities.User {
	out := make([]entities.User, len(users))
	for i := range users {
		out[i] = cloneUser(users[i])
	}
	return out
}
