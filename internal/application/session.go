package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"hackx/internal/domain"
	"hackx/internal/domain/entities"
	"hackx/internal/ports/input"
	"hackx/internal/ports/output"
	"hackx/internal/pubsub"
)

var _ input.SessionUseCase = (*SessionService)(nil)

// SessionService tracks the currently authenticated user. It is an
// explicitly constructed instance (not ambient global state); the current
// user id is persisted through the SessionStore so a session survives a
// restart.
type SessionService struct {
	userRepo    output.UserRepository
	sessions    output.SessionStore // optional
	bus         *pubsub.Bus         // optional
	adminEmails map[string]struct{}

	mu      sync.RWMutex
	current *entities.User
}

func NewSessionService(
	userRepo output.UserRepository,
	sessions output.SessionStore,
	bus *pubsub.Bus,
	adminEmails []string,
) *SessionService {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
	}
	s := &SessionService{
		userRepo:    userRepo,
		sessions:    sessions,
		bus:         bus,
		adminEmails: admins,
	}
	s.rehydrate()
	return s
}

// rehydrate restores the persisted session, if any. A stale user id (user
// deleted since) clears the stored session instead of failing startup.
func (s *SessionService) rehydrate() {
	if s.sessions == nil {
		return
	}
	ctx := context.Background()
	userID, err := s.sessions.LoadCurrentUser(ctx)
	if err != nil {
		slog.Warn("session rehydrate failed", "error", err)
		return
	}
	if userID == "" {
		return
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = s.sessions.ClearCurrentUser(ctx)
		}
		return
	}
	s.current = user
}

// SignUp creates an account with a bcrypt-hashed password and logs it in.
func (s *SessionService) SignUp(ctx context.Context, name, email, password string) (*entities.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &entities.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if _, ok := s.adminEmails[strings.ToLower(email)]; ok {
		user.IsAdmin = true
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.setCurrent(ctx, user)
	return user, nil
}

// Login authenticates by email and password. Wrong email and wrong password
// both map to ErrInvalidCredentials; backend failures keep their own error so
// callers can tell an unreachable store from a bad credential.
func (s *SessionService) Login(ctx context.Context, email, password string) (*entities.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	s.setCurrent(ctx, user)
	return user, nil
}

func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	if s.sessions != nil {
		if err := s.sessions.ClearCurrentUser(ctx); err != nil {
			return err
		}
	}
	s.publishSession(nil)
	return nil
}

func (s *SessionService) CurrentUser(ctx context.Context) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, domain.ErrNotLoggedIn
	}
	u := *s.current
	return &u, nil
}

// IsAdmin reports whether the email belongs to the configured allow-list or
// to a stored user carrying the admin flag.
func (s *SessionService) IsAdmin(ctx context.Context, email string) bool {
	if _, ok := s.adminEmails[strings.ToLower(strings.TrimSpace(email))]; ok {
		return true
	}
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return false
	}
	return user.IsAdmin
}

func (s *SessionService) setCurrent(ctx context.Context, user *entities.User) {
	s.mu.Lock()
	s.current = user
	s.mu.Unlock()
	if s.sessions != nil {
		if err := s.sessions.SaveCurrentUser(ctx, user.ID); err != nil {
			slog.Warn("session persist failed", "user", user.ID, "error", err)
		}
	}
	s.publishSession(user)
}

func (s *SessionService) publishSession(user *entities.User) {
	if s.bus == nil {
		return
	}
	var snapshot *entities.User
	if user != nil {
		u := *user
		snapshot = &u
	}
	s.bus.Publish(pubsub.TopicSessionChanged, pubsub.NewEvent(pubsub.TopicSessionChanged, snapshot))
}
