package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hackx/internal/application"
	"hackx/internal/domain"
	"hackx/internal/domain/entities"
	"hackx/internal/infrastructure/localstore"
	"hackx/internal/ports/input"
)

type fixture struct {
	store *localstore.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := localstore.Open(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return &fixture{store: store}
}

func (f *fixture) registrations(mode application.CapacityMode) *application.RegistrationService {
	return application.NewRegistrationService(
		f.store.Registrations(),
		f.store.Hackathons(),
		f.store.Users(),
		nil,
		mode,
	)
}

func (f *fixture) seedUser(t *testing.T, id, email string) *entities.User {
	t.Helper()
	user := &entities.User{ID: id, Name: "User " + id, Email: email}
	require.NoError(t, f.store.Users().Create(context.Background(), user))
	return user
}

func (f *fixture) seedHackathon(t *testing.T, id string, capacity int) *entities.Hackathon {
	t.Helper()
	h := &entities.Hackathon{
		ID:              id,
		Title:           "Hack " + id,
		StartsAt:        time.Now().Add(48 * time.Hour),
		EndsAt:          time.Now().Add(96 * time.Hour),
		MaxParticipants: capacity,
		Status:          domain.HackathonUpcoming,
	}
	require.NoError(t, f.store.Hackathons().Create(context.Background(), h))
	return h
}

func sampleForm() input.RegistrationForm {
	return input.RegistrationForm{
		FullName:  "Sample Person",
		Mobile:    "9876543210",
		College:   "Sample Institute",
		Education: "B.Tech",
		Field:     "CSE",
		TeamName:  "Binary Bandits",
		TeamSize:  3,
	}
}

func TestRegisterAssignsPendingStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "u1", "u1@example.com")
	f.seedHackathon(t, "h1", 10)

	svc := f.registrations(application.CapacityStrict)
	reg, err := svc.Register(ctx, "u1", "h1", sampleForm())
	require.NoError(t, err)
	require.NotEmpty(t, reg.ID)
	require.Equal(t, domain.StatusPending, reg.Status)

	ok, err := svc.IsUserRegistered(ctx, "u1", "h1")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRegisterTwiceFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "u1", "u1@example.com")
	f.seedHackathon(t, "h1", 10)

	svc := f.registrations(application.CapacityStrict)
	_, err := svc.Register(ctx, "u1", "h1", sampleForm())
	require.NoError(t, err)

	_, err = svc.Register(ctx, "u1", "h1", sampleForm())
	require.ErrorIs(t, err, domain.ErrAlreadyRegistered)
}

func TestRegisterUnknownHackathon(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "u1", "u1@example.com")

	svc := f.registrations(application.CapacityStrict)
	_, err := svc.Register(ctx, "u1", "missing", sampleForm())
	require.ErrorIs(t, err, domain.ErrHackathonNotFound)
}

func TestRegisterAfterDeadline(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "u1", "u1@example.com")

	h := &entities.Hackathon{
		ID:                   "h1",
		Title:                "Closed Hack",
		StartsAt:             time.Now().Add(48 * time.Hour),
		EndsAt:               time.Now().Add(96 * time.Hour),
		RegistrationDeadline: time.Now().Add(-1 * time.Hour),
		Status:               domain.HackathonUpcoming,
	}
	require.NoError(t, f.store.Hackathons().Create(ctx, h))

	svc := f.registrations(application.CapacityStrict)
	_, err := svc.Register(ctx, "u1", "h1", sampleForm())
	require.ErrorIs(t, err, domain.ErrRegistrationClosed)
}

func TestStrictCapacityWaitlistsWhenFull(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "u1", "u1@example.com")
	f.seedUser(t, "u2", "u2@example.com")
	f.seedHackathon(t, "h1", 1)

	svc := f.registrations(application.CapacityStrict)

	first, err := svc.Register(ctx, "u1", "h1", sampleForm())
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, first.Status)

	second, err := svc.Register(ctx, "u2", "h1", sampleForm())
	require.NoError(t, err)
	require.Equal(t, domain.StatusWaitlisted, second.Status)

	hackathon, err := f.store.Hackathons().FindByID(ctx, "h1")
	require.NoError(t, err)
	require.Equal(t, 1, hackathon.ParticipantCount)
}

func TestLenientCapacityAllowsOverflow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "u1", "u1@example.com")
	f.seedUser(t, "u2", "u2@example.com")
	f.seedHackathon(t, "h1", 1)

	svc := f.registrations(application.CapacityLenient)

	_, err := svc.Register(ctx, "u1", "h1", sampleForm())
	require.NoError(t, err)

	second, err := svc.Register(ctx, "u2", "h1", sampleForm())
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, second.Status)

	hackathon, err := f.store.Hackathons().FindByID(ctx, "h1")
	require.NoError(t, err)
	require.Equal(t, 2, hackathon.ParticipantCount)
}

func TestWithdrawRemovesRegistration(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "u1", "u1@example.com")
	f.seedHackathon(t, "h1", 10)

	svc := f.registrations(application.CapacityStrict)
	_, err := svc.Register(ctx, "u1", "h1", sampleForm())
	require.NoError(t, err)

	require.NoError(t, svc.Withdraw(ctx, "u1", "h1"))

	ok, err := svc.IsUserRegistered(ctx, "u1", "h1")
	require.NoError(t, err)
	require.False(t, ok)

	// Withdrawing again reports the user was never registered.
	err = svc.Withdraw(ctx, "u1", "h1")
	require.ErrorIs(t, err, domain.ErrNotRegistered)
}

func TestApproveWaitlistedBlockedWhileFull(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "u1", "u1@example.com")
	f.seedUser(t, "u2", "u2@example.com")
	f.seedHackathon(t, "h1", 1)

	svc := f.registrations(application.CapacityStrict)
	_, err := svc.Register(ctx, "u1", "h1", sampleForm())
	require.NoError(t, err)
	waitlisted, err := svc.Register(ctx, "u2", "h1", sampleForm())
	require.NoError(t, err)
	require.Equal(t, domain.StatusWaitlisted, waitlisted.Status)

	err = svc.ApproveRegistration(ctx, waitlisted.ID)
	require.ErrorIs(t, err, domain.ErrHackathonFull)

	// Freeing the slot lets the approval through.
	require.NoError(t, svc.Withdraw(ctx, "u1", "h1"))
	require.NoError(t, svc.ApproveRegistration(ctx, waitlisted.ID))

	regs, err := f.store.Registrations().FindByHackathonAndStatus(ctx, "h1", domain.StatusApproved)
	require.NoError(t, err)
	require.Len(t, regs, 1)
}

func TestPromoteNextWaitlistedTakesOldest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "u1", "u1@example.com")
	f.seedUser(t, "u2", "u2@example.com")
	f.seedUser(t, "u3", "u3@example.com")
	f.seedHackathon(t, "h1", 1)

	svc := f.registrations(application.CapacityStrict)
	_, err := svc.Register(ctx, "u1", "h1", sampleForm())
	require.NoError(t, err)
	olderWaitlisted, err := svc.Register(ctx, "u2", "h1", sampleForm())
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = svc.Register(ctx, "u3", "h1", sampleForm())
	require.NoError(t, err)

	promoted, err := svc.PromoteNextWaitlisted(ctx, "h1")
	require.NoError(t, err)
	require.Equal(t, olderWaitlisted.ID, promoted.ID)
	require.Equal(t, domain.StatusApproved, promoted.Status)

	// The hackathon capacity was raised so the promoted participant fits.
	hackathon, err := f.store.Hackathons().FindByID(ctx, "h1")
	require.NoError(t, err)
	require.Equal(t, 2, hackathon.MaxParticipants)
	require.Equal(t, 2, hackathon.ParticipantCount)
}

func TestPromoteWithEmptyWaitlist(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedHackathon(t, "h1", 5)

	svc := f.registrations(application.CapacityStrict)
	_, err := svc.PromoteNextWaitlisted(ctx, "h1")
	require.ErrorIs(t, err, domain.ErrNoWaitlisted)
}

func TestRejectRegistration(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "u1", "u1@example.com")
	f.seedHackathon(t, "h1", 10)

	svc := f.registrations(application.CapacityStrict)
	reg, err := svc.Register(ctx, "u1", "h1", sampleForm())
	require.NoError(t, err)

	require.NoError(t, svc.RejectRegistration(ctx, reg.ID))

	hackathon, err := f.store.Hackathons().FindByID(ctx, "h1")
	require.NoError(t, err)
	require.Equal(t, 0, hackathon.ParticipantCount)

	err = svc.RejectRegistration(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrRegistrationNotFound)
}
