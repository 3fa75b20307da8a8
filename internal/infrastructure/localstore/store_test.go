package localstore_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hackx/internal/domain"
	"hackx/internal/domain/entities"
	"hackx/internal/infrastructure/localstore"
	"hackx/internal/pubsub"
)

func openStore(t *testing.T) *localstore.Store {
	t.Helper()
	store, err := localstore.Open(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testUser(email string) *entities.User {
	return &entities.User{
		ID:    "user-" + email,
		Name:  "Test User",
		Email: email,
	}
}

func testHackathon(id, title string) *entities.Hackathon {
	return &entities.Hackathon{
		ID:              id,
		Title:           title,
		StartsAt:        time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
		EndsAt:          time.Date(2024, 3, 17, 18, 0, 0, 0, time.UTC),
		Location:        "Bangalore",
		MaxParticipants: 100,
		Status:          domain.HackathonUpcoming,
	}
}

func TestDuplicateEmailRejected(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	users := store.Users()

	require.NoError(t, users.Create(ctx, testUser("alice@example.com")))

	dup := testUser("Alice@Example.com")
	dup.ID = "user-other"
	err := users.Create(ctx, dup)
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)

	all, err := users.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestUpdateAbsentHackathonDoesNotInsert(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	hackathons := store.Hackathons()

	err := hackathons.Update(ctx, testHackathon("missing", "Ghost"))
	require.ErrorIs(t, err, domain.ErrHackathonNotFound)

	all, err := hackathons.All(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestDeleteHackathonCascadesRegistrations(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	user := testUser("bob@example.com")
	require.NoError(t, store.Users().Create(ctx, user))
	require.NoError(t, store.Hackathons().Create(ctx, testHackathon("h1", "CodeFest")))
	require.NoError(t, store.Hackathons().Create(ctx, testHackathon("h2", "DataJam")))

	for _, hackathonID := range []string{"h1", "h2"} {
		reg := &entities.Registration{
			ID:          "reg-" + hackathonID,
			UserID:      user.ID,
			HackathonID: hackathonID,
			Status:      domain.StatusPending,
		}
		require.NoError(t, store.Registrations().Register(ctx, reg))
	}

	require.NoError(t, store.Hackathons().Delete(ctx, "h1"))

	// No orphan registration referencing h1 remains.
	remaining, err := store.Registrations().FindByHackathonID(ctx, "h1")
	require.NoError(t, err)
	require.Empty(t, remaining)

	others, err := store.Registrations().FindByHackathonID(ctx, "h2")
	require.NoError(t, err)
	require.Len(t, others, 1)

	// The user's registered list is pruned as well.
	reloaded, err := store.Users().FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"h2"}, reloaded.RegisteredHackathonIDs)
}

func TestRegisterTwiceIsRejected(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	user := testUser("carol@example.com")
	require.NoError(t, store.Users().Create(ctx, user))
	require.NoError(t, store.Hackathons().Create(ctx, testHackathon("h1", "CodeFest")))

	reg := &entities.Registration{
		ID:          "reg-1",
		UserID:      user.ID,
		HackathonID: "h1",
		Status:      domain.StatusPending,
	}
	require.NoError(t, store.Registrations().Register(ctx, reg))

	again := &entities.Registration{
		ID:          "reg-2",
		UserID:      user.ID,
		HackathonID: "h1",
		Status:      domain.StatusPending,
	}
	err := store.Registrations().Register(ctx, again)
	require.ErrorIs(t, err, domain.ErrAlreadyRegistered)

	// The registered list contains the hackathon id exactly once.
	reloaded, err := store.Users().FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"h1"}, reloaded.RegisteredHackathonIDs)

	hackathon, err := store.Hackathons().FindByID(ctx, "h1")
	require.NoError(t, err)
	require.Equal(t, 1, hackathon.ParticipantCount)
	require.Equal(t, []string{user.ID}, hackathon.RegisteredUserIDs)
}

func TestUnregisterReversesMembership(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	user := testUser("dave@example.com")
	require.NoError(t, store.Users().Create(ctx, user))
	require.NoError(t, store.Hackathons().Create(ctx, testHackathon("h1", "CodeFest")))

	reg := &entities.Registration{
		ID:          "reg-1",
		UserID:      user.ID,
		HackathonID: "h1",
		Status:      domain.StatusApproved,
	}
	require.NoError(t, store.Registrations().Register(ctx, reg))
	require.NoError(t, store.Registrations().Unregister(ctx, reg))

	hackathon, err := store.Hackathons().FindByID(ctx, "h1")
	require.NoError(t, err)
	require.Equal(t, 0, hackathon.ParticipantCount)
	require.Empty(t, hackathon.RegisteredUserIDs)

	reloaded, err := store.Users().FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, reloaded.RegisteredHackathonIDs)
}

func TestWaitlistedDoesNotCountTowardCapacity(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	user := testUser("erin@example.com")
	require.NoError(t, store.Users().Create(ctx, user))
	require.NoError(t, store.Hackathons().Create(ctx, testHackathon("h1", "CodeFest")))

	reg := &entities.Registration{
		ID:          "reg-1",
		UserID:      user.ID,
		HackathonID: "h1",
		Status:      domain.StatusWaitlisted,
	}
	require.NoError(t, store.Registrations().Register(ctx, reg))

	hackathon, err := store.Hackathons().FindByID(ctx, "h1")
	require.NoError(t, err)
	require.Equal(t, 0, hackathon.ParticipantCount)

	// Promotion to approved takes the slot.
	require.NoError(t, store.Registrations().UpdateStatus(ctx, "reg-1", domain.StatusApproved))
	hackathon, err = store.Hackathons().FindByID(ctx, "h1")
	require.NoError(t, err)
	require.Equal(t, 1, hackathon.ParticipantCount)
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := localstore.Open(dir, nil)
	require.NoError(t, err)

	user := testUser("frank@example.com")
	require.NoError(t, store.Users().Create(ctx, user))
	require.NoError(t, store.Hackathons().Create(ctx, testHackathon("h1", "X")))
	reg := &entities.Registration{
		ID:          "reg-1",
		UserID:      user.ID,
		HackathonID: "h1",
		FullName:    "Frank Tester",
		College:     "Test Institute",
		Status:      domain.StatusPending,
	}
	require.NoError(t, store.Registrations().Register(ctx, reg))

	beforeUsers, err := store.Users().All(ctx)
	require.NoError(t, err)
	beforeHackathons, err := store.Hackathons().All(ctx)
	require.NoError(t, err)
	beforeRegs, err := store.Registrations().FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopen: the reloaded collections reproduce the pre-restart snapshot.
	reopened, err := localstore.Open(dir, nil)
	require.NoError(t, err)
	defer reopened.Close()

	afterUsers, err := reopened.Users().All(ctx)
	require.NoError(t, err)
	afterHackathons, err := reopened.Hackathons().All(ctx)
	require.NoError(t, err)
	afterRegs, err := reopened.Registrations().FindByUserID(ctx, user.ID)
	require.NoError(t, err)

	requireSameJSON(t, beforeUsers, afterUsers)
	requireSameJSON(t, beforeHackathons, afterHackathons)
	requireSameJSON(t, beforeRegs, afterRegs)
}

// requireSameJSON compares through the serialized form: timestamps lose
// their monotonic reading on the disk round trip, so direct struct equality
// would be too strict.
func requireSameJSON(t *testing.T, want, got any) {
	t.Helper()
	wantJSON, err := json.Marshal(want)
	require.NoError(t, err)
	gotJSON, err := json.Marshal(got)
	require.NoError(t, err)
	require.JSONEq(t, string(wantJSON), string(gotJSON))
}

func TestCreateDeleteScenario(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	hackathons := store.Hackathons()

	h := testHackathon("x-id", "X")
	require.NoError(t, hackathons.Create(ctx, h))

	all, err := hackathons.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "X", all[0].Title)

	require.NoError(t, hackathons.Delete(ctx, "x-id"))

	all, err = hackathons.All(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestMutationsPublishSnapshots(t *testing.T) {
	ctx := context.Background()
	bus := pubsub.NewBus(nil)
	store, err := localstore.Open(t.TempDir(), bus)
	require.NoError(t, err)
	defer store.Close()

	_, ch := bus.Subscribe(pubsub.TopicHackathonsChanged)
	require.NoError(t, store.Hackathons().Create(ctx, testHackathon("h1", "CodeFest")))

	select {
	case evt := <-ch:
		snapshot, ok := evt.Data.([]entities.Hackathon)
		require.True(t, ok, "expected a hackathon collection snapshot, got %T", evt.Data)
		require.Len(t, snapshot, 1)
		require.Equal(t, "CodeFest", snapshot[0].Title)
	case <-time.After(1 * time.Second):
		t.Fatalf("timeout waiting for collection snapshot")
	}
}

func TestSessionPersistence(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := localstore.Open(dir, nil)
	require.NoError(t, err)
	require.NoError(t, store.SaveCurrentUser(ctx, "user-42"))
	require.NoError(t, store.Close())

	reopened, err := localstore.Open(dir, nil)
	require.NoError(t, err)
	defer reopened.Close()

	userID, err := reopened.LoadCurrentUser(ctx)
	require.NoError(t, err)
	require.Equal(t, "user-42", userID)

	require.NoError(t, reopened.ClearCurrentUser(ctx))
	userID, err = reopened.LoadCurrentUser(ctx)
	require.NoError(t, err)
	require.Empty(t, userID)
}
