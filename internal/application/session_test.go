package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"hackx/internal/application"
	"hackx/internal/domain"
	"hackx/internal/infrastructure/localstore"
)

func (f *fixture) sessions(adminEmails []string) *application.SessionService {
	return application.NewSessionService(f.store.Users(), f.store, nil, adminEmails)
}

func TestSignUpAndLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.sessions(nil)

	user, err := svc.SignUp(ctx, "Grace", "grace@example.com", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.NotEqual(t, "s3cret", user.PasswordHash)
	require.False(t, user.IsAdmin)

	current, err := svc.CurrentUser(ctx)
	require.NoError(t, err)
	require.Equal(t, user.ID, current.ID)

	require.NoError(t, svc.Logout(ctx))
	_, err = svc.CurrentUser(ctx)
	require.ErrorIs(t, err, domain.ErrNotLoggedIn)

	logged, err := svc.Login(ctx, "grace@example.com", "s3cret")
	require.NoError(t, err)
	require.Equal(t, user.ID, logged.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.sessions(nil)

	_, err := svc.SignUp(ctx, "Heidi", "heidi@example.com", "hunter2")
	require.NoError(t, err)

	// Wrong password and unknown email collapse to the same error.
	_, err = svc.Login(ctx, "heidi@example.com", "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "hunter2")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.sessions(nil)

	_, err := svc.SignUp(ctx, "Ivan", "ivan@example.com", "pw-one")
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, "Imposter", "Ivan@Example.com", "pw-two")
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestAdminAllowList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.sessions([]string{"Admin@Example.com"})

	admin, err := svc.SignUp(ctx, "Admin", "admin@example.com", "topsecret")
	require.NoError(t, err)
	require.True(t, admin.IsAdmin)

	_, err = svc.SignUp(ctx, "Pleb", "pleb@example.com", "pw")
	require.NoError(t, err)

	require.True(t, svc.IsAdmin(ctx, "admin@example.com"))
	require.True(t, svc.IsAdmin(ctx, " ADMIN@example.com "))
	require.False(t, svc.IsAdmin(ctx, "pleb@example.com"))
	require.False(t, svc.IsAdmin(ctx, "unknown@example.com"))
}

func TestSessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := localstore.Open(dir, nil)
	require.NoError(t, err)

	svc := application.NewSessionService(store.Users(), store, nil, nil)
	user, err := svc.SignUp(ctx, "Judy", "judy@example.com", "pw")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := localstore.Open(dir, nil)
	require.NoError(t, err)
	defer reopened.Close()

	restarted := application.NewSessionService(reopened.Users(), reopened, nil, nil)
	current, err := restarted.CurrentUser(ctx)
	require.NoError(t, err)
	require.Equal(t, user.ID, current.ID)
}
