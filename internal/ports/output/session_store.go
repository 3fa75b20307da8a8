package output

import "context"

// SessionStore persists the current user id across process restarts so a
// session can be re-hydrated on startup. Load returns "" when no session is
// stored.
type SessionStore interface {
	SaveCurrentUser(ctx context.Context, userID string) error
	LoadCurrentUser(ctx context.Context) (string, error)
	ClearCurrentUser(ctx context.Context) error
}
