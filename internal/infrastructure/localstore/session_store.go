package localstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"hackx/internal/ports/output"
)

var _ output.SessionStore = (*Store)(nil)

// SaveCurrentUser persists the current user id so the session survives a
// process restart.
func (s *Store) SaveCurrentUser(ctx context.Context, userID string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keySession), []byte(userID))
	})
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// LoadCurrentUser returns the persisted user id, or "" when none is stored.
func (s *Store) LoadCurrentUser(ctx context.Context) (string, error) {
	var userID string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keySession))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			userID = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	return userID, nil
}

func (s *Store) ClearCurrentUser(ctx context.Context) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keySession))
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
