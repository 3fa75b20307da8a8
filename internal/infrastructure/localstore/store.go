// Package localstore is the local variant of the record store: canonical
// collections held in memory, persisted as whole-collection JSON snapshots
// under fixed keys in a Badger key-value database. Every successful mutation
// rewrites the affected snapshot and republishes it on the bus.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"hackx/internal/domain/entities"
	"hackx/internal/pubsub"
)

const (
	keyUsers         = "users"
	keyHackathons    = "hackathons"
	keyRegistrations = "registrations"
	keySession       = "session"
)

// Store owns the canonical collections. All repository interfaces of the
// ports/output package are implemented on this one type so that compound
// mutations (registration, cascade delete) happen under a single lock.
type Store struct {
	db  *badger.DB
	bus *pubsub.Bus

	mu            sync.RWMutex
	users         []entities.User
	hackathons    []entities.Hackathon
	registrations []entities.Registration
}

// Open opens (or creates) the store at dir and loads the persisted
// collections. bus may be nil when reactivity is not needed (tests).
func Open(dir string, bus *pubsub.Bus) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	s := &Store{db: db, bus: bus}
	if err := s.load(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Users returns the UserRepository view of the store.
func (s *Store) Users() *UserStore { return &UserStore{s} }

// Hackathons returns the HackathonRepository view of the store.
func (s *Store) Hackathons() *HackathonStore { return &HackathonStore{s} }

// Registrations returns the RegistrationRepository view of the store.
func (s *Store) Registrations() *RegistrationStore { return &RegistrationStore{s} }

func (s *Store) load() error {
	if err := s.loadKey(keyUsers, &s.users); err != nil {
		return err
	}
	if err := s.loadKey(keyHackathons, &s.hackathons); err != nil {
		return err
	}
	return s.loadKey(keyRegistrations, &s.registrations)
}

func (s *Store) loadKey(key string, dest any) error {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	return nil
}

// persist serializes the collection and overwrites the snapshot for key.
// Called with s.mu held.
func (s *Store) persist(key string, collection any) error {
	data, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

func (s *Store) publish(topic pubsub.Topic, snapshot any) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(topic, pubsub.NewEvent(topic, snapshot))
}
