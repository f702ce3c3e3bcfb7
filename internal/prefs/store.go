// Package prefs is the local preference store: small, write-through
// key/value state that survives restarts. Backed by Badger.
package prefs

import (
	"errors"

	badger "github.com/dgraph-io/badger/v4"
)

// Well-known preference keys.
const (
	KeySearchQuery  = "last-search-query"
	KeyVerdict      = "last-verdict"
	KeySelectedMood = "selected-mood"
	KeyUserEmail    = "user-email"
	KeyDeviceToken  = "device-token"
	KeySessionToken = "session-token"
	KeyPendingVotes = "pending-verdicts"
	KeyJourney      = "personal-journey"
)

// Store is a thin wrapper over a Badger database. A missing key reads as
// the empty string; callers must treat "never set" and "cleared" the same.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the preference store at dir. An empty dir opens
// an in-memory store, used by tests and ephemeral sessions.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Get returns the stored value for key, or "" if absent.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			value = string(v)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", nil
	}
	return value, err
}

// Set writes value under key. Write-through; no batching.
func (s *Store) Set(key, value string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
}

// Clear removes key. Clearing an absent key is not an error.
func (s *Store) Clear(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
