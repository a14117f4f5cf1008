package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyOptions = "options"
	keyTotals  = "totals"
)

// EngineOptions stores the UCI options that survive restarts.
type EngineOptions struct {
	HashMB   int       `json:"hash_mb"`
	LastUsed time.Time `json:"last_used"`
}

// DefaultOptions returns the options used when nothing has been saved.
func DefaultOptions() EngineOptions {
	return EngineOptions{HashMB: 64}
}

// SearchTotals accumulates lifetime search statistics across sessions.
type SearchTotals struct {
	Searches uint64 `json:"searches"`
	Nodes    uint64 `json:"nodes"`
}

// Store wraps BadgerDB for persistent engine state.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the database in dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Badger's own chatter would corrupt the UCI stream

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenDefault opens the database in the platform data directory.
func OpenDefault() (*Store, error) {
	dir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dir)
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveOptions saves the engine options.
func (s *Store) SaveOptions(opts EngineOptions) error {
	opts.LastUsed = time.Now()

	data, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyOptions), data)
	})
}

// LoadOptions loads the engine options, returning defaults when nothing
// has been saved yet.
func (s *Store) LoadOptions() (EngineOptions, error) {
	opts := DefaultOptions()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyOptions))
		if err == badger.ErrKeyNotFound {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &opts)
		})
	})

	return opts, err
}

// LoadTotals loads the lifetime totals, zero when nothing has been saved.
func (s *Store) LoadTotals() (SearchTotals, error) {
	var totals SearchTotals

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyTotals))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &totals)
		})
	})

	return totals, err
}

// AddTotals folds one session's counts into the lifetime totals.
func (s *Store) AddTotals(searches, nodes uint64) error {
	totals, err := s.LoadTotals()
	if err != nil {
		return err
	}

	totals.Searches += searches
	totals.Nodes += nodes

	data, err := json.Marshal(totals)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyTotals), data)
	})
}
