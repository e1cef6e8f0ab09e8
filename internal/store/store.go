// Package store persists all application state in a Badger database: the
// account directory, the current session pointer, per-identity library data,
// and the time-boxed search cache.
package store

import (
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/buchshelf/buchshelf-server/internal/domain"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// now is replaceable in tests to exercise cache expiry.
	now func() time.Time

	// Accounts is the local identity directory with unique email and
	// username constraints.
	Accounts *Entity[domain.Account]
}

// New creates a new Store instance at the given database path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Sync writes to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	store := &Store{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
	store.initAccounts()

	logger.Info("Badger database opened successfully", "path", path)

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	s.logger.Info("Closing database connection")
	return s.db.Close()
}

// initAccounts initializes the Accounts entity with case-insensitive email
// and username uniqueness.
func (s *Store) initAccounts() {
	s.Accounts = NewEntity[domain.Account](s, "account:").
		WithIndexTransform("email",
			func(a *domain.Account) []string {
				return []string{normalizeIdentifier(a.Email)}
			},
			normalizeIdentifier,
		).
		WithIndexTransform("username",
			func(a *domain.Account) []string {
				return []string{normalizeIdentifier(a.Username)}
			},
			normalizeIdentifier,
		)
}

// normalizeIdentifier lowercases and trims an email or username for index
// keying, so lookups are case-insensitive.
func normalizeIdentifier(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// Helper methods for database operations.

// get retrieves a value by key. Returns ErrNotFound when the key is absent.
func (s *Store) get(key []byte, dest any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
}

// set stores a value by key.
func (s *Store) set(key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// delete removes a key from the database.
func (s *Store) delete(key []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}
