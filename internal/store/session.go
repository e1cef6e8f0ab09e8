package store

import (
	"errors"

	"github.com/buchshelf/buchshelf-server/internal/domain"
)

// The application models a single local user at a time, so the session is
// one stored pointer rather than a token table.
var sessionKey = []byte("session:current")

// CurrentSession returns the active session pointer.
// Returns ErrNotFound when nobody is logged in.
func (s *Store) CurrentSession() (*domain.Session, error) {
	var session domain.Session
	if err := s.get(sessionKey, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// SetSession records the active session pointer, replacing any previous one.
func (s *Store) SetSession(session *domain.Session) error {
	return s.set(sessionKey, session)
}

// ClearSession removes the active session pointer. Idempotent.
func (s *Store) ClearSession() error {
	err := s.delete(sessionKey)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
