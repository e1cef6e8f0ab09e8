package store

import (
	"errors"

	"github.com/buchshelf/buchshelf-server/internal/domain"
)

// Library data is keyed per identity: the guest sentinel or an account ID.
// A missing or unreadable record yields empty defaults rather than an error,
// so a damaged database degrades to a fresh library instead of locking the
// user out.

func libraryKey(identity string) []byte   { return []byte("library:" + identity) }
func favoritesKey(identity string) []byte { return []byte("favorites:" + identity) }
func goalsKey(identity string) []byte     { return []byte("goals:" + identity) }

// Library loads the shelf map for an identity.
func (s *Store) Library(identity string) (*domain.Library, error) {
	var lib domain.Library
	if err := s.get(libraryKey(identity), &lib); err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.NewLibrary(), nil
		}
		s.logger.Warn("discarding unreadable library record",
			"identity", identity,
			"error", err,
		)
		return domain.NewLibrary(), nil
	}
	lib.Normalize()
	return &lib, nil
}

// SaveLibrary writes the shelf map for an identity.
func (s *Store) SaveLibrary(identity string, lib *domain.Library) error {
	return s.set(libraryKey(identity), lib)
}

// Favorites loads the favorites list for an identity.
func (s *Store) Favorites(identity string) (domain.Favorites, error) {
	var favs domain.Favorites
	if err := s.get(favoritesKey(identity), &favs); err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.Favorites{}, nil
		}
		s.logger.Warn("discarding unreadable favorites record",
			"identity", identity,
			"error", err,
		)
		return domain.Favorites{}, nil
	}
	return favs, nil
}

// SaveFavorites writes the favorites list for an identity.
func (s *Store) SaveFavorites(identity string, favs domain.Favorites) error {
	return s.set(favoritesKey(identity), favs)
}

// Goals loads the year to goal mapping for an identity.
func (s *Store) Goals(identity string) (domain.Goals, error) {
	var goals domain.Goals
	if err := s.get(goalsKey(identity), &goals); err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.Goals{}, nil
		}
		s.logger.Warn("discarding unreadable goals record",
			"identity", identity,
			"error", err,
		)
		return domain.Goals{}, nil
	}
	return goals, nil
}

// SaveGoals writes the year to goal mapping for an identity.
func (s *Store) SaveGoals(identity string, goals domain.Goals) error {
	return s.set(goalsKey(identity), goals)
}
