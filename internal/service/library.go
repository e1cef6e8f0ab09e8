package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/buchshelf/buchshelf-server/internal/domain"
	domainerrors "github.com/buchshelf/buchshelf-server/internal/errors"
	"github.com/buchshelf/buchshelf-server/internal/store"
)

// LibraryService manages per-identity shelves and favorites. Every mutation
// loads the identity's record, applies the change, and writes it back; the
// identity key comes from the caller so guest and account data stay separate.
type LibraryService struct {
	store  *store.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewLibraryService creates a new library service.
func NewLibraryService(s *store.Store, logger *slog.Logger) *LibraryService {
	return &LibraryService{
		store:  s,
		logger: logger,
		now:    time.Now,
	}
}

// Library returns the identity's shelf map.
func (s *LibraryService) Library(ctx context.Context, identity string) (*domain.Library, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.Library(identity)
}

// AddToLibrary shelves a book, removing it from any other shelf first. A book
// shelved as finished is stamped with the shelving time; moving it elsewhere
// strips the stamp. Returns the updated library.
func (s *LibraryService) AddToLibrary(ctx context.Context, identity string, book domain.Book, shelf domain.Status) (*domain.Library, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !shelf.Valid() {
		return nil, domainerrors.Validationf("unknown shelf %q", shelf)
	}
	if book.ID == "" {
		return nil, domainerrors.Validation("book id is required")
	}

	lib, err := s.store.Library(identity)
	if err != nil {
		return nil, err
	}
	lib.Add(book, shelf, s.now().UTC())
	if err := s.store.SaveLibrary(identity, lib); err != nil {
		return nil, fmt.Errorf("save library: %w", err)
	}

	s.logger.Debug("book shelved",
		"identity", identity,
		"book_id", book.ID,
		"shelf", shelf,
	)
	return lib, nil
}

// RemoveFromLibrary removes a book from all shelves. No-op when absent.
func (s *LibraryService) RemoveFromLibrary(ctx context.Context, identity, bookID string) (*domain.Library, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lib, err := s.store.Library(identity)
	if err != nil {
		return nil, err
	}
	if !lib.Remove(bookID) {
		return lib, nil
	}
	if err := s.store.SaveLibrary(identity, lib); err != nil {
		return nil, fmt.Errorf("save library: %w", err)
	}
	return lib, nil
}

// BookStatus returns the shelf a book sits on, or ok=false when unshelved.
func (s *LibraryService) BookStatus(ctx context.Context, identity, bookID string) (domain.Status, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	lib, err := s.store.Library(identity)
	if err != nil {
		return "", false, err
	}
	status, ok := lib.StatusOf(bookID)
	return status, ok, nil
}

// Favorites returns the identity's favorites list.
func (s *LibraryService) Favorites(ctx context.Context, identity string) (domain.Favorites, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.Favorites(identity)
}

// ToggleFavorite flips a book's favorite membership. Favoriting stores a full
// copy of the book, independent of shelf state. Returns whether the book is
// favorited after the toggle.
func (s *LibraryService) ToggleFavorite(ctx context.Context, identity string, book domain.Book) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if book.ID == "" {
		return false, domainerrors.Validation("book id is required")
	}

	favs, err := s.store.Favorites(identity)
	if err != nil {
		return false, err
	}
	favs = favs.Toggle(book)
	if err := s.store.SaveFavorites(identity, favs); err != nil {
		return false, fmt.Errorf("save favorites: %w", err)
	}
	return favs.Has(book.ID), nil
}

// IsFavorite reports whether a book is in the identity's favorites.
func (s *LibraryService) IsFavorite(ctx context.Context, identity, bookID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	favs, err := s.store.Favorites(identity)
	if err != nil {
		return false, err
	}
	return favs.Has(bookID), nil
}
