package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/buchshelf/buchshelf-server/internal/domain"
)

func (s *Server) registerLibraryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-library",
		Method:      http.MethodGet,
		Path:        "/api/v1/library",
		Summary:     "Get the library",
		Description: "Returns every shelf plus the favorites list for the current identity.",
		Tags:        []string{"Library"},
	}, s.handleGetLibrary)

	huma.Register(s.api, huma.Operation{
		OperationID: "shelve-book",
		Method:      http.MethodPut,
		Path:        "/api/v1/library/{shelf}",
		Summary:     "Shelve a book",
		Description: "Places a book on a shelf, moving it off any other shelf first.",
		Tags:        []string{"Library"},
	}, s.handleShelveBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "unshelve-book",
		Method:      http.MethodDelete,
		Path:        "/api/v1/library/books/{bookID}",
		Summary:     "Remove a book from the library",
		Tags:        []string{"Library"},
	}, s.handleUnshelveBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-book-status",
		Method:      http.MethodGet,
		Path:        "/api/v1/library/books/{bookID}/status",
		Summary:     "Get a book's shelf",
		Tags:        []string{"Library"},
	}, s.handleBookStatus)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggle-favorite",
		Method:      http.MethodPost,
		Path:        "/api/v1/library/favorites/toggle",
		Summary:     "Toggle a favorite",
		Tags:        []string{"Library"},
	}, s.handleToggleFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "list-favorites",
		Method:      http.MethodGet,
		Path:        "/api/v1/library/favorites",
		Summary:     "List favorites",
		Tags:        []string{"Library"},
	}, s.handleListFavorites)
}

// === DTOs ===

// ShelveInput shelves a full book copy on the named shelf.
type ShelveInput struct {
	Shelf string      `path:"shelf" doc:"Target shelf: want-to-read, currently-reading or finished"`
	Body  domain.Book `doc:"Book to shelve"`
}

// LibraryBookIDInput identifies a shelved book.
type LibraryBookIDInput struct {
	BookID string `path:"bookID" doc:"Book ID"`
}

// ToggleFavoriteInput carries the book whose favorite state flips.
type ToggleFavoriteInput struct {
	Body domain.Book `doc:"Book to toggle"`
}

// LibraryOutput is the full library view: shelves plus favorites.
type LibraryOutput struct {
	Body struct {
		Shelves   map[domain.Status][]domain.Book `json:"shelves"`
		Favorites domain.Favorites                `json:"favorites"`
	}
}

// BookStatusOutput reports which shelf holds a book, if any.
type BookStatusOutput struct {
	Body struct {
		Status  *domain.Status `json:"status" doc:"Shelf holding the book, null when unshelved"`
		Shelved bool           `json:"shelved"`
	}
}

// FavoriteOutput reports a book's favorite state after a toggle.
type FavoriteOutput struct {
	Body struct {
		Favorite bool `json:"favorite"`
	}
}

// FavoritesOutput wraps the favorites list.
type FavoritesOutput struct {
	Body struct {
		Favorites domain.Favorites `json:"favorites"`
	}
}

func libraryOutput(lib *domain.Library, favs domain.Favorites) *LibraryOutput {
	out := &LibraryOutput{}
	out.Body.Shelves = lib.Shelves
	out.Body.Favorites = favs
	return out
}

// === Handlers ===

func (s *Server) handleGetLibrary(ctx context.Context, _ *struct{}) (*LibraryOutput, error) {
	identity, err := s.services.Auth.Identity(ctx)
	if err != nil {
		return nil, err
	}
	lib, err := s.services.Library.Library(ctx, identity)
	if err != nil {
		return nil, err
	}
	favs, err := s.services.Library.Favorites(ctx, identity)
	if err != nil {
		return nil, err
	}
	return libraryOutput(lib, favs), nil
}

func (s *Server) handleShelveBook(ctx context.Context, input *ShelveInput) (*LibraryOutput, error) {
	identity, err := s.services.Auth.Identity(ctx)
	if err != nil {
		return nil, err
	}
	lib, err := s.services.Library.AddToLibrary(ctx, identity, input.Body, domain.Status(input.Shelf))
	if err != nil {
		return nil, err
	}
	favs, err := s.services.Library.Favorites(ctx, identity)
	if err != nil {
		return nil, err
	}
	return libraryOutput(lib, favs), nil
}

func (s *Server) handleUnshelveBook(ctx context.Context, input *LibraryBookIDInput) (*LibraryOutput, error) {
	identity, err := s.services.Auth.Identity(ctx)
	if err != nil {
		return nil, err
	}
	lib, err := s.services.Library.RemoveFromLibrary(ctx, identity, input.BookID)
	if err != nil {
		return nil, err
	}
	favs, err := s.services.Library.Favorites(ctx, identity)
	if err != nil {
		return nil, err
	}
	return libraryOutput(lib, favs), nil
}

func (s *Server) handleBookStatus(ctx context.Context, input *LibraryBookIDInput) (*BookStatusOutput, error) {
	identity, err := s.services.Auth.Identity(ctx)
	if err != nil {
		return nil, err
	}
	status, ok, err := s.services.Library.BookStatus(ctx, identity, input.BookID)
	if err != nil {
		return nil, err
	}
	out := &BookStatusOutput{}
	out.Body.Shelved = ok
	if ok {
		out.Body.Status = &status
	}
	return out, nil
}

func (s *Server) handleToggleFavorite(ctx context.Context, input *ToggleFavoriteInput) (*FavoriteOutput, error) {
	identity, err := s.services.Auth.Identity(ctx)
	if err != nil {
		return nil, err
	}
	favorite, err := s.services.Library.ToggleFavorite(ctx, identity, input.Body)
	if err != nil {
		return nil, err
	}
	out := &FavoriteOutput{}
	out.Body.Favorite = favorite
	return out, nil
}

func (s *Server) handleListFavorites(ctx context.Context, _ *struct{}) (*FavoritesOutput, error) {
	identity, err := s.services.Auth.Identity(ctx)
	if err != nil {
		return nil, err
	}
	favs, err := s.services.Library.Favorites(ctx, identity)
	if err != nil {
		return nil, err
	}
	out := &FavoritesOutput{}
	out.Body.Favorites = favs
	return out, nil
}
