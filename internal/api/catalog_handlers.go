package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/buchshelf/buchshelf-server/internal/domain"
	"github.com/buchshelf/buchshelf-server/internal/service"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "search-catalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/search",
		Summary:     "Search books",
		Description: "Searches the public catalog. Failures and too-short queries yield an empty list.",
		Tags:        []string{"Catalog"},
	}, s.handleSearch)

	huma.Register(s.api, huma.Operation{
		OperationID: "search-by-genre",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/genre/{genre}",
		Summary:     "Browse a genre",
		Tags:        []string{"Catalog"},
	}, s.handleSearchByGenre)

	huma.Register(s.api, huma.Operation{
		OperationID: "search-by-author",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/author/{author}",
		Summary:     "Browse an author",
		Tags:        []string{"Catalog"},
	}, s.handleSearchByAuthor)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-catalog-book",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/books/{id}",
		Summary:     "Get a single book",
		Tags:        []string{"Catalog"},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-curated-rail",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/curated/{rail}",
		Summary:     "Get a curated rail",
		Description: "Serves one of the fixed curated browse shelves.",
		Tags:        []string{"Catalog"},
	}, s.handleRail)

	huma.Register(s.api, huma.Operation{
		OperationID: "list-genres",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/genres",
		Summary:     "List browse genres",
		Tags:        []string{"Catalog"},
	}, s.handleGenres)
}

// === DTOs ===

// SearchInput carries interactive search parameters.
type SearchInput struct {
	Query      string `query:"q" doc:"Search query"`
	MaxResults int    `query:"max" doc:"Maximum results, clamped to 1..40"`
}

// GenreInput carries a genre browse request.
type GenreInput struct {
	Genre      string `path:"genre" doc:"Genre to browse"`
	MaxResults int    `query:"max" doc:"Maximum results, clamped to 1..40"`
}

// AuthorInput carries an author browse request.
type AuthorInput struct {
	Author     string `path:"author" doc:"Author name"`
	MaxResults int    `query:"max" doc:"Maximum results, clamped to 1..40"`
}

// BookIDInput identifies a catalog book.
type BookIDInput struct {
	ID string `path:"id" doc:"Catalog book ID"`
}

// RailInput identifies a curated rail.
type RailInput struct {
	Rail string `path:"rail" doc:"Rail key, e.g. featured"`
}

// BooksOutput wraps a normalized book list.
type BooksOutput struct {
	Body struct {
		Books []domain.Book `json:"books" doc:"Normalized books"`
	}
}

// BookOutput wraps a single normalized book.
type BookOutput struct {
	Body domain.Book
}

// GenresOutput wraps the browse genre list.
type GenresOutput struct {
	Body struct {
		Genres []string `json:"genres" doc:"Browse genres"`
	}
}

func booksOutput(books []domain.Book) *BooksOutput {
	out := &BooksOutput{}
	out.Body.Books = books
	return out
}

// === Handlers ===

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*BooksOutput, error) {
	return booksOutput(s.services.Catalog.Search(ctx, input.Query, input.MaxResults)), nil
}

func (s *Server) handleSearchByGenre(ctx context.Context, input *GenreInput) (*BooksOutput, error) {
	return booksOutput(s.services.Catalog.SearchByGenre(ctx, input.Genre, input.MaxResults)), nil
}

func (s *Server) handleSearchByAuthor(ctx context.Context, input *AuthorInput) (*BooksOutput, error) {
	return booksOutput(s.services.Catalog.SearchByAuthor(ctx, input.Author, input.MaxResults)), nil
}

func (s *Server) handleGetBook(ctx context.Context, input *BookIDInput) (*BookOutput, error) {
	book, err := s.services.Catalog.GetBook(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: *book}, nil
}

func (s *Server) handleRail(ctx context.Context, input *RailInput) (*BooksOutput, error) {
	books, err := s.services.Catalog.Rail(ctx, input.Rail)
	if err != nil {
		return nil, err
	}
	return booksOutput(books), nil
}

func (s *Server) handleGenres(_ context.Context, _ *struct{}) (*GenresOutput, error) {
	out := &GenresOutput{}
	out.Body.Genres = service.Genres
	return out, nil
}
