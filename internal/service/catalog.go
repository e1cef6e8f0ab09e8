package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/buchshelf/buchshelf-server/internal/domain"
	domainerrors "github.com/buchshelf/buchshelf-server/internal/errors"
	"github.com/buchshelf/buchshelf-server/internal/metadata/googlebooks"
	"github.com/buchshelf/buchshelf-server/internal/store"
)

// MinQueryLength gates user searches; shorter input returns nothing without
// touching cache or network.
const MinQueryLength = 3

// DefaultCacheTTL is how long search responses stay servable from cache.
const DefaultCacheTTL = 24 * time.Hour

// Genres is the fixed browse-genre list.
var Genres = []string{
	"Fiction",
	"Mystery",
	"Romance",
	"Fantasy",
	"Science Fiction",
	"Thriller",
	"Non-Fiction",
	"Biography",
	"Self-Help",
	"Young Adult",
}

// Rail is a curated browse shelf backed by a canned catalog query.
type Rail struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	query string
}

// Rails lists the curated browse shelves in display order. Queries anchor to
// a primary subject because the bare terms pull in too much noise.
var Rails = []Rail{
	{Key: "featured", Title: "Featured", query: "subject:Fiction award winning"},
	{Key: "trending", Title: "Trending Now", query: "subject:Fiction bestseller"},
	{Key: "new-releases", Title: "New Releases", query: "subject:Fiction new release"},
	{Key: "fantasy", Title: "Popular Fantasy", query: "subject:Fantasy"},
	{Key: "nonfiction", Title: "Top Non-Fiction", query: "subject:Nonfiction"},
	{Key: "cozy-mystery", Title: "Cozy Mysteries", query: "subject:Mystery cozy"},
	{Key: "romance", Title: "Romance Bestsellers", query: "subject:Romance"},
	{Key: "classic-scifi", Title: "Classic Sci-Fi", query: "subject:Science Fiction classic"},
	{Key: "young-adult", Title: "Young Adult Hits", query: "subject:Young Adult"},
	{Key: "historical", Title: "Historical Fiction", query: "subject:Historical Fiction"},
	{Key: "psychology", Title: "Psychology & Self-Help", query: "subject:Psychology"},
	{Key: "biography", Title: "Biography & Memoir", query: "subject:Biography & Autobiography"},
	{Key: "thrillers", Title: "Crime & Thrillers", query: "subject:Thrillers"},
}

// catalogClient is the slice of the Google Books client the service uses.
type catalogClient interface {
	Search(ctx context.Context, query string, maxResults int) ([]googlebooks.Volume, error)
	GetVolume(ctx context.Context, volumeID string) (*googlebooks.Volume, error)
}

// CatalogService runs the search pipeline: cache, upstream fetch, heuristic
// filtering, normalization. It absorbs upstream failures into empty result
// sets; an empty list is the only failure signal callers see.
type CatalogService struct {
	client   catalogClient
	store    *store.Store
	logger   *slog.Logger
	cacheTTL time.Duration

	// Interactive searches cancel their predecessor so a slow old response
	// can never overtake the latest keystroke.
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewCatalogService creates a new catalog service. A non-positive ttl selects
// the default.
func NewCatalogService(client catalogClient, s *store.Store, logger *slog.Logger, ttl time.Duration) *CatalogService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CatalogService{
		client:   client,
		store:    s,
		logger:   logger,
		cacheTTL: ttl,
	}
}

// searchRaw serves raw records from cache when possible, otherwise fetches
// and fills the cache. Errors propagate to the caller for classification.
func (s *CatalogService) searchRaw(ctx context.Context, query string, maxResults int) ([]googlebooks.Volume, error) {
	if maxResults <= 0 {
		maxResults = 20
	}
	if maxResults > 40 {
		maxResults = 40
	}

	if vols, ok := s.store.CachedSearch(query, maxResults); ok {
		s.logger.Debug("search cache hit", "query", query)
		return vols, nil
	}

	vols, err := s.client.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}

	if err := s.store.CacheSearch(query, maxResults, vols, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache search response", "query", query, "error", err)
	}
	return vols, nil
}

// absorb converts a pipeline failure into an empty result. Cancellation is
// silent; anything else is logged and swallowed.
func (s *CatalogService) absorb(query string, err error) []domain.Book {
	if errors.Is(err, context.Canceled) {
		return []domain.Book{}
	}
	s.logger.Warn("catalog search failed",
		"query", query,
		"error", err,
	)
	return []domain.Book{}
}

// Search runs an interactive user search through the full pipeline. Queries
// shorter than MinQueryLength return nothing immediately. Starting a new
// Search cancels any still-running previous one, and a search that was
// superseded while in flight resolves to an empty set rather than stale
// results.
func (s *CatalogService) Search(ctx context.Context, query string, maxResults int) []domain.Book {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinQueryLength {
		return []domain.Book{}
	}

	ctx, seq := s.begin(ctx)

	vols, err := s.searchRaw(ctx, query, maxResults)
	if err != nil {
		return s.absorb(query, err)
	}
	if s.superseded(seq) {
		return []domain.Book{}
	}
	return googlebooks.NormalizeAndFilter(vols)
}

// begin registers a new interactive search, cancelling the previous one.
func (s *CatalogService) begin(parent context.Context) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.seq++
	return ctx, s.seq
}

// superseded reports whether a newer interactive search has started since.
func (s *CatalogService) superseded(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq != seq
}

// SearchByGenre serves a subject-scoped search through the pipeline.
func (s *CatalogService) SearchByGenre(ctx context.Context, genre string, maxResults int) []domain.Book {
	genre = strings.TrimSpace(genre)
	if genre == "" {
		return []domain.Book{}
	}

	query := "subject:" + genre
	vols, err := s.searchRaw(ctx, query, maxResults)
	if err != nil {
		return s.absorb(query, err)
	}
	return googlebooks.NormalizeAndFilter(vols)
}

// SearchByAuthor tries the plain author name first and falls back to the
// strict inauthor form when the plain query returns nothing. Each leg is
// cached independently.
func (s *CatalogService) SearchByAuthor(ctx context.Context, author string, maxResults int) []domain.Book {
	author = strings.TrimSpace(author)
	if author == "" {
		return []domain.Book{}
	}

	vols, err := s.searchRaw(ctx, author, maxResults)
	if err != nil {
		return s.absorb(author, err)
	}
	if len(vols) == 0 {
		strict := fmt.Sprintf("inauthor:%q", author)
		vols, err = s.searchRaw(ctx, strict, maxResults)
		if err != nil {
			return s.absorb(strict, err)
		}
	}
	return googlebooks.NormalizeAndFilter(vols)
}

// Rail serves a curated browse shelf. Unknown rail keys are a not-found
// error; rail fetch failures degrade to empty like any other search. The
// featured rail surfaces its rating-bearing books first.
func (s *CatalogService) Rail(ctx context.Context, key string) ([]domain.Book, error) {
	for _, rail := range Rails {
		if rail.Key != key {
			continue
		}
		vols, err := s.searchRaw(ctx, rail.query, 20)
		if err != nil {
			return s.absorb(rail.query, err), nil
		}
		books := googlebooks.NormalizeAndFilter(vols)
		if rail.Key == "featured" {
			if rated := domain.HighestRated(books, 20); len(rated) > 0 {
				books = rated
			}
		}
		return books, nil
	}
	return nil, domainerrors.NotFoundf("unknown rail %q", key)
}

// GetBook fetches and normalizes a single volume.
func (s *CatalogService) GetBook(ctx context.Context, bookID string) (*domain.Book, error) {
	vol, err := s.client.GetVolume(ctx, bookID)
	if err != nil {
		if errors.Is(err, googlebooks.ErrNotFound) {
			return nil, domainerrors.NotFoundf("book %s not found", bookID)
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	book := googlebooks.Normalize(*vol)
	if book == nil {
		return nil, domainerrors.NotFoundf("book %s not found", bookID)
	}
	return book, nil
}
