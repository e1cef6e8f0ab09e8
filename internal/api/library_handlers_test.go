package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buchshelf/buchshelf-server/internal/domain"
)

type libraryBody struct {
	Shelves   map[domain.Status][]domain.Book `json:"shelves"`
	Favorites []domain.Book                   `json:"favorites"`
}

// shelfBook builds the full normalized book payload a client would post
// back after fetching it from the catalog.
func shelfBook(id, title string) map[string]any {
	return map[string]any{
		"id":             id,
		"title":          title,
		"author":         "Jane Tester",
		"all_authors":    []string{"Jane Tester"},
		"cover_color":    "#D97706",
		"ratings_count":  12,
		"genre":          "Fiction",
		"all_categories": []string{"Fiction"},
		"description":    "A long enough description for the filter to accept.",
	}
}

func TestLibraryStartsEmpty(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.api.Get("/api/v1/library")
	require.Equal(t, http.StatusOK, resp.Code)

	var body libraryBody
	decode(t, resp, &body)
	require.Len(t, body.Shelves, 3, "every shelf should be present even when empty")
	for _, shelf := range domain.Statuses {
		assert.Empty(t, body.Shelves[shelf])
	}
	assert.Empty(t, body.Favorites)
}

func TestShelveBookMovesBetweenShelves(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.api.Put("/api/v1/library/want-to-read", shelfBook("b1", "Dune"))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body libraryBody
	decode(t, resp, &body)
	require.Len(t, body.Shelves[domain.StatusWantToRead], 1)
	assert.Nil(t, body.Shelves[domain.StatusWantToRead][0].StatusAt)

	// Moving to finished empties the old shelf and stamps the entry.
	resp = ts.api.Put("/api/v1/library/finished", shelfBook("b1", "Dune"))
	require.Equal(t, http.StatusOK, resp.Code)

	decode(t, resp, &body)
	assert.Empty(t, body.Shelves[domain.StatusWantToRead])
	require.Len(t, body.Shelves[domain.StatusFinished], 1)
	assert.NotNil(t, body.Shelves[domain.StatusFinished][0].StatusAt)
}

func TestShelveBookUnknownShelf(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.api.Put("/api/v1/library/borrowed", shelfBook("b1", "Dune"))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "VALIDATION")
}

func TestShelveBookMissingID(t *testing.T) {
	ts := setupTestServer(t, nil)

	book := shelfBook("", "No ID")
	resp := ts.api.Put("/api/v1/library/finished", book)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestUnshelveBook(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.api.Put("/api/v1/library/currently-reading", shelfBook("b1", "Dune"))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Delete("/api/v1/library/books/b1")
	require.Equal(t, http.StatusOK, resp.Code)

	var body libraryBody
	decode(t, resp, &body)
	assert.Empty(t, body.Shelves[domain.StatusCurrentlyReading])

	// Removing an absent book is a quiet no-op.
	resp = ts.api.Delete("/api/v1/library/books/b1")
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestBookStatus(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.api.Put("/api/v1/library/currently-reading", shelfBook("b1", "Dune"))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/library/books/b1/status")
	require.Equal(t, http.StatusOK, resp.Code)

	var status struct {
		Status  *domain.Status `json:"status"`
		Shelved bool           `json:"shelved"`
	}
	decode(t, resp, &status)
	assert.True(t, status.Shelved)
	require.NotNil(t, status.Status)
	assert.Equal(t, domain.StatusCurrentlyReading, *status.Status)

	resp = ts.api.Get("/api/v1/library/books/unknown/status")
	require.Equal(t, http.StatusOK, resp.Code)

	decode(t, resp, &status)
	assert.False(t, status.Shelved)
	assert.Nil(t, status.Status)
}

func TestToggleFavorite(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.api.Post("/api/v1/library/favorites/toggle", shelfBook("b1", "Dune"))
	require.Equal(t, http.StatusOK, resp.Code)

	var toggled struct {
		Favorite bool `json:"favorite"`
	}
	decode(t, resp, &toggled)
	assert.True(t, toggled.Favorite)

	resp = ts.api.Get("/api/v1/library/favorites")
	require.Equal(t, http.StatusOK, resp.Code)

	var favs struct {
		Favorites []domain.Book `json:"favorites"`
	}
	decode(t, resp, &favs)
	require.Len(t, favs.Favorites, 1)
	assert.Equal(t, "b1", favs.Favorites[0].ID)

	// Toggling again removes it.
	resp = ts.api.Post("/api/v1/library/favorites/toggle", shelfBook("b1", "Dune"))
	require.Equal(t, http.StatusOK, resp.Code)

	decode(t, resp, &toggled)
	assert.False(t, toggled.Favorite)
}

func TestLibraryScopedToAccount(t *testing.T) {
	ts := setupTestServer(t, nil)

	// Shelve as guest, then sign up. The account starts with its own
	// empty library.
	resp := ts.api.Put("/api/v1/library/finished", shelfBook("b1", "Dune"))
	require.Equal(t, http.StatusOK, resp.Code)

	ts.signupAlice(t)

	resp = ts.api.Get("/api/v1/library")
	require.Equal(t, http.StatusOK, resp.Code)

	var body libraryBody
	decode(t, resp, &body)
	assert.Empty(t, body.Shelves[domain.StatusFinished])

	// Logging out returns to the guest library.
	resp = ts.api.Post("/api/v1/auth/logout", map[string]any{})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/library")
	require.Equal(t, http.StatusOK, resp.Code)

	decode(t, resp, &body)
	require.Len(t, body.Shelves[domain.StatusFinished], 1)
	assert.Equal(t, "b1", body.Shelves[domain.StatusFinished][0].ID)
}
