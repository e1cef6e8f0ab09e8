package api

import (
	"encoding/json/v2"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buchshelf/buchshelf-server/internal/domain"
)

// upstreamVolume builds a volume record that passes the catalog filter.
func upstreamVolume(id, title string) map[string]any {
	return map[string]any{
		"id": id,
		"volumeInfo": map[string]any{
			"title":         title,
			"authors":       []string{"Jane Tester"},
			"categories":    []string{"Fiction"},
			"description":   "A long enough description for the filter to accept.",
			"pageCount":     320,
			"averageRating": 4.5,
			"ratingsCount":  12,
			"publishedDate": "2019",
			"imageLinks": map[string]any{
				"thumbnail": "http://covers.example/" + id + ".jpg",
			},
		},
	}
}

func writeVolumes(t *testing.T, w http.ResponseWriter, volumes ...map[string]any) {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"totalItems": len(volumes),
		"items":      volumes,
	})
	require.NoError(t, err)
	_, _ = w.Write(body)
}

type booksBody struct {
	Books []domain.Book `json:"books"`
}

func TestCatalogSearch(t *testing.T) {
	short := upstreamVolume("short1", "Pamphlet")
	short["volumeInfo"].(map[string]any)["pageCount"] = 10

	ts := setupTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeVolumes(t, w, upstreamVolume("vol1", "Dune"), short)
	}))

	resp := ts.api.Get("/api/v1/catalog/search?q=dune&max=5")
	require.Equal(t, http.StatusOK, resp.Code)

	var body booksBody
	decode(t, resp, &body)
	require.Len(t, body.Books, 1, "the short volume should be filtered out")
	assert.Equal(t, "vol1", body.Books[0].ID)
	assert.Equal(t, "Dune", body.Books[0].Title)
	assert.Equal(t, "https://covers.example/vol1.jpg", body.Books[0].Cover)
}

func TestCatalogSearchShortQuery(t *testing.T) {
	ts := setupTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("upstream should not be called for a short query")
	}))

	resp := ts.api.Get("/api/v1/catalog/search?q=ab")
	require.Equal(t, http.StatusOK, resp.Code)

	var body booksBody
	decode(t, resp, &body)
	assert.Empty(t, body.Books)
}

func TestCatalogSearchUpstreamFailure(t *testing.T) {
	ts := setupTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	// Upstream trouble degrades to an empty shelf, never an error page.
	resp := ts.api.Get("/api/v1/catalog/search?q=dune")
	require.Equal(t, http.StatusOK, resp.Code)

	var body booksBody
	decode(t, resp, &body)
	assert.Empty(t, body.Books)
}

func TestCatalogSearchUsesCache(t *testing.T) {
	var hits atomic.Int32
	ts := setupTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		writeVolumes(t, w, upstreamVolume("vol1", "Dune"))
	}))

	for range 2 {
		resp := ts.api.Get("/api/v1/catalog/search?q=dune&max=5")
		require.Equal(t, http.StatusOK, resp.Code)
	}
	assert.Equal(t, int32(1), hits.Load(), "second identical search should be served from cache")
}

func TestCatalogGenreBrowse(t *testing.T) {
	ts := setupTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "subject:Fantasy", r.URL.Query().Get("q"))
		writeVolumes(t, w, upstreamVolume("vol1", "The Hobbit"))
	}))

	resp := ts.api.Get("/api/v1/catalog/genre/Fantasy")
	require.Equal(t, http.StatusOK, resp.Code)

	var body booksBody
	decode(t, resp, &body)
	require.Len(t, body.Books, 1)
	assert.Equal(t, "The Hobbit", body.Books[0].Title)
}

func TestCatalogAuthorFallback(t *testing.T) {
	ts := setupTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == `inauthor:"Ursula K. Le Guin"` {
			writeVolumes(t, w, upstreamVolume("vol1", "A Wizard of Earthsea"))
			return
		}
		writeVolumes(t, w)
	}))

	resp := ts.api.Get("/api/v1/catalog/author/Ursula%20K.%20Le%20Guin")
	require.Equal(t, http.StatusOK, resp.Code)

	var body booksBody
	decode(t, resp, &body)
	require.Len(t, body.Books, 1)
	assert.Equal(t, "A Wizard of Earthsea", body.Books[0].Title)
}

func TestCatalogGetBook(t *testing.T) {
	ts := setupTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/vol1" {
			body, err := json.Marshal(upstreamVolume("vol1", "Dune"))
			require.NoError(t, err)
			_, _ = w.Write(body)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	resp := ts.api.Get("/api/v1/catalog/books/vol1")
	require.Equal(t, http.StatusOK, resp.Code)

	var book domain.Book
	decode(t, resp, &book)
	assert.Equal(t, "vol1", book.ID)
	assert.Equal(t, "Jane Tester", book.Author)

	resp = ts.api.Get("/api/v1/catalog/books/missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "NOT_FOUND")
}

func TestCuratedRail(t *testing.T) {
	ts := setupTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeVolumes(t, w, upstreamVolume("vol1", "Featured Pick"))
	}))

	resp := ts.api.Get("/api/v1/catalog/curated/featured")
	require.Equal(t, http.StatusOK, resp.Code)

	var body booksBody
	decode(t, resp, &body)
	require.Len(t, body.Books, 1)

	resp = ts.api.Get("/api/v1/catalog/curated/no-such-rail")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListGenres(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.api.Get("/api/v1/catalog/genres")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Genres []string `json:"genres"`
	}
	decode(t, resp, &body)
	assert.Contains(t, body.Genres, "Fiction")
	assert.Contains(t, body.Genres, "Young Adult")
	assert.Len(t, body.Genres, 10)
}
