package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buchshelf/buchshelf-server/internal/domain"
	domainerrors "github.com/buchshelf/buchshelf-server/internal/errors"
	"github.com/buchshelf/buchshelf-server/internal/store"
)

func setupLibraryService(t *testing.T) (*LibraryService, *store.Store) {
	t.Helper()

	testStore, err := store.New(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testStore.Close() })

	return NewLibraryService(testStore, discardLogger()), testStore
}

func dune() domain.Book {
	return domain.Book{ID: "b1", Title: "Dune", Author: "Frank Herbert"}
}

func TestAddToLibrary_ShelvesAreExclusive(t *testing.T) {
	svc, _ := setupLibraryService(t)
	ctx := context.Background()

	_, err := svc.AddToLibrary(ctx, "acct-1", dune(), domain.StatusWantToRead)
	require.NoError(t, err)

	lib, err := svc.AddToLibrary(ctx, "acct-1", dune(), domain.StatusCurrentlyReading)
	require.NoError(t, err)

	assert.Empty(t, lib.Shelves[domain.StatusWantToRead])
	require.Len(t, lib.Shelves[domain.StatusCurrentlyReading], 1)
}

func TestAddToLibrary_FinishedStampsAndStrips(t *testing.T) {
	svc, _ := setupLibraryService(t)
	ctx := context.Background()

	stamp := time.Date(2026, 7, 4, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return stamp }

	lib, err := svc.AddToLibrary(ctx, "acct-1", dune(), domain.StatusFinished)
	require.NoError(t, err)
	shelved := lib.Shelves[domain.StatusFinished][0]
	require.NotNil(t, shelved.StatusAt)
	assert.Equal(t, stamp, *shelved.StatusAt)

	lib, err = svc.AddToLibrary(ctx, "acct-1", dune(), domain.StatusWantToRead)
	require.NoError(t, err)
	moved := lib.Shelves[domain.StatusWantToRead][0]
	assert.Nil(t, moved.StatusAt, "statusAt must not survive leaving finished")
}

func TestAddToLibrary_PersistsAcrossLoads(t *testing.T) {
	svc, testStore := setupLibraryService(t)
	ctx := context.Background()

	_, err := svc.AddToLibrary(ctx, "acct-1", dune(), domain.StatusFinished)
	require.NoError(t, err)

	lib, err := testStore.Library("acct-1")
	require.NoError(t, err)
	assert.Len(t, lib.Shelves[domain.StatusFinished], 1)
}

func TestAddToLibrary_InvalidShelf(t *testing.T) {
	svc, _ := setupLibraryService(t)

	_, err := svc.AddToLibrary(context.Background(), "acct-1", dune(), "reading-soon")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestAddToLibrary_StoresACopy(t *testing.T) {
	svc, _ := setupLibraryService(t)
	ctx := context.Background()

	book := dune()
	_, err := svc.AddToLibrary(ctx, "acct-1", book, domain.StatusWantToRead)
	require.NoError(t, err)

	// Mutating the caller's value after shelving changes nothing.
	book.Title = "Changed"
	lib, err := svc.Library(ctx, "acct-1")
	require.NoError(t, err)
	assert.Equal(t, "Dune", lib.Shelves[domain.StatusWantToRead][0].Title)
}

func TestRemoveFromLibrary(t *testing.T) {
	svc, _ := setupLibraryService(t)
	ctx := context.Background()

	_, err := svc.AddToLibrary(ctx, "acct-1", dune(), domain.StatusCurrentlyReading)
	require.NoError(t, err)

	lib, err := svc.RemoveFromLibrary(ctx, "acct-1", "b1")
	require.NoError(t, err)
	assert.Empty(t, lib.Shelves[domain.StatusCurrentlyReading])

	// Removing an absent book is a no-op.
	_, err = svc.RemoveFromLibrary(ctx, "acct-1", "b1")
	assert.NoError(t, err)
}

func TestBookStatus(t *testing.T) {
	svc, _ := setupLibraryService(t)
	ctx := context.Background()

	_, ok, err := svc.BookStatus(ctx, "acct-1", "b1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.AddToLibrary(ctx, "acct-1", dune(), domain.StatusFinished)
	require.NoError(t, err)

	status, ok, err := svc.BookStatus(ctx, "acct-1", "b1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.StatusFinished, status)
}

func TestToggleFavorite(t *testing.T) {
	svc, _ := setupLibraryService(t)
	ctx := context.Background()

	favorited, err := svc.ToggleFavorite(ctx, "acct-1", dune())
	require.NoError(t, err)
	assert.True(t, favorited)

	isFav, err := svc.IsFavorite(ctx, "acct-1", "b1")
	require.NoError(t, err)
	assert.True(t, isFav)

	// Toggling twice restores the original state.
	favorited, err = svc.ToggleFavorite(ctx, "acct-1", dune())
	require.NoError(t, err)
	assert.False(t, favorited)

	favs, err := svc.Favorites(ctx, "acct-1")
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestFavorites_IndependentOfShelves(t *testing.T) {
	svc, _ := setupLibraryService(t)
	ctx := context.Background()

	// Favoriting a book that sits on no shelf is fine.
	favorited, err := svc.ToggleFavorite(ctx, "acct-1", dune())
	require.NoError(t, err)
	assert.True(t, favorited)

	// Removing it from the library leaves the favorite alone.
	_, err = svc.RemoveFromLibrary(ctx, "acct-1", "b1")
	require.NoError(t, err)

	isFav, err := svc.IsFavorite(ctx, "acct-1", "b1")
	require.NoError(t, err)
	assert.True(t, isFav)
}

func TestLibrary_GuestAndAccountSeparate(t *testing.T) {
	svc, _ := setupLibraryService(t)
	ctx := context.Background()

	_, err := svc.AddToLibrary(ctx, domain.GuestIdentity, dune(), domain.StatusWantToRead)
	require.NoError(t, err)

	lib, err := svc.Library(ctx, "acct-1")
	require.NoError(t, err)
	assert.Empty(t, lib.Shelves[domain.StatusWantToRead])
}
