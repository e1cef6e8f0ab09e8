package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ratedBook(id string, rating float64) Book {
	b := testBook(id)
	b.Rating = &rating
	return b
}

func TestHighestRated(t *testing.T) {
	books := []Book{
		testBook("unrated"),
		ratedBook("mid", 3.5),
		ratedBook("top", 4.8),
		ratedBook("low", 2.0),
	}

	got := HighestRated(books, 2)

	require.Len(t, got, 2)
	assert.Equal(t, "top", got[0].ID)
	assert.Equal(t, "mid", got[1].ID)
}

func TestHighestRated_DropsUnratedOnly(t *testing.T) {
	books := []Book{testBook("a"), testBook("b")}
	assert.Empty(t, HighestRated(books, 10))
}

func TestFinishedIn(t *testing.T) {
	at := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	b := finishedBook("b1", at)

	assert.True(t, b.FinishedIn(2025))
	assert.False(t, b.FinishedIn(2024))

	unstamped := testBook("b2")
	assert.False(t, unstamped.FinishedIn(2025))
}
