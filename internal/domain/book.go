package domain

import "time"

// Default values applied during normalization when the catalog record
// omits a field.
const (
	UnknownTitle       = "Unknown Title"
	UnknownAuthor      = "Unknown Author"
	DefaultGenre       = "General"
	DefaultDescription = "No description available."
)

// Book is the canonical, normalized book entity used throughout the
// application. Books are created transiently from catalog records and
// become persistent only when written into a shelf or the favorites list;
// each stored entry is a full copy taken at shelving time, so later catalog
// changes never reach already-shelved books.
type Book struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Author        string     `json:"author"` // first listed author
	AllAuthors    []string   `json:"all_authors"`
	Cover         string     `json:"cover,omitempty"` // https thumbnail URL, empty when the record has none
	CoverColor    string     `json:"cover_color"`     // deterministic function of Title
	Rating        *float64   `json:"rating,omitempty"`
	RatingsCount  int        `json:"ratings_count"`
	Genre         string     `json:"genre"` // first category
	AllCategories []string   `json:"all_categories"`
	Description   string     `json:"description"`
	PageCount     int        `json:"page_count,omitempty"`
	PublishedDate string     `json:"published_date,omitempty"` // opaque date text from the catalog
	StatusAt      *time.Time `json:"status_at,omitempty"`      // set only while shelved as finished
}

// FinishedIn reports whether the book was marked finished during the given
// calendar year. Books without a finish timestamp never count.
func (b *Book) FinishedIn(year int) bool {
	return b.StatusAt != nil && b.StatusAt.Year() == year
}

// HighestRated returns up to limit books that carry a rating, ordered by
// rating descending. The input slice is not modified.
func HighestRated(books []Book, limit int) []Book {
	rated := make([]Book, 0, len(books))
	for _, b := range books {
		if b.Rating != nil {
			rated = append(rated, b)
		}
	}

	// Insertion sort keeps ties in input order; result sets are small.
	for i := 1; i < len(rated); i++ {
		for j := i; j > 0 && *rated[j].Rating > *rated[j-1].Rating; j-- {
			rated[j], rated[j-1] = rated[j-1], rated[j]
		}
	}

	if limit > 0 && len(rated) > limit {
		rated = rated[:limit]
	}
	return rated
}
