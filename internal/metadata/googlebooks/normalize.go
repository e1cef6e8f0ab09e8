package googlebooks

import (
	"strings"

	"github.com/buchshelf/buchshelf-server/internal/color"
	"github.com/buchshelf/buchshelf-server/internal/domain"
)

// Normalize maps a raw record into a canonical book, applying field defaults
// and deriving the cover color from the title. Returns nil when the record
// lacks volume metadata entirely.
func Normalize(vol Volume) *domain.Book {
	if vol.VolumeInfo == nil {
		return nil
	}
	info := vol.VolumeInfo

	// Slice fields stay non-nil so a book decoded back from storage is
	// identical to a freshly normalized one.
	book := &domain.Book{
		ID:            vol.ID,
		Title:         info.Title,
		Author:        domain.UnknownAuthor,
		AllAuthors:    append([]string{}, info.Authors...),
		CoverColor:    color.ForTitle(info.Title),
		RatingsCount:  info.RatingsCount,
		Genre:         domain.DefaultGenre,
		AllCategories: append([]string{}, info.Categories...),
		Description:   info.Description,
		PageCount:     info.PageCount,
		PublishedDate: info.PublishedDate,
	}

	if book.Title == "" {
		book.Title = domain.UnknownTitle
	}
	if len(info.Authors) > 0 {
		book.Author = info.Authors[0]
	}
	if len(info.Categories) > 0 {
		book.Genre = info.Categories[0]
	}
	if book.Description == "" {
		book.Description = domain.DefaultDescription
	}
	if info.ImageLinks != nil && info.ImageLinks.Thumbnail != "" {
		// The API still hands out plain http thumbnail links.
		book.Cover = strings.Replace(info.ImageLinks.Thumbnail, "http:", "https:", 1)
	}
	if info.AverageRating > 0 {
		rating := info.AverageRating
		book.Rating = &rating
	}

	return book
}

// NormalizeAndFilter validates and normalizes a raw record list, dropping
// rejected and empty records while preserving the order of survivors.
func NormalizeAndFilter(vols []Volume) []domain.Book {
	books := make([]domain.Book, 0, len(vols))
	for _, vol := range vols {
		if !IsValidBook(vol) {
			continue
		}
		if book := Normalize(vol); book != nil {
			books = append(books, *book)
		}
	}
	return books
}
