// Package color provides deterministic cover color selection for books without artwork.
package color

import "unicode/utf16"

// Palette is the fixed, ordered set of cover colors. The UI renders a
// placeholder cover in this color when a book has no thumbnail.
var Palette = []string{
	"#9caf88",
	"#c2674f",
	"#f5d5c8",
	"#f4a460",
	"#6b8e23",
	"#d46a6a",
	"#8b5e3c",
	"#b8a591",
}

// ForTitle selects a palette color for a book title. The same title always
// maps to the same color: the UTF-16 code units of the title are summed and
// reduced modulo the palette size. An empty title maps to the first entry.
//
// Summing UTF-16 code units (rather than runes or bytes) keeps the mapping
// identical to clients that hash with JavaScript's charCodeAt.
func ForTitle(title string) string {
	if title == "" {
		return Palette[0]
	}

	sum := 0
	for _, u := range utf16.Encode([]rune(title)) {
		sum += int(u)
	}

	return Palette[sum%len(Palette)]
}
