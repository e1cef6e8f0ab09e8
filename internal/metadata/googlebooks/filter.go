package googlebooks

import "strings"

// Heuristic markers for content that is not a trade book. Matched as
// case-insensitive substrings.
var (
	paperTerms = []string{
		"research paper",
		"academic paper",
		"thesis",
		"dissertation",
		"journal article",
		"conference paper",
	}

	// Title-only terms. Books that merely happen to be educational stay in.
	textbookTerms = []string{
		"textbook",
		"workbook",
		"study guide",
	}

	excludedCategories = []string{
		"reference",
		"textbooks",
		"test prep",
		"academic",
		"science textbooks",
	}
)

const (
	minPageCount         = 50
	minDescriptionLength = 20
)

// IsValidBook reports whether a raw record looks like a legitimate trade
// book worth surfacing. It rejects research papers, textbooks, reference
// material, very short documents, and records with no description or
// authors. Pure predicate, no side effects.
func IsValidBook(vol Volume) bool {
	if vol.VolumeInfo == nil {
		return false
	}
	info := vol.VolumeInfo

	title := strings.ToLower(info.Title)
	description := strings.ToLower(info.Description)

	for _, term := range paperTerms {
		if strings.Contains(title, term) || strings.Contains(description, term) {
			return false
		}
	}

	for _, term := range textbookTerms {
		if strings.Contains(title, term) {
			return false
		}
	}

	for _, cat := range info.Categories {
		lower := strings.ToLower(cat)
		for _, excluded := range excludedCategories {
			if strings.Contains(lower, excluded) {
				return false
			}
		}
	}

	// Documents under 50 pages are rarely real books.
	if info.PageCount > 0 && info.PageCount < minPageCount {
		return false
	}

	if len(description) < minDescriptionLength {
		return false
	}

	return len(info.Authors) > 0
}
