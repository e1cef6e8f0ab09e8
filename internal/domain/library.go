package domain

import "time"

// Status is a reading-status shelf. A book occupies at most one shelf at a
// time; the shelves partition the library rather than acting as tags.
type Status string

const (
	StatusWantToRead       Status = "want-to-read"
	StatusCurrentlyReading Status = "currently-reading"
	StatusFinished         Status = "finished"
)

// Statuses lists all shelves in their canonical enumeration order. Status
// lookups report the first shelf containing a book in this order.
var Statuses = []Status{StatusWantToRead, StatusCurrentlyReading, StatusFinished}

// Valid reports whether s is one of the known shelves.
func (s Status) Valid() bool {
	switch s {
	case StatusWantToRead, StatusCurrentlyReading, StatusFinished:
		return true
	}
	return false
}

// Library holds one identity's shelved books. Shelf entries are
// denormalized copies of the book at shelving time.
type Library struct {
	Shelves map[Status][]Book `json:"shelves"`
}

// NewLibrary returns a library with all shelves present and empty.
func NewLibrary() *Library {
	shelves := make(map[Status][]Book, len(Statuses))
	for _, s := range Statuses {
		shelves[s] = []Book{}
	}
	return &Library{Shelves: shelves}
}

// Normalize ensures every known shelf exists, repairing libraries loaded
// from older or partially corrupt persisted data.
func (l *Library) Normalize() {
	if l.Shelves == nil {
		l.Shelves = make(map[Status][]Book, len(Statuses))
	}
	for _, s := range Statuses {
		if l.Shelves[s] == nil {
			l.Shelves[s] = []Book{}
		}
	}
}

// Add places a copy of book on the given shelf, removing it from every
// other shelf first. Shelving as finished stamps StatusAt with now; any
// other shelf clears it. Re-adding the same book to the same shelf yields
// a single entry.
func (l *Library) Add(book Book, shelf Status, now time.Time) {
	l.Remove(book.ID)

	if shelf == StatusFinished {
		at := now
		book.StatusAt = &at
	} else {
		book.StatusAt = nil
	}

	l.Shelves[shelf] = append(l.Shelves[shelf], book)
}

// Remove deletes the book id from every shelf. Returns true if any entry
// was removed.
func (l *Library) Remove(bookID string) bool {
	removed := false
	for shelf, books := range l.Shelves {
		kept := books[:0]
		for _, b := range books {
			if b.ID == bookID {
				removed = true
				continue
			}
			kept = append(kept, b)
		}
		l.Shelves[shelf] = kept
	}
	return removed
}

// StatusOf returns the shelf currently holding the book id, checking
// shelves in enumeration order. The second return is false when the book
// is not shelved.
func (l *Library) StatusOf(bookID string) (Status, bool) {
	for _, shelf := range Statuses {
		for _, b := range l.Shelves[shelf] {
			if b.ID == bookID {
				return shelf, true
			}
		}
	}
	return "", false
}

// Finished returns the finished shelf.
func (l *Library) Finished() []Book {
	return l.Shelves[StatusFinished]
}

// Favorites is an identity's favorite books, independent of shelving.
type Favorites []Book

// Has reports whether the book id is favorited.
func (f Favorites) Has(bookID string) bool {
	for _, b := range f {
		if b.ID == bookID {
			return true
		}
	}
	return false
}

// Toggle removes the book if it is already favorited, otherwise appends a
// copy. Applying Toggle twice restores the original membership.
func (f Favorites) Toggle(book Book) Favorites {
	if f.Has(book.ID) {
		kept := make(Favorites, 0, len(f))
		for _, b := range f {
			if b.ID != book.ID {
				kept = append(kept, b)
			}
		}
		return kept
	}
	return append(f, book)
}
