package catalog

import "strings"

// Filter applies all non-empty criteria and returns matching books.
type Filter struct {
	Search string // case-insensitive substring of the title
	Genre  string // exact genre, case-insensitive
}

// Apply returns the subset of books matching all non-empty filter fields,
// in their original order.
func (f Filter) Apply(books []Book) []Book {
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if f.Genre != "" && !strings.EqualFold(b.Genre, f.Genre) {
			continue
		}
		if f.Search != "" && !TitleContains(b, f.Search) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// TitleContains reports whether q occurs in the book title, ignoring case.
func TitleContains(b Book, q string) bool {
	return strings.Contains(strings.ToLower(b.Title), strings.ToLower(q))
}

// ByID returns the first book with the given ID, or nil.
func ByID(books []Book, id string) *Book {
	if i := IndexOf(books, id); i >= 0 {
		return &books[i]
	}
	return nil
}

// IndexOf returns the position of the book with the given ID, or -1.
func IndexOf(books []Book, id string) int {
	for i := range books {
		if books[i].ID == id {
			return i
		}
	}
	return -1
}
