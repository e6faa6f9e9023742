// Package library holds the in-memory book collection, the active search
// query and the shelf layout derived from them.
package library

import "github.com/ilaria3312/MyLibrary/internal/catalog"

// Store owns the ordered book collection and the search query.
//
// A Store is owned by a single caller (the current screen or command) and is
// not safe for concurrent use.
type Store struct {
	books []catalog.Book
	query string
}

// NewStore seeds a store with books, collapsing any repeated IDs.
func NewStore(books []catalog.Book) *Store {
	return &Store{books: catalog.Dedupe(books)}
}

// SetQuery replaces the search query.
func (s *Store) SetQuery(text string) {
	s.query = text
}

// Query returns the current search query.
func (s *Store) Query() string {
	return s.query
}

// Len returns the number of books in the collection.
func (s *Store) Len() int {
	return len(s.books)
}

// Books returns a copy of the full collection in display order.
func (s *Store) Books() []catalog.Book {
	out := make([]catalog.Book, len(s.books))
	copy(out, s.books)
	return out
}

// Get returns the book with the given ID.
func (s *Store) Get(id string) (catalog.Book, bool) {
	b := catalog.ByID(s.books, id)
	if b == nil {
		return catalog.Book{}, false
	}
	return *b, true
}

// FilteredBooks returns the books whose title contains the query, ignoring
// case. An empty query returns every book.
func (s *Store) FilteredBooks() []catalog.Book {
	return catalog.Filter{Search: s.query}.Apply(s.books)
}

// ShelfRows lays out FilteredBooks as shelves. See ComputeShelfRows.
func (s *Store) ShelfRows(viewportHeight, shelfHeight float64, booksPerShelf int) ([][]catalog.Book, error) {
	return ComputeShelfRows(s.FilteredBooks(), viewportHeight, shelfHeight, booksPerShelf)
}

// Commit stores the result of an editor session. When editingID names an
// existing book that entry is replaced in place; otherwise book is appended.
// It reports whether an existing entry was replaced.
//
// IDs stay unique either way: an append over an existing ID overwrites that
// entry, and a replace that carries a different ID drops the other entry
// holding it.
func (s *Store) Commit(book catalog.Book, editingID string) (replaced bool) {
	if editingID != "" {
		if i := catalog.IndexOf(s.books, editingID); i >= 0 {
			s.books[i] = book
			if book.ID != editingID {
				s.books = dropOthers(s.books, book.ID, i)
			}
			return true
		}
	}
	before := len(s.books)
	s.books = catalog.Append(s.books, book)
	return len(s.books) == before
}

// dropOthers removes every entry with the given id except the one at keep.
func dropOthers(books []catalog.Book, id string, keep int) []catalog.Book {
	out := books[:0]
	for i, b := range books {
		if i != keep && b.ID == id {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Remove deletes the book with the given ID. It is a no-op when absent.
func (s *Store) Remove(id string) bool {
	var ok bool
	s.books, ok = catalog.Remove(s.books, id)
	return ok
}
