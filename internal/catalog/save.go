package catalog

import (
	"bytes"
	"fmt"

	"github.com/ilaria3312/MyLibrary/internal/util"
	"gopkg.in/yaml.v3"
)

// Marshal encodes a book list to YAML bytes.
func Marshal(books []Book) ([]byte, error) {
	if books == nil {
		books = []Book{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(books); err != nil {
		return nil, fmt.Errorf("encoding library: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding library: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the book list to path, replacing any previous file atomically.
func Save(path string, books []Book) error {
	data, err := Marshal(books)
	if err != nil {
		return err
	}
	return util.WriteFileAtomic(path, data, 0600)
}

// Append adds a book to the list and returns the updated slice.
// If a book with the same ID already exists it is replaced in place.
func Append(books []Book, b Book) []Book {
	if i := IndexOf(books, b.ID); i >= 0 {
		books[i] = b
		return books
	}
	return append(books, b)
}

// Replace overwrites the book whose ID is id with b, keeping its position.
// It reports false when no such book exists.
func Replace(books []Book, id string, b Book) bool {
	i := IndexOf(books, id)
	if i < 0 {
		return false
	}
	books[i] = b
	return true
}

// Remove removes a book by ID. Returns the updated slice and whether a book
// was actually removed.
func Remove(books []Book, id string) ([]Book, bool) {
	i := IndexOf(books, id)
	if i < 0 {
		return books, false
	}
	return append(books[:i], books[i+1:]...), true
}

// Dedupe collapses repeated IDs. The last value wins and keeps the position
// of the first occurrence.
func Dedupe(books []Book) []Book {
	out := make([]Book, 0, len(books))
	for _, b := range books {
		out = Append(out, b)
	}
	return out
}
