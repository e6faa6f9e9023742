package library

import (
	"errors"
	"math"

	"github.com/ilaria3312/MyLibrary/internal/catalog"
)

const (
	// BooksPerShelf is the default shelf capacity.
	BooksPerShelf = 5
	// ShelfHeight is the default height of one shelf, in viewport units.
	ShelfHeight = 120.0
)

// ErrInvalidConfiguration is returned for a shelf capacity below one or a
// non-positive shelf height.
var ErrInvalidConfiguration = errors.New("invalid shelf configuration")

// MinRowsForViewport returns how many shelves are needed to fill a viewport:
// ceil(viewportHeight / shelfHeight), never negative.
func MinRowsForViewport(viewportHeight, shelfHeight float64) int {
	if shelfHeight <= 0 || viewportHeight <= 0 || math.IsNaN(viewportHeight) {
		return 0
	}
	if math.IsInf(viewportHeight, 1) {
		return 0
	}
	return int(math.Ceil(viewportHeight / shelfHeight))
}

// ComputeShelfRows splits books into consecutive rows of at most
// booksPerShelf, then appends empty rows until there are at least
// MinRowsForViewport rows. Padding rows always follow every real row.
func ComputeShelfRows(books []catalog.Book, viewportHeight, shelfHeight float64, booksPerShelf int) ([][]catalog.Book, error) {
	if booksPerShelf < 1 || shelfHeight <= 0 || math.IsNaN(shelfHeight) {
		return nil, ErrInvalidConfiguration
	}

	full := (len(books) + booksPerShelf - 1) / booksPerShelf
	total := max(full, MinRowsForViewport(viewportHeight, shelfHeight))

	rows := make([][]catalog.Book, 0, total)
	for start := 0; start < len(books); start += booksPerShelf {
		end := min(start+booksPerShelf, len(books))
		row := make([]catalog.Book, end-start)
		copy(row, books[start:end])
		rows = append(rows, row)
	}
	for len(rows) < total {
		rows = append(rows, []catalog.Book{})
	}
	return rows, nil
}
