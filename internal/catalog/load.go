package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Load reads library.yml. A missing file is an empty library.
func Load(path string) ([]Book, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Book{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading library: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML book list and normalizes hand-edited entries:
// ratings are clamped to the star range, books without an id get one and
// repeated ids collapse to a single book.
func Parse(data []byte) ([]Book, error) {
	var books []Book
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &books); err != nil {
			return nil, fmt.Errorf("parsing library YAML: %w", err)
		}
	}
	if len(books) == 0 {
		return []Book{}, nil
	}

	for i := range books {
		books[i].Rating = ClampRating(books[i].Rating)
		if books[i].ID == "" {
			books[i].ID = uuid.NewString()
		}
	}
	return Dedupe(books), nil
}
