// Package storage persists the book collection between runs.
package storage

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ilaria3312/MyLibrary/internal/catalog"
	"github.com/ilaria3312/MyLibrary/internal/storage/pebblestore"
	"github.com/ilaria3312/MyLibrary/internal/storage/yamlfile"
	"go.uber.org/zap"
)

// Backend loads and saves the whole collection. Books come back in the
// order they were saved, with CoverImage populated.
type Backend interface {
	Load() ([]catalog.Book, error)
	Save(books []catalog.Book) error
	Close() error
}

const (
	KindYAML   = "yaml"
	KindPebble = "pebble"
)

// ErrUnknownBackend is returned by Open for an unrecognised kind.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Open returns the backend of the given kind rooted at dir.
func Open(kind, dir string, logger *zap.Logger) (Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch kind {
	case "", KindYAML:
		return yamlfile.Open(dir, logger)
	case KindPebble:
		return pebblestore.Open(filepath.Join(dir, pebblestore.DirName), logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
	}
}
