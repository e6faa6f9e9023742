// Package yamlfile stores the library as library.yml with covers as JPEG
// files alongside it.
package yamlfile

import (
	"fmt"
	"path/filepath"

	"github.com/ilaria3312/MyLibrary/internal/cache"
	"github.com/ilaria3312/MyLibrary/internal/catalog"
	"github.com/ilaria3312/MyLibrary/internal/util"
	"go.uber.org/zap"
)

// FileName is the library file inside the data dir.
const FileName = "library.yml"

// Store is a YAML file backend.
type Store struct {
	dir    string
	covers *cache.Manager
	logger *zap.Logger
}

// Open prepares a store rooted at dir, creating the directory if needed.
// A nil logger discards logs.
func Open(dir string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := util.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &Store{dir: dir, covers: cache.New(dir), logger: logger}, nil
}

// Path returns the library file path.
func (s *Store) Path() string {
	return filepath.Join(s.dir, FileName)
}

// Load reads library.yml and attaches each book's cover.
func (s *Store) Load() ([]catalog.Book, error) {
	books, err := catalog.Load(s.Path())
	if err != nil {
		return nil, err
	}
	for i := range books {
		if books[i].Cover == "" {
			continue
		}
		data, err := s.covers.ReadCover(books[i].ID)
		if err != nil {
			return nil, err
		}
		if data == nil {
			s.logger.Warn("cover file missing", zap.String("book_id", books[i].ID), zap.String("cover", books[i].Cover))
			books[i].Cover = ""
			continue
		}
		books[i].CoverImage = data
	}
	s.logger.Debug("library loaded", zap.String("path", s.Path()), zap.Int("books", len(books)))
	return books, nil
}

// Save writes covers first, then the library file, then prunes covers of
// books no longer present.
func (s *Store) Save(books []catalog.Book) error {
	out := make([]catalog.Book, len(books))
	keep := make(map[string]bool, len(books))
	for i, b := range books {
		if err := s.covers.SyncCover(b.ID, b.CoverImage); err != nil {
			return fmt.Errorf("saving cover for %s: %w", b.ID, err)
		}
		b.Cover = ""
		if b.HasCover() {
			b.Cover = s.covers.RelCoverPath(b.ID)
			keep[b.ID] = true
		}
		out[i] = b
	}

	if err := catalog.Save(s.Path(), out); err != nil {
		return err
	}

	removed, err := s.covers.PruneCovers(keep)
	if err != nil {
		return fmt.Errorf("pruning covers: %w", err)
	}
	if len(removed) > 0 {
		s.logger.Debug("pruned covers", zap.Strings("book_ids", removed))
	}
	s.logger.Debug("library saved", zap.String("path", s.Path()), zap.Int("books", len(out)))
	return nil
}

// Close is a no-op; every Save is already durable.
func (s *Store) Close() error { return nil }
