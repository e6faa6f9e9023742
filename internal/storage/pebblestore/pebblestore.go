// Package pebblestore keeps the library in a Pebble key-value store.
//
// Key schema:
//   - book/<seq>  -> book JSON, seq is the zero-padded display position
//   - cover/<id>  -> cover bytes
package pebblestore

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/ilaria3312/MyLibrary/internal/catalog"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

// DirName is the database directory inside the data dir.
const DirName = "library.db"

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary

	bookPrefix  = []byte("book/")
	coverPrefix = []byte("cover/")
)

// Store is a Pebble backend.
type Store struct {
	db     *pebble.DB
	logger *zap.Logger
}

// Open opens or creates the database at path. A nil logger discards logs.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open PebbleDB: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func bookKey(seq int) []byte {
	return []byte(fmt.Sprintf("%s%08d", bookPrefix, seq))
}

func coverKey(id string) []byte {
	return append(append([]byte{}, coverPrefix...), id...)
}

// prefixEnd returns the smallest key greater than every key with prefix p.
func prefixEnd(p []byte) []byte {
	end := append([]byte{}, p...)
	end[len(end)-1]++
	return end
}

// Load returns the books in saved order with covers attached.
func (s *Store) Load() ([]catalog.Book, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: bookPrefix,
		UpperBound: prefixEnd(bookPrefix),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	books := []catalog.Book{}
	for iter.First(); iter.Valid(); iter.Next() {
		var b catalog.Book
		if err := json.Unmarshal(iter.Value(), &b); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", iter.Key(), err)
		}
		b.Rating = catalog.ClampRating(b.Rating)
		books = append(books, b)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}

	for i := range books {
		data, err := s.cover(books[i].ID)
		if err != nil {
			return nil, err
		}
		books[i].CoverImage = data
	}
	s.logger.Debug("library loaded", zap.Int("books", len(books)))
	return books, nil
}

func (s *Store) cover(id string) ([]byte, error) {
	value, closer, err := s.db.Get(coverKey(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cover %s: %w", id, err)
	}
	defer closer.Close()
	return append([]byte(nil), value...), nil
}

// Save replaces the stored collection in one synced batch.
func (s *Store) Save(books []catalog.Book) error {
	batch := s.db.NewBatch()
	defer batch.Close()

	if err := batch.DeleteRange(bookPrefix, prefixEnd(bookPrefix), nil); err != nil {
		return err
	}
	if err := batch.DeleteRange(coverPrefix, prefixEnd(coverPrefix), nil); err != nil {
		return err
	}

	for i, b := range books {
		b.Cover = ""
		data, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", b.ID, err)
		}
		if err := batch.Set(bookKey(i), data, nil); err != nil {
			return err
		}
		if b.HasCover() {
			if err := batch.Set(coverKey(b.ID), b.CoverImage, nil); err != nil {
				return err
			}
		}
	}

	if err := batch.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("committing library: %w", err)
	}
	s.logger.Debug("library saved", zap.Int("books", len(books)))
	return nil
}
