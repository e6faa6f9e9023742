package cache

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// StoreCover writes r as the cover of bookID, replacing any previous cover.
// Returns the final file path.
func (m *Manager) StoreCover(bookID string, r io.Reader) (string, error) {
	if err := m.EnsureDir(); err != nil {
		return "", fmt.Errorf("create covers dir: %w", err)
	}

	destPath := m.CoverPath(bookID)
	tmpPath := destPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("writing cover: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}
	return destPath, nil
}

// SyncCover makes the stored cover match data: non-empty data is written
// unless identical bytes are already on disk, empty data removes the file.
func (m *Manager) SyncCover(bookID string, data []byte) error {
	if len(data) == 0 {
		return m.RemoveCover(bookID)
	}
	if existing, err := m.ReadCover(bookID); err == nil && bytes.Equal(existing, data) {
		return nil
	}
	_, err := m.StoreCover(bookID, bytes.NewReader(data))
	return err
}

// ReadCover returns the cover bytes for a book, or nil if it has none.
func (m *Manager) ReadCover(bookID string) ([]byte, error) {
	data, err := os.ReadFile(m.CoverPath(bookID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading cover: %w", err)
	}
	return data, nil
}

// HasCover checks if a cover image exists for the given book.
func (m *Manager) HasCover(bookID string) bool {
	_, err := os.Stat(m.CoverPath(bookID))
	return err == nil
}

// RemoveCover deletes the cover image for a book if it exists.
func (m *Manager) RemoveCover(bookID string) error {
	err := os.Remove(m.CoverPath(bookID))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// PruneCovers deletes every cover whose book ID is not in keep.
// Returns the IDs that were removed.
func (m *Manager) PruneCovers(keep map[string]bool) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(m.baseDir, CoversDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing covers: %w", err)
	}

	var removed []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".jpg") {
			continue
		}
		id := strings.TrimSuffix(name, ".jpg")
		if keep[id] {
			continue
		}
		if err := m.RemoveCover(id); err != nil {
			return removed, err
		}
		removed = append(removed, id)
	}
	return removed, nil
}
