package cache

import (
	"os"
	"path/filepath"
)

// CoversDir is the directory, relative to the data dir, that holds cover files.
const CoversDir = ".covers"

// Manager handles cover files stored next to the library.
type Manager struct {
	baseDir string
}

// New creates a cache Manager rooted at baseDir.
func New(baseDir string) *Manager {
	return &Manager{baseDir: baseDir}
}

// BaseDir returns the directory the manager is rooted at.
func (m *Manager) BaseDir() string {
	return m.baseDir
}

// CoverPath returns the path where a book's cover is stored.
// Layout: <baseDir>/.covers/<bookID>.jpg
func (m *Manager) CoverPath(bookID string) string {
	return filepath.Join(m.baseDir, CoversDir, bookID+".jpg")
}

// RelCoverPath returns CoverPath relative to the base dir, as recorded in
// the library file.
func (m *Manager) RelCoverPath(bookID string) string {
	return filepath.ToSlash(filepath.Join(CoversDir, bookID+".jpg"))
}

// EnsureDir creates the covers directory.
func (m *Manager) EnsureDir() error {
	return os.MkdirAll(filepath.Join(m.baseDir, CoversDir), 0750)
}
