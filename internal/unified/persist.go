package unified

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ilaria3312/MyLibrary/internal/catalog"
)

// saver writes library snapshots off the UI loop. Saves run one at a time
// and a snapshot older than the last one written is dropped, so the file
// always ends up holding the latest state.
type saver struct {
	persist func([]catalog.Book) error

	seq uint64 // last issued, touched only from Update

	mu      sync.Mutex
	written uint64
}

func newSaver(persist func([]catalog.Book) error) *saver {
	return &saver{persist: persist}
}

func (s *saver) save(action string, books []catalog.Book) tea.Cmd {
	if s == nil || s.persist == nil {
		return nil
	}
	s.seq++
	n := s.seq

	return func() tea.Msg {
		s.mu.Lock()
		defer s.mu.Unlock()

		if n < s.written {
			return PersistedMsg{Action: action, Count: len(books), Skipped: true}
		}
		if err := s.persist(books); err != nil {
			return PersistedMsg{Action: action, Count: len(books), Err: err}
		}
		s.written = n
		return PersistedMsg{Action: action, Count: len(books)}
	}
}
