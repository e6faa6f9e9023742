package unified

import (
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ilaria3312/MyLibrary/internal/catalog"
	"github.com/ilaria3312/MyLibrary/internal/editor"
	"github.com/ilaria3312/MyLibrary/internal/library"
	"github.com/ilaria3312/MyLibrary/internal/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type recorder struct {
	mu    sync.Mutex
	saves [][]catalog.Book
	err   error
}

func (r *recorder) persist(books []catalog.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.saves = append(r.saves, books)
	return nil
}

func (r *recorder) last() []catalog.Book {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.saves) == 0 {
		return nil
	}
	return r.saves[len(r.saves)-1]
}

func sampleBooks() []catalog.Book {
	return []catalog.Book{
		{ID: "1", Title: "Dune", Author: "Frank Herbert"},
		{ID: "2", Title: "Emma", Author: "Jane Austen"},
		{ID: "3", Title: "Dracula", Author: "Bram Stoker"},
	}
}

func newTestModel(t *testing.T, rec *recorder) (Model, *library.Store) {
	t.Helper()
	store := library.NewStore(sampleBooks())
	m := New(Options{
		Store:         store,
		Persist:       rec.persist,
		Logger:        zaptest.NewLogger(t),
		BooksPerShelf: 2,
		StartDir:      t.TempDir(),
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model), store
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

// findMsg runs cmd, descending into batches, and returns the first message
// of type T.
func findMsg[T tea.Msg](cmd tea.Cmd) (T, bool) {
	var zero T
	if cmd == nil {
		return zero, false
	}
	switch msg := cmd().(type) {
	case T:
		return msg, true
	case tea.BatchMsg:
		for _, c := range msg {
			if found, ok := findMsg[T](c); ok {
				return found, true
			}
		}
	}
	return zero, false
}

// --- orchestrator ---

func TestModel_AddBook(t *testing.T) {
	rec := &recorder{}
	m, store := newTestModel(t, rec)

	m, _ = update(t, m, NavigateMsg{Target: ViewEditor})
	require.Equal(t, ViewEditor, m.CurrentView())
	require.True(t, m.Session().IsOpen())
	assert.False(t, m.Session().Mode().IsEditing())

	res := editor.Result{
		Book: catalog.Book{ID: "4", Title: "Beloved", Author: "Toni Morrison"},
		Mode: editor.Adding(),
	}
	m, cmd := update(t, m, tui.EditorDoneMsg{Result: &res})
	assert.Equal(t, ViewLibrary, m.CurrentView())
	assert.Equal(t, 4, store.Len())

	persisted, ok := findMsg[PersistedMsg](cmd)
	require.True(t, ok)
	assert.NoError(t, persisted.Err)
	assert.Equal(t, "added", persisted.Action)
	assert.Len(t, rec.last(), 4)

	_, _ = update(t, m, persisted)
}

func TestModel_EditBook(t *testing.T) {
	rec := &recorder{}
	m, store := newTestModel(t, rec)

	m, _ = update(t, m, NavigateMsg{Target: ViewEditor, BookID: "2"})
	require.Equal(t, ViewEditor, m.CurrentView())
	assert.Equal(t, "2", m.Session().Mode().EditingID())
	assert.Equal(t, "Emma", m.Session().Draft().Title)

	m.Session().UpdateField(editor.FieldRating, "5")
	res, err := m.Session().Commit()
	require.NoError(t, err)

	m, cmd := update(t, m, tui.EditorDoneMsg{Result: &res})
	assert.Equal(t, 3, store.Len())
	got, ok := store.Get("2")
	require.True(t, ok)
	assert.Equal(t, 5, got.Rating)

	persisted, ok := findMsg[PersistedMsg](cmd)
	require.True(t, ok)
	assert.Equal(t, "updated", persisted.Action)
	_ = m
}

func TestModel_EditMissingTargetAppends(t *testing.T) {
	rec := &recorder{}
	m, store := newTestModel(t, rec)

	res := editor.Result{
		Book: catalog.Book{ID: "gone", Title: "Ghost", Author: "Nobody"},
		Mode: editor.Editing("gone"),
	}
	_, cmd := update(t, m, tui.EditorDoneMsg{Result: &res})
	assert.Equal(t, 4, store.Len())
	_, ok := store.Get("gone")
	assert.True(t, ok)
	assert.NotNil(t, cmd)
}

func TestModel_EditUnknownIDStaysOnLibrary(t *testing.T) {
	m, _ := newTestModel(t, &recorder{})
	m, _ = update(t, m, NavigateMsg{Target: ViewEditor, BookID: "missing"})
	assert.Equal(t, ViewLibrary, m.CurrentView())
	assert.False(t, m.Session().IsOpen())
}

func TestModel_CancelEditor(t *testing.T) {
	rec := &recorder{}
	m, store := newTestModel(t, rec)

	m, _ = update(t, m, NavigateMsg{Target: ViewEditor})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	done, ok := findMsg[tui.EditorDoneMsg](cmd)
	require.True(t, ok)

	m, cmd = update(t, m, done)
	assert.Nil(t, cmd)
	assert.Equal(t, ViewLibrary, m.CurrentView())
	assert.Equal(t, 3, store.Len())
	assert.Empty(t, rec.saves)
}

func TestModel_RemoveBook(t *testing.T) {
	rec := &recorder{}
	m, store := newTestModel(t, rec)

	_, cmd := update(t, m, RemoveBookMsg{ID: "1"})
	assert.Equal(t, 2, store.Len())
	_, ok := store.Get("1")
	assert.False(t, ok)

	persisted, ok := findMsg[PersistedMsg](cmd)
	require.True(t, ok)
	assert.Equal(t, "removed", persisted.Action)
	assert.Len(t, rec.last(), 2)
}

func TestModel_RemoveUnknown(t *testing.T) {
	m, store := newTestModel(t, &recorder{})
	_, cmd := update(t, m, RemoveBookMsg{ID: "nope"})
	assert.Nil(t, cmd)
	assert.Equal(t, 3, store.Len())
}

func TestModel_PersistFailureIsShown(t *testing.T) {
	rec := &recorder{err: errors.New("disk full")}
	m, _ := newTestModel(t, rec)

	_, cmd := update(t, m, RemoveBookMsg{ID: "1"})
	persisted, ok := findMsg[PersistedMsg](cmd)
	require.True(t, ok)
	require.Error(t, persisted.Err)

	m, _ = update(t, m, persisted)
	assert.Contains(t, m.View(), "disk full")
}

func TestModel_Categories(t *testing.T) {
	m, _ := newTestModel(t, &recorder{})

	m, _ = update(t, m, NavigateMsg{Target: ViewCategories})
	require.Equal(t, ViewCategories, m.CurrentView())
	assert.Contains(t, m.View(), "Science Fiction")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	closed, ok := findMsg[tui.CategoriesClosedMsg](cmd)
	require.True(t, ok)
	m, _ = update(t, m, closed)
	assert.Equal(t, ViewLibrary, m.CurrentView())
}

func TestModel_NoPersist(t *testing.T) {
	store := library.NewStore(sampleBooks())
	m := New(Options{Store: store})
	_, cmd := update(t, m, RemoveBookMsg{ID: "1"})
	assert.Nil(t, cmd)
	assert.Equal(t, 2, store.Len())
}

// --- library view ---

func newLibrary(t *testing.T) (LibraryModel, *library.Store) {
	t.Helper()
	store := library.NewStore(sampleBooks())
	m := NewLibraryModel(store, 2)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, store
}

func TestLibrary_CursorMovement(t *testing.T) {
	m, _ := newLibrary(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.Cursor())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, m.Cursor())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, m.Cursor(), "stops at the last book")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.Cursor())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.Cursor())

	book, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "Dracula", book.Title)
}

func TestLibrary_DownToShorterRow(t *testing.T) {
	m, _ := newLibrary(t)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.Cursor())
}

func TestLibrary_Search(t *testing.T) {
	m, store := newLibrary(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	require.True(t, m.Searching())

	for _, r := range "dr" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	assert.Equal(t, "dr", store.Query())
	require.Len(t, store.FilteredBooks(), 1)
	book, _ := m.Selected()
	assert.Equal(t, "Dracula", book.Title)
	assert.Contains(t, m.View(), "1 of 3 books")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Searching())
	assert.Equal(t, "", store.Query())
	assert.Len(t, store.FilteredBooks(), 3)
}

func TestLibrary_RemoveNeedsConfirmation(t *testing.T) {
	m, _ := newLibrary(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	require.True(t, m.Confirming())
	assert.Contains(t, m.View(), `Remove "Dune"`)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	assert.False(t, m.Confirming())
	assert.Nil(t, cmd)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	msg, ok := findMsg[RemoveBookMsg](cmd)
	require.True(t, ok)
	assert.Equal(t, "1", msg.ID)
}

func TestLibrary_EditEmitsNavigation(t *testing.T) {
	m, _ := newLibrary(t)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	nav, ok := findMsg[NavigateMsg](cmd)
	require.True(t, ok)
	assert.Equal(t, ViewEditor, nav.Target)
	assert.Equal(t, "2", nav.BookID)
}

func TestLibrary_EmptyShelves(t *testing.T) {
	m := NewLibraryModel(library.NewStore(nil), 5)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})

	_, ok := m.Selected()
	assert.False(t, ok)
	assert.Contains(t, m.View(), "Your shelves are empty")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	assert.False(t, m.Confirming())
}

// --- saver ---

func TestSaver_DropsStaleSnapshot(t *testing.T) {
	rec := &recorder{}
	s := newSaver(rec.persist)

	older := s.save("added", []catalog.Book{{ID: "1"}})
	newer := s.save("added", []catalog.Book{{ID: "1"}, {ID: "2"}})

	first := newer().(PersistedMsg)
	assert.False(t, first.Skipped)
	second := older().(PersistedMsg)
	assert.True(t, second.Skipped)

	require.Len(t, rec.saves, 1)
	assert.Len(t, rec.last(), 2)
}

func TestSaver_Nil(t *testing.T) {
	assert.Nil(t, newSaver(nil).save("added", nil))
}
