package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/ilaria3312/MyLibrary/internal/catalog"
	"github.com/ilaria3312/MyLibrary/internal/editor"
	"github.com/ilaria3312/MyLibrary/internal/picker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m EditorModel, s string) EditorModel {
	t.Helper()
	for _, r := range s {
		m, _ = m.Update(runes(string(r)))
	}
	return m
}

// --- shelves ---

func TestRenderShelves_OnePlankPerRow(t *testing.T) {
	rows := [][]catalog.Book{
		{{ID: "1", Title: "Dune", Author: "Herbert", Rating: 4}, {ID: "2", Title: "Emma", Author: "Austen"}},
		{},
		{},
	}
	out := RenderShelves(ShelfView{Rows: rows, BooksPerShelf: 2, Width: 40, Selected: -1})

	assert.Equal(t, 3, strings.Count(out, "▀"+strings.Repeat("▀", 39)))
	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, "Austen")
	assert.Contains(t, out, "★★★★☆")
	assert.Len(t, strings.Split(out, "\n"), 3*ShelfLines)
}

func TestRenderShelves_Window(t *testing.T) {
	rows := [][]catalog.Book{
		{{Title: "First"}},
		{{Title: "Second"}},
		{{Title: "Third"}},
	}
	out := RenderShelves(ShelfView{Rows: rows, BooksPerShelf: 1, Width: 30, Offset: 1, Visible: 1, Selected: -1})

	assert.NotContains(t, out, "First")
	assert.Contains(t, out, "Second")
	assert.NotContains(t, out, "Third")
}

func TestRenderShelves_MarksSelection(t *testing.T) {
	rows := [][]catalog.Book{{{Title: "A"}, {Title: "B"}}}
	out := RenderShelves(ShelfView{Rows: rows, BooksPerShelf: 2, Width: 20, Selected: 1})
	assert.Contains(t, out, "› B")
	assert.NotContains(t, out, "› A")
}

func TestPadOrTruncate(t *testing.T) {
	assert.Equal(t, "ab   ", padOrTruncate("ab", 5))
	assert.Equal(t, 5, xansi.StringWidth(padOrTruncate("a very long title", 5)))
	assert.True(t, strings.HasSuffix(padOrTruncate("a very long title", 5), "…"))
	assert.Equal(t, "", padOrTruncate("x", 0))
}

func TestRowOf(t *testing.T) {
	assert.Equal(t, 0, RowOf(4, 5))
	assert.Equal(t, 1, RowOf(5, 5))
	assert.Equal(t, 0, RowOf(3, 0))
	assert.Equal(t, 0, RowOf(-1, 5))
}

// --- footer ---

func TestShortcutsFromKeys(t *testing.T) {
	disabled := key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "zap"))
	disabled.SetEnabled(false)

	got := ShortcutsFromKeys([]key.Binding{
		key.NewBinding(key.WithKeys("a", "+"), key.WithHelp("a", "add")),
		disabled,
	})
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Key)
	assert.Equal(t, "a add", got[0].Label)
}

// --- editor form ---

func TestEditorModel_AddFlow(t *testing.T) {
	s := editor.New()
	s.StartAdding()
	m := NewEditorModel(s, t.TempDir(), ProtocolNone)

	m = typeText(t, m, "Dune")
	assert.Equal(t, "Dune", s.Draft().Title)

	// author is still missing
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.True(t, editor.IsValidationError(m.err))
	assert.True(t, s.IsOpen())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, rowAuthor, m.Focused())
	m = typeText(t, m, "Frank Herbert")
	assert.Nil(t, m.err)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	done, ok := cmd().(EditorDoneMsg)
	require.True(t, ok)
	require.NotNil(t, done.Result)
	assert.Equal(t, "Dune", done.Result.Book.Title)
	assert.Equal(t, "Frank Herbert", done.Result.Book.Author)
	assert.NotEmpty(t, done.Result.Book.ID)
	assert.False(t, s.IsOpen())
}

func TestEditorModel_EditKeepsValues(t *testing.T) {
	s := editor.New()
	s.StartEditing(catalog.Book{ID: "b1", Title: "Emma", Author: "Austen", Genre: "Fiction", Rating: 3})
	m := NewEditorModel(s, "", ProtocolNone)

	assert.Contains(t, m.View(), "Edit Book")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	done := cmd().(EditorDoneMsg)
	assert.Equal(t, "b1", done.Result.EditingID())
	assert.Equal(t, "Fiction", done.Result.Book.Genre)
	assert.Equal(t, 3, done.Result.Book.Rating)
}

func TestEditorModel_Rating(t *testing.T) {
	s := editor.New()
	s.StartAdding()
	m := NewEditorModel(s, "", ProtocolNone)

	for range rowRating {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	require.Equal(t, rowRating, m.Focused())

	m, _ = m.Update(runes("3"))
	assert.Equal(t, 3, s.Draft().Rating)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 4, s.Draft().Rating)
	m, _ = m.Update(runes("4"))
	assert.Equal(t, 0, s.Draft().Rating)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, s.Draft().Rating)
	_, _ = m.Update(runes("9"))
	assert.Equal(t, 0, s.Draft().Rating)
}

func TestEditorModel_Cover(t *testing.T) {
	s := editor.New()
	s.StartAdding()
	m := NewEditorModel(s, "", ProtocolNone)

	m, _ = m.Update(CoverLoadedMsg{Result: picker.Result{Path: "a.jpg", Data: []byte{1, 2, 3}}})
	assert.Equal(t, []byte{1, 2, 3}, s.Draft().CoverImage)

	m, _ = m.Update(CoverLoadedMsg{Result: picker.Result{Canceled: true}})
	assert.Equal(t, []byte{1, 2, 3}, s.Draft().CoverImage, "cancel keeps the previous cover")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, rowCover, m.Focused())
	_, _ = m.Update(runes("x"))
	assert.Nil(t, s.Draft().CoverImage)
}

func TestEditorModel_OpensPicker(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cover.png"), []byte("x"), 0600))

	s := editor.New()
	s.StartAdding()
	m := NewEditorModel(s, dir, ProtocolNone)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = m.Update(runes("c"))
	require.True(t, m.picking)
	assert.Contains(t, m.View(), "cover.png")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	assert.False(t, m.picking)
	assert.True(t, s.IsOpen())
}

func TestEditorModel_Cancel(t *testing.T) {
	s := editor.New()
	s.StartAdding()
	m := NewEditorModel(s, "", ProtocolNone)
	m = typeText(t, m, "Draft")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	done := cmd().(EditorDoneMsg)
	assert.Nil(t, done.Result)
	assert.False(t, s.IsOpen())
}

// --- file picker ---

func TestBuildDirectoryItems(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.jpg", "a.PNG", "notes.txt", ".hidden.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0700))

	items, err := buildDirectoryItems(dir, false)
	require.NoError(t, err)

	var names []string
	for _, it := range items {
		names = append(names, it.(FileItem).Name)
	}
	assert.Equal(t, []string{"sub", "a.PNG", "b.jpg"}, names)

	items, err = buildDirectoryItems(dir, true)
	require.NoError(t, err)
	assert.Len(t, items, 4)
}

func TestFilePicker_Navigate(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0700))

	m, err := NewFilePickerModel(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, m.Dir())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, sub, m.Dir())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, dir, m.Dir())
}

func TestFilePicker_MissingDir(t *testing.T) {
	_, err := NewFilePickerModel(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

// --- categories ---

func TestCategoriesModel(t *testing.T) {
	m := NewCategoriesModel()
	require.Len(t, m.Items(), 6)
	assert.Equal(t, CategoryItem("Fiction"), m.Items()[0])

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, CategoriesClosedMsg{}, cmd())
	assert.True(t, m.IsClosed())
}
