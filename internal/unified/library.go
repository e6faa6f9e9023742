package unified

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ilaria3312/MyLibrary/internal/catalog"
	"github.com/ilaria3312/MyLibrary/internal/library"
	"github.com/ilaria3312/MyLibrary/internal/tui"
)

// chromeLines is everything around the shelves: header, search, status,
// footer and the border.
const chromeLines = 10

// LibraryModel is the shelf view with the search bar.
type LibraryModel struct {
	store *library.Store
	keys  tui.LibraryKeys

	search    textinput.Model
	searching bool

	perShelf int
	cursor   int // index into the filtered books
	offset   int // first visible shelf row

	confirming bool
	status     string
	err        error

	width     int
	height    int
	activeCmd string
}

// NewLibraryModel creates the shelf view over store.
func NewLibraryModel(store *library.Store, booksPerShelf int) LibraryModel {
	if booksPerShelf < 1 {
		booksPerShelf = library.BooksPerShelf
	}

	in := textinput.New()
	in.Placeholder = "Search titles"
	in.Prompt = "🔍 "
	in.CharLimit = 100
	in.Width = 40
	in.SetValue(store.Query())

	return LibraryModel{
		store:    store,
		keys:     tui.NewLibraryKeys(),
		search:   in,
		perShelf: booksPerShelf,
	}
}

// Cursor returns the index of the selected book in the filtered list.
func (m LibraryModel) Cursor() int { return m.cursor }

// Searching reports whether the search bar has focus.
func (m LibraryModel) Searching() bool { return m.searching }

// Confirming reports whether a removal is awaiting confirmation.
func (m LibraryModel) Confirming() bool { return m.confirming }

// Selected returns the book under the cursor.
func (m LibraryModel) Selected() (catalog.Book, bool) {
	books := m.store.FilteredBooks()
	if m.cursor < 0 || m.cursor >= len(books) {
		return catalog.Book{}, false
	}
	return books[m.cursor], true
}

// SetStatus shows a one-line message under the shelves.
func (m *LibraryModel) SetStatus(status string, err error) {
	m.status = status
	m.err = err
}

// Refresh re-clamps the cursor after the store changed underneath the view.
func (m *LibraryModel) Refresh() {
	m.clamp()
}

func (m LibraryModel) viewportLines() int {
	if m.height <= 0 {
		return tui.ShelfLines * 3
	}
	return max(m.height-chromeLines, tui.ShelfLines)
}

func (m LibraryModel) visibleRows() int {
	return max(m.viewportLines()/tui.ShelfLines, 1)
}

func (m *LibraryModel) clamp() {
	n := len(m.store.FilteredBooks())
	switch {
	case n == 0:
		m.cursor = 0
	case m.cursor >= n:
		m.cursor = n - 1
	case m.cursor < 0:
		m.cursor = 0
	}

	row := tui.RowOf(m.cursor, m.perShelf)
	visible := m.visibleRows()
	if row < m.offset {
		m.offset = row
	}
	if row >= m.offset+visible {
		m.offset = row - visible + 1
	}
	m.offset = max(m.offset, 0)
}

func (m LibraryModel) Init() tea.Cmd {
	return nil
}

func (m LibraryModel) Update(msg tea.Msg) (LibraryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clamp()
		return m, nil

	case tui.ClearActiveCmdMsg:
		m.activeCmd = ""
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.confirming:
			return m.updateConfirming(msg)
		case m.searching:
			return m.updateSearching(msg)
		}
		return m.updateBrowsing(msg)
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m LibraryModel) updateSearching(msg tea.KeyMsg) (LibraryModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, func() tea.Msg { return QuitAppMsg{} }
	case "esc":
		m.search.SetValue("")
		m.store.SetQuery("")
		m.search.Blur()
		m.searching = false
		m.clamp()
		return m, nil
	case "enter", "down", "tab":
		m.search.Blur()
		m.searching = false
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.store.Query() {
		m.store.SetQuery(m.search.Value())
		m.cursor = 0
		m.offset = 0
	}
	m.clamp()
	return m, cmd
}

func (m LibraryModel) updateConfirming(msg tea.KeyMsg) (LibraryModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, func() tea.Msg { return QuitAppMsg{} }
	case "y", "enter":
		m.confirming = false
		book, ok := m.Selected()
		if !ok {
			return m, nil
		}
		m.activeCmd = "y"
		return m, tea.Batch(
			func() tea.Msg { return RemoveBookMsg{ID: book.ID} },
			tui.HighlightCmd(),
		)
	case "n", "esc":
		m.confirming = false
		m.status = "kept"
	}
	return m, nil
}

func (m LibraryModel) updateBrowsing(msg tea.KeyMsg) (LibraryModel, tea.Cmd) {
	n := len(m.store.FilteredBooks())
	m.status, m.err = "", nil

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, func() tea.Msg { return QuitAppMsg{} }

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.activeCmd = "/"
		return m, tea.Batch(m.search.Focus(), tui.HighlightCmd())

	case key.Matches(msg, m.keys.Clear):
		if m.store.Query() != "" {
			m.search.SetValue("")
			m.store.SetQuery("")
			m.clamp()
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor >= m.perShelf {
			m.cursor -= m.perShelf
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor+m.perShelf < n {
			m.cursor += m.perShelf
		} else if lastRow := tui.RowOf(n-1, m.perShelf); tui.RowOf(m.cursor, m.perShelf) < lastRow {
			m.cursor = n - 1
		}
	case key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor < n-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Add):
		m.activeCmd = "a"
		return m, tea.Batch(
			func() tea.Msg { return NavigateMsg{Target: ViewEditor} },
			tui.HighlightCmd(),
		)

	case key.Matches(msg, m.keys.Edit):
		book, ok := m.Selected()
		if !ok {
			return m, nil
		}
		m.activeCmd = "enter"
		return m, tea.Batch(
			func() tea.Msg { return NavigateMsg{Target: ViewEditor, BookID: book.ID} },
			tui.HighlightCmd(),
		)

	case key.Matches(msg, m.keys.Remove):
		if _, ok := m.Selected(); ok {
			m.confirming = true
			m.status = ""
		}
		return m, nil

	case key.Matches(msg, m.keys.Categories):
		m.activeCmd = "tab"
		return m, tea.Batch(
			func() tea.Msg { return NavigateMsg{Target: ViewCategories} },
			tui.HighlightCmd(),
		)
	}

	m.clamp()
	return m, nil
}

func (m LibraryModel) View() string {
	outer := lipgloss.NewStyle().Padding(0, 1)
	width := max(m.width-6, 30)

	var b strings.Builder

	// ── Header ──
	count := fmt.Sprintf("%d books", m.store.Len())
	if q := m.store.Query(); q != "" {
		count = fmt.Sprintf("%d of %d books match %q", len(m.store.FilteredBooks()), m.store.Len(), q)
	}
	b.WriteString(tui.StyleHeader.Render("📚 My Library"))
	b.WriteString("  ")
	b.WriteString(tui.StyleHelp.Render(count))
	b.WriteString("\n\n")

	// ── Search ──
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	// ── Shelves ──
	rows, err := m.store.ShelfRows(float64(m.viewportLines()), float64(tui.ShelfLines), m.perShelf)
	switch {
	case err != nil:
		b.WriteString(tui.StyleError.Render(err.Error()))
	case m.store.Len() == 0:
		b.WriteString(tui.RenderShelves(tui.ShelfView{
			Rows: rows, BooksPerShelf: m.perShelf, Width: width,
			Visible: m.visibleRows(), Selected: -1,
		}))
		b.WriteString("\n")
		b.WriteString(tui.StyleHelp.Render("Your shelves are empty. Press a to add a book."))
	default:
		b.WriteString(tui.RenderShelves(tui.ShelfView{
			Rows:          rows,
			BooksPerShelf: m.perShelf,
			Width:         width,
			Offset:        m.offset,
			Visible:       m.visibleRows(),
			Selected:      m.cursor,
		}))
	}
	b.WriteString("\n\n")

	// ── Status ──
	b.WriteString(m.renderStatus())
	b.WriteString("\n")

	// ── Footer ──
	if m.confirming {
		b.WriteString(tui.RenderFooterBar([]tui.ShortcutEntry{
			{Key: "y", Label: "y/enter remove"},
			{Key: "", Label: "n/esc keep"},
		}, m.activeCmd))
	} else {
		b.WriteString(tui.RenderFooterBar(tui.ShortcutsFromKeys(m.keys.ShortHelp()), m.activeCmd))
	}

	return outer.Render(tui.StyleBorder.Render(b.String()))
}

func (m LibraryModel) renderStatus() string {
	if m.confirming {
		book, _ := m.Selected()
		danger := lipgloss.NewStyle().Foreground(tui.ColorRed).Bold(true)
		return danger.Render(fmt.Sprintf("Remove %q by %s?", book.Title, book.Author))
	}
	if m.err != nil {
		return tui.StyleError.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.status != "" {
		return tui.StyleSuccess.Render(m.status)
	}

	book, ok := m.Selected()
	if !ok {
		return ""
	}
	parts := []string{tui.StyleHighlight.Render(book.Title), tui.StyleNormal.Render("by " + book.Author)}
	if book.Genre != "" {
		parts = append(parts, tui.StyleGenre.Render(book.Genre))
	}
	if book.Publisher != "" {
		parts = append(parts, tui.StyleHelp.Render(book.Publisher))
	}
	if book.Rating > 0 {
		parts = append(parts, tui.StyleStars.Render(catalog.Stars(book.Rating)))
	}
	return strings.Join(parts, tui.StyleHelp.Render(" · "))
}
