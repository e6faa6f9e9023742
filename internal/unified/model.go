package unified

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ilaria3312/MyLibrary/internal/catalog"
	"github.com/ilaria3312/MyLibrary/internal/editor"
	"github.com/ilaria3312/MyLibrary/internal/library"
	"github.com/ilaria3312/MyLibrary/internal/tui"
	"github.com/ilaria3312/MyLibrary/internal/tui/listview"
	"go.uber.org/zap"
)

// Options configures the interactive app.
type Options struct {
	Store *library.Store
	// Persist is called with a full snapshot after every change. Nil keeps
	// the library in memory only.
	Persist       func([]catalog.Book) error
	Logger        *zap.Logger
	BooksPerShelf int
	// StartDir is where the cover picker opens.
	StartDir string
	Protocol tui.TerminalImageProtocol
}

// Model is the unified TUI orchestrator that manages view switching
type Model struct {
	currentView View
	width       int
	height      int

	store    *library.Store
	session  *editor.Session
	saver    *saver
	logger   *zap.Logger
	startDir string
	protocol tui.TerminalImageProtocol

	// View models
	library    LibraryModel
	editor     tui.EditorModel
	categories listview.Model
}

// New creates a new unified model starting at the shelves
func New(opts Options) Model {
	store := opts.Store
	if store == nil {
		store = library.NewStore(nil)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return Model{
		currentView: ViewLibrary,
		store:       store,
		session:     editor.New(),
		saver:       newSaver(opts.Persist),
		logger:      logger,
		startDir:    opts.StartDir,
		protocol:    opts.Protocol,
		library:     NewLibraryModel(store, opts.BooksPerShelf),
	}
}

// CurrentView returns the active view.
func (m Model) CurrentView() View { return m.currentView }

// Session returns the editor session shared by the add and edit flows.
func (m Model) Session() *editor.Session { return m.session }

func (m Model) Init() tea.Cmd {
	return m.library.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// The library keeps its size while hidden so it lays out correctly on return.
		m.library, _ = m.library.Update(msg)
		if m.currentView == ViewLibrary {
			return m, nil
		}
		return m.updateCurrentView(msg)

	case NavigateMsg:
		return m.handleNavigation(msg)

	case tui.EditorDoneMsg:
		return m.handleEditorDone(msg)

	case tui.CategoriesClosedMsg:
		m.currentView = ViewLibrary
		return m, nil

	case RemoveBookMsg:
		return m.handleRemove(msg)

	case PersistedMsg:
		return m.handlePersisted(msg)

	case QuitAppMsg:
		return m, tea.Quit

	default:
		return m.updateCurrentView(msg)
	}
}

func (m Model) View() string {
	switch m.currentView {
	case ViewLibrary:
		return m.library.View()
	case ViewEditor:
		return m.editor.View()
	case ViewCategories:
		return m.categories.View()
	default:
		return "Unknown view"
	}
}

func (m Model) updateCurrentView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLibrary:
		m.library, cmd = m.library.Update(msg)
	case ViewEditor:
		m.editor, cmd = m.editor.Update(msg)
	case ViewCategories:
		m.categories, cmd = m.categories.Update(msg)
	}

	return m, cmd
}

func (m Model) handleNavigation(msg NavigateMsg) (tea.Model, tea.Cmd) {
	switch msg.Target {
	case ViewEditor:
		if msg.BookID == "" {
			m.session.StartAdding()
		} else {
			book, ok := m.store.Get(msg.BookID)
			if !ok {
				m.library.SetStatus("", fmt.Errorf("book %s not found", msg.BookID))
				return m, nil
			}
			m.session.StartEditing(book)
		}
		m.editor = tui.NewEditorModel(m.session, m.startDir, m.protocol)
		m.currentView = ViewEditor
		m.logger.Debug("editor opened", zap.Stringer("mode", m.session.Mode()))
		if m.width > 0 {
			m.editor, _ = m.editor.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		}
		return m, m.editor.Init()

	case ViewCategories:
		m.categories = tui.NewCategoriesModel()
		m.categories.SetSize(m.width, m.height)
		m.currentView = ViewCategories
		return m, nil

	case ViewLibrary:
		m.currentView = ViewLibrary
		m.library.Refresh()
		return m, nil

	default:
		// Unknown target, stay on current view
		return m, nil
	}
}

func (m Model) handleEditorDone(msg tui.EditorDoneMsg) (tea.Model, tea.Cmd) {
	m.currentView = ViewLibrary

	if msg.Result == nil {
		m.library.SetStatus("no changes", nil)
		return m, nil
	}

	res := *msg.Result
	editingID := res.EditingID()
	replaced := m.store.Commit(res.Book, editingID)
	if editingID != "" && !replaced {
		m.logger.Warn("edited book was no longer in the library, added as new",
			zap.String("id", editingID))
	}
	m.library.Refresh()

	action := "added"
	if replaced {
		action = "updated"
	}
	m.logger.Info("book "+action,
		zap.String("id", res.Book.ID),
		zap.String("title", res.Book.Title))
	m.library.SetStatus(fmt.Sprintf("%s %q", action, res.Book.Title), nil)

	return m, m.saver.save(action, m.store.Books())
}

func (m Model) handleRemove(msg RemoveBookMsg) (tea.Model, tea.Cmd) {
	book, _ := m.store.Get(msg.ID)
	if !m.store.Remove(msg.ID) {
		m.library.SetStatus("", fmt.Errorf("book %s not found", msg.ID))
		return m, nil
	}
	m.library.Refresh()
	m.logger.Info("book removed", zap.String("id", msg.ID), zap.String("title", book.Title))
	m.library.SetStatus(fmt.Sprintf("removed %q", book.Title), nil)

	return m, m.saver.save("removed", m.store.Books())
}

func (m Model) handlePersisted(msg PersistedMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Err != nil:
		m.logger.Error("saving library", zap.String("action", msg.Action), zap.Error(msg.Err))
		m.library.SetStatus("", fmt.Errorf("saving library: %w", msg.Err))
	case msg.Skipped:
		m.logger.Debug("stale snapshot skipped", zap.String("action", msg.Action))
	default:
		m.logger.Debug("library saved", zap.String("action", msg.Action), zap.Int("books", msg.Count))
	}
	return m, nil
}

// Run starts the interactive library and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running library: %w", err)
	}
	return nil
}
