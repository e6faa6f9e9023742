// Package listview wraps a bubbles list with the quit, select and resize
// handling shared by the app's list screens.
package listview

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SelectHandler is called when an item is selected.
// Return true to close the view, false to continue.
type SelectHandler func(selectedItem list.Item) bool

// KeyHandler is called for custom key handling.
// Return true if the key was handled, false to pass through to default handling.
type KeyHandler func(msg tea.KeyMsg) (handled bool, cmd tea.Cmd)

// Config configures a list view.
type Config struct {
	List list.Model

	CloseKeys  key.Binding
	SelectKeys key.Binding

	OnSelect   SelectHandler
	OnKeyPress KeyHandler

	// OnClose produces the command run when the view closes. Nil means
	// tea.Quit, for views that run as their own program.
	OnClose func() tea.Cmd

	BorderStyle lipgloss.Style
	ShowBorder  bool
}

// Model is a list screen. It is a value type; copies share nothing.
type Model struct {
	config Config
	list   list.Model
	closed bool
}

// New creates a list view.
func New(cfg Config) Model {
	return Model{
		config: cfg,
		list:   cfg.List,
	}
}

// List returns the underlying list model for direct access.
func (m *Model) List() *list.Model {
	return &m.list
}

// IsClosed reports whether the view has been closed.
func (m Model) IsClosed() bool {
	return m.closed
}

// Reopen clears the closed flag so an embedded view can be shown again.
func (m *Model) Reopen() {
	m.closed = false
}

func (m *Model) close() tea.Cmd {
	m.closed = true
	if m.config.OnClose != nil {
		return m.config.OnClose()
	}
	return tea.Quit
}

// SetSize sizes the list, leaving room for the border when shown.
func (m *Model) SetSize(width, height int) {
	if m.config.ShowBorder {
		h, v := m.config.BorderStyle.GetFrameSize()
		width, height = width-h, height-v
	}
	m.list.SetSize(max(width, 0), max(height, 0))
}

// Update handles the standard keys and forwards everything else to the list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		if m.config.OnKeyPress != nil {
			if handled, cmd := m.config.OnKeyPress(msg); handled {
				return m, cmd
			}
		}

		switch {
		case key.Matches(msg, m.config.CloseKeys):
			return m, m.close()

		case key.Matches(msg, m.config.SelectKeys):
			if m.config.OnSelect != nil {
				if item := m.list.SelectedItem(); item != nil && m.config.OnSelect(item) {
					return m, m.close()
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the list.
func (m Model) View() string {
	view := m.list.View()
	if m.config.ShowBorder {
		return m.config.BorderStyle.Render(view)
	}
	return view
}

// SelectedItem returns the currently selected item.
func (m Model) SelectedItem() list.Item {
	return m.list.SelectedItem()
}

// Items returns all list items.
func (m Model) Items() []list.Item {
	return m.list.Items()
}
