package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ilaria3312/MyLibrary/internal/catalog"
	"github.com/ilaria3312/MyLibrary/internal/editor"
	"github.com/ilaria3312/MyLibrary/internal/picker"
)

// EditorDoneMsg is emitted when the book form closes. Result is nil when the
// user cancelled.
type EditorDoneMsg struct {
	Result *editor.Result
}

// CoverLoadedMsg carries the outcome of a cover pick.
type CoverLoadedMsg struct {
	Result picker.Result
	Err    error
}

// form rows, in tab order
const (
	rowTitle = iota
	rowAuthor
	rowGenre
	rowPublisher
	rowRating
	rowCover
	rowCount
)

var textFields = [...]editor.Field{editor.FieldTitle, editor.FieldAuthor, editor.FieldGenre, editor.FieldPublisher}

// EditorModel is the add/edit book form. It owns an editor.Session for the
// lifetime of the form and hosts the cover file picker.
type EditorModel struct {
	session  *editor.Session
	inputs   []textinput.Model
	focused  int
	keys     EditorKeys
	err      error
	status   string
	width    int
	height   int
	protocol TerminalImageProtocol

	picking  bool
	files    FilePickerModel
	startDir string

	activeCmd string
}

// NewEditorModel builds a form over an open session.
func NewEditorModel(s *editor.Session, startDir string, protocol TerminalImageProtocol) EditorModel {
	m := EditorModel{
		session:  s,
		inputs:   make([]textinput.Model, len(textFields)),
		keys:     NewEditorKeys(),
		protocol: protocol,
		startDir: startDir,
	}

	const fieldWidth = 42
	d := s.Draft()
	values := [...]string{d.Title, d.Author, d.Genre, d.Publisher}
	placeholders := [...]string{"Book title", "Author name", "Genre", "Publisher"}
	limits := [...]int{200, 100, 60, 100}

	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.SetValue(values[i])
		in.CharLimit = limits[i]
		in.Width = fieldWidth
		in.Prompt = "│ "
		m.inputs[i] = in
	}
	m.inputs[rowTitle].Focus()
	return m
}

// Session returns the session the form edits.
func (m EditorModel) Session() *editor.Session { return m.session }

// Focused returns the focused form row.
func (m EditorModel) Focused() int { return m.focused }

func (m EditorModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m EditorModel) Update(msg tea.Msg) (EditorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ClearActiveCmdMsg:
		m.activeCmd = ""
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.picking {
			var cmd tea.Cmd
			m.files, cmd = m.files.Update(msg)
			return m, cmd
		}
		return m, nil

	case CoverLoadedMsg:
		m.picking = false
		switch {
		case msg.Err != nil:
			m.err = fmt.Errorf("cover: %w", msg.Err)
		case msg.Result.Canceled:
			m.status = "cover unchanged"
		default:
			m.session.SetCoverImage(msg.Result.Data)
			m.err = nil
			m.status = "cover set from " + msg.Result.Path
		}
		return m, nil
	}

	if m.picking {
		var cmd tea.Cmd
		m.files, cmd = m.files.Update(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, m.updateInputs(msg)
}

func (m EditorModel) handleKey(msg tea.KeyMsg) (EditorModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.session.Cancel()
		return m, func() tea.Msg { return EditorDoneMsg{} }

	case key.Matches(msg, m.keys.Save):
		return m.submit()

	case msg.String() == "enter" && m.focused < rowRating:
		if m.focused == rowPublisher || !m.session.IsValid() {
			return m.focus(m.focused + 1)
		}
		return m.submit()

	case key.Matches(msg, m.keys.Next):
		m.activeCmd = "tab"
		next, cmd := m.focus(m.focused + 1)
		return next, tea.Batch(cmd, HighlightCmd())

	case key.Matches(msg, m.keys.Prev):
		m.activeCmd = "tab"
		prev, cmd := m.focus(m.focused - 1)
		return prev, tea.Batch(cmd, HighlightCmd())
	}

	switch m.focused {
	case rowRating:
		return m.handleRatingKey(msg)
	case rowCover:
		return m.handleCoverKey(msg)
	}
	return m, m.updateInputs(msg)
}

func (m EditorModel) handleRatingKey(msg tea.KeyMsg) (EditorModel, tea.Cmd) {
	rating := m.session.Draft().Rating
	switch {
	case key.Matches(msg, m.keys.StarUp):
		m.session.SetRating(rating + 1)
	case key.Matches(msg, m.keys.StarDown):
		m.session.SetRating(rating - 1)
	case len(msg.Runes) == 1 && msg.Runes[0] >= '0' && msg.Runes[0] <= '5':
		n := int(msg.Runes[0] - '0')
		if n == rating {
			n = 0
		}
		m.session.UpdateField(editor.FieldRating, fmt.Sprint(n))
	case msg.String() == "enter":
		return m.focus(rowCover)
	}
	return m, nil
}

func (m EditorModel) handleCoverKey(msg tea.KeyMsg) (EditorModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.PickCover):
		files, err := NewFilePickerModel(m.startDir)
		if err != nil {
			m.err = err
			return m, nil
		}
		if m.width > 0 {
			files.SetSize(m.width, m.height)
		}
		m.files = files
		m.picking = true
		m.status = ""
		return m, nil
	case key.Matches(msg, m.keys.ClearCover):
		m.session.SetCoverImage(nil)
		m.status = "cover removed"
	}
	return m, nil
}

func (m EditorModel) focus(row int) (EditorModel, tea.Cmd) {
	switch {
	case row < 0:
		row = rowCount - 1
	case row >= rowCount:
		row = 0
	}
	m.focused = row

	var cmd tea.Cmd
	for i := range m.inputs {
		if i == row {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m, cmd
}

func (m EditorModel) submit() (EditorModel, tea.Cmd) {
	res, err := m.session.Commit()
	if err != nil {
		m.err = err
		return m, nil
	}
	return m, func() tea.Msg { return EditorDoneMsg{Result: &res} }
}

func (m *EditorModel) updateInputs(msg tea.Msg) tea.Cmd {
	if m.focused >= len(m.inputs) {
		return nil
	}
	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	m.session.UpdateField(textFields[m.focused], m.inputs[m.focused].Value())
	if m.session.IsValid() && editor.IsValidationError(m.err) {
		m.err = nil
	}
	return cmd
}

func (m EditorModel) View() string {
	if m.picking {
		return m.files.View()
	}

	outerStyle := lipgloss.NewStyle().Padding(1, 4)

	sepStyle := lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#444444"})
	formLabel := lipgloss.NewStyle().
		Foreground(ColorGray).
		Width(12).
		Align(lipgloss.Right).
		PaddingRight(1)
	formLabelActive := formLabel.
		Foreground(ColorYellow).
		Bold(true)

	const w = 58
	sep := sepStyle.Render(strings.Repeat("─", w))

	var b strings.Builder

	// ── Header ──
	title := "Add Book"
	if m.session.Mode().IsEditing() {
		title = "Edit Book"
	}
	b.WriteString(StyleHeader.Render(title))
	b.WriteString("\n")
	if id := m.session.Mode().EditingID(); id != "" {
		b.WriteString(StyleHelp.Render(id))
		b.WriteString("\n")
	}
	b.WriteString(sep)
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	label := func(row int, text string) string {
		if row == m.focused {
			return formLabelActive.Render("› " + text)
		}
		return formLabel.Render(text)
	}

	// ── Text fields ──
	names := [...]string{"Title*", "Author*", "Genre", "Publisher"}
	for i, name := range names {
		b.WriteString(label(i, name))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n\n")
	}

	// ── Rating ──
	d := m.session.Draft()
	b.WriteString(label(rowRating, "Rating"))
	b.WriteString(StyleStars.Render(catalog.Stars(d.Rating)))
	if m.focused == rowRating {
		b.WriteString(StyleHelp.Render("  ←/→ or 0-5"))
	}
	b.WriteString("\n\n")

	// ── Cover ──
	b.WriteString(label(rowCover, "Cover"))
	switch {
	case len(d.CoverImage) > 0:
		b.WriteString(StyleSuccess.Render(fmt.Sprintf("image (%d KB)", (len(d.CoverImage)+1023)/1024)))
	default:
		b.WriteString(StyleHelp.Render("📚 none"))
	}
	if m.focused == rowCover {
		b.WriteString(StyleHelp.Render("  enter choose • x remove"))
	}
	b.WriteString("\n")
	if preview := RenderCover(d.CoverImage, 12, 9, m.protocol); preview != "" {
		b.WriteString(strings.Repeat(" ", 13))
		b.WriteString(preview)
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(StyleHelp.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(sep)
	b.WriteString("\n")

	// ── Footer ──
	saveLabel := "ctrl+s save"
	if !m.session.IsValid() {
		saveLabel = "ctrl+s save (needs title and author)"
	}
	b.WriteString(RenderFooterBar([]ShortcutEntry{
		{Key: "tab", Label: "tab/↑↓ navigate"},
		{Key: "ctrl+s", Label: saveLabel},
		{Key: "", Label: "esc cancel"},
	}, m.activeCmd))
	b.WriteString("\n")

	innerPadding := lipgloss.NewStyle().Padding(0, 2, 0, 1)
	return outerStyle.Render(StyleBorder.Render(innerPadding.Render(b.String())))
}

// editorProgram runs an EditorModel on its own.
type editorProgram struct {
	form     EditorModel
	result   *editor.Result
	finished bool
}

func (p editorProgram) Init() tea.Cmd { return p.form.Init() }

func (p editorProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if done, ok := msg.(EditorDoneMsg); ok {
		p.result = done.Result
		p.finished = true
		return p, tea.Quit
	}
	var cmd tea.Cmd
	p.form, cmd = p.form.Update(msg)
	return p, cmd
}

func (p editorProgram) View() string {
	if p.finished {
		return ""
	}
	return p.form.View()
}

// ErrCanceled is returned by RunEditor when the user leaves the form.
var ErrCanceled = errors.New("canceled")

// RunEditor shows the book form for an open session until it is saved or
// cancelled.
func RunEditor(s *editor.Session, startDir string) (*editor.Result, error) {
	m := editorProgram{form: NewEditorModel(s, startDir, DetectImageProtocol())}
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running form: %w", err)
	}

	fm, ok := finalModel.(editorProgram)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}
	if fm.result == nil {
		return nil, ErrCanceled
	}
	return fm.result, nil
}
