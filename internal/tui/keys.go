package tui

import "github.com/charmbracelet/bubbles/key"

// LibraryKeys are the bindings of the shelf view.
type LibraryKeys struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Search     key.Binding
	Clear      key.Binding
	Add        key.Binding
	Edit       key.Binding
	Remove     key.Binding
	Categories key.Binding
	Quit       key.Binding
}

// NewLibraryKeys creates the shelf view bindings.
func NewLibraryKeys() LibraryKeys {
	return LibraryKeys{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Clear:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		Add:        key.NewBinding(key.WithKeys("a", "+"), key.WithHelp("a", "add")),
		Edit:       key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit")),
		Remove:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove")),
		Categories: key.NewBinding(key.WithKeys("tab", "c"), key.WithHelp("tab", "categories")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k LibraryKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Add, k.Edit, k.Remove, k.Categories, k.Quit}
}

// EditorKeys are the bindings of the book form.
type EditorKeys struct {
	Next       key.Binding
	Prev       key.Binding
	Save       key.Binding
	Cancel     key.Binding
	PickCover  key.Binding
	ClearCover key.Binding
	StarUp     key.Binding
	StarDown   key.Binding
}

// NewEditorKeys creates the book form bindings.
func NewEditorKeys() EditorKeys {
	return EditorKeys{
		Next:       key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab/↓", "next")),
		Prev:       key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab/↑", "prev")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel:     key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
		PickCover:  key.NewBinding(key.WithKeys("enter", "c"), key.WithHelp("enter", "choose cover")),
		ClearCover: key.NewBinding(key.WithKeys("x", "backspace", "delete"), key.WithHelp("x", "remove cover")),
		StarUp:     key.NewBinding(key.WithKeys("right", "l", "+"), key.WithHelp("→", "more stars")),
		StarDown:   key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←", "fewer stars")),
	}
}

// PickerKeys are the standard keys for list pickers.
type PickerKeys struct {
	Quit   key.Binding
	Select key.Binding
	Parent key.Binding
	Hidden key.Binding
}

// NewPickerKeys creates key bindings for picker components.
func NewPickerKeys() PickerKeys {
	return PickerKeys{
		Quit:   key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("esc", "cancel")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select/open")),
		Parent: key.NewBinding(key.WithKeys("backspace", "left", "h"), key.WithHelp("backspace", "parent dir")),
		Hidden: key.NewBinding(key.WithKeys("."), key.WithHelp(".", "show hidden")),
	}
}

// ShortHelp returns a slice of key bindings for the short help view.
func (k PickerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Parent, k.Hidden, k.Quit}
}
