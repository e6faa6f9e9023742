package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ilaria3312/MyLibrary/internal/config"
	"github.com/ilaria3312/MyLibrary/internal/picker"
	"github.com/ilaria3312/MyLibrary/internal/tui/delegate"
)

// FileItem represents a file or directory in the picker.
type FileItem struct {
	Name  string
	Path  string
	IsDir bool
	Size  int64
}

// FilterValue implements list.Item
func (f FileItem) FilterValue() string {
	return f.Name
}

func newFileDelegate() delegate.Base {
	return delegate.New(func(w io.Writer, m list.Model, index int, item list.Item) {
		fileItem, ok := item.(FileItem)
		if !ok {
			return
		}

		icon := "🖼 "
		if fileItem.IsDir {
			icon = "📁"
		}
		display := fmt.Sprintf("%s %s", icon, fileItem.Name)
		if !fileItem.IsDir {
			display += StyleHelp.Render(fmt.Sprintf("  %d KB", (fileItem.Size+1023)/1024))
		}

		if index == m.Index() {
			_, _ = fmt.Fprint(w, StyleHighlight.Render("› "+display))
		} else {
			_, _ = fmt.Fprint(w, "  "+StyleNormal.Render(display))
		}
	})
}

// FilePickerModel browses one directory at a time for a cover image.
// Choosing a file loads it asynchronously and emits a CoverLoadedMsg;
// cancelling emits a CoverLoadedMsg with Result.Canceled set.
type FilePickerModel struct {
	list       list.Model
	dir        string
	keys       PickerKeys
	showHidden bool
	err        error
	width      int
	height     int
}

// NewFilePickerModel opens a picker rooted at startDir. An empty startDir
// means the working directory.
func NewFilePickerModel(startDir string) (FilePickerModel, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			wd = os.Getenv("HOME")
		}
		startDir = wd
	}
	startDir = config.ExpandHome(startDir)

	info, err := os.Stat(startDir)
	if err != nil {
		return FilePickerModel{}, fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		startDir = filepath.Dir(startDir)
	}

	l := list.New(nil, newFileDelegate(), 0, 0)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = StyleHeader
	l.Styles.HelpStyle = StyleHelp

	m := FilePickerModel{
		list: l,
		keys: NewPickerKeys(),
	}
	m.list.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{m.keys.Parent, m.keys.Hidden}
	}
	if err := m.chdir(startDir); err != nil {
		return FilePickerModel{}, err
	}
	return m, nil
}

// Dir returns the directory being listed.
func (m FilePickerModel) Dir() string { return m.dir }

// Items returns the current listing.
func (m FilePickerModel) Items() []FileItem {
	items := m.list.Items()
	out := make([]FileItem, 0, len(items))
	for _, it := range items {
		if fi, ok := it.(FileItem); ok {
			out = append(out, fi)
		}
	}
	return out
}

// SetSize resizes the list to the terminal.
func (m *FilePickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	h, v := StyleBorder.GetFrameSize()
	m.list.SetSize(width-h, height-v)
}

func (m *FilePickerModel) chdir(dir string) error {
	items, err := buildDirectoryItems(dir, m.showHidden)
	if err != nil {
		return err
	}
	m.dir = dir
	m.list.SetItems(items)
	m.list.ResetFilter()
	m.list.Select(0)
	m.list.Title = "Choose a cover: " + dir
	return nil
}

func (m FilePickerModel) Init() tea.Cmd {
	return nil
}

func (m FilePickerModel) Update(msg tea.Msg) (FilePickerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, func() tea.Msg { return CoverLoadedMsg{Result: picker.Result{Canceled: true}} }

		case key.Matches(msg, m.keys.Hidden):
			m.showHidden = !m.showHidden
			if err := m.chdir(m.dir); err != nil {
				m.err = err
			}
			return m, nil

		case key.Matches(msg, m.keys.Parent):
			parent := filepath.Dir(m.dir)
			if parent != m.dir {
				if err := m.chdir(parent); err != nil {
					m.err = err
				}
			}
			return m, nil

		case key.Matches(msg, m.keys.Select):
			item, ok := m.list.SelectedItem().(FileItem)
			if !ok {
				return m, nil
			}
			if item.IsDir {
				if err := m.chdir(item.Path); err != nil {
					m.err = err
					m.list.Title = item.Path + " (Permission Denied)"
				}
				return m, nil
			}
			return m, loadCoverCmd(item.Path)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m FilePickerModel) View() string {
	view := m.list.View()
	if m.err != nil {
		view += "\n" + StyleError.Render(m.err.Error())
	}
	return StyleBorder.Render(view)
}

// loadCoverCmd decodes and normalizes the chosen image off the UI loop.
func loadCoverCmd(path string) tea.Cmd {
	return func() tea.Msg {
		res, err := picker.Pick(path)
		return CoverLoadedMsg{Result: res, Err: err}
	}
}

// buildDirectoryItems lists sub-directories and image files, directories
// first, each group sorted by name.
func buildDirectoryItems(path string, showHidden bool) ([]list.Item, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	var dirs, files []FileItem
	for _, entry := range entries {
		name := entry.Name()
		if !showHidden && strings.HasPrefix(name, ".") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		item := FileItem{
			Name:  name,
			Path:  filepath.Join(path, name),
			IsDir: entry.IsDir(),
			Size:  info.Size(),
		}
		switch {
		case item.IsDir:
			dirs = append(dirs, item)
		case picker.IsImage(name):
			files = append(files, item)
		}
	}

	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	items := make([]list.Item, 0, len(dirs)+len(files))
	for _, d := range dirs {
		items = append(items, d)
	}
	for _, f := range files {
		items = append(items, f)
	}
	return items, nil
}
