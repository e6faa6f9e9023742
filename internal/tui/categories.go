package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ilaria3312/MyLibrary/internal/library"
	"github.com/ilaria3312/MyLibrary/internal/tui/delegate"
	"github.com/ilaria3312/MyLibrary/internal/tui/listview"
)

// CategoriesClosedMsg is emitted when the categories list is dismissed.
type CategoriesClosedMsg struct{}

// CategoryItem is one label in the categories list.
type CategoryItem string

// FilterValue implements list.Item
func (c CategoryItem) FilterValue() string { return string(c) }

func renderCategory(w io.Writer, m list.Model, index int, item list.Item) {
	c, ok := item.(CategoryItem)
	if !ok {
		return
	}
	display := "🏷  " + string(c)
	if index == m.Index() {
		_, _ = fmt.Fprint(w, StyleHighlight.Render("› "+display))
	} else {
		_, _ = fmt.Fprint(w, "  "+StyleGenre.Render(display))
	}
}

// NewCategoriesModel builds the read-only categories list. Closing it emits
// CategoriesClosedMsg.
func NewCategoriesModel() listview.Model {
	labels := library.Categories()
	items := make([]list.Item, len(labels))
	for i, c := range labels {
		items[i] = CategoryItem(c)
	}

	l := list.New(items, delegate.NewWithSpacing(renderCategory, 1), 0, 0)
	l.Title = "Categories"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = StyleHeader
	l.Styles.HelpStyle = StyleHelp

	keys := NewPickerKeys()
	closeKeys := keys.Quit
	closeKeys.SetKeys("esc", "q", "tab", "ctrl+c")

	return listview.New(listview.Config{
		List:        l,
		CloseKeys:   closeKeys,
		SelectKeys:  keys.Select,
		ShowBorder:  true,
		BorderStyle: StyleBorder,
		OnClose: func() tea.Cmd {
			return func() tea.Msg { return CategoriesClosedMsg{} }
		},
	})
}
