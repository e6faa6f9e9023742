package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ClearActiveCmdMsg clears the active command highlight in the footer.
type ClearActiveCmdMsg struct{}

// ShortcutEntry pairs a trigger key with the display label for footer highlighting.
type ShortcutEntry struct {
	Key   string // trigger key to match against activeCmd (empty = no highlight)
	Label string // display text
}

// highlightFor is how long a pressed shortcut stays lit in the footer.
const highlightFor = 400 * time.Millisecond

// HighlightCmd clears the footer highlight after a short delay. The caller
// sets its own activeCmd first.
func HighlightCmd() tea.Cmd {
	return tea.Tick(highlightFor, func(time.Time) tea.Msg {
		return ClearActiveCmdMsg{}
	})
}

// RenderFooterBar lays the shortcut labels out on one line, bracketing the
// one whose key was just pressed.
func RenderFooterBar(shortcuts []ShortcutEntry, activeCmd string) string {
	var b strings.Builder
	for i, sc := range shortcuts {
		if i > 0 {
			b.WriteString(StyleHelp.Render("  ·  "))
		}
		if activeCmd != "" && sc.Key == activeCmd {
			b.WriteString(StyleHighlight.Render("[" + sc.Label + "]"))
			continue
		}
		b.WriteString(StyleHelp.Render(sc.Label))
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(b.String())
}

// ShortcutsFromKeys builds footer entries from key bindings. The first key
// of each binding is the highlight trigger.
func ShortcutsFromKeys(bindings []key.Binding) []ShortcutEntry {
	out := make([]ShortcutEntry, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		trigger := ""
		if keys := b.Keys(); len(keys) > 0 {
			trigger = keys[0]
		}
		h := b.Help()
		out = append(out, ShortcutEntry{Key: trigger, Label: h.Key + " " + h.Desc})
	}
	return out
}
