package util

import (
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/fatih/color"
)

// IsTTY reports whether stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(os.Stdout.Fd())
}

// IsInteractive reports whether both stdin and stdout are terminals, which
// is what prompts and full-screen views need.
func IsInteractive() bool {
	return term.IsTerminal(os.Stdin.Fd()) && IsTTY()
}

// InitColor turns colored output off when asked to or when stdout is piped.
func InitColor(noColor bool) {
	if noColor || os.Getenv("NO_COLOR") != "" || !IsTTY() {
		color.NoColor = true
	}
}

// TerminalSize returns the stdout terminal's columns and rows.
// ok is false when stdout is not a terminal.
func TerminalSize() (width, height int, ok bool) {
	w, h, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}
