package tui

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/ilaria3312/MyLibrary/internal/picker"
)

// TerminalImageProtocol represents the image protocol supported by the terminal
type TerminalImageProtocol int

// Terminal image protocol types
const (
	// ProtocolNone indicates no image protocol support
	ProtocolNone TerminalImageProtocol = iota
	// ProtocolKitty indicates Kitty terminal graphics protocol
	ProtocolKitty
	// ProtocolITerm2 indicates iTerm2 inline images protocol
	ProtocolITerm2
)

// kittyChunk is the largest base64 payload per Kitty escape sequence.
const kittyChunk = 4096

// DetectImageProtocol detects which terminal image protocol is supported.
func DetectImageProtocol() TerminalImageProtocol {
	termProgram := os.Getenv("TERM_PROGRAM")
	term := os.Getenv("TERM")

	switch {
	case strings.Contains(term, "kitty"), termProgram == "ghostty", termProgram == "WezTerm":
		return ProtocolKitty
	case termProgram == "iTerm.app":
		return ProtocolITerm2
	}
	return ProtocolNone
}

// RenderCover renders cover bytes inline as a cols x rows cell thumbnail.
// Returns "" when the terminal has no image support or the cover cannot be
// decoded, so callers fall back to a text placeholder.
func RenderCover(data []byte, cols, rows int, protocol TerminalImageProtocol) string {
	if protocol == ProtocolNone || len(data) == 0 || cols <= 0 || rows <= 0 {
		return ""
	}
	// Terminal cells are roughly twice as tall as they are wide.
	thumb, err := picker.Thumbnail(data, cols*10, rows*20)
	if err != nil {
		return ""
	}
	return RenderInlineImageBytes(thumb, cols, rows, protocol)
}

// RenderInlineImageBytes renders PNG or JPEG data inline using the
// terminal's protocol, scaled to cols x rows cells.
func RenderInlineImageBytes(data []byte, cols, rows int, protocol TerminalImageProtocol) string {
	switch protocol {
	case ProtocolKitty:
		return renderKittyImage(data, cols, rows)
	case ProtocolITerm2:
		return renderITerm2Image(data, cols, rows)
	}
	return ""
}

// renderKittyImage uses Kitty's graphics protocol with direct transmission,
// split into chunks: \x1b_Ga=T,f=100,t=d,m=1;<chunk>\x1b\\ ...
func renderKittyImage(data []byte, cols, rows int) string {
	encoded := base64.StdEncoding.EncodeToString(data)

	var b strings.Builder
	for first := true; len(encoded) > 0; first = false {
		n := min(kittyChunk, len(encoded))
		chunk := encoded[:n]
		encoded = encoded[n:]

		more := 0
		if len(encoded) > 0 {
			more = 1
		}
		if first {
			fmt.Fprintf(&b, "\x1b_Ga=T,f=100,t=d,c=%d,r=%d,m=%d;%s\x1b\\", cols, rows, more, chunk)
		} else {
			fmt.Fprintf(&b, "\x1b_Gm=%d;%s\x1b\\", more, chunk)
		}
	}
	return b.String()
}

// renderITerm2Image uses iTerm2's inline images protocol
// Format: \x1b]1337;File=inline=1;width=<cols>;height=<rows>:<base64>\x07
func renderITerm2Image(data []byte, cols, rows int) string {
	encoded := base64.StdEncoding.EncodeToString(data)
	return fmt.Sprintf("\x1b]1337;File=inline=1;size=%d;width=%d;height=%d;preserveAspectRatio=1:%s\x07",
		len(data), cols, rows, encoded)
}
