package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/ilaria3312/MyLibrary/internal/catalog"
)

// ShelfLines is the number of terminal rows one shelf occupies: title,
// author, rating and the plank.
const ShelfLines = 4

// ShelfView is what RenderShelves needs to draw a slice of the layout.
type ShelfView struct {
	Rows          [][]catalog.Book
	BooksPerShelf int
	Width         int
	Offset        int // first row to draw
	Visible       int // number of rows to draw; 0 draws all
	Selected      int // index into the flattened rows, -1 for none
}

// RenderShelves draws shelf rows as fixed-width cells over a plank.
func RenderShelves(v ShelfView) string {
	per := max(v.BooksPerShelf, 1)
	width := max(v.Width, per*6)
	cellW := width / per

	end := len(v.Rows)
	if v.Visible > 0 {
		end = min(end, v.Offset+v.Visible)
	}
	start := min(max(v.Offset, 0), end)

	plank := StylePlank.Render(strings.Repeat("▀", cellW*per))

	var b strings.Builder
	for r := start; r < end; r++ {
		row := v.Rows[r]
		lines := [3][]string{}
		for c := 0; c < per; c++ {
			idx := r*per + c
			var cell [3]string
			if c < len(row) {
				cell = renderSpine(row[c], cellW, idx == v.Selected)
			} else {
				blank := strings.Repeat(" ", cellW)
				cell = [3]string{blank, blank, blank}
			}
			for i := range lines {
				lines[i] = append(lines[i], cell[i])
			}
		}
		for i := range lines {
			b.WriteString(strings.Join(lines[i], ""))
			b.WriteString("\n")
		}
		b.WriteString(plank)
		if r < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderSpine(book catalog.Book, width int, selected bool) [3]string {
	inner := width - 3
	marker := "┃ "
	titleStyle := StyleNormal
	if selected {
		marker = "› "
		titleStyle = StyleHighlight
	}

	title := padOrTruncate(book.Title, inner)
	author := padOrTruncate(book.Author, inner)
	stars := ""
	if book.Rating > 0 {
		stars = catalog.Stars(book.Rating)
	}
	stars = padOrTruncate(stars, inner)

	cell := lipgloss.NewStyle().Width(width)
	return [3]string{
		cell.Render(titleStyle.Render(marker + title)),
		cell.Render(StyleHelp.Render("┃ " + author)),
		cell.Render(StyleStars.Render("┃ " + stars)),
	}
}

// padOrTruncate fits s to exactly width display cells.
func padOrTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if xansi.StringWidth(s) > width {
		return xansi.Truncate(s, width, "…")
	}
	return s + strings.Repeat(" ", width-xansi.StringWidth(s))
}

// RowOf returns the shelf row holding the flattened book index.
func RowOf(index, booksPerShelf int) int {
	if booksPerShelf < 1 || index < 0 {
		return 0
	}
	return index / booksPerShelf
}
