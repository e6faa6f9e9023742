package cache

import (
	"encoding/base64"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilaria3312/MyLibrary/internal/catalog"
)

// IndexPage describes a static HTML rendering of the shelves.
type IndexPage struct {
	Title      string
	Query      string
	Rows       [][]catalog.Book
	Categories []string
}

// GenerateHTMLIndex writes page to path (index.html in the base dir when
// path is empty) and returns the path written.
func (m *Manager) GenerateHTMLIndex(path string, page IndexPage) (string, error) {
	if path == "" {
		path = filepath.Join(m.baseDir, "index.html")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", fmt.Errorf("creating index dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(generateHTML(page)), 0644); err != nil {
		return "", fmt.Errorf("writing index.html: %w", err)
	}
	return path, nil
}

func generateHTML(page IndexPage) string {
	var s strings.Builder

	title := page.Title
	if title == "" {
		title = "My Library"
	}

	count := 0
	for _, row := range page.Rows {
		count += len(row)
	}

	s.WriteString(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>` + html.EscapeString(title) + `</title>
    <style>
        :root {
            --wood: #8b5a2b;
            --wood-dark: #5e3b1a;
            --paper: #f5ecd9;
            --ink: #2b2118;
            --accent: #c0392b;
        }
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
            background: var(--paper);
            color: var(--ink);
            padding: 20px;
        }
        header { max-width: 1100px; margin: 0 auto 20px; }
        h1 { font-size: 2rem; }
        .subtitle { color: #7a6a58; font-size: 0.9rem; }
        .categories { margin-top: 10px; display: flex; flex-wrap: wrap; gap: 8px; }
        .category {
            border: 1px solid var(--wood);
            border-radius: 12px;
            padding: 2px 10px;
            font-size: 0.8rem;
        }
        .shelf {
            max-width: 1100px;
            margin: 0 auto;
            min-height: 120px;
            display: grid;
            grid-template-columns: repeat(5, 1fr);
            gap: 16px;
            padding: 12px 16px 0;
            border-bottom: 12px solid var(--wood);
            box-shadow: 0 6px 0 var(--wood-dark);
            margin-bottom: 24px;
        }
        .shelf.empty { min-height: 120px; }
        .book { display: flex; flex-direction: column; align-items: center; text-align: center; }
        .cover {
            width: 80px;
            height: 120px;
            background: #d9c8a9;
            display: flex;
            align-items: center;
            justify-content: center;
            font-size: 2rem;
            overflow: hidden;
            box-shadow: 2px 2px 4px rgba(0,0,0,0.3);
        }
        .cover img { width: 100%; height: 100%; object-fit: cover; }
        .book-title { font-weight: 600; font-size: 0.85rem; margin-top: 6px; }
        .book-author { font-size: 0.75rem; color: #7a6a58; }
        .stars { color: var(--accent); font-size: 0.8rem; }
    </style>
</head>
<body>
    <header>
        <h1>` + html.EscapeString(title) + `</h1>
`)
	subtitle := fmt.Sprintf("%d books", count)
	if page.Query != "" {
		subtitle += fmt.Sprintf(" matching %q", page.Query)
	}
	fmt.Fprintf(&s, "        <p class=\"subtitle\">%s</p>\n", html.EscapeString(subtitle))

	if len(page.Categories) > 0 {
		s.WriteString("        <div class=\"categories\">\n")
		for _, c := range page.Categories {
			fmt.Fprintf(&s, "            <span class=\"category\">%s</span>\n", html.EscapeString(c))
		}
		s.WriteString("        </div>\n")
	}
	s.WriteString("    </header>\n")

	for _, row := range page.Rows {
		if len(row) == 0 {
			s.WriteString("    <section class=\"shelf empty\"></section>\n")
			continue
		}
		s.WriteString("    <section class=\"shelf\">\n")
		for _, b := range row {
			renderBookCard(&s, b)
		}
		s.WriteString("    </section>\n")
	}

	s.WriteString(`</body>
</html>
`)
	return s.String()
}

func renderBookCard(s *strings.Builder, b catalog.Book) {
	fmt.Fprintf(s, "        <div class=\"book\" data-id=\"%s\">\n", html.EscapeString(b.ID))
	s.WriteString("            <div class=\"cover\">")
	if b.HasCover() {
		fmt.Fprintf(s, `<img src="data:image/jpeg;base64,%s" alt="Cover">`,
			base64.StdEncoding.EncodeToString(b.CoverImage))
	} else {
		s.WriteString("📚")
	}
	s.WriteString("</div>\n")
	fmt.Fprintf(s, "            <div class=\"book-title\">%s</div>\n", html.EscapeString(b.Title))
	if b.Author != "" {
		fmt.Fprintf(s, "            <div class=\"book-author\">%s</div>\n", html.EscapeString(b.Author))
	}
	if b.Rating > 0 {
		fmt.Fprintf(s, "            <div class=\"stars\">%s</div>\n", catalog.Stars(b.Rating))
	}
	s.WriteString("        </div>\n")
}
