package catalog

import "strings"

// MaxRating is the highest star rating a book can carry.
const MaxRating = 5

// Book is one entry in the library.
type Book struct {
	ID        string `yaml:"id" json:"id"`
	Title     string `yaml:"title" json:"title"`
	Author    string `yaml:"author" json:"author"`
	Genre     string `yaml:"genre,omitempty" json:"genre,omitempty"`
	Publisher string `yaml:"publisher,omitempty" json:"publisher,omitempty"`
	Rating    int    `yaml:"rating,omitempty" json:"rating,omitempty"`
	Cover     string `yaml:"cover,omitempty" json:"cover,omitempty"`
	Meta      Meta   `yaml:"meta,omitempty" json:"meta,omitempty"`

	// CoverImage holds the encoded cover. Storage backends keep it
	// outside the record itself.
	CoverImage []byte `yaml:"-" json:"-"`
}

// Meta holds optional provenance data.
type Meta struct {
	AddedAt string `yaml:"added_at,omitempty" json:"added_at,omitempty"`
}

// HasCover reports whether the book carries cover bytes.
func (b Book) HasCover() bool {
	return len(b.CoverImage) > 0
}

// IsComplete reports whether title and author are both non-blank.
func (b Book) IsComplete() bool {
	return strings.TrimSpace(b.Title) != "" && strings.TrimSpace(b.Author) != ""
}

// ClampRating forces n into [0, MaxRating].
func ClampRating(n int) int {
	switch {
	case n < 0:
		return 0
	case n > MaxRating:
		return MaxRating
	}
	return n
}

// Stars renders a rating as filled and empty stars.
func Stars(rating int) string {
	rating = ClampRating(rating)
	return strings.Repeat("★", rating) + strings.Repeat("☆", MaxRating-rating)
}

// Equal reports whether two books hold the same values, cover bytes included.
func Equal(a, b Book) bool {
	if a.ID != b.ID || a.Title != b.Title || a.Author != b.Author ||
		a.Genre != b.Genre || a.Publisher != b.Publisher ||
		a.Rating != b.Rating || a.Meta != b.Meta {
		return false
	}
	return string(a.CoverImage) == string(b.CoverImage)
}
