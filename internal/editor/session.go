// Package editor implements the add/edit draft that backs the book form.
//
// A Session moves from closed to open through StartAdding or StartEditing and
// back to closed through Commit or Cancel. Reopening always starts from a
// fresh draft.
package editor

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ilaria3312/MyLibrary/internal/catalog"
)

// ErrNotOpen is returned by Commit when no session is open.
var ErrNotOpen = errors.New("editor session is not open")

// Field names a draft field.
type Field int

const (
	FieldTitle Field = iota
	FieldAuthor
	FieldGenre
	FieldPublisher
	FieldRating
)

var fieldNames = [...]string{"title", "author", "genre", "publisher", "rating"}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "field(" + strconv.Itoa(int(f)) + ")"
	}
	return fieldNames[f]
}

// ParseField maps a field name such as "author" to its Field.
func ParseField(name string) (Field, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range fieldNames {
		if n == name {
			return Field(i), true
		}
	}
	return 0, false
}

// Draft is the in-progress value set of a session.
type Draft struct {
	Title      string
	Author     string
	Genre      string
	Publisher  string
	Rating     int
	CoverImage []byte
}

// Session holds at most one open add-or-edit interaction.
// The zero value is a closed session.
type Session struct {
	open     bool
	mode     Mode
	original catalog.Book
	draft    Draft

	// now and newID are replaced in tests.
	now   func() time.Time
	newID func() (string, error)
}

// New returns a closed session.
func New() *Session {
	return &Session{}
}

// StartAdding opens a session for a new book with empty defaults,
// discarding any open draft.
func (s *Session) StartAdding() {
	s.open = true
	s.mode = Adding()
	s.original = catalog.Book{}
	s.draft = Draft{}
}

// StartEditing opens a session initialised from b, discarding any open
// draft. A book with an empty ID has no entry to edit: the session opens in
// adding mode with the draft pre-filled from b, and Commit mints a new ID.
func (s *Session) StartEditing(b catalog.Book) {
	s.open = true
	s.mode = Editing(b.ID)
	s.original = b
	s.draft = Draft{
		Title:      b.Title,
		Author:     b.Author,
		Genre:      b.Genre,
		Publisher:  b.Publisher,
		Rating:     catalog.ClampRating(b.Rating),
		CoverImage: b.CoverImage,
	}
}

// Start opens a session in the given mode. For an editing mode, b is the
// book being edited; it is ignored when adding.
func (s *Session) Start(m Mode, b catalog.Book) {
	if m.IsEditing() {
		b.ID = m.EditingID()
		s.StartEditing(b)
		return
	}
	s.StartAdding()
}

// IsOpen reports whether a session is in progress.
func (s *Session) IsOpen() bool { return s.open }

// Mode returns the mode of the open session.
func (s *Session) Mode() Mode { return s.mode }

// Draft returns a snapshot of the draft.
func (s *Session) Draft() Draft { return s.draft }

// UpdateField sets one draft field. Rating values are parsed as integers and
// clamped to the star range; anything unparsable clears the rating.
// It does nothing when the session is closed.
func (s *Session) UpdateField(f Field, value string) {
	if !s.open {
		return
	}
	switch f {
	case FieldTitle:
		s.draft.Title = value
	case FieldAuthor:
		s.draft.Author = value
	case FieldGenre:
		s.draft.Genre = value
	case FieldPublisher:
		s.draft.Publisher = value
	case FieldRating:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			n = 0
		}
		s.draft.Rating = catalog.ClampRating(n)
	}
}

// SetRating sets the star rating, clamped to [0, 5].
func (s *Session) SetRating(n int) {
	if !s.open {
		return
	}
	s.draft.Rating = catalog.ClampRating(n)
}

// SetCoverImage replaces the draft cover. A nil slice clears it.
func (s *Session) SetCoverImage(data []byte) {
	if !s.open {
		return
	}
	if len(data) == 0 {
		s.draft.CoverImage = nil
		return
	}
	s.draft.CoverImage = data
}

// IsValid reports whether the draft can be committed.
func (s *Session) IsValid() bool {
	return s.open && len(s.missing()) == 0
}

func (s *Session) missing() []string {
	var out []string
	if strings.TrimSpace(s.draft.Title) == "" {
		out = append(out, FieldTitle.String())
	}
	if strings.TrimSpace(s.draft.Author) == "" {
		out = append(out, FieldAuthor.String())
	}
	return out
}

// Commit finalises the draft into a book and closes the session.
// Editing keeps the original ID and metadata; adding mints a new ID.
// A *ValidationError leaves the session open.
func (s *Session) Commit() (Result, error) {
	if !s.open {
		return Result{}, ErrNotOpen
	}
	if missing := s.missing(); len(missing) > 0 {
		return Result{}, &ValidationError{Fields: missing}
	}

	b := s.original
	if s.mode.IsEditing() {
		b.ID = s.mode.EditingID()
	} else {
		id, err := s.mintID()
		if err != nil {
			return Result{}, err
		}
		b = catalog.Book{ID: id, Meta: catalog.Meta{AddedAt: s.clock().UTC().Format(time.RFC3339)}}
	}
	b.Title = s.draft.Title
	b.Author = s.draft.Author
	b.Genre = s.draft.Genre
	b.Publisher = s.draft.Publisher
	b.Rating = s.draft.Rating
	b.CoverImage = s.draft.CoverImage

	res := Result{Book: b, Mode: s.mode}
	s.Cancel()
	return res, nil
}

// Cancel discards the draft and closes the session.
func (s *Session) Cancel() {
	s.open = false
	s.mode = Mode{}
	s.original = catalog.Book{}
	s.draft = Draft{}
}

func (s *Session) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func (s *Session) mintID() (string, error) {
	if s.newID != nil {
		return s.newID()
	}
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
