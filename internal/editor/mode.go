package editor

import "github.com/ilaria3312/MyLibrary/internal/catalog"

// Mode says whether a session adds a new book or edits an existing one.
type Mode struct {
	editingID string
}

// Adding is the mode for a new book.
func Adding() Mode { return Mode{} }

// Editing is the mode for changing the book with the given ID.
func Editing(id string) Mode { return Mode{editingID: id} }

// IsEditing reports whether the mode edits an existing book.
func (m Mode) IsEditing() bool { return m.editingID != "" }

// EditingID returns the ID under edit, or "" when adding.
func (m Mode) EditingID() string { return m.editingID }

func (m Mode) String() string {
	if m.IsEditing() {
		return "editing " + m.editingID
	}
	return "adding"
}

// Result is what a successful Commit hands back to the caller.
type Result struct {
	Book catalog.Book
	Mode Mode
}

// EditingID is the ID to pass to library.Store.Commit.
func (r Result) EditingID() string { return r.Mode.EditingID() }
