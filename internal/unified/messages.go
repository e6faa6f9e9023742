package unified

// View represents the current active view
type View string

const (
	ViewLibrary    View = "library"
	ViewEditor     View = "editor"
	ViewCategories View = "categories"
)

// NavigateMsg is emitted when a view wants to navigate to another view
type NavigateMsg struct {
	Target View
	BookID string // book to edit; empty opens the form for a new book
}

// RemoveBookMsg asks the orchestrator to delete a book after the user
// confirmed it.
type RemoveBookMsg struct {
	ID string
}

// PersistedMsg reports the outcome of a background save.
type PersistedMsg struct {
	Action  string
	Count   int
	Skipped bool // a newer snapshot was already written
	Err     error
}

// QuitAppMsg is emitted when the entire application should quit
type QuitAppMsg struct{}
