package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilaria3312/MyLibrary/internal/editor"
	"github.com/ilaria3312/MyLibrary/internal/library"
	"github.com/ilaria3312/MyLibrary/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newAddCmd() *cobra.Command {
	var flags bookFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the library",
		Long: `Add a book. Title and author are required; everything else is optional.

Without flags on a terminal, the book form opens.

Examples:
  mylibrary add --title "Dune" --author "Frank Herbert" --genre "Science Fiction" --rating 5
  mylibrary add --title "Emma" --author "Jane Austen" --cover ~/Pictures/emma.jpg
  mylibrary add`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore()
			if err != nil {
				return err
			}

			s := editor.New()
			s.StartAdding()

			res, err := runSession(cmd, s, &flags)
			if errors.Is(err, tui.ErrCanceled) {
				warn("Cancelled, nothing added")
				return nil
			}
			if err != nil {
				return err
			}

			commitResult(store, res)
			if err := saveStore(store); err != nil {
				return err
			}
			ok("Added %q by %s (%s)", res.Book.Title, res.Book.Author, res.Book.ID)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// runSession fills an open session from flags, or from the form when no
// flags were given on a terminal, and commits it.
func runSession(cmd *cobra.Command, s *editor.Session, flags *bookFlags) (editor.Result, error) {
	if !flags.anyChanged(cmd) && tui.ShouldUseTUI(cmd) {
		home, _ := os.UserHomeDir()
		res, err := tui.RunEditor(s, home)
		if err != nil {
			return editor.Result{}, err
		}
		return *res, nil
	}

	if err := flags.apply(cmd, s); err != nil {
		s.Cancel()
		return editor.Result{}, err
	}
	res, err := s.Commit()
	if err != nil {
		s.Cancel()
		var verr *editor.ValidationError
		if errors.As(err, &verr) {
			return editor.Result{}, fmt.Errorf("%w (use --title and --author)", err)
		}
		return editor.Result{}, err
	}
	return res, nil
}

// commitResult stores a session result. An edit whose target has vanished
// is kept as a new entry.
func commitResult(store *library.Store, res editor.Result) (replaced bool) {
	editingID := res.EditingID()
	replaced = store.Commit(res.Book, editingID)
	if editingID != "" && !replaced {
		logger.Warn("edited book was no longer in the library, added as new",
			zap.String("id", editingID))
	}
	logger.Info("book committed",
		zap.String("id", res.Book.ID),
		zap.String("title", res.Book.Title),
		zap.Bool("replaced", replaced))
	return replaced
}
