package app

import (
	"errors"

	"github.com/ilaria3312/MyLibrary/internal/editor"
	"github.com/ilaria3312/MyLibrary/internal/tui"
	"github.com/spf13/cobra"
)

func newEditCmd() *cobra.Command {
	var flags bookFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a book",
		Long: `Change the fields of a book. Only the flags you pass are changed.
The id may be the full id or its last characters as shown by 'list'.

Without flags on a terminal, the book form opens pre-filled.

Examples:
  mylibrary edit 7c9e6679 --rating 4
  mylibrary edit 7c9e6679 --genre Fantasy --publisher "Ace"
  mylibrary edit 7c9e6679 --no-cover`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeBookIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore()
			if err != nil {
				return err
			}

			book, err := resolveID(store.Books(), args[0])
			if err != nil {
				return err
			}

			s := editor.New()
			s.StartEditing(book)

			res, err := runSession(cmd, s, &flags)
			if errors.Is(err, tui.ErrCanceled) {
				warn("Cancelled, %q unchanged", book.Title)
				return nil
			}
			if err != nil {
				return err
			}

			commitResult(store, res)
			if err := saveStore(store); err != nil {
				return err
			}
			ok("Updated %q", res.Book.Title)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
