package app

import (
	"fmt"
	"os"

	"github.com/ilaria3312/MyLibrary/internal/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRemoveCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm", "delete"},
		Short:   "Remove a book from the library",
		Long: `Remove a book and its cover. On a terminal you are asked to confirm
unless --yes is given; otherwise --yes is required.`,
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

			if !yes {
				if !util.IsInteractive() || flagNoInteractive {
					return fmt.Errorf("refusing to remove %q without --yes", book.Title)
				}
				if !confirm(os.Stdin, fmt.Sprintf("Remove %q by %s?", book.Title, book.Author)) {
					warn("Kept %q", book.Title)
					return nil
				}
			}

			store.Remove(book.ID)
			if err := saveStore(store); err != nil {
				return err
			}
			logger.Info("book removed", zap.String("id", book.ID), zap.String("title", book.Title))
			ok("Removed %q", book.Title)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
