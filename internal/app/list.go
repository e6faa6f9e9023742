package app

import (
	"fmt"

	"github.com/ilaria3312/MyLibrary/internal/catalog"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var (
		query   string
		genre   string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List books, optionally filtered by title",
		Long: `List the books in display order. --query keeps books whose title
contains the text, ignoring case.

Examples:
  mylibrary list
  mylibrary list --query dune
  mylibrary list --genre Fantasy --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore()
			if err != nil {
				return err
			}
			store.SetQuery(query)

			books := store.FilteredBooks()
			if genre != "" {
				books = catalog.Filter{Genre: genre}.Apply(books)
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return writeJSON(out, books)
			}

			if len(books) == 0 {
				if store.Len() == 0 {
					warn("The library is empty. Add a book with: mylibrary add")
				} else {
					warn("No books match")
				}
				return nil
			}

			for _, b := range books {
				printBook(out, b)
			}
			fmt.Fprintf(out, "\n%s\n", plural(len(books), "book"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Title substring to search for")
	cmd.Flags().StringVar(&genre, "genre", "", "Only books of this genre")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
