package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/ilaria3312/MyLibrary/internal/catalog"
	"github.com/ilaria3312/MyLibrary/internal/util"
	"github.com/spf13/cobra"
)

func newShelvesCmd() *cobra.Command {
	var (
		query          string
		booksPerShelf  int
		viewportHeight float64
	)

	cmd := &cobra.Command{
		Use:   "shelves",
		Short: "Print the shelf layout",
		Long: `Print the books shelf by shelf, the way the interactive library lays
them out. Empty shelves are added until the viewport is filled.

The viewport and shelf height come from the layout section of the config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore()
			if err != nil {
				return err
			}
			store.SetQuery(query)

			per := cfg.Layout.EffectiveBooksPerShelf()
			if cmd.Flags().Changed("per-shelf") {
				per = booksPerShelf
			}
			vh := cfg.Layout.ViewportHeight
			if cmd.Flags().Changed("viewport") {
				vh = viewportHeight
			}

			rows, err := store.ShelfRows(vh, cfg.Layout.EffectiveShelfHeight(), per)
			if err != nil {
				return fmt.Errorf("laying out shelves: %w", err)
			}

			width := 80
			if w, _, ok := util.TerminalSize(); ok {
				width = w
			}
			printShelves(cmd.OutOrStdout(), rows, width)
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Title substring to search for")
	cmd.Flags().IntVar(&booksPerShelf, "per-shelf", 0, "Books per shelf (default from config)")
	cmd.Flags().Float64Var(&viewportHeight, "viewport", 0, "Viewport height (default from config)")
	return cmd
}

// printShelves writes one block per shelf row.
func printShelves(w io.Writer, rows [][]catalog.Book, width int) {
	plank := color.New(color.FgYellow).Sprint(strings.Repeat("▀", max(width-2, 10)))
	for i, row := range rows {
		fmt.Fprintf(w, "%s\n", color.CyanString("Shelf %d", i+1))
		if len(row) == 0 {
			fmt.Fprintf(w, "  %s\n", color.HiBlackString("(empty)"))
		}
		for _, b := range row {
			line := fmt.Sprintf("  ┃ %s %s %s", b.Title, color.HiBlackString("by"), b.Author)
			if b.Rating > 0 {
				line += "  " + color.YellowString(catalog.Stars(b.Rating))
			}
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w, plank)
	}
}
