package app

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/ilaria3312/MyLibrary/internal/cache"
	"github.com/ilaria3312/MyLibrary/internal/library"
	"github.com/spf13/cobra"
)

func newIndexCmd() *cobra.Command {
	var (
		out      string
		query    string
		flagOpen bool
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Generate an HTML page of your shelves",
		Long: `Generate a standalone index.html showing every shelf with covers,
titles, authors and ratings. Open it in any web browser.

By default the page is written to index.html in the data directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore()
			if err != nil {
				return err
			}
			store.SetQuery(query)

			rows, err := store.ShelfRows(cfg.Layout.ViewportHeight, cfg.Layout.EffectiveShelfHeight(), cfg.Layout.EffectiveBooksPerShelf())
			if err != nil {
				return fmt.Errorf("laying out shelves: %w", err)
			}

			covers := cache.New(cfg.Data.Dir)
			indexPath, err := covers.GenerateHTMLIndex(out, cache.IndexPage{
				Title:      "My Library",
				Query:      query,
				Rows:       rows,
				Categories: library.Categories(),
			})
			if err != nil {
				return fmt.Errorf("generating index: %w", err)
			}

			ok("Generated HTML index with %s", plural(len(store.FilteredBooks()), "book"))

			if flagOpen {
				var openCmd *exec.Cmd
				switch runtime.GOOS {
				case "darwin":
					openCmd = exec.Command("open", indexPath)
				case "windows":
					openCmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", indexPath)
				default:
					openCmd = exec.Command("xdg-open", indexPath)
				}
				if err := openCmd.Start(); err != nil {
					warn("Could not open browser: %v", err)
					fmt.Printf("\nOpen in browser:\n  file://%s\n", indexPath)
				}
			} else {
				fmt.Printf("\nOpen in browser:\n  file://%s\n", indexPath)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: <data dir>/index.html)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only books whose title contains this text")
	cmd.Flags().BoolVar(&flagOpen, "open", false, "Open the generated index in the default browser")

	return cmd
}
