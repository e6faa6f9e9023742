package app

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/ilaria3312/MyLibrary/internal/util"
	"github.com/spf13/cobra"
)

func newCoversCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "covers",
		Short: "Inspect and export cover images",
	}

	cmd.AddCommand(
		newCoversInfoCmd(),
		newCoversExportCmd(),
	)

	return cmd
}

func newCoversInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show which books have covers and how much space they use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore()
			if err != nil {
				return err
			}

			var (
				withCover int
				total     int64
				missing   []string
			)
			for _, b := range store.Books() {
				if b.HasCover() {
					withCover++
					total += int64(len(b.CoverImage))
				} else {
					missing = append(missing, b.Title)
				}
			}

			out := cmd.OutOrStdout()
			header("Covers (%s backend)", cfg.Data.EffectiveBackend())
			fmt.Fprintf(out, "  %-10s %d of %d\n", "books:", withCover, store.Len())
			fmt.Fprintf(out, "  %-10s %s\n", "size:", formatBytes(total))
			if len(missing) > 0 {
				fmt.Fprintf(out, "  %-10s\n", "without:")
				for _, title := range missing {
					fmt.Fprintf(out, "    %s %s\n", color.HiBlackString("•"), title)
				}
			}
			return nil
		},
	}
}

func newCoversExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:               "export <id>",
		Short:             "Write a book's cover to a JPEG file",
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
			if !book.HasCover() {
				return fmt.Errorf("%q has no cover", book.Title)
			}

			if out == "" {
				out = book.ID + ".jpg"
			}
			if err := util.WriteFileAtomic(out, book.CoverImage, 0644); err != nil {
				return fmt.Errorf("writing cover: %w", err)
			}
			ok("Wrote %s (%s)", out, formatBytes(int64(len(book.CoverImage))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: <id>.jpg)")
	return cmd
}

// formatBytes formats bytes as human-readable size
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for n := n / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
