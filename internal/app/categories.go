package app

import (
	"fmt"

	"github.com/ilaria3312/MyLibrary/internal/library"
	"github.com/spf13/cobra"
)

func newCategoriesCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Print the category labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			labels := library.Categories()
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), labels)
			}
			for _, c := range labels {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
