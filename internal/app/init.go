package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/ilaria3312/MyLibrary/internal/config"
	"github.com/ilaria3312/MyLibrary/internal/storage"
	"github.com/ilaria3312/MyLibrary/internal/util"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var (
		dataDir  string
		kind     string
		logFile  string
		perShelf int
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file and create the data directory",
		Long: `Write ~/.config/mylibrary/config.yml (or the --config path) and create
the data directory.

Books are stored either as a YAML file with covers next to it ("yaml", the
default) or in an embedded key-value database ("pebble").`,
		Example: `  mylibrary init
  mylibrary init --data-dir ~/Books --backend pebble
  mylibrary init --log-file ~/.local/state/mylibrary.log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ResolvePath(flagConfig)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			newCfg := config.Default()
			if cmd.Flags().Changed("data-dir") {
				newCfg.Data.Dir = config.ExpandHome(dataDir)
			}
			if cmd.Flags().Changed("backend") {
				newCfg.Data.Backend = kind
			}
			if cmd.Flags().Changed("log-file") {
				newCfg.Log.File = config.ExpandHome(logFile)
			}
			if cmd.Flags().Changed("per-shelf") {
				newCfg.Layout.BooksPerShelf = perShelf
			}
			if err := newCfg.Validate(); err != nil {
				return err
			}
			if newCfg.Layout.BooksPerShelf < 1 {
				return fmt.Errorf("--per-shelf must be at least 1")
			}

			if err := util.EnsureDir(newCfg.Data.Dir); err != nil {
				return fmt.Errorf("creating data dir: %w", err)
			}
			if err := config.Save(path, newCfg); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			ok("Wrote %s", path)
			fmt.Printf("  %-9s %s\n", "data:", newCfg.Data.Dir)
			fmt.Printf("  %-9s %s\n", "backend:", newCfg.Data.EffectiveBackend())
			fmt.Println()
			fmt.Println("What's next?")
			fmt.Printf("  %s\n", color.CyanString(`mylibrary add --title "Dune" --author "Frank Herbert"`))
			fmt.Printf("  %s\n", color.CyanString("mylibrary"))
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Where books and covers are stored (default ~/.local/share/mylibrary)")
	cmd.Flags().StringVar(&kind, "backend", storage.KindYAML, "Storage backend: yaml or pebble")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write a diagnostic log to this file")
	cmd.Flags().IntVar(&perShelf, "per-shelf", 5, "Books per shelf")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config")
	return cmd
}
