package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/fatih/color"
	"github.com/ilaria3312/MyLibrary/internal/config"
	"github.com/ilaria3312/MyLibrary/internal/library"
	"github.com/ilaria3312/MyLibrary/internal/logging"
	"github.com/ilaria3312/MyLibrary/internal/storage"
	"github.com/ilaria3312/MyLibrary/internal/tui"
	"github.com/ilaria3312/MyLibrary/internal/unified"
	"github.com/ilaria3312/MyLibrary/internal/util"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg     *config.Config
	logger  = zap.NewNop()
	backend storage.Backend

	flagNoColor       bool
	flagNoInteractive bool
	flagConfig        string
)

// commands that never touch the library
var noLibrary = map[string]bool{
	"init":       true,
	"version":    true,
	"completion": true,
	"categories": true,
	"help":       true,

	cobra.ShellCompRequestCmd:       true,
	cobra.ShellCompNoDescRequestCmd: true,
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mylibrary",
		Short: "Catalogue your personal books on virtual shelves",
		Long: `mylibrary keeps a catalogue of the books you own: title, author,
genre, publisher, a star rating and a cover picture. Books are laid out on
shelves you can search and browse.

Run 'mylibrary' with no arguments to open the interactive library.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tui.ShouldUseTUI(cmd) {
				return runLibrary()
			}
			return cmd.Help()
		},
	}

	root.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/mylibrary/config.yml)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}

		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		logger, err = logging.New(cfg.Log)
		if err != nil {
			return fmt.Errorf("opening log: %w", err)
		}

		if noLibrary[cmd.Name()] {
			return nil
		}

		backend, err = storage.Open(cfg.Data.EffectiveBackend(), cfg.Data.Dir, logger)
		if err != nil {
			return fmt.Errorf("opening library: %w", err)
		}
		return nil
	}

	root.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return closeBackend()
	}

	root.AddCommand(
		newListCmd(),
		newAddCmd(),
		newEditCmd(),
		newRemoveCmd(),
		newShelvesCmd(),
		newCategoriesCmd(),
		newIndexCmd(),
		newCoversCmd(),
		newInitCmd(),
		newVersionCmd(),
		newCompletionCmd(),
	)
	return root
}

// Execute is the entry point called from main.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		_ = closeBackend()
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

// closeBackend releases the storage opened by PersistentPreRunE. Commands
// that fail skip the post-run hook, so Execute calls it too.
func closeBackend() error {
	defer func() { _ = logger.Sync() }()
	if backend == nil {
		return nil
	}
	err := backend.Close()
	backend = nil
	return err
}

// loadStore reads the library into a fresh store.
func loadStore() (*library.Store, error) {
	books, err := backend.Load()
	if err != nil {
		return nil, fmt.Errorf("loading library: %w", err)
	}
	logger.Debug("library loaded", zap.Int("books", len(books)))
	return library.NewStore(books), nil
}

// saveStore writes the whole collection back.
func saveStore(store *library.Store) error {
	if err := backend.Save(store.Books()); err != nil {
		return fmt.Errorf("saving library: %w", err)
	}
	logger.Debug("library saved", zap.Int("books", store.Len()))
	return nil
}

// runLibrary opens the interactive shelves.
func runLibrary() error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	home, _ := os.UserHomeDir()
	return unified.Run(unified.Options{
		Store:         store,
		Persist:       backend.Save,
		Logger:        logger,
		BooksPerShelf: cfg.Layout.EffectiveBooksPerShelf(),
		StartDir:      home,
		Protocol:      tui.DetectImageProtocol(),
	})
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}
