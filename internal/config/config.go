package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "mylibrary", "config.yml")
}

// ResolvePath picks the config file: an explicit path wins, then
// MYLIBRARY_CONFIG, then DefaultPath.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return ExpandHome(explicit)
	}
	if p := os.Getenv("MYLIBRARY_CONFIG"); p != "" {
		return ExpandHome(p)
	}
	return DefaultPath()
}

// Load reads the config from path (see ResolvePath) and the environment.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("data.dir", defaultDataDir())
	v.SetDefault("data.backend", "yaml")
	v.SetDefault("layout.books_per_shelf", 5)
	v.SetDefault("layout.shelf_height", 120.0)
	v.SetDefault("layout.viewport_height", 852.0)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("MYLIBRARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(ResolvePath(path))
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; init creates it.
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Data.Dir = ExpandHome(cfg.Data.Dir)
	cfg.Log.File = ExpandHome(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the rest of the program cannot work with.
func (c *Config) Validate() error {
	switch c.Data.EffectiveBackend() {
	case "yaml", "pebble":
	default:
		return fmt.Errorf("data.backend: unknown backend %q (want yaml or pebble)", c.Data.Backend)
	}
	if c.Layout.BooksPerShelf < 0 {
		return fmt.Errorf("layout.books_per_shelf must be at least 1, got %d", c.Layout.BooksPerShelf)
	}
	if c.Layout.ShelfHeight < 0 {
		return fmt.Errorf("layout.shelf_height must be positive, got %v", c.Layout.ShelfHeight)
	}
	return nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Data:   DataConfig{Dir: defaultDataDir(), Backend: "yaml"},
		Layout: LayoutConfig{BooksPerShelf: 5, ShelfHeight: 120, ViewportHeight: 852},
		Log:    LogConfig{Level: "info"},
	}
}

// Save writes the config to path (see ResolvePath).
func Save(path string, cfg *Config) error {
	path = ResolvePath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(cfg)
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func defaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "mylibrary")
}
