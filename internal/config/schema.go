package config

// Config is the top-level mylibrary configuration.
type Config struct {
	Data   DataConfig   `mapstructure:"data" yaml:"data"`
	Layout LayoutConfig `mapstructure:"layout" yaml:"layout"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
}

// DataConfig says where and how the library is stored.
type DataConfig struct {
	Dir     string `mapstructure:"dir" yaml:"dir"`
	Backend string `mapstructure:"backend" yaml:"backend"` // "yaml" or "pebble"
}

// LayoutConfig holds shelf layout parameters.
type LayoutConfig struct {
	BooksPerShelf  int     `mapstructure:"books_per_shelf" yaml:"books_per_shelf"`
	ShelfHeight    float64 `mapstructure:"shelf_height" yaml:"shelf_height"`
	ViewportHeight float64 `mapstructure:"viewport_height" yaml:"viewport_height"`
}

// LogConfig controls the diagnostic log. An empty File disables logging.
type LogConfig struct {
	File  string `mapstructure:"file" yaml:"file,omitempty"`
	Level string `mapstructure:"level" yaml:"level"`
}

// EffectiveBackend returns the configured backend or "yaml".
func (d DataConfig) EffectiveBackend() string {
	if d.Backend != "" {
		return d.Backend
	}
	return "yaml"
}

// EffectiveBooksPerShelf returns the shelf capacity, falling back to 5 when
// unset. Negative values are returned unchanged so the layout can reject them.
func (l LayoutConfig) EffectiveBooksPerShelf() int {
	if l.BooksPerShelf == 0 {
		return 5
	}
	return l.BooksPerShelf
}

// EffectiveShelfHeight returns the shelf height, falling back to 120.
func (l LayoutConfig) EffectiveShelfHeight() float64 {
	if l.ShelfHeight == 0 {
		return 120
	}
	return l.ShelfHeight
}
