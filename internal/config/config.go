// Package config loads tabula's settings with viper and persists the grid
// layout between sessions.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// appName names the config, data and state directories.
const appName = "tabula"

// Config holds the resolved application configuration.
type Config struct {
	// Theme name: "dark" (default) or "light".
	Theme string `mapstructure:"theme"`
	// DBPath is the SQLite inventory file.
	DBPath string `mapstructure:"db_path"`

	// Grid geometry, in pixels of the original 8px-per-character layout.
	DefaultColumnWidth int `mapstructure:"default_column_width"`
	MinColumnWidth     int `mapstructure:"min_column_width"`
	RowHeight          int `mapstructure:"row_height"`
	// Overscan is the number of rows rendered beyond each edge of the screen.
	Overscan int `mapstructure:"overscan"`

	// SearchCacheTTL is how long identical queries are answered from memory.
	SearchCacheTTL time.Duration `mapstructure:"search_cache_ttl"`
	// WatchDebounce coalesces bursts of database file events.
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
	// PersistLayout saves column widths on exit and restores them on start.
	PersistLayout bool `mapstructure:"persist_layout"`
	// Locale drives string collation when sorting, as a BCP 47 tag.
	Locale string `mapstructure:"locale"`

	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`

	Keys KeyBindings `mapstructure:"keys"`
}

// Load reads configuration from ~/.config/tabula/config.yaml (or ./config.yaml).
// Environment variables prefixed with TABULA_ override the file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath(Dir())
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvPrefix("TABULA")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is fine, use defaults.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("theme", "dark")
	v.SetDefault("db_path", filepath.Join(dataDirectory(), "inventory.db"))
	v.SetDefault("default_column_width", 150)
	v.SetDefault("min_column_width", 50)
	v.SetDefault("row_height", 32)
	v.SetDefault("overscan", 15)
	v.SetDefault("search_cache_ttl", 2*time.Second)
	v.SetDefault("watch_debounce", 500*time.Millisecond)
	v.SetDefault("persist_layout", true)
	v.SetDefault("locale", "en")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", filepath.Join(StateDir(), appName+".log"))

	for name, keys := range DefaultKeyBindings().asMap() {
		v.SetDefault("keys."+name, keys)
	}
}

func (c *Config) validate() error {
	switch {
	case c.MinColumnWidth <= 0:
		return fmt.Errorf("min_column_width must be positive, got %d", c.MinColumnWidth)
	case c.DefaultColumnWidth < c.MinColumnWidth:
		return fmt.Errorf("default_column_width %d is below min_column_width %d", c.DefaultColumnWidth, c.MinColumnWidth)
	case c.RowHeight <= 0:
		return fmt.Errorf("row_height must be positive, got %d", c.RowHeight)
	case c.Overscan < 0:
		return fmt.Errorf("overscan must not be negative, got %d", c.Overscan)
	}
	return nil
}

// Dir returns the configuration directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// StateDir returns the directory for logs.
func StateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", appName)
}

func dataDirectory() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}
