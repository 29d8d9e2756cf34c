package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// layoutFile stores user-adjusted grid geometry next to config.yaml.
const layoutFile = "layout.yaml"

// Layout is the persisted grid geometry.
type Layout struct {
	// ColumnWidths holds pixel widths keyed by column. Keys are lower-cased
	// by viper; inventory columns already are.
	ColumnWidths map[string]int `mapstructure:"column_widths"`
}

// LayoutPath returns the layout file inside dir.
func LayoutPath(dir string) string { return filepath.Join(dir, layoutFile) }

// LoadLayout reads the layout from dir. A missing file yields an empty
// layout.
func LoadLayout(dir string) (Layout, error) {
	v := viper.New()
	v.SetConfigFile(LayoutPath(dir))
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Layout{}, nil
		}
		return Layout{}, fmt.Errorf("reading layout: %w", err)
	}
	var l Layout
	if err := v.Unmarshal(&l); err != nil {
		return Layout{}, fmt.Errorf("decoding layout: %w", err)
	}
	return l, nil
}

// SaveLayout writes the layout to dir, creating it if needed.
func SaveLayout(dir string, l Layout) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	v := viper.New()
	v.SetConfigType("yaml")
	widths := make(map[string]any, len(l.ColumnWidths))
	for k, w := range l.ColumnWidths {
		widths[k] = w
	}
	v.Set("column_widths", widths)
	if err := v.WriteConfigAs(LayoutPath(dir)); err != nil {
		return fmt.Errorf("writing layout: %w", err)
	}
	return nil
}
