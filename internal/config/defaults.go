package config

// KeyBindings maps grid actions to keys. Each field holds one or more keys
// in bubbletea's notation; they can be overridden under "keys" in the config
// file. Copy, paste, undo, redo and arrow navigation are not listed: they
// follow the platform shortcuts and are fixed.
type KeyBindings struct {
	Quit         []string `mapstructure:"quit"`
	Help         []string `mapstructure:"help"`
	NextTab      []string `mapstructure:"next_tab"`
	PrevTab      []string `mapstructure:"prev_tab"`
	Refresh      []string `mapstructure:"refresh"`
	Search       []string `mapstructure:"search"`
	Edit         []string `mapstructure:"edit"`
	FilterCell   []string `mapstructure:"filter_cell"`
	ClearFilters []string `mapstructure:"clear_filters"`
	SortAsc      []string `mapstructure:"sort_asc"`
	SortDesc     []string `mapstructure:"sort_desc"`
	ResetWidths  []string `mapstructure:"reset_widths"`
	PageUp       []string `mapstructure:"page_up"`
	PageDown     []string `mapstructure:"page_down"`
	Menu         []string `mapstructure:"menu"`
}

// DefaultKeyBindings returns the default key bindings.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Quit:         []string{"ctrl+q"},
		Help:         []string{"?", "f1"},
		NextTab:      []string{"alt+]"},
		PrevTab:      []string{"alt+["},
		Refresh:      []string{"ctrl+r", "f5"},
		Search:       []string{"/", "ctrl+f"},
		Edit:         []string{"enter", "f2"},
		FilterCell:   []string{"f"},
		ClearFilters: []string{"F"},
		SortAsc:      []string{"s"},
		SortDesc:     []string{"S"},
		ResetWidths:  []string{"="},
		PageUp:       []string{"pgup"},
		PageDown:     []string{"pgdown"},
		Menu:         []string{"m"},
	}
}

func (k KeyBindings) asMap() map[string][]string {
	return map[string][]string{
		"quit":          k.Quit,
		"help":          k.Help,
		"next_tab":      k.NextTab,
		"prev_tab":      k.PrevTab,
		"refresh":       k.Refresh,
		"search":        k.Search,
		"edit":          k.Edit,
		"filter_cell":   k.FilterCell,
		"clear_filters": k.ClearFilters,
		"sort_asc":      k.SortAsc,
		"sort_desc":     k.SortDesc,
		"reset_widths":  k.ResetWidths,
		"page_up":       k.PageUp,
		"page_down":     k.PageDown,
		"menu":          k.Menu,
	}
}
