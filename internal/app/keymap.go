package app

import (
	"strings"

	"github.com/Akashdeep-Patra/tabula/internal/common"
	"github.com/Akashdeep-Patra/tabula/internal/config"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the global keybindings used across the application.
// Tab jumps use alt+<shortcut> so they never collide with grid keys.
type KeyMap struct {
	Quit    key.Binding
	Help    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Refresh key.Binding
	Back    key.Binding

	// Tabs holds one jump binding per entry of common.AllTabs, in order.
	Tabs []key.Binding
}

// NewKeyMap builds the global keybindings from configuration.
func NewKeyMap(k config.KeyBindings) KeyMap {
	bind := func(keys []string, desc string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(strings.Join(keys, "/"), desc))
	}
	km := KeyMap{
		Quit:    bind(k.Quit, "quit"),
		Help:    bind(k.Help, "help"),
		NextTab: bind(k.NextTab, "next tab"),
		PrevTab: bind(k.PrevTab, "prev tab"),
		Refresh: bind(k.Refresh, "refresh"),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
	for _, t := range common.AllTabs {
		km.Tabs = append(km.Tabs, bind([]string{"alt+" + t.Shortcut}, strings.ToLower(t.Name)))
	}
	return km
}

// DefaultKeyMap returns the keybindings for the default configuration.
func DefaultKeyMap() KeyMap { return NewKeyMap(config.DefaultKeyBindings()) }
