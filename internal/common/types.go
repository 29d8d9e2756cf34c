package common

import (
	"github.com/Akashdeep-Patra/tabula/internal/ui/components"
	tea "github.com/charmbracelet/bubbletea"
)

// ── Tab identifiers ─────────────────────────────────────────────────────────

// TabID identifies which view/tab is active.
type TabID int

const (
	TabInventory TabID = iota
	TabLocations
)

// TabMeta describes a tab for display purposes.
type TabMeta struct {
	ID       TabID
	Name     string // Display name shown in the tab bar.
	Icon     string
	Shortcut string // alt+<Shortcut> jumps to the tab.
}

// AllTabs is the ordered list of all tabs.
var AllTabs = []TabMeta{
	{TabInventory, "Inventory", "▦", "1"},
	{TabLocations, "Locations", "⌂", "2"},
}

// ── Custom messages ─────────────────────────────────────────────────────────

// RefreshMsg signals views to reload data.
type RefreshMsg struct{}

// ErrMsg carries an error to be displayed.
type ErrMsg struct{ Err error }

// InfoMsg carries an informational message.
type InfoMsg struct{ Text string }

// SwitchTabMsg requests a tab switch.
type SwitchTabMsg struct{ Tab TabID }

// ApplyFilterMsg asks the inventory grid to toggle a key:value filter.
type ApplyFilterMsg struct{ Key, Value string }

// CmdRefresh returns a RefreshMsg (use as return from tea.Cmd).
func CmdRefresh() tea.Msg { return RefreshMsg{} }

// CmdErr creates a tea.Cmd that sends an ErrMsg.
func CmdErr(err error) tea.Cmd {
	return func() tea.Msg { return ErrMsg{Err: err} }
}

// CmdInfo creates a tea.Cmd that sends an InfoMsg.
func CmdInfo(text string) tea.Cmd {
	return func() tea.Msg { return InfoMsg{Text: text} }
}

// ── View interface ──────────────────────────────────────────────────────────

// View is the interface every tab view must implement.
type View interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (View, tea.Cmd)
	View() string
	SetSize(width, height int)
	ShortHelp() []components.HelpEntry

	// InputCapture returns true while the view owns the keyboard (a cell
	// editor or text prompt is open) so global shortcuts are not applied.
	InputCapture() bool
}

// StatusReporter is implemented by views that contribute to the status bar.
type StatusReporter interface {
	Status() components.StatusBarData
}

// OpenDialogMsg asks the app to show a modal dialog. Its result is delivered
// to the active view as a components.DialogResult.
type OpenDialogMsg struct{ Dialog components.Dialog }
