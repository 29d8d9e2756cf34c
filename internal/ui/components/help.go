package components

import (
	"strings"

	"github.com/Akashdeep-Patra/tabula/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// HelpEntry is a single key-description pair for the help overlay.
type HelpEntry struct {
	Key  string
	Desc string
}

// helpOrder is the display order of help sections.
var helpOrder = []string{"Navigation", "Selection", "Editing", "Clipboard", "Search", "Inventory", "Locations", "Tabs", "General"}

// RenderHelp renders a full-screen help overlay.
func RenderHelp(styles ui.Styles, title string, sections map[string][]HelpEntry, width, height int) string {
	t := styles.Theme

	titleStr := lipgloss.NewStyle().
		Foreground(t.Primary).Bold(true).
		Align(lipgloss.Center).
		Width(width - 4).
		Render(title)

	var body strings.Builder
	body.WriteString(titleStr + "\n\n")

	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Underline(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Width(18).Align(lipgloss.Right)
	descStyle := lipgloss.NewStyle().Foreground(t.Text)

	for _, section := range helpOrder {
		entries, ok := sections[section]
		if !ok || len(entries) == 0 {
			continue
		}
		body.WriteString(sectionStyle.Render(section) + "\n")
		for _, e := range entries {
			body.WriteString("  " + keyStyle.Render(e.Key) + "  " + descStyle.Render(e.Desc) + "\n")
		}
		body.WriteString("\n")
	}

	overlay := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Primary).
		Padding(1, 3).
		Width(min(72, width-4)).
		MaxHeight(height - 2).
		Render(body.String())

	return ui.PlaceCentre(width, height, overlay)
}

// GlobalHelpEntries returns the help entries for global keybindings.
func GlobalHelpEntries() map[string][]HelpEntry {
	return map[string][]HelpEntry{
		"Navigation": {
			{Key: "← ↑ → ↓", Desc: "Move the active cell"},
			{Key: "ctrl+arrow", Desc: "Jump to the grid edge"},
			{Key: "tab / shift+tab", Desc: "Next / previous column"},
			{Key: "pgup / pgdn", Desc: "Scroll a page"},
			{Key: "wheel", Desc: "Scroll (shift+wheel: sideways)"},
		},
		"Selection": {
			{Key: "click / drag", Desc: "Select a cell / range"},
			{Key: "shift+click", Desc: "Extend from the anchor"},
			{Key: "shift+arrow", Desc: "Extend the range"},
			{Key: "esc", Desc: "Clear selection, cancel edit, close menus"},
		},
		"Editing": {
			{Key: "enter / f2", Desc: "Edit the active cell"},
			{Key: "enter", Desc: "Save the edit"},
			{Key: "tab", Desc: "Save and move right"},
			{Key: "alt+enter", Desc: "New line in the editor"},
			{Key: "ctrl+z", Desc: "Undo"},
			{Key: "ctrl+y / ctrl+shift+z", Desc: "Redo"},
			{Key: "drag header edge", Desc: "Resize a column"},
			{Key: "=", Desc: "Reset column widths"},
		},
		"Clipboard": {
			{Key: "ctrl+c", Desc: "Copy the selection"},
			{Key: "ctrl+v", Desc: "Paste into the active cell"},
		},
		"Search": {
			{Key: "/ or ctrl+f", Desc: "Search all columns"},
			{Key: "f", Desc: "Filter by the active cell"},
			{Key: "F", Desc: "Clear search and filters"},
			{Key: "s / S", Desc: "Sort ascending / descending"},
			{Key: "right click header", Desc: "Column menu"},
			{Key: "right click / m", Desc: "Cell menu"},
			{Key: "click chip", Desc: "Remove a filter"},
		},
		"Tabs": {
			{Key: "alt+1 / alt+2", Desc: "Inventory / Locations"},
			{Key: "alt+] / alt+[", Desc: "Next / previous tab"},
			{Key: "click tab", Desc: "Switch tab"},
		},
		"General": {
			{Key: "ctrl+r / f5", Desc: "Refresh data"},
			{Key: "?", Desc: "Toggle this help"},
			{Key: "ctrl+q", Desc: "Quit"},
		},
	}
}
