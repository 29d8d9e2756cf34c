package components

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Akashdeep-Patra/tabula/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// StatusBarData carries the info displayed in the bottom status bar.
type StatusBarData struct {
	Rows      int
	Filters   int
	Selection string // e.g. "B3" or "B3:D7 (12)"
	Sort      string // e.g. "location ↑"
	Undo      int
	Redo      int
	Editing   bool
	Message   string // transient info/error message
	IsError   bool
	Database  string
}

// RenderStatusBar renders the bottom status bar with sections separated by
// dim vertical bars.
//
// Wide (>= 60):   EDIT │ 412 rows │ B3:D7 (12) │ location ↑ │ ↶2 ↷0      inventory.db
// Narrow (< 60):  412 rows │ B3:D7 (12)
func RenderStatusBar(styles ui.Styles, data StatusBarData, width int) string {
	t := styles.Theme

	sepStyle := lipgloss.NewStyle().Foreground(t.Border).Faint(true)
	sep := sepStyle.Render(" │ ")

	// ── Left sections ────────────────────────────────────────────

	var sections []string
	if data.Editing {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(t.TextInverse).
			Background(t.Warning).
			Bold(true).
			Padding(0, 1).
			Render("EDIT"))
	}

	count := fmt.Sprintf("%d rows", data.Rows)
	if data.Filters > 0 {
		count += fmt.Sprintf(" · %d filters", data.Filters)
	}
	sections = append(sections, lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render(count))

	if data.Selection != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(t.Text).Render(data.Selection))
	}
	if width >= 60 {
		if data.Sort != "" {
			sections = append(sections, lipgloss.NewStyle().Foreground(t.Secondary).Render(data.Sort))
		}
		if data.Undo > 0 || data.Redo > 0 {
			sections = append(sections, lipgloss.NewStyle().Foreground(t.Warning).
				Render(fmt.Sprintf("↶%d ↷%d", data.Undo, data.Redo)))
		}
	}

	left := " " + strings.Join(sections, sep)

	// ── Right section ────────────────────────────────────────────

	var right string
	if data.Message != "" {
		fg := t.Info
		if data.IsError {
			fg = t.Error
		}
		right = lipgloss.NewStyle().Foreground(fg).Render(data.Message) + " "
	} else if width >= 60 && data.Database != "" {
		right = lipgloss.NewStyle().Foreground(t.TextSubtle).Render(filepath.Base(data.Database)) + " "
	}

	// ── Assemble ─────────────────────────────────────────────────

	leftW := lipgloss.Width(left)
	rightW := lipgloss.Width(right)
	gap := width - leftW - rightW
	if gap < 0 {
		gap = 1
		right = "" // drop right side if no room
	}

	content := left + strings.Repeat(" ", gap) + right

	return styles.StatusBar.Width(width).MaxWidth(width).Render(content)
}
