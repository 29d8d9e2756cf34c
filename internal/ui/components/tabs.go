package components

import (
	"strings"

	"github.com/Akashdeep-Patra/tabula/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// TabInfo describes a single tab for rendering.
type TabInfo struct {
	Name     string
	Icon     string
	Shortcut string
	Active   bool
}

// TabZone is the horizontal extent [Start, End) of a rendered tab label.
type TabZone struct {
	Start, End int
}

// TabBarRows is the number of screen rows the tab bar occupies: one row of
// labels and the underline.
const TabBarRows = 2

// RenderTabs renders the tab bar and returns the column zone of every tab,
// in order, for mouse hit-testing. Labels collapse to their icon when the
// full names do not fit.
func RenderTabs(styles ui.Styles, tabs []TabInfo, width int) (string, []TabZone) {
	t := styles.Theme

	activeStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	full := 1
	for _, tab := range tabs {
		full += lipgloss.Width(tab.Icon+" "+tab.Name) + 2
	}
	iconOnly := full > width

	zones := make([]TabZone, 0, len(tabs))
	var row strings.Builder
	row.WriteByte(' ')
	col := 1
	activeStart, activeEnd := -1, -1

	for _, tab := range tabs {
		label := tab.Icon + " " + tab.Name
		if iconOnly {
			label = tab.Icon
		}
		style := inactiveStyle
		if tab.Active {
			style = activeStyle
		}
		styled := " " + style.Render(label) + " "
		w := lipgloss.Width(styled)
		if tab.Active {
			activeStart, activeEnd = col, col+w
		}
		zones = append(zones, TabZone{Start: col, End: col + w})
		row.WriteString(styled)
		col += w
	}

	labels := lipgloss.NewStyle().
		Width(width).
		MaxWidth(width).
		Background(t.Bg).
		Render(row.String())

	borderStyle := lipgloss.NewStyle().Foreground(t.Border)
	accentStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)

	underline := buildUnderline(width, activeStart, activeEnd, borderStyle, accentStyle)

	// Overlay a right-side hint.
	hint := lipgloss.NewStyle().Foreground(t.TextSubtle).Faint(true).Render("alt+1/2  ?help")
	if hintW := lipgloss.Width(hint); hintW+4 < width {
		hintStart := width - hintW - 1
		underline = buildUnderline(hintStart, activeStart, activeEnd, borderStyle, accentStyle) + " " + hint
	}

	return lipgloss.JoinVertical(lipgloss.Left, labels, lipgloss.NewStyle().Width(width).Render(underline)), zones
}

// HitTab returns the index of the tab under column x, or -1.
func HitTab(zones []TabZone, x int) int {
	for i, z := range zones {
		if x >= z.Start && x < z.End {
			return i
		}
	}
	return -1
}

// buildUnderline builds a width-wide underline string with a bold accent
// segment between activeStart..activeEnd and thin segments elsewhere.
func buildUnderline(width, activeStart, activeEnd int, borderSt, accentSt lipgloss.Style) string {
	const thin, bold = "─", "━"
	if activeStart < 0 || activeEnd < 0 {
		return borderSt.Render(strings.Repeat(thin, width))
	}
	activeEnd = min(activeEnd, width)
	activeStart = min(activeStart, width)

	var b strings.Builder
	b.Grow(width * 4)
	if activeStart > 0 {
		b.WriteString(borderSt.Render(strings.Repeat(thin, activeStart)))
	}
	if seg := activeEnd - activeStart; seg > 0 {
		b.WriteString(accentSt.Render(strings.Repeat(bold, seg)))
	}
	if rem := width - activeEnd; rem > 0 {
		b.WriteString(borderSt.Render(strings.Repeat(thin, rem)))
	}
	return b.String()
}
