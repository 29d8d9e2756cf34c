package components

import (
	"strconv"

	"github.com/Akashdeep-Patra/tabula/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// ChipZone is the clickable extent [Start, End) of a rendered chip.
type ChipZone struct {
	Start, End int
	// Filter is the "key:value" filter the chip removes; empty for the
	// search chip.
	Filter string
	Search bool
}

// RenderChips renders the active search term and filters as removable chips
// on a single line. Chips that do not fit are summarised as "+N".
func RenderChips(styles ui.Styles, search string, filters []string, width int) (string, []ChipZone) {
	if search == "" && len(filters) == 0 {
		return "", nil
	}

	var (
		line  string
		col   int
		zones []ChipZone
	)
	add := func(text string, style lipgloss.Style, zone ChipZone) bool {
		chip := style.Render(text + " ×")
		w := lipgloss.Width(chip)
		if col+w+1 > width-4 {
			return false
		}
		if col > 0 {
			line += " "
			col++
		}
		zone.Start, zone.End = col, col+w
		zones = append(zones, zone)
		line += chip
		col += w
		return true
	}

	if search != "" {
		add("/"+ui.Truncate(search, 24), styles.ChipSearch, ChipZone{Search: true})
	}
	for i, f := range filters {
		if !add(ui.Truncate(f, 32), styles.Chip, ChipZone{Filter: f}) {
			line += styles.Muted.Render(" +" + strconv.Itoa(len(filters)-i))
			break
		}
	}
	return line, zones
}

// HitChip returns the chip under column x.
func HitChip(zones []ChipZone, x int) (ChipZone, bool) {
	for _, z := range zones {
		if x >= z.Start && x < z.End {
			return z, true
		}
	}
	return ChipZone{}, false
}
