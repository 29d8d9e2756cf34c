package components

import (
	"strings"

	"github.com/Akashdeep-Patra/tabula/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// RenderScrollbar returns a vertical scrollbar track of the given height.
// It shows a thumb proportional to the visible portion of the content,
// positioned by the scroll offset. All extents share one unit (the grid
// passes pixels).
//
// Returns an empty string if all content fits (no scrolling needed).
func RenderScrollbar(styles ui.Styles, height, total, visible, offset int) string {
	if total <= visible || height < 1 || visible <= 0 {
		return ""
	}

	t := styles.Theme

	thumbSize := min(max(height*visible/total, 1), height)

	maxOffset := height - thumbSize
	thumbStart := 0
	if scrollable := total - visible; scrollable > 0 {
		thumbStart = offset * maxOffset / scrollable
	}
	thumbStart = min(max(thumbStart, 0), maxOffset)

	thumbStyle := lipgloss.NewStyle().Foreground(t.Primary)
	trackStyle := lipgloss.NewStyle().Foreground(t.Border)

	var b strings.Builder
	b.Grow(height * 4)
	for i := range height {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i >= thumbStart && i < thumbStart+thumbSize {
			b.WriteString(thumbStyle.Render("█"))
		} else {
			b.WriteString(trackStyle.Render("░"))
		}
	}
	return b.String()
}
