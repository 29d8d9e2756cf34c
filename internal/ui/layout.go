// Package ui provides shared TUI styling, layout helpers, and theme definitions.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Terminal cell geometry in the pixel units the grid engine works in.
const (
	CellPxWidth  = 8
	CellPxHeight = 32
)

// PxToCols converts a pixel width to terminal columns, never below one.
func PxToCols(px int) int {
	return max(1, px/CellPxWidth)
}

// ColsToPx converts terminal columns to pixels.
func ColsToPx(cols int) int { return cols * CellPxWidth }

// LinesToPx converts terminal lines to pixels.
func LinesToPx(lines int) int { return lines * CellPxHeight }

// PxToLines converts a pixel height to terminal lines, rounding down.
func PxToLines(px int) int { return px / CellPxHeight }

// PlaceCentre centres content both horizontally and vertically within the given dimensions.
func PlaceCentre(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Truncate shortens s to at most width display cells, ending in "…" when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// Fit truncates or pads s to exactly width display cells. Newlines and tabs
// are shown as spaces.
func Fit(s string, width int) string {
	s = strings.NewReplacer("\n", " ", "\t", " ", "\r", "").Replace(s)
	return PadRight(Truncate(s, width), width)
}

// PadRight pads s with spaces to the given width.
func PadRight(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// RenderKeyValue renders a "key: value" pair with styles.
func RenderKeyValue(styles Styles, key, value string) string {
	return styles.KeyBind.Render(key) + " " + styles.KeyDesc.Render(value)
}

// JoinHorizontal joins non-empty items with a separator.
func JoinHorizontal(sep string, items ...string) string {
	var filtered []string
	for _, item := range items {
		if item != "" {
			filtered = append(filtered, item)
		}
	}
	return strings.Join(filtered, sep)
}

// Overlay draws top over base with its top-left corner at column x, line y.
// Both may contain ANSI styling. Lines of top outside base are dropped.
func Overlay(base, top string, x, y int) string {
	lines := strings.Split(base, "\n")
	for i, tl := range strings.Split(top, "\n") {
		row := y + i
		if row < 0 || row >= len(lines) {
			continue
		}
		bl := lines[row]
		left := ansi.Truncate(bl, x, "")
		if lw := ansi.StringWidth(left); lw < x {
			left += strings.Repeat(" ", x-lw)
		}
		right := ansi.TruncateLeft(bl, x+ansi.StringWidth(tl), "")
		lines[row] = left + tl + right
	}
	return strings.Join(lines, "\n")
}
