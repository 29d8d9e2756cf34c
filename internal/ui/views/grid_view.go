package views

import (
	"fmt"
	"strings"

	"github.com/Akashdeep-Patra/tabula/internal/grid"
	"github.com/Akashdeep-Patra/tabula/internal/ui"
	"github.com/Akashdeep-Patra/tabula/internal/ui/components"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (v *GridView) View() string {
	if v.width <= 0 || v.height <= 0 {
		return ""
	}
	if !v.loaded {
		return ui.PlaceCentre(v.width, v.height, v.styles.Muted.Render("Loading inventory…"))
	}

	lines := make([]string, 0, v.height)
	lines = append(lines, v.renderToolbar(), v.renderHeader())

	body := v.renderBody()
	bar := v.renderScrollbar()
	for i, line := range body {
		sb := " "
		if i < len(bar) {
			sb = bar[i]
		}
		lines = append(lines, line+sb)
	}

	out := strings.Join(lines, "\n")
	if v.menuOpen() {
		x, y := v.menuOrigin()
		out = ui.Overlay(out, v.menu.View(v.styles), x, y)
	}
	return out
}

// renderToolbar shows the search and filter chips, or a hint without them.
func (v *GridView) renderToolbar() string {
	chips, zones := components.RenderChips(v.styles, v.search, v.Filters(), v.width)
	if chips == "" {
		v.chipZones = nil
		hint := v.styles.Muted.Render("/ search · f filter by cell · s/S sort · right-click for menus")
		return fitANSI(" "+hint, v.width)
	}
	// Chips start after one column of padding.
	for i := range zones {
		zones[i].Start++
		zones[i].End++
	}
	v.chipZones = zones
	return fitANSI(" "+chips, v.width)
}

func (v *GridView) renderHeader() string {
	keys := v.engine.Keys()
	border := v.styles.GridBorder.Render("│")

	var b strings.Builder
	for c, k := range keys {
		label := columnTitle(k)
		style := v.styles.Header
		if active, dir := v.sorter.State(k); active {
			label += " " + sortArrow(dir)
			style = v.styles.HeaderSorted
		}
		b.WriteString(style.Render(ui.Fit(" "+label, v.colCols(c)-1)))
		b.WriteString(border)
	}

	gutter := v.styles.Header.Render(strings.Repeat(" ", v.gutterWidth()))
	return gutter + v.clip(b.String()) + v.styles.Header.Render(" ")
}

// renderBody returns exactly bodyLines lines of gutter and cells, without
// the scrollbar column.
func (v *GridView) renderBody() []string {
	n := v.bodyLines()
	out := make([]string, 0, n)
	blank := strings.Repeat(" ", v.gutterWidth()+v.contentCols())

	rows, _ := v.engine.Size()
	if rows == 0 {
		msg := "No assets yet · load some with `tabula import <file.xlsx>`"
		if v.search != "" || len(v.filters) > 0 {
			msg = "No assets match the current search · F clears it"
		}
		out = append(out, fitANSI(strings.Repeat(" ", v.gutterWidth())+v.styles.Muted.Render(msg), len(blank)))
	}

	var editorLines []string
	if v.engine.Edit.Active() {
		editorLines = strings.Split(v.editor.View(), "\n")
	}

	for _, bl := range v.layout() {
		if len(out) == n {
			break
		}
		out = append(out, v.renderRowLine(bl, editorLines))
	}
	for len(out) < n {
		out = append(out, blank)
	}
	return out
}

func (v *GridView) renderRowLine(bl bodyLine, editorLines []string) string {
	g := v.gutterWidth()
	gutter := strings.Repeat(" ", g)
	if bl.sub == 0 {
		gutter = v.styles.RowNumber.Render(fmt.Sprintf("%*d ", g-1, bl.row+1))
	}

	sel := v.engine.Selection
	border := v.styles.GridBorder.Render("│")
	_, cols := v.engine.Size()

	var b strings.Builder
	for c := range cols {
		w := v.colCols(c) - 1
		if v.engine.Edit.IsEditingCell(bl.row, c) {
			line := ""
			if bl.sub < len(editorLines) {
				line = editorLines[bl.sub]
			}
			b.WriteString(fitANSI(line, w))
			b.WriteString(border)
			continue
		}

		text := ""
		if bl.sub == 0 {
			text = v.engine.Value(bl.row, c)
		}
		style := v.styles.Cell
		if bl.row%2 == 1 {
			style = v.styles.CellAlt
		}
		copied := sel.IsCellInCopyOverlay(bl.row, c)
		switch {
		case sel.Contains(bl.row, c):
			style = v.styles.CellSelected.Underline(copied)
		case copied:
			style = v.styles.CellCopied
		}
		b.WriteString(style.Render(ui.Fit(text, w)))
		b.WriteString(border)
	}
	return gutter + v.clip(b.String())
}

// renderScrollbar returns one entry per body line, or nil when everything
// fits.
func (v *GridView) renderScrollbar() []string {
	rows, _ := v.engine.Size()
	total := grid.HeaderHeight + v.engine.Viewport.TotalHeight(rows)
	bar := components.RenderScrollbar(v.styles, v.bodyLines(), total, v.clientHeight(), v.scrollTop)
	if bar == "" {
		return nil
	}
	return strings.Split(bar, "\n")
}

// clip cuts a full-width grid line to the horizontally scrolled window.
func (v *GridView) clip(line string) string {
	left := v.scrollLeft / ui.CellPxWidth
	w := v.contentCols()
	return fitANSI(ansi.Cut(line, left, left+w), w)
}

// fitANSI truncates or pads a styled string to exactly width cells.
func fitANSI(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if w := lipgloss.Width(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
