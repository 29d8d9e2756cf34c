package views

import (
	"fmt"
	"strings"

	"github.com/Akashdeep-Patra/tabula/internal/grid"
	"github.com/Akashdeep-Patra/tabula/internal/ui"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ── Geometry ────────────────────────────────────────────────────────────────
//
// The engine measures in pixels; the terminal is laid out at ui.CellPxWidth
// pixels per column and one row height per line. Column edges are derived
// from pixel sums so that both agree on where a cell starts.

// bodyLines is the number of screen lines available to data rows.
func (v *GridView) bodyLines() int { return max(0, v.height-bodyTop) }

// gutterWidth is the width of the row-number column.
func (v *GridView) gutterWidth() int {
	rows, _ := v.engine.Size()
	return max(5, len(fmt.Sprint(rows))+2)
}

// contentCols is the width of the horizontally scrolling area, leaving one
// column for the scrollbar.
func (v *GridView) contentCols() int { return max(0, v.width-v.gutterWidth()-1) }

func (v *GridView) clientHeight() int { return v.linesToPx(max(0, v.height-headerLine)) }

// rowHeight is the height of one screen line, in pixels.
func (v *GridView) rowHeight() int { return v.engine.Sizing.DefaultHeight() }

func (v *GridView) linesToPx(lines int) int { return lines * v.rowHeight() }

// rowLines is the number of screen lines a row occupies.
func (v *GridView) rowLines(row int) int {
	return max(1, v.engine.Sizing.Height(row)/v.rowHeight())
}

// colLeft and colRight are the content-area column edges of a grid column.
func (v *GridView) colLeft(col int) int {
	return v.engine.Sizing.SumWidths(v.engine.Keys()[:col]) / ui.CellPxWidth
}

func (v *GridView) colRight(col int) int {
	return v.engine.Sizing.SumWidths(v.engine.Keys()[:col+1]) / ui.CellPxWidth
}

func (v *GridView) colCols(col int) int { return max(1, v.colRight(col)-v.colLeft(col)) }

// bodyLine is one screen line of the body: a row and the line within it.
type bodyLine struct {
	row int
	sub int
}

// layout maps body screen lines to rows for the current scroll offset. Rows
// come from the viewport's materialized window, the same one the Locator
// answers for; the overscan above the first visible row is skipped.
func (v *GridView) layout() []bodyLine {
	lines := v.bodyLines()
	out := make([]bodyLine, 0, lines)
	vp := v.engine.Viewport
	win := grid.VisibleItems(vp, v.engine.Rows())
	above := (v.scrollTop - vp.OffsetY()) / v.rowHeight()
	for i := range win.Items {
		if i < above {
			continue
		}
		r := vp.ActualIndex(i)
		for s := range v.rowLines(r) {
			if len(out) == lines {
				return out
			}
			out = append(out, bodyLine{row: r, sub: s})
		}
	}
	return out
}

// ── Locator ─────────────────────────────────────────────────────────────────

// locate reports the content-space geometry of a cell. Cells outside the
// viewport's materialized window (visible rows plus overscan) are not
// located, like unrendered DOM nodes.
func (v *GridView) locate(row, col int) (grid.Rect, bool) {
	rows, cols := v.engine.Size()
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return grid.Rect{}, false
	}
	if !v.engine.Viewport.IsRowVisible(row) {
		return grid.Rect{}, false
	}
	keys := v.engine.Keys()
	return grid.Rect{
		Top:     grid.HeaderHeight + row*v.rowHeight(),
		Left:    v.engine.Sizing.SumWidths(keys[:col]),
		Width:   v.engine.Sizing.Width(keys[col]),
		Height:  v.engine.Sizing.Height(row),
		Visible: true,
	}, true
}

// ── Container ───────────────────────────────────────────────────────────────

// gridContainer is the scrollable area of the grid: header plus body, with
// offsets clamped to the content extent.
type gridContainer struct{ v *GridView }

var _ grid.Container = gridContainer{}

func (v *GridView) container() gridContainer { return gridContainer{v: v} }

func (c gridContainer) ScrollTop() int  { return c.v.scrollTop }
func (c gridContainer) ScrollLeft() int { return c.v.scrollLeft }

func (c gridContainer) ClientHeight() int { return c.v.clientHeight() }

func (c gridContainer) ClientWidth() int { return ui.ColsToPx(c.v.contentCols()) }

func (c gridContainer) SetScrollTop(px int) {
	rows, _ := c.v.engine.Size()
	limit := max(0, grid.HeaderHeight+c.v.engine.Viewport.TotalHeight(rows)-c.ClientHeight())
	c.v.scrollTop = min(max(px, 0), limit)
}

func (c gridContainer) SetScrollLeft(px int) {
	limit := max(0, c.v.engine.Sizing.SumWidths(c.v.engine.Keys())-c.ClientWidth())
	c.v.scrollLeft = min(max(px, 0), limit)
}

// syncScroll tells the engine about a scroll change. The materialized window
// moves with it, so the selection overlay is recomputed.
func (v *GridView) syncScroll() {
	v.engine.Viewport.HandleScroll(v.scrollTop)
	v.engine.Selection.UpdateOverlay()
}

func (v *GridView) scrollBy(dx, dy int) {
	c := v.container()
	c.SetScrollTop(v.scrollTop + dy)
	c.SetScrollLeft(v.scrollLeft + dx)
	v.syncScroll()
}

// scrollIntoView brings a cell on screen after keyboard navigation.
func (v *GridView) scrollIntoView(cell grid.Cell) {
	v.engine.Viewport.EnsureVisible(cell.Row, cell.Col, v.container(), v.engine.Keys(), v.engine.Sizing)
	v.syncScroll()
}

// ── Hit testing ─────────────────────────────────────────────────────────────

// colAt returns the grid column under screen column x.
func (v *GridView) colAt(x int) (int, bool) {
	g := v.gutterWidth()
	if x < g || x >= g+v.contentCols() {
		return 0, false
	}
	cx := x - g + v.scrollLeft/ui.CellPxWidth
	_, cols := v.engine.Size()
	for c := range cols {
		if cx >= v.colLeft(c) && cx < v.colRight(c) {
			return c, true
		}
	}
	return 0, false
}

// cellAt returns the cell under a screen position.
func (v *GridView) cellAt(x, y int) (grid.Cell, bool) {
	lines := v.layout()
	i := y - bodyTop
	if i < 0 || i >= len(lines) {
		return grid.NoCell, false
	}
	col, ok := v.colAt(x)
	if !ok {
		return grid.NoCell, false
	}
	return grid.Cell{Row: lines[i].row, Col: col}, true
}

// resizeHandleAt returns the column whose right border sits under screen
// column x on the header line.
func (v *GridView) resizeHandleAt(x int) (int, bool) {
	g := v.gutterWidth()
	if x < g || x >= g+v.contentCols() {
		return 0, false
	}
	cx := x - g + v.scrollLeft/ui.CellPxWidth
	_, cols := v.engine.Size()
	for c := range cols {
		if cx == v.colRight(c)-1 {
			return c, true
		}
	}
	return 0, false
}

// cellScreenPos returns the screen position of a cell's top-left corner,
// clamped to the grid area.
func (v *GridView) cellScreenPos(c grid.Cell) (x, y int) {
	x = v.gutterWidth() + v.colLeft(c.Col) - v.scrollLeft/ui.CellPxWidth
	y = bodyTop
	for i, l := range v.layout() {
		if l.row == c.Row {
			y = bodyTop + i
			break
		}
	}
	return min(max(x, 0), max(0, v.width-1)), y
}

// ── Labels ──────────────────────────────────────────────────────────────────

// columnTitle turns a field key into a header label: "wbd_tag" → "Wbd Tag".
func columnTitle(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}
