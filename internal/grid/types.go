// Package grid is the interaction engine behind the spreadsheet surface:
// sizing, the virtualized row window, rectangular selection, the inline edit
// session, clipboard marshaling, undo/redo history and input dispatch.
//
// The engine never renders anything. Geometry it cannot compute on its own
// (where a cell was actually drawn) is asked for through a Locator, and the
// scroll position it adjusts is reached through a Container. Both are
// implemented by the view in production and by fakes in tests.
package grid

// RowID is the persistent identifier of a row. It survives re-sorts and
// re-filters; row indexes do not.
type RowID int64

// Row is one record of the caller-owned dataset.
type Row struct {
	ID     RowID
	Fields map[string]string
}

// Get returns the value of a field, or "" when absent.
func (r *Row) Get(key string) string {
	if r == nil || r.Fields == nil {
		return ""
	}
	return r.Fields[key]
}

// Set writes a field in place.
func (r *Row) Set(key, value string) {
	if r.Fields == nil {
		r.Fields = make(map[string]string)
	}
	r.Fields[key] = value
}

// Rows is the row array. The engine mutates rows in place and never
// reallocates the slice.
type Rows []*Row

// At returns the row at index i, or nil when i is out of range.
func (rs Rows) At(i int) *Row {
	if i < 0 || i >= len(rs) {
		return nil
	}
	return rs[i]
}

// Find locates a row by identifier with a linear scan.
func (rs Rows) Find(id RowID) *Row {
	for _, r := range rs {
		if r != nil && r.ID == id {
			return r
		}
	}
	return nil
}

// Index returns the position of the row with the given identifier, or -1.
func (rs Rows) Index(id RowID) int {
	for i, r := range rs {
		if r != nil && r.ID == id {
			return i
		}
	}
	return -1
}

// ── Coordinates ─────────────────────────────────────────────────────────────

// Cell is a coordinate into the visible table. Col indexes the field-key
// list, not the row's raw shape.
type Cell struct {
	Row int
	Col int
}

// NoCell is the "no selection" sentinel.
var NoCell = Cell{Row: -1, Col: -1}

// IsNone reports whether c is the sentinel.
func (c Cell) IsNone() bool { return c.Row == -1 }

// Range is an unordered anchor/focus pair.
type Range struct {
	Start Cell
	End   Cell
}

// Empty reports whether the range denotes "no selection".
func (r Range) Empty() bool { return r.Start.Row == -1 || r.End.Row == -1 }

// Bounds is a normalized selection rectangle, inclusive on every side.
type Bounds struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
}

// Bounds normalizes the range. ok is false for an empty range, which is never
// normalized.
func (r Range) Bounds() (b Bounds, ok bool) {
	if r.Empty() {
		return Bounds{}, false
	}
	return Bounds{
		MinRow: min(r.Start.Row, r.End.Row),
		MaxRow: max(r.Start.Row, r.End.Row),
		MinCol: min(r.Start.Col, r.End.Col),
		MaxCol: max(r.Start.Col, r.End.Col),
	}, true
}

// Contains reports whether the cell lies inside the rectangle.
func (b Bounds) Contains(row, col int) bool {
	return row >= b.MinRow && row <= b.MaxRow && col >= b.MinCol && col <= b.MaxCol
}

// Rows returns the number of rows covered.
func (b Bounds) Rows() int { return b.MaxRow - b.MinRow + 1 }

// Cols returns the number of columns covered.
func (b Bounds) Cols() int { return b.MaxCol - b.MinCol + 1 }

// ── Geometry capabilities ───────────────────────────────────────────────────

// Rect is pixel geometry. Overlays use Visible=false when the backing range
// is empty or not materialized.
type Rect struct {
	Top     int
	Left    int
	Width   int
	Height  int
	Visible bool
}

// Locator reports where a cell was rendered. ok is false when the cell is not
// currently materialized (outside the virtualization window).
type Locator interface {
	Locate(row, col int) (Rect, bool)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(row, col int) (Rect, bool)

// Locate calls f.
func (f LocatorFunc) Locate(row, col int) (Rect, bool) { return f(row, col) }

// Container is the scrollable element that hosts the grid.
type Container interface {
	ScrollTop() int
	SetScrollTop(px int)
	ScrollLeft() int
	SetScrollLeft(px int)
	ClientHeight() int
	ClientWidth() int
}
