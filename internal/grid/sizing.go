package grid

import "maps"

// Default geometry, in pixels.
const (
	DefaultColumnWidth = 150
	MinColumnWidth     = 50
	DefaultRowHeight   = 32
)

// SizingOptions overrides the default geometry. Zero fields keep the defaults.
type SizingOptions struct {
	ColumnWidth    int
	MinColumnWidth int
	RowHeight      int
}

// Sizing stores per-column width and per-row height overrides. It is a pure
// key→measurement mapping with no rendering dependency.
type Sizing struct {
	defaultWidth  int
	minWidth      int
	defaultHeight int

	widths  map[string]int
	heights map[int]int

	// Column-resize drag.
	resizing    string
	resizeX     int
	resizeWidth int
}

// NewSizing creates a sizing store.
func NewSizing(opts SizingOptions) *Sizing {
	s := &Sizing{
		defaultWidth:  DefaultColumnWidth,
		minWidth:      MinColumnWidth,
		defaultHeight: DefaultRowHeight,
		widths:        make(map[string]int),
		heights:       make(map[int]int),
	}
	if opts.ColumnWidth > 0 {
		s.defaultWidth = opts.ColumnWidth
	}
	if opts.MinColumnWidth > 0 {
		s.minWidth = opts.MinColumnWidth
	}
	if opts.RowHeight > 0 {
		s.defaultHeight = opts.RowHeight
	}
	return s
}

// DefaultHeight returns the height of a row without an override.
func (s *Sizing) DefaultHeight() int { return s.defaultHeight }

// Width returns the width of a column.
func (s *Sizing) Width(key string) int {
	if w, ok := s.widths[key]; ok {
		return w
	}
	return s.defaultWidth
}

// SetWidth sets a column width, clamped to the minimum.
func (s *Sizing) SetWidth(key string, px int) {
	s.widths[key] = max(s.minWidth, px)
}

// Height returns the height of a row.
func (s *Sizing) Height(row int) int {
	if h, ok := s.heights[row]; ok {
		return h
	}
	return s.defaultHeight
}

// HasHeight reports whether the row has an override.
func (s *Sizing) HasHeight(row int) bool {
	_, ok := s.heights[row]
	return ok
}

// SetHeight sets a row height override.
func (s *Sizing) SetHeight(row, px int) {
	s.heights[row] = px
}

// ResetHeight removes a row override.
func (s *Sizing) ResetHeight(row int) {
	delete(s.heights, row)
}

// ResetAll drops every override.
func (s *Sizing) ResetAll() {
	clear(s.widths)
	clear(s.heights)
}

// Widths returns a copy of the column overrides, for persistence.
func (s *Sizing) Widths() map[string]int {
	return maps.Clone(s.widths)
}

// LoadWidths replaces the column overrides. Values are clamped.
func (s *Sizing) LoadWidths(widths map[string]int) {
	clear(s.widths)
	for k, w := range widths {
		s.SetWidth(k, w)
	}
}

// SumWidths returns the total width of the given columns.
func (s *Sizing) SumWidths(keys []string) int {
	total := 0
	for _, k := range keys {
		total += s.Width(k)
	}
	return total
}

// ── Column resize drag ──────────────────────────────────────────────────────

// StartResize begins dragging the right border of a column at x.
func (s *Sizing) StartResize(key string, x int) {
	s.resizing = key
	s.resizeX = x
	s.resizeWidth = s.Width(key)
}

// UpdateResize applies the drag delta. No-op when no drag is active.
func (s *Sizing) UpdateResize(x int) {
	if s.resizing == "" {
		return
	}
	s.SetWidth(s.resizing, s.resizeWidth+x-s.resizeX)
}

// EndResize finishes the drag.
func (s *Sizing) EndResize() {
	s.resizing = ""
}

// Resizing returns the column being resized.
func (s *Sizing) Resizing() (string, bool) {
	return s.resizing, s.resizing != ""
}
