package grid

// Selection owns the anchor/focus pair of the single rectangular selection
// and the two overlays derived from it: the live selection overlay and the
// frozen "copied region" overlay.
//
// Overlay geometry is located, never estimated: when either corner of the
// rectangle is outside the virtualization window the overlay is invisible.
type Selection struct {
	locator Locator

	start     Cell
	end       Cell
	selecting bool

	overlay     Rect
	copyOverlay Rect

	onChange func()
}

// NewSelection creates an empty selection. A nil locator never materializes
// any cell.
func NewSelection(locator Locator) *Selection {
	return &Selection{locator: locator, start: NoCell, end: NoCell}
}

// OnChange registers the notify-on-write hook.
func (s *Selection) OnChange(fn func()) { s.onChange = fn }

func (s *Selection) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}

// Range returns the current anchor/focus pair.
func (s *Selection) Range() Range { return Range{Start: s.start, End: s.end} }

// Overlay returns the live selection overlay.
func (s *Selection) Overlay() Rect { return s.overlay }

// CopyOverlay returns the copied-region overlay.
func (s *Selection) CopyOverlay() Rect { return s.copyOverlay }

// Selecting reports whether a drag is in progress.
func (s *Selection) Selecting() bool { return s.selecting }

// HasSelection reports whether a range exists.
func (s *Selection) HasSelection() bool { return !s.Range().Empty() }

// Anchor returns the fixed corner.
func (s *Selection) Anchor() (Cell, bool) {
	if s.start.IsNone() {
		return NoCell, false
	}
	return s.start, true
}

// Focus returns the movable corner, falling back to the anchor.
func (s *Selection) Focus() (Cell, bool) {
	if !s.end.IsNone() {
		return s.end, true
	}
	return s.Anchor()
}

// Bounds returns the normalized rectangle.
func (s *Selection) Bounds() (Bounds, bool) { return s.Range().Bounds() }

// Contains reports whether a cell lies inside the selection.
func (s *Selection) Contains(row, col int) bool {
	b, ok := s.Bounds()
	return ok && b.Contains(row, col)
}

func (s *Selection) rect(r Range) Rect {
	b, ok := r.Bounds()
	if !ok || s.locator == nil {
		return Rect{}
	}
	first, ok := s.locator.Locate(b.MinRow, b.MinCol)
	if !ok {
		return Rect{}
	}
	last, ok := s.locator.Locate(b.MaxRow, b.MaxCol)
	if !ok {
		return Rect{}
	}
	return Rect{
		Top:     first.Top,
		Left:    first.Left,
		Width:   last.Left + last.Width - first.Left,
		Height:  last.Top + last.Height - first.Top,
		Visible: true,
	}
}

// UpdateOverlay recomputes the live overlay from rendered geometry.
func (s *Selection) UpdateOverlay() {
	s.overlay = s.rect(s.Range())
	s.notify()
}

// StartSelection begins a selection at a cell. With expand and an existing
// anchor only the focus moves. Clicking the single selected cell again
// collapses the selection.
func (s *Selection) StartSelection(row, col int, expand bool) {
	s.selecting = true
	cell := Cell{Row: row, Col: col}

	if expand && !s.start.IsNone() {
		s.end = cell
		s.UpdateOverlay()
		return
	}

	if s.start == cell && s.end == cell {
		s.Reset()
		s.selecting = false
		return
	}

	s.start = cell
	s.end = cell
	s.UpdateOverlay()
}

// ExtendSelection moves the focus while a drag is in progress.
func (s *Selection) ExtendSelection(row, col int) {
	if !s.selecting {
		return
	}
	s.end = Cell{Row: row, Col: col}
	s.UpdateOverlay()
}

// EndSelection finishes a drag. The range is kept.
func (s *Selection) EndSelection() { s.selecting = false }

// SetFocus moves the focus corner, keeping the anchor.
func (s *Selection) SetFocus(c Cell) {
	if s.start.IsNone() {
		s.MoveTo(c.Row, c.Col)
		return
	}
	s.end = c
	s.UpdateOverlay()
}

// MoveTo collapses the selection onto one cell.
func (s *Selection) MoveTo(row, col int) {
	c := Cell{Row: row, Col: col}
	s.start = c
	s.end = c
	s.UpdateOverlay()
}

// SelectCell collapses onto one cell unless it already lies inside the
// current rectangle.
func (s *Selection) SelectCell(row, col int) {
	if s.Contains(row, col) {
		return
	}
	s.MoveTo(row, col)
}

// SnapshotAsCopied freezes the current geometry into the copy overlay. A
// no-op when the selection is not visible on screen.
func (s *Selection) SnapshotAsCopied() {
	r := s.rect(s.Range())
	if r.Visible {
		s.copyOverlay = r
		s.notify()
	}
}

// ClearCopyOverlay hides the copied-region overlay.
func (s *Selection) ClearCopyOverlay() {
	s.copyOverlay = Rect{}
	s.notify()
}

// Reset clears the selection.
func (s *Selection) Reset() {
	s.start = NoCell
	s.end = NoCell
	s.overlay.Visible = false
	s.notify()
}

// ResetAll clears the selection and the copy overlay.
func (s *Selection) ResetAll() {
	s.selecting = false
	s.Reset()
	s.copyOverlay.Visible = false
}

// IsCellInCopyOverlay reports whether a rendered cell lies fully inside the
// copy overlay.
func (s *Selection) IsCellInCopyOverlay(row, col int) bool {
	if !s.copyOverlay.Visible || s.locator == nil {
		return false
	}
	cell, ok := s.locator.Locate(row, col)
	if !ok {
		return false
	}
	c := s.copyOverlay
	return cell.Left >= c.Left &&
		cell.Left+cell.Width <= c.Left+c.Width &&
		cell.Top >= c.Top &&
		cell.Top+cell.Height <= c.Top+c.Height
}

// SelectionMatchesCopy reports exact geometric equality of both overlays.
func (s *Selection) SelectionMatchesCopy() bool {
	if !s.overlay.Visible || !s.copyOverlay.Visible {
		return false
	}
	return s.overlay == s.copyOverlay
}
