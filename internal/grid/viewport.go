package grid

// Viewport defaults, in pixels and rows.
const (
	DefaultOverscan = 15
	HeaderHeight    = 32
	ScrollBuffer    = 40
)

// Viewport computes the contiguous range of rows to materialize for a given
// scroll offset and container size. It never writes to any other component.
type Viewport struct {
	RowHeight int
	Overscan  int

	scrollTop       int
	containerHeight int
}

// NewViewport returns a viewport with the default row height and overscan.
func NewViewport() *Viewport {
	return &Viewport{RowHeight: DefaultRowHeight, Overscan: DefaultOverscan}
}

// ScrollTop returns the tracked scroll offset.
func (v *Viewport) ScrollTop() int { return v.scrollTop }

// ContainerHeight returns the tracked container height.
func (v *Viewport) ContainerHeight() int { return v.containerHeight }

// HandleScroll records a new scroll offset.
func (v *Viewport) HandleScroll(top int) { v.scrollTop = max(0, top) }

// UpdateContainerHeight records a container resize.
func (v *Viewport) UpdateContainerHeight(h int) { v.containerHeight = max(0, h) }

func (v *Viewport) rowHeight() int {
	if v.RowHeight <= 0 {
		return DefaultRowHeight
	}
	return v.RowHeight
}

// VisibleRange returns [start, end) before clamping to the data length.
func (v *Viewport) VisibleRange() (start, end int) {
	rh := v.rowHeight()
	start = max(0, v.scrollTop/rh-v.Overscan)
	visible := (v.containerHeight + rh - 1) / rh
	end = start + visible + 2*v.Overscan
	return start, end
}

// Window is the materialized slice of a dataset.
type Window[T any] struct {
	Items      []T
	StartIndex int
	EndIndex   int
}

// VisibleItems returns the rows to render. The end is clamped to len(data).
func VisibleItems[T any](v *Viewport, data []T) Window[T] {
	start, end := v.VisibleRange()
	end = min(end, len(data))
	if start > end {
		start = end
	}
	return Window[T]{Items: data[start:end], StartIndex: start, EndIndex: end}
}

// TotalHeight returns the scrollable height of n rows.
func (v *Viewport) TotalHeight(n int) int { return n * v.rowHeight() }

// OffsetY returns the offset of the first materialized row.
func (v *Viewport) OffsetY() int {
	start, _ := v.VisibleRange()
	return start * v.rowHeight()
}

// ActualIndex maps an index within the window to a row index.
func (v *Viewport) ActualIndex(visibleIndex int) int {
	start, _ := v.VisibleRange()
	return start + visibleIndex
}

// IsRowVisible reports whether a row is inside the (unclamped) window.
func (v *Viewport) IsRowVisible(index int) bool {
	start, end := v.VisibleRange()
	return index >= start && index < end
}

// ScrollToRow scrolls so that the row is at the top.
func (v *Viewport) ScrollToRow(index int, c Container) {
	if c == nil {
		return
	}
	top := max(0, index*v.rowHeight())
	c.SetScrollTop(top)
	v.scrollTop = c.ScrollTop()
}

// EnsureVisible scrolls the container minimally so that the cell is neither
// hidden behind the header band nor below the visible bottom. When columns
// and sizing are given, the horizontal axis is adjusted the same way. A nil
// container is a no-op; an out-of-range col skips the horizontal half only.
func (v *Viewport) EnsureVisible(row, col int, c Container, columns []string, sizing *Sizing) {
	if c == nil {
		return
	}
	rh := v.rowHeight()

	rowTop := row*rh + HeaderHeight
	rowBottom := rowTop + rh
	viewTop := c.ScrollTop() + HeaderHeight
	viewBottom := c.ScrollTop() + c.ClientHeight()

	switch {
	case rowTop < viewTop:
		c.SetScrollTop(max(0, rowTop-HeaderHeight))
	case rowBottom > viewBottom:
		c.SetScrollTop(max(0, rowBottom-c.ClientHeight()+ScrollBuffer))
	}
	v.scrollTop = c.ScrollTop()

	if sizing == nil || col < 0 || col >= len(columns) {
		return
	}
	left := sizing.SumWidths(columns[:col])
	right := left + sizing.Width(columns[col])
	viewLeft := c.ScrollLeft()
	viewRight := viewLeft + c.ClientWidth()

	switch {
	case left < viewLeft:
		c.SetScrollLeft(left)
	case right > viewRight:
		c.SetScrollLeft(max(0, right-c.ClientWidth()))
	}
}
