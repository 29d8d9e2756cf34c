package grid

import "testing"

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		name       string
		top        int
		height     int
		start, end int
	}{
		{"top of grid", 0, 320, 0, 40},
		{"scrolled", 100 * 32, 320, 85, 125},
		{"partial row", 0, 330, 0, 41},
		{"no container", 0, 0, 0, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport()
			v.HandleScroll(tt.top)
			v.UpdateContainerHeight(tt.height)
			start, end := v.VisibleRange()
			if start != tt.start || end != tt.end {
				t.Errorf("VisibleRange = [%d, %d), want [%d, %d)", start, end, tt.start, tt.end)
			}
		})
	}
}

func TestVisibleItemsBounds(t *testing.T) {
	data := make([]int, 100)
	for i := range data {
		data[i] = i
	}
	v := NewViewport()
	v.UpdateContainerHeight(320)

	for _, top := range []int{0, 32 * 10, 32 * 60, 32 * 95, 32 * 500} {
		v.HandleScroll(top)
		w := VisibleItems(v, data)
		if w.StartIndex < 0 || w.StartIndex > w.EndIndex || w.EndIndex > len(data) {
			t.Fatalf("top=%d: bad window [%d, %d)", top, w.StartIndex, w.EndIndex)
		}
		if len(w.Items) != w.EndIndex-w.StartIndex {
			t.Fatalf("top=%d: %d items for window [%d, %d)", top, len(w.Items), w.StartIndex, w.EndIndex)
		}
		if len(w.Items) > 0 && w.Items[0] != w.StartIndex {
			t.Errorf("top=%d: first item %d, want %d", top, w.Items[0], w.StartIndex)
		}
	}
}

func TestVisibleItemsPastEnd(t *testing.T) {
	v := NewViewport()
	v.UpdateContainerHeight(320)
	v.HandleScroll(32 * 500)
	w := VisibleItems(v, make([]string, 10))
	if len(w.Items) != 0 || w.StartIndex != 10 || w.EndIndex != 10 {
		t.Errorf("window = [%d, %d) with %d items", w.StartIndex, w.EndIndex, len(w.Items))
	}
}

func TestViewportHelpers(t *testing.T) {
	v := NewViewport()
	v.UpdateContainerHeight(320)
	v.HandleScroll(32 * 40)

	if got := v.TotalHeight(1000); got != 32000 {
		t.Errorf("TotalHeight = %d", got)
	}
	if got := v.OffsetY(); got != 25*32 {
		t.Errorf("OffsetY = %d, want %d", got, 25*32)
	}
	if got := v.ActualIndex(3); got != 28 {
		t.Errorf("ActualIndex(3) = %d, want 28", got)
	}
	if !v.IsRowVisible(25) || v.IsRowVisible(24) || v.IsRowVisible(65) {
		t.Error("IsRowVisible disagrees with VisibleRange")
	}

	v.HandleScroll(-10)
	if v.ScrollTop() != 0 {
		t.Errorf("negative scroll not clamped: %d", v.ScrollTop())
	}
}

func TestScrollToRow(t *testing.T) {
	v := NewViewport()
	c := &fakeContainer{height: 320}
	v.ScrollToRow(12, c)
	if c.top != 12*32 || v.ScrollTop() != 12*32 {
		t.Errorf("container top = %d, viewport top = %d", c.top, v.ScrollTop())
	}
	v.ScrollToRow(3, nil)
}

func TestEnsureVisibleVertical(t *testing.T) {
	v := NewViewport()
	c := &fakeContainer{height: 320, width: 300}

	v.EnsureVisible(5, -1, c, nil, nil)
	if c.top != 0 {
		t.Fatalf("visible row scrolled container to %d", c.top)
	}

	v.EnsureVisible(20, -1, c, nil, nil)
	// bottom edge 20*32+32+32 minus client height plus buffer
	if c.top != 424 {
		t.Fatalf("scroll down: top = %d, want 424", c.top)
	}
	if v.ScrollTop() != 424 {
		t.Errorf("viewport not synced: %d", v.ScrollTop())
	}

	v.EnsureVisible(0, -1, c, nil, nil)
	if c.top != 0 {
		t.Errorf("scroll up: top = %d, want 0", c.top)
	}
}

func TestEnsureVisibleHorizontal(t *testing.T) {
	v := NewViewport()
	s := NewSizing(SizingOptions{})
	cols := []string{"a", "b", "c", "d"}
	c := &fakeContainer{height: 320, width: 300}

	v.EnsureVisible(0, 2, c, cols, s)
	if c.left != 150 {
		t.Fatalf("scroll right: left = %d, want 150", c.left)
	}
	v.EnsureVisible(0, 1, c, cols, s)
	if c.left != 150 {
		t.Fatalf("visible column moved container to %d", c.left)
	}
	v.EnsureVisible(0, 0, c, cols, s)
	if c.left != 0 {
		t.Errorf("scroll left: left = %d, want 0", c.left)
	}
	v.EnsureVisible(0, 9, c, cols, s)
	if c.left != 0 {
		t.Errorf("out-of-range column scrolled to %d", c.left)
	}
}

func TestEnsureVisibleNilContainer(t *testing.T) {
	v := NewViewport()
	v.EnsureVisible(10, 0, nil, []string{"a"}, NewSizing(SizingOptions{}))
	if v.ScrollTop() != 0 {
		t.Error("nil container changed scroll state")
	}
}
