package grid

import (
	"context"
	"strings"
	"testing"
)

func selectRange(s *Selection, from, to Cell) {
	s.StartSelection(from.Row, from.Col, false)
	s.ExtendSelection(to.Row, to.Col)
	s.EndSelection()
}

func TestCopyTwoByTwo(t *testing.T) {
	keys := []string{"a", "b"}
	rows := numberedRows(2, keys)
	p := &fakePlatform{}
	c := NewClipboard(p, nil)
	syncClipboard(c)
	s := NewSelection(allVisible())
	selectRange(s, Cell{0, 0}, Cell{1, 1})

	text, ok := c.Copy(s, rows, keys)
	if !ok {
		t.Fatal("Copy returned false")
	}
	if text != "1\t2\n3\t4" {
		t.Errorf("text = %q", text)
	}
	if len(p.written) != 1 || p.written[0] != text {
		t.Errorf("platform got %q", p.written)
	}
	want := []CopiedItem{{0, 0, "1"}, {0, 1, "2"}, {1, 0, "3"}, {1, 1, "4"}}
	got := c.Internal()
	if len(got) != len(want) {
		t.Fatalf("internal = %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if !s.CopyOverlay().Visible {
		t.Error("copy did not freeze the overlay")
	}
}

func TestCopyShape(t *testing.T) {
	keys := []string{"a", "b", "c", "d", "e"}
	rows := numberedRows(8, keys)
	c := NewClipboard(nil, nil)
	s := NewSelection(allVisible())

	for _, tc := range []struct{ from, to Cell }{
		{Cell{0, 0}, Cell{0, 0}},
		{Cell{1, 1}, Cell{4, 3}},
		{Cell{7, 4}, Cell{2, 0}},
	} {
		selectRange(s, tc.from, tc.to)
		b, _ := s.Bounds()
		text, _ := c.Copy(s, rows, keys)

		items := c.Internal()
		if len(items) != b.Rows()*b.Cols() {
			t.Errorf("%v: %d items, want %d", tc, len(items), b.Rows()*b.Cols())
		}
		seen := make(map[[2]int]bool)
		for _, it := range items {
			seen[[2]int{it.RelRow, it.RelCol}] = true
		}
		if len(seen) != len(items) {
			t.Errorf("%v: duplicate relative coordinates", tc)
		}
		lines := strings.Split(text, "\n")
		if len(lines) != b.Rows() {
			t.Errorf("%v: %d lines, want %d", tc, len(lines), b.Rows())
		}
		for _, l := range lines {
			if n := strings.Count(l, "\t"); n != b.Cols()-1 {
				t.Errorf("%v: line %q has %d tabs", tc, l, n)
			}
		}
	}
}

func TestCopyNoSelection(t *testing.T) {
	c := NewClipboard(nil, nil)
	if _, ok := c.Copy(NewSelection(allVisible()), nil, nil); ok {
		t.Error("Copy without selection returned ok")
	}
	if c.HasData() {
		t.Error("snapshot stored without selection")
	}
}

func TestCopyPlatformFailureKeepsSnapshot(t *testing.T) {
	keys := []string{"a"}
	p := &fakePlatform{writeErr: errDenied}
	c := NewClipboard(p, nil)
	syncClipboard(c)
	s := NewSelection(allVisible())
	s.MoveTo(0, 0)

	if _, ok := c.Copy(s, numberedRows(1, keys), keys); !ok {
		t.Fatal("Copy failed with a denied platform")
	}
	if !c.HasData() {
		t.Error("internal snapshot lost on platform failure")
	}
}

func TestPasteWholeTextIntoAnchor(t *testing.T) {
	keys := []string{"a", "b"}
	rows := numberedRows(3, keys)
	h := NewHistory(nil)
	p := &fakePlatform{text: "x\ty\nz\tw"}
	c := NewClipboard(p, nil)

	if !c.Paste(context.Background(), Cell{1, 1}, rows, keys, h) {
		t.Fatal("Paste returned false")
	}
	if got := rows[1].Get("b"); got != "x\ty\nz\tw" {
		t.Errorf("value = %q", got)
	}
	if rows[1].Get("a") != "3" || rows[2].Get("b") != "6" {
		t.Error("paste spilled into neighbouring cells")
	}
	if h.UndoLen() != 1 {
		t.Fatalf("history len = %d", h.UndoLen())
	}
	h.Undo(rows)
	if rows[1].Get("b") != "4" {
		t.Errorf("undo restored %q", rows[1].Get("b"))
	}
}

func TestPasteFailures(t *testing.T) {
	keys := []string{"a"}
	rows := numberedRows(1, keys)
	h := NewHistory(nil)
	ctx := context.Background()

	denied := NewClipboard(&fakePlatform{readErr: errDenied}, nil)
	if denied.Paste(ctx, Cell{0, 0}, rows, keys, h) {
		t.Error("paste succeeded with denied read")
	}
	ok := NewClipboard(&fakePlatform{text: "v"}, nil)
	if ok.Paste(ctx, NoCell, rows, keys, h) {
		t.Error("paste succeeded without a target")
	}
	if ok.Paste(ctx, Cell{5, 0}, rows, keys, h) {
		t.Error("paste succeeded past the last row")
	}
	if NewClipboard(nil, nil).Paste(ctx, Cell{0, 0}, rows, keys, h) {
		t.Error("paste succeeded without a platform")
	}
	if rows[0].Get("a") != "1" || h.CanUndo() {
		t.Error("failed paste mutated state")
	}
}
