package grid

import "testing"

func TestHistoryRecordUndoRedo(t *testing.T) {
	rows := Rows{{ID: 1, Fields: map[string]string{"a": "z"}}}
	h := NewHistory(nil)
	h.Record(1, "a", "x", "z")

	a, ok := h.Undo(rows)
	if !ok || rows[0].Get("a") != "x" {
		t.Fatalf("undo: ok=%v value=%q", ok, rows[0].Get("a"))
	}
	if a != (HistoryAction{ID: 1, Key: "a", OldValue: "x", NewValue: "z"}) {
		t.Errorf("undo action = %+v", a)
	}
	if h.UndoLen() != 0 || h.RedoLen() != 1 {
		t.Errorf("stacks = %d/%d", h.UndoLen(), h.RedoLen())
	}

	if _, ok := h.Redo(rows); !ok || rows[0].Get("a") != "z" {
		t.Fatalf("redo: ok=%v value=%q", ok, rows[0].Get("a"))
	}
	if h.UndoLen() != 1 || h.RedoLen() != 0 {
		t.Errorf("stacks = %d/%d", h.UndoLen(), h.RedoLen())
	}
}

func TestHistoryRoundTripRestoresEveryValue(t *testing.T) {
	rows := numberedRows(3, []string{"a", "b"})
	before := rows[2].Get("b")
	h := NewHistory(nil)

	values := []string{"p", "q", "r"}
	prev := before
	for _, v := range values {
		rows[2].Set("b", v)
		h.Record(3, "b", prev, v)
		prev = v
	}

	for range values {
		h.Undo(rows)
	}
	if got := rows[2].Get("b"); got != before {
		t.Fatalf("after undos value = %q, want %q", got, before)
	}
	for range values {
		h.Redo(rows)
	}
	if got := rows[2].Get("b"); got != "r" {
		t.Errorf("after redos value = %q, want r", got)
	}
}

func TestHistoryNoOpRecord(t *testing.T) {
	h := NewHistory(nil)
	h.Record(1, "a", "x", "y")
	h.Undo(Rows{{ID: 1}})
	h.Record(1, "a", "same", "same")
	if h.UndoLen() != 0 || h.RedoLen() != 1 {
		t.Errorf("no-op record changed stacks: %d/%d", h.UndoLen(), h.RedoLen())
	}
}

func TestHistoryRecordClearsRedo(t *testing.T) {
	rows := Rows{{ID: 1}}
	h := NewHistory(nil)
	h.Record(1, "a", "", "1")
	h.Undo(rows)
	if !h.CanRedo() {
		t.Fatal("nothing to redo")
	}
	h.Record(1, "a", "", "2")
	if h.CanRedo() {
		t.Error("new record kept the redo branch")
	}
}

func TestHistoryDropsMissingRow(t *testing.T) {
	h := NewHistory(nil)
	h.Record(42, "a", "x", "y")
	if _, ok := h.Undo(Rows{{ID: 1}}); ok {
		t.Fatal("undo applied to a missing row")
	}
	if h.CanUndo() || h.CanRedo() {
		t.Error("dropped action was requeued")
	}
}

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory(nil)
	if _, ok := h.Undo(nil); ok {
		t.Error("undo on empty history")
	}
	if _, ok := h.Redo(nil); ok {
		t.Error("redo on empty history")
	}
}
