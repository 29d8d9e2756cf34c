package grid

import "log/slog"

// HistoryAction is an atomic, already-applied field mutation. It is keyed by
// row identifier so it stays valid across re-sorts and re-filters.
type HistoryAction struct {
	ID       RowID
	Key      string
	OldValue string
	NewValue string
}

// History is a linear undo/redo ledger. Stacks are unbounded and live only
// for the session.
type History struct {
	undo []HistoryAction
	redo []HistoryAction
	log  *slog.Logger
}

// NewHistory creates an empty ledger. A nil logger discards.
func NewHistory(logger *slog.Logger) *History {
	return &History{log: orDiscard(logger)}
}

// Record pushes an action and clears the redo branch. Non-edits are ignored.
func (h *History) Record(id RowID, key, oldValue, newValue string) {
	if oldValue == newValue {
		return
	}
	h.undo = append(h.undo, HistoryAction{ID: id, Key: key, OldValue: oldValue, NewValue: newValue})
	h.redo = nil
}

// Undo reverts the latest action. An action whose row is no longer present is
// dropped, not requeued.
func (h *History) Undo(rows Rows) (HistoryAction, bool) {
	a, ok := pop(&h.undo)
	if !ok {
		return HistoryAction{}, false
	}
	row := rows.Find(a.ID)
	if row == nil {
		h.log.Debug("undo dropped, row not present", "id", a.ID, "key", a.Key)
		return HistoryAction{}, false
	}
	row.Set(a.Key, a.OldValue)
	h.redo = append(h.redo, a)
	return a, true
}

// Redo re-applies the latest undone action.
func (h *History) Redo(rows Rows) (HistoryAction, bool) {
	a, ok := pop(&h.redo)
	if !ok {
		return HistoryAction{}, false
	}
	row := rows.Find(a.ID)
	if row == nil {
		h.log.Debug("redo dropped, row not present", "id", a.ID, "key", a.Key)
		return HistoryAction{}, false
	}
	row.Set(a.Key, a.NewValue)
	h.undo = append(h.undo, a)
	return a, true
}

// CanUndo reports whether an undo is available.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether a redo is available.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoLen returns the undo depth.
func (h *History) UndoLen() int { return len(h.undo) }

// RedoLen returns the redo depth.
func (h *History) RedoLen() int { return len(h.redo) }

func pop(stack *[]HistoryAction) (HistoryAction, bool) {
	s := *stack
	if len(s) == 0 {
		return HistoryAction{}, false
	}
	a := s[len(s)-1]
	*stack = s[:len(s)-1]
	return a, true
}
