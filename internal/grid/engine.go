package grid

import (
	"context"
	"log/slog"
)

// PersistFunc is invoked after a field change is committed in memory. The
// engine does not wait for it; failures are the caller's concern.
type PersistFunc func(id RowID, key, value string)

// Options configures an Engine.
type Options struct {
	Sizing   SizingOptions
	Overscan int
	Platform Platform
	Locator  Locator
	Persist  PersistFunc
	Logger   *slog.Logger

	// ScrollIntoView is called after keyboard navigation moves the selection.
	ScrollIntoView func(Cell)
	// Escape is called on Escape, after the engine has cleared its own state.
	Escape func()
	// RequestPaste, when set, replaces the blocking platform read of the
	// paste shortcut. The host reads the clipboard asynchronously and calls
	// ApplyPaste with the target.
	RequestPaste func(target Cell)
}

// Engine wires the components around a caller-owned row array and a field-key
// list.
type Engine struct {
	Sizing     *Sizing
	Viewport   *Viewport
	Selection  *Selection
	Edit       *EditSession
	Clipboard  *Clipboard
	History    *History
	Dispatcher *Dispatcher

	rows    Rows
	keys    []string
	persist PersistFunc
	log     *slog.Logger

	scrollIntoView func(Cell)
	escape         func()
	requestPaste   func(Cell)
}

// NewEngine builds an engine over rows and keys.
func NewEngine(rows Rows, keys []string, opts Options) *Engine {
	logger := orDiscard(opts.Logger)
	e := &Engine{
		Sizing:         NewSizing(opts.Sizing),
		Viewport:       NewViewport(),
		Selection:      NewSelection(opts.Locator),
		Edit:           NewEditSession(),
		Clipboard:      NewClipboard(opts.Platform, logger),
		History:        NewHistory(logger),
		rows:           rows,
		keys:           keys,
		persist:        opts.Persist,
		log:            logger,
		scrollIntoView: opts.ScrollIntoView,
		escape:         opts.Escape,
		requestPaste:   opts.RequestPaste,
	}
	e.Viewport.RowHeight = e.Sizing.DefaultHeight()
	if opts.Overscan > 0 {
		e.Viewport.Overscan = opts.Overscan
	}
	e.Dispatcher = NewDispatcher(e.Selection, e.Sizing, Actions{
		Copy:   func() { e.Copy() },
		Paste:  e.pasteShortcut,
		Undo:   func() { e.Undo() },
		Redo:   func() { e.Redo() },
		Escape: e.Escape,
		ScrollIntoView: func(c Cell) {
			if e.scrollIntoView != nil {
				e.scrollIntoView(c)
			}
		},
		GridSize: e.Size,
	})
	return e
}

// Rows returns the current row array.
func (e *Engine) Rows() Rows { return e.rows }

// Keys returns the field-key list.
func (e *Engine) Keys() []string { return e.keys }

// Size returns the grid dimensions.
func (e *Engine) Size() (rows, cols int) { return len(e.rows), len(e.keys) }

// Key returns the field key of a column.
func (e *Engine) Key(col int) (string, bool) {
	if col < 0 || col >= len(e.keys) {
		return "", false
	}
	return e.keys[col], true
}

// Value returns the value of a cell.
func (e *Engine) Value(row, col int) string {
	k, ok := e.Key(col)
	if !ok {
		return ""
	}
	return e.rows.At(row).Get(k)
}

// SetRows swaps in a replacement row array (after a search, filter, sort or
// refresh). State that referenced the old array is revalidated: an edit
// follows its row by identifier and is cancelled only when the row is gone,
// and a selection outside the new grid is cleared. History is keyed by
// identifier and kept.
func (e *Engine) SetRows(rows Rows) {
	e.rows = rows
	if st, ok := e.Edit.State(); ok {
		switch i := rows.Index(st.ID); {
		case i < 0:
			e.log.Debug("edit cancelled, row removed", "id", st.ID)
			e.Edit.Cancel(e.Sizing)
		case i != st.Row:
			e.Edit.MoveRow(i, e.Sizing)
		}
	}
	if b, ok := e.Selection.Bounds(); ok && (b.MaxRow >= len(rows) || b.MaxCol >= len(e.keys)) {
		e.Selection.ResetAll()
	} else {
		e.Selection.UpdateOverlay()
	}
}

// ── Editing ─────────────────────────────────────────────────────────────────

// BeginEdit starts editing a cell, committing any edit already in progress.
func (e *Engine) BeginEdit(row, col int) bool {
	r := e.rows.At(row)
	key, ok := e.Key(col)
	if r == nil || !ok {
		return false
	}
	if e.Edit.Active() {
		e.CommitEdit()
	}
	return e.Edit.Start(r.ID, row, col, key, r.Get(key), e.Sizing)
}

// CommitEdit saves the active edit, records it and hands it to the
// persistence hook.
func (e *Engine) CommitEdit() bool {
	return e.Edit.Save(e.rows, func(id RowID, key, oldValue, newValue string) {
		e.History.Record(id, key, oldValue, newValue)
		e.doPersist(id, key, newValue)
	}, e.Sizing)
}

// CancelEdit abandons the active edit.
func (e *Engine) CancelEdit() { e.Edit.Cancel(e.Sizing) }

func (e *Engine) doPersist(id RowID, key, value string) {
	if e.persist != nil {
		e.persist(id, key, value)
	}
}

// ── History ─────────────────────────────────────────────────────────────────

// Undo reverts the latest change.
func (e *Engine) Undo() bool {
	a, ok := e.History.Undo(e.rows)
	if ok {
		e.doPersist(a.ID, a.Key, a.OldValue)
	}
	return ok
}

// Redo re-applies the latest undone change.
func (e *Engine) Redo() bool {
	a, ok := e.History.Redo(e.rows)
	if ok {
		e.doPersist(a.ID, a.Key, a.NewValue)
	}
	return ok
}

// ── Clipboard ───────────────────────────────────────────────────────────────

// Copy copies the selection.
func (e *Engine) Copy() (string, bool) {
	return e.Clipboard.Copy(e.Selection, e.rows, e.keys)
}

// PasteTarget returns the cell a paste writes into: the selection anchor.
func (e *Engine) PasteTarget() (Cell, bool) {
	return e.Selection.Anchor()
}

// Paste reads the platform clipboard into the paste target. It blocks on the
// platform read; event-loop hosts use ReadPlatform and ApplyPaste instead.
func (e *Engine) Paste(ctx context.Context) bool {
	target, ok := e.PasteTarget()
	if !ok {
		return false
	}
	text, ok := e.Clipboard.ReadPlatform(ctx)
	if !ok {
		return false
	}
	return e.ApplyPaste(target, text)
}

func (e *Engine) pasteShortcut() {
	if e.requestPaste == nil {
		e.Paste(context.Background())
		return
	}
	if target, ok := e.PasteTarget(); ok {
		e.requestPaste(target)
	}
}

// ApplyPaste writes already-read clipboard text into a cell and persists it.
func (e *Engine) ApplyPaste(target Cell, text string) bool {
	if !e.Clipboard.ApplyPaste(target, e.rows, e.keys, e.History, text) {
		return false
	}
	r := e.rows.At(target.Row)
	e.doPersist(r.ID, e.keys[target.Col], text)
	return true
}

// Escape cancels the edit, closes menus and clears the selection and copy
// overlay.
func (e *Engine) Escape() {
	e.CancelEdit()
	e.Dispatcher.ContextMenu.Close()
	e.Dispatcher.HeaderMenu.Close()
	e.Selection.ResetAll()
	if e.escape != nil {
		e.escape()
	}
}
