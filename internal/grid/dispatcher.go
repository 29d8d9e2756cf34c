package grid

import "strings"

// Key names understood by the dispatcher. Letters are their lowercase rune.
const (
	KeyEscape = "esc"
	KeyUp     = "up"
	KeyDown   = "down"
	KeyLeft   = "left"
	KeyRight  = "right"
	KeyTab    = "tab"
)

// KeyEvent is a raw key press.
type KeyEvent struct {
	Key   string
	Ctrl  bool
	Meta  bool
	Shift bool

	// InInput is true while focus is inside a text input; the dispatcher
	// then leaves the key alone.
	InInput bool
}

// Result reports what the dispatcher did with an event. PreventDefault is
// set when the host must not apply its native behaviour (scrolling, focus
// traversal, its own copy/paste).
type Result struct {
	Handled        bool
	PreventDefault bool
}

var consumed = Result{Handled: true, PreventDefault: true}

// Actions are the host callbacks the dispatcher triggers. Nil callbacks are
// skipped.
type Actions struct {
	Copy           func()
	Paste          func()
	Undo           func()
	Redo           func()
	Escape         func()
	ScrollIntoView func(Cell)
	GridSize       func() (rows, cols int)
}

// Dispatcher translates raw pointer and key events into calls against the
// selection, the sizing store and the menus.
type Dispatcher struct {
	sel     *Selection
	sizing  *Sizing
	actions Actions

	ContextMenu ContextMenu
	HeaderMenu  HeaderMenu
}

// NewDispatcher wires a dispatcher.
func NewDispatcher(sel *Selection, sizing *Sizing, actions Actions) *Dispatcher {
	return &Dispatcher{sel: sel, sizing: sizing, actions: actions}
}

// Mount subscribes the dispatcher to a hub and returns the handle that
// unregisters every listener it added.
func (d *Dispatcher) Mount(h *Hub) (unmount func()) {
	offs := []func(){
		h.Subscribe(EventKey, func(ev Event) Result { return d.HandleKey(ev.Key) }),
		h.Subscribe(EventPointerDown, func(ev Event) Result {
			if !ev.OnCell {
				return Result{}
			}
			return d.PointerDown(ev.Cell, ev.Shift)
		}),
		h.Subscribe(EventPointerMove, func(ev Event) Result { return d.PointerMove(ev.X, ev.Cell, ev.OnCell) }),
		h.Subscribe(EventPointerUp, func(Event) Result { return d.PointerUp() }),
		h.Subscribe(EventClick, func(Event) Result { return d.OutsideClick() }),
	}
	return func() {
		for _, off := range offs {
			off()
		}
	}
}

// ── Keyboard ────────────────────────────────────────────────────────────────

// HandleKey applies a key press.
func (d *Dispatcher) HandleKey(ev KeyEvent) Result {
	if ev.InInput {
		return Result{}
	}

	if ev.Key == KeyEscape {
		call(d.actions.Escape)
		return Result{Handled: true}
	}

	if ev.Ctrl || ev.Meta {
		switch strings.ToLower(ev.Key) {
		case "z":
			if ev.Shift {
				call(d.actions.Redo)
			} else {
				call(d.actions.Undo)
			}
			return consumed
		case "y":
			call(d.actions.Redo)
			return consumed
		case "c":
			call(d.actions.Copy)
			return consumed
		case "v":
			call(d.actions.Paste)
			return consumed
		}
	}

	switch ev.Key {
	case KeyUp, KeyDown, KeyLeft, KeyRight:
		d.navigate(ev)
		return consumed
	case KeyTab:
		dir := KeyRight
		if ev.Shift {
			dir = KeyLeft
		}
		d.navigate(KeyEvent{Key: dir})
		return consumed
	}
	return Result{}
}

func (d *Dispatcher) gridSize() (int, int) {
	if d.actions.GridSize == nil {
		return 0, 0
	}
	return d.actions.GridSize()
}

func (d *Dispatcher) navigate(ev KeyEvent) {
	rows, cols := d.gridSize()
	if rows <= 0 || cols <= 0 {
		return
	}
	jump := ev.Ctrl || ev.Meta

	// Shifted moves and jumps start from the focus corner, plain steps from
	// the anchor.
	var from Cell
	var ok bool
	if ev.Shift || jump {
		from, ok = d.sel.Focus()
	} else {
		from, ok = d.sel.Anchor()
	}

	var next Cell
	switch {
	case !ok:
		next = Cell{}
	case jump:
		next = edge(from, ev.Key, rows, cols)
	default:
		next = step(from, ev.Key, rows, cols)
	}

	if ev.Shift && ok {
		d.sel.SetFocus(next)
	} else {
		d.sel.MoveTo(next.Row, next.Col)
	}
	if d.actions.ScrollIntoView != nil {
		d.actions.ScrollIntoView(next)
	}
}

// step moves one cell in a direction, clamped to the grid.
func step(c Cell, dir string, rows, cols int) Cell {
	switch dir {
	case KeyUp:
		c.Row--
	case KeyDown:
		c.Row++
	case KeyLeft:
		c.Col--
	case KeyRight:
		c.Col++
	}
	return clampCell(c, rows, cols)
}

// edge jumps to the grid boundary along one axis.
func edge(c Cell, dir string, rows, cols int) Cell {
	switch dir {
	case KeyUp:
		c.Row = 0
	case KeyDown:
		c.Row = rows - 1
	case KeyLeft:
		c.Col = 0
	case KeyRight:
		c.Col = cols - 1
	}
	return clampCell(c, rows, cols)
}

func clampCell(c Cell, rows, cols int) Cell {
	c.Row = min(max(c.Row, 0), rows-1)
	c.Col = min(max(c.Col, 0), cols-1)
	return c
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

// ── Pointer ─────────────────────────────────────────────────────────────────

// PointerDown starts a selection, or extends it when shift is held.
func (d *Dispatcher) PointerDown(cell Cell, shift bool) Result {
	d.sel.StartSelection(cell.Row, cell.Col, shift)
	return Result{Handled: true}
}

// StartColumnResize begins a column-resize drag from the header border.
func (d *Dispatcher) StartColumnResize(key string, x int) {
	d.sizing.StartResize(key, x)
}

// PointerMove updates the active drag: a column resize takes precedence over
// a selection drag.
func (d *Dispatcher) PointerMove(x int, cell Cell, onCell bool) Result {
	if _, ok := d.sizing.Resizing(); ok {
		d.sizing.UpdateResize(x)
		if d.sel.HasSelection() {
			d.sel.UpdateOverlay()
		}
		return consumed
	}
	if d.sel.Selecting() && onCell {
		d.sel.ExtendSelection(cell.Row, cell.Col)
		return Result{Handled: true}
	}
	return Result{}
}

// PointerUp ends both kinds of drag and resynchronizes the overlay, since a
// column resize can shift cells under an active selection.
func (d *Dispatcher) PointerUp() Result {
	_, resizing := d.sizing.Resizing()
	if resizing {
		d.sizing.EndResize()
	}
	d.sel.EndSelection()
	if d.sel.HasSelection() {
		d.sel.UpdateOverlay()
	}
	return Result{Handled: resizing}
}

// OutsideClick closes any open menu.
func (d *Dispatcher) OutsideClick() Result {
	closed := d.ContextMenu.Visible || d.HeaderMenu.Visible
	d.ContextMenu.Close()
	d.HeaderMenu.HandleOutsideClick()
	return Result{Handled: closed}
}

// OpenContextMenu shows the cell menu and selects the cell unless it is
// already part of the selection.
func (d *Dispatcher) OpenContextMenu(x, y int, cell Cell, screenWidth int) {
	d.HeaderMenu.Close()
	d.sel.SelectCell(cell.Row, cell.Col)
	d.ContextMenu.Open(x, y, cell, screenWidth)
}

// OpenHeaderMenu shows the column menu.
func (d *Dispatcher) OpenHeaderMenu(key string, x, y int) {
	d.ContextMenu.Close()
	d.HeaderMenu.Open(key, x, y)
}

// MenusOpen reports whether any menu is visible.
func (d *Dispatcher) MenusOpen() bool {
	return d.ContextMenu.Visible || d.HeaderMenu.Visible
}
