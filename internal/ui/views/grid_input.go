package views

import (
	"fmt"

	"github.com/Akashdeep-Patra/tabula/internal/common"
	"github.com/Akashdeep-Patra/tabula/internal/data"
	"github.com/Akashdeep-Patra/tabula/internal/grid"
	"github.com/Akashdeep-Patra/tabula/internal/ui"
	"github.com/Akashdeep-Patra/tabula/internal/ui/components"
	tea "github.com/charmbracelet/bubbletea"
)

// Wheel steps.
const (
	wheelRows = 3
	wheelCols = 8
)

// Menu actions.
const (
	actEdit        = "edit"
	actCopy        = "copy"
	actPaste       = "paste"
	actFilterValue = "filter-value"
	actClearAll    = "clear-all"
	actSortAsc     = "sort-asc"
	actSortDesc    = "sort-desc"
	actSortClear   = "sort-clear"
	actFilterAsk   = "filter-ask"
	actFilterClear = "filter-clear"
	actResetWidth  = "reset-width"
)

// ── Mouse ───────────────────────────────────────────────────────────────────

// handleMouse translates terminal mouse input into hub events. Coordinates
// are relative to the view.
func (v *GridView) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if tea.MouseEvent(msg).IsWheel() {
		v.wheel(msg)
		return nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			return v.leftPress(msg)
		case tea.MouseButtonRight:
			v.rightPress(msg)
		}
	case tea.MouseActionMotion:
		v.pointerMove(msg)
	case tea.MouseActionRelease:
		v.hub.Publish(grid.Event{Kind: grid.EventPointerUp, X: ui.ColsToPx(msg.X)})
	}
	return nil
}

func (v *GridView) wheel(msg tea.MouseMsg) {
	rh := v.rowHeight()
	switch {
	case msg.Button == tea.MouseButtonWheelLeft,
		msg.Shift && msg.Button == tea.MouseButtonWheelUp:
		v.scrollBy(-ui.ColsToPx(wheelCols), 0)
	case msg.Button == tea.MouseButtonWheelRight,
		msg.Shift && msg.Button == tea.MouseButtonWheelDown:
		v.scrollBy(ui.ColsToPx(wheelCols), 0)
	case msg.Button == tea.MouseButtonWheelUp:
		v.scrollBy(0, -wheelRows*rh)
	case msg.Button == tea.MouseButtonWheelDown:
		v.scrollBy(0, wheelRows*rh)
	}
}

func (v *GridView) leftPress(msg tea.MouseMsg) tea.Cmd {
	if v.menuOpen() {
		if item, ok := v.menuHit(msg.X, msg.Y); ok {
			return v.runMenu(item.Action)
		}
	}
	// Any click outside an open menu only dismisses it.
	if res := v.hub.Publish(grid.Event{Kind: grid.EventClick, X: msg.X, Y: msg.Y}); res.Handled {
		v.closeMenu()
		return nil
	}

	switch msg.Y {
	case toolbarLine:
		return v.clickChip(msg.X)
	case headerLine:
		if col, ok := v.resizeHandleAt(msg.X); ok {
			k, _ := v.engine.Key(col)
			v.engine.Dispatcher.StartColumnResize(k, ui.ColsToPx(msg.X))
			return nil
		}
		if col, ok := v.colAt(msg.X); ok {
			v.openHeaderMenu(col, msg.X, msg.Y+1)
		}
		return nil
	}

	cell, ok := v.cellAt(msg.X, msg.Y)
	if !ok {
		return nil
	}
	if v.engine.Edit.Active() {
		if v.engine.Edit.IsEditingCell(cell.Row, cell.Col) {
			return nil
		}
		v.commitEdit()
	}
	v.hub.Publish(grid.Event{
		Kind:   grid.EventPointerDown,
		X:      ui.ColsToPx(msg.X),
		Y:      ui.LinesToPx(msg.Y),
		Cell:   cell,
		OnCell: true,
		Shift:  msg.Shift,
	})
	return nil
}

func (v *GridView) rightPress(msg tea.MouseMsg) {
	v.hub.Publish(grid.Event{Kind: grid.EventClick, X: msg.X, Y: msg.Y})
	v.closeMenu()

	if msg.Y == headerLine {
		if col, ok := v.colAt(msg.X); ok {
			v.openHeaderMenu(col, msg.X, msg.Y+1)
		}
		return
	}
	cell, ok := v.cellAt(msg.X, msg.Y)
	if !ok {
		return
	}
	if v.engine.Edit.Active() {
		v.commitEdit()
	}
	v.openCellMenu(cell, msg.X, msg.Y)
}

// pointerMove drives column resizing and drag selection. Dragging on the
// last line scrolls the body down.
func (v *GridView) pointerMove(msg tea.MouseMsg) {
	if v.engine.Selection.Selecting() && msg.Y >= v.height-1 {
		v.scrollBy(0, v.rowHeight())
	}
	cell, ok := v.cellAt(msg.X, msg.Y)
	v.hub.Publish(grid.Event{
		Kind:   grid.EventPointerMove,
		X:      ui.ColsToPx(msg.X),
		Y:      ui.LinesToPx(msg.Y),
		Cell:   cell,
		OnCell: ok,
	})
	if v.engine.Edit.Active() {
		v.resizeEditor()
	}
}

// clickChip removes the search term or filter under the pointer.
func (v *GridView) clickChip(x int) tea.Cmd {
	z, ok := components.HitChip(v.chipZones, x)
	if !ok {
		return nil
	}
	if z.Search {
		v.search = ""
		return v.query()
	}
	if f, ok := data.ParseFilter(z.Filter); ok {
		v.filters = data.RemoveFilter(v.filters, f)
		return v.query()
	}
	return nil
}

// ── Menus ───────────────────────────────────────────────────────────────────

func (v *GridView) menuOpen() bool {
	return v.menu != nil && v.engine.Dispatcher.MenusOpen()
}

func (v *GridView) closeMenu() {
	v.menu = nil
	v.menuKind = menuNone
	v.menuKey = ""
	v.engine.Dispatcher.ContextMenu.Close()
	v.engine.Dispatcher.HeaderMenu.Close()
}

func (v *GridView) openCellMenu(cell grid.Cell, x, y int) {
	m := components.NewMenu(
		components.MenuItem{Label: "Edit", Action: actEdit},
		components.MenuItem{Label: "Copy", Action: actCopy},
		components.MenuItem{Label: "Paste", Action: actPaste},
		components.MenuItem{Label: "Filter by this value", Action: actFilterValue},
		components.MenuItem{Label: "Clear search & filters", Action: actClearAll, Disabled: len(v.filters) == 0 && v.search == ""},
	)
	v.engine.Dispatcher.ContextMenu.Width = m.Width()
	v.engine.Dispatcher.OpenContextMenu(x, y, cell, v.width)
	v.menu = &m
	v.menuKind = menuCell
}

func (v *GridView) openHeaderMenu(col, x, y int) {
	k, ok := v.engine.Key(col)
	if !ok {
		return
	}
	active, dir := v.sorter.State(k)
	mark := func(d data.Direction) string {
		if active && dir == d {
			return "✓ "
		}
		return "  "
	}
	filtered := false
	for _, f := range v.filters {
		filtered = filtered || f.Key == k
	}
	m := components.NewMenu(
		components.MenuItem{Label: mark(data.Asc) + "Sort ascending", Action: actSortAsc},
		components.MenuItem{Label: mark(data.Desc) + "Sort descending", Action: actSortDesc},
		components.MenuItem{Label: "  Clear sort", Action: actSortClear, Disabled: !active},
		components.MenuItem{Label: "  Filter…", Action: actFilterAsk},
		components.MenuItem{Label: "  Clear column filters", Action: actFilterClear, Disabled: !filtered},
		components.MenuItem{Label: "  Reset width", Action: actResetWidth},
	)
	v.engine.Dispatcher.OpenHeaderMenu(k, x, y)
	v.menu = &m
	v.menuKind = menuHeader
	v.menuKey = k
}

// menuOrigin returns the top-left corner of the open menu, kept on screen.
func (v *GridView) menuOrigin() (x, y int) {
	d := v.engine.Dispatcher
	switch v.menuKind {
	case menuCell:
		x, y = d.ContextMenu.X, d.ContextMenu.Y
	case menuHeader:
		x, y = d.HeaderMenu.X, d.HeaderMenu.Y
	}
	if v.menu != nil {
		x = min(x, v.width-v.menu.Width())
		y = min(y, v.height-v.menu.Height())
	}
	return max(x, 0), max(y, 0)
}

func (v *GridView) menuHit(x, y int) (components.MenuItem, bool) {
	ox, oy := v.menuOrigin()
	return v.menu.HitItem(x-ox, y-oy)
}

func (v *GridView) updateMenu(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k", "shift+tab":
		v.menu.Move(-1)
	case "down", "j", "tab":
		v.menu.Move(1)
	case "enter":
		if item, ok := v.menu.Selected(); ok {
			return v.runMenu(item.Action)
		}
	case "esc":
		v.closeMenu()
	default:
		v.closeMenu()
		return v.updateNormal(msg)
	}
	return nil
}

func (v *GridView) runMenu(action string) tea.Cmd {
	target := v.engine.Dispatcher.ContextMenu.Target()
	col := v.menuKey
	v.closeMenu()

	switch action {
	case actEdit:
		return v.beginEdit(target)
	case actCopy:
		if _, ok := v.engine.Copy(); ok {
			return common.CmdInfo(fmt.Sprintf("Copied %d cells", len(v.engine.Clipboard.Internal())))
		}
	case actPaste:
		v.requestPaste(target)
	case actFilterValue:
		k, _ := v.engine.Key(target.Col)
		return v.toggleFilter(k, v.engine.Value(target.Row, target.Col))
	case actClearAll:
		return v.clearFilters()
	case actSortAsc:
		v.setSort(col, data.Asc)
	case actSortDesc:
		v.setSort(col, data.Desc)
	case actSortClear:
		v.sorter.Reset()
		v.resort()
	case actFilterAsk:
		return v.openFilterPrompt(col)
	case actFilterClear:
		return v.clearColumnFilters(col)
	case actResetWidth:
		v.engine.Sizing.SetWidth(col, v.defaultWidth)
		v.engine.Selection.UpdateOverlay()
	}
	return nil
}
