package grid

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Edit geometry, in pixels.
const (
	MaxEditWidth = 300
	CharWidth    = 8
	EditPadding  = 16
)

// EditState is the snapshot taken when an edit starts. It holds enough to
// roll back every transient geometry change.
type EditState struct {
	ID                  RowID
	Row                 int
	Col                 int
	Key                 string
	OriginalValue       string
	OriginalColumnWidth int
	OriginalRowHeight   int
	HadRowHeight        bool
}

// RecordFunc receives a committed field change.
type RecordFunc func(id RowID, key, oldValue, newValue string)

// EditSession is the lifecycle of editing exactly one cell. It is either idle
// or editing; a second edit cannot start until the first is saved or
// cancelled.
type EditSession struct {
	state *EditState
	value string
}

// NewEditSession returns an idle session.
func NewEditSession() *EditSession { return &EditSession{} }

// Active reports whether a cell is being edited.
func (e *EditSession) Active() bool { return e.state != nil }

// State returns a copy of the edit snapshot.
func (e *EditSession) State() (EditState, bool) {
	if e.state == nil {
		return EditState{}, false
	}
	return *e.state, true
}

// Value returns the pending input.
func (e *EditSession) Value() string { return e.value }

// SetValue replaces the pending input. Ignored while idle.
func (e *EditSession) SetValue(v string) {
	if e.state != nil {
		e.value = v
	}
}

// Position returns the edited cell.
func (e *EditSession) Position() (Cell, bool) {
	if e.state == nil {
		return NoCell, false
	}
	return Cell{Row: e.state.Row, Col: e.state.Col}, true
}

// IsEditingCell reports whether the given cell is being edited.
func (e *EditSession) IsEditingCell(row, col int) bool {
	return e.state != nil && e.state.Row == row && e.state.Col == col
}

// ContentWidth estimates the pixel width needed to show text, capped at
// MaxEditWidth.
func ContentWidth(text string) int {
	return min(MaxEditWidth, runewidth.StringWidth(text)*CharWidth+EditPadding)
}

// Start begins editing a cell and widens its column to fit the content. It
// returns false, changing nothing, while another edit is active.
func (e *EditSession) Start(id RowID, row, col int, key, currentValue string, sizing *Sizing) bool {
	if e.state != nil {
		return false
	}
	origWidth := sizing.Width(key)
	e.state = &EditState{
		ID:                  id,
		Row:                 row,
		Col:                 col,
		Key:                 key,
		OriginalValue:       currentValue,
		OriginalColumnWidth: origWidth,
		OriginalRowHeight:   sizing.Height(row),
		HadRowHeight:        sizing.HasHeight(row),
	}
	e.value = currentValue

	sizing.SetWidth(key, min(MaxEditWidth, max(origWidth, ContentWidth(currentValue))))
	sizing.SetHeight(row, sizing.DefaultHeight())
	return true
}

// UpdateRowHeight grows the edited row once the column has reached its cap,
// which is when the content starts wrapping.
func (e *EditSession) UpdateRowHeight(renderedHeight int, sizing *Sizing) {
	if e.state == nil {
		return
	}
	if sizing.Width(e.state.Key) >= MaxEditWidth {
		sizing.SetHeight(e.state.Row, max(sizing.DefaultHeight(), renderedHeight+EditPadding))
		return
	}
	sizing.SetHeight(e.state.Row, sizing.DefaultHeight())
}

// MoveRow follows the edited row to a new index after the row array was
// reordered. The old index gets its pre-edit height back and the transient
// height moves with the row.
func (e *EditSession) MoveRow(row int, sizing *Sizing) {
	if e.state == nil || e.state.Row == row {
		return
	}
	h := sizing.Height(e.state.Row)
	e.restoreHeight(sizing)
	e.state.Row = row
	e.state.OriginalRowHeight = sizing.Height(row)
	e.state.HadRowHeight = sizing.HasHeight(row)
	sizing.SetHeight(row, h)
}

// Save commits the pending value. The row is resolved by the identifier
// captured at start. Geometry is always restored and the session returns to
// idle; the result is false when there was no session or the row is gone.
func (e *EditSession) Save(rows Rows, record RecordFunc, sizing *Sizing) bool {
	if e.state == nil {
		return false
	}
	st := *e.state
	newValue := strings.TrimSpace(e.value)
	e.restore(sizing)

	row := rows.Find(st.ID)
	if row == nil {
		return false
	}
	if newValue != st.OriginalValue {
		row.Set(st.Key, newValue)
		if record != nil {
			record(st.ID, st.Key, st.OriginalValue, newValue)
		}
	}
	return true
}

// Cancel restores geometry and returns to idle without writing.
func (e *EditSession) Cancel(sizing *Sizing) {
	if e.state == nil {
		return
	}
	e.restore(sizing)
}

func (e *EditSession) restore(sizing *Sizing) {
	sizing.SetWidth(e.state.Key, e.state.OriginalColumnWidth)
	e.restoreHeight(sizing)
	e.state = nil
	e.value = ""
}

func (e *EditSession) restoreHeight(sizing *Sizing) {
	if e.state.HadRowHeight {
		sizing.SetHeight(e.state.Row, e.state.OriginalRowHeight)
	} else {
		sizing.ResetHeight(e.state.Row)
	}
}
