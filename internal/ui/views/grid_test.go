package views

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/Akashdeep-Patra/tabula/internal/common"
	"github.com/Akashdeep-Patra/tabula/internal/config"
	"github.com/Akashdeep-Patra/tabula/internal/data"
	"github.com/Akashdeep-Patra/tabula/internal/grid"
	"github.com/Akashdeep-Patra/tabula/internal/ui"
	"github.com/Akashdeep-Patra/tabula/internal/ui/components"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"
)

// memService is an in-memory data.Service that records what it was asked.
type memService struct {
	mu      sync.Mutex
	rows    grid.Rows
	term    string
	filters []string
	updates []string
}

func (s *memService) Columns() []string { return []string{"serial", "model", "location"} }
func (s *memService) Path() string      { return "/tmp/inventory.db" }
func (s *memService) Close() error      { return nil }

func (s *memService) All(ctx context.Context) (grid.Rows, error) { return s.Search(ctx, "", nil) }

func (s *memService) Search(_ context.Context, term string, filters []string) (grid.Rows, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.term = term
	s.filters = slices.Clone(filters)
	out := make(grid.Rows, len(s.rows))
	for i, r := range s.rows {
		cp := &grid.Row{ID: r.ID, Fields: make(map[string]string)}
		for k, v := range r.Fields {
			cp.Fields[k] = v
		}
		out[i] = cp
	}
	return out, nil
}

func (s *memService) Update(_ context.Context, id grid.RowID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, fmt.Sprintf("%d.%s=%s", id, key, value))
	return nil
}

func (s *memService) lastQuery() (string, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term, s.filters
}

func assets(n int) grid.Rows {
	rows := make(grid.Rows, n)
	for i := range rows {
		rows[i] = &grid.Row{ID: grid.RowID(i + 1), Fields: map[string]string{
			"serial":   fmt.Sprintf("SN%03d", i+1),
			"model":    fmt.Sprintf("m%d", i+1),
			"location": "York",
		}}
	}
	return rows
}

func newTestGrid(t *testing.T, svc *memService, writes *data.WriteQueue) *GridView {
	t.Helper()
	v := NewGridView(svc, ui.DefaultStyles(), GridOptions{
		Keys:   config.DefaultKeyBindings(),
		Locale: language.English,
		Writes: writes,
	})
	t.Cleanup(v.Close)
	v.SetSize(80, 12)
	run(v, v.query())
	return v
}

// run executes cmd synchronously and feeds its message back into the view.
func run(v common.View, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if msg := cmd(); msg != nil {
		v.Update(msg)
	}
}

func TestToKeyEvent(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want grid.KeyEvent
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, grid.KeyEvent{Key: "up"}},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, grid.KeyEvent{Key: "tab", Shift: true}},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, grid.KeyEvent{Key: "c", Ctrl: true}},
		{tea.KeyMsg{Type: tea.KeyCtrlShiftUp}, grid.KeyEvent{Key: "up", Ctrl: true, Shift: true}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}, Alt: true}, grid.KeyEvent{Key: "z", Meta: true}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'Z'}}, grid.KeyEvent{Key: "z", Shift: true}},
		{tea.KeyMsg{Type: tea.KeyEsc}, grid.KeyEvent{Key: "esc"}},
	}
	for _, tt := range tests {
		if got := toKeyEvent(tt.msg); got != tt.want {
			t.Errorf("toKeyEvent(%q) = %+v, want %+v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestColumnLetters(t *testing.T) {
	tests := map[int]string{0: "A", 25: "Z", 26: "AA", 27: "AB", 701: "ZZ", 702: "AAA"}
	for col, want := range tests {
		if got := columnLetters(col); got != want {
			t.Errorf("columnLetters(%d) = %q, want %q", col, got, want)
		}
	}
	if got := cellName(2, 1); got != "B3" {
		t.Errorf("cellName(2, 1) = %q", got)
	}
}

func TestColumnTitle(t *testing.T) {
	if got := columnTitle("asset_tag"); got != "Asset Tag" {
		t.Errorf("columnTitle = %q", got)
	}
}

func TestGridLoadsRows(t *testing.T) {
	svc := &memService{rows: assets(3)}
	v := newTestGrid(t, svc, nil)

	if rows, cols := v.engine.Size(); rows != 3 || cols != 3 {
		t.Fatalf("size = %d x %d", rows, cols)
	}
	if got := v.engine.Value(1, 0); got != "SN002" {
		t.Errorf("value = %q", got)
	}
	if v.View() == "" {
		t.Error("empty view after load")
	}
}

func TestGridDropsStaleResults(t *testing.T) {
	svc := &memService{rows: assets(3)}
	v := newTestGrid(t, svc, nil)

	v.Update(rowsMsg{gen: v.gen - 1, rows: assets(10)})
	if rows, _ := v.engine.Size(); rows != 3 {
		t.Errorf("stale result applied: %d rows", rows)
	}
}

func TestGridLocate(t *testing.T) {
	v := newTestGrid(t, &memService{rows: assets(3)}, nil)

	r, ok := v.locate(1, 1)
	if !ok {
		t.Fatal("visible cell not located")
	}
	want := grid.Rect{Top: grid.HeaderHeight + 32, Left: 150, Width: 150, Height: 32, Visible: true}
	if r != want {
		t.Errorf("locate = %+v, want %+v", r, want)
	}
	if _, ok := v.locate(3, 0); ok {
		t.Error("row past the end located")
	}
}

func TestGridCellAt(t *testing.T) {
	v := newTestGrid(t, &memService{rows: assets(3)}, nil)
	g := v.gutterWidth()

	tests := []struct {
		x, y int
		want grid.Cell
		ok   bool
	}{
		{g, bodyTop, grid.Cell{Row: 0, Col: 0}, true},
		{g + 18, bodyTop + 1, grid.Cell{Row: 1, Col: 1}, true},
		{0, bodyTop, grid.NoCell, false},           // gutter
		{g, headerLine, grid.NoCell, false},        // header
		{g, bodyTop + 5, grid.NoCell, false},       // below the last row
		{g + 17, bodyTop, grid.Cell{Col: 0}, true}, // column border
	}
	for _, tt := range tests {
		got, ok := v.cellAt(tt.x, tt.y)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("cellAt(%d, %d) = %v, %v; want %v, %v", tt.x, tt.y, got, ok, tt.want, tt.ok)
		}
	}
}

func TestGridScrollClamped(t *testing.T) {
	v := newTestGrid(t, &memService{rows: assets(100)}, nil)

	v.scrollBy(0, 1<<20)
	limit := grid.HeaderHeight + 100*32 - v.clientHeight()
	if v.scrollTop != limit {
		t.Errorf("scrollTop = %d, want %d", v.scrollTop, limit)
	}
	if v.engine.Viewport.ScrollTop() != limit {
		t.Errorf("viewport not synced: %d", v.engine.Viewport.ScrollTop())
	}
	v.scrollBy(0, -1<<20)
	if v.scrollTop != 0 {
		t.Errorf("scrollTop = %d after scrolling up", v.scrollTop)
	}

	v.scrollBy(1<<20, 0)
	wantLeft := 3*150 - ui.ColsToPx(v.contentCols())
	if v.scrollLeft != max(0, wantLeft) {
		t.Errorf("scrollLeft = %d, want %d", v.scrollLeft, max(0, wantLeft))
	}
}

func TestGridClickSelects(t *testing.T) {
	v := newTestGrid(t, &memService{rows: assets(3)}, nil)
	g := v.gutterWidth()

	v.Update(tea.MouseMsg{X: g + 18, Y: bodyTop + 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	v.Update(tea.MouseMsg{X: g + 18, Y: bodyTop + 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})

	if got := v.Status().Selection; got != "B2" {
		t.Errorf("selection = %q, want B2", got)
	}

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := v.Status().Selection; got != "B3" {
		t.Errorf("after down: %q, want B3", got)
	}
}

func TestGridEditPersists(t *testing.T) {
	svc := &memService{rows: assets(3)}
	q := data.NewWriteQueue(svc, 4, nil)
	v := newTestGrid(t, svc, q)

	v.beginEdit(grid.Cell{Row: 0, Col: 1})
	if !v.InputCapture() {
		t.Fatal("editor not capturing input")
	}
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if v.engine.Edit.Active() {
		t.Fatal("edit still active after enter")
	}
	if got := v.engine.Value(0, 1); got != "m1x" {
		t.Errorf("value = %q, want m1x", got)
	}
	if v.Status().Undo != 1 {
		t.Errorf("undo depth = %d", v.Status().Undo)
	}

	q.Close()
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if want := []string{"1.model=m1x"}; !slices.Equal(svc.updates, want) {
		t.Errorf("updates = %v, want %v", svc.updates, want)
	}
}

func TestGridEditCancel(t *testing.T) {
	v := newTestGrid(t, &memService{rows: assets(3)}, nil)

	v.beginEdit(grid.Cell{Row: 0, Col: 0})
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("zzz")})
	v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if v.engine.Edit.Active() {
		t.Fatal("edit still active after esc")
	}
	if got := v.engine.Value(0, 0); got != "SN001" {
		t.Errorf("value = %q after cancel", got)
	}
}

func TestGridFilterToggle(t *testing.T) {
	svc := &memService{rows: assets(3)}
	v := newTestGrid(t, svc, nil)

	_, cmd := v.Update(common.ApplyFilterMsg{Key: "location", Value: "York"})
	run(v, cmd)
	if _, filters := svc.lastQuery(); !slices.Equal(filters, []string{"location:York"}) {
		t.Errorf("filters = %v", filters)
	}
	if got := v.Status().Filters; got != 1 {
		t.Errorf("status filters = %d", got)
	}

	_, cmd = v.Update(common.ApplyFilterMsg{Key: "location", Value: "York"})
	run(v, cmd)
	if _, filters := svc.lastQuery(); len(filters) != 0 {
		t.Errorf("filter not toggled off: %v", filters)
	}
}

func TestGridSearchDialog(t *testing.T) {
	svc := &memService{rows: assets(3)}
	v := newTestGrid(t, svc, nil)

	_, cmd := v.Update(components.DialogResult{Confirmed: true, Value: "  dell ", Tag: tagSearch})
	run(v, cmd)
	if term, _ := svc.lastQuery(); term != "dell" {
		t.Errorf("term = %q", term)
	}

	// Cancelled dialogs and foreign tags are ignored.
	if _, cmd := v.Update(components.DialogResult{Value: "x", Tag: tagSearch}); cmd != nil {
		t.Error("cancelled dialog issued a query")
	}
	if _, cmd := v.Update(components.DialogResult{Confirmed: true, Tag: "locations:add"}); cmd != nil {
		t.Error("foreign dialog issued a query")
	}
}

func TestGridSortKeys(t *testing.T) {
	v := newTestGrid(t, &memService{rows: assets(3)}, nil)
	v.engine.Selection.SelectCell(0, 0)

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'S'}})
	if got := v.engine.Value(0, 0); got != "SN003" {
		t.Errorf("first row after descending sort = %q", got)
	}
	if got := v.Status().Sort; got != "serial ↓" {
		t.Errorf("status sort = %q", got)
	}
	// The same sort again clears it.
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'S'}})
	if got := v.engine.Value(0, 0); got != "SN001" {
		t.Errorf("first row after clearing = %q", got)
	}
}

func TestGridCellMenu(t *testing.T) {
	v := newTestGrid(t, &memService{rows: assets(3)}, nil)
	g := v.gutterWidth()

	v.Update(tea.MouseMsg{X: g + 1, Y: bodyTop, Button: tea.MouseButtonRight, Action: tea.MouseActionPress})
	if !v.menuOpen() || v.menuKind != menuCell {
		t.Fatal("cell menu not open after right click")
	}
	// The first item is Edit.
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if v.menuOpen() {
		t.Error("menu still open after choosing an item")
	}
	if !v.engine.Edit.IsEditingCell(0, 0) {
		t.Error("menu Edit did not start editing the target cell")
	}
}

func TestGridMenuClosedByOutsideClick(t *testing.T) {
	v := newTestGrid(t, &memService{rows: assets(3)}, nil)
	g := v.gutterWidth()

	v.Update(tea.MouseMsg{X: g + 1, Y: headerLine, Button: tea.MouseButtonRight, Action: tea.MouseActionPress})
	if v.menuKind != menuHeader || v.menuKey != "serial" {
		t.Fatalf("header menu = %v %q", v.menuKind, v.menuKey)
	}
	v.Update(tea.MouseMsg{X: 79, Y: 11, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if v.menuOpen() {
		t.Error("outside click left the menu open")
	}
	if v.engine.Selection.HasSelection() {
		t.Error("dismissing click also selected")
	}
}

func TestGridEscapeClosesMenu(t *testing.T) {
	v := newTestGrid(t, &memService{rows: assets(3)}, nil)
	v.engine.Selection.SelectCell(0, 0)

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	if !v.menuOpen() {
		t.Fatal("menu key did not open the cell menu")
	}
	v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if v.menuOpen() {
		t.Error("esc left the menu open")
	}
}

// memClipboard is a grid.Platform holding one string.
type memClipboard struct {
	mu   sync.Mutex
	text string
}

func (c *memClipboard) WriteText(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	return nil
}

func (c *memClipboard) ReadText(context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, nil
}

// messages runs cmd and flattens any batch into its messages.
func messages(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, messages(c)...)
	}
	return out
}

func TestGridLayoutFollowsWindow(t *testing.T) {
	v := newTestGrid(t, &memService{rows: assets(100)}, nil)

	v.scrollBy(0, 40*v.rowHeight())
	lines := v.layout()
	if len(lines) != v.bodyLines() {
		t.Fatalf("layout has %d lines, want %d", len(lines), v.bodyLines())
	}
	if lines[0].row != 40 {
		t.Errorf("first laid out row = %d, want 40", lines[0].row)
	}
	for i, l := range lines {
		if !v.engine.Viewport.IsRowVisible(l.row) {
			t.Errorf("line %d shows row %d outside the materialized window", i, l.row)
		}
		if _, ok := v.locate(l.row, 0); !ok {
			t.Errorf("line %d shows row %d the locator cannot find", i, l.row)
		}
	}
}

func TestGridScrollToTopOnSearch(t *testing.T) {
	svc := &memService{rows: assets(100)}
	v := newTestGrid(t, svc, nil)
	v.scrollBy(0, 40*v.rowHeight())

	_, cmd := v.Update(components.DialogResult{Confirmed: true, Value: "SN", Tag: tagSearch})
	if v.scrollTop != 0 || v.engine.Viewport.ScrollTop() != 0 {
		t.Errorf("scroll = %d (viewport %d), want 0", v.scrollTop, v.engine.Viewport.ScrollTop())
	}
	run(v, cmd)
	if got := v.layout()[0].row; got != 0 {
		t.Errorf("first row after search = %d", got)
	}
}

func TestGridPasteFollowsRowID(t *testing.T) {
	svc := &memService{rows: assets(3)}
	q := data.NewWriteQueue(svc, 4, nil)
	v := NewGridView(svc, ui.DefaultStyles(), GridOptions{
		Keys:     config.DefaultKeyBindings(),
		Locale:   language.English,
		Writes:   q,
		Platform: &memClipboard{text: "pasted"},
	})
	t.Cleanup(v.Close)
	v.SetSize(80, 12)
	run(v, v.query())

	v.engine.Selection.SelectCell(0, 1)
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	var paste tea.Msg
	for _, msg := range messages(cmd) {
		if _, ok := msg.(pasteMsg); ok {
			paste = msg
		}
	}
	if paste == nil {
		t.Fatal("ctrl+v did not read the clipboard")
	}

	// A refresh reorders the rows before the clipboard read lands.
	svc.mu.Lock()
	slices.Reverse(svc.rows)
	svc.mu.Unlock()
	run(v, v.query())
	if got := v.engine.Value(0, 1); got != "m3" {
		t.Fatalf("row 0 after refresh = %q, want m3", got)
	}

	v.Update(paste)
	if got := v.engine.Value(2, 1); got != "pasted" {
		t.Errorf("row id 1 (index 2) = %q, want pasted", got)
	}
	if got := v.engine.Value(0, 1); got != "m3" {
		t.Errorf("row now at the old index = %q, want m3", got)
	}

	q.Close()
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if want := []string{"1.model=pasted"}; !slices.Equal(svc.updates, want) {
		t.Errorf("updates = %v, want %v", svc.updates, want)
	}
}

func TestGridHeaderResize(t *testing.T) {
	v := newTestGrid(t, &memService{rows: assets(3)}, nil)
	g := v.gutterWidth()
	border := g + v.colRight(0) - 1

	v.Update(tea.MouseMsg{X: border, Y: headerLine, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if k, ok := v.engine.Sizing.Resizing(); !ok || k != "serial" {
		t.Fatalf("resizing = %q, %v", k, ok)
	}
	v.Update(tea.MouseMsg{X: border + 10, Y: bodyTop + 1, Action: tea.MouseActionMotion})
	v.Update(tea.MouseMsg{X: border + 10, Y: bodyTop + 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})

	if got, want := v.engine.Sizing.Width("serial"), 150+ui.ColsToPx(10); got != want {
		t.Errorf("width = %d, want %d", got, want)
	}
	if _, ok := v.engine.Sizing.Resizing(); ok {
		t.Error("resize still active after release")
	}
	if v.engine.Selection.HasSelection() {
		t.Error("resize drag selected cells")
	}
}

func TestGridCopyInfo(t *testing.T) {
	v := newTestGrid(t, &memService{rows: assets(3)}, nil)
	v.engine.Selection.SelectCell(0, 0)
	ctrlC := tea.KeyMsg{Type: tea.KeyCtrlC}

	info := func() string {
		_, cmd := v.Update(ctrlC)
		for _, msg := range messages(cmd) {
			if m, ok := msg.(common.InfoMsg); ok {
				return m.Text
			}
		}
		return ""
	}

	if got := info(); got != "Copied 1 cells" {
		t.Errorf("first copy info = %q", got)
	}
	if got := info(); got != "" {
		t.Errorf("copying the copied region again reported %q", got)
	}
	v.engine.Selection.MoveTo(1, 0)
	if got := info(); got != "Copied 1 cells" {
		t.Errorf("copy of a new region info = %q", got)
	}
}

func TestGridSortSeesEdits(t *testing.T) {
	svc := &memService{rows: assets(3)}
	v := newTestGrid(t, svc, nil)
	v.engine.Selection.SelectCell(0, 0)
	sortKey := func(r rune) { v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}) }

	sortKey('s')
	v.beginEdit(grid.Cell{Row: 0, Col: 0})
	v.editor.SetValue("SN999")
	v.engine.Edit.SetValue("SN999")
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	sortKey('S')
	if got := v.engine.Value(0, 0); got != "SN999" {
		t.Errorf("first row descending = %q, want SN999", got)
	}
	sortKey('s')
	want := []string{"SN002", "SN003", "SN999"}
	for i, w := range want {
		if got := v.engine.Value(i, 0); got != w {
			t.Errorf("ascending row %d = %q, want %q", i, got, w)
		}
	}
}
