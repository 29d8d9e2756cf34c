package views

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Akashdeep-Patra/tabula/internal/common"
	"github.com/Akashdeep-Patra/tabula/internal/config"
	"github.com/Akashdeep-Patra/tabula/internal/data"
	"github.com/Akashdeep-Patra/tabula/internal/grid"
	"github.com/Akashdeep-Patra/tabula/internal/ui"
	"github.com/Akashdeep-Patra/tabula/internal/ui/components"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
)

// Screen lines above the grid body: the chip toolbar and the header row.
const (
	toolbarLine = 0
	headerLine  = 1
	bodyTop     = 2
)

// queryTimeout bounds a search issued from the grid.
const queryTimeout = 15 * time.Second

// Dialog tags owned by the grid.
const (
	tagSearch       = "grid:search"
	tagFilterPrefix = "grid:filter:"
)

// GridOptions configures a GridView.
type GridOptions struct {
	Sizing   grid.SizingOptions
	Overscan int
	// Widths restores saved column widths, in pixels.
	Widths   map[string]int
	Keys     config.KeyBindings
	Locale   language.Tag
	Platform grid.Platform
	// Writes persists committed edits. Nil keeps edits in memory.
	Writes *data.WriteQueue
	Logger *slog.Logger
}

type gridKeyMap struct {
	Edit         key.Binding
	Search       key.Binding
	FilterCell   key.Binding
	ClearFilters key.Binding
	SortAsc      key.Binding
	SortDesc     key.Binding
	ResetWidths  key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Menu         key.Binding
}

func newGridKeyMap(k config.KeyBindings) gridKeyMap {
	bind := func(keys []string, desc string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(strings.Join(keys, "/"), desc))
	}
	return gridKeyMap{
		Edit:         bind(k.Edit, "edit cell"),
		Search:       bind(k.Search, "search"),
		FilterCell:   bind(k.FilterCell, "filter by cell"),
		ClearFilters: bind(k.ClearFilters, "clear filters"),
		SortAsc:      bind(k.SortAsc, "sort ascending"),
		SortDesc:     bind(k.SortDesc, "sort descending"),
		ResetWidths:  bind(k.ResetWidths, "reset widths"),
		PageUp:       bind(k.PageUp, "page up"),
		PageDown:     bind(k.PageDown, "page down"),
		Menu:         bind(k.Menu, "cell menu"),
	}
}

type menuKind int

const (
	menuNone menuKind = iota
	menuCell
	menuHeader
)

// ── Messages ────────────────────────────────────────────────────────────────

type rowsMsg struct {
	gen  uint64
	rows grid.Rows
	err  error
}

type pasteMsg struct {
	id   grid.RowID
	col  int
	text string
	ok   bool
}

type writeErrMsg struct{ err error }

// GridView is the spreadsheet over the asset inventory.
type GridView struct {
	svc    data.Service
	writes *data.WriteQueue
	styles ui.Styles
	keys   gridKeyMap
	log    *slog.Logger

	width  int
	height int

	engine       *grid.Engine
	hub          *grid.Hub
	defaultWidth int
	unmount      func()
	sorter       *data.Sorter
	editor       textarea.Model

	base    grid.Rows // rows of the latest query, unsorted
	gen     uint64    // generation of the latest issued query
	loaded  bool
	search  string
	filters []data.Filter

	// Scroll offsets of the body, in pixels.
	scrollTop  int
	scrollLeft int

	menu     *components.Menu
	menuKind menuKind
	menuKey  string

	chipZones []components.ChipZone

	// selLabel is the status bar name of the selection, kept current by the
	// selection's change hook.
	selLabel string

	// Commands queued by engine callbacks while handling one message.
	pending []tea.Cmd
}

// Compile-time check that GridView implements the view contracts.
var (
	_ common.View           = (*GridView)(nil)
	_ common.StatusReporter = (*GridView)(nil)
)

// NewGridView creates the inventory grid.
func NewGridView(svc data.Service, styles ui.Styles, opts GridOptions) *GridView {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	v := &GridView{
		svc:    svc,
		writes: opts.Writes,
		styles: styles,
		keys:   newGridKeyMap(opts.Keys),
		log:    logger,
		sorter: data.NewSorter(opts.Locale),
		hub:    grid.NewHub(),
		editor: newCellEditor(styles),
	}

	v.engine = grid.NewEngine(nil, svc.Columns(), grid.Options{
		Sizing:         opts.Sizing,
		Overscan:       opts.Overscan,
		Platform:       opts.Platform,
		Locator:        grid.LocatorFunc(v.locate),
		Persist:        v.persist,
		Logger:         logger,
		ScrollIntoView: v.scrollIntoView,
		Escape:         v.closeMenu,
		RequestPaste:   v.requestPaste,
	})
	v.defaultWidth = opts.Sizing.ColumnWidth
	if v.defaultWidth <= 0 {
		v.defaultWidth = grid.DefaultColumnWidth
	}
	v.engine.Sizing.LoadWidths(opts.Widths)
	v.engine.Selection.OnChange(v.selectionChanged)
	v.unmount = v.engine.Dispatcher.Mount(v.hub)
	return v
}

func newCellEditor(styles ui.Styles) textarea.Model {
	ta := textarea.New()
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.EndOfBufferCharacter = ' '
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))

	plain := lipgloss.NewStyle()
	edit := styles.CellEditing
	ta.FocusedStyle = textarea.Style{Base: plain, CursorLine: edit, Text: edit, EndOfBuffer: edit, Placeholder: styles.Muted}
	ta.BlurredStyle = ta.FocusedStyle
	ta.SetHeight(1)
	return ta
}

// Engine exposes the interaction engine.
func (v *GridView) Engine() *grid.Engine { return v.engine }

// Widths returns the column widths to persist.
func (v *GridView) Widths() map[string]int { return v.engine.Sizing.Widths() }

// Filters returns the active filters in "key:value" form.
func (v *GridView) Filters() []string { return data.FilterStrings(v.filters) }

// Close unregisters the grid's event listeners.
func (v *GridView) Close() {
	if v.unmount != nil {
		v.unmount()
		v.unmount = nil
	}
}

func (v *GridView) Init() tea.Cmd {
	return tea.Batch(v.query(), v.listenWrites())
}

func (v *GridView) SetSize(w, h int) {
	v.width = w
	v.height = h
	v.engine.Viewport.UpdateContainerHeight(v.clientHeight())
	c := v.container()
	c.SetScrollTop(v.scrollTop)
	c.SetScrollLeft(v.scrollLeft)
	v.syncScroll()
	v.resizeEditor()
}

func (v *GridView) InputCapture() bool { return v.engine.Edit.Active() }

// ── Data ────────────────────────────────────────────────────────────────────

// query issues a search for the current term and filters. Results of older
// queries are dropped on arrival.
func (v *GridView) query() tea.Cmd {
	v.gen++
	gen, term, filters := v.gen, v.search, data.FilterStrings(v.filters)
	svc := v.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()
		rows, err := svc.Search(ctx, term, filters)
		return rowsMsg{gen: gen, rows: rows, err: err}
	}
}

func (v *GridView) applyRows(msg rowsMsg) tea.Cmd {
	if msg.gen != v.gen {
		return nil
	}
	if msg.err != nil {
		return common.CmdErr(fmt.Errorf("loading inventory: %w", msg.err))
	}
	v.base = msg.rows
	v.loaded = true
	v.resort()
	return nil
}

// resort pushes the base rows through the sorter into the engine.
func (v *GridView) resort() {
	v.engine.SetRows(v.sorter.Apply(v.gen, v.base))
	if c, ok := v.engine.Edit.Position(); ok {
		v.engine.Selection.SelectCell(c.Row, c.Col)
	}
	c := v.container()
	c.SetScrollTop(v.scrollTop)
	v.syncScroll()
}

// scrollToTop returns to the first row, e.g. when a new query narrows the
// result set.
func (v *GridView) scrollToTop() {
	v.engine.Viewport.ScrollToRow(0, v.container())
	v.engine.Selection.UpdateOverlay()
}

func (v *GridView) setSort(key string, dir data.Direction) {
	v.sorter.Update(key, dir)
	v.resort()
}

func (v *GridView) toggleFilter(key, value string) tea.Cmd {
	if key == "" || value == "" {
		return nil
	}
	v.filters = data.ToggleFilter(v.filters, key, value)
	v.scrollToTop()
	return v.query()
}

func (v *GridView) clearFilters() tea.Cmd {
	if len(v.filters) == 0 && v.search == "" {
		return nil
	}
	v.filters = nil
	v.search = ""
	return v.query()
}

func (v *GridView) clearColumnFilters(key string) tea.Cmd {
	kept := v.filters[:0:0]
	for _, f := range v.filters {
		if f.Key != key {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(v.filters) {
		return nil
	}
	v.filters = kept
	return v.query()
}

// persist hands a committed change to the write queue.
func (v *GridView) persist(id grid.RowID, key, value string) {
	if key == v.sorter.Key() {
		v.sorter.Invalidate()
	}
	if v.writes == nil {
		return
	}
	v.writes.Submit(id, key, value)
}

func (v *GridView) listenWrites() tea.Cmd {
	if v.writes == nil {
		return nil
	}
	errs := v.writes.Errors()
	return func() tea.Msg {
		err, ok := <-errs
		if !ok {
			return nil
		}
		return writeErrMsg{err: err}
	}
}

// requestPaste reads the clipboard off the event loop. The target is carried
// by row identifier so a refresh in between cannot redirect the paste.
func (v *GridView) requestPaste(target grid.Cell) {
	row := v.engine.Rows().At(target.Row)
	if row == nil {
		return
	}
	id, col, clip := row.ID, target.Col, v.engine.Clipboard
	v.pending = append(v.pending, func() tea.Msg {
		text, ok := clip.ReadPlatform(context.Background())
		return pasteMsg{id: id, col: col, text: text, ok: ok}
	})
}

func (v *GridView) applyPaste(msg pasteMsg) tea.Cmd {
	if !msg.ok {
		return common.CmdErr(errors.New("clipboard unavailable"))
	}
	for i, r := range v.engine.Rows() {
		if r.ID == msg.id {
			v.engine.ApplyPaste(grid.Cell{Row: i, Col: msg.col}, msg.text)
			return nil
		}
	}
	return nil
}

// flush returns and clears the commands queued by engine callbacks.
func (v *GridView) flush(cmds ...tea.Cmd) tea.Cmd {
	cmds = append(cmds, v.pending...)
	v.pending = nil
	return tea.Batch(cmds...)
}

// ── Update ──────────────────────────────────────────────────────────────────

func (v *GridView) Update(msg tea.Msg) (common.View, tea.Cmd) {
	switch msg := msg.(type) {
	case rowsMsg:
		return v, v.applyRows(msg)

	case pasteMsg:
		return v, v.applyPaste(msg)

	case writeErrMsg:
		return v, tea.Batch(common.CmdErr(msg.err), v.listenWrites())

	case common.RefreshMsg:
		return v, v.query()

	case common.ApplyFilterMsg:
		return v, v.toggleFilter(msg.Key, msg.Value)

	case components.DialogResult:
		return v, v.handleDialog(msg)

	case tea.MouseMsg:
		cmd := v.handleMouse(msg)
		return v, v.flush(cmd)

	case tea.KeyMsg:
		var cmd tea.Cmd
		switch {
		case v.engine.Edit.Active():
			cmd = v.updateEditor(msg)
		case v.menuOpen():
			cmd = v.updateMenu(msg)
		default:
			cmd = v.updateNormal(msg)
		}
		return v, v.flush(cmd)
	}
	return v, nil
}

func (v *GridView) updateNormal(msg tea.KeyMsg) tea.Cmd {
	anchor, hasAnchor := v.engine.Selection.Anchor()

	switch {
	case key.Matches(msg, v.keys.Edit):
		if hasAnchor {
			return v.beginEdit(anchor)
		}
		return nil
	case key.Matches(msg, v.keys.Search):
		return v.openSearch()
	case key.Matches(msg, v.keys.FilterCell):
		if hasAnchor {
			k, _ := v.engine.Key(anchor.Col)
			return v.toggleFilter(k, v.engine.Value(anchor.Row, anchor.Col))
		}
		return nil
	case key.Matches(msg, v.keys.ClearFilters):
		return v.clearFilters()
	case key.Matches(msg, v.keys.SortAsc), key.Matches(msg, v.keys.SortDesc):
		if !hasAnchor {
			return nil
		}
		dir := data.Asc
		if key.Matches(msg, v.keys.SortDesc) {
			dir = data.Desc
		}
		k, _ := v.engine.Key(anchor.Col)
		v.setSort(k, dir)
		return nil
	case key.Matches(msg, v.keys.ResetWidths):
		v.engine.Sizing.ResetAll()
		v.engine.Selection.UpdateOverlay()
		return common.CmdInfo("Column widths reset")
	case key.Matches(msg, v.keys.PageUp):
		v.page(-1)
		return nil
	case key.Matches(msg, v.keys.PageDown):
		v.page(1)
		return nil
	case key.Matches(msg, v.keys.Menu):
		if hasAnchor {
			x, y := v.cellScreenPos(anchor)
			v.openCellMenu(anchor, x, y+1)
		}
		return nil
	}

	ev := toKeyEvent(msg)
	copying := (ev.Ctrl || ev.Meta) && strings.EqualFold(ev.Key, "c")
	// Copying the region already marked as copied only refreshes the snapshot.
	recopy := copying && v.engine.Selection.SelectionMatchesCopy()
	v.hub.Publish(grid.Event{Kind: grid.EventKey, Key: ev})
	if copying && !recopy && v.engine.Clipboard.HasData() {
		return common.CmdInfo(fmt.Sprintf("Copied %d cells", len(v.engine.Clipboard.Internal())))
	}
	return nil
}

// toKeyEvent translates a bubbletea key into the engine's key model. Alt
// stands in for the platform meta key.
func toKeyEvent(msg tea.KeyMsg) grid.KeyEvent {
	var ev grid.KeyEvent
	s := msg.String()
	for {
		switch {
		case strings.HasPrefix(s, "ctrl+") && len(s) > len("ctrl+"):
			ev.Ctrl = true
			s = s[len("ctrl+"):]
			continue
		case strings.HasPrefix(s, "alt+") && len(s) > len("alt+"):
			ev.Meta = true
			s = s[len("alt+"):]
			continue
		case strings.HasPrefix(s, "shift+") && len(s) > len("shift+"):
			ev.Shift = true
			s = s[len("shift+"):]
			continue
		}
		break
	}
	if len(s) == 1 && s != strings.ToLower(s) {
		ev.Shift = true
		s = strings.ToLower(s)
	}
	ev.Key = s
	return ev
}

// page moves the active cell by one screen of rows.
func (v *GridView) page(dir int) {
	rows, _ := v.engine.Size()
	if rows == 0 {
		return
	}
	anchor, ok := v.engine.Selection.Anchor()
	if !ok {
		anchor = grid.Cell{}
	}
	target := min(max(anchor.Row+dir*max(1, v.bodyLines()-1), 0), rows-1)
	v.engine.Selection.MoveTo(target, anchor.Col)
	v.scrollIntoView(grid.Cell{Row: target, Col: anchor.Col})
}

// ── Editing ─────────────────────────────────────────────────────────────────

func (v *GridView) beginEdit(c grid.Cell) tea.Cmd {
	if !v.engine.BeginEdit(c.Row, c.Col) {
		return nil
	}
	v.engine.Selection.SelectCell(c.Row, c.Col)
	v.editor.SetValue(v.engine.Edit.Value())
	v.editor.CursorEnd()
	v.resizeEditor()
	v.scrollIntoView(c)
	return v.editor.Focus()
}

func (v *GridView) commitEdit() {
	v.engine.CommitEdit()
	v.editor.Blur()
	v.engine.Selection.UpdateOverlay()
}

func (v *GridView) updateEditor(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		v.engine.CancelEdit()
		v.editor.Blur()
		return nil
	case "enter":
		v.commitEdit()
		return nil
	case "tab", "shift+tab":
		v.commitEdit()
		v.hub.Publish(grid.Event{Kind: grid.EventKey, Key: toKeyEvent(msg)})
		return nil
	}

	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)
	v.engine.Edit.SetValue(v.editor.Value())
	v.resizeEditor()
	return cmd
}

// resizeEditor fits the editor to the edited cell and lets the row grow
// once the value wraps.
func (v *GridView) resizeEditor() {
	st, ok := v.engine.Edit.State()
	if !ok {
		return
	}
	w := max(1, v.colCols(st.Col)-1)
	v.editor.SetWidth(w)
	v.engine.Edit.UpdateRowHeight(v.linesToPx(wrappedLines(v.editor.Value(), w)), v.engine.Sizing)
	v.editor.SetHeight(v.rowLines(st.Row))
}

func wrappedLines(s string, width int) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		n += max(1, (lipgloss.Width(line)+width-1)/width)
	}
	return n
}

// ── Dialogs ─────────────────────────────────────────────────────────────────

func openDialog(d components.Dialog) tea.Cmd {
	return func() tea.Msg { return common.OpenDialogMsg{Dialog: d} }
}

func (v *GridView) openSearch() tea.Cmd {
	d := components.NewInputDialog(v.styles, "Search inventory", "serial, model, tag…", v.search, tagSearch).
		WithMessage("matches any column · empty clears")
	return openDialog(d)
}

func (v *GridView) openFilterPrompt(key string) tea.Cmd {
	hint := "values: " + strings.Join(firstN(data.UniqueValues(v.engine.Rows(), key), 5), ", ")
	d := components.NewInputDialog(v.styles, "Filter "+columnTitle(key), "value", "", tagFilterPrefix+key).
		WithMessage(ui.Truncate(hint, 50)).
		WithValidate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("enter a value to filter by")
			}
			return nil
		})
	return openDialog(d)
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func (v *GridView) handleDialog(res components.DialogResult) tea.Cmd {
	if !res.Confirmed {
		return nil
	}
	switch {
	case res.Tag == tagSearch:
		term := strings.TrimSpace(res.Value)
		if term == v.search {
			return nil
		}
		v.search = term
		v.scrollToTop()
		return v.query()
	case strings.HasPrefix(res.Tag, tagFilterPrefix):
		return v.toggleFilter(strings.TrimPrefix(res.Tag, tagFilterPrefix), strings.TrimSpace(res.Value))
	}
	return nil
}

// ── Status / help ───────────────────────────────────────────────────────────

// Status reports the grid's state for the status bar.
func (v *GridView) Status() components.StatusBarData {
	rows, _ := v.engine.Size()
	d := components.StatusBarData{
		Rows:      rows,
		Filters:   len(v.filters),
		Undo:      v.engine.History.UndoLen(),
		Redo:      v.engine.History.RedoLen(),
		Editing:   v.engine.Edit.Active(),
		Database:  v.svc.Path(),
		Selection: v.selLabel,
	}
	if k := v.sorter.Key(); k != "" {
		_, dir := v.sorter.State(k)
		d.Sort = k + " " + sortArrow(dir)
	}
	return d
}

func (v *GridView) selectionChanged() {
	b, ok := v.engine.Selection.Bounds()
	if !ok {
		v.selLabel = ""
		return
	}
	v.selLabel = cellName(b.MinRow, b.MinCol)
	if b.Rows() > 1 || b.Cols() > 1 {
		v.selLabel += fmt.Sprintf(":%s (%d)", cellName(b.MaxRow, b.MaxCol), b.Rows()*b.Cols())
	}
}

// cellName returns the spreadsheet-style name of a cell, e.g. "B3".
func cellName(row, col int) string {
	return columnLetters(col) + fmt.Sprint(row+1)
}

func columnLetters(col int) string {
	var b []byte
	for col >= 0 {
		b = append([]byte{byte('A' + col%26)}, b...)
		col = col/26 - 1
	}
	return string(b)
}

func sortArrow(d data.Direction) string {
	if d == data.Desc {
		return "↓"
	}
	return "↑"
}

func (v *GridView) ShortHelp() []components.HelpEntry {
	help := func(b key.Binding) components.HelpEntry {
		h := b.Help()
		return components.HelpEntry{Key: h.Key, Desc: h.Desc}
	}
	return []components.HelpEntry{
		help(v.keys.Edit),
		help(v.keys.Search),
		help(v.keys.FilterCell),
		help(v.keys.ClearFilters),
		help(v.keys.SortAsc),
		help(v.keys.SortDesc),
		help(v.keys.Menu),
		help(v.keys.ResetWidths),
	}
}
