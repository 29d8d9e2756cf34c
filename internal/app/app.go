// Package app is the top-level Bubbletea model: it owns the tab bar, the
// status bar, the help overlay and the modal dialog, and routes input to the
// active view.
package app

import (
	"time"

	"github.com/Akashdeep-Patra/tabula/internal/common"
	"github.com/Akashdeep-Patra/tabula/internal/config"
	"github.com/Akashdeep-Patra/tabula/internal/ui"
	"github.com/Akashdeep-Patra/tabula/internal/ui/components"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// How long transient status messages stay up.
const (
	errorTTL = 5 * time.Second
	infoTTL  = 3 * time.Second
)

// Invalidator drops cached query results.
type Invalidator interface {
	Invalidate()
}

// widthSource is implemented by views whose column widths are persisted.
type widthSource interface {
	Widths() map[string]int
}

// Model is the top-level Bubbletea model that orchestrates tabs and views.
type Model struct {
	cfg       *config.Config
	styles    ui.Styles
	keys      KeyMap
	cache     Invalidator
	width     int
	height    int
	activeTab common.TabID
	views     map[common.TabID]common.View
	showHelp  bool
	statusMsg string
	statusErr bool
	statusExp time.Time
	dialog    *components.Dialog

	now func() time.Time
}

// New creates a new application model. cache may be nil.
func New(cfg *config.Config, views map[common.TabID]common.View, cache Invalidator) Model {
	if cfg == nil {
		cfg = &config.Config{Keys: config.DefaultKeyBindings()}
	}
	return Model{
		cfg:       cfg,
		styles:    ui.NewStyles(ui.ThemeByName(cfg.Theme)),
		keys:      NewKeyMap(cfg.Keys),
		cache:     cache,
		activeTab: common.TabInventory,
		views:     views,
		now:       time.Now,
	}
}

// Init initialises every view. There are few of them and each loads in the
// background.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, t := range common.AllTabs {
		if v, ok := m.views[t.ID]; ok {
			cmds = append(cmds, v.Init())
		}
	}
	return tea.Batch(cmds...)
}

// Layout returns the state to persist between runs.
func (m Model) Layout() config.Layout {
	l := config.Layout{ColumnWidths: map[string]int{}}
	for _, v := range m.views {
		if ws, ok := v.(widthSource); ok {
			for k, w := range ws.Widths() {
				l.ColumnWidths[k] = w
			}
		}
	}
	return l
}

// Update processes messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The dialog has exclusive input while visible; other messages still
	// reach the views.
	if m.dialog != nil && m.dialog.Visible() {
		switch msg.(type) {
		case tea.KeyMsg:
			d, cmd := m.dialog.Update(msg)
			m.dialog = &d
			return m, cmd
		case tea.MouseMsg:
			return m, nil
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, v := range m.views {
			v.SetSize(m.width, m.contentHeight())
		}
		return m, nil

	case tea.MouseMsg:
		if m.showHelp {
			return m, nil
		}
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case common.RefreshMsg:
		if m.cache != nil {
			m.cache.Invalidate()
		}
		return m, m.broadcast(msg)

	case common.ErrMsg:
		m.setStatus(msg.Err.Error(), true)
		return m, nil

	case common.InfoMsg:
		m.setStatus(msg.Text, false)
		return m, nil

	case common.SwitchTabMsg:
		m.activeTab = msg.Tab
		return m, nil

	case common.OpenDialogMsg:
		d := msg.Dialog
		m.dialog = &d
		return m, nil

	case components.DialogResult:
		m.dialog = nil
	}

	// Everything else is a view's own asynchronous result; views ignore
	// messages that are not theirs.
	return m, m.broadcast(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A view editing text gets every key.
	if v, ok := m.views[m.activeTab]; ok && v.InputCapture() {
		return m, m.forward(msg)
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Back) {
			m.showHelp = false
		}
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, common.CmdRefresh
	case key.Matches(msg, m.keys.NextTab):
		m.cycleTab(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.cycleTab(-1)
		return m, nil
	}
	for i, b := range m.keys.Tabs {
		if key.Matches(msg, b) {
			m.activeTab = common.AllTabs[i].ID
			return m, nil
		}
	}
	return m, m.forward(msg)
}

// forward hands a message to the active view.
func (m Model) forward(msg tea.Msg) tea.Cmd {
	v, ok := m.views[m.activeTab]
	if !ok {
		return nil
	}
	updated, cmd := v.Update(msg)
	m.views[m.activeTab] = updated
	return cmd
}

// broadcast hands a message to every view, in tab order.
func (m Model) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, t := range common.AllTabs {
		v, ok := m.views[t.ID]
		if !ok {
			continue
		}
		updated, cmd := v.Update(msg)
		m.views[t.ID] = updated
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Model) setStatus(text string, isErr bool) {
	ttl := infoTTL
	if isErr {
		ttl = errorTTL
	}
	m.statusMsg = text
	m.statusErr = isErr
	m.statusExp = m.now().Add(ttl)
}

// View renders the entire UI. It does no I/O.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showHelp {
		sections := components.GlobalHelpEntries()
		if v, ok := m.views[m.activeTab]; ok {
			sections[m.tabMeta().Name] = v.ShortHelp()
		}
		return components.RenderHelp(m.styles, "Keyboard Shortcuts", sections, m.width, m.height)
	}

	tabBar, _ := components.RenderTabs(m.styles, m.buildTabInfos(), m.width)

	content := ""
	if v, ok := m.views[m.activeTab]; ok {
		content = v.View()
	}
	content = lipgloss.NewStyle().Width(m.width).Height(m.contentHeight()).MaxHeight(m.contentHeight()).Render(content)

	statusBar := components.RenderStatusBar(m.styles, m.statusData(), m.width)
	screen := lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)

	if m.dialog != nil && m.dialog.Visible() {
		overlay := m.dialog.View()
		x := (m.width - lipgloss.Width(overlay)) / 2
		y := (m.height - lipgloss.Height(overlay)) / 2
		screen = ui.Overlay(screen, overlay, max(0, x), max(0, y))
	}
	return screen
}

// statusData merges the grid's state with the current transient message.
// The inventory grid reports even while another tab is active.
func (m Model) statusData() components.StatusBarData {
	var data components.StatusBarData
	for _, id := range []common.TabID{m.activeTab, common.TabInventory} {
		if r, ok := m.views[id].(common.StatusReporter); ok {
			data = r.Status()
			break
		}
	}
	if m.statusMsg != "" && m.now().Before(m.statusExp) {
		data.Message = m.statusMsg
		data.IsError = m.statusErr
	}
	return data
}

// contentHeight is the height left for the active view: the screen minus
// the tab bar and the status bar.
func (m Model) contentHeight() int {
	return max(1, m.height-components.TabBarRows-1)
}

func (m *Model) cycleTab(delta int) {
	n := len(common.AllTabs)
	m.activeTab = common.AllTabs[(m.tabIndex()+delta+n)%n].ID
}

// tabIndex returns the index of the active tab in AllTabs.
func (m Model) tabIndex() int {
	for i, t := range common.AllTabs {
		if t.ID == m.activeTab {
			return i
		}
	}
	return 0
}

func (m Model) tabMeta() common.TabMeta { return common.AllTabs[m.tabIndex()] }

// handleMouse processes mouse events: tab clicks, wheel over the tab bar,
// and click-through to the active view with Y made view-relative.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// Drags may leave the content area; the view still has to see them end.
	if msg.Action != tea.MouseActionPress {
		msg.Y = max(0, msg.Y-components.TabBarRows)
		return m, m.forward(msg)
	}
	if msg.Y >= components.TabBarRows {
		msg.Y -= components.TabBarRows
		if msg.Y >= m.contentHeight() {
			return m, nil // status bar
		}
		return m, m.forward(msg)
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.cycleTab(-1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.cycleTab(1)
	case msg.Button == tea.MouseButtonLeft:
		_, zones := components.RenderTabs(m.styles, m.buildTabInfos(), m.width)
		if i := components.HitTab(zones, msg.X); i >= 0 {
			m.activeTab = common.AllTabs[i].ID
		}
	}
	return m, nil
}

func (m Model) buildTabInfos() []components.TabInfo {
	infos := make([]components.TabInfo, len(common.AllTabs))
	for i, t := range common.AllTabs {
		infos[i] = components.TabInfo{
			Name:     t.Name,
			Icon:     t.Icon,
			Shortcut: t.Shortcut,
			Active:   t.ID == m.activeTab,
		}
	}
	return infos
}
