package views

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Akashdeep-Patra/tabula/internal/common"
	"github.com/Akashdeep-Patra/tabula/internal/data"
	"github.com/Akashdeep-Patra/tabula/internal/ui"
	"github.com/Akashdeep-Patra/tabula/internal/ui/components"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	tagDeleteLocation = "locations:delete:"
	storeTimeout      = 5 * time.Second
	// Lines above the list: title and a blank line.
	locationsHeader = 2
)

// LocationView manages the catalogue of locations.
type LocationView struct {
	store     data.LocationStore
	styles    ui.Styles
	width     int
	height    int
	locations []data.Location
	cursor    int
	offset    int

	// Input mode for adding a location.
	inputMode bool
	input     textinput.Model
}

type locationsMsg struct{ locations []data.Location }

var _ common.View = (*LocationView)(nil)

// NewLocationView creates a new LocationView.
func NewLocationView(store data.LocationStore, styles ui.Styles) *LocationView {
	ti := textinput.New()
	ti.CharLimit = 100
	ti.Width = 40
	ti.Placeholder = "Building 4, floor 2"
	return &LocationView{store: store, styles: styles, input: ti}
}

func (v *LocationView) Init() tea.Cmd { return v.refresh() }

func (v *LocationView) SetSize(w, h int) { v.width = w; v.height = h }

func (v *LocationView) InputCapture() bool { return v.inputMode }

func (v *LocationView) refresh() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		locs, err := v.store.Locations(ctx)
		if err != nil {
			return common.ErrMsg{Err: fmt.Errorf("loading locations: %w", err)}
		}
		return locationsMsg{locations: locs}
	}
}

func (v *LocationView) Update(msg tea.Msg) (common.View, tea.Cmd) {
	switch msg := msg.(type) {
	case locationsMsg:
		v.locations = msg.locations
		if v.cursor >= len(v.locations) {
			v.cursor = max(0, len(v.locations)-1)
		}
		return v, nil
	case common.RefreshMsg:
		return v, v.refresh()
	case components.DialogResult:
		return v, v.handleDialog(msg)
	case tea.MouseMsg:
		return v.handleMouse(msg)

	case tea.KeyMsg:
		if v.inputMode {
			return v.updateInput(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *LocationView) handleMouse(msg tea.MouseMsg) (common.View, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		v.move(-1)
	case tea.MouseButtonWheelDown:
		v.move(1)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress || v.inputMode {
			break
		}
		idx := v.offset + msg.Y - locationsHeader
		if idx >= 0 && idx < len(v.locations) {
			v.cursor = idx
		}
	}
	return v, nil
}

func (v *LocationView) move(delta int) {
	if len(v.locations) == 0 {
		return
	}
	v.cursor = min(max(v.cursor+delta, 0), len(v.locations)-1)
}

func (v *LocationView) updateNormal(msg tea.KeyMsg) (common.View, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		v.move(1)
	case "k", "up":
		v.move(-1)
	case "g", "home":
		v.cursor = 0
	case "G", "end":
		v.cursor = max(0, len(v.locations)-1)
	case "enter": // Show its assets in the grid.
		if l, ok := v.current(); ok {
			return v, tea.Batch(
				func() tea.Msg { return common.ApplyFilterMsg{Key: "location", Value: l.Name} },
				func() tea.Msg { return common.SwitchTabMsg{Tab: common.TabInventory} },
			)
		}
	case "n": // New location
		v.inputMode = true
		v.input.Reset()
		return v, v.input.Focus()
	case "D": // Delete
		if l, ok := v.current(); ok {
			d := components.NewConfirmDialog(v.styles, "Delete location",
				fmt.Sprintf("Remove %q from the catalogue? Assets keep their value.", l.Name),
				tagDeleteLocation+strconv.FormatInt(l.ID, 10))
			return v, func() tea.Msg { return common.OpenDialogMsg{Dialog: d} }
		}
	}
	return v, nil
}

func (v *LocationView) updateInput(msg tea.KeyMsg) (common.View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.inputMode = false
		v.input.Blur()
		return v, nil
	case "enter":
		name := strings.TrimSpace(v.input.Value())
		v.inputMode = false
		v.input.Blur()
		if name == "" {
			return v, nil
		}
		return v, v.addLocation(name)
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *LocationView) handleDialog(res components.DialogResult) tea.Cmd {
	raw, ok := strings.CutPrefix(res.Tag, tagDeleteLocation)
	if !ok || !res.Confirmed {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return v.deleteLocation(id)
}

func (v *LocationView) addLocation(name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		err := v.store.AddLocation(ctx, name)
		if errors.Is(err, data.ErrDuplicate) {
			return common.ErrMsg{Err: fmt.Errorf("%q is already in the catalogue", name)}
		}
		if err != nil {
			return common.ErrMsg{Err: fmt.Errorf("adding %q: %w", name, err)}
		}
		return common.CmdRefresh()
	}
}

func (v *LocationView) deleteLocation(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := v.store.DeleteLocation(ctx, id); err != nil {
			return common.ErrMsg{Err: fmt.Errorf("deleting location: %w", err)}
		}
		return common.CmdRefresh()
	}
}

func (v *LocationView) View() string {
	if v.inputMode {
		return v.viewInput()
	}
	return v.viewList()
}

func (v *LocationView) viewList() string {
	t := v.styles.Theme
	if len(v.locations) == 0 {
		return ui.PlaceCentre(v.width, v.height,
			lipgloss.NewStyle().Foreground(t.TextMuted).Render("No locations yet · n to add one"))
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(t.Primary).Bold(true).
		Render(fmt.Sprintf("  Locations (%d)", len(v.locations))) + "\n\n")

	// Keep the cursor inside the visible window; one line is the footer.
	visible := max(1, v.height-locationsHeader-2)
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+visible {
		v.offset = v.cursor - visible + 1
	}
	end := min(len(v.locations), v.offset+visible)

	for i := v.offset; i < end; i++ {
		name := ui.Truncate(v.locations[i].Name, max(10, v.width-6))
		if i == v.cursor {
			b.WriteString(v.styles.ListSelected.Render("▸ "+name) + "\n")
		} else {
			b.WriteString(v.styles.ListItem.Render(name) + "\n")
		}
	}

	b.WriteString("\n" + v.styles.Muted.Render("  enter show assets  n new  D delete"))
	return b.String()
}

func (v *LocationView) viewInput() string {
	t := v.styles.Theme
	titleStr := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render("  Add Location")
	hint := v.styles.Muted.Render("  enter to confirm | esc to cancel")
	return lipgloss.JoinVertical(lipgloss.Left, titleStr, "", "  "+v.input.View(), "", hint)
}

func (v *LocationView) current() (data.Location, bool) {
	if v.cursor < 0 || v.cursor >= len(v.locations) {
		return data.Location{}, false
	}
	return v.locations[v.cursor], true
}

func (v *LocationView) ShortHelp() []components.HelpEntry {
	return []components.HelpEntry{
		{Key: "enter", Desc: "Show assets at location"},
		{Key: "n", Desc: "New location"},
		{Key: "D", Desc: "Delete location"},
	}
}
