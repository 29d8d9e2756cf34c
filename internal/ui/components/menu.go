package components

import (
	"strings"

	"github.com/Akashdeep-Patra/tabula/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// MenuItem is one entry of a popup menu.
type MenuItem struct {
	Label    string
	Action   string
	Disabled bool
}

// Menu is a popup list of actions with a keyboard cursor.
type Menu struct {
	Items  []MenuItem
	Cursor int
}

// NewMenu creates a menu with the cursor on the first enabled item.
func NewMenu(items ...MenuItem) Menu {
	m := Menu{Items: items, Cursor: -1}
	m.Move(1)
	return m
}

// Move steps the cursor by delta, skipping disabled items and wrapping.
func (m *Menu) Move(delta int) {
	n := len(m.Items)
	if n == 0 {
		return
	}
	i := m.Cursor
	for range n {
		i = ((i+delta)%n + n) % n
		if !m.Items[i].Disabled {
			m.Cursor = i
			return
		}
	}
}

// Selected returns the item under the cursor.
func (m Menu) Selected() (MenuItem, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Items) || m.Items[m.Cursor].Disabled {
		return MenuItem{}, false
	}
	return m.Items[m.Cursor], true
}

// Width returns the rendered width in columns, border included.
func (m Menu) Width() int {
	w := 0
	for _, it := range m.Items {
		w = max(w, lipgloss.Width(it.Label))
	}
	return w + 4
}

// Height returns the rendered height in lines, border included.
func (m Menu) Height() int { return len(m.Items) + 2 }

// HitItem returns the enabled item at a position relative to the menu's
// top-left corner.
func (m Menu) HitItem(x, y int) (MenuItem, bool) {
	i := y - 1
	if x <= 0 || x >= m.Width()-1 || i < 0 || i >= len(m.Items) || m.Items[i].Disabled {
		return MenuItem{}, false
	}
	return m.Items[i], true
}

// View renders the menu.
func (m Menu) View(styles ui.Styles) string {
	inner := m.Width() - 2
	lines := make([]string, len(m.Items))
	for i, it := range m.Items {
		style := styles.MenuItem
		switch {
		case it.Disabled:
			style = style.Foreground(styles.Theme.TextSubtle)
		case i == m.Cursor:
			style = styles.MenuSelected
		}
		lines[i] = style.Width(inner).Render(it.Label)
	}
	return styles.Menu.Render(strings.Join(lines, "\n"))
}
