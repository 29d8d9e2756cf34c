package grid

// DefaultMenuWidth is the estimated context menu width used to decide whether
// the menu opens to the left of the pointer.
const DefaultMenuWidth = 130

// ContextMenu is the position and target of the cell context menu.
type ContextMenu struct {
	Visible bool
	X       int
	Y       int
	Row     int
	Col     int
	Width   int
}

// Open shows the menu at (x, y) for a cell. It flips to the left of the
// pointer when it would overflow screenWidth.
func (m *ContextMenu) Open(x, y int, cell Cell, screenWidth int) {
	w := m.Width
	if w <= 0 {
		w = DefaultMenuWidth
	}
	m.Visible = true
	if x+w > screenWidth {
		m.X = max(0, x-w)
	} else {
		m.X = x
	}
	m.Y = y
	m.Row = cell.Row
	m.Col = cell.Col
}

// Close hides the menu.
func (m *ContextMenu) Close() { m.Visible = false }

// Target returns the cell the menu was opened on.
func (m *ContextMenu) Target() Cell { return Cell{Row: m.Row, Col: m.Col} }

// HeaderMenu is the column header menu (sort, filter).
type HeaderMenu struct {
	Visible bool
	Key     string
	X       int
	Y       int
}

// Open shows the menu for a column.
func (m *HeaderMenu) Open(key string, x, y int) {
	m.Visible = true
	m.Key = key
	m.X = x
	m.Y = y
}

// Close hides the menu.
func (m *HeaderMenu) Close() {
	m.Visible = false
	m.Key = ""
}

// HandleOutsideClick closes the menu on a click anywhere but the menu itself.
func (m *HeaderMenu) HandleOutsideClick() {
	if m.Visible {
		m.Close()
	}
}
