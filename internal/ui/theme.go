package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds all colours for the application.
type Theme struct {
	Name string

	Bg            lipgloss.Color
	Surface       lipgloss.Color
	SurfaceHover  lipgloss.Color
	Border        lipgloss.Color
	BorderFocused lipgloss.Color

	Text        lipgloss.Color
	TextMuted   lipgloss.Color
	TextSubtle  lipgloss.Color
	TextInverse lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// Grid
	RowAlt      lipgloss.Color
	Selection   lipgloss.Color
	CopyMarquee lipgloss.Color
	Editing     lipgloss.Color
}

// DarkTheme returns the default dark theme (Catppuccin Mocha).
func DarkTheme() Theme {
	return Theme{
		Name:          "dark",
		Bg:            lipgloss.Color("#1e1e2e"),
		Surface:       lipgloss.Color("#282840"),
		SurfaceHover:  lipgloss.Color("#313152"),
		Border:        lipgloss.Color("#3b3b5c"),
		BorderFocused: lipgloss.Color("#7c7cf0"),

		Text:        lipgloss.Color("#cdd6f4"),
		TextMuted:   lipgloss.Color("#9399b2"),
		TextSubtle:  lipgloss.Color("#6c7086"),
		TextInverse: lipgloss.Color("#1e1e2e"),

		Primary:   lipgloss.Color("#89b4fa"),
		Secondary: lipgloss.Color("#b4befe"),
		Accent:    lipgloss.Color("#f5c2e7"),

		Success: lipgloss.Color("#a6e3a1"),
		Warning: lipgloss.Color("#f9e2af"),
		Error:   lipgloss.Color("#f38ba8"),
		Info:    lipgloss.Color("#89b4fa"),

		RowAlt:      lipgloss.Color("#232336"),
		Selection:   lipgloss.Color("#3d4a7a"),
		CopyMarquee: lipgloss.Color("#a6e3a1"),
		Editing:     lipgloss.Color("#45475a"),
	}
}

// LightTheme returns the light theme (Catppuccin Latte).
func LightTheme() Theme {
	return Theme{
		Name:          "light",
		Bg:            lipgloss.Color("#eff1f5"),
		Surface:       lipgloss.Color("#e6e9ef"),
		SurfaceHover:  lipgloss.Color("#dce0e8"),
		Border:        lipgloss.Color("#bcc0cc"),
		BorderFocused: lipgloss.Color("#7287fd"),

		Text:        lipgloss.Color("#4c4f69"),
		TextMuted:   lipgloss.Color("#6c6f85"),
		TextSubtle:  lipgloss.Color("#9ca0b0"),
		TextInverse: lipgloss.Color("#eff1f5"),

		Primary:   lipgloss.Color("#1e66f5"),
		Secondary: lipgloss.Color("#7287fd"),
		Accent:    lipgloss.Color("#ea76cb"),

		Success: lipgloss.Color("#40a02b"),
		Warning: lipgloss.Color("#df8e1d"),
		Error:   lipgloss.Color("#d20f39"),
		Info:    lipgloss.Color("#1e66f5"),

		RowAlt:      lipgloss.Color("#e9ecf2"),
		Selection:   lipgloss.Color("#c6d3f7"),
		CopyMarquee: lipgloss.Color("#40a02b"),
		Editing:     lipgloss.Color("#ccd0da"),
	}
}

// ThemeByName resolves a configured theme name. Unknown names fall back to
// the dark theme.
func ThemeByName(name string) Theme {
	if strings.EqualFold(name, "light") {
		return LightTheme()
	}
	return DarkTheme()
}

// Styles holds pre-computed lipgloss styles derived from a Theme.
type Styles struct {
	Theme Theme

	// Layout
	StatusBar lipgloss.Style
	HelpBar   lipgloss.Style

	// List items
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style
	ListDimmed   lipgloss.Style

	// Text
	Title   lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	KeyBind lipgloss.Style
	KeyDesc lipgloss.Style

	// Grid
	Header       lipgloss.Style
	HeaderSorted lipgloss.Style
	RowNumber    lipgloss.Style
	Cell         lipgloss.Style
	CellAlt      lipgloss.Style
	CellSelected lipgloss.Style
	CellCopied   lipgloss.Style
	CellEditing  lipgloss.Style
	GridBorder   lipgloss.Style

	// Menus and chips
	Menu         lipgloss.Style
	MenuItem     lipgloss.Style
	MenuSelected lipgloss.Style
	Chip         lipgloss.Style
	ChipSearch   lipgloss.Style
}

// NewStyles builds all styles from the given theme.
func NewStyles(t Theme) Styles {
	s := Styles{Theme: t}

	s.StatusBar = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Padding(0, 1)
	s.HelpBar = lipgloss.NewStyle().Foreground(t.TextSubtle).Padding(0, 1)

	s.ListItem = lipgloss.NewStyle().Foreground(t.Text).PaddingLeft(2)
	s.ListSelected = lipgloss.NewStyle().Foreground(t.Text).Background(t.SurfaceHover).Bold(true).PaddingLeft(1)
	s.ListDimmed = lipgloss.NewStyle().Foreground(t.TextSubtle).PaddingLeft(2)

	s.Title = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.Body = lipgloss.NewStyle().Foreground(t.Text)
	s.Muted = lipgloss.NewStyle().Foreground(t.TextMuted)
	s.Bold = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.KeyBind = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	s.KeyDesc = lipgloss.NewStyle().Foreground(t.TextMuted)

	s.Header = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	s.HeaderSorted = lipgloss.NewStyle().Foreground(t.Primary).Background(t.Surface).Bold(true)
	s.RowNumber = lipgloss.NewStyle().Foreground(t.TextSubtle).Align(lipgloss.Right)
	s.Cell = lipgloss.NewStyle().Foreground(t.Text)
	s.CellAlt = lipgloss.NewStyle().Foreground(t.Text).Background(t.RowAlt)
	s.CellSelected = lipgloss.NewStyle().Foreground(t.Text).Background(t.Selection)
	s.CellCopied = lipgloss.NewStyle().Foreground(t.CopyMarquee).Underline(true)
	s.CellEditing = lipgloss.NewStyle().Foreground(t.Text).Background(t.Editing)
	s.GridBorder = lipgloss.NewStyle().Foreground(t.Border)

	s.Menu = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.BorderFocused).Background(t.Surface)
	s.MenuItem = lipgloss.NewStyle().Foreground(t.Text).Background(t.Surface).Padding(0, 1)
	s.MenuSelected = lipgloss.NewStyle().Foreground(t.TextInverse).Background(t.Primary).Padding(0, 1)
	s.Chip = lipgloss.NewStyle().Foreground(t.TextInverse).Background(t.Secondary).Padding(0, 1)
	s.ChipSearch = lipgloss.NewStyle().Foreground(t.TextInverse).Background(t.Accent).Padding(0, 1)

	return s
}

// DefaultStyles returns styles using the dark theme.
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}
