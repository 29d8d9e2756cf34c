package components

import (
	"github.com/Akashdeep-Patra/tabula/internal/ui"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// dialogWidth is the outer width of every dialog, border included.
const dialogWidth = 56

// DialogKind specifies the type of dialog.
type DialogKind int

const (
	DialogConfirm DialogKind = iota
	DialogInput
)

// DialogResult is sent when the dialog is dismissed. Tag tells the views
// whose dialog it was.
type DialogResult struct {
	Confirmed bool
	Value     string
	Tag       string
}

type dialogKeyMap struct {
	Accept key.Binding
	Cancel key.Binding
	Switch key.Binding
	Yes    key.Binding
	No     key.Binding
}

var dialogKeys = dialogKeyMap{
	Accept: key.NewBinding(key.WithKeys("enter")),
	Cancel: key.NewBinding(key.WithKeys("esc")),
	Switch: key.NewBinding(key.WithKeys("tab", "shift+tab", "left", "right", "h", "l")),
	Yes:    key.NewBinding(key.WithKeys("y", "Y")),
	No:     key.NewBinding(key.WithKeys("n", "N")),
}

// Dialog is a modal yes/no question or a one-line text prompt.
type Dialog struct {
	Kind    DialogKind
	Title   string
	Message string
	Tag     string

	input    textinput.Model
	validate func(string) error
	problem  string
	onNo     bool
	styles   ui.Styles
	visible  bool
}

// NewConfirmDialog creates a Yes/No confirmation dialog with Yes focused.
func NewConfirmDialog(styles ui.Styles, title, message, tag string) Dialog {
	return Dialog{
		Kind:    DialogConfirm,
		Title:   title,
		Message: message,
		Tag:     tag,
		styles:  styles,
		visible: true,
	}
}

// NewInputDialog creates a text prompt pre-filled with value.
func NewInputDialog(styles ui.Styles, title, placeholder, value, tag string) Dialog {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.Width = dialogWidth - 10
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()
	return Dialog{
		Kind:    DialogInput,
		Title:   title,
		Tag:     tag,
		input:   ti,
		styles:  styles,
		visible: true,
	}
}

// WithMessage sets the question of a confirmation, or the hint line under a
// prompt.
func (d Dialog) WithMessage(msg string) Dialog {
	d.Message = msg
	return d
}

// WithValidate makes a prompt refuse to close on enter while fn rejects the
// text. The error is shown in place of the hint.
func (d Dialog) WithValidate(fn func(string) error) Dialog {
	d.validate = fn
	return d
}

// Value returns the current input text.
func (d Dialog) Value() string { return d.input.Value() }

// Visible returns whether the dialog is showing.
func (d Dialog) Visible() bool { return d.visible }

// Problem returns the validation error currently shown, if any.
func (d Dialog) Problem() string { return d.problem }

func (d Dialog) close(confirmed bool) (Dialog, tea.Cmd) {
	d.visible = false
	res := DialogResult{Confirmed: confirmed, Tag: d.Tag}
	if d.Kind == DialogInput {
		res.Value = d.input.Value()
	}
	return d, func() tea.Msg { return res }
}

// Update handles key events for the dialog.
func (d Dialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.visible {
		return d, nil
	}
	km, isKey := msg.(tea.KeyMsg)

	if d.Kind == DialogConfirm {
		if !isKey {
			return d, nil
		}
		switch {
		case key.Matches(km, dialogKeys.Cancel), key.Matches(km, dialogKeys.No):
			return d.close(false)
		case key.Matches(km, dialogKeys.Yes):
			return d.close(true)
		case key.Matches(km, dialogKeys.Accept):
			return d.close(!d.onNo)
		case key.Matches(km, dialogKeys.Switch):
			d.onNo = !d.onNo
		}
		return d, nil
	}

	if isKey {
		switch {
		case key.Matches(km, dialogKeys.Cancel):
			return d.close(false)
		case key.Matches(km, dialogKeys.Accept):
			if d.validate != nil {
				if err := d.validate(d.input.Value()); err != nil {
					d.problem = err.Error()
					return d, nil
				}
			}
			return d.close(true)
		}
	}

	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	if isKey {
		d.problem = ""
	}
	return d, cmd
}

// View renders the dialog.
func (d Dialog) View() string {
	if !d.visible {
		return ""
	}
	t := d.styles.Theme
	title := lipgloss.NewStyle().Foreground(t.Text).Bold(true).Render(d.Title)

	var body string
	switch d.Kind {
	case DialogConfirm:
		on := lipgloss.NewStyle().Foreground(t.TextInverse).Background(t.Primary).Bold(true)
		off := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		yes, no := on, off
		if d.onNo {
			yes, no = off, on
		}
		buttons := lipgloss.JoinHorizontal(lipgloss.Top, yes.Render("  Yes  "), "  ", no.Render("  No   "))
		body = lipgloss.NewStyle().Foreground(t.TextMuted).Render(d.Message) + "\n\n" + buttons

	default:
		body = d.input.View()
		switch {
		case d.problem != "":
			body += "\n\n" + lipgloss.NewStyle().Foreground(t.Error).Render(d.problem)
		case d.Message != "":
			body += "\n\n" + lipgloss.NewStyle().Foreground(t.TextSubtle).Render(d.Message)
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Primary).
		Padding(1, 3).
		Width(dialogWidth).
		Render(title + "\n\n" + body)
}
