package components

import (
	"errors"
	"strings"
	"testing"

	"github.com/Akashdeep-Patra/tabula/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

func TestMenuCursorSkipsDisabled(t *testing.T) {
	m := NewMenu(
		MenuItem{Label: "Edit", Action: "edit"},
		MenuItem{Label: "Paste", Action: "paste", Disabled: true},
		MenuItem{Label: "Copy", Action: "copy"},
	)
	if it, _ := m.Selected(); it.Action != "edit" {
		t.Fatalf("initial = %q, want edit", it.Action)
	}
	m.Move(1)
	if it, _ := m.Selected(); it.Action != "copy" {
		t.Fatalf("after down = %q, want copy", it.Action)
	}
	m.Move(1)
	if it, _ := m.Selected(); it.Action != "edit" {
		t.Fatalf("wrap = %q, want edit", it.Action)
	}
	m.Move(-1)
	if it, _ := m.Selected(); it.Action != "copy" {
		t.Fatalf("up wrap = %q, want copy", it.Action)
	}
}

func TestMenuHitItem(t *testing.T) {
	m := NewMenu(
		MenuItem{Label: "Sort ascending", Action: "asc"},
		MenuItem{Label: "Clear", Action: "clear", Disabled: true},
	)
	if m.Width() != len("Sort ascending")+4 || m.Height() != 4 {
		t.Fatalf("size = %dx%d", m.Width(), m.Height())
	}
	if it, ok := m.HitItem(2, 1); !ok || it.Action != "asc" {
		t.Errorf("HitItem(2,1) = %v %v", it, ok)
	}
	if _, ok := m.HitItem(2, 2); ok {
		t.Error("disabled item should not be hit")
	}
	if _, ok := m.HitItem(0, 1); ok {
		t.Error("border should not be hit")
	}
	if _, ok := m.HitItem(2, 0); ok {
		t.Error("top border should not be hit")
	}
}

func TestMenuViewHeight(t *testing.T) {
	m := NewMenu(MenuItem{Label: "a"}, MenuItem{Label: "b"})
	if got := strings.Count(m.View(ui.DefaultStyles()), "\n") + 1; got != m.Height() {
		t.Errorf("rendered %d lines, want %d", got, m.Height())
	}
}

func TestRenderChipsZones(t *testing.T) {
	styles := ui.DefaultStyles()
	line, zones := RenderChips(styles, "dell", []string{"location:HQ", "asset_type:Laptop"}, 200)
	if line == "" {
		t.Fatal("expected chips")
	}
	if len(zones) != 3 || !zones[0].Search || zones[1].Filter != "location:HQ" {
		t.Fatalf("zones = %+v", zones)
	}
	for i := 1; i < len(zones); i++ {
		if zones[i].Start <= zones[i-1].End-1 {
			t.Errorf("zones overlap: %+v", zones)
		}
	}
	z, ok := HitChip(zones, zones[2].Start)
	if !ok || z.Filter != "asset_type:Laptop" {
		t.Errorf("HitChip = %+v %v", z, ok)
	}
	if _, ok := HitChip(zones, zones[2].End+5); ok {
		t.Error("hit past the last chip")
	}

	if line, zones := RenderChips(styles, "", nil, 80); line != "" || zones != nil {
		t.Error("no chips expected without search or filters")
	}
}

func TestRenderChipsOverflow(t *testing.T) {
	filters := []string{"location:Alpha", "location:Bravo", "location:Charlie", "location:Delta"}
	line, zones := RenderChips(ui.DefaultStyles(), "", filters, 40)
	if len(zones) >= len(filters) {
		t.Fatalf("expected overflow, got %d zones", len(zones))
	}
	if !strings.Contains(line, "+") {
		t.Errorf("overflow marker missing: %q", line)
	}
}

func TestRenderTabsZones(t *testing.T) {
	tabs := []TabInfo{{Name: "Inventory", Icon: "▦", Active: true}, {Name: "Locations", Icon: "⌂"}}
	out, zones := RenderTabs(ui.DefaultStyles(), tabs, 80)
	if got := strings.Count(out, "\n") + 1; got != TabBarRows {
		t.Errorf("tab bar is %d lines, want %d", got, TabBarRows)
	}
	if len(zones) != 2 || zones[0].Start != 1 || zones[1].Start != zones[0].End {
		t.Fatalf("zones = %+v", zones)
	}
	if HitTab(zones, zones[1].Start) != 1 || HitTab(zones, 0) != -1 {
		t.Error("HitTab mismatch")
	}
}

func TestRenderScrollbar(t *testing.T) {
	styles := ui.DefaultStyles()
	if RenderScrollbar(styles, 10, 100, 200, 0) != "" {
		t.Error("content that fits needs no scrollbar")
	}
	bar := RenderScrollbar(styles, 10, 1000, 100, 900)
	lines := strings.Split(bar, "\n")
	if len(lines) != 10 {
		t.Fatalf("scrollbar is %d lines", len(lines))
	}
	if !strings.Contains(lines[9], "█") {
		t.Error("thumb should sit at the bottom when scrolled to the end")
	}
	if strings.Contains(lines[0], "█") {
		t.Error("thumb should not be at the top when scrolled to the end")
	}
}

func TestStatusBarMessage(t *testing.T) {
	out := RenderStatusBar(ui.DefaultStyles(), StatusBarData{Rows: 3, Message: "saved"}, 80)
	if !strings.Contains(out, "3 rows") || !strings.Contains(out, "saved") {
		t.Errorf("status bar = %q", out)
	}
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestConfirmDialogKeys(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want bool
	}{
		{"y confirms", []tea.KeyMsg{runes("y")}, true},
		{"n declines", []tea.KeyMsg{runes("n")}, false},
		{"esc declines", []tea.KeyMsg{{Type: tea.KeyEsc}}, false},
		{"enter takes yes", []tea.KeyMsg{{Type: tea.KeyEnter}}, true},
		{"tab then enter takes no", []tea.KeyMsg{{Type: tea.KeyTab}, {Type: tea.KeyEnter}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewConfirmDialog(ui.DefaultStyles(), "Delete", "sure?", "x")
			var cmd tea.Cmd
			for _, k := range tt.keys {
				d, cmd = d.Update(k)
			}
			if d.Visible() {
				t.Fatal("dialog still visible")
			}
			res := cmd().(DialogResult)
			if res.Confirmed != tt.want || res.Tag != "x" {
				t.Errorf("result = %#v", res)
			}
		})
	}
}

func TestInputDialogValidate(t *testing.T) {
	d := NewInputDialog(ui.DefaultStyles(), "Filter", "value", "", "f").
		WithMessage("values: York").
		WithValidate(func(s string) error {
			if s == "" {
				return errors.New("enter a value")
			}
			return nil
		})

	d, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || !d.Visible() {
		t.Fatal("empty value closed the dialog")
	}
	if d.Problem() != "enter a value" || !strings.Contains(d.View(), "enter a value") {
		t.Errorf("problem not shown: %q", d.Problem())
	}

	d, _ = d.Update(runes("Hull"))
	if d.Problem() != "" {
		t.Error("typing did not clear the problem")
	}
	d, cmd = d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if d.Visible() {
		t.Fatal("valid value kept the dialog open")
	}
	if res := cmd().(DialogResult); !res.Confirmed || res.Value != "Hull" {
		t.Errorf("result = %#v", res)
	}
}
