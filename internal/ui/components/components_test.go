package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestMultiChoiceDigitChooses(t *testing.T) {
	m := NewMultiChoice([]string{"3", "4", "5"})
	m = m.Update(keyPress('2'))

	got, ok := m.Chosen()
	if !ok || got != "2" {
		t.Fatalf("Chosen() = %q, %v; want \"2\", true", got, ok)
	}

	// Further keys are ignored once chosen.
	m = m.Update(keyPress('3'))
	if got, _ := m.Chosen(); got != "2" {
		t.Errorf("choice changed to %q after second key", got)
	}
}

func TestMultiChoiceArrowsAndEnter(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b", "c"})
	m = m.Update(specialKey(tea.KeyDown))
	m = m.Update(specialKey(tea.KeyDown))
	m = m.Update(specialKey(tea.KeyDown))
	if m.Selected != 2 {
		t.Fatalf("Selected = %d, want 2 (clamped)", m.Selected)
	}
	m = m.Update(specialKey(tea.KeyEnter))
	if got, ok := m.Chosen(); !ok || got != "3" {
		t.Errorf("Chosen() = %q, %v; want \"3\", true", got, ok)
	}
}

func TestMultiChoiceIgnoresOutOfRangeDigit(t *testing.T) {
	m := NewMultiChoice([]string{"a", "b"})
	m = m.Update(keyPress('7'))
	if _, ok := m.Chosen(); ok {
		t.Error("digit beyond the option count should not choose")
	}
}

func TestMultiChoiceRevealMarksAnswer(t *testing.T) {
	m := NewMultiChoice([]string{"Paris", "Rome"})
	m = m.Update(keyPress('2'))
	m.Reveal(" paris ")
	if m.correct != 0 {
		t.Errorf("correct = %d, want 0", m.correct)
	}
	if !strings.Contains(m.View(), "1)  Paris") {
		t.Errorf("view missing numbered option:\n%s", m.View())
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "Off", Disabled: true},
		{Label: "One"},
		{Label: "Gone", Disabled: true},
		{Label: "Two"},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyDown))
	if m.Selected != 3 {
		t.Errorf("after down = %d, want 3", m.Selected)
	}
	m, _ = m.Update(specialKey(tea.KeyDown))
	if m.Selected != 3 {
		t.Errorf("down at the end moved to %d", m.Selected)
	}
}

func TestMenuDigitActivates(t *testing.T) {
	ran := ""
	action := func(name string) func() tea.Cmd {
		return func() tea.Cmd {
			ran = name
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "Practice", Action: action("practice")},
		{Label: "Report", Action: action("report")},
	})

	m, _ = m.Update(keyPress('2'))
	if ran != "report" {
		t.Errorf("ran = %q, want report", ran)
	}
	if m.Selected != 1 {
		t.Errorf("Selected = %d, want 1", m.Selected)
	}
}

func TestTextInputNumericFilter(t *testing.T) {
	ti := NewTextInput("", true, 20)
	for _, r := range "1a/2x" {
		ti, _ = ti.Update(keyPress(r))
	}
	if got := ti.Value(); got != "1/2" {
		t.Errorf("Value() = %q, want %q", got, "1/2")
	}
}

func TestTextInputFrozenAfterSubmit(t *testing.T) {
	ti := NewTextInput("", false, 0)
	ti, _ = ti.Update(keyPress('x'))
	ti.Submit(true)
	ti, _ = ti.Update(keyPress('y'))

	if got := ti.Value(); got != "x" {
		t.Errorf("Value() = %q, want %q", got, "x")
	}
	if !ti.Submitted() {
		t.Error("Submitted() = false")
	}
	if !strings.Contains(ti.View(), "✓") {
		t.Error("view should carry the check mark")
	}
}

func TestProgressBarClamps(t *testing.T) {
	full := NewProgressBar("", 1.5, true, 20).View()
	if !strings.Contains(full, "150%") {
		// percent label is not clamped, only the fill
		t.Errorf("expected raw percent label, got %q", full)
	}
	if NewProgressBar("x", -1, false, 10).View() == "" {
		t.Error("empty render for negative percent")
	}
}

func TestContentWidthBounds(t *testing.T) {
	tests := []struct{ in, want int }{
		{10, 20},
		{50, 44},
		{200, 60},
	}
	for _, tt := range tests {
		if got := ContentWidth(tt.in); got != tt.want {
			t.Errorf("ContentWidth(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
