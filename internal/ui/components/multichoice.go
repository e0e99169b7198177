package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutor/internal/ui/theme"
)

// MultiChoice lists the options of a multiple-choice question. Options
// are numbered from 1; a digit key or Enter on the highlighted option
// chooses one.
type MultiChoice struct {
	Options  []string
	Selected int

	chosen  int
	correct int
}

// NewMultiChoice creates a selector over options.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options, chosen: -1, correct: -1}
}

// Update moves the highlight and records a choice. It does nothing once
// an option was chosen.
func (m MultiChoice) Update(msg tea.Msg) MultiChoice {
	if m.chosen >= 0 {
		return m
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		if len(m.Options) > 0 {
			m.chosen = m.Selected
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if idx := int(key[0] - '1'); idx < len(m.Options) {
				m.Selected = idx
				m.chosen = idx
			}
		}
	}
	return m
}

// Chosen returns the 1-based number of the chosen option as the answer
// string, and false until a choice is made.
func (m MultiChoice) Chosen() (string, bool) {
	if m.chosen < 0 {
		return "", false
	}
	return fmt.Sprintf("%d", m.chosen+1), true
}

// Reveal marks the option whose text equals answer (ignoring case) as
// the correct one.
func (m *MultiChoice) Reveal(answer string) {
	for i, opt := range m.Options {
		if strings.EqualFold(strings.TrimSpace(opt), strings.TrimSpace(answer)) {
			m.correct = i
			return
		}
	}
}

// View renders the numbered options.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && m.chosen < 0 {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		var style lipgloss.Style
		switch {
		case m.chosen >= 0 && i == m.correct:
			style = theme.Correct
		case m.chosen >= 0 && i == m.chosen:
			style = theme.Incorrect
		case m.chosen >= 0:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		default:
			style = lipgloss.NewStyle().Foreground(theme.Text)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
