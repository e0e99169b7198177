// Package subjects lets the learner choose what to practice.
package subjects

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutor/internal/router"
	"github.com/abhisek/tutor/internal/screen"
	"github.com/abhisek/tutor/internal/ui/components"
	"github.com/abhisek/tutor/internal/ui/layout"
	"github.com/abhisek/tutor/internal/ui/theme"
)

// SubjectScreen lists the subjects of the bank. Choosing one replaces the
// picker with the screen built by start.
type SubjectScreen struct {
	subjects []string
	menu     components.Menu
}

var _ screen.Screen = (*SubjectScreen)(nil)
var _ screen.KeyHintProvider = (*SubjectScreen)(nil)

// New creates the picker.
func New(subjects []string, start func(subject string) screen.Screen) *SubjectScreen {
	items := make([]components.MenuItem, 0, len(subjects))
	for _, name := range subjects {
		items = append(items, components.MenuItem{
			Label: name,
			Action: func() tea.Cmd {
				next := start(name)
				return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			},
		})
	}
	return &SubjectScreen{subjects: subjects, menu: components.NewMenu(items)}
}

func (s *SubjectScreen) Init() tea.Cmd {
	return nil
}

func (s *SubjectScreen) Title() string {
	return "Choose a Subject"
}

func (s *SubjectScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SubjectScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SubjectScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	heading := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Bold(true).
		Render("What would you like to practice?")

	content := strings.Join([]string{heading, s.menu.View(cw, layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight))}, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
