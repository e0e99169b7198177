// Package creative is the creative studio: an open-ended prompt, a text
// area for the answer and rubric feedback once it is submitted.
package creative

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutor/internal/creative"
	"github.com/abhisek/tutor/internal/screen"
	"github.com/abhisek/tutor/internal/ui/components"
	"github.com/abhisek/tutor/internal/ui/layout"
	"github.com/abhisek/tutor/internal/ui/theme"
)

// GeneralSubject is the menu entry for prompts not tied to a subject.
const GeneralSubject = "General"

type phase int

const (
	phaseChoose phase = iota
	phaseWriting
	phaseResult
)

// CreativeScreen walks through choosing a subject, writing and feedback.
type CreativeScreen struct {
	ctx context.Context
	svc *creative.Service

	phase   phase
	menu    components.Menu
	subject string
	prompt  string
	editor  textarea.Model
	result  *creative.Feedback
	errMsg  string
}

var (
	_ screen.Screen          = (*CreativeScreen)(nil)
	_ screen.KeyHintProvider = (*CreativeScreen)(nil)
	_ screen.EscapeHandler   = (*CreativeScreen)(nil)
)

// New creates the studio over subjects; a General entry is appended.
func New(ctx context.Context, svc *creative.Service, subjects []string) *CreativeScreen {
	s := &CreativeScreen{ctx: ctx, svc: svc}

	names := append(append([]string{}, subjects...), GeneralSubject)
	items := make([]components.MenuItem, 0, len(names))
	for _, name := range names {
		items = append(items, components.MenuItem{
			Label:  name,
			Action: func() tea.Cmd { return s.start(name) },
		})
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *CreativeScreen) Init() tea.Cmd {
	return nil
}

func (s *CreativeScreen) Title() string {
	return "Creative Studio"
}

// HandlesEscape keeps Esc inside the studio until the subject menu is
// showing.
func (s *CreativeScreen) HandlesEscape() bool {
	return s.phase != phaseChoose
}

func (s *CreativeScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseWriting:
		return []layout.KeyHint{
			{Key: "Ctrl+S", Description: "Submit"},
			{Key: "Tab", Description: "New prompt"},
			{Key: "Esc", Description: "Subjects"},
		}
	case phaseResult:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Another prompt"},
			{Key: "Esc", Description: "Subjects"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

// start draws a prompt for subject and opens an empty editor.
func (s *CreativeScreen) start(subject string) tea.Cmd {
	s.subject = subject
	s.prompt = creative.Prompt(s.ctx, subject, nil)
	s.result = nil
	s.errMsg = ""

	s.editor = textarea.New()
	s.editor.Placeholder = "Write your idea here..."
	s.editor.ShowLineNumbers = false
	s.editor.CharLimit = 4000
	s.editor.SetWidth(70)
	s.editor.SetHeight(8)
	s.phase = phaseWriting
	return s.editor.Focus()
}

func (s *CreativeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, isKey := msg.(tea.KeyMsg)

	switch s.phase {
	case phaseChoose:
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd

	case phaseWriting:
		if isKey {
			switch kmsg.String() {
			case "esc":
				s.phase = phaseChoose
				return s, nil
			case "ctrl+s":
				return s, s.submit()
			case "tab":
				s.prompt = creative.Prompt(s.ctx, s.subject, nil)
				return s, nil
			}
		}
		var cmd tea.Cmd
		s.editor, cmd = s.editor.Update(msg)
		return s, cmd

	case phaseResult:
		if isKey {
			switch kmsg.String() {
			case "esc":
				s.phase = phaseChoose
			case "enter":
				return s, s.start(s.subject)
			}
		}
	}
	return s, nil
}

func (s *CreativeScreen) submit() tea.Cmd {
	fb, err := s.svc.Submit(s.ctx, s.subject, s.prompt, s.editor.Value())
	switch {
	case errors.Is(err, creative.ErrEmptySubmission):
		s.errMsg = "Write something before submitting."
		return nil
	case err != nil:
		// The feedback is still worth showing when the save failed.
		slog.Error("save creative submission", "error", err)
		s.errMsg = "Not saved: " + err.Error()
	default:
		s.errMsg = ""
	}
	s.result = &fb
	s.phase = phaseResult
	s.editor.Blur()
	return nil
}

func (s *CreativeScreen) View(width, height int) string {
	cw := min(width-8, 72)
	block := lipgloss.NewStyle().Width(cw)

	var b strings.Builder
	switch s.phase {
	case phaseChoose:
		heading := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
			Render("Pick a subject for today's creative challenge")
		content := heading + "\n\n" + s.menu.View(components.ContentWidth(width), layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)

	case phaseWriting:
		b.WriteString(block.Foreground(theme.Accent).Bold(true).Render("✦ " + s.subject))
		b.WriteString("\n\n")
		b.WriteString(block.Foreground(theme.Text).Render(s.prompt))
		b.WriteString("\n\n")
		b.WriteString(s.editor.View())
		if s.errMsg != "" {
			b.WriteString("\n\n")
			b.WriteString(block.Foreground(theme.Error).Render(s.errMsg))
		}

	case phaseResult:
		b.WriteString(block.Foreground(theme.Success).Bold(true).Render("Submitted!"))
		b.WriteString("\n\n")
		labels := s.result.BadgeLabels(s.ctx)
		if len(labels) > 0 {
			badges := make([]string, 0, len(labels))
			for _, l := range labels {
				badges = append(badges, lipgloss.NewStyle().
					Foreground(theme.BgDark).
					Background(theme.Highlight).
					Bold(true).
					Padding(0, 1).
					Render("★ "+l))
			}
			b.WriteString(strings.Join(badges, " "))
			b.WriteString("\n\n")
		}
		for _, c := range s.result.Comments {
			b.WriteString(block.Foreground(theme.Text).Render("• " + c))
			b.WriteString("\n")
		}
		if s.errMsg != "" {
			b.WriteString("\n")
			b.WriteString(block.Foreground(theme.Error).Render(s.errMsg))
		}
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
