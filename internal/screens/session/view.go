package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutor/internal/i18n"
	"github.com/abhisek/tutor/internal/ui/theme"
)

func centered(width int) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
}

// renderQuestionView renders the info line, the question and its input.
func (s *SessionScreen) renderQuestionView(width int) string {
	q := s.question
	cfg := s.state.Config()

	var b strings.Builder

	topic := q.Topic
	if topic == "" {
		topic = cfg.Subject
	}
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  Topic: " + topic)

	mins := int(s.elapsed.Minutes())
	secs := int(s.elapsed.Seconds()) % 60
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s  %s %d  %s %d:%02d",
			i18n.Td(s.ctx, "QuestionN", map[string]any{"N": s.state.Asked() + 1, "Total": cfg.Limit}),
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			s.state.Correct(),
			lipgloss.NewStyle().Foreground(theme.Accent).Render("⏱"),
			mins, secs,
		))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(0, width-4))))
	b.WriteString("\n\n")

	b.WriteString(centered(width).
		Foreground(theme.Text).
		Bold(true).
		Render(lipgloss.NewStyle().Width(min(width-8, 70)).Render(q.Text)))
	b.WriteString("\n\n")

	if s.mcActive {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View()))
		b.WriteString(centered(width).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("\nSelect (1-%d) or use arrows + Enter", len(q.Options))))
	} else {
		b.WriteString(centered(width).Render("Answer: " + s.input.View()))
	}
	return b.String()
}

// renderFeedback shows the verdict, the explanation for a wrong answer
// and the difficulty the selector moved to.
func (s *SessionScreen) renderFeedback(width int) string {
	fb := s.feedback

	var b strings.Builder
	b.WriteString("\n")

	if s.mcActive {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View()))
		b.WriteString("\n")
	}

	if fb.Correct {
		b.WriteString(centered(width).Foreground(theme.Success).Bold(true).
			Render(i18n.T(s.ctx, "Correct")))
	} else {
		b.WriteString(centered(width).Foreground(theme.Error).Bold(true).
			Render(i18n.Td(s.ctx, "Incorrect", map[string]any{"Answer": fb.Canonical})))
		b.WriteString("\n\n")
		exp := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text).
			Render(fb.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
	}
	b.WriteString("\n\n")

	b.WriteString(centered(width).Foreground(theme.Accent).
		Render(i18n.Td(s.ctx, "DifficultyN", map[string]any{"Level": fb.Difficulty})))
	b.WriteString("\n\n")

	if s.saveErr != "" {
		b.WriteString(centered(width).Foreground(theme.Error).
			Render("Progress not saved: " + s.saveErr))
		b.WriteString("\n\n")
	}

	b.WriteString(centered(width).Foreground(theme.TextDim).
		Render("Press any key to continue..."))
	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width).Foreground(theme.Text).Bold(true).Render("End session early?"))
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.TextDim).Render("Answers so far are already saved."))
	b.WriteString("\n\n")
	b.WriteString(centered(width).Foreground(theme.Success).Render("[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.Primary).Render("[N] No, keep going"))
	return b.String()
}

func renderLoading(width int) string {
	return centered(width).Foreground(theme.TextDim).Render("\n\n\n  Preparing your session...")
}

func renderError(width int, errMsg string) string {
	return centered(width).Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  Press any key to go back.", errMsg))
}
