// Package summary shows the results of a finished quiz.
package summary

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutor/internal/i18n"
	"github.com/abhisek/tutor/internal/router"
	"github.com/abhisek/tutor/internal/screen"
	"github.com/abhisek/tutor/internal/session"
	"github.com/abhisek/tutor/internal/ui/components"
	"github.com/abhisek/tutor/internal/ui/layout"
	"github.com/abhisek/tutor/internal/ui/theme"
)

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	ctx     context.Context
	summary session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen for sum.
func New(ctx context.Context, sum session.Summary) *SummaryScreen {
	return &SummaryScreen{ctx: ctx, summary: sum}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Session complete!"))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.Text).Render(i18n.Td(s.ctx, "SessionSummary", map[string]any{
		"Correct": sum.TotalCorrect,
		"Total":   sum.TotalQuestions,
	})))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	pct := sum.Accuracy * 100
	stats := fmt.Sprintf("Duration: %d:%02d      %s: %s      %s",
		mins, secs,
		i18n.T(s.ctx, "Accuracy"),
		theme.AccuracyColor(pct).Render(fmt.Sprintf("%.0f%%", pct)),
		i18n.Td(s.ctx, "DifficultyN", map[string]any{"Level": sum.Difficulty}),
	)
	b.WriteString(center.Foreground(theme.TextDim).Render(stats))
	b.WriteString("\n\n")

	if len(sum.TopicResults) == 0 {
		return b.String()
	}

	barWidth := min(width-8, 60)
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", barWidth))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(i18n.T(s.ctx, "Topic"))))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, tr := range sum.TopicResults {
		name := tr.Topic
		if name == "" {
			name = i18n.T(s.ctx, "Untitled")
		}
		var frac float64
		if tr.Attempted > 0 {
			frac = float64(tr.Correct) / float64(tr.Attempted)
		}
		label := fmt.Sprintf("%-18s %d/%d", truncate(name, 18), tr.Correct, tr.Attempted)
		bar := components.NewProgressBar(label, frac, true, barWidth).View()
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
