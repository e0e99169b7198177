// Package report shows a learner's progress report.
package report

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutor/internal/i18n"
	"github.com/abhisek/tutor/internal/progress"
	"github.com/abhisek/tutor/internal/screen"
	"github.com/abhisek/tutor/internal/ui/components"
	"github.com/abhisek/tutor/internal/ui/layout"
	"github.com/abhisek/tutor/internal/ui/theme"
)

type reportLoadedMsg struct {
	Report *progress.Report
	Err    error
}

// ReportScreen displays overall accuracy, per-topic accuracy weakest
// first, and the revision recommendations.
type ReportScreen struct {
	ctx     context.Context
	tracker *progress.Tracker
	user    string

	report *progress.Report
	offset int
	errMsg string
}

var _ screen.Screen = (*ReportScreen)(nil)
var _ screen.KeyHintProvider = (*ReportScreen)(nil)

// New creates a ReportScreen for user.
func New(ctx context.Context, tracker *progress.Tracker, user string) *ReportScreen {
	return &ReportScreen{ctx: ctx, tracker: tracker, user: user}
}

func (s *ReportScreen) Init() tea.Cmd {
	return func() tea.Msg {
		r, err := s.tracker.Report(s.ctx, s.user)
		return reportLoadedMsg{Report: r, Err: err}
	}
}

func (s *ReportScreen) Title() string {
	return "Progress Report"
}

func (s *ReportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.report = msg.Report
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.offset = max(0, s.offset-1)
		case "down", "j":
			if s.report != nil && s.offset < len(s.report.TopicStats)-1 {
				s.offset++
			}
		}
	}
	return s, nil
}

func (s *ReportScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render("\n\nError: " + s.errMsg)
	}
	if s.report == nil {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading report...")
	}

	r := s.report
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Bold(true).
		Render(i18n.Td(s.ctx, "ReportTitle", map[string]any{"User": s.user})))
	b.WriteString("\n\n")

	if r.Total == 0 {
		b.WriteString(center.Foreground(theme.TextDim).Italic(true).Render(i18n.T(s.ctx, "NoDataYet")))
		return b.String()
	}

	b.WriteString(center.Render(fmt.Sprintf("%s   %s: %s",
		lipgloss.NewStyle().Foreground(theme.Text).Render(i18n.Tp(s.ctx, "TotalAttempts", r.Total)),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(i18n.T(s.ctx, "Accuracy")),
		theme.AccuracyColor(r.Accuracy).Render(fmt.Sprintf("%.1f%%", r.Accuracy)),
	)))
	b.WriteString("\n\n")

	barWidth := min(width-8, 64)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
			Render(fmt.Sprintf("%-20s %8s", i18n.T(s.ctx, "Topic"), i18n.T(s.ctx, "Attempts")))))
	b.WriteString("\n")

	// Leave room for the title, totals and recommendations.
	rows := max(3, height-10-len(r.Recommendations))
	end := min(len(r.TopicStats), s.offset+rows)
	for _, ts := range r.TopicStats[s.offset:end] {
		name := ts.Topic
		if name == "" {
			name = i18n.T(s.ctx, "Untitled")
		}
		label := fmt.Sprintf("%-20s %8d", truncate(name, 20), ts.Attempts)
		bar := components.NewProgressBar(label, ts.Accuracy/100, true, barWidth).View()
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar))
		b.WriteString("\n")
	}

	if len(r.Recommendations) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(i18n.T(s.ctx, "Recommendations"))))
		b.WriteString("\n")
		for _, rec := range r.Recommendations {
			line := lipgloss.NewStyle().Width(barWidth).Foreground(theme.Text).Render("• " + rec)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
			b.WriteString("\n")
		}
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
