package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutor/internal/ui/theme"
)

const titleFull = ` ████████╗██╗   ██╗████████╗ ██████╗ ██████╗
 ╚══██╔══╝██║   ██║╚══██╔══╝██╔═══██╗██╔══██╗
    ██║   ██║   ██║   ██║   ██║   ██║██████╔╝
    ██║   ╚██████╔╝   ██║   ╚██████╔╝██║  ██║
    ╚═╝    ╚═════╝    ╚═╝    ╚═════╝ ╚═╝  ╚═╝`

const titleCompact = "T · U · T · O · R"

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	title := titleFull
	if compact {
		title = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar shows lifetime attempts, overall accuracy, the number of
// subjects in the bank and the creative submission count.
func renderStatsBar(st stats, cw int, compact bool) string {
	attemptStyle := lipgloss.NewStyle().Foreground(theme.Info).Bold(true)
	accStyle := theme.AccuracyColor(st.accuracy)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	ideaStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	acc := dim.Render("–")
	if st.attempts > 0 {
		acc = accStyle.Render(fmt.Sprintf("%.0f%%", st.accuracy))
	}

	var line string
	if compact {
		line = fmt.Sprintf("%s %s %s %s",
			attemptStyle.Render(fmt.Sprintf("✎%d", st.attempts)),
			acc,
			dim.Render(fmt.Sprintf("▤%d", st.subjects)),
			ideaStyle.Render(fmt.Sprintf("✦%d", st.ideas)),
		)
	} else {
		line = fmt.Sprintf("%s  %s  %s  %s",
			attemptStyle.Render(fmt.Sprintf("✎ %d ANSWERED", st.attempts)),
			acc+dim.Render(" ACCURACY"),
			dim.Render(fmt.Sprintf("▤ %d SUBJECTS", st.subjects)),
			ideaStyle.Render(fmt.Sprintf("✦ %d IDEAS", st.ideas)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Info).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

func centerIn(s string, cw int) string {
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(s)
}

func renderNotice(text string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ " + text)
}
