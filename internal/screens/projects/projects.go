// Package projects lists the guided projects grouped by subject.
package projects

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutor/internal/project"
	"github.com/abhisek/tutor/internal/router"
	"github.com/abhisek/tutor/internal/screen"
	"github.com/abhisek/tutor/internal/ui/components"
	"github.com/abhisek/tutor/internal/ui/layout"
	"github.com/abhisek/tutor/internal/ui/theme"
)

type rowKind int

const (
	rowSubjectHeader rowKind = iota
	rowProject
)

type row struct {
	kind     rowKind
	subject  string
	template project.Template
}

type progressLoadedMsg struct {
	completion map[string]float64
}

// ProjectsScreen displays every project template organized by subject.
type ProjectsScreen struct {
	ctx          context.Context
	hub          *project.Hub
	rows         []row
	cursor       int
	scrollOffset int
	completion   map[string]float64
}

var (
	_ screen.Screen          = (*ProjectsScreen)(nil)
	_ screen.KeyHintProvider = (*ProjectsScreen)(nil)
	_ screen.Refresher       = (*ProjectsScreen)(nil)
)

// New creates a ProjectsScreen over hub.
func New(ctx context.Context, hub *project.Hub) *ProjectsScreen {
	var rows []row
	seen := map[string]bool{}
	templates := project.Templates()
	for _, tpl := range templates {
		if seen[tpl.Subject] {
			continue
		}
		seen[tpl.Subject] = true
		rows = append(rows, row{kind: rowSubjectHeader, subject: tpl.Subject})
		for _, t := range templates {
			if t.Subject == tpl.Subject {
				rows = append(rows, row{kind: rowProject, subject: t.Subject, template: t})
			}
		}
	}

	s := &ProjectsScreen{ctx: ctx, hub: hub, rows: rows, completion: map[string]float64{}}
	for i, r := range s.rows {
		if r.kind == rowProject {
			s.cursor = i
			break
		}
	}
	return s
}

func (s *ProjectsScreen) Init() tea.Cmd {
	return s.loadProgress()
}

// Refresh reloads completion after returning from a project.
func (s *ProjectsScreen) Refresh() tea.Cmd {
	return s.loadProgress()
}

func (s *ProjectsScreen) loadProgress() tea.Cmd {
	ctx, hub := s.ctx, s.hub
	return func() tea.Msg {
		completion := map[string]float64{}
		for _, tpl := range project.Templates() {
			p, err := hub.Get(ctx, tpl.ID)
			if err != nil {
				slog.Warn("load project progress", "project", tpl.ID, "error", err)
				continue
			}
			completion[tpl.ID] = p.Completion()
		}
		return progressLoadedMsg{completion: completion}
	}
}

func (s *ProjectsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case progressLoadedMsg:
		s.completion = msg.completion
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "enter":
			return s, s.openProject()
		}
	}
	return s, nil
}

func (s *ProjectsScreen) View(width, height int) string {
	if len(s.rows) == 0 {
		return ""
	}

	s.adjustScroll(height)

	var lines []string
	visible := 0
	for i, r := range s.rows {
		if i < s.scrollOffset {
			continue
		}
		if visible >= height {
			break
		}
		switch r.kind {
		case rowSubjectHeader:
			lines = append(lines, renderSubjectHeader(r.subject, width))
		case rowProject:
			lines = append(lines, s.renderProjectRow(r, i == s.cursor, width))
		}
		visible++
	}
	return strings.Join(lines, "\n")
}

func (s *ProjectsScreen) Title() string {
	return "Projects"
}

func (s *ProjectsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

// moveCursor moves the cursor by delta, skipping subject headers.
func (s *ProjectsScreen) moveCursor(delta int) {
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowProject {
			s.cursor = next
			return
		}
		next += delta
	}
}

// adjustScroll keeps the cursor and its subject header in view.
func (s *ProjectsScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	headerRow := s.cursor
	for headerRow > 0 && s.rows[headerRow-1].kind == rowSubjectHeader {
		headerRow--
	}
	if headerRow < s.scrollOffset {
		s.scrollOffset = headerRow
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *ProjectsScreen) openProject() tea.Cmd {
	r := s.rows[s.cursor]
	if r.kind != rowProject {
		return nil
	}
	detail := newDetail(s.ctx, s.hub, r.template.ID)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: detail}
	}
}

func renderSubjectHeader(subject string, width int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		Padding(1, 0, 0, 2).
		Render(strings.ToUpper(subject))
}

func (s *ProjectsScreen) renderProjectRow(r row, selected bool, width int) string {
	const (
		indent   = 4
		barWidth = 22
		spacing  = 4
	)
	nameWidth := max(width-indent-barWidth-spacing, 10)

	name := r.template.Title
	if len([]rune(name)) > nameWidth {
		name = string([]rune(name)[:nameWidth-1]) + "…"
	}

	done := s.completion[r.template.ID]
	nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
	switch {
	case selected:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	case done >= 1:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Success)
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	bar := components.NewProgressBar("", done, true, barWidth)
	return fmt.Sprintf("  %s%s  %s", cursor, nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)), bar.View())
}
