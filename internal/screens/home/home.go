// Package home is the main menu of the terminal UI.
package home

import (
	"context"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tutor/internal/creative"
	"github.com/abhisek/tutor/internal/i18n"
	"github.com/abhisek/tutor/internal/progress"
	"github.com/abhisek/tutor/internal/project"
	"github.com/abhisek/tutor/internal/question"
	"github.com/abhisek/tutor/internal/router"
	"github.com/abhisek/tutor/internal/screen"
	creativescreen "github.com/abhisek/tutor/internal/screens/creative"
	"github.com/abhisek/tutor/internal/screens/projects"
	"github.com/abhisek/tutor/internal/screens/report"
	sessionscreen "github.com/abhisek/tutor/internal/screens/session"
	"github.com/abhisek/tutor/internal/screens/subjects"
	"github.com/abhisek/tutor/internal/session"
	"github.com/abhisek/tutor/internal/ui/components"
	"github.com/abhisek/tutor/internal/ui/layout"
)

// Services are the domain objects the menu hands to the screens it opens.
type Services struct {
	Bank     []question.Question
	Tracker  *progress.Tracker
	Creative *creative.Service
	Projects *project.Hub

	User            string
	Exam            string
	Limit           int
	StartDifficulty int
}

type stats struct {
	attempts int
	accuracy float64
	subjects int
	ideas    int
}

type statsLoadedMsg struct {
	stats stats
}

// HomeScreen is the main menu.
type HomeScreen struct {
	ctx      context.Context
	svc      Services
	subjects []string
	menu     components.Menu
	stats    stats
	mascot   MascotVariant
}

var (
	_ screen.Screen    = (*HomeScreen)(nil)
	_ screen.Refresher = (*HomeScreen)(nil)
)

// New creates the menu. ctx carries the learner's localizer.
func New(ctx context.Context, svc Services) *HomeScreen {
	h := &HomeScreen{
		ctx:      ctx,
		svc:      svc,
		subjects: question.Subjects(svc.Bank),
	}

	items := []components.MenuItem{
		{Label: "PRACTICE", Action: h.openPractice, Disabled: len(h.subjects) == 0},
		{Label: "PROGRESS REPORT", Action: h.open(func() screen.Screen {
			return report.New(h.ctx, h.svc.Tracker, h.svc.User)
		}), Disabled: svc.Tracker == nil},
		{Label: "CREATIVE STUDIO", Action: h.open(func() screen.Screen {
			return creativescreen.New(h.ctx, h.svc.Creative, creative.Subjects())
		}), Disabled: svc.Creative == nil},
		{Label: "PROJECTS", Action: h.open(func() screen.Screen {
			return projects.New(h.ctx, h.svc.Projects)
		}), Disabled: svc.Projects == nil},
		{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) open(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		s := build()
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
}

// openPractice goes straight to the quiz when the bank has one subject
// and to the subject picker otherwise.
func (h *HomeScreen) openPractice() tea.Cmd {
	if len(h.subjects) == 1 {
		s := h.newQuiz(h.subjects[0])
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
	picker := subjects.New(h.subjects, h.newQuiz)
	return func() tea.Msg { return router.PushScreenMsg{Screen: picker} }
}

func (h *HomeScreen) newQuiz(subject string) screen.Screen {
	state := session.New(session.Config{
		User:            h.svc.User,
		Subject:         subject,
		Exam:            h.svc.Exam,
		Limit:           h.svc.Limit,
		StartDifficulty: h.svc.StartDifficulty,
	}, h.svc.Bank, h.svc.Tracker)
	return sessionscreen.New(h.ctx, state)
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Refresh reloads the stats bar after a quiz or a creative submission.
func (h *HomeScreen) Refresh() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	return func() tea.Msg {
		st := stats{subjects: len(h.subjects)}
		if h.svc.Tracker != nil {
			if r, err := h.svc.Tracker.Report(h.ctx, h.svc.User); err != nil {
				slog.Warn("load report for home screen", "error", err)
			} else {
				st.attempts, st.accuracy = r.Total, r.Accuracy
			}
		}
		if h.svc.Creative != nil {
			if n, err := h.svc.Creative.Count(h.ctx); err != nil {
				slog.Warn("count creative submissions", "error", err)
			} else {
				st.ideas = n
			}
		}
		return statsLoadedMsg{stats: st}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(statsLoadedMsg); ok {
		h.stats = m.stats
		h.mascot = mascotFor(m.stats.attempts, m.stats.accuracy)
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height excludes header and footer; add them back to judge the
	// real terminal size.
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight+2) ||
		layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	sections := []string{renderTitle(cw, compact)}
	if !compact {
		sections = append(sections, centerIn(RenderMascot(h.mascot), cw))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	if len(h.subjects) == 0 {
		sections = append(sections, renderNotice(i18n.T(h.ctx, "NoSubjects"), cw))
	}
	sections = append(sections, h.menu.View(cw, compact))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
