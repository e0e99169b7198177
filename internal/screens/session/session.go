// Package session is the quiz screen: it asks the questions of one
// adaptive session and shows feedback after each answer.
package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tutor/internal/i18n"
	"github.com/abhisek/tutor/internal/question"
	"github.com/abhisek/tutor/internal/router"
	"github.com/abhisek/tutor/internal/screen"
	"github.com/abhisek/tutor/internal/screens/summary"
	sess "github.com/abhisek/tutor/internal/session"
	"github.com/abhisek/tutor/internal/ui/components"
	"github.com/abhisek/tutor/internal/ui/layout"
)

// SessionScreen implements screen.Screen for an active quiz.
type SessionScreen struct {
	ctx   context.Context
	state *sess.Session

	question *question.Question
	input    components.TextInput
	mc       components.MultiChoice
	mcActive bool

	feedback    *sess.Feedback
	showingQuit bool
	saveErr     string
	errMsg      string
	startTime   time.Time
	elapsed     time.Duration
	ended       bool
}

var (
	_ screen.Screen          = (*SessionScreen)(nil)
	_ screen.KeyHintProvider = (*SessionScreen)(nil)
	_ screen.StatusProvider  = (*SessionScreen)(nil)
	_ screen.EscapeHandler   = (*SessionScreen)(nil)
)

// New creates a quiz screen over state. ctx carries the learner's
// localizer and is used for recording attempts.
func New(ctx context.Context, state *sess.Session) *SessionScreen {
	return &SessionScreen{
		ctx:   ctx,
		state: state,
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	s.startTime = time.Now()
	return tea.Batch(s.nextQuestion(), tickCmd())
}

func (s *SessionScreen) Title() string {
	return s.state.Config().Subject
}

func (s *SessionScreen) Status() string {
	return s.state.Config().User + "  " + i18n.Td(s.ctx, "DifficultyN", map[string]any{"Level": s.state.Difficulty()})
}

// HandlesEscape keeps Esc for the quit dialog while a question is open.
func (s *SessionScreen) HandlesEscape() bool {
	return s.errMsg == ""
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.showingQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case s.feedback != nil:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case s.mcActive:
		return []layout.KeyHint{
			{Key: "1-9", Description: "Choose"},
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
}

func (s *SessionScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.showingQuit:
		return renderQuitConfirm(width)
	case s.feedback != nil:
		return s.renderFeedback(width)
	case s.question == nil:
		return renderLoading(width)
	}
	return s.renderQuestionView(width)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if s.ended {
			return s, nil
		}
		s.elapsed = time.Time(msg).Sub(s.startTime)
		return s, tickCmd()

	case feedbackDoneMsg:
		s.feedback = nil
		s.saveErr = ""
		if s.state.Done() {
			return s, endCmd()
		}
		return s, s.nextQuestion()

	case sessionEndMsg:
		return s.handleSessionEnd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.question != nil && s.feedback == nil && !s.showingQuit && !s.mcActive {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// nextQuestion asks the session for the next question and prepares the
// matching input widget.
func (s *SessionScreen) nextQuestion() tea.Cmd {
	q, ok := s.state.Next()
	if !ok {
		if s.state.Phase() == sess.PhaseEmpty {
			s.errMsg = i18n.Td(s.ctx, "NoQuestions", map[string]any{"Subject": s.state.Config().Subject})
			return nil
		}
		return endCmd()
	}

	s.question = &q
	if q.Kind == question.KindMCQ && len(q.Options) > 0 {
		s.mcActive = true
		s.mc = components.NewMultiChoice(q.Options)
		return nil
	}
	s.mcActive = false
	s.input = components.NewTextInput("Type your answer...", q.Kind == question.KindNumeric, 64)
	return s.input.Init()
}

func (s *SessionScreen) handleSessionEnd() (screen.Screen, tea.Cmd) {
	s.ended = true
	if s.state.Asked() == 0 {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	sum := s.state.Summary()
	slog.Info("session finished",
		"session", sum.SessionID,
		"subject", sum.Subject,
		"questions", sum.TotalQuestions,
		"correct", sum.TotalCorrect,
	)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(s.ctx, sum)}
	}
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.showingQuit {
		switch key {
		case "y", "Y":
			s.showingQuit = false
			return s, endCmd()
		case "n", "N", "esc":
			s.showingQuit = false
		}
		return s, nil
	}

	if s.feedback != nil {
		return s, func() tea.Msg { return feedbackDoneMsg{} }
	}

	if s.question == nil {
		return s, nil
	}

	switch key {
	case "esc":
		s.showingQuit = true
		return s, nil
	case "enter":
		if !s.mcActive {
			return s.submitAnswer(s.input.Value())
		}
	}

	if s.mcActive {
		s.mc = s.mc.Update(msg)
		if answer, ok := s.mc.Chosen(); ok {
			return s.submitAnswer(answer)
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submitAnswer grades answer and switches to the feedback view. A blank
// answer is ignored. A failed save is shown but does not stop the quiz.
func (s *SessionScreen) submitAnswer(answer string) (screen.Screen, tea.Cmd) {
	fb, err := s.state.Submit(s.ctx, answer)
	switch {
	case errors.Is(err, sess.ErrEmptyAnswer), errors.Is(err, sess.ErrNoQuestion):
		return s, nil
	case err != nil:
		slog.Error("record attempt", "error", err)
		s.saveErr = err.Error()
	}

	if s.mcActive {
		s.mc.Reveal(fb.Canonical)
	} else {
		s.input.Submit(fb.Correct)
	}
	s.feedback = &fb
	return s, nil
}

func endCmd() tea.Cmd {
	return func() tea.Msg { return sessionEndMsg{} }
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
