// Package session runs one adaptive quiz: it picks questions, grades
// answers, moves the difficulty and records every attempt.
package session

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/tutor/internal/grading"
	"github.com/abhisek/tutor/internal/i18n"
	"github.com/abhisek/tutor/internal/progress"
	"github.com/abhisek/tutor/internal/question"
	"github.com/abhisek/tutor/internal/selector"
)

// Session is the runtime state of one quiz. Not safe for concurrent use.
type Session struct {
	ID string

	cfg     Config
	bank    []question.Question
	sel     *selector.Selector
	tracker *progress.Tracker
	now     func() time.Time

	current *question.Question
	phase   Phase
	seen    map[string]bool

	asked     int
	correct   int
	topics    map[string]*TopicResult
	order     []string
	startTime time.Time
}

// Option configures a Session.
type Option func(*sessionOptions)

type sessionOptions struct {
	rng *rand.Rand
	now func() time.Time
}

// WithRand sets the random source used to pick questions.
func WithRand(r *rand.Rand) Option {
	return func(o *sessionOptions) { o.rng = r }
}

// WithClock sets the time source for the session duration.
func WithClock(now func() time.Time) Option {
	return func(o *sessionOptions) { o.now = now }
}

// New starts a session over bank. tracker may be nil, in which case
// attempts are graded but not recorded.
func New(cfg Config, bank []question.Question, tracker *progress.Tracker, opts ...Option) *Session {
	o := sessionOptions{now: time.Now}
	for _, fn := range opts {
		fn(&o)
	}

	cfg = cfg.withDefaults()
	var selOpts []selector.Option
	if o.rng != nil {
		selOpts = append(selOpts, selector.WithRand(o.rng))
	}

	return &Session{
		ID:        uuid.NewString(),
		cfg:       cfg,
		bank:      question.ByExam(bank, cfg.Exam),
		sel:       selector.New(cfg.StartDifficulty, selOpts...),
		tracker:   tracker,
		now:       o.now,
		seen:      make(map[string]bool),
		topics:    make(map[string]*TopicResult),
		startTime: o.now(),
	}
}

// Config returns the session configuration with defaults applied.
func (s *Session) Config() Config {
	return s.cfg
}

// Phase returns the current session phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Difficulty returns the current selector level.
func (s *Session) Difficulty() int {
	return s.sel.Difficulty()
}

// Asked returns the number of graded answers so far.
func (s *Session) Asked() int {
	return s.asked
}

// Correct returns the number of correct answers so far.
func (s *Session) Correct() int {
	return s.correct
}

// Current returns the question waiting for an answer, if any.
func (s *Session) Current() (question.Question, bool) {
	if s.current == nil {
		return question.Question{}, false
	}
	return *s.current, true
}

// Done reports whether the question limit has been reached.
func (s *Session) Done() bool {
	return s.asked >= s.cfg.Limit
}

// Next returns the question to answer. Calling it again before Submit
// returns the same question. Questions already asked in this session are
// left out until the subject runs out of fresh ones. The second result is
// false when the session is done or the subject has no questions.
func (s *Session) Next() (question.Question, bool) {
	if s.Done() {
		s.phase = PhaseSummary
		return question.Question{}, false
	}
	if s.current != nil {
		return *s.current, true
	}

	q, ok := s.sel.Pick(s.unseen(), s.cfg.Subject)
	if !ok {
		q, ok = s.sel.Pick(s.bank, s.cfg.Subject)
	}
	if !ok {
		s.phase = PhaseEmpty
		return question.Question{}, false
	}
	s.seen[questionKey(q)] = true
	s.current = &q
	s.phase = PhaseActive
	return q, true
}

// Submit grades input against the current question, moves the difficulty
// and records the attempt. When recording fails the feedback is still
// returned together with the error.
func (s *Session) Submit(ctx context.Context, input string) (Feedback, error) {
	if s.current == nil {
		return Feedback{}, ErrNoQuestion
	}
	if strings.TrimSpace(input) == "" {
		return Feedback{}, ErrEmptyAnswer
	}

	q := *s.current
	v := grading.Evaluate(q, input)
	s.sel.Update(v.Correct)

	s.current = nil
	s.phase = PhaseFeedback
	s.asked++
	if v.Correct {
		s.correct++
	}
	s.tally(q.Topic, v.Correct)

	fb := Feedback{
		Question:   q,
		Correct:    v.Correct,
		Canonical:  v.Canonical,
		Difficulty: s.sel.Difficulty(),
	}
	if !v.Correct {
		fb.Explanation = q.Explanation
		if fb.Explanation == "" {
			fb.Explanation = i18n.T(ctx, "DefaultExplanation")
		}
	}

	if s.tracker != nil {
		if err := s.tracker.Record(ctx, s.cfg.User, s.cfg.Subject, q, v.Correct); err != nil {
			return fb, fmt.Errorf("session %s: %w", s.ID, err)
		}
	}
	return fb, nil
}

func (s *Session) unseen() []question.Question {
	if len(s.seen) == 0 {
		return s.bank
	}
	out := make([]question.Question, 0, len(s.bank))
	for _, q := range s.bank {
		if !s.seen[questionKey(q)] {
			out = append(out, q)
		}
	}
	return out
}

// questionKey identifies a question by ID, or by subject and text when
// the bank gives it none.
func questionKey(q question.Question) string {
	if q.ID != "" {
		return "id:" + q.ID
	}
	return "text:" + strings.ToLower(q.Subject) + "\x00" + q.Text
}

func (s *Session) tally(topic string, correct bool) {
	tr, ok := s.topics[topic]
	if !ok {
		tr = &TopicResult{Topic: topic}
		s.topics[topic] = tr
		s.order = append(s.order, topic)
	}
	tr.Attempted++
	if correct {
		tr.Correct++
	}
}
