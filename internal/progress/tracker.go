package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/tutor/internal/question"
	"github.com/abhisek/tutor/internal/store"
)

// Tracker appends attempts to a learner's history and reports on it.
type Tracker struct {
	repo store.AttemptRepo
	now  func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock sets the time source used to stamp events.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// NewTracker creates a Tracker over repo.
func NewTracker(repo store.AttemptRepo, opts ...Option) *Tracker {
	t := &Tracker{repo: repo, now: time.Now}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Record appends one graded attempt on q to user's history. A failed
// write is returned; it is never reported as success.
func (t *Tracker) Record(ctx context.Context, user, subject string, q question.Question, correct bool) error {
	ev := store.AttemptEvent{
		Timestamp:  t.now(),
		Subject:    subject,
		Topic:      q.Topic,
		Difficulty: q.Difficulty,
		Correct:    correct,
		QuestionID: q.ID,
	}
	if err := t.repo.AppendAttempt(ctx, user, ev); err != nil {
		return fmt.Errorf("record attempt for %s: %w", user, err)
	}
	return nil
}

// Report aggregates user's full history.
func (t *Tracker) Report(ctx context.Context, user string) (*Report, error) {
	events, err := t.repo.History(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("load history for %s: %w", user, err)
	}
	r := BuildReport(ctx, events)
	r.User = user
	return r, nil
}

// Users lists learners with recorded attempts.
func (t *Tracker) Users(ctx context.Context) ([]string, error) {
	return t.repo.Users(ctx)
}
