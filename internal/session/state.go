package session

import (
	"errors"

	"github.com/abhisek/tutor/internal/question"
	"github.com/abhisek/tutor/internal/selector"
)

const (
	// DefaultLimit is the number of questions in a session.
	DefaultLimit = 7

	MinLimit = 3
	MaxLimit = 20
)

var (
	// ErrEmptyAnswer is returned by Submit for a blank answer. The
	// question stays current and nothing is recorded.
	ErrEmptyAnswer = errors.New("answer is empty")

	// ErrNoQuestion is returned by Submit when no question is waiting
	// for an answer.
	ErrNoQuestion = errors.New("no question to answer")
)

// Config describes one quiz session.
type Config struct {
	User    string
	Subject string

	// Exam restricts the bank to questions tagged with this exam.
	// Empty means every question of the subject.
	Exam string

	// Limit is the number of questions, clamped to [MinLimit, MaxLimit].
	// Zero means DefaultLimit.
	Limit int

	// StartDifficulty seeds the selector. Zero means selector.DefaultStart.
	StartDifficulty int
}

func (c Config) withDefaults() Config {
	if c.Limit == 0 {
		c.Limit = DefaultLimit
	}
	c.Limit = max(MinLimit, min(MaxLimit, c.Limit))
	if c.StartDifficulty == 0 {
		c.StartDifficulty = selector.DefaultStart
	}
	return c
}

// Phase is where the session stands between questions.
type Phase int

const (
	PhaseActive   Phase = iota // A question is waiting for an answer
	PhaseFeedback              // The last answer was graded
	PhaseSummary               // The question limit was reached
	PhaseEmpty                 // The bank has nothing for the subject
)

// Feedback is the result of one submission.
type Feedback struct {
	Question  question.Question
	Correct   bool
	Canonical string

	// Explanation is set for wrong answers only.
	Explanation string

	// Difficulty is the selector level after this answer.
	Difficulty int
}

// TopicResult tracks per-topic performance within a single session.
type TopicResult struct {
	Topic     string
	Attempted int
	Correct   int
}
