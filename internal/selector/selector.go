// Package selector picks questions for a quiz session and tracks the
// session's difficulty level.
package selector

import (
	"math/rand/v2"

	"github.com/abhisek/tutor/internal/question"
)

const (
	MinDifficulty = 1
	MaxDifficulty = 5

	// DefaultStart is the difficulty a new session begins at.
	DefaultStart = 2
)

// Selector holds the difficulty of one session. It is a bounded random
// walk: +1 after a correct answer, -1 after a wrong one, clamped to
// [MinDifficulty, MaxDifficulty]. Not safe for concurrent use.
type Selector struct {
	difficulty int
	rng        *rand.Rand
}

// Option configures a Selector.
type Option func(*Selector)

// WithRand sets the random source used by Pick.
func WithRand(r *rand.Rand) Option {
	return func(s *Selector) { s.rng = r }
}

// New creates a Selector starting at start, clamped into range.
func New(start int, opts ...Option) *Selector {
	s := &Selector{difficulty: clamp(start)}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Difficulty returns the current difficulty level.
func (s *Selector) Difficulty() int {
	return s.difficulty
}

// Pick returns a uniformly random question of subject near the current
// difficulty. The second result is false when the subject has no
// questions at all.
func (s *Selector) Pick(qs []question.Question, subject string) (question.Question, bool) {
	pool := question.Filter(qs, subject, s.difficulty)
	if len(pool) == 0 {
		return question.Question{}, false
	}
	return pool[s.intN(len(pool))], true
}

// Update moves the difficulty after a graded answer.
func (s *Selector) Update(correct bool) {
	if correct {
		s.difficulty = clamp(s.difficulty + 1)
	} else {
		s.difficulty = clamp(s.difficulty - 1)
	}
}

func (s *Selector) intN(n int) int {
	if s.rng != nil {
		return s.rng.IntN(n)
	}
	return rand.IntN(n)
}

func clamp(d int) int {
	return max(MinDifficulty, min(MaxDifficulty, d))
}
