package store

import (
	"context"
	"fmt"
	"time"
)

// AttemptEvent is one graded submission in a learner's history.
// Events are immutable once appended.
type AttemptEvent struct {
	Timestamp  time.Time
	Subject    string
	Topic      string
	Difficulty int
	Correct    bool

	// QuestionID is empty when the question had no identifier.
	QuestionID string
}

// AttemptRepo is the append-only attempt history, keyed by learner.
type AttemptRepo interface {
	// AppendAttempt adds ev to the end of user's history.
	AppendAttempt(ctx context.Context, user string, ev AttemptEvent) error

	// History returns user's events in the order they were appended.
	// An unknown user has an empty history.
	History(ctx context.Context, user string) ([]AttemptEvent, error)

	// Users lists every learner with at least one event, sorted.
	Users(ctx context.Context) ([]string, error)
}

// CreativeSubmission is one entry of the creative-mode log.
type CreativeSubmission struct {
	ID        string
	Timestamp time.Time
	Subject   string
	Prompt    string
	Text      string
}

// CreativeRepo is the append-only creative submission log.
type CreativeRepo interface {
	AppendSubmission(ctx context.Context, sub CreativeSubmission) error

	// RecentSubmissions returns up to limit entries, newest first.
	// limit <= 0 returns all of them.
	RecentSubmissions(ctx context.Context, limit int) ([]CreativeSubmission, error)

	CountSubmissions(ctx context.Context) (int, error)
}

// ProjectProgress is the saved checklist state of one project.
type ProjectProgress struct {
	ProjectID string
	Completed []bool
	Notes     string
	UpdatedAt time.Time
}

// ProjectRepo stores project checklist state.
type ProjectRepo interface {
	// ProjectProgress returns the saved state, or nil if none was saved.
	ProjectProgress(ctx context.Context, projectID string) (*ProjectProgress, error)

	SaveProjectProgress(ctx context.Context, p ProjectProgress) error
}

// WriteError reports that learner data could not be persisted.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("save progress to %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("save progress: %v", e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
