// Package creative serves open-ended prompts and gives rubric feedback on
// free-text answers.
package creative

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/tutor/internal/store"
)

// ErrEmptySubmission is returned when the submitted text is blank.
var ErrEmptySubmission = errors.New("submission is empty")

// Service assesses submissions and appends them to the submission log.
type Service struct {
	repo store.CreativeRepo
	now  func() time.Time
}

// NewService creates a creative service backed by repo.
func NewService(repo store.CreativeRepo) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Submit assesses text and appends it to the log. The submission is
// stored before the feedback is returned.
func (s *Service) Submit(ctx context.Context, subject, prompt, text string) (Feedback, error) {
	if strings.TrimSpace(text) == "" {
		return Feedback{}, ErrEmptySubmission
	}

	fb := Assess(ctx, text)
	err := s.repo.AppendSubmission(ctx, store.CreativeSubmission{
		ID:        uuid.NewString(),
		Timestamp: s.now(),
		Subject:   subject,
		Prompt:    prompt,
		Text:      text,
	})
	if err != nil {
		return fb, fmt.Errorf("save submission: %w", err)
	}
	return fb, nil
}

// Recent returns up to n submissions, newest first.
func (s *Service) Recent(ctx context.Context, n int) ([]store.CreativeSubmission, error) {
	subs, err := s.repo.RecentSubmissions(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return subs, nil
}

// Count returns the number of stored submissions.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.CountSubmissions(ctx)
}
