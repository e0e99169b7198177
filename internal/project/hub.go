// Package project tracks learner progress through guided projects.
package project

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/tutor/internal/store"
)

var (
	// ErrUnknownProject is returned for an id with no template.
	ErrUnknownProject = errors.New("unknown project")

	// ErrStepOutOfRange is returned for a step index outside the template.
	ErrStepOutOfRange = errors.New("step out of range")
)

// Progress is a template together with the learner's saved state.
type Progress struct {
	Template  Template
	Completed []bool
	Notes     string
}

// Completion returns the fraction of steps done, from 0 to 1.
func (p Progress) Completion() float64 {
	if len(p.Completed) == 0 {
		return 0
	}
	done := 0
	for _, c := range p.Completed {
		if c {
			done++
		}
	}
	return float64(done) / float64(len(p.Completed))
}

// Hub reads and updates project progress.
type Hub struct {
	repo store.ProjectRepo
	now  func() time.Time
}

// NewHub creates a Hub backed by repo.
func NewHub(repo store.ProjectRepo) *Hub {
	return &Hub{repo: repo, now: time.Now}
}

// Get returns the progress of project id. A project never touched has
// every step open and no notes.
func (h *Hub) Get(ctx context.Context, id string) (*Progress, error) {
	tpl, ok := Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProject, id)
	}

	p := &Progress{Template: tpl, Completed: make([]bool, len(tpl.Steps))}
	saved, err := h.repo.ProjectProgress(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load project %s: %w", id, err)
	}
	if saved != nil {
		// Saved state may predate a change in the step list.
		copy(p.Completed, saved.Completed)
		p.Notes = saved.Notes
	}
	return p, nil
}

// SetStep marks step (zero-based) of project id done or open.
func (h *Hub) SetStep(ctx context.Context, id string, step int, done bool) (*Progress, error) {
	p, err := h.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if step < 0 || step >= len(p.Completed) {
		return nil, fmt.Errorf("%w: %d of %d", ErrStepOutOfRange, step+1, len(p.Completed))
	}
	p.Completed[step] = done
	return p, h.save(ctx, p)
}

// ToggleStep flips step (zero-based) of project id.
func (h *Hub) ToggleStep(ctx context.Context, id string, step int) (*Progress, error) {
	p, err := h.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if step < 0 || step >= len(p.Completed) {
		return nil, fmt.Errorf("%w: %d of %d", ErrStepOutOfRange, step+1, len(p.Completed))
	}
	return h.SetStep(ctx, id, step, !p.Completed[step])
}

// SetNotes replaces the notes of project id.
func (h *Hub) SetNotes(ctx context.Context, id, notes string) (*Progress, error) {
	p, err := h.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Notes = notes
	return p, h.save(ctx, p)
}

func (h *Hub) save(ctx context.Context, p *Progress) error {
	err := h.repo.SaveProjectProgress(ctx, store.ProjectProgress{
		ProjectID: p.Template.ID,
		Completed: p.Completed,
		Notes:     p.Notes,
		UpdatedAt: h.now(),
	})
	if err != nil {
		return fmt.Errorf("save project %s: %w", p.Template.ID, err)
	}
	return nil
}
