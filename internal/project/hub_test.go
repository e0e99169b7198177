package project

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/tutor/internal/store"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return NewHub(s.ProjectRepo())
}

func TestTemplates(t *testing.T) {
	tpls := Templates()
	if len(tpls) != 4 {
		t.Fatalf("len(Templates()) = %d, want 4", len(tpls))
	}
	seen := map[string]bool{}
	for _, tpl := range tpls {
		if seen[tpl.ID] {
			t.Errorf("duplicate template id %q", tpl.ID)
		}
		seen[tpl.ID] = true
		if len(tpl.Steps) == 0 {
			t.Errorf("template %q has no steps", tpl.ID)
		}
	}
	if _, ok := Lookup("proj_solar_cooker"); !ok {
		t.Error("Lookup(proj_solar_cooker) failed")
	}
}

func TestGetFreshProject(t *testing.T) {
	h := newTestHub(t)

	p, err := h.Get(context.Background(), "proj_ecosystem_terrarium")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(p.Completed) != len(p.Template.Steps) {
		t.Errorf("len(Completed) = %d, want %d", len(p.Completed), len(p.Template.Steps))
	}
	if p.Completion() != 0 {
		t.Errorf("Completion() = %v, want 0", p.Completion())
	}
}

func TestUnknownProject(t *testing.T) {
	h := newTestHub(t)

	_, err := h.Get(context.Background(), "proj_rocket")
	if !errors.Is(err, ErrUnknownProject) {
		t.Errorf("err = %v, want ErrUnknownProject", err)
	}
}

func TestToggleStepPersists(t *testing.T) {
	h := newTestHub(t)
	ctx := context.Background()
	id := "proj_real_life_quadratics"

	if _, err := h.ToggleStep(ctx, id, 0); err != nil {
		t.Fatalf("toggle 0: %v", err)
	}
	if _, err := h.ToggleStep(ctx, id, 2); err != nil {
		t.Fatalf("toggle 2: %v", err)
	}
	if _, err := h.SetNotes(ctx, id, "used a basketball arc"); err != nil {
		t.Fatalf("notes: %v", err)
	}

	p, err := h.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := []bool{true, false, true, false, false}
	for i := range want {
		if p.Completed[i] != want[i] {
			t.Errorf("Completed[%d] = %v, want %v", i, p.Completed[i], want[i])
		}
	}
	if p.Completion() != 0.4 {
		t.Errorf("Completion() = %v, want 0.4", p.Completion())
	}
	if p.Notes != "used a basketball arc" {
		t.Errorf("Notes = %q", p.Notes)
	}

	p, err = h.ToggleStep(ctx, id, 0)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if p.Completed[0] {
		t.Error("step 0 should be open after a second toggle")
	}
}

func TestStepOutOfRange(t *testing.T) {
	h := newTestHub(t)
	ctx := context.Background()

	for _, step := range []int{-1, 5, 99} {
		_, err := h.SetStep(ctx, "proj_solar_cooker", step, true)
		if !errors.Is(err, ErrStepOutOfRange) {
			t.Errorf("step %d: err = %v, want ErrStepOutOfRange", step, err)
		}
	}
}
