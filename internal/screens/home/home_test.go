package home

import (
	"context"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tutor/internal/creative"
	"github.com/abhisek/tutor/internal/progress"
	"github.com/abhisek/tutor/internal/project"
	"github.com/abhisek/tutor/internal/question"
	"github.com/abhisek/tutor/internal/router"
	"github.com/abhisek/tutor/internal/store"
)

func testServices(t *testing.T, bank []question.Question) Services {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	doc, err := store.OpenDocument(filepath.Join(t.TempDir(), "progress.json"))
	require.NoError(t, err)

	return Services{
		Bank:     bank,
		Tracker:  progress.NewTracker(doc),
		Creative: creative.NewService(s.CreativeRepo()),
		Projects: project.NewHub(s.ProjectRepo()),
		User:     "ana",
		Limit:    3,
	}
}

func q(id, subject string) question.Question {
	return question.Question{ID: id, Subject: subject, Topic: "T", Difficulty: 2, Kind: question.KindNumeric, Text: "1+1?", Answer: "2"}
}

func pushedTitle(t *testing.T, cmd tea.Cmd) string {
	t.Helper()
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	return push.Screen.Title()
}

func TestHome_PracticeOpensSubjectPicker(t *testing.T) {
	h := New(context.Background(), testServices(t, []question.Question{q("m1", "Maths"), q("p1", "Physics")}))

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, "Choose a Subject", pushedTitle(t, cmd))
}

func TestHome_SingleSubjectSkipsPicker(t *testing.T) {
	h := New(context.Background(), testServices(t, []question.Question{q("m1", "Maths"), q("m2", "Maths")}))

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, "Maths", pushedTitle(t, cmd))
}

func TestHome_EmptyBankDisablesPractice(t *testing.T) {
	h := New(context.Background(), testServices(t, nil))

	assert.Contains(t, h.View(120, 40), "No subjects available")

	// Enter lands on the first enabled item instead.
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, "Progress Report", pushedTitle(t, cmd))
}

func TestHome_MenuOpensScreens(t *testing.T) {
	tests := map[rune]string{
		'2': "Progress Report",
		'3': "Creative Studio",
		'4': "Projects",
	}
	for key, want := range tests {
		t.Run(want, func(t *testing.T) {
			h := New(context.Background(), testServices(t, []question.Question{q("m1", "Maths")}))
			_, cmd := h.Update(tea.KeyPressMsg{Code: key, Text: string(key)})
			assert.Equal(t, want, pushedTitle(t, cmd))
		})
	}
}

func TestHome_StatsLoad(t *testing.T) {
	ctx := context.Background()
	svc := testServices(t, []question.Question{q("m1", "Maths"), q("p1", "Physics")})
	require.NoError(t, svc.Tracker.Record(ctx, "ana", "Maths", q("m1", "Maths"), true))
	require.NoError(t, svc.Tracker.Record(ctx, "ana", "Maths", q("m1", "Maths"), false))
	_, err := svc.Creative.Submit(ctx, "Physics", "p", "an idea")
	require.NoError(t, err)

	h := New(ctx, svc)
	h.Update(h.Init()())

	assert.Equal(t, 2, h.stats.attempts)
	assert.Equal(t, 50.0, h.stats.accuracy)
	assert.Equal(t, 2, h.stats.subjects)
	assert.Equal(t, 1, h.stats.ideas)
}
