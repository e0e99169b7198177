package creative

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tutor/internal/creative"
	"github.com/abhisek/tutor/internal/store"
)

func newScreen(t *testing.T) (*CreativeScreen, *creative.Service) {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	svc := creative.NewService(s.CreativeRepo())
	return New(context.Background(), svc, []string{"Physics", "Biology"}), svc
}

func ctrlS() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
}

func typeText(s *CreativeScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestCreativeScreen_MenuListsSubjectsAndGeneral(t *testing.T) {
	s, _ := newScreen(t)
	view := s.View(100, 30)
	assert.Contains(t, view, "Physics")
	assert.Contains(t, view, "Biology")
	assert.Contains(t, view, GeneralSubject)
	assert.False(t, s.HandlesEscape())
}

func TestCreativeScreen_StartShowsPrompt(t *testing.T) {
	s, _ := newScreen(t)
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	require.Equal(t, phaseWriting, s.phase)
	assert.Equal(t, "Physics", s.subject)
	assert.Contains(t, creative.Prompts("Physics"), s.prompt)
	assert.True(t, s.HandlesEscape())
}

func TestCreativeScreen_EmptySubmissionRejected(t *testing.T) {
	s, svc := newScreen(t)
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(ctrlS())

	assert.Equal(t, phaseWriting, s.phase)
	assert.Contains(t, s.View(100, 30), "Write something before submitting.")
	n, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreativeScreen_SubmitShowsFeedback(t *testing.T) {
	s, svc := newScreen(t)
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	typeText(s, "I would test it because the data shows heat rises")
	s.Update(ctrlS())

	require.Equal(t, phaseResult, s.phase)
	require.NotNil(t, s.result)
	assert.Contains(t, s.View(100, 30), "Submitted!")
	assert.NotEmpty(t, s.result.Comments)
	for _, label := range s.result.BadgeLabels(context.Background()) {
		assert.Contains(t, s.View(120, 40), label)
	}

	n, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCreativeScreen_EscReturnsToMenu(t *testing.T) {
	s, _ := newScreen(t)
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})

	assert.Equal(t, phaseChoose, s.phase)
	assert.False(t, s.HandlesEscape())
}

func TestCreativeScreen_GeneralUsesGeneralPrompt(t *testing.T) {
	s, _ := newScreen(t)
	s.Update(tea.KeyPressMsg{Code: '3', Text: "3"})

	require.Equal(t, phaseWriting, s.phase)
	assert.Equal(t, GeneralSubject, s.subject)
	assert.Equal(t, creative.Prompt(context.Background(), GeneralSubject, nil), s.prompt)
}
