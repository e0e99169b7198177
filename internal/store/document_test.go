package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDocument(t *testing.T) *DocumentStore {
	t.Helper()
	d, err := OpenDocument(filepath.Join(t.TempDir(), "progress.json"))
	require.NoError(t, err)
	return d
}

func TestDocument_MissingFileIsEmpty(t *testing.T) {
	d := openTestDocument(t)
	ctx := context.Background()

	hist, err := d.History(ctx, "ana")
	require.NoError(t, err)
	assert.Empty(t, hist)

	users, err := d.Users(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestDocument_AppendAndHistory(t *testing.T) {
	d := openTestDocument(t)
	ctx := context.Background()

	ts := time.Date(2025, 5, 4, 9, 30, 15, 0, time.UTC)
	require.NoError(t, d.AppendAttempt(ctx, "ana", AttemptEvent{
		Timestamp: ts, Subject: "Maths", Topic: "Algebra", Difficulty: 2, Correct: true, QuestionID: "m1",
	}))
	require.NoError(t, d.AppendAttempt(ctx, "ana", AttemptEvent{
		Timestamp: ts.Add(time.Minute), Subject: "Maths", Topic: "Fractions", Difficulty: 3,
	}))
	require.NoError(t, d.AppendAttempt(ctx, "ben", AttemptEvent{Subject: "Physics", Difficulty: 1}))

	hist, err := d.History(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, hist, 2)

	assert.True(t, hist[0].Timestamp.Equal(ts))
	assert.Equal(t, "Algebra", hist[0].Topic)
	assert.Equal(t, 2, hist[0].Difficulty)
	assert.True(t, hist[0].Correct)
	assert.Equal(t, "m1", hist[0].QuestionID)
	assert.Equal(t, "Fractions", hist[1].Topic)
	assert.False(t, hist[1].Correct)
	assert.Empty(t, hist[1].QuestionID)

	users, err := d.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ana", "ben"}, users)
}

func TestDocument_OnDiskFormat(t *testing.T) {
	d := openTestDocument(t)
	ts := time.Date(2025, 5, 4, 9, 30, 15, 987, time.UTC)
	require.NoError(t, d.AppendAttempt(context.Background(), "ana", AttemptEvent{
		Timestamp: ts, Subject: "Maths", Topic: "Algebra", Difficulty: 2, Correct: true,
	}))

	data, err := os.ReadFile(d.Path())
	require.NoError(t, err)

	var doc map[string]map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	ev := doc["ana"]["history"][0]
	assert.Equal(t, "2025-05-04T09:30:15Z", ev["ts"])
	assert.Equal(t, "Maths", ev["subject"])
	assert.Equal(t, float64(2), ev["difficulty"])
	assert.Equal(t, true, ev["correct"])
	assert.Contains(t, ev, "qid")
	assert.Nil(t, ev["qid"])
}

func TestDocument_CorruptFileIsEmpty(t *testing.T) {
	tests := map[string]string{
		"not json":     "{not json",
		"array":        "[1, 2]",
		"wrong shape":  `{"ana": {"history": [{"subject": 3, "correct": "yes"}]}}`,
		"empty":        "",
		"whitespace":   "   ",
		"history type": `{"ana": {"history": "lots"}}`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			d := openTestDocument(t)
			require.NoError(t, os.WriteFile(d.Path(), []byte(content), 0o644))

			hist, err := d.History(context.Background(), "ana")
			require.NoError(t, err)
			assert.Empty(t, hist)
		})
	}
}

func TestDocument_LegacyUsersWrapper(t *testing.T) {
	d := openTestDocument(t)
	legacy := `{"users": {"ana": {"history": [
		{"ts": "2024-11-02T18:04:05", "subject": "Physics", "topic": "Motion", "difficulty": 3, "correct": false, "qid": 17}
	]}}}`
	require.NoError(t, os.WriteFile(d.Path(), []byte(legacy), 0o644))

	hist, err := d.History(context.Background(), "ana")
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, "Motion", hist[0].Topic)
	assert.Equal(t, "17", hist[0].QuestionID)
	assert.Equal(t, 2024, hist[0].Timestamp.Year())

	require.NoError(t, d.AppendAttempt(context.Background(), "ana", AttemptEvent{Subject: "Physics"}))
	hist, err = d.History(context.Background(), "ana")
	require.NoError(t, err)
	assert.Len(t, hist, 2)
}

func TestDocument_UserNamedUsers(t *testing.T) {
	d := openTestDocument(t)
	require.NoError(t, d.AppendAttempt(context.Background(), "users", AttemptEvent{Subject: "Maths"}))

	hist, err := d.History(context.Background(), "users")
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

func TestDocument_WriteFailureSurfaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "progress.json")
	d, err := OpenDocument(path)
	require.NoError(t, err)

	// A directory in place of the document can be neither read nor replaced.
	require.NoError(t, os.Mkdir(path, 0o755))

	err = d.AppendAttempt(context.Background(), "ana", AttemptEvent{Subject: "Maths"})
	require.Error(t, err)

	var werr *WriteError
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, path, werr.Path)
	assert.True(t, strings.HasPrefix(err.Error(), "save progress to "))
}

func TestDocument_NoTempFilesLeft(t *testing.T) {
	d := openTestDocument(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, d.AppendAttempt(context.Background(), "ana", AttemptEvent{Subject: "Maths"}))
	}

	entries, err := os.ReadDir(filepath.Dir(d.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "progress.json", entries[0].Name())
}

func TestDocument_BadEventSkippedOthersKept(t *testing.T) {
	d := openTestDocument(t)
	content := `{
		"alice": {"history": [
			{"ts": "2025-01-02T10:00:00Z", "subject": "Maths", "topic": "Algebra", "difficulty": "3", "correct": true, "qid": null},
			{"subject": 7, "correct": "yes"}
		]},
		"bob": {"history": [
			{"ts": "2025-01-02T11:00:00Z", "subject": "Physics", "topic": "Motion", "difficulty": 2, "correct": false, "qid": "p1"}
		], "nickname": "b"}
	}`
	require.NoError(t, os.WriteFile(d.Path(), []byte(content), 0o644))
	ctx := context.Background()

	alice, err := d.History(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, alice, 1)
	assert.Equal(t, 3, alice[0].Difficulty)

	require.NoError(t, d.AppendAttempt(ctx, "carol", AttemptEvent{Subject: "Biology", Topic: "Cells", Correct: true}))

	bob, err := d.History(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, bob, 1)
	assert.Equal(t, "p1", bob[0].QuestionID)

	alice, err = d.History(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, alice, 1)

	users, err := d.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, users)

	// Unreadable events and unknown fields survive the rewrite.
	data, err := os.ReadFile(d.Path())
	require.NoError(t, err)
	var doc map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Len(t, doc["alice"]["history"], 2)
	assert.Equal(t, "b", doc["bob"]["nickname"])
}

func TestDocument_CorruptFileNotOverwritten(t *testing.T) {
	tests := map[string]string{
		"not json":     "{not json",
		"array":        "[1, 2]",
		"history type": `{"ana": {"history": "lots"}, "ben": {"history": []}}`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			d := openTestDocument(t)
			require.NoError(t, os.WriteFile(d.Path(), []byte(content), 0o644))

			err := d.AppendAttempt(context.Background(), "ana", AttemptEvent{Subject: "Maths"})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCorruptDocument))

			data, err := os.ReadFile(d.Path())
			require.NoError(t, err)
			assert.Equal(t, content, string(data))
		})
	}
}
