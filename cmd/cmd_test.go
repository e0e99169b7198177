package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tutor/internal/progress"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	// Flag values outlive a single Execute on the shared command tree.
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()), out.String())
	return out.String()
}

func TestVersion(t *testing.T) {
	out := execute(t, "version")
	assert.Contains(t, out, "tutor")
}

func TestSubjects(t *testing.T) {
	bank := filepath.Join(t.TempDir(), "bank.json")
	require.NoError(t, os.WriteFile(bank, []byte(`[
		{"subject": "Physics", "question": "Unit of force?", "answer": "newton", "type": "text"},
		{"subject": "Maths", "question": "2+2?", "answer": "4", "type": "numeric"},
		{"subject": "maths", "question": "3+3?", "answer": "6", "type": "numeric"}
	]`), 0o644))

	out := execute(t, "subjects", "--bank", bank, "--exam", "")
	assert.Contains(t, out, "Maths")
	assert.Contains(t, out, "Physics")
	assert.Regexp(t, `Maths\s+2`, out)
}

func TestReportJSON_NoData(t *testing.T) {
	dir := t.TempDir()
	out := execute(t, "report", "--json",
		"--db", filepath.Join(dir, "tutor.db"),
		"--progress-backend", "json",
		"--progress-file", filepath.Join(dir, "progress.json"),
		"--user", "ana")

	var rep progress.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 0, rep.Total)
	assert.Empty(t, rep.TopicStats)
}

func TestReportJSON_FromDocument(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "progress.json")
	require.NoError(t, os.WriteFile(doc, []byte(`{"ana": {"history": [
		{"ts": "2025-01-02T10:00:00Z", "subject": "Maths", "topic": "Algebra", "difficulty": 2, "correct": true, "qid": "m1"},
		{"ts": "2025-01-02T10:01:00Z", "subject": "Maths", "topic": "Geometry", "difficulty": 2, "correct": false, "qid": "m2"}
	]}}`), 0o644))

	out := execute(t, "report", "--json",
		"--db", filepath.Join(dir, "tutor.db"),
		"--progress-backend", "json",
		"--progress-file", doc,
		"--user", "ana")

	var rep progress.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 2, rep.Total)
	assert.Equal(t, 50.0, rep.Accuracy)
	require.Len(t, rep.TopicStats, 2)
	assert.Equal(t, "Geometry", rep.TopicStats[0].Topic)
}

func TestProjectStepAndNotes(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tutor.db")

	execute(t, "project", "step", "proj_solar_cooker", "1", "--undo=false", "--db", db)
	execute(t, "project", "notes", "proj_solar_cooker", "used", "foil", "--db", db)
	out := execute(t, "project", "show", "proj_solar_cooker", "--db", db)

	assert.Contains(t, out, "[x] 1.")
	assert.Contains(t, out, "[ ] 2.")
	assert.Contains(t, out, "Notes: used foil")
	assert.Contains(t, out, "20% complete")

	out = execute(t, "project", "list", "--db", db)
	assert.Contains(t, out, "proj_solar_cooker")
}

func TestCreativeSubmitAndList(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tutor.db")

	out := execute(t, "creative", "submit", "--db", db,
		"--subject", "Physics", "--prompt", "Design a cooker",
		"--text", "I would test it because the data shows heat rises")
	assert.Contains(t, out, "Submitted!")

	out = execute(t, "creative", "list", "--db", db, "--limit", "5")
	assert.Contains(t, out, "Physics")
	assert.Contains(t, out, "I would test it")
}
