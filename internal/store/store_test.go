package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{attemptTable, creativeTable, projectTable, sequenceTable} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestAttemptAppendAndHistory(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	events := []AttemptEvent{
		{Timestamp: base, Subject: "Maths", Topic: "Algebra", Difficulty: 2, Correct: true, QuestionID: "q1"},
		{Timestamp: base.Add(time.Minute), Subject: "Maths", Topic: "Geometry", Difficulty: 3, Correct: false},
		{Timestamp: base.Add(2 * time.Minute), Subject: "Maths", Topic: "Algebra", Difficulty: 2, Correct: false, QuestionID: "q7"},
	}
	for i, ev := range events {
		if err := repo.AppendAttempt(ctx, "ana", ev); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	if err := repo.AppendAttempt(ctx, "ben", events[0]); err != nil {
		t.Fatalf("append ben: %v", err)
	}

	got, err := repo.History(ctx, "ana")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("len(history) = %d, want %d", len(got), len(events))
	}
	for i := range events {
		want := events[i]
		if !got[i].Timestamp.Equal(want.Timestamp) {
			t.Errorf("event %d timestamp = %v, want %v", i, got[i].Timestamp, want.Timestamp)
		}
		got[i].Timestamp = want.Timestamp
		if got[i] != want {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want)
		}
	}
}

func TestAttemptHistoryUnknownUser(t *testing.T) {
	s := openTestStore(t)

	got, err := s.AttemptRepo().History(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len(history) = %d, want 0", len(got))
	}
}

func TestAttemptUsers(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	for _, u := range []string{"zoe", "ana", "zoe", "ben"} {
		if err := repo.AppendAttempt(ctx, u, AttemptEvent{Subject: "Physics", Difficulty: 1}); err != nil {
			t.Fatalf("append %s: %v", u, err)
		}
	}

	users, err := repo.Users(ctx)
	if err != nil {
		t.Fatalf("users: %v", err)
	}
	want := []string{"ana", "ben", "zoe"}
	if len(users) != len(want) {
		t.Fatalf("users = %v, want %v", users, want)
	}
	for i := range want {
		if users[i] != want[i] {
			t.Errorf("users[%d] = %q, want %q", i, users[i], want[i])
		}
	}
}

func TestAttemptAppendAfterCloseIsWriteError(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	repo := s.AttemptRepo()
	s.Close()

	err = repo.AppendAttempt(context.Background(), "ana", AttemptEvent{Subject: "Maths"})
	var werr *WriteError
	if !errors.As(err, &werr) {
		t.Fatalf("err = %v, want *WriteError", err)
	}
}

func TestCreativeSubmissions(t *testing.T) {
	s := openTestStore(t)
	repo := s.CreativeRepo()
	ctx := context.Background()

	for _, text := range []string{"first", "second", "third"} {
		err := repo.AppendSubmission(ctx, CreativeSubmission{Subject: "Biology", Prompt: "p", Text: text})
		if err != nil {
			t.Fatalf("append %s: %v", text, err)
		}
	}

	n, err := repo.CountSubmissions(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}

	recent, err := repo.RecentSubmissions(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("len(recent) = %d, want 2", len(recent))
	}
	if recent[0].Text != "third" || recent[1].Text != "second" {
		t.Errorf("recent = %q, %q; want third, second", recent[0].Text, recent[1].Text)
	}
	if recent[0].ID == "" || recent[0].ID == recent[1].ID {
		t.Errorf("expected distinct generated ids, got %q and %q", recent[0].ID, recent[1].ID)
	}

	all, err := repo.RecentSubmissions(ctx, 0)
	if err != nil {
		t.Fatalf("recent all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len(all) = %d, want 3", len(all))
	}
}

func TestProjectProgressRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProjectRepo()
	ctx := context.Background()

	p, err := repo.ProjectProgress(ctx, "terrarium")
	if err != nil {
		t.Fatalf("progress (empty): %v", err)
	}
	if p != nil {
		t.Fatal("expected nil progress before first save")
	}

	err = repo.SaveProjectProgress(ctx, ProjectProgress{
		ProjectID: "terrarium",
		Completed: []bool{true, false, false},
		Notes:     "bought moss",
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	err = repo.SaveProjectProgress(ctx, ProjectProgress{
		ProjectID: "terrarium",
		Completed: []bool{true, true, false},
		Notes:     "planted",
	})
	if err != nil {
		t.Fatalf("save again: %v", err)
	}

	p, err = repo.ProjectProgress(ctx, "terrarium")
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if p == nil {
		t.Fatal("expected saved progress")
	}
	if p.Notes != "planted" {
		t.Errorf("notes = %q, want %q", p.Notes, "planted")
	}
	want := []bool{true, true, false}
	if len(p.Completed) != len(want) {
		t.Fatalf("completed = %v, want %v", p.Completed, want)
	}
	for i := range want {
		if p.Completed[i] != want[i] {
			t.Errorf("completed[%d] = %v, want %v", i, p.Completed[i], want[i])
		}
	}
}

func TestWriteErrorUnwrap(t *testing.T) {
	base := errors.New("disk full")
	err := error(&WriteError{Path: "/tmp/p.json", Err: base})
	if !errors.Is(err, base) {
		t.Error("WriteError should unwrap to its cause")
	}
	if err.Error() != "save progress to /tmp/p.json: disk full" {
		t.Errorf("Error() = %q", err.Error())
	}
}
