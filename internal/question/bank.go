package question

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Load reads the question bank at path. A missing, unreadable or corrupt
// file yields an empty bank; the condition is logged, never returned.
func Load(path string) []Question {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("question bank not found", "path", path)
		} else {
			slog.Warn("read question bank", "path", path, "error", err)
		}
		return nil
	}
	qs := Decode(data)
	slog.Debug("loaded question bank", "path", path, "count", len(qs))
	return qs
}

// Decode parses a JSON array of question documents. Records that fail
// validation are skipped; a document that is not an array yields nil.
func Decode(data []byte) []Question {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		slog.Warn("question bank is not a JSON array", "error", err)
		return nil
	}

	qs := make([]Question, 0, len(raws))
	for i, raw := range raws {
		if err := validateRecord(raw); err != nil {
			slog.Warn("skipping invalid question", "index", i, "error", err)
			continue
		}
		var r record
		if err := json.Unmarshal(raw, &r); err != nil {
			slog.Warn("skipping undecodable question", "index", i, "error", err)
			continue
		}
		qs = append(qs, r.toQuestion())
	}
	return qs
}

// Subjects returns the distinct subjects of qs in sorted order.
func Subjects(qs []Question) []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range qs {
		if q.Subject == "" || seen[q.Subject] {
			continue
		}
		seen[q.Subject] = true
		out = append(out, q.Subject)
	}
	sort.Strings(out)
	return out
}

// Filter returns the questions of subject whose difficulty is within one
// level of difficulty. When no question is that close, every question of
// the subject is returned instead, so a difficulty mismatch alone never
// empties the pool.
func Filter(qs []Question, subject string, difficulty int) []Question {
	bySubject := matchSubject(qs, subject)

	var near []Question
	for _, q := range bySubject {
		if abs(q.Difficulty-difficulty) <= 1 {
			near = append(near, q)
		}
	}
	if len(near) == 0 {
		return bySubject
	}
	return near
}

// ByExam keeps the questions tagged with exam. An empty exam keeps all.
func ByExam(qs []Question, exam string) []Question {
	exam = strings.TrimSpace(exam)
	if exam == "" {
		return qs
	}
	fold := cases.Fold()
	want := fold.String(exam)
	var out []Question
	for _, q := range qs {
		if fold.String(q.Exam) == want {
			out = append(out, q)
		}
	}
	return out
}

// SameSubject reports whether a and b name the same subject.
func SameSubject(a, b string) bool {
	fold := cases.Fold()
	return fold.String(strings.TrimSpace(a)) == fold.String(strings.TrimSpace(b))
}

func matchSubject(qs []Question, subject string) []Question {
	var out []Question
	for _, q := range qs {
		if SameSubject(q.Subject, subject) {
			out = append(out, q)
		}
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
