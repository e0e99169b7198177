package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// eventSchema describes one history entry of the progress document.
// Fields are checked per event so a single bad entry never costs the
// rest of the document.
const eventSchema = `{
  "type": "object",
  "required": ["correct"],
  "properties": {
    "ts":         {"type": ["string", "null"]},
    "subject":    {"type": ["string", "null"]},
    "topic":      {"type": ["string", "null"]},
    "difficulty": {"type": ["number", "string", "null"]},
    "correct":    {"type": "boolean"},
    "qid":        {"type": ["string", "number", "null"]}
  }
}`

const eventSchemaURL = "schema://progress-event.json"

// legacyTimeLayout is the naive local timestamp older documents carry.
const legacyTimeLayout = "2006-01-02T15:04:05"

// ErrCorruptDocument is returned by AppendAttempt when the progress file
// exists but cannot be read as a document. The file is left untouched.
var ErrCorruptDocument = errors.New("progress document is corrupt")

var (
	eventSchemaOnce sync.Once
	evSchema        *jsonschema.Schema
	evSchemaErr     error
)

func compiledEventSchema() (*jsonschema.Schema, error) {
	eventSchemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(eventSchema), &def); err != nil {
			evSchemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(eventSchemaURL, def); err != nil {
			evSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		evSchema, evSchemaErr = c.Compile(eventSchemaURL)
	})
	return evSchema, evSchemaErr
}

// docEvent is the on-disk form of an AttemptEvent.
type docEvent struct {
	TS         string  `json:"ts"`
	Subject    string  `json:"subject"`
	Topic      string  `json:"topic"`
	Difficulty float64 `json:"difficulty"`
	Correct    bool    `json:"correct"`
	QID        any     `json:"qid"`
}

// looseEvent reads a stored event whose difficulty may be a number or a
// numeric string.
type looseEvent struct {
	TS         string `json:"ts"`
	Subject    string `json:"subject"`
	Topic      string `json:"topic"`
	Difficulty any    `json:"difficulty"`
	Correct    bool   `json:"correct"`
	QID        any    `json:"qid"`
}

// progressDoc maps learner names to their raw user objects. Entries are
// kept raw so a rewrite carries every learner through unchanged.
type progressDoc map[string]json.RawMessage

var _ AttemptRepo = (*DocumentStore)(nil)

// DocumentStore keeps every learner's history in a single JSON file.
// Each append rewrites the whole document; the mutex serializes those
// rewrites within the process.
type DocumentStore struct {
	mu   sync.Mutex
	path string
}

// OpenDocument returns a DocumentStore over the file at path, creating
// its directory if needed. The file itself is created on first append.
func OpenDocument(path string) (*DocumentStore, error) {
	if err := EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create progress dir: %w", err)
	}
	return &DocumentStore{path: path}, nil
}

// Path returns the location of the progress document.
func (d *DocumentStore) Path() string {
	return d.path
}

// AppendAttempt adds ev to the learner's history. Other learners and any
// events this package cannot read are written back as they were. A file
// that is not a document at all is never overwritten.
func (d *DocumentStore) AppendAttempt(_ context.Context, user string, ev AttemptEvent) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	doc, err := d.load()
	if err != nil {
		return &WriteError{Path: d.path, Err: fmt.Errorf("%w: %v", ErrCorruptDocument, err)}
	}

	obj := map[string]json.RawMessage{}
	var history []json.RawMessage
	if raw, ok := doc[user]; ok {
		if err := json.Unmarshal(raw, &obj); err != nil {
			return &WriteError{Path: d.path, Err: fmt.Errorf("%w: learner %q is not an object", ErrCorruptDocument, user)}
		}
		if obj == nil {
			obj = map[string]json.RawMessage{}
		}
		if h, ok := obj["history"]; ok && !isNull(h) {
			if err := json.Unmarshal(h, &history); err != nil {
				return &WriteError{Path: d.path, Err: fmt.Errorf("%w: history of %q is not a list", ErrCorruptDocument, user)}
			}
		}
	}

	encoded, err := json.Marshal(toDocEvent(ev))
	if err != nil {
		return &WriteError{Path: d.path, Err: fmt.Errorf("encode event: %w", err)}
	}
	history = append(history, encoded)
	if obj["history"], err = json.Marshal(history); err != nil {
		return &WriteError{Path: d.path, Err: fmt.Errorf("encode history: %w", err)}
	}
	if doc[user], err = json.Marshal(obj); err != nil {
		return &WriteError{Path: d.path, Err: fmt.Errorf("encode learner: %w", err)}
	}

	if err := d.save(doc); err != nil {
		return &WriteError{Path: d.path, Err: err}
	}
	return nil
}

func (d *DocumentStore) History(_ context.Context, user string) ([]AttemptEvent, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	doc, err := d.load()
	if err != nil {
		slog.Warn("progress document unusable, reading as empty", "path", d.path, "error", err)
		return nil, nil
	}
	raw, ok := doc[user]
	if !ok {
		return nil, nil
	}
	return d.decodeHistory(user, raw), nil
}

func (d *DocumentStore) Users(_ context.Context) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	doc, err := d.load()
	if err != nil {
		slog.Warn("progress document unusable, reading as empty", "path", d.path, "error", err)
		return nil, nil
	}
	var users []string
	for name, raw := range doc {
		if len(d.decodeHistory(name, raw)) > 0 {
			users = append(users, name)
		}
	}
	sort.Strings(users)
	return users, nil
}

// load reads the document. A missing or blank file is an empty document;
// a file that is not a JSON object is an error.
func (d *DocumentStore) load() (progressDoc, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return progressDoc{}, nil
		}
		return nil, fmt.Errorf("read: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return progressDoc{}, nil
	}
	return decodeDocument(data)
}

func decodeDocument(data []byte) (progressDoc, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if raw == nil {
		return nil, errors.New("document is null")
	}
	// Older documents wrap the learners in {"users": {...}}.
	if inner, ok := raw["users"]; ok && len(raw) == 1 && !hasHistory(inner) {
		var users map[string]json.RawMessage
		if err := json.Unmarshal(inner, &users); err != nil {
			return nil, fmt.Errorf("invalid users wrapper: %w", err)
		}
		if users == nil {
			users = map[string]json.RawMessage{}
		}
		raw = users
	}
	return progressDoc(raw), nil
}

// decodeHistory returns the learner's readable events. Events that fail
// the event schema are skipped and logged.
func (d *DocumentStore) decodeHistory(user string, raw json.RawMessage) []AttemptEvent {
	var obj struct {
		History []json.RawMessage `json:"history"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		slog.Warn("skipping unreadable learner", "path", d.path, "user", user, "error", err)
		return nil
	}
	s, err := compiledEventSchema()
	if err != nil {
		slog.Error("compile progress event schema", "error", err)
		return nil
	}

	events := make([]AttemptEvent, 0, len(obj.History))
	for i, item := range obj.History {
		var generic any
		if err := json.Unmarshal(item, &generic); err != nil {
			slog.Warn("skipping unreadable event", "user", user, "index", i, "error", err)
			continue
		}
		if err := s.Validate(generic); err != nil {
			slog.Warn("skipping invalid event", "user", user, "index", i, "error", err)
			continue
		}
		var e looseEvent
		if err := json.Unmarshal(item, &e); err != nil {
			slog.Warn("skipping unreadable event", "user", user, "index", i, "error", err)
			continue
		}
		events = append(events, fromLooseEvent(e))
	}
	return events
}

func hasHistory(raw json.RawMessage) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	_, ok := probe["history"]
	return ok
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// save writes doc to a temporary file and renames it over the document.
func (d *DocumentStore) save(doc progressDoc) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(d.path), ".progress-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), d.path); err != nil {
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}

func toDocEvent(ev AttemptEvent) docEvent {
	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	var qid any
	if ev.QuestionID != "" {
		qid = ev.QuestionID
	}
	return docEvent{
		TS:         ts.Truncate(time.Second).Format(time.RFC3339),
		Subject:    ev.Subject,
		Topic:      ev.Topic,
		Difficulty: float64(ev.Difficulty),
		Correct:    ev.Correct,
		QID:        qid,
	}
}

func fromLooseEvent(e looseEvent) AttemptEvent {
	return AttemptEvent{
		Timestamp:  parseTimestamp(e.TS),
		Subject:    e.Subject,
		Topic:      e.Topic,
		Difficulty: looseDifficulty(e.Difficulty),
		Correct:    e.Correct,
		QuestionID: qidString(e.QID),
	}
}

// looseDifficulty accepts a number or a numeric string; anything else is 0.
func looseDifficulty(v any) int {
	switch d := v.(type) {
	case float64:
		return int(d)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(d), 64); err == nil {
			return int(f)
		}
	}
	return 0
}

func parseTimestamp(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.ParseInLocation(legacyTimeLayout, s, time.Local); err == nil {
		return t
	}
	return time.Time{}
}

func qidString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return ""
	}
}
