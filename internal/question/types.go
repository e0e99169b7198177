package question

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind is the answer type of a question. The set is closed: every
// grading strategy switches over exactly these values.
type Kind string

const (
	KindMCQ     Kind = "mcq"
	KindNumeric Kind = "numeric"
	KindText    Kind = "text"
)

// DefaultTolerance is the absolute tolerance for numeric answers when the
// question does not set one.
const DefaultTolerance = 0.01

// DefaultDifficulty is used when a record has no usable difficulty.
const DefaultDifficulty = 1

// ParseKind maps a stored type string to a Kind. An empty type is a
// multiple-choice question; anything unrecognised is graded as free text.
func ParseKind(s string) Kind {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindMCQ:
		return KindMCQ
	case KindNumeric:
		return KindNumeric
	default:
		return KindText
	}
}

// Question is an immutable entry of the question bank.
type Question struct {
	// ID is an opaque identifier. Empty when the source record has none.
	ID string

	// Subject is the case-insensitive grouping key, e.g. "Physics".
	Subject string

	// Topic is a free-text sub-grouping used for weak-area analysis.
	// May be empty.
	Topic string

	// Difficulty is nominally 1-5.
	Difficulty int

	Kind Kind

	// Text is the prompt shown to the learner.
	Text string

	// Answer is the canonical answer in string form. For mcq it is the
	// text of the correct option; for numeric it is a number or an
	// arithmetic expression such as "1/2".
	Answer string

	// Options is the ordered option list (mcq only).
	Options []string

	// Tolerance is the absolute tolerance for numeric answers.
	Tolerance float64

	// Aliases are alternate accepted answers (text only).
	Aliases []string

	// Explanation is shown after a wrong answer. Optional.
	Explanation string

	// Exam tags the question with a target exam such as "JEE". Optional.
	Exam string
}

// record is the wire shape of one question document.
type record struct {
	ID          flexString      `json:"id"`
	Subject     string          `json:"subject"`
	Topic       optString       `json:"topic"`
	Difficulty  flexInt         `json:"difficulty"`
	Type        optString       `json:"type"`
	Question    string          `json:"question"`
	Answer      flexString      `json:"answer"`
	Options     json.RawMessage `json:"options"`
	Tolerance   *flexFloat      `json:"tolerance"`
	Aliases     flexList        `json:"aliases"`
	Explanation optString       `json:"explanation"`
	Exam        optString       `json:"exam"`
}

// toQuestion applies the defaults for every optional field.
func (r record) toQuestion() Question {
	q := Question{
		ID:          string(r.ID),
		Subject:     strings.TrimSpace(r.Subject),
		Topic:       strings.TrimSpace(string(r.Topic)),
		Difficulty:  DefaultDifficulty,
		Kind:        ParseKind(string(r.Type)),
		Text:        r.Question,
		Answer:      string(r.Answer),
		Tolerance:   DefaultTolerance,
		Explanation: string(r.Explanation),
		Exam:        strings.TrimSpace(string(r.Exam)),
	}
	if r.Difficulty.valid {
		q.Difficulty = r.Difficulty.n
	}
	if r.Tolerance != nil && r.Tolerance.valid {
		q.Tolerance = math.Abs(r.Tolerance.f)
	}
	q.Aliases = r.Aliases

	opts, labels := decodeOptions(r.Options)
	q.Options = opts
	// Labelled options ({"A": "...", "B": "..."}) may name the correct
	// option by its label instead of its text.
	if labels != nil {
		if i, ok := labels[strings.TrimSpace(q.Answer)]; ok {
			q.Answer = opts[i]
		}
	}
	return q
}

// decodeOptions accepts either an ordered list or a label->text object.
// For the object form it also returns the label index.
func decodeOptions(raw json.RawMessage) ([]string, map[string]int) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var list []flexString
	if err := json.Unmarshal(raw, &list); err == nil {
		out := make([]string, len(list))
		for i, o := range list {
			out[i] = string(o)
		}
		return out, nil
	}

	var byLabel map[string]flexString
	if err := json.Unmarshal(raw, &byLabel); err != nil {
		return nil, nil
	}
	keys := make([]string, 0, len(byLabel))
	for k := range byLabel {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, len(keys))
	labels := make(map[string]int, len(keys))
	for i, k := range keys {
		out[i] = string(byLabel[k])
		labels[k] = i
	}
	return out, labels
}

// flexString decodes a JSON string, number or bool into its text form.
// null, objects and arrays decode to "".
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) || b[0] == '{' || b[0] == '[' {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	// Numbers and booleans keep their literal spelling.
	*s = flexString(string(b))
	return nil
}

// optString keeps a JSON string and decodes any other value to "".
type optString string

func (s *optString) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		*s = ""
		return nil
	}
	*s = optString(v)
	return nil
}

// flexList decodes a list of scalars, or a single scalar as a one-item
// list. Other values decode to nil.
type flexList []string

func (l *flexList) UnmarshalJSON(b []byte) error {
	var items []flexString
	if err := json.Unmarshal(b, &items); err == nil {
		out := make([]string, 0, len(items))
		for _, it := range items {
			if it != "" {
				out = append(out, string(it))
			}
		}
		*l = out
		return nil
	}
	var one flexString
	if err := json.Unmarshal(b, &one); err == nil && one != "" {
		*l = flexList{string(one)}
		return nil
	}
	*l = nil
	return nil
}

// flexInt decodes integers, floats (truncated) and numeric strings.
// Anything else leaves valid unset rather than failing the record.
type flexInt struct {
	n     int
	valid bool
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	switch t := v.(type) {
	case float64:
		if !math.IsInf(t, 0) && !math.IsNaN(t) {
			f.n, f.valid = int(t), true
		}
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.Atoi(s); err == nil {
			f.n, f.valid = n, true
		} else if x, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(x, 0) && !math.IsNaN(x) {
			f.n, f.valid = int(x), true
		}
	}
	return nil
}

// flexFloat decodes a number or a numeric string.
type flexFloat struct {
	f     float64
	valid bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	switch t := v.(type) {
	case float64:
		f.f, f.valid = t, true
	case string:
		if x, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil && !math.IsNaN(x) && !math.IsInf(x, 0) {
			f.f, f.valid = x, true
		}
	}
	return nil
}
