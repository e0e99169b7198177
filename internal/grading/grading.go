package grading

import (
	"math"
	"strconv"
	"strings"

	"github.com/abhisek/tutor/internal/question"
)

// Verdict is the outcome of grading one submission.
type Verdict struct {
	Correct bool

	// Canonical is the correct answer as it should be displayed,
	// returned whatever the outcome.
	Canonical string
}

// Evaluate grades a raw user answer against q. It never fails: malformed
// input of any kind is simply an incorrect answer.
//
// Normalization rules:
//   - Whitespace is trimmed and comparison is case-insensitive
//   - Multiple choice accepts the option text or its 1-based index
//   - Numeric answers are read with ParseNumber and compared within the
//     question's tolerance
//   - Text answers match the answer or any alias exactly
func Evaluate(q question.Question, input string) Verdict {
	switch q.Kind {
	case question.KindMCQ:
		return evaluateMCQ(q, input)
	case question.KindNumeric:
		return evaluateNumeric(q, input)
	case question.KindText:
		return evaluateText(q, input)
	default:
		return evaluateText(q, input)
	}
}

// evaluateMCQ resolves an in-range option index to the option text before
// comparing. An out-of-range number is compared as literal text.
func evaluateMCQ(q question.Question, input string) Verdict {
	canonical := normalize(q.Answer)
	choice := strings.TrimSpace(input)
	if choice == "" {
		return Verdict{Canonical: canonical}
	}

	if isDigits(choice) {
		if idx, err := strconv.Atoi(choice); err == nil && idx >= 1 && idx <= len(q.Options) {
			choice = q.Options[idx-1]
		}
	}
	return Verdict{
		Correct:   normalize(choice) == canonical,
		Canonical: canonical,
	}
}

func evaluateNumeric(q question.Question, input string) Verdict {
	v := Verdict{Canonical: strings.TrimSpace(q.Answer)}

	target, err := ParseNumber(q.Answer)
	if err != nil {
		return v
	}
	got, err := ParseNumber(input)
	if err != nil {
		return v
	}

	tol := q.Tolerance
	if tol < 0 {
		tol = -tol
	}
	v.Correct = math.Abs(got-target) <= tol
	return v
}

func evaluateText(q question.Question, input string) Verdict {
	v := Verdict{Canonical: strings.TrimSpace(q.Answer)}

	got := normalize(input)
	if got == "" {
		return v
	}
	if got == normalize(q.Answer) {
		v.Correct = true
		return v
	}
	for _, alias := range q.Aliases {
		if got == normalize(alias) {
			v.Correct = true
			return v
		}
	}
	return v
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// isDigits reports whether s is non-empty and all ASCII digits, so signed
// or spaced numbers are never read as option indexes.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
