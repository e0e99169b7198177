package grading

import (
	"testing"

	"github.com/abhisek/tutor/internal/question"
)

func TestEvaluate_MCQ(t *testing.T) {
	q := question.Question{
		Kind:    question.KindMCQ,
		Answer:  "London",
		Options: []string{"Paris", "London", "Rome"},
	}

	tests := []struct {
		input string
		want  bool
	}{
		{"2", true},
		{"london", true},
		{"  LONDON ", true},
		{" 2 ", true},
		{"1", false},
		{"5", false},
		{"0", false},
		{"-1", false},
		{"+2", false},
		{"02", true},
		{"Berlin", false},
		{"", false},
	}

	for _, tc := range tests {
		got := Evaluate(q, tc.input)
		if got.Correct != tc.want {
			t.Errorf("Evaluate(%q, London/mcq) = %v, want %v", tc.input, got.Correct, tc.want)
		}
		if got.Canonical != "london" {
			t.Errorf("Canonical = %q, want %q", got.Canonical, "london")
		}
	}
}

func TestEvaluate_MCQOutOfRangeIndexIsLiteral(t *testing.T) {
	q := question.Question{
		Kind:    question.KindMCQ,
		Answer:  "12",
		Options: []string{"10", "11", "12"},
	}

	if !Evaluate(q, "3").Correct {
		t.Error("index 3 should resolve to option \"12\"")
	}
	if !Evaluate(q, "12").Correct {
		t.Error("out-of-range number should compare as option text")
	}
	if Evaluate(q, "1").Correct {
		t.Error("index 1 resolves to \"10\", want incorrect")
	}
}

func TestEvaluate_Numeric(t *testing.T) {
	q := question.Question{
		Kind:      question.KindNumeric,
		Answer:    "0.5",
		Tolerance: 0.01,
	}

	tests := []struct {
		input string
		want  bool
	}{
		{"0.5", true},
		{" .5 ", true},
		{"1/2", true},
		{"2/4", true},
		{"0.505", true},
		{"(3-2)/2", true},
		{"0.52", false},
		{"abc", false},
		{"", false},
		{"1/0", false},
		{"1/", false},
	}

	for _, tc := range tests {
		got := Evaluate(q, tc.input)
		if got.Correct != tc.want {
			t.Errorf("Evaluate(%q, 0.5/numeric) = %v, want %v", tc.input, got.Correct, tc.want)
		}
		if got.Canonical != "0.5" {
			t.Errorf("Canonical = %q, want %q", got.Canonical, "0.5")
		}
	}
}

func TestEvaluate_NumericExpressionAnswer(t *testing.T) {
	q := question.Question{
		Kind:      question.KindNumeric,
		Answer:    "1/3",
		Tolerance: 0.001,
	}

	if !Evaluate(q, "0.3333").Correct {
		t.Error("0.3333 should be within tolerance of 1/3")
	}
	if Evaluate(q, "0.33").Correct {
		t.Error("0.33 should be outside tolerance of 1/3")
	}
	if got := Evaluate(q, "0.5").Canonical; got != "1/3" {
		t.Errorf("Canonical = %q, want %q", got, "1/3")
	}
}

func TestEvaluate_NumericLargeProduct(t *testing.T) {
	q := question.Question{
		Kind:      question.KindNumeric,
		Answer:    "1.2e19",
		Tolerance: 0.01,
	}

	if !Evaluate(q, "3000000000*4000000000").Correct {
		t.Error("3000000000*4000000000 should equal 1.2e19")
	}
	if Evaluate(q, "-6446744073709551616").Correct {
		t.Error("a wrapped product must not match")
	}
}

func TestEvaluate_NumericUnparsableAnswer(t *testing.T) {
	q := question.Question{
		Kind:      question.KindNumeric,
		Answer:    "about five",
		Tolerance: 0.01,
	}
	got := Evaluate(q, "5")
	if got.Correct {
		t.Error("unparsable stored answer can never be matched")
	}
	if got.Canonical != "about five" {
		t.Errorf("Canonical = %q, want stored answer", got.Canonical)
	}
}

func TestEvaluate_Text(t *testing.T) {
	q := question.Question{
		Kind:    question.KindText,
		Answer:  "Newton",
		Aliases: []string{"Isaac Newton", " Sir Isaac "},
	}

	tests := []struct {
		input string
		want  bool
	}{
		{"newton", true},
		{"ISAAC NEWTON", true},
		{"sir isaac", true},
		{"Einstein", false},
		{"Newt", false},
		{"", false},
	}

	for _, tc := range tests {
		got := Evaluate(q, tc.input)
		if got.Correct != tc.want {
			t.Errorf("Evaluate(%q, Newton/text) = %v, want %v", tc.input, got.Correct, tc.want)
		}
		if got.Canonical != "Newton" {
			t.Errorf("Canonical = %q, want %q", got.Canonical, "Newton")
		}
	}
}
