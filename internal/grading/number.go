package grading

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
)

// Numeric answers, stored and submitted alike, are read by trying each
// parser below in order and taking the first success:
//
//  1. decimal: anything strconv.ParseFloat accepts ("0.5", "-3", "1e3")
//  2. expression: float arithmetic with + - * / % ^ ** and
//     parentheses, the constants pi and e, and the functions sqrt, pow,
//     abs, floor, ceil, round, e.g. "1/2", "3*(2+1)", "sqrt(2)/2"
//
// Results must be finite.
var numberParsers = []struct {
	name  string
	parse func(string) (float64, error)
}{
	{"decimal", parseDecimal},
	{"expression", parseExpression},
}

// maxExpressionLen bounds the expression grammar to answer-sized input.
const maxExpressionLen = 64

var (
	errEmpty     = errors.New("empty input")
	errNotFinite = errors.New("result is not finite")

	expressionChars = regexp.MustCompile(`^[0-9A-Za-z.+\-*/%^(), ]+$`)

	expressionEnv = map[string]any{
		"pi":   math.Pi,
		"e":    math.E,
		"sqrt": math.Sqrt,
		"pow":  math.Pow,
		"fmod": math.Mod,
	}

	expressionOptions = []expr.Option{
		expr.Env(expressionEnv),
		expr.Patch(floatLiterals{}),
		expr.Operator("%", "fmod"),
	}
)

// floatLiterals rewrites integer literals as floats so arithmetic never
// wraps and every operator works on one type.
type floatLiterals struct{}

func (floatLiterals) Visit(node *ast.Node) {
	if n, ok := (*node).(*ast.IntegerNode); ok {
		ast.Patch(node, &ast.FloatNode{Value: float64(n.Value)})
	}
}

// ParseNumber reads s with the ordered parser list.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errEmpty
	}
	var errs []error
	for _, p := range numberParsers {
		v, err := p.parse(s)
		if err == nil {
			return v, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", p.name, err))
	}
	return 0, fmt.Errorf("parse number %q: %w", s, errors.Join(errs...))
}

func parseDecimal(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return finite(v)
}

func parseExpression(s string) (float64, error) {
	s = normalizeOps(s)
	if len(s) > maxExpressionLen {
		return 0, fmt.Errorf("expression longer than %d characters", maxExpressionLen)
	}
	if !expressionChars.MatchString(s) || strings.Contains(s, "..") {
		return 0, errors.New("unsupported characters in expression")
	}

	program, err := expr.Compile(s, expressionOptions...)
	if err != nil {
		return 0, fmt.Errorf("compile: %w", err)
	}
	out, err := expr.Run(program, expressionEnv)
	if err != nil {
		return 0, fmt.Errorf("evaluate: %w", err)
	}

	v, ok := out.(float64)
	if !ok {
		return 0, fmt.Errorf("expression result %T is not a number", out)
	}
	return finite(v)
}

// normalizeOps maps typographic operators to their ASCII forms.
func normalizeOps(s string) string {
	r := strings.NewReplacer("×", "*", "÷", "/", "−", "-")
	return r.Replace(s)
}

func finite(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	return v, nil
}
