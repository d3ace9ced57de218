package lib

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// DefaultTolerance is the largest difference between the two evaluated sides
// that still counts as a match.
const DefaultTolerance = 1e-10

// Verification is the result of substituting a unique solution back into
// the original equation. It never affects the solution returned to callers.
type Verification struct {
	Checked bool
	Matched bool
	Left    float64
	Right   float64
	Err     error
}

func (v Verification) String() string {
	switch {
	case !v.Checked:
		return "skipped"
	case v.Err != nil:
		return "failed: " + v.Err.Error()
	case v.Matched:
		return "match"
	default:
		return "mismatch"
	}
}

// verify substitutes a unique solution into both sides of the original text
// and compares the results. Other solution kinds are not checked.
func verify(original string, solution Solution, variable rune, tolerance float64) Verification {
	if solution.Kind != SolutionUnique {
		return Verification{}
	}

	result := Verification{Checked: true}
	parts := strings.Split(original, "=")
	if len(parts) != 2 {
		result.Err = errors.Errorf("expected one '=' but found %d", len(parts)-1)
		return result
	}

	value := solution.Float64()
	left, err := evaluateSide(parts[0], variable, value)
	if err != nil {
		result.Err = errors.Wrap(err, "left side")
		return result
	}
	right, err := evaluateSide(parts[1], variable, value)
	if err != nil {
		result.Err = errors.Wrap(err, "right side")
		return result
	}

	result.Left = left
	result.Right = right
	result.Matched = math.Abs(left-right) < tolerance
	return result
}

// evaluateSide computes the value of one side of an equation with the
// variable bound to value. It only understands the tokenizer's grammar: a
// sum of signed integers and signed integer multiples of the variable.
func evaluateSide(expr string, variable rune, value float64) (float64, error) {
	tokens, err := tokenize(expr, lexOptions{variable: variable, lenient: true})
	if err != nil {
		return 0, err
	}
	if len(tokens) == 0 {
		return 0, errors.New("empty expression")
	}

	total := 0.0
	for _, tok := range tokens {
		term, err := parseTerm(tok.String(), variable)
		if err != nil {
			return 0, err
		}
		total += float64(term.Coefficient)*value + float64(term.Constant)
	}
	return total, nil
}
