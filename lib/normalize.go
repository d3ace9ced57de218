package lib

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// TermError reports a term that does not fit the grammar, or a sum that does
// not fit in an int64.
type TermError struct {
	Term string
	Err  error
}

func (e *TermError) Error() string {
	return fmt.Sprintf("malformed term %q: %v", e.Term, e.Err)
}

func (e *TermError) Unwrap() error {
	return e.Err
}

var errOverflow = errors.New("integer overflow")

// parseTerm turns the text of one term token into a coefficient/constant
// pair.
func parseTerm(text string, variable rune) (Term, error) {
	v := string(variable)
	if !strings.Contains(text, v) {
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Term{}, &TermError{Term: text, Err: err}
		}
		return Term{Constant: n}, nil
	}

	coef := strings.TrimSuffix(text, v)
	if strings.Contains(coef, v) {
		return Term{}, &TermError{Term: text, Err: errors.New("variable appears more than once")}
	}

	switch coef {
	case "", "+":
		return Term{Coefficient: 1}, nil
	case "-":
		return Term{Coefficient: -1}, nil
	}

	n, err := strconv.ParseInt(coef, 10, 64)
	if err != nil {
		return Term{}, &TermError{Term: text, Err: err}
	}
	return Term{Coefficient: n}, nil
}

// normalize folds both sides into coefficient*x = constant by moving
// variable terms left and constants right.
func normalize(sides EquationSides, variable rune) (CanonicalEquation, error) {
	leftCoef, leftConst, err := sumTerms(sides.Left, variable)
	if err != nil {
		return CanonicalEquation{}, errors.Wrap(err, "left side")
	}
	rightCoef, rightConst, err := sumTerms(sides.Right, variable)
	if err != nil {
		return CanonicalEquation{}, errors.Wrap(err, "right side")
	}

	coef, ok := subInt64(leftCoef, rightCoef)
	if !ok {
		return CanonicalEquation{}, &TermError{Term: sides.String(), Err: errOverflow}
	}
	constant, ok := subInt64(rightConst, leftConst)
	if !ok {
		return CanonicalEquation{}, &TermError{Term: sides.String(), Err: errOverflow}
	}

	return CanonicalEquation{Coefficient: coef, Constant: constant}, nil
}

func sumTerms(tokens []token, variable rune) (int64, int64, error) {
	var coef, constant int64
	for _, tok := range tokens {
		term, err := parseTerm(tok.String(), variable)
		if err != nil {
			return 0, 0, err
		}
		var ok bool
		if coef, ok = addInt64(coef, term.Coefficient); !ok {
			return 0, 0, &TermError{Term: tok.String(), Err: errOverflow}
		}
		if constant, ok = addInt64(constant, term.Constant); !ok {
			return 0, 0, &TermError{Term: tok.String(), Err: errOverflow}
		}
	}
	return coef, constant, nil
}

func addInt64(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

func subInt64(a, b int64) (int64, bool) {
	if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
		return 0, false
	}
	return a - b, true
}
