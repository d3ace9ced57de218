package lib

import (
	"fmt"
	"math/big"
	"strings"
)

// EquationSides holds the term tokens on each side of the equals sign.
// Neither side contains an Equals token.
type EquationSides struct {
	Left  []token
	Right []token
}

func (s EquationSides) String() string {
	return fmt.Sprintf("{left: %s, right: %s}", formatTokens(s.Left), formatTokens(s.Right))
}

// Term is a single parsed token: a pure constant or a multiple of the
// variable, never both.
type Term struct {
	Coefficient int64
	Constant    int64
}

// CanonicalEquation is Coefficient*x = Constant.
type CanonicalEquation struct {
	Coefficient int64
	Constant    int64
}

func (eq CanonicalEquation) String() string {
	return fmt.Sprintf("{coefficient: %d, constant: %d}", eq.Coefficient, eq.Constant)
}

// Equation renders the canonical form back into the input grammar, e.g.
// "2x=4" or "-x=3", using the given variable symbol.
func (eq CanonicalEquation) Equation(variable rune) string {
	var b strings.Builder
	switch eq.Coefficient {
	case 1:
	case -1:
		b.WriteByte('-')
	default:
		fmt.Fprintf(&b, "%d", eq.Coefficient)
	}
	b.WriteRune(variable)
	fmt.Fprintf(&b, "=%d", eq.Constant)
	return b.String()
}

type SolutionKind int

const (
	SolutionUnique SolutionKind = iota
	SolutionInfinite
	SolutionNone
)

func (k SolutionKind) String() string {
	switch k {
	case SolutionUnique:
		return "unique"
	case SolutionInfinite:
		return "infinite"
	case SolutionNone:
		return "none"
	default:
		return fmt.Sprintf("SolutionKind(%d)", int(k))
	}
}

// Solution is the outcome of solving a canonical equation. Value is only set
// for SolutionUnique and holds the exact quotient.
type Solution struct {
	Kind  SolutionKind
	Value *big.Rat
}

func UniqueSolution(value *big.Rat) Solution {
	return Solution{Kind: SolutionUnique, Value: value}
}

// Float64 returns the nearest float64 to a unique solution's value, and 0 for
// the other kinds.
func (s Solution) Float64() float64 {
	if s.Kind != SolutionUnique || s.Value == nil {
		return 0
	}
	f, _ := s.Value.Float64()
	return f
}

func (s Solution) String() string {
	switch s.Kind {
	case SolutionUnique:
		if s.Value == nil {
			return "<nil>"
		}
		if s.Value.IsInt() {
			return s.Value.Num().String()
		}
		return fmt.Sprintf("%s (%s)", s.Value.RatString(), s.Value.FloatString(10))
	case SolutionInfinite:
		return "infinitely many solutions"
	case SolutionNone:
		return "no solution"
	default:
		return s.Kind.String()
	}
}

// Trace is every intermediate result of one pass through the pipeline.
type Trace struct {
	Equation     string
	Tokens       []token
	Sides        EquationSides
	Canonical    CanonicalEquation
	Solution     Solution
	Verification Verification
}

// TokenStrings returns the signed source text of each token.
func (t Trace) TokenStrings() []string {
	out := make([]string, 0, len(t.Tokens))
	for _, tok := range t.Tokens {
		out = append(out, tok.String())
	}
	return out
}
