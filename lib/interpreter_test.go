package lib

import (
	"math/big"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInterpreter(t *testing.T, opts ...Option) *Interpreter {
	in, err := NewInterpreter(opts...)
	require.NoError(t, err)
	return in
}

func requireUnique(t *testing.T, solution Solution, num, denom int64) {
	require.Equal(t, SolutionUnique, solution.Kind)
	require.Equal(t, 0, solution.Value.Cmp(big.NewRat(num, denom)), "got %s", solution.Value.RatString())
}

func TestInterpretExamples(t *testing.T) {
	tests := []struct {
		equation  string
		tokens    []string
		canonical CanonicalEquation
		kind      SolutionKind
		value     float64
	}{
		{"x+1=2", []string{"x", "+1", "=", "2"}, CanonicalEquation{1, 1}, SolutionUnique, 1},
		{"2x+3=7", []string{"2x", "+3", "=", "7"}, CanonicalEquation{2, 4}, SolutionUnique, 2},
		{"x=x", []string{"x", "=", "x"}, CanonicalEquation{0, 0}, SolutionInfinite, 0},
		{"x=x+1", []string{"x", "=", "x", "+1"}, CanonicalEquation{0, 1}, SolutionNone, 0},
		{"-x+5=2x-1", []string{"-x", "+5", "=", "2x", "-1"}, CanonicalEquation{-3, -6}, SolutionUnique, 2},
	}

	in := newTestInterpreter(t)
	for _, tt := range tests {
		t.Run(tt.equation, func(t *testing.T) {
			trace, err := in.Trace(tt.equation)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.tokens, trace.TokenStrings()); diff != "" {
				t.Fatalf("unexpected tokens (-want +got):\n%s", diff)
			}
			require.Equal(t, tt.canonical, trace.Canonical)
			require.Equal(t, tt.kind, trace.Solution.Kind)
			require.Equal(t, tt.value, trace.Solution.Float64())

			solution, err := in.Interpret(tt.equation)
			require.NoError(t, err)
			require.Equal(t, tt.kind, solution.Kind)
		})
	}
}

func TestInterpretRoundTrip(t *testing.T) {
	in := newTestInterpreter(t)
	for _, equation := range []string{"x+1=2", "2x+3=7", "-x+5=2x-1", "7x-3=2x+11", "3x=1", "-4x+9=1-x"} {
		t.Run(equation, func(t *testing.T) {
			trace, err := in.Trace(equation)
			require.NoError(t, err)
			require.Equal(t, SolutionUnique, trace.Solution.Kind)
			require.True(t, trace.Verification.Checked)
			require.NoError(t, trace.Verification.Err)
			require.True(t, trace.Verification.Matched)
			require.InDelta(t, trace.Verification.Left, trace.Verification.Right, DefaultTolerance)
		})
	}
}

func TestInterpretDeterministic(t *testing.T) {
	in := newTestInterpreter(t)
	first, err := in.Interpret("7x-3=2x+11")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := in.Interpret("7x-3=2x+11")
		require.NoError(t, err)
		require.Equal(t, first.Kind, again.Kind)
		require.Equal(t, 0, first.Value.Cmp(again.Value))
	}
	requireUnique(t, first, 14, 5)
}

func TestInterpretConcurrent(t *testing.T) {
	in := newTestInterpreter(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			solution, err := in.Interpret("-x+5=2x-1")
			assert.NoError(t, err)
			assert.Equal(t, 2.0, solution.Float64())
		}()
	}
	wg.Wait()
}

func TestInterpretPackageLevel(t *testing.T) {
	solution, err := Interpret("2x+3=7")
	require.NoError(t, err)
	requireUnique(t, solution, 2, 1)
}

func TestInterpretStrictErrors(t *testing.T) {
	in := newTestInterpreter(t)

	_, err := in.Interpret("2*x=4")
	var syntaxErr *SyntaxError
	require.True(t, errors.As(err, &syntaxErr))

	_, err = in.Interpret("2x+3")
	require.Equal(t, ErrMissingEquals, errors.Cause(err))

	_, err = in.Interpret("x=1=1")
	require.Equal(t, ErrExtraEquals, errors.Cause(err))

	_, err = in.Interpret("")
	require.Equal(t, ErrMissingEquals, errors.Cause(err))

	solution, err := in.Interpret("99999999999999999999x=1")
	var termErr *TermError
	require.True(t, errors.As(err, &termErr))
	require.Equal(t, Solution{}, solution)
}

func TestInterpretLenient(t *testing.T) {
	in := newTestInterpreter(t, WithLenient(true))

	// '*' is dropped, leaving "2x=4".
	solution, err := in.Interpret("2*x=4")
	require.NoError(t, err)
	requireUnique(t, solution, 2, 1)

	// The second '=' keeps accumulating on the right: x = 1 + 1.
	solution, err = in.Interpret("x=1=1")
	require.NoError(t, err)
	requireUnique(t, solution, 2, 1)

	// No '=' at all reads as "2x+3 = 0".
	solution, err = in.Interpret("2x+3")
	require.NoError(t, err)
	requireUnique(t, solution, -3, 2)

	// A bare sign is still a malformed term.
	_, err = in.Interpret("x+=1")
	var termErr *TermError
	require.True(t, errors.As(err, &termErr))
}

func TestInterpretVerificationDoesNotGate(t *testing.T) {
	logger, hook := test.NewNullLogger()
	in := newTestInterpreter(t, WithLenient(true), WithLogger(logger))

	// Lenient parsing reads this as x=1+1, but substituting x=2 into the
	// original text fails because it has two '='. The solution still comes
	// back untouched.
	trace, err := in.Trace("x=1=1")
	require.NoError(t, err)
	requireUnique(t, trace.Solution, 2, 1)
	require.Error(t, trace.Verification.Err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.WarnLevel, entry.Level)
	require.Equal(t, "verify", entry.Data["stage"])
}

func TestInterpretLogsStages(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	in := newTestInterpreter(t, WithLogger(logger))

	_, err := in.Interpret("2x+3=7")
	require.NoError(t, err)

	stages := []string{}
	for _, entry := range hook.AllEntries() {
		stages = append(stages, entry.Data["stage"].(string))
		require.Equal(t, "2x+3=7", entry.Data["equation"])
	}
	require.Equal(t, []string{"tokenize", "split", "normalize", "solve", "verify"}, stages)
	require.Equal(t, `Tokens: ["2x", "+3", "=", "7"]`, hook.AllEntries()[0].Message)
	require.Equal(t, "Normalized equation: {coefficient: 2, constant: 4}", hook.AllEntries()[2].Message)
}

func TestInterpretOtherVariable(t *testing.T) {
	in := newTestInterpreter(t, WithVariable('y'))
	require.Equal(t, 'y', in.Variable())

	solution, err := in.Interpret("3y-2=y+6")
	require.NoError(t, err)
	requireUnique(t, solution, 4, 1)

	_, err = in.Interpret("3x=6")
	require.Error(t, err)
}

func TestNewInterpreterValidation(t *testing.T) {
	_, err := NewInterpreter(WithVariable('+'))
	require.Error(t, err)

	_, err = NewInterpreter(WithVariable('7'))
	require.Error(t, err)

	_, err = NewInterpreter(WithTolerance(0))
	require.Error(t, err)
}

func TestInterpretMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	require.NoError(t, err)
	in := newTestInterpreter(t, WithMetrics(metrics))

	for _, equation := range []string{"x+1=2", "2x+3=7", "x=x", "x=x+1", "2*x=4"} {
		_, _ = in.Interpret(equation)
	}

	require.Equal(t, 2.0, testutil.ToFloat64(metrics.interpretations.WithLabelValues("unique")))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.interpretations.WithLabelValues("infinite")))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.interpretations.WithLabelValues("none")))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.interpretations.WithLabelValues("error")))
	require.Equal(t, 2.0, testutil.ToFloat64(metrics.verifications.WithLabelValues("match")))

	_, err = NewMetrics(reg)
	require.Error(t, err, "registering twice should fail")
}
