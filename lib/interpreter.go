package lib

import (
	"io/ioutil"
	"unicode"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultVariable is the variable symbol used when none is configured.
const DefaultVariable = 'x'

// Interpreter runs the tokenize, split, normalize, solve and verify stages
// for one equation at a time. It holds no per-call state and may be shared
// between goroutines.
type Interpreter struct {
	variable  rune
	lenient   bool
	tolerance float64
	logger    logrus.FieldLogger
	metrics   *Metrics
}

type Option func(*Interpreter)

// WithVariable sets the variable symbol. It must be a single letter.
func WithVariable(variable rune) Option {
	return func(in *Interpreter) {
		in.variable = variable
	}
}

// WithLenient keeps the permissive behavior of skipping unknown characters
// and tolerating a missing or repeated '='.
func WithLenient(lenient bool) Option {
	return func(in *Interpreter) {
		in.lenient = lenient
	}
}

func WithTolerance(tolerance float64) Option {
	return func(in *Interpreter) {
		in.tolerance = tolerance
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(in *Interpreter) {
		in.logger = logger
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(in *Interpreter) {
		in.metrics = metrics
	}
}

func NewInterpreter(opts ...Option) (*Interpreter, error) {
	in := &Interpreter{
		variable:  DefaultVariable,
		tolerance: DefaultTolerance,
		logger:    discardLogger(),
	}
	for _, opt := range opts {
		opt(in)
	}

	if err := validateVariable(in.variable); err != nil {
		return nil, err
	}
	if in.tolerance <= 0 {
		return nil, errors.Errorf("tolerance must be positive, got %g", in.tolerance)
	}
	return in, nil
}

// NewInterpreterFromConfig builds an interpreter from a loaded config.
func NewInterpreterFromConfig(cfg Config, logger logrus.FieldLogger, metrics *Metrics) (*Interpreter, error) {
	variable, err := cfg.VariableRune()
	if err != nil {
		return nil, err
	}
	return NewInterpreter(
		WithVariable(variable),
		WithLenient(cfg.Lenient),
		WithTolerance(cfg.Tolerance),
		WithLogger(logger),
		WithMetrics(metrics),
	)
}

func validateVariable(variable rune) error {
	if variable > unicode.MaxASCII || !unicode.IsLetter(variable) {
		return errors.Errorf("variable must be a single ASCII letter, got %q", variable)
	}
	return nil
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.Out = ioutil.Discard
	return logger
}

// Variable returns the variable symbol this interpreter solves for.
func (in *Interpreter) Variable() rune {
	return in.variable
}

// Interpret solves a single equation such as "2x+3=7". The solution is
// returned even when substituting it back does not reproduce the equation;
// verification only shows up in the logs and metrics.
func (in *Interpreter) Interpret(equation string) (Solution, error) {
	trace, err := in.Trace(equation)
	if err != nil {
		return Solution{}, err
	}
	return trace.Solution, nil
}

// Trace runs the pipeline and returns every intermediate result. Each stage
// is also logged at debug level.
func (in *Interpreter) Trace(equation string) (Trace, error) {
	trace, err := in.trace(equation)
	if err != nil {
		in.logger.WithField("equation", equation).WithError(err).Debug("interpretation failed")
		in.metrics.observeError()
		return Trace{}, err
	}
	in.metrics.observeSolution(trace.Solution, trace.Verification)
	return trace, nil
}

func (in *Interpreter) trace(equation string) (Trace, error) {
	logger := in.logger.WithField("equation", equation)
	trace := Trace{Equation: equation}

	buffer := newTokenBuffer()
	err := lex(equation, lexOptions{variable: in.variable, lenient: in.lenient}, buffer.Write)
	if err != nil {
		return Trace{}, errors.Wrap(err, "tokenize")
	}
	trace.Tokens = buffer.Tokens()
	logger.WithField("stage", "tokenize").Debugf("Tokens: %s", formatTokens(trace.Tokens))

	trace.Sides, err = split(buffer, in.lenient)
	if err != nil {
		return Trace{}, errors.Wrap(err, "split")
	}
	logger.WithField("stage", "split").Debugf("Parsed equation: %s", trace.Sides)

	trace.Canonical, err = normalize(trace.Sides, in.variable)
	if err != nil {
		return Trace{}, errors.Wrap(err, "normalize")
	}
	logger.WithField("stage", "normalize").Debugf("Normalized equation: %s", trace.Canonical)

	trace.Solution = solve(trace.Canonical)
	logger.WithField("stage", "solve").Debugf("Solution: %s", trace.Solution)

	trace.Verification = verify(equation, trace.Solution, in.variable, in.tolerance)
	verifyLogger := logger.WithField("stage", "verify")
	switch {
	case !trace.Verification.Checked:
	case trace.Verification.Err != nil:
		verifyLogger.WithError(trace.Verification.Err).Warn("could not verify solution")
	case !trace.Verification.Matched:
		verifyLogger.WithFields(logrus.Fields{
			"left":  trace.Verification.Left,
			"right": trace.Verification.Right,
		}).Warn("solution does not satisfy the equation")
	default:
		verifyLogger.Debugf("Verified: %g = %g", trace.Verification.Left, trace.Verification.Right)
	}

	return trace, nil
}

var defaultInterpreter, _ = NewInterpreter()

// Interpret solves an equation in x with strict parsing.
func Interpret(equation string) (Solution, error) {
	return defaultInterpreter.Interpret(equation)
}
