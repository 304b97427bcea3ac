package roots

import (
	"fmt"
	"math"
)

// Func is a scalar objective. It must be pure for the duration of a solve.
type Func func(x float64) float64

// Bracket is an interval [Low, High] expected to contain a sign change.
type Bracket struct {
	Low  float64
	High float64
}

func (b Bracket) validate() error {
	if !isFinite(b.Low) || !isFinite(b.High) || b.Low >= b.High {
		return fmt.Errorf("%w: got [%g, %g]", ErrInvalidBracket, b.Low, b.High)
	}
	return nil
}

// Width returns High - Low.
func (b Bracket) Width() float64 { return b.High - b.Low }

// Seed carries the method-specific start data of a [Solver].
// Bracketing methods read Bracket, Newton reads X0.
type Seed struct {
	Bracket Bracket
	X0      float64
}

// DefaultDerivativeStep is the central-difference step used when
// Config.DerivativeStep is left at zero.
const DefaultDerivativeStep = 1e-6

type Config struct {
	Tolerance      float64
	MaxIterations  int
	DerivativeStep float64
	// Observer, if set, is called once per completed iteration.
	Observer Observer
}

func DefaultConfig() Config {
	return Config{
		Tolerance:      1e-9,
		MaxIterations:  100,
		DerivativeStep: DefaultDerivativeStep,
	}
}

func (c Config) validate() error {
	if !isFinite(c.Tolerance) || c.Tolerance <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidTolerance, c.Tolerance)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxIterations, c.MaxIterations)
	}
	if c.DerivativeStep != 0 && (!isFinite(c.DerivativeStep) || c.DerivativeStep < 0) {
		return fmt.Errorf("%w: got %g", ErrInvalidStep, c.DerivativeStep)
	}
	return nil
}

func (c Config) step() float64 {
	if c.DerivativeStep == 0 {
		return DefaultDerivativeStep
	}
	return c.DerivativeStep
}

// IterationState is the per-iteration snapshot handed to an [Observer].
// Low and High are zero for Newton.
type IterationState struct {
	Method    string
	Iteration int
	X         float64
	Previous  float64
	Residual  float64
	Low       float64
	High      float64
}

type Observer interface {
	OnIterate(s IterationState)
}

// ObserverFunc adapts a function to the [Observer] interface.
type ObserverFunc func(s IterationState)

func (fn ObserverFunc) OnIterate(s IterationState) { fn(s) }

// FailureKind classifies why a solve did not converge.
type FailureKind int

const (
	None FailureKind = iota
	NoSignChange
	ZeroDerivative
	DidNotConverge
	NumericalInstability
)

func (k FailureKind) String() string {
	switch k {
	case None:
		return "none"
	case NoSignChange:
		return "no sign change"
	case ZeroDerivative:
		return "zero derivative"
	case DidNotConverge:
		return "did not converge"
	case NumericalInstability:
		return "numerical instability"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

func (k FailureKind) sentinel() error {
	switch k {
	case NoSignChange:
		return ErrNoSignChange
	case ZeroDerivative:
		return ErrZeroDerivative
	case DidNotConverge:
		return ErrDidNotConverge
	case NumericalInstability:
		return ErrNumericalInstability
	default:
		return nil
	}
}

// Result is the outcome of a solve. When Converged is false, Root holds the
// last estimate and Reason says why iteration stopped.
type Result struct {
	Method      string
	Converged   bool
	Root        float64
	Residual    float64
	Iterations  int
	Evaluations int
	Reason      FailureKind
}

// Err returns nil for a converged result and a *SolveError otherwise.
func (r Result) Err() error {
	if r.Converged {
		return nil
	}
	return &SolveError{Method: r.Method, Reason: r.Reason, Estimate: r.Root}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// counted wraps f so that every call increments *n.
func counted(f Func, n *int) Func {
	return func(x float64) float64 {
		*n++
		return f(x)
	}
}
