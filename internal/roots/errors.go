package roots

import (
	"errors"
	"fmt"
)

// Precondition errors, returned before the objective is evaluated.
var (
	// ErrInvalidTolerance indicates a tolerance that is not a positive finite number.
	ErrInvalidTolerance = errors.New("roots: tolerance must be positive and finite")

	// ErrInvalidMaxIterations indicates a non-positive iteration budget.
	ErrInvalidMaxIterations = errors.New("roots: max iterations must be positive")

	// ErrInvalidBracket indicates low >= high or a non-finite endpoint.
	ErrInvalidBracket = errors.New("roots: bracket must satisfy low < high with finite endpoints")

	// ErrInvalidStep indicates a derivative step that is not a positive finite number.
	ErrInvalidStep = errors.New("roots: derivative step must be positive and finite")

	// ErrInvalidStart indicates a non-finite Newton starting point.
	ErrInvalidStart = errors.New("roots: starting point must be finite")

	// ErrNilFunc indicates a missing objective.
	ErrNilFunc = errors.New("roots: objective function is nil")
)

// Runtime failure sentinels, matched through [SolveError].
var (
	ErrNoSignChange         = errors.New("roots: bracket endpoints have the same sign")
	ErrZeroDerivative       = errors.New("roots: derivative is zero")
	ErrDidNotConverge       = errors.New("roots: iteration budget exhausted")
	ErrNumericalInstability = errors.New("roots: non-finite intermediate value")
)

// SolveError describes a failed [Result] as an error.
type SolveError struct {
	Method   string
	Reason   FailureKind
	Estimate float64
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("%s: %s (last estimate %g)", e.Method, e.Reason, e.Estimate)
}

func (e *SolveError) Unwrap() error {
	return e.Reason.sentinel()
}
