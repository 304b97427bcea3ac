package roots

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Comparison is a solver outcome measured against a known root.
type Comparison struct {
	Method      string
	Converged   bool
	Reason      FailureKind
	Root        float64
	TrueRoot    float64
	AbsError    float64
	RelError    float64
	Iterations  int
	Evaluations int
}

// Compare measures r against trueRoot. For a failed result the last estimate
// is measured. RelError falls back to AbsError when trueRoot is zero.
func Compare(r Result, trueRoot float64) Comparison {
	abs := math.Abs(r.Root - trueRoot)
	rel := abs
	if trueRoot != 0 {
		rel = abs / math.Abs(trueRoot)
	}
	return Comparison{
		Method:      r.Method,
		Converged:   r.Converged,
		Reason:      r.Reason,
		Root:        r.Root,
		TrueRoot:    trueRoot,
		AbsError:    abs,
		RelError:    rel,
		Iterations:  r.Iterations,
		Evaluations: r.Evaluations,
	}
}

// Agrees reports whether both comparisons converged and their roots match
// within tol, absolutely or relatively.
func (c Comparison) Agrees(other Comparison, tol float64) bool {
	if !c.Converged || !other.Converged {
		return false
	}
	return scalar.EqualWithinAbsOrRel(c.Root, other.Root, tol, tol)
}
