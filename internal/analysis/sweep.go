package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/rootlab/internal/roots"
)

// baselineTolerance is the tolerance of the reference solve every sweep
// point is measured against.
const baselineTolerance = 1e-15

// SweepPoint is one method solved at one tolerance.
type SweepPoint struct {
	Tolerance   float64
	Method      string
	Converged   bool
	Reason      roots.FailureKind
	Iterations  int
	Evaluations int
	AbsError    float64
}

type Sweep struct {
	Baseline   float64
	Tolerances []float64
	Methods    []string
	Points     []SweepPoint
}

// LogTolerances returns n tolerances spaced evenly in log scale from from to
// to, both inclusive.
func LogTolerances(from, to float64, n int) []float64 {
	if n < 2 {
		return []float64{from}
	}
	return floats.LogSpan(make([]float64, n), from, to)
}

// ToleranceSweep solves f with every solver at every tolerance and measures
// each result against a tight reference solve on seed's bracket.
func ToleranceSweep(f roots.Func, seed roots.Seed, solvers []roots.Solver, tolerances []float64, maxIter int) (*Sweep, error) {
	if len(tolerances) == 0 {
		return nil, fmt.Errorf("analysis: no tolerances")
	}

	ref, err := roots.Reference(f, seed.Bracket, roots.Config{
		Tolerance:     baselineTolerance,
		MaxIterations: max(maxIter, 200),
	})
	if err != nil {
		return nil, fmt.Errorf("analysis: baseline: %w", err)
	}
	if !ref.Converged {
		return nil, fmt.Errorf("analysis: baseline: %w", ref.Err())
	}

	sweep := &Sweep{
		Baseline:   ref.Root,
		Tolerances: append([]float64(nil), tolerances...),
		Points:     make([]SweepPoint, 0, len(solvers)*len(tolerances)),
	}
	for _, s := range solvers {
		sweep.Methods = append(sweep.Methods, s.Name())
	}

	for _, tol := range tolerances {
		cfg := roots.Config{Tolerance: tol, MaxIterations: maxIter}
		for _, s := range solvers {
			res, err := s.Solve(f, seed, cfg)
			if err != nil {
				return nil, fmt.Errorf("analysis: %s at tol %g: %w", s.Name(), tol, err)
			}
			sweep.Points = append(sweep.Points, SweepPoint{
				Tolerance:   tol,
				Method:      s.Name(),
				Converged:   res.Converged,
				Reason:      res.Reason,
				Iterations:  res.Iterations,
				Evaluations: res.Evaluations,
				AbsError:    math.Abs(res.Root - ref.Root),
			})
		}
	}

	return sweep, nil
}

// Iterations returns method's iteration counts in tolerance order.
func (s *Sweep) Iterations(method string) []float64 {
	out := make([]float64, 0, len(s.Tolerances))
	for _, p := range s.Points {
		if p.Method == method {
			out = append(out, float64(p.Iterations))
		}
	}
	return out
}

// Errors returns method's absolute errors in tolerance order.
func (s *Sweep) Errors(method string) []float64 {
	out := make([]float64, 0, len(s.Tolerances))
	for _, p := range s.Points {
		if p.Method == method {
			out = append(out, p.AbsError)
		}
	}
	return out
}
