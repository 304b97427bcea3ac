package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/rootlab/internal/roots"
)

// Sample evaluates f at n evenly spaced points on [lo, hi].
func Sample(f roots.Func, lo, hi float64, n int) (xs, ys []float64, err error) {
	if n < 2 {
		return nil, nil, fmt.Errorf("analysis: need at least 2 samples, got %d", n)
	}
	if !(lo < hi) {
		return nil, nil, fmt.Errorf("analysis: empty range [%g, %g]", lo, hi)
	}

	xs = floats.Span(make([]float64, n), lo, hi)
	ys = make([]float64, n)
	for i, x := range xs {
		ys[i] = f(x)
	}
	return xs, ys, nil
}

// SignChanges returns the sub-intervals of a sample across which y changes
// sign or hits zero. Non-finite samples never start or end a bracket.
func SignChanges(xs, ys []float64) []roots.Bracket {
	n := min(len(xs), len(ys))
	var out []roots.Bracket
	for i := 1; i < n; i++ {
		a, b := ys[i-1], ys[i]
		if !finite(a) || !finite(b) {
			continue
		}
		if a*b < 0 || a == 0 || (b == 0 && i == n-1) {
			out = append(out, roots.Bracket{Low: xs[i-1], High: xs[i]})
		}
	}
	return out
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
