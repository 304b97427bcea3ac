package roots

import (
	"fmt"
	"math"
)

const methodNewton = "newton"

// Newton iterates x = x - f(x)/f'(x) from x0 with a numerical derivative.
// Convergence is local only; no damping or fallback method is applied.
func Newton(f Func, x0 float64, cfg Config) (Result, error) {
	if f == nil {
		return Result{}, ErrNilFunc
	}
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}
	if !isFinite(x0) {
		return Result{}, fmt.Errorf("%w: got %g", ErrInvalidStart, x0)
	}

	evals := 0
	f = counted(f, &evals)
	res := Result{Method: methodNewton}
	h := cfg.step()

	x := x0
	fx := f(x)
	for i := 1; i <= cfg.MaxIterations; i++ {
		if !isFinite(fx) {
			return fail(res, NumericalInstability, x, fx, i-1, evals), nil
		}

		dfx := Derivative(f, x, h)
		if !isFinite(dfx) {
			return fail(res, NumericalInstability, x, fx, i-1, evals), nil
		}
		if dfx == 0 {
			return fail(res, ZeroDerivative, x, fx, i-1, evals), nil
		}

		x1 := x - fx/dfx
		if !isFinite(x1) {
			return fail(res, NumericalInstability, x, fx, i-1, evals), nil
		}
		fx1 := f(x1)

		cfg.notify(IterationState{
			Method: methodNewton, Iteration: i,
			X: x1, Previous: x, Residual: fx1,
		})

		if !isFinite(fx1) {
			return fail(res, NumericalInstability, x1, fx1, i, evals), nil
		}
		if x1 == x || math.Abs(x1-x) < cfg.Tolerance*math.Abs(x1) {
			return converge(res, x1, fx1, i, evals), nil
		}
		x, fx = x1, fx1
	}

	return fail(res, DidNotConverge, x, fx, cfg.MaxIterations, evals), nil
}
