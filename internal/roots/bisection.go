package roots

import "math"

const methodBisection = "bisection"

// Bisection halves br until successive midpoints agree to within the
// relative tolerance. The endpoints of br must have opposite signs, or one of
// them must be an exact zero.
func Bisection(f Func, br Bracket, cfg Config) (Result, error) {
	if err := validateBracketing(f, br, cfg); err != nil {
		return Result{}, err
	}

	evals := 0
	f = counted(f, &evals)
	res := Result{Method: methodBisection}

	xl, xu := br.Low, br.High
	fl, fu := f(xl), f(xu)

	if done, ok := checkEndpoints(res, xl, fl, xu, fu, evals); ok {
		return done, nil
	}

	xrOld := math.NaN()
	xr, fr := xl, fl
	for i := 1; i <= cfg.MaxIterations; i++ {
		xr = (xl + xu) / 2
		fr = f(xr)

		cfg.notify(IterationState{
			Method: methodBisection, Iteration: i,
			X: xr, Previous: xrOld, Residual: fr,
			Low: xl, High: xu,
		})

		if !isFinite(fr) {
			return fail(res, NumericalInstability, xr, fr, i, evals), nil
		}
		if fr == 0 {
			return converge(res, xr, fr, i, evals), nil
		}
		// xrOld is NaN on the first pass, so the test cannot succeed yet.
		if math.Abs(xr-xrOld) < cfg.Tolerance*math.Abs(xr) {
			return converge(res, xr, fr, i, evals), nil
		}

		if sameSign(fl, fr) {
			xl, fl = xr, fr
		} else {
			xu = xr
		}
		xrOld = xr
	}

	return fail(res, DidNotConverge, xr, fr, cfg.MaxIterations, evals), nil
}

func validateBracketing(f Func, br Bracket, cfg Config) error {
	if f == nil {
		return ErrNilFunc
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	return br.validate()
}

// checkEndpoints resolves the cases decided by the two endpoint values alone:
// an exact zero at either end, a non-finite value, or no sign change.
// On NoSignChange the endpoint with the smaller residual is reported.
func checkEndpoints(res Result, xl, fl, xu, fu float64, evals int) (Result, bool) {
	switch {
	case fl == 0:
		return converge(res, xl, fl, 0, evals), true
	case fu == 0:
		return converge(res, xu, fu, 0, evals), true
	case !isFinite(fl):
		return fail(res, NumericalInstability, xl, fl, 0, evals), true
	case !isFinite(fu):
		return fail(res, NumericalInstability, xu, fu, 0, evals), true
	case sameSign(fl, fu):
		if math.Abs(fu) < math.Abs(fl) {
			return fail(res, NoSignChange, xu, fu, 0, evals), true
		}
		return fail(res, NoSignChange, xl, fl, 0, evals), true
	}
	return Result{}, false
}

// sameSign reports whether a and b are both strictly positive or both
// strictly negative.
func sameSign(a, b float64) bool {
	return (a > 0 && b > 0) || (a < 0 && b < 0)
}

func converge(res Result, root, residual float64, iters, evals int) Result {
	res.Converged = true
	res.Root = root
	res.Residual = residual
	res.Iterations = iters
	res.Evaluations = evals
	res.Reason = None
	return res
}

func fail(res Result, kind FailureKind, estimate, residual float64, iters, evals int) Result {
	res.Converged = false
	res.Root = estimate
	res.Residual = residual
	res.Iterations = iters
	res.Evaluations = evals
	res.Reason = kind
	return res
}

func (c Config) notify(s IterationState) {
	if c.Observer != nil {
		c.Observer.OnIterate(s)
	}
}
