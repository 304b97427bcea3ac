package roots

import "math"

const methodReference = "reference"

var machineEpsilon = math.Nextafter(1.0, 2.0) - 1.0

// Reference finds a zero of f in br with Brent's zeroin method
// (Forsythe, Malcolm and Moler). Each step takes either a bisection step or
// an interpolation step (secant when only two distinct abscissae are known,
// inverse quadratic otherwise), and the interpolated point is only accepted
// when it falls well inside the current bracket.
//
// Three abscissae are tracked:
//
//	b - the best approximation so far
//	a - the previous value of b
//	c - a point with f(c) of opposite sign to f(b), |f(b)| <= |f(c)|
//
// Tolerance is absolute: iteration stops once |c-b|/2 <= 2*eps*|b| + tol/2.
func Reference(f Func, br Bracket, cfg Config) (Result, error) {
	if err := validateBracketing(f, br, cfg); err != nil {
		return Result{}, err
	}

	evals := 0
	f = counted(f, &evals)
	res := Result{Method: methodReference}

	a, b := br.Low, br.High
	fa, fb := f(a), f(b)

	if done, ok := checkEndpoints(res, a, fa, b, fb, evals); ok {
		return done, nil
	}

	c, fc := a, fa
	tol := cfg.Tolerance

	for iter := 0; ; iter++ {
		prevStep := b - a

		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tolAct := 2*machineEpsilon*math.Abs(b) + tol/2
		newStep := (c - b) / 2

		if math.Abs(newStep) <= tolAct || fb == 0 {
			return converge(res, b, fb, iter, evals), nil
		}
		if iter == cfg.MaxIterations {
			return fail(res, DidNotConverge, b, fb, iter, evals), nil
		}

		if math.Abs(prevStep) >= tolAct && math.Abs(fa) > math.Abs(fb) {
			var p, q float64
			cb := c - b
			if a == c {
				// secant
				t1 := fb / fa
				p = cb * t1
				q = 1 - t1
			} else {
				// inverse quadratic
				q = fa / fc
				t1 := fb / fc
				t2 := fb / fa
				p = t2 * (cb*q*(q-t1) - (b-a)*(t1-1))
				q = (q - 1) * (t1 - 1) * (t2 - 1)
			}
			if p > 0 {
				q = -q
			} else {
				p = -p
			}
			if p < 0.75*cb*q-math.Abs(tolAct*q)/2 && p < math.Abs(prevStep*q/2) {
				newStep = p / q
			}
		}

		if math.Abs(newStep) < tolAct {
			newStep = math.Copysign(tolAct, newStep)
		}

		a, fa = b, fb
		b += newStep
		fb = f(b)

		cfg.notify(IterationState{
			Method: methodReference, Iteration: iter + 1,
			X: b, Previous: a, Residual: fb,
			Low: math.Min(b, c), High: math.Max(b, c),
		})

		if !isFinite(b) || !isFinite(fb) {
			return fail(res, NumericalInstability, a, fa, iter+1, evals), nil
		}
		if sameSign(fb, fc) {
			c, fc = a, fa
		}
	}
}
