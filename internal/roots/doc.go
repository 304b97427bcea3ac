// Package roots finds zeros of scalar functions f: R -> R.
//
// The package provides three independent solvers and a reporter:
//
//   - [Bisection]: bracket halving, guaranteed linear convergence
//   - [Newton]: tangent-line iteration from a single starting point
//   - [Reference]: Brent's zeroin (bisection + secant/inverse quadratic steps)
//   - [Compare]: error of a [Result] against a known root
//
// Every solver returns a [Result] that is either converged or carries a
// [FailureKind]. Expected numerical failures are data, never errors. The
// returned error is reserved for invalid input (bad tolerance, empty bracket,
// and so on) and is reported before f is evaluated.
//
// # Example
//
//	f := func(x float64) float64 { return x*x*x - x - 2 }
//	cfg := roots.DefaultConfig()
//	res, err := roots.Bisection(f, roots.Bracket{Low: 1, High: 2}, cfg)
//	if err != nil {
//	    return err
//	}
//	cmp := roots.Compare(res, 1.5213797068045676)
//
// # Stopping rule
//
// Bisection and Newton both stop on the relative step criterion
// |x_new - x_old| < tol*|x_new|. The tolerance applies to positions only;
// bisection never stops on the size of f(xl)*f(xr).
//
// Because the test is relative, bisection needs more than
// ceil(log2((b-a)/tol)) halvings when |root| < 1, and a root at exactly 0 is
// accepted only if some midpoint evaluates to exactly 0; otherwise the run
// ends with [DidNotConverge] and a last estimate next to 0. Use [Reference],
// whose acceptance is absolute, for roots at or near the origin.
//
// # Thread Safety
//
// Solvers keep all state on the call stack. Concurrent calls are safe as long
// as f and the optional [Observer] are.
package roots
