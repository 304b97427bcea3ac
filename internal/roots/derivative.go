package roots

// Derivative approximates f'(x) with a central difference of width h:
//
//	(f(x + h/2) - f(x - h/2)) / h
//
// The truncation error is O(h^2) and the round-off error grows like eps/h, so
// h trades one against the other. Newton uses Config.DerivativeStep.
func Derivative(f Func, x, h float64) float64 {
	return (f(x+h/2) - f(x-h/2)) / h
}
