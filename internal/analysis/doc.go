// Package analysis studies solver behaviour beyond a single solve.
//
//   - [ToleranceSweep]: iteration cost and accuracy of each method across
//     a range of tolerances
//   - [Sample]: evenly spaced samples of an objective, the input to the
//     graphical method of locating a bracket
//   - [SignChanges]: brackets found in a sample
//
// A typical sweep:
//
//	sweep, err := analysis.ToleranceSweep(f, seed, roots.Solvers(),
//	    analysis.LogTolerances(1e-2, 1e-12, 11), 200)
package analysis
