package roots_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rootlab/internal/roots"
)

type problem struct {
	f       roots.Func
	bracket roots.Bracket
	x0      float64
}

func fallingObject(h float64) float64 {
	v := math.Sqrt(2 * 9.81 * h)
	return v*math.Tanh(v/(2*5)*3) - 4
}

var _ = Describe("Cross-validation", func() {
	DescribeTable("all three solvers agree on the root",
		func(p problem, tolBisection, tolNewton float64) {
			bis, err := roots.Bisection(p.f, p.bracket, roots.Config{Tolerance: tolBisection, MaxIterations: 200})
			Expect(err).NotTo(HaveOccurred())
			newton, err := roots.Newton(p.f, p.x0, roots.Config{Tolerance: tolNewton, MaxIterations: 100})
			Expect(err).NotTo(HaveOccurred())
			ref, err := roots.Reference(p.f, p.bracket, roots.Config{Tolerance: math.Min(tolBisection, tolNewton), MaxIterations: 100})
			Expect(err).NotTo(HaveOccurred())

			for _, r := range []roots.Result{bis, newton, ref} {
				Expect(r.Converged).To(BeTrue(), "%s: %s", r.Method, r.Reason)
			}

			// both stopping rules are relative, so scale by the root magnitude
			tol := math.Max(tolBisection, tolNewton) * math.Max(1, math.Abs(ref.Root))
			Expect(bis.Root).To(BeNumerically("~", ref.Root, tol))
			Expect(newton.Root).To(BeNumerically("~", ref.Root, tol))
			Expect(bis.Root).To(BeNumerically("~", newton.Root, tol))

			cmp := roots.Compare(bis, ref.Root)
			Expect(cmp.Agrees(roots.Compare(newton, ref.Root), tol)).To(BeTrue())
		},
		Entry("cos(x) - x", problem{
			f:       func(x float64) float64 { return math.Cos(x) - x },
			bracket: roots.Bracket{Low: 0, High: 1},
			x0:      0.5,
		}, 1e-9, 1e-9),
		Entry("x^3 - x - 2", problem{
			f:       func(x float64) float64 { return x*x*x - x - 2 },
			bracket: roots.Bracket{Low: 1, High: 2},
			x0:      1.5,
		}, 1e-9, 1e-12),
		Entry("x^2 - 2", problem{
			f:       func(x float64) float64 { return x*x - 2 },
			bracket: roots.Bracket{Low: 0, High: 2},
			x0:      1.5,
		}, 1e-10, 1e-12),
		Entry("falling object", problem{
			f:       fallingObject,
			bracket: roots.Bracket{Low: 0, High: 10},
			x0:      2,
		}, 1e-9, 1e-9),
	)

	Describe("budget exhaustion", func() {
		It("never reports a spurious convergence", func() {
			f := func(x float64) float64 { return x*x*x - x - 2 }
			seed := roots.Seed{Bracket: roots.Bracket{Low: -10, High: 10.5}, X0: 100}
			cfg := roots.Config{Tolerance: 1e-9, MaxIterations: 1}

			for _, s := range roots.Solvers() {
				res, err := s.Solve(f, seed, cfg)
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Converged).To(BeFalse(), s.Name())
				Expect(res.Reason).To(Equal(roots.DidNotConverge), s.Name())
				Expect(res.Err()).To(MatchError(roots.ErrDidNotConverge))
			}
		})
	})

	Describe("precondition violations", func() {
		It("are errors, not results", func() {
			f := func(x float64) float64 { return x }
			seed := roots.Seed{Bracket: roots.Bracket{Low: 1, High: -1}, X0: math.NaN()}

			for _, s := range roots.Solvers() {
				res, err := s.Solve(f, seed, roots.DefaultConfig())
				Expect(err).To(HaveOccurred(), s.Name())
				Expect(res).To(Equal(roots.Result{}))
			}
		})
	})
})
