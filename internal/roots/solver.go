package roots

// Solver is the uniform contract shared by the three methods so they can be
// driven from a table.
type Solver interface {
	Name() string
	Solve(f Func, seed Seed, cfg Config) (Result, error)
}

type BisectionSolver struct{}

func (BisectionSolver) Name() string { return methodBisection }

func (BisectionSolver) Solve(f Func, seed Seed, cfg Config) (Result, error) {
	return Bisection(f, seed.Bracket, cfg)
}

type NewtonSolver struct{}

func (NewtonSolver) Name() string { return methodNewton }

func (NewtonSolver) Solve(f Func, seed Seed, cfg Config) (Result, error) {
	return Newton(f, seed.X0, cfg)
}

type ReferenceSolver struct{}

func (ReferenceSolver) Name() string { return methodReference }

func (ReferenceSolver) Solve(f Func, seed Seed, cfg Config) (Result, error) {
	return Reference(f, seed.Bracket, cfg)
}

// Solvers returns every method in canonical order.
func Solvers() []Solver {
	return []Solver{BisectionSolver{}, NewtonSolver{}, ReferenceSolver{}}
}
