package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/rootlab/internal/roots"
)

type Registry struct {
	solvers map[string]func() roots.Solver
}

func NewRegistry() *Registry {
	r := &Registry{
		solvers: make(map[string]func() roots.Solver),
	}

	r.solvers["bisection"] = func() roots.Solver { return roots.BisectionSolver{} }
	r.solvers["newton"] = func() roots.Solver { return roots.NewtonSolver{} }
	r.solvers["reference"] = func() roots.Solver { return roots.ReferenceSolver{} }

	return r
}

// Register adds or replaces a solver factory.
func (r *Registry) Register(name string, fn func() roots.Solver) {
	r.solvers[name] = fn
}

func (r *Registry) GetSolver(name string) (roots.Solver, error) {
	fn, ok := r.solvers[name]
	if !ok {
		return nil, fmt.Errorf("unknown method: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListSolvers() []string {
	names := make([]string, 0, len(r.solvers))
	for name := range r.solvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
