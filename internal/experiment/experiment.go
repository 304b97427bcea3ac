// Package experiment runs several solvers on one problem and compares them.
package experiment

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/rootlab/internal/config"
	"github.com/san-kum/rootlab/internal/roots"
)

// Baseline sources recorded in a Report.
const (
	BaselineTrueRoot  = "true_root"
	BaselineReference = "reference"
	BaselineNone      = "none"
)

// MethodRun is one solver's outcome within a Report.
type MethodRun struct {
	Method     string
	Result     roots.Result
	Comparison roots.Comparison
	Elapsed    time.Duration
	Trace      []roots.IterationState
}

type Report struct {
	Problem        *config.Problem
	Baseline       float64
	BaselineSource string
	Runs           []MethodRun
	StartedAt      time.Time
	Elapsed        time.Duration
}

// Agree reports whether every method converged and all roots match within
// tol, absolutely or relatively.
func (r *Report) Agree(tol float64) bool {
	if len(r.Runs) == 0 {
		return false
	}
	first := r.Runs[0].Comparison
	for _, run := range r.Runs {
		if !first.Agrees(run.Comparison, tol) {
			return false
		}
	}
	return true
}

// Run returns the run for method, or false.
func (r *Report) Run(method string) (MethodRun, bool) {
	for _, run := range r.Runs {
		if run.Method == method {
			return run, true
		}
	}
	return MethodRun{}, false
}

type options struct {
	registry *Registry
	observer roots.Observer
}

type Option func(*options)

// WithRegistry overrides the default solver registry.
func WithRegistry(r *Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithObserver forwards every iteration of every solver to obs. Solvers run
// concurrently, so obs must be safe for concurrent use.
func WithObserver(obs roots.Observer) Option {
	return func(o *options) { o.observer = obs }
}

// Run solves p with each of p.Methods concurrently. A precondition violation
// in any solver aborts the run with an error; convergence failures are
// reported in the Report.
func Run(ctx context.Context, p *config.Problem, opts ...Option) (*Report, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = NewRegistry()
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	expr, err := p.Objective()
	if err != nil {
		return nil, err
	}
	f := expr.Func()

	solvers := make([]roots.Solver, len(p.Methods))
	for i, name := range p.Methods {
		s, err := o.registry.GetSolver(name)
		if err != nil {
			return nil, err
		}
		solvers[i] = s
	}

	report := &Report{
		Problem:   p,
		Runs:      make([]MethodRun, len(solvers)),
		StartedAt: time.Now(),
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, s := range solvers {
		if err := gctx.Err(); err != nil {
			break
		}
		i, s := i, s
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			run, err := solve(s, f, p, o.observer)
			if err != nil {
				return fmt.Errorf("%s: %w", s.Name(), err)
			}
			report.Runs[i] = run
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.Baseline, report.BaselineSource = baseline(p, report, f)
	for i := range report.Runs {
		report.Runs[i].Comparison = roots.Compare(report.Runs[i].Result, report.Baseline)
	}
	report.Elapsed = time.Since(report.StartedAt)

	return report, nil
}

func solve(s roots.Solver, f roots.Func, p *config.Problem, obs roots.Observer) (MethodRun, error) {
	var trace []roots.IterationState
	cfg := p.SolverConfig()
	cfg.Observer = roots.ObserverFunc(func(st roots.IterationState) {
		trace = append(trace, st)
		if obs != nil {
			obs.OnIterate(st)
		}
	})

	start := time.Now()
	res, err := s.Solve(f, p.Seed(), cfg)
	if err != nil {
		return MethodRun{}, err
	}
	return MethodRun{
		Method:  s.Name(),
		Result:  res,
		Elapsed: time.Since(start),
		Trace:   trace,
	}, nil
}

// baseline picks the value every method is compared against: the problem's
// true root, else the reference solver's converged root. The reference
// solver is run on demand when it was not among the requested methods.
func baseline(p *config.Problem, report *Report, f roots.Func) (float64, string) {
	if p.TrueRoot != nil {
		return *p.TrueRoot, BaselineTrueRoot
	}

	ref, ok := report.Run(roots.ReferenceSolver{}.Name())
	res := ref.Result
	if !ok {
		var err error
		res, err = roots.Reference(f, p.Seed().Bracket, p.SolverConfig())
		if err != nil {
			return math.NaN(), BaselineNone
		}
	}
	if !res.Converged {
		return math.NaN(), BaselineNone
	}
	return res.Root, BaselineReference
}

// Traces returns every run's trace keyed by method.
func (r *Report) Traces() map[string][]roots.IterationState {
	out := make(map[string][]roots.IterationState, len(r.Runs))
	for _, run := range r.Runs {
		out[run.Method] = run.Trace
	}
	return out
}
