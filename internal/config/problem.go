package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rootlab/internal/objective"
	"github.com/san-kum/rootlab/internal/roots"
)

const (
	DefaultTolerance     = 1e-9
	DefaultMaxIterations = 100
)

var (
	ErrMissingExpr   = errors.New("config: expr is required")
	ErrBadBracket    = errors.New("config: bracket must have exactly two values")
	ErrUnknownMethod = errors.New("config: unknown method")
	ErrNoMethods     = errors.New("config: no methods selected")
	ErrBadTrueRoot   = errors.New("config: true_root must be finite")
)

// DefaultMethods returns the names of every solver in canonical order.
func DefaultMethods() []string {
	solvers := roots.Solvers()
	names := make([]string, len(solvers))
	for i, s := range solvers {
		names[i] = s.Name()
	}
	return names
}

// Problem is a root-finding task as stored in a yaml file.
type Problem struct {
	Name           string    `yaml:"name" json:"name"`
	Expr           string    `yaml:"expr" json:"expr"`
	Bracket        []float64 `yaml:"bracket,flow" json:"bracket"`
	X0             float64   `yaml:"x0" json:"x0"`
	TrueRoot       *float64  `yaml:"true_root,omitempty" json:"true_root,omitempty"`
	Tolerance      float64   `yaml:"tolerance" json:"tolerance"`
	MaxIterations  int       `yaml:"max_iterations" json:"max_iterations"`
	DerivativeStep float64   `yaml:"derivative_step,omitempty" json:"derivative_step,omitempty"`
	Methods        []string  `yaml:"methods,flow" json:"methods"`
}

func DefaultProblem() *Problem {
	return &Problem{
		Name:          "custom",
		Bracket:       []float64{0, 1},
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
		Methods:       DefaultMethods(),
	}
}

func Load(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := DefaultProblem()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return p, nil
}

func Save(path string, p *Problem) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks everything that can be checked without running a solver.
// Numeric preconditions are delegated to the solvers' own validation.
func (p *Problem) Validate() error {
	if p.Expr == "" {
		return ErrMissingExpr
	}
	if _, err := objective.Parse(p.Expr); err != nil {
		return fmt.Errorf("config: %s: %w", p.Name, err)
	}
	if len(p.Bracket) != 2 {
		return fmt.Errorf("%w, got %d", ErrBadBracket, len(p.Bracket))
	}
	if len(p.Methods) == 0 {
		return ErrNoMethods
	}
	known := DefaultMethods()
	for _, m := range p.Methods {
		if !slices.Contains(known, m) {
			return fmt.Errorf("%w: %s", ErrUnknownMethod, m)
		}
	}
	if p.TrueRoot != nil && (math.IsNaN(*p.TrueRoot) || math.IsInf(*p.TrueRoot, 0)) {
		return ErrBadTrueRoot
	}
	return nil
}

// Objective compiles the problem's expression.
func (p *Problem) Objective() (*objective.Expression, error) {
	return objective.Parse(p.Expr)
}

func (p *Problem) SolverConfig() roots.Config {
	return roots.Config{
		Tolerance:      p.Tolerance,
		MaxIterations:  p.MaxIterations,
		DerivativeStep: p.DerivativeStep,
	}
}

func (p *Problem) Seed() roots.Seed {
	s := roots.Seed{X0: p.X0}
	if len(p.Bracket) == 2 {
		s.Bracket = roots.Bracket{Low: p.Bracket[0], High: p.Bracket[1]}
	}
	return s
}

// Clone returns a deep copy so presets are never mutated by callers.
func (p *Problem) Clone() *Problem {
	c := *p
	c.Bracket = append([]float64(nil), p.Bracket...)
	c.Methods = append([]string(nil), p.Methods...)
	if p.TrueRoot != nil {
		v := *p.TrueRoot
		c.TrueRoot = &v
	}
	return &c
}
