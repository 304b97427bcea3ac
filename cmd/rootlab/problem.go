package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/rootlab/internal/config"
)

// resolveProblem builds the problem for a command: preset first, then the
// config file, then any flag the user set explicitly.
func resolveProblem(cmd *cobra.Command, args []string) (*config.Problem, error) {
	p := config.DefaultProblem()

	if len(args) > 0 {
		p = config.GetPreset(args[0])
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		p = cfg
	}

	flags := cmd.Flags()
	if flags.Changed("expr") {
		p.Expr = expr
		if len(args) == 0 && configFile == "" {
			p.Name = "custom"
		}
	}
	if flags.Changed("lo") || flags.Changed("hi") {
		br := []float64{lo, hi}
		if len(p.Bracket) == 2 {
			if !flags.Changed("lo") {
				br[0] = p.Bracket[0]
			}
			if !flags.Changed("hi") {
				br[1] = p.Bracket[1]
			}
		}
		p.Bracket = br
	}
	if flags.Changed("x0") {
		p.X0 = x0
	}
	if flags.Changed("tol") {
		p.Tolerance = tol
	}
	if flags.Changed("max-iter") {
		p.MaxIterations = maxIter
	}
	if flags.Changed("step") {
		p.DerivativeStep = step
	}
	if flags.Changed("methods") {
		p.Methods = methods
	}
	if flags.Changed("true-root") {
		v := trueRoot
		p.TrueRoot = &v
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
