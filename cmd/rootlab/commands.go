package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/rootlab/internal/analysis"
	"github.com/san-kum/rootlab/internal/config"
	"github.com/san-kum/rootlab/internal/experiment"
	"github.com/san-kum/rootlab/internal/logging"
	"github.com/san-kum/rootlab/internal/objective"
	"github.com/san-kum/rootlab/internal/roots"
	"github.com/san-kum/rootlab/internal/storage"
	"github.com/san-kum/rootlab/internal/viz"
)

func solveProblem(cmd *cobra.Command, args []string) error {
	p, err := resolveProblem(cmd, args)
	if err != nil {
		return err
	}

	observers := []roots.Observer{logging.NewObserver(logger)}
	var rec *storage.Recorder
	if record != "" {
		f, err := os.Create(record)
		if err != nil {
			return err
		}
		defer f.Close()
		rec, err = storage.NewRecorder(f)
		if err != nil {
			return err
		}
		observers = append(observers, rec)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := experiment.Run(ctx, p, experiment.WithObserver(logging.Multi(observers...)))
	if err != nil {
		return err
	}

	for _, run := range report.Runs {
		logging.LogResult(logger, run.Result)
	}
	fmt.Print(viz.RenderComparison(report))

	agreeTol := p.Tolerance
	if !math.IsNaN(report.Baseline) {
		agreeTol *= math.Max(1, math.Abs(report.Baseline))
	}
	if report.Agree(agreeTol) {
		fmt.Printf("all methods agree within %.3g\n", agreeTol)
	} else if len(report.Runs) > 1 {
		fmt.Printf("methods disagree at %.3g\n", agreeTol)
	}

	if rec != nil {
		if err := rec.Flush(); err != nil {
			return fmt.Errorf("record %s: %w", record, err)
		}
		logger.Info().Str("path", record).Int("rows", rec.Rows()).Msg("trace recorded")
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(report)
		if err != nil {
			return err
		}
		fmt.Printf("saved run %s\n", id)
	}

	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEXPR\tBRACKET\tX0\tTOL")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t[%g, %g]\t%g\t%g\n", name, p.Expr, p.Bracket[0], p.Bracket[1], p.X0, p.Tolerance)
	}
	return w.Flush()
}

func plotObjective(cmd *cobra.Command, args []string) error {
	p, err := resolveProblem(cmd, args)
	if err != nil {
		return err
	}
	e, err := p.Objective()
	if err != nil {
		return err
	}

	br := p.Seed().Bracket
	counter := objective.NewCounter(e.Func())
	xs, ys, err := analysis.Sample(counter.Func(), br.Low, br.High, samples)
	if err != nil {
		return err
	}
	logger.Debug().Int64("evaluations", counter.Calls()).Msg("objective sampled")

	fmt.Println(p.Name + ": " + p.Expr)
	fmt.Println(viz.PlotObjective(xs, ys))

	brackets := analysis.SignChanges(xs, ys)
	if len(brackets) == 0 {
		fmt.Println("no sign change found at this resolution")
		return nil
	}
	fmt.Println("sign changes:")
	for _, b := range brackets {
		fmt.Printf("  [%g, %g]\n", b.Low, b.High)
	}
	return nil
}

func sweepTolerances(cmd *cobra.Command, args []string) error {
	p, err := resolveProblem(cmd, args)
	if err != nil {
		return err
	}
	e, err := p.Objective()
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	solvers := make([]roots.Solver, 0, len(p.Methods))
	for _, name := range p.Methods {
		s, err := registry.GetSolver(name)
		if err != nil {
			return err
		}
		solvers = append(solvers, s)
	}

	start := time.Now()
	counter := objective.NewCounter(e.Func())
	sweep, err := analysis.ToleranceSweep(counter.Func(), p.Seed(), solvers,
		analysis.LogTolerances(tolFrom, tolTo, tolPoints), p.MaxIterations)
	if err != nil {
		return err
	}
	logger.Debug().
		Dur("elapsed", time.Since(start)).
		Int("points", len(sweep.Points)).
		Int64("evaluations", counter.Calls()).
		Msg("sweep finished")

	fmt.Println(viz.PlotSweep(sweep))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TOL\t"+strings.ToUpper(strings.Join(sweep.Methods, "\t")))
	for i, t := range sweep.Tolerances {
		cells := []string{fmt.Sprintf("%.0e", t)}
		for j := range sweep.Methods {
			pt := sweep.Points[i*len(sweep.Methods)+j]
			cell := fmt.Sprintf("%d (%.1e)", pt.Iterations, pt.AbsError)
			if !pt.Converged {
				cell = pt.Reason.String()
			}
			cells = append(cells, cell)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tEXPR\tCONVERGED")

	for _, run := range runs {
		converged := 0
		for _, m := range run.Methods {
			if m.Converged {
				converged++
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d/%d\n",
			run.ID,
			run.Problem.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Problem.Expr,
			converged, len(run.Methods),
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run:      %s\n", meta.ID)
	fmt.Printf("problem:  %s (%s)\n", meta.Problem.Name, meta.Problem.Expr)
	fmt.Printf("bracket:  %v  x0: %g  tol: %g  max iter: %d\n",
		meta.Problem.Bracket, meta.Problem.X0, meta.Problem.Tolerance, meta.Problem.MaxIterations)
	fmt.Printf("baseline: %s (%s)\n\n", optFloat(meta.Baseline, "%.15g"), meta.BaselineSource)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tSTATUS\tROOT\tRESIDUAL\tITER\tEVALS\tABS ERR\tTIME")
	for _, m := range meta.Methods {
		status := "converged"
		if !m.Converged {
			status = m.Reason
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			m.Method, status,
			optFloat(m.Root, "%.12g"),
			optFloat(m.Residual, "%.3e"),
			m.Iterations, m.Evaluations,
			optFloat(m.AbsError, "%.3e"),
			time.Duration(m.ElapsedNS),
		)
	}
	return w.Flush()
}

func browseTrace(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	if plotOnly {
		fmt.Println(viz.PlotConvergence(trace))
		return nil
	}
	return viz.RunTraceViewer(trace)
}

func optFloat(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}
