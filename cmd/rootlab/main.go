package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/rootlab/internal/logging"
	"github.com/san-kum/rootlab/internal/storage"
	"github.com/san-kum/rootlab/internal/viz"
)

var (
	dataDir  string
	logLevel string
	logJSON  bool
	theme    string
	logger   = logging.New(os.Stderr, zerolog.InfoLevel, logging.Pretty())

	// problem overrides
	configFile string
	expr       string
	lo         float64
	hi         float64
	x0         float64
	tol        float64
	maxIter    int
	step       float64
	methods    []string
	trueRoot   float64

	// solve
	save   bool
	record string

	// plot
	samples int

	// sweep
	tolFrom   float64
	tolTo     float64
	tolPoints int

	// trace
	plotOnly bool
)

// main wires the rootlab commands and exits with status 1 when a command
// fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "rootlab",
		Short:         "scalar root-finding lab",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			opts := []logging.Option{logging.Component("rootlab")}
			if !logJSON {
				opts = append(opts, logging.Pretty())
			}
			logger = logging.New(os.Stderr, lvl, opts...)
			viz.CurrentTheme = viz.GetTheme(theme)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", storage.DefaultDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug logs every iteration)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log JSON lines instead of console output")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", viz.ThemeOcean.Name, "table theme")

	solveCmd := &cobra.Command{
		Use:   "solve [preset]",
		Short: "solve a problem with every selected method and compare",
		Args:  cobra.MaximumNArgs(1),
		RunE:  solveProblem,
	}
	addProblemFlags(solveCmd)
	solveCmd.Flags().BoolVar(&save, "save", false, "save the run to the data directory")
	solveCmd.Flags().StringVar(&record, "record", "", "stream every iteration to this csv file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in problems",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [preset]",
		Short: "plot the objective over its bracket",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotObjective,
	}
	addProblemFlags(plotCmd)
	plotCmd.Flags().IntVar(&samples, "samples", 80, "number of samples")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "iteration cost of each method across tolerances",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepTolerances,
	}
	addProblemFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&tolFrom, "from", 1e-2, "loosest tolerance")
	sweepCmd.Flags().Float64Var(&tolTo, "to", 1e-12, "tightest tolerance")
	sweepCmd.Flags().IntVar(&tolPoints, "points", 11, "number of tolerances")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	traceCmd := &cobra.Command{
		Use:   "trace [run_id]",
		Short: "browse the iteration trace of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  browseTrace,
	}
	traceCmd.Flags().BoolVar(&plotOnly, "plot", false, "print a convergence chart instead of the interactive viewer")

	rootCmd.AddCommand(solveCmd, presetsCmd, plotCmd, sweepCmd, listCmd, showCmd, traceCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func addProblemFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "problem file path (yaml)")
	cmd.Flags().StringVar(&expr, "expr", "", "objective in x, e.g. \"cos(x) - x\"")
	cmd.Flags().Float64Var(&lo, "lo", 0, "bracket low end")
	cmd.Flags().Float64Var(&hi, "hi", 1, "bracket high end")
	cmd.Flags().Float64Var(&x0, "x0", 0, "newton starting point")
	cmd.Flags().Float64Var(&tol, "tol", 1e-9, "relative tolerance")
	cmd.Flags().IntVar(&maxIter, "max-iter", 100, "iteration budget per method")
	cmd.Flags().Float64Var(&step, "step", 0, "derivative step for newton (0 = default)")
	cmd.Flags().StringSliceVar(&methods, "methods", nil, "methods to run (bisection,newton,reference)")
	cmd.Flags().Float64Var(&trueRoot, "true-root", 0, "known root to compare against")
}
