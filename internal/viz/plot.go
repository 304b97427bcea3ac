package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rootlab/internal/analysis"
	"github.com/san-kum/rootlab/internal/roots"
)

var seriesColors = []asciigraph.AnsiColor{asciigraph.Green, asciigraph.Yellow, asciigraph.Cyan, asciigraph.Magenta}

// PlotObjective charts a sampled objective. Non-finite samples are left as
// gaps.
func PlotObjective(xs, ys []float64) string {
	if len(xs) == 0 || !anyFinite(ys) {
		return ""
	}
	caption := fmt.Sprintf("f(x) on [%g, %g]", xs[0], xs[len(xs)-1])
	return asciigraph.Plot(gaps(ys),
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

// PlotSweep charts iterations against tolerance, one series per method.
func PlotSweep(sweep *analysis.Sweep) string {
	data := make([][]float64, 0, len(sweep.Methods))
	legend := make([]string, 0, len(sweep.Methods))
	for _, m := range sweep.Methods {
		data = append(data, sweep.Iterations(m))
		legend = append(legend, m)
	}
	if len(data) == 0 {
		return ""
	}

	caption := fmt.Sprintf("iterations, tol %g -> %g (%s)",
		sweep.Tolerances[0], sweep.Tolerances[len(sweep.Tolerances)-1], strings.Join(legend, ", "))
	return asciigraph.PlotMany(data,
		asciigraph.Height(12),
		asciigraph.Width(60),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(seriesColors[:min(len(data), len(seriesColors))]...),
	)
}

// PlotConvergence charts log10|residual| per iteration for each method in
// trace, in order of first appearance.
func PlotConvergence(trace []roots.IterationState) string {
	methods, byMethod := groupTrace(trace)
	if len(methods) == 0 {
		return ""
	}

	data := make([][]float64, 0, len(methods))
	labels := make([]string, 0, len(methods))
	for _, m := range methods {
		series := make([]float64, 0, len(byMethod[m]))
		for _, s := range byMethod[m] {
			series = append(series, logResidual(s.Residual))
		}
		if anyFinite(series) {
			data = append(data, gaps(series))
			labels = append(labels, m)
		}
	}
	if len(data) == 0 {
		return ""
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(12),
		asciigraph.Width(60),
		asciigraph.Caption("log10|f(x)| ("+strings.Join(labels, ", ")+")"),
		asciigraph.SeriesColors(seriesColors[:min(len(data), len(seriesColors))]...),
	)
}

func logResidual(r float64) float64 {
	if r == 0 {
		return -17
	}
	return math.Log10(math.Abs(r))
}

// gaps maps infinities to NaN, which asciigraph leaves undrawn.
func gaps(vs []float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		if math.IsInf(v, 0) {
			v = math.NaN()
		}
		out[i] = v
	}
	return out
}

func groupTrace(trace []roots.IterationState) ([]string, map[string][]roots.IterationState) {
	var methods []string
	byMethod := make(map[string][]roots.IterationState)
	for _, s := range trace {
		if _, ok := byMethod[s.Method]; !ok {
			methods = append(methods, s.Method)
		}
		byMethod[s.Method] = append(byMethod[s.Method], s)
	}
	return methods, byMethod
}

func anyFinite(vs []float64) bool {
	for _, v := range vs {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			return true
		}
	}
	return false
}
