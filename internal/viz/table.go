package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/rootlab/internal/experiment"
)

// missing marks a value that could not be computed.
const missing = "-"

var comparisonHeaders = []string{"METHOD", "STATUS", "ROOT", "RESIDUAL", "ITER", "EVALS", "ABS ERR", "REL ERR", "TIME"}

// RenderComparison renders a report as a table with a title line naming the
// problem and the baseline every error is measured against.
func RenderComparison(report *experiment.Report) string {
	theme := CurrentTheme
	rows := make([][]string, 0, len(report.Runs))
	for _, run := range report.Runs {
		r := run.Result
		rows = append(rows, []string{
			run.Method,
			Status(r.Converged, r.Reason.String()),
			formatNum(r.Root, "%.12g"),
			formatNum(r.Residual, "%.3e"),
			fmt.Sprintf("%d", r.Iterations),
			fmt.Sprintf("%d", r.Evaluations),
			formatNum(run.Comparison.AbsError, "%.3e"),
			formatNum(run.Comparison.RelError, "%.3e"),
			run.Elapsed.String(),
		})
	}

	base := lipgloss.NewStyle().Padding(0, 1).Foreground(theme.Text)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(comparisonHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return base.Bold(true).Foreground(theme.Header)
			case row >= 0 && row < len(rows) && rows[row][col] == missing:
				return base.Foreground(theme.Muted)
			default:
				return base
			}
		})
	rendered := t.Render()

	var b strings.Builder
	p := report.Problem
	b.WriteString(TitleStyle.Render(p.Name) + "  " + Subtle.Render(p.Expr) + "\n")
	b.WriteString(MetricLabel.Render("baseline ") + MetricValue.Render(formatNum(report.Baseline, "%.15g")) +
		Subtle.Render(" ("+report.BaselineSource+")") + "\n")
	b.WriteString(Separator(lipgloss.Width(rendered)) + "\n")
	b.WriteString(rendered)
	b.WriteString("\n")
	return b.String()
}

func formatNum(v float64, format string) string {
	if math.IsNaN(v) {
		return missing
	}
	return fmt.Sprintf(format, v)
}
