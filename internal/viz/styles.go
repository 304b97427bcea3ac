package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00cccc"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	StatusConverged = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusFailed = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	Selected = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff88ff"))

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
)

// Status renders "converged" or the failure reason in the current theme's
// success or error colour.
func Status(converged bool, reason string) string {
	if converged {
		return StatusConverged.Foreground(CurrentTheme.Success).Render("converged")
	}
	return StatusFailed.Foreground(CurrentTheme.Error).Render(reason)
}

// ResidualSparkline draws log10|r| for each residual, one rune per value,
// sampled down to width. Large residuals are red, small ones green.
func ResidualSparkline(residuals []float64, width int) string {
	if len(residuals) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	logs := make([]float64, len(residuals))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, r := range residuals {
		v := math.Log10(math.Abs(r))
		if math.IsInf(v, -1) {
			v = -17
		}
		logs[i] = v
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo, hi = min(lo, v), max(hi, v)
	}

	rng := hi - lo
	if rng <= 0 || math.IsInf(rng, 0) || math.IsNaN(rng) {
		rng = 1
	}

	step := len(logs) / width
	if step < 1 {
		step = 1
	}

	var result strings.Builder
	for i := 0; i < width && i*step < len(logs); i++ {
		v := logs[i*step]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			result.WriteString(SparkHigh.Render("?"))
			continue
		}
		norm := (v - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = min(max(idx, 0), len(chars)-1)

		c := string(chars[idx])
		switch {
		case norm > 0.7:
			result.WriteString(SparkHigh.Render(c))
		case norm > 0.3:
			result.WriteString(SparkMid.Render(c))
		default:
			result.WriteString(SparkLow.Render(c))
		}
	}

	return result.String()
}

// Separator draws a rule of the given width with a centred diamond.
func Separator(width int) string {
	rule := max(width-3, 0)
	left := strings.Repeat("─", rule/2)
	right := strings.Repeat("─", rule-rule/2)
	return Subtle.Render(left + " ◆ " + right)
}
