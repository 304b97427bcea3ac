package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/rootlab/internal/roots"
)

const viewerPageSize = 15

// TraceViewer is a bubbletea model paging through a solve trace, one tab per
// method.
type TraceViewer struct {
	methods  []string
	byMethod map[string][]roots.IterationState
	tab      int
	offset   int
	height   int
}

func NewTraceViewer(trace []roots.IterationState) TraceViewer {
	methods, byMethod := groupTrace(trace)
	return TraceViewer{
		methods:  methods,
		byMethod: byMethod,
		height:   viewerPageSize,
	}
}

func (m TraceViewer) Init() tea.Cmd { return nil }

func (m TraceViewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 3)
		m.offset = min(m.offset, m.maxOffset())
	}
	return m, nil
}

func (m TraceViewer) handleKey(msg tea.KeyMsg) (TraceViewer, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "right", "l":
		if len(m.methods) > 0 {
			m.tab = (m.tab + 1) % len(m.methods)
			m.offset = 0
		}
	case "shift+tab", "left", "h":
		if len(m.methods) > 0 {
			m.tab = (m.tab + len(m.methods) - 1) % len(m.methods)
			m.offset = 0
		}
	case "down", "j":
		m.offset = min(m.offset+1, m.maxOffset())
	case "up", "k":
		m.offset = max(m.offset-1, 0)
	case "pgdown", " ":
		m.offset = min(m.offset+m.height, m.maxOffset())
	case "pgup":
		m.offset = max(m.offset-m.height, 0)
	case "g", "home":
		m.offset = 0
	case "G", "end":
		m.offset = m.maxOffset()
	}
	return m, nil
}

// Method returns the method on the active tab.
func (m TraceViewer) Method() string {
	if len(m.methods) == 0 {
		return ""
	}
	return m.methods[m.tab]
}

func (m TraceViewer) rows() []roots.IterationState {
	return m.byMethod[m.Method()]
}

func (m TraceViewer) maxOffset() int {
	return max(len(m.rows())-m.height, 0)
}

func (m TraceViewer) View() string {
	var b strings.Builder
	b.WriteString("\n  ")
	if len(m.methods) == 0 {
		b.WriteString(Subtle.Render("empty trace") + "\n\n  " + KeyHint.Render("q quit") + "\n")
		return b.String()
	}

	for i, name := range m.methods {
		label := fmt.Sprintf(" %s (%d) ", name, len(m.byMethod[name]))
		if i == m.tab {
			b.WriteString(Selected.Render("▸" + label))
		} else {
			b.WriteString(Subtle.Render(" " + label))
		}
	}
	b.WriteString("\n\n")

	rows := m.rows()
	residuals := make([]float64, len(rows))
	for i, s := range rows {
		residuals[i] = s.Residual
	}
	b.WriteString("  " + MetricLabel.Render("log|f| ") + ResidualSparkline(residuals, 60) + "\n\n")

	b.WriteString("  " + HeaderStyle.Render(fmt.Sprintf("%5s  %22s  %12s  %22s  %22s", "ITER", "X", "F(X)", "LOW", "HIGH")) + "\n")
	end := min(m.offset+m.height, len(rows))
	for _, s := range rows[m.offset:end] {
		low, high := "-", "-"
		if s.Low != 0 || s.High != 0 {
			low, high = fmt.Sprintf("%.17g", s.Low), fmt.Sprintf("%.17g", s.High)
		}
		fmt.Fprintf(&b, "  %5d  %22.17g  %12.4e  %22s  %22s\n", s.Iteration, s.X, s.Residual, low, high)
	}

	b.WriteString("\n  " + KeyHint.Render(fmt.Sprintf("%d-%d of %d   tab switch method  j/k scroll  q quit", m.offset+1, end, len(rows))) + "\n")
	return b.String()
}

// RunTraceViewer shows trace full screen until the user quits.
func RunTraceViewer(trace []roots.IterationState) error {
	_, err := tea.NewProgram(NewTraceViewer(trace), tea.WithAltScreen()).Run()
	return err
}
