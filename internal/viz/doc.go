// Package viz renders solver results in the terminal.
//
//   - [RenderComparison]: lipgloss table of a comparison report
//   - [PlotObjective], [PlotSweep], [PlotConvergence]: asciigraph charts
//   - [TraceViewer]: bubbletea pager over an iteration trace
//
// # Key Bindings (TraceViewer)
//
//	Tab/l   - Next method
//	S-Tab/h - Previous method
//	j/k     - Scroll
//	Space   - Page down
//	q       - Quit
package viz
