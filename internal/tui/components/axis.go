package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/linescope/linescope/internal/engine/types"
)

// YAxisView renders y tick labels right-aligned in a column of width
// cells, one line per plot row, ending in the axis line.
func YAxisView(ticks []types.Tick, boundedHeight float64, rows, width int, labelStyle, axisStyle lipgloss.Style) string {
	if rows < 1 {
		return ""
	}
	labels := make([]string, rows)
	for _, t := range ticks {
		row := cellIndex(t.Position, boundedHeight, rows)
		if row < 0 || row >= rows {
			continue
		}
		labels[row] = t.Label
	}

	labelWidth := width - 2
	if labelWidth < 0 {
		labelWidth = 0
	}
	lines := make([]string, rows)
	for i, l := range labels {
		mark := "│"
		if l != "" {
			mark = "┤"
		}
		l = runewidth.Truncate(l, labelWidth, "…")
		lines[i] = labelStyle.Render(runewidth.FillLeft(l, labelWidth)) + " " + axisStyle.Render(mark)
	}
	return strings.Join(lines, "\n")
}

// XAxisView renders the x axis line with tick marks and, below it, the tick
// labels centred on their columns. Labels that would overlap are skipped.
func XAxisView(ticks []types.Tick, boundedWidth float64, cols int, labelStyle, axisStyle lipgloss.Style) string {
	if cols < 1 {
		return ""
	}
	axis := []rune(strings.Repeat("─", cols))
	labels := []rune(strings.Repeat(" ", cols))

	next := 0
	for _, t := range ticks {
		col := cellIndex(t.Position, boundedWidth, cols)
		if col < 0 || col >= cols {
			continue
		}
		axis[col] = '┬'

		label := []rune(t.Label)
		if len(label) > cols {
			continue
		}
		start := col - len(label)/2
		if start < 0 {
			start = 0
		}
		if start+len(label) > cols {
			start = cols - len(label)
		}
		if start < next {
			continue
		}
		copy(labels[start:], label)
		next = start + len(label) + 1
	}
	return axisStyle.Render(string(axis)) + "\n" + labelStyle.Render(string(labels))
}
