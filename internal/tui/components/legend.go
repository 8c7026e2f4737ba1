package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/linescope/linescope/internal/engine"
)

// LegendModel lists the series with their colour, toggle key and state.
type LegendModel struct {
	Series []engine.SeriesFrame
	Target int // targeted series, -1 for none
	Width  int
}

// NewLegendModel creates a legend for the frame's series.
func NewLegendModel(f engine.Frame, width int) LegendModel {
	target := -1
	if f.Bisector.Active {
		target = f.Bisector.Series
	}
	return LegendModel{Series: f.Series, Target: target, Width: width}
}

// View renders one line per series.
func (m LegendModel) View() string {
	if len(m.Series) == 0 {
		return lipgloss.NewStyle().Faint(true).Render("no series")
	}
	lines := make([]string, 0, len(m.Series))
	for _, s := range m.Series {
		key := " "
		if s.Index < 9 {
			key = fmt.Sprintf("%d", s.Index+1)
		}

		swatch := StrokeStyle(s.Stroke, 1).Render("■")
		name := s.Name
		style := lipgloss.NewStyle()
		switch {
		case !s.Visible:
			swatch = "□"
			style = style.Faint(true).Strikethrough(true)
		case s.Index == m.Target:
			name = "▶ " + name
			style = style.Bold(true)
		}

		if m.Width > 8 {
			name = runewidth.Truncate(name, m.Width-6, "…")
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", key, swatch, style.Render(name)))
	}
	return strings.Join(lines, "\n")
}
