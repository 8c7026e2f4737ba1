package components

import (
	"strings"
	"testing"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linescope/linescope/internal/engine"
	"github.com/linescope/linescope/internal/engine/bisect"
	"github.com/linescope/linescope/internal/engine/line"
	"github.com/linescope/linescope/internal/engine/types"
)

func flat(index int, name string, y float64, visible bool) engine.SeriesFrame {
	return engine.SeriesFrame{
		Index:   index,
		Name:    name,
		Stroke:  "#ff0000",
		Opacity: 1,
		Visible: visible,
		Path: line.Path{Points: []line.Point{
			{X: 0, Y: y, Defined: true},
			{X: 100, Y: y, Defined: true},
		}},
	}
}

// testFrame has two horizontal lines at y=10 and y=30 in a 100x40 plot.
func testFrame() engine.Frame {
	return engine.Frame{
		Dimensions: types.Dimensions{Width: 100, Height: 40}.Resolve(),
		Series: []engine.SeriesFrame{
			flat(0, "alpha", 10, true),
			flat(1, "beta", 30, true),
		},
	}
}

func hasBraille(s string) bool {
	for _, r := range s {
		if r > 0x2800 && r <= 0x28FF {
			return true
		}
	}
	return false
}

// =============================================================================
// Plot
// =============================================================================

func TestHitTest(t *testing.T) {
	f := testFrame()
	tests := []struct {
		name   string
		px, py float64
		want   int
	}{
		{"on alpha", 50, 10, 0},
		{"near alpha", 50, 14, 0},
		{"near beta", 20, 27, 1},
		{"between lines", 50, 20, -1},
		{"left of data", -5, 10, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HitTest(f, tt.px, tt.py, 6))
		})
	}
}

func TestHitTest_SkipsHiddenSeries(t *testing.T) {
	f := testFrame()
	f.Series[0].Visible = false
	assert.Equal(t, -1, HitTest(f, 50, 10, 6))
	assert.Equal(t, 1, HitTest(f, 50, 30, 6))
}

func TestHitTest_UsesMargins(t *testing.T) {
	f := testFrame()
	f.Dimensions = types.Dimensions{Width: 120, Height: 50, Margins: types.Margins{Top: 10, Left: 20}}.Resolve()
	assert.Equal(t, 0, HitTest(f, 70, 20, 2))
	assert.Equal(t, -1, HitTest(f, 70, 10, 2))
}

func TestPlotModel_View(t *testing.T) {
	view := NewPlotModel(testFrame(), 10, 4, -1).View()
	lines := strings.Split(view, "\n")
	require.Len(t, lines, 4)
	assert.True(t, hasBraille(view))
	assert.NotContains(t, view, string(guideRune))
}

func TestPlotModel_HiddenSeriesAreNotDrawn(t *testing.T) {
	f := testFrame()
	f.Series[0].Visible = false
	f.Series[1].Visible = false
	assert.False(t, hasBraille(NewPlotModel(f, 10, 4, -1).View()))
}

func TestPlotModel_CursorAndMarker(t *testing.T) {
	f := testFrame()
	f.Bisector = bisect.Result{Series: 0, Active: true, X: 50, Y: 10}
	f.Tooltip = &engine.Tooltip{Series: "alpha", Color: "#ff0000"}

	view := NewPlotModel(f, 10, 4, 5).View()
	assert.Contains(t, view, string(guideRune))
	assert.Contains(t, view, string(markerRune))
}

func TestPlotModel_Degenerate(t *testing.T) {
	f := testFrame()
	f.Dimensions = types.Dimensions{Width: 10, Height: 40, Margins: types.Margins{Left: 20}}.Resolve()
	f.Degenerate = true
	assert.False(t, hasBraille(NewPlotModel(f, 10, 4, -1).View()))
	assert.Empty(t, NewPlotModel(f, 0, 4, -1).View())
}

func TestPlotModel_Cell(t *testing.T) {
	m := NewPlotModel(testFrame(), 10, 4, -1)
	assert.Equal(t, canvas.Point{X: 0, Y: 0}, m.Cell(0, 0))
	assert.Equal(t, canvas.Point{X: 5, Y: 1}, m.Cell(55, 15))
	assert.Equal(t, canvas.Point{X: 9, Y: 3}, m.Cell(100, 40), "far edge stays in the last cell")
}

func TestPixelAtColumnAndRow(t *testing.T) {
	d := types.Dimensions{Width: 128, Height: 96}.Resolve()
	assert.Equal(t, 1.0, PixelAtColumn(d, 0, 64))
	assert.Equal(t, 127.0, PixelAtColumn(d, 63, 64))
	assert.Equal(t, 2.0, PixelAtRow(d, 0, 24))

	withMargin := types.Dimensions{Width: 140, Height: 96, Margins: types.Margins{Left: 12}}.Resolve()
	assert.Equal(t, 13.0, PixelAtColumn(withMargin, 0, 64))
	assert.Equal(t, 12.0, PixelAtColumn(withMargin, 0, 0))
}

func TestStrokeStyle(t *testing.T) {
	assert.Equal(t, lipgloss.Color("#ff0000"), StrokeStyle("#ff0000", 1).GetForeground())
	assert.Equal(t, defaultStroke, StrokeStyle("steelblue", 1).GetForeground())
	assert.True(t, StrokeStyle("#ff0000", 0.3).GetFaint())
	assert.False(t, StrokeStyle("#ff0000", 1).GetFaint())
}

// =============================================================================
// Axes
// =============================================================================

func TestYAxisView(t *testing.T) {
	ticks := []types.Tick{
		{Position: 0, Label: "110"},
		{Position: 40, Label: "50"},
	}
	view := YAxisView(ticks, 40, 4, 10, lipgloss.NewStyle(), lipgloss.NewStyle())
	lines := strings.Split(view, "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "     110 ┤", lines[0])
	assert.Equal(t, "         │", lines[1])
	assert.True(t, strings.HasSuffix(lines[3], "50 ┤"))
	assert.Empty(t, YAxisView(ticks, 40, 0, 10, lipgloss.NewStyle(), lipgloss.NewStyle()))
}

func TestYAxisView_TruncatesLongLabels(t *testing.T) {
	ticks := []types.Tick{{Position: 0, Label: "123456789012"}}
	lines := strings.Split(YAxisView(ticks, 40, 2, 6, lipgloss.NewStyle(), lipgloss.NewStyle()), "\n")
	assert.Equal(t, "123… ┤", lines[0])
}

func TestXAxisView(t *testing.T) {
	ticks := []types.Tick{
		{Position: 0, Label: "Jan"},
		{Position: 100, Label: "Mar"},
	}
	view := XAxisView(ticks, 100, 20, lipgloss.NewStyle(), lipgloss.NewStyle())
	lines := strings.Split(view, "\n")
	require.Len(t, lines, 2)

	axis := []rune(lines[0])
	require.Len(t, axis, 20)
	assert.Equal(t, '┬', axis[0])
	assert.Equal(t, '┬', axis[19])
	assert.Equal(t, '─', axis[10])
	assert.Equal(t, "Jan              Mar", lines[1])
}

func TestXAxisView_SkipsOverlappingLabels(t *testing.T) {
	ticks := []types.Tick{
		{Position: 0, Label: "January"},
		{Position: 10, Label: "February"},
		{Position: 90, Label: "March"},
	}
	lines := strings.Split(XAxisView(ticks, 100, 30, lipgloss.NewStyle(), lipgloss.NewStyle()), "\n")
	assert.Contains(t, lines[1], "January")
	assert.NotContains(t, lines[1], "February")
	assert.Contains(t, lines[1], "March")
	assert.Equal(t, 3, strings.Count(lines[0], "┬"), "tick marks are kept")
}

// =============================================================================
// Legend and info box
// =============================================================================

func TestLegendModel_View(t *testing.T) {
	f := testFrame()
	f.Series[1].Visible = false
	f.Bisector = bisect.Result{Series: 0, Active: true}

	lines := strings.Split(NewLegendModel(f, 20).View(), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "1 "))
	assert.Contains(t, lines[0], "▶ alpha")
	assert.True(t, strings.HasPrefix(lines[1], "2 □"))
	assert.Contains(t, lines[1], "beta")
}

func TestLegendModel_Empty(t *testing.T) {
	assert.Contains(t, NewLegendModel(engine.Frame{}, 20).View(), "no series")
}

func TestLegendModel_TruncatesNames(t *testing.T) {
	f := testFrame()
	f.Series[0].Name = "a very long series name indeed"
	view := NewLegendModel(f, 12).View()
	assert.Contains(t, view, "…")
	assert.NotContains(t, view, "indeed")
}

func TestTooltipModel_View(t *testing.T) {
	assert.Empty(t, TooltipModel{}.View())

	view := TooltipModel{
		Tooltip: &engine.Tooltip{
			Series:   "alpha",
			RecordID: "a1",
			Date:     "January 1, 2020",
			Value:    "100",
			Color:    "#ff0000",
		},
		Width: 24,
	}.View()
	assert.Contains(t, view, "January 1, 2020")
	assert.Contains(t, view, "alpha: 100")
	assert.Contains(t, view, "id a1")
}
