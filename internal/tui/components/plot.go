package components

import (
	"math"
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"
	"github.com/charmbracelet/lipgloss"

	"github.com/linescope/linescope/internal/engine"
	"github.com/linescope/linescope/internal/engine/line"
	"github.com/linescope/linescope/internal/engine/types"
)

const (
	markerRune = '●'
	guideRune  = '│'
)

var (
	defaultStroke = lipgloss.AdaptiveColor{Light: "#282a36", Dark: "#f8f8f2"}
	guideStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#44475a"))
)

// StrokeStyle is the terminal style of a series line.
func StrokeStyle(stroke string, opacity float64) lipgloss.Style {
	s := lipgloss.NewStyle()
	if strings.HasPrefix(stroke, "#") {
		s = s.Foreground(lipgloss.Color(stroke))
	} else {
		s = s.Foreground(defaultStroke)
	}
	if opacity < 1 {
		s = s.Faint(true)
	}
	return s
}

// PlotModel rasterises the visible series of a frame onto a braille canvas.
// One cell covers a 2x4 block of chart pixels.
type PlotModel struct {
	Frame  engine.Frame
	Cols   int
	Rows   int
	Cursor int // column of the pointer guide, -1 for none
}

// NewPlotModel creates a plot of the given size in cells.
func NewPlotModel(f engine.Frame, cols, rows, cursor int) PlotModel {
	return PlotModel{Frame: f, Cols: cols, Rows: rows, Cursor: cursor}
}

// Cell returns the canvas cell that holds outer-box pixel (px, py).
func (m PlotModel) Cell(px, py float64) canvas.Point {
	d := m.Frame.Dimensions
	return canvas.Point{
		X: cellIndex(px-d.Margins.Left, d.BoundedWidth, m.Cols),
		Y: cellIndex(py-d.Margins.Top, d.BoundedHeight, m.Rows),
	}
}

func cellIndex(v, extent float64, cells int) int {
	if extent <= 0 || cells <= 0 {
		return -1
	}
	i := int(math.Floor(v / extent * float64(cells)))
	if i == cells {
		i--
	}
	return i
}

// View renders the plot.
func (m PlotModel) View() string {
	if m.Cols < 1 || m.Rows < 1 {
		return ""
	}
	c := canvas.New(m.Cols, m.Rows)
	d := m.Frame.Dimensions
	if m.Frame.Degenerate {
		return c.View()
	}

	for _, s := range m.Frame.VisibleSeries() {
		grid := graph.NewBrailleGrid(m.Cols, m.Rows, 0, d.BoundedWidth, 0, d.BoundedHeight)
		drawPath(grid, s.Path, d.BoundedHeight, m.Cols*2, m.Rows*4)
		graph.DrawBraillePatterns(&c, canvas.Point{}, grid.BraillePatterns(), StrokeStyle(s.Stroke, s.Opacity))
	}

	if m.Cursor >= 0 && m.Cursor < m.Cols {
		for y := 0; y < m.Rows; y++ {
			p := canvas.Point{X: m.Cursor, Y: y}
			if c.Cell(p).Rune == 0 {
				c.SetRuneWithStyle(p, guideRune, guideStyle)
			}
		}
	}

	if t := m.Frame.Tooltip; t != nil {
		p := m.Cell(m.Frame.Bisector.X, m.Frame.Bisector.Y)
		c.SetRuneWithStyle(p, markerRune, StrokeStyle(t.Color, 1).Bold(true))
	}
	return c.View()
}

// drawPath sets the dots of every segment of p. Canvas rows grow downward
// like chart pixels, so y is flipped into the grid's upward axis.
func drawPath(grid *graph.BrailleGrid, p line.Path, boundedHeight float64, gw, gh int) {
	set := func(pt canvas.Point) {
		if pt.X >= 0 && pt.X < gw && pt.Y >= 0 && pt.Y < gh {
			grid.Set(pt)
		}
	}
	at := func(pt line.Point) canvas.Point {
		return grid.GridPoint(canvas.Float64Point{X: pt.X, Y: boundedHeight - pt.Y})
	}

	for _, seg := range p.Segments() {
		if len(seg) == 1 {
			set(at(seg[0]))
			continue
		}
		for i := 0; i+1 < len(seg); i++ {
			for _, pt := range graph.GetLinePoints(at(seg[i]), at(seg[i+1])) {
				set(pt)
			}
		}
	}
}

// PixelAtColumn returns the outer-box pixel at the centre of a plot column.
func PixelAtColumn(d types.Dimensions, col, cols int) float64 {
	if cols <= 0 {
		return d.Margins.Left
	}
	step := d.BoundedWidth / float64(cols)
	return d.Margins.Left + (float64(col)+0.5)*step
}

// PixelAtRow returns the outer-box pixel at the centre of a plot row.
func PixelAtRow(d types.Dimensions, row, rows int) float64 {
	if rows <= 0 {
		return d.Margins.Top
	}
	step := d.BoundedHeight / float64(rows)
	return d.Margins.Top + (float64(row)+0.5)*step
}

// HitTest returns the visible series whose line passes closest to outer-box
// pixel (px, py) within tolerance pixels, or -1.
func HitTest(f engine.Frame, px, py, tolerance float64) int {
	x := px - f.Dimensions.Margins.Left
	y := py - f.Dimensions.Margins.Top
	best, bestDist := -1, tolerance
	for _, s := range f.VisibleSeries() {
		for _, seg := range s.Path.Segments() {
			if yy, ok := yAt(seg, x); ok {
				if dist := math.Abs(yy - y); dist <= bestDist {
					best, bestDist = s.Index, dist
				}
			}
		}
	}
	return best
}

// yAt interpolates the segment's y at x.
func yAt(seg []line.Point, x float64) (float64, bool) {
	if len(seg) == 1 {
		return seg[0].Y, math.Abs(seg[0].X-x) < 1
	}
	for i := 0; i+1 < len(seg); i++ {
		a, b := seg[i], seg[i+1]
		lo, hi := math.Min(a.X, b.X), math.Max(a.X, b.X)
		if x < lo || x > hi {
			continue
		}
		if b.X == a.X {
			return a.Y, true
		}
		return a.Y + (x-a.X)/(b.X-a.X)*(b.Y-a.Y), true
	}
	return 0, false
}
