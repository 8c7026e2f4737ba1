// Package render turns chart frames into static documents.
package render

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"math"
	"strconv"

	"github.com/linescope/linescope/internal/engine"
	"github.com/linescope/linescope/internal/engine/types"
)

const (
	tickSize     = 6
	strokeWidth  = 1.5
	legendRow    = 16
	fontFamily   = "sans-serif"
	axisColor    = "#444"
	tooltipWidth = 150
)

// num prints a coordinate with at most two decimals.
func num(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func esc(s string) string { return html.EscapeString(s) }

// SVG writes f as a standalone SVG document: axes, one path per visible
// series, a legend and, while a series is targeted, the bisector marker and
// its info box.
func SVG(w io.Writer, f engine.Frame) error {
	d := f.Dimensions
	var b bytes.Buffer

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" font-family="%s" font-size="10">`,
		num(d.Width), num(d.Height), num(d.Width), num(d.Height), fontFamily)
	b.WriteString(`<rect width="100%" height="100%" fill="white"/>`)
	fmt.Fprintf(&b, `<g transform="translate(%s,%s)">`, num(d.Margins.Left), num(d.Margins.Top))

	if !f.Degenerate {
		xAxis(&b, f)
		yAxis(&b, f)
	}

	b.WriteString(`<g class="lines">`)
	for _, s := range f.VisibleSeries() {
		if s.D == "" {
			continue
		}
		fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="%s" stroke-width="%s" stroke-opacity="%s"><title>%s</title></path>`,
			s.D, esc(s.Stroke), num(strokeWidth), num(s.Opacity), esc(s.Name))
	}
	b.WriteString(`</g>`)

	if f.Tooltip != nil {
		bisector(&b, f)
	}
	b.WriteString(`</g>`)

	legend(&b, f)
	if f.Err != nil {
		fmt.Fprintf(&b, `<text x="4" y="%s" fill="#c00">%s</text>`, num(d.Height-4), esc(f.Err.Error()))
	}
	b.WriteString(`</svg>`)

	_, err := w.Write(b.Bytes())
	return err
}

func xAxis(b *bytes.Buffer, f engine.Frame) {
	bw, bh := f.Dimensions.BoundedWidth, f.Dimensions.BoundedHeight
	fmt.Fprintf(b, `<g class="x-axis" transform="translate(0,%s)" text-anchor="middle">`, num(bh))
	fmt.Fprintf(b, `<line x2="%s" stroke="%s"/>`, num(bw), axisColor)
	for _, t := range f.XTicks {
		fmt.Fprintf(b, `<g transform="translate(%s,0)"><line y2="%d" stroke="%s"/><text y="%d" dy="0.71em">%s</text></g>`,
			num(t.Position), tickSize, axisColor, tickSize+3, esc(t.Label))
	}
	if f.X.Key != "" {
		fmt.Fprintf(b, `<text x="%s" y="%d" dy="0.71em">%s</text>`, num(bw/2), tickSize+20, esc(f.X.Key))
	}
	b.WriteString(`</g>`)
}

func yAxis(b *bytes.Buffer, f engine.Frame) {
	bh := f.Dimensions.BoundedHeight
	b.WriteString(`<g class="y-axis" text-anchor="end">`)
	fmt.Fprintf(b, `<line y2="%s" stroke="%s"/>`, num(bh), axisColor)
	for _, t := range f.YTicks {
		fmt.Fprintf(b, `<g transform="translate(0,%s)"><line x2="-%d" stroke="%s"/><text x="-%d" dy="0.32em">%s</text></g>`,
			num(t.Position), tickSize, axisColor, tickSize+3, esc(t.Label))
	}
	if f.Y.Key != "" {
		fmt.Fprintf(b, `<text transform="rotate(-90)" x="%s" y="%s" text-anchor="middle">%s</text>`,
			num(-bh/2), num(-f.Dimensions.Margins.Left+12), esc(f.Y.Key))
	}
	b.WriteString(`</g>`)
}

// bisector draws the guide line, the matched point and the info box. The
// group is already translated by the margins.
func bisector(b *bytes.Buffer, f engine.Frame) {
	m := f.Dimensions.Margins
	x := f.Bisector.X - m.Left
	y := f.Bisector.Y - m.Top
	t := f.Tooltip

	b.WriteString(`<g class="bisector">`)
	fmt.Fprintf(b, `<line x1="%s" x2="%s" y2="%s" stroke="%s" stroke-dasharray="3,3"/>`,
		num(x), num(x), num(f.Dimensions.BoundedHeight), axisColor)
	fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="4" fill="%s"/>`, num(x), num(y), esc(t.Color))

	bx := x + 8
	if bx+tooltipWidth > f.Dimensions.BoundedWidth {
		bx = x - 8 - tooltipWidth
	}
	by := y - 20
	fmt.Fprintf(b, `<g class="info" transform="translate(%s,%s)">`, num(bx), num(by))
	fmt.Fprintf(b, `<rect width="%d" height="40" fill="white" stroke="%s" rx="3"/>`, tooltipWidth, esc(t.Color))
	fmt.Fprintf(b, `<text x="6" y="15">%s</text>`, esc(t.Date))
	fmt.Fprintf(b, `<text x="6" y="31" font-weight="bold">%s: %s</text>`, esc(t.Series), esc(t.Value))
	b.WriteString(`</g></g>`)
}

// legend lists every series; hidden ones are greyed out.
func legend(b *bytes.Buffer, f engine.Frame) {
	if len(f.Series) == 0 {
		return
	}
	x := f.Dimensions.Width - f.Dimensions.Margins.Right - 100
	fmt.Fprintf(b, `<g class="legend" transform="translate(%s,%s)">`, num(x), num(f.Dimensions.Margins.Top))
	for i, s := range f.Series {
		opacity := 1.0
		if !s.Visible {
			opacity = 0.3
		}
		y := i * legendRow
		fmt.Fprintf(b, `<g opacity="%s"><rect y="%d" width="10" height="10" fill="%s"/><text x="14" y="%d" dy="0.8em">%s</text></g>`,
			num(opacity), y, esc(s.Stroke), y, esc(s.Name))
	}
	b.WriteString(`</g>`)
}

// tickLabels is a helper for callers that only need the labels.
func tickLabels(ticks []types.Tick) []string {
	out := make([]string, len(ticks))
	for i, t := range ticks {
		out[i] = t.Label
	}
	return out
}
