// Package line turns a series into a polyline in pixel space.
package line

import (
	"math"
	"strconv"
	"strings"

	"github.com/linescope/linescope/internal/engine/scale"
	"github.com/linescope/linescope/internal/engine/types"
)

// Point is one vertex. Undefined points are where the series could not be
// read and the line is broken.
type Point struct {
	X, Y    float64
	Defined bool
}

// Path is the generated polyline. D is its SVG path data.
type Path struct {
	Points []Point
	D      string
}

// Generator projects records through a pair of scales.
type Generator struct {
	xScale scale.Scale
	xAcc   scale.Accessor
	yScale scale.Scale
	yAcc   scale.Accessor
}

// New returns a generator for the given scales and accessors.
func New(xScale scale.Scale, xAcc scale.Accessor, yScale scale.Scale, yAcc scale.Accessor) Generator {
	return Generator{xScale: xScale, xAcc: xAcc, yScale: yScale, yAcc: yAcc}
}

// FromResults builds a generator from two built scales.
func FromResults(x, y scale.Result) Generator {
	return New(x.Scale, x.Accessor, y.Scale, y.Accessor)
}

// Path computes the polyline for s in input order.
func (g Generator) Path(s types.Series) Path {
	p := Path{Points: make([]Point, 0, len(s))}
	var b strings.Builder
	pen := false
	for _, r := range s {
		pt := g.project(r)
		p.Points = append(p.Points, pt)
		if !pt.Defined {
			pen = false
			continue
		}
		if pen {
			b.WriteByte('L')
		} else {
			b.WriteByte('M')
			pen = true
		}
		b.WriteString(coord(pt.X))
		b.WriteByte(',')
		b.WriteString(coord(pt.Y))
	}
	p.D = b.String()
	return p
}

func (g Generator) project(r types.Record) Point {
	xd, yd := g.xAcc(r), g.yAcc(r)
	if !xd.Valid() || !yd.Valid() {
		return Point{}
	}
	x, y := g.xScale.Map(xd), g.yScale.Map(yd)
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return Point{}
	}
	return Point{X: x, Y: y, Defined: true}
}

// Segments splits the defined points into runs that are drawn connected.
func (p Path) Segments() [][]Point {
	var segs [][]Point
	var cur []Point
	for _, pt := range p.Points {
		if !pt.Defined {
			if len(cur) > 0 {
				segs = append(segs, cur)
			}
			cur = nil
			continue
		}
		cur = append(cur, pt)
	}
	if len(cur) > 0 {
		segs = append(segs, cur)
	}
	return segs
}

// Empty reports whether nothing would be drawn.
func (p Path) Empty() bool { return p.D == "" }

func coord(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}
