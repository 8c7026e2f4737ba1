// Package bisect finds the data point of a selected series nearest to the
// pointer.
package bisect

import (
	"github.com/linescope/linescope/internal/engine/dataset"
	"github.com/linescope/linescope/internal/engine/scale"
	"github.com/linescope/linescope/internal/engine/types"
	"github.com/linescope/linescope/internal/utils"
)

// State is the engine's interaction state.
type State int

const (
	Idle State = iota
	Targeting
)

func (s State) String() string {
	if s == Targeting {
		return "targeting"
	}
	return "idle"
}

// Visibility answers whether a series is currently shown.
type Visibility interface {
	Visible(i int) bool
}

// Result is the current match. Record is nil when nothing matched.
type Result struct {
	Series int
	Active bool
	Record *types.Record
	// X and Y are display coordinates in the outer chart box.
	X, Y float64
	// Index is the position of Record in the x-sorted series.
	Index int
}

type sortedSeries struct {
	points []dataset.Point
	xs     []float64
}

// Engine is the bisector state machine. It is not safe for concurrent use;
// events are applied in arrival order by a single owner.
type Engine struct {
	vis     Visibility
	data    types.Dataset
	xAcc    scale.Accessor
	xScale  scale.Scale
	y       scale.Result
	margins types.Margins

	// sorted caches the x-sorted copy of each series.
	sorted map[int]sortedSeries

	state    State
	target   int
	pointerX float64
	result   Result
}

// New returns an idle engine. vis may be nil, in which case every series is
// selectable.
func New(vis Visibility) *Engine {
	return &Engine{vis: vis, sorted: map[int]sortedSeries{}, target: -1, result: idleResult()}
}

func idleResult() Result { return Result{Series: -1, Index: -1} }

// SetData replaces the dataset and invalidates the sort cache.
func (e *Engine) SetData(data types.Dataset, xAcc scale.Accessor) {
	e.data = data
	e.xAcc = xAcc
	e.sorted = map[int]sortedSeries{}
	if e.state == Targeting {
		if e.target >= len(data) {
			utils.Debug("bisect: target %d gone after data change", e.target)
			e.Reset()
			return
		}
		e.recompute()
	}
}

// SetScales updates the scales and margins the lookup runs through.
func (e *Engine) SetScales(x scale.Scale, y scale.Result, margins types.Margins) {
	e.xScale = x
	e.y = y
	e.margins = margins
	if e.state == Targeting {
		e.recompute()
	}
}

// SelectLine targets series i and matches immediately at pixelX. Hidden and
// unknown series are rejected.
func (e *Engine) SelectLine(i int, pixelX float64) bool {
	if i < 0 || i >= len(e.data) {
		utils.Debug("bisect: rejected select of series %d (have %d)", i, len(e.data))
		return false
	}
	if e.vis != nil && !e.vis.Visible(i) {
		utils.Debug("bisect: rejected select of hidden series %d", i)
		return false
	}
	e.state = Targeting
	e.target = i
	e.pointerX = pixelX
	e.recompute()
	return true
}

// PointerMove updates the match while targeting and does nothing when idle.
func (e *Engine) PointerMove(pixelX float64) {
	if e.state != Targeting {
		return
	}
	e.pointerX = pixelX
	e.recompute()
}

// Reset returns to Idle and clears the match.
func (e *Engine) Reset() {
	e.state = Idle
	e.target = -1
	e.pointerX = 0
	e.result = idleResult()
}

// SeriesHidden drops the target when series i is the one being bisected.
func (e *Engine) SeriesHidden(i int) {
	if e.state == Targeting && e.target == i {
		e.Reset()
	}
}

// State returns the current state.
func (e *Engine) State() State { return e.state }

// Target returns the targeted series, if any.
func (e *Engine) Target() (int, bool) {
	return e.target, e.state == Targeting
}

// Result returns the current match.
func (e *Engine) Result() Result { return e.result }

func (e *Engine) series(i int) sortedSeries {
	if s, ok := e.sorted[i]; ok {
		return s
	}
	pts := dataset.SortedByX(e.data[i], e.xAcc)
	s := sortedSeries{points: pts, xs: dataset.Xs(pts)}
	e.sorted[i] = s
	return s
}

func (e *Engine) recompute() {
	e.result = Result{Series: e.target, Index: -1, X: e.pointerX}
	if e.xScale == nil || e.xAcc == nil || e.y.Scale == nil {
		return
	}
	s := e.series(e.target)
	x, ok := e.xScale.Invert(e.pointerX - e.margins.Left)
	if !ok {
		return
	}
	idx := Center(s.xs, x.Float())
	if idx < 0 {
		return
	}
	rec := s.points[idx].Record
	e.result = Result{
		Series: e.target,
		Active: true,
		Record: &rec,
		X:      e.pointerX,
		Y:      e.y.Position(rec) + e.margins.Top,
		Index:  idx,
	}
}
