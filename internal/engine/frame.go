package engine

import (
	"github.com/linescope/linescope/internal/engine/bisect"
	"github.com/linescope/linescope/internal/engine/line"
	"github.com/linescope/linescope/internal/engine/scale"
	"github.com/linescope/linescope/internal/engine/types"
	"github.com/linescope/linescope/internal/utils"
)

// SeriesFrame is the render state of one series.
type SeriesFrame struct {
	Index   int       `json:"index"`
	Name    string    `json:"name"`
	Stroke  string    `json:"stroke"`
	Opacity float64   `json:"opacity"`
	Visible bool      `json:"visible"`
	Points  int       `json:"points"`
	Path    line.Path `json:"-"`
	D       string    `json:"d"`
}

// Tooltip is the info box content for the matched record.
type Tooltip struct {
	Series   string        `json:"series"`
	RecordID string        `json:"record_id"`
	Date     string        `json:"date"`
	Value    string        `json:"value"`
	Color    string        `json:"color"`
	Record   *types.Record `json:"record"`
}

// Frame is everything a renderer reads to draw the chart.
type Frame struct {
	ID         string           `json:"id"`
	Source     string           `json:"source"`
	Dimensions types.Dimensions `json:"dimensions"`
	Degenerate bool             `json:"degenerate"`

	X scale.Result `json:"-"`
	Y scale.Result `json:"-"`

	XTicks []types.Tick `json:"-"`
	YTicks []types.Tick `json:"-"`

	Series     []SeriesFrame `json:"series"`
	Categories []string      `json:"categories,omitempty"`

	State    bisect.State  `json:"-"`
	Bisector bisect.Result `json:"-"`
	Tooltip  *Tooltip      `json:"tooltip,omitempty"`

	Err error `json:"-"`
}

// Frame derives the current render state.
func (c *Chart) Frame() Frame {
	dims := c.Dimensions()
	x, y := c.Scales()
	xCount, yCount := c.cfg.TickCounts()
	colors := c.Colors()
	target, targeting := c.bisect.Target()

	f := Frame{
		ID:         c.ID,
		Source:     c.source,
		Dimensions: dims,
		Degenerate: dims.Degenerate(),
		X:          x,
		Y:          y,
		XTicks:     x.AxisTicks(xCount, c.cfg.XTickValues),
		YTicks:     y.AxisTicks(yCount, c.cfg.YTickValues),
		Categories: colors.Categories(),
		State:      c.bisect.State(),
		Bisector:   c.bisect.Result(),
		Err:        c.err,
	}

	paths := c.linePaths()
	f.Series = make([]SeriesFrame, len(c.data))
	for i, s := range c.data {
		opacity := 1.0
		if targeting && i != target {
			opacity = types.DimmedOpacity
		}
		f.Series[i] = SeriesFrame{
			Index:   i,
			Name:    c.SeriesName(i),
			Stroke:  colors.Stroke(s, c.cfg.CategoryKey, types.DefaultStroke),
			Opacity: opacity,
			Visible: c.vis.Visible(i),
			Points:  len(s),
			Path:    paths[i],
			D:       paths[i].D,
		}
	}

	if f.Bisector.Active && f.Bisector.Record != nil {
		f.Tooltip = c.tooltip(f, *f.Bisector.Record)
	}
	return f
}

func (c *Chart) tooltip(f Frame, rec types.Record) *Tooltip {
	t := &Tooltip{
		Series:   f.Series[f.Bisector.Series].Name,
		RecordID: rec.ID,
		Color:    f.Series[f.Bisector.Series].Stroke,
		Record:   &rec,
	}

	xd := f.X.Value(rec)
	if xd.Kind == types.TimeDatum {
		t.Date = scale.FormatDate(c.cfg.PointFormat(), xd.Time)
	} else {
		t.Date = f.X.Scale.Format(xd)
	}

	yd := f.Y.Value(rec)
	if yd.Kind == types.NumberDatum {
		t.Value = utils.FormatValue(yd.Num)
	} else {
		t.Value = yd.String()
	}
	return t
}

// VisibleSeries returns the series that are drawn, in rendering order.
func (f Frame) VisibleSeries() []SeriesFrame {
	out := make([]SeriesFrame, 0, len(f.Series))
	for _, s := range f.Series {
		if s.Visible {
			out = append(out, s)
		}
	}
	return out
}
