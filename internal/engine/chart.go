package engine

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/linescope/linescope/internal/engine/bisect"
	"github.com/linescope/linescope/internal/engine/dataset"
	"github.com/linescope/linescope/internal/engine/events"
	"github.com/linescope/linescope/internal/engine/line"
	"github.com/linescope/linescope/internal/engine/memo"
	"github.com/linescope/linescope/internal/engine/palette"
	"github.com/linescope/linescope/internal/engine/scale"
	"github.com/linescope/linescope/internal/engine/types"
	"github.com/linescope/linescope/internal/engine/visibility"
	"github.com/linescope/linescope/internal/utils"
)

// scaleKey captures every input of the scale derivation.
type scaleKey struct {
	rev        int
	dims       types.Dimensions
	xKey, yKey string
	dateFormat string
}

type scalePair struct {
	x, y scale.Result
}

type colorKey struct {
	rev         int
	categoryKey string
	colors      string
}

// Chart is one interactive chart session. It owns the dataset, the
// visibility flags and the bisector, and derives everything else on demand.
// A Chart is driven from a single goroutine.
type Chart struct {
	ID string

	cfg    types.ChartConfig
	source string
	data   types.Dataset
	rev    int
	err    error

	vis    *visibility.Store
	bisect *bisect.Engine

	flat   *memo.Cache[int, []types.Record]
	scales *memo.Cache[scaleKey, scalePair]
	paths  *memo.Cache[scaleKey, []line.Path]
	colors *memo.Cache[colorKey, palette.Assignment]
}

// NewChart creates an empty chart session.
func NewChart(cfg types.ChartConfig) *Chart {
	vis := visibility.NewStore(0)
	c := &Chart{
		ID:     uuid.New().String(),
		cfg:    cfg,
		vis:    vis,
		bisect: bisect.New(vis),
		flat:   memo.MustNew[int, []types.Record]("flatten", 4),
		scales: memo.MustNew[scaleKey, scalePair]("scales", 8),
		paths:  memo.MustNew[scaleKey, []line.Path]("paths", 8),
		colors: memo.MustNew[colorKey, palette.Assignment]("colors", 4),
	}
	utils.Debug("chart %s: created", c.ID)
	return c
}

// Config returns the chart configuration.
func (c *Chart) Config() types.ChartConfig { return c.cfg }

// Data returns the current dataset.
func (c *Chart) Data() types.Dataset { return c.data }

// Err returns the last load error, cleared by the next successful load.
func (c *Chart) Err() error { return c.err }

// SetData replaces the dataset.
func (c *Chart) SetData(source string, data types.Dataset) {
	c.source = source
	c.data = data
	c.rev++
	c.err = nil
	if c.vis.Sync(len(data)) {
		utils.Debug("chart %s: series count now %d, visibility reset", c.ID, len(data))
	}
	c.syncBisector(true)
}

// Resize changes the outer chart box. Margins are kept.
func (c *Chart) Resize(width, height float64) {
	d := c.cfg.Dimensions
	d.Width, d.Height = width, height
	d.BoundedWidth, d.BoundedHeight = 0, 0
	c.cfg.Dimensions = d
	c.syncBisector(false)
}

// Dimensions returns the resolved chart dimensions.
func (c *Chart) Dimensions() types.Dimensions { return c.cfg.Dimensions.Resolve() }

// Apply dispatches one interaction event and reports whether the frame may
// have changed. Unknown messages are ignored.
func (c *Chart) Apply(msg any) bool {
	switch m := msg.(type) {
	case events.SelectLineMsg:
		return c.bisect.SelectLine(m.Series, m.X)

	case events.PointerMoveMsg:
		if c.bisect.State() != bisect.Targeting {
			return false
		}
		c.bisect.PointerMove(m.X)
		return true

	case events.ResetBisectorMsg:
		was := c.bisect.State()
		c.bisect.Reset()
		return was == bisect.Targeting

	case events.ToggleSeriesMsg:
		if !c.vis.Toggle(m.Series, m.Visible) {
			return false
		}
		if !m.Visible {
			c.bisect.SeriesHidden(m.Series)
		}
		return true

	case events.ResizeMsg:
		c.Resize(m.Width, m.Height)
		return true

	case events.DataLoadedMsg:
		c.SetData(m.Source, m.Dataset)
		return true

	case events.DataErrorMsg:
		c.err = m.Err
		utils.Debug("chart %s: load of %s failed: %v", c.ID, m.Source, m.Err)
		return true
	}
	return false
}

func (c *Chart) key() scaleKey {
	return scaleKey{
		rev:        c.rev,
		dims:       c.Dimensions(),
		xKey:       c.cfg.XKey,
		yKey:       c.cfg.YKey,
		dateFormat: c.cfg.DateFormat,
	}
}

func (c *Chart) flattened() []types.Record {
	return c.flat.Get(c.rev, func() []types.Record { return dataset.Flatten(c.data) })
}

// Scales returns the x and y scales for the current data and size.
func (c *Chart) Scales() (x, y scale.Result) {
	k := c.key()
	p := c.scales.Get(k, func() scalePair {
		flat := c.flattened()
		return scalePair{
			x: scale.Build(scale.Params{
				Data:        flat,
				AccessorKey: k.xKey,
				DateFormat:  k.dateFormat,
				Range:       [2]float64{0, k.dims.BoundedWidth},
			}),
			y: scale.Build(scale.Params{
				Data:        flat,
				AccessorKey: k.yKey,
				Range:       [2]float64{k.dims.BoundedHeight, 0},
			}),
		}
	})
	return p.x, p.y
}

func (c *Chart) linePaths() []line.Path {
	k := c.key()
	return c.paths.Get(k, func() []line.Path {
		x, y := c.Scales()
		gen := line.FromResults(x, y)
		out := make([]line.Path, len(c.data))
		for i, s := range c.data {
			out[i] = gen.Path(s)
		}
		return out
	})
}

// Colors returns the category colour assignment.
func (c *Chart) Colors() palette.Assignment {
	k := colorKey{rev: c.rev, categoryKey: c.cfg.CategoryKey, colors: strings.Join(c.cfg.Colors, "\x00")}
	return c.colors.Get(k, func() palette.Assignment {
		return palette.Assign(c.flattened(), c.cfg.CategoryKey, c.cfg.Colors)
	})
}

func (c *Chart) syncBisector(dataChanged bool) {
	x, y := c.Scales()
	if dataChanged {
		c.bisect.SetData(c.data, x.Accessor)
	}
	c.bisect.SetScales(x.Scale, y, c.Dimensions().Margins)
}

// Visible reports whether series i is shown.
func (c *Chart) Visible(i int) bool { return c.vis.Visible(i) }

// Bisector returns the current bisector match.
func (c *Chart) Bisector() bisect.Result { return c.bisect.Result() }

// PixelAt returns the outer-box pixel of an x value given as text, parsed
// like the data.
func (c *Chart) PixelAt(raw string) (float64, error) {
	x, _ := c.Scales()
	d := x.Parse(raw)
	if !d.Valid() {
		return 0, fmt.Errorf("cannot read %q as %s", raw, c.cfg.XKey)
	}
	return x.Scale.Map(d) + c.Dimensions().Margins.Left, nil
}

// SeriesName labels series i by its category, falling back to its position.
func (c *Chart) SeriesName(i int) string {
	if i < 0 || i >= len(c.data) {
		return ""
	}
	if c.cfg.CategoryKey != "" && len(c.data[i]) > 0 {
		if v, ok := c.data[i][0].Get(c.cfg.CategoryKey); ok {
			return v.Text()
		}
	}
	return fmt.Sprintf("series %d", i+1)
}
