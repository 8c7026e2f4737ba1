package bisect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linescope/linescope/internal/engine/dataset"
	"github.com/linescope/linescope/internal/engine/scale"
	"github.com/linescope/linescope/internal/engine/types"
	"github.com/linescope/linescope/internal/engine/visibility"
)

// =============================================================================
// Center
// =============================================================================

func TestCenter(t *testing.T) {
	xs := []float64{1, 3, 7, 10}
	tests := []struct {
		name string
		xs   []float64
		x    float64
		want int
	}{
		{"empty", nil, 5, -1},
		{"before first", xs, -4, 0},
		{"after last", xs, 99, 3},
		{"nearer left", xs, 4.9, 1},
		{"nearer right", xs, 5.1, 2},
		{"tie goes low", xs, 5, 1},
		{"tie at start", []float64{0, 2}, 1, 0},
		{"single", []float64{42}, -100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Center(tt.xs, tt.x))
		})
	}
}

func TestCenter_ExactHit(t *testing.T) {
	xs := []float64{-2, 0, 0.5, 8, 13, 21}
	for k, x := range xs {
		assert.Equal(t, k, Center(xs, x), "exact hit on element %d", k)
	}
}

func TestCenter_DuplicatesReturnFirst(t *testing.T) {
	assert.Equal(t, 1, Center([]float64{1, 2, 2, 2, 3}, 2))
}

// =============================================================================
// Engine
// =============================================================================

func obs(id, date string, close float64) types.Record {
	return types.NewRecord(id, map[string]types.Value{
		"date":  types.String(date),
		"close": types.Number(close),
	})
}

// fixture is the two-series chart: bounded area 200x120 inside margins
// left=60, top=10.
type fixture struct {
	data    types.Dataset
	vis     *visibility.Store
	engine  *Engine
	x       scale.Result
	margins types.Margins
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	data := types.Dataset{
		{obs("a2", "2020-01-03", 110), obs("a1", "2020-01-01", 100)},
		{obs("b1", "2020-01-02", 50)},
	}
	dims := types.Dimensions{Width: 260, Height: 130, Margins: types.Margins{Top: 10, Left: 60}}.Resolve()
	require.Equal(t, 200.0, dims.BoundedWidth)
	require.Equal(t, 120.0, dims.BoundedHeight)

	flat := dataset.Flatten(data)
	x := scale.Build(scale.Params{Data: flat, AccessorKey: "date", DateFormat: "%Y-%m-%d", Range: [2]float64{0, dims.BoundedWidth}})
	y := scale.Build(scale.Params{Data: flat, AccessorKey: "close", Range: [2]float64{dims.BoundedHeight, 0}})

	vis := visibility.NewStore(len(data))
	e := New(vis)
	e.SetData(data, x.Accessor)
	e.SetScales(x.Scale, y, dims.Margins)
	return &fixture{data: data, vis: vis, engine: e, x: x, margins: dims.Margins}
}

// pixel returns the outer-box pixel of a date string.
func (f *fixture) pixel(date string) float64 {
	return f.x.Scale.Map(f.x.Parse(date)) + f.margins.Left
}

func TestEngine_StartsIdle(t *testing.T) {
	e := New(nil)
	assert.Equal(t, Idle, e.State())
	r := e.Result()
	assert.False(t, r.Active)
	assert.Nil(t, r.Record)
	assert.Equal(t, -1, r.Series)
}

func TestEngine_MidpointTieResolvesToLowerIndex(t *testing.T) {
	f := newFixture(t)
	px := f.pixel("2020-01-02")
	require.InDelta(t, 160, px, 1e-9)

	require.True(t, f.engine.SelectLine(0, px))
	r := f.engine.Result()
	require.True(t, r.Active)
	require.NotNil(t, r.Record)
	assert.Equal(t, "a1", r.Record.ID)
	assert.Equal(t, 0, r.Index)
	assert.Equal(t, 0, r.Series)
	assert.Equal(t, px, r.X)
	assert.InDelta(t, 30, r.Y, 1e-9)
}

func TestEngine_PointerMove(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.engine.SelectLine(0, f.pixel("2020-01-01")))
	assert.Equal(t, "a1", f.engine.Result().Record.ID)

	f.engine.PointerMove(f.pixel("2020-01-03"))
	r := f.engine.Result()
	assert.Equal(t, "a2", r.Record.ID)
	assert.Equal(t, 1, r.Index)
	assert.InDelta(t, 10, r.Y, 1e-9)

	// Past the right edge clamps to the last point.
	f.engine.PointerMove(10_000)
	assert.Equal(t, "a2", f.engine.Result().Record.ID)
}

func TestEngine_PointerMoveWhileIdleIsNoop(t *testing.T) {
	f := newFixture(t)
	f.engine.PointerMove(f.pixel("2020-01-03"))
	assert.Equal(t, Idle, f.engine.State())
	assert.Nil(t, f.engine.Result().Record)
}

func TestEngine_Reset(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.engine.SelectLine(1, 100))
	assert.Equal(t, "b1", f.engine.Result().Record.ID)

	f.engine.Reset()
	assert.Equal(t, Idle, f.engine.State())
	assert.Equal(t, idleResult(), f.engine.Result())
	_, ok := f.engine.Target()
	assert.False(t, ok)
}

func TestEngine_SelectRejected(t *testing.T) {
	f := newFixture(t)

	assert.False(t, f.engine.SelectLine(2, 100))
	assert.False(t, f.engine.SelectLine(-1, 100))

	f.vis.Toggle(1, false)
	assert.False(t, f.engine.SelectLine(1, 100), "hidden series cannot be targeted")
	assert.Equal(t, Idle, f.engine.State())
}

func TestEngine_SeriesHidden(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.engine.SelectLine(0, 100))

	f.engine.SeriesHidden(1)
	assert.Equal(t, Targeting, f.engine.State(), "hiding another series keeps the target")

	f.engine.SeriesHidden(0)
	assert.Equal(t, Idle, f.engine.State())
}

func TestEngine_SetDataInvalidatesCache(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.engine.SelectLine(0, f.pixel("2020-01-02")))
	assert.Equal(t, "a1", f.engine.Result().Record.ID)

	next := types.Dataset{
		{obs("n1", "2020-01-02", 105)},
		f.data[1],
	}
	f.engine.SetData(next, f.x.Accessor)
	assert.Equal(t, "n1", f.engine.Result().Record.ID)

	f.engine.SetData(types.Dataset{f.data[1]}, f.x.Accessor)
	assert.Equal(t, Targeting, f.engine.State())

	f.engine.SetData(nil, f.x.Accessor)
	assert.Equal(t, Idle, f.engine.State(), "a vanished target resets the engine")
}

func TestEngine_EmptySeriesHasNoMatch(t *testing.T) {
	f := newFixture(t)
	f.engine.SetData(types.Dataset{{}, f.data[1]}, f.x.Accessor)

	require.True(t, f.engine.SelectLine(0, 100))
	r := f.engine.Result()
	assert.False(t, r.Active)
	assert.Nil(t, r.Record)
	assert.Equal(t, -1, r.Index)
}
