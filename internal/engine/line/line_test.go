package line

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linescope/linescope/internal/engine/dataset"
	"github.com/linescope/linescope/internal/engine/scale"
	"github.com/linescope/linescope/internal/engine/types"
)

func obs(id, date string, close float64) types.Record {
	return types.NewRecord(id, map[string]types.Value{
		"date":  types.String(date),
		"close": types.Number(close),
	})
}

func generator(t *testing.T, data types.Dataset, dims types.Dimensions) Generator {
	t.Helper()
	dims = dims.Resolve()
	flat := dataset.Flatten(data)
	x := scale.Build(scale.Params{
		Data: flat, AccessorKey: "date", DateFormat: "%Y-%m-%d",
		Range: [2]float64{0, dims.BoundedWidth},
	})
	y := scale.Build(scale.Params{
		Data: flat, AccessorKey: "close",
		Range: [2]float64{dims.BoundedHeight, 0},
	})
	return FromResults(x, y)
}

func TestGenerator_Path(t *testing.T) {
	series := types.Series{
		obs("a1", "2020-01-01", 100),
		obs("a2", "2020-01-03", 200),
		obs("a3", "2020-01-02", 150),
	}
	g := generator(t, types.Dataset{series}, types.Dimensions{Width: 200, Height: 100})

	p := g.Path(series)
	require.Len(t, p.Points, 3)
	// Input order is kept, not x order.
	assert.Equal(t, "M0,100L200,0L100,50", p.D)
	assert.Len(t, p.Segments(), 1)
	assert.False(t, p.Empty())
}

func TestGenerator_EmptySeries(t *testing.T) {
	g := generator(t, nil, types.Dimensions{Width: 200, Height: 100})
	p := g.Path(nil)
	assert.Empty(t, p.D)
	assert.Empty(t, p.Points)
	assert.True(t, p.Empty())
	assert.Nil(t, p.Segments())
}

func TestGenerator_InvalidBreaksLine(t *testing.T) {
	series := types.Series{
		obs("a1", "2020-01-01", 100),
		obs("a2", "2020-01-02", 150),
		obs("bad", "not a date", 175),
		obs("a3", "2020-01-03", 200),
		types.NewRecord("noclose", map[string]types.Value{"date": types.String("2020-01-03")}),
	}
	g := generator(t, types.Dataset{series}, types.Dimensions{Width: 200, Height: 100})

	p := g.Path(series)
	require.Len(t, p.Points, 5)
	assert.False(t, p.Points[2].Defined)
	assert.False(t, p.Points[4].Defined)
	assert.Equal(t, "M0,100L100,50M200,0", p.D)

	segs := p.Segments()
	require.Len(t, segs, 2)
	assert.Len(t, segs[0], 2)
	assert.Len(t, segs[1], 1)
}

func TestGenerator_NegativeBoundedWidth(t *testing.T) {
	series := types.Series{
		obs("a1", "2020-01-01", 100),
		obs("a2", "2020-01-02", 200),
	}
	dims := types.Dimensions{Width: 100, Height: 100, Margins: types.Margins{Left: 80, Right: 60}}
	require.Equal(t, -40.0, dims.Resolve().BoundedWidth)

	g := generator(t, types.Dataset{series}, dims)
	p := g.Path(series)
	assert.NotEmpty(t, p.D)
	assert.Equal(t, "M0,100L-40,0", p.D)
}
