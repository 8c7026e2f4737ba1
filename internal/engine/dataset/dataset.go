// Package dataset holds the pure transformations over series collections.
package dataset

import (
	"sort"

	"github.com/linescope/linescope/internal/engine/scale"
	"github.com/linescope/linescope/internal/engine/types"
)

// Flatten concatenates all series in order. The result is never nil.
func Flatten(data types.Dataset) []types.Record {
	out := make([]types.Record, 0, data.Len())
	for _, s := range data {
		out = append(out, s...)
	}
	return out
}

// Point pairs a record with its projected x value.
type Point struct {
	Record types.Record
	X      float64
}

// SortedByX returns a stable ascending copy of s keyed by the accessor.
// Records whose x cannot be read are dropped.
func SortedByX(s types.Series, x scale.Accessor) []Point {
	out := make([]Point, 0, len(s))
	for _, r := range s {
		d := x(r)
		if !d.Valid() || d.Kind == types.TextDatum {
			continue
		}
		out = append(out, Point{Record: r, X: d.Float()})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}

// Xs returns the x values of sorted points.
func Xs(points []Point) []float64 {
	xs := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
	}
	return xs
}

// Partition splits flat records into series keyed by field, in first-seen
// order. Records lacking the field form their own trailing series.
func Partition(records []types.Record, field string) types.Dataset {
	index := map[string]int{}
	var data types.Dataset
	var loose types.Series
	for _, r := range records {
		v, ok := r.Get(field)
		if !ok {
			loose = append(loose, r)
			continue
		}
		key := v.Text()
		i, seen := index[key]
		if !seen {
			i = len(data)
			index[key] = i
			data = append(data, nil)
		}
		data[i] = append(data[i], r)
	}
	if len(loose) > 0 {
		data = append(data, loose)
	}
	return data
}
