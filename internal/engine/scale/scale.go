// Package scale maps data domains onto pixel ranges.
//
// A Scale is one of three kinds: a continuous numeric scale, a temporal
// scale over instants, or a band scale over categories. Build picks the kind
// from its parameters and returns the scale together with the accessor that
// extracts the scaled field from a record.
package scale

import (
	"github.com/linescope/linescope/internal/engine/types"
)

// Kind identifies the variant of a Scale.
type Kind int

const (
	Continuous Kind = iota
	Temporal
	Band
)

func (k Kind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Temporal:
		return "temporal"
	case Band:
		return "band"
	default:
		return "unknown"
	}
}

// Scale maps domain values to pixel positions and back.
type Scale interface {
	Kind() Kind

	// Map returns the pixel position of d. Invalid datums map to NaN.
	Map(d types.Datum) float64

	// Invert returns the domain value at pixel px. Band scales cannot be
	// inverted and report ok=false.
	Invert(px float64) (d types.Datum, ok bool)

	// Ticks returns roughly n axis marks within the domain.
	Ticks(n int) []types.Tick

	// Format renders a domain value as an axis label.
	Format(d types.Datum) string

	Domain() []types.Datum
	Range() [2]float64
}

// Accessor extracts the scaled datum from a record.
type Accessor func(r types.Record) types.Datum

// Params describe the scale to build.
type Params struct {
	Data        []types.Record
	AccessorKey string

	// DateFormat, when set, makes the scale temporal and the accessor parse
	// the field with this strftime pattern.
	DateFormat string

	// Domain overrides the extent computed from Data.
	Domain []types.Datum
	Range  [2]float64

	// Kind forces a Band scale. Continuous and temporal scales are chosen
	// from the data and DateFormat.
	Kind Kind

	RangeRound bool
	Padding    float64
}

// Result is a built scale and the accessor it was built with.
type Result struct {
	Scale    Scale
	Accessor Accessor
	Key      string
}

// Value applies the accessor to r.
func (r Result) Value(rec types.Record) types.Datum {
	if r.Accessor == nil {
		return types.Datum{}
	}
	return r.Accessor(rec)
}

// Position returns the pixel position of rec's field.
func (r Result) Position(rec types.Record) float64 {
	return r.Scale.Map(r.Value(rec))
}
