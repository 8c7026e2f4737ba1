package scale

import (
	"math"
	"time"

	"github.com/linescope/linescope/internal/engine/types"
)

// Build constructs a scale and its accessor. It never fails: values the
// accessor cannot read are left out of the extent and an empty extent yields
// a degenerate scale.
func Build(p Params) Result {
	if p.DateFormat != "" || p.Kind == Temporal {
		return buildTemporal(p)
	}

	acc := FieldAccessor(p.AccessorKey)
	res := Result{Accessor: acc, Key: p.AccessorKey}

	if p.Kind == Band || isOrdinal(p, acc) {
		res.Scale = newBand(bandDomain(p, acc), p.Range, p.RangeRound, p.Padding)
		return res
	}

	var min, max float64
	if len(p.Domain) > 0 {
		min, max = p.Domain[0].Float(), p.Domain[len(p.Domain)-1].Float()
	} else {
		min, max = extent(p.Data, acc, types.NumberDatum)
	}
	res.Scale = newContinuous(min, max, p.Range, p.RangeRound)
	return res
}

func buildTemporal(p Params) Result {
	format := p.DateFormat
	if format == "" {
		format = DefaultDateFormat
	}
	acc := DateAccessor(p.AccessorKey, format)
	res := Result{Accessor: acc, Key: p.AccessorKey}

	var lo, hi float64
	if len(p.Domain) > 0 {
		lo, hi = p.Domain[0].Float(), p.Domain[len(p.Domain)-1].Float()
	} else {
		lo, hi = extent(p.Data, acc, types.TimeDatum)
	}
	empty := math.IsNaN(lo) || math.IsNaN(hi)

	var min, max time.Time
	if !empty {
		min, max = types.FromMillis(lo), types.FromMillis(hi)
	}
	res.Scale = newTemporal(min, max, empty, p.Range, p.RangeRound, format)
	return res
}

// extent returns the smallest and largest projection of the accessor over
// data, counting only datums of the given kind. Both are NaN when nothing
// matches.
func extent(data []types.Record, acc Accessor, kind types.DatumKind) (min, max float64) {
	min, max = math.NaN(), math.NaN()
	for _, r := range data {
		d := acc(r)
		if d.Kind != kind {
			continue
		}
		f := d.Float()
		if math.IsNaN(f) {
			continue
		}
		if math.IsNaN(min) || f < min {
			min = f
		}
		if math.IsNaN(max) || f > max {
			max = f
		}
	}
	return min, max
}

// isOrdinal reports whether the domain is made of labels rather than
// numbers: an explicit domain containing text, or data where the field never
// reads as a number but does read as text.
func isOrdinal(p Params, acc Accessor) bool {
	if len(p.Domain) > 0 {
		for _, d := range p.Domain {
			if d.Kind == types.TextDatum {
				return true
			}
		}
		return false
	}
	text := false
	for _, r := range p.Data {
		switch acc(r).Kind {
		case types.NumberDatum, types.TimeDatum:
			return false
		case types.TextDatum:
			text = true
		}
	}
	return text
}

func bandDomain(p Params, acc Accessor) []types.Datum {
	if len(p.Domain) > 0 {
		return p.Domain
	}
	domain := make([]types.Datum, 0, len(p.Data))
	for _, r := range p.Data {
		domain = append(domain, acc(r))
	}
	return domain
}
