package scale

import (
	"math"

	"github.com/linescope/linescope/internal/engine/types"
)

// TicksAt places ticks at explicit values. Values that do not map into the
// scale are dropped.
func TicksAt(s Scale, values []types.Datum) []types.Tick {
	ticks := make([]types.Tick, 0, len(values))
	for _, v := range values {
		pos := s.Map(v)
		if math.IsNaN(pos) {
			continue
		}
		if s.Kind() == Band {
			pos += Bandwidth(s) / 2
		}
		ticks = append(ticks, types.Tick{Value: v, Position: pos, Label: s.Format(v)})
	}
	return ticks
}

// AxisTicks returns ticks at the given raw values, parsed through the
// accessor, or count automatic ticks when no values are given.
func (r Result) AxisTicks(count int, raw []string) []types.Tick {
	if len(raw) == 0 {
		return r.Scale.Ticks(count)
	}
	values := make([]types.Datum, 0, len(raw))
	for _, s := range raw {
		values = append(values, r.Parse(s))
	}
	return TicksAt(r.Scale, values)
}
