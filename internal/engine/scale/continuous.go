package scale

import (
	"math"
	"strconv"

	"github.com/aclements/go-moremath/scale"
	"github.com/dustin/go-humanize"

	"github.com/linescope/linescope/internal/engine/types"
)

// linear is the numeric core shared by continuous and temporal scales. The
// domain is normalised by a moremath Linear and stretched over rng.
type linear struct {
	lin   scale.Linear
	rng   [2]float64
	round bool
	// empty is set when the domain has no valid values at all.
	empty bool
}

func newLinear(min, max float64, rng [2]float64, round bool) linear {
	if math.IsNaN(min) || math.IsNaN(max) {
		return linear{rng: rng, round: round, empty: true}
	}
	return linear{lin: scale.Linear{Min: min, Max: max}, rng: rng, round: round}
}

func (l linear) mapFloat(f float64) float64 {
	if math.IsNaN(f) {
		return math.NaN()
	}
	var t float64
	if l.empty {
		t = 0.5
	} else {
		// Linear.Map returns 0.5 for a single-valued domain.
		t = l.lin.Map(f)
	}
	v := l.rng[0] + t*(l.rng[1]-l.rng[0])
	if l.round {
		v = math.Round(v)
	}
	return v
}

func (l linear) invertFloat(px float64) (float64, bool) {
	if l.empty || math.IsNaN(px) {
		return math.NaN(), false
	}
	if l.rng[0] == l.rng[1] {
		return l.lin.Min, true
	}
	return l.lin.Unmap((px - l.rng[0]) / (l.rng[1] - l.rng[0])), true
}

// bounds returns the domain in ascending order.
func (l linear) bounds() (lo, hi float64) {
	lo, hi = l.lin.Min, l.lin.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

type continuousScale struct {
	linear
}

func newContinuous(min, max float64, rng [2]float64, round bool) *continuousScale {
	return &continuousScale{linear: newLinear(min, max, rng, round)}
}

func (s *continuousScale) Kind() Kind { return Continuous }

func (s *continuousScale) Map(d types.Datum) float64 {
	if d.Kind != types.NumberDatum && d.Kind != types.TimeDatum {
		return math.NaN()
	}
	return s.mapFloat(d.Float())
}

func (s *continuousScale) Invert(px float64) (types.Datum, bool) {
	f, ok := s.invertFloat(px)
	if !ok {
		return types.Datum{}, false
	}
	return types.Num(f), true
}

func (s *continuousScale) Ticks(n int) []types.Tick {
	if s.empty || n <= 0 {
		return nil
	}
	lo, hi := s.bounds()
	lin := scale.Linear{Min: lo, Max: hi}
	major, _ := lin.Ticks(scale.TickOptions{Max: n})

	ticks := make([]types.Tick, 0, len(major))
	for _, v := range major {
		d := types.Num(tidy(v))
		ticks = append(ticks, types.Tick{Value: d, Position: s.Map(d), Label: s.Format(d)})
	}
	return ticks
}

func (s *continuousScale) Format(d types.Datum) string {
	if d.Kind != types.NumberDatum {
		return d.String()
	}
	return humanize.Commaf(tidy(d.Num))
}

func (s *continuousScale) Domain() []types.Datum {
	if s.empty {
		return nil
	}
	return []types.Datum{types.Num(s.lin.Min), types.Num(s.lin.Max)}
}

func (s *continuousScale) Range() [2]float64 { return s.rng }

// tidy drops the floating point noise tick arithmetic leaves behind, so
// 0.30000000000000004 labels as 0.3.
func tidy(v float64) float64 {
	f, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 12, 64), 64)
	if err != nil {
		return v
	}
	return f
}

func tidyString(v float64) string {
	return strconv.FormatFloat(tidy(v), 'f', -1, 64)
}
