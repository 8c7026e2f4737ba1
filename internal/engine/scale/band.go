package scale

import (
	"math"

	"github.com/linescope/linescope/internal/engine/types"
)

// bandScale divides the range into equal bands, one per domain value. Inner
// and outer padding are both set from a single padding value and bands are
// centred in the range.
type bandScale struct {
	domain    []types.Datum
	index     map[string]int
	rng       [2]float64
	round     bool
	padding   float64
	step      float64
	bandwidth float64
	starts    []float64
}

func newBand(domain []types.Datum, rng [2]float64, round bool, padding float64) *bandScale {
	s := &bandScale{
		index:   make(map[string]int, len(domain)),
		rng:     rng,
		round:   round,
		padding: padding,
	}
	for _, d := range domain {
		key := d.String()
		if _, seen := s.index[key]; seen || !d.Valid() {
			continue
		}
		s.index[key] = len(s.domain)
		s.domain = append(s.domain, d)
	}
	s.rescale()
	return s
}

func (s *bandScale) rescale() {
	n := float64(len(s.domain))
	inner := math.Min(1, s.padding)
	outer := s.padding

	start, stop := s.rng[0], s.rng[1]
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	s.step = (stop - start) / math.Max(1, n-inner+outer*2)
	if s.round {
		s.step = math.Floor(s.step)
	}
	start += (stop - start - s.step*(n-inner)) * 0.5
	s.bandwidth = s.step * (1 - inner)
	if s.round {
		start = math.Round(start)
		s.bandwidth = math.Round(s.bandwidth)
	}

	s.starts = make([]float64, len(s.domain))
	for i := range s.starts {
		s.starts[i] = start + s.step*float64(i)
	}
	if reverse {
		for i, j := 0, len(s.starts)-1; i < j; i, j = i+1, j-1 {
			s.starts[i], s.starts[j] = s.starts[j], s.starts[i]
		}
	}
}

func (s *bandScale) Kind() Kind { return Band }

// Map returns the start of d's band, or NaN for values outside the domain.
func (s *bandScale) Map(d types.Datum) float64 {
	i, ok := s.index[d.String()]
	if !ok || !d.Valid() {
		return math.NaN()
	}
	return s.starts[i]
}

func (s *bandScale) Invert(float64) (types.Datum, bool) {
	return types.Datum{}, false
}

// Ticks returns one tick per domain value, positioned at the band centre.
func (s *bandScale) Ticks(int) []types.Tick {
	ticks := make([]types.Tick, 0, len(s.domain))
	for i, d := range s.domain {
		ticks = append(ticks, types.Tick{
			Value:    d,
			Position: s.starts[i] + s.bandwidth/2,
			Label:    s.Format(d),
		})
	}
	return ticks
}

func (s *bandScale) Format(d types.Datum) string {
	if d.Kind == types.NumberDatum {
		return tidyString(d.Num)
	}
	return d.String()
}

func (s *bandScale) Domain() []types.Datum {
	return append([]types.Datum(nil), s.domain...)
}

func (s *bandScale) Range() [2]float64 { return s.rng }

// Bandwidth returns the width of each band of a band scale and 0 for any
// other scale.
func Bandwidth(s Scale) float64 {
	if b, ok := s.(*bandScale); ok {
		return b.bandwidth
	}
	return 0
}

// Step returns the distance between band starts of a band scale and 0 for any
// other scale.
func Step(s Scale) float64 {
	if b, ok := s.(*bandScale); ok {
		return b.step
	}
	return 0
}
