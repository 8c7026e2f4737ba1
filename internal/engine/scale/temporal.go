package scale

import (
	"math"
	"time"

	"github.com/aclements/go-moremath/scale"

	"github.com/linescope/linescope/internal/engine/types"
)

// temporalScale is a linear scale over Unix milliseconds.
type temporalScale struct {
	linear
	// dateFormat renders single values; ticks use the label of their
	// interval.
	dateFormat string
}

func newTemporal(min, max time.Time, empty bool, rng [2]float64, round bool, format string) *temporalScale {
	if empty {
		return &temporalScale{linear: newLinear(math.NaN(), math.NaN(), rng, round), dateFormat: format}
	}
	return &temporalScale{
		linear:     newLinear(types.At(min).Float(), types.At(max).Float(), rng, round),
		dateFormat: format,
	}
}

func (s *temporalScale) Kind() Kind { return Temporal }

func (s *temporalScale) Map(d types.Datum) float64 {
	if d.Kind != types.TimeDatum && d.Kind != types.NumberDatum {
		return math.NaN()
	}
	return s.mapFloat(d.Float())
}

func (s *temporalScale) Invert(px float64) (types.Datum, bool) {
	ms, ok := s.invertFloat(px)
	if !ok {
		return types.Datum{}, false
	}
	return types.At(types.FromMillis(ms)), true
}

func (s *temporalScale) Ticks(n int) []types.Tick {
	if s.empty || n <= 0 {
		return nil
	}
	lo, hi := s.bounds()
	ticker := &timeTicker{min: types.FromMillis(lo), max: types.FromMillis(hi)}
	o := scale.TickOptions{Max: n, MinLevel: 0, MaxLevel: len(timeIntervals) - 1}
	level, ok := o.FindLevel(ticker, ticker.guessLevel(n))
	if !ok {
		return nil
	}

	format := timeIntervals[level].label
	at := ticker.TicksAtLevel(level).([]time.Time)
	ticks := make([]types.Tick, 0, len(at))
	for _, t := range at {
		d := types.At(t)
		ticks = append(ticks, types.Tick{Value: d, Position: s.Map(d), Label: FormatDate(format, t)})
	}
	return ticks
}

func (s *temporalScale) Format(d types.Datum) string {
	if d.Kind != types.TimeDatum {
		return d.String()
	}
	return FormatDate(s.dateFormat, d.Time)
}

func (s *temporalScale) Domain() []types.Datum {
	if s.empty {
		return nil
	}
	return []types.Datum{
		types.At(types.FromMillis(s.lin.Min)),
		types.At(types.FromMillis(s.lin.Max)),
	}
}

func (s *temporalScale) Range() [2]float64 { return s.rng }

type timeUnit int

const (
	unitSecond timeUnit = iota
	unitMinute
	unitHour
	unitDay
	unitWeek
	unitMonth
	unitYear
)

// timeInterval is a calendar step used to place time ticks.
type timeInterval struct {
	unit  timeUnit
	step  int
	label string
	// approx is the nominal length in seconds, used only to guess a
	// starting level.
	approx float64
}

const (
	second = 1.0
	minute = 60 * second
	hour   = 60 * minute
	day    = 24 * hour
	year   = 365 * day
)

// timeIntervals are the tick levels, finest first.
var timeIntervals = []timeInterval{
	{unitSecond, 1, "%H:%M:%S", second},
	{unitSecond, 5, "%H:%M:%S", 5 * second},
	{unitSecond, 15, "%H:%M:%S", 15 * second},
	{unitSecond, 30, "%H:%M:%S", 30 * second},
	{unitMinute, 1, "%H:%M", minute},
	{unitMinute, 5, "%H:%M", 5 * minute},
	{unitMinute, 15, "%H:%M", 15 * minute},
	{unitMinute, 30, "%H:%M", 30 * minute},
	{unitHour, 1, "%H:%M", hour},
	{unitHour, 3, "%H:%M", 3 * hour},
	{unitHour, 6, "%H:%M", 6 * hour},
	{unitHour, 12, "%H:%M", 12 * hour},
	{unitDay, 1, "%b %-d", day},
	{unitDay, 2, "%b %-d", 2 * day},
	{unitWeek, 1, "%b %-d", 7 * day},
	{unitMonth, 1, "%B", 30 * day},
	{unitMonth, 3, "%b %Y", 91 * day},
	{unitYear, 1, "%Y", year},
	{unitYear, 2, "%Y", 2 * year},
	{unitYear, 5, "%Y", 5 * year},
	{unitYear, 10, "%Y", 10 * year},
	{unitYear, 25, "%Y", 25 * year},
	{unitYear, 50, "%Y", 50 * year},
	{unitYear, 100, "%Y", 100 * year},
	{unitYear, 250, "%Y", 250 * year},
	{unitYear, 500, "%Y", 500 * year},
	{unitYear, 1000, "%Y", 1000 * year},
}

// floor returns the latest tick at or before t.
func (iv timeInterval) floor(t time.Time) time.Time {
	t = t.UTC()
	y, m, d := t.Date()
	switch iv.unit {
	case unitSecond:
		return t.Truncate(time.Duration(iv.step) * time.Second)
	case unitMinute:
		return t.Truncate(time.Duration(iv.step) * time.Minute)
	case unitHour:
		return t.Truncate(time.Duration(iv.step) * time.Hour)
	case unitDay:
		return time.Date(y, m, d-(d-1)%iv.step, 0, 0, 0, 0, time.UTC)
	case unitWeek:
		return time.Date(y, m, d-int(t.Weekday()), 0, 0, 0, 0, time.UTC)
	case unitMonth:
		return time.Date(y, m-time.Month((int(m)-1)%iv.step), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(y-mod(y, iv.step), time.January, 1, 0, 0, 0, 0, time.UTC)
	}
}

// next returns the tick following the aligned tick t.
func (iv timeInterval) next(t time.Time) time.Time {
	switch iv.unit {
	case unitSecond:
		return t.Add(time.Duration(iv.step) * time.Second)
	case unitMinute:
		return t.Add(time.Duration(iv.step) * time.Minute)
	case unitHour:
		return t.Add(time.Duration(iv.step) * time.Hour)
	case unitDay:
		// Re-align at month boundaries so ticks stay on odd days.
		return iv.floor(t.AddDate(0, 0, iv.step))
	case unitWeek:
		return t.AddDate(0, 0, 7*iv.step)
	case unitMonth:
		return t.AddDate(0, iv.step, 0)
	default:
		return t.AddDate(iv.step, 0, 0)
	}
}

// ceil returns the earliest tick at or after t.
func (iv timeInterval) ceil(t time.Time) time.Time {
	f := iv.floor(t)
	if f.Before(t) {
		f = iv.next(f)
	}
	return f
}

func mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

// maxTimeTicks bounds tick enumeration for absurdly fine levels.
const maxTimeTicks = 100000

// timeTicker enumerates calendar ticks between min and max. Level i is
// timeIntervals[i].
type timeTicker struct {
	min, max time.Time
}

func (t *timeTicker) CountTicks(level int) int {
	iv := timeIntervals[level]
	n := 0
	for x := iv.ceil(t.min); !x.After(t.max) && n < maxTimeTicks; x = iv.next(x) {
		n++
	}
	return n
}

func (t *timeTicker) TicksAtLevel(level int) interface{} {
	iv := timeIntervals[level]
	var ticks []time.Time
	for x := iv.ceil(t.min); !x.After(t.max) && len(ticks) < maxTimeTicks; x = iv.next(x) {
		ticks = append(ticks, x)
	}
	return ticks
}

// guessLevel picks the first interval whose nominal length fits n ticks into
// the span.
func (t *timeTicker) guessLevel(n int) int {
	span := t.max.Sub(t.min).Seconds()
	for i, iv := range timeIntervals {
		if iv.approx*float64(n) >= span {
			return i
		}
	}
	return len(timeIntervals) - 1
}
