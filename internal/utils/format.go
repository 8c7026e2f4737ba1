package utils

import (
	"math"

	"github.com/dustin/go-humanize"
	"golang.org/x/exp/constraints"
)

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FormatValue renders a data value for display: thousands separators and at
// most two decimals.
func FormatValue(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "-"
	}
	if f == math.Trunc(f) {
		return humanize.Comma(int64(f))
	}
	return humanize.FormatFloat("#,###.##", f)
}
