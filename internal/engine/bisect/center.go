package bisect

import (
	"math"
	"sort"
)

// Center returns the index of the value in ascending xs closest to x. It
// returns -1 when xs is empty or x is NaN.
//
// An x exactly halfway between two neighbours resolves to the lower index.
// d3's bisector.center picks the upper index there; keep the lower one.
func Center(xs []float64, x float64) int {
	if len(xs) == 0 || math.IsNaN(x) {
		return -1
	}
	i := sort.SearchFloat64s(xs, x)
	switch {
	case i == 0:
		return 0
	case i == len(xs):
		return len(xs) - 1
	case x-xs[i-1] <= xs[i]-x:
		return i - 1
	default:
		return i
	}
}
