// Package numutil holds the precision primitives every analytics formula
// routes through. Rounding and fixed-point formatting go through
// shopspring/decimal so display values match literal decimal expectations
// instead of drifting with binary floating point.
package numutil

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// Round rounds half away from zero to the given number of decimal places.
// NewFromFloat re-derives the shortest decimal representation, which
// absorbs binary drift like 2.675 -> 2.67499999.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	f, _ := decimal.NewFromFloat(v).Round(int32(places)).Float64()
	return f
}

// Round2 rounds to two decimal places, the default for currency and
// percentage values.
func Round2(v float64) float64 { return Round(v, 2) }

// FormatFixed renders v with exactly the given number of decimal places,
// trailing zeros included.
func FormatFixed(v float64, places int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return decimal.NewFromFloat(v).StringFixed(int32(places))
}

// SafeDiv divides a by b, returning 0 on a zero denominator. Callers never
// see infinity or NaN.
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	q := a / b
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0
	}
	return q
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Mean returns the arithmetic mean, 0 for an empty slice.
func Mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

// StdDev returns the population standard deviation, 0 for fewer than two
// values. Population (not sample) is used throughout so Sharpe/Sortino
// stay 0 for a single trade rather than dividing by zero.
func StdDev(vs []float64) float64 {
	if len(vs) < 2 {
		return 0
	}
	m := Mean(vs)
	var ss float64
	for _, v := range vs {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(vs)))
}

// Median returns the median of vs, 0 for an empty slice. The input is not
// modified.
func Median(vs []float64) float64 {
	n := len(vs)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, vs)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
