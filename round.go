package arith

import "math"

// RoundFloat rounds x to the given number of decimal places, halves away from
// zero. Negative places, zero, NaN, and infinities return x unchanged, as do values
// so large that rounding cannot change them.
func RoundFloat(x float64, places int) float64 {
	if places < 0 || x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	p := math.Pow10(places)
	if math.IsInf(p, 0) {
		return x
	}
	y := x * p
	if math.IsInf(y, 0) || math.Abs(y) >= 1<<53 {
		return x
	}
	return math.Round(y) / p
}
