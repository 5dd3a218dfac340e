// Package volume maps pinch distances to smoothed output levels.
package volume

// Range is a closed interval. Min may be greater than Max for inverted
// targets such as screen coordinates that grow downward.
type Range struct {
	Min float64
	Max float64
}

// Interp maps x linearly from one range onto another.
// x outside from is clamped to the matching endpoint of to; it never
// extrapolates. A degenerate from range yields to.Min for x <= from.Min
// and to.Max otherwise.
func Interp(x float64, from, to Range) float64 {
	lo, hi := from.Min, from.Max
	outLo, outHi := to.Min, to.Max
	if lo > hi {
		lo, hi = hi, lo
		outLo, outHi = outHi, outLo
	}

	if x <= lo {
		return outLo
	}
	if x >= hi {
		return outHi
	}

	t := (x - lo) / (hi - lo)
	return outLo + t*(outHi-outLo)
}
