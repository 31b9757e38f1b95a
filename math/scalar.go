package math

import "math"

// Remap maps v from [fromMin, fromMax] to [toMin, toMax] without clamping.
// A degenerate source range maps everything to the middle of the target.
func Remap(v, fromMin, fromMax, toMin, toMax float64) float64 {
	span := fromMax - fromMin
	if span == 0 {
		return (toMin + toMax) / 2
	}
	return toMin + (v-fromMin)/span*(toMax-toMin)
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
