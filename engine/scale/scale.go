package scale

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Clamp limits t to the interval between lo and hi. The bounds may be given in either order.
func Clamp[T constraints.Ordered](t, lo, hi T) T {
	lo, hi = min(lo, hi), max(lo, hi)
	return max(min(t, hi), lo)
}

// Unit clamps t to [0,1]. NaN maps to 0 so callers never propagate it.
func Unit(t float64) float64 {
	if math.IsNaN(t) {
		return 0
	}
	return Clamp(t, 0, 1)
}

// Lerp interpolates between a and b by t. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Linear returns a function that maps [rMin,rMax] onto [tMin,tMax] without clamping.
// A zero-width input range maps everything to tMin.
func Linear(rMin, rMax, tMin, tMax float64) func(m float64) float64 {
	width := rMax - rMin
	return func(m float64) float64 {
		if width == 0 {
			return tMin
		}
		return tMin + (m-rMin)/width*(tMax-tMin)
	}
}

// Clamped is Linear with the result limited to [tMin,tMax].
func Clamped(rMin, rMax, tMin, tMax float64) func(m float64) float64 {
	f := Linear(rMin, rMax, tMin, tMax)
	return func(m float64) float64 {
		return Clamp(f(m), tMin, tMax)
	}
}

// ToUnitClamp returns a function that scales a number from the interval [rMin,rMax]
// to the unit interval ([0,1]), if the result falls outside [0,1], it is clamped
// to 0 or 1.
func ToUnitClamp(rMin, rMax float64) func(m float64) float64 {
	f := Clamped(rMin, rMax, 0, 1)
	return func(m float64) float64 {
		return Unit(f(m))
	}
}
