package utils

import "github.com/robmorgan/liftoff/engine/scale"

// ToDMX scales v from [min,max] into a DMX level. Values outside the range are clamped.
func ToDMX(v, min, max float64) byte {
	unit := scale.ToUnitClamp(min, max)(v)
	return byte(unit*255 + 0.5)
}

// FromDMX is the inverse of ToDMX, up to rounding.
func FromDMX(b byte, min, max float64) float64 {
	return scale.Lerp(min, max, float64(b)/255)
}
