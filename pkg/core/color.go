package core

import "math"

// ToneMap scales a linear radiance value into [0,1] by dividing every
// channel by the largest channel when that exceeds 1. Hue is preserved.
func ToneMap(c Vec3) Vec3 {
	m := max(c.X, c.Y, c.Z, 1.0)
	return c.Divide(m)
}

// ToRGB tone maps c and quantizes it to 8-bit channels
func ToRGB(c Vec3) [3]uint8 {
	mapped := ToneMap(c)
	return [3]uint8{quantize(mapped.X), quantize(mapped.Y), quantize(mapped.Z)}
}

func quantize(x float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, x*255.0))))
}
