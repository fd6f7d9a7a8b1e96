package core

import "math"

// intensity is the range a linear component is clamped to before quantization
var intensity = Interval{Min: 0.0, Max: 0.999}

// ToRGB quantizes a linear color to 8-bit components.
// Gamma values above 1 apply a power curve first; 0 or 1 leaves the color linear.
func ToRGB(c Vec3, gamma float64) (r, g, b uint8) {
	return encodeComponent(c.X, gamma), encodeComponent(c.Y, gamma), encodeComponent(c.Z, gamma)
}

func encodeComponent(x, gamma float64) uint8 {
	if math.IsNaN(x) {
		return 0
	}
	if gamma > 1 && x > 0 {
		x = math.Pow(x, 1.0/gamma)
	}
	return uint8(256 * intensity.Clamp(x))
}
