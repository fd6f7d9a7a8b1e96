package core

import "math"

// Interval is a range of real values, typically the accepted t range of a ray.
// An interval with Min > Max contains nothing.
type Interval struct {
	Min, Max float64
}

var (
	// EmptyInterval accepts no value
	EmptyInterval = Interval{Min: math.MaxFloat64, Max: -math.MaxFloat64}
	// UniverseInterval accepts every finite value
	UniverseInterval = Interval{Min: -math.MaxFloat64, Max: math.MaxFloat64}
)

// NewInterval creates a new interval
func NewInterval(min, max float64) Interval {
	return Interval{Min: min, Max: max}
}

// Size returns the width of the interval
func (i Interval) Size() float64 {
	return i.Max - i.Min
}

// Contains reports whether min <= x <= max
func (i Interval) Contains(x float64) bool {
	return i.Min <= x && x <= i.Max
}

// Surrounds reports whether min < x < max
func (i Interval) Surrounds(x float64) bool {
	return i.Min < x && x < i.Max
}

// Clamp limits x to the interval bounds
func (i Interval) Clamp(x float64) float64 {
	if x < i.Min {
		return i.Min
	}
	if x > i.Max {
		return i.Max
	}
	return x
}
