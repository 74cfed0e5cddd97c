package core

import "math"

// Interval is a scalar range [Min, Max], used throughout the core for
// ray t-bounds. An empty interval has Min > Max.
type Interval struct {
	Min, Max float64
}

// NewInterval creates an interval.
func NewInterval(min, max float64) Interval { return Interval{Min: min, Max: max} }

// EmptyInterval returns an interval that contains nothing.
func EmptyInterval() Interval { return Interval{Min: math.Inf(1), Max: math.Inf(-1)} }

// UniverseInterval returns an interval that contains everything.
func UniverseInterval() Interval { return Interval{Min: math.Inf(-1), Max: math.Inf(1)} }

// Size returns Max - Min.
func (iv Interval) Size() float64 { return iv.Max - iv.Min }

// Contains reports whether x lies in the closed interval.
func (iv Interval) Contains(x float64) bool { return iv.Min <= x && x <= iv.Max }

// Surrounds reports whether x lies in the open interval.
func (iv Interval) Surrounds(x float64) bool { return iv.Min < x && x < iv.Max }

// Clamp clamps x into the interval.
func (iv Interval) Clamp(x float64) float64 {
	if x < iv.Min {
		return iv.Min
	}
	if x > iv.Max {
		return iv.Max
	}
	return x
}

// Intersect returns the intersection of two intervals; the result may be
// empty (Min > Max) if they don't overlap.
func (iv Interval) Intersect(o Interval) Interval {
	return Interval{Min: math.Max(iv.Min, o.Min), Max: math.Min(iv.Max, o.Max)}
}

// Empty reports whether the interval contains no points.
func (iv Interval) Empty() bool { return iv.Min > iv.Max }
