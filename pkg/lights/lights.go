// Package lights implements the light set: tagged Point and Infinite
// lights with a uniform sample/pdf contract (spec §4.7), plus a light
// sampler that picks one light uniformly per light-sampling event.
package lights

import (
	"math"

	"github.com/rowanvale/luxcore/pkg/core"
)

// Kind identifies which light variant a Light value holds.
type Kind uint8

const (
	Point Kind = iota
	Infinite
)

// InfiniteShape distinguishes the two Infinite parameterizations this
// renderer supports: a spatially constant environment, and a top/bottom
// gradient sky (spec supplement, grounded in the renderer's gradient
// background).
type InfiniteShape uint8

const (
	Constant InfiniteShape = iota
	Gradient
)

// Light is a tagged variant, mirroring Material: no virtual dispatch, the
// integrator switches on Kind.
type Light struct {
	Kind Kind

	// Point fields.
	Position  core.Vec3
	Intensity core.Vec3
	Scale     float64

	// Infinite fields.
	Shape               InfiniteShape
	TopColor            core.Vec3 // Gradient only
	BottomColor         core.Vec3 // Gradient only
	EnvironmentEmission core.Vec3 // Constant only
}

// NewPointLight creates a point light at position with the given
// intensity, scaled by scale.
func NewPointLight(position, intensity core.Vec3, scale float64) Light {
	return Light{Kind: Point, Position: position, Intensity: intensity, Scale: scale}
}

// NewConstantInfiniteLight creates a spatially uniform environment light.
func NewConstantInfiniteLight(emission core.Vec3) Light {
	return Light{Kind: Infinite, Shape: Constant, EnvironmentEmission: emission}
}

// NewGradientInfiniteLight creates a top/bottom gradient sky light.
func NewGradientInfiniteLight(topColor, bottomColor core.Vec3) Light {
	return Light{Kind: Infinite, Shape: Gradient, TopColor: topColor, BottomColor: bottomColor}
}

// Sample is the result of sampling a light for direct (next-event
// estimation) lighting at a shading point.
type Sample struct {
	Point     core.Vec3
	Radiance  core.Vec3
	Wi        core.Vec3
	Distance  float64
	Pdf       float64
	IsDelta   bool // Point lights have delta distributions; pdf = 0 for MIS against BSDF sampling
}

// Sample importance-samples a direction toward this light from
// shading point p.
func (l Light) Sample(p core.Vec3, u2 core.Vec2) Sample {
	switch l.Kind {
	case Point:
		return sampleLightPoint(l, p)
	case Infinite:
		return sampleLightInfinite(l, u2)
	default:
		return Sample{}
	}
}

// Pdf returns the solid-angle density this light's Sample would assign to
// direction wi from point p. Delta lights always return 0 — they cannot
// be hit by a continuous BSDF sample, so MIS weighting skips them.
func (l Light) Pdf(p core.Vec3, wi core.Vec3) float64 {
	switch l.Kind {
	case Point:
		return 0
	case Infinite:
		return uniformSpherePdf
	default:
		return 0
	}
}

// Emit returns the environment radiance an escaping ray in direction dir
// sees. Point lights never contribute here (they have zero angular
// extent and can only be reached by NEE).
func (l Light) Emit(dir core.Vec3) core.Vec3 {
	if l.Kind != Infinite {
		return core.Vec3{}
	}
	switch l.Shape {
	case Constant:
		return l.EnvironmentEmission
	case Gradient:
		d := dir.Normalize()
		t := 0.5 * (d.Y + 1)
		return core.Lerp(l.BottomColor, l.TopColor, t)
	default:
		return core.Vec3{}
	}
}

const uniformSpherePdf = 1 / (4 * math.Pi)

func sampleLightPoint(l Light, p core.Vec3) Sample {
	toLight := l.Position.Subtract(p)
	distSq := toLight.LengthSquared()
	if distSq == 0 {
		return Sample{}
	}
	dist := math.Sqrt(distSq)
	wi := toLight.Multiply(1 / dist)
	radiance := l.Intensity.Multiply(l.Scale / distSq)
	return Sample{Point: l.Position, Radiance: radiance, Wi: wi, Distance: dist, Pdf: 1, IsDelta: true}
}

func sampleLightInfinite(l Light, u2 core.Vec2) Sample {
	wi := core.SampleUniformSphere(u2)
	return Sample{
		Point:    wi.Multiply(math.Inf(1)),
		Radiance: l.Emit(wi),
		Wi:       wi,
		Distance: math.Inf(1),
		Pdf:      uniformSpherePdf,
	}
}
