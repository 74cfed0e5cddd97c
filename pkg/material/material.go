// Package material implements the BxDF evaluation and importance-sampling
// layer. Materials are a tagged variant, not a virtual-dispatch interface:
// every hit carries a Material value and the integrator calls Evaluate,
// Sample, and Pdf directly against it, switching on Kind internally. This
// keeps the hot path allocation-free and lets the compiler specialize each
// branch instead of chasing an interface's method table.
//
// All three operations work in the local shading frame, where the surface
// normal is (0,0,1): w.Z is cos(theta) against the normal. Callers convert
// world-space directions in and out via core.Frame.
package material

import (
	"math"

	"github.com/rowanvale/luxcore/pkg/core"
)

// Kind identifies which BxDF a Material evaluates as.
type Kind uint8

const (
	Diffuse Kind = iota
	Conductor
	Dielectric
	ThinDielectric
	MetallicRoughness
)

// NoTexture marks a texture index field as unset.
const NoTexture = -1

// Material holds the union of parameters needed by every Kind; unused
// fields for a given Kind are simply ignored.
type Material struct {
	Kind Kind

	Albedo   core.Vec3 // base color / reflectance
	Emission core.Vec3 // radiance emitted by this material, zero for non-lights

	IOR core.Vec3 // index of refraction, per RGB channel
	K   core.Vec3 // extinction coefficient (Conductor only)

	AlphaX, AlphaY float64 // Trowbridge-Reitz roughness, 0 = perfectly smooth
	Metallic       float64 // MetallicRoughness only

	AlbedoTextureIndex            int
	MetallicRoughnessTextureIndex int
}

// NewDiffuse creates a Lambertian material with the given albedo.
func NewDiffuse(albedo core.Vec3) Material {
	return Material{Kind: Diffuse, Albedo: albedo, AlbedoTextureIndex: NoTexture, MetallicRoughnessTextureIndex: NoTexture}
}

// NewConductor creates a (possibly rough) conductor with complex IOR (eta, k).
func NewConductor(eta, k core.Vec3, alphaX, alphaY float64) Material {
	return Material{Kind: Conductor, IOR: eta, K: k, AlphaX: alphaX, AlphaY: alphaY, AlbedoTextureIndex: NoTexture, MetallicRoughnessTextureIndex: NoTexture}
}

// NewDielectric creates a (possibly rough) dielectric with scalar IOR eta
// (broadcast across all three RGB channels — dielectrics in this renderer
// are not dispersive).
func NewDielectric(eta, alphaX, alphaY float64) Material {
	return Material{Kind: Dielectric, IOR: core.NewVec3(eta, eta, eta), AlphaX: alphaX, AlphaY: alphaY, AlbedoTextureIndex: NoTexture, MetallicRoughnessTextureIndex: NoTexture}
}

// NewThinDielectric creates a thin-walled dielectric (spec §4.6): behaves
// like a smooth dielectric but composes internal reflections so a thin
// pane of glass doesn't bend the ray on exit.
func NewThinDielectric(eta float64) Material {
	return Material{Kind: ThinDielectric, IOR: core.NewVec3(eta, eta, eta), AlbedoTextureIndex: NoTexture, MetallicRoughnessTextureIndex: NoTexture}
}

// NewMetallicRoughness creates a glTF-style metallic-roughness material.
func NewMetallicRoughness(baseColor core.Vec3, metallic, alphaX, alphaY float64) Material {
	return Material{Kind: MetallicRoughness, Albedo: baseColor, Metallic: metallic, AlphaX: alphaX, AlphaY: alphaY, AlbedoTextureIndex: NoTexture, MetallicRoughnessTextureIndex: NoTexture}
}

// IsSmooth reports whether the material's microfacet lobe has collapsed to
// a delta distribution (perfectly smooth).
func (m Material) IsSmooth() bool {
	return m.AlphaX <= smoothnessEpsilon && m.AlphaY <= smoothnessEpsilon
}

// IsEmissive reports whether this material carries any emission.
func (m Material) IsEmissive() bool {
	return !m.Emission.IsZero()
}

const smoothnessEpsilon = 1e-4

// Sample is the result of importance-sampling a BxDF: the scattered
// direction, the BxDF value at that direction, its solid-angle pdf, and
// whether the lobe sampled is a delta distribution (in which case pdf is
// conventionally 1 and MIS against it must be skipped).
type Sample struct {
	F        core.Vec3
	Wi       core.Vec3
	Pdf      float64
	Specular bool
}

// Evaluate returns the spectral BxDF value f(wo, wi) in the local frame.
func Evaluate(m Material, wo, wi core.Vec3) core.Vec3 {
	switch m.Kind {
	case Diffuse:
		return evaluateDiffuse(m, wo, wi)
	case Conductor:
		return evaluateConductor(m, wo, wi)
	case Dielectric:
		return evaluateDielectric(m, wo, wi)
	case ThinDielectric:
		return evaluateThinDielectric(m, wo, wi)
	case MetallicRoughness:
		return evaluateMetallicRoughness(m, wo, wi)
	default:
		return core.Vec3{}
	}
}

// SampleBxDF importance-samples a direction wi given wo. uc selects between
// lobes (e.g. reflection vs. transmission); u2 samples within a lobe.
func SampleBxDF(m Material, wo core.Vec3, uc float64, u2 core.Vec2) (Sample, bool) {
	switch m.Kind {
	case Diffuse:
		return sampleDiffuse(m, wo, u2)
	case Conductor:
		return sampleConductor(m, wo, uc, u2)
	case Dielectric:
		return sampleDielectric(m, wo, uc, u2)
	case ThinDielectric:
		return sampleThinDielectric(m, wo, uc)
	case MetallicRoughness:
		return sampleMetallicRoughness(m, wo, uc, u2)
	default:
		return Sample{}, false
	}
}

// Pdf returns the solid-angle density sample would assign to wi, given wo.
func Pdf(m Material, wo, wi core.Vec3) float64 {
	switch m.Kind {
	case Diffuse:
		return pdfDiffuse(m, wo, wi)
	case Conductor:
		return pdfConductor(m, wo, wi)
	case Dielectric:
		return pdfDielectric(m, wo, wi)
	case ThinDielectric:
		return 0
	case MetallicRoughness:
		return pdfMetallicRoughness(m, wo, wi)
	default:
		return 0
	}
}

func reflect(w, n core.Vec3) core.Vec3 {
	return n.Multiply(2 * w.Dot(n)).Subtract(w)
}

// refract implements Snell's law in the local frame; n is the (possibly
// flipped-to-face-wo) half vector or the geometric normal. Returns the
// refracted direction, the relative eta actually used (inverted when wo
// lies on the far side of n), and false on total internal reflection.
func refract(wo, n core.Vec3, eta float64) (core.Vec3, float64, bool) {
	cosThetaI := n.Dot(wo)
	if cosThetaI < 0 {
		eta = 1 / eta
		cosThetaI = -cosThetaI
		n = n.Negate()
	}
	sin2ThetaI := math.Max(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := sin2ThetaI / (eta * eta)
	if sin2ThetaT >= 1 {
		return core.Vec3{}, eta, false
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)
	wt := wo.Negate().Multiply(1 / eta).Add(n.Multiply(cosThetaI/eta - cosThetaT))
	return wt, eta, true
}
