package material

import (
	"math"
	"testing"

	"github.com/rowanvale/luxcore/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffuse_SampleMatchesEvaluateAndPdf(t *testing.T) {
	m := NewDiffuse(core.NewVec3(0.8, 0.2, 0.2))
	wo := core.NewVec3(0.3, 0.1, 0.95).Normalize()

	s, ok := SampleBxDF(m, wo, 0.5, core.NewVec2(0.25, 0.75))
	require.True(t, ok)
	assert.Greater(t, s.Pdf, 0.0)

	f := Evaluate(m, wo, s.Wi)
	assert.InDelta(t, s.F.X, f.X, 1e-9)

	pdf := Pdf(m, wo, s.Wi)
	assert.InDelta(t, s.Pdf, pdf, 1e-9)
}

func TestDiffuse_OppositeHemisphereIsZero(t *testing.T) {
	m := NewDiffuse(core.NewVec3(1, 1, 1))
	wo := core.NewVec3(0, 0, 1)
	wi := core.NewVec3(0, 0, -1)
	assert.True(t, Evaluate(m, wo, wi).IsZero())
}

func TestSmoothConductor_IsDeltaReflection(t *testing.T) {
	m := NewConductor(core.NewVec3(0.2, 0.9, 1.5), core.NewVec3(3, 2.5, 2), 0, 0)
	wo := core.NewVec3(0.3, 0, 0.95).Normalize()

	s, ok := SampleBxDF(m, wo, 0.1, core.Vec2{})
	require.True(t, ok)
	assert.True(t, s.Specular)
	assert.InDelta(t, -wo.X, s.Wi.X, 1e-9)
	assert.InDelta(t, wo.Z, s.Wi.Z, 1e-9)
}

func TestRoughConductor_EnergyConservation(t *testing.T) {
	m := NewConductor(core.NewVec3(0.2, 0.9, 1.5), core.NewVec3(3, 2.5, 2), 0.3, 0.3)
	rng := core.NewRNG(11, 22, 33)
	wo := core.NewVec3(0.1, 0.2, 0.96).Normalize()

	var sum float64
	const n = 4000
	for i := 0; i < n; i++ {
		s, ok := SampleBxDF(m, wo, rng.Uniform01(), rng.Vec2())
		if !ok || s.Pdf <= 0 {
			continue
		}
		sum += s.F.X * core.AbsCosTheta(s.Wi) / s.Pdf
	}
	mean := sum / n
	assert.Less(t, mean, 1.2, "reflected energy should not exceed incoming energy by much")
	assert.Greater(t, mean, 0.0)
}

func TestSmoothDielectric_ReflectionPlusTransmissionWeights(t *testing.T) {
	m := NewDielectric(1.5, 0, 0)
	wo := core.NewVec3(0, 0, 1)

	reflected, transmitted := 0, 0
	rng := core.NewRNG(4, 5, 6)
	for i := 0; i < 500; i++ {
		s, ok := SampleBxDF(m, wo, rng.Uniform01(), rng.Vec2())
		require.True(t, ok)
		if s.Wi.Z > 0 {
			reflected++
		} else {
			transmitted++
		}
	}
	assert.Greater(t, transmitted, reflected, "normal incidence through glass should mostly transmit")
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	eta := 1.5
	eps := 1e-3
	cosCrit := math.Sqrt(1 - 1/(eta*eta))
	wo := core.NewVec3(math.Sqrt(1-cosCrit*cosCrit+eps), 0, cosCrit-eps).Normalize()
	// wo is inside the denser medium, grazing past the critical angle.
	wo = core.NewVec3(wo.X, wo.Y, -wo.Z)

	f := fresnelDielectric(core.CosTheta(wo), eta)
	assert.Equal(t, 1.0, f)
}

func TestThinDielectric_AlwaysSpecular(t *testing.T) {
	m := NewThinDielectric(1.5)
	wo := core.NewVec3(0, 0, 1)
	s, ok := SampleBxDF(m, wo, 0.9, core.Vec2{})
	require.True(t, ok)
	assert.True(t, s.Specular)
	assert.Equal(t, 0.0, Pdf(m, wo, s.Wi))
}

func TestMetallicRoughness_FullyMetallicHasNoDiffuseLobe(t *testing.T) {
	m := NewMetallicRoughness(core.NewVec3(0.9, 0.7, 0.3), 1.0, 0.4, 0.4)
	wo := core.NewVec3(0.2, 0, 0.98).Normalize()
	wi := core.NewVec3(-0.2, 0.3, 0.93).Normalize()

	f := evaluateMetallicRoughness(m, wo, wi)
	diffuseOnly := evaluateDiffuse(Material{Kind: Diffuse, Albedo: diffuseAlbedo(m)}, wo, wi)
	assert.True(t, diffuseOnly.IsZero())
	assert.False(t, f.IsZero())
}

func TestMetallicRoughness_SampleConsistentWithPdf(t *testing.T) {
	m := NewMetallicRoughness(core.NewVec3(0.5, 0.5, 0.5), 0.3, 0.2, 0.2)
	wo := core.NewVec3(0.1, 0.1, 0.99).Normalize()
	rng := core.NewRNG(1, 1, 1)

	for i := 0; i < 50; i++ {
		s, ok := SampleBxDF(m, wo, rng.Uniform01(), rng.Vec2())
		if !ok {
			continue
		}
		pdf := pdfMetallicRoughness(m, wo, s.Wi)
		assert.InDelta(t, s.Pdf, pdf, 1e-6)
	}
}

func TestFresnelSchlick_MatchesNormalIncidenceF0(t *testing.T) {
	f0 := core.NewVec3(0.04, 0.04, 0.04)
	f := fresnelSchlick(1, f0)
	assert.InDelta(t, f0.X, f.X, 1e-12)
}
