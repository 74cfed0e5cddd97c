package material

import (
	"math"

	"github.com/rowanvale/luxcore/pkg/core"
)

func evaluateDiffuse(m Material, wo, wi core.Vec3) core.Vec3 {
	if !core.SameHemisphere(wo, wi) {
		return core.Vec3{}
	}
	return m.Albedo.Multiply(1 / math.Pi)
}

func sampleDiffuse(m Material, wo core.Vec3, u2 core.Vec2) (Sample, bool) {
	wi := core.SampleCosineHemisphere(u2)
	if wo.Z < 0 {
		wi.Z = -wi.Z
	}
	pdf := core.CosineHemispherePDF(core.AbsCosTheta(wi))
	if pdf == 0 {
		return Sample{}, false
	}
	return Sample{F: evaluateDiffuse(m, wo, wi), Wi: wi, Pdf: pdf}, true
}

func pdfDiffuse(m Material, wo, wi core.Vec3) float64 {
	if !core.SameHemisphere(wo, wi) {
		return 0
	}
	return core.CosineHemispherePDF(core.AbsCosTheta(wi))
}
