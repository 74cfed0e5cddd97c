package material

import "github.com/rowanvale/luxcore/pkg/core"

func evaluateConductor(m Material, wo, wi core.Vec3) core.Vec3 {
	if isEffectivelySmooth(m.AlphaX, m.AlphaY) {
		return core.Vec3{}
	}
	if !core.SameHemisphere(wo, wi) {
		return core.Vec3{}
	}
	cosThetaO, cosThetaI := core.AbsCosTheta(wo), core.AbsCosTheta(wi)
	if cosThetaO == 0 || cosThetaI == 0 {
		return core.Vec3{}
	}

	wm := wo.Add(wi)
	if wm.IsZero() {
		return core.Vec3{}
	}
	wm = wm.Normalize()

	f := fresnelConductor(wo.AbsDot(wm), m.IOR, m.K)
	d := trowbridgeReitzD(wm, m.AlphaX, m.AlphaY)
	g := maskingShadowingG(wo, wi, m.AlphaX, m.AlphaY)

	return f.Multiply(d * g / (4 * cosThetaO * cosThetaI))
}

func sampleConductor(m Material, wo core.Vec3, uc float64, u2 core.Vec2) (Sample, bool) {
	if isEffectivelySmooth(m.AlphaX, m.AlphaY) {
		wi := core.NewVec3(-wo.X, -wo.Y, wo.Z)
		cosThetaI := core.AbsCosTheta(wi)
		if cosThetaI == 0 {
			return Sample{}, false
		}
		f := fresnelConductor(cosThetaI, m.IOR, m.K).Multiply(1 / cosThetaI)
		return Sample{F: f, Wi: wi, Pdf: 1, Specular: true}, true
	}

	if wo.Z == 0 {
		return Sample{}, false
	}
	wm := sampleWm(wo, m.AlphaX, m.AlphaY, u2)
	wi := reflect(wo, wm)
	if !core.SameHemisphere(wo, wi) {
		return Sample{}, false
	}

	pdf := dVisible(wo, wm, m.AlphaX, m.AlphaY) / (4 * wo.AbsDot(wm))
	if pdf <= 0 {
		return Sample{}, false
	}
	return Sample{F: evaluateConductor(m, wo, wi), Wi: wi, Pdf: pdf}, true
}

func pdfConductor(m Material, wo, wi core.Vec3) float64 {
	if isEffectivelySmooth(m.AlphaX, m.AlphaY) {
		return 0
	}
	if !core.SameHemisphere(wo, wi) {
		return 0
	}
	wm := wo.Add(wi)
	if wm.IsZero() {
		return 0
	}
	wm = wm.Normalize()
	if wm.Z < 0 {
		wm = wm.Negate()
	}
	return dVisible(wo, wm, m.AlphaX, m.AlphaY) / (4 * wo.AbsDot(wm))
}
