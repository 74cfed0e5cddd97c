package material

import "github.com/rowanvale/luxcore/pkg/core"

func evaluateDielectric(m Material, wo, wi core.Vec3) core.Vec3 {
	if isEffectivelySmooth(m.AlphaX, m.AlphaY) || m.IOR.X == 1 {
		return core.Vec3{}
	}

	eta := m.IOR.X
	cosThetaO, cosThetaI := core.CosTheta(wo), core.CosTheta(wi)
	reflectLobe := cosThetaI*cosThetaO > 0
	if reflectLobe {
		wm := wi.Add(wo)
		if wm.IsZero() {
			return core.Vec3{}
		}
		wm = faceforward(wm.Normalize(), core.NewVec3(0, 0, 1))
		f := fresnelDielectric(wo.Dot(wm), eta)
		d := trowbridgeReitzD(wm, m.AlphaX, m.AlphaY)
		g := maskingShadowingG(wo, wi, m.AlphaX, m.AlphaY)
		val := d * g * f / absFloat(4*cosThetaI*cosThetaO)
		return core.NewVec3(val, val, val)
	}

	etap := eta
	if cosThetaO < 0 {
		etap = 1 / eta
	}
	wm := wi.Multiply(etap).Add(wo)
	if wm.IsZero() {
		return core.Vec3{}
	}
	wm = faceforward(wm.Normalize(), core.NewVec3(0, 0, 1))
	if wm.Dot(wi)*cosThetaI < 0 || wm.Dot(wo)*cosThetaO < 0 {
		return core.Vec3{}
	}

	f := fresnelDielectric(wo.Dot(wm), eta)
	d := trowbridgeReitzD(wm, m.AlphaX, m.AlphaY)
	g := maskingShadowingG(wo, wi, m.AlphaX, m.AlphaY)

	denom := wi.Dot(wm) + wo.Dot(wm)/etap
	denom *= denom
	val := d * (1 - f) * g * absFloat(wi.Dot(wm)*wo.Dot(wm)/(cosThetaI*cosThetaO*denom)) / (etap * etap)
	return core.NewVec3(val, val, val)
}

func sampleDielectric(m Material, wo core.Vec3, uc float64, u2 core.Vec2) (Sample, bool) {
	eta := m.IOR.X
	if isEffectivelySmooth(m.AlphaX, m.AlphaY) || eta == 1 {
		return sampleSmoothDielectric(eta, wo, uc)
	}

	wm := sampleWm(wo, m.AlphaX, m.AlphaY, u2)
	r := fresnelDielectric(wo.Dot(wm), eta)
	t := 1 - r
	pr, pt := r, t
	if pr == 0 && pt == 0 {
		return Sample{}, false
	}

	if uc < pr/(pr+pt) {
		wi := reflect(wo, wm)
		if !core.SameHemisphere(wo, wi) {
			return Sample{}, false
		}
		pdf := dVisible(wo, wm, m.AlphaX, m.AlphaY) / (4 * wo.AbsDot(wm)) * pr / (pr + pt)
		if pdf <= 0 {
			return Sample{}, false
		}
		return Sample{F: evaluateDielectric(m, wo, wi), Wi: wi, Pdf: pdf}, true
	}

	wi, etap, ok := refract(wo, faceforward(wm, wo), eta)
	if !ok || core.SameHemisphere(wo, wi) || wi.Z == 0 {
		return Sample{}, false
	}

	denom := wi.Dot(wm) + wo.Dot(wm)/etap
	denom *= denom
	dwmDwi := wi.AbsDot(wm) / denom
	pdf := dVisible(wo, wm, m.AlphaX, m.AlphaY) * dwmDwi * pt / (pr + pt)
	if pdf <= 0 {
		return Sample{}, false
	}
	return Sample{F: evaluateDielectric(m, wo, wi), Wi: wi, Pdf: pdf}, true
}

func sampleSmoothDielectric(eta float64, wo core.Vec3, uc float64) (Sample, bool) {
	r := fresnelDielectric(core.CosTheta(wo), eta)
	t := 1 - r

	if uc < r/(r+t) {
		wi := core.NewVec3(-wo.X, -wo.Y, wo.Z)
		cosThetaI := core.AbsCosTheta(wi)
		if cosThetaI == 0 {
			return Sample{}, false
		}
		f := r / cosThetaI
		return Sample{F: core.NewVec3(f, f, f), Wi: wi, Pdf: r / (r + t), Specular: true}, true
	}

	wi, etap, ok := refract(wo, core.NewVec3(0, 0, 1), eta)
	if !ok {
		return Sample{}, false
	}
	cosThetaI := core.AbsCosTheta(wi)
	if cosThetaI == 0 {
		return Sample{}, false
	}
	f := t / cosThetaI / (etap * etap)
	return Sample{F: core.NewVec3(f, f, f), Wi: wi, Pdf: t / (r + t), Specular: true}, true
}

func pdfDielectric(m Material, wo, wi core.Vec3) float64 {
	eta := m.IOR.X
	if isEffectivelySmooth(m.AlphaX, m.AlphaY) || eta == 1 {
		return 0
	}

	cosThetaO, cosThetaI := core.CosTheta(wo), core.CosTheta(wi)
	reflectLobe := cosThetaI*cosThetaO > 0

	var etap float64 = 1
	if !reflectLobe {
		etap = eta
		if cosThetaO < 0 {
			etap = 1 / eta
		}
	}

	var wm core.Vec3
	if reflectLobe {
		wm = wi.Add(wo)
	} else {
		wm = wi.Multiply(etap).Add(wo)
	}
	if wm.IsZero() {
		return 0
	}
	wm = faceforward(wm.Normalize(), core.NewVec3(0, 0, 1))
	if wm.Dot(wi)*cosThetaI < 0 || wm.Dot(wo)*cosThetaO < 0 {
		return 0
	}

	r := fresnelDielectric(wo.Dot(wm), eta)
	t := 1 - r

	if reflectLobe {
		return dVisible(wo, wm, m.AlphaX, m.AlphaY) / (4 * wo.AbsDot(wm)) * r / (r + t)
	}

	denom := wi.Dot(wm) + wo.Dot(wm)/etap
	denom *= denom
	dwmDwi := wi.AbsDot(wm) / denom
	return dVisible(wo, wm, m.AlphaX, m.AlphaY) * dwmDwi * t / (r + t)
}

func evaluateThinDielectric(m Material, wo, wi core.Vec3) core.Vec3 {
	return core.Vec3{}
}

func sampleThinDielectric(m Material, wo core.Vec3, uc float64) (Sample, bool) {
	eta := m.IOR.X
	r := fresnelDielectric(core.AbsCosTheta(wo), eta)
	t := 1 - r
	if r < 1 {
		// Compose internal reflections within the thin slab (spec §4.6).
		r += t * t * r / (1 - r*r)
		t = 1 - r
	}

	if uc < r/(r+t) {
		wi := core.NewVec3(-wo.X, -wo.Y, wo.Z)
		cosThetaI := core.AbsCosTheta(wi)
		if cosThetaI == 0 {
			return Sample{}, false
		}
		f := r / cosThetaI
		return Sample{F: core.NewVec3(f, f, f), Wi: wi, Pdf: r / (r + t), Specular: true}, true
	}

	wi := wo.Negate()
	cosThetaI := core.AbsCosTheta(wi)
	if cosThetaI == 0 {
		return Sample{}, false
	}
	f := t / cosThetaI
	return Sample{F: core.NewVec3(f, f, f), Wi: wi, Pdf: t / (r + t), Specular: true}, true
}

func faceforward(n, ref core.Vec3) core.Vec3 {
	if n.Dot(ref) < 0 {
		return n.Negate()
	}
	return n
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
