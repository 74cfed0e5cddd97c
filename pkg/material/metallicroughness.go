package material

import "github.com/rowanvale/luxcore/pkg/core"

var dielectricF0 = core.NewVec3(0.04, 0.04, 0.04)

func metallicRoughnessF0(m Material) core.Vec3 {
	return core.Lerp(dielectricF0, m.Albedo, m.Metallic)
}

// lobeWeights returns (specularWeight, diffuseWeight, p) per spec §4.6: p
// is the probability of importance-sampling the specular lobe.
func lobeWeights(m Material, wo core.Vec3) (specularWeight, diffuseWeight, p float64) {
	f0 := metallicRoughnessF0(m)
	fr := fresnelSchlick(core.AbsCosTheta(wo), f0)
	specularWeight = (fr.X + fr.Y + fr.Z) / 3
	diffuseWeight = (1 - m.Metallic) * (1 - specularWeight)
	total := specularWeight + diffuseWeight
	if total <= 0 {
		return 0, 0, 0
	}
	return specularWeight, diffuseWeight, specularWeight / total
}

func diffuseAlbedo(m Material) core.Vec3 {
	return m.Albedo.Multiply(1 - m.Metallic)
}

func evaluateMetallicRoughness(m Material, wo, wi core.Vec3) core.Vec3 {
	diffuse := evaluateDiffuse(Material{Kind: Diffuse, Albedo: diffuseAlbedo(m)}, wo, wi)

	var spec core.Vec3
	if !core.SameHemisphere(wo, wi) {
		spec = core.Vec3{}
	} else if isEffectivelySmooth(m.AlphaX, m.AlphaY) {
		spec = core.Vec3{}
	} else {
		wm := wo.Add(wi)
		if !wm.IsZero() {
			wm = wm.Normalize()
			f0 := metallicRoughnessF0(m)
			f := fresnelSchlick(wo.AbsDot(wm), f0)
			d := trowbridgeReitzD(wm, m.AlphaX, m.AlphaY)
			g := maskingShadowingG(wo, wi, m.AlphaX, m.AlphaY)
			cosThetaO, cosThetaI := core.AbsCosTheta(wo), core.AbsCosTheta(wi)
			if cosThetaO > 0 && cosThetaI > 0 {
				spec = f.Multiply(d * g / (4 * cosThetaO * cosThetaI))
			}
		}
	}

	return diffuse.Add(spec)
}

func sampleMetallicRoughness(m Material, wo core.Vec3, uc float64, u2 core.Vec2) (Sample, bool) {
	_, _, p := lobeWeights(m, wo)

	if uc < p {
		if isEffectivelySmooth(m.AlphaX, m.AlphaY) {
			wi := core.NewVec3(-wo.X, -wo.Y, wo.Z)
			cosThetaI := core.AbsCosTheta(wi)
			if cosThetaI == 0 {
				return Sample{}, false
			}
			f0 := metallicRoughnessF0(m)
			f := fresnelSchlick(cosThetaI, f0).Multiply(1 / cosThetaI)
			return Sample{F: f, Wi: wi, Pdf: p, Specular: true}, true
		}

		wm := sampleWm(wo, m.AlphaX, m.AlphaY, u2)
		wi := reflect(wo, wm)
		if !core.SameHemisphere(wo, wi) {
			return Sample{}, false
		}
		pdf := pdfMetallicRoughness(m, wo, wi)
		if pdf <= 0 {
			return Sample{}, false
		}
		return Sample{F: evaluateMetallicRoughness(m, wo, wi), Wi: wi, Pdf: pdf}, true
	}

	wi := core.SampleCosineHemisphere(u2)
	if wo.Z < 0 {
		wi.Z = -wi.Z
	}
	pdf := pdfMetallicRoughness(m, wo, wi)
	if pdf <= 0 {
		return Sample{}, false
	}
	return Sample{F: evaluateMetallicRoughness(m, wo, wi), Wi: wi, Pdf: pdf}, true
}

func pdfMetallicRoughness(m Material, wo, wi core.Vec3) float64 {
	_, _, p := lobeWeights(m, wo)

	diffusePdf := core.CosineHemispherePDF(core.AbsCosTheta(wi)) * (1 - p)

	var specPdf float64
	if core.SameHemisphere(wo, wi) && !isEffectivelySmooth(m.AlphaX, m.AlphaY) {
		wm := wo.Add(wi)
		if !wm.IsZero() {
			wm = wm.Normalize()
			if wm.Z < 0 {
				wm = wm.Negate()
			}
			specPdf = dVisible(wo, wm, m.AlphaX, m.AlphaY) / (4 * wo.AbsDot(wm)) * p
		}
	}

	return diffusePdf + specPdf
}
