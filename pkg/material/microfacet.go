package material

import (
	"math"

	"github.com/rowanvale/luxcore/pkg/core"
)

// trowbridgeReitzD evaluates the Trowbridge-Reitz (GGX) microfacet
// distribution for half-vector wm in the local frame.
func trowbridgeReitzD(wm core.Vec3, alphaX, alphaY float64) float64 {
	tan2Theta := tan2Theta(wm)
	if math.IsInf(tan2Theta, 1) {
		return 0
	}
	cos4Theta := core.CosTheta(wm) * core.CosTheta(wm)
	cos4Theta *= cos4Theta
	if cos4Theta < 1e-16 {
		return 0
	}

	e := tan2Theta * (cos2Phi(wm)/(alphaX*alphaX) + sin2Phi(wm)/(alphaY*alphaY))
	return 1 / (math.Pi * alphaX * alphaY * cos4Theta * (1 + e) * (1 + e))
}

func trowbridgeReitzLambda(w core.Vec3, alphaX, alphaY float64) float64 {
	tan2Theta := tan2Theta(w)
	if math.IsInf(tan2Theta, 1) {
		return 0
	}
	alpha2 := cos2Phi(w)*alphaX*alphaX + sin2Phi(w)*alphaY*alphaY
	return (math.Sqrt(1+alpha2*tan2Theta) - 1) / 2
}

// maskingG1 is the Smith masking function for a single direction.
func maskingG1(w core.Vec3, alphaX, alphaY float64) float64 {
	return 1 / (1 + trowbridgeReitzLambda(w, alphaX, alphaY))
}

// maskingShadowingG is the Smith height-correlated masking-shadowing term.
func maskingShadowingG(wo, wi core.Vec3, alphaX, alphaY float64) float64 {
	return 1 / (1 + trowbridgeReitzLambda(wo, alphaX, alphaY) + trowbridgeReitzLambda(wi, alphaX, alphaY))
}

// dVisible is the visible normal distribution D_omega(wo, wm), i.e. the
// density microfacet-VNDF sampling produces over wm given wo.
func dVisible(wo, wm core.Vec3, alphaX, alphaY float64) float64 {
	return maskingG1(wo, alphaX, alphaY) / core.AbsCosTheta(wo) *
		trowbridgeReitzD(wm, alphaX, alphaY) * wo.AbsDot(wm)
}

// sampleWm importance-samples a visible microfacet normal following Heitz
// 2018 (stretch-project-reflect-unstretch), given outgoing direction wo in
// the local frame and two uniform random numbers.
func sampleWm(wo core.Vec3, alphaX, alphaY float64, u core.Vec2) core.Vec3 {
	wh := core.NewVec3(alphaX*wo.X, alphaY*wo.Y, wo.Z).Normalize()
	if wh.Z < 0 {
		wh = wh.Negate()
	}

	t1 := core.NewVec3(0, 0, 1)
	if wh.Z < 0.999 {
		t1 = core.NewVec3(0, 0, 1).Cross(wh).Normalize()
	} else {
		t1 = core.NewVec3(1, 0, 0)
	}
	t2 := wh.Cross(t1)

	p := core.SampleUniformDiskConcentric(u)
	h := math.Sqrt(math.Max(0, 1-p.X*p.X))
	pY := lerp1(h, p.Y, (1+wh.Z)/2)
	pZ := math.Sqrt(math.Max(0, 1-p.X*p.X-pY*pY))

	nh := t1.Multiply(p.X).Add(t2.Multiply(pY)).Add(wh.Multiply(pZ))
	return core.NewVec3(alphaX*nh.X, alphaY*nh.Y, math.Max(1e-6, nh.Z)).Normalize()
}

func lerp1(h, pY, t float64) float64 {
	return (1-t)*h + t*pY
}

func tan2Theta(w core.Vec3) float64 {
	c2 := core.CosTheta(w) * core.CosTheta(w)
	if c2 <= 0 {
		return math.Inf(1)
	}
	return (1 - c2) / c2
}

func cos2Phi(w core.Vec3) float64 {
	sinTheta := math.Sqrt(math.Max(0, 1-core.CosTheta(w)*core.CosTheta(w)))
	if sinTheta == 0 {
		return 1
	}
	cosPhi := clamp(w.X/sinTheta, -1, 1)
	return cosPhi * cosPhi
}

func sin2Phi(w core.Vec3) float64 {
	sinTheta := math.Sqrt(math.Max(0, 1-core.CosTheta(w)*core.CosTheta(w)))
	if sinTheta == 0 {
		return 0
	}
	sinPhi := clamp(w.Y/sinTheta, -1, 1)
	return sinPhi * sinPhi
}

// isEffectivelySmooth reports whether these roughness values are small
// enough that the distribution has effectively collapsed to a delta
// function, below which VNDF sampling is skipped in favor of the exact
// specular direction.
func isEffectivelySmooth(alphaX, alphaY float64) bool {
	return alphaX < smoothnessEpsilon && alphaY < smoothnessEpsilon
}
