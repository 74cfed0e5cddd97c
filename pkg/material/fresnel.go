package material

import (
	"math"

	"github.com/rowanvale/luxcore/pkg/core"
)

// fresnelDielectric is the standard unpolarized Fresnel reflectance for a
// dielectric interface. cosThetaI is signed (negative means the ray is
// inside the denser medium); eta is the relative index of refraction
// (transmitted/incident). Returns 1 (total internal reflection) rather
// than NaN when the transmitted ray doesn't exist.
func fresnelDielectric(cosThetaI, eta float64) float64 {
	cosThetaI = clamp(cosThetaI, -1, 1)
	if cosThetaI < 0 {
		eta = 1 / eta
		cosThetaI = -cosThetaI
	}

	sin2ThetaI := 1 - cosThetaI*cosThetaI
	sin2ThetaT := sin2ThetaI / (eta * eta)
	if sin2ThetaT >= 1 {
		return 1
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)

	rParallel := (eta*cosThetaI - cosThetaT) / (eta*cosThetaI + cosThetaT)
	rPerp := (cosThetaI - eta*cosThetaT) / (cosThetaI + eta*cosThetaT)
	return (rParallel*rParallel + rPerp*rPerp) / 2
}

// fresnelConductorChannel is the complex Fresnel reflectance of a single
// channel with index of refraction eta and extinction k.
func fresnelConductorChannel(cosThetaI, eta, k float64) float64 {
	cosThetaI = clamp(cosThetaI, 0, 1)
	cos2 := cosThetaI * cosThetaI
	sin2 := 1 - cos2

	eta2 := eta * eta
	k2 := k * k

	t0 := eta2 - k2 - sin2
	a2plusb2 := math.Sqrt(math.Max(0, t0*t0+4*eta2*k2))
	t1 := a2plusb2 + cos2
	a := math.Sqrt(math.Max(0, (a2plusb2+t0)/2))
	t2 := 2 * a * cosThetaI
	rs := (t1 - t2) / (t1 + t2)

	t3 := cos2*a2plusb2 + sin2*sin2
	t4 := t2 * sin2
	rp := rs * (t3 - t4) / (t3 + t4)

	return (rs + rp) / 2
}

// fresnelConductor evaluates the complex conductor Fresnel term
// independently per RGB channel.
func fresnelConductor(cosThetaI float64, eta, k core.Vec3) core.Vec3 {
	return core.NewVec3(
		fresnelConductorChannel(cosThetaI, eta.X, k.X),
		fresnelConductorChannel(cosThetaI, eta.Y, k.Y),
		fresnelConductorChannel(cosThetaI, eta.Z, k.Z),
	)
}

// fresnelSchlick is Schlick's cheap approximation, used by the
// metallic-roughness lobe-mixing weight.
func fresnelSchlick(cosTheta float64, f0 core.Vec3) core.Vec3 {
	cosTheta = clamp(cosTheta, 0, 1)
	m := 1 - cosTheta
	m5 := m * m * m * m * m
	return f0.Add(core.NewVec3(1, 1, 1).Subtract(f0).Multiply(m5))
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
