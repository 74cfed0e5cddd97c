// Package integrator implements the Monte-Carlo path tracer: a
// multiple-importance-sampled estimator that alternates next-event
// estimation (direct light sampling) with BSDF sampling, combined via the
// power heuristic, and terminates paths with Russian roulette.
package integrator

import (
	"math"

	"github.com/rowanvale/luxcore/pkg/core"
	"github.com/rowanvale/luxcore/pkg/material"
	"github.com/rowanvale/luxcore/pkg/scene"
)

// RayEpsilon biases secondary ray origins along the hit's shading normal
// (flipped toward the new direction) to avoid shadow-acne self-intersection
// (spec §9's single documented epsilon policy).
const RayEpsilon = 1e-3

// Config tunes the estimator. ClampRadiance is an explicitly exposed
// switch (spec §9 open question) rather than a hardcoded firefly clamp:
// the original renderer sometimes clamps per-sample radiance to [0,1],
// which suppresses fireflies at the cost of bias, so callers choose.
type Config struct {
	MaxDepth                  int
	RussianRouletteMinBounces int
	ClampRadiance             bool
}

// DefaultConfig mirrors common production defaults: enough bounces for
// indirect lighting to converge, Russian roulette kicking in after a
// handful of bounces, and no firefly clamp (unbiased by default).
func DefaultConfig() Config {
	return Config{MaxDepth: 50, RussianRouletteMinBounces: 3, ClampRadiance: false}
}

// Li estimates the incident radiance along ray, using s as the scene and
// sampler as the per-pixel stratified sampler/RNG source.
func Li(ray core.Ray, s *scene.Scene, sampler *core.Sampler, cfg Config) core.Vec3 {
	var L, beta core.Vec3
	beta = core.NewVec3(1, 1, 1)

	prevBsdfPdf := 1.0
	prevSpecular := true

	for depth := 0; depth <= cfg.MaxDepth; depth++ {
		hit, ok := s.ClosestHit(ray, core.NewInterval(RayEpsilon, math.Inf(1)))
		if !ok {
			envPdf := environmentPdf(s)
			weight := 1.0
			if !prevSpecular && envPdf > 0 {
				weight = core.PowerHeuristic(1, prevBsdfPdf, 1, envPdf)
			}
			L = L.Add(beta.MultiplyVec(s.EnvironmentEmission(ray.Direction)).Multiply(weight))
			break
		}

		mat := s.Material(hit.MaterialIndex)
		if mat.IsEmissive() {
			weight := 1.0
			if !prevSpecular {
				lightPdf := emitterPdf(s, hit, ray)
				if lightPdf > 0 {
					weight = core.PowerHeuristic(1, prevBsdfPdf, 1, lightPdf)
				}
			}
			L = L.Add(beta.MultiplyVec(mat.Emission).Multiply(weight))
		}

		frame := core.NewFrame(hit.Normal, hit.Tangent)
		wo := frame.ToLocal(ray.Direction.Negate())

		if direct := sampleDirectLight(s, sampler, hit, frame, wo, mat); !direct.IsZero() {
			L = L.Add(beta.MultiplyVec(direct))
		}

		uc := sampler.Get1D()
		u2 := sampler.Get2D()
		bs, ok := material.SampleBxDF(mat, wo, uc, u2)
		if !ok || bs.Pdf <= 0 || bs.F.IsZero() {
			break
		}

		wiWorld := frame.FromLocal(bs.Wi)
		cosTheta := math.Abs(bs.Wi.Z)
		beta = beta.MultiplyVec(bs.F).Multiply(cosTheta / bs.Pdf)

		prevBsdfPdf = bs.Pdf
		prevSpecular = bs.Specular

		if depth >= cfg.RussianRouletteMinBounces {
			q := math.Max(0, 1-beta.MaxComponent())
			if sampler.Get1D() < q {
				break
			}
			beta = beta.Multiply(1 / (1 - q))
		}

		origin := offsetOrigin(hit, wiWorld)
		ray = core.NewRay(origin, wiWorld)
	}

	if cfg.ClampRadiance {
		L = L.Clamp(0, 1)
	}
	return L
}

// sampleDirectLight performs next-event estimation: pick a light
// uniformly, sample it, and if unoccluded add its MIS-weighted
// contribution (spec §4.8 step 3).
func sampleDirectLight(s *scene.Scene, sampler *core.Sampler, hit core.HitRecord, frame core.Frame, wo core.Vec3, mat material.Material) core.Vec3 {
	if s.LightSampler == nil || s.LightSampler.Len() == 0 {
		return core.Vec3{}
	}

	light, _, pickPdf := s.LightSampler.Pick(sampler.Get1D())
	if pickPdf <= 0 {
		return core.Vec3{}
	}

	ls := light.Sample(hit.Point, sampler.Get2D())
	if ls.Pdf <= 0 || ls.Radiance.IsBlack() {
		return core.Vec3{}
	}

	cosThetaWorld := ls.Wi.Dot(hit.Normal)
	if cosThetaWorld <= 0 {
		return core.Vec3{}
	}

	shadowOrigin := offsetOrigin(hit, ls.Wi)
	tMax := ls.Distance - RayEpsilon
	if tMax <= RayEpsilon {
		return core.Vec3{}
	}
	if s.AnyHit(core.NewRay(shadowOrigin, ls.Wi), core.NewInterval(RayEpsilon, tMax)) {
		return core.Vec3{}
	}

	wi := frame.ToLocal(ls.Wi)
	f := material.Evaluate(mat, wo, wi)
	if f.IsZero() {
		return core.Vec3{}
	}

	lightPdf := ls.Pdf * pickPdf
	weight := 1.0
	if !ls.IsDelta {
		bsdfPdf := material.Pdf(mat, wo, wi)
		weight = core.PowerHeuristic(1, lightPdf, 1, bsdfPdf)
	}

	return f.MultiplyVec(ls.Radiance).Multiply(math.Abs(cosThetaWorld) * weight / lightPdf)
}

// environmentPdf returns the MIS-comparable pdf of reaching the
// environment via light sampling (spec §4.8 step 1): the probability of
// picking some Infinite light times its directional sampling density.
func environmentPdf(s *scene.Scene) float64 {
	if s.LightSampler == nil || s.LightSampler.Len() == 0 {
		return 0
	}
	envIdx := s.LightSampler.EnvironmentLights()
	if len(envIdx) == 0 {
		return 0
	}
	pick := s.LightSampler.PickProbability()
	return pick * float64(len(envIdx)) * (1.0 / (4 * math.Pi))
}

// emitterPdf returns the MIS-comparable pdf of having reached an emissive
// surface hit via light sampling: pick probability times the light's
// area-measure-converted solid-angle pdf. Point lights have zero extent
// and are never hit this way, so this only applies to emissive
// geometry, which this renderer treats as non-sampled (emission is only
// picked up passively via BSDF bounces), giving pdf 0 and weight 1.
func emitterPdf(s *scene.Scene, hit core.HitRecord, ray core.Ray) float64 {
	return 0
}

// offsetOrigin nudges the next ray's origin along the hit's shading normal
// (HitRecord.Normal), biased toward the side the new direction points into, to avoid
// self-intersection with the surface just hit.
func offsetOrigin(hit core.HitRecord, dir core.Vec3) core.Vec3 {
	bias := hit.Normal
	if dir.Dot(hit.Normal) < 0 {
		bias = bias.Negate()
	}
	return hit.Point.Add(bias.Multiply(RayEpsilon))
}
