package integrator

import (
	"math"
	"testing"

	"github.com/rowanvale/luxcore/pkg/core"
	"github.com/rowanvale/luxcore/pkg/lights"
	"github.com/rowanvale/luxcore/pkg/scene"
)

func TestLi_EmptySceneReturnsEnvironmentExactly(t *testing.T) {
	s := &scene.Scene{}
	s.AddLight(lights.NewConstantInfiniteLight(core.NewVec3(0.7, 0.8, 1.0)))
	if err := s.Build(4); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	cfg := DefaultConfig()
	sampler := core.NewStratifiedSampler(0, 0, 0, 1, 1, true)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0.1, 0.2, -1))

	L := Li(ray, s, sampler, cfg)
	expected := core.NewVec3(0.7, 0.8, 1.0)
	if !L.Equals(expected) {
		t.Fatalf("expected exact environment color %v, got %v", expected, L)
	}
}

func TestLi_DiffuseSphereRadianceIsNonZeroAndBounded(t *testing.T) {
	s := scene.NewDefaultScene()
	if err := s.Build(4); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	cfg := DefaultConfig()
	cfg.MaxDepth = 10

	var sum core.Vec3
	const spp = 64
	for i := 0; i < spp; i++ {
		sampler := core.NewStratifiedSampler(0, 0, i, 8, 8, true)
		ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
		sum = sum.Add(Li(ray, s, sampler, cfg))
	}
	avg := sum.Multiply(1.0 / spp)

	if avg.IsZero() {
		t.Fatal("expected non-zero radiance looking at the sphere")
	}
	if avg.MaxComponent() > 1.5 {
		t.Fatalf("radiance implausibly large: %v", avg)
	}
}

func TestLi_NeverProducesNaN(t *testing.T) {
	s := scene.NewCornellBoxScene()
	if err := s.Build(4); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	cfg := DefaultConfig()

	rng := core.NewRNG(42, 1, 1)
	for i := 0; i < 50; i++ {
		sampler := core.NewStratifiedSampler(i, 0, 0, 4, 4, true)
		dir := core.NewVec3(rng.Uniform(-1, 1), rng.Uniform(-0.2, 1), rng.Uniform(-1, 1))
		if dir.IsZero() {
			continue
		}
		ray := core.NewRay(core.NewVec3(278, 278, -700), dir)
		L := Li(ray, s, sampler, cfg)
		if L.HasNaN() {
			t.Fatalf("NaN radiance at iteration %d: %v", i, L)
		}
	}
}

func TestLi_RadianceClampSwitch(t *testing.T) {
	s := &scene.Scene{}
	s.AddLight(lights.NewConstantInfiniteLight(core.NewVec3(5, 5, 5)))
	if err := s.Build(4); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	cfg := DefaultConfig()
	cfg.ClampRadiance = true
	sampler := core.NewStratifiedSampler(0, 0, 0, 1, 1, true)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	L := Li(ray, s, sampler, cfg)
	if L.MaxComponent() > 1.0+1e-9 {
		t.Fatalf("expected clamp to [0,1], got %v", L)
	}

	cfg.ClampRadiance = false
	sampler = core.NewStratifiedSampler(0, 0, 0, 1, 1, true)
	L = Li(ray, s, sampler, cfg)
	if !L.Equals(core.NewVec3(5, 5, 5)) {
		t.Fatalf("expected unclamped environment radiance (5,5,5), got %v", L)
	}
}

func TestPowerHeuristic_FavorsLowerVarianceTechnique(t *testing.T) {
	w := core.PowerHeuristic(1, 10, 1, 1)
	if w <= 0.5 {
		t.Fatalf("expected the technique with higher pdf to get more weight, got %g", w)
	}
	if math.IsNaN(w) {
		t.Fatal("power heuristic produced NaN")
	}
}
