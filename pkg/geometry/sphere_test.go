package geometry

import (
	"math"
	"testing"

	"github.com/rowanvale/luxcore/pkg/core"
)

func TestSphere_Intersect_HitsCenter(t *testing.T) {
	s := NewSphere(core.NewVec3(0, 0, -1), 0.5, 2)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit, ok := s.Intersect(ray, core.NewInterval(0.001, math.Inf(1)))
	if !ok {
		t.Fatal("expected a hit")
	}
	if math.Abs(hit.T-0.5) > 1e-9 {
		t.Fatalf("expected t=0.5, got %g", hit.T)
	}
	if hit.MaterialIndex != 2 {
		t.Fatalf("expected material index 2, got %d", hit.MaterialIndex)
	}
	if !hit.FrontFace {
		t.Fatal("expected front-face hit from outside the sphere")
	}
}

func TestSphere_Intersect_Miss(t *testing.T) {
	s := NewSphere(core.NewVec3(0, 0, -1), 0.5, 0)
	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, 0, -1))
	if _, ok := s.Intersect(ray, core.NewInterval(0.001, math.Inf(1))); ok {
		t.Fatal("expected a miss")
	}
}

func TestSphere_Intersect_FromInside(t *testing.T) {
	s := NewSphere(core.NewVec3(0, 0, 0), 1, 0)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))

	hit, ok := s.Intersect(ray, core.NewInterval(0.001, math.Inf(1)))
	if !ok {
		t.Fatal("expected a hit from inside")
	}
	if hit.FrontFace {
		t.Fatal("expected a back-face hit from inside the sphere")
	}
	// Normal should still oppose the ray direction after SetFaceNormal.
	if hit.Normal.Dot(ray.Direction) > 0 {
		t.Fatal("shading normal should oppose the ray")
	}
}

func TestSphere_AnyHitAgreesWithClosestHit(t *testing.T) {
	s := NewSphere(core.NewVec3(0, 0, -2), 1, 0)
	rng := core.NewRNG(1, 2, 3)
	for i := 0; i < 200; i++ {
		origin := core.NewVec3(rng.Uniform(-3, 3), rng.Uniform(-3, 3), rng.Uniform(-3, 3))
		dir := core.NewVec3(rng.Uniform(-1, 1), rng.Uniform(-1, 1), rng.Uniform(-1, 1))
		if dir.IsZero() {
			continue
		}
		ray := core.NewRay(origin, dir)
		interval := core.NewInterval(0.0001, 100)

		_, closest := s.Intersect(ray, interval)
		any := s.IntersectP(ray, interval)
		if closest != any {
			t.Fatalf("closest=%v any=%v mismatch on iteration %d", closest, any, i)
		}
	}
}

func TestSphere_AnimatedCenter(t *testing.T) {
	s := NewAnimatedSphere(core.NewVec3(0, 0, 0), core.NewVec3(4, 0, 0), 0.5, 0)
	if got := s.CenterAt(0); !got.Equals(core.NewVec3(0, 0, 0)) {
		t.Fatalf("CenterAt(0) = %v", got)
	}
	if got := s.CenterAt(1); !got.Equals(core.NewVec3(4, 0, 0)) {
		t.Fatalf("CenterAt(1) = %v", got)
	}
	if got := s.CenterAt(0.5); !got.Equals(core.NewVec3(2, 0, 0)) {
		t.Fatalf("CenterAt(0.5) = %v", got)
	}
}

func TestSphere_DegenerateRadiusIsNonHit(t *testing.T) {
	s := NewSphere(core.NewVec3(0, 0, 0), 0, 0)
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	if _, ok := s.Intersect(ray, core.NewInterval(0.001, math.Inf(1))); ok {
		t.Fatal("zero-radius sphere must never hit")
	}
}
