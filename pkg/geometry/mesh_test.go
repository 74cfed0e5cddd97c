package geometry

import (
	"math"
	"testing"

	"github.com/rowanvale/luxcore/pkg/core"
)

func simpleTriangleMesh() *TriangleMesh {
	positions := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
	}
	indices := []int{0, 1, 2}
	return NewTriangleMesh(positions, nil, nil, indices, Identity(), 5)
}

func TestTriangle_Intersect_HitsCenter(t *testing.T) {
	mesh := simpleTriangleMesh()
	tri := NewTriangle(mesh, 0)

	ray := core.NewRay(core.NewVec3(0.2, 0.2, 1), core.NewVec3(0, 0, -1))
	hit, ok := tri.Intersect(ray, core.NewInterval(0.001, math.Inf(1)))
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.MaterialIndex != 5 {
		t.Fatalf("expected material index 5, got %d", hit.MaterialIndex)
	}
	if math.Abs(hit.T-1) > 1e-9 {
		t.Fatalf("expected t=1, got %g", hit.T)
	}
}

func TestTriangle_Intersect_MissesOutsideEdges(t *testing.T) {
	mesh := simpleTriangleMesh()
	tri := NewTriangle(mesh, 0)

	ray := core.NewRay(core.NewVec3(0.9, 0.9, 1), core.NewVec3(0, 0, -1))
	if _, ok := tri.Intersect(ray, core.NewInterval(0.001, math.Inf(1))); ok {
		t.Fatal("expected a miss outside the triangle's edges")
	}
}

func TestTriangle_Intersect_RejectsNearParallelRay(t *testing.T) {
	mesh := simpleTriangleMesh()
	tri := NewTriangle(mesh, 0)

	// A ray in the triangle's own plane has a near-zero determinant.
	ray := core.NewRay(core.NewVec3(0.2, 0.2, 0), core.NewVec3(1, 0, 0))
	if _, ok := tri.Intersect(ray, core.NewInterval(0.001, math.Inf(1))); ok {
		t.Fatal("expected near-parallel ray to be rejected")
	}
}

func TestTriangle_ShadingNormal_InterpolatesVertexNormals(t *testing.T) {
	positions := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
	}
	normals := []core.Vec3{
		core.NewVec3(0, 0, 1),
		core.NewVec3(0, 0, 1),
		core.NewVec3(1, 0, 0), // perturbed, to make interpolation visible
	}
	mesh := NewTriangleMesh(positions, normals, nil, []int{0, 1, 2}, Identity(), 0)
	tri := NewTriangle(mesh, 0)

	ray := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, 0, -1))
	hit, ok := tri.Intersect(ray, core.NewInterval(0.001, math.Inf(1)))
	if !ok {
		t.Fatal("expected a hit near v2")
	}
	// Near v2 the shading normal should lean toward (1,0,0).
	if hit.Normal.X < 0.3 {
		t.Fatalf("expected shading normal to interpolate toward v2's normal, got %v", hit.Normal)
	}
}

func TestTriangleMesh_IndexOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range index")
		}
	}()
	NewTriangleMesh([]core.Vec3{{}, {}, {}}, nil, nil, []int{0, 1, 5}, Identity(), 0)
}

func TestTriangleMesh_Transform_Translation(t *testing.T) {
	positions := []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)}
	xform := Transform{Translation: core.NewVec3(5, 0, 0), Scale: core.NewVec3(1, 1, 1)}
	mesh := NewTriangleMesh(positions, nil, nil, []int{0, 1, 2}, xform, 0)

	if !mesh.Positions[0].Equals(core.NewVec3(5, 0, 0)) {
		t.Fatalf("expected translated vertex, got %v", mesh.Positions[0])
	}
}

func TestTriangle_AnyHitAgreesWithClosestHit(t *testing.T) {
	mesh := simpleTriangleMesh()
	tri := NewTriangle(mesh, 0)
	rng := core.NewRNG(9, 4, 2)

	for i := 0; i < 200; i++ {
		origin := core.NewVec3(rng.Uniform(-1, 2), rng.Uniform(-1, 2), rng.Uniform(-2, 2))
		dir := core.NewVec3(rng.Uniform(-1, 1), rng.Uniform(-1, 1), rng.Uniform(-1, 1))
		if dir.IsZero() {
			continue
		}
		ray := core.NewRay(origin, dir)
		interval := core.NewInterval(0.0001, 50)

		_, closest := tri.Intersect(ray, interval)
		any := tri.IntersectP(ray, interval)
		if closest != any {
			t.Fatalf("mismatch at iteration %d: closest=%v any=%v", i, closest, any)
		}
	}
}
