package geometry

import (
	"math"

	"github.com/rowanvale/luxcore/pkg/accel"
	"github.com/rowanvale/luxcore/pkg/core"
)

// TriangleMesh owns shared per-vertex arrays (positions, optional
// normals, optional UVs) and the index triples that address triangles
// into them; a Triangle addresses one face as (mesh, triIndex) (spec §3).
// The object-to-world transform is baked into Positions/Normals at
// construction time (see Transform).
type TriangleMesh struct {
	Positions     []core.Vec3
	Normals       []core.Vec3 // nil if the mesh has no vertex normals
	UVs           []core.Vec2 // nil if the mesh has no UVs
	Indices       []int       // length = 3 * triangle count
	MaterialIndex int
}

// NewTriangleMesh bakes transform into positions/normals and validates
// index bounds once, up front, so later intersection code never needs to
// range-check.
func NewTriangleMesh(positions []core.Vec3, normals []core.Vec3, uvs []core.Vec2, indices []int, xform Transform, materialIndex int) *TriangleMesh {
	if len(indices)%3 != 0 {
		panic("geometry: triangle mesh indices must be a multiple of 3")
	}

	worldPositions := make([]core.Vec3, len(positions))
	for i, p := range positions {
		worldPositions[i] = xform.TransformPoint(p)
	}

	var worldNormals []core.Vec3
	if normals != nil {
		worldNormals = make([]core.Vec3, len(normals))
		for i, n := range normals {
			worldNormals[i] = xform.TransformNormal(n)
		}
	}

	for _, idx := range indices {
		if idx < 0 || idx >= len(worldPositions) {
			panic("geometry: triangle mesh index out of range")
		}
	}

	return &TriangleMesh{
		Positions:     worldPositions,
		Normals:       worldNormals,
		UVs:           uvs,
		Indices:       indices,
		MaterialIndex: materialIndex,
	}
}

// NumTriangles returns the number of triangles in the mesh.
func (m *TriangleMesh) NumTriangles() int { return len(m.Indices) / 3 }

// Triangles returns one accel.Primitive per triangle, addressed by
// (mesh, triIndex) rather than holding a copy of the vertex data.
func (m *TriangleMesh) Triangles() []accel.Primitive {
	tris := make([]accel.Primitive, m.NumTriangles())
	for i := range tris {
		tris[i] = Triangle{mesh: m, triIndex: i}
	}
	return tris
}

func (m *TriangleMesh) vertexIndices(triIndex int) (int, int, int) {
	base := triIndex * 3
	return m.Indices[base], m.Indices[base+1], m.Indices[base+2]
}

// Triangle is a single addressable face of a TriangleMesh.
type Triangle struct {
	mesh     *TriangleMesh
	triIndex int
}

// NewTriangle addresses triangle triIndex of mesh.
func NewTriangle(mesh *TriangleMesh, triIndex int) Triangle {
	return Triangle{mesh: mesh, triIndex: triIndex}
}

func (tr Triangle) vertices() (p0, p1, p2 core.Vec3) {
	i0, i1, i2 := tr.mesh.vertexIndices(tr.triIndex)
	return tr.mesh.Positions[i0], tr.mesh.Positions[i1], tr.mesh.Positions[i2]
}

// Bounds returns the triangle's world-space AABB, padded slightly so a
// triangle lying exactly in an axis-aligned plane still has a non-zero
// slab thickness for the BVH's SAH cost model.
func (tr Triangle) Bounds() core.AABB {
	p0, p1, p2 := tr.vertices()
	return core.NewAABBFromPoints(p0, p1, p2).Pad(1e-6)
}

// Area returns the triangle's surface area (half the cross product
// magnitude of its edge vectors).
func (tr Triangle) Area() float64 {
	p0, p1, p2 := tr.vertices()
	return p1.Subtract(p0).Cross(p2.Subtract(p0)).Length() * 0.5
}

const triangleEpsilon = 1e-8

// Intersect implements the Möller-Trumbore ray/triangle test (spec
// §4.4): determinants with |det| < 1e-8 are rejected as (near-)parallel.
// The shading normal is the barycentric interpolation of the mesh's
// vertex normals when present, else the flat face normal.
func (tr Triangle) Intersect(ray core.Ray, tInterval core.Interval) (core.HitRecord, bool) {
	p0, p1, p2 := tr.vertices()
	edge1 := p1.Subtract(p0)
	edge2 := p2.Subtract(p0)

	pvec := ray.Direction.Cross(edge2)
	det := edge1.Dot(pvec)
	if math.Abs(det) < triangleEpsilon {
		return core.HitRecord{}, false
	}
	invDet := 1.0 / det

	tvec := ray.Origin.Subtract(p0)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return core.HitRecord{}, false
	}

	qvec := tvec.Cross(edge1)
	v := ray.Direction.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return core.HitRecord{}, false
	}

	t := edge2.Dot(qvec) * invDet
	if !tInterval.Surrounds(t) {
		return core.HitRecord{}, false
	}

	faceNormal := edge1.Cross(edge2).Normalize()
	shadingNormal := faceNormal
	i0, i1, i2 := tr.mesh.vertexIndices(tr.triIndex)
	if tr.mesh.Normals != nil {
		w := 1 - u - v
		shadingNormal = tr.mesh.Normals[i0].Multiply(w).
			Add(tr.mesh.Normals[i1].Multiply(u)).
			Add(tr.mesh.Normals[i2].Multiply(v)).
			Normalize()
	}

	hit := core.HitRecord{
		Point:         ray.At(t),
		T:             t,
		U:             u,
		V:             v,
		MaterialIndex: tr.mesh.MaterialIndex,
	}
	hit.SetFaceNormal(ray, shadingNormal)
	hit.Tangent, hit.Bitangent = tr.tangentSpace(i0, i1, i2, hit.Normal)
	return hit, true
}

// IntersectP is the any-hit form of Intersect.
func (tr Triangle) IntersectP(ray core.Ray, tInterval core.Interval) bool {
	p0, p1, p2 := tr.vertices()
	edge1 := p1.Subtract(p0)
	edge2 := p2.Subtract(p0)

	pvec := ray.Direction.Cross(edge2)
	det := edge1.Dot(pvec)
	if math.Abs(det) < triangleEpsilon {
		return false
	}
	invDet := 1.0 / det

	tvec := ray.Origin.Subtract(p0)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return false
	}

	qvec := tvec.Cross(edge1)
	v := ray.Direction.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return false
	}

	t := edge2.Dot(qvec) * invDet
	return tInterval.Surrounds(t)
}

// tangentSpace derives the tangent/bitangent from UV partial derivatives
// when the mesh carries UVs, falling back to the canonical
// (0,0),(1,0),(0,1) triangle otherwise (spec §4.4).
func (tr Triangle) tangentSpace(i0, i1, i2 int, normal core.Vec3) (core.Vec3, core.Vec3) {
	p0, p1, p2 := tr.vertices()
	var uv0, uv1, uv2 core.Vec2
	if tr.mesh.UVs != nil {
		uv0, uv1, uv2 = tr.mesh.UVs[i0], tr.mesh.UVs[i1], tr.mesh.UVs[i2]
	} else {
		uv0, uv1, uv2 = core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(0, 1)
	}

	e1 := p1.Subtract(p0)
	e2 := p2.Subtract(p0)
	du1, dv1 := uv1.X-uv0.X, uv1.Y-uv0.Y
	du2, dv2 := uv2.X-uv0.X, uv2.Y-uv0.Y

	det := du1*dv2 - du2*dv1
	if math.Abs(det) < 1e-12 {
		t := core.NewFrameFromNormal(normal)
		return t.T, t.B
	}
	invDet := 1.0 / det
	tangent := e1.Multiply(dv2 * invDet).Subtract(e2.Multiply(dv1 * invDet))
	tangent = tangent.Subtract(normal.Multiply(normal.Dot(tangent))).Normalize()
	bitangent := normal.Cross(tangent)
	return tangent, bitangent
}

var _ accel.Primitive = Triangle{}
