package geometry

import "github.com/rowanvale/luxcore/pkg/core"

// Transform is the affine object-to-world transform carried by a
// TriangleMesh (spec §3 Data Model). It is applied once, at mesh
// construction time, baking world-space positions/normals into the
// mesh's arrays rather than being re-applied per intersection — meshes
// are immutable for the render's lifetime, so there's no benefit to
// paying the matrix multiply on every ray.
type Transform struct {
	Translation core.Vec3
	Rotation    core.Vec3 // Euler angles in radians, applied X then Y then Z
	Scale       core.Vec3
}

// Identity returns a no-op transform.
func Identity() Transform {
	return Transform{Scale: core.NewVec3(1, 1, 1)}
}

// TransformPoint applies scale, then rotation, then translation.
func (t Transform) TransformPoint(p core.Vec3) core.Vec3 {
	p = p.MultiplyVec(t.scaleOrOne())
	p = p.Rotate(t.Rotation)
	return p.Add(t.Translation)
}

// TransformNormal applies the inverse-transpose of the linear part: for
// a pure rotation plus uniform/non-uniform scale this is dividing out the
// scale followed by the rotation (no translation, as normals are
// directions).
func (t Transform) TransformNormal(n core.Vec3) core.Vec3 {
	s := t.scaleOrOne()
	n = core.Vec3{X: n.X / s.X, Y: n.Y / s.Y, Z: n.Z / s.Z}
	return n.Rotate(t.Rotation).Normalize()
}

func (t Transform) scaleOrOne() core.Vec3 {
	if t.Scale.IsZero() {
		return core.NewVec3(1, 1, 1)
	}
	return t.Scale
}
