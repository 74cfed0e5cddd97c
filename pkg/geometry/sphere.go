// Package geometry implements the scene's leaf geometric primitives:
// spheres and triangle meshes. Both satisfy accel.Primitive so the BVH
// in pkg/accel never needs to know which kind of geometry it's bounding.
package geometry

import (
	"math"

	"github.com/rowanvale/luxcore/pkg/accel"
	"github.com/rowanvale/luxcore/pkg/core"
)

// Sphere is a (possibly animated) sphere. When Center0 == Center1 the
// sphere is static; otherwise its center moves linearly over the ray's
// time parameter: center(t) = Center0 + t*(Center1-Center0).
type Sphere struct {
	Center0, Center1 core.Vec3
	Radius           float64
	MaterialIndex    int
}

// NewSphere creates a static sphere.
func NewSphere(center core.Vec3, radius float64, materialIndex int) Sphere {
	return Sphere{Center0: center, Center1: center, Radius: radius, MaterialIndex: materialIndex}
}

// NewAnimatedSphere creates a sphere whose center moves from c0 at t=0 to
// c1 at t=1.
func NewAnimatedSphere(c0, c1 core.Vec3, radius float64, materialIndex int) Sphere {
	return Sphere{Center0: c0, Center1: c1, Radius: radius, MaterialIndex: materialIndex}
}

// CenterAt returns the sphere's center at the given ray time.
func (s Sphere) CenterAt(time float64) core.Vec3 {
	if s.Center0 == s.Center1 {
		return s.Center0
	}
	return s.Center0.Add(s.Center1.Subtract(s.Center0).Multiply(time))
}

// Bounds returns a box bounding the sphere across its full motion range.
func (s Sphere) Bounds() core.AABB {
	r := core.Vec3{X: s.Radius, Y: s.Radius, Z: s.Radius}
	box0 := core.NewAABB(s.Center0.Subtract(r), s.Center0.Add(r))
	if s.Center0 == s.Center1 {
		return box0
	}
	box1 := core.NewAABB(s.Center1.Subtract(r), s.Center1.Add(r))
	return box0.Union(box1)
}

// Intersect solves the sphere quadratic a*t^2 - 2h*t + c = 0 (spec §4.4):
// a = |d|^2, h = d.(center-o), c = |center-o|^2 - r^2. The nearer root
// strictly inside tInterval is preferred; the farther root is tried if
// the near one falls outside.
func (s Sphere) Intersect(ray core.Ray, tInterval core.Interval) (core.HitRecord, bool) {
	if s.Radius <= 0 {
		return core.HitRecord{}, false
	}
	center := s.CenterAt(ray.Time)
	oc := center.Subtract(ray.Origin)
	a := ray.Direction.LengthSquared()
	h := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	disc := h*h - a*c
	if disc < 0 {
		return core.HitRecord{}, false
	}
	sqrtD := math.Sqrt(disc)

	root := (h - sqrtD) / a
	if !tInterval.Surrounds(root) {
		root = (h + sqrtD) / a
		if !tInterval.Surrounds(root) {
			return core.HitRecord{}, false
		}
	}

	p := ray.At(root)
	outward := p.Subtract(center).Multiply(1.0 / s.Radius)

	hit := core.HitRecord{Point: p, T: root, MaterialIndex: s.MaterialIndex}
	hit.SetFaceNormal(ray, outward)
	hit.U, hit.V = sphereUV(outward)
	return hit, true
}

// IntersectP is the any-hit form of Intersect, used by shadow rays.
func (s Sphere) IntersectP(ray core.Ray, tInterval core.Interval) bool {
	if s.Radius <= 0 {
		return false
	}
	center := s.CenterAt(ray.Time)
	oc := center.Subtract(ray.Origin)
	a := ray.Direction.LengthSquared()
	h := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius
	disc := h*h - a*c
	if disc < 0 {
		return false
	}
	sqrtD := math.Sqrt(disc)
	root := (h - sqrtD) / a
	if tInterval.Surrounds(root) {
		return true
	}
	root = (h + sqrtD) / a
	return tInterval.Surrounds(root)
}

// sphereUV maps a unit outward normal to (u,v) latitude/longitude
// texture coordinates.
func sphereUV(p core.Vec3) (u, v float64) {
	theta := math.Acos(-p.Y)
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return phi / (2 * math.Pi), theta / math.Pi
}

var _ accel.Primitive = Sphere{}
