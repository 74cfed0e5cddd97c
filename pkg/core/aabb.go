package core

import "math"

// AABB is an axis-aligned bounding box. An empty box has Min = +Inf,
// Max = -Inf on every axis so that Expand with any point or box is
// always correct.
type AABB struct {
	Min, Max Vec3
}

// EmptyAABB returns a box that contains nothing.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{Min: Vec3{inf, inf, inf}, Max: Vec3{-inf, -inf, -inf}}
}

// NewAABB creates an AABB from two corner points; the corners need not be
// pre-sorted into min/max.
func NewAABB(a, b Vec3) AABB {
	return AABB{Min: MinComponents(a, b), Max: MaxComponents(a, b)}
}

// NewAABBFromPoints returns the smallest AABB containing every point.
func NewAABBFromPoints(points ...Vec3) AABB {
	box := EmptyAABB()
	for _, p := range points {
		box = box.ExpandPoint(p)
	}
	return box
}

// ExpandPoint returns the box expanded to contain p.
func (b AABB) ExpandPoint(p Vec3) AABB {
	return AABB{Min: MinComponents(b.Min, p), Max: MaxComponents(b.Max, p)}
}

// Expand returns the union of this box and another (alias of Union, named
// to match the spec's `expand(AABB)` / `expand(Vec3)` overload pair).
func (b AABB) Expand(o AABB) AABB { return b.Union(o) }

// Union returns the union of two boxes.
func (b AABB) Union(o AABB) AABB {
	return AABB{Min: MinComponents(b.Min, o.Min), Max: MaxComponents(b.Max, o.Max)}
}

// Pad returns the box expanded by amount along every axis, used to give
// degenerate (zero-thickness) boxes a non-zero slab width.
func (b AABB) Pad(amount float64) AABB {
	e := Vec3{amount, amount, amount}
	return AABB{Min: b.Min.Subtract(e), Max: b.Max.Add(e)}
}

// Center returns the midpoint of the box.
func (b AABB) Center() Vec3 { return b.Min.Add(b.Max).Multiply(0.5) }

// Diagonal returns Max - Min.
func (b AABB) Diagonal() Vec3 { return b.Max.Subtract(b.Min) }

// SurfaceArea returns 2*(dx*dy + dx*dz + dy*dz); zero for an empty box.
func (b AABB) SurfaceArea() float64 {
	d := b.Diagonal()
	if d.X < 0 || d.Y < 0 || d.Z < 0 {
		return 0
	}
	return 2.0 * (d.X*d.Y + d.X*d.Z + d.Y*d.Z)
}

// LongestAxis returns the index (0=X, 1=Y, 2=Z) of the largest diagonal
// component.
func (b AABB) LongestAxis() int {
	d := b.Diagonal()
	if d.X > d.Y && d.X > d.Z {
		return 0
	}
	if d.Y > d.Z {
		return 1
	}
	return 2
}

// Axis returns the component of v along the given axis (0=X,1=Y,2=Z).
func Axis(v Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Offset returns p expressed as a fraction of this box's extent on each
// axis: (0,0,0) at Min, (1,1,1) at Max. On an axis where the box has no
// extent the component is p-Min undivided (0 for a point inside the box).
func (b AABB) Offset(p Vec3) Vec3 {
	o := p.Subtract(b.Min)
	d := b.Diagonal()
	if d.X > 0 {
		o.X /= d.X
	}
	if d.Y > 0 {
		o.Y /= d.Y
	}
	if d.Z > 0 {
		o.Z /= d.Z
	}
	return o
}

// Equals compares two AABBs within Vec3's tolerance.
func (b AABB) Equals(o AABB) bool { return b.Min.Equals(o.Min) && b.Max.Equals(o.Max) }

// Valid reports whether Min <= Max componentwise, i.e. the box is
// non-empty (or a single point).
func (b AABB) Valid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// Hit performs the slab test against the given ray, tightening a running
// copy of tInterval. It returns false the instant the running interval
// becomes empty. An axis on which the ray direction is exactly 0 is
// dispatched explicitly instead of through invDir arithmetic, so no NaN
// can arise: the ray is rejected if its origin lies outside that slab and
// otherwise the axis places no limit on t (a flat box hit tangentially is
// accepted).
func (b AABB) Hit(ray Ray, tInterval Interval) bool {
	t0, t1 := tInterval.Min, tInterval.Max

	for axis := 0; axis < 3; axis++ {
		dir := Axis(ray.Direction, axis)
		o := Axis(ray.Origin, axis)
		lo, hi := Axis(b.Min, axis), Axis(b.Max, axis)

		var near, far float64
		if dir == 0 {
			// Ray exactly parallel to this slab: avoid 0*Inf=NaN by
			// dispatching on whether the origin lies within the slab
			// directly, rather than through invDir arithmetic.
			if o < lo || o > hi {
				return false
			}
			near, far = math.Inf(-1), math.Inf(1)
		} else {
			invDir := 1.0 / dir
			near = (lo - o) * invDir
			far = (hi - o) * invDir
			if invDir < 0 {
				near, far = far, near
			}
		}

		if near > t0 {
			t0 = near
		}
		if far < t1 {
			t1 = far
		}
		if t0 > t1 {
			return false
		}
	}
	return true
}
