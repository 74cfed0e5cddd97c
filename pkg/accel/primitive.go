// Package accel implements the BVH accelerator: SAH bucket building,
// pre-order flattening into a linear node array, and fixed-depth-stack
// traversal for closest-hit and any-hit queries. It depends only on
// pkg/core; geometry and materials are reached through the Primitive
// interface, never imported directly, so the accelerator stays agnostic
// to what it's bounding.
package accel

import "github.com/rowanvale/luxcore/pkg/core"

// Primitive is anything the BVH can bound and intersect: a single
// sphere, a single mesh triangle, or (in principle) any other leaf
// geometry. Indexing, not pointer identity, is how hits report which
// primitive they came from (HitRecord.PrimitiveIndex).
type Primitive interface {
	Bounds() core.AABB
	Intersect(ray core.Ray, tInterval core.Interval) (core.HitRecord, bool)
	IntersectP(ray core.Ray, tInterval core.Interval) bool
}

// primitiveInfo is the build-time record of one primitive's bounds and
// centroid, computed once up front so the builder never calls back into
// Bounds() during recursion.
type primitiveInfo struct {
	index    int
	bounds   core.AABB
	centroid core.Vec3
}

func newPrimitiveInfo(index int, b core.AABB) primitiveInfo {
	return primitiveInfo{index: index, bounds: b, centroid: b.Center()}
}
