// Package scene owns the contiguous arrays of geometry, materials, and
// lights that make up a renderable world, and the BVH built over them.
// Hits carry indices into these arrays, never pointers (spec §9).
package scene

import (
	"fmt"

	"github.com/rowanvale/luxcore/pkg/accel"
	"github.com/rowanvale/luxcore/pkg/core"
	"github.com/rowanvale/luxcore/pkg/geometry"
	"github.com/rowanvale/luxcore/pkg/lights"
	"github.com/rowanvale/luxcore/pkg/material"
	"github.com/rowanvale/luxcore/pkg/texture"
)

// DefaultMaxPrimsInLeaf bounds SAH leaf size when a caller doesn't pick
// one explicitly.
const DefaultMaxPrimsInLeaf = 4

// Scene holds the topology of a renderable world. An external asset
// loader populates Meshes, Spheres, Materials, Textures, and Lights
// before calling Build; nothing in this package decodes files.
type Scene struct {
	Meshes    []*geometry.TriangleMesh
	Spheres   []geometry.Sphere
	Materials []material.Material
	Textures  []texture.Texture
	Lights    []lights.Light

	LightSampler *lights.Sampler

	bvh        *accel.BVH
	primitives []accel.Primitive
}

// AddMaterial appends a material and returns its index.
func (s *Scene) AddMaterial(m material.Material) int {
	s.Materials = append(s.Materials, m)
	return len(s.Materials) - 1
}

// AddTexture appends a texture and returns its index.
func (s *Scene) AddTexture(t texture.Texture) int {
	s.Textures = append(s.Textures, t)
	return len(s.Textures) - 1
}

// AddSphere appends a sphere.
func (s *Scene) AddSphere(sphere geometry.Sphere) {
	s.Spheres = append(s.Spheres, sphere)
}

// AddMesh appends a triangle mesh.
func (s *Scene) AddMesh(mesh *geometry.TriangleMesh) {
	s.Meshes = append(s.Meshes, mesh)
}

// AddLight appends a light.
func (s *Scene) AddLight(l lights.Light) {
	s.Lights = append(s.Lights, l)
}

// Build flattens every sphere and mesh triangle into a single primitive
// list and constructs the BVH over it (spec §6 op 1). It must be called
// after topology changes and before any closestHit/anyHit query;
// precondition: every primitive has a valid (non-empty, non-NaN) bound.
func (s *Scene) Build(maxPrimsInLeaf int) error {
	if maxPrimsInLeaf <= 0 {
		maxPrimsInLeaf = DefaultMaxPrimsInLeaf
	}

	var primitives []accel.Primitive
	for i := range s.Spheres {
		primitives = append(primitives, s.Spheres[i])
	}
	for _, mesh := range s.Meshes {
		primitives = append(primitives, mesh.Triangles()...)
	}

	for i, p := range primitives {
		b := p.Bounds()
		if !b.Valid() || b.Min.HasNaN() || b.Max.HasNaN() {
			return fmt.Errorf("scene: primitive %d has an invalid bound", i)
		}
	}

	s.primitives = primitives
	s.bvh = accel.Build(primitives, maxPrimsInLeaf)
	s.LightSampler = lights.NewSampler(s.Lights)
	return nil
}

// ClosestHit finds the nearest intersection along ray within tInterval
// (spec §6 op 2).
func (s *Scene) ClosestHit(ray core.Ray, tInterval core.Interval) (core.HitRecord, bool) {
	if s.bvh == nil {
		return core.HitRecord{}, false
	}
	return s.bvh.ClosestHit(ray, tInterval)
}

// AnyHit reports whether any primitive occludes ray within tInterval
// (spec §6 op 3).
func (s *Scene) AnyHit(ray core.Ray, tInterval core.Interval) bool {
	if s.bvh == nil {
		return false
	}
	return s.bvh.AnyHit(ray, tInterval)
}

// Bounds returns the world-space bounds of the whole scene, valid only
// after Build.
func (s *Scene) Bounds() core.AABB {
	if s.bvh == nil {
		return core.EmptyAABB()
	}
	return s.bvh.Bounds()
}

// Material looks up a material by its scene-array index.
func (s *Scene) Material(index int) material.Material {
	return s.Materials[index]
}

// EnvironmentEmission sums the Emit contribution of every Infinite light
// for an escaping ray (spec §4.8 step 1: "add β·Σ_env radiance").
func (s *Scene) EnvironmentEmission(dir core.Vec3) core.Vec3 {
	var sum core.Vec3
	for _, l := range s.Lights {
		if l.Kind == lights.Infinite {
			sum = sum.Add(l.Emit(dir))
		}
	}
	return sum
}
