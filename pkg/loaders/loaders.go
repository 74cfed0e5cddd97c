// Package loaders names the external-collaborator contract for scene
// asset loading. spec.md places mesh/material/texture decoding outside the
// rendering core's scope; this package defines the interface the render
// driver expects such a collaborator to satisfy without implementing a
// parser itself, the way the teacher's pkg/loaders decodes PBRT/PLY/image
// files but hands the result to pkg/scene through plain Go values.
package loaders

import (
	"github.com/rowanvale/luxcore/pkg/core"
	"github.com/rowanvale/luxcore/pkg/geometry"
	"github.com/rowanvale/luxcore/pkg/material"
	"github.com/rowanvale/luxcore/pkg/texture"
)

// MeshData is the intermediate, loader-agnostic shape a mesh decoder hands
// back before it becomes a geometry.TriangleMesh.
type MeshData struct {
	Vertices []core.Vec3
	Normals  []core.Vec3
	UVs      []core.Vec2
	Indices  []int // triangles of 3 consecutive indices each
}

// AssetLoader is the contract a scene file format decoder must satisfy.
// Nothing in this package implements it; PBRT/PLY/image decoding is
// explicitly out of scope (spec §1, "scene file loading... treated as
// external collaborators with named interfaces only"). A concrete loader
// lives outside this module and is wired in by whatever constructs a
// scene.Scene from a file.
type AssetLoader interface {
	// LoadMesh decodes a mesh asset identified by name into loader-neutral
	// vertex/index data.
	LoadMesh(name string) (MeshData, error)

	// LoadMaterial decodes a material definition by name.
	LoadMaterial(name string) (material.Material, error)

	// LoadTexture decodes an image asset by name into a texture.RowSource
	// plus its pixel dimensions, ready for texture.NewImage.
	LoadTexture(name string) (width, height int, rows texture.RowSource, err error)
}

// BuildMesh converts loader-neutral MeshData into a geometry.TriangleMesh
// under an identity transform, the shared step every AssetLoader
// implementation's caller needs regardless of source format. Callers that
// need to place the mesh in world space should transform data.Vertices
// (and data.Normals) before calling this, or use geometry.NewTriangleMesh
// directly with a non-identity Transform.
func BuildMesh(data MeshData, materialIndex int) *geometry.TriangleMesh {
	return geometry.NewTriangleMesh(data.Vertices, data.Normals, data.UVs, data.Indices, geometry.Identity(), materialIndex)
}
