package loaders

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowanvale/luxcore/pkg/core"
	"github.com/rowanvale/luxcore/pkg/material"
	"github.com/rowanvale/luxcore/pkg/texture"
)

// memoryLoader is a minimal in-memory AssetLoader used only to prove the
// contract is satisfiable and that BuildMesh wires correctly into it; it
// is test scaffolding, not a real scene file format decoder.
type memoryLoader struct {
	meshes map[string]MeshData
}

func (m memoryLoader) LoadMesh(name string) (MeshData, error) {
	data, ok := m.meshes[name]
	if !ok {
		return MeshData{}, fmt.Errorf("unknown mesh %q", name)
	}
	return data, nil
}

func (m memoryLoader) LoadMaterial(name string) (material.Material, error) {
	return material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5)), nil
}

func (m memoryLoader) LoadTexture(name string) (int, int, texture.RowSource, error) {
	rows := func(row int) []core.Vec3 {
		return []core.Vec3{core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1)}
	}
	return 2, 1, rows, nil
}

var _ AssetLoader = memoryLoader{}

func TestMemoryLoader_SatisfiesAssetLoader(t *testing.T) {
	loader := memoryLoader{meshes: map[string]MeshData{
		"triangle": {
			Vertices: []core.Vec3{
				core.NewVec3(0, 0, 0),
				core.NewVec3(1, 0, 0),
				core.NewVec3(0, 1, 0),
			},
			Indices: []int{0, 1, 2},
		},
	}}

	data, err := loader.LoadMesh("triangle")
	require.NoError(t, err)
	assert.Len(t, data.Vertices, 3)

	mat, err := loader.LoadMaterial("anything")
	require.NoError(t, err)
	assert.Equal(t, material.Diffuse, mat.Kind)

	w, h, rows, err := loader.LoadTexture("anything")
	require.NoError(t, err)
	assert.Equal(t, 2, w)
	assert.Equal(t, 1, h)
	assert.Len(t, rows(0), 2)
}

func TestLoadMesh_UnknownNameReturnsError(t *testing.T) {
	loader := memoryLoader{meshes: map[string]MeshData{}}
	_, err := loader.LoadMesh("missing")
	assert.Error(t, err)
}

func TestBuildMesh_ProducesTriangleMeshFromLoaderData(t *testing.T) {
	data := MeshData{
		Vertices: []core.Vec3{
			core.NewVec3(0, 0, 0),
			core.NewVec3(1, 0, 0),
			core.NewVec3(0, 1, 0),
		},
		Indices: []int{0, 1, 2},
	}

	mesh := BuildMesh(data, 3)
	assert.Equal(t, 1, mesh.NumTriangles())
	assert.Equal(t, 3, mesh.MaterialIndex)
}
