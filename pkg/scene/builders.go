package scene

import (
	"github.com/rowanvale/luxcore/pkg/core"
	"github.com/rowanvale/luxcore/pkg/geometry"
	"github.com/rowanvale/luxcore/pkg/lights"
	"github.com/rowanvale/luxcore/pkg/material"
)

// NewDefaultScene builds a small sanity-check world: a diffuse sphere
// resting on a diffuse ground sphere, lit by a sky-gradient environment.
// Useful as a smoke test for the render driver without an external asset
// loader.
func NewDefaultScene() *Scene {
	s := &Scene{}

	groundMat := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5)))
	centerMat := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.7, 0.3, 0.3)))

	s.AddSphere(geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, groundMat))
	s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, centerMat))

	s.AddLight(lights.NewGradientInfiniteLight(
		core.NewVec3(0.5, 0.7, 1.0),
		core.NewVec3(1.0, 1.0, 1.0),
	))

	return s
}

// NewCornellBoxScene builds the classic Cornell box: five diffuse walls
// (red/green/white) and a white diffuse sphere, lit by a
// single area-ish overhead point light. Dimensions follow the standard
// 555-unit box.
func NewCornellBoxScene() *Scene {
	s := &Scene{}

	white := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73)))
	red := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.65, 0.05, 0.05)))
	green := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.12, 0.45, 0.15)))

	const box = 555.0

	addQuad := func(corner, u, v core.Vec3, mat int) {
		positions := []core.Vec3{corner, corner.Add(u), corner.Add(u).Add(v), corner.Add(v)}
		indices := []int{0, 1, 2, 0, 2, 3}
		s.AddMesh(geometry.NewTriangleMesh(positions, nil, nil, indices, geometry.Identity(), mat))
	}

	// Floor.
	addQuad(core.NewVec3(0, 0, 0), core.NewVec3(box, 0, 0), core.NewVec3(0, 0, box), white)
	// Ceiling.
	addQuad(core.NewVec3(0, box, 0), core.NewVec3(box, 0, 0), core.NewVec3(0, 0, box), white)
	// Back wall.
	addQuad(core.NewVec3(0, 0, box), core.NewVec3(box, 0, 0), core.NewVec3(0, box, 0), white)
	// Left wall (red).
	addQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, box), core.NewVec3(0, box, 0), red)
	// Right wall (green).
	addQuad(core.NewVec3(box, 0, 0), core.NewVec3(0, 0, box), core.NewVec3(0, box, 0), green)

	sphereMat := s.AddMaterial(material.NewDiffuse(core.NewVec3(0.9, 0.9, 0.9)))
	s.AddSphere(geometry.NewSphere(core.NewVec3(180, 90, 170), 90, sphereMat))

	s.AddLight(lights.NewPointLight(core.NewVec3(278, 548, 279.5), core.NewVec3(1, 1, 1), 5_000_000))

	return s
}
