package renderer

import (
	"github.com/rowanvale/luxcore/pkg/core"
	"github.com/rowanvale/luxcore/pkg/integrator"
	"github.com/rowanvale/luxcore/pkg/scene"
)

// Stats reports progress after a render pass completes.
type Stats struct {
	SamplesCompleted int
	TilesRendered    int
}

// renderTile runs the path integrator over every pixel of tile for
// sample indices [passStart, passEnd), writing into fb. One goroutine per
// tile assignment, never two at once, per spec §5's disjoint-tile
// discipline.
func renderTile(tile Tile, passStart, passEnd int, width, height int, s *scene.Scene, cam *Camera, fb *Framebuffer, cfg integrator.Config) {
	for sampleIndex := passStart; sampleIndex < passEnd; sampleIndex++ {
		for y := tile.Y0; y < tile.Y1; y++ {
			for x := tile.X0; x < tile.X1; x++ {
				sampler := core.NewStratifiedSampler(x, y, sampleIndex, cam.xPixelSamples, cam.yPixelSamples, true)

				stratum := sampleIndex % cam.SamplesPerPixel()
				ray := cam.GetRay(x, y, width, height, stratum, sampler.Rng())

				radiance := integrator.Li(ray, s, sampler, cfg)
				fb.Add(x, y, radiance)
			}
		}
	}
}
