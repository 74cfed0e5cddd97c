package config

import (
	"github.com/rowanvale/luxcore/pkg/core"
	"github.com/rowanvale/luxcore/pkg/integrator"
	"github.com/rowanvale/luxcore/pkg/renderer"
)

// IntegratorConfig converts the TOML render section into an
// integrator.Config, the shape integrator.Li actually consumes.
func (c Config) IntegratorConfig() integrator.Config {
	return integrator.Config{
		MaxDepth:                  c.Render.MaxDepth,
		RussianRouletteMinBounces: c.Render.RRMinBounces,
		ClampRadiance:             c.Render.ClampRadiance,
	}
}

// CameraConfig converts the TOML camera section into a renderer.Config.
func (c Config) CameraConfig() renderer.Config {
	return renderer.Config{
		LookFrom:      vec3(c.Camera.LookFrom),
		LookAt:        vec3(c.Camera.LookAt),
		Up:            vec3(c.Camera.Up),
		VFov:          c.Camera.VFov,
		AspectRatio:   c.Camera.AspectRatio,
		FocusDistance: c.Camera.FocusDistance,
		DefocusAngle:  c.Camera.DefocusAngle,
		XPixelSamples: c.Camera.XPixelSamples,
		YPixelSamples: c.Camera.YPixelSamples,
	}
}

func vec3(a [3]float64) core.Vec3 { return core.NewVec3(a[0], a[1], a[2]) }
