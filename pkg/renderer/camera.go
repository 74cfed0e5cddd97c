// Package renderer implements the camera model and the tiled parallel
// render driver (spec §4.9, §4.10): job queue, pass barrier, accumulation
// buffer, and the Static/Dynamic worker flavors.
package renderer

import (
	"math"

	"github.com/rowanvale/luxcore/pkg/core"
)

// Camera is a perspective camera with optional depth of field, generalizing
// the renderer's simple lower-left-corner viewport construction (grounded
// in the teacher's Camera) to vertical FOV, focus distance, and a
// defocus disk (spec §4.10).
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // camera basis: u=right, v=up, w=back
	defocusRadius   float64
	xPixelSamples   int
	yPixelSamples   int
}

// Config describes the parameters used to build a Camera.
type Config struct {
	LookFrom      core.Vec3
	LookAt        core.Vec3
	Up            core.Vec3
	VFov          float64 // vertical field of view, degrees
	AspectRatio   float64
	FocusDistance float64 // 0 = auto (distance to LookAt)
	DefocusAngle  float64 // degrees; 0 disables depth of field
	XPixelSamples int     // stratification grid for getRay; 0 defaults to 1
	YPixelSamples int
}

// NewCamera builds a Camera from Config.
func NewCamera(cfg Config) *Camera {
	focusDist := cfg.FocusDistance
	if focusDist <= 0 {
		focusDist = cfg.LookFrom.Subtract(cfg.LookAt).Length()
		if focusDist == 0 {
			focusDist = 1
		}
	}

	theta := cfg.VFov * math.Pi / 180
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * focusDist
	viewportWidth := viewportHeight * cfg.AspectRatio

	w := cfg.LookFrom.Subtract(cfg.LookAt).Normalize()
	up := cfg.Up
	if up.IsZero() {
		up = core.NewVec3(0, 1, 0)
	}
	u := up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeftCorner := cfg.LookFrom.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDist))

	defocusRadius := focusDist * math.Tan(cfg.DefocusAngle/2*math.Pi/180)

	xs, ys := cfg.XPixelSamples, cfg.YPixelSamples
	if xs <= 0 {
		xs = 1
	}
	if ys <= 0 {
		ys = 1
	}

	return &Camera{
		origin:          cfg.LookFrom,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		defocusRadius:   defocusRadius,
		xPixelSamples:   xs,
		yPixelSamples:   ys,
	}
}

// GetRay strata pixel (col, row) of a width x height image into
// xPixelSamples*yPixelSamples cells, jitters a sample within the cell
// identified by stratum (0-based, row-major within the grid), and
// returns the origin-to-sample ray, sampling the defocus disk for the
// origin when depth of field is enabled.
func (c *Camera) GetRay(col, row, width, height, stratum int, rng *core.RNG) core.Ray {
	cellsX, cellsY := c.xPixelSamples, c.yPixelSamples
	cellX := stratum % cellsX
	cellY := (stratum / cellsX) % cellsY

	jx, jy := rng.Uniform01(), rng.Uniform01()
	px := float64(col) + (float64(cellX)+jx)/float64(cellsX)
	py := float64(row) + (float64(cellY)+jy)/float64(cellsY)

	s := px / float64(width)
	t := py / float64(height)

	origin := c.origin
	if c.defocusRadius > 0 {
		d := core.SampleUniformDiskConcentric(rng.Vec2()).Multiply(c.defocusRadius)
		origin = origin.Add(c.u.Multiply(d.X)).Add(c.v.Multiply(d.Y))
	}

	target := c.lowerLeftCorner.Add(c.horizontal.Multiply(s)).Add(c.vertical.Multiply(t))
	return core.NewRay(origin, target.Subtract(origin))
}

// SamplesPerPixel returns the stratification grid cell count
// (xPixelSamples * yPixelSamples), the number of distinct strata GetRay
// accepts.
func (c *Camera) SamplesPerPixel() int {
	return c.xPixelSamples * c.yPixelSamples
}
