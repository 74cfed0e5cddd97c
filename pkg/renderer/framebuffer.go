package renderer

import "github.com/rowanvale/luxcore/pkg/core"

// Framebuffer is the accumulation buffer: a sum of per-sample radiance
// contributions per pixel, plus a running sample count so the displayed
// image is always sum/count (spec §3, §5). Divided by count, not
// recomputed from scratch, so a render can be observed mid-progress.
type Framebuffer struct {
	Width, Height int
	sums          []core.Vec3
	counts        []int32
}

// NewFramebuffer allocates a zeroed framebuffer of the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		sums:   make([]core.Vec3, width*height),
		counts: make([]int32, width*height),
	}
}

func (f *Framebuffer) index(x, y int) int { return y*f.Width + x }

// Add accumulates one sample's contribution into pixel (x, y). Callers
// are responsible for ensuring no two workers ever target the same pixel
// concurrently (tiles are disjoint, spec §5).
func (f *Framebuffer) Add(x, y int, radiance core.Vec3) {
	i := f.index(x, y)
	f.sums[i] = f.sums[i].Add(radiance)
	f.counts[i]++
}

// At returns the averaged radiance at pixel (x, y): sum / max(count, 1).
func (f *Framebuffer) At(x, y int) core.Vec3 {
	i := f.index(x, y)
	n := f.counts[i]
	if n == 0 {
		return core.Vec3{}
	}
	return f.sums[i].Multiply(1.0 / float64(n))
}

// Clear zeroes the buffer in place, used between renders (spec §5:
// "buffer is cleared before the next render starts").
func (f *Framebuffer) Clear() {
	for i := range f.sums {
		f.sums[i] = core.Vec3{}
		f.counts[i] = 0
	}
}

// SampleCount returns the accumulated sample count at pixel (x, y).
func (f *Framebuffer) SampleCount(x, y int) int32 {
	return f.counts[f.index(x, y)]
}

const gamma = 2.0

// ToSRGB8 renders the current averaged buffer to 8-bit sRGB-encoded RGB
// bytes, gamma 2.0, row-major, clamped to [0, 0.999] before quantization
// (spec §6 op 7).
func (f *Framebuffer) ToSRGB8() []byte {
	out := make([]byte, f.Width*f.Height*3)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := f.At(x, y).GammaCorrect(gamma).Clamp(0, 0.999)
			i := (y*f.Width + x) * 3
			out[i] = byte(c.X * 256)
			out[i+1] = byte(c.Y * 256)
			out[i+2] = byte(c.Z * 256)
		}
	}
	return out
}
