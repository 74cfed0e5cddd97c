package imageio

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/rowanvale/luxcore/pkg/renderer"
)

// Preview downsamples a framebuffer to roughly 1/scale its linear
// resolution using a real box/bilinear scaler (golang.org/x/image/draw)
// instead of a hand-rolled nearest-neighbor loop, so a live render can push
// a cheap low-resolution frame to a viewer during progressive passes.
func Preview(fb *renderer.Framebuffer, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	src := ToImage(fb)
	if scale == 1 {
		return src
	}

	dstW := maxInt(src.Bounds().Dx()/scale, 1)
	dstH := maxInt(src.Bounds().Dy()/scale, 1)
	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))

	// BiLinear acts as a reasonable box filter for downscaling and avoids
	// the aliasing a nearest-neighbor resize would introduce.
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Resize scales src to exactly width x height, used when the output
// resolution changes mid-session while a preview is already active.
func Resize(src image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
