// Package imageio turns a renderer.Framebuffer into on-disk PNG output and
// lower-resolution preview images, the two image-facing concerns spec.md
// names as external to the rendering core but still exercised here to give
// the driver somewhere to write its results.
package imageio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/rowanvale/luxcore/pkg/renderer"
)

// ToImage converts fb into a standard image.RGBA, row-flipping so that
// framebuffer row 0 (the bottom of the image in memory, per spec §6) ends
// up as the last row of the image, i.e. the bottom of the file, and the
// framebuffer's last row becomes file row 0 (the top).
func ToImage(fb *renderer.Framebuffer) *image.RGBA {
	bytes := fb.ToSRGB8()
	width, height := fb.Width, fb.Height

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		srcRow := height - 1 - y
		for x := 0; x < width; x++ {
			srcIdx := (srcRow*width + x) * 3
			img.Set(x, y, color.RGBA{
				R: bytes[srcIdx],
				G: bytes[srcIdx+1],
				B: bytes[srcIdx+2],
				A: 255,
			})
		}
	}
	return img
}

// WritePNG encodes fb as a row-flipped PNG at path (spec §6: "written
// row-flipped so image row 0 is the bottom of the image in memory but the
// top in the file").
func WritePNG(path string, fb *renderer.Framebuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, ToImage(fb)); err != nil {
		return fmt.Errorf("imageio: encode %s: %w", path, err)
	}
	return nil
}
