package imageio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowanvale/luxcore/pkg/core"
	"github.com/rowanvale/luxcore/pkg/renderer"
)

func TestToImage_RowFlipsBottomToTop(t *testing.T) {
	fb := renderer.NewFramebuffer(2, 2)
	// Row 0 (bottom in memory) is bright red; row 1 (top in memory) is dark.
	fb.Add(0, 0, core.NewVec3(1, 0, 0))
	fb.Add(1, 0, core.NewVec3(1, 0, 0))
	fb.Add(0, 1, core.NewVec3(0, 0, 0))
	fb.Add(1, 1, core.NewVec3(0, 0, 0))

	img := ToImage(fb)

	// File row 0 (top of the PNG) must show the memory-row-1 (dark) pixel.
	topPixel := img.RGBAAt(0, 0)
	bottomPixel := img.RGBAAt(0, 1)

	assert.Less(t, topPixel.R, bottomPixel.R)
}

func TestWritePNG_ProducesReadableFile(t *testing.T) {
	fb := renderer.NewFramebuffer(4, 4)
	fb.Add(2, 2, core.NewVec3(0.5, 0.5, 0.5))

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, WritePNG(path, fb))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPreview_HalvesDimensions(t *testing.T) {
	fb := renderer.NewFramebuffer(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			fb.Add(x, y, core.NewVec3(0.3, 0.3, 0.3))
		}
	}

	preview := Preview(fb, 2)
	assert.Equal(t, 4, preview.Bounds().Dx())
	assert.Equal(t, 4, preview.Bounds().Dy())
}

func TestPreview_ScaleOneReturnsFullResolution(t *testing.T) {
	fb := renderer.NewFramebuffer(5, 3)
	preview := Preview(fb, 1)
	assert.Equal(t, 5, preview.Bounds().Dx())
	assert.Equal(t, 3, preview.Bounds().Dy())
}

func TestResize_ProducesRequestedDimensions(t *testing.T) {
	fb := renderer.NewFramebuffer(4, 4)
	img := ToImage(fb)

	resized := Resize(img, 10, 6)
	assert.Equal(t, 10, resized.Bounds().Dx())
	assert.Equal(t, 6, resized.Bounds().Dy())
}
