// Package texture implements the Texture abstraction referenced by
// Material's optional albedo/metallic-roughness texture indices. Actual
// image decoding is an external collaborator's job per spec §1/§6; this
// package only evaluates already-decoded texel data.
package texture

import (
	"github.com/rowanvale/luxcore/pkg/core"
	lru "github.com/hashicorp/golang-lru"
)

// Texture evaluates a color (or packed scalar channels, for
// metallic-roughness textures) at a surface parameterization.
type Texture interface {
	Sample(u, v float64) core.Vec3
}

// Constant is a texture that always returns the same value; the common
// case for materials without an assigned texture index.
type Constant struct {
	Color core.Vec3
}

// NewConstant creates a constant-color texture.
func NewConstant(c core.Vec3) Constant { return Constant{Color: c} }

// Sample implements Texture.
func (c Constant) Sample(u, v float64) core.Vec3 { return c.Color }

// RowSource supplies one decoded row of texels on demand; the concrete
// decoder (PNG/EXR/etc.) lives outside this package's scope.
type RowSource func(row int) []core.Vec3

const defaultRowCacheSize = 64

// Image is a texture backed by a row-addressable decoded image. Rows are
// fetched lazily through RowSource and kept in a bounded LRU so repeated
// texel lookups during a render pass (many rays land in the same
// region) don't repeatedly re-decode or re-copy a row that's still hot,
// while memory stays bounded for textures too large to keep fully
// resident.
type Image struct {
	Width, Height int
	rows          RowSource
	cache         *lru.Cache
}

// NewImage creates an image texture of the given dimensions, fetching
// rows through rows as needed. cacheRows bounds how many decoded rows
// are kept resident at once; <=0 uses a sensible default.
func NewImage(width, height int, rows RowSource, cacheRows int) *Image {
	if cacheRows <= 0 {
		cacheRows = defaultRowCacheSize
	}
	c, _ := lru.New(cacheRows)
	return &Image{Width: width, Height: height, rows: rows, cache: c}
}

func (im *Image) row(y int) []core.Vec3 {
	if v, ok := im.cache.Get(y); ok {
		return v.([]core.Vec3)
	}
	r := im.rows(y)
	im.cache.Add(y, r)
	return r
}

// Sample performs bilinear filtering of (u,v), wrapping u and clamping v
// the way equirectangular environment maps and UV-mapped albedo textures
// conventionally do.
func (im *Image) Sample(u, v float64) core.Vec3 {
	if im.Width <= 0 || im.Height <= 0 {
		return core.Vec3{}
	}

	fx := wrap01(u) * float64(im.Width)
	fy := clamp01(1-v) * float64(im.Height)

	x0 := int(fx) % im.Width
	y0 := clampInt(int(fy), 0, im.Height-1)
	x1 := (x0 + 1) % im.Width
	y1 := clampInt(y0+1, 0, im.Height-1)

	tx := fx - float64(int(fx))
	ty := fy - float64(int(fy))

	row0 := im.row(y0)
	row1 := im.row(y1)

	c00 := texel(row0, x0)
	c10 := texel(row0, x1)
	c01 := texel(row1, x0)
	c11 := texel(row1, x1)

	top := core.Lerp(c00, c10, tx)
	bottom := core.Lerp(c01, c11, tx)
	return core.Lerp(top, bottom, ty)
}

func texel(row []core.Vec3, x int) core.Vec3 {
	if x < 0 || x >= len(row) {
		return core.Vec3{}
	}
	return row[x]
}

func wrap01(x float64) float64 {
	x -= float64(int(x))
	if x < 0 {
		x += 1
	}
	return x
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
