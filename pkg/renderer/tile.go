package renderer

// TileSize is the fixed tile dimension the job queue partitions the image
// into, row-major (spec §4.9).
const TileSize = 32

// Tile is a rectangular, disjoint slice of the image; tiles never
// overlap, which is what makes concurrent framebuffer writes safe
// without per-pixel locking (spec §5).
type Tile struct {
	X0, Y0, X1, Y1 int // half-open: [X0,X1) x [Y0,Y1)
}

// BuildTileQueue partitions a width x height image into row-major
// TileSize x TileSize tiles (the last row/column may be smaller).
func BuildTileQueue(width, height int) []Tile {
	var tiles []Tile
	for y0 := 0; y0 < height; y0 += TileSize {
		y1 := y0 + TileSize
		if y1 > height {
			y1 = height
		}
		for x0 := 0; x0 < width; x0 += TileSize {
			x1 := x0 + TileSize
			if x1 > width {
				x1 = width
			}
			tiles = append(tiles, Tile{X0: x0, Y0: y0, X1: x1, Y1: y1})
		}
	}
	return tiles
}
