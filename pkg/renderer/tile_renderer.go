package renderer

import (
	"image"

	"github.com/df07/go-distribution-raytracer/pkg/core"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1) in view-plane indices
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{ID: id, Bounds: bounds}
}

// Sampler returns the tile's own generator. The same seed and tile ID always
// yield the same sequence, whichever worker renders the tile.
func (t *Tile) Sampler(seed int64) *core.Sampler {
	return core.NewSeededSampler(seed*7919 + int64(t.ID) + 1)
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}

// TileRenderer renders individual tiles into a shared row-major buffer
type TileRenderer struct {
	tracer Tracer
	camera *Camera
	vp     ViewPlane
}

// NewTileRenderer creates a new tile renderer
func NewTileRenderer(tracer Tracer, camera *Camera, vp ViewPlane) *TileRenderer {
	return &TileRenderer{tracer: tracer, camera: camera, vp: vp}
}

// RenderTile fills the tile's pixels in buf (index i + j·HRes) and returns
// the number of primary rays cast. Tiles never overlap, so concurrent calls
// on distinct tiles are safe.
func (tr *TileRenderer) RenderTile(tile *Tile, buf []core.Vec3, sampler *core.Sampler) int {
	rays := 0
	perPixel := tr.camera.SamplesSqrt * tr.camera.SamplesSqrt

	for j := tile.Bounds.Min.Y; j < tile.Bounds.Max.Y; j++ {
		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			x, y := tr.vp.PixelOrigin(i, j)
			buf[i+j*tr.vp.HRes] = tr.camera.RenderPixel(tr.tracer, x, y, tr.vp.PixelSize, sampler)
			rays += perPixel
		}
	}
	return rays
}
