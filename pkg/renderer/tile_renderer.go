package renderer

import (
	"context"
	"image"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/integrator"
	"github.com/df07/go-lighttransport/pkg/scene"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier, also the sampler seed offset
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// Sampler returns the tile's own random stream. Seeding by tile rather than
// by worker keeps the image identical for any number of workers.
func (t *Tile) Sampler(seed int64) *core.RandomSampler {
	return core.NewSeededSampler(seed + int64(t.ID))
}

// NewTileGrid creates a grid of tiles covering the entire image, in row-major order
func NewTileGrid(width, height, tileSize int) []*Tile {
	if tileSize <= 0 {
		tileSize = max(width, height)
	}

	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	width      int
	height     int
	samples    int
	maxDepth   int
}

// NewTileRenderer creates a tile renderer for an image of the given size
func NewTileRenderer(s *scene.Scene, integratorInst integrator.Integrator, width, height, samples, maxDepth int) *TileRenderer {
	return &TileRenderer{
		scene:      s,
		integrator: integratorInst,
		width:      width,
		height:     height,
		samples:    samples,
		maxDepth:   maxDepth,
	}
}

// RenderTileBounds samples every pixel within bounds into pixelStats and returns
// the number of samples taken. The context is checked once per row; a cancelled
// tile is left partially rendered.
func (tr *TileRenderer) RenderTileBounds(ctx context.Context, bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler) (int, error) {
	samplesTaken := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return samplesTaken, err
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			samplesTaken += tr.samplePixel(x, y, &pixelStats[y][x], sampler)
		}
	}

	return samplesTaken, nil
}

// samplePixel traces the configured number of jittered rays through pixel (x, y).
// Image row 0 is the top of the frame, so t runs from the bottom row upwards.
func (tr *TileRenderer) samplePixel(x, y int, ps *PixelStats, sampler core.Sampler) int {
	camera := tr.scene.Camera
	row := tr.height - 1 - y

	for sample := 0; sample < tr.samples; sample++ {
		jitter := sampler.Get2D()
		s := (float64(x) + jitter.X) / float64(tr.width)
		t := (float64(row) + jitter.Y) / float64(tr.height)

		ray := camera.GetRay(s, t, sampler)
		ps.AddSample(tr.integrator.RayColor(ray, tr.scene, sampler, tr.maxDepth))
	}

	return tr.samples
}
