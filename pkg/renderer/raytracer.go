package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/integrator"
	"github.com/df07/go-lighttransport/pkg/log"
	"github.com/df07/go-lighttransport/pkg/scene"
)

// ErrInterrupted is returned when a render is cancelled before every tile finished
var ErrInterrupted = errors.New("renderer: render interrupted")

// DefaultTileSize is the edge length of a render tile in pixels
const DefaultTileSize = 32

var logger = log.New("renderer")

// Config contains the render settings. Zero image and sampling fields fall
// back to the scene's recommended SamplingConfig.
type Config struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	Seed            int64 // Base seed; tile i samples with seed+i
	Workers         int   // Number of goroutines, 0 for one per CPU
	TileSize        int   // Tile edge length in pixels
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Seed:     42,
		TileSize: DefaultTileSize,
	}
}

// Raytracer drives an integrator over every pixel of a scene
type Raytracer struct {
	integrator integrator.Integrator
	config     Config
}

// NewRaytracer creates a new raytracer
func NewRaytracer(integratorInst integrator.Integrator, config Config) *Raytracer {
	return &Raytracer{
		integrator: integratorInst,
		config:     config,
	}
}

// resolveConfig fills unset fields from the scene's recommendations
func (rt *Raytracer) resolveConfig(s *scene.Scene) Config {
	config := rt.config
	if config.Width <= 0 {
		config.Width = s.SamplingConfig.Width
	}
	if config.Height <= 0 {
		config.Height = s.SamplingConfig.Height
	}
	if config.SamplesPerPixel <= 0 {
		config.SamplesPerPixel = s.SamplingConfig.SamplesPerPixel
	}
	if config.MaxDepth <= 0 {
		config.MaxDepth = s.SamplingConfig.MaxDepth
	}
	if config.TileSize <= 0 {
		config.TileSize = DefaultTileSize
	}
	return config
}

// Render renders the scene tile by tile on a worker pool. When ctx is cancelled
// the partially rendered image is returned together with ErrInterrupted.
func (rt *Raytracer) Render(ctx context.Context, s *scene.Scene) (*image.RGBA, RenderStats, error) {
	config := rt.resolveConfig(s)
	if config.Width <= 0 || config.Height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("renderer: invalid image size %dx%d", config.Width, config.Height)
	}

	startTime := time.Now()
	tiles := NewTileGrid(config.Width, config.Height, config.TileSize)
	pixelStats := make([][]PixelStats, config.Height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, config.Width)
	}

	tileRenderer := NewTileRenderer(s, rt.integrator, config.Width, config.Height, config.SamplesPerPixel, config.MaxDepth)
	workerPool := NewWorkerPool(tileRenderer, config.Seed, len(tiles), config.Workers)

	stats := RenderStats{
		TotalPixels:    config.Width * config.Height,
		Tiles:          len(tiles),
		Workers:        workerPool.GetNumWorkers(),
		TilesPerWorker: make([]int, workerPool.GetNumWorkers()),
	}

	logger.Infof("Rendering %dx%d at %d spp, %d tiles on %d workers",
		config.Width, config.Height, config.SamplesPerPixel, len(tiles), stats.Workers)

	workerPool.Start(ctx)
	for _, tile := range tiles {
		workerPool.SubmitTask(TileTask{Tile: tile, PixelStats: pixelStats})
	}

	var renderErr error
	progressStep := max(1, len(tiles)/10)
	for i := 0; i < len(tiles); i++ {
		result, ok := workerPool.GetResult()
		if !ok {
			renderErr = errors.New("renderer: worker pool closed unexpectedly")
			break
		}

		stats.TotalSamples += result.Samples
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}

		stats.TilesRendered++
		stats.TilesPerWorker[result.WorkerID]++
		if stats.TilesRendered%progressStep == 0 {
			logger.Debugf("%d/%d tiles complete", stats.TilesRendered, len(tiles))
		}
	}
	workerPool.Stop()

	img := assembleImage(pixelStats, config.Width, config.Height)
	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	stats.Duration = time.Since(startTime)
	stats.MeanLuminance = averageLuminance(img)

	if renderErr != nil {
		if ctx.Err() != nil {
			logger.Warningf("Render interrupted after %d/%d tiles", stats.TilesRendered, stats.Tiles)
			return img, stats, fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
		}
		return img, stats, renderErr
	}

	logger.Infof("Render completed in %v (%.0f samples/s)", stats.Duration, stats.SamplesPerSecond())
	return img, stats, nil
}

// assembleImage converts the accumulated pixel stats into an 8-bit image
func assembleImage(pixelStats [][]PixelStats, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, vec3ToColor(pixelStats[y][x].GetColor()))
		}
	}
	return img
}

// vec3ToColor converts a linear color to RGBA with gamma 2 and clamping.
// NaN components become black.
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = core.NewVec3(nanToZero(colorVec.X), nanToZero(colorVec.Y), nanToZero(colorVec.Z))

	// Clamp before the root so negative values cannot produce NaN
	colorVec = colorVec.Clamp(0.0, 1.0)
	colorVec = colorVec.GammaCorrect(2.0)

	return color.RGBA{
		R: uint8(255.999 * colorVec.X),
		G: uint8(255.999 * colorVec.Y),
		B: uint8(255.999 * colorVec.Z),
		A: 255,
	}
}

func nanToZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
