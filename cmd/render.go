package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-lighttransport/pkg/config"
	"github.com/df07/go-lighttransport/pkg/integrator"
	"github.com/df07/go-lighttransport/pkg/output"
	"github.com/df07/go-lighttransport/pkg/renderer"
	"github.com/df07/go-lighttransport/pkg/scene"
)

func renderFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "YAML job file; flags override its values",
		},
		cli.StringFlag{
			Name:  "scene",
			Value: "cornell",
			Usage: "name of a registered scene (see the scenes command)",
		},
		cli.IntFlag{
			Name:  "width",
			Usage: "frame width, 0 for the scene default",
		},
		cli.IntFlag{
			Name:  "height",
			Usage: "frame height, 0 for the scene default",
		},
		cli.IntFlag{
			Name:  "spp",
			Usage: "samples per pixel, 0 for the scene default",
		},
		cli.IntFlag{
			Name:  "depth",
			Usage: "maximum number of bounces, 0 for the scene default",
		},
		cli.IntFlag{
			Name:  "rr-bounces",
			Usage: "bounces before russian roulette may end a path, 0 disables it",
		},
		cli.BoolFlag{
			Name:  "no-light-sampling",
			Usage: "trace diffuse bounces by material sampling only",
		},
		cli.Int64Flag{
			Name:  "seed",
			Value: 42,
			Usage: "random seed for sampling and procedural scenes",
		},
		cli.IntFlag{
			Name:  "workers",
			Usage: "number of render goroutines, 0 for one per CPU",
		},
		cli.IntFlag{
			Name:  "tile-size",
			Value: renderer.DefaultTileSize,
			Usage: "edge length of a render tile in pixels",
		},
		cli.StringFlag{
			Name:  "texture",
			Usage: "image file for textured scenes",
		},
		cli.StringFlag{
			Name:  "out, o",
			Usage: "image filename, default output/<scene>/render_<timestamp>.<format>",
		},
		cli.StringFlag{
			Name:  "format",
			Usage: "png, jpeg, bmp or tiff; empty picks it from the file extension",
		},
		cli.UintFlag{
			Name:  "preview",
			Usage: "also write a thumbnail of this width next to the image",
		},
		cli.StringFlag{
			Name:  "s3-bucket",
			Usage: "upload the image to this S3 bucket",
		},
		cli.StringFlag{
			Name:  "s3-key",
			Usage: "object key for the upload, default the image file name",
		},
		cli.StringFlag{
			Name:  "s3-region",
			Usage: "region of the S3 bucket",
		},
		cli.StringFlag{
			Name:  "s3-endpoint",
			Usage: "endpoint of an S3 compatible store",
		},
	}
}

// loadConfig reads the --config file, if any, and applies the flags on top
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path := ctx.String("config"); path != "" {
		var err error
		if cfg, err = config.LoadConfig(path); err != nil {
			return nil, err
		}
	}

	applyFlags(ctx, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags copies every flag given on the command line into cfg
func applyFlags(ctx *cli.Context, cfg *config.Config) {
	if ctx.IsSet("scene") || ctx.String("config") == "" {
		cfg.Scene = ctx.String("scene")
	}

	ints := map[string]*int{
		"width":     &cfg.Render.Width,
		"height":    &cfg.Render.Height,
		"spp":       &cfg.Render.SamplesPerPixel,
		"depth":     &cfg.Render.MaxDepth,
		"workers":   &cfg.Render.Workers,
		"tile-size": &cfg.Render.TileSize,
	}
	for name, field := range ints {
		if ctx.IsSet(name) {
			*field = ctx.Int(name)
		}
	}

	strs := map[string]*string{
		"out":         &cfg.Output.Path,
		"format":      &cfg.Output.Format,
		"s3-bucket":   &cfg.Output.S3.Bucket,
		"s3-key":      &cfg.Output.S3.Key,
		"s3-region":   &cfg.Output.S3.Region,
		"s3-endpoint": &cfg.Output.S3.Endpoint,
	}
	for name, field := range strs {
		if ctx.IsSet(name) {
			*field = ctx.String(name)
		}
	}

	if ctx.IsSet("out") && !ctx.IsSet("format") {
		// Let the extension of an explicit file name decide
		cfg.Output.Format = ""
	}
	if ctx.IsSet("seed") {
		cfg.Render.Seed = ctx.Int64("seed")
	}
	if ctx.IsSet("preview") {
		cfg.Output.ThumbnailWidth = ctx.Uint("preview")
	}
	if ctx.IsSet("rr-bounces") {
		bounces := ctx.Int("rr-bounces")
		cfg.Integrator.RussianRouletteMinBounces = &bounces
	}
	if ctx.Bool("no-light-sampling") {
		off := false
		cfg.Integrator.LightSampling = &off
	}
}

// RenderFrame renders a still frame of the selected scene.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx, "")

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	setupLogging(ctx, cfg.LogLevel)

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stats, err := runRender(renderCtx, cfg, ctx.String("texture"))
	if stats.Tiles > 0 {
		displayFrameStats(stats)
	}
	return err
}

// runRender builds the scene, renders it and writes every configured output.
// An interrupted render still writes the finished tiles before returning.
func runRender(ctx context.Context, cfg *config.Config, texture string) (renderer.RenderStats, error) {
	s, err := scene.Build(cfg.Scene, cfg.SceneOptions(texture))
	if err != nil {
		return renderer.RenderStats{}, err
	}
	s.SamplingConfig = cfg.ApplySampling(s.SamplingConfig)
	resolveImageSize(cfg, s)

	logger.Noticef("rendering scene %q (%d objects)", cfg.Scene, s.GetPrimitiveCount())

	rt := renderer.NewRaytracer(integrator.NewPathTracingIntegrator(s.SamplingConfig), cfg.RendererConfig())
	img, stats, renderErr := rt.Render(ctx, s)
	if renderErr != nil && !errors.Is(renderErr, renderer.ErrInterrupted) {
		return stats, renderErr
	}

	format, err := cfg.OutputFormat()
	if err != nil {
		return stats, err
	}
	path := cfg.OutputPath(time.Now())
	if err := output.WriteFile(path, img, format); err != nil {
		return stats, err
	}
	logger.Noticef("render saved as %s", path)

	if width := cfg.Output.ThumbnailWidth; width > 0 {
		thumbPath := output.ThumbnailPath(path)
		if err := output.WriteFile(thumbPath, output.Thumbnail(img, width), format); err != nil {
			return stats, err
		}
		logger.Infof("preview saved as %s", thumbPath)
	}

	if bucket := cfg.Output.S3.Bucket; bucket != "" && renderErr == nil {
		uploader, err := output.NewS3Uploader(output.S3Config{
			Bucket:    bucket,
			Region:    cfg.Output.S3.Region,
			Endpoint:  cfg.Output.S3.Endpoint,
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
		})
		if err != nil {
			return stats, err
		}

		key := cfg.Output.S3.Key
		if key == "" {
			key = filepath.Base(path)
		}
		uri, err := uploader.Upload(ctx, key, img, format)
		if err != nil {
			return stats, err
		}
		logger.Noticef("render uploaded to %s", uri)
	}

	return stats, renderErr
}

// resolveImageSize derives a missing image dimension from the camera's aspect ratio
func resolveImageSize(cfg *config.Config, s *scene.Scene) {
	aspect := s.Camera.Config().AspectRatio
	if aspect <= 0 {
		aspect = 1
	}

	switch {
	case cfg.Render.Width > 0 && cfg.Render.Height == 0:
		cfg.Render.Height = max(1, int(math.Round(float64(cfg.Render.Width)/aspect)))
	case cfg.Render.Height > 0 && cfg.Render.Width == 0:
		cfg.Render.Width = max(1, int(math.Round(float64(cfg.Render.Height)*aspect)))
	}
}

func displayFrameStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Tiles", "% of frame"})
	for id, tiles := range stats.TilesPerWorker {
		table.Append([]string{
			fmt.Sprintf("%d", id),
			fmt.Sprintf("%d", tiles),
			fmt.Sprintf("%02.1f %%", 100*float64(tiles)/float64(stats.Tiles)),
		})
	}
	table.SetFooter([]string{
		"TOTAL",
		fmt.Sprintf("%d/%d", stats.TilesRendered, stats.Tiles),
		stats.Duration.Round(time.Millisecond).String(),
	})

	table.Render()
	logger.Noticef("frame statistics: %d pixels, %.1f samples/pixel, %.0f samples/s, mean luminance %.3f\n%s",
		stats.TotalPixels, stats.AverageSamples, stats.SamplesPerSecond(), stats.MeanLuminance, buf.String())
}
