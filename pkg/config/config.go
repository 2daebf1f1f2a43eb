package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/df07/go-lighttransport/pkg/log"
	"github.com/df07/go-lighttransport/pkg/output"
	"github.com/df07/go-lighttransport/pkg/renderer"
	"github.com/df07/go-lighttransport/pkg/scene"
)

// ErrInvalidConfig is returned when a configuration fails validation
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config represents a complete render job
type Config struct {
	Scene      string           `yaml:"scene"`
	LogLevel   string           `yaml:"log_level"`
	Render     RenderConfig     `yaml:"render"`
	Integrator IntegratorConfig `yaml:"integrator"`
	Camera     CameraConfig     `yaml:"camera"`
	Output     OutputConfig     `yaml:"output"`
}

// RenderConfig contains image and sampling settings. Zero values keep the
// scene's recommendation.
type RenderConfig struct {
	Width           int   `yaml:"width"`
	Height          int   `yaml:"height"`
	SamplesPerPixel int   `yaml:"samples_per_pixel"`
	MaxDepth        int   `yaml:"max_depth"`
	Seed            int64 `yaml:"seed"`
	Workers         int   `yaml:"workers"` // 0 means one per CPU
	TileSize        int   `yaml:"tile_size"`
}

// IntegratorConfig overrides the scene's path tracing settings when set
type IntegratorConfig struct {
	LightSampling             *bool `yaml:"light_sampling,omitempty"`
	RussianRouletteMinBounces *int  `yaml:"russian_roulette_min_bounces,omitempty"`
}

// CameraConfig overrides parts of the scene's camera. Zero values keep the scene's.
type CameraConfig struct {
	VFov          float64 `yaml:"vfov"`
	Aperture      float64 `yaml:"aperture"`
	FocusDistance float64 `yaml:"focus_distance"`
}

// OutputConfig contains where and how the image is written
type OutputConfig struct {
	Path           string   `yaml:"path"`            // Empty writes output/<scene>/render_<timestamp>.<format>
	Format         string   `yaml:"format"`          // png, jpeg, bmp or tiff; empty uses the path extension
	ThumbnailWidth uint     `yaml:"thumbnail_width"` // 0 disables the preview image
	S3             S3Config `yaml:"s3"`
}

// S3Config contains the optional upload target
type S3Config struct {
	Bucket   string `yaml:"bucket"` // Empty disables uploading
	Key      string `yaml:"key"`    // Object key; defaults to the output file name
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Scene:    "cornell",
		LogLevel: log.Notice.String(),
		Render: RenderConfig{
			Seed:     42,
			TileSize: renderer.DefaultTileSize,
		},
		Output: OutputConfig{
			Format: "png",
			S3: S3Config{
				Region: "us-east-1",
			},
		},
	}
}

// LoadConfig reads a YAML file over the defaults and validates the result
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", filePath, err)
	}

	if err := yaml.UnmarshalStrict(data, config); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", filePath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := config.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("config: writing %s: %w", filePath, err)
	}
	return nil
}

// Marshal serializes the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: serializing: %w", err)
	}
	return data, nil
}

// Validate checks every field for values the renderer cannot use
func (c *Config) Validate() error {
	var problems []string
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	check(c.Scene != "", "scene must be set")
	check(c.Render.Width >= 0, "render.width must not be negative (got %d)", c.Render.Width)
	check(c.Render.Height >= 0, "render.height must not be negative (got %d)", c.Render.Height)
	check(c.Render.SamplesPerPixel >= 0, "render.samples_per_pixel must not be negative (got %d)", c.Render.SamplesPerPixel)
	check(c.Render.MaxDepth >= 0, "render.max_depth must not be negative (got %d)", c.Render.MaxDepth)
	check(c.Render.Workers >= 0, "render.workers must not be negative (got %d)", c.Render.Workers)
	check(c.Render.TileSize >= 0, "render.tile_size must not be negative (got %d)", c.Render.TileSize)
	if rr := c.Integrator.RussianRouletteMinBounces; rr != nil {
		check(*rr >= 0, "integrator.russian_roulette_min_bounces must not be negative (got %d)", *rr)
	}
	check(c.Camera.VFov >= 0 && c.Camera.VFov < 180, "camera.vfov must be in [0, 180) (got %g)", c.Camera.VFov)
	check(c.Camera.Aperture >= 0, "camera.aperture must not be negative (got %g)", c.Camera.Aperture)
	check(c.Camera.FocusDistance >= 0, "camera.focus_distance must not be negative (got %g)", c.Camera.FocusDistance)

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := c.OutputFormat(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, problems)
	}
	return nil
}

// OutputFormat returns the configured format, falling back to the path extension
func (c *Config) OutputFormat() (output.Format, error) {
	if c.Output.Format != "" {
		return output.ParseFormat(c.Output.Format)
	}
	return output.FormatFromPath(c.Output.Path)
}

// OutputPath returns the file the render is written to
func (c *Config) OutputPath(now time.Time) string {
	if c.Output.Path != "" {
		return c.Output.Path
	}
	ext := c.Output.Format
	if format, err := c.OutputFormat(); err == nil {
		ext = string(format)
	}
	return filepath.Join("output", c.Scene, fmt.Sprintf("render_%s.%s", now.Format("20060102_150405"), ext))
}

// RendererConfig returns the settings handed to the renderer
func (c *Config) RendererConfig() renderer.Config {
	return renderer.Config{
		Width:           c.Render.Width,
		Height:          c.Render.Height,
		SamplesPerPixel: c.Render.SamplesPerPixel,
		MaxDepth:        c.Render.MaxDepth,
		Seed:            c.Render.Seed,
		Workers:         c.Render.Workers,
		TileSize:        c.Render.TileSize,
	}
}

// SceneOptions returns the build options for the configured scene. The aspect
// ratio follows the image size when both dimensions are set.
func (c *Config) SceneOptions(texturePath string) scene.Options {
	opts := scene.Options{
		TexturePath: texturePath,
		Seed:        c.Render.Seed,
	}
	opts.Camera.VFov = c.Camera.VFov
	opts.Camera.Aperture = c.Camera.Aperture
	opts.Camera.FocusDistance = c.Camera.FocusDistance
	if c.Render.Width > 0 && c.Render.Height > 0 {
		opts.Camera.AspectRatio = float64(c.Render.Width) / float64(c.Render.Height)
	}
	return opts
}

// ApplySampling merges the integrator overrides into a scene's sampling settings
func (c *Config) ApplySampling(sampling scene.SamplingConfig) scene.SamplingConfig {
	if c.Integrator.LightSampling != nil {
		sampling.LightSampling = *c.Integrator.LightSampling
	}
	if c.Integrator.RussianRouletteMinBounces != nil {
		sampling.RussianRouletteMinBounces = *c.Integrator.RussianRouletteMinBounces
	}
	return sampling
}
