package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-lighttransport/pkg/geometry"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("scene: unknown scene")

// Options adjusts a built-in scene at build time
type Options struct {
	Camera      geometry.CameraConfig // Non-zero fields override the scene's camera
	TexturePath string                // Image for textured scenes; a UV grid is used when empty
	Seed        int64                 // Seed for procedurally placed objects
}

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string
	Description string
	build       func(Options) (*Scene, error)
}

var builtins = map[string]SceneInfo{}

func register(name, description string, build func(Options) (*Scene, error)) {
	builtins[name] = SceneInfo{Name: name, Description: description, build: build}
}

func init() {
	register("cornell", "Cornell box with two rotated blocks and a ceiling light", NewCornellScene)
	register("cornell-smoke", "Cornell box with the blocks replaced by smoke and fog", NewCornellSmokeScene)
	register("cornell-glass", "Cornell box with a glass sphere, sampled as a light", NewCornellGlassScene)
	register("simple-light", "Checkered spheres lit by a sphere and a rect light", NewSimpleLightScene)
	register("random-spheres", "Field of random diffuse, metal, glass and moving spheres", NewRandomSpheresScene)
	register("two-checker", "Two large checkered spheres under a sky", NewTwoCheckerScene)
	register("earth", "Image-textured globe", NewEarthScene)
	register("glass", "Solid and hollow glass next to polished and satin metal", NewGlassScene)
}

// Names returns the registered scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListScenes returns every registered scene sorted by name
func ListScenes() []SceneInfo {
	names := Names()
	scenes := make([]SceneInfo, len(names))
	for i, name := range names {
		scenes[i] = builtins[name]
	}
	return scenes
}

// Build creates the named scene and preprocesses it for rendering
func Build(name string, opts Options) (*Scene, error) {
	info, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}

	s, err := info.build(opts)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}
	if err := s.Preprocess(); err != nil {
		return nil, err
	}
	return s, nil
}

// cameraFor applies the option overrides to a scene's default camera
func cameraFor(defaults geometry.CameraConfig, opts Options) geometry.CameraConfig {
	return geometry.MergeCameraConfig(defaults, opts.Camera)
}
