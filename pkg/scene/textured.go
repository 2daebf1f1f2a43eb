package scene

import (
	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/geometry"
	"github.com/df07/go-lighttransport/pkg/loaders"
	"github.com/df07/go-lighttransport/pkg/material"
)

// maxTextureSize bounds the resolution of textures loaded for scenes
const maxTextureSize = 2048

// NewEarthScene creates a single globe wrapped in the image at opts.TexturePath.
// Without a texture path the globe shows a UV grid.
func NewEarthScene(opts Options) (*Scene, error) {
	var texture material.ColorSource = material.NewUVGridTexture(512, 16)
	if opts.TexturePath != "" {
		loaded, err := loaders.LoadImageTexture(opts.TexturePath, maxTextureSize)
		if err != nil {
			return nil, err
		}
		texture = loaded
	}

	cameraConfig := cameraFor(geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 12),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        20,
		AspectRatio: 16.0 / 9.0,
	}, opts)

	s := newScene(cameraConfig, SamplingConfig{
		Width:                     640,
		Height:                    360,
		SamplesPerPixel:           50,
		MaxDepth:                  10,
		RussianRouletteMinBounces: 5,
	}, skyBackground)

	s.World.AddShapes(geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(texture)))

	return s, nil
}

// NewSimpleLightScene creates checkered spheres lit only by a glowing sphere and a rect light
func NewSimpleLightScene(opts Options) (*Scene, error) {
	cameraConfig := cameraFor(geometry.CameraConfig{
		Center:      core.NewVec3(26, 3, 6),
		LookAt:      core.NewVec3(0, 2, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        20,
		AspectRatio: 16.0 / 9.0,
	}, opts)

	s := newScene(cameraConfig, SamplingConfig{
		Width:                     640,
		Height:                    360,
		SamplesPerPixel:           200,
		MaxDepth:                  50,
		RussianRouletteMinBounces: 5,
		LightSampling:             true,
	}, core.Vec3{})

	checker := material.NewTexturedLambertian(
		material.NewCheckerTexture(core.NewVec3(0.1, 0.1, 0.1), core.NewVec3(0.8, 0.8, 0.8)),
	)
	s.World.AddShapes(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, checker),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, checker),
	)

	light := material.NewDiffuseLight(core.NewVec3(4, 4, 4))
	s.AddLight(geometry.NewSphere(core.NewVec3(0, 7, 0), 2, nil), light)
	s.AddLight(geometry.NewXYRect(3, 5, 1, 3, -2, nil), light)

	return s, nil
}

// NewGlassScene shows solid and hollow glass beside polished and brushed metal under a rect light
func NewGlassScene(opts Options) (*Scene, error) {
	cameraConfig := cameraFor(geometry.CameraConfig{
		Center:        core.NewVec3(0, 1.5, 6),
		LookAt:        core.NewVec3(0, 0.6, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          35,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.05,
		FocusDistance: 6,
	}, opts)

	s := newScene(cameraConfig, SamplingConfig{
		Width:                     640,
		Height:                    360,
		SamplesPerPixel:           200,
		MaxDepth:                  50,
		RussianRouletteMinBounces: 10,
		LightSampling:             true,
	}, core.NewVec3(0.05, 0.05, 0.08))

	glass := material.NewDielectric(1.5)
	// Mostly diffuse with a brushed gold sheen
	satin := material.NewMix(
		material.NewLambertian(core.NewVec3(0.6, 0.45, 0.15)),
		material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3),
		0.35,
	)
	floor := material.NewTexturedLambertian(
		material.NewCheckerTexture(core.NewVec3(0.15, 0.15, 0.15), core.NewVec3(0.75, 0.75, 0.75)),
	)

	s.World.AddShapes(
		geometry.NewXZRect(-20, 20, -20, 20, 0, floor),
		geometry.NewSphere(core.NewVec3(-1.8, 0.6, 0), 0.6, glass),
		// Hollow glass: a negative radius flips the inner surface's normal
		geometry.NewSphere(core.NewVec3(-0.6, 0.6, 0), 0.6, glass),
		geometry.NewSphere(core.NewVec3(-0.6, 0.6, 0), -0.55, glass),
		geometry.NewSphere(core.NewVec3(0.6, 0.6, 0), 0.6, material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0)),
		geometry.NewSphere(core.NewVec3(1.8, 0.6, 0), 0.6, satin),
		geometry.NewTranslate(
			geometry.NewRotateY(geometry.NewBox(core.NewVec3(-0.3, 0, -0.3), core.NewVec3(0.3, 0.4, 0.3), glass), 30),
			core.NewVec3(0, 0, 1.5),
		),
	)

	light := geometry.NewFlipFace(geometry.NewXZRect(-2, 2, -1, 1, 4, nil))
	s.AddLight(light, material.NewDiffuseLight(core.NewVec3(6, 6, 6)))

	return s, nil
}
