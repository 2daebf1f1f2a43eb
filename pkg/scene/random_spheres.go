package scene

import (
	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/geometry"
	"github.com/df07/go-lighttransport/pkg/material"
)

var skyBackground = core.NewVec3(0.70, 0.80, 1.00)

// NewRandomSpheresScene creates a ground of checkered spheres scattered with small
// random spheres around three large feature spheres. Diffuse spheres bounce during the shutter.
func NewRandomSpheresScene(opts Options) (*Scene, error) {
	cameraConfig := cameraFor(geometry.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.1,
		FocusDistance: 10,
		Time0:         0,
		Time1:         1,
	}, opts)

	s := newScene(cameraConfig, SamplingConfig{
		Width:                     640,
		Height:                    360,
		SamplesPerPixel:           100,
		MaxDepth:                  50,
		RussianRouletteMinBounces: 8,
	}, skyBackground)

	checker := material.NewCheckerTexture(core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	s.World.AddShapes(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)))

	sampler := core.NewSeededSampler(opts.Seed)
	glass := material.NewDielectric(1.5)
	clearing := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMaterial := sampler.Get1D()
			center := core.NewVec3(float64(a)+0.9*sampler.Get1D(), 0.2, float64(b)+0.9*sampler.Get1D())
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMaterial < 0.8:
				albedo := sampler.Get3D().MultiplyVec(sampler.Get3D())
				bounce := center.Add(core.NewVec3(0, 0.5*sampler.Get1D(), 0))
				s.World.AddShapes(geometry.NewMovingSphere(center, bounce, 0, 1, 0.2, material.NewLambertian(albedo)))
			case chooseMaterial < 0.95:
				albedo := sampler.Get3D().Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
				fuzz := 0.5 * sampler.Get1D()
				s.World.AddShapes(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				s.World.AddShapes(geometry.NewSphere(center, 0.2, glass))
			}
		}
	}

	s.World.AddShapes(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, glass),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return s, nil
}

// NewTwoCheckerScene creates two large checkered spheres touching at the origin
func NewTwoCheckerScene(opts Options) (*Scene, error) {
	cameraConfig := cameraFor(geometry.CameraConfig{
		Center:      core.NewVec3(13, 2, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        20,
		AspectRatio: 16.0 / 9.0,
	}, opts)

	s := newScene(cameraConfig, SamplingConfig{
		Width:                     640,
		Height:                    360,
		SamplesPerPixel:           50,
		MaxDepth:                  20,
		RussianRouletteMinBounces: 5,
	}, skyBackground)

	checker := material.NewTexturedLambertian(
		material.NewCheckerTexture(core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)),
	)
	s.World.AddShapes(
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
	)

	return s, nil
}
