package scene

import (
	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/geometry"
	"github.com/df07/go-lighttransport/pkg/material"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

var cornellCamera = geometry.CameraConfig{
	Center:      core.NewVec3(278, 278, -800), // Position camera outside the box looking in
	LookAt:      core.NewVec3(278, 278, 0),    // Look at the center of the box
	Up:          core.NewVec3(0, 1, 0),
	VFov:        40.0,
	AspectRatio: 1.0,
	Time0:       0,
	Time1:       1,
}

var cornellSampling = SamplingConfig{
	Width:                     400,
	Height:                    400,
	SamplesPerPixel:           100,
	MaxDepth:                  50,
	RussianRouletteMinBounces: 5,
	LightSampling:             true,
}

// cornellMaterials are shared by every variant of the box
type cornellMaterials struct {
	red, white, green material.Material
}

func newCornellMaterials() cornellMaterials {
	return cornellMaterials{
		red:   material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05)),
		white: material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73)),
		green: material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15)),
	}
}

// addCornellWalls adds the five walls and a ceiling light spanning [x0,x1]×[z0,z1]
func addCornellWalls(s *Scene, m cornellMaterials, x0, x1, z0, z1 float64, emission core.Vec3) {
	s.World.AddShapes(
		geometry.NewFlipFace(geometry.NewYZRect(0, boxSize, 0, boxSize, boxSize, m.green)), // Left wall
		geometry.NewYZRect(0, boxSize, 0, boxSize, 0, m.red),                               // Right wall
		geometry.NewFlipFace(geometry.NewXZRect(0, boxSize, 0, boxSize, boxSize, m.white)), // Ceiling
		geometry.NewXZRect(0, boxSize, 0, boxSize, 0, m.white),                             // Floor
		geometry.NewFlipFace(geometry.NewXYRect(0, boxSize, 0, boxSize, boxSize, m.white)), // Back wall
	)

	// The light faces down into the box
	light := geometry.NewXZRect(x0, x1, z0, z1, boxSize-1, nil)
	s.AddLight(geometry.NewFlipFace(light), material.NewDiffuseLight(emission))
}

// rotatedBlock creates a box of the given size on the floor, turned about Y and moved into place
func rotatedBlock(size core.Vec3, degrees float64, offset core.Vec3, mat material.Material) geometry.Shape {
	box := geometry.NewBox(core.Vec3{}, size, mat)
	return geometry.NewTranslate(geometry.NewRotateY(box, degrees), offset)
}

// NewCornellScene creates the classic Cornell box with two rotated blocks
func NewCornellScene(opts Options) (*Scene, error) {
	s := newScene(cameraFor(cornellCamera, opts), cornellSampling, core.Vec3{})
	m := newCornellMaterials()

	addCornellWalls(s, m, 213, 343, 227, 332, core.NewVec3(15, 15, 15))
	s.World.AddShapes(
		rotatedBlock(core.NewVec3(165, 330, 165), 15, core.NewVec3(265, 0, 295), m.white),
		rotatedBlock(core.NewVec3(165, 165, 165), -18, core.NewVec3(130, 0, 65), m.white),
	)

	return s, nil
}

// NewCornellSmokeScene replaces the blocks with a dark smoke and a light fog
func NewCornellSmokeScene(opts Options) (*Scene, error) {
	s := newScene(cameraFor(cornellCamera, opts), cornellSampling, core.Vec3{})
	m := newCornellMaterials()

	addCornellWalls(s, m, 113, 443, 127, 432, core.NewVec3(7, 7, 7))

	tall := rotatedBlock(core.NewVec3(165, 330, 165), 15, core.NewVec3(265, 0, 295), nil)
	short := rotatedBlock(core.NewVec3(165, 165, 165), -18, core.NewVec3(130, 0, 65), nil)
	s.World.AddShapes(
		geometry.NewConstantMedium(tall, 0.01, core.NewVec3(0, 0, 0)),
		geometry.NewConstantMedium(short, 0.01, core.NewVec3(1, 1, 1)),
	)

	return s, nil
}

// NewCornellGlassScene puts a glass sphere in the box and samples it alongside the light
// so caustics converge faster
func NewCornellGlassScene(opts Options) (*Scene, error) {
	s := newScene(cameraFor(cornellCamera, opts), cornellSampling, core.Vec3{})
	m := newCornellMaterials()

	addCornellWalls(s, m, 213, 343, 227, 332, core.NewVec3(15, 15, 15))

	aluminum := material.NewMetal(core.NewVec3(0.8, 0.85, 0.88), 0)
	s.World.Add(rotatedBlock(core.NewVec3(165, 330, 165), 15, core.NewVec3(265, 0, 295), nil), aluminum)

	glass := geometry.NewSphere(core.NewVec3(190, 90, 190), 90, material.NewDielectric(1.5))
	s.World.AddShapes(glass)
	s.Lights.Add(glass)

	return s, nil
}
