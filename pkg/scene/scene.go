package scene

import (
	"fmt"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/geometry"
	"github.com/df07/go-lighttransport/pkg/material"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *geometry.Camera
	World          *World            // Objects in the scene
	Lights         *geometry.List    // Shapes worth sampling directly, usually the emitters
	Background     core.Vec3         // Radiance returned by rays that escape
	SamplingConfig SamplingConfig    // Recommended render settings
	BVH            *geometry.BVHNode // Acceleration structure for ray-object intersection
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width                     int  // Image width
	Height                    int  // Image height
	SamplesPerPixel           int  // Number of rays per pixel
	MaxDepth                  int  // Maximum ray bounce depth
	RussianRouletteMinBounces int  // Minimum bounces before Russian Roulette can activate
	LightSampling             bool // Mix light-directed samples into diffuse bounces
}

// newScene creates an empty scene around a camera
func newScene(cameraConfig geometry.CameraConfig, sampling SamplingConfig, background core.Vec3) *Scene {
	return &Scene{
		Camera:         geometry.NewCamera(cameraConfig),
		World:          NewWorld(),
		Lights:         geometry.NewList(),
		Background:     background,
		SamplingConfig: sampling,
	}
}

// Preprocess prepares the scene for rendering by building the BVH over the world
func (s *Scene) Preprocess() error {
	cameraConfig := s.Camera.Config()
	bvh, err := geometry.NewBVH(s.World.Members(), cameraConfig.Time0, cameraConfig.Time1)
	if err != nil {
		return fmt.Errorf("scene: building BVH: %w", err)
	}
	s.BVH = bvh
	return nil
}

// Hit finds the nearest intersection, through the BVH once the scene is preprocessed
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	if s.BVH != nil {
		return s.BVH.Hit(ray, tMin, tMax)
	}
	return s.World.Hit(ray, tMin, tMax)
}

// AddLight adds an emitting shape to the world and registers it for light sampling
func (s *Scene) AddLight(shape geometry.Shape, emitter material.Material) {
	s.World.Add(shape, emitter)
	s.Lights.Add(shape)
}

// GetPrimitiveCount returns the number of top-level objects in the world
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}
