package integrator

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/material"
	"github.com/df07/go-lighttransport/pkg/scene"
)

// ShadowEpsilon is the lower bound of the hit window; it keeps scattered rays
// from re-hitting the surface they leave
const ShadowEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	config scene.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config scene.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor computes the color for a single ray using unidirectional path tracing
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler, depth int) core.Vec3 {
	return pt.rayColor(ray, s, sampler, depth, 0, core.NewVec3(1, 1, 1))
}

func (pt *PathTracingIntegrator) rayColor(ray core.Ray, s *scene.Scene, sampler core.Sampler, depth, bounce int, throughput core.Vec3) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := s.Hit(ray, ShadowEpsilon, math.Inf(1))
	if !isHit {
		return s.Background
	}
	if hit.Material == nil {
		// Shapes without a material absorb everything
		return core.Vec3{}
	}

	// Start with emitted light from the hit material
	colorEmitted := hit.Material.Emit(hit.UV, hit.Point)

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return colorEmitted
	}

	shouldTerminate, rrCompensation := pt.applyRussianRoulette(bounce, throughput, sampler)
	if shouldTerminate {
		return colorEmitted
	}

	scattered, weight := pt.sampleDirection(ray, hit, scatter, s, sampler)
	if weight <= 0 {
		return colorEmitted
	}

	attenuation := scatter.Attenuation.Multiply(weight * rrCompensation)
	incoming := pt.rayColor(scattered, s, sampler, depth-1, bounce+1, throughput.MultiplyVec(attenuation))

	return colorEmitted.Add(attenuation.MultiplyVec(incoming))
}

// sampleDirection picks the continuation ray. For materials with a scattering density,
// and when the scene has lights, half of the samples are aimed at the lights and the
// result is weighted by the material density over the mixture density.
// Otherwise the material's own sample is used with unit weight.
func (pt *PathTracingIntegrator) sampleDirection(ray core.Ray, hit *material.SurfaceInteraction, scatter material.ScatterResult, s *scene.Scene, sampler core.Sampler) (core.Ray, float64) {
	if !pt.config.LightSampling || s.Lights == nil || s.Lights.Len() == 0 {
		return scatter.Scattered, 1
	}
	densityMaterial, ok := hit.Material.(material.ScatteringPDF)
	if !ok {
		return scatter.Scattered, 1
	}

	scattered := scatter.Scattered
	if sampler.Get1D() < 0.5 {
		direction := s.Lights.Random(hit.Point, sampler)
		scattered = core.NewRayAtTime(hit.Point, direction, ray.Time)
	}

	materialPDF := densityMaterial.ScatteringPDF(ray, *hit, scattered)
	lightPDF := s.Lights.PDFValue(hit.Point, scattered.Direction)
	mixturePDF := 0.5*materialPDF + 0.5*lightPDF
	if mixturePDF <= 0 {
		return scattered, 0
	}

	return scattered, materialPDF / mixturePDF
}

// applyRussianRoulette determines if a path should be terminated and returns the compensation factor.
// A zero RussianRouletteMinBounces disables it.
func (pt *PathTracingIntegrator) applyRussianRoulette(bounce int, throughput core.Vec3, sampler core.Sampler) (bool, float64) {
	if pt.config.RussianRouletteMinBounces <= 0 || bounce < pt.config.RussianRouletteMinBounces {
		return false, 1.0
	}

	// Conservative bounds: survivalProb between 0.5 and 0.95
	survivalProb := math.Min(0.95, math.Max(0.5, throughput.Luminance()))

	if sampler.Get1D() > survivalProb {
		return true, 0.0
	}
	return false, 1.0 / survivalProb
}
