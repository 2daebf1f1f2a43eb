package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/geometry"
	"github.com/df07/go-lighttransport/pkg/material"
	"github.com/df07/go-lighttransport/pkg/scene"
)

// fixedSampler returns the same value for every dimension
type fixedSampler struct {
	value float64
}

func (f fixedSampler) Get1D() float64   { return f.value }
func (f fixedSampler) Get2D() core.Vec2 { return core.NewVec2(f.value, f.value) }
func (f fixedSampler) Get3D() core.Vec3 { return core.NewVec3(f.value, f.value, f.value) }

// createTestScene creates an empty scene with the given background
func createTestScene(background core.Vec3) *scene.Scene {
	return &scene.Scene{
		Camera:     geometry.NewCamera(geometry.CameraConfig{LookAt: core.NewVec3(0, 0, -1), VFov: 40}),
		World:      scene.NewWorld(),
		Lights:     geometry.NewList(),
		Background: background,
	}
}

// groundScene is a large diffuse floor under a uniform background
func groundScene(albedo, background core.Vec3) *scene.Scene {
	s := createTestScene(background)
	s.World.Add(geometry.NewXZRect(-1000, 1000, -1000, 1000, 0, nil), material.NewLambertian(albedo))
	return s
}

// TestPathTracingDepthTermination tests that ray depth is properly limited
func TestPathTracingDepthTermination(t *testing.T) {
	s := groundScene(core.NewVec3(0.5, 0.5, 0.5), core.NewVec3(1, 1, 1))
	integrator := NewPathTracingIntegrator(scene.SamplingConfig{})
	sampler := core.NewSeededSampler(42)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	if color := integrator.RayColor(ray, s, sampler, 0); color != (core.Vec3{}) {
		t.Errorf("Expected black color for depth 0, got %v", color)
	}
	// One bounce reaches the floor but the scattered ray has no depth left
	if color := integrator.RayColor(ray, s, sampler, 1); color != (core.Vec3{}) {
		t.Errorf("Expected black color for depth 1, got %v", color)
	}
	if color := integrator.RayColor(ray, s, sampler, 2); color == (core.Vec3{}) {
		t.Error("Expected some light with depth 2")
	}
}

func TestPathTracingMissReturnsBackground(t *testing.T) {
	background := core.NewVec3(0.2, 0.4, 0.6)
	s := createTestScene(background)
	integrator := NewPathTracingIntegrator(scene.SamplingConfig{})

	color := integrator.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), s, core.NewSeededSampler(1), 10)
	if !color.Equals(background) {
		t.Errorf("Expected background %v, got %v", background, color)
	}
}

func TestPathTracingEmitterOnly(t *testing.T) {
	s := createTestScene(core.NewVec3(1, 1, 1))
	emission := core.NewVec3(4, 3, 2)
	s.World.Add(geometry.NewSphere(core.NewVec3(0, 0, -3), 1, nil), material.NewDiffuseLight(emission))
	integrator := NewPathTracingIntegrator(scene.SamplingConfig{})

	color := integrator.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), s, core.NewSeededSampler(1), 10)
	if !color.Equals(emission) {
		t.Errorf("Expected emitted %v with no scattering, got %v", emission, color)
	}
}

func TestPathTracingNilMaterialAbsorbs(t *testing.T) {
	s := createTestScene(core.NewVec3(1, 1, 1))
	s.World.AddShapes(geometry.NewSphere(core.NewVec3(0, 0, -3), 1, nil))
	integrator := NewPathTracingIntegrator(scene.SamplingConfig{LightSampling: true})

	color := integrator.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), s, core.NewSeededSampler(1), 10)
	if color != (core.Vec3{}) {
		t.Errorf("Expected black from a shape without material, got %v", color)
	}
}

// TestPathTracingGroundUnderSky checks that a diffuse floor under a uniform sky
// reflects exactly albedo times the sky, since every bounce escapes
func TestPathTracingGroundUnderSky(t *testing.T) {
	albedo := core.NewVec3(0.3, 0.5, 0.7)
	sky := core.NewVec3(1, 1, 1)
	s := groundScene(albedo, sky)
	integrator := NewPathTracingIntegrator(scene.SamplingConfig{})
	sampler := core.NewSeededSampler(42)

	for i := 0; i < 100; i++ {
		origin := core.NewVec3(sampler.Get1D(), 1, sampler.Get1D())
		color := integrator.RayColor(core.NewRay(origin, core.NewVec3(0.1, -1, 0.2)), s, sampler, 5)
		if math.Abs(color.X-albedo.X) > 1e-12 || math.Abs(color.Y-albedo.Y) > 1e-12 || math.Abs(color.Z-albedo.Z) > 1e-12 {
			t.Fatalf("Expected %v, got %v", albedo, color)
		}
	}
}

// TestPathTracingLightSamplingUnbiased compares the estimate of light reflected off a
// floor under a square light, with and without light sampling, against the form factor
func TestPathTracingLightSamplingUnbiased(t *testing.T) {
	albedo := 0.5
	s := groundScene(core.NewVec3(albedo, albedo, albedo), core.Vec3{})
	s.AddLight(geometry.NewXZRect(-1, 1, -1, 1, 1, nil), material.NewDiffuseLight(core.NewVec3(1, 1, 1)))

	// Point-to-parallel-rectangle form factor: four unit quarters at height 1
	quarter := 2 * (1 / math.Sqrt2) * math.Atan(1/math.Sqrt2) / (2 * math.Pi)
	expected := albedo * 4 * quarter

	ray := core.NewRay(core.NewVec3(0, 0.5, 0), core.NewVec3(0, -1, 0))
	const samples = 40000

	tests := []struct {
		name          string
		lightSampling bool
	}{
		{"material sampling", false},
		{"light sampling", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integrator := NewPathTracingIntegrator(scene.SamplingConfig{LightSampling: tt.lightSampling})
			sampler := core.NewSeededSampler(42)

			sum := 0.0
			for i := 0; i < samples; i++ {
				sum += integrator.RayColor(ray, s, sampler, 3).X
			}
			mean := sum / samples

			if math.Abs(mean-expected) > 0.015 {
				t.Errorf("Expected mean radiance %.4f, got %.4f", expected, mean)
			}
		})
	}
}

func TestPathTracingSpecularIgnoresLightSampling(t *testing.T) {
	// A mirror facing a uniform sky returns albedo times sky regardless of light sampling
	albedo := core.NewVec3(0.8, 0.6, 0.4)
	s := createTestScene(core.NewVec3(1, 1, 1))
	s.World.Add(geometry.NewXZRect(-10, 10, -10, 10, 0, nil), material.NewMetal(albedo, 0))
	s.AddLight(geometry.NewXZRect(5, 6, 5, 6, 20, nil), material.NewDiffuseLight(core.NewVec3(10, 10, 10)))

	integrator := NewPathTracingIntegrator(scene.SamplingConfig{LightSampling: true})
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0.3, -1, 0))

	color := integrator.RayColor(ray, s, core.NewSeededSampler(3), 5)
	if !color.Equals(albedo) {
		t.Errorf("Expected %v, got %v", albedo, color)
	}
}

func TestApplyRussianRoulette(t *testing.T) {
	integrator := NewPathTracingIntegrator(scene.SamplingConfig{RussianRouletteMinBounces: 3})
	dim := core.NewVec3(0.1, 0.1, 0.1)
	bright := core.NewVec3(2, 2, 2)

	tests := []struct {
		name             string
		bounce           int
		throughput       core.Vec3
		sample           float64
		wantTerminate    bool
		wantCompensation float64
	}{
		{"before min bounces", 2, dim, 0.99, false, 1.0},
		{"dim path survives", 3, dim, 0.4, false, 2.0},
		{"dim path terminates", 3, dim, 0.6, true, 0.0},
		{"bright path capped", 5, bright, 0.9, false, 1 / 0.95},
		{"bright path terminates", 5, bright, 0.96, true, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terminate, compensation := integrator.applyRussianRoulette(tt.bounce, tt.throughput, fixedSampler{value: tt.sample})
			if terminate != tt.wantTerminate {
				t.Errorf("Expected terminate=%v, got %v", tt.wantTerminate, terminate)
			}
			if math.Abs(compensation-tt.wantCompensation) > 1e-12 {
				t.Errorf("Expected compensation %v, got %v", tt.wantCompensation, compensation)
			}
		})
	}

	disabled := NewPathTracingIntegrator(scene.SamplingConfig{})
	if terminate, _ := disabled.applyRussianRoulette(100, dim, fixedSampler{value: 0.99}); terminate {
		t.Error("Expected Russian roulette to be disabled with zero min bounces")
	}
}
