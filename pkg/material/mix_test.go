package material

import (
	"math"
	"testing"

	"github.com/df07/go-lighttransport/pkg/core"
)

func TestNewMix_RatioClamp(t *testing.T) {
	a := NewLambertian(core.NewVec3(1, 0, 0))
	b := NewMetal(core.NewVec3(0, 1, 0), 0)

	tests := []struct {
		input, expected float64
	}{
		{-0.5, 0},
		{0.25, 0.25},
		{2, 1},
	}
	for _, tt := range tests {
		if got := NewMix(a, b, tt.input).Ratio; got != tt.expected {
			t.Errorf("NewMix ratio %f: expected %f, got %f", tt.input, tt.expected, got)
		}
	}
}

func TestMix_ScatterChoosesByRatio(t *testing.T) {
	red := NewLambertian(core.NewVec3(1, 0, 0))
	green := NewMetal(core.NewVec3(0, 1, 0), 0)
	mix := NewMix(red, green, 0.3)
	sampler := core.NewSeededSampler(42)

	hit := SurfaceInteraction{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		FrontFace: true,
	}
	ray := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))

	const n = 20000
	greenCount := 0
	for i := 0; i < n; i++ {
		result, ok := mix.Scatter(ray, hit, sampler)
		if !ok {
			t.Fatal("Expected both components to scatter")
		}
		if result.Attenuation.Y == 1 {
			greenCount++
		}
	}

	if fraction := float64(greenCount) / n; math.Abs(fraction-0.3) > 0.02 {
		t.Errorf("Expected about 30%% metal scatters, got %.3f", fraction)
	}
}

func TestMix_EmitBlends(t *testing.T) {
	light := NewDiffuseLight(core.NewVec3(4, 4, 4))
	mix := NewMix(light, NewLambertian(core.NewVec3(0.5, 0.5, 0.5)), 0.75)

	got := mix.Emit(core.NewVec2(0, 0), core.Vec3{})
	if got != core.NewVec3(1, 1, 1) {
		t.Errorf("Expected emission (1,1,1), got %v", got)
	}
}
