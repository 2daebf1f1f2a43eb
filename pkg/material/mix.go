package material

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
)

// Mix represents a material that probabilistically chooses between two materials
type Mix struct {
	Material1 Material
	Material2 Material
	Ratio     float64 // 0.0 = all material1, 1.0 = all material2
}

// NewMix creates a new mix material
func NewMix(material1, material2 Material, ratio float64) *Mix {
	// Clamp ratio to valid range
	ratio = math.Max(0.0, math.Min(ratio, 1.0))

	return &Mix{
		Material1: material1,
		Material2: material2,
		Ratio:     ratio,
	}
}

// Scatter picks one of the two materials per call. The chosen material's
// attenuation is returned unweighted, so the expectation is the ratio blend.
func (m *Mix) Scatter(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool) {
	if sampler.Get1D() < m.Ratio {
		return m.Material2.Scatter(rayIn, hit, sampler)
	}
	return m.Material1.Scatter(rayIn, hit, sampler)
}

// Emit blends the emission of both materials by the ratio
func (m *Mix) Emit(uv core.Vec2, point core.Vec3) core.Vec3 {
	return m.Material1.Emit(uv, point).Multiply(1.0 - m.Ratio).Add(m.Material2.Emit(uv, point).Multiply(m.Ratio))
}
