package material

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns color at given UV coordinates and 3D point
	// UV is used for image textures, point for procedural textures
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// CheckerTexture alternates between two color sources in a 3D checker pattern
type CheckerTexture struct {
	Odd       ColorSource
	Even      ColorSource
	Frequency float64 // Checks per unit length scale; 10 gives the classic pattern
}

// NewCheckerTexture creates a solid-colored checker with the classic frequency
func NewCheckerTexture(odd, even core.Vec3) *CheckerTexture {
	return &CheckerTexture{
		Odd:       NewSolidColor(odd),
		Even:      NewSolidColor(even),
		Frequency: 10,
	}
}

// Evaluate picks odd or even by the sign of sin(fx)·sin(fy)·sin(fz)
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	sines := math.Sin(c.Frequency*point.X) * math.Sin(c.Frequency*point.Y) * math.Sin(c.Frequency*point.Z)
	if sines < 0 {
		return c.Odd.Evaluate(uv, point)
	}
	return c.Even.Evaluate(uv, point)
}
