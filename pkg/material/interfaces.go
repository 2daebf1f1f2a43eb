package material

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
)

// Material interface for surfaces that scatter or emit light
type Material interface {
	// Scatter returns the attenuation and outgoing ray for an incoming ray at hit.
	// Returns false when the ray is absorbed.
	Scatter(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool)

	// Emit returns the radiance emitted at texture coordinates uv and point p
	Emit(uv core.Vec2, point core.Vec3) core.Vec3
}

// ScatteringPDF is implemented by materials with a non-delta scattering distribution.
// Integrators use it to weight directions that were not produced by Scatter.
type ScatteringPDF interface {
	ScatteringPDF(rayIn core.Ray, hit SurfaceInteraction, scattered core.Ray) float64
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// SurfaceInteraction contains information about a ray-object intersection
type SurfaceInteraction struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal at intersection
	T         float64   // Parameter t along the ray
	UV        core.Vec2 // Texture coordinates
	Time      float64   // Time of the ray that produced the hit
	FrontFace bool      // Whether ray hit the outward side
	Material  Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face.
// The stored normal always opposes the ray.
func (h *SurfaceInteraction) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// SetFixedNormal stores outwardNormal as-is and only records which side was struck
func (h *SurfaceInteraction) SetFixedNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	h.Normal = outwardNormal
}

// nonEmitter provides the zero Emit shared by every reflective material
type nonEmitter struct{}

// Emit returns black
func (nonEmitter) Emit(uv core.Vec2, point core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// Reflect calculates the reflection of a vector v off a surface with normal n
func Reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Refract bends v through a surface with normal n (facing against v) using Snell's law.
// Returns false on total internal reflection, before any square root is taken.
func Refract(v, n core.Vec3, niOverNt float64) (core.Vec3, bool) {
	uv := v.Normalize()
	dt := uv.Dot(n)
	discriminant := 1.0 - niOverNt*niOverNt*(1-dt*dt)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}
	refracted := uv.Subtract(n.Multiply(dt)).Multiply(niOverNt).Subtract(n.Multiply(math.Sqrt(discriminant)))
	return refracted, true
}
