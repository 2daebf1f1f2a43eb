package material

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	nonEmitter
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter implements the Material interface for dielectric scattering.
// Total internal reflection always reflects; otherwise the Schlick reflectance
// is the probability of reflecting instead of refracting.
func (d *Dielectric) Scatter(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool) {
	// Dielectrics always attenuate by 1.0 (no color absorption for clear glass)
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	unitDirection := rayIn.Direction.Normalize()
	reflected := Reflect(unitDirection, hit.Normal)

	// Orient the normal against the ray. Rect normals are never flipped,
	// so the face flag, not the normal, says which side of the boundary we are on.
	normal := hit.Normal
	if unitDirection.Dot(normal) > 0 {
		normal = normal.Negate()
	}

	var niOverNt float64
	if hit.FrontFace {
		niOverNt = 1.0 / d.RefractiveIndex // Entering the material (from air to glass)
	} else {
		niOverNt = d.RefractiveIndex // Exiting the material (from glass to air)
	}

	direction := reflected
	if refracted, ok := Refract(unitDirection, normal, niOverNt); ok {
		cosine := -unitDirection.Dot(normal)
		if !hit.FrontFace {
			// Schlick needs the angle on the less dense side
			cosine = math.Sqrt(1 - niOverNt*niOverNt*(1-cosine*cosine))
		}
		if sampler.Get1D() >= Schlick(cosine, d.RefractiveIndex) {
			direction = refracted
		}
	}

	return ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, direction, rayIn.Time),
		Attenuation: attenuation,
	}, true
}

// Schlick calculates the Fresnel reflectance using Schlick's approximation
func Schlick(cosine, refIdx float64) float64 {
	r0 := (1 - refIdx) / (1 + refIdx)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
