package material

import (
	"github.com/df07/go-lighttransport/pkg/core"
)

// Isotropic scatters uniformly in every direction; the phase function of participating media
type Isotropic struct {
	nonEmitter
	Albedo ColorSource
}

// NewIsotropic creates an isotropic phase material with solid color
func NewIsotropic(albedo core.Vec3) *Isotropic {
	return &Isotropic{Albedo: NewSolidColor(albedo)}
}

// NewTexturedIsotropic creates an isotropic phase material with texture
func NewTexturedIsotropic(albedo ColorSource) *Isotropic {
	return &Isotropic{Albedo: albedo}
}

// Scatter picks a new direction uniformly from the unit ball, starting at the hit point
func (i *Isotropic) Scatter(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, core.RandomInUnitSphere(sampler), rayIn.Time),
		Attenuation: i.Albedo.Evaluate(hit.UV, hit.Point),
	}, true
}
