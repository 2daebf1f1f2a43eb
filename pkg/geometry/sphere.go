package geometry

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	root, ok := hitSphere(s.Center, s.Radius, ray, tMin, tMax)
	if !ok {
		return nil, false
	}
	return sphereInteraction(s.Center, s.Radius, ray, root, s.Material), true
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return sphereBox(s.Center, s.Radius), true
}

// PDFValue is one over the solid angle of the cone the sphere subtends from origin
func (s *Sphere) PDFValue(origin, direction core.Vec3) float64 {
	if _, ok := s.Hit(core.NewRay(origin, direction), pdfHitEpsilon, infinity); !ok {
		return 0
	}

	distanceSquared := s.Center.Subtract(origin).LengthSquared()
	cosThetaMax := math.Sqrt(math.Max(0, 1-s.Radius*s.Radius/distanceSquared))
	solidAngle := 2 * math.Pi * (1 - cosThetaMax)
	if solidAngle <= 0 {
		return 0
	}

	return 1 / solidAngle
}

// Random samples a direction inside the cone subtended by the sphere
func (s *Sphere) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	direction := s.Center.Subtract(origin)
	uvw := core.NewONB(direction)
	return uvw.Local(core.RandomToSphere(s.Radius, direction.LengthSquared(), sampler))
}

// MovingSphere is a sphere whose center moves linearly from Center0 at Time0 to Center1 at Time1
type MovingSphere struct {
	notSampleable
	Center0, Center1 core.Vec3
	Time0, Time1     float64
	Radius           float64
	Material         material.Material
}

// NewMovingSphere creates a new moving sphere
func NewMovingSphere(center0, center1 core.Vec3, time0, time1, radius float64, mat material.Material) *MovingSphere {
	return &MovingSphere{
		Center0:  center0,
		Center1:  center1,
		Time0:    time0,
		Time1:    time1,
		Radius:   radius,
		Material: mat,
	}
}

// Center returns the sphere's center at the given time
func (s *MovingSphere) Center(time float64) core.Vec3 {
	if s.Time1 == s.Time0 {
		return s.Center0
	}
	fraction := (time - s.Time0) / (s.Time1 - s.Time0)
	return s.Center0.Add(s.Center1.Subtract(s.Center0).Multiply(fraction))
}

// Hit tests the ray against the sphere at the ray's time
func (s *MovingSphere) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	center := s.Center(ray.Time)
	root, ok := hitSphere(center, s.Radius, ray, tMin, tMax)
	if !ok {
		return nil, false
	}
	return sphereInteraction(center, s.Radius, ray, root, s.Material), true
}

// BoundingBox returns the union of the boxes at the start and end of the interval
func (s *MovingSphere) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	box0 := sphereBox(s.Center(time0), s.Radius)
	box1 := sphereBox(s.Center(time1), s.Radius)
	return box0.Union(box1), true
}

// hitSphere solves the ray/sphere quadratic and returns the nearest root inside the window
func hitSphere(center core.Vec3, radius float64, ray core.Ray, tMin, tMax float64) (float64, bool) {
	oc := ray.Origin.Subtract(center)

	// Quadratic equation coefficients: at² + 2bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - radius*radius

	discriminant := halfB*halfB - a*c
	if !(discriminant > 0) {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if !inWindow(root, tMin, tMax) {
		root = (-halfB + sqrtD) / a
		if !inWindow(root, tMin, tMax) {
			return 0, false
		}
	}

	return root, true
}

func sphereInteraction(center core.Vec3, radius float64, ray core.Ray, t float64, mat material.Material) *material.SurfaceInteraction {
	point := ray.At(t)
	outwardNormal := point.Subtract(center).Multiply(1.0 / radius)

	hit := &material.SurfaceInteraction{
		T:        t,
		Point:    point,
		UV:       sphereUV(outwardNormal),
		Time:     ray.Time,
		Material: mat,
	}
	hit.SetFaceNormal(ray, outwardNormal)
	return hit
}

// sphereUV maps a point on the unit sphere to texture coordinates.
// U wraps around Y starting at -X, V runs from the south pole to the north pole.
func sphereUV(p core.Vec3) core.Vec2 {
	theta := math.Acos(math.Max(-1, math.Min(1, -p.Y)))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}

// sphereBox bounds a sphere; a negative radius only inverts the normal
func sphereBox(center core.Vec3, radius float64) core.AABB {
	radius = math.Abs(radius)
	r := core.NewVec3(radius, radius, radius)
	return core.NewAABB(center.Subtract(r), center.Add(r))
}
