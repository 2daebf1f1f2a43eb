package geometry

import (
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/material"
)

// RectPadding is the half-thickness given to the flat axis of a rect's bounding box
const RectPadding = 1e-4

// Plane selects the orientation of an axis-aligned rect
type Plane int

const (
	PlaneXY Plane = iota // Constant Z, spans X and Y
	PlaneXZ              // Constant Y, spans X and Z
	PlaneYZ              // Constant X, spans Y and Z
)

// axes returns the two in-plane axes and the constant axis
func (p Plane) axes() (a, b, k int) {
	switch p {
	case PlaneXY:
		return 0, 1, 2
	case PlaneXZ:
		return 0, 2, 1
	default:
		return 1, 2, 0
	}
}

// Normal returns the fixed unit normal of the plane
func (p Plane) Normal() core.Vec3 {
	switch p {
	case PlaneXY:
		return core.NewVec3(0, 0, 1)
	case PlaneXZ:
		return core.NewVec3(0, 1, 0)
	default:
		return core.NewVec3(1, 0, 0)
	}
}

func (p Plane) String() string {
	switch p {
	case PlaneXY:
		return "xy"
	case PlaneXZ:
		return "xz"
	default:
		return "yz"
	}
}

// Rect is an axis-aligned rectangle [A0,A1]×[B0,B1] lying at K on the constant axis.
// Its normal always points along +axis; hits from behind are not flipped.
type Rect struct {
	Plane    Plane
	A0, A1   float64
	B0, B1   float64
	K        float64
	Material material.Material
}

// NewXYRect creates a rect spanning x0..x1, y0..y1 at z=k
func NewXYRect(x0, x1, y0, y1, k float64, mat material.Material) *Rect {
	return &Rect{Plane: PlaneXY, A0: x0, A1: x1, B0: y0, B1: y1, K: k, Material: mat}
}

// NewXZRect creates a rect spanning x0..x1, z0..z1 at y=k
func NewXZRect(x0, x1, z0, z1, k float64, mat material.Material) *Rect {
	return &Rect{Plane: PlaneXZ, A0: x0, A1: x1, B0: z0, B1: z1, K: k, Material: mat}
}

// NewYZRect creates a rect spanning y0..y1, z0..z1 at x=k
func NewYZRect(y0, y1, z0, z1, k float64, mat material.Material) *Rect {
	return &Rect{Plane: PlaneYZ, A0: y0, A1: y1, B0: z0, B1: z1, K: k, Material: mat}
}

// Hit tests if a ray intersects with the rect.
// A ray parallel to the plane divides by zero and its infinite t fails the window check.
func (r *Rect) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	aAxis, bAxis, kAxis := r.Plane.axes()

	t := (r.K - ray.Origin.Get(kAxis)) / ray.Direction.Get(kAxis)
	if !inWindow(t, tMin, tMax) {
		return nil, false
	}

	a := ray.Origin.Get(aAxis) + t*ray.Direction.Get(aAxis)
	b := ray.Origin.Get(bAxis) + t*ray.Direction.Get(bAxis)
	if a < r.A0 || a > r.A1 || b < r.B0 || b > r.B1 {
		return nil, false
	}

	hit := &material.SurfaceInteraction{
		T:        t,
		Point:    ray.At(t),
		UV:       core.NewVec2((a-r.A0)/(r.A1-r.A0), (b-r.B0)/(r.B1-r.B0)),
		Time:     ray.Time,
		Material: r.Material,
	}
	hit.SetFixedNormal(ray, r.Plane.Normal())

	return hit, true
}

// BoundingBox returns the rect's extent padded by RectPadding on its flat axis
func (r *Rect) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	aAxis, bAxis, kAxis := r.Plane.axes()

	var min, max core.Vec3
	min = min.With(aAxis, r.A0).With(bAxis, r.B0).With(kAxis, r.K)
	max = max.With(aAxis, r.A1).With(bAxis, r.B1).With(kAxis, r.K)

	return core.NewAABB(min, max).Pad(kAxis, RectPadding), true
}

// Area returns the rect's surface area
func (r *Rect) Area() float64 {
	return (r.A1 - r.A0) * (r.B1 - r.B0)
}

// PDFValue converts the uniform area density into solid angle as seen from origin
func (r *Rect) PDFValue(origin, direction core.Vec3) float64 {
	hit, ok := r.Hit(core.NewRay(origin, direction), pdfHitEpsilon, infinity)
	if !ok {
		return 0
	}

	distanceSquared := hit.T * hit.T * direction.LengthSquared()
	cosine := math.Abs(direction.Dot(r.Plane.Normal()) / direction.Length())
	if cosine == 0 {
		return 0
	}

	return distanceSquared / (cosine * r.Area())
}

// Random returns the direction from origin to a uniformly sampled point on the rect
func (r *Rect) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	aAxis, bAxis, kAxis := r.Plane.axes()
	sample := sampler.Get2D()

	var point core.Vec3
	point = point.With(aAxis, r.A0+sample.X*(r.A1-r.A0))
	point = point.With(bAxis, r.B0+sample.Y*(r.B1-r.B0))
	point = point.With(kAxis, r.K)

	return point.Subtract(origin)
}
