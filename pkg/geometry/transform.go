package geometry

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/material"
)

// Translate places a shape at an offset without copying it
type Translate struct {
	Shape  Shape
	Offset core.Vec3
}

// NewTranslate wraps shape so it appears moved by offset
func NewTranslate(shape Shape, offset core.Vec3) *Translate {
	return &Translate{Shape: shape, Offset: offset}
}

// Hit moves the ray into the shape's frame and the hit point back out.
// Normals are unchanged by translation, so fixed rect normals keep their direction.
func (t *Translate) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	moved := core.NewRayAtTime(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)

	hit, ok := t.Shape.Hit(moved, tMin, tMax)
	if !ok {
		return nil, false
	}

	hit.Point = hit.Point.Add(t.Offset)
	return hit, true
}

// BoundingBox returns the inner box shifted by the offset
func (t *Translate) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	box, ok := t.Shape.BoundingBox(time0, time1)
	if !ok {
		return core.AABB{}, false
	}
	return core.NewAABB(box.Min.Add(t.Offset), box.Max.Add(t.Offset)), true
}

// PDFValue evaluates the inner density from the origin expressed in the shape's frame
func (t *Translate) PDFValue(origin, direction core.Vec3) float64 {
	return t.Shape.PDFValue(origin.Subtract(t.Offset), direction)
}

// Random samples the inner shape from the origin expressed in the shape's frame
func (t *Translate) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return t.Shape.Random(origin.Subtract(t.Offset), sampler)
}

// RotateY rotates a shape about the Y axis through the world origin
type RotateY struct {
	Shape   Shape
	Degrees float64
	toWorld mgl64.Mat3
	toLocal mgl64.Mat3
}

// NewRotateY wraps shape rotated by angle degrees (counter-clockwise looking down -Y)
func NewRotateY(shape Shape, angle float64) *RotateY {
	rotation := mgl64.Rotate3DY(mgl64.DegToRad(angle))
	return &RotateY{
		Shape:   shape,
		Degrees: angle,
		toWorld: rotation,
		toLocal: rotation.Transpose(),
	}
}

// Hit rotates the ray into object space, then the hit point and normal back to world space
func (r *RotateY) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	rotated := core.NewRayAtTime(
		transformVec(r.toLocal, ray.Origin),
		transformVec(r.toLocal, ray.Direction),
		ray.Time,
	)

	hit, ok := r.Shape.Hit(rotated, tMin, tMax)
	if !ok {
		return nil, false
	}

	hit.Point = transformVec(r.toWorld, hit.Point)
	hit.Normal = transformVec(r.toWorld, hit.Normal)
	return hit, true
}

// BoundingBox bounds the eight rotated corners of the inner box
func (r *RotateY) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	box, ok := r.Shape.BoundingBox(time0, time1)
	if !ok {
		return core.AABB{}, false
	}

	corners := box.Corners()
	rotated := make([]core.Vec3, len(corners))
	for i, corner := range corners {
		rotated[i] = transformVec(r.toWorld, corner)
	}
	return core.NewAABBFromPoints(rotated...), true
}

// PDFValue evaluates the inner density with origin and direction in object space
func (r *RotateY) PDFValue(origin, direction core.Vec3) float64 {
	return r.Shape.PDFValue(transformVec(r.toLocal, origin), transformVec(r.toLocal, direction))
}

// Random samples the inner shape in object space and rotates the result back
func (r *RotateY) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return transformVec(r.toWorld, r.Shape.Random(transformVec(r.toLocal, origin), sampler))
}

func transformVec(m mgl64.Mat3, v core.Vec3) core.Vec3 {
	out := m.Mul3x1(mgl64.Vec3{v.X, v.Y, v.Z})
	return core.NewVec3(out[0], out[1], out[2])
}

// FlipFace reverses the normal and facing of every hit on the wrapped shape
type FlipFace struct {
	Shape Shape
}

// NewFlipFace wraps shape with its normal reversed
func NewFlipFace(shape Shape) *FlipFace {
	return &FlipFace{Shape: shape}
}

// Hit forwards to the inner shape and flips the result
func (f *FlipFace) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	hit, ok := f.Shape.Hit(ray, tMin, tMax)
	if !ok {
		return nil, false
	}

	hit.Normal = hit.Normal.Negate()
	hit.FrontFace = !hit.FrontFace
	return hit, true
}

// BoundingBox returns the inner shape's box
func (f *FlipFace) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return f.Shape.BoundingBox(time0, time1)
}

// PDFValue returns the inner shape's density
func (f *FlipFace) PDFValue(origin, direction core.Vec3) float64 {
	return f.Shape.PDFValue(origin, direction)
}

// Random samples the inner shape
func (f *FlipFace) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return f.Shape.Random(origin, sampler)
}
