package geometry

import (
	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/material"
)

// Box is an axis-aligned box built from six rects with outward facing normals
type Box struct {
	notSampleable
	Min, Max core.Vec3
	sides    *List
}

// NewBox creates a box spanning the corners p0 and p1
func NewBox(p0, p1 core.Vec3, mat material.Material) *Box {
	sides := NewList(
		NewXYRect(p0.X, p1.X, p0.Y, p1.Y, p1.Z, mat),
		NewFlipFace(NewXYRect(p0.X, p1.X, p0.Y, p1.Y, p0.Z, mat)),
		NewXZRect(p0.X, p1.X, p0.Z, p1.Z, p1.Y, mat),
		NewFlipFace(NewXZRect(p0.X, p1.X, p0.Z, p1.Z, p0.Y, mat)),
		NewYZRect(p0.Y, p1.Y, p0.Z, p1.Z, p1.X, mat),
		NewFlipFace(NewYZRect(p0.Y, p1.Y, p0.Z, p1.Z, p0.X, mat)),
	)

	return &Box{Min: p0, Max: p1, sides: sides}
}

// Hit tests the ray against the six sides
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	return b.sides.Hit(ray, tMin, tMax)
}

// BoundingBox returns the box itself
func (b *Box) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.NewAABB(b.Min, b.Max), true
}
