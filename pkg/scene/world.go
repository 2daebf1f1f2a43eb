package scene

import (
	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/geometry"
	"github.com/df07/go-lighttransport/pkg/material"
)

// World is the scene's primitive collection. Each member may be paired with a material
// that replaces whatever material its shape reports on a hit.
// It is append-only once rendering starts.
type World struct {
	members *geometry.List
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{members: geometry.NewList()}
}

// Add appends a shape paired with mat. A nil mat keeps the shape's own material.
func (w *World) Add(shape geometry.Shape, mat material.Material) {
	if mat == nil {
		w.members.Add(shape)
		return
	}
	w.members.Add(&materialPair{Shape: shape, material: mat})
}

// AddShapes appends shapes that already carry their materials
func (w *World) AddShapes(shapes ...geometry.Shape) {
	w.members.Add(shapes...)
}

// Len returns the number of members
func (w *World) Len() int {
	return w.members.Len()
}

// Members returns the underlying list in insertion order
func (w *World) Members() *geometry.List {
	return w.members
}

// Hit returns the nearest member hit
func (w *World) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	return w.members.Hit(ray, tMin, tMax)
}

// BoundingBox returns the union of member boxes, or false if empty or unbounded
func (w *World) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return w.members.BoundingBox(time0, time1)
}

// PDFValue averages the member densities
func (w *World) PDFValue(origin, direction core.Vec3) float64 {
	return w.members.PDFValue(origin, direction)
}

// Random samples a uniformly chosen member
func (w *World) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return w.members.Random(origin, sampler)
}

// materialPair attaches the owning material to every hit on its shape
type materialPair struct {
	geometry.Shape
	material material.Material
}

func (p *materialPair) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	hit, ok := p.Shape.Hit(ray, tMin, tMax)
	if !ok {
		return nil, false
	}
	hit.Material = p.material
	return hit, true
}
