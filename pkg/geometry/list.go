package geometry

import (
	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/material"
)

// List is an ordered collection of shapes that is itself a Shape.
// Hits resolve to the nearest member; importance sampling picks members uniformly.
type List struct {
	shapes []Shape
}

// NewList creates a list holding the given shapes in order
func NewList(shapes ...Shape) *List {
	l := &List{}
	l.Add(shapes...)
	return l
}

// Add appends shapes to the end of the list
func (l *List) Add(shapes ...Shape) {
	l.shapes = append(l.shapes, shapes...)
}

// Len returns the number of members
func (l *List) Len() int {
	return len(l.shapes)
}

// Shapes returns the members in insertion order
func (l *List) Shapes() []Shape {
	return l.shapes
}

// Hit returns the closest member intersection inside the window
func (l *List) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	var closest *material.SurfaceInteraction
	closestSoFar := tMax

	for _, shape := range l.shapes {
		if hit, ok := shape.Hit(ray, tMin, closestSoFar); ok {
			closest = hit
			closestSoFar = hit.T
		}
	}

	return closest, closest != nil
}

// BoundingBox returns the union of member boxes.
// An empty list, or one holding any unbounded member, has no box.
func (l *List) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	if len(l.shapes) == 0 {
		return core.AABB{}, false
	}

	var box core.AABB
	for i, shape := range l.shapes {
		memberBox, ok := shape.BoundingBox(time0, time1)
		if !ok {
			return core.AABB{}, false
		}
		if i == 0 {
			box = memberBox
		} else {
			box = box.Union(memberBox)
		}
	}

	return box, true
}

// PDFValue is the average of the member densities
func (l *List) PDFValue(origin, direction core.Vec3) float64 {
	if len(l.shapes) == 0 {
		return 0
	}

	weight := 1.0 / float64(len(l.shapes))
	sum := 0.0
	for _, shape := range l.shapes {
		sum += weight * shape.PDFValue(origin, direction)
	}
	return sum
}

// Random delegates to a uniformly chosen member
func (l *List) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	n := len(l.shapes)
	if n == 0 {
		return core.NewVec3(1, 0, 0)
	}

	index := int(sampler.Get1D() * float64(n))
	if index >= n {
		index = n - 1
	}
	return l.shapes[index].Random(origin, sampler)
}
