package geometry

import (
	"errors"
	"math"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/material"
)

// ErrUnboundedShape is returned when a shape without a bounding box is put in a BVH
var ErrUnboundedShape = errors.New("geometry: shape has no bounding box")

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit reports the nearest intersection with tMin < t < tMax
	Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool)

	// BoundingBox returns the extent over the shutter interval [time0, time1].
	// Returns false for geometry that cannot be boxed.
	BoundingBox(time0, time1 float64) (core.AABB, bool)

	// PDFValue is the solid-angle density of sampling direction from origin toward this shape
	PDFValue(origin, direction core.Vec3) float64

	// Random returns a direction from origin toward a point sampled on the shape
	Random(origin core.Vec3, sampler core.Sampler) core.Vec3
}

// notSampleable is embedded by shapes that are never importance sampled
type notSampleable struct{}

// PDFValue returns zero density
func (notSampleable) PDFValue(origin, direction core.Vec3) float64 {
	return 0
}

// Random returns an arbitrary fixed direction
func (notSampleable) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return core.NewVec3(1, 0, 0)
}

// inWindow reports tMin < t < tMax. NaN and out-of-range infinities fail.
func inWindow(t, tMin, tMax float64) bool {
	return t > tMin && t < tMax
}

// pdfHitEpsilon keeps importance-sampling probes from hitting at their own origin
const pdfHitEpsilon = 0.001

var infinity = math.Inf(1)
