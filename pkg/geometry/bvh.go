package geometry

import (
	"fmt"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/material"
)

// Leaf threshold: if we have this many or fewer shapes, store them in a leaf node
const leafThreshold = 4

// BVHNode represents a node in the Bounding Volume Hierarchy.
// The root node is itself a Shape and can stand in for the list it was built from.
type BVHNode struct {
	Box    core.AABB
	Left   *BVHNode
	Right  *BVHNode
	Shapes []Shape // Shapes for leaf nodes (nil for internal nodes)

	// all holds every member so sampling matches the source list
	all *List
}

// NewBVH builds a hierarchy over the list's members for the shutter interval [time0, time1].
// Every member must report a bounding box.
func NewBVH(list *List, time0, time1 float64) (*BVHNode, error) {
	shapes := list.Shapes()
	entries := make([]boxedShape, len(shapes))
	for i, shape := range shapes {
		box, ok := shape.BoundingBox(time0, time1)
		if !ok {
			return nil, fmt.Errorf("%w: member %d (%T)", ErrUnboundedShape, i, shape)
		}
		entries[i] = boxedShape{shape: shape, box: box}
	}

	root := buildBVH(entries)
	root.all = NewList(shapes...)
	return root, nil
}

// boxedShape caches a member's box for the duration of the build
type boxedShape struct {
	shape Shape
	box   core.AABB
}

// buildBVH recursively builds the tree with median splits along the longest axis
func buildBVH(entries []boxedShape) *BVHNode {
	if len(entries) == 0 {
		return &BVHNode{}
	}

	box := entries[0].box
	for _, entry := range entries[1:] {
		box = box.Union(entry.box)
	}

	if len(entries) <= leafThreshold {
		return leaf(box, entries)
	}

	axis := box.LongestAxis()
	minVal, maxVal := box.Min.Get(axis), box.Max.Get(axis)
	if maxVal <= minVal {
		return leaf(box, entries)
	}
	splitPos := (minVal + maxVal) * 0.5

	var left, right []boxedShape
	for _, entry := range entries {
		if entry.box.Center().Get(axis) < splitPos {
			left = append(left, entry)
		} else {
			right = append(right, entry)
		}
	}

	// Ensure we don't create empty partitions
	if len(left) == 0 || len(right) == 0 {
		return leaf(box, entries)
	}

	return &BVHNode{
		Box:   box,
		Left:  buildBVH(left),
		Right: buildBVH(right),
	}
}

func leaf(box core.AABB, entries []boxedShape) *BVHNode {
	shapes := make([]Shape, len(entries))
	for i, entry := range entries {
		shapes[i] = entry.shape
	}
	return &BVHNode{Box: box, Shapes: shapes}
}

// Hit tests the ray against the node's box before descending
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	if n.Left == nil && len(n.Shapes) == 0 {
		return nil, false
	}
	if !n.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	// Leaf: linear scan shrinking tMax
	if n.Left == nil {
		var closest *material.SurfaceInteraction
		closestSoFar := tMax
		for _, shape := range n.Shapes {
			if hit, ok := shape.Hit(ray, tMin, closestSoFar); ok {
				closest = hit
				closestSoFar = hit.T
			}
		}
		return closest, closest != nil
	}

	leftHit, hitLeft := n.Left.Hit(ray, tMin, tMax)
	if hitLeft {
		tMax = leftHit.T
	}
	if rightHit, hitRight := n.Right.Hit(ray, tMin, tMax); hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox returns the node's box; an empty tree has none
func (n *BVHNode) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	if n.Left == nil && len(n.Shapes) == 0 {
		return core.AABB{}, false
	}
	return n.Box, true
}

// PDFValue averages over every member, as the source list would
func (n *BVHNode) PDFValue(origin, direction core.Vec3) float64 {
	if n.all == nil {
		return 0
	}
	return n.all.PDFValue(origin, direction)
}

// Random delegates to a uniformly chosen member
func (n *BVHNode) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	if n.all == nil {
		return core.NewVec3(1, 0, 0)
	}
	return n.all.Random(origin, sampler)
}
