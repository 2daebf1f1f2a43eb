package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-lighttransport/pkg/core"
	"github.com/df07/go-lighttransport/pkg/material"
)

func TestList_Empty(t *testing.T) {
	list := NewList()

	if _, ok := list.BoundingBox(0, 1); ok {
		t.Error("Expected empty list to report no bounding box")
	}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	if _, ok := list.Hit(ray, math.Inf(-1), math.Inf(1)); ok {
		t.Error("Expected empty list to report no hit")
	}
	if pdf := list.PDFValue(core.Vec3{}, core.NewVec3(0, 0, 1)); pdf != 0 {
		t.Errorf("Expected zero pdf for empty list, got %v", pdf)
	}
}

func TestList_Hit_Closest(t *testing.T) {
	near := &DummyMaterial{Name: "near"}
	far := &DummyMaterial{Name: "far"}

	// Insert the far rect first so the scan has to shrink its window
	list := NewList(
		NewXYRect(-1, 1, -1, 1, 5, far),
		NewXYRect(-1, 1, -1, 1, 2, near),
		NewXYRect(-1, 1, -1, 1, 8, far),
	)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	hit, ok := list.Hit(ray, 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected hit, got miss")
	}
	if hit.T != 2 {
		t.Errorf("Expected closest t=2, got %v", hit.T)
	}
	if hit.Material != near {
		t.Errorf("Expected near material, got %v", hit.Material)
	}

	// Window excluding the near rect
	hit, ok = list.Hit(ray, 3, math.Inf(1))
	if !ok || hit.T != 5 {
		t.Errorf("Expected hit at t=5 with tMin=3, got %v %v", hit, ok)
	}
}

func TestList_BoundingBox_UnionOfPaddedRects(t *testing.T) {
	rects := []*Rect{
		NewXYRect(0, 1, 0, 1, 0, nil),
		NewXZRect(-2, 0.5, 1, 3, 4, nil),
		NewYZRect(2, 5, -1, 0, -3, nil),
	}
	list := NewList()
	for _, r := range rects {
		list.Add(r)
	}

	box, ok := list.BoundingBox(0, 1)
	if !ok {
		t.Fatal("Expected a bounding box")
	}

	min := core.NewVec3(math.Inf(1), math.Inf(1), math.Inf(1))
	max := core.NewVec3(math.Inf(-1), math.Inf(-1), math.Inf(-1))
	for _, r := range rects {
		aAxis, bAxis, kAxis := r.Plane.axes()
		lo := map[int]float64{aAxis: r.A0, bAxis: r.B0, kAxis: r.K - RectPadding}
		hi := map[int]float64{aAxis: r.A1, bAxis: r.B1, kAxis: r.K + RectPadding}
		for axis := 0; axis < 3; axis++ {
			min = min.With(axis, math.Min(min.Get(axis), lo[axis]))
			max = max.With(axis, math.Max(max.Get(axis), hi[axis]))
		}
	}

	if !box.Min.Equals(min) || !box.Max.Equals(max) {
		t.Errorf("Expected box [%v, %v], got %v", min, max, box)
	}
}

func TestList_BoundingBox_UnboundedMember(t *testing.T) {
	list := NewList(NewXYRect(0, 1, 0, 1, 0, nil), unboundedShape{})
	if _, ok := list.BoundingBox(0, 1); ok {
		t.Error("Expected no bounding box when a member has none")
	}
}

func TestList_PDFValue_Average(t *testing.T) {
	light := NewXZRect(-0.5, 0.5, -0.5, 0.5, 2, nil)
	list := NewList(light, NewSphere(core.NewVec3(10, 10, 10), 1, nil))

	origin := core.NewVec3(0, 0, 0)
	direction := core.NewVec3(0, 1, 0)

	expected := 0.5*light.PDFValue(origin, direction) + 0.5*0
	if pdf := list.PDFValue(origin, direction); math.Abs(pdf-expected) > 1e-12 {
		t.Errorf("Expected averaged pdf %v, got %v", expected, pdf)
	}
}

func TestList_Random_UniformSelection(t *testing.T) {
	above := NewXZRect(-1, 1, -1, 1, 5, nil)
	below := NewXZRect(-1, 1, -1, 1, -5, nil)
	list := NewList(above, below)
	origin := core.NewVec3(0, 0, 0)

	tests := []struct {
		name      string
		u         float64
		wantAbove bool
	}{
		{"first half", 0.25, true},
		{"second half", 0.75, false},
		{"just below one", 0.9999999999999999, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			direction := list.Random(origin, fixedSampler{value: tt.u})
			if (direction.Y > 0) != tt.wantAbove {
				t.Errorf("Expected above=%v, got direction %v", tt.wantAbove, direction)
			}
		})
	}

	// Roughly half of the draws go to each member
	sampler := core.NewSeededSampler(5)
	aboveCount := 0
	const draws = 10000
	for i := 0; i < draws; i++ {
		if list.Random(origin, sampler).Y > 0 {
			aboveCount++
		}
	}
	if fraction := float64(aboveCount) / draws; math.Abs(fraction-0.5) > 0.03 {
		t.Errorf("Expected about half the samples above, got %v", fraction)
	}
}

// unboundedShape has no bounding box, like an infinite plane
type unboundedShape struct {
	notSampleable
}

func (unboundedShape) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	return nil, false
}

func (unboundedShape) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.AABB{}, false
}
