package core

import (
	"math"
	"testing"
)

func TestAABB_Union(t *testing.T) {
	a := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABB(NewVec3(-1, 0.5, 2), NewVec3(0.5, 3, 4))

	u := a.Union(b)
	expected := NewAABB(NewVec3(-1, 0, 0), NewVec3(1, 3, 4))
	if !u.Min.Equals(expected.Min) || !u.Max.Equals(expected.Max) {
		t.Errorf("Expected %v, got %v", expected, u)
	}
}

func TestAABB_Pad(t *testing.T) {
	flat := NewAABB(NewVec3(0, 0, 5), NewVec3(1, 1, 5))
	padded := flat.Pad(2, 1e-4)

	if padded.Min.Z != 5-1e-4 || padded.Max.Z != 5+1e-4 {
		t.Errorf("Expected Z padded by 1e-4, got %v", padded)
	}
	if padded.Min.X != 0 || padded.Max.Y != 1 {
		t.Errorf("Other axes should be untouched, got %v", padded)
	}
	size := padded.Size()
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		t.Errorf("Padded box should have positive volume, got size %v", size)
	}
}

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		expected bool
	}{
		{"through center", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), true},
		{"miss to the side", NewRay(NewVec3(3, 0, -5), NewVec3(0, 0, 1)), false},
		{"parallel inside slab", NewRay(NewVec3(0.5, 0.5, -5), NewVec3(0, 0, 1)), true},
		{"pointing away", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, -1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, 0.001, math.Inf(1)); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestAABB_LongestAxisAndCorners(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 5, 2))
	if box.LongestAxis() != 1 {
		t.Errorf("Expected Y as longest axis, got %d", box.LongestAxis())
	}

	corners := box.Corners()
	rebuilt := NewAABBFromPoints(corners[:]...)
	if !rebuilt.Min.Equals(box.Min) || !rebuilt.Max.Equals(box.Max) {
		t.Errorf("Corners should span the box, got %v", rebuilt)
	}
	if !box.IsValid() {
		t.Error("Box should be valid")
	}
}
