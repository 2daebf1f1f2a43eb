package core

import (
	"math"
	"testing"
)

func TestRandomUnitVector_UnitLength(t *testing.T) {
	sampler := NewSeededSampler(42)
	for i := 0; i < 10000; i++ {
		v := RandomUnitVector(sampler)
		if math.Abs(v.Length()-1) >= 1e-9 {
			t.Fatalf("Sample %d has length %.15f, expected 1", i, v.Length())
		}
	}
}

func TestRandomUnitVector_CoversSphere(t *testing.T) {
	sampler := NewSeededSampler(7)
	var sum Vec3
	const n = 20000
	for i := 0; i < n; i++ {
		sum = sum.Add(RandomUnitVector(sampler))
	}

	// Uniform samples on the sphere average to the origin
	mean := sum.Multiply(1.0 / n)
	if mean.Length() > 0.05 {
		t.Errorf("Mean of unit vectors should be near zero, got %v", mean)
	}
}

func TestRandomInUnitSphere_InsideBall(t *testing.T) {
	sampler := NewSeededSampler(42)
	for i := 0; i < 10000; i++ {
		p := RandomInUnitSphere(sampler)
		if p.LengthSquared() >= 1 {
			t.Fatalf("Sample %d outside unit ball: %v (|p|²=%f)", i, p, p.LengthSquared())
		}
	}
}

func TestRandomInUnitSphere_Terminates(t *testing.T) {
	// Rejection sampling has no iteration cap; verify many draws complete
	// and that the acceptance rate matches the ball/cube volume ratio.
	counter := &countingSampler{inner: NewSeededSampler(99)}
	const n = 20000
	for i := 0; i < n; i++ {
		RandomInUnitSphere(counter)
	}

	drawsPerSample := float64(counter.calls3D) / n
	expected := 6 / math.Pi // ≈ 1.91 cube draws per accepted point
	if math.Abs(drawsPerSample-expected) > 0.1 {
		t.Errorf("Expected about %.2f draws per sample, got %.2f", expected, drawsPerSample)
	}
}

func TestRandomInHemisphere(t *testing.T) {
	sampler := NewSeededSampler(42)
	normals := []Vec3{
		NewVec3(0, 0, 1),
		NewVec3(0, -1, 0),
		NewVec3(1, 1, 1).Normalize(),
	}

	for _, normal := range normals {
		for i := 0; i < 1000; i++ {
			p := RandomInHemisphere(normal, sampler)
			if p.Dot(normal) < 0 {
				t.Fatalf("Sample %v points away from normal %v", p, normal)
			}
			if p.LengthSquared() >= 1 {
				t.Fatalf("Sample %v outside unit ball", p)
			}
		}
	}
}

func TestRandomToSphere_WithinCone(t *testing.T) {
	sampler := NewSeededSampler(3)
	radius := 1.0
	distanceSquared := 16.0
	cosThetaMax := math.Sqrt(1 - radius*radius/distanceSquared)

	for i := 0; i < 1000; i++ {
		d := RandomToSphere(radius, distanceSquared, sampler)
		if math.Abs(d.Length()-1) > 1e-9 {
			t.Fatalf("Direction should be unit length, got %f", d.Length())
		}
		if d.Z < cosThetaMax-1e-12 {
			t.Fatalf("Direction %v outside cone (cos %f < %f)", d, d.Z, cosThetaMax)
		}
	}
}

func TestONB_Orthonormal(t *testing.T) {
	for _, n := range []Vec3{NewVec3(0, 0, 1), NewVec3(1, 0, 0), NewVec3(0.3, -0.4, 0.8)} {
		onb := NewONB(n)
		const tolerance = 1e-9
		if math.Abs(onb.U.Dot(onb.V)) > tolerance || math.Abs(onb.V.Dot(onb.W)) > tolerance || math.Abs(onb.U.Dot(onb.W)) > tolerance {
			t.Errorf("Basis for %v is not orthogonal: %+v", n, onb)
		}
		if onb.Local(NewVec3(0, 0, 1)).Subtract(n.Normalize()).Length() > tolerance {
			t.Errorf("Local +Z should map to the normal %v", n)
		}
	}
}

type countingSampler struct {
	inner   Sampler
	calls3D int
}

func (c *countingSampler) Get1D() float64 { return c.inner.Get1D() }
func (c *countingSampler) Get2D() Vec2    { return c.inner.Get2D() }
func (c *countingSampler) Get3D() Vec3 {
	c.calls3D++
	return c.inner.Get3D()
}
