package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-distribution-raytracer/pkg/core"
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, 0)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0, math.Inf(1))
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.Distance)
	}
}

func TestSphere_Hit_ThroughCenter(t *testing.T) {
	tests := []struct {
		name   string
		center core.Vec3
		radius float64
		origin core.Vec3
	}{
		{"unit sphere from +z", core.NewVec3(0, 0, 0), 1, core.NewVec3(0, 0, 5)},
		{"offset sphere", core.NewVec3(3, -2, 1), 0.5, core.NewVec3(-4, 7, 2)},
		{"large sphere", core.NewVec3(0, 0, -100), 40, core.NewVec3(10, 10, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(tt.center, tt.radius, 3)
			toCenter := tt.center.Subtract(tt.origin)
			ray := core.NewRay(tt.origin, toCenter.Normalize())

			hit, isHit := sphere.Hit(ray, 0, math.Inf(1))
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			expected := toCenter.Length() - tt.radius
			if math.Abs(hit.Distance-expected) > 1e-9 {
				t.Errorf("Expected distance %f, got %f", expected, hit.Distance)
			}
			if hit.MaterialID != 3 {
				t.Errorf("Expected material id 3, got %d", hit.MaterialID)
			}

			// Normal points back toward the ray origin at the near side
			if hit.Normal.Dot(ray.Direction) >= 0 {
				t.Errorf("Expected outward normal facing the ray, got %v", hit.Normal)
			}
			if math.Abs(hit.Normal.Length()-1) > 1e-9 {
				t.Errorf("Expected unit normal, got length %f", hit.Normal.Length())
			}
		})
	}
}

func TestSphere_Hit_FromInside(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 2.0, 0)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))

	hit, isHit := sphere.Hit(ray, 0, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit from inside the sphere")
	}
	if math.Abs(hit.Distance-2.0) > 1e-9 {
		t.Errorf("Expected far root t=2, got t=%f", hit.Distance)
	}
}

func TestSphere_Hit_Window(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, 0)
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))

	// Near root at 4, far root at 6
	if _, ok := sphere.Hit(ray, 0, 3.5); ok {
		t.Error("Expected miss when window ends before the sphere")
	}
	hit, ok := sphere.Hit(ray, 4.5, 10)
	if !ok || math.Abs(hit.Distance-6) > 1e-9 {
		t.Errorf("Expected far root when near root is below tMin, got %v %v", hit.Distance, ok)
	}
}

func TestSphere_BoundingBox(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 0.5, 0)
	want := core.NewAABB(core.NewVec3(0.5, 1.5, 2.5), core.NewVec3(1.5, 2.5, 3.5))
	if got := sphere.BoundingBox(); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestSphere_Scale(t *testing.T) {
	sphere := NewSphere(core.NewVec3(200, 205, 120), 40, 0)
	sphere.Scale(555)

	want := core.NewVec3(200*2.0/555-1, 205*2.0/555-1, 120*2.0/555-1)
	if sphere.Sphere.Center.Subtract(want).Length() > 1e-12 {
		t.Errorf("Expected center %v, got %v", want, sphere.Sphere.Center)
	}
	if math.Abs(sphere.Sphere.Radius-80.0/555) > 1e-12 {
		t.Errorf("Expected radius %f, got %f", 80.0/555, sphere.Sphere.Radius)
	}
}

func TestSphere_Samples(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 1, 1), 2, 0)
	samples := sphere.Samples(4, core.NewSeededSampler(11))
	if len(samples) != 16 {
		t.Fatalf("Expected 16 samples, got %d", len(samples))
	}
	for _, p := range samples {
		if d := p.Subtract(sphere.Sphere.Center).Length(); math.Abs(d-2) > 1e-9 {
			t.Errorf("Sample %v is %f from center, want 2", p, d)
		}
	}
}
