package material

import (
	"math"
	"testing"

	"github.com/df07/go-distribution-raytracer/pkg/core"
)

func TestLambertian_RhoBounded(t *testing.T) {
	sampler := core.NewSeededSampler(8)
	for i := 0; i < 100; i++ {
		kd := sampler.Float64()
		cd := core.NewVec3(sampler.Float64(), sampler.Float64(), sampler.Float64())
		rho := NewLambertian(kd, cd).Rho()
		if rho.X > 1 || rho.Y > 1 || rho.Z > 1 {
			t.Fatalf("rho %v exceeds white for kd=%f cd=%v", rho, kd, cd)
		}
	}
}

func TestLambertian_F(t *testing.T) {
	b := NewLambertian(0.5, core.NewVec3(1, 0.5, 0))
	n := core.NewVec3(0, 1, 0)

	want := core.NewVec3(0.5/math.Pi, 0.25/math.Pi, 0)
	got := b.F(n, core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 0).Normalize())
	if got.Subtract(want).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if got := b.SampleF(n, n, n); !got.IsZero() {
		t.Errorf("Lambertian SampleF must be black, got %v", got)
	}
}

func TestGlossySpecular_F(t *testing.T) {
	b := NewGlossySpecular(0.4, 10)
	n := core.NewVec3(0, 1, 0)
	wi := core.NewVec3(1, 1, 0).Normalize()

	tests := []struct {
		name     string
		wo       core.Vec3
		expected float64
	}{
		{"mirror direction", core.NewVec3(-1, 1, 0).Normalize(), 0.4},
		{"away from lobe", core.NewVec3(1, -1, 0).Normalize(), 0},
		{"off peak", core.NewVec3(0, 1, 0), 0.4 * math.Pow(math.Sqrt(0.5), 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.F(n, tt.wo, wi)
			if math.Abs(got.X-tt.expected) > 1e-12 || got.X != got.Y || got.Y != got.Z {
				t.Errorf("Expected gray %f, got %v", tt.expected, got)
			}
		})
	}

	if rho := b.Rho(); !rho.IsZero() {
		t.Errorf("GlossySpecular rho must be black, got %v", rho)
	}
}

func TestPerfectSpecular(t *testing.T) {
	b := NewPerfectSpecular(0.75, core.NewVec3(1, 1, 0.5))
	n := core.NewVec3(0, 0, 1)
	wi := core.NewVec3(0, 0.6, 0.8)

	got := b.SampleF(n, wi, wi)
	want := core.NewVec3(0.75/0.8, 0.75/0.8, 0.375/0.8)
	if got.Subtract(want).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if f := b.F(n, wi, wi); !f.IsZero() {
		t.Errorf("PerfectSpecular F must be black, got %v", f)
	}
	if rho := b.Rho(); !rho.IsZero() {
		t.Errorf("PerfectSpecular rho must be black, got %v", rho)
	}
}
