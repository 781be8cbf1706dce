package core

import (
	"math"
	"testing"
)

func TestSampler_SquareIsStratified(t *testing.T) {
	sampler := NewSeededSampler(42)
	n := 4

	samples := sampler.Square(n)
	if len(samples) != n*n {
		t.Fatalf("expected %d samples, got %d", n*n, len(samples))
	}

	// Every grid cell must contain exactly one sample
	seen := make(map[[2]int]int)
	for _, s := range samples {
		if s.X < 0 || s.X >= 1 || s.Y < 0 || s.Y >= 1 {
			t.Fatalf("sample %v outside unit square", s)
		}
		cell := [2]int{int(s.X * float64(n)), int(s.Y * float64(n))}
		seen[cell]++
	}
	if len(seen) != n*n {
		t.Errorf("expected %d occupied cells, got %d", n*n, len(seen))
	}
	for cell, count := range seen {
		if count != 1 {
			t.Errorf("cell %v has %d samples", cell, count)
		}
	}
}

func TestSampler_DeterministicForSeed(t *testing.T) {
	a := NewSeededSampler(7).Square(3)
	b := NewSeededSampler(7).Square(3)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestMapHemisphere(t *testing.T) {
	sampler := NewSeededSampler(1)
	for _, d := range sampler.Hemisphere(8, 1) {
		if math.Abs(d.Length()-1) > 1e-9 {
			t.Errorf("direction %v is not unit length", d)
		}
		if d.Z < 0 {
			t.Errorf("direction %v is below the hemisphere", d)
		}
	}

	// y = 0 maps to the pole for any exponent
	pole := MapHemisphere(NewVec2(0.3, 0), 1)
	if math.Abs(pole.Z-1) > 1e-12 {
		t.Errorf("expected pole, got %v", pole)
	}
}

func TestMapHemisphere_CosineWeighted(t *testing.T) {
	// For a cosine-weighted distribution E[cosθ] = 2/3
	sampler := NewSeededSampler(3)
	sum := 0.0
	samples := sampler.Hemisphere(64, 1)
	for _, d := range samples {
		sum += d.Z
	}
	mean := sum / float64(len(samples))
	if math.Abs(mean-2.0/3.0) > 0.01 {
		t.Errorf("mean cosθ = %f, want ≈ 0.667", mean)
	}
}

func TestMapDisk(t *testing.T) {
	tests := []struct {
		name     string
		p        Vec2
		expected Vec2
	}{
		{"center", NewVec2(0.5, 0.5), NewVec2(0, 0)},
		{"right edge", NewVec2(1, 0.5), NewVec2(1, 0)},
		{"top edge", NewVec2(0.5, 1), NewVec2(0, 1)},
		{"left edge", NewVec2(0, 0.5), NewVec2(-1, 0)},
		{"bottom edge", NewVec2(0.5, 0), NewVec2(0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapDisk(tt.p)
			if math.Abs(got.X-tt.expected.X) > 1e-9 || math.Abs(got.Y-tt.expected.Y) > 1e-9 {
				t.Errorf("MapDisk(%v) = %v, want %v", tt.p, got, tt.expected)
			}
		})
	}

	sampler := NewSeededSampler(5)
	for _, s := range sampler.Disk(10) {
		if s.Disk.X*s.Disk.X+s.Disk.Y*s.Disk.Y > 1+1e-9 {
			t.Errorf("disk sample %v outside unit disk", s.Disk)
		}
	}
}

func TestMapTriangle_StaysInside(t *testing.T) {
	v0 := NewVec3(0, 0, 0)
	v1 := NewVec3(1, 0, 0)
	v2 := NewVec3(0, 1, 0)

	sampler := NewSeededSampler(9)
	for _, p := range sampler.Triangle(10, v0, v1, v2) {
		if p.X < 0 || p.Y < 0 || p.X+p.Y > 1+1e-12 || p.Z != 0 {
			t.Errorf("sample %v outside triangle", p)
		}
	}

	// Points past the diagonal fold back
	folded := MapTriangle(NewVec2(0.75, 0.75), v0, v1, v2)
	if math.Abs(folded.X-0.25) > 1e-12 || math.Abs(folded.Y-0.25) > 1e-12 {
		t.Errorf("expected fold to (0.25, 0.25), got %v", folded)
	}
}

func TestOrthonormalBasis(t *testing.T) {
	for _, w := range []Vec3{NewVec3(0, 1, 0), NewVec3(0, 0, -1), NewVec3(1, 2, 3).Normalize()} {
		u, v := OrthonormalBasis(w)
		if math.Abs(u.Dot(v)) > 1e-9 || math.Abs(u.Dot(w)) > 1e-9 || math.Abs(v.Dot(w)) > 1e-9 {
			t.Errorf("basis for %v is not orthogonal: u=%v v=%v", w, u, v)
		}
		if math.Abs(u.Length()-1) > 1e-9 || math.Abs(v.Length()-1) > 1e-9 {
			t.Errorf("basis for %v is not normalized", w)
		}
	}
}
