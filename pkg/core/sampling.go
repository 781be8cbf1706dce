package core

import (
	"math"
	"math/rand"
)

// Sampler produces stratified (jittered) sample sets. The unit square is
// divided into an n×n grid and one uniform offset is drawn per cell, so every
// call returns n² samples.
//
// A Sampler is not safe for concurrent use; each render worker owns one.
type Sampler struct {
	random *rand.Rand
}

// NewSampler creates a sampler from a Go random generator
func NewSampler(random *rand.Rand) *Sampler {
	return &Sampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded with seed
func NewSeededSampler(seed int64) *Sampler {
	return NewSampler(rand.New(rand.NewSource(seed)))
}

// Float64 returns a uniform value in [0, 1)
func (s *Sampler) Float64() float64 {
	return s.random.Float64()
}

// Intn returns a uniform integer in [0, n)
func (s *Sampler) Intn(n int) int {
	return s.random.Intn(n)
}

// Square returns n² jittered points on the unit square
func (s *Sampler) Square(n int) []Vec2 {
	if n <= 0 {
		return nil
	}
	samples := make([]Vec2, 0, n*n)
	inv := 1.0 / float64(n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			samples = append(samples, Vec2{
				X: (float64(i) + s.random.Float64()) * inv,
				Y: (float64(j) + s.random.Float64()) * inv,
			})
		}
	}
	return samples
}

// Hemisphere returns n² directions on the local +Z hemisphere distributed
// with density proportional to cos^e(θ)
func (s *Sampler) Hemisphere(n int, e float64) []Vec3 {
	square := s.Square(n)
	samples := make([]Vec3, len(square))
	for i, p := range square {
		samples[i] = MapHemisphere(p, e)
	}
	return samples
}

// DiskSample pairs a square sample with its concentric disk mapping so that
// pixel and lens jitter come from the same stratum
type DiskSample struct {
	Square Vec2 // Point on the unit square
	Disk   Vec2 // Corresponding point on the unit disk
}

// Disk returns n² jittered points on the unit disk
func (s *Sampler) Disk(n int) []DiskSample {
	square := s.Square(n)
	samples := make([]DiskSample, len(square))
	for i, p := range square {
		samples[i] = DiskSample{Square: p, Disk: MapDisk(p)}
	}
	return samples
}

// Triangle returns n² points uniformly distributed over the triangle
func (s *Sampler) Triangle(n int, v0, v1, v2 Vec3) []Vec3 {
	square := s.Square(n)
	samples := make([]Vec3, len(square))
	for i, p := range square {
		samples[i] = MapTriangle(p, v0, v1, v2)
	}
	return samples
}

// Sphere returns n² points uniformly distributed over the sphere surface
func (s *Sampler) Sphere(n int, center Vec3, radius float64) []Vec3 {
	square := s.Square(n)
	samples := make([]Vec3, len(square))
	for i, p := range square {
		samples[i] = center.Add(MapSphere(p).Multiply(radius))
	}
	return samples
}

// MapHemisphere maps a unit square point to a cosine-power weighted
// direction around +Z: φ = 2πx, cosθ = (1-y)^(1/(e+1))
func MapHemisphere(p Vec2, e float64) Vec3 {
	phi := 2.0 * math.Pi * p.X
	cosTheta := math.Pow(1.0-p.Y, 1.0/(e+1.0))
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))
	return Vec3{
		X: sinTheta * math.Cos(phi),
		Y: sinTheta * math.Sin(phi),
		Z: cosTheta,
	}
}

// MapDisk maps a unit square point onto the unit disk with Shirley's
// concentric mapping. The angle is computed in units of π/4 per octant.
func MapDisk(p Vec2) Vec2 {
	x := 2.0*p.X - 1.0
	y := 2.0*p.Y - 1.0

	var r, phi float64
	switch {
	case x > -y && x > y:
		r, phi = x, y/x
	case x > -y:
		r, phi = y, 2.0-x/y
	case x < y:
		r, phi = -x, 4.0+y/x
	default:
		r = -y
		if y != 0 {
			phi = 6.0 - x/y
		}
	}

	phi *= math.Pi / 4.0
	return Vec2{X: r * math.Cos(phi), Y: r * math.Sin(phi)}
}

// MapTriangle maps a unit square point into the triangle, folding points
// past the diagonal back inside
func MapTriangle(p Vec2, v0, v1, v2 Vec3) Vec3 {
	a, b := p.X, p.Y
	if a+b >= 1.0 {
		a = 1.0 - a
		b = 1.0 - b
	}
	return v0.Add(v1.Subtract(v0).Multiply(a)).Add(v2.Subtract(v0).Multiply(b))
}

// MapSphere maps a unit square point to a uniform direction on the unit sphere
func MapSphere(p Vec2) Vec3 {
	z := 1.0 - 2.0*p.X // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * p.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// OrthonormalBasis builds a right-handed frame (u, v, w) with w along the
// given unit vector. The helper axis is slightly skewed off +Y so that it is
// never parallel to an axis-aligned normal.
func OrthonormalBasis(w Vec3) (u, v Vec3) {
	v = w.Cross(NewVec3(0.0072, 1.0, 0.0034)).Normalize()
	u = v.Cross(w)
	return u, v
}
