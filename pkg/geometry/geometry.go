package geometry

import (
	"fmt"

	"github.com/df07/go-distribution-raytracer/pkg/core"
)

// Kind identifies the concrete primitive held by a Geometry
type Kind uint8

const (
	KindSphere Kind = iota
	KindTriangle
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindTriangle:
		return "triangle"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// HitRecord describes the closest intersection found by a query.
// Normal is the unit geometric normal; callers orient it toward the viewer.
type HitRecord struct {
	Distance   float64   // Ray parameter of the hit
	Point      core.Vec3 // Hit point
	Normal     core.Vec3 // Unit surface normal
	MaterialID int       // Index into the world material table
	U, V       float64   // Barycentric coordinates (triangles only)
}

// Geometry is a closed set of primitives stored by value. Exactly one of the
// variant fields is meaningful, selected by Kind.
type Geometry struct {
	Kind       Kind
	MaterialID int
	Sphere     Sphere
	Triangle   Triangle
}

// NewSphere creates a sphere primitive
func NewSphere(center core.Vec3, radius float64, materialID int) Geometry {
	return Geometry{
		Kind:       KindSphere,
		MaterialID: materialID,
		Sphere:     Sphere{Center: center, Radius: radius},
	}
}

// NewTriangle creates a triangle primitive
func NewTriangle(v0, v1, v2 core.Vec3, materialID int) Geometry {
	return Geometry{
		Kind:       KindTriangle,
		MaterialID: materialID,
		Triangle:   Triangle{V0: v0, V1: v1, V2: v2},
	}
}

// Hit intersects the ray with the primitive within [tMin, tMax]
func (g *Geometry) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	var rec HitRecord
	var ok bool
	switch g.Kind {
	case KindSphere:
		rec, ok = g.Sphere.Hit(ray, tMin, tMax)
	case KindTriangle:
		rec, ok = g.Triangle.Hit(ray, tMin, tMax)
	default:
		panic(fmt.Sprintf("geometry: unknown kind %v", g.Kind))
	}
	if ok {
		rec.MaterialID = g.MaterialID
	}
	return rec, ok
}

// BoundingBox returns the axis-aligned bounds of the primitive
func (g *Geometry) BoundingBox() core.AABB {
	switch g.Kind {
	case KindSphere:
		return g.Sphere.BoundingBox()
	case KindTriangle:
		return g.Triangle.BoundingBox()
	default:
		panic(fmt.Sprintf("geometry: unknown kind %v", g.Kind))
	}
}

// Normal returns the unit surface normal at point p
func (g *Geometry) Normal(p core.Vec3) core.Vec3 {
	switch g.Kind {
	case KindSphere:
		return g.Sphere.Normal(p)
	case KindTriangle:
		return g.Triangle.Normal()
	default:
		panic(fmt.Sprintf("geometry: unknown kind %v", g.Kind))
	}
}

// Center returns the centroid of the primitive
func (g *Geometry) Center() core.Vec3 {
	switch g.Kind {
	case KindSphere:
		return g.Sphere.Center
	case KindTriangle:
		return g.Triangle.Centroid()
	default:
		panic(fmt.Sprintf("geometry: unknown kind %v", g.Kind))
	}
}

// Samples returns n² stratified points on the primitive's surface
func (g *Geometry) Samples(n int, sampler *core.Sampler) []core.Vec3 {
	switch g.Kind {
	case KindSphere:
		return sampler.Sphere(n, g.Sphere.Center, g.Sphere.Radius)
	case KindTriangle:
		return sampler.Triangle(n, g.Triangle.V0, g.Triangle.V1, g.Triangle.V2)
	default:
		panic(fmt.Sprintf("geometry: unknown kind %v", g.Kind))
	}
}

// Scale maps coordinates authored in [0, l] on every axis into the
// canonical cube [-1, 1]
func (g *Geometry) Scale(l float64) {
	switch g.Kind {
	case KindSphere:
		g.Sphere.Center = toCanonical(g.Sphere.Center, l)
		g.Sphere.Radius = g.Sphere.Radius * 2.0 / l
	case KindTriangle:
		g.Triangle.V0 = toCanonical(g.Triangle.V0, l)
		g.Triangle.V1 = toCanonical(g.Triangle.V1, l)
		g.Triangle.V2 = toCanonical(g.Triangle.V2, l)
	default:
		panic(fmt.Sprintf("geometry: unknown kind %v", g.Kind))
	}
}

func toCanonical(p core.Vec3, l float64) core.Vec3 {
	return p.Multiply(2.0 / l).Subtract(core.NewVec3(1, 1, 1))
}
