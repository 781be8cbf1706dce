package geometry

import (
	"math"

	"github.com/df07/go-distribution-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// Hit tests if a ray intersects with the sphere
func (s Sphere) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return HitRecord{}, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer root first, then the farther one
	root := (-halfB - sqrtD) / a
	if root < 0 || root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < 0 || root < tMin || root > tMax {
			return HitRecord{}, false
		}
	}

	point := ray.At(root)
	return HitRecord{
		Distance: root,
		Point:    point,
		Normal:   s.Normal(point),
	}, true
}

// Normal returns the outward unit normal at point p
func (s Sphere) Normal(p core.Vec3) core.Vec3 {
	return p.Subtract(s.Center).Divide(s.Radius)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}
