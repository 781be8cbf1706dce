package geometry

import (
	"github.com/df07/go-distribution-raytracer/pkg/core"
)

// triangleEpsilon guards against near-parallel rays and hits at the origin
const triangleEpsilon = 1e-6

// Triangle represents a single flat-shaded triangle
type Triangle struct {
	V0, V1, V2 core.Vec3
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (tr Triangle) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	edge1 := tr.V1.Subtract(tr.V0)
	edge2 := tr.V2.Subtract(tr.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies in (or nearly in) the plane of the triangle
	if a > -triangleEpsilon && a < triangleEpsilon {
		return HitRecord{}, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(tr.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return HitRecord{}, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return HitRecord{}, false
	}

	t := f * edge2.Dot(q)
	if t <= triangleEpsilon || t < tMin || t > tMax {
		return HitRecord{}, false
	}

	return HitRecord{
		Distance: t,
		Point:    ray.At(t),
		Normal:   tr.Normal(),
		U:        u,
		V:        v,
	}, true
}

// Normal returns the unit normal, constant over the triangle
func (tr Triangle) Normal() core.Vec3 {
	edge1 := tr.V1.Subtract(tr.V0)
	edge2 := tr.V2.Subtract(tr.V0)
	return edge1.Cross(edge2).Normalize()
}

// Centroid returns the average of the three vertices
func (tr Triangle) Centroid() core.Vec3 {
	return tr.V0.Add(tr.V1).Add(tr.V2).Divide(3)
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (tr Triangle) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(tr.V0, tr.V1, tr.V2)
}
