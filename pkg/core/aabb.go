package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min.X = math.Min(min.X, point.X)
		min.Y = math.Min(min.Y, point.Y)
		min.Z = math.Min(min.Z, point.Z)

		max.X = math.Max(max.X, point.X)
		max.Y = math.Max(max.Y, point.Y)
		max.Z = math.Max(max.Z, point.Z)
	}

	return AABB{Min: min, Max: max}
}

// Hit tests if a ray intersects the box within [tMin, tMax] using the
// branchless slab method. The reciprocal direction is used so that a zero
// direction component yields a signed infinity instead of a NaN.
// See https://tavianator.com/2015/ray_box_nan.html
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	invDir := Vec3{1.0 / ray.Direction.X, 1.0 / ray.Direction.Y, 1.0 / ray.Direction.Z}

	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin.Axis(axis)
		inv := invDir.Axis(axis)

		t1 := (aabb.Min.Axis(axis) - origin) * inv
		t2 := (aabb.Max.Axis(axis) - origin) * inv

		// math.Min/Max would propagate the NaN produced by 0*Inf when the
		// origin lies on a slab plane, so compare explicitly.
		tMin = maxNum(tMin, minNum(t1, t2))
		tMax = minNum(tMax, maxNum(t1, t2))

		if tMax < math.Max(tMin, 0.0) {
			return false
		}
	}

	return tMax >= math.Max(tMin, 0.0)
}

// minNum returns the smaller of a and b, ignoring a NaN in b
func minNum(a, b float64) float64 {
	if b < a {
		return b
	}
	return a
}

// maxNum returns the larger of a and b, ignoring a NaN in b
func maxNum(a, b float64) float64 {
	if b > a {
		return b
	}
	return a
}

// Surrounding returns the box enclosing both boxes
func Surrounding(box0, box1 AABB) AABB {
	return box0.Union(box1)
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	min := Vec3{
		X: math.Min(aabb.Min.X, other.Min.X),
		Y: math.Min(aabb.Min.Y, other.Min.Y),
		Z: math.Min(aabb.Min.Z, other.Min.Z),
	}
	max := Vec3{
		X: math.Max(aabb.Max.X, other.Max.X),
		Y: math.Max(aabb.Max.Y, other.Max.Y),
		Z: math.Max(aabb.Max.Z, other.Max.Z),
	}
	return AABB{Min: min, Max: max}
}

// Contains reports whether other lies entirely inside this box
func (aabb AABB) Contains(other AABB) bool {
	return aabb.Min.X <= other.Min.X && aabb.Min.Y <= other.Min.Y && aabb.Min.Z <= other.Min.Z &&
		aabb.Max.X >= other.Max.X && aabb.Max.Y >= other.Max.Y && aabb.Max.Z >= other.Max.Z
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}
