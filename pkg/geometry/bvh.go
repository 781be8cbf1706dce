package geometry

import (
	"fmt"
	"math"
	"sort"

	"github.com/df07/go-distribution-raytracer/pkg/core"
)

// BVHNode is an internal node of the hierarchy. Child references are either
// node indices (>= 0) or primitive indices encoded as ^index (< 0).
// A node with ChildCount 1 stores the same leaf in Left and Right.
type BVHNode struct {
	BoundingBox core.AABB
	Left        int
	Right       int
	ChildCount  int
}

// BVH represents a Bounding Volume Hierarchy over an arena of primitives.
// It is immutable after construction and safe for concurrent queries.
type BVH struct {
	Primitives []Geometry
	Nodes      []BVHNode
	root       int
}

// NewBVH constructs a BVH from a slice of primitives. The split axis at each
// level is drawn from sampler, so a fixed seed yields a fixed tree.
func NewBVH(primitives []Geometry, sampler *core.Sampler) *BVH {
	// Copy so callers can keep mutating their own slice
	prims := make([]Geometry, len(primitives))
	copy(prims, primitives)

	bvh := &BVH{Primitives: prims}
	if len(prims) == 0 {
		return bvh
	}

	boxes := make([]core.AABB, len(prims))
	order := make([]int, len(prims))
	for i := range prims {
		boxes[i] = prims[i].BoundingBox()
		order[i] = i
	}

	b := &bvhBuilder{boxes: boxes, sampler: sampler}
	bvh.root = b.build(order)
	bvh.Nodes = b.nodes
	return bvh
}

type bvhBuilder struct {
	boxes   []core.AABB
	nodes   []BVHNode
	sampler *core.Sampler
}

// build recursively partitions the index range and returns the node index
func (b *bvhBuilder) build(order []int) int {
	axis := b.sampler.Intn(3)

	var node BVHNode
	switch len(order) {
	case 1:
		leaf := ^order[0]
		node = BVHNode{Left: leaf, Right: leaf, ChildCount: 1}
	case 2:
		b.sortByAxis(order, axis)
		node = BVHNode{Left: ^order[0], Right: ^order[1], ChildCount: 2}
	default:
		b.sortByAxis(order, axis)
		mid := len(order) / 2
		node = BVHNode{
			Left:       b.build(order[:mid]),
			Right:      b.build(order[mid:]),
			ChildCount: 2,
		}
	}
	node.BoundingBox = core.Surrounding(b.boxOf(node.Left), b.boxOf(node.Right))

	b.nodes = append(b.nodes, node)
	return len(b.nodes) - 1
}

func (b *bvhBuilder) boxOf(ref int) core.AABB {
	if ref < 0 {
		return b.boxes[^ref]
	}
	return b.nodes[ref].BoundingBox
}

// sortByAxis orders primitives by the minimum corner of their boxes
func (b *bvhBuilder) sortByAxis(order []int, axis int) {
	sort.Slice(order, func(i, j int) bool {
		a := b.boxes[order[i]].Min.Axis(axis)
		c := b.boxes[order[j]].Min.Axis(axis)
		if math.IsNaN(a) || math.IsNaN(c) {
			panic(fmt.Sprintf("geometry: NaN bounding box on axis %d", axis))
		}
		return a < c
	})
}

// Len returns the number of primitives in the hierarchy
func (bvh *BVH) Len() int {
	return len(bvh.Primitives)
}

// BoundingBox returns the bounds of the whole hierarchy
func (bvh *BVH) BoundingBox() core.AABB {
	if len(bvh.Nodes) == 0 {
		return core.AABB{}
	}
	return bvh.Nodes[bvh.root].BoundingBox
}

// Hit finds the closest intersection within [tMin, tMax]
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	if len(bvh.Nodes) == 0 {
		return HitRecord{}, false
	}
	return bvh.hit(bvh.root, ray, tMin, tMax)
}

func (bvh *BVH) hit(ref int, ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	if ref < 0 {
		rec, ok := bvh.Primitives[^ref].Hit(ray, tMin, tMax)
		// A NaN distance is a broken primitive or ray; stop the render
		if ok && math.IsNaN(rec.Distance) {
			panic(fmt.Sprintf("geometry: NaN intersection distance for primitive %d along %v", ^ref, ray.Direction))
		}
		return rec, ok
	}

	node := &bvh.Nodes[ref]
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return HitRecord{}, false
	}
	if node.ChildCount == 1 {
		return bvh.hit(node.Left, ray, tMin, tMax)
	}

	left, hitLeft := bvh.hit(node.Left, ray, tMin, tMax)
	if !hitLeft {
		return bvh.hit(node.Right, ray, tMin, tMax)
	}

	// The right subtree only needs to beat the left hit
	right, hitRight := bvh.hit(node.Right, ray, tMin, left.Distance)
	if hitRight {
		return right, true
	}
	return left, true
}

// Occluded reports whether any primitive intersects the ray within
// [tMin, tMax], ignoring primitives whose material id is accepted by skip.
// It stops at the first qualifying hit.
func (bvh *BVH) Occluded(ray core.Ray, tMin, tMax float64, skip func(materialID int) bool) bool {
	if len(bvh.Nodes) == 0 {
		return false
	}
	return bvh.occluded(bvh.root, ray, tMin, tMax, skip)
}

func (bvh *BVH) occluded(ref int, ray core.Ray, tMin, tMax float64, skip func(int) bool) bool {
	if ref < 0 {
		prim := &bvh.Primitives[^ref]
		if skip != nil && skip(prim.MaterialID) {
			return false
		}
		_, ok := prim.Hit(ray, tMin, tMax)
		return ok
	}

	node := &bvh.Nodes[ref]
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return false
	}
	if bvh.occluded(node.Left, ray, tMin, tMax, skip) {
		return true
	}
	if node.ChildCount == 1 {
		return false
	}
	return bvh.occluded(node.Right, ray, tMin, tMax, skip)
}

// Depth returns the height of the tree, counting leaves as one level
func (bvh *BVH) Depth() int {
	if len(bvh.Nodes) == 0 {
		return 0
	}
	return bvh.depth(bvh.root)
}

func (bvh *BVH) depth(ref int) int {
	if ref < 0 {
		return 1
	}
	node := &bvh.Nodes[ref]
	return 1 + max(bvh.depth(node.Left), bvh.depth(node.Right))
}
