package world

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-distribution-raytracer/pkg/core"
	"github.com/df07/go-distribution-raytracer/pkg/geometry"
	"github.com/df07/go-distribution-raytracer/pkg/lights"
	"github.com/df07/go-distribution-raytracer/pkg/material"
)

// MaxDepth is the recursion depth at which Trace returns black
const MaxDepth = 15

// ErrUnknownMaterial is returned when a primitive references a material id
// that is not in the material table
var ErrUnknownMaterial = errors.New("world: unknown material id")

// World is the immutable scene a render reads from: the BVH over all
// primitives, the material table, the lights and the ambient light.
// It is safe for concurrent use once built.
type World struct {
	bvh       *geometry.BVH
	materials []material.Material
	emissive  []bool
	lights    []lights.Light
	ambient   lights.Light
}

// New validates the scene and builds its BVH. sampler drives the random
// split axes of the hierarchy.
func New(primitives []geometry.Geometry, materials []material.Material, sceneLights []lights.Light, ambient lights.Light, sampler *core.Sampler) (*World, error) {
	for i := range primitives {
		id := primitives[i].MaterialID
		if id < 0 || id >= len(materials) {
			return nil, fmt.Errorf("%w: primitive %d uses material %d, table has %d", ErrUnknownMaterial, i, id, len(materials))
		}
	}
	if err := ambient.Validate(); err != nil {
		return nil, fmt.Errorf("while validating ambient light: %w", err)
	}
	for i := range sceneLights {
		if err := sceneLights[i].Validate(); err != nil {
			return nil, fmt.Errorf("while validating light %d: %w", i, err)
		}
	}

	emissive := make([]bool, len(materials))
	for i := range materials {
		emissive[i] = materials[i].IsEmissive()
	}

	return &World{
		bvh:       geometry.NewBVH(primitives, sampler),
		materials: materials,
		emissive:  emissive,
		lights:    sceneLights,
		ambient:   ambient,
	}, nil
}

// Trace returns the radiance arriving back along ray
func (w *World) Trace(ray core.Ray, depth int, sampler *core.Sampler) core.Vec3 {
	if depth >= MaxDepth {
		return core.Vec3{}
	}

	hit, ok := w.bvh.Hit(ray, 0, math.Inf(1))
	if !ok {
		return core.Vec3{}
	}

	// Shade the side the ray arrived from
	wo := ray.Direction.Negate()
	if hit.Normal.Dot(wo) < 0 {
		hit.Normal = hit.Normal.Negate()
	}

	ctx := material.ShadeContext{
		Ray:     ray,
		Hit:     hit,
		Depth:   depth,
		Sampler: sampler,
		Scene:   w,
	}
	return w.materials[hit.MaterialID].Shade(&ctx)
}

// IsInShadow reports whether a non-emissive primitive lies along dir from
// point within tMax. The origin is nudged off the surface first.
func (w *World) IsInShadow(point, dir core.Vec3, tMax float64) bool {
	return w.bvh.Occluded(core.Offset(point, dir), 0, tMax, w.isEmissive)
}

func (w *World) isEmissive(materialID int) bool {
	return w.emissive[materialID]
}

// Lights returns the direct light sources
func (w *World) Lights() []lights.Light {
	return w.lights
}

// AmbientLight returns the light used for the ambient term
func (w *World) AmbientLight() *lights.Light {
	return &w.ambient
}

// Materials returns the material table
func (w *World) Materials() []material.Material {
	return w.materials
}

// BVH returns the acceleration structure over the scene primitives
func (w *World) BVH() *geometry.BVH {
	return w.bvh
}
