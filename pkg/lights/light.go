package lights

import (
	"errors"
	"fmt"

	"github.com/df07/go-distribution-raytracer/pkg/core"
	"github.com/df07/go-distribution-raytracer/pkg/geometry"
)

// ErrInvalidLight is returned when a light is built with unusable parameters
var ErrInvalidLight = errors.New("lights: invalid light")

// Kind identifies the light variant
type Kind uint8

const (
	KindAmbient Kind = iota
	KindAmbientOcclusion
	KindDirectional
	KindPoint
	KindArea
)

func (k Kind) String() string {
	switch k {
	case KindAmbient:
		return "ambient"
	case KindAmbientOcclusion:
		return "ambient-occlusion"
	case KindDirectional:
		return "directional"
	case KindPoint:
		return "point"
	case KindArea:
		return "area"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Occluder answers shadow-ray queries against the scene
type Occluder interface {
	// IsInShadow reports whether a shadow caster lies along dir from point
	// within distance tMax
	IsInShadow(point, dir core.Vec3, tMax float64) bool
}

// Light is a closed set of light sources. Fields that a variant does not
// use are left zero.
type Light struct {
	Kind  Kind
	Ls    float64   // Radiance scale
	Color core.Vec3 // Light color

	Direction core.Vec3 // Unit direction toward a directional light
	Location  core.Vec3 // Point light position, or the centroid of an area light

	SamplesSqrt int                 // Per-axis sample count (ambient occlusion, area)
	Shapes      []geometry.Geometry // Emitter surface of an area light
}

// NewAmbient creates a constant, unoccluded ambient light
func NewAmbient(ls float64, color core.Vec3) Light {
	return Light{Kind: KindAmbient, Ls: ls, Color: color}
}

// NewAmbientOcclusion creates an ambient light attenuated by the fraction of
// the hemisphere above the hit point that is open, estimated with n² rays
func NewAmbientOcclusion(ls float64, color core.Vec3, n int) Light {
	return Light{Kind: KindAmbientOcclusion, Ls: ls, Color: color, SamplesSqrt: n}
}

// NewDirectional creates a light at infinite distance. direction points
// from the scene toward the light.
func NewDirectional(ls float64, color, direction core.Vec3) Light {
	return Light{Kind: KindDirectional, Ls: ls, Color: color, Direction: direction.Normalize()}
}

// NewPoint creates a point light with hard shadows
func NewPoint(ls float64, color, location core.Vec3) Light {
	return Light{Kind: KindPoint, Ls: ls, Color: color, Location: location}
}

// NewArea creates a light backed by emitter shapes, sampled n² times per shape.
// ls and color are the radiance scale and color of the emissive material.
func NewArea(shapes []geometry.Geometry, ls float64, color core.Vec3, n int) Light {
	var location core.Vec3
	for i := range shapes {
		location = location.Add(shapes[i].Center())
	}
	if len(shapes) > 0 {
		location = location.Divide(float64(len(shapes)))
	}

	return Light{
		Kind:        KindArea,
		Ls:          ls,
		Color:       color,
		Location:    location,
		SamplesSqrt: n,
		Shapes:      shapes,
	}
}

// NewRectangle creates an area light over the parallelogram spanned by the
// edges a and b from corner. The two triangles use materialID and must also
// be added to the scene to be visible.
func NewRectangle(corner, a, b core.Vec3, materialID int, ls float64, color core.Vec3, n int) Light {
	p1 := corner.Add(a)
	p2 := corner.Add(a).Add(b)
	p3 := corner.Add(b)
	shapes := []geometry.Geometry{
		geometry.NewTriangle(corner, p1, p2, materialID),
		geometry.NewTriangle(corner, p2, p3, materialID),
	}
	return NewArea(shapes, ls, color, n)
}

// Validate checks the parameters a light needs to be sampled
func (l *Light) Validate() error {
	if l.Ls < 0 {
		return fmt.Errorf("%w: %v light has negative radiance scale %g", ErrInvalidLight, l.Kind, l.Ls)
	}
	switch l.Kind {
	case KindAmbientOcclusion:
		if l.SamplesSqrt <= 0 {
			return fmt.Errorf("%w: ambient occlusion needs a positive sample count", ErrInvalidLight)
		}
	case KindDirectional:
		if l.Direction.IsZero() {
			return fmt.Errorf("%w: directional light has no direction", ErrInvalidLight)
		}
	case KindArea:
		if l.SamplesSqrt <= 0 {
			return fmt.Errorf("%w: area light needs a positive sample count", ErrInvalidLight)
		}
		if len(l.Shapes) == 0 {
			return fmt.Errorf("%w: area light has no shapes", ErrInvalidLight)
		}
	}
	return nil
}

// IncidentDirection returns the unit direction from the hit point toward the
// light. Ambient lights have no direction; ambient occlusion samples around
// the normal and reports the normal itself.
func (l *Light) IncidentDirection(hit geometry.HitRecord) core.Vec3 {
	switch l.Kind {
	case KindAmbient:
		return core.Vec3{}
	case KindAmbientOcclusion:
		return hit.Normal
	case KindDirectional:
		return l.Direction
	case KindPoint, KindArea:
		return l.Location.Subtract(hit.Point).Normalize()
	default:
		panic(fmt.Sprintf("lights: unknown kind %v", l.Kind))
	}
}

// Radiance returns the emitted radiance, color scaled by Ls
func (l *Light) Radiance() core.Vec3 {
	return l.Color.Multiply(l.Ls)
}
