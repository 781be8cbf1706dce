package renderer

import (
	"fmt"

	"github.com/df07/go-distribution-raytracer/pkg/core"
)

// CameraKind identifies the camera model
type CameraKind uint8

const (
	CameraPinhole CameraKind = iota
	CameraThinLens
)

func (k CameraKind) String() string {
	switch k {
	case CameraPinhole:
		return "pinhole"
	case CameraThinLens:
		return "thin-lens"
	default:
		return fmt.Sprintf("CameraKind(%d)", uint8(k))
	}
}

// Tracer returns the radiance arriving along a ray. *world.World satisfies it.
type Tracer interface {
	Trace(ray core.Ray, depth int, sampler *core.Sampler) core.Vec3
}

// Camera generates primary rays in an orthonormal basis (u, v, w) where w
// points from the look-at point back to the eye
type Camera struct {
	Kind CameraKind

	Eye          core.Vec3
	LookAt       core.Vec3
	Up           core.Vec3
	ViewDistance float64 // Distance from the eye to the view plane
	SamplesSqrt  int     // Per-axis samples per pixel

	LensRadius    float64 // Thin lens only
	FocalDistance float64 // Thin lens only

	u, v, w core.Vec3
}

// CameraConfig describes a camera independent of its model
type CameraConfig struct {
	Eye           core.Vec3
	LookAt        core.Vec3
	Up            core.Vec3 // Defaults to +Y when zero
	ViewDistance  float64
	SamplesSqrt   int
	LensRadius    float64
	FocalDistance float64
}

// NewPinholeCamera creates a camera that casts every ray from the eye
func NewPinholeCamera(config CameraConfig) *Camera {
	return newCamera(CameraPinhole, config)
}

// NewThinLensCamera creates a depth-of-field camera focused at
// config.FocalDistance
func NewThinLensCamera(config CameraConfig) *Camera {
	return newCamera(CameraThinLens, config)
}

func newCamera(kind CameraKind, config CameraConfig) *Camera {
	up := config.Up
	if up.IsZero() {
		up = core.NewVec3(0, 1, 0)
	}
	c := &Camera{
		Kind:          kind,
		Eye:           config.Eye,
		LookAt:        config.LookAt,
		Up:            up,
		ViewDistance:  config.ViewDistance,
		SamplesSqrt:   config.SamplesSqrt,
		LensRadius:    config.LensRadius,
		FocalDistance: config.FocalDistance,
	}
	c.computeBasis()
	return c
}

func (c *Camera) computeBasis() {
	c.w = c.Eye.Subtract(c.LookAt).Normalize()
	c.u = c.Up.Cross(c.w).Normalize()
	c.v = c.w.Cross(c.u)
}

// Basis returns the camera frame
func (c *Camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}

// Validate checks the camera parameters
func (c *Camera) Validate() error {
	if c.ViewDistance <= 0 {
		return fmt.Errorf("%w: view distance must be positive, got %g", ErrInvalidOption, c.ViewDistance)
	}
	if c.SamplesSqrt <= 0 {
		return fmt.Errorf("%w: samples per axis must be positive, got %d", ErrInvalidOption, c.SamplesSqrt)
	}
	if c.Eye.Subtract(c.LookAt).IsZero() {
		return fmt.Errorf("%w: eye and look-at coincide", ErrInvalidOption)
	}
	if c.u.IsZero() {
		return fmt.Errorf("%w: up vector is parallel to the view direction", ErrInvalidOption)
	}
	if c.Kind == CameraThinLens {
		if c.LensRadius <= 0 {
			return fmt.Errorf("%w: lens radius must be positive, got %g", ErrInvalidOption, c.LensRadius)
		}
		if c.FocalDistance <= 0 {
			return fmt.Errorf("%w: focal distance must be positive, got %g", ErrInvalidOption, c.FocalDistance)
		}
	}
	return nil
}

// PinholeRay returns the ray from the eye through view-plane point p
func (c *Camera) PinholeRay(p core.Vec2) core.Ray {
	dir := c.u.Multiply(p.X).
		Add(c.v.Multiply(p.Y)).
		Subtract(c.w.Multiply(c.ViewDistance)).
		Normalize()
	return core.NewRay(c.Eye, dir)
}

// LensRay returns the ray from lens point lens (already scaled by the lens
// radius) through the focal-plane image of view-plane point p
func (c *Camera) LensRay(p, lens core.Vec2) core.Ray {
	origin := c.Eye.Add(c.u.Multiply(lens.X)).Add(c.v.Multiply(lens.Y))

	scale := c.FocalDistance / c.ViewDistance
	dx := p.X*scale - lens.X
	dy := p.Y*scale - lens.Y
	dir := c.u.Multiply(dx).
		Add(c.v.Multiply(dy)).
		Subtract(c.w.Multiply(c.FocalDistance)).
		Normalize()
	return core.NewRay(origin, dir)
}

// RenderPixel averages SamplesSqrt² traced samples for the pixel whose
// view-plane origin is (x, y). Sample jitter is scaled by pixelSize.
func (c *Camera) RenderPixel(tracer Tracer, x, y, pixelSize float64, sampler *core.Sampler) core.Vec3 {
	var sum core.Vec3
	var count int

	switch c.Kind {
	case CameraPinhole:
		for _, s := range sampler.Square(c.SamplesSqrt) {
			p := core.NewVec2(x+s.X*pixelSize, y+s.Y*pixelSize)
			sum = sum.Add(tracer.Trace(c.PinholeRay(p), 0, sampler))
			count++
		}
	case CameraThinLens:
		for _, s := range sampler.Disk(c.SamplesSqrt) {
			p := core.NewVec2(x+s.Square.X*pixelSize, y+s.Square.Y*pixelSize)
			lens := core.NewVec2(s.Disk.X*c.LensRadius, s.Disk.Y*c.LensRadius)
			sum = sum.Add(tracer.Trace(c.LensRay(p, lens), 0, sampler))
			count++
		}
	default:
		panic(fmt.Sprintf("renderer: unknown camera kind %v", c.Kind))
	}

	if count == 0 {
		return core.Vec3{}
	}
	return sum.Divide(float64(count))
}
