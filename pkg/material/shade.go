package material

import (
	"github.com/df07/go-distribution-raytracer/pkg/core"
	"github.com/df07/go-distribution-raytracer/pkg/geometry"
	"github.com/df07/go-distribution-raytracer/pkg/lights"
)

// Scene is the read-only view of the world that shading calls back into
type Scene interface {
	lights.Occluder

	// Trace returns the radiance arriving along ray at recursion depth
	Trace(ray core.Ray, depth int, sampler *core.Sampler) core.Vec3
	Lights() []lights.Light
	AmbientLight() *lights.Light
}

// ShadeContext carries everything needed to shade one hit
type ShadeContext struct {
	Ray     core.Ray
	Hit     geometry.HitRecord // Normal already faces the incoming ray
	Depth   int
	Sampler *core.Sampler
	Scene   Scene
}

// Shade returns the radiance leaving the hit point back along the ray.
// The result is unclamped.
func (m *Material) Shade(ctx *ShadeContext) core.Vec3 {
	if m.Kind == KindEmissive {
		return m.Radiance()
	}

	n := ctx.Hit.Normal
	wo := ctx.Ray.Direction.Negate().Normalize()

	ambient := ctx.Scene.AmbientLight()
	color := m.ambientRho().MultiplyVec(ambient.Radiance())
	if ambient.Kind == lights.KindAmbientOcclusion {
		color = color.Multiply(ambient.ShadowAmount(ctx.Hit, ctx.Scene, ctx.Sampler))
	}

	sceneLights := ctx.Scene.Lights()
	for i := range sceneLights {
		light := &sceneLights[i]

		wi := light.IncidentDirection(ctx.Hit)
		nDotWi := n.Dot(wi)
		if nDotWi <= 0 {
			continue
		}
		radiance := light.Radiance()
		if radiance.MaxComponent() <= 0 {
			continue
		}

		shadow := light.ShadowAmount(ctx.Hit, ctx.Scene, ctx.Sampler)
		if shadow == 0 {
			continue
		}

		f := m.Diffuse.F(n, wo, wi).Add(m.Specular.F(n, wo, wi))
		color = color.Add(f.MultiplyVec(radiance).Multiply(shadow * nDotWi))
	}

	if m.Kind == KindReflective {
		color = color.Add(m.mirrorTerm(ctx, wo))
	}
	return color
}

// mirrorTerm follows the perfect reflection of wo one level deeper
func (m *Material) mirrorTerm(ctx *ShadeContext, wo core.Vec3) core.Vec3 {
	n := ctx.Hit.Normal
	wi := core.Reflect(wo, n)
	nDotWi := n.Dot(wi)
	if nDotWi <= 0 {
		return core.Vec3{}
	}

	fr := m.Mirror.SampleF(n, wo, wi)
	reflected := core.Offset(ctx.Hit.Point, wi)
	incoming := ctx.Scene.Trace(reflected, ctx.Depth+1, ctx.Sampler)
	return incoming.MultiplyVec(fr).Multiply(nDotWi)
}
