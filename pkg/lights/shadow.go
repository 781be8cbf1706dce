package lights

import (
	"fmt"
	"math"

	"github.com/df07/go-distribution-raytracer/pkg/core"
	"github.com/df07/go-distribution-raytracer/pkg/geometry"
)

// ShadowAmount returns the visible fraction of the light from the hit point,
// in [0, 1]. hit.Normal must face the viewer.
func (l *Light) ShadowAmount(hit geometry.HitRecord, occluder Occluder, sampler *core.Sampler) float64 {
	switch l.Kind {
	case KindAmbient, KindDirectional:
		return 1.0
	case KindAmbientOcclusion:
		return l.openHemisphere(hit, occluder, sampler)
	case KindPoint:
		toLight := l.Location.Subtract(hit.Point)
		distance := toLight.Length()
		if occluder.IsInShadow(hit.Point, toLight.Divide(distance), distance) {
			return 0.0
		}
		return 1.0
	case KindArea:
		return l.visibleEmitter(hit, occluder, sampler)
	default:
		panic(fmt.Sprintf("lights: unknown kind %v", l.Kind))
	}
}

// openHemisphere casts cosine-weighted rays in the frame around the normal
// and counts the ones that escape
func (l *Light) openHemisphere(hit geometry.HitRecord, occluder Occluder, sampler *core.Sampler) float64 {
	w := hit.Normal
	u, v := core.OrthonormalBasis(w)

	samples := sampler.Hemisphere(l.SamplesSqrt, 1)
	if len(samples) == 0 {
		return 1.0
	}

	open := 0
	for _, sp := range samples {
		dir := u.Multiply(sp.X).Add(v.Multiply(sp.Y)).Add(w.Multiply(sp.Z)).Normalize()
		if !occluder.IsInShadow(hit.Point, dir, math.Inf(1)) {
			open++
		}
	}
	return float64(open) / float64(len(samples))
}

// visibleEmitter estimates how much of the emitter surface is seen from the
// hit point. Each shadow ray stops at its sample so geometry behind the
// emitter does not count.
func (l *Light) visibleEmitter(hit geometry.HitRecord, occluder Occluder, sampler *core.Sampler) float64 {
	total := 0
	visible := 0
	for i := range l.Shapes {
		for _, p := range l.Shapes[i].Samples(l.SamplesSqrt, sampler) {
			total++
			toSample := p.Subtract(hit.Point)
			distance := toSample.Length()
			if distance == 0 {
				visible++
				continue
			}
			if !occluder.IsInShadow(hit.Point, toSample.Divide(distance), distance) {
				visible++
			}
		}
	}
	if total == 0 {
		return 0.0
	}
	return float64(visible) / float64(total)
}
