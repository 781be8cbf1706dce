package material

import (
	"fmt"
	"math"

	"github.com/df07/go-distribution-raytracer/pkg/core"
)

// BRDFKind identifies the reflectance model of a BRDF
type BRDFKind uint8

const (
	BRDFLambertian BRDFKind = iota
	BRDFGlossySpecular
	BRDFPerfectSpecular
)

func (k BRDFKind) String() string {
	switch k {
	case BRDFLambertian:
		return "lambertian"
	case BRDFGlossySpecular:
		return "glossy-specular"
	case BRDFPerfectSpecular:
		return "perfect-specular"
	default:
		return fmt.Sprintf("BRDFKind(%d)", uint8(k))
	}
}

// BRDF is one reflectance component of a material.
// Coefficient is kd, ks or kr depending on Kind.
type BRDF struct {
	Kind        BRDFKind
	Coefficient float64
	Color       core.Vec3 // cd for Lambertian, cr for PerfectSpecular
	Exponent    float64   // Phong exponent, GlossySpecular only
}

// NewLambertian creates a perfectly diffuse BRDF with reflectance kd·cd
func NewLambertian(kd float64, cd core.Vec3) BRDF {
	return BRDF{Kind: BRDFLambertian, Coefficient: kd, Color: cd}
}

// NewGlossySpecular creates a Phong specular lobe
func NewGlossySpecular(ks, exp float64) BRDF {
	return BRDF{Kind: BRDFGlossySpecular, Coefficient: ks, Exponent: exp}
}

// NewPerfectSpecular creates a mirror BRDF
func NewPerfectSpecular(kr float64, cr core.Vec3) BRDF {
	return BRDF{Kind: BRDFPerfectSpecular, Coefficient: kr, Color: cr}
}

// F evaluates the reflectance for light arriving along wi and leaving along
// wo at a surface with unit normal n
func (b BRDF) F(n, wo, wi core.Vec3) core.Vec3 {
	switch b.Kind {
	case BRDFLambertian:
		return b.Rho().Multiply(1.0 / math.Pi)
	case BRDFGlossySpecular:
		nDotWi := max(n.Dot(wi), 0)
		r := n.Multiply(2 * nDotWi).Subtract(wi)
		rDotWo := r.Dot(wo)
		if rDotWo <= 0 {
			return core.Vec3{}
		}
		s := b.Coefficient * math.Pow(rDotWo, b.Exponent)
		return core.NewVec3(s, s, s)
	case BRDFPerfectSpecular:
		return core.Vec3{}
	default:
		panic(fmt.Sprintf("material: unknown BRDF kind %v", b.Kind))
	}
}

// Rho returns the hemispherical reflectance
func (b BRDF) Rho() core.Vec3 {
	if b.Kind == BRDFLambertian {
		return b.Color.Multiply(b.Coefficient)
	}
	return core.Vec3{}
}

// SampleF returns the reflectance along the single mirror direction wi.
// Only PerfectSpecular is non-zero.
func (b BRDF) SampleF(n, wo, wi core.Vec3) core.Vec3 {
	if b.Kind != BRDFPerfectSpecular {
		return core.Vec3{}
	}
	return b.Color.Multiply(b.Coefficient / n.Dot(wi))
}
