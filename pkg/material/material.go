package material

import (
	"errors"
	"fmt"

	"github.com/df07/go-distribution-raytracer/pkg/core"
)

// ErrEnergyConservation is returned when a material's diffuse and specular
// coefficients sum to 1 or more
var ErrEnergyConservation = errors.New("material: kd + ks must be less than 1")

// Kind identifies the material variant
type Kind uint8

const (
	KindMatte Kind = iota
	KindPhong
	KindReflective
	KindEmissive
)

func (k Kind) String() string {
	switch k {
	case KindMatte:
		return "matte"
	case KindPhong:
		return "phong"
	case KindReflective:
		return "reflective"
	case KindEmissive:
		return "emissive"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Material is a closed set of surface descriptions. Non-emissive variants
// are composites of BRDF components; unused components are zero.
type Material struct {
	Kind Kind

	Ambient  BRDF
	Diffuse  BRDF
	Specular BRDF
	Mirror   BRDF

	Ls float64   // Emissive radiance scale
	Ce core.Vec3 // Emissive color
}

// NewMatte creates a purely diffuse material
func NewMatte(ambient, diffuse BRDF) Material {
	return Material{Kind: KindMatte, Ambient: ambient, Diffuse: diffuse}
}

// NewPhong creates a diffuse material with a glossy highlight
func NewPhong(ambient, diffuse, specular BRDF) (Material, error) {
	if err := checkEnergy(diffuse, specular); err != nil {
		return Material{}, err
	}
	return Material{Kind: KindPhong, Ambient: ambient, Diffuse: diffuse, Specular: specular}, nil
}

// MustPhong is like NewPhong but panics on invalid coefficients
func MustPhong(ambient, diffuse, specular BRDF) Material {
	m, err := NewPhong(ambient, diffuse, specular)
	if err != nil {
		panic(err)
	}
	return m
}

// NewReflective creates a Phong material that also mirrors the scene
func NewReflective(ambient, diffuse, specular, mirror BRDF) (Material, error) {
	if err := checkEnergy(diffuse, specular); err != nil {
		return Material{}, err
	}
	return Material{
		Kind:     KindReflective,
		Ambient:  ambient,
		Diffuse:  diffuse,
		Specular: specular,
		Mirror:   mirror,
	}, nil
}

// MustReflective is like NewReflective but panics on invalid coefficients
func MustReflective(ambient, diffuse, specular, mirror BRDF) Material {
	m, err := NewReflective(ambient, diffuse, specular, mirror)
	if err != nil {
		panic(err)
	}
	return m
}

// NewEmissive creates a light-emitting material with radiance ce·ls
func NewEmissive(ls float64, ce core.Vec3) Material {
	return Material{Kind: KindEmissive, Ls: ls, Ce: ce}
}

func checkEnergy(diffuse, specular BRDF) error {
	if diffuse.Coefficient+specular.Coefficient >= 1.0 {
		return fmt.Errorf("%w (kd=%g ks=%g)", ErrEnergyConservation, diffuse.Coefficient, specular.Coefficient)
	}
	return nil
}

// IsEmissive reports whether the material is a light source
func (m *Material) IsEmissive() bool {
	return m.Kind == KindEmissive
}

// Radiance returns the emitted radiance; black unless emissive
func (m *Material) Radiance() core.Vec3 {
	if m.Kind != KindEmissive {
		return core.Vec3{}
	}
	return m.Ce.Multiply(m.Ls)
}

// ambientRho is the reflectance applied to ambient light. Matte surfaces use
// their diffuse component.
func (m *Material) ambientRho() core.Vec3 {
	switch m.Kind {
	case KindMatte:
		return m.Diffuse.Rho()
	case KindPhong, KindReflective:
		return m.Ambient.Rho()
	default:
		return core.Vec3{}
	}
}
