package loaders

import (
	"errors"

	"github.com/df07/go-distribution-raytracer/pkg/core"
	"github.com/df07/go-distribution-raytracer/pkg/geometry"
	"github.com/df07/go-distribution-raytracer/pkg/lights"
	"github.com/df07/go-distribution-raytracer/pkg/material"
)

// ErrMalformedAsset is returned when a mesh or material file cannot be parsed
var ErrMalformedAsset = errors.New("loaders: malformed asset")

// DefaultLightSamples is the per-axis sample count given to area lights built
// from emissive groups
const DefaultLightSamples = 5

// Mesh is an indexed triangle mesh
type Mesh struct {
	Name     string
	Vertices []core.Vec3
	Faces    [][3]int // Vertex indices, one triple per triangle
}

// Triangles expands the mesh into triangle primitives using materialID
func (m *Mesh) Triangles(materialID int) []geometry.Geometry {
	tris := make([]geometry.Geometry, 0, len(m.Faces))
	for _, f := range m.Faces {
		tris = append(tris, geometry.NewTriangle(m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]], materialID))
	}
	return tris
}

// Options controls how a loaded file is turned into scene content
type Options struct {
	// Scale maps coordinates in [0, Scale] to [-1, 1]; 0 leaves them as authored
	Scale float64
	// LightSamples is the per-axis sample count of area lights (0 = DefaultLightSamples)
	LightSamples int
	// MaterialBase is added to every material id the loader assigns, so the
	// asset can be appended to an existing material table
	MaterialBase int
	Logger       core.Logger
}

func (o Options) lightSamples() int {
	if o.LightSamples > 0 {
		return o.LightSamples
	}
	return DefaultLightSamples
}

func (o Options) logger() core.Logger {
	if o.Logger == nil {
		return core.NopLogger{}
	}
	return o.Logger
}

// Asset is the scene content produced by a loader. Material ids of the
// primitives index Materials offset by Options.MaterialBase.
type Asset struct {
	Primitives []geometry.Geometry
	Materials  []material.Material
	Lights     []lights.Light
}

// addGroup appends triangles with the given material. Emissive groups also
// become one area light over their triangles.
func (a *Asset) addGroup(tris []geometry.Geometry, mat *material.Material, opts Options) {
	if opts.Scale > 0 {
		for i := range tris {
			tris[i].Scale(opts.Scale)
		}
	}
	a.Primitives = append(a.Primitives, tris...)

	if mat.IsEmissive() && len(tris) > 0 {
		a.Lights = append(a.Lights, lights.NewArea(tris, mat.Ls, mat.Ce, opts.lightSamples()))
	}
}

func vec3(p [3]float64) core.Vec3 {
	return core.NewVec3(p[0], p[1], p[2])
}
