package scene

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-distribution-raytracer/pkg/core"
	"github.com/df07/go-distribution-raytracer/pkg/geometry"
	"github.com/df07/go-distribution-raytracer/pkg/lights"
	"github.com/df07/go-distribution-raytracer/pkg/loaders"
	"github.com/df07/go-distribution-raytracer/pkg/material"
	"github.com/df07/go-distribution-raytracer/pkg/renderer"
	"github.com/df07/go-distribution-raytracer/pkg/world"
)

// Scene is a built render job
type Scene struct {
	Name      string
	World     *world.World
	Camera    *renderer.Camera
	ViewPlane renderer.ViewPlane
	Options   renderer.Options
}

// builder accumulates the flat tables the world is made of
type builder struct {
	d         *Description
	logger    core.Logger
	ids       map[string]int
	materials []material.Material
	prims     []geometry.Geometry
	lights    []lights.Light
}

// Build turns the description into a world, camera and render settings
func (d *Description) Build(logger core.Logger) (*Scene, error) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	b := &builder{d: d, logger: logger, ids: make(map[string]int)}

	if err := b.addMaterials(); err != nil {
		return nil, err
	}
	for i, p := range d.Primitives {
		if err := b.addPrimitive(p); err != nil {
			return nil, fmt.Errorf("while building primitive %d (%s): %w", i, p.Type, err)
		}
	}
	for i, l := range d.Lights {
		if err := b.addLight(l); err != nil {
			return nil, fmt.Errorf("while building light %d (%s): %w", i, l.Type, err)
		}
	}

	opts := renderer.DefaultOptions()
	if d.Render.Workers > 0 {
		opts.Workers = d.Render.Workers
	}
	if d.Render.TileSize > 0 {
		opts.TileSize = d.Render.TileSize
	}
	if d.Render.Seed != 0 {
		opts.Seed = d.Render.Seed
	}

	w, err := world.New(b.prims, b.materials, b.lights, d.ambientLight(), core.NewSeededSampler(opts.Seed))
	if err != nil {
		return nil, fmt.Errorf("while building world: %w", err)
	}

	camera, err := d.camera()
	if err != nil {
		return nil, err
	}

	vp := renderer.ViewPlane{HRes: d.ViewPlane.HRes, VRes: d.ViewPlane.VRes, PixelSize: d.ViewPlane.PixelSize}
	if err := vp.Validate(); err != nil {
		return nil, err
	}

	logger.Infof("built scene %q: %d primitives, %d materials, %d lights, bvh depth %d",
		d.Name, w.BVH().Len(), len(b.materials), len(b.lights), w.BVH().Depth())

	return &Scene{Name: d.Name, World: w, Camera: camera, ViewPlane: vp, Options: opts}, nil
}

// addMaterials assigns ids in name order so builds are reproducible
func (b *builder) addMaterials() error {
	names := make([]string, 0, len(b.d.Materials))
	for name := range b.d.Materials {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		m, err := b.d.Materials[name].material()
		if err != nil {
			return fmt.Errorf("while building material %q: %w", name, err)
		}
		b.ids[name] = len(b.materials)
		b.materials = append(b.materials, m)
	}
	return nil
}

func (b *builder) materialID(name string) (int, error) {
	id, ok := b.ids[name]
	if !ok {
		return 0, fmt.Errorf("%w: unknown material %q", ErrInvalidScene, name)
	}
	return id, nil
}

func (b *builder) scaled(g geometry.Geometry) geometry.Geometry {
	if b.d.Scale > 0 {
		g.Scale(b.d.Scale)
	}
	return g
}

func (b *builder) addPrimitive(p PrimitiveConfig) error {
	if p.Type == "mesh" {
		return b.addMesh(p)
	}

	id, err := b.materialID(p.Material)
	if err != nil {
		return err
	}

	var g geometry.Geometry
	switch p.Type {
	case "sphere":
		if len(p.Center) != 3 || p.Radius <= 0 {
			return fmt.Errorf("%w: sphere needs a center and a positive radius", ErrInvalidScene)
		}
		g = geometry.NewSphere(p.Center.Vec3(core.Vec3{}), p.Radius, id)
	case "triangle":
		if len(p.Vertices) != 3 {
			return fmt.Errorf("%w: triangle needs 3 vertices, got %d", ErrInvalidScene, len(p.Vertices))
		}
		g = geometry.NewTriangle(p.Vertices[0].Vec3(core.Vec3{}), p.Vertices[1].Vec3(core.Vec3{}), p.Vertices[2].Vec3(core.Vec3{}), id)
	default:
		return fmt.Errorf("%w: unknown primitive type %q", ErrInvalidScene, p.Type)
	}

	b.prims = append(b.prims, b.scaled(g))
	if mat := &b.materials[id]; mat.IsEmissive() {
		b.lights = append(b.lights, lights.NewArea([]geometry.Geometry{b.prims[len(b.prims)-1]}, mat.Ls, mat.Ce, loaders.DefaultLightSamples))
	}
	return nil
}

// addMesh includes an OBJ file with its own materials, or a PLY file shaded
// with a named material
func (b *builder) addMesh(p PrimitiveConfig) error {
	path := p.File
	if !filepath.IsAbs(path) && b.d.Dir != "" {
		path = filepath.Join(b.d.Dir, path)
	}
	opts := loaders.Options{
		Scale:        b.d.Scale,
		LightSamples: p.Samples,
		MaterialBase: len(b.materials),
		Logger:       b.logger,
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		asset, err := loaders.LoadOBJ(path, opts)
		if err != nil {
			return err
		}
		b.materials = append(b.materials, asset.Materials...)
		b.prims = append(b.prims, asset.Primitives...)
		b.lights = append(b.lights, asset.Lights...)
	case ".ply":
		id, err := b.materialID(p.Material)
		if err != nil {
			return err
		}
		mesh, err := loaders.LoadPLY(path, opts)
		if err != nil {
			return err
		}
		for _, tri := range mesh.Triangles(id) {
			b.prims = append(b.prims, b.scaled(tri))
		}
	default:
		return fmt.Errorf("%w: unsupported mesh file %q", ErrInvalidScene, p.File)
	}
	return nil
}

func (b *builder) addLight(l LightConfig) error {
	color := l.Color.Vec3(core.White)

	switch l.Type {
	case "point":
		b.lights = append(b.lights, lights.NewPoint(l.Ls, color, l.Location.Vec3(core.Vec3{})))
	case "directional":
		b.lights = append(b.lights, lights.NewDirectional(l.Ls, color, l.Direction.Vec3(core.Vec3{})))
	case "rectangle":
		if len(l.Corner) != 3 || len(l.A) != 3 || len(l.B) != 3 {
			return fmt.Errorf("%w: rectangle needs corner, a and b", ErrInvalidScene)
		}
		samples := l.Samples
		if samples <= 0 {
			samples = loaders.DefaultLightSamples
		}

		id := len(b.materials)
		b.materials = append(b.materials, material.NewEmissive(l.Ls, color))

		light := lights.NewRectangle(l.Corner.Vec3(core.Vec3{}), l.A.Vec3(core.Vec3{}), l.B.Vec3(core.Vec3{}), id, l.Ls, color, samples)
		for i := range light.Shapes {
			light.Shapes[i] = b.scaled(light.Shapes[i])
		}
		light = lights.NewArea(light.Shapes, l.Ls, color, samples)
		b.prims = append(b.prims, light.Shapes...)
		b.lights = append(b.lights, light)
	default:
		return fmt.Errorf("%w: unknown light type %q", ErrInvalidScene, l.Type)
	}
	return nil
}

func (c MaterialConfig) material() (material.Material, error) {
	color := c.Color.Vec3(core.White)
	ambient := material.NewLambertian(c.Ka, c.AmbientColor.Vec3(core.White))
	diffuse := material.NewLambertian(c.Kd, color)
	specular := material.NewGlossySpecular(c.Ks, c.Exp)

	switch c.Type {
	case "matte":
		return material.NewMatte(ambient, diffuse), nil
	case "phong":
		return material.NewPhong(ambient, diffuse, specular)
	case "reflective":
		return material.NewReflective(ambient, diffuse, specular, material.NewPerfectSpecular(c.Kr, c.ReflectColor.Vec3(core.White)))
	case "emissive":
		return material.NewEmissive(c.Ls, color), nil
	default:
		return material.Material{}, fmt.Errorf("%w: unknown material type %q", ErrInvalidScene, c.Type)
	}
}

func (d *Description) ambientLight() lights.Light {
	color := d.Ambient.Color.Vec3(core.White)
	if d.Ambient.OcclusionSamples > 0 {
		return lights.NewAmbientOcclusion(d.Ambient.Ls, color, d.Ambient.OcclusionSamples)
	}
	return lights.NewAmbient(d.Ambient.Ls, color)
}

func (d *Description) camera() (*renderer.Camera, error) {
	cfg := renderer.CameraConfig{
		Eye:           d.Camera.Eye.Vec3(core.Vec3{}),
		LookAt:        d.Camera.LookAt.Vec3(core.Vec3{}),
		Up:            d.Camera.Up.Vec3(core.NewVec3(0, 1, 0)),
		ViewDistance:  d.Camera.ViewDistance,
		SamplesSqrt:   d.Camera.Samples,
		LensRadius:    d.Camera.LensRadius,
		FocalDistance: d.Camera.FocalDistance,
	}

	var camera *renderer.Camera
	switch d.Camera.Type {
	case "", "pinhole":
		camera = renderer.NewPinholeCamera(cfg)
	case "thin_lens":
		camera = renderer.NewThinLensCamera(cfg)
	default:
		return nil, fmt.Errorf("%w: unknown camera type %q", ErrInvalidScene, d.Camera.Type)
	}
	if err := camera.Validate(); err != nil {
		return nil, err
	}
	return camera, nil
}
