package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-distribution-raytracer/pkg/core"
)

// ErrInvalidScene is returned for scene descriptions that cannot be built
var ErrInvalidScene = errors.New("scene: invalid description")

// Vec is an RGB color or a point written as [x, y, z]. A single number
// stands for a gray color.
type Vec []float64

// UnmarshalYAML accepts a scalar or a three element sequence. An empty
// sequence leaves v unset.
func (v *Vec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var f float64
		if err := node.Decode(&f); err != nil {
			return err
		}
		*v = Vec{f, f, f}
		return nil
	}

	var values []float64
	if err := node.Decode(&values); err != nil {
		return err
	}
	if len(values) == 0 {
		*v = nil
		return nil
	}
	if len(values) != 3 {
		return fmt.Errorf("line %d: expected 3 values, got %d", node.Line, len(values))
	}
	*v = values
	return nil
}

// Vec3 converts v, returning def when v was not set
func (v Vec) Vec3(def core.Vec3) core.Vec3 {
	if len(v) != 3 {
		return def
	}
	return core.NewVec3(v[0], v[1], v[2])
}

// V is shorthand for building descriptions in code
func V(x, y, z float64) Vec {
	return Vec{x, y, z}
}

// Description is the on-disk form of a scene
type Description struct {
	Name        string                    `yaml:"name"`
	Description string                    `yaml:"description,omitempty"`
	Scale       float64                   `yaml:"scale,omitempty"` // Maps authored [0, scale] coordinates to [-1, 1]
	ViewPlane   ViewPlaneConfig           `yaml:"view_plane"`
	Camera      CameraConfig              `yaml:"camera"`
	Render      RenderConfig              `yaml:"render,omitempty"`
	Ambient     AmbientConfig             `yaml:"ambient"`
	Materials   map[string]MaterialConfig `yaml:"materials"`
	Primitives  []PrimitiveConfig         `yaml:"primitives"`
	Lights      []LightConfig             `yaml:"lights,omitempty"`

	// Dir resolves relative mesh paths; set by Load
	Dir string `yaml:"-"`
}

// ViewPlaneConfig is the pixel grid
type ViewPlaneConfig struct {
	HRes      int     `yaml:"hres"`
	VRes      int     `yaml:"vres"`
	PixelSize float64 `yaml:"pixel_size"`
}

// CameraConfig selects and positions the camera
type CameraConfig struct {
	Type          string  `yaml:"type"` // pinhole or thin_lens
	Eye           Vec     `yaml:"eye"`
	LookAt        Vec     `yaml:"look_at"`
	Up            Vec     `yaml:"up,omitempty"`
	ViewDistance  float64 `yaml:"view_distance"`
	Samples       int     `yaml:"samples"` // Per-axis samples per pixel
	LensRadius    float64 `yaml:"lens_radius,omitempty"`
	FocalDistance float64 `yaml:"focal_distance,omitempty"`
}

// RenderConfig holds render loop settings; zero values keep the defaults
type RenderConfig struct {
	Workers  int   `yaml:"workers,omitempty"`
	TileSize int   `yaml:"tile_size,omitempty"`
	Seed     int64 `yaml:"seed,omitempty"`
}

// AmbientConfig is the scene's ambient light. With OcclusionSamples above
// zero it becomes an ambient occlusion light.
type AmbientConfig struct {
	Ls               float64 `yaml:"ls"`
	Color            Vec     `yaml:"color,omitempty"`
	OcclusionSamples int     `yaml:"occlusion_samples,omitempty"`
}

// MaterialConfig describes one named material
type MaterialConfig struct {
	Type         string  `yaml:"type"` // matte, phong, reflective or emissive
	Ka           float64 `yaml:"ka,omitempty"`
	Kd           float64 `yaml:"kd,omitempty"`
	Ks           float64 `yaml:"ks,omitempty"`
	Kr           float64 `yaml:"kr,omitempty"`
	Exp          float64 `yaml:"exp,omitempty"`
	Color        Vec     `yaml:"color,omitempty"`
	AmbientColor Vec     `yaml:"ambient_color,omitempty"` // Defaults to white
	ReflectColor Vec     `yaml:"reflect_color,omitempty"` // Defaults to white
	Ls           float64 `yaml:"ls,omitempty"`
}

// PrimitiveConfig is a sphere, a triangle or a mesh file include
type PrimitiveConfig struct {
	Type     string  `yaml:"type"`
	Material string  `yaml:"material,omitempty"`
	Center   Vec     `yaml:"center,omitempty"`
	Radius   float64 `yaml:"radius,omitempty"`
	Vertices []Vec   `yaml:"vertices,omitempty"`
	File     string  `yaml:"file,omitempty"`          // .obj or .ply
	Samples  int     `yaml:"light_samples,omitempty"` // Area light density for emissive .obj groups
}

// LightConfig is a point, directional or rectangle light
type LightConfig struct {
	Type      string  `yaml:"type"`
	Ls        float64 `yaml:"ls"`
	Color     Vec     `yaml:"color,omitempty"`
	Location  Vec     `yaml:"location,omitempty"`
	Direction Vec     `yaml:"direction,omitempty"`
	Corner    Vec     `yaml:"corner,omitempty"`
	A         Vec     `yaml:"a,omitempty"`
	B         Vec     `yaml:"b,omitempty"`
	Samples   int     `yaml:"samples,omitempty"`
}

// Parse decodes a YAML scene. Unknown keys are rejected.
func Parse(r io.Reader) (*Description, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var d Description
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	return &d, nil
}

// Load reads a YAML scene file. Mesh paths in it are relative to the file.
func Load(path string) (*Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("while opening scene: %w", err)
	}
	defer f.Close()

	d, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("while parsing %s: %w", path, err)
	}
	d.Dir = filepath.Dir(path)
	if d.Name == "" {
		d.Name = nameFromPath(path)
	}
	return d, nil
}

// Marshal encodes d as YAML
func (d *Description) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}
