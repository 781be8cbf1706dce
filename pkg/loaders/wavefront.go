package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-distribution-raytracer/pkg/core"
	"github.com/df07/go-distribution-raytracer/pkg/material"
)

// mtlMaterial is one newmtl block of a Wavefront material library
type mtlMaterial struct {
	Name string
	Ka   core.Vec3 // Ambient color
	Kd   core.Vec3 // Diffuse color
	Ks   core.Vec3 // Specular color
	Ke   core.Vec3 // Emission
	Ns   float64   // Specular exponent
}

// objGroup is a run of faces sharing an object/group name and material
type objGroup struct {
	name     string
	material string
	faces    [][3]int
}

// LoadOBJ loads a Wavefront OBJ file and the material libraries it names.
// Every group becomes a set of triangles; emissive groups also become area
// lights.
func LoadOBJ(filename string, opts Options) (*Asset, error) {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("while opening OBJ file: %w", err)
	}
	defer file.Close()

	asset, err := ReadOBJ(file, filepath.Dir(filename), opts)
	if err != nil {
		return nil, fmt.Errorf("while reading %s: %w", filename, err)
	}

	opts.logger().Infof("loaded OBJ %s: %d triangles, %d materials, %d lights in %v",
		filename, len(asset.Primitives), len(asset.Materials), len(asset.Lights), time.Since(startTime))
	return asset, nil
}

// ReadOBJ parses OBJ data. mtllib paths are resolved against dir.
func ReadOBJ(r io.Reader, dir string, opts Options) (*Asset, error) {
	var vertices []core.Vec3
	libs := make(map[string]*mtlMaterial)
	groups := []*objGroup{{}}
	current := groups[0]

	// next starts a new group when the current one already holds faces
	next := func(name, mat string) {
		if len(current.faces) > 0 {
			current = &objGroup{}
			groups = append(groups, current)
		}
		current.name, current.material = name, mat
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseTriple(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedAsset, lineNo, err)
			}
			vertices = append(vertices, p)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: face needs at least 3 vertices", ErrMalformedAsset, lineNo)
			}
			polygon := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				idx, err := resolveIndex(tok, len(vertices))
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedAsset, lineNo, err)
				}
				polygon = append(polygon, idx)
			}
			current.faces = append(current.faces, fan(polygon)...)
		case "o", "g":
			next(strings.Join(fields[1:], " "), current.material)
		case "usemtl":
			if len(fields) < 2 {
				return nil, fmt.Errorf("%w: line %d: usemtl without a name", ErrMalformedAsset, lineNo)
			}
			next(current.name, fields[1])
		case "mtllib":
			for _, name := range fields[1:] {
				if err := loadMTL(filepath.Join(dir, name), libs); err != nil {
					return nil, err
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("while scanning OBJ: %w", err)
	}

	asset := &Asset{}
	ids := make(map[string]int)
	for _, g := range groups {
		if len(g.faces) == 0 {
			continue
		}

		id, ok := ids[g.material]
		if !ok {
			mat, err := groupMaterial(g, libs)
			if err != nil {
				return nil, err
			}
			id = len(asset.Materials)
			ids[g.material] = id
			asset.Materials = append(asset.Materials, mat)
		}

		mesh := Mesh{Name: g.name, Vertices: vertices, Faces: g.faces}
		asset.addGroup(mesh.Triangles(opts.MaterialBase+id), &asset.Materials[id], opts)
	}
	return asset, nil
}

// groupMaterial returns the material of g, or a plain white matte when the
// group names none
func groupMaterial(g *objGroup, libs map[string]*mtlMaterial) (material.Material, error) {
	if g.material == "" {
		return material.NewMatte(material.NewLambertian(0.5, core.White), material.NewLambertian(0.8, core.White)), nil
	}
	m, ok := libs[g.material]
	if !ok {
		return material.Material{}, fmt.Errorf("%w: group %q uses unknown material %q", ErrMalformedAsset, g.name, g.material)
	}
	mat, err := m.toMaterial()
	if err != nil {
		return material.Material{}, fmt.Errorf("while converting material %q: %w", m.Name, err)
	}
	return mat, nil
}

// resolveIndex turns a face token ("7", "7/1", "-1//3") into a zero-based
// vertex index. Negative indices count back from the last vertex read.
func resolveIndex(tok string, count int) (int, error) {
	head, _, _ := strings.Cut(tok, "/")
	i, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("invalid vertex index %q", tok)
	}

	idx := i - 1
	if i < 0 {
		idx = count + i
	}
	if i == 0 || idx < 0 || idx >= count {
		return 0, fmt.Errorf("vertex index %d out of range (%d vertices)", i, count)
	}
	return idx, nil
}

func loadMTL(filename string, libs map[string]*mtlMaterial) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("while opening material library: %w", err)
	}
	defer file.Close()

	mats, err := readMTL(file)
	if err != nil {
		return fmt.Errorf("while reading %s: %w", filename, err)
	}
	for name, m := range mats {
		libs[name] = m
	}
	return nil
}

// readMTL parses a Wavefront material library. Only the coefficients the
// shading model uses are kept.
func readMTL(r io.Reader) (map[string]*mtlMaterial, error) {
	mats := make(map[string]*mtlMaterial)
	var current *mtlMaterial

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		key := fields[0]
		if key == "newmtl" {
			if len(fields) < 2 {
				return nil, fmt.Errorf("%w: line %d: newmtl without a name", ErrMalformedAsset, lineNo)
			}
			current = &mtlMaterial{Name: fields[1]}
			mats[current.Name] = current
			continue
		}
		switch key {
		case "Ka", "Kd", "Ks", "Ke", "Ns":
		default:
			continue
		}
		if current == nil {
			return nil, fmt.Errorf("%w: line %d: %s before newmtl", ErrMalformedAsset, lineNo, key)
		}

		var err error
		switch key {
		case "Ka":
			current.Ka, err = parseColor(fields[1:])
		case "Kd":
			current.Kd, err = parseColor(fields[1:])
		case "Ks":
			current.Ks, err = parseColor(fields[1:])
		case "Ke":
			current.Ke, err = parseColor(fields[1:])
		case "Ns":
			if len(fields) < 2 {
				err = fmt.Errorf("Ns without a value")
				break
			}
			current.Ns, err = strconv.ParseFloat(fields[1], 64)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedAsset, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("while scanning MTL: %w", err)
	}
	return mats, nil
}

// toMaterial maps MTL coefficients onto the shading model: emissive when the
// material emits (Ke, or Ka above 1), Phong when it has a specular color,
// matte otherwise
func (m *mtlMaterial) toMaterial() (material.Material, error) {
	switch {
	case !m.Ke.IsZero():
		ls := m.Ke.MaxComponent()
		return material.NewEmissive(ls, m.Ke.Divide(ls)), nil
	case m.Ka.X > 1:
		return material.NewEmissive(m.Ka.X, m.Kd), nil
	case !m.Ks.IsZero():
		kd, cd := split(m.Kd)
		ks, _ := split(m.Ks)
		if kd+ks >= 1 {
			s := 0.95 / (kd + ks)
			kd, ks = kd*s, ks*s
		}
		exp := m.Ns
		if exp <= 0 {
			exp = 1
		}
		return material.NewPhong(
			material.NewLambertian(0.5, m.Ka),
			material.NewLambertian(kd, cd),
			material.NewGlossySpecular(ks, exp),
		)
	default:
		return material.NewMatte(material.NewLambertian(0.5, m.Ka), material.NewLambertian(1.0, m.Kd)), nil
	}
}

// split separates a color into its largest channel and a color normalized
// to that channel
func split(c core.Vec3) (float64, core.Vec3) {
	k := c.MaxComponent()
	if k <= 0 {
		return 0, core.Vec3{}
	}
	return k, c.Divide(k)
}

func parseTriple(fields []string) (core.Vec3, error) {
	if len(fields) < 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 values, got %d", len(fields))
	}
	var p [3]float64
	for i := range p {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return core.Vec3{}, err
		}
		p[i] = v
	}
	return vec3(p), nil
}

// parseColor accepts "r g b" or a single gray value
func parseColor(fields []string) (core.Vec3, error) {
	if len(fields) == 1 {
		v, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return core.Vec3{}, err
		}
		return core.NewVec3(v, v, v), nil
	}
	return parseTriple(fields)
}
