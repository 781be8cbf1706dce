package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/df07/go-distribution-raytracer/pkg/core"
	"github.com/df07/go-distribution-raytracer/pkg/geometry"
	"github.com/df07/go-distribution-raytracer/pkg/lights"
	"github.com/df07/go-distribution-raytracer/pkg/material"
)

// writeAsset writes an OBJ and its MTL library into a fresh directory and
// returns the OBJ path
func writeAsset(t *testing.T, obj, mtl string) string {
	t.Helper()
	dir := t.TempDir()
	if mtl != "" {
		if err := os.WriteFile(filepath.Join(dir, "scene.mtl"), []byte(mtl), 0644); err != nil {
			t.Fatalf("write mtl: %v", err)
		}
	}
	path := filepath.Join(dir, "scene.obj")
	if err := os.WriteFile(path, []byte(obj), 0644); err != nil {
		t.Fatalf("write obj: %v", err)
	}
	return path
}

const lampMTL = `# ceiling lamp
newmtl lamp
Ka 0 0 0
Kd 1 1 1
Ke 4 4 2
`

const lampOBJ = `mtllib scene.mtl
o lamp
v 0 1 0
v 1 1 0
v 1 1 1
v 0 1 1
usemtl lamp
f 1 2 3 4
`

func TestLoadOBJ_EmissiveQuad(t *testing.T) {
	asset, err := LoadOBJ(writeAsset(t, lampOBJ, lampMTL), Options{LightSamples: 3})
	if err != nil {
		t.Fatalf("LoadOBJ() error = %v", err)
	}

	if len(asset.Primitives) != 2 {
		t.Fatalf("Expected 2 primitives, got %d", len(asset.Primitives))
	}
	if len(asset.Materials) != 1 || !asset.Materials[0].IsEmissive() {
		t.Fatalf("Expected one emissive material, got %+v", asset.Materials)
	}
	if got := asset.Materials[0].Radiance(); got != core.NewVec3(4, 4, 2) {
		t.Errorf("Expected radiance (4,4,2), got %v", got)
	}

	if len(asset.Lights) != 1 {
		t.Fatalf("Expected 1 light, got %d", len(asset.Lights))
	}
	light := asset.Lights[0]
	if light.Kind != lights.KindArea || len(light.Shapes) != 2 || light.SamplesSqrt != 3 {
		t.Errorf("Expected an area light over 2 triangles with 3 samples, got %s with %d shapes, %d samples",
			light.Kind, len(light.Shapes), light.SamplesSqrt)
	}
	if err := light.Validate(); err != nil {
		t.Errorf("light.Validate() error = %v", err)
	}

	want := []geometry.Geometry{
		geometry.NewTriangle(core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 0), core.NewVec3(1, 1, 1), 0),
		geometry.NewTriangle(core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 1), core.NewVec3(0, 1, 1), 0),
	}
	if diff := cmp.Diff(want, asset.Primitives); diff != "" {
		t.Errorf("primitives mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOBJ_MaterialMapping(t *testing.T) {
	mtl := `newmtl white
Ka 0.2 0.2 0.2
Kd 0.7 0.7 0.7

newmtl shiny
Ka 0.1 0.1 0.1
Kd 0.8 0.4 0.2
Ks 0.5 0.5 0.5
Ns 20

newmtl bulb
Ka 3 3 3
Kd 1 0.9 0.8
`
	obj := `mtllib scene.mtl
v 0 0 0
v 1 0 0
v 0 1 0
g floor
usemtl white
f 1 2 3
g ball
usemtl shiny
f -3 -2 -1
g light
usemtl bulb
f 1/1/1 2/2/2 3/3/3
`
	asset, err := LoadOBJ(writeAsset(t, obj, mtl), Options{MaterialBase: 10})
	if err != nil {
		t.Fatalf("LoadOBJ() error = %v", err)
	}
	if len(asset.Materials) != 3 {
		t.Fatalf("Expected 3 materials, got %d", len(asset.Materials))
	}

	approx := cmpopts.EquateApprox(0, 1e-12)
	wantMatte := material.NewMatte(material.NewLambertian(0.5, core.NewVec3(0.2, 0.2, 0.2)), material.NewLambertian(1.0, core.NewVec3(0.7, 0.7, 0.7)))
	if diff := cmp.Diff(wantMatte, asset.Materials[0], approx); diff != "" {
		t.Errorf("matte mismatch (-want +got):\n%s", diff)
	}

	phong := asset.Materials[1]
	if phong.Kind != material.KindPhong {
		t.Fatalf("Expected phong, got %s", phong.Kind)
	}
	kd, ks := phong.Diffuse.Coefficient, phong.Specular.Coefficient
	if kd+ks >= 1 {
		t.Errorf("Expected rescaled coefficients, got kd=%g ks=%g", kd, ks)
	}
	if diff := cmp.Diff(0.8/0.5, kd/ks, approx); diff != "" {
		t.Errorf("Expected kd:ks ratio preserved (-want +got):\n%s", diff)
	}
	if phong.Specular.Exponent != 20 {
		t.Errorf("Expected exponent 20, got %g", phong.Specular.Exponent)
	}

	bulb := asset.Materials[2]
	if !bulb.IsEmissive() || bulb.Ls != 3 || bulb.Ce != core.NewVec3(1, 0.9, 0.8) {
		t.Errorf("Expected Ka > 1 to make an emissive material, got %+v", bulb)
	}
	if len(asset.Lights) != 1 {
		t.Errorf("Expected 1 light, got %d", len(asset.Lights))
	}

	for i, p := range asset.Primitives {
		if p.MaterialID != 10+i {
			t.Errorf("Primitive %d: expected material %d, got %d", i, 10+i, p.MaterialID)
		}
	}
}

func TestLoadOBJ_ScaleIntoCanonicalSpace(t *testing.T) {
	obj := "v 0 0 0\nv 555 0 0\nv 0 555 555\nf 1 2 3\n"
	asset, err := LoadOBJ(writeAsset(t, obj, ""), Options{Scale: 555})
	if err != nil {
		t.Fatalf("LoadOBJ() error = %v", err)
	}

	tri := asset.Primitives[0].Triangle
	want := geometry.Triangle{
		V0: core.NewVec3(-1, -1, -1),
		V1: core.NewVec3(1, -1, -1),
		V2: core.NewVec3(-1, 1, 1),
	}
	if diff := cmp.Diff(want, tri, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("scaled triangle mismatch (-want +got):\n%s", diff)
	}

	// Faces without usemtl get a default matte
	if len(asset.Materials) != 1 || asset.Materials[0].Kind != material.KindMatte {
		t.Errorf("Expected one default matte material, got %+v", asset.Materials)
	}
}

func TestReadOBJ_Errors(t *testing.T) {
	tests := []struct {
		name string
		obj  string
	}{
		{"index out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"too few vertices", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"bad vertex", "v 0 zero 0\n"},
		{"unknown material", "v 0 0 0\nv 1 0 0\nv 0 1 0\nusemtl missing\nf 1 2 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadOBJ(strings.NewReader(tt.obj), t.TempDir(), Options{})
			if !errors.Is(err, ErrMalformedAsset) {
				t.Errorf("Expected ErrMalformedAsset, got %v", err)
			}
		})
	}
}

func TestReadOBJ_MissingLibrary(t *testing.T) {
	_, err := ReadOBJ(strings.NewReader("mtllib nowhere.mtl\n"), t.TempDir(), Options{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected a not-exist error, got %v", err)
	}
}

func TestReadMTL(t *testing.T) {
	mats, err := readMTL(strings.NewReader("newmtl gray\nKd 0.5\nillum 2\nNs 8\n"))
	if err != nil {
		t.Fatalf("readMTL() error = %v", err)
	}
	want := map[string]*mtlMaterial{
		"gray": {Name: "gray", Kd: core.NewVec3(0.5, 0.5, 0.5), Ns: 8},
	}
	if diff := cmp.Diff(want, mats); diff != "" {
		t.Errorf("materials mismatch (-want +got):\n%s", diff)
	}

	if _, err := readMTL(strings.NewReader("Kd 1 1 1\n")); !errors.Is(err, ErrMalformedAsset) {
		t.Errorf("Expected ErrMalformedAsset for Kd before newmtl, got %v", err)
	}
}
