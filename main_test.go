package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-distribution-raytracer/pkg/log"
	"github.com/df07/go-distribution-raytracer/pkg/renderer"
	"github.com/df07/go-distribution-raytracer/pkg/scene"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run(append([]string{"raytracer"}, args...))
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "mirrors.png")

	_, err := runApp(t, "render",
		"--scene", "mirrors",
		"--hres", "16", "--vres", "12", "--pixel-size", "25",
		"--samples", "1", "--workers", "2", "--seed", "3",
		"--out", out)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("Expected an image at %s: %v", out, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 12 {
		t.Errorf("Expected a 16x12 image, got %v", b)
	}
	if renderer.CalculateAverageLuminance(img) == 0 {
		t.Error("Expected a lit image")
	}
}

func TestRenderCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"negative resolution", []string{"render", "--scene", "mirrors", "--hres=-5"}, renderer.ErrInvalidOption},
		{"negative samples", []string{"render", "--scene", "mirrors", "--samples=-1"}, renderer.ErrInvalidOption},
		{"unknown scene", []string{"render", "--scene", "teapot"}, scene.ErrInvalidScene},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runApp(t, tt.args...); !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestScenesCommands(t *testing.T) {
	listing, err := runApp(t, "scenes", "list", "--scenes-dir", "scenes")
	if err != nil {
		t.Fatalf("scenes list failed: %v", err)
	}
	for _, want := range []string{"cornell", "Mirrors", "file:spheres.yaml", "builtin"} {
		if !strings.Contains(listing, want) {
			t.Errorf("Expected the listing to contain %q:\n%s", want, listing)
		}
	}

	yaml, err := runApp(t, "scenes", "show", "mirrors")
	if err != nil {
		t.Fatalf("scenes show failed: %v", err)
	}
	d, err := scene.Parse(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("Expected parseable YAML: %v\n%s", err, yaml)
	}
	if d.Name != "mirrors" {
		t.Errorf("Expected the mirrors scene, got %q", d.Name)
	}

	if _, err := runApp(t, "scenes", "show"); err == nil {
		t.Error("Expected an error without a scene argument")
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Cleanup(func() { log.SetLevel(log.Notice) })

	for _, flag := range []string{"-v", "-vv"} {
		if _, err := runApp(t, flag, "scenes", "list"); err != nil {
			t.Errorf("%s scenes list failed: %v", flag, err)
		}
	}

	version, err := runApp(t, "--version")
	if err != nil {
		t.Fatalf("--version failed: %v", err)
	}
	if !strings.Contains(version, "0.1.0") {
		t.Errorf("Expected the version in %q", version)
	}
}
