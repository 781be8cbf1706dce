package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/df07/go-distribution-raytracer/pkg/renderer"
	"github.com/df07/go-distribution-raytracer/pkg/scene"
)

func TestRenderFlags_Apply(t *testing.T) {
	d, _ := scene.Builtin("cornell")
	want := *d
	want.ViewPlane = scene.ViewPlaneConfig{HRes: 64, VRes: 48, PixelSize: d.ViewPlane.PixelSize}
	want.Camera.Samples = 2
	want.Camera.LensRadius = 0.2
	want.Ambient.OcclusionSamples = 1
	want.Render = scene.RenderConfig{Workers: 3, TileSize: 8, Seed: 99}

	flags := renderFlags{
		HRes:       64,
		VRes:       48,
		Samples:    2,
		AOSamples:  1,
		LensRadius: 0.2,
		Workers:    3,
		TileSize:   8,
		Seed:       99,
	}
	if err := flags.apply(d); err != nil {
		t.Fatalf("apply() error = %v", err)
	}
	if diff := cmp.Diff(&want, d); diff != "" {
		t.Errorf("apply() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderFlags_ApplyRejectsNegative(t *testing.T) {
	tests := []struct {
		name  string
		flags renderFlags
	}{
		{"hres", renderFlags{HRes: -1}},
		{"pixel size", renderFlags{PixelSize: -0.5}},
		{"focal distance", renderFlags{FocalDistance: -2}},
		{"tile size", renderFlags{TileSize: -16}},
		{"seed", renderFlags{Seed: -7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := scene.Builtin("mirrors")
			if err := tt.flags.apply(d); !errors.Is(err, renderer.ErrInvalidOption) {
				t.Errorf("Expected ErrInvalidOption, got %v", err)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	path, err := outputPath("", "cornell", now)
	if err != nil {
		t.Fatalf("outputPath() error = %v", err)
	}
	if want := filepath.Join("output", "cornell", "render_20240309_140507.png"); path != want {
		t.Errorf("Expected %s, got %s", want, path)
	}
	if info, err := os.Stat(filepath.Join("output", "cornell")); err != nil || !info.IsDir() {
		t.Errorf("Expected the output directory to be created: %v", err)
	}

	custom := filepath.Join(dir, "a", "b", "frame.png")
	path, err = outputPath(custom, "cornell", now)
	if err != nil || path != custom {
		t.Errorf("Expected %s, got %s (%v)", custom, path, err)
	}
	if _, err := os.Stat(filepath.Dir(custom)); err != nil {
		t.Errorf("Expected %s to be created: %v", filepath.Dir(custom), err)
	}
}

func TestFormatRenderStats(t *testing.T) {
	d, _ := scene.Builtin("mirrors")
	s, err := d.Build(nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	stats := renderer.RenderStats{
		Pixels:      120000,
		PrimaryRays: 1080000,
		Tiles:       130,
		Workers:     8,
		Elapsed:     2 * time.Second,
	}
	out := formatRenderStats(s, stats, 0.25, "frame.png", 2_500_000)

	for _, want := range []string{
		"mirrors",
		"pinhole",
		"400x300",
		"1,080,000",
		"540,000",
		"0.250",
		"frame.png (2.5 MB)",
		"2s",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in the statistics table:\n%s", want, out)
		}
	}
}
