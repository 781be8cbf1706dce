package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-distribution-raytracer/pkg/renderer"
	"github.com/df07/go-distribution-raytracer/pkg/scene"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// renderFlags are the command line overrides for a scene. Zero values keep
// what the scene file says.
type renderFlags struct {
	Scene     string
	ScenesDir string
	Out       string

	HRes      int
	VRes      int
	PixelSize float64

	Samples       int
	AOSamples     int
	LensRadius    float64
	FocalDistance float64

	Workers  int
	TileSize int
	Seed     int64
}

func readRenderFlags(ctx *cli.Context) renderFlags {
	f := renderFlags{
		Scene:         ctx.String("scene"),
		ScenesDir:     ctx.String("scenes-dir"),
		Out:           ctx.String("out"),
		HRes:          ctx.Int("hres"),
		VRes:          ctx.Int("vres"),
		PixelSize:     ctx.Float64("pixel-size"),
		Samples:       ctx.Int("samples"),
		AOSamples:     ctx.Int("ao-samples"),
		LensRadius:    ctx.Float64("lens-radius"),
		FocalDistance: ctx.Float64("focal-distance"),
		Workers:       ctx.Int("workers"),
		TileSize:      ctx.Int("tile-size"),
		Seed:          ctx.Int64("seed"),
	}

	// A positional argument names the scene too
	if ctx.NArg() > 0 {
		f.Scene = ctx.Args().First()
	}
	return f
}

// apply copies the overrides into the description
func (f renderFlags) apply(d *scene.Description) error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"hres", float64(f.HRes)},
		{"vres", float64(f.VRes)},
		{"pixel-size", f.PixelSize},
		{"samples", float64(f.Samples)},
		{"ao-samples", float64(f.AOSamples)},
		{"lens-radius", f.LensRadius},
		{"focal-distance", f.FocalDistance},
		{"workers", float64(f.Workers)},
		{"tile-size", float64(f.TileSize)},
		{"seed", float64(f.Seed)},
	} {
		if v.value < 0 {
			return fmt.Errorf("%w: --%s must be positive, got %g", renderer.ErrInvalidOption, v.name, v.value)
		}
	}

	if f.HRes > 0 {
		d.ViewPlane.HRes = f.HRes
	}
	if f.VRes > 0 {
		d.ViewPlane.VRes = f.VRes
	}
	if f.PixelSize > 0 {
		d.ViewPlane.PixelSize = f.PixelSize
	}
	if f.Samples > 0 {
		d.Camera.Samples = f.Samples
	}
	if f.AOSamples > 0 {
		d.Ambient.OcclusionSamples = f.AOSamples
	}
	if f.LensRadius > 0 {
		d.Camera.LensRadius = f.LensRadius
	}
	if f.FocalDistance > 0 {
		d.Camera.FocalDistance = f.FocalDistance
	}
	if f.Workers > 0 {
		d.Render.Workers = f.Workers
	}
	if f.TileSize > 0 {
		d.Render.TileSize = f.TileSize
	}
	if f.Seed > 0 {
		d.Render.Seed = f.Seed
	}
	return nil
}

// outputPath returns out, or output/<scene>/render_<timestamp>.png when out
// is empty, creating the parent directory
func outputPath(out, sceneName string, now time.Time) (string, error) {
	if out == "" {
		out = filepath.Join("output", sceneName, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return "", fmt.Errorf("while creating output directory: %w", err)
	}
	return out, nil
}

// Render a scene to a PNG file.
func RenderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	flags := readRenderFlags(ctx)
	d, err := scene.Open(flags.Scene, flags.ScenesDir)
	if err != nil {
		return err
	}
	if err := flags.apply(d); err != nil {
		return err
	}

	s, err := d.Build(logger)
	if err != nil {
		return err
	}

	// Ctrl-C stops the workers instead of killing the process mid-write
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Noticef("rendering %q at %dx%d", s.Name, s.ViewPlane.HRes, s.ViewPlane.VRes)
	pixels, stats, err := renderer.Render(runCtx, s.World, s.Camera, s.ViewPlane, s.Options, logger)
	if err != nil {
		return err
	}

	img, err := renderer.ToImage(pixels, s.ViewPlane)
	if err != nil {
		return err
	}
	path, err := outputPath(flags.Out, s.Name, time.Now())
	if err != nil {
		return err
	}
	size, err := renderer.WritePNG(path, img)
	if err != nil {
		return err
	}

	logger.Noticef("render statistics\n%s", formatRenderStats(s, stats, renderer.CalculateAverageLuminance(img), path, size))
	return nil
}

func formatRenderStats(s *scene.Scene, stats renderer.RenderStats, luminance float64, path string, size int64) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Statistic", "Value"})
	table.AppendBulk([][]string{
		{"Scene", s.Name},
		{"Camera", s.Camera.Kind.String()},
		{"Resolution", fmt.Sprintf("%dx%d", s.ViewPlane.HRes, s.ViewPlane.VRes)},
		{"Samples per pixel", fmt.Sprintf("%.0f", stats.SamplesPerPixel())},
		{"Primary rays", humanize.Comma(stats.PrimaryRays)},
		{"Rays per second", humanize.Comma(int64(stats.RaysPerSecond()))},
		{"Tiles", fmt.Sprintf("%d", stats.Tiles)},
		{"Workers", fmt.Sprintf("%d", stats.Workers)},
		{"Average luminance", fmt.Sprintf("%.3f", luminance)},
		{"Output", fmt.Sprintf("%s (%s)", path, humanize.Bytes(uint64(size)))},
	})
	table.SetFooter([]string{"Render time", stats.Elapsed.Round(time.Millisecond).String()})

	table.Render()
	return buf.String()
}
