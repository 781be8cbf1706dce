package renderer

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/df07/go-distribution-raytracer/pkg/core"
)

// Render traces every pixel of the view plane and returns one color per
// pixel in row-major order (index i + j·HRes, j = 0 at the bottom of the
// view). Tiles are rendered concurrently, at most opts.Workers at a time.
// The first failing tile aborts the render.
func Render(ctx context.Context, tracer Tracer, camera *Camera, vp ViewPlane, opts Options, logger core.Logger) ([]core.Vec3, RenderStats, error) {
	if err := vp.Validate(); err != nil {
		return nil, RenderStats{}, err
	}
	if err := camera.Validate(); err != nil {
		return nil, RenderStats{}, err
	}
	if err := opts.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	start := time.Now()
	tiles := NewTileGrid(vp.HRes, vp.VRes, opts.TileSize)
	buf := make([]core.Vec3, vp.HRes*vp.VRes)
	tr := NewTileRenderer(tracer, camera, vp)

	logger.Infof("rendering %dx%d with %s camera, %d samples/pixel, %d tiles on %d workers",
		vp.HRes, vp.VRes, camera.Kind, camera.SamplesSqrt*camera.SamplesSqrt, len(tiles), opts.Workers)

	var rays atomic.Int64
	var done atomic.Int64

	// Use errgroup and semaphore to limit concurrency.
	eg, egCtx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(opts.Workers))

	for _, tile := range tiles {
		if err := sem.Acquire(egCtx, 1); err != nil {
			// A failed tile cancels egCtx; report its error rather than ours
			if werr := eg.Wait(); werr != nil {
				return nil, RenderStats{}, werr
			}
			return nil, RenderStats{}, fmt.Errorf("while acquiring render worker: %w", err)
		}

		eg.Go(func() (err error) {
			defer sem.Release(1)
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: tile %d %v: %v", ErrRenderAborted, tile.ID, tile.Bounds, r)
				}
			}()

			n := tr.RenderTile(tile, buf, tile.Sampler(opts.Seed))
			rays.Add(int64(n))
			logger.Debugf("tile %d/%d done %v", done.Add(1), len(tiles), tile.Bounds)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, RenderStats{}, err
	}

	stats := RenderStats{
		Pixels:      vp.HRes * vp.VRes,
		PrimaryRays: rays.Load(),
		Tiles:       len(tiles),
		Workers:     opts.Workers,
		Elapsed:     time.Since(start),
	}
	logger.Infof("render finished in %v", stats.Elapsed)
	return buf, stats, nil
}
