package renderer

import (
	"errors"
	"fmt"
	"runtime"
)

var (
	// ErrInvalidOption is returned for non-positive resolutions, sample
	// counts and camera distances
	ErrInvalidOption = errors.New("renderer: invalid option")

	// ErrRenderAborted is returned when a worker panics while rendering.
	// The whole render is abandoned.
	ErrRenderAborted = errors.New("renderer: render aborted")
)

// ViewPlane is the pixel grid the camera projects onto
type ViewPlane struct {
	HRes      int     // Horizontal resolution in pixels
	VRes      int     // Vertical resolution in pixels
	PixelSize float64 // Size of one pixel on the view plane
}

// Validate checks that the view plane has a positive size
func (vp ViewPlane) Validate() error {
	if vp.HRes <= 0 || vp.VRes <= 0 {
		return fmt.Errorf("%w: resolution must be positive, got %dx%d", ErrInvalidOption, vp.HRes, vp.VRes)
	}
	if vp.PixelSize <= 0 {
		return fmt.Errorf("%w: pixel size must be positive, got %g", ErrInvalidOption, vp.PixelSize)
	}
	return nil
}

// PixelOrigin returns the view-plane coordinates of pixel (i, j)
func (vp ViewPlane) PixelOrigin(i, j int) (x, y float64) {
	x = vp.PixelSize * (float64(i) - float64(vp.HRes)/2.0)
	y = vp.PixelSize * (float64(j) - float64(vp.VRes)/2.0)
	return x, y
}

// Options contains render loop configuration
type Options struct {
	Workers  int   // Number of tiles rendered concurrently (0 = use CPU count)
	TileSize int   // Edge length of a square tile in pixels
	Seed     int64 // Base seed; each tile derives its own generator from it
}

// DefaultOptions returns sensible default values
func DefaultOptions() Options {
	return Options{
		Workers:  0,
		TileSize: 32,
		Seed:     42,
	}
}

// Validate checks the options, resolving defaults
func (o *Options) Validate() error {
	if o.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidOption, o.Workers)
	}
	if o.Workers == 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.TileSize <= 0 {
		return fmt.Errorf("%w: tile size must be positive, got %d", ErrInvalidOption, o.TileSize)
	}
	return nil
}
