package renderer

import (
	"image"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Pixels      int           // Total number of pixels rendered
	PrimaryRays int64         // Camera rays cast, excluding shadow and mirror rays
	Tiles       int           // Number of tiles the image was split into
	Workers     int           // Maximum tiles rendered concurrently
	Elapsed     time.Duration // Wall time of the render
}

// RaysPerSecond returns the primary ray throughput
func (s RenderStats) RaysPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.PrimaryRays) / s.Elapsed.Seconds()
}

// SamplesPerPixel returns the average number of primary rays per pixel
func (s RenderStats) SamplesPerPixel() float64 {
	if s.Pixels == 0 {
		return 0
	}
	return float64(s.PrimaryRays) / float64(s.Pixels)
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an
// image, in [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	sum := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			sum += (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 65535.0
		}
	}
	return sum / float64(pixels)
}
