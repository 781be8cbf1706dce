package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/df07/go-distribution-raytracer/pkg/core"
)

// ToImage tone maps and quantizes a row-major pixel buffer. Pixel row j = 0
// is the bottom of the view, so it becomes the last image row.
func ToImage(pixels []core.Vec3, vp ViewPlane) (*image.RGBA, error) {
	if len(pixels) != vp.HRes*vp.VRes {
		return nil, fmt.Errorf("%w: buffer has %d pixels, view plane %dx%d", ErrInvalidOption, len(pixels), vp.HRes, vp.VRes)
	}

	img := image.NewRGBA(image.Rect(0, 0, vp.HRes, vp.VRes))
	for j := 0; j < vp.VRes; j++ {
		for i := 0; i < vp.HRes; i++ {
			rgb := core.ToRGB(pixels[i+j*vp.HRes])
			img.SetRGBA(i, vp.VRes-1-j, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
		}
	}
	return img, nil
}

// WritePNG encodes img to path and returns the number of bytes written
func WritePNG(path string, img image.Image) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("while creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := png.Encode(w, img); err != nil {
		return 0, fmt.Errorf("while encoding %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return 0, fmt.Errorf("while writing %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("while inspecting %s: %w", path, err)
	}
	return info.Size(), f.Close()
}
