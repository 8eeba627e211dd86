package voxel

import (
	"image"
	"image/color"

	perlin "github.com/aquilax/go-perlin"
)

// DemoImage generates the perlin-noise swatch shown before any file has
// been dropped, so the field is never empty at startup. Cells below the
// threshold stay fully transparent and produce no voxcels.
func DemoImage(size int, seed int64) *image.NRGBA {
	noise := perlin.NewPerlin(2, 2, 3, seed)
	img := image.NewNRGBA(image.Rect(0, 0, size, size))

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			n := noise.Noise2D(float64(x)/float64(size)*3.0, float64(y)/float64(size)*3.0)
			if n < -0.25 {
				continue // transparent cell
			}
			// Map [-0.25,1] onto a water-to-snow ramp.
			t := (n + 0.25) / 1.25
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(40 + t*200),
				G: uint8(90 + t*160),
				B: uint8(160 + t*80),
				A: 255,
			})
		}
	}
	return img
}
