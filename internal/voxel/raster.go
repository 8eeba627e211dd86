package voxel

import (
	"fmt"
	"image"
	"net/http"
	"os"
	"strings"

	// Decoders for the drop formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// Sample is one cell of the rasterized image grid.
type Sample struct {
	Col     int
	Row     int
	Color   int     // packed 0xRRGGBB
	Opacity float32 // source alpha scaled to [0,1]
}

// SampleSource yields samples in row-major order and can restart.
type SampleSource interface {
	Next() (Sample, bool)
	Reset()
}

// Scanner downsamples an image to gridSize×gridSize once, then walks the
// pixels row-major. The scan is a stateless pass over the resized pixels,
// so Reset re-runs it over the same data.
type Scanner struct {
	grid *image.NRGBA
	size int
	next int
}

// NewScanner resizes the decoded image to exactly gridSize×gridSize with a
// nearest-neighbor scale, matching a pixelated readback.
func NewScanner(img image.Image, gridSize int) *Scanner {
	grid := image.NewNRGBA(image.Rect(0, 0, gridSize, gridSize))
	draw.NearestNeighbor.Scale(grid, grid.Bounds(), img, img.Bounds(), draw.Src, nil)
	return &Scanner{grid: grid, size: gridSize}
}

// Len is the total number of samples, gridSize².
func (s *Scanner) Len() int {
	return s.size * s.size
}

func (s *Scanner) Next() (Sample, bool) {
	if s.next >= s.Len() {
		return Sample{}, false
	}
	col := s.next % s.size
	row := s.next / s.size
	s.next++

	pixel := s.grid.NRGBAAt(col, row)
	return Sample{
		Col:     col,
		Row:     row,
		Color:   PackRGB(pixel.R, pixel.G, pixel.B),
		Opacity: float32(pixel.A) / 255.0,
	}, true
}

func (s *Scanner) Reset() {
	s.next = 0
}

// DetectImageFile sniffs the file's content type and returns it, or an
// error when it is not an image. Runs before any decode work so a bad drop
// is rejected up front.
func DetectImageFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if n == 0 && err != nil {
		return "", err
	}

	contentType := http.DetectContentType(buf[:n])
	if !strings.HasPrefix(contentType, "image/") {
		return contentType, fmt.Errorf("dropped file is %s, not an image", contentType)
	}
	return contentType, nil
}

// DecodeImageFile decodes a dropped image file.
func DecodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
