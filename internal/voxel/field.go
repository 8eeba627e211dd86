package voxel

import (
	"math"

	"github.com/hakobera/voxceler/internal/renderer"
)

// parkedCoord is where the brush sits when the pick ray misses the field.
// The instance stays alive far outside the visible grid instead of being
// hidden or destroyed.
const parkedCoord float32 = 100000

// Field owns the voxcel instances registered with a render backend: the
// image-derived cubes plus the singleton brush cursor. The brush exists for
// the field's whole lifetime and is only ever repositioned.
type Field struct {
	UnitSize float32
	GridSize int
	Brush    *renderer.Model

	backend  renderer.Render
	geometry *CubeGeometry
	voxcels  []*renderer.Model
}

func NewField(backend renderer.Render, geometry *CubeGeometry, gridSize int) *Field {
	brush := geometry.NewModel()
	brush.Name = "brush"
	brush.SetDiffuseColor(1.0, 0.2, 0.2)
	brush.SetAlpha(0.5)
	brush.SetPosition(parkedCoord, parkedCoord, parkedCoord)
	backend.AddModel(brush)

	return &Field{
		UnitSize: geometry.Size,
		GridSize: gridSize,
		Brush:    brush,
		backend:  backend,
		geometry: geometry,
	}
}

// Voxcels returns the image-derived instances, brush excluded.
func (f *Field) Voxcels() []*renderer.Model {
	return f.voxcels
}

// PlaceBrushAt snaps the brush into the grid cell adjacent to the struck
// face: push the hit point half a unit along the face normal, floor each
// axis to the unit grid, then re-center by half a unit.
func (f *Field) PlaceBrushAt(hit renderer.Hit) {
	u := f.UnitSize
	q := hit.Point.Add(hit.Normal.Mul(u / 2))

	snap := func(v float32) float32 {
		return float32(math.Floor(float64(v/u)))*u + u/2
	}
	f.Brush.SetPosition(snap(q.X()), snap(q.Y()), snap(q.Z()))
}

// ParkBrush moves the brush to the "no target" sentinel.
func (f *Field) ParkBrush() {
	f.Brush.SetPosition(parkedCoord, parkedCoord, parkedCoord)
}

// Clear removes every voxcel from the backend. The brush survives.
func (f *Field) Clear() {
	for _, model := range f.voxcels {
		f.backend.RemoveModel(model)
	}
	f.voxcels = f.voxcels[:0]
}

// RebuildFromSamples fully replaces the field with one instance per sample
// whose opacity is non-zero. Image columns map to world X and rows to
// inverted world Y, all on the z=0 plane; partial opacity is kept on the
// instance material. Zero-opacity samples create nothing.
func (f *Field) RebuildFromSamples(samples SampleSource) {
	f.Clear()

	g := float32(f.GridSize)
	u := f.UnitSize
	for {
		sample, ok := samples.Next()
		if !ok {
			break
		}
		if sample.Opacity == 0 {
			continue
		}

		model := f.geometry.NewModel()
		r, green, b := RGBFloats(sample.Color)
		model.SetDiffuseColor(r, green, b)
		model.SetAlpha(sample.Opacity)
		model.SetPosition(
			(float32(sample.Col)-g/2)*u,
			(float32(f.GridSize-sample.Row)-g/2)*u,
			0,
		)

		f.backend.AddModel(model)
		f.voxcels = append(f.voxcels, model)
	}
}
