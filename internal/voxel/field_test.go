package voxel

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/hakobera/voxceler/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// sliceSource feeds canned samples to RebuildFromSamples.
type sliceSource struct {
	samples []Sample
	next    int
}

func (s *sliceSource) Next() (Sample, bool) {
	if s.next >= len(s.samples) {
		return Sample{}, false
	}
	sample := s.samples[s.next]
	s.next++
	return sample, true
}

func (s *sliceSource) Reset() { s.next = 0 }

func gridSamples(gridSize int, color int, opacity float32) []Sample {
	var samples []Sample
	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			samples = append(samples, Sample{Col: col, Row: row, Color: color, Opacity: opacity})
		}
	}
	return samples
}

func newTestField(t *testing.T, gridSize int) (*Field, *renderer.SoftwareRenderer) {
	t.Helper()
	backend := renderer.NewSoftwareRenderer()
	if err := backend.Init(100, 100, nil); err != nil {
		t.Fatalf("backend init: %v", err)
	}
	geometry := NewCubeGeometry(50.0)
	return NewField(backend, geometry, gridSize), backend
}

func TestNewFieldHasBrush(t *testing.T) {
	field, backend := newTestField(t, 4)

	if field.Brush == nil {
		t.Fatal("field has no brush")
	}
	if len(backend.Models()) != 1 {
		t.Errorf("expected only the brush in the backend, got %d models", len(backend.Models()))
	}
	if len(field.Voxcels()) != 0 {
		t.Errorf("new field should have no voxcels, got %d", len(field.Voxcels()))
	}
}

func TestRebuildAllOpaque(t *testing.T) {
	field, backend := newTestField(t, 4)

	field.RebuildFromSamples(&sliceSource{samples: gridSamples(4, 0xffffff, 1.0)})

	if len(field.Voxcels()) != 16 {
		t.Errorf("expected 16 voxcels, got %d", len(field.Voxcels()))
	}
	if len(backend.Models()) != 17 {
		t.Errorf("expected brush + 16 models in backend, got %d", len(backend.Models()))
	}
}

func TestRebuildAllTransparent(t *testing.T) {
	field, backend := newTestField(t, 4)

	field.RebuildFromSamples(&sliceSource{samples: gridSamples(4, 0xffffff, 0.0)})

	if len(field.Voxcels()) != 0 {
		t.Errorf("zero-opacity samples must create no instances, got %d", len(field.Voxcels()))
	}
	if len(backend.Models()) != 1 {
		t.Errorf("backend should only hold the brush, got %d models", len(backend.Models()))
	}
}

func TestRebuildPreservesPartialOpacity(t *testing.T) {
	field, _ := newTestField(t, 4)

	field.RebuildFromSamples(&sliceSource{samples: []Sample{
		{Col: 1, Row: 1, Color: 0x00ff00, Opacity: 0.5},
	}})

	voxcels := field.Voxcels()
	if len(voxcels) != 1 {
		t.Fatalf("expected 1 voxcel, got %d", len(voxcels))
	}
	if voxcels[0].Material.Alpha != 0.5 {
		t.Errorf("opacity 0.5 should be kept on the instance, got %g", voxcels[0].Material.Alpha)
	}
}

func TestRebuildPositionMapping(t *testing.T) {
	field, _ := newTestField(t, 4)

	field.RebuildFromSamples(&sliceSource{samples: []Sample{
		{Col: 0, Row: 0, Color: 0xffffff, Opacity: 1.0},
		{Col: 3, Row: 3, Color: 0xffffff, Opacity: 1.0},
	}})

	voxcels := field.Voxcels()
	if len(voxcels) != 2 {
		t.Fatalf("expected 2 voxcels, got %d", len(voxcels))
	}

	// (col − g/2)·u, (g − row − g/2)·u, 0 with g=4, u=50.
	first := voxcels[0].Position
	if first != (mgl32.Vec3{-100, 100, 0}) {
		t.Errorf("sample (0,0) placed at %v, want (-100,100,0)", first)
	}
	second := voxcels[1].Position
	if second != (mgl32.Vec3{50, -50, 0}) {
		t.Errorf("sample (3,3) placed at %v, want (50,-50,0)", second)
	}
}

func TestRebuildIdempotent(t *testing.T) {
	field, backend := newTestField(t, 4)
	source := &sliceSource{samples: gridSamples(4, 0x123456, 1.0)}

	field.RebuildFromSamples(source)
	firstCount := len(field.Voxcels())
	var firstPositions []mgl32.Vec3
	for _, m := range field.Voxcels() {
		firstPositions = append(firstPositions, m.Position)
	}

	source.Reset()
	field.RebuildFromSamples(source)

	if len(field.Voxcels()) != firstCount {
		t.Errorf("second rebuild changed the count: %d vs %d", len(field.Voxcels()), firstCount)
	}
	for i, m := range field.Voxcels() {
		if m.Position != firstPositions[i] {
			t.Errorf("voxcel %d moved between identical rebuilds: %v vs %v", i, m.Position, firstPositions[i])
		}
	}
	if len(backend.Models()) != firstCount+1 {
		t.Errorf("backend accumulated models across rebuilds: %d", len(backend.Models()))
	}
}

func TestBrushSurvivesRebuild(t *testing.T) {
	field, backend := newTestField(t, 4)
	brush := field.Brush

	field.RebuildFromSamples(&sliceSource{samples: gridSamples(4, 0xffffff, 1.0)})
	field.RebuildFromSamples(&sliceSource{samples: nil})

	if field.Brush != brush {
		t.Error("brush instance was replaced by a rebuild")
	}
	found := false
	for _, m := range backend.Models() {
		if m == brush {
			found = true
		}
	}
	if !found {
		t.Error("brush no longer registered with the backend")
	}
}

func TestPlaceBrushGridAlignment(t *testing.T) {
	field, _ := newTestField(t, 4)
	u := field.UnitSize

	hits := []renderer.Hit{
		{Point: mgl32.Vec3{25, 10, -3}, Normal: mgl32.Vec3{1, 0, 0}},
		{Point: mgl32.Vec3{-13.7, 75, 20}, Normal: mgl32.Vec3{0, 1, 0}},
		{Point: mgl32.Vec3{0, 0, 25}, Normal: mgl32.Vec3{0, 0, 1}},
		{Point: mgl32.Vec3{60.2, -24.9, 25}, Normal: mgl32.Vec3{0, 0, -1}},
	}

	for i, hit := range hits {
		field.PlaceBrushAt(hit)
		for axis := 0; axis < 3; axis++ {
			cell := (field.Brush.Position[axis] - u/2) / u
			if math.Abs(float64(cell-float32(math.Round(float64(cell))))) > 1e-4 {
				t.Errorf("hit %d: axis %d position %g not on the half-offset grid", i, axis, field.Brush.Position[axis])
			}
		}
	}
}

func TestPlaceBrushAdjacentToFace(t *testing.T) {
	field, _ := newTestField(t, 4)

	// Hit the +X face of the cell centered at the origin.
	field.PlaceBrushAt(renderer.Hit{
		Point:  mgl32.Vec3{25, 0, 0},
		Normal: mgl32.Vec3{1, 0, 0},
	})

	if field.Brush.Position != (mgl32.Vec3{75, 25, 25}) {
		t.Errorf("brush at %v, want (75,25,25)", field.Brush.Position)
	}
}

func TestParkBrush(t *testing.T) {
	field, _ := newTestField(t, 4)

	field.PlaceBrushAt(renderer.Hit{Point: mgl32.Vec3{0, 0, 25}, Normal: mgl32.Vec3{0, 0, 1}})
	field.ParkBrush()

	if field.Brush.Position.Len() < 100000 {
		t.Errorf("parked brush should sit far outside the field, got %v", field.Brush.Position)
	}
}

func TestEndToEndSingleRedPixel(t *testing.T) {
	field, _ := newTestField(t, 4)

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})

	field.RebuildFromSamples(NewScanner(img, 4))

	voxcels := field.Voxcels()
	if len(voxcels) != 1 {
		t.Fatalf("expected exactly one voxcel, got %d", len(voxcels))
	}
	if voxcels[0].Material.DiffuseColor != [3]float32{1, 0, 0} {
		t.Errorf("expected red material, got %v", voxcels[0].Material.DiffuseColor)
	}
	if voxcels[0].Material.Alpha != 1.0 {
		t.Errorf("expected opaque voxcel, got alpha %g", voxcels[0].Material.Alpha)
	}
	if voxcels[0].Position != (mgl32.Vec3{-100, 100, 0}) {
		t.Errorf("voxcel at %v, want (-100,100,0)", voxcels[0].Position)
	}
}
