package voxel

import (
	"testing"
)

func TestNewCubeGeometry(t *testing.T) {
	for _, size := range []float32{0.5, 1.0, 2.5, 50.0} {
		geometry := NewCubeGeometry(size)

		if geometry == nil {
			t.Fatal("NewCubeGeometry returned nil")
		}
		if len(geometry.Vertices) != 8 {
			t.Errorf("size %g: expected 8 vertices, got %d", size, len(geometry.Vertices))
		}
		if len(geometry.Faces) != 6 {
			t.Errorf("size %g: expected 6 faces, got %d", size, len(geometry.Faces))
		}

		half := size / 2
		for i, vertex := range geometry.Vertices {
			for axis := 0; axis < 3; axis++ {
				if vertex[axis] != half && vertex[axis] != -half {
					t.Errorf("size %g: vertex %d axis %d = %g, want ±%g", size, i, axis, vertex[axis], half)
				}
			}
		}
	}
}

func TestCubeFaceIndices(t *testing.T) {
	geometry := NewCubeGeometry(1.0)

	for i, face := range geometry.Faces {
		seen := map[int]bool{}
		for _, index := range face.Indices {
			if index < 0 || index >= 8 {
				t.Errorf("face %d references out-of-range vertex %d", i, index)
			}
			if seen[index] {
				t.Errorf("face %d references vertex %d twice", i, index)
			}
			seen[index] = true
		}
	}
}

func TestCubeFaceNormalsAndCentroids(t *testing.T) {
	geometry := NewCubeGeometry(2.0)

	for i, face := range geometry.Faces {
		length := face.Normal.Len()
		if length < 0.999 || length > 1.001 {
			t.Errorf("face %d normal not unit length: %g", i, length)
		}

		// Outward normal: the centroid of an axis-aligned cube face is the
		// normal scaled by the half edge.
		expected := face.Normal.Mul(1.0) // half of size 2.0
		if face.Centroid.Sub(expected).Len() > 1e-5 {
			t.Errorf("face %d centroid %v, want %v", i, face.Centroid, expected)
		}
	}
}

func TestCubeGeometryTriangulation(t *testing.T) {
	geometry := NewCubeGeometry(1.0)

	if len(geometry.interleaved) != 24*8 {
		t.Errorf("expected 24 interleaved vertices of 8 floats, got %d floats", len(geometry.interleaved))
	}
	if len(geometry.indices) != 36 {
		t.Errorf("expected 36 triangle indices, got %d", len(geometry.indices))
	}
}

func TestCubeGeometrySharedTemplate(t *testing.T) {
	geometry := NewCubeGeometry(50.0)

	a := geometry.NewModel()
	b := geometry.NewModel()
	if &a.InterleavedData[0] != &b.InterleavedData[0] {
		t.Error("instances should share the template's vertex data")
	}
	if &a.Faces[0] != &b.Faces[0] {
		t.Error("instances should share the template's index data")
	}

	a.SetDiffuseColor(1, 0, 0)
	if b.Material != nil && b.Material.DiffuseColor == a.Material.DiffuseColor {
		t.Error("material edits must not leak between instances")
	}
}
