package voxel

import (
	"github.com/hakobera/voxceler/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// CubeFace is one quad of the cube template. Indices reference the eight
// corner vertices in counter-clockwise order seen from outside; centroid
// and normal are precomputed for picking and shading.
type CubeFace struct {
	Indices  [4]int
	Centroid mgl32.Vec3
	Normal   mgl32.Vec3
}

// CubeGeometry is the immutable template shared by every voxcel instance:
// eight corner vertices at ±size/2 around the local origin and six quad
// faces. Instances reference it and carry only their own position, color
// and opacity.
type CubeGeometry struct {
	Size     float32
	Vertices [8]mgl32.Vec3
	Faces    [6]CubeFace

	interleaved []float32
	indices     []int32
}

// quad winding per face, CCW from outside. Two parallel faces per axis.
var cubeFaceIndices = [6][4]int{
	{4, 5, 6, 7}, // +Z
	{1, 0, 3, 2}, // -Z
	{5, 1, 2, 6}, // +X
	{0, 4, 7, 3}, // -X
	{7, 6, 2, 3}, // +Y
	{0, 1, 5, 4}, // -Y
}

// NewCubeGeometry builds the cube template for the given edge length.
// Deterministic and side-effect free; callers cache one template and share
// it across instances instead of rebuilding per voxcel.
func NewCubeGeometry(size float32) *CubeGeometry {
	half := size * 0.5

	geometry := &CubeGeometry{
		Size: size,
		Vertices: [8]mgl32.Vec3{
			{-half, -half, -half},
			{half, -half, -half},
			{half, half, -half},
			{-half, half, -half},
			{-half, -half, half},
			{half, -half, half},
			{half, half, half},
			{-half, half, half},
		},
	}

	for i, quad := range cubeFaceIndices {
		v0 := geometry.Vertices[quad[0]]
		v1 := geometry.Vertices[quad[1]]
		v2 := geometry.Vertices[quad[2]]
		v3 := geometry.Vertices[quad[3]]

		face := CubeFace{
			Indices:  quad,
			Centroid: v0.Add(v1).Add(v2).Add(v3).Mul(0.25),
			Normal:   v1.Sub(v0).Cross(v3.Sub(v0)).Normalize(),
		}
		geometry.Faces[i] = face

		// Expand the quad into four interleaved vertices and two triangles
		// for the render backends.
		base := int32(i * 4)
		uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
		for j, vertex := range [4]mgl32.Vec3{v0, v1, v2, v3} {
			geometry.interleaved = append(geometry.interleaved,
				vertex.X(), vertex.Y(), vertex.Z(),
				uvs[j][0], uvs[j][1],
				face.Normal.X(), face.Normal.Y(), face.Normal.Z(),
			)
		}
		geometry.indices = append(geometry.indices,
			base, base+1, base+2,
			base+2, base+3, base,
		)
	}

	return geometry
}

// NewModel wraps the shared template in a placeable instance. The geometry
// arrays are referenced, never copied.
func (g *CubeGeometry) NewModel() *renderer.Model {
	model := renderer.NewModel(g.interleaved, g.indices)
	model.Name = "voxcel"
	return model
}
