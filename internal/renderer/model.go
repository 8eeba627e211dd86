package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultMaterial provides a basic material to fall back on
var DefaultMaterial = &Material{
	Name:          "default",
	DiffuseColor:  [3]float32{1.0, 1.0, 1.0},
	SpecularColor: [3]float32{1.0, 1.0, 1.0},
	Shininess:     32.0,
	Alpha:         1.0,
}

type Material struct {
	DiffuseColor  [3]float32
	SpecularColor [3]float32
	Shininess     float32
	Alpha         float32 // 0.0 = transparent, 1.0 = opaque
	Name          string
}

// Model is one placed scene object. Voxcel instances share a read-only
// geometry template (InterleavedData/Vertices/Faces point at the same
// backing arrays) and carry only their own transform and material.
type Model struct {
	ModelMatrix mgl32.Mat4
	Position    mgl32.Vec3
	Scale       mgl32.Vec3
	Rotation    mgl32.Quat
	Material    *Material
	VAO         uint32
	VBO         uint32
	EBO         uint32
	IsDirty     bool

	Id              int
	Name            string
	Vertices        []float32 // Vertex position data, 3 floats per vertex
	Faces           []int32   // Triangle indices
	InterleavedData []float32 // position(3) + texcoord(2) + normal(3) per vertex
}

// NewModel wraps shared geometry arrays in a placeable object. The slices
// are referenced, not copied.
func NewModel(interleaved []float32, faces []int32) *Model {
	vertexCount := len(interleaved) / 8
	vertices := make([]float32, vertexCount*3)
	for i := 0; i < vertexCount; i++ {
		vertices[i*3] = interleaved[i*8]
		vertices[i*3+1] = interleaved[i*8+1]
		vertices[i*3+2] = interleaved[i*8+2]
	}

	model := &Model{
		Position:        mgl32.Vec3{0, 0, 0},
		Rotation:        mgl32.QuatIdent(),
		Scale:           mgl32.Vec3{1.0, 1.0, 1.0},
		Vertices:        vertices,
		Faces:           faces,
		InterleavedData: interleaved,
	}
	model.updateModelMatrix()
	return model
}

func (m *Model) X() float32 { return m.Position[0] }
func (m *Model) Y() float32 { return m.Position[1] }
func (m *Model) Z() float32 { return m.Position[2] }

// SetPosition sets the position of the model
func (m *Model) SetPosition(x, y, z float32) {
	m.Position = mgl32.Vec3{x, y, z}
	m.updateModelMatrix()
	m.IsDirty = true
}

func (m *Model) SetScale(x, y, z float32) {
	m.Scale = mgl32.Vec3{x, y, z}
	m.updateModelMatrix()
	m.IsDirty = true
}

func (m *Model) SetDiffuseColor(r, g, b float32) {
	m.ensureMaterial()
	m.Material.DiffuseColor = [3]float32{r, g, b}
}

func (m *Model) SetAlpha(alpha float32) {
	m.ensureMaterial()
	m.Material.Alpha = alpha
}

// ensureMaterial gives the model its own material instance so color and
// alpha edits never leak through the shared default.
func (m *Model) ensureMaterial() {
	if m.Material == nil || m.Material == DefaultMaterial {
		material := *DefaultMaterial
		m.Material = &material
	}
}

func (m *Model) updateModelMatrix() {
	// TRS order: scale first, then rotate, then translate.
	scaleMatrix := mgl32.Scale3D(m.Scale[0], m.Scale[1], m.Scale[2])
	rotationMatrix := m.Rotation.Mat4()
	translationMatrix := mgl32.Translate3D(m.Position[0], m.Position[1], m.Position[2])
	m.ModelMatrix = translationMatrix.Mul4(rotationMatrix).Mul4(scaleMatrix)
}

// worldVertex returns vertex i transformed into world space.
func (m *Model) worldVertex(i int) mgl32.Vec3 {
	vertex := mgl32.Vec3{m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]}
	return ApplyModelTransformation(vertex, m.Position, m.Scale, m.Rotation)
}

func ApplyModelTransformation(vertex, position, scale mgl32.Vec3, rotation mgl32.Quat) mgl32.Vec3 {
	scaledVertex := mgl32.Vec3{vertex[0] * scale[0], vertex[1] * scale[1], vertex[2] * scale[2]}
	rotatedVertex := rotation.Mat4().Mul4x1(scaledVertex.Vec4(1)).Vec3()
	return rotatedVertex.Add(position)
}
