package renderer

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

type Light struct {
	Position  mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
	Ambient   float32
}

// Render is the backend every scene object is registered with. The OpenGL
// implementation draws into a glfw window; the software implementation
// rasterizes into an in-memory framebuffer.
type Render interface {
	Init(width, height int32, window *glfw.Window) error
	Render(camera *Camera, light *Light)
	AddModel(model *Model)
	RemoveModel(model *Model)
	Models() []*Model
	UpdateViewport(width, height int32)
	Cleanup()
}

func NewDefaultLight() *Light {
	return &Light{
		Position:  mgl32.Vec3{600.0, 800.0, 1500.0},
		Color:     mgl32.Vec3{1.0, 1.0, 1.0},
		Intensity: 1.0,
		Ambient:   0.25,
	}
}
