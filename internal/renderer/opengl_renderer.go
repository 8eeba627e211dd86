package renderer

import (
	"github.com/hakobera/voxceler/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type OpenGLRenderer struct {
	defaultShader Shader
	models        []*Model
}

func (rend *OpenGLRenderer) Init(width, height int32, _ *glfw.Window) error {
	if err := gl.Init(); err != nil {
		return err
	}

	gl.Viewport(0, 0, width, height)
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	gl.Enable(gl.DEPTH_TEST)
	// Voxcels carry the source pixel's alpha, so blending stays on.
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	rend.defaultShader = InitShader()
	rend.defaultShader.Compile()
	logger.Log.Info("OpenGL renderer initialized")
	return nil
}

func (rend *OpenGLRenderer) AddModel(model *Model) {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(model.InterleavedData)*4, gl.Ptr(model.InterleavedData), gl.STATIC_DRAW)

	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(model.Faces)*4, gl.Ptr(model.Faces), gl.STATIC_DRAW)

	stride := int32(8 * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, gl.PtrOffset(5*4))
	gl.EnableVertexAttribArray(2)

	model.VAO = vao
	model.VBO = vbo
	model.EBO = ebo

	rend.models = append(rend.models, model)
}

func (rend *OpenGLRenderer) RemoveModel(model *Model) {
	for i, m := range rend.models {
		if m == model {
			gl.DeleteVertexArrays(1, &m.VAO)
			gl.DeleteBuffers(1, &m.VBO)
			gl.DeleteBuffers(1, &m.EBO)
			rend.models = append(rend.models[:i], rend.models[i+1:]...)
			break
		}
	}
}

func (rend *OpenGLRenderer) Models() []*Model {
	return rend.models
}

func (rend *OpenGLRenderer) Render(camera *Camera, light *Light) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	viewProjection := camera.GetViewProjection()

	rend.defaultShader.Use()
	rend.defaultShader.SetMat4("viewProjection", viewProjection)
	if light != nil {
		rend.defaultShader.SetVec3("lightPos", light.Position)
		rend.defaultShader.SetVec3("lightColor", light.Color)
		rend.defaultShader.SetFloat("lightIntensity", light.Intensity)
		rend.defaultShader.SetFloat("ambientStrength", light.Ambient)
	}

	for _, model := range rend.models {
		rend.defaultShader.SetMat4("model", model.ModelMatrix)

		material := model.Material
		if material == nil {
			material = DefaultMaterial
		}
		rend.defaultShader.SetVec3("diffuseColor", [3]float32{material.DiffuseColor[0], material.DiffuseColor[1], material.DiffuseColor[2]})
		rend.defaultShader.SetFloat("alpha", material.Alpha)

		gl.BindVertexArray(model.VAO)
		gl.DrawElements(gl.TRIANGLES, int32(len(model.Faces)), gl.UNSIGNED_INT, nil)
	}
	gl.BindVertexArray(0)
}

func (rend *OpenGLRenderer) UpdateViewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}

func (rend *OpenGLRenderer) Cleanup() {
	for _, model := range rend.models {
		gl.DeleteVertexArrays(1, &model.VAO)
		gl.DeleteBuffers(1, &model.VBO)
		gl.DeleteBuffers(1, &model.EBO)
	}
	rend.models = nil
}
