package renderer

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"sort"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// SoftwareRenderer is the fallback path when no GL context can be created.
// It projects faces onto an in-memory framebuffer with a painter sort and
// flat lambertian shading, so the scene stays renderable headless.
type SoftwareRenderer struct {
	width      int32
	height     int32
	frame      *image.RGBA
	models     []*Model
	Background color.RGBA
}

type projectedTriangle struct {
	screen [3]mgl32.Vec2
	depth  float32
	color  color.RGBA
	alpha  float32
}

func NewSoftwareRenderer() *SoftwareRenderer {
	return &SoftwareRenderer{Background: color.RGBA{0, 0, 0, 255}}
}

func (rend *SoftwareRenderer) Init(width, height int32, _ *glfw.Window) error {
	rend.width = width
	rend.height = height
	rend.frame = image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	return nil
}

func (rend *SoftwareRenderer) AddModel(model *Model) {
	rend.models = append(rend.models, model)
}

func (rend *SoftwareRenderer) RemoveModel(model *Model) {
	for i, m := range rend.models {
		if m == model {
			rend.models = append(rend.models[:i], rend.models[i+1:]...)
			break
		}
	}
}

func (rend *SoftwareRenderer) Models() []*Model {
	return rend.models
}

func (rend *SoftwareRenderer) UpdateViewport(width, height int32) {
	if width != rend.width || height != rend.height {
		rend.width = width
		rend.height = height
		rend.frame = image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	}
}

// Frame exposes the current framebuffer.
func (rend *SoftwareRenderer) Frame() *image.RGBA {
	return rend.frame
}

// Snapshot writes the current framebuffer as a PNG.
func (rend *SoftwareRenderer) Snapshot(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, rend.frame)
}

func (rend *SoftwareRenderer) Render(camera *Camera, light *Light) {
	bounds := rend.frame.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rend.frame.SetRGBA(x, y, rend.Background)
		}
	}

	eye := camera.Position()
	viewProjection := camera.GetViewProjection()

	var triangles []projectedTriangle
	for _, model := range rend.models {
		triangles = rend.appendModelTriangles(triangles, model, eye, viewProjection, light)
	}

	// Painter's algorithm: far faces first, near faces last.
	sort.Slice(triangles, func(i, j int) bool { return triangles[i].depth > triangles[j].depth })

	for _, tri := range triangles {
		rend.fillTriangle(tri)
	}
}

func (rend *SoftwareRenderer) appendModelTriangles(dst []projectedTriangle, model *Model, eye mgl32.Vec3, viewProjection mgl32.Mat4, light *Light) []projectedTriangle {
	material := model.Material
	if material == nil {
		material = DefaultMaterial
	}

	for i := 0; i+2 < len(model.Faces); i += 3 {
		w0 := model.worldVertex(int(model.Faces[i]))
		w1 := model.worldVertex(int(model.Faces[i+1]))
		w2 := model.worldVertex(int(model.Faces[i+2]))

		normal := w1.Sub(w0).Cross(w2.Sub(w0))
		if normal.Len() == 0 {
			continue
		}
		normal = normal.Normalize()
		centroid := w0.Add(w1).Add(w2).Mul(1.0 / 3.0)

		// Backface cull in world space against the eye.
		if normal.Dot(eye.Sub(centroid)) <= 0 {
			continue
		}

		var screen [3]mgl32.Vec2
		behind := false
		for j, world := range [3]mgl32.Vec3{w0, w1, w2} {
			clip := viewProjection.Mul4x1(world.Vec4(1))
			if clip.W() <= 0.001 {
				behind = true
				break
			}
			ndcX := clip.X() / clip.W()
			ndcY := clip.Y() / clip.W()
			screen[j] = mgl32.Vec2{
				(ndcX + 1.0) / 2.0 * float32(rend.width),
				(1.0 - ndcY) / 2.0 * float32(rend.height),
			}
		}
		if behind {
			continue
		}

		dst = append(dst, projectedTriangle{
			screen: screen,
			depth:  centroid.Sub(eye).Len(),
			color:  shadeFlat(material, normal, centroid, light),
			alpha:  material.Alpha,
		})
	}
	return dst
}

// shadeFlat is one lambert term plus ambient, matching the GL fragment
// shader's lighting model.
func shadeFlat(material *Material, normal, point mgl32.Vec3, light *Light) color.RGBA {
	ambient := float32(1.0)
	diffuse := float32(0.0)
	lightColor := mgl32.Vec3{1, 1, 1}
	if light != nil {
		ambient = light.Ambient
		lightDir := light.Position.Sub(point).Normalize()
		diffuse = float32(math.Max(float64(normal.Dot(lightDir)), 0)) * light.Intensity
		lightColor = light.Color
	}

	shade := func(channel int) uint8 {
		v := (ambient + diffuse) * lightColor[channel] * material.DiffuseColor[channel]
		if v > 1.0 {
			v = 1.0
		}
		return uint8(v * 255)
	}
	return color.RGBA{shade(0), shade(1), shade(2), 255}
}

// fillTriangle rasterizes with edge functions over the bounding box and
// alpha-blends into the framebuffer.
func (rend *SoftwareRenderer) fillTriangle(tri projectedTriangle) {
	a, b, c := tri.screen[0], tri.screen[1], tri.screen[2]

	minX := int(math.Floor(float64(min3(a.X(), b.X(), c.X()))))
	maxX := int(math.Ceil(float64(max3(a.X(), b.X(), c.X()))))
	minY := int(math.Floor(float64(min3(a.Y(), b.Y(), c.Y()))))
	maxY := int(math.Ceil(float64(max3(a.Y(), b.Y(), c.Y()))))

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= int(rend.width) {
		maxX = int(rend.width) - 1
	}
	if maxY >= int(rend.height) {
		maxY = int(rend.height) - 1
	}

	area := edgeFunction(a, b, c)
	if area == 0 {
		return
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := mgl32.Vec2{float32(x) + 0.5, float32(y) + 0.5}
			e0 := edgeFunction(a, b, p)
			e1 := edgeFunction(b, c, p)
			e2 := edgeFunction(c, a, p)
			inside := (e0 >= 0 && e1 >= 0 && e2 >= 0) || (e0 <= 0 && e1 <= 0 && e2 <= 0)
			if !inside {
				continue
			}
			rend.blendPixel(x, y, tri.color, tri.alpha)
		}
	}
}

func (rend *SoftwareRenderer) blendPixel(x, y int, src color.RGBA, alpha float32) {
	if alpha >= 1.0 {
		rend.frame.SetRGBA(x, y, src)
		return
	}
	dst := rend.frame.RGBAAt(x, y)
	blend := func(s, d uint8) uint8 {
		return uint8(float32(s)*alpha + float32(d)*(1.0-alpha))
	}
	rend.frame.SetRGBA(x, y, color.RGBA{
		blend(src.R, dst.R),
		blend(src.G, dst.G),
		blend(src.B, dst.B),
		255,
	})
}

func edgeFunction(a, b, p mgl32.Vec2) float32 {
	return (b.X()-a.X())*(p.Y()-a.Y()) - (b.Y()-a.Y())*(p.X()-a.X())
}

func min3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func (rend *SoftwareRenderer) Cleanup() {
	rend.models = nil
}
