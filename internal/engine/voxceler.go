package engine

import (
	"fmt"
	"image"
	"runtime"

	"github.com/hakobera/voxceler/internal/config"
	"github.com/hakobera/voxceler/internal/logger"
	"github.com/hakobera/voxceler/internal/renderer"
	"github.com/hakobera/voxceler/internal/voxel"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// Wheel ticks translate to this many world units of zoom.
const wheelZoomSpeed float32 = 60

const demoSeed int64 = 100

// Voxceler is the shell tying the pieces together: one window, one orbit
// camera, one voxel field, one render backend. All mutation happens on the
// main thread inside glfw callbacks or the render loop.
type Voxceler struct {
	Width      int32
	Height     int32
	Title      string
	VoxcelSize int

	Camera *renderer.Camera
	Light  *renderer.Light
	Field  *voxel.Field

	ctx         *renderer.Context
	rendererAPI renderer.Render
	window      *glfw.Window
	geometry    *voxel.CubeGeometry

	// StartImage, when set, is rasterized at startup instead of the
	// procedural demo image.
	StartImage string

	debug      bool
	dragging   bool
	dragStartX float64
	dragStartY float64
	loading    bool
}

func New(cfg config.Config) *Voxceler {
	if cfg.Debug {
		logger.InitDevelopment()
	} else {
		logger.Init()
	}
	logger.Log.Info("voxceler initializing",
		zap.Int32("width", cfg.Width),
		zap.Int32("height", cfg.Height),
		zap.Int("voxcelSize", cfg.VoxcelSize))

	return &Voxceler{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Title:      cfg.Title,
		VoxcelSize: cfg.VoxcelSize,
		debug:      cfg.Debug,
		geometry:   voxel.NewCubeGeometry(cfg.UnitSize),
	}
}

// Run opens the window and blocks in the render loop until it closes.
// When no GL context can be created the scene is rendered once with the
// software rasterizer and written next to the executable instead; the
// fallback is never fatal.
func (v *Voxceler) Run() error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	v.ctx = renderer.DetectBackend(renderer.DefaultCandidates, v.debug)
	v.rendererAPI = v.ctx.NewRenderer()

	if !v.ctx.GPU() {
		return v.runHeadless()
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	v.ctx.ApplyWindowHints()

	window, err := glfw.CreateWindow(int(v.Width), int(v.Height), v.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	v.window = window
	v.window.MakeContextCurrent()

	if err := v.rendererAPI.Init(v.Width, v.Height, v.window); err != nil {
		return fmt.Errorf("initialize renderer: %w", err)
	}

	v.setupScene()

	v.window.SetMouseButtonCallback(v.mouseButtonCallback)
	v.window.SetCursorPosCallback(v.cursorPosCallback)
	v.window.SetScrollCallback(v.scrollCallback)
	v.window.SetDropCallback(v.dropCallback)

	v.renderLoop()
	return nil
}

// runHeadless keeps the software fallback useful: render one frame and
// write it out, since glfw cannot present CPU pixels without a context.
func (v *Voxceler) runHeadless() error {
	software := v.rendererAPI.(*renderer.SoftwareRenderer)
	if err := software.Init(v.Width, v.Height, nil); err != nil {
		return err
	}
	v.setupScene()
	software.Render(v.Camera, v.Light)

	out := "voxceler-frame.png"
	if err := software.Snapshot(out); err != nil {
		return fmt.Errorf("write fallback frame: %w", err)
	}
	logger.Log.Info("software fallback frame written", zap.String("path", out))
	return nil
}

// setupScene builds the camera, light and field, and rasterizes the
// startup image.
func (v *Voxceler) setupScene() {
	v.Camera = renderer.NewOrbitCamera(v.Width, v.Height)
	v.Light = renderer.NewDefaultLight()
	v.Field = voxel.NewField(v.rendererAPI, v.geometry, v.VoxcelSize)

	var img image.Image
	if v.StartImage != "" {
		if _, err := voxel.DetectImageFile(v.StartImage); err != nil {
			logger.Log.Error("start image rejected", zap.Error(err))
		} else if decoded, err := voxel.DecodeImageFile(v.StartImage); err != nil {
			logger.Log.Error("start image decode failed", zap.Error(err))
		} else {
			img = decoded
		}
	}
	if img == nil {
		img = voxel.DemoImage(v.VoxcelSize, demoSeed)
	}
	v.Field.RebuildFromSamples(voxel.NewScanner(img, v.VoxcelSize))
}

func (v *Voxceler) renderLoop() {
	lastWidth, lastHeight := v.Width, v.Height

	for !v.window.ShouldClose() {
		actualWidth, actualHeight := v.window.GetSize()
		v.Width, v.Height = int32(actualWidth), int32(actualHeight)
		if v.Width != lastWidth || v.Height != lastHeight {
			v.rendererAPI.UpdateViewport(v.Width, v.Height)
			v.Camera.SetAspectRatio(float32(v.Width) / float32(v.Height))
			lastWidth, lastHeight = v.Width, v.Height
		}

		v.rendererAPI.Render(v.Camera, v.Light)
		v.window.SwapBuffers()
		glfw.PollEvents()
	}
	v.rendererAPI.Cleanup()
}

func (v *Voxceler) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}
	switch action {
	case glfw.Press:
		v.dragging = true
		v.dragStartX, v.dragStartY = w.GetCursorPos()
		v.Camera.BeginOrbit()
	case glfw.Release:
		v.dragging = false
	}
}

func (v *Voxceler) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	if v.dragging {
		v.Camera.SetOrbit(
			float32(xpos-v.dragStartX),
			float32(ypos-v.dragStartY),
		)
	}

	// The pick ray is recomputed on every move, dragging or not, and the
	// brush never intersects itself.
	ray := renderer.ScreenToRay(v.Camera, float32(xpos), float32(ypos), int(v.Width), int(v.Height))
	hits := ray.IntersectModels(v.rendererAPI.Models(), v.Field.Brush)
	if len(hits) > 0 {
		v.Field.PlaceBrushAt(hits[0])
	} else {
		v.Field.ParkBrush()
	}
}

func (v *Voxceler) scrollCallback(_ *glfw.Window, _, yoff float64) {
	v.Camera.Zoom(float32(yoff) * wheelZoomSpeed)
}

func (v *Voxceler) dropCallback(_ *glfw.Window, names []string) {
	if len(names) == 0 {
		return
	}
	path := names[0]

	if _, err := voxel.DetectImageFile(path); err != nil {
		v.alert(fmt.Sprintf("cannot load %q: %v", path, err))
		return
	}

	if !v.showLoadingOverlay() {
		logger.Log.Warn("drop ignored, load already in progress", zap.String("path", path))
		return
	}
	defer v.hideLoadingOverlay()

	img, err := voxel.DecodeImageFile(path)
	if err != nil {
		v.alert(fmt.Sprintf("decode failed: %v", err))
		return
	}

	// Rasterization runs synchronously in the callback; at tens of cells
	// per side the O(gridSize²) scan is well under a frame.
	v.Field.RebuildFromSamples(voxel.NewScanner(img, v.VoxcelSize))
	logger.Log.Info("image rasterized",
		zap.String("path", path),
		zap.Int("voxcels", len(v.Field.Voxcels())))
}

// alert surfaces a user-visible message. There is no native dialog here,
// so it goes through the window title and the error log.
func (v *Voxceler) alert(msg string) {
	logger.Log.Error(msg)
	if v.window != nil {
		v.window.SetTitle(fmt.Sprintf("%s - %s", v.Title, msg))
	}
}

// showLoadingOverlay reports whether the overlay was acquired. A duplicate
// show is refused; that guard is the only re-entrancy protection, a racing
// rebuild behind it is not prevented.
func (v *Voxceler) showLoadingOverlay() bool {
	if v.loading {
		return false
	}
	v.loading = true
	if v.window != nil {
		v.window.SetTitle(v.Title + " (loading…)")
	}
	return true
}

func (v *Voxceler) hideLoadingOverlay() {
	v.loading = false
	if v.window != nil {
		v.window.SetTitle(v.Title)
	}
}

// Snapshot renders the scene once with the software rasterizer and writes
// a PNG, without opening a window. imagePath may be empty for the demo
// scene.
func Snapshot(cfg config.Config, imagePath, outPath string) error {
	if imagePath != "" {
		if _, err := voxel.DetectImageFile(imagePath); err != nil {
			return err
		}
	}

	v := New(cfg)
	v.StartImage = imagePath
	software := renderer.NewSoftwareRenderer()
	v.rendererAPI = software
	if err := software.Init(cfg.Width, cfg.Height, nil); err != nil {
		return err
	}
	v.setupScene()
	software.Render(v.Camera, v.Light)
	return software.Snapshot(outPath)
}
