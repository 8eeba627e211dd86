package renderer

import (
	"github.com/hakobera/voxceler/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// ContextCandidate is one OpenGL context flavor the capability probe tries.
type ContextCandidate struct {
	Name          string
	Major, Minor  int
	CoreProfile   bool
	ForwardCompat bool
}

// DefaultCandidates is probed in order; the first context that both opens
// and initializes wins.
var DefaultCandidates = []ContextCandidate{
	{Name: "opengl-4.1-core", Major: 4, Minor: 1, CoreProfile: true, ForwardCompat: true},
	{Name: "opengl-3.3-core", Major: 3, Minor: 3, CoreProfile: true, ForwardCompat: true},
	{Name: "opengl-2.1", Major: 2, Minor: 1},
}

// Context carries the capability detection result and debug flag instead of
// leaving them as package globals. Detection runs once at startup; the
// engine passes the context everywhere a backend decision is needed.
type Context struct {
	Candidate ContextCandidate
	Debug     bool

	gpu bool
}

func (c *Context) GPU() bool { return c.gpu }

// NewRenderer picks the backend the probe settled on.
func (c *Context) NewRenderer() Render {
	if c.gpu {
		return &OpenGLRenderer{}
	}
	return NewSoftwareRenderer()
}

// ApplyWindowHints sets the glfw hints for the detected context. Only
// meaningful on the GPU path.
func (c *Context) ApplyWindowHints() {
	glfw.WindowHint(glfw.ContextVersionMajor, c.Candidate.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, c.Candidate.Minor)
	if c.Candidate.CoreProfile {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	}
	if c.Candidate.ForwardCompat {
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}
}

// DetectBackend probes the candidates with invisible one-pixel windows.
// Every probe failure is treated as "try the next one"; running out of
// candidates selects the software rasterizer, never an error. Must run on
// the main thread after glfw.Init.
func DetectBackend(candidates []ContextCandidate, debug bool) *Context {
	for _, candidate := range candidates {
		if probeCandidate(candidate) {
			logger.Log.Info("GPU context available", zap.String("context", candidate.Name))
			return &Context{Candidate: candidate, Debug: debug, gpu: true}
		}
		logger.Log.Info("context probe failed", zap.String("context", candidate.Name))
	}
	logger.Log.Warn("no GPU context available, falling back to software rasterizer")
	return &Context{Debug: debug}
}

func probeCandidate(candidate ContextCandidate) bool {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, candidate.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, candidate.Minor)
	if candidate.CoreProfile {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	}
	if candidate.ForwardCompat {
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}

	window, err := glfw.CreateWindow(1, 1, "probe", nil, nil)
	if err != nil {
		return false
	}
	defer window.Destroy()

	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		glfw.DetachCurrentContext()
		return false
	}
	glfw.DetachCurrentContext()
	return true
}
