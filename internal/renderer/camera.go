// camera.go
package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera orbits a fixed target on spherical coordinates. The eye position
// is derived from (Radius, Azimuth, Polar) on every call and never stored,
// so the angles remain the single source of truth.
type Camera struct {
	Radius  float32    // Distance from the target, clamped to MinRadius
	Azimuth float32    // Horizontal angle in degrees, unclamped
	Polar   float32    // Vertical angle in degrees, clamped to [0,180]
	Target  mgl32.Vec3 // Orbit center

	MinRadius   float32 // Zoom floor, keeps the eye out of the field
	Fov         float32
	Near        float32
	Far         float32
	AspectRatio float32
	Projection  mgl32.Mat4

	// Angles captured at drag start; SetOrbit applies deltas to these.
	baseAzimuth float32
	basePolar   float32
}

func NewOrbitCamera(width, height int32) *Camera {
	camera := &Camera{
		Radius:      1400,
		Azimuth:     90,
		Polar:       90,
		MinRadius:   100,
		Fov:         45.0,
		Near:        1.0,
		Far:         10000.0,
		AspectRatio: float32(width) / float32(height),
	}
	camera.baseAzimuth = camera.Azimuth
	camera.basePolar = camera.Polar
	camera.UpdateProjection()
	return camera
}

func (c *Camera) UpdateProjection() {
	c.Projection = mgl32.Perspective(mgl32.DegToRad(c.Fov), c.AspectRatio, c.Near, c.Far)
}

func (c *Camera) SetAspectRatio(aspectRatio float32) {
	c.AspectRatio = aspectRatio
	c.UpdateProjection()
}

// BeginOrbit captures the angles a drag starts from.
func (c *Camera) BeginOrbit() {
	c.baseAzimuth = c.Azimuth
	c.basePolar = c.Polar
}

// SetOrbit applies drag deltas to the angles captured by BeginOrbit. Polar
// is clamped to [0,180]; azimuth wraps implicitly through the trigonometry.
func (c *Camera) SetOrbit(deltaAzimuth, deltaPolar float32) {
	c.Azimuth = c.baseAzimuth + deltaAzimuth
	c.Polar = mgl32.Clamp(c.basePolar+deltaPolar, 0.0, 180.0)
}

// Zoom subtracts delta from the radius, never going below the floor.
func (c *Camera) Zoom(delta float32) {
	c.Radius -= delta
	if c.Radius < c.MinRadius {
		c.Radius = c.MinRadius
	}
}

// Position converts the spherical state to the Cartesian eye. The angles
// are halved before conversion, which sets the orbit speed relative to raw
// drag deltas; with the [0,180] polar clamp the eye stays on or above the
// target's horizontal plane.
func (c *Camera) Position() mgl32.Vec3 {
	azimuth := float64(mgl32.DegToRad(c.Azimuth / 2))
	polar := float64(mgl32.DegToRad(c.Polar / 2))

	sinPolar := math.Sin(polar)
	return c.Target.Add(mgl32.Vec3{
		c.Radius * float32(sinPolar*math.Cos(azimuth)),
		c.Radius * float32(math.Cos(polar)),
		c.Radius * float32(sinPolar*math.Sin(azimuth)),
	})
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0})
}

func (c *Camera) GetViewProjection() mgl32.Mat4 {
	return c.Projection.Mul4(c.GetViewMatrix())
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return c.Projection
}
