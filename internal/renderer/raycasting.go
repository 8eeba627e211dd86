package renderer

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray represents a ray in 3D space
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// Hit is one ray/face intersection in world space.
type Hit struct {
	Model    *Model
	Distance float32
	Point    mgl32.Vec3
	Normal   mgl32.Vec3 // Unit outward normal of the struck face
}

// ScreenToRay converts a screen position to a world space ray: normalize to
// NDC with the vertical axis inverted, unproject through the inverse
// projection and view transforms, then aim from the camera's current eye.
// The origin is re-derived from the camera on every call, not frozen.
func ScreenToRay(camera *Camera, screenX, screenY float32, windowWidth, windowHeight int) Ray {
	ndcX := 2.0*screenX/float32(windowWidth) - 1.0
	ndcY := 1.0 - 2.0*screenY/float32(windowHeight)

	clipCoords := mgl32.Vec4{ndcX, ndcY, -1.0, 1.0}

	invProjection := camera.Projection.Inv()
	eyeCoords := invProjection.Mul4x1(clipCoords)
	eyeCoords = mgl32.Vec4{eyeCoords.X(), eyeCoords.Y(), -1.0, 0.0}

	invView := camera.GetViewMatrix().Inv()
	worldDir := invView.Mul4x1(eyeCoords).Vec3().Normalize()

	return Ray{
		Origin:    camera.Position(),
		Direction: worldDir,
	}
}

// RayIntersectTriangle tests if a ray intersects a triangle
// Returns: (intersected, distance, intersection point)
// Uses Möller-Trumbore algorithm
func RayIntersectTriangle(ray Ray, v0, v1, v2 mgl32.Vec3) (bool, float32, mgl32.Vec3) {
	const epsilon = 0.0000001

	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	if a > -epsilon && a < epsilon {
		return false, 0, mgl32.Vec3{} // Ray is parallel to triangle
	}

	f := 1.0 / a
	s := ray.Origin.Sub(v0)
	u := f * s.Dot(h)

	if u < 0.0 || u > 1.0 {
		return false, 0, mgl32.Vec3{}
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)

	if v < 0.0 || u+v > 1.0 {
		return false, 0, mgl32.Vec3{}
	}

	t := f * edge2.Dot(q)

	if t > epsilon {
		intersectionPoint := ray.Origin.Add(ray.Direction.Mul(t))
		return true, t, intersectionPoint
	}

	return false, 0, mgl32.Vec3{} // Line intersection but not ray intersection
}

// IntersectModel walks the model's triangles in world space and returns the
// nearest hit along with the struck face's outward normal.
func (ray Ray) IntersectModel(model *Model) (Hit, bool) {
	best := Hit{Distance: float32(math.MaxFloat32)}
	found := false

	for i := 0; i+2 < len(model.Faces); i += 3 {
		v0 := model.worldVertex(int(model.Faces[i]))
		v1 := model.worldVertex(int(model.Faces[i+1]))
		v2 := model.worldVertex(int(model.Faces[i+2]))

		hit, distance, point := RayIntersectTriangle(ray, v0, v1, v2)
		if !hit || distance >= best.Distance {
			continue
		}
		best = Hit{
			Model:    model,
			Distance: distance,
			Point:    point,
			Normal:   v1.Sub(v0).Cross(v2.Sub(v0)).Normalize(),
		}
		found = true
	}

	return best, found
}

// IntersectModels returns every hit ordered by distance. The excluded model
// is skipped entirely, so the brush never picks itself.
func (ray Ray) IntersectModels(models []*Model, excluding *Model) []Hit {
	var hits []Hit
	for _, model := range models {
		if model == excluding {
			continue
		}
		if hit, ok := ray.IntersectModel(model); ok {
			hits = append(hits, hit)
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}
