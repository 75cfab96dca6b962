package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CursorToRay converts a cursor position in pixels into a normalized
// world-space direction leaving the eye.
func CursorToRay(cursor, viewport mgl32.Vec2, projection, view mgl32.Mat4) mgl32.Vec3 {
	ndc := mgl32.Vec4{
		2*cursor.X()/viewport.X() - 1,
		1 - 2*cursor.Y()/viewport.Y(),
		-1,
		1,
	}

	eye := projection.Inv().Mul4x1(ndc)
	// Point the ray into the scene and drop the translation.
	eye = mgl32.Vec4{eye.X(), eye.Y(), -1, 0}

	world := view.Inv().Mul4x1(eye).Vec3()
	return normalize(world)
}

// PickRay returns the picking ray for the camera, taking the projection mode
// into account: orthographic rays all share the view direction and start on
// the near plane under the cursor.
func PickRay(cam *Camera, cursor, viewport mgl32.Vec2) (origin, dir mgl32.Vec3) {
	proj := cam.ProjectionMatrix()
	view := cam.ViewMatrix()
	if cam.Perspective {
		return cam.Position, CursorToRay(cursor, viewport, proj, view)
	}

	ndc := mgl32.Vec4{
		2*cursor.X()/viewport.X() - 1,
		1 - 2*cursor.Y()/viewport.Y(),
		-1,
		1,
	}
	eye := proj.Inv().Mul4x1(ndc)
	eye = mgl32.Vec4{eye.X(), eye.Y(), 0, 1}
	origin = view.Inv().Mul4x1(eye).Vec3()
	w, _, _ := cam.Basis()
	return origin, w
}

// RayPlaneIntersection solves for the point where the ray meets the plane.
// A ray parallel to the plane yields a non-finite point.
func RayPlaneIntersection(origin, dir, planePoint, planeNormal mgl32.Vec3) mgl32.Vec3 {
	t := planePoint.Sub(origin).Dot(planeNormal) / dir.Dot(planeNormal)
	return origin.Add(dir.Mul(t))
}

func IsFinite(v mgl32.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(float64(c)) || math.IsInf(float64(c), 0) {
			return false
		}
	}
	return true
}
