package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraMode selects how the shared camera parameters are interpreted.
type CameraMode int

const (
	// CameraLookAt orbits Target at Distance using Theta/Phi.
	CameraLookAt CameraMode = iota
	// CameraFree moves Position along its own basis; Theta/Phi give the view direction.
	CameraFree
)

func (m CameraMode) String() string {
	switch m {
	case CameraLookAt:
		return "look-at"
	case CameraFree:
		return "free"
	default:
		return "unknown"
	}
}

const (
	sqrtEpsilon = 0.000345
	phiMax      = math.Pi/2 - 4*sqrtEpsilon
	phiMin      = -phiMax
)

var worldUp = mgl32.Vec3{0, 1, 0}

// Camera is a single value shared by both camera variants; converting between
// them is a value transformation (see ToFree and ToLookAt).
type Camera struct {
	Mode CameraMode

	Position mgl32.Vec3
	Theta    float32
	Phi      float32

	Target   mgl32.Vec3
	Distance float32

	NearPlane float32
	FarPlane  float32
	Fov       float32
	Aspect    float32

	Perspective  bool
	OrthoZoom    float32
	OrthoZoomMin float32
	OrthoZoomMax float32
}

func NewLookAtCamera(target mgl32.Vec3, distance float32) *Camera {
	c := &Camera{
		Mode:         CameraLookAt,
		Target:       target,
		NearPlane:    0.01,
		FarPlane:     100,
		Fov:          math.Pi / 3,
		Aspect:       1,
		Perspective:  true,
		OrthoZoom:    1.5,
		OrthoZoomMin: 1.1,
		OrthoZoomMax: 10,
	}
	c.SetDistance(distance)
	return c
}

// update recomputes the orbit position; free cameras keep their position.
func (c *Camera) update() {
	if c.Mode != CameraLookAt {
		return
	}
	sp, cp := sincos(c.Phi)
	st, ct := sincos(c.Theta)
	c.Position = mgl32.Vec3{
		c.Distance*cp*st + c.Target.X(),
		c.Distance*sp + c.Target.Y(),
		c.Distance*cp*ct + c.Target.Z(),
	}
}

// ViewVector is unnormalized for look-at cameras.
func (c *Camera) ViewVector() mgl32.Vec3 {
	if c.Mode == CameraLookAt {
		return c.Target.Sub(c.Position)
	}
	sp, cp := sincos(c.Phi)
	st, ct := sincos(c.Theta)
	return mgl32.Vec3{cp * st, -sp, cp * ct}
}

// Basis returns the normalized w (forward), u (left) and v (up) vectors.
func (c *Camera) Basis() (w, u, v mgl32.Vec3) {
	w = normalize(c.ViewVector())
	u = normalize(worldUp.Cross(w))
	v = w.Cross(u)
	return w, u, v
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.ViewVector()), worldUp)
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	if c.Perspective {
		return mgl32.Perspective(c.Fov, c.Aspect, c.NearPlane, c.FarPlane)
	}
	// Orthographic zoom shrinks the projection plane.
	t := float32(1.5 / math.Log2(float64(c.OrthoZoom)))
	r := t * c.Aspect
	return mgl32.Ortho(-r, r, -t, t, c.NearPlane, c.FarPlane)
}

func (c *Camera) SetAngles(theta, phi float32) {
	c.Theta = theta
	c.Phi = mgl32.Clamp(phi, phiMin, phiMax)
	c.update()
}

func (c *Camera) AdjustAngles(dTheta, dPhi float32) {
	c.SetAngles(c.Theta+dTheta, c.Phi+dPhi)
}

// SetDistance never lets the camera reach its target.
func (c *Camera) SetDistance(d float32) {
	c.Distance = float32(math.Max(sqrtEpsilon, float64(d)))
	c.update()
}

func (c *Camera) AdjustDistance(delta float32) {
	if c.Mode != CameraLookAt {
		return
	}
	c.SetDistance(c.Distance + delta)
}

func (c *Camera) SetTarget(target mgl32.Vec3) {
	c.Target = target
	c.update()
}

func (c *Camera) TogglePerspective(perspective bool) {
	c.Perspective = perspective
}

func (c *Camera) AdjustOrthoZoom(delta float32) {
	c.OrthoZoom = mgl32.Clamp(c.OrthoZoom+delta, c.OrthoZoomMin, c.OrthoZoomMax)
}

// Move translates a free camera along its forward and left vectors.
func (c *Camera) Move(forward, left float32) {
	if c.Mode != CameraFree {
		return
	}
	w, u, _ := c.Basis()
	c.Position = c.Position.Add(w.Mul(forward)).Add(u.Mul(left))
}

// ToFree keeps position and view direction and detaches from the target.
func (c Camera) ToFree() Camera {
	if c.Mode == CameraFree {
		return c
	}
	c.Mode = CameraFree
	c.SetAngles(c.Theta+math.Pi, c.Phi)
	return c
}

// ToLookAt orbits target at distance; the angles are mirrored so the view
// direction is preserved.
func (c Camera) ToLookAt(target mgl32.Vec3, distance float32) Camera {
	if c.Mode == CameraLookAt {
		return c
	}
	c.Mode = CameraLookAt
	c.Target = target
	c.Distance = float32(math.Max(sqrtEpsilon, float64(distance)))
	c.SetAngles(c.Theta+math.Pi, c.Phi)
	return c
}

// ToLookAtAhead picks the target distance units in front of the camera.
func (c Camera) ToLookAtAhead(distance float32) Camera {
	w, _, _ := c.Basis()
	return c.ToLookAt(c.Position.Add(w.Mul(distance)), distance)
}

func sincos(a float32) (float32, float32) {
	s, co := math.Sincos(float64(a))
	return float32(s), float32(co)
}

func normalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return v
	}
	return v.Normalize()
}
