package anim

import (
	"github.com/go-gl/mathgl/mgl32"
)

const DefaultBezierTime float32 = 0.6

// CubicBezier moves a point along a cubic Bézier curve over a fixed time window.
// Points are homogeneous so they can be fed straight into a transform.
type CubicBezier struct {
	points     [4]mgl32.Vec4
	totalTime  float32
	timePassed float32
}

func NewCubicBezier(totalTime float32) *CubicBezier {
	return &CubicBezier{totalTime: totalTime}
}

func (b *CubicBezier) SetControlPoints(p1, p2, p3, p4 mgl32.Vec4) {
	b.points = [4]mgl32.Vec4{p1, p2, p3, p4}
}

func (b *CubicBezier) ControlPoints() [4]mgl32.Vec4 {
	return b.points
}

func (b *CubicBezier) SetTotalTime(seconds float32) {
	b.totalTime = seconds
}

func (b *CubicBezier) TotalTime() float32 {
	return b.totalTime
}

func (b *CubicBezier) TimePassed() float32 {
	return b.timePassed
}

// Reset rewinds the animation without touching the curve or its duration.
func (b *CubicBezier) Reset() {
	b.timePassed = 0
}

// PointAt evaluates the curve at normalized t in [0, 1].
func (b *CubicBezier) PointAt(t float32) mgl32.Vec4 {
	if t <= 0 {
		return b.points[0]
	}
	if t >= 1 {
		return b.points[3]
	}
	s := 1 - t
	p := b.points[0].Mul(s * s * s)
	p = p.Add(b.points[1].Mul(3 * s * s * t))
	p = p.Add(b.points[2].Mul(3 * s * t * t))
	return p.Add(b.points[3].Mul(t * t * t))
}

// Advance accumulates dt and returns the point for the new time.
// A non-positive duration finishes immediately on the last control point.
func (b *CubicBezier) Advance(dt float32) mgl32.Vec4 {
	if b.totalTime <= 0 {
		b.timePassed = 0
		return b.points[3]
	}
	if dt > 0 {
		b.timePassed += dt
	}
	if b.timePassed >= b.totalTime {
		b.timePassed = b.totalTime
		return b.points[3]
	}
	return b.PointAt(b.timePassed / b.totalTime)
}

func (b *CubicBezier) IsOver() bool {
	return b.totalTime <= 0 || b.timePassed >= b.totalTime
}
