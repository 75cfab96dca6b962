package anim

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCurve(total float32) *CubicBezier {
	b := NewCubicBezier(total)
	b.SetControlPoints(
		mgl32.Vec4{0.1, 0, 0.3, 1},
		mgl32.Vec4{0.1, 0.2, 0.3, 1},
		mgl32.Vec4{-0.7, 0.2, 0.9, 1},
		mgl32.Vec4{-0.7, 0, 0.9, 1},
	)
	return b
}

func bernstein(p [4]mgl32.Vec4, t float32) mgl32.Vec4 {
	s := 1 - t
	return p[0].Mul(s * s * s).
		Add(p[1].Mul(3 * s * s * t)).
		Add(p[2].Mul(3 * s * t * t)).
		Add(p[3].Mul(t * t * t))
}

func TestCubicBezier_MatchesPolynomial(t *testing.T) {
	const total = float32(0.6)
	for _, elapsed := range []float32{0, 0.05, 0.15, 0.3, 0.45, 0.59} {
		b := testCurve(total)
		got := b.Advance(elapsed)
		want := bernstein(b.ControlPoints(), elapsed/total)
		for i := 0; i < 4; i++ {
			assert.InDelta(t, want[i], got[i], 1e-6, "elapsed %v component %d", elapsed, i)
		}
		assert.False(t, b.IsOver(), "elapsed %v", elapsed)
	}
}

func TestCubicBezier_Endpoints(t *testing.T) {
	b := testCurve(0.6)
	cp := b.ControlPoints()

	assert.Equal(t, cp[0], b.Advance(0))
	assert.False(t, b.IsOver())

	assert.Equal(t, cp[3], b.Advance(0.6))
	assert.True(t, b.IsOver())

	// Overshooting clamps to the final point.
	assert.Equal(t, cp[3], b.Advance(10))
	assert.Equal(t, float32(0.6), b.TimePassed())
}

func TestCubicBezier_AdvanceZeroIsIdempotent(t *testing.T) {
	b := testCurve(0.6)
	first := b.Advance(0.2)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, b.Advance(0))
		assert.False(t, b.IsOver())
	}
}

func TestCubicBezier_ZeroDurationEndsImmediately(t *testing.T) {
	for _, total := range []float32{0, -1} {
		b := testCurve(total)
		require.True(t, b.IsOver())
		assert.Equal(t, b.ControlPoints()[3], b.Advance(0))
		assert.Equal(t, b.ControlPoints()[3], b.Advance(0.016))
	}
}

func TestCubicBezier_ResetKeepsCurve(t *testing.T) {
	b := testCurve(0.6)
	b.Advance(1)
	require.True(t, b.IsOver())

	b.Reset()
	assert.False(t, b.IsOver())
	assert.Equal(t, float32(0.6), b.TotalTime())
	assert.Equal(t, b.ControlPoints()[0], b.Advance(0))
}
