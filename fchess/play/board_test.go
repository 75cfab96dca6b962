package play

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/fchessg/fchess/core"
)

func tableGeometry() BoardGeometry {
	g := DefaultBoardGeometry()
	g.World = mgl32.Translate3D(0, 1, 0).Mul4(mgl32.Scale3D(1.5, 1.5, 1.5))
	return g
}

func TestBoardGeometry_CentersRoundTrip(t *testing.T) {
	g := tableGeometry()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		got, ok := g.SquareAtWorld(g.WorldCenter(sq))
		require.True(t, ok, sq.String())
		assert.Equal(t, sq, got)
	}
}

func TestBoardGeometry_Orientation(t *testing.T) {
	g := DefaultBoardGeometry()
	a1 := g.LocalCenter(chess.A1)
	h1 := g.LocalCenter(chess.H1)
	a8 := g.LocalCenter(chess.A8)
	assert.Greater(t, a1.X(), h1.X())
	assert.Less(t, a1.Z(), a8.Z())
	assert.InDelta(t, -a1.X(), h1.X(), 1e-6)
}

func TestBoardGeometry_OffBoard(t *testing.T) {
	g := tableGeometry()
	_, ok := g.SquareAtWorld(mgl32.Vec3{5, 1, 0})
	assert.False(t, ok)
	nan := float32(math.NaN())
	_, ok = g.SquareAtWorld(mgl32.Vec3{nan, nan, nan})
	assert.False(t, ok)
	inf := float32(math.Inf(1))
	_, ok = g.SquareAtWorld(mgl32.Vec3{inf, 1, 0})
	assert.False(t, ok)
}

func TestBoardGeometry_PickSquareFromAbove(t *testing.T) {
	g := tableGeometry()
	cam := core.NewLookAtCamera(g.WorldCenter(chess.E4), 1)
	cam.SetAngles(math.Pi, math.Pi/2)

	for _, perspective := range []bool{true, false} {
		cam.TogglePerspective(perspective)
		sq, hit, ok := g.PickSquare(cam, mgl32.Vec2{400, 300}, mgl32.Vec2{800, 600})
		require.True(t, ok, "perspective=%v", perspective)
		assert.Equal(t, chess.E4, sq)
		assert.InDelta(t, 1, hit.Y(), 1e-4)
	}
}

func TestDirection_StepAndMirror(t *testing.T) {
	assert.Equal(t, chess.E5, North.Step(chess.E4))
	assert.Equal(t, chess.E3, South.Step(chess.E4))
	assert.Equal(t, chess.F4, East.Step(chess.E4))
	assert.Equal(t, chess.D4, West.Step(chess.E4))

	assert.Equal(t, chess.H4, East.Step(chess.H4))
	assert.Equal(t, chess.A1, South.Step(chess.A1))

	assert.Equal(t, South, North.Mirror())
	assert.Equal(t, West, East.Mirror())
}

func TestBoardGeometry_RaisedSurface(t *testing.T) {
	g := tableGeometry()
	g.SurfaceY = 0.02

	point, _ := g.Plane()
	assert.InDelta(t, point.Y(), g.WorldCenter(chess.A1).Y(), 1e-6)

	cam := core.NewLookAtCamera(mgl32.Vec3{0, 1, 0}, 1)
	cam.SetAngles(math.Pi, math.Pi/5)
	cam.Aspect = 800.0 / 600.0
	for _, sq := range []chess.Square{chess.A1, chess.E4, chess.H8, chess.D7} {
		center := g.WorldCenter(sq)
		screen := mgl32.Project(center, cam.ViewMatrix(), cam.ProjectionMatrix(), 0, 0, 800, 600)
		cursor := mgl32.Vec2{screen.X(), 600 - screen.Y()}
		got, hit, ok := g.PickSquare(cam, cursor, mgl32.Vec2{800, 600})
		require.True(t, ok, sq.String())
		assert.Equal(t, sq, got)
		assert.InDelta(t, center.X(), hit.X(), 1e-3, sq.String())
		assert.InDelta(t, center.Z(), hit.Z(), 1e-3, sq.String())
	}
}
