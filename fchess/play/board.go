package play

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/notnil/chess"

	"github.com/gekko3d/fchessg/fchess/core"
)

const (
	DefaultSquareSize float32 = 0.05789
	DefaultBoardStart float32 = -4 * DefaultSquareSize
)

// BoardGeometry places squares in the board's local frame. File a lies on +x
// and rank 1 on -z, so white sits at the -z edge.
type BoardGeometry struct {
	Start      float32
	SquareSize float32
	SurfaceY   float32
	// World is the board object's world transform.
	World mgl32.Mat4
}

func DefaultBoardGeometry() BoardGeometry {
	return BoardGeometry{
		Start:      DefaultBoardStart,
		SquareSize: DefaultSquareSize,
		World:      mgl32.Ident4(),
	}
}

// LocalCenter is the centre of sq on the playing surface, in board space.
func (g BoardGeometry) LocalCenter(sq chess.Square) mgl32.Vec3 {
	s := g.SquareSize
	return mgl32.Vec3{
		g.Start + s*(7-float32(sq.File())+0.5),
		g.SurfaceY,
		g.Start + s*(float32(sq.Rank())+0.5),
	}
}

func (g BoardGeometry) WorldCenter(sq chess.Square) mgl32.Vec3 {
	c := g.LocalCenter(sq)
	return g.World.Mul4x1(c.Vec4(1)).Vec3()
}

// Plane returns a world-space point on the playing surface and its normal.
func (g BoardGeometry) Plane() (point, normal mgl32.Vec3) {
	point = g.World.Mul4x1(mgl32.Vec4{0, g.SurfaceY, 0, 1}).Vec3()
	normal = g.World.Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3().Normalize()
	return point, normal
}

// SquareAtWorld maps a point on the surface to the square under it. Points
// off the board or non-finite points yield false.
func (g BoardGeometry) SquareAtWorld(p mgl32.Vec3) (chess.Square, bool) {
	if !core.IsFinite(p) {
		return chess.NoSquare, false
	}
	local := g.World.Inv().Mul4x1(p.Vec4(1)).Vec3()
	fx := (local.X() - g.Start) / g.SquareSize
	fz := (local.Z() - g.Start) / g.SquareSize
	if fx <= 0 || fx >= 8 || fz <= 0 || fz >= 8 {
		return chess.NoSquare, false
	}
	file := 7 - int(math.Floor(float64(fx)))
	rank := int(math.Floor(float64(fz)))
	return squareOf(chess.File(file), chess.Rank(rank)), true
}

// PickSquare casts the cursor ray from cam onto the board surface.
func (g BoardGeometry) PickSquare(cam *core.Camera, cursor, viewport mgl32.Vec2) (chess.Square, mgl32.Vec3, bool) {
	origin, dir := core.PickRay(cam, cursor, viewport)
	point, normal := g.Plane()
	hit := core.RayPlaneIntersection(origin, dir, point, normal)
	sq, ok := g.SquareAtWorld(hit)
	return sq, hit, ok
}

// Direction steps the keyboard selection across the board as seen by white.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// Mirror flips the direction for the black side.
func (d Direction) Mirror() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// Step returns the neighbouring square, or sq itself at the board edge.
func (d Direction) Step(sq chess.Square) chess.Square {
	file, rank := int(sq.File()), int(sq.Rank())
	switch d {
	case North:
		rank++
	case South:
		rank--
	case East:
		file++
	case West:
		file--
	}
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return sq
	}
	return squareOf(chess.File(file), chess.Rank(rank))
}
