package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScene_ParentChildTransforms(t *testing.T) {
	s := NewScene()
	table := s.Add("table", "table", NoObject)
	board := s.Add("board", "board", table)
	pawns := s.Add("pawns", "pawn", board)

	s.SetTransform(table, 0, mgl32.Translate3D(0, 1, 0))
	s.SetTransform(board, 0, mgl32.Scale3D(2, 2, 2))
	s.SetTransform(pawns, 0, mgl32.Translate3D(1, 0, 0))
	s.SetTransform(pawns, 1, mgl32.Translate3D(0, 0, 1))

	origin := mgl32.Vec4{0, 0, 0, 1}
	assertVec3(t, mgl32.Vec3{2, 1, 0}, s.WorldTransform(pawns, 0).Mul4x1(origin).Vec3())
	assertVec3(t, mgl32.Vec3{0, 1, 2}, s.WorldTransform(pawns, 1).Mul4x1(origin).Vec3())
	assert.Equal(t, []ObjectId{board}, s.Object(table).Children)
}

func TestScene_DeactivateSkipsInstanceInWalk(t *testing.T) {
	s := NewScene()
	root := s.Add("pieces", "pawn", NoObject)
	s.AddInstance(root, mgl32.Translate3D(1, 0, 0))
	s.AddInstance(root, mgl32.Translate3D(2, 0, 0))
	s.DeactivateInstance(root, 1)

	var seen []int
	s.Walk(func(id ObjectId, obj *RenderObject, instance int, world mgl32.Mat4) bool {
		seen = append(seen, instance)
		return true
	})
	assert.Equal(t, []int{0, 2}, seen)

	inst, ok := s.Instance(root, 1)
	require.True(t, ok)
	assert.False(t, inst.Active)

	s.ActivateInstance(root, 1)
	inst, _ = s.Instance(root, 1)
	assert.True(t, inst.Active)
}

func TestScene_UniformsAndFind(t *testing.T) {
	s := NewScene()
	s.Add("sky", "sky", NoObject)
	board := s.Add("board", "board", NoObject)

	id, ok := s.Find("board")
	require.True(t, ok)
	assert.Equal(t, board, id)
	_, ok = s.Find("missing")
	assert.False(t, ok)

	s.SetUniform(board, "selected_square", int32(12))
	v, ok := s.Uniform(board, "selected_square")
	require.True(t, ok)
	assert.Equal(t, int32(12), v)
}

func TestScene_OutOfRangePanics(t *testing.T) {
	s := NewScene()
	assert.Panics(t, func() { s.Object(3) })
}
