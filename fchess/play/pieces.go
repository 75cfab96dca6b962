package play

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/notnil/chess"

	"github.com/gekko3d/fchessg/fchess/core"
)

// RenderHandle addresses one instance slot of an instanced piece group.
type RenderHandle struct {
	Object   core.ObjectId
	Instance int
}

// RenderInstances is the part of the render-object arena the pieces write to.
type RenderInstances interface {
	InstanceCount(id core.ObjectId) int
	SetTransform(id core.ObjectId, instance int, transform mgl32.Mat4)
	ActivateInstance(id core.ObjectId, instance int)
	DeactivateInstance(id core.ObjectId, instance int)
}

type binding struct {
	piece  chess.Piece
	handle RenderHandle
}

// PieceSet binds piece ids to render instances of the twelve piece groups.
type PieceSet struct {
	scene    RenderInstances
	groups   map[chess.Piece]core.ObjectId
	geometry BoardGeometry
	bindings map[int]binding
}

func NewPieceSet(scene RenderInstances, groups map[chess.Piece]core.ObjectId, geometry BoardGeometry) *PieceSet {
	return &PieceSet{
		scene:    scene,
		groups:   groups,
		geometry: geometry,
		bindings: make(map[int]binding),
	}
}

func (ps *PieceSet) Geometry() BoardGeometry {
	return ps.geometry
}

func (ps *PieceSet) SetGeometry(g BoardGeometry) {
	ps.geometry = g
}

// Bind deactivates every piece instance and then places one instance per
// tracked piece. Seeded ids keep their fixed slot.
func (ps *PieceSet) Bind(tracker *PieceTracker, board *chess.Board) error {
	for _, obj := range ps.groups {
		for i := ps.scene.InstanceCount(obj) - 1; i >= 0; i-- {
			ps.scene.DeactivateInstance(obj, i)
		}
	}
	ps.bindings = make(map[int]binding)

	used := make(map[RenderHandle]bool)
	var extras []chess.Square
	for sq, piece := range board.SquareMap() {
		id, ok := tracker.PieceID(sq)
		if !ok {
			return fmt.Errorf("bind %s on %s: %w", piece, sq, ErrNoPieceAt)
		}
		if id < seededPieceIDs {
			if p, inst := SeedHandle(id); p == piece {
				h := RenderHandle{Object: ps.groups[piece], Instance: inst}
				ps.bindings[id] = binding{piece: piece, handle: h}
				used[h] = true
				continue
			}
		}
		extras = append(extras, sq)
	}

	for _, sq := range extras {
		piece := board.Piece(sq)
		id, _ := tracker.PieceID(sq)
		obj := ps.groups[piece]
		inst := 0
		for used[RenderHandle{obj, inst}] {
			inst++
		}
		h := RenderHandle{Object: obj, Instance: inst}
		ps.bindings[id] = binding{piece: piece, handle: h}
		used[h] = true
	}

	for id, b := range ps.bindings {
		sq, _ := tracker.Square(id)
		ps.scene.SetTransform(b.handle.Object, b.handle.Instance, ps.transformAt(b.piece, ps.geometry.LocalCenter(sq)))
		ps.scene.ActivateInstance(b.handle.Object, b.handle.Instance)
	}
	return nil
}

func (ps *PieceSet) Handle(id int) (RenderHandle, bool) {
	b, ok := ps.bindings[id]
	return b.handle, ok
}

func (ps *PieceSet) Piece(id int) (chess.Piece, bool) {
	b, ok := ps.bindings[id]
	return b.piece, ok
}

// Place moves the piece's instance to a board-local position.
func (ps *PieceSet) Place(id int, pos mgl32.Vec3) error {
	b, ok := ps.bindings[id]
	if !ok {
		return fmt.Errorf("place %d: %w", id, ErrUnknownPieceID)
	}
	ps.scene.SetTransform(b.handle.Object, b.handle.Instance, ps.transformAt(b.piece, pos))
	return nil
}

// PlaceOn snaps the piece to the centre of sq.
func (ps *PieceSet) PlaceOn(id int, sq chess.Square) error {
	return ps.Place(id, ps.geometry.LocalCenter(sq))
}

// Remove deactivates the piece's instance and forgets the binding.
func (ps *PieceSet) Remove(id int) error {
	b, ok := ps.bindings[id]
	if !ok {
		return fmt.Errorf("remove %d: %w", id, ErrUnknownPieceID)
	}
	ps.scene.DeactivateInstance(b.handle.Object, b.handle.Instance)
	delete(ps.bindings, id)
	return nil
}

// Promote swaps the piece's instance for a fresh instance of the promoted
// group standing on sq. The id stays the same.
func (ps *PieceSet) Promote(id int, to chess.Piece, sq chess.Square) error {
	if err := ps.Remove(id); err != nil {
		return fmt.Errorf("promote: %w", err)
	}
	obj, ok := ps.groups[to]
	if !ok {
		return fmt.Errorf("promote %d to %s: no render group", id, to)
	}
	inst := ps.freeInstance(obj)
	ps.bindings[id] = binding{piece: to, handle: RenderHandle{Object: obj, Instance: inst}}
	ps.scene.SetTransform(obj, inst, ps.transformAt(to, ps.geometry.LocalCenter(sq)))
	ps.scene.ActivateInstance(obj, inst)
	return nil
}

func (ps *PieceSet) freeInstance(obj core.ObjectId) int {
	taken := make(map[int]bool)
	for _, b := range ps.bindings {
		if b.handle.Object == obj {
			taken[b.handle.Instance] = true
		}
	}
	i := 0
	for taken[i] {
		i++
	}
	return i
}

// transformAt faces white knights towards the black side.
func (ps *PieceSet) transformAt(p chess.Piece, pos mgl32.Vec3) mgl32.Mat4 {
	m := mgl32.Translate3D(pos.X(), pos.Y(), pos.Z())
	if p == chess.WhiteKnight {
		m = m.Mul4(mgl32.HomogRotate3DY(math.Pi))
	}
	return m
}
