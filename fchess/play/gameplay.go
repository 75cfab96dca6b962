package play

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/notnil/chess"

	"github.com/gekko3d/fchessg/fchess/anim"
	"github.com/gekko3d/fchessg/fchess/core"
)

// Phase is the gameplay state.
type Phase int

const (
	SelectingSquares Phase = iota
	OngoingMove
	GameOver
)

func (p Phase) String() string {
	switch p {
	case SelectingSquares:
		return "selecting"
	case OngoingMove:
		return "moving"
	case GameOver:
		return "game over"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

type Options struct {
	PieceTime  float32
	CameraTime float32
	LiftHeight float32
	// RotateCamera turns the look-at camera to the next side after each move.
	RotateCamera  bool
	HomeDistance  float32
	HomeElevation float32
	// LegacyCameraAngles reproduces the (target-start)*t camera interpolation.
	LegacyCameraAngles bool
	// Strict panics on identity invariant violations instead of skipping the frame.
	Strict bool
}

func DefaultOptions() Options {
	return Options{
		PieceTime:     anim.DefaultBezierTime,
		CameraTime:    anim.DefaultCameraTime,
		LiftHeight:    0.1,
		RotateCamera:  true,
		HomeDistance:  2,
		HomeElevation: math.Pi / 5,
	}
}

// Gameplay is the turn cycle: square selection, move validation, the
// lift-and-place animation, the camera turn and the final commit. Board state
// only changes at commit, after both animations are over.
type Gameplay struct {
	Phase           Phase
	SelectingSquare chess.Square
	SelectedSquare  chess.Square
	PieceToMove     chess.Piece
	OriginSquare    chess.Square
	OngoingMove     *chess.Move

	rules   Rules
	tracker *PieceTracker
	pieces  *PieceSet
	camera  *core.Camera
	bezier  *anim.CubicBezier
	orbit   *anim.CameraOrbit
	opts    Options
	log     Logger

	movingID   int
	turnCamera bool
}

func NewGameplay(rules Rules, pieces *PieceSet, camera *core.Camera, opts Options, log Logger) *Gameplay {
	if log == nil {
		log = nopLogger{}
	}
	orbit := anim.NewCameraOrbit(opts.CameraTime)
	orbit.LegacyAngles = opts.LegacyCameraAngles
	g := &Gameplay{
		rules:  rules,
		pieces: pieces,
		camera: camera,
		bezier: anim.NewCubicBezier(opts.PieceTime),
		orbit:  orbit,
		opts:   opts,
		log:    log,
	}
	g.clearSelection()
	g.SelectingSquare = chess.NoSquare
	return g
}

// NewGame resets the rules to fen (standard start when empty), reseeds the
// identities and rebinds the piece instances.
func (g *Gameplay) NewGame(fen string) error {
	if err := g.rules.Reset(fen); err != nil {
		return err
	}
	if isStandardStart(g.rules.Board()) {
		g.tracker = NewPieceTracker()
	} else {
		g.tracker = SeedFromBoard(g.rules.Board())
	}
	if err := g.pieces.Bind(g.tracker, g.rules.Board()); err != nil {
		return fmt.Errorf("new game: %w", err)
	}
	g.clearSelection()
	g.SelectingSquare = chess.NoSquare
	g.bezier.Reset()
	g.orbit.Reset()
	g.Phase = SelectingSquares
	g.checkOutcome()
	g.log.Infof("new game: %s", g.rules.FEN())
	return nil
}

const startingPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

func isStandardStart(b *chess.Board) bool {
	return b.String() == startingPlacement
}

func (g *Gameplay) Rules() Rules              { return g.rules }
func (g *Gameplay) Tracker() *PieceTracker    { return g.tracker }
func (g *Gameplay) Bezier() *anim.CubicBezier { return g.bezier }
func (g *Gameplay) Orbit() *anim.CameraOrbit  { return g.orbit }

func (g *Gameplay) clearSelection() {
	g.SelectedSquare = chess.NoSquare
	g.OriginSquare = chess.NoSquare
	g.PieceToMove = chess.NoPiece
	g.OngoingMove = nil
}

// inputBlocked is nil while squares can be selected, otherwise the reason
// input is dropped.
func (g *Gameplay) inputBlocked() error {
	switch g.Phase {
	case OngoingMove:
		return ErrAnimating
	case GameOver:
		return ErrGameOver
	}
	return nil
}

// Hover sets the square under the cursor.
func (g *Gameplay) Hover(sq chess.Square) error {
	if err := g.inputBlocked(); err != nil {
		return err
	}
	g.SelectingSquare = sq
	return nil
}

// Select confirms a square; it is resolved on the next Update.
func (g *Gameplay) Select(sq chess.Square) error {
	if err := g.inputBlocked(); err != nil {
		g.log.Debugf("select %s ignored: %v", sq, err)
		return err
	}
	g.SelectedSquare = sq
	return nil
}

// Confirm selects the hovered square.
func (g *Gameplay) Confirm() error {
	if g.SelectingSquare == chess.NoSquare {
		return nil
	}
	return g.Select(g.SelectingSquare)
}

// MoveSelection steps the hovered square as seen from the side to move,
// starting at e4.
func (g *Gameplay) MoveSelection(d Direction) chess.Square {
	if err := g.inputBlocked(); err != nil {
		g.log.Debugf("selection step ignored: %v", err)
		return g.SelectingSquare
	}
	if g.SelectingSquare == chess.NoSquare {
		g.SelectingSquare = chess.E4
		return g.SelectingSquare
	}
	if g.rules.SideToMove() == chess.Black {
		d = d.Mirror()
	}
	g.SelectingSquare = d.Step(g.SelectingSquare)
	return g.SelectingSquare
}

// Update advances the machine by one frame.
func (g *Gameplay) Update(dt float32) {
	switch g.Phase {
	case SelectingSquares:
		if g.SelectedSquare == chess.NoSquare {
			return
		}
		if err := g.resolveSelection(); err != nil {
			g.log.Debugf("selection %s rejected: %v", g.SelectedSquare, err)
		}
	case OngoingMove:
		g.animate(dt)
	}
}

func (g *Gameplay) resolveSelection() error {
	sq := g.SelectedSquare
	selected := g.rules.PieceAt(sq)
	side := g.rules.SideToMove()

	if g.PieceToMove == chess.NoPiece {
		if selected == chess.NoPiece || selected.Color() != side {
			g.SelectedSquare = chess.NoSquare
			return fmt.Errorf("%s: %w", sq, ErrNoPieceAt)
		}
		g.pickUp(sq, selected)
		return nil
	}

	if selected != chess.NoPiece && selected.Color() == side {
		g.pickUp(sq, selected)
		return nil
	}

	m, ok := g.rules.FindMove(g.OriginSquare, sq)
	if !ok {
		// Keep the pick-up, drop the confirm.
		g.SelectedSquare = g.OriginSquare
		return fmt.Errorf("%s%s: %w", g.OriginSquare, sq, ErrIllegalMove)
	}
	return g.accept(m)
}

func (g *Gameplay) pickUp(sq chess.Square, p chess.Piece) {
	g.OriginSquare = sq
	g.PieceToMove = p
}

func (g *Gameplay) accept(m *chess.Move) error {
	id, ok := g.tracker.PieceID(m.S1())
	if !ok {
		return g.violation(fmt.Errorf("accept %s: %w", m, ErrNoPieceAt))
	}

	if g.rules.IsCapture(m) {
		victimSq := CapturedSquare(m)
		if victim, ok := g.tracker.PieceID(victimSq); ok {
			if err := g.pieces.Remove(victim); err != nil {
				return g.violation(err)
			}
			g.log.Debugf("captured piece %d on %s", victim, victimSq)
		} else {
			return g.violation(fmt.Errorf("capture on %s: %w", victimSq, ErrNoPieceAt))
		}
	}

	geom := g.pieces.Geometry()
	lift := mgl32.Vec3{0, g.opts.LiftHeight, 0}
	p1 := geom.LocalCenter(m.S1())
	p4 := geom.LocalCenter(m.S2())
	g.bezier.SetControlPoints(p1.Vec4(1), p1.Add(lift).Vec4(1), p4.Add(lift).Vec4(1), p4.Vec4(1))
	g.bezier.Reset()

	g.turnCamera = g.opts.RotateCamera && g.camera != nil && g.camera.Mode == core.CameraLookAt
	if g.turnCamera {
		next := g.rules.SideToMove().Other()
		theta := nearestAngle(g.camera.Theta, homeTheta(next))
		g.orbit.SetAngles(g.camera.Phi, g.opts.HomeElevation, g.camera.Theta, theta)
		g.orbit.SetDistance(g.camera.Distance, g.opts.HomeDistance)
	}
	g.orbit.Reset()

	g.movingID = id
	g.OngoingMove = m
	g.Phase = OngoingMove
	g.log.Infof("move %s accepted (piece %d)", m, id)
	return nil
}

// homeTheta puts the camera behind the side's own pieces.
func homeTheta(side chess.Color) float32 {
	if side == chess.White {
		return math.Pi
	}
	return 0
}

// nearestAngle returns target shifted by whole turns to lie within pi of from.
func nearestAngle(from, target float32) float32 {
	const turn = 2 * math.Pi
	d := float64(target - from)
	d -= turn * math.Round(d/turn)
	return from + float32(d)
}

func (g *Gameplay) animate(dt float32) {
	if !g.bezier.IsOver() {
		p := g.bezier.Advance(dt)
		if err := g.pieces.Place(g.movingID, p.Vec3()); err != nil {
			_ = g.violation(err)
		}
		return
	}
	if g.turnCamera && !g.orbit.IsOver() {
		phi, theta := g.orbit.Advance(dt)
		g.camera.SetDistance(g.orbit.Distance())
		g.camera.SetAngles(theta, phi)
		return
	}
	if err := g.commit(); err != nil {
		_ = g.violation(err)
	}
}

func (g *Gameplay) commit() error {
	m := g.OngoingMove
	if m == nil {
		g.Phase = SelectingSquares
		return errors.New("commit without a move")
	}

	if m.HasTag(chess.EnPassant) {
		g.tracker.Remove(CapturedSquare(m))
	}
	if err := g.tracker.MovePiece(m.S1(), m.S2()); err != nil {
		return err
	}
	if err := g.pieces.PlaceOn(g.movingID, m.S2()); err != nil {
		return err
	}

	if rookFrom, rookTo, ok := CastlingRook(m); ok {
		rook, found := g.tracker.PieceID(rookFrom)
		if !found {
			return fmt.Errorf("castling rook on %s: %w", rookFrom, ErrNoPieceAt)
		}
		if err := g.tracker.MovePiece(rookFrom, rookTo); err != nil {
			return err
		}
		if err := g.pieces.PlaceOn(rook, rookTo); err != nil {
			return err
		}
	}

	if promo := m.Promo(); promo != chess.NoPieceType {
		to := PieceOf(promo, g.PieceToMove.Color())
		if err := g.pieces.Promote(g.movingID, to, m.S2()); err != nil {
			return err
		}
		g.log.Infof("piece %d promoted to %s", g.movingID, to)
	}

	if err := g.rules.Apply(m); err != nil {
		return err
	}

	g.log.Infof("move %s committed: %s", m, g.rules.FEN())
	g.clearSelection()
	g.Phase = SelectingSquares
	g.checkOutcome()
	return nil
}

func (g *Gameplay) checkOutcome() {
	if outcome, method := g.rules.Outcome(); outcome != chess.NoOutcome {
		g.Phase = GameOver
		g.log.Infof("game over: %s by %v", outcome, method)
	}
}

// violation reports a broken identity invariant. The offending input or
// frame is dropped.
func (g *Gameplay) violation(err error) error {
	g.log.Errorf("identity invariant violated: %v", err)
	if g.opts.Strict {
		panic(err)
	}
	g.clearSelection()
	if g.Phase == OngoingMove {
		g.Phase = SelectingSquares
	}
	return err
}

// Status is a one-line summary for the HUD.
func (g *Gameplay) Status() string {
	if g.Phase == GameOver {
		outcome, method := g.rules.Outcome()
		return fmt.Sprintf("%s (%v)", outcomeText(outcome), method)
	}
	s := sideName(g.rules.SideToMove()) + " to move"
	if g.rules.InCheck() {
		s += ", check"
	}
	return s
}

func sideName(c chess.Color) string {
	if c == chess.Black {
		return "Black"
	}
	return "White"
}

func outcomeText(o chess.Outcome) string {
	switch o {
	case chess.WhiteWon:
		return "White wins"
	case chess.BlackWon:
		return "Black wins"
	case chess.Draw:
		return "Draw"
	default:
		return "In progress"
	}
}
