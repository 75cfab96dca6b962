package fchessg

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/notnil/chess"

	"github.com/gekko3d/fchessg/fchess/core"
	"github.com/gekko3d/fchessg/fchess/play"
)

const (
	gamepadTurnSpeed  float32 = 1.5
	gamepadZoomSpeed  float32 = 1.0
	scrollZoomStep    float32 = 0.1
	scrollDollyStep   float32 = 0.1
	skyCenterOffset   float32 = 0.5
	floorScale        float32 = 100
	noSquareComponent int32   = -1
)

var pieceModels = map[chess.PieceType]string{
	chess.Pawn:   "pawn",
	chess.Rook:   "rook",
	chess.Knight: "knight",
	chess.Bishop: "bishop",
	chess.Queen:  "queen",
	chess.King:   "king",
}

// ChessState is everything the gameplay state renders and updates.
type ChessState struct {
	Scene    *core.Scene
	Camera   *core.Camera
	Gameplay *play.Gameplay
	Geometry play.BoardGeometry

	Sky, Floor, Table, Board core.ObjectId
	PieceGroups              map[chess.Piece]core.ObjectId

	// Cursor picking results of the last frame.
	Cursor        mgl32.Vec2
	Intersection  mgl32.Vec3
	HoveredSquare chess.Square

	lookAtTarget mgl32.Vec3
}

// SquareUniform is the (file, rank) pair the board shader highlights; -1
// components mean no square.
func SquareUniform(sq chess.Square) [2]int32 {
	if sq == chess.NoSquare {
		return [2]int32{noSquareComponent, noSquareComponent}
	}
	return [2]int32{int32(sq.File()), int32(sq.Rank())}
}

// NewChessState lays out the scene: sky, floor, table and the board with one
// instanced group per piece kind parented to it.
func NewChessState(cfg *Config, log Logger) *ChessState {
	scene := core.NewScene()
	cs := &ChessState{
		Scene:         scene,
		Geometry:      cfg.BoardGeometry(),
		PieceGroups:   make(map[chess.Piece]core.ObjectId),
		HoveredSquare: chess.NoSquare,
		lookAtTarget:  mgl32.Vec3{0, cfg.Board.TableHeight, 0},
	}

	cs.Sky = scene.Add("sky", "models/sky.obj", core.NoObject)
	cs.Floor = scene.Add("floor", "models/floor.obj", core.NoObject)
	scene.SetTransform(cs.Floor, 0, mgl32.Scale3D(floorScale, 1, floorScale))
	cs.Table = scene.Add("table", "models/table.obj", core.NoObject)
	cs.Board = scene.Add("board", "models/board.obj", core.NoObject)
	scene.SetTransform(cs.Board, 0, cfg.BoardTransform())

	for _, color := range []chess.Color{chess.White, chess.Black} {
		for _, pt := range []chess.PieceType{chess.Pawn, chess.Rook, chess.Knight, chess.Bishop, chess.Queen, chess.King} {
			name := fmt.Sprintf("%s_%s", colorName(color), pieceModels[pt])
			obj := scene.Add(name, "models/"+pieceModels[pt]+".obj", cs.Board)
			cs.PieceGroups[play.PieceOf(pt, color)] = obj
		}
	}

	cs.Camera = core.NewLookAtCamera(cs.lookAtTarget, cfg.Camera.HomeDistance)
	// white sits on the -z side
	cs.Camera.SetAngles(math.Pi, cfg.Camera.HomeElevation)

	pieces := play.NewPieceSet(scene, cs.PieceGroups, cs.Geometry)
	rules, err := play.NewChessRules("")
	if err != nil {
		panic(err)
	}
	cs.Gameplay = play.NewGameplay(rules, pieces, cs.Camera, cfg.GameplayOptions(), log)
	return cs
}

func colorName(c chess.Color) string {
	if c == chess.Black {
		return "black"
	}
	return "white"
}

// StartGame begins from fen, falling back to the standard position when fen
// cannot be used.
func (cs *ChessState) StartGame(fen string, log Logger) {
	if err := cs.Gameplay.NewGame(fen); err != nil {
		log.Errorf("starting from %q: %v; using the standard position", fen, err)
		if err := cs.Gameplay.NewGame(""); err != nil {
			panic(err)
		}
	}
	cs.syncScene()
}

// syncScene pushes the selection into the board uniforms and keeps the sky
// centred on the camera.
func (cs *ChessState) syncScene() {
	g := cs.Gameplay
	cs.Scene.SetUniform(cs.Board, "selecting_square", SquareUniform(g.SelectingSquare))
	cs.Scene.SetUniform(cs.Board, "selected_square", SquareUniform(g.SelectedSquare))
	p := cs.Camera.Position
	cs.Scene.SetTransform(cs.Sky, 0, mgl32.Translate3D(p.X()-skyCenterOffset, p.Y()-skyCenterOffset, p.Z()-skyCenterOffset))
}

func (cs *ChessState) overlay(input *Input) []string {
	c := cs.Camera
	projection := "perspective"
	if !c.Perspective {
		projection = "orthographic"
	}
	return []string{
		fmt.Sprintf("camera %s %s at (%.3f, %.3f, %.3f)", c.Mode, projection, c.Position.X(), c.Position.Y(), c.Position.Z()),
		fmt.Sprintf("theta %.3f phi %.3f distance %.3f", c.Theta, c.Phi, c.Distance),
		fmt.Sprintf("cursor (%.0f, %.0f) hit (%.3f, %.3f, %.3f)", cs.Cursor.X(), cs.Cursor.Y(), cs.Intersection.X(), cs.Intersection.Y(), cs.Intersection.Z()),
		fmt.Sprintf("selecting %s selected %s phase %s", cs.Gameplay.SelectingSquare, cs.Gameplay.SelectedSquare, cs.Gameplay.Phase),
		fmt.Sprintf("captured input %t", input.MouseCaptured),
		cs.Gameplay.Rules().FEN(),
	}
}

type ChessModule struct{}

func (mod ChessModule) Install(app *App, cmd *Commands) {
	cfg := Resource[Config](app)
	if cfg == nil {
		panic("ChessModule requires a Config; install ConfigModule first")
	}
	cmd.AddResources(NewChessState(cfg, app.Logger()))

	app.UseSystem(
		System(chessEnterSystem).
			InStage(Update).
			InState(OnEnter(StateGameplay)),
	)
	app.UseSystem(
		System(chessInputSystem).
			InStage(Update).
			InState(OnExecute(StateGameplay)),
	)
	app.UseSystem(
		System(chessUpdateSystem).
			InStage(PostUpdate).
			InState(OnExecute(StateGameplay)),
	)
}

func chessEnterSystem(cs *ChessState, cfg *Config, hud *Hud, cmd *Commands) {
	cs.StartGame(cfg.FEN, cmd.Logger())
	hud.Status = cs.Gameplay.Status()
}

func chessInputSystem(cs *ChessState, cfg *Config, input *Input, t *Time, cmd *Commands) {
	dt := t.DeltaSeconds()
	g := cs.Gameplay

	if input.IsJustPressed(KeyEscape) || input.Gamepad.StartJustPressed {
		captured := input.ToggleCapture()
		cmd.Logger().Debugf("camera control %t", captured)
	}

	cameraControls(cs, cfg, input, dt)

	switch {
	case input.IsJustPressed(KeyUp):
		g.MoveSelection(play.North)
	case input.IsJustPressed(KeyDown):
		g.MoveSelection(play.South)
	case input.IsJustPressed(KeyLeft):
		g.MoveSelection(play.West)
	case input.IsJustPressed(KeyRight):
		g.MoveSelection(play.East)
	}
	if input.IsJustPressed(KeyEnter) {
		g.Confirm()
	}

	if !input.MouseCaptured && input.WindowWidth > 0 && input.WindowHeight > 0 {
		cursor := mgl32.Vec2{float32(input.MouseX), float32(input.MouseY)}
		moved := cursor != cs.Cursor
		cs.Cursor = cursor
		viewport := mgl32.Vec2{float32(input.WindowWidth), float32(input.WindowHeight)}
		sq, hit, ok := cs.Geometry.PickSquare(cs.Camera, cursor, viewport)
		cs.Intersection = hit
		if ok {
			cs.HoveredSquare = sq
			// a still cursor leaves keyboard selection alone
			if moved {
				g.Hover(sq)
			}
			if input.IsJustReleased(MouseButtonLeft) {
				g.Select(sq)
			}
		} else {
			cs.HoveredSquare = chess.NoSquare
		}
	}

	if g.Phase == play.GameOver && input.IsJustPressed(KeyN) {
		cs.StartGame(cfg.FEN, cmd.Logger())
	}
}

// cameraControls applies keyboard, mouse, scroll and gamepad camera input.
// Mode switches are held back while a move animates the camera.
func cameraControls(cs *ChessState, cfg *Config, input *Input, dt float32) {
	c := cs.Camera
	if input.WindowWidth > 0 && input.WindowHeight > 0 {
		c.Aspect = float32(input.WindowWidth) / float32(input.WindowHeight)
	}

	if cs.Gameplay.Phase != play.OngoingMove {
		switch {
		case input.IsJustPressed(KeyL):
			*c = c.ToLookAt(cs.lookAtTarget, cfg.Camera.HomeDistance)
		case input.IsJustPressed(KeyF):
			*c = c.ToFree()
		}
	}
	switch {
	case input.IsJustPressed(KeyP):
		c.TogglePerspective(true)
	case input.IsJustPressed(KeyO):
		c.TogglePerspective(false)
	}

	_, scrollY := input.ConsumeScroll()
	if scrollY != 0 {
		if !c.Perspective {
			c.AdjustOrthoZoom(scrollZoomStep * float32(scrollY))
		}
		c.AdjustDistance(-scrollDollyStep * float32(scrollY))
	}

	step := cfg.Camera.MoveSpeed * dt
	if input.MouseCaptured {
		var forward, left float32
		if input.IsDown(KeyW) {
			forward += step
		}
		if input.IsDown(KeyS) {
			forward -= step
		}
		if input.IsDown(KeyA) {
			left += step
		}
		if input.IsDown(KeyD) {
			left -= step
		}
		c.Move(forward, left)

		sens := cfg.Camera.MouseSensitivity
		if input.MouseDeltaX != 0 || input.MouseDeltaY != 0 {
			c.AdjustAngles(-sens*float32(input.MouseDeltaX), sens*float32(input.MouseDeltaY))
		}
	}

	pad := &input.Gamepad
	if pad.Connected {
		c.Move(-pad.Axis(GamepadLeftY)*step, -pad.Axis(GamepadLeftX)*step)
		turn := gamepadTurnSpeed * dt
		c.AdjustAngles(-pad.Axis(GamepadRightX)*turn, -pad.Axis(GamepadRightY)*turn)
		zoom := (pad.Axis(GamepadLeftTrigger) - pad.Axis(GamepadRightTrigger)) * gamepadZoomSpeed * dt
		if zoom != 0 {
			c.AdjustDistance(zoom)
		}
	}
}

func chessUpdateSystem(cs *ChessState, input *Input, t *Time, hud *Hud) {
	cs.Gameplay.Update(t.DeltaSeconds())
	cs.syncScene()
	hud.Status = cs.Gameplay.Status()
	if hud.Debug {
		hud.SetOverlay(cs.overlay(input)...)
	}
}
