package fchessg

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyA int = iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyInsert
	KeyDelete
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyMinus
	KeyEqual
	KeyKPPlus
	KeyKPMinus
	KeyShift
	KeyControl
	KeyLeftAlt
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

// Gamepad axis indices, matching the GLFW gamepad layout.
const (
	GamepadLeftX int = iota
	GamepadLeftY
	GamepadRightX
	GamepadRightY
	GamepadLeftTrigger
	GamepadRightTrigger
	gamepadAxisCount
)

const (
	StickDeadZone   float32 = 0.1
	TriggerDeadZone float32 = 0.01
)

type Gamepad struct {
	Connected bool
	// Axes holds raw stick values in [-1, 1] and trigger values in [0, 1].
	Axes [gamepadAxisCount]float32

	StartDown        bool
	StartJustPressed bool
}

// Axis returns the axis value, or 0 inside the dead zone.
func (g *Gamepad) Axis(axis int) float32 {
	v := g.Axes[axis]
	zone := StickDeadZone
	if axis == GamepadLeftTrigger || axis == GamepadRightTrigger {
		zone = TriggerDeadZone
	}
	if v > -zone && v < zone {
		return 0
	}
	return v
}

func (g *Gamepad) setStart(down bool) {
	g.StartJustPressed = down && !g.StartDown
	g.StartDown = down
}

type InputModule struct{}

type Input struct {
	Pressed [256]bool

	JustPressed  [256]bool
	JustReleased [256]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	// MouseCaptured hides the cursor and routes mouse movement to the camera.
	MouseCaptured bool

	// scroll accumulates wheel offsets until consumed.
	scrollX, scrollY float64

	Gamepad Gamepad

	WindowWidth, WindowHeight int

	callbacksInstalled bool
}

func (in *Input) IsDown(key int) bool {
	return in.Pressed[key]
}

func (in *Input) IsJustPressed(key int) bool {
	return in.JustPressed[key]
}

func (in *Input) IsJustReleased(key int) bool {
	return in.JustReleased[key]
}

// SetKey records the state of a key or mouse button for this frame.
func (in *Input) SetKey(key int, down bool) {
	in.JustPressed[key] = down && !in.Pressed[key]
	in.JustReleased[key] = !down && in.Pressed[key]
	in.Pressed[key] = down
}

// SetCursor moves the cursor, producing a delta only while it is captured.
func (in *Input) SetCursor(x, y float64) {
	if in.MouseCaptured {
		in.MouseDeltaX = x - in.MouseX
		in.MouseDeltaY = y - in.MouseY
	} else {
		in.MouseDeltaX = 0
		in.MouseDeltaY = 0
	}
	in.MouseX = x
	in.MouseY = y
}

func (in *Input) AddScroll(x, y float64) {
	in.scrollX += x
	in.scrollY += y
}

// ConsumeScroll returns the accumulated scroll offset and resets it.
func (in *Input) ConsumeScroll() (x, y float64) {
	x, y = in.scrollX, in.scrollY
	in.scrollX, in.scrollY = 0, 0
	return x, y
}

// ToggleCapture flips camera-adjust mode and returns the new state.
func (in *Input) ToggleCapture() bool {
	in.MouseCaptured = !in.MouseCaptured
	in.MouseDeltaX = 0
	in.MouseDeltaY = 0
	return in.MouseCaptured
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
}

func inputSystem(s *WindowState, input *Input) {
	if !input.callbacksInstalled {
		s.windowGlfw.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
			input.AddScroll(xoff, yoff)
		})
		input.callbacksInstalled = true
	}

	glfw.PollEvents()

	// Update Keyboard
	for key, glfwKey := range keyToGlfw {
		input.SetKey(key, glfw.Press == s.windowGlfw.GetKey(glfwKey))
	}

	// Update Mouse
	input.SetCursor(s.windowGlfw.GetCursorPos())

	// Update window dimensions
	input.WindowWidth, input.WindowHeight = s.windowGlfw.GetSize()

	// Update mouse buttons
	for btn := MouseButtonLeft; btn <= MouseButtonMiddle; btn++ {
		var glfwBtn glfw.MouseButton
		switch btn {
		case MouseButtonLeft:
			glfwBtn = glfw.MouseButtonLeft
		case MouseButtonRight:
			glfwBtn = glfw.MouseButtonRight
		case MouseButtonMiddle:
			glfwBtn = glfw.MouseButtonMiddle
		}
		input.SetKey(btn, glfw.Press == s.windowGlfw.GetMouseButton(glfwBtn))
	}

	pollGamepad(&input.Gamepad)

	if input.MouseCaptured {
		s.windowGlfw.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		s.windowGlfw.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

func pollGamepad(pad *Gamepad) {
	joy := glfw.Joystick1
	if !joy.Present() || !joy.IsGamepad() {
		pad.Connected = false
		pad.Axes = [gamepadAxisCount]float32{}
		pad.setStart(false)
		return
	}
	state := joy.GetGamepadState()
	if state == nil {
		return
	}
	pad.Connected = true
	pad.Axes[GamepadLeftX] = state.Axes[glfw.AxisLeftX]
	pad.Axes[GamepadLeftY] = state.Axes[glfw.AxisLeftY]
	pad.Axes[GamepadRightX] = state.Axes[glfw.AxisRightX]
	pad.Axes[GamepadRightY] = state.Axes[glfw.AxisRightY]
	// GLFW triggers rest at -1
	pad.Axes[GamepadLeftTrigger] = (state.Axes[glfw.AxisLeftTrigger] + 1) / 2
	pad.Axes[GamepadRightTrigger] = (state.Axes[glfw.AxisRightTrigger] + 1) / 2
	pad.setStart(state.Buttons[glfw.ButtonStart] == glfw.Press)
}

var keyToGlfw = map[int]glfw.Key{
	KeyA:         glfw.KeyA,
	KeyB:         glfw.KeyB,
	KeyC:         glfw.KeyC,
	KeyD:         glfw.KeyD,
	KeyE:         glfw.KeyE,
	KeyF:         glfw.KeyF,
	KeyG:         glfw.KeyG,
	KeyH:         glfw.KeyH,
	KeyI:         glfw.KeyI,
	KeyJ:         glfw.KeyJ,
	KeyK:         glfw.KeyK,
	KeyL:         glfw.KeyL,
	KeyM:         glfw.KeyM,
	KeyN:         glfw.KeyN,
	KeyO:         glfw.KeyO,
	KeyP:         glfw.KeyP,
	KeyQ:         glfw.KeyQ,
	KeyR:         glfw.KeyR,
	KeyS:         glfw.KeyS,
	KeyT:         glfw.KeyT,
	KeyU:         glfw.KeyU,
	KeyV:         glfw.KeyV,
	KeyW:         glfw.KeyW,
	KeyX:         glfw.KeyX,
	KeyY:         glfw.KeyY,
	KeyZ:         glfw.KeyZ,
	Key0:         glfw.Key0,
	Key1:         glfw.Key1,
	Key2:         glfw.Key2,
	Key3:         glfw.Key3,
	Key4:         glfw.Key4,
	Key5:         glfw.Key5,
	Key6:         glfw.Key6,
	Key7:         glfw.Key7,
	Key8:         glfw.Key8,
	Key9:         glfw.Key9,
	KeySpace:     glfw.KeySpace,
	KeyEnter:     glfw.KeyEnter,
	KeyEscape:    glfw.KeyEscape,
	KeyTab:       glfw.KeyTab,
	KeyBackspace: glfw.KeyBackspace,
	KeyInsert:    glfw.KeyInsert,
	KeyDelete:    glfw.KeyDelete,
	KeyRight:     glfw.KeyRight,
	KeyLeft:      glfw.KeyLeft,
	KeyDown:      glfw.KeyDown,
	KeyUp:        glfw.KeyUp,
	KeyF1:        glfw.KeyF1,
	KeyF2:        glfw.KeyF2,
	KeyF3:        glfw.KeyF3,
	KeyF4:        glfw.KeyF4,
	KeyF5:        glfw.KeyF5,
	KeyF6:        glfw.KeyF6,
	KeyF7:        glfw.KeyF7,
	KeyF8:        glfw.KeyF8,
	KeyF9:        glfw.KeyF9,
	KeyF10:       glfw.KeyF10,
	KeyF11:       glfw.KeyF11,
	KeyF12:       glfw.KeyF12,
	KeyMinus:     glfw.KeyMinus,
	KeyEqual:     glfw.KeyEqual,
	KeyKPPlus:    glfw.KeyKPAdd,
	KeyKPMinus:   glfw.KeyKPSubtract,
	KeyShift:     glfw.KeyLeftShift,
	KeyControl:   glfw.KeyLeftControl,
	KeyLeftAlt:   glfw.KeyLeftAlt,
}
