package fchessg

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowState is the single GLFW window shared by input and rendering.
type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string

	fullscreen bool
	// windowed geometry restored when leaving fullscreen
	savedX, savedY, savedW, savedH int
}

func createWindowState(windowWidth int, windowHeight int, windowTitle string) *WindowState {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // Important: tell GLFW we don't want OpenGL
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		panic(err)
	}

	return &WindowState{
		windowGlfw:   win,
		WindowWidth:  windowWidth,
		WindowHeight: windowHeight,
		windowTitle:  windowTitle,
	}
}

func (s *WindowState) SetTitle(title string) {
	if title == s.windowTitle {
		return
	}
	s.windowTitle = title
	s.windowGlfw.SetTitle(title)
}

func (s *WindowState) Title() string {
	return s.windowTitle
}

func (s *WindowState) Fullscreen() bool {
	return s.fullscreen
}

func (s *WindowState) SetFullscreen(on bool) {
	if on == s.fullscreen {
		return
	}
	if on {
		monitor := glfw.GetPrimaryMonitor()
		if monitor == nil {
			return
		}
		s.savedX, s.savedY = s.windowGlfw.GetPos()
		s.savedW, s.savedH = s.windowGlfw.GetSize()
		mode := monitor.GetVideoMode()
		s.windowGlfw.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	} else {
		s.windowGlfw.SetMonitor(nil, s.savedX, s.savedY, s.savedW, s.savedH, 0)
	}
	s.fullscreen = on
}

func (s *WindowState) destroy() {
	s.windowGlfw.Destroy()
	glfw.Terminate()
}

// PlatformWindowModule ensures a single shared GLFW window (WindowState) is created
// and made available as a resource for any renderer or input module.
// Install is idempotent: if a WindowState resource already exists, it is reused.
type PlatformWindowModule struct {
	Width      int
	Height     int
	Title      string
	Fullscreen bool
}

// NewPlatformWindow creates a module that provides a shared WindowState resource.
// If Width/Height are zero, sensible defaults are used.
func NewPlatformWindow(cfg WindowConfig) *PlatformWindowModule {
	def := DefaultConfig().Window
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if cfg.Title == "" {
		cfg.Title = def.Title
	}
	return &PlatformWindowModule{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Title:      cfg.Title,
		Fullscreen: cfg.Fullscreen,
	}
}

// Install provides the WindowState resource if missing.
func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	if Resource[WindowState](app) == nil {
		ws := createWindowState(m.Width, m.Height, m.Title)
		ws.SetFullscreen(m.Fullscreen)
		app.addResources(ws)
	}

	app.UseSystem(
		System(windowSystem).
			InStage(Update).
			RunAlways(),
	)
	app.UseSystem(
		System(windowTitleSystem).
			InStage(PostRender).
			RunAlways(),
	)
	app.UseSystem(
		System(windowCloseSystem).
			InStage(Finale).
			InState(OnExit(StateExit)),
	)
}

// windowSystem tracks the framebuffer size,
// handles F11 and turns a close request into an app exit.
func windowSystem(s *WindowState, input *Input, cmd *Commands) {
	s.WindowWidth, s.WindowHeight = s.windowGlfw.GetFramebufferSize()
	if input.IsJustPressed(KeyF11) {
		s.SetFullscreen(!s.fullscreen)
	}
	if s.windowGlfw.ShouldClose() {
		cmd.Exit()
	}
}

func windowTitleSystem(s *WindowState, hud *Hud) {
	s.SetTitle(hud.Title)
}

func windowCloseSystem(s *WindowState, cmd *Commands) {
	cmd.Logger().Debugf("closing window")
	s.destroy()
}
