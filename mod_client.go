package fchessg

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gekko3d/fchessg/fchess/assets"
)

// SkyColor is the clear colour used in place of the HDR sky box.
var SkyColor = wgpu.Color{R: 0.53, G: 0.72, B: 0.90, A: 1.0}

type ClientModule struct {
	ClearColor *wgpu.Color
}

// clientState owns the GPU side of the scene. Mesh drawing is not wired yet:
// the texture views uploaded here and ChessState.Scene (walked with
// core.Scene.Walk and WorldTransform) are the inputs a draw pass would
// consume, and renderSystem only clears to clearColor.
type clientState struct {
	clearColor wgpu.Color
	textures   map[assets.TextureId]*wgpu.TextureView
	frames     uint64
}

func (mod ClientModule) Install(app *App, cmd *Commands) {
	ws := Resource[WindowState](app)
	if ws == nil {
		panic("ClientModule requires a WindowState; install PlatformWindowModule first")
	}
	clearColor := SkyColor
	if mod.ClearColor != nil {
		clearColor = *mod.ClearColor
	}

	cmd.AddResources(
		createGpuState(ws),
		&clientState{
			clearColor: clearColor,
			textures:   make(map[assets.TextureId]*wgpu.TextureView),
		},
	)

	app.UseSystem(
		System(textureUploadSystem).
			InStage(PreRender).
			RunAlways(),
	)
	app.UseSystem(
		System(renderSystem).
			InStage(Render).
			RunAlways(),
	)
	app.UseSystem(
		System(clientReleaseSystem).
			InStage(Render).
			InState(OnExit(StateExit)),
	)
}

func textureUploadSystem(gpuState *GpuState, state *clientState, store *TextureStore) {
	for _, tex := range store.TakePending() {
		state.textures[tex.Id] = createTextureFromImage(tex, gpuState)
	}
}

// renders single frame
func renderSystem(gpuState *GpuState, state *clientState, ws *WindowState, cmd *Commands) {
	if gpuState.resize(ws.WindowWidth, ws.WindowHeight) {
		cmd.Logger().Debugf("surface reconfigured to %dx%d", ws.WindowWidth, ws.WindowHeight)
	}
	if ws.WindowWidth <= 0 || ws.WindowHeight <= 0 {
		return
	}

	nextTexture, err := gpuState.surface.GetCurrentTexture()
	if err != nil {
		cmd.Logger().Warnf("skipping frame: %v", err)
		return
	}
	view, err := nextTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}
	defer view.Release()
	encoder, err := gpuState.device.CreateCommandEncoder(nil)
	if err != nil {
		panic(err)
	}
	defer encoder.Release()

	renderPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: state.clearColor,
			},
		},
	})
	defer renderPass.Release()

	err = renderPass.End()
	if err != nil {
		panic(err)
	}

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		panic(err)
	}
	defer cmdBuffer.Release()

	gpuState.queue.Submit(cmdBuffer)
	gpuState.surface.Present()
	state.frames++
}

func clientReleaseSystem(gpuState *GpuState, state *clientState) {
	for id, view := range state.textures {
		view.Release()
		delete(state.textures, id)
	}
	gpuState.release()
}
