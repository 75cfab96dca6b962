package fchessg

import (
	"context"
	"fmt"

	"github.com/gekko3d/fchessg/fchess/assets"
)

// TextureStore keeps decoded textures by name and queues them for upload.
type TextureStore struct {
	textures map[string]assets.Texture
	pending  []assets.Texture
}

func NewTextureStore() *TextureStore {
	return &TextureStore{textures: make(map[string]assets.Texture)}
}

func (s *TextureStore) Add(textures ...assets.Texture) {
	for _, tex := range textures {
		s.textures[tex.Name] = tex
		s.pending = append(s.pending, tex)
	}
}

func (s *TextureStore) Get(name string) (assets.Texture, bool) {
	tex, ok := s.textures[name]
	return tex, ok
}

func (s *TextureStore) Len() int {
	return len(s.textures)
}

// TakePending returns the textures added since the last call.
func (s *TextureStore) TakePending() []assets.Texture {
	out := s.pending
	s.pending = nil
	return out
}

type LoadingState struct {
	loader   *assets.Loader
	Progress assets.Progress
}

type LoadingModule struct{}

func (mod LoadingModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewTextureStore(), &LoadingState{})
	app.UseSystem(
		System(loadingEnterSystem).
			InStage(Update).
			InState(OnEnter(StateLoading)),
	)
	app.UseSystem(
		System(loadingSystem).
			InStage(Update).
			InState(OnExecute(StateLoading)),
	)
	app.UseSystem(
		System(loadingCancelSystem).
			InStage(Update).
			InState(OnExit(StateExit)),
	)
}

func loadingEnterSystem(cfg *Config, state *LoadingState, cmd *Commands) {
	reqs := assets.SceneTextures(cfg.AssetDir)
	state.loader = assets.NewLoader(cfg.Quality())
	state.Progress = assets.Progress{Total: len(reqs)}
	state.loader.Start(context.Background(), reqs)
	cmd.Logger().Infof("loading %d textures from %s (%s quality)", len(reqs), cfg.AssetDir, cfg.Quality())
}

func loadingSystem(state *LoadingState, store *TextureStore, hud *Hud, cmd *Commands) {
	if state.loader == nil {
		return
	}
	for _, tex := range state.loader.Drain() {
		if tex.Placeholder {
			cmd.Logger().Warnf("texture %s missing, using placeholder", tex.Name)
		}
		store.Add(tex)
	}

	progress, done, err := state.loader.Poll()
	state.Progress = progress
	hud.Status = fmt.Sprintf("Loading %.0f%%", progress.Percent())
	if err != nil {
		cmd.Logger().Errorf("loading textures: %v", err)
		cmd.Exit()
		return
	}
	if done {
		cmd.Logger().Infof("loaded %d textures", store.Len())
		state.loader = nil
		cmd.ChangeState(StateGameplay)
	}
}

func loadingCancelSystem(state *LoadingState) {
	if state.loader != nil {
		state.loader.Cancel()
	}
}
