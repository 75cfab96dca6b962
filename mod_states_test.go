package fchessg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frameModule struct {
	input *Input
	clock *Time
}

func (m frameModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(m.input, m.clock)
}

func newStatesApp(t *testing.T, cfg *Config) (*App, *Input) {
	t.Helper()
	input := &Input{WindowWidth: 800, WindowHeight: 600}
	app := NewAppBuilder().
		UseStates(StateMenu, StateExit).
		UseModule(
			ConfigModule{Config: cfg},
			frameModule{input: input, clock: &Time{Dt: 16 * time.Millisecond}},
			HudModule{},
			MenuModule{},
			LoadingModule{},
		).
		Build()
	return app, input
}

func tap(app *App, input *Input, key int) bool {
	input.SetKey(key, true)
	running := app.Step()
	input.SetKey(key, false)
	return running
}

func TestMenu_TogglesQualityAndStarts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AssetDir = t.TempDir()
	app, input := newStatesApp(t, &cfg)

	require.True(t, app.Step())
	assert.Equal(t, StateMenu, app.State())
	hud := Resource[Hud](app)
	assert.Contains(t, hud.Status, "textures (high)")

	tap(app, input, KeyT)
	assert.Equal(t, "low", cfg.TextureQuality)
	assert.Contains(t, hud.Status, "textures (low)")

	tap(app, input, KeyEnter)
	assert.Equal(t, StateLoading, app.State())
}

func TestMenu_EscapeExits(t *testing.T) {
	cfg := DefaultConfig()
	app, input := newStatesApp(t, &cfg)

	require.True(t, app.Step())
	assert.False(t, tap(app, input, KeyEscape))
	assert.Equal(t, StateExit, app.State())
}

func TestLoading_FillsStoreThenEntersGameplay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AssetDir = t.TempDir()
	app, input := newStatesApp(t, &cfg)

	require.True(t, app.Step())
	tap(app, input, KeyEnter)
	require.Equal(t, StateLoading, app.State())

	deadline := time.Now().Add(5 * time.Second)
	for app.State() == StateLoading && time.Now().Before(deadline) {
		app.Step()
		time.Sleep(time.Millisecond)
	}
	require.Equal(t, StateGameplay, app.State())

	store := Resource[TextureStore](app)
	assert.Equal(t, 20, store.Len())
	tex, ok := store.Get("BoardImage")
	require.True(t, ok)
	assert.True(t, tex.Placeholder)
	assert.Len(t, store.TakePending(), 20)
	assert.Empty(t, store.TakePending())

	state := Resource[LoadingState](app)
	assert.Equal(t, float32(100), state.Progress.Percent())
	assert.Equal(t, "Loading 100%", Resource[Hud](app).Status)
}
