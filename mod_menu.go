package fchessg

import "fmt"

type MenuModule struct{}

func (mod MenuModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(menuEnterSystem).
			InStage(Update).
			InState(OnEnter(StateMenu)),
	)
	app.UseSystem(
		System(menuSystem).
			InStage(Update).
			InState(OnExecute(StateMenu)),
	)
}

func menuEnterSystem(cfg *Config, hud *Hud, cmd *Commands) {
	hud.Status = menuStatus(cfg)
	cmd.Logger().Infof("menu: Enter to play, T to toggle texture quality, Escape to quit")
}

func menuSystem(cfg *Config, input *Input, hud *Hud, cmd *Commands) {
	switch {
	case input.IsJustPressed(KeyEscape):
		cmd.Exit()
	case input.IsJustPressed(KeyT):
		cfg.TextureQuality = cfg.Quality().Toggle().String()
		cmd.Logger().Infof("texture quality: %s", cfg.TextureQuality)
	case input.IsJustPressed(KeyEnter), input.IsJustReleased(MouseButtonLeft), input.Gamepad.StartJustPressed:
		cmd.ChangeState(StateLoading)
	}
	hud.Status = menuStatus(cfg)
}

func menuStatus(cfg *Config) string {
	return fmt.Sprintf("Enter: play, T: textures (%s), Esc: quit", cfg.Quality())
}
