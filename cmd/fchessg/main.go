package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/gekko3d/fchessg"
)

func main() {
	cmd := &cli.Command{
		Name:  "fchessg",
		Usage: "3D chess on a table",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
				Value:   "fchessg.yaml",
			},
			&cli.StringFlag{
				Name:  "fen",
				Usage: "starting position in FEN",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "debug logging and overlay",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "panic on bookkeeping violations",
			},
			&cli.StringFlag{
				Name:  "texture-quality",
				Usage: "high or low",
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: "window width",
			},
			&cli.IntFlag{
				Name:  "height",
				Usage: "window height",
			},
			&cli.BoolFlag{
				Name:  "fullscreen",
				Usage: "start in fullscreen",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "fchessg: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *cli.Command) error {
	cfg, err := fchessg.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if err := applyFlags(cfg, c); err != nil {
		return err
	}

	app := fchessg.NewAppBuilder().
		UseStates(fchessg.StateMenu, fchessg.StateExit).
		UseModule(
			fchessg.LoggingModule{Prefix: "fchessg", Debug: cfg.Debug, JSON: cfg.LogJSON},
			fchessg.ConfigModule{Config: cfg},
			fchessg.TimeModule{},
			fchessg.NewPlatformWindow(cfg.Window),
			fchessg.InputModule{},
			fchessg.HudModule{Title: cfg.Window.Title},
			fchessg.ClientModule{},
			fchessg.MenuModule{},
			fchessg.LoadingModule{},
			fchessg.ChessModule{},
		).
		Build()

	app.Run()
	return nil
}

func applyFlags(cfg *fchessg.Config, c *cli.Command) error {
	if c.IsSet("fen") {
		cfg.FEN = c.String("fen")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("strict") {
		cfg.Strict = c.Bool("strict")
	}
	if c.IsSet("texture-quality") {
		cfg.TextureQuality = c.String("texture-quality")
	}
	if c.IsSet("width") {
		cfg.Window.Width = int(c.Int("width"))
	}
	if c.IsSet("height") {
		cfg.Window.Height = int(c.Int("height"))
	}
	if c.IsSet("fullscreen") {
		cfg.Window.Fullscreen = c.Bool("fullscreen")
	}
	return cfg.Validate()
}
