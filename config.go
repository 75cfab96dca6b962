package fchessg

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/gekko3d/fchessg/fchess/anim"
	"github.com/gekko3d/fchessg/fchess/assets"
	"github.com/gekko3d/fchessg/fchess/play"
)

type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
}

type AnimationConfig struct {
	PieceTime          float32 `yaml:"piece_time"`
	CameraTime         float32 `yaml:"camera_time"`
	LiftHeight         float32 `yaml:"lift_height"`
	RotateCamera       bool    `yaml:"rotate_camera"`
	LegacyCameraAngles bool    `yaml:"legacy_camera_angles"`
}

type BoardConfig struct {
	Start       float32 `yaml:"start"`
	SquareSize  float32 `yaml:"square_size"`
	SurfaceY    float32 `yaml:"surface_y"`
	Scale       float32 `yaml:"scale"`
	TableHeight float32 `yaml:"table_height"`
}

type CameraConfig struct {
	HomeDistance     float32 `yaml:"home_distance"`
	HomeElevation    float32 `yaml:"home_elevation"`
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`
	MoveSpeed        float32 `yaml:"move_speed"`
}

type Config struct {
	Window         WindowConfig    `yaml:"window"`
	Debug          bool            `yaml:"debug"`
	Strict         bool            `yaml:"strict"`
	LogJSON        bool            `yaml:"log_json"`
	FEN            string          `yaml:"fen"`
	TextureQuality string          `yaml:"texture_quality"`
	AssetDir       string          `yaml:"asset_dir"`
	Animation      AnimationConfig `yaml:"animation"`
	Board          BoardConfig     `yaml:"board"`
	Camera         CameraConfig    `yaml:"camera"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "fchessg",
		},
		TextureQuality: assets.QualityHigh.String(),
		AssetDir:       "assets",
		Animation: AnimationConfig{
			PieceTime:    anim.DefaultBezierTime,
			CameraTime:   anim.DefaultCameraTime,
			LiftHeight:   0.1,
			RotateCamera: true,
		},
		Board: BoardConfig{
			Start:       play.DefaultBoardStart,
			SquareSize:  play.DefaultSquareSize,
			Scale:       1.5,
			TableHeight: 1.0,
		},
		Camera: CameraConfig{
			HomeDistance:     2,
			HomeElevation:    math.Pi / 5,
			MouseSensitivity: 0.001,
			MoveSpeed:        0.5,
		},
	}
}

// LoadConfig reads a YAML file on top of the defaults. A missing file is not
// an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	correctConfig(&cfg)

	return &cfg, nil
}

// correctConfig puts out-of-range values back to their defaults.
func correctConfig(c *Config) {
	def := DefaultConfig()
	if c.Window.Width < 320 || c.Window.Height < 240 {
		c.Window.Width = def.Window.Width
		c.Window.Height = def.Window.Height
	}
	if c.Window.Title == "" {
		c.Window.Title = def.Window.Title
	}
	if _, err := assets.ParseQuality(c.TextureQuality); err != nil {
		c.TextureQuality = def.TextureQuality
	}
	if c.AssetDir == "" {
		c.AssetDir = def.AssetDir
	}
	if c.Animation.PieceTime < 0 {
		c.Animation.PieceTime = def.Animation.PieceTime
	}
	if c.Animation.CameraTime < 0 {
		c.Animation.CameraTime = def.Animation.CameraTime
	}
	if c.Animation.LiftHeight < 0 {
		c.Animation.LiftHeight = def.Animation.LiftHeight
	}
	if c.Board.SquareSize <= 0 {
		c.Board.SquareSize = def.Board.SquareSize
		c.Board.Start = def.Board.Start
	}
	if c.Board.Scale <= 0 {
		c.Board.Scale = def.Board.Scale
	}
	if c.Camera.HomeDistance <= 0 {
		c.Camera.HomeDistance = def.Camera.HomeDistance
	}
	if c.Camera.MouseSensitivity <= 0 {
		c.Camera.MouseSensitivity = def.Camera.MouseSensitivity
	}
	if c.Camera.MoveSpeed <= 0 {
		c.Camera.MoveSpeed = def.Camera.MoveSpeed
	}
}

func (c *Config) Quality() assets.Quality {
	q, err := assets.ParseQuality(c.TextureQuality)
	if err != nil {
		return assets.QualityHigh
	}
	return q
}

func (c *Config) GameplayOptions() play.Options {
	opts := play.DefaultOptions()
	opts.PieceTime = c.Animation.PieceTime
	opts.CameraTime = c.Animation.CameraTime
	opts.LiftHeight = c.Animation.LiftHeight
	opts.RotateCamera = c.Animation.RotateCamera
	opts.LegacyCameraAngles = c.Animation.LegacyCameraAngles
	opts.HomeDistance = c.Camera.HomeDistance
	opts.HomeElevation = c.Camera.HomeElevation
	opts.Strict = c.Strict
	return opts
}

// ConfigModule publishes the loaded configuration as a resource.
type ConfigModule struct {
	Config *Config
}

func (m ConfigModule) Install(app *App, cmd *Commands) {
	cfg := m.Config
	if cfg == nil {
		def := DefaultConfig()
		cfg = &def
	}
	cmd.AddResources(cfg)
}

// BoardGeometry places the board on the table top at the configured scale.
func (c *Config) BoardGeometry() play.BoardGeometry {
	g := play.DefaultBoardGeometry()
	g.Start = c.Board.Start
	g.SquareSize = c.Board.SquareSize
	g.SurfaceY = c.Board.SurfaceY
	g.World = c.BoardTransform()
	return g
}

func (c *Config) BoardTransform() mgl32.Mat4 {
	s := c.Board.Scale
	return mgl32.Translate3D(0, c.Board.TableHeight, 0).Mul4(mgl32.Scale3D(s, s, s))
}

// Validate rejects values that correctConfig would silently replace, for
// settings given explicitly on the command line.
func (c *Config) Validate() error {
	if _, err := assets.ParseQuality(c.TextureQuality); err != nil {
		return err
	}
	if c.Window.Width < 320 || c.Window.Height < 240 {
		return fmt.Errorf("window size %dx%d is below 320x240", c.Window.Width, c.Window.Height)
	}
	return nil
}
