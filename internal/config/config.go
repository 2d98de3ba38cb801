// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/Faultbox/partview/internal/engine/animation"
	"github.com/Faultbox/partview/internal/engine/camera"
	"github.com/Faultbox/partview/internal/logger"
)

// Selection strategies.
const (
	SelectionExclusive = "exclusive"
	SelectionToggle    = "toggle"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Window      WindowConfig      `yaml:"window"`
	Model       ModelConfig       `yaml:"model"`
	Camera      CameraConfig      `yaml:"camera"`
	Animation   AnimationConfig   `yaml:"animation"`
	Interaction InteractionConfig `yaml:"interaction"`
	Picking     PickingConfig     `yaml:"picking"`
	Collision   CollisionConfig   `yaml:"collision"`
	Material    MaterialConfig    `yaml:"material"`
	Lights      []LightConfig     `yaml:"lights"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`

	// ScreenshotDir receives PNG captures of the window.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// ModelConfig holds the model and texture paths.
type ModelConfig struct {
	Path    string `yaml:"path"`
	Texture string `yaml:"texture"`
	Watch   bool   `yaml:"watch"` // Reload the model when the file changes
}

// CameraConfig holds orbit camera settings.
type CameraConfig struct {
	Distance         float32 `yaml:"distance"`
	MinDistance      float32 `yaml:"min_distance"`
	OrbitSensitivity float32 `yaml:"orbit_sensitivity"`
	PanStep          float32 `yaml:"pan_step"`
	ZoomStep         float32 `yaml:"zoom_step"`
	FOV              float32 `yaml:"fov"`
	Near             float32 `yaml:"near"`
	Far              float32 `yaml:"far"`
}

// AnimationConfig holds the spin clock settings.
type AnimationConfig struct {
	Tick        time.Duration `yaml:"tick"`
	StepDegrees float32       `yaml:"step_degrees"`
	ResetPolicy string        `yaml:"reset_policy"` // persist | reset_on_disable
}

// InteractionConfig holds selection and editing settings.
type InteractionConfig struct {
	Selection     string  `yaml:"selection"` // exclusive | toggle
	TranslateStep float32 `yaml:"translate_step"`
}

// PickingConfig holds picking settings.
type PickingConfig struct {
	Window int `yaml:"window"` // Pick region edge in pixels
}

// CollisionConfig holds overlap highlight settings.
type CollisionConfig struct {
	Highlight bool `yaml:"highlight"`
}

// MaterialConfig holds the surface material.
type MaterialConfig struct {
	Color     [3]float32 `yaml:"color"`
	Shininess float32    `yaml:"shininess"`
}

// LightConfig holds one light. Position W of 0 makes the light directional.
type LightConfig struct {
	Enabled  bool       `yaml:"enabled"`
	Position [4]float32 `yaml:"position"`
	Color    [3]float32 `yaml:"color"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// MaxLights is the number of lights the renderer supports.
const MaxLights = 3

// Default returns a Config with the stock viewer settings.
func Default() *Config {
	cam := camera.DefaultSettings()
	return &Config{
		Window: WindowConfig{
			Title:         "Part Viewer",
			Width:         800,
			Height:        600,
			VSync:         true,
			ScreenshotDir: "screenshots",
		},
		Camera: CameraConfig{
			Distance:         cam.Distance,
			MinDistance:      cam.MinDistance,
			OrbitSensitivity: cam.OrbitSensitivity,
			PanStep:          cam.PanStep,
			ZoomStep:         cam.ZoomStep,
			FOV:              cam.FOV,
			Near:             cam.Near,
			Far:              cam.Far,
		},
		Animation: AnimationConfig{
			Tick:        animation.DefaultPeriod,
			StepDegrees: animation.DefaultStep,
			ResetPolicy: animation.Persist.String(),
		},
		Interaction: InteractionConfig{
			Selection:     SelectionExclusive,
			TranslateStep: 0.1,
		},
		Picking:   PickingConfig{Window: 5},
		Collision: CollisionConfig{Highlight: true},
		Material: MaterialConfig{
			Color:     [3]float32{0.8, 0.8, 0.8},
			Shininess: 50,
		},
		Lights: []LightConfig{
			{Enabled: true, Position: [4]float32{1, 1, 1, 0}, Color: [3]float32{1, 1, 1}},
			{Enabled: true, Position: [4]float32{2, 2, 0, 1}, Color: [3]float32{1, 0.5, 0}},
			{Enabled: false, Position: [4]float32{-2, -2, 0, 1}, Color: [3]float32{0, 0, 1}},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// CameraSettings converts the camera section for the camera package.
func (c *Config) CameraSettings() camera.Settings {
	return camera.Settings{
		Distance:         c.Camera.Distance,
		MinDistance:      c.Camera.MinDistance,
		OrbitSensitivity: c.Camera.OrbitSensitivity,
		PanStep:          c.Camera.PanStep,
		ZoomStep:         c.Camera.ZoomStep,
		FOV:              c.Camera.FOV,
		Near:             c.Camera.Near,
		Far:              c.Camera.Far,
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs error
	add := func(format string, args ...any) {
		errs = multierr.Append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		add("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Camera.MinDistance <= 0 {
		add("camera.min_distance %v must be positive", c.Camera.MinDistance)
	}
	if c.Camera.Distance < c.Camera.MinDistance {
		add("camera.distance %v below min_distance %v", c.Camera.Distance, c.Camera.MinDistance)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		add("camera.fov %v out of range (0, 180)", c.Camera.FOV)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		add("camera near/far %v/%v", c.Camera.Near, c.Camera.Far)
	}
	if c.Animation.Tick <= 0 {
		add("animation.tick %v must be positive", c.Animation.Tick)
	}
	if c.Animation.StepDegrees <= 0 {
		add("animation.step_degrees %v must be positive", c.Animation.StepDegrees)
	}
	if _, err := animation.ParseResetPolicy(c.Animation.ResetPolicy); err != nil {
		add("%v", err)
	}
	if c.Interaction.Selection != SelectionExclusive && c.Interaction.Selection != SelectionToggle {
		add("interaction.selection %q (want %s or %s)", c.Interaction.Selection, SelectionExclusive, SelectionToggle)
	}
	if c.Interaction.TranslateStep <= 0 {
		add("interaction.translate_step %v must be positive", c.Interaction.TranslateStep)
	}
	if c.Picking.Window < 1 {
		add("picking.window %d must be at least 1", c.Picking.Window)
	}
	if len(c.Lights) > MaxLights {
		add("%d lights configured, at most %d supported", len(c.Lights), MaxLights)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		add("%v", err)
	}
	return errs
}
