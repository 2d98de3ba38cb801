package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, float32(5), cfg.Camera.Distance)
	assert.Equal(t, float32(1), cfg.Camera.MinDistance)
	assert.Equal(t, 16*time.Millisecond, cfg.Animation.Tick)
	assert.Equal(t, float32(2), cfg.Animation.StepDegrees)
	assert.Equal(t, "persist", cfg.Animation.ResetPolicy)
	assert.Equal(t, SelectionExclusive, cfg.Interaction.Selection)
	assert.Equal(t, 5, cfg.Picking.Window)
	assert.True(t, cfg.Collision.Highlight)
	assert.Equal(t, [3]float32{0.8, 0.8, 0.8}, cfg.Material.Color)
	assert.Equal(t, float32(50), cfg.Material.Shininess)

	require.Len(t, cfg.Lights, 3)
	assert.True(t, cfg.Lights[0].Enabled)
	assert.Equal(t, float32(0), cfg.Lights[0].Position[3])
	assert.False(t, cfg.Lights[2].Enabled)

	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partview.yaml")
	content := `
window:
  width: 1024
model:
  path: parts/drone.obj
  watch: true
animation:
  tick: 20ms
  reset_policy: reset_on_disable
interaction:
  selection: toggle
lights:
  - enabled: true
    position: [0, 5, 0, 1]
    color: [1, 1, 1]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := Default()
	require.NoError(t, loadFromFile(cfg, path))

	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height, "unset keys keep defaults")
	assert.Equal(t, "parts/drone.obj", cfg.Model.Path)
	assert.True(t, cfg.Model.Watch)
	assert.Equal(t, 20*time.Millisecond, cfg.Animation.Tick)
	assert.Equal(t, "reset_on_disable", cfg.Animation.ResetPolicy)
	assert.Equal(t, SelectionToggle, cfg.Interaction.Selection)
	require.Len(t, cfg.Lights, 1)
	assert.Equal(t, [4]float32{0, 5, 0, 1}, cfg.Lights[0].Position)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFileInvalid(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"syntax":      "window: [unclosed",
		"unknown key": "window:\n  colour: red\n",
		"bad array":   "material:\n  color: [1, 2]\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))
			assert.Error(t, loadFromFile(Default(), path))
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	err := loadFromFile(Default(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"min distance", func(c *Config) { c.Camera.MinDistance = 0 }},
		{"distance below min", func(c *Config) { c.Camera.Distance = 0.5 }},
		{"fov", func(c *Config) { c.Camera.FOV = 180 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.5 }},
		{"tick", func(c *Config) { c.Animation.Tick = 0 }},
		{"step", func(c *Config) { c.Animation.StepDegrees = -2 }},
		{"reset policy", func(c *Config) { c.Animation.ResetPolicy = "never" }},
		{"selection", func(c *Config) { c.Interaction.Selection = "radio" }},
		{"translate step", func(c *Config) { c.Interaction.TranslateStep = 0 }},
		{"pick window", func(c *Config) { c.Picking.Window = 0 }},
		{"too many lights", func(c *Config) { c.Lights = append(c.Lights, LightConfig{}) }},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestValidateReportsAll(t *testing.T) {
	cfg := Default()
	cfg.Window.Height = -1
	cfg.Picking.Window = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window size")
	assert.Contains(t, err.Error(), "picking.window")
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	assert.NotEmpty(t, dir)
	assert.True(t, filepath.IsAbs(dir), dir)
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	assert.Empty(t, findConfigFile())

	require.NoError(t, os.WriteFile("partview.yaml", []byte("window:\n  width: 640\n"), 0644))
	assert.Equal(t, "./partview.yaml", findConfigFile())
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		set    func()
		reset  func()
		verify func(t *testing.T, cfg *Config)
	}{
		{
			name:  "debug",
			set:   func() { *flagDebug = true },
			reset: func() { *flagDebug = false },
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.Logging.Level)
			},
		},
		{
			name:  "model and texture",
			set:   func() { *flagModel, *flagTexture = "a.obj", "a.png" },
			reset: func() { *flagModel, *flagTexture = "", "" },
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "a.obj", cfg.Model.Path)
				assert.Equal(t, "a.png", cfg.Model.Texture)
			},
		},
		{
			name:  "size",
			set:   func() { *flagWidth, *flagHeight = 1920, 1080 },
			reset: func() { *flagWidth, *flagHeight = 0, 0 },
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 1920, cfg.Window.Width)
				assert.Equal(t, 1080, cfg.Window.Height)
			},
		},
		{
			name:  "selection and watch",
			set:   func() { *flagSelection, *flagWatch = SelectionToggle, true },
			reset: func() { *flagSelection, *flagWatch = "", false },
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, SelectionToggle, cfg.Interaction.Selection)
				assert.True(t, cfg.Model.Watch)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.set()
			defer tt.reset()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partview.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window:\n  width: 1600\n  height: 900\n"), 0644))

	*flagConfig = path
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1920, cfg.Window.Width, "flag beats file")
	assert.Equal(t, 900, cfg.Window.Height, "file beats default")
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partview.yaml")
	require.NoError(t, os.WriteFile(path, []byte("interaction:\n  selection: many\n"), 0644))

	*flagConfig = path
	defer func() { *flagConfig = "" }()

	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "partview.yaml")
	cfg := Default()
	cfg.Model.Path = "drone.obj"
	cfg.Animation.Tick = 25 * time.Millisecond
	require.NoError(t, cfg.SaveTo(path))

	loaded := Default()
	loaded.Lights = nil
	require.NoError(t, loadFromFile(loaded, path))
	assert.Equal(t, cfg, loaded)
}
