// Package app implements the viewer host loop: window, input, drawing and
// model reload.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/partview/internal/config"
	"github.com/Faultbox/partview/internal/engine/debug"
	"github.com/Faultbox/partview/internal/engine/input"
	"github.com/Faultbox/partview/internal/engine/renderer"
	"github.com/Faultbox/partview/internal/engine/window"
	"github.com/Faultbox/partview/internal/logger"
	"github.com/Faultbox/partview/internal/viewer"
)

// App is the running viewer.
type App struct {
	cfg     *config.Config
	running bool

	window      *window.Window
	renderer    *renderer.Renderer
	target      *renderer.GLSelectionTarget
	input       *input.Input
	controller  *viewer.Controller
	watcher     *viewer.ModelWatcher
	screenshots *debug.ScreenshotCapture

	mouse   mouseState
	capture bool
	title   string

	log *zap.Logger
}

// New creates the window and GL resources and loads the model and texture.
// Load failures are returned as *viewer.FatalLoadError.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:         cfg,
		input:       input.New(),
		screenshots: debug.NewScreenshotCapture(cfg.Window.ScreenshotDir, "partview"),
		log:         logger.Named("app"),
	}

	// Load before opening a window so a bad path fails fast.
	model, err := viewer.LoadModel(cfg.Model.Path)
	if err != nil {
		return nil, err
	}
	img, err := viewer.LoadTexture(cfg.Model.Texture)
	if err != nil {
		return nil, err
	}

	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context from the window.
	dw, dh := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{Width: dw, Height: dh})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	ww, wh := a.window.GetSize()
	a.target, err = renderer.NewGLSelectionTarget(ww, wh)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create selection target: %w", err)
	}

	state, err := viewer.NewViewerState(cfg, a.target)
	if err != nil {
		a.Close()
		return nil, err
	}
	state.Texture = img
	a.controller = viewer.NewController(state)
	a.controller.Resize(ww, wh)
	a.controller.Reload(model)
	a.renderer.Upload(model)
	a.renderer.SetTexture(img)

	if cfg.Model.Watch {
		if a.watcher, err = viewer.WatchModel(cfg.Model.Path); err != nil {
			a.log.Warn("model watch disabled", zap.Error(err))
		}
	}

	a.log.Info("viewer initialized",
		zap.String("model", cfg.Model.Path),
		zap.Int("meshes", len(model.Meshes)),
		zap.Bool("textured", img != nil),
	)
	return a, nil
}

// Run starts the main loop and returns when the window is closed.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	a.log.Info("starting viewer loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		for _, e := range a.input.Events() {
			a.handle(e)
		}

		a.pollReload()
		a.controller.Advance(dt)
		a.updateTitle()

		a.renderer.Draw(a.controller.Frame())
		if a.capture {
			a.capture = false
			a.saveScreenshot()
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", dt))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close releases all resources. It is safe on a partly built App.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.target != nil {
		a.target.Destroy()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func (a *App) handle(e input.Event) {
	switch e.Type {
	case input.EventWindowResize:
		ww, wh := a.window.GetSize()
		a.controller.Resize(ww, wh)
		a.renderer.Resize(a.window.DrawableSize())

	case input.EventKeyDown:
		switch e.Key {
		case sdl.SCANCODE_ESCAPE:
			a.running = false
		case sdl.SCANCODE_F12:
			a.capture = true
		default:
			if cmd := commandFor(e); cmd != viewer.CmdNone {
				a.controller.Do(cmd)
			}
		}

	case input.EventMouseDown, input.EventMouseUp, input.EventMouseMove, input.EventMouseWheel:
		a.mouse.handle(e, a.controller)
	}
}

// pollReload swaps in the model when the watcher saw it change. A model
// that fails to load is logged and the current one kept.
func (a *App) pollReload() {
	if a.watcher == nil || !a.watcher.Changed() {
		return
	}
	if err := a.controller.ReloadFrom(a.cfg.Model.Path); err != nil {
		return
	}
	a.renderer.Upload(a.controller.State().Scene)
}

// updateTitle shows the active mesh in the window title.
func (a *App) updateTitle() {
	title := a.cfg.Window.Title
	st := a.controller.State()
	if id, ok := st.Selection.Active(); ok && st.Scene != nil {
		if m, ok := st.Scene.Mesh(id); ok {
			title = fmt.Sprintf("%s - %s", title, m.Name)
		}
	}
	if title != a.title {
		a.title = title
		a.window.SetTitle(title)
	}
}

func (a *App) saveScreenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}
