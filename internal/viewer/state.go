// Package viewer ties the scene, interaction state, camera and animation
// together and applies user commands to them.
package viewer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/partview/internal/config"
	"github.com/Faultbox/partview/internal/engine/animation"
	"github.com/Faultbox/partview/internal/engine/camera"
	"github.com/Faultbox/partview/internal/engine/collision"
	"github.com/Faultbox/partview/internal/engine/meshstate"
	"github.com/Faultbox/partview/internal/engine/picking"
	"github.com/Faultbox/partview/internal/engine/scene"
	"github.com/Faultbox/partview/internal/engine/texture"
	"github.com/Faultbox/partview/internal/logger"
)

// Material is the surface material applied to every mesh.
type Material struct {
	Color     [3]float32
	Shininess float32
}

// Light is one scene light. A Position W of 0 makes it directional.
type Light struct {
	Enabled  bool
	Position [4]float32
	Color    [3]float32
}

// ViewerState is the complete mutable state of one viewer session.
// It is owned by the host goroutine and is not safe for concurrent use.
type ViewerState struct {
	Scene     *scene.Scene
	Store     *meshstate.Store
	Selection SelectionModel
	Camera    *camera.OrbitCamera
	Clock     *animation.Clock
	Detector  *collision.Detector
	Picker    *picking.Picker
	Material  Material
	Lights    []Light
	Texture   *texture.Image

	TranslateStep  float32
	ViewportWidth  int
	ViewportHeight int
}

// NewViewerState builds the session state from cfg. target receives the
// selection pass when picking. The state starts without a scene.
func NewViewerState(cfg *config.Config, target picking.SelectionTarget) (*ViewerState, error) {
	sel, err := NewSelectionModel(cfg.Interaction.Selection)
	if err != nil {
		return nil, err
	}
	policy, err := animation.ParseResetPolicy(cfg.Animation.ResetPolicy)
	if err != nil {
		return nil, err
	}

	st := &ViewerState{
		Store:          meshstate.NewStore(0),
		Selection:      sel,
		Camera:         camera.NewOrbitCamera(cfg.CameraSettings()),
		Clock:          animation.NewClock(cfg.Animation.Tick, cfg.Animation.StepDegrees, policy),
		Detector:       collision.NewDetector(cfg.Collision.Highlight),
		Picker:         picking.NewPicker(target, cfg.Picking.Window),
		Material:       Material{Color: cfg.Material.Color, Shininess: cfg.Material.Shininess},
		TranslateStep:  cfg.Interaction.TranslateStep,
		ViewportWidth:  cfg.Window.Width,
		ViewportHeight: cfg.Window.Height,
	}
	for _, l := range cfg.Lights {
		st.Lights = append(st.Lights, Light{Enabled: l.Enabled, Position: l.Position, Color: l.Color})
	}

	logger.Debug("viewer state created",
		zap.String("selection", sel.Name()),
		zap.Stringer("reset_policy", policy),
		zap.Int("lights", len(st.Lights)),
	)
	return st, nil
}

// Aspect returns the viewport aspect ratio.
func (s *ViewerState) Aspect() float32 {
	if s.ViewportHeight <= 0 {
		return 1
	}
	return float32(s.ViewportWidth) / float32(s.ViewportHeight)
}

// PickView returns the camera view used for picking and drawing.
func (s *ViewerState) PickView() picking.View {
	return picking.View{
		Projection: s.Camera.Projection(s.Aspect()),
		View:       s.Camera.ViewMatrix(),
		Width:      s.ViewportWidth,
		Height:     s.ViewportHeight,
	}
}
