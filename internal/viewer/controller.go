package viewer

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/partview/internal/engine/collision"
	"github.com/Faultbox/partview/internal/engine/meshstate"
	"github.com/Faultbox/partview/internal/engine/picking"
	"github.com/Faultbox/partview/internal/engine/scene"
	"github.com/Faultbox/partview/internal/logger"
)

// Controller applies user commands to a ViewerState. Every command takes
// effect immediately and is visible to the next Frame. Commands naming
// unknown meshes are ignored.
type Controller struct {
	state *ViewerState
	log   *zap.Logger
}

// NewController creates a controller over state.
func NewController(state *ViewerState) *Controller {
	return &Controller{state: state, log: logger.Named("viewer")}
}

// State returns the controlled state.
func (c *Controller) State() *ViewerState {
	return c.state
}

// Reload replaces the scene. All per-mesh state and the selection are
// discarded and the camera is placed to frame the new model.
func (c *Controller) Reload(s *scene.Scene) {
	st := c.state
	st.Scene = s
	st.Store.Reset(len(s.Meshes))
	st.Selection.Clear()
	st.Clock.ClearTarget()
	st.Detector.Reset()

	if bounds, ok := collision.SceneBounds(s); ok {
		st.Camera.Frame(bounds)
	}
	c.log.Info("model loaded",
		zap.Int("meshes", len(s.Meshes)),
		zap.Float32("camera_distance", st.Camera.Distance),
	)
}

// Pick selects the mesh under pixel (x, y) according to the selection
// policy. A miss leaves the selection unchanged.
func (c *Controller) Pick(x, y int) picking.PickResult {
	st := c.state
	if st.Scene == nil {
		return picking.PickResult{}
	}
	transforms := scene.ComputeWorldTransforms(st.Scene, st.Store)
	res := st.Picker.Pick(x, y, st.PickView(), st.Scene, transforms, st.Store)
	if res.OK {
		c.Select(res.ID)
	}
	return res
}

// Select applies the selection policy to id, as a pick of id would.
func (c *Controller) Select(id scene.MeshID) {
	st := c.state
	if !st.Store.Known(id) {
		c.log.Debug("select ignored: unknown mesh", zap.Uint32("mesh", uint32(id)))
		return
	}
	st.Selection.Apply(id)
	c.syncSelection()
}

// syncSelection mirrors the selection into the store and retargets the
// animation clock.
func (c *Controller) syncSelection() {
	st := c.state
	for i := 0; i < st.Store.Len(); i++ {
		id := scene.MeshID(i)
		st.Store.SetSelected(id, st.Selection.IsSelected(id))
	}
	if id, ok := st.Selection.Active(); ok {
		st.Clock.SetTarget(id)
	} else {
		st.Clock.ClearTarget()
	}
}

// ClearSelection deselects every mesh.
func (c *Controller) ClearSelection() {
	c.state.Selection.Clear()
	c.syncSelection()
}

// ToggleVisibility shows or hides id. Selection is not affected.
func (c *Controller) ToggleVisibility(id scene.MeshID) {
	c.state.Store.ToggleVisibility(id)
}

// CycleDisplayMode advances id through solid, wireframe and points.
func (c *Controller) CycleDisplayMode(id scene.MeshID) {
	c.state.Store.CycleDisplayMode(id)
}

// Translate moves id by delta along axis. Offsets are unbounded.
func (c *Controller) Translate(id scene.MeshID, axis meshstate.Axis, delta float32) {
	c.state.Store.Translate(id, axis, delta)
}

// ToggleVisibilitySelected toggles the visibility of every selected mesh.
func (c *Controller) ToggleVisibilitySelected() {
	for _, id := range c.state.Selection.Selected() {
		c.ToggleVisibility(id)
	}
}

// CycleDisplayModeSelected cycles the display mode of every selected mesh.
func (c *Controller) CycleDisplayModeSelected() {
	for _, id := range c.state.Selection.Selected() {
		c.CycleDisplayMode(id)
	}
}

// TranslateSelected moves every selected mesh by steps translate steps.
func (c *Controller) TranslateSelected(axis meshstate.Axis, steps float32) {
	for _, id := range c.state.Selection.Selected() {
		c.Translate(id, axis, steps*c.state.TranslateStep)
	}
}

// ToggleAnimation switches the spin of the active mesh on or off.
func (c *Controller) ToggleAnimation() bool {
	on := c.state.Clock.Toggle()
	c.log.Debug("animation toggled", zap.Bool("enabled", on))
	return on
}

// ToggleCollisionHighlight switches overlap detection and highlighting.
func (c *Controller) ToggleCollisionHighlight() bool {
	d := c.state.Detector
	d.SetEnabled(!d.Enabled())
	return d.Enabled()
}

// ToggleLight switches light i on or off. Out of range indices are ignored.
func (c *Controller) ToggleLight(i int) {
	if i < 0 || i >= len(c.state.Lights) {
		return
	}
	c.state.Lights[i].Enabled = !c.state.Lights[i].Enabled
}

// Advance moves the animation clock forward by elapsed wall time.
func (c *Controller) Advance(elapsed time.Duration) {
	c.state.Clock.Advance(elapsed)
}

// Orbit rotates the camera by a drag of (dx, dy) pixels.
func (c *Controller) Orbit(dx, dy float32) {
	c.state.Camera.Orbit(dx, dy)
}

// Zoom moves the camera closer by steps zoom steps.
func (c *Controller) Zoom(steps float32) {
	c.state.Camera.Zoom(steps)
}

// Pan shifts the camera by (dx, dy) pan steps.
func (c *Controller) Pan(dx, dy float32) {
	c.state.Camera.Pan(dx, dy)
}

// ResetCamera restores the default camera.
func (c *Controller) ResetCamera() {
	c.state.Camera.Reset()
}

// Resize records a new viewport size.
func (c *Controller) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.state.ViewportWidth, c.state.ViewportHeight = width, height
}
