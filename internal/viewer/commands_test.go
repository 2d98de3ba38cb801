package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/partview/internal/config"
	"github.com/Faultbox/partview/internal/engine/meshstate"
	"github.com/Faultbox/partview/internal/engine/scene"
	"github.com/Faultbox/partview/pkg/math"
)

func TestCommandRanges(t *testing.T) {
	assert.Equal(t, CmdNone, SelectCommand(-1))
	assert.Equal(t, CmdNone, SelectCommand(9))
	assert.Equal(t, CmdNone, LightCommand(3))
	assert.NotEqual(t, SelectCommand(0), LightCommand(0))
	assert.NotEqual(t, SelectCommand(8), LightCommand(2))
}

func TestDoSelectAndTranslate(t *testing.T) {
	c := newController(t, config.SelectionExclusive)
	st := c.State()

	assert.True(t, c.Do(SelectCommand(1)))
	assert.Equal(t, []scene.MeshID{1}, st.Store.Selected())

	c.Do(CmdMoveXPos)
	c.Do(CmdMoveXPos)
	c.Do(CmdMoveZNeg)
	step := st.TranslateStep
	assert.Equal(t, math.Vec3{X: 2 * step, Z: -step}, st.Store.Offset(1))
	assert.Equal(t, math.Vec3{}, st.Store.Offset(0))

	c.Do(CmdCycleDisplayMode)
	assert.Equal(t, meshstate.Wireframe, st.Store.Get(1).DisplayMode)

	c.Do(CmdToggleVisibility)
	assert.False(t, st.Store.Get(1).Visible)

	c.Do(CmdClearSelection)
	assert.Empty(t, st.Store.Selected())

	// Selecting a mesh the model does not have is ignored.
	assert.True(t, c.Do(SelectCommand(5)))
	assert.Empty(t, st.Store.Selected())
}

func TestDoCameraAndToggles(t *testing.T) {
	c := newController(t, config.SelectionExclusive)
	st := c.State()
	cam := st.Camera

	c.Do(CmdPanRight)
	c.Do(CmdPanUp)
	assert.InDelta(t, cam.Settings.PanStep, cam.PanX, 1e-6)
	assert.InDelta(t, cam.Settings.PanStep, cam.PanY, 1e-6)

	d := cam.Distance
	c.Do(CmdZoomIn)
	assert.InDelta(t, d-cam.Settings.ZoomStep, cam.Distance, 1e-6)
	c.Do(CmdZoomOut)
	assert.InDelta(t, d, cam.Distance, 1e-6)

	c.Do(CmdResetCamera)
	assert.Equal(t, cam.Settings.Distance, cam.Distance)
	assert.Zero(t, cam.PanX)

	on := st.Detector.Enabled()
	c.Do(CmdToggleHighlight)
	assert.Equal(t, !on, st.Detector.Enabled())

	c.Do(CmdToggleAnimation)
	assert.True(t, st.Clock.Enabled())

	lit := st.Lights[2].Enabled
	c.Do(LightCommand(2))
	assert.Equal(t, !lit, st.Lights[2].Enabled)

	assert.False(t, c.Do(CmdNone))
	assert.False(t, c.Do(Command(-4)))
}
