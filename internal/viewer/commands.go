package viewer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/partview/internal/engine/meshstate"
	"github.com/Faultbox/partview/internal/engine/scene"
)

// Command is a discrete user action bound to a key.
type Command int

// Commands. Select and light commands form contiguous ranges; use
// SelectCommand and LightCommand to build them.
const (
	CmdNone Command = iota
	CmdPanUp
	CmdPanDown
	CmdPanLeft
	CmdPanRight
	CmdZoomIn
	CmdZoomOut
	CmdResetCamera
	CmdToggleAnimation
	CmdToggleHighlight
	CmdToggleVisibility
	CmdCycleDisplayMode
	CmdMoveXNeg
	CmdMoveXPos
	CmdMoveYNeg
	CmdMoveYPos
	CmdMoveZNeg
	CmdMoveZPos
	CmdClearSelection
	cmdLight0
	cmdSelect0 = cmdLight0 + maxLightCommands
)

const (
	maxLightCommands  = 3
	maxSelectCommands = 9
)

// SelectCommand returns the command selecting mesh i (0-8).
func SelectCommand(i int) Command {
	if i < 0 || i >= maxSelectCommands {
		return CmdNone
	}
	return cmdSelect0 + Command(i)
}

// LightCommand returns the command toggling light i (0-2).
func LightCommand(i int) Command {
	if i < 0 || i >= maxLightCommands {
		return CmdNone
	}
	return cmdLight0 + Command(i)
}

// Do applies cmd. It reports false for CmdNone and unknown commands.
func (c *Controller) Do(cmd Command) bool {
	switch {
	case cmd >= cmdSelect0 && cmd < cmdSelect0+maxSelectCommands:
		c.Select(scene.MeshID(cmd - cmdSelect0))
		return true
	case cmd >= cmdLight0 && cmd < cmdLight0+maxLightCommands:
		c.ToggleLight(int(cmd - cmdLight0))
		return true
	}

	switch cmd {
	case CmdPanUp:
		c.Pan(0, 1)
	case CmdPanDown:
		c.Pan(0, -1)
	case CmdPanLeft:
		c.Pan(-1, 0)
	case CmdPanRight:
		c.Pan(1, 0)
	case CmdZoomIn:
		c.Zoom(1)
	case CmdZoomOut:
		c.Zoom(-1)
	case CmdResetCamera:
		c.ResetCamera()
	case CmdToggleAnimation:
		c.ToggleAnimation()
	case CmdToggleHighlight:
		on := c.ToggleCollisionHighlight()
		c.log.Debug("collision highlight toggled", zap.Bool("enabled", on))
	case CmdToggleVisibility:
		c.ToggleVisibilitySelected()
	case CmdCycleDisplayMode:
		c.CycleDisplayModeSelected()
	case CmdMoveXNeg:
		c.TranslateSelected(meshstate.AxisX, -1)
	case CmdMoveXPos:
		c.TranslateSelected(meshstate.AxisX, 1)
	case CmdMoveYNeg:
		c.TranslateSelected(meshstate.AxisY, -1)
	case CmdMoveYPos:
		c.TranslateSelected(meshstate.AxisY, 1)
	case CmdMoveZNeg:
		c.TranslateSelected(meshstate.AxisZ, -1)
	case CmdMoveZPos:
		c.TranslateSelected(meshstate.AxisZ, 1)
	case CmdClearSelection:
		c.ClearSelection()
	default:
		return false
	}
	return true
}
