package app

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/partview/internal/engine/input"
	"github.com/Faultbox/partview/internal/engine/picking"
	"github.com/Faultbox/partview/internal/viewer"
)

type binding struct {
	cmd    viewer.Command
	repeat bool // Fires again on key auto-repeat
}

var keyBindings = map[sdl.Scancode]binding{
	sdl.SCANCODE_W: {viewer.CmdPanUp, true},
	sdl.SCANCODE_S: {viewer.CmdPanDown, true},
	sdl.SCANCODE_A: {viewer.CmdPanLeft, true},
	sdl.SCANCODE_D: {viewer.CmdPanRight, true},

	sdl.SCANCODE_EQUALS: {viewer.CmdZoomIn, true},
	sdl.SCANCODE_MINUS:  {viewer.CmdZoomOut, true},

	sdl.SCANCODE_L: {viewer.CmdToggleAnimation, false},
	sdl.SCANCODE_R: {viewer.CmdResetCamera, false},
	sdl.SCANCODE_V: {viewer.CmdToggleVisibility, false},
	sdl.SCANCODE_M: {viewer.CmdCycleDisplayMode, false},
	sdl.SCANCODE_C: {viewer.CmdToggleHighlight, false},

	sdl.SCANCODE_SPACE: {viewer.CmdClearSelection, false},

	sdl.SCANCODE_LEFT:     {viewer.CmdMoveXNeg, true},
	sdl.SCANCODE_RIGHT:    {viewer.CmdMoveXPos, true},
	sdl.SCANCODE_DOWN:     {viewer.CmdMoveYNeg, true},
	sdl.SCANCODE_UP:       {viewer.CmdMoveYPos, true},
	sdl.SCANCODE_PAGEDOWN: {viewer.CmdMoveZNeg, true},
	sdl.SCANCODE_PAGEUP:   {viewer.CmdMoveZPos, true},

	sdl.SCANCODE_F1: {viewer.LightCommand(0), false},
	sdl.SCANCODE_F2: {viewer.LightCommand(1), false},
	sdl.SCANCODE_F3: {viewer.LightCommand(2), false},
}

func init() {
	// SDL numbers the digit row 1..9 then 0.
	for i := 0; i < 9; i++ {
		keyBindings[sdl.SCANCODE_1+sdl.Scancode(i)] = binding{viewer.SelectCommand(i), false}
	}
}

// commandFor returns the command bound to a key-down event.
func commandFor(e input.Event) viewer.Command {
	if e.Type != input.EventKeyDown {
		return viewer.CmdNone
	}
	b, ok := keyBindings[e.Key]
	if !ok || (e.Repeat && !b.repeat) {
		return viewer.CmdNone
	}
	return b.cmd
}

// clickSlop is how far, in pixels, the pointer may travel between press and
// release for the release to count as a click.
const clickSlop = 3

// mouseState turns pointer events into orbit, zoom and pick commands.
type mouseState struct {
	leftDown  bool
	dragged   bool
	pressX    int
	pressY    int
	rightDown bool
}

// controls is the part of the controller the mouse drives.
type controls interface {
	Orbit(dx, dy float32)
	Zoom(steps float32)
	Pick(x, y int) picking.PickResult
}

func (m *mouseState) handle(e input.Event, c controls) {
	switch e.Type {
	case input.EventMouseDown:
		switch e.Button {
		case sdl.BUTTON_LEFT:
			m.leftDown, m.dragged = true, false
			m.pressX, m.pressY = e.MouseX, e.MouseY
		case sdl.BUTTON_RIGHT:
			// Zoom in while held, back out on release.
			if !m.rightDown {
				m.rightDown = true
				c.Zoom(1)
			}
		}

	case input.EventMouseUp:
		switch e.Button {
		case sdl.BUTTON_LEFT:
			if m.leftDown && !m.dragged {
				c.Pick(e.MouseX, e.MouseY)
			}
			m.leftDown = false
		case sdl.BUTTON_RIGHT:
			if m.rightDown {
				m.rightDown = false
				c.Zoom(-1)
			}
		}

	case input.EventMouseMove:
		if !m.leftDown {
			return
		}
		if !m.dragged && abs(e.MouseX-m.pressX) <= clickSlop && abs(e.MouseY-m.pressY) <= clickSlop {
			return
		}
		m.dragged = true
		c.Orbit(float32(e.RelX), float32(e.RelY))

	case input.EventMouseWheel:
		c.Zoom(float32(e.Wheel))
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
