package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/partview/internal/engine/framebuffer"
	"github.com/Faultbox/partview/internal/engine/picking"
	"github.com/Faultbox/partview/internal/engine/shader"
	"github.com/Faultbox/partview/internal/logger"
	"github.com/Faultbox/partview/pkg/math"
)

const selectionVertexShader = `#version 410 core
layout (location = 0) in vec4 aClip;
layout (location = 1) in uint aName;

flat out uint vName;

void main() {
    gl_Position = aClip;
    vName = aName;
}
`

const selectionFragmentShader = `#version 410 core
flat in uint vName;
out vec4 FragColor;

void main() {
    vec3 c = vec3(float(vName & 0xFFu), float((vName >> 8) & 0xFFu), float((vName >> 16) & 0xFFu));
    FragColor = vec4(c / 255.0, 1.0);
}
`

// GLSelectionTarget is a picking.SelectionTarget that draws the selection
// pass into an offscreen framebuffer with names encoded as colors, then
// reads back the pick window. Only the nearest fragment per pixel survives
// the depth test, so MaxDepth covers visible fragments only.
type GLSelectionTarget struct {
	fb      *framebuffer.Framebuffer
	program *shader.Program
	vao     uint32
	clipVBO uint32
	nameVBO uint32

	vw, vh   int
	window   picking.Rect
	stack    []uint32
	vertices []float32
	names    []uint32
	log      *zap.Logger
}

// NewGLSelectionTarget creates the offscreen target. A GL context must be current.
func NewGLSelectionTarget(width, height int) (*GLSelectionTarget, error) {
	fb, err := framebuffer.New(int32(width), int32(height))
	if err != nil {
		return nil, err
	}
	program, err := shader.NewProgram(selectionVertexShader, selectionFragmentShader)
	if err != nil {
		fb.Destroy()
		return nil, fmt.Errorf("selection shader: %w", err)
	}

	t := &GLSelectionTarget{fb: fb, program: program, log: logger.Named("selection")}

	gl.GenVertexArrays(1, &t.vao)
	gl.BindVertexArray(t.vao)

	gl.GenBuffers(1, &t.clipVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, t.clipVBO)
	gl.VertexAttribPointer(0, 4, gl.FLOAT, false, 4*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &t.nameVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, t.nameVBO)
	gl.VertexAttribIPointer(1, 1, gl.UNSIGNED_INT, 4, nil)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return t, nil
}

// Begin implements picking.SelectionTarget.
func (t *GLSelectionTarget) Begin(viewportW, viewportH int, window picking.Rect) {
	t.vw, t.vh = viewportW, viewportH
	t.window = window
	t.stack = t.stack[:0]
	t.vertices = t.vertices[:0]
	t.names = t.names[:0]
}

// PushName implements picking.SelectionTarget.
func (t *GLSelectionTarget) PushName(name uint32) {
	t.stack = append(t.stack, name)
}

// PopName implements picking.SelectionTarget.
func (t *GLSelectionTarget) PopName() {
	if len(t.stack) > 0 {
		t.stack = t.stack[:len(t.stack)-1]
	}
}

// Triangle implements picking.SelectionTarget. Clipping against the near
// plane is left to GL.
func (t *GLSelectionTarget) Triangle(clip [3]math.Vec4) {
	if len(t.stack) == 0 {
		return
	}
	name := t.stack[len(t.stack)-1]
	for _, c := range clip {
		t.vertices = append(t.vertices, c[0], c[1], c[2], c[3])
		t.names = append(t.names, name)
	}
}

// End implements picking.SelectionTarget.
func (t *GLSelectionTarget) End() []picking.Hit {
	region := t.window.Clip(t.vw, t.vh)
	if len(t.names) == 0 || region.Empty() {
		return nil
	}

	t.fb.Resize(int32(t.vw), int32(t.vh))
	restore := t.fb.BindWithViewport()
	defer restore()

	// GL rows start at the bottom.
	x, y := int32(region.X), int32(t.vh-region.Y-region.H)
	w, h := int32(region.W), int32(region.H)

	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(x, y, w, h)
	defer gl.Disable(gl.SCISSOR_TEST)

	t.fb.Clear(0, 0, 0, 0)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.CULL_FACE)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)

	t.program.Use()
	gl.BindVertexArray(t.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, t.clipVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(t.vertices)*4, gl.Ptr(t.vertices), gl.STREAM_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, t.nameVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(t.names)*4, gl.Ptr(t.names), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(t.names)))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	color, depth := t.fb.ReadRegion(x, y, w, h)
	hits := picking.HitsFromPixels(color, depth)
	t.log.Debug("selection pass",
		zap.Int("triangles", len(t.names)/3),
		zap.Int("hits", len(hits)),
	)
	return hits
}

// Destroy releases the GL resources.
func (t *GLSelectionTarget) Destroy() {
	if t.vao != 0 {
		gl.DeleteVertexArrays(1, &t.vao)
		t.vao = 0
	}
	if t.clipVBO != 0 {
		gl.DeleteBuffers(1, &t.clipVBO)
		t.clipVBO = 0
	}
	if t.nameVBO != 0 {
		gl.DeleteBuffers(1, &t.nameVBO)
		t.nameVBO = 0
	}
	t.program.Delete()
	t.fb.Destroy()
}
