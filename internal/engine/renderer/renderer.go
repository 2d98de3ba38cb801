// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"slices"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/partview/internal/engine/debug"
	"github.com/Faultbox/partview/internal/engine/meshstate"
	"github.com/Faultbox/partview/internal/engine/scene"
	"github.com/Faultbox/partview/internal/engine/shader"
	"github.com/Faultbox/partview/internal/engine/texture"
	"github.com/Faultbox/partview/internal/logger"
	"github.com/Faultbox/partview/internal/viewer"
)

var (
	selectedColor  = [3]float32{0.5, 0.8, 1.0}
	highlightColor = [3]float32{1, 0, 0}
	background     = [3]float32{0.1, 0.1, 0.15}
)

const maxLights = 3

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
	hasUV         bool
}

// Renderer draws viewer frames.
type Renderer struct {
	config Config

	meshProgram *shader.Program
	lineProgram *shader.Program

	meshes  map[scene.MeshID]*gpuMesh
	texture uint32

	lineVAO, lineVBO uint32
	lineVerts        []float32

	log *zap.Logger
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		meshes: make(map[scene.MeshID]*gpuMesh),
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	if r.meshProgram, err = shader.NewProgram(meshVertexShader, meshFragmentShader); err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	if r.lineProgram, err = shader.NewProgram(lineVertexShader, lineFragmentShader); err != nil {
		r.meshProgram.Delete()
		return nil, fmt.Errorf("line shader: %w", err)
	}

	gl.GenVertexArrays(1, &r.lineVAO)
	gl.BindVertexArray(r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.releaseMeshes()
	r.SetTexture(nil)
	if r.lineVAO != 0 {
		gl.DeleteVertexArrays(1, &r.lineVAO)
		r.lineVAO = 0
	}
	if r.lineVBO != 0 {
		gl.DeleteBuffers(1, &r.lineVBO)
		r.lineVBO = 0
	}
	r.meshProgram.Delete()
	r.lineProgram.Delete()
}

// Resize handles window resize. width and height are drawable pixels.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Upload replaces the GPU copies of all meshes with those of s.
func (r *Renderer) Upload(s *scene.Scene) {
	r.releaseMeshes()
	for _, id := range s.MeshIDs() {
		m, _ := s.Mesh(id)
		if m.Empty() || len(m.Faces) == 0 {
			continue
		}
		r.meshes[id] = uploadMesh(m)
	}
	r.log.Debug("meshes uploaded", zap.Int("count", len(r.meshes)))
}

func uploadMesh(m *scene.Mesh) *gpuMesh {
	normals := m.VertexNormals()
	// Interleaved position(3) normal(3) uv(2).
	vertices := make([]float32, 0, len(m.Positions)*8)
	for i, p := range m.Positions {
		var uv [2]float32
		if m.HasUVs() {
			uv = m.UVs[i]
		}
		n := normals[i]
		vertices = append(vertices, p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1])
	}
	indices := make([]uint32, 0, len(m.Faces)*3)
	for _, f := range m.Faces {
		indices = append(indices, f[0], f[1], f[2])
	}

	g := &gpuMesh{indexCount: int32(len(indices)), hasUV: m.HasUVs()}
	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	const stride = 8 * 4
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(6*4)))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return g
}

func (r *Renderer) releaseMeshes() {
	for id, g := range r.meshes {
		gl.DeleteVertexArrays(1, &g.vao)
		gl.DeleteBuffers(1, &g.vbo)
		gl.DeleteBuffers(1, &g.ebo)
		delete(r.meshes, id)
	}
}

// SetTexture uploads img as the surface texture. nil removes it.
func (r *Renderer) SetTexture(img *texture.Image) {
	if r.texture != 0 {
		gl.DeleteTextures(1, &r.texture)
		r.texture = 0
	}
	if img == nil {
		return
	}

	// Texture coordinates put v = 0 at the bottom of the image.
	flipped := *img
	flipped.Pix = slices.Clone(img.Pix)
	flipped.FlipVertical()

	format := uint32(gl.RGBA)
	if flipped.Channels == 3 {
		format = gl.RGB
	}

	gl.GenTextures(1, &r.texture)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, int32(format), int32(flipped.Width), int32(flipped.Height), 0,
		format, gl.UNSIGNED_BYTE, gl.Ptr(flipped.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	r.log.Debug("texture uploaded",
		zap.Int("width", flipped.Width),
		zap.Int("height", flipped.Height),
		zap.Int("channels", flipped.Channels),
	)
}

// Draw renders one frame.
func (r *Renderer) Draw(fd viewer.FrameData) {
	gl.ClearColor(background[0], background[1], background[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	p := r.meshProgram
	p.Use()
	p.SetMat4("uView", fd.View)
	p.SetMat4("uProjection", fd.Projection)
	p.SetVec3("uViewPos", fd.View.Inverse().Translation().Array())
	p.SetFloat("uShininess", fd.Material.Shininess)
	r.setLights(fd.Lights)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)
	p.SetInt("uTexture", 0)

	r.lineVerts = r.lineVerts[:0]
	for _, mf := range fd.Meshes {
		g := r.meshes[mf.ID]
		if g == nil {
			continue
		}

		color := fd.Material.Color
		if mf.State.Selected {
			color = selectedColor
		}
		p.SetMat4("uModel", mf.World)
		p.SetVec3("uColor", color)
		p.SetBool("uLit", true)
		p.SetBool("uUseTexture", r.texture != 0 && g.hasUV && !mf.State.Selected)

		gl.PolygonMode(gl.FRONT_AND_BACK, polygonMode(mf.State.DisplayMode))
		r.drawMesh(g)

		if mf.Overlapping {
			// Edges drawn over the surface.
			p.SetVec3("uColor", highlightColor)
			p.SetBool("uLit", false)
			p.SetBool("uUseTexture", false)
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
			gl.Enable(gl.POLYGON_OFFSET_LINE)
			gl.PolygonOffset(-1, -1)
			r.drawMesh(g)
			gl.Disable(gl.POLYGON_OFFSET_LINE)

			r.lineVerts = debug.AppendAABBWireframe(r.lineVerts, mf.Bounds, debug.DefaultBBoxPadding)
		}
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	r.drawLines(fd)
}

func (r *Renderer) drawMesh(g *gpuMesh) {
	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// drawLines draws the collected overlap boxes.
func (r *Renderer) drawLines(fd viewer.FrameData) {
	if len(r.lineVerts) == 0 {
		return
	}
	p := r.lineProgram
	p.Use()
	p.SetMat4("uViewProj", fd.Projection.Mul(fd.View))
	p.SetVec3("uColor", highlightColor)

	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.lineVerts)*4, gl.Ptr(r.lineVerts), gl.STREAM_DRAW)
	gl.DrawArrays(gl.LINES, 0, int32(len(r.lineVerts)/3))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

func (r *Renderer) setLights(lights []viewer.Light) {
	p := r.meshProgram
	for i := 0; i < maxLights; i++ {
		var l viewer.Light
		if i < len(lights) {
			l = lights[i]
		}
		p.SetBool(fmt.Sprintf("uLightOn[%d]", i), l.Enabled)
		p.SetVec4(fmt.Sprintf("uLightPos[%d]", i), l.Position)
		p.SetVec3(fmt.Sprintf("uLightColor[%d]", i), l.Color)
	}
}

// ReadPixels reads the default framebuffer as RGBA rows, bottom-up.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	if width <= 0 || height <= 0 {
		return nil, 0, 0
	}
	pixels = make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

func polygonMode(m meshstate.DisplayMode) uint32 {
	switch m {
	case meshstate.Wireframe:
		return gl.LINE
	case meshstate.Points:
		return gl.POINT
	default:
		return gl.FILL
	}
}
