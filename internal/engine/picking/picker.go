package picking

import (
	"go.uber.org/zap"

	"github.com/Faultbox/partview/internal/engine/collision"
	"github.com/Faultbox/partview/internal/engine/scene"
	"github.com/Faultbox/partview/internal/logger"
	"github.com/Faultbox/partview/pkg/math"
)

// DefaultWindow is the default pick window edge in pixels.
const DefaultWindow = 5

// View is the camera state a pick is resolved against.
type View struct {
	Projection math.Mat4
	View       math.Mat4
	Width      int
	Height     int
}

// ViewProjection returns Projection * View.
func (v View) ViewProjection() math.Mat4 {
	return v.Projection.Mul(v.View)
}

// PickResult is the outcome of a pick. OK is false when nothing was hit.
type PickResult struct {
	ID scene.MeshID
	OK bool
}

// NameOf returns the selection name of a mesh. Name 0 is reserved for
// background.
func NameOf(id scene.MeshID) uint32 {
	return uint32(id) + 1
}

// IDOf reverses NameOf. ok is false for the background name.
func IDOf(name uint32) (scene.MeshID, bool) {
	if name == 0 {
		return 0, false
	}
	return scene.MeshID(name - 1), true
}

// Picker resolves screen positions to meshes using a SelectionTarget.
type Picker struct {
	target SelectionTarget
	window int
	log    *zap.Logger
}

// NewPicker creates a picker that submits geometry to target using a
// window×window pick region.
func NewPicker(target SelectionTarget, window int) *Picker {
	if window < 1 {
		window = DefaultWindow
	}
	return &Picker{target: target, window: window, log: logger.Named("picking")}
}

// Pick returns the visible mesh nearest to the viewer under pixel (x, y).
// transforms and vis must be the ones used to draw the frame so that what is
// picked is what is shown. Ties in depth go to the lower mesh id.
func (p *Picker) Pick(x, y int, view View, s *scene.Scene, transforms map[scene.MeshID]math.Mat4, vis collision.Visibility) PickResult {
	if s == nil || view.Width <= 0 || view.Height <= 0 {
		return PickResult{}
	}

	window := WindowAround(x, y, p.window)
	viewProj := view.ViewProjection()
	ray := ScreenToRay(float32(x)+0.5, float32(y)+0.5, float32(view.Width), float32(view.Height), viewProj.Inverse())

	p.target.Begin(view.Width, view.Height, window)
	submitted := 0
	for _, id := range s.MeshIDs() {
		if vis != nil && !vis.Visible(id) {
			continue
		}
		world, ok := transforms[id]
		if !ok {
			continue
		}
		mesh, _ := s.Mesh(id)
		box, ok := collision.ComputeAABB(mesh, world)
		if !ok || !candidate(box, viewProj, view, window, ray) {
			continue
		}

		mvp := viewProj.Mul(world)
		p.target.PushName(NameOf(id))
		for _, f := range mesh.Faces {
			p.target.Triangle([3]math.Vec4{
				clipOf(mvp, mesh.Positions[f[0]]),
				clipOf(mvp, mesh.Positions[f[1]]),
				clipOf(mvp, mesh.Positions[f[2]]),
			})
		}
		p.target.PopName()
		submitted++
	}
	hits := p.target.End()

	res := nearest(hits)
	p.log.Debug("pick",
		zap.Int("x", x), zap.Int("y", y),
		zap.Int("candidates", submitted),
		zap.Int("hits", len(hits)),
		zap.Bool("ok", res.OK),
		zap.Uint32("mesh", uint32(res.ID)),
	)
	return res
}

// nearest chooses the hit with the smallest minimum depth; equal depths go
// to the lower id.
func nearest(hits []Hit) PickResult {
	var best PickResult
	var bestDepth float32
	for _, h := range hits {
		id, ok := IDOf(h.Name)
		if !ok {
			continue
		}
		if !best.OK || h.MinDepth < bestDepth || (h.MinDepth == bestDepth && id < best.ID) {
			best = PickResult{ID: id, OK: true}
			bestDepth = h.MinDepth
		}
	}
	return best
}

// candidate reports whether a mesh with world bounds box can cover any pixel
// of window. Boxes entirely in front of the eye are projected to the screen;
// boxes that straddle the eye plane fall back to a ray test through the
// window center.
func candidate(box collision.AABB, viewProj math.Mat4, view View, window Rect, ray Ray) bool {
	minX, minY := float32(1e30), float32(1e30)
	maxX, maxY := float32(-1e30), float32(-1e30)
	for _, c := range box.Corners() {
		clip := viewProj.MulVec4(math.Vec4{c.X, c.Y, c.Z, 1})
		if clip[3] <= 0 {
			_, hit := ray.IntersectAABB(box)
			return hit
		}
		sx := (clip[0]/clip[3] + 1) * 0.5 * float32(view.Width)
		sy := (1 - clip[1]/clip[3]) * 0.5 * float32(view.Height)
		minX, maxX = min(minX, sx), max(maxX, sx)
		minY, maxY = min(minY, sy), max(maxY, sy)
	}
	return maxX >= float32(window.X) && minX <= float32(window.X+window.W) &&
		maxY >= float32(window.Y) && minY <= float32(window.Y+window.H)
}

func clipOf(mvp math.Mat4, p [3]float32) math.Vec4 {
	return mvp.MulVec4(math.Vec4{p[0], p[1], p[2], 1})
}
