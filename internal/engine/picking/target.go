package picking

import "github.com/Faultbox/partview/pkg/math"

// Rect is a pixel rectangle with a top-left origin.
type Rect struct {
	X, Y, W, H int
}

// WindowAround returns the size×size rectangle centered on (x, y).
func WindowAround(x, y, size int) Rect {
	if size < 1 {
		size = 1
	}
	return Rect{X: x - size/2, Y: y - size/2, W: size, H: size}
}

// Contains reports whether pixel (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Hit is one selection record: a name that produced fragments inside the
// pick window and the depth range of those fragments, in [0, 1].
type Hit struct {
	Name     uint32
	MinDepth float32
	MaxDepth float32
}

// SelectionTarget receives the geometry of a selection pass.
//
// Begin starts a pass over the given viewport restricted to window.
// PushName and PopName bracket the triangles of one mesh; Triangle submits
// one triangle in clip space. End finishes the pass and returns one hit per
// name that covered at least one pixel of the window.
type SelectionTarget interface {
	Begin(viewportW, viewportH int, window Rect)
	PushName(name uint32)
	Triangle(clip [3]math.Vec4)
	PopName()
	End() []Hit
}

// Clip limits r to a w×h viewport. The result may be empty.
func (r Rect) Clip(w, h int) Rect {
	x0, y0 := max(r.X, 0), max(r.Y, 0)
	x1, y1 := min(r.X+r.W, w), min(r.Y+r.H, h)
	return Rect{X: x0, Y: y0, W: max(x1-x0, 0), H: max(y1-y0, 0)}
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}
