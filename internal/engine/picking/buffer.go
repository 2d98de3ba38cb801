package picking

import "github.com/Faultbox/partview/pkg/math"

// SelectionBuffer is a software SelectionTarget. It rasterizes submitted
// triangles into the pick window only and records per-name depth ranges.
// Triangles with a vertex at or behind the eye (w <= 0) are skipped.
type SelectionBuffer struct {
	vw, vh int
	window Rect
	names  []uint32
	hits   hitSet
}

// NewSelectionBuffer creates an empty buffer.
func NewSelectionBuffer() *SelectionBuffer {
	return &SelectionBuffer{hits: make(hitSet)}
}

// Begin implements SelectionTarget.
func (b *SelectionBuffer) Begin(viewportW, viewportH int, window Rect) {
	b.vw, b.vh = viewportW, viewportH
	b.window = window
	b.names = b.names[:0]
	clear(b.hits)
}

// PushName implements SelectionTarget.
func (b *SelectionBuffer) PushName(name uint32) {
	b.names = append(b.names, name)
}

// PopName implements SelectionTarget.
func (b *SelectionBuffer) PopName() {
	if len(b.names) > 0 {
		b.names = b.names[:len(b.names)-1]
	}
}

// Triangle implements SelectionTarget.
func (b *SelectionBuffer) Triangle(clip [3]math.Vec4) {
	if len(b.names) == 0 || b.vw <= 0 || b.vh <= 0 {
		return
	}

	var sx, sy, depth [3]float32
	for i, c := range clip {
		if c[3] <= 0 {
			return
		}
		ndcX, ndcY, ndcZ := c[0]/c[3], c[1]/c[3], c[2]/c[3]
		sx[i] = (ndcX + 1) * 0.5 * float32(b.vw)
		sy[i] = (1 - ndcY) * 0.5 * float32(b.vh)
		depth[i] = (ndcZ + 1) * 0.5
	}

	area := edge(sx[0], sy[0], sx[1], sy[1], sx[2], sy[2])
	if area == 0 {
		return
	}

	x0, x1 := clampSpan(min(sx[0], sx[1], sx[2]), max(sx[0], sx[1], sx[2]), b.window.X, b.window.X+b.window.W, b.vw)
	y0, y1 := clampSpan(min(sy[0], sy[1], sy[2]), max(sy[0], sy[1], sy[2]), b.window.Y, b.window.Y+b.window.H, b.vh)

	name := b.names[len(b.names)-1]
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			cx, cy := float32(px)+0.5, float32(py)+0.5
			w0 := edge(sx[1], sy[1], sx[2], sy[2], cx, cy) / area
			w1 := edge(sx[2], sy[2], sx[0], sy[0], cx, cy) / area
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*depth[0] + w1*depth[1] + w2*depth[2]
			if z < 0 || z > 1 {
				continue
			}
			b.hits.record(name, z)
		}
	}
}

// End implements SelectionTarget. Hits are ordered by name.
func (b *SelectionBuffer) End() []Hit {
	return b.hits.sorted()
}

// edge is twice the signed area of (a, b, p).
func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// clampSpan returns the pixel range [lo, hi) covering [fmin, fmax],
// limited to the window span and the viewport.
func clampSpan(fmin, fmax float32, winLo, winHi, size int) (int, int) {
	fmin = max(fmin, -1)
	fmax = min(fmax, float32(size)+1)
	lo := max(int(fmin), winLo, 0)
	hi := min(int(fmax)+1, winHi, size)
	return lo, hi
}
