package picking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/partview/internal/engine/collision"
	"github.com/Faultbox/partview/internal/engine/scene"
	"github.com/Faultbox/partview/pkg/math"
)

func testView() View {
	return View{
		Projection: math.Perspective(math.Radians(45), 1, 1, 100),
		View:       math.Translate(0, 0, -5),
		Width:      100,
		Height:     100,
	}
}

// square returns a unit quad in the XY plane centered on (cx, cy, z).
func square(cx, cy, z float32) *scene.Mesh {
	return &scene.Mesh{
		Positions: [][3]float32{
			{cx - 0.5, cy - 0.5, z},
			{cx + 0.5, cy - 0.5, z},
			{cx + 0.5, cy + 0.5, z},
			{cx - 0.5, cy + 0.5, z},
		},
		Faces: [][3]uint32{{0, 1, 2}, {0, 2, 3}},
	}
}

func flatScene(meshes ...*scene.Mesh) (*scene.Scene, map[scene.MeshID]math.Mat4) {
	s := &scene.Scene{Root: scene.NewNode("root"), Meshes: meshes}
	for i := range meshes {
		s.Root.Meshes = append(s.Root.Meshes, scene.MeshID(i))
	}
	return s, scene.ComputeWorldTransforms(s, nil)
}

type hidden map[scene.MeshID]bool

func (h hidden) Visible(id scene.MeshID) bool { return !h[id] }

func TestPick_DisjointMeshes(t *testing.T) {
	s, world := flatScene(square(-1, 0, 0), square(1, 0, 0))
	p := NewPicker(NewSelectionBuffer(), DefaultWindow)
	v := testView()

	assert.Equal(t, PickResult{ID: 0, OK: true}, p.Pick(26, 50, v, s, world, nil))
	assert.Equal(t, PickResult{ID: 1, OK: true}, p.Pick(74, 50, v, s, world, nil))
}

func TestPick_Background(t *testing.T) {
	s, world := flatScene(square(-1, 0, 0), square(1, 0, 0))
	p := NewPicker(NewSelectionBuffer(), DefaultWindow)

	res := p.Pick(50, 50, testView(), s, world, nil)
	assert.False(t, res.OK)
	res = p.Pick(5, 5, testView(), s, world, nil)
	assert.False(t, res.OK)
}

func TestPick_NearestWins(t *testing.T) {
	// Mesh 1 sits in front of mesh 0 at the same screen position.
	s, world := flatScene(square(0, 0, 0), square(0, 0, 1))
	p := NewPicker(NewSelectionBuffer(), DefaultWindow)

	assert.Equal(t, PickResult{ID: 1, OK: true}, p.Pick(50, 50, testView(), s, world, nil))
}

func TestPick_TieGoesToLowerID(t *testing.T) {
	s, world := flatScene(square(0, 0, 0), square(0, 0, 0))
	p := NewPicker(NewSelectionBuffer(), DefaultWindow)

	for i := 0; i < 5; i++ {
		assert.Equal(t, PickResult{ID: 0, OK: true}, p.Pick(50, 50, testView(), s, world, nil))
	}
}

func TestPick_InvisibleNeverPicked(t *testing.T) {
	s, world := flatScene(square(0, 0, 0), square(0, 0, 1))
	p := NewPicker(NewSelectionBuffer(), DefaultWindow)

	assert.Equal(t, PickResult{ID: 0, OK: true}, p.Pick(50, 50, testView(), s, world, hidden{1: true}))
	assert.False(t, p.Pick(50, 50, testView(), s, world, hidden{0: true, 1: true}).OK)
}

func TestPick_FollowsOffsets(t *testing.T) {
	s, _ := flatScene(square(0, 0, 0))
	world := scene.ComputeWorldTransforms(s, offset{X: 2})
	p := NewPicker(NewSelectionBuffer(), DefaultWindow)

	assert.False(t, p.Pick(50, 50, testView(), s, world, nil).OK)
	assert.True(t, p.Pick(98, 50, testView(), s, world, nil).OK)
}

type offset math.Vec3

func (o offset) Offset(scene.MeshID) math.Vec3 { return math.Vec3(o) }

func TestPick_BehindCamera(t *testing.T) {
	s, world := flatScene(square(0, 0, 10))
	p := NewPicker(NewSelectionBuffer(), DefaultWindow)
	assert.False(t, p.Pick(50, 50, testView(), s, world, nil).OK)
}

func TestNameEncoding(t *testing.T) {
	assert.Equal(t, uint32(1), NameOf(0))
	id, ok := IDOf(8)
	assert.True(t, ok)
	assert.Equal(t, scene.MeshID(7), id)
	_, ok = IDOf(0)
	assert.False(t, ok)
}

func TestSelectionBuffer(t *testing.T) {
	b := NewSelectionBuffer()
	full := [3]math.Vec4{{-1, -1, 0, 1}, {3, -1, 0, 1}, {-1, 3, 0, 1}}

	b.Begin(10, 10, WindowAround(5, 5, 3))
	b.Triangle(full) // no name on the stack
	b.PushName(4)
	b.Triangle(full)
	b.Triangle([3]math.Vec4{{-1, -1, -0.5, 1}, {3, -1, -0.5, 1}, {-1, 3, -0.5, 1}})
	b.PopName()
	b.PushName(9)
	b.Triangle([3]math.Vec4{{-1, -1, 0, 0}, {3, -1, 0, 1}, {-1, 3, 0, 1}})
	b.PopName()

	hits := b.End()
	require.Len(t, hits, 1)
	assert.Equal(t, uint32(4), hits[0].Name)
	assert.InDelta(t, 0.25, hits[0].MinDepth, 1e-6)
	assert.InDelta(t, 0.5, hits[0].MaxDepth, 1e-6)

	// A new pass starts empty.
	b.Begin(10, 10, WindowAround(5, 5, 3))
	assert.Empty(t, b.End())
}

func TestSelectionBuffer_OutsideWindow(t *testing.T) {
	b := NewSelectionBuffer()
	b.Begin(100, 100, WindowAround(90, 90, 5))
	b.PushName(1)
	// Covers only the top-left quarter of the viewport.
	b.Triangle([3]math.Vec4{{-1, 1, 0, 1}, {0, 1, 0, 1}, {-1, 0, 0, 1}})
	b.PopName()
	assert.Empty(t, b.End())
}

func TestWindowAround(t *testing.T) {
	r := WindowAround(10, 20, 5)
	assert.Equal(t, Rect{X: 8, Y: 18, W: 5, H: 5}, r)
	assert.True(t, r.Contains(10, 20))
	assert.True(t, r.Contains(12, 22))
	assert.False(t, r.Contains(13, 20))
	assert.Equal(t, Rect{X: 3, Y: 3, W: 1, H: 1}, WindowAround(3, 3, 0))
}

func TestRectClip(t *testing.T) {
	assert.Equal(t, Rect{X: 0, Y: 0, W: 3, H: 3}, WindowAround(0, 0, 5).Clip(10, 10))
	assert.Equal(t, Rect{X: 7, Y: 7, W: 3, H: 3}, WindowAround(9, 9, 5).Clip(10, 10))
	assert.True(t, WindowAround(50, 50, 5).Clip(10, 10).Empty())
	assert.False(t, WindowAround(5, 5, 5).Clip(10, 10).Empty())
}

func TestScreenToRay(t *testing.T) {
	v := testView()
	ray := ScreenToRay(50, 50, 100, 100, v.ViewProjection().Inverse())

	assert.InDelta(t, 4, ray.Origin.Z, 1e-3)
	assert.InDelta(t, -1, ray.Direction.Z, 1e-4)

	box := collision.AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}
	d, hit := ray.IntersectAABB(box)
	require.True(t, hit)
	assert.InDelta(t, 3, d, 1e-3)
	assert.InDelta(t, 1, ray.At(d).Z, 1e-3)

	away := collision.AABB{Min: math.Vec3{X: 5, Y: 5, Z: -1}, Max: math.Vec3{X: 6, Y: 6, Z: 1}}
	_, hit = ray.IntersectAABB(away)
	assert.False(t, hit)
}

func TestIntersectAABB_Inside(t *testing.T) {
	ray := Ray{Direction: math.Vec3{X: 1}}
	box := collision.AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 2, Y: 1, Z: 1}}
	d, hit := ray.IntersectAABB(box)
	assert.True(t, hit)
	assert.InDelta(t, 2, d, 1e-6)
}

func TestEncodeName_RoundTrip(t *testing.T) {
	for _, name := range []uint32{1, 255, 256, 70000, 1<<24 - 1} {
		c := EncodeName(name)
		assert.Equal(t, name, DecodeName(c[0], c[1], c[2]))
	}
	assert.Equal(t, [3]byte{0x03, 0x02, 0x01}, EncodeName(0x010203))
}

func TestHitsFromPixels(t *testing.T) {
	pixel := func(name uint32) []byte {
		c := EncodeName(name)
		return []byte{c[0], c[1], c[2], 255}
	}
	var color []byte
	color = append(color, pixel(0)...)
	color = append(color, pixel(2)...)
	color = append(color, pixel(1)...)
	color = append(color, pixel(2)...)
	depth := []float32{1, 0.4, 0.6, 0.3}

	hits := HitsFromPixels(color, depth)
	require.Len(t, hits, 2)
	assert.Equal(t, Hit{Name: 1, MinDepth: 0.6, MaxDepth: 0.6}, hits[0])
	assert.Equal(t, Hit{Name: 2, MinDepth: 0.3, MaxDepth: 0.4}, hits[1])

	assert.Empty(t, HitsFromPixels(nil, nil))
}
