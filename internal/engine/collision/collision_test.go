package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/partview/internal/engine/scene"
	"github.com/Faultbox/partview/pkg/math"
)

func box(min, max float32) AABB {
	return AABB{Min: math.Vec3{X: min, Y: min, Z: min}, Max: math.Vec3{X: max, Y: max, Z: max}}
}

// unitCube returns a mesh spanning [0,1]^3.
func unitCube() *scene.Mesh {
	m := &scene.Mesh{Name: "cube"}
	for _, x := range []float32{0, 1} {
		for _, y := range []float32{0, 1} {
			for _, z := range []float32{0, 1} {
				m.Positions = append(m.Positions, [3]float32{x, y, z})
			}
		}
	}
	m.Faces = [][3]uint32{{0, 1, 2}, {5, 6, 7}}
	return m
}

type hidden map[scene.MeshID]bool

func (h hidden) Visible(id scene.MeshID) bool { return !h[id] }

// cubes builds a scene of unit cubes, each translated by the given offset.
func cubes(offsets ...float32) (*scene.Scene, map[scene.MeshID]math.Mat4) {
	s := &scene.Scene{Root: scene.NewNode("root")}
	for i, off := range offsets {
		s.Meshes = append(s.Meshes, unitCube())
		s.Root.AddChild(&scene.Node{
			Name:   "part",
			Local:  math.Translate(off, off, off),
			Meshes: []scene.MeshID{scene.MeshID(i)},
		})
	}
	return s, scene.ComputeWorldTransforms(s, nil)
}

func TestOverlapsInclusive(t *testing.T) {
	tests := []struct {
		name string
		a, b AABB
		want bool
	}{
		{"touching faces", box(0, 1), box(1, 2), true},
		{"separated", box(0, 1), box(1.0001, 2.0001), false},
		{"nested", box(0, 4), box(1, 2), true},
		{"same", box(0, 1), box(0, 1), true},
		{"apart on one axis", AABB{Max: math.Vec3{X: 1, Y: 1, Z: 1}}, AABB{Min: math.Vec3{Z: 2}, Max: math.Vec3{X: 1, Y: 1, Z: 3}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestComputeAABB(t *testing.T) {
	b, ok := ComputeAABB(unitCube(), math.Translate(2, 0, 0).Mul(math.Scale(2, 1, 1)))
	require.True(t, ok)
	assert.Equal(t, math.Vec3{X: 2}, b.Min)
	assert.Equal(t, math.Vec3{X: 4, Y: 1, Z: 1}, b.Max)

	_, ok = ComputeAABB(&scene.Mesh{}, math.Identity())
	assert.False(t, ok)
}

func TestComputeAABB_Rotated(t *testing.T) {
	b, ok := ComputeAABB(unitCube(), math.RotateZ(math.Radians(90)))
	require.True(t, ok)
	assert.InDelta(t, -1, b.Min.X, 1e-5)
	assert.InDelta(t, 0, b.Max.X, 1e-5)
	assert.InDelta(t, 1, b.Max.Y, 1e-5)
}

func TestDetectOverlaps(t *testing.T) {
	s, world := cubes(0, 1, 3)

	set := DetectOverlaps(s, world, nil)
	assert.Equal(t, 1, set.Len())
	assert.True(t, set.Contains(0, 1))
	assert.True(t, set.Contains(1, 0))
	assert.False(t, set.Contains(0, 2))
	assert.False(t, set.Contains(0, 0))
	assert.True(t, set.Involved(1))
	assert.False(t, set.Involved(2))
	assert.Equal(t, []Pair{{A: 0, B: 1}}, set.Pairs())
}

func TestDetectOverlaps_JustApart(t *testing.T) {
	s, world := cubes(0, 1.0001)
	assert.Equal(t, 0, DetectOverlaps(s, world, nil).Len())
}

func TestDetectOverlaps_NeverSelf(t *testing.T) {
	s, world := cubes(0)
	set := DetectOverlaps(s, world, nil)
	assert.Equal(t, 0, set.Len())
	assert.False(t, set.Involved(0))
}

func TestDetectOverlaps_SkipsHidden(t *testing.T) {
	s, world := cubes(0, 0.5, 0.75)

	set := DetectOverlaps(s, world, hidden{1: true})
	assert.Equal(t, []Pair{{A: 0, B: 2}}, set.Pairs())
	assert.False(t, set.Involved(1))
}

func TestDetectOverlaps_UsesOffsets(t *testing.T) {
	s, _ := cubes(0, 5)
	offsets := offsetFunc(func(id scene.MeshID) math.Vec3 {
		if id == 1 {
			return math.Vec3{X: -4.5, Y: -4.5, Z: -4.5}
		}
		return math.Vec3{}
	})
	world := scene.ComputeWorldTransforms(s, offsets)
	assert.True(t, DetectOverlaps(s, world, nil).Contains(0, 1))
}

type offsetFunc func(id scene.MeshID) math.Vec3

func (f offsetFunc) Offset(id scene.MeshID) math.Vec3 { return f(id) }

func TestSceneBounds(t *testing.T) {
	s, _ := cubes(-1, 2)
	b, ok := SceneBounds(s)
	require.True(t, ok)
	assert.Equal(t, math.Vec3{X: -1, Y: -1, Z: -1}, b.Min)
	assert.Equal(t, math.Vec3{X: 3, Y: 3, Z: 3}, b.Max)

	_, ok = SceneBounds(&scene.Scene{Root: scene.NewNode("root")})
	assert.False(t, ok)
}

func TestDetector(t *testing.T) {
	s, world := cubes(0, 0.5)

	d := NewDetector(true)
	assert.Equal(t, 1, d.Detect(s, world, nil).Len())

	d.SetEnabled(false)
	assert.False(t, d.Enabled())
	assert.Equal(t, 0, d.Detect(s, world, nil).Len())
	assert.False(t, d.Detect(s, world, nil).Involved(0))
}
