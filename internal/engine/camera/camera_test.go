package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/partview/internal/engine/collision"
	"github.com/Faultbox/partview/pkg/math"
)

func TestInitialDistance(t *testing.T) {
	tests := []struct {
		name string
		box  collision.AABB
		want float32
	}{
		{"unit box", collision.AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}, 4},
		{"tall", collision.AABB{Max: math.Vec3{X: 1, Y: 3, Z: 1}}, 6},
		{"empty", collision.Empty(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InitialDistance(tt.box))
		})
	}
}

func TestZoomClamped(t *testing.T) {
	c := NewOrbitCamera(DefaultSettings())
	assert.Equal(t, float32(5), c.Distance)

	c.Zoom(1)
	assert.Equal(t, float32(4.5), c.Distance)
	c.Zoom(-2)
	assert.Equal(t, float32(5.5), c.Distance)

	for i := 0; i < 20; i++ {
		c.Zoom(1)
	}
	assert.Equal(t, float32(1), c.Distance)
}

func TestOrbitAndPan(t *testing.T) {
	c := NewOrbitCamera(DefaultSettings())
	c.Orbit(10, -5)
	assert.InDelta(t, 2, c.AngleY, 1e-6)
	assert.InDelta(t, -1, c.AngleX, 1e-6)

	c.Pan(1, 0)
	c.Pan(0, -2)
	assert.InDelta(t, 0.1, c.PanX, 1e-6)
	assert.InDelta(t, -0.2, c.PanY, 1e-6)
}

func TestReset(t *testing.T) {
	c := NewOrbitCamera(DefaultSettings())
	c.Orbit(100, 100)
	c.Pan(3, 3)
	c.Zoom(3)
	c.Frame(collision.AABB{Max: math.Vec3{X: 20, Y: 1, Z: 1}})

	c.Reset()
	assert.Zero(t, c.AngleX)
	assert.Zero(t, c.AngleY)
	assert.Zero(t, c.PanX)
	assert.Zero(t, c.PanY)
	assert.Equal(t, float32(5), c.Distance)
}

func TestFrame(t *testing.T) {
	c := NewOrbitCamera(DefaultSettings())
	c.Frame(collision.AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}})
	assert.Equal(t, float32(4), c.Distance)

	c.Frame(collision.AABB{Max: math.Vec3{X: 0.1, Y: 0.1, Z: 0.1}})
	assert.Equal(t, float32(1), c.Distance)
}

func TestViewMatrix(t *testing.T) {
	c := NewOrbitCamera(DefaultSettings())

	// Origin sits Distance in front of the eye.
	p := c.ViewMatrix().TransformPoint([3]float32{0, 0, 0})
	assert.InDeltaSlice(t, []float32{0, 0, -5}, p[:], 1e-5)

	// Pan moves the look-at point.
	c.Pan(10, 0) // PanX = 1
	p = c.ViewMatrix().TransformPoint([3]float32{1, 0, 0})
	assert.InDeltaSlice(t, []float32{0, 0, -5}, p[:], 1e-5)

	// Yaw of 90 degrees turns +X towards -Z.
	c.Reset()
	c.AngleY = 90
	p = c.ViewMatrix().TransformPoint([3]float32{1, 0, 0})
	assert.InDeltaSlice(t, []float32{0, 0, -6}, p[:], 1e-5)
}

func TestProjectionFarPlane(t *testing.T) {
	c := NewOrbitCamera(DefaultSettings())
	near := c.Projection(1)
	want := math.Perspective(math.Radians(45), 1, 1, 100)
	assert.True(t, near.ApproxEqual(want, 1e-6))

	c.Distance = 80
	far := c.Projection(1)
	assert.False(t, far.ApproxEqual(want, 1e-6))
}
