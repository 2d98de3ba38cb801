// Package camera provides the orbit camera used to inspect a model.
package camera

import (
	"github.com/Faultbox/partview/internal/engine/collision"
	"github.com/Faultbox/partview/pkg/math"
)

// Settings are the tunable camera parameters.
type Settings struct {
	Distance         float32 // Distance restored by Reset
	MinDistance      float32
	OrbitSensitivity float32 // Degrees per pixel of drag
	PanStep          float32
	ZoomStep         float32
	FOV              float32 // Vertical field of view, degrees
	Near, Far        float32
}

// DefaultSettings returns the stock camera parameters.
func DefaultSettings() Settings {
	return Settings{
		Distance:         5,
		MinDistance:      1,
		OrbitSensitivity: 0.2,
		PanStep:          0.1,
		ZoomStep:         0.5,
		FOV:              45,
		Near:             1,
		Far:              100,
	}
}

// OrbitCamera looks at the origin from Distance along +Z, after rotating the
// scene by AngleX about X then AngleY about Y and shifting it by the pan.
type OrbitCamera struct {
	AngleX   float32 // Pitch, degrees
	AngleY   float32 // Yaw, degrees
	Distance float32
	PanX     float32
	PanY     float32

	Settings Settings
}

// NewOrbitCamera creates a camera at its reset position.
func NewOrbitCamera(s Settings) *OrbitCamera {
	c := &OrbitCamera{Settings: s}
	c.Reset()
	return c
}

// Reset restores the default angles, pan and distance.
func (c *OrbitCamera) Reset() {
	c.AngleX, c.AngleY = 0, 0
	c.PanX, c.PanY = 0, 0
	c.Distance = max(c.Settings.Distance, c.Settings.MinDistance)
}

// Orbit rotates the camera by a mouse drag of (dx, dy) pixels.
func (c *OrbitCamera) Orbit(dx, dy float32) {
	c.AngleY += dx * c.Settings.OrbitSensitivity
	c.AngleX += dy * c.Settings.OrbitSensitivity
}

// Zoom moves the camera by steps zoom increments; positive steps move closer.
// The distance never drops below MinDistance.
func (c *OrbitCamera) Zoom(steps float32) {
	c.Distance = max(c.Distance-steps*c.Settings.ZoomStep, c.Settings.MinDistance)
}

// Pan shifts the view by (dx, dy) pan steps.
func (c *OrbitCamera) Pan(dx, dy float32) {
	c.PanX += dx * c.Settings.PanStep
	c.PanY += dy * c.Settings.PanStep
}

// ViewMatrix returns T(0,0,-Distance) * Rx(AngleX) * Ry(AngleY) * T(-PanX,-PanY,0).
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.Translate(0, 0, -c.Distance).
		Mul(math.RotateX(math.Radians(c.AngleX))).
		Mul(math.RotateY(math.Radians(c.AngleY))).
		Mul(math.Translate(-c.PanX, -c.PanY, 0))
}

// Projection returns the perspective projection for the given aspect ratio.
// The far plane is pushed out when the camera is further than it.
func (c *OrbitCamera) Projection(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	far := max(c.Settings.Far, 2*c.Distance)
	return math.Perspective(math.Radians(c.Settings.FOV), aspect, c.Settings.Near, far)
}

// InitialDistance returns twice the largest extent of bounds, which frames
// the whole model.
func InitialDistance(bounds collision.AABB) float32 {
	if bounds.IsEmpty() {
		return 0
	}
	return 2 * bounds.Size().MaxComponent()
}

// Frame places the camera at the initial distance for bounds, respecting
// MinDistance. Angles and pan are left unchanged.
func (c *OrbitCamera) Frame(bounds collision.AABB) {
	if d := InitialDistance(bounds); d > 0 {
		c.Distance = max(d, c.Settings.MinDistance)
	}
}
