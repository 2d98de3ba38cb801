// Package animation drives the spin applied to the selected part.
package animation

import (
	"fmt"
	"time"

	"github.com/Faultbox/partview/internal/engine/scene"
)

// Default clock parameters.
const (
	DefaultPeriod = 16 * time.Millisecond
	DefaultStep   = 2 // degrees per tick
)

// maxCatchUp bounds the ticks run by one Advance after a long stall.
const maxCatchUp = 64

// ResetPolicy decides what happens to the angle when animation is disabled.
type ResetPolicy int

const (
	// Persist keeps the angle; re-enabling resumes from it.
	Persist ResetPolicy = iota
	// ResetOnDisable returns the angle to 0 when animation is switched off.
	ResetOnDisable
)

// String returns the config name of the policy.
func (p ResetPolicy) String() string {
	switch p {
	case Persist:
		return "persist"
	case ResetOnDisable:
		return "reset_on_disable"
	default:
		return "unknown"
	}
}

// ParseResetPolicy converts a config name to a ResetPolicy.
func ParseResetPolicy(s string) (ResetPolicy, error) {
	switch s {
	case "", "persist":
		return Persist, nil
	case "reset_on_disable":
		return ResetOnDisable, nil
	default:
		return Persist, fmt.Errorf("unknown animation reset policy %q", s)
	}
}

// Clock advances a rotation angle in fixed ticks while enabled and while a
// target mesh is set. The angle stays in [0, 360).
type Clock struct {
	period  time.Duration
	step    float32
	policy  ResetPolicy
	enabled bool
	angle   float32
	pending time.Duration

	target    scene.MeshID
	hasTarget bool
}

// NewClock creates a disabled clock. Non-positive period or step fall back to
// the defaults.
func NewClock(period time.Duration, step float32, policy ResetPolicy) *Clock {
	if period <= 0 {
		period = DefaultPeriod
	}
	if step <= 0 {
		step = DefaultStep
	}
	return &Clock{period: period, step: step, policy: policy}
}

// Angle returns the current angle in degrees.
func (c *Clock) Angle() float32 { return c.angle }

// SetAngle sets the angle, wrapping it into [0, 360).
func (c *Clock) SetAngle(deg float32) { c.angle = wrap(deg) }

// Enabled reports whether the clock advances.
func (c *Clock) Enabled() bool { return c.enabled }

// Policy returns the reset policy.
func (c *Clock) Policy() ResetPolicy { return c.policy }

// Target returns the mesh the angle applies to.
func (c *Clock) Target() (scene.MeshID, bool) { return c.target, c.hasTarget }

// SetTarget sets the mesh the angle applies to. The angle is kept.
func (c *Clock) SetTarget(id scene.MeshID) {
	c.target, c.hasTarget = id, true
}

// ClearTarget removes the target; ticks then leave the angle unchanged.
func (c *Clock) ClearTarget() {
	c.target, c.hasTarget = 0, false
}

// Toggle flips the enabled flag and returns the new value.
func (c *Clock) Toggle() bool {
	c.SetEnabled(!c.enabled)
	return c.enabled
}

// SetEnabled switches the clock on or off, applying the reset policy when
// switched off.
func (c *Clock) SetEnabled(enabled bool) {
	if c.enabled && !enabled && c.policy == ResetOnDisable {
		c.angle = 0
	}
	if !enabled {
		c.pending = 0
	}
	c.enabled = enabled
}

// Tick runs one fixed tick.
func (c *Clock) Tick() {
	if !c.enabled || !c.hasTarget {
		return
	}
	c.angle = wrap(c.angle + c.step)
}

// Advance accumulates elapsed time and runs one tick per full period.
// It returns the number of ticks run.
func (c *Clock) Advance(delta time.Duration) int {
	if !c.enabled || delta <= 0 {
		return 0
	}
	c.pending += delta
	ticks := 0
	for c.pending >= c.period {
		c.pending -= c.period
		if ticks < maxCatchUp {
			c.Tick()
			ticks++
		}
	}
	return ticks
}

func wrap(deg float32) float32 {
	for deg >= 360 {
		deg -= 360
	}
	for deg < 0 {
		deg += 360
	}
	return deg
}
