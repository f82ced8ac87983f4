// Package drag turns horizontal pointer drags into model rotation and lets the model
// coast after release with exponentially decaying angular velocity.
//
// Timestamps are supplied by the caller (a monotonic clock reading such as
// time.Since(start)), so the controller never reads wall time itself.
package drag

import (
	"math"
	"time"
)

const (
	// DefaultSensitivity converts pixels of pointer travel to radians.
	DefaultSensitivity = 0.012
	// DefaultDecay is the inertia decay rate per second.
	DefaultDecay = 4.0
	// StopThreshold is the angular speed (rad/s) below which inertia snaps to zero.
	StopThreshold = 1e-3
	// minMoveInterval keeps a velocity sample finite when two moves share a timestamp.
	minMoveInterval = time.Millisecond
)

// State is the controller's mode.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Controller owns the drag state. Only pointer handlers and Step mutate it.
type Controller struct {
	Sensitivity float64
	Decay       float64

	state    State
	lastX    float64
	lastMove time.Duration
	velocity float64 // rad/s
}

// New returns an idle controller with the default sensitivity and decay.
func New() *Controller {
	return &Controller{Sensitivity: DefaultSensitivity, Decay: DefaultDecay}
}

// State reports whether a drag is in progress.
func (c *Controller) State() State { return c.state }

// Velocity returns the current angular velocity in radians per second.
func (c *Controller) Velocity() float64 { return c.velocity }

// SetVelocity overrides the angular velocity (used to seed inertia).
func (c *Controller) SetVelocity(v float64) { c.velocity = v }

// PointerDown starts a drag at x. Any residual inertia is cancelled.
func (c *Controller) PointerDown(x float64, at time.Duration) {
	c.state = Dragging
	c.lastX = x
	c.lastMove = at
	c.velocity = 0
}

// PointerMove returns the rotation to apply immediately and records the drag velocity.
// It does nothing unless a drag is in progress.
func (c *Controller) PointerMove(x float64, at time.Duration) float64 {
	if c.state != Dragging {
		return 0
	}
	elapsed := at - c.lastMove
	if elapsed < minMoveInterval {
		elapsed = minMoveInterval
	}
	dt := elapsed.Seconds()
	delta := x - c.lastX

	c.velocity = (delta / dt) * c.Sensitivity
	c.lastX = x
	c.lastMove = at
	return delta * c.Sensitivity
}

// PointerUp ends the drag and keeps the last velocity for inertia.
func (c *Controller) PointerUp() { c.state = Idle }

// PointerLeave ends the drag when the pointer leaves the view.
func (c *Controller) PointerLeave() { c.state = Idle }

// PointerCancel ends the drag when the platform cancels the pointer.
func (c *Controller) PointerCancel() { c.state = Idle }

// Step runs the per-frame inertia update and returns the rotation to apply.
// While dragging, or once the velocity has snapped to zero, it returns 0.
func (c *Controller) Step(dt float64) float64 {
	if c.state == Dragging || c.velocity == 0 {
		return 0
	}
	delta := c.velocity * dt
	c.velocity *= math.Exp(-c.Decay * dt)
	if math.Abs(c.velocity) < StopThreshold {
		c.velocity = 0
	}
	return delta
}
