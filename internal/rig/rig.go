// Package rig drives the slow cinematic camera drift and the model's idle spin.
package rig

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// LookAt is the fixed world point the camera always faces (roughly chest height).
var LookAt = mgl64.Vec3{0, 1.7, 0}

const (
	driftAmplitude = 0.05
	driftSpeedX    = 0.3
	driftSpeedY    = 0.4
	baseHeight     = 0.5
)

// DefaultAutoSpeed is the idle rotation speed in radians per second.
const DefaultAutoSpeed = 0.08

// Rig advances the model rotation and moves the camera every frame.
type Rig struct {
	AutoRotate bool
	AutoSpeed  float64
}

// New returns a rig with auto-rotation enabled at DefaultAutoSpeed.
func New() *Rig {
	return &Rig{AutoRotate: true, AutoSpeed: DefaultAutoSpeed}
}

// Update runs once per frame. t is the elapsed time accumulator and dt the frame delta,
// both in seconds. When AutoRotate is off the rotation is left alone but the camera keeps
// drifting. The camera's depth coordinate is never touched.
func (r *Rig) Update(t, dt float64, rotation *float64, cam *Camera) {
	if r.AutoRotate && rotation != nil {
		*rotation += dt * r.AutoSpeed
	}
	if cam == nil {
		return
	}
	x, y := Drift(t)
	cam.Position = mgl64.Vec3{x, y, cam.Position[2]}
	cam.Target = LookAt
}

// Drift returns the camera's horizontal and vertical position at time t.
func Drift(t float64) (x, y float64) {
	x = math.Sin(t*driftSpeedX) * driftAmplitude
	y = baseHeight + math.Cos(t*driftSpeedY)*driftAmplitude
	return x, y
}
