package rig

import "github.com/go-gl/mathgl/mgl64"

// Camera is a perspective camera. FovY is in degrees; Aspect is width/height.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
	FovY     float64
	Aspect   float64
	Near     float64
	Far      float64
}

// DefaultCamera returns the camera the page starts with: (0, 1.8, 6), 45° vertical FOV.
func DefaultCamera() Camera {
	return Camera{
		Position: mgl64.Vec3{0, 1.8, 6},
		Target:   LookAt,
		Up:       mgl64.Vec3{0, 1, 0},
		FovY:     45,
		Aspect:   1,
		Near:     0.1,
		Far:      1000,
	}
}

// View returns the world → camera matrix.
func (c Camera) View() mgl64.Mat4 {
	up := c.Up
	if up == (mgl64.Vec3{}) {
		up = mgl64.Vec3{0, 1, 0}
	}
	return mgl64.LookAtV(c.Position, c.Target, up)
}

// Projection returns the perspective matrix. A zero aspect is treated as square.
func (c Camera) Projection() mgl64.Mat4 {
	aspect := c.Aspect
	if aspect == 0 {
		aspect = 1
	}
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// ViewProjection returns Projection · View.
func (c Camera) ViewProjection() mgl64.Mat4 {
	return c.Projection().Mul4(c.View())
}

// SetViewport updates the aspect ratio from a pixel size. Zero sizes are ignored.
func (c *Camera) SetViewport(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = width / height
}
