package scene

import "github.com/go-gl/mathgl/mgl64"

// GroupOffset lowers the whole model slightly for composition.
var GroupOffset = mgl64.Vec3{0, -1.4, 0}

// DefaultModelScale is the uniform scale applied to a loaded model.
const DefaultModelScale = 3.5

// Transform places the model in the world. Group is the fixed parent offset; Position is
// the centering offset computed from the model's bounds.
type Transform struct {
	Group     mgl64.Vec3
	Position  mgl64.Vec3
	RotationY float64
	Scale     float64
}

// Matrix returns the model-to-world matrix: translate, then rotate about Y, then scale.
func (t Transform) Matrix() mgl64.Mat4 {
	p := t.Group.Add(t.Position)
	s := t.Scale
	if s == 0 {
		s = 1
	}
	return mgl64.Translate3D(p[0], p[1], p[2]).
		Mul4(mgl64.HomogRotate3DY(t.RotationY)).
		Mul4(mgl64.Scale3D(s, s, s))
}

// Bounds is an axis-aligned box in model space.
type Bounds struct {
	Min, Max mgl64.Vec3
}

// Center returns the box midpoint.
func (b Bounds) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the box extent along each axis.
func (b Bounds) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// FeetOffset returns the translation that puts the bottom center of b, scaled by scale,
// at the group origin.
func FeetOffset(b Bounds, scale float64) mgl64.Vec3 {
	c := b.Center()
	return mgl64.Vec3{-c[0] * scale, -b.Min[1] * scale, -c[2] * scale}
}

// PlaceholderSize is the box drawn until (or instead of) the real model.
func PlaceholderSize(modelScale float64) mgl64.Vec3 {
	return mgl64.Vec3{modelScale, modelScale * 2, modelScale}
}
