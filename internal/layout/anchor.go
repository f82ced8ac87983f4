package layout

import "coffee-edition/internal/projector"

// Point is a pixel position.
type Point struct {
	X, Y float64
}

// Anchor is the screen point the panel stack hangs from. It starts unset and latches
// exactly once, from the first frame that has at least one valid marker. After that it
// never changes for the life of the view.
type Anchor struct {
	latched bool
	point   Point
}

// Latched reports whether the anchor has been fixed.
func (a *Anchor) Latched() bool { return a.latched }

// Point returns the latched point and true, or the zero point and false.
func (a *Anchor) Point() (Point, bool) { return a.point, a.latched }

// Latch fixes the anchor at the mean of the frame's valid points. It returns true only on
// the call that latched.
func (a *Anchor) Latch(f projector.Frame) bool {
	if a.latched {
		return false
	}
	var sx, sy float64
	n := 0
	for _, p := range f.Points {
		if !p.Valid {
			continue
		}
		sx += p.X
		sy += p.Y
		n++
	}
	if n == 0 {
		return false
	}
	a.point = Point{X: sx / float64(n), Y: sy / float64(n)}
	a.latched = true
	return true
}

// Resolve returns the latched point, or the fallback for vp when nothing has latched.
// The fallback is never stored.
func (a *Anchor) Resolve(vp projector.Viewport) Point {
	if a.latched {
		return a.point
	}
	return Fallback(vp)
}

// Fallback is the default anchor: two thirds across, vertically centered.
func Fallback(vp projector.Viewport) Point {
	return Point{X: vp.Width * 0.66, Y: vp.Height * 0.5}
}
