// Package projector maps the model's fixed markers onto screen pixels every frame and
// suppresses sub-pixel jitter so dependents only recompute on visible movement.
package projector

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultThreshold is the per-marker pixel distance below which movement is ignored.
const DefaultThreshold = 0.5

// ScreenPoint is a projected marker. Depth is the normalized device z in [-1, 1] for
// points inside the frustum. Valid is false when the projection was not finite.
type ScreenPoint struct {
	X, Y  float64
	Depth float64
	Valid bool
}

// Frame is one published set of marker positions. Version increases by one on every
// publish, so readers can tell a republished frame from the one they already used.
type Frame struct {
	Points  [MarkerCount]ScreenPoint
	Version uint64
}

// Published reports whether the frame has ever been published.
func (f Frame) Published() bool { return f.Version > 0 }

// ValidCount returns the number of markers with a usable position.
func (f Frame) ValidCount() int {
	n := 0
	for _, p := range f.Points {
		if p.Valid {
			n++
		}
	}
	return n
}

// Viewport is a pixel size.
type Viewport struct {
	Width, Height float64
}

// Empty reports whether either dimension is zero or negative.
func (v Viewport) Empty() bool { return v.Width <= 0 || v.Height <= 0 }

// Projector is the single writer of the published Frame.
type Projector struct {
	Markers   MarkerSet
	Threshold float64

	current Frame
}

// New returns a projector for markers using DefaultThreshold.
func New(markers MarkerSet) *Projector {
	return &Projector{Markers: markers, Threshold: DefaultThreshold}
}

// Current returns the last published frame.
func (p *Projector) Current() Frame { return p.current }

// Update projects every marker through model and viewProj into vp pixels. It returns
// the published frame and whether it changed. When every marker moved less than the
// threshold, the previous frame is returned unchanged.
func (p *Projector) Update(model, viewProj mgl64.Mat4, vp Viewport) (Frame, bool) {
	if vp.Empty() {
		return p.current, false
	}
	mvp := viewProj.Mul4(model)

	var next Frame
	for _, m := range Markers() {
		next.Points[m] = Project(p.Markers[m], mvp, vp)
	}
	if p.current.Published() && !p.moved(next) {
		return p.current, false
	}
	next.Version = p.current.Version + 1
	p.current = next
	return p.current, true
}

// moved reports whether any marker moved at least Threshold pixels, or changed validity.
func (p *Projector) moved(next Frame) bool {
	for i := range next.Points {
		a, b := p.current.Points[i], next.Points[i]
		if a.Valid != b.Valid {
			return true
		}
		if !b.Valid {
			continue
		}
		if math.Hypot(a.X-b.X, a.Y-b.Y) >= p.Threshold {
			return true
		}
	}
	return false
}

// Project maps a local-space point through mvp and into pixel coordinates. Pixel y grows
// downward while NDC y grows upward, hence the flip. Points at or behind the camera
// plane (clip w <= 0) are invalid, since the divide would mirror them onto the screen.
func Project(local mgl64.Vec3, mvp mgl64.Mat4, vp Viewport) ScreenPoint {
	clip := mvp.Mul4x1(local.Vec4(1))
	if clip[3] <= 0 {
		return ScreenPoint{}
	}
	ndcX, ndcY, ndcZ := clip[0]/clip[3], clip[1]/clip[3], clip[2]/clip[3]
	sp := ScreenPoint{
		X:     (ndcX + 1) / 2 * vp.Width,
		Y:     (1 - ndcY) / 2 * vp.Height,
		Depth: ndcZ,
	}
	sp.Valid = finite(sp.X) && finite(sp.Y) && finite(sp.Depth)
	return sp
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
