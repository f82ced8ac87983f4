package curve

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultSegments is the number of segments used for callout lines (49 points).
const DefaultSegments = 48

const (
	outfitReach       = 1.2  // how far the line end is pulled toward the camera
	outfitLift        = 0.4  // upward bend of the control point
	outfitPullBack    = 0.15 // control point pulled away from the camera
	outfitWobbleSpeed = 1.8
	outfitWobbleAmp   = 0.02
)

// Quadratic samples the quadratic Bézier curve P0 → P2 with control point P1 at
// segments+1 evenly spaced parameters t = i/segments. t=0 yields exactly p0 and t=1
// exactly p2. segments below 1 are treated as 1.
func Quadratic(p0, p1, p2 mgl64.Vec3, segments int) []mgl64.Vec3 {
	if segments < 1 {
		segments = 1
	}
	out := make([]mgl64.Vec3, segments+1)
	for i := 0; i <= segments; i++ {
		out[i] = At(p0, p1, p2, float64(i)/float64(segments))
	}
	return out
}

// At evaluates B(t) = (1−t)²·P0 + 2(1−t)t·P1 + t²·P2.
func At(p0, p1, p2 mgl64.Vec3, t float64) mgl64.Vec3 {
	u := 1 - t
	a, b, c := u*u, 2*u*t, t*t
	return mgl64.Vec3{
		a*p0[0] + b*p1[0] + c*p2[0],
		a*p0[1] + b*p1[1] + c*p2[1],
		a*p0[2] + b*p1[2] + c*p2[2],
	}
}

// Lerp returns a + (b−a)·t.
func Lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Outfit builds the callout curve for one marker: it starts on the model, ends 1.2 units
// toward the camera and bows upward, with a small per-marker wobble driven by elapsed
// seconds. index offsets the wobble phase so neighbouring lines do not move in lockstep.
func Outfit(start, cameraPos mgl64.Vec3, elapsed float64, index int) []mgl64.Vec3 {
	dir := cameraPos.Sub(start)
	if dir.Len() == 0 {
		dir = mgl64.Vec3{0, 0, 1}
	}
	dir = dir.Normalize()
	end := start.Add(dir.Mul(outfitReach))

	w := math.Sin(elapsed*outfitWobbleSpeed+float64(index)) * outfitWobbleAmp
	control := Lerp(start, end, 0.5).
		Add(mgl64.Vec3{0, outfitLift, 0}).
		Add(dir.Mul(-outfitPullBack)).
		Add(mgl64.Vec3{w, w, w})

	return Quadratic(start, control, end, DefaultSegments)
}
