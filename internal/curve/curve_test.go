package curve

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestQuadraticEndpointsAndMidpoint(t *testing.T) {
	p0 := mgl64.Vec3{0, 0, 0}
	p1 := mgl64.Vec3{0, 1, 0}
	p2 := mgl64.Vec3{1, 0, 0}

	pts := Quadratic(p0, p1, p2, 2)
	if len(pts) != 3 {
		t.Fatalf("expected 3 points, got %d", len(pts))
	}
	if pts[0] != p0 {
		t.Fatalf("t=0: got %v, want %v", pts[0], p0)
	}
	if pts[2] != p2 {
		t.Fatalf("t=1: got %v, want %v", pts[2], p2)
	}
	want := mgl64.Vec3{0.25, 0.5, 0}
	if pts[1] != want {
		t.Fatalf("t=0.5: got %v, want %v", pts[1], want)
	}
}

func TestQuadraticDefaultSegmentCount(t *testing.T) {
	pts := Quadratic(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, mgl64.Vec3{2, 0, 0}, DefaultSegments)
	if len(pts) != 49 {
		t.Fatalf("expected 49 points, got %d", len(pts))
	}
}

func TestQuadraticClampsSegments(t *testing.T) {
	pts := Quadratic(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, mgl64.Vec3{2, 0, 0}, 0)
	if len(pts) != 2 {
		t.Fatalf("expected 2 points for segments=0, got %d", len(pts))
	}
}

func TestQuadraticIsDeterministic(t *testing.T) {
	p0, p1, p2 := mgl64.Vec3{0.1, 0.2, 0.3}, mgl64.Vec3{-1, 2, 0.5}, mgl64.Vec3{3, -0.25, 1}
	a := Quadratic(p0, p1, p2, DefaultSegments)
	b := Quadratic(p0, p1, p2, DefaultSegments)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs between runs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestOutfitStartsOnMarkerAndReachesTowardCamera(t *testing.T) {
	start := mgl64.Vec3{0, 1, 0}
	cam := mgl64.Vec3{0, 1, 6}
	pts := Outfit(start, cam, 0, 0)
	if len(pts) != DefaultSegments+1 {
		t.Fatalf("expected %d points, got %d", DefaultSegments+1, len(pts))
	}
	if pts[0] != start {
		t.Fatalf("curve should start at the marker, got %v", pts[0])
	}
	end := pts[len(pts)-1]
	if math.Abs(end.Sub(start).Len()-1.2) > 1e-9 {
		t.Fatalf("end should be 1.2 from start, got %v", end.Sub(start).Len())
	}
	if end[2] <= start[2] {
		t.Fatalf("end should move toward the camera, got %v", end)
	}
}

func TestOutfitWobblePhaseDependsOnIndex(t *testing.T) {
	start := mgl64.Vec3{0, 1, 0}
	cam := mgl64.Vec3{0, 1, 6}
	a := Outfit(start, cam, 1.3, 0)
	b := Outfit(start, cam, 1.3, 1)
	mid := DefaultSegments / 2
	if a[mid] == b[mid] {
		t.Fatalf("different marker indices should wobble differently")
	}
}

func TestLerp(t *testing.T) {
	got := Lerp(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{2, 4, 6}, 0.5)
	if got != (mgl64.Vec3{1, 2, 3}) {
		t.Fatalf("Lerp = %v", got)
	}
}
