package layout

import (
	"testing"

	"coffee-edition/internal/projector"
)

func frameWith(points ...projector.ScreenPoint) projector.Frame {
	var f projector.Frame
	copy(f.Points[:], points)
	f.Version = 1
	return f
}

func TestAnchorLatchesMeanOfValidPoints(t *testing.T) {
	var a Anchor
	f := frameWith(
		projector.ScreenPoint{X: 100, Y: 200, Valid: true},
		projector.ScreenPoint{X: 300, Y: 400, Valid: true},
		projector.ScreenPoint{X: 9999, Y: 9999, Valid: false},
	)
	if !a.Latch(f) {
		t.Fatal("expected latch")
	}
	p, ok := a.Point()
	if !ok || p != (Point{X: 200, Y: 300}) {
		t.Fatalf("anchor = %v, %v", p, ok)
	}
}

func TestAnchorNeverMovesAfterLatch(t *testing.T) {
	var a Anchor
	a.Latch(frameWith(projector.ScreenPoint{X: 10, Y: 20, Valid: true}))

	moved := frameWith(
		projector.ScreenPoint{X: 5000, Y: 5000, Valid: true},
		projector.ScreenPoint{X: -300, Y: 80, Valid: true},
	)
	if a.Latch(moved) {
		t.Fatal("second latch must be ignored")
	}
	if p, _ := a.Point(); p != (Point{X: 10, Y: 20}) {
		t.Fatalf("anchor moved to %v", p)
	}

	s := DefaultStack()
	vp := projector.Viewport{Width: 1280, Height: 720}
	want := s.Place(Point{X: 10, Y: 20}, vp, 4)
	got := s.Place(a.Resolve(vp), vp, 4)
	if got.Left != want.Left || got.Top != want.Top {
		t.Fatalf("placement %+v, want %+v", got, want)
	}
}

func TestAnchorWaitsForValidPoint(t *testing.T) {
	var a Anchor
	if a.Latch(projector.Frame{}) {
		t.Fatal("empty frame must not latch")
	}
	if a.Latched() {
		t.Fatal("anchor latched without data")
	}
}

func TestFallbackIsNotPromoted(t *testing.T) {
	var a Anchor
	vp := projector.Viewport{Width: 1000, Height: 600}
	if got := a.Resolve(vp); got != (Point{X: 660, Y: 300}) {
		t.Fatalf("fallback = %v", got)
	}
	if a.Latched() {
		t.Fatal("fallback must not latch")
	}
	vp2 := projector.Viewport{Width: 2000, Height: 1000}
	if got := a.Resolve(vp2); got != (Point{X: 1320, Y: 500}) {
		t.Fatalf("fallback should follow the viewport, got %v", got)
	}
}

func TestPlace(t *testing.T) {
	s := DefaultStack()
	tests := []struct {
		name    string
		anchor  Point
		vp      projector.Viewport
		left    float64
		top     float64
		lastTop float64
	}{
		{
			name:   "unclamped",
			anchor: Point{X: 500, Y: 400},
			vp:     projector.Viewport{Width: 1280, Height: 800},
			// total = 4*64 + 3*12 = 292; first center = 400 - 146 + 32
			left: 620, top: 286, lastTop: 286 + 3*76,
		},
		{
			name:   "clamped right and bottom",
			anchor: Point{X: 1250, Y: 700},
			vp:     projector.Viewport{Width: 1280, Height: 720},
			left:   1280 - 80 - 8, top: 720 - 292 - 8, lastTop: 720 - 292 - 8 + 3*76,
		},
		{
			name:   "clamped left and top",
			anchor: Point{X: -400, Y: -50},
			vp:     projector.Viewport{Width: 1280, Height: 720},
			left:   8, top: 8, lastTop: 8 + 3*76,
		},
		{
			name:   "viewport too small, upper bound wins",
			anchor: Point{X: 50, Y: 50},
			vp:     projector.Viewport{Width: 60, Height: 200},
			left:   60 - 88, top: 200 - 300, lastTop: 200 - 300 + 3*76,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pl := s.Place(tt.anchor, tt.vp, 4)
			if pl.Left != tt.left || pl.Top != tt.top {
				t.Fatalf("left/top = %v/%v, want %v/%v", pl.Left, pl.Top, tt.left, tt.top)
			}
			if len(pl.Panels) != 4 {
				t.Fatalf("panels = %d", len(pl.Panels))
			}
			if pl.Panels[3].Y != tt.lastTop {
				t.Fatalf("last panel y = %v, want %v", pl.Panels[3].Y, tt.lastTop)
			}
			if pl.Height != 292 {
				t.Fatalf("height = %v", pl.Height)
			}
		})
	}
}

func TestPlacementHit(t *testing.T) {
	pl := DefaultStack().Place(Point{X: 500, Y: 400}, projector.Viewport{Width: 1280, Height: 800}, 4)
	if got := pl.Hit(630, 290); got != 0 {
		t.Fatalf("hit first panel = %d", got)
	}
	if got := pl.Hit(630, 286+76+10); got != 1 {
		t.Fatalf("hit second panel = %d", got)
	}
	if got := pl.Hit(630, 286+64+5); got != -1 {
		t.Fatalf("gap between panels should miss, got %d", got)
	}
	if got := pl.Hit(10, 10); got != -1 {
		t.Fatalf("outside should miss, got %d", got)
	}
}

func TestTotalHeight(t *testing.T) {
	s := DefaultStack()
	if s.TotalHeight(0) != 0 || s.TotalHeight(1) != 64 {
		t.Fatalf("TotalHeight(0)=%v TotalHeight(1)=%v", s.TotalHeight(0), s.TotalHeight(1))
	}
}
