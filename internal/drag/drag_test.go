package drag

import (
	"math"
	"testing"
	"time"
)

func TestDragThenRelease(t *testing.T) {
	c := New()
	c.PointerDown(100, 0)
	delta := c.PointerMove(150, 100*time.Millisecond)

	if math.Abs(delta-0.6) > 1e-9 {
		t.Fatalf("immediate rotation = %v, want 0.6", delta)
	}
	if math.Abs(c.Velocity()-6.0) > 1e-9 {
		t.Fatalf("velocity = %v, want 6.0", c.Velocity())
	}

	c.PointerUp()
	if c.State() != Idle {
		t.Fatalf("state after PointerUp = %v", c.State())
	}
	if math.Abs(c.Velocity()-6.0) > 1e-9 {
		t.Fatalf("release must keep velocity, got %v", c.Velocity())
	}

	dt := 1.0 / 60
	v0 := c.Velocity()
	step := c.Step(dt)
	if math.Abs(step-v0*dt) > 1e-12 {
		t.Fatalf("first inertia step = %v, want %v", step, v0*dt)
	}
	if want := v0 * math.Exp(-4*dt); math.Abs(c.Velocity()-want) > 1e-12 {
		t.Fatalf("velocity after step = %v, want %v", c.Velocity(), want)
	}
}

func TestInertiaTerminates(t *testing.T) {
	c := New()
	c.SetVelocity(0.5)
	dt := 1.0 / 60

	steps := 0
	for c.Velocity() != 0 {
		c.Step(dt)
		steps++
		if steps > 10000 {
			t.Fatalf("inertia never stopped, velocity %v", c.Velocity())
		}
	}
	for i := 0; i < 5; i++ {
		if d := c.Step(dt); d != 0 {
			t.Fatalf("step after stop rotated by %v", d)
		}
	}
	if c.Velocity() != 0 {
		t.Fatalf("velocity should stay exactly 0, got %v", c.Velocity())
	}
}

func TestInertiaSuppressedWhileDragging(t *testing.T) {
	c := New()
	c.PointerDown(0, 0)
	c.PointerMove(10, 10*time.Millisecond)
	if c.Velocity() == 0 {
		t.Fatal("expected a drag velocity")
	}
	if d := c.Step(1.0 / 60); d != 0 {
		t.Fatalf("inertia ran during drag: %v", d)
	}
}

func TestPointerDownResetsVelocity(t *testing.T) {
	c := New()
	c.SetVelocity(3)
	c.PointerDown(5, time.Second)
	if c.Velocity() != 0 {
		t.Fatalf("velocity = %v, want 0", c.Velocity())
	}
}

func TestMoveWhileIdleIsIgnored(t *testing.T) {
	c := New()
	if d := c.PointerMove(500, time.Second); d != 0 {
		t.Fatalf("idle move rotated by %v", d)
	}
	if c.Velocity() != 0 {
		t.Fatalf("idle move set velocity %v", c.Velocity())
	}
}

func TestMoveWithSameTimestampUsesFloor(t *testing.T) {
	c := New()
	c.PointerDown(0, time.Second)
	c.PointerMove(1, time.Second)
	// 1px over the 1ms floor.
	if want := 1 / 0.001 * DefaultSensitivity; math.Abs(c.Velocity()-want) > 1e-9 {
		t.Fatalf("velocity = %v, want %v", c.Velocity(), want)
	}
}

func TestLeaveAndCancelEndDrag(t *testing.T) {
	for _, end := range []func(*Controller){(*Controller).PointerLeave, (*Controller).PointerCancel} {
		c := New()
		c.PointerDown(0, 0)
		c.PointerMove(20, 20*time.Millisecond)
		end(c)
		if c.State() != Idle {
			t.Fatalf("drag still active")
		}
		if c.Velocity() == 0 {
			t.Fatalf("ending a drag must keep velocity")
		}
	}
}
