// Package layout places the fixed column of item panels next to the model.
package layout

import (
	"golang.org/x/exp/constraints"

	"coffee-edition/internal/projector"
)

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside r (right and bottom edges excluded).
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Stack describes the panel column: fixed panel size and gap, offset to the right of the
// anchor and kept Margin pixels inside the viewport.
type Stack struct {
	SideOffset float64
	PanelW     float64
	PanelH     float64
	Gap        float64
	Margin     float64
}

// DefaultStack returns the 80×64 panel column with a 12px gap, 120px right of the anchor.
func DefaultStack() Stack {
	return Stack{SideOffset: 120, PanelW: 80, PanelH: 64, Gap: 12, Margin: 8}
}

// Placement is the computed position of the whole column and each panel in it.
type Placement struct {
	Left   float64
	Top    float64
	Height float64
	Panels []Rect
}

// TotalHeight is the height of count panels including the gaps between them.
func (s Stack) TotalHeight(count int) float64 {
	if count <= 0 {
		return 0
	}
	return float64(count)*s.PanelH + float64(count-1)*s.Gap
}

// Place lays out count panels around anchor and clamps the column into vp. The column's
// top is the first panel's centered y, clamped the same way the left edge is.
func (s Stack) Place(anchor Point, vp projector.Viewport, count int) Placement {
	total := s.TotalHeight(count)
	firstCenterY := anchor.Y - total/2 + s.PanelH/2

	left := clamp(anchor.X+s.SideOffset, s.Margin, vp.Width-s.PanelW-s.Margin)
	top := clamp(firstCenterY, s.Margin, vp.Height-total-s.Margin)

	pl := Placement{Left: left, Top: top, Height: total}
	if count > 0 {
		pl.Panels = make([]Rect, count)
	}
	for i := range pl.Panels {
		pl.Panels[i] = Rect{
			X: left,
			Y: top + float64(i)*(s.PanelH+s.Gap),
			W: s.PanelW,
			H: s.PanelH,
		}
	}
	return pl
}

// Hit returns the index of the panel under (x, y), or -1.
func (p Placement) Hit(x, y float64) int {
	for i, r := range p.Panels {
		if r.Contains(x, y) {
			return i
		}
	}
	return -1
}

// clamp applies min(max(lo, v), hi): when the viewport is too small for the column, hi wins.
func clamp[T constraints.Float](v, lo, hi T) T {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}
