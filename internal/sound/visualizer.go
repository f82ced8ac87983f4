package sound

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	// Bars is the number of visualizer bars.
	Bars = 4
	// MaxBarHeight is the pixel height of a bar at full level.
	MaxBarHeight = 32.0
	// MinBarHeight keeps silent bars visible.
	MinBarHeight = 4.0
)

// Sample picks Bars evenly spaced bins and normalizes them to [0, 1].
func Sample(bins []uint8) [Bars]float64 {
	var out [Bars]float64
	if len(bins) == 0 {
		return out
	}
	for i := range out {
		idx := i * len(bins) / Bars
		out[i] = float64(bins[idx]) / 255
	}
	return out
}

// BarHeight converts a level to pixels.
func BarHeight(level float64) float64 {
	return math.Max(MinBarHeight, level*MaxBarHeight)
}

// Visualizer eases bar levels toward their targets with a spring so the bars do not
// snap between frames.
type Visualizer struct {
	spring harmonica.Spring
	target [Bars]float64
	pos    [Bars]float64
	vel    [Bars]float64
}

// NewVisualizer returns a visualizer stepped fps times per second.
func NewVisualizer(fps int) *Visualizer {
	if fps <= 0 {
		fps = 60
	}
	return &Visualizer{spring: harmonica.NewSpring(harmonica.FPS(fps), 18.0, 1.0)}
}

// SetTarget sets the levels the bars move toward.
func (v *Visualizer) SetTarget(levels [Bars]float64) { v.target = levels }

// Silence drops every target to zero.
func (v *Visualizer) Silence() { v.target = [Bars]float64{} }

// Update advances the springs one step and returns the current levels.
func (v *Visualizer) Update() [Bars]float64 {
	for i := range v.pos {
		v.pos[i], v.vel[i] = v.spring.Update(v.pos[i], v.vel[i], v.target[i])
		v.pos[i] = math.Max(0, math.Min(1, v.pos[i]))
	}
	return v.pos
}

// Heights returns the current bar heights in pixels.
func (v *Visualizer) Heights() [Bars]float64 {
	var h [Bars]float64
	for i, l := range v.pos {
		h[i] = BarHeight(l)
	}
	return h
}
